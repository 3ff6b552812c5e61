package ross

import "fmt"

// BroadcastAddress is the reserved device address meaning "every
// device". It is never assigned to a real device; all other
// addresses are opaque 16-bit tags assigned externally.
const BroadcastAddress uint16 = 0xffff

// IsBroadcast reports whether addr is the broadcast address.
func IsBroadcast(addr uint16) bool { return addr == BroadcastAddress }

// FormatAddress renders a device address the way log lines and CLI
// output in this module do: the broadcast address by name, everything
// else as 4-digit hex.
func FormatAddress(addr uint16) string {
	if IsBroadcast(addr) {
		return "broadcast"
	}
	return fmt.Sprintf("0x%04x", addr)
}
