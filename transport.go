package ross

import "errors"

// ErrNoPacketReceived is returned by Transport.TryGetPacket to signal a
// normal, non-failure exhaustion of whatever is currently available to
// read: there is no complete packet right now, try again later. A
// Dispatcher treats it as a no-op tick, not an error.
var ErrNoPacketReceived = errors.New("ross: no packet received")

// Transport is the capability a Dispatcher is built over: a single wire
// (a CAN controller, a UART, a host serial port) reduced to exactly two
// operations. Concrete implementations live under transports/ and own
// their own PacketBuilder and wire state; none of that state is shared
// across Transport instances.
type Transport interface {
	// TryGetPacket drains whatever is immediately available (bytes or
	// controller frames), feeding each decoded Frame into the
	// transport's internal PacketBuilder, and returns as soon as one
	// packet completes. It returns ErrNoPacketReceived, not a zero
	// Packet and nil error, when nothing is available. A frame or
	// builder error resets the internal builder and is returned as-is.
	TryGetPacket() (Packet, error)
	// TrySendPacket splits packet into frames and writes each to the
	// wire. It must not return a nil error on a partial write.
	TrySendPacket(packet *Packet) error
}
