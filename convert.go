package ross

import (
	"errors"
	"fmt"
)

// Event-level errors.
var (
	// ErrWrongSize is returned when a packet's data length does not match
	// the size a given event type requires.
	ErrWrongSize = errors.New("ross: packet data has the wrong size for this event")
	// ErrWrongType is returned when a packet's IsError flag disagrees
	// with the event type being decoded (every event in this family is a
	// non-error event).
	ErrWrongType = errors.New("ross: packet is an error packet, expected a normal event")
	// ErrWrongEventType is the base sentinel wrapped by every per-event
	// "wrong code" error; match it with errors.Is to catch any of them.
	ErrWrongEventType = errors.New("ross: packet does not carry this event's code")
	// ErrUnknownVariant is returned when a sub-value (BcmValue,
	// RelayValue, MessageValue) carries a tag byte not in its closed set.
	ErrUnknownVariant = errors.New("ross: unknown sub-value tag")
)

// wrongEventType wraps ErrWrongEventType with the code actually found, so
// callers can both errors.Is(err, ErrWrongEventType) and read the detail.
func wrongEventType(code EventCode) error {
	return fmt.Errorf("%w: got code 0x%04x", ErrWrongEventType, uint16(code))
}

// PacketEncoder is implemented by every event type in the family: it
// renders the event as the Packet that carries it over the wire. The
// reverse direction (decode) has no matching method — Go has no
// associated/static trait functions — and is instead a plain
// package-level DecodeXxxEvent function per event type, used directly or
// passed to ExchangePacket/ExchangePackets.
type PacketEncoder interface {
	ToPacket() Packet
}

// requireSize returns ErrWrongSize unless data is exactly n bytes long.
func requireSize(data []byte, n int) error {
	if len(data) != n {
		return ErrWrongSize
	}
	return nil
}

// requireMinSize returns ErrWrongSize unless data is at least n bytes long.
func requireMinSize(data []byte, n int) error {
	if len(data) < n {
		return ErrWrongSize
	}
	return nil
}

// requireCode decodes the big-endian event code from the first two bytes
// of data and checks it against want.
func requireCode(data []byte, want EventCode) error {
	got := EventCode(uint16(data[0])<<8 | uint16(data[1]))
	if got != want {
		return wrongEventType(got)
	}
	return nil
}
