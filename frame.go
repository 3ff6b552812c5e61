// Package ross implements the core of a device-bus messaging protocol:
// a bit-exact frame codec for an extended CAN bus and a byte-stuffed
// byte-stream transport, a packet reassembly state machine, a closed
// family of typed events, and an address-filtered protocol dispatcher.
//
// The package is a protocol runtime, not an application: it consumes a
// Transport capability and produces/accepts Packets and typed Events.
// Concrete transport drivers live under transports/.
package ross

import "errors"

// Frame-level errors.
var (
	// ErrFrameIsStandard is returned when a CAN frame carries a standard
	// (11-bit) identifier instead of the extended (29-bit) one this
	// protocol requires.
	ErrFrameIsStandard = errors.New("ross: frame is a standard CAN frame, not extended")
	// ErrFrameIsRemote is returned when a CAN frame is a remote frame
	// (no data payload) instead of a data frame.
	ErrFrameIsRemote = errors.New("ross: frame is a remote CAN frame, not a data frame")
	// ErrFrameIDMissing is returned when a multi-frame frame has a zero
	// DLC, so the low byte of its frame id cannot be recovered.
	ErrFrameIDMissing = errors.New("ross: multi-frame frame is missing its frame id byte")
	// ErrFrameWrongSize is returned by the byte-stream decoder when the
	// decoded record length disagrees with its own declared data length.
	ErrFrameWrongSize = errors.New("ross: frame has an inconsistent size")
)

// FrameID is the 12-bit id attached to every frame of a multi-frame
// packet: LastFrameID on the start frame (the zero-based index of the
// packet's final frame) and CurrentFrameID on every following frame
// (that frame's own zero-based index). It is the Go analogue of the
// source's two-variant FrameId enum: a closed tag plus value, reached
// through the two constructors below rather than through field access.
type FrameID struct {
	value  uint16
	isLast bool
}

// LastFrameID tags value as the index of the last frame of a packet.
// It is attached only to a packet's start frame.
func LastFrameID(value uint16) FrameID { return FrameID{value: value & 0x0fff, isLast: true} }

// CurrentFrameID tags value as the index of the frame carrying it. It
// is attached to every non-start frame of a multi-frame packet.
func CurrentFrameID(value uint16) FrameID { return FrameID{value: value & 0x0fff, isLast: false} }

// IsLast reports whether id is a LastFrameID.
func (id FrameID) IsLast() bool { return id.isLast }

// Value returns the 12-bit index carried by id, regardless of its tag.
func (id FrameID) Value() uint16 { return id.value }

// Frame is the atomic transport unit: either a complete single-frame
// packet or one fragment of a multi-frame packet.
type Frame struct {
	// NotErrorFlag is false when this frame carries an error packet.
	NotErrorFlag bool
	// StartFrameFlag marks the first frame of a packet.
	StartFrameFlag bool
	// MultiFrameFlag marks a packet spanning more than one frame.
	MultiFrameFlag bool
	// FrameID is LastFrameID on the start frame, CurrentFrameID on every
	// other frame of a multi-frame packet.
	FrameID FrameID
	// DeviceAddress is the device address of the packet this frame
	// belongs to, shared by all of that packet's frames.
	DeviceAddress uint16
	// DataLen is the count of meaningful bytes in Data, 0..=8.
	DataLen uint8
	// Data is the frame's fixed 8-byte payload buffer.
	Data [8]byte
}

// canonicalize enforces the canonical single-frame form required by
// single-frame canonical form: a frame with MultiFrameFlag == false always has
// StartFrameFlag == true and FrameID == LastFrameID(0), regardless of
// what its wire encoding actually carried.
func (f Frame) canonicalize() Frame {
	if !f.MultiFrameFlag {
		f.StartFrameFlag = true
		f.FrameID = LastFrameID(0)
	}
	return f
}

// --- CAN extended-id encoding ---
//
// bit 28      NOT_ERROR_FLAG
// bit 27      START_FRAME_FLAG
// bit 26      MULTI_FRAME_FLAG
// bits 25-20  reserved (zero on send; ignored on receive)
// bits 19-16  high nibble (0xF00) of frame_id
// bits 15-0   device_address

// EncodeCANID packs f's framing bits and device address into a 29-bit
// CAN extended identifier. f.Data[0] is expected to already carry the
// low byte of a multi-frame frame's id — EncodeCANFrame places it there
// before calling EncodeCANID.
func EncodeCANID(f Frame) uint32 {
	var id uint32
	if f.NotErrorFlag {
		id |= 1 << 28
	}
	if f.StartFrameFlag {
		id |= 1 << 27
	}
	if f.MultiFrameFlag {
		id |= 1 << 26
	}
	id |= uint32((f.FrameID.Value()>>8)&0x0f) << 16
	id |= uint32(f.DeviceAddress)
	return id
}

// EncodeCANFrame converts f into a 29-bit extended CAN identifier and
// the payload bytes that should be transmitted alongside it. The
// caller's CAN driver supplies the DLC, which is len(data) ==
// int(f.DataLen).
func EncodeCANFrame(f Frame) (id uint32, data []byte) {
	if f.MultiFrameFlag && f.DataLen > 0 {
		f.Data[0] = byte(f.FrameID.Value())
	}
	return EncodeCANID(f), f.Data[:f.DataLen]
}

// DecodeCANFrame reconstructs a Frame from a 29-bit extended CAN
// identifier and its data payload. extended and remote
// report the flags the CAN controller itself decoded off the wire;
// DecodeCANFrame rejects anything but an extended data frame.
func DecodeCANFrame(id uint32, extended, remote bool, data []byte) (Frame, error) {
	if !extended {
		return Frame{}, ErrFrameIsStandard
	}
	if remote {
		return Frame{}, ErrFrameIsRemote
	}

	notError := (id>>28)&1 != 0
	start := (id>>27)&1 != 0
	multi := (id>>26)&1 != 0
	idNibble := uint16((id >> 16) & 0x0f)
	deviceAddress := uint16(id & 0xffff)

	dataLen := len(data)
	if dataLen > 8 {
		dataLen = 8
	}

	var buf [8]byte
	copy(buf[:], data[:dataLen])

	f := Frame{
		NotErrorFlag:   notError,
		StartFrameFlag: start,
		MultiFrameFlag: multi,
		DeviceAddress:  deviceAddress,
		DataLen:        uint8(dataLen),
		Data:           buf,
	}

	if multi {
		if dataLen == 0 {
			return Frame{}, ErrFrameIDMissing
		}
		idValue := idNibble<<8 | uint16(buf[0])
		if start {
			f.FrameID = LastFrameID(idValue)
		} else {
			f.FrameID = CurrentFrameID(idValue)
		}
		return f, nil
	}

	return f.canonicalize(), nil
}

// --- byte-stream encoding ---
//
// byte 0 :  bit7 NOT_ERROR_FLAG, bit6 START_FRAME_FLAG, bit5 MULTI_FRAME_FLAG,
//           bit4 reserved, bits3..0 high nibble of frame_id
// byte 1 :  low byte of frame_id
// byte 2-3: device_address (big-endian)
// byte 4 :  data_len
// byte 5..: data

// EncodeByteStreamRecord renders f as the 5+DataLen-byte inner record
// described above, before COBS stuffing.
func EncodeByteStreamRecord(f Frame) []byte {
	if f.MultiFrameFlag && f.DataLen > 0 {
		f.Data[0] = byte(f.FrameID.Value())
	}

	record := make([]byte, 5+int(f.DataLen))
	if f.NotErrorFlag {
		record[0] |= 1 << 7
	}
	if f.StartFrameFlag {
		record[0] |= 1 << 6
	}
	if f.MultiFrameFlag {
		record[0] |= 1 << 5
	}
	record[0] |= byte((f.FrameID.Value() >> 8) & 0x0f)
	record[1] = byte(f.FrameID.Value())
	record[2] = byte(f.DeviceAddress >> 8)
	record[3] = byte(f.DeviceAddress)
	record[4] = f.DataLen
	copy(record[5:], f.Data[:f.DataLen])
	return record
}

// EncodeByteStream renders f as a COBS-encoded byte-stream frame. It
// does not add the 0x00 delimiter or length byte described in the
// delimiter framing — that framing is the transport's job, since it
// must be able to resynchronise independently of any one frame's
// encoding.
func EncodeByteStream(f Frame) []byte {
	return cobsEncode(EncodeByteStreamRecord(f))
}

// DecodeByteStream reverses EncodeByteStream: it COBS-decodes encoded,
// validates the inner record's self-reported size, and reconstructs a
// Frame.
func DecodeByteStream(encoded []byte) (Frame, error) {
	record, err := cobsDecode(encoded)
	if err != nil {
		return Frame{}, err
	}

	if len(record) < 5 || len(record) != int(record[4])+5 {
		return Frame{}, ErrFrameWrongSize
	}

	notError := record[0]&(1<<7) != 0
	start := record[0]&(1<<6) != 0
	multi := record[0]&(1<<5) != 0
	idNibble := uint16(record[0] & 0x0f)
	deviceAddress := uint16(record[2])<<8 | uint16(record[3])
	dataLen := record[4]

	var buf [8]byte
	copy(buf[:], record[5:5+int(dataLen)])

	f := Frame{
		NotErrorFlag:   notError,
		StartFrameFlag: start,
		MultiFrameFlag: multi,
		DeviceAddress:  deviceAddress,
		DataLen:        dataLen,
		Data:           buf,
	}

	idValue := idNibble<<8 | uint16(buf[0])
	if start {
		f.FrameID = LastFrameID(idValue)
	} else {
		f.FrameID = CurrentFrameID(idValue)
	}

	return f.canonicalize(), nil
}
