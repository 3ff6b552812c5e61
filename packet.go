package ross

import "errors"

// Packet is the protocol's addressable unit of data: the thing handlers
// and the dispatcher deal in, assembled from (or split into) one or more
// Frames.
type Packet struct {
	// IsError marks this packet as carrying an error condition rather
	// than a normal event.
	IsError bool
	// DeviceAddress is the device address the packet carries. Events put
	// their receiver's address here (BroadcastAddress for broadcast
	// events), and a Dispatcher treats a packet carrying its own local
	// address or BroadcastAddress as addressed to it.
	DeviceAddress uint16
	// Data is the packet's payload, independent of any one frame's 8-byte
	// limit.
	Data []byte
}

// ToFrames splits p into the Frames that carry it over a Transport. A
// packet whose data fits in one frame (<=8 bytes) becomes a single
// non-multi frame; anything larger is split into 7-byte chunks (the
// first byte of every multi-frame frame carries the low byte of the
// frame id).
func (p Packet) ToFrames() []Frame {
	if len(p.Data) <= 8 {
		var data [8]byte
		copy(data[:], p.Data)

		return []Frame{{
			NotErrorFlag:   !p.IsError,
			StartFrameFlag: true,
			MultiFrameFlag: false,
			FrameID:        LastFrameID(0),
			DeviceAddress:  p.DeviceAddress,
			DataLen:        uint8(len(p.Data)),
			Data:           data,
		}}
	}

	frameCount := (len(p.Data)-1)/7 + 1
	frames := make([]Frame, 0, frameCount)

	for i := 0; i < frameCount; i++ {
		var dataLen int
		if i == frameCount-1 {
			if len(p.Data)%7 == 0 {
				dataLen = 8
			} else {
				dataLen = len(p.Data)%7 + 1
			}
		} else {
			dataLen = 8
		}

		var data [8]byte
		if i == 0 {
			data[0] = byte((frameCount - 1) & 0xff)
		} else {
			data[0] = byte(i & 0xff)
		}

		for j := 0; j < dataLen-1; j++ {
			data[j+1] = p.Data[i*7+j]
		}

		var frameID FrameID
		if i == 0 {
			frameID = LastFrameID(uint16(frameCount - 1))
		} else {
			frameID = CurrentFrameID(uint16(i))
		}

		frames = append(frames, Frame{
			NotErrorFlag:   !p.IsError,
			StartFrameFlag: i == 0,
			MultiFrameFlag: true,
			FrameID:        frameID,
			DeviceAddress:  p.DeviceAddress,
			DataLen:        uint8(dataLen),
			Data:           data,
		})
	}

	return frames
}

// PacketBuilder-level errors.
var (
	// ErrOutOfOrder is returned when a frame does not fit where the
	// builder expects it in the sequence.
	ErrOutOfOrder = errors.New("ross: frame is out of order")
	// ErrSingleFramePacket is returned when a multi-frame packet was
	// started but a later frame claims not to be part of one.
	ErrSingleFramePacket = errors.New("ross: expected a multi-frame packet, got a single frame")
	// ErrTooManyFrames is returned when a frame's id would exceed the
	// frame count announced by the packet's start frame.
	ErrTooManyFrames = errors.New("ross: packet has more frames than its start frame announced")
	// ErrWrongFrameType is returned when a frame's error flag disagrees
	// with the packet's.
	ErrWrongFrameType = errors.New("ross: frame error flag does not match the packet being built")
	// ErrDeviceAddressMismatch is returned when a frame's device address
	// disagrees with the packet's.
	ErrDeviceAddressMismatch = errors.New("ross: frame device address does not match the packet being built")
	// ErrMissingFrames is returned by Build when fewer frames have been
	// added than the start frame announced.
	ErrMissingFrames = errors.New("ross: packet is missing frames")
)

// PacketBuilder reassembles a Packet out of the Frames of a multi-frame
// transmission. A builder is single-use: construct one
// with NewPacketBuilder from a packet's start frame, feed it the
// remaining frames in order with AddFrame, and call Build once
// FramesLeft reaches zero.
type PacketBuilder struct {
	isError            bool
	expectedFrameCount uint16
	deviceAddress      uint16
	frames             []Frame
}

// NewPacketBuilder starts a PacketBuilder from a packet's first frame.
// frame must be a start frame carrying a LastFrameID; anything else is
// ErrOutOfOrder.
func NewPacketBuilder(frame Frame) (*PacketBuilder, error) {
	if !frame.StartFrameFlag {
		return nil, ErrOutOfOrder
	}
	if !frame.FrameID.IsLast() {
		return nil, ErrOutOfOrder
	}

	return &PacketBuilder{
		isError:            !frame.NotErrorFlag,
		expectedFrameCount: frame.FrameID.Value() + 1,
		deviceAddress:      frame.DeviceAddress,
		frames:             []Frame{frame},
	}, nil
}

// ExpectedFrameCount returns the total number of frames this builder's
// packet was announced to have.
func (b *PacketBuilder) ExpectedFrameCount() uint16 { return b.expectedFrameCount }

// FrameCount returns the number of frames added so far.
func (b *PacketBuilder) FrameCount() uint16 { return uint16(len(b.frames)) }

// FramesLeft returns how many more frames Build needs before it will
// succeed.
func (b *PacketBuilder) FramesLeft() uint16 { return b.expectedFrameCount - b.FrameCount() }

// AddFrame feeds the next frame of the packet being assembled into b. It
// must be a non-start frame carrying a CurrentFrameID equal to the
// number of frames already added, from the same device and with the same
// error flag as the builder's start frame.
func (b *PacketBuilder) AddFrame(frame Frame) error {
	if (!frame.NotErrorFlag) != b.isError {
		return ErrWrongFrameType
	}
	if frame.DeviceAddress != b.deviceAddress {
		return ErrDeviceAddressMismatch
	}
	if frame.StartFrameFlag {
		return ErrOutOfOrder
	}
	if !frame.MultiFrameFlag {
		return ErrSingleFramePacket
	}
	if frame.FrameID.IsLast() {
		return ErrOutOfOrder
	}

	frameID := frame.FrameID.Value()
	if frameID != uint16(len(b.frames)) {
		return ErrOutOfOrder
	}
	if frameID >= b.expectedFrameCount {
		return ErrTooManyFrames
	}

	b.frames = append(b.frames, frame)
	return nil
}

// Build assembles the accumulated frames into a Packet. It fails with
// ErrMissingFrames until exactly ExpectedFrameCount frames have been
// added.
func (b *PacketBuilder) Build() (Packet, error) {
	if len(b.frames) != int(b.expectedFrameCount) {
		return Packet{}, ErrMissingFrames
	}

	data := make([]byte, 0, len(b.frames)*8)
	for _, frame := range b.frames {
		start := uint8(0)
		if frame.MultiFrameFlag {
			start = 1
		}
		data = append(data, frame.Data[start:frame.DataLen]...)
	}

	return Packet{
		IsError:       b.isError,
		DeviceAddress: b.deviceAddress,
		Data:          data,
	}, nil
}
