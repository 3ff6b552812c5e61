package ross

// BcmValue is the closed, tagged payload of a brightness-control-module
// channel value. Decoders must reject a tag outside the
// three given here with ErrUnknownVariant — there is no raw byte
// reinterpretation of a Go value into wire bytes.
type BcmValue interface {
	encode() []byte
}

// BcmSingle is a single-channel brightness value (tag 0x00).
type BcmSingle struct {
	Value uint8
}

func (v BcmSingle) encode() []byte { return []byte{0x00, v.Value} }

// BcmRGB is a three-channel RGB brightness value (tag 0x01).
type BcmRGB struct {
	R, G, B uint8
}

func (v BcmRGB) encode() []byte { return []byte{0x01, v.R, v.G, v.B} }

// BcmRGBW is a four-channel RGBW brightness value (tag 0x02).
type BcmRGBW struct {
	R, G, B, W uint8
}

func (v BcmRGBW) encode() []byte { return []byte{0x02, v.R, v.G, v.B, v.W} }

// decodeBcmValue decodes a tagged BcmValue from data, which must hold
// exactly the bytes belonging to the value (it is always the last field
// of its event, so callers pass the remaining packet tail).
func decodeBcmValue(data []byte) (BcmValue, error) {
	if len(data) < 1 {
		return nil, ErrWrongSize
	}

	switch data[0] {
	case 0x00:
		if len(data) != 2 {
			return nil, ErrWrongSize
		}
		return BcmSingle{Value: data[1]}, nil
	case 0x01:
		if len(data) != 4 {
			return nil, ErrWrongSize
		}
		return BcmRGB{R: data[1], G: data[2], B: data[3]}, nil
	case 0x02:
		if len(data) != 5 {
			return nil, ErrWrongSize
		}
		return BcmRGBW{R: data[1], G: data[2], B: data[3], W: data[4]}, nil
	default:
		return nil, ErrUnknownVariant
	}
}

// BcmChangeBrightnessEvent sets a BCM channel to an immediate value.
type BcmChangeBrightnessEvent struct {
	ReceiverAddress    uint16
	TransmitterAddress uint16
	Index              uint8
	Value              BcmValue
}

// DecodeBcmChangeBrightnessEvent decodes a BcmChangeBrightnessEvent out
// of packet.
func DecodeBcmChangeBrightnessEvent(packet *Packet) (BcmChangeBrightnessEvent, error) {
	if packet.IsError {
		return BcmChangeBrightnessEvent{}, ErrWrongType
	}
	if err := requireMinSize(packet.Data, 6); err != nil {
		return BcmChangeBrightnessEvent{}, err
	}
	if err := requireCode(packet.Data, BcmChangeBrightnessEventCode); err != nil {
		return BcmChangeBrightnessEvent{}, err
	}

	value, err := decodeBcmValue(packet.Data[5:])
	if err != nil {
		return BcmChangeBrightnessEvent{}, err
	}

	return BcmChangeBrightnessEvent{
		ReceiverAddress:    packet.DeviceAddress,
		TransmitterAddress: uint16(packet.Data[2])<<8 | uint16(packet.Data[3]),
		Index:              packet.Data[4],
		Value:              value,
	}, nil
}

// ToPacket implements PacketEncoder.
func (e BcmChangeBrightnessEvent) ToPacket() Packet {
	data := []byte{
		byte(BcmChangeBrightnessEventCode >> 8), byte(BcmChangeBrightnessEventCode),
		byte(e.TransmitterAddress >> 8), byte(e.TransmitterAddress),
		e.Index,
	}
	data = append(data, e.Value.encode()...)

	return Packet{
		IsError:       false,
		DeviceAddress: e.ReceiverAddress,
		Data:          data,
	}
}

// BcmAnimateBrightnessEvent animates a BCM channel from its current
// value to target over duration milliseconds.
type BcmAnimateBrightnessEvent struct {
	ReceiverAddress    uint16
	TransmitterAddress uint16
	Index              uint8
	Duration           uint32
	Target             BcmValue
}

// DecodeBcmAnimateBrightnessEvent decodes a BcmAnimateBrightnessEvent out
// of packet.
func DecodeBcmAnimateBrightnessEvent(packet *Packet) (BcmAnimateBrightnessEvent, error) {
	if packet.IsError {
		return BcmAnimateBrightnessEvent{}, ErrWrongType
	}
	if err := requireMinSize(packet.Data, 10); err != nil {
		return BcmAnimateBrightnessEvent{}, err
	}
	if err := requireCode(packet.Data, BcmAnimateBrightnessEventCode); err != nil {
		return BcmAnimateBrightnessEvent{}, err
	}

	target, err := decodeBcmValue(packet.Data[9:])
	if err != nil {
		return BcmAnimateBrightnessEvent{}, err
	}

	return BcmAnimateBrightnessEvent{
		ReceiverAddress:    packet.DeviceAddress,
		TransmitterAddress: uint16(packet.Data[2])<<8 | uint16(packet.Data[3]),
		Index:              packet.Data[4],
		Duration:           uint32(packet.Data[5])<<24 | uint32(packet.Data[6])<<16 | uint32(packet.Data[7])<<8 | uint32(packet.Data[8]),
		Target:             target,
	}, nil
}

// ToPacket implements PacketEncoder.
func (e BcmAnimateBrightnessEvent) ToPacket() Packet {
	data := []byte{
		byte(BcmAnimateBrightnessEventCode >> 8), byte(BcmAnimateBrightnessEventCode),
		byte(e.TransmitterAddress >> 8), byte(e.TransmitterAddress),
		e.Index,
		byte(e.Duration >> 24), byte(e.Duration >> 16), byte(e.Duration >> 8), byte(e.Duration),
	}
	data = append(data, e.Target.encode()...)

	return Packet{
		IsError:       false,
		DeviceAddress: e.ReceiverAddress,
		Data:          data,
	}
}
