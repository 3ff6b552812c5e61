package ross

// ButtonPressedEvent is emitted by a button panel when one of its
// buttons is pressed.
type ButtonPressedEvent struct {
	ReceiverAddress uint16
	ButtonAddress   uint16
	Index           uint8
}

// DecodeButtonPressedEvent decodes a ButtonPressedEvent out of packet.
func DecodeButtonPressedEvent(packet *Packet) (ButtonPressedEvent, error) {
	if packet.IsError {
		return ButtonPressedEvent{}, ErrWrongType
	}
	if err := requireSize(packet.Data, 5); err != nil {
		return ButtonPressedEvent{}, err
	}
	if err := requireCode(packet.Data, ButtonPressedEventCode); err != nil {
		return ButtonPressedEvent{}, err
	}

	return ButtonPressedEvent{
		ReceiverAddress: packet.DeviceAddress,
		ButtonAddress:   uint16(packet.Data[2])<<8 | uint16(packet.Data[3]),
		Index:           packet.Data[4],
	}, nil
}

// ToPacket implements PacketEncoder.
func (e ButtonPressedEvent) ToPacket() Packet {
	return Packet{
		IsError:       false,
		DeviceAddress: e.ReceiverAddress,
		Data: []byte{
			byte(ButtonPressedEventCode >> 8), byte(ButtonPressedEventCode),
			byte(e.ButtonAddress >> 8), byte(e.ButtonAddress),
			e.Index,
		},
	}
}

// ButtonReleasedEvent is emitted by a button panel when one of its
// buttons is released.
type ButtonReleasedEvent struct {
	ReceiverAddress uint16
	ButtonAddress   uint16
	Index           uint8
}

// DecodeButtonReleasedEvent decodes a ButtonReleasedEvent out of packet.
func DecodeButtonReleasedEvent(packet *Packet) (ButtonReleasedEvent, error) {
	if packet.IsError {
		return ButtonReleasedEvent{}, ErrWrongType
	}
	if err := requireSize(packet.Data, 5); err != nil {
		return ButtonReleasedEvent{}, err
	}
	if err := requireCode(packet.Data, ButtonReleasedEventCode); err != nil {
		return ButtonReleasedEvent{}, err
	}

	return ButtonReleasedEvent{
		ReceiverAddress: packet.DeviceAddress,
		ButtonAddress:   uint16(packet.Data[2])<<8 | uint16(packet.Data[3]),
		Index:           packet.Data[4],
	}, nil
}

// ToPacket implements PacketEncoder.
func (e ButtonReleasedEvent) ToPacket() Packet {
	return Packet{
		IsError:       false,
		DeviceAddress: e.ReceiverAddress,
		Data: []byte{
			byte(ButtonReleasedEventCode >> 8), byte(ButtonReleasedEventCode),
			byte(e.ButtonAddress >> 8), byte(e.ButtonAddress),
			e.Index,
		},
	}
}
