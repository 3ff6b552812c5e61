package ross

// BootloaderHelloEvent is announced by a device's bootloader to the
// programmer that addressed it.
type BootloaderHelloEvent struct {
	ProgrammerAddress uint16
	BootloaderAddress uint16
}

// DecodeBootloaderHelloEvent decodes a BootloaderHelloEvent out of packet.
func DecodeBootloaderHelloEvent(packet *Packet) (BootloaderHelloEvent, error) {
	if packet.IsError {
		return BootloaderHelloEvent{}, ErrWrongType
	}
	if err := requireSize(packet.Data, 4); err != nil {
		return BootloaderHelloEvent{}, err
	}
	if err := requireCode(packet.Data, BootloaderHelloEventCode); err != nil {
		return BootloaderHelloEvent{}, err
	}

	return BootloaderHelloEvent{
		ProgrammerAddress: packet.DeviceAddress,
		BootloaderAddress: uint16(packet.Data[2])<<8 | uint16(packet.Data[3]),
	}, nil
}

// ToPacket implements PacketEncoder.
func (e BootloaderHelloEvent) ToPacket() Packet {
	return Packet{
		IsError:       false,
		DeviceAddress: e.ProgrammerAddress,
		Data: []byte{
			byte(BootloaderHelloEventCode >> 8), byte(BootloaderHelloEventCode),
			byte(e.BootloaderAddress >> 8), byte(e.BootloaderAddress),
		},
	}
}
