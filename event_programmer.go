package ross

// ProgrammerHelloEvent is announced by a programmer to every device on
// the bus. It is always sent to
// BroadcastAddress.
type ProgrammerHelloEvent struct {
	ProgrammerAddress uint16
}

// DecodeProgrammerHelloEvent decodes a ProgrammerHelloEvent out of packet.
func DecodeProgrammerHelloEvent(packet *Packet) (ProgrammerHelloEvent, error) {
	if packet.IsError {
		return ProgrammerHelloEvent{}, ErrWrongType
	}
	if err := requireSize(packet.Data, 4); err != nil {
		return ProgrammerHelloEvent{}, err
	}
	if err := requireCode(packet.Data, ProgrammerHelloEventCode); err != nil {
		return ProgrammerHelloEvent{}, err
	}

	return ProgrammerHelloEvent{
		ProgrammerAddress: uint16(packet.Data[2])<<8 | uint16(packet.Data[3]),
	}, nil
}

// ToPacket implements PacketEncoder.
func (e ProgrammerHelloEvent) ToPacket() Packet {
	return Packet{
		IsError:       false,
		DeviceAddress: BroadcastAddress,
		Data: []byte{
			byte(ProgrammerHelloEventCode >> 8), byte(ProgrammerHelloEventCode),
			byte(e.ProgrammerAddress >> 8), byte(e.ProgrammerAddress),
		},
	}
}

// ProgrammerStartFirmwareUpgradeEvent tells a device to enter its
// bootloader's firmware upgrade flow.
type ProgrammerStartFirmwareUpgradeEvent struct {
	ReceiverAddress   uint16
	ProgrammerAddress uint16
	FirmwareSize      uint32
}

// DecodeProgrammerStartFirmwareUpgradeEvent decodes a
// ProgrammerStartFirmwareUpgradeEvent out of packet.
func DecodeProgrammerStartFirmwareUpgradeEvent(packet *Packet) (ProgrammerStartFirmwareUpgradeEvent, error) {
	if packet.IsError {
		return ProgrammerStartFirmwareUpgradeEvent{}, ErrWrongType
	}
	if err := requireSize(packet.Data, 8); err != nil {
		return ProgrammerStartFirmwareUpgradeEvent{}, err
	}
	if err := requireCode(packet.Data, ProgrammerStartFirmwareUpgradeEventCode); err != nil {
		return ProgrammerStartFirmwareUpgradeEvent{}, err
	}

	return ProgrammerStartFirmwareUpgradeEvent{
		ReceiverAddress:   packet.DeviceAddress,
		ProgrammerAddress: uint16(packet.Data[2])<<8 | uint16(packet.Data[3]),
		FirmwareSize:      uint32(packet.Data[4])<<24 | uint32(packet.Data[5])<<16 | uint32(packet.Data[6])<<8 | uint32(packet.Data[7]),
	}, nil
}

// ToPacket implements PacketEncoder.
func (e ProgrammerStartFirmwareUpgradeEvent) ToPacket() Packet {
	return Packet{
		IsError:       false,
		DeviceAddress: e.ReceiverAddress,
		Data: []byte{
			byte(ProgrammerStartFirmwareUpgradeEventCode >> 8), byte(ProgrammerStartFirmwareUpgradeEventCode),
			byte(e.ProgrammerAddress >> 8), byte(e.ProgrammerAddress),
			byte(e.FirmwareSize >> 24), byte(e.FirmwareSize >> 16), byte(e.FirmwareSize >> 8), byte(e.FirmwareSize),
		},
	}
}

// ProgrammerStartConfigUpgradeEvent tells a device to enter its
// bootloader's configuration upgrade flow.
type ProgrammerStartConfigUpgradeEvent struct {
	ReceiverAddress   uint16
	ProgrammerAddress uint16
	ConfigSize        uint32
}

// DecodeProgrammerStartConfigUpgradeEvent decodes a
// ProgrammerStartConfigUpgradeEvent out of packet.
func DecodeProgrammerStartConfigUpgradeEvent(packet *Packet) (ProgrammerStartConfigUpgradeEvent, error) {
	if packet.IsError {
		return ProgrammerStartConfigUpgradeEvent{}, ErrWrongType
	}
	if err := requireSize(packet.Data, 8); err != nil {
		return ProgrammerStartConfigUpgradeEvent{}, err
	}
	if err := requireCode(packet.Data, ProgrammerStartConfigUpgradeEventCode); err != nil {
		return ProgrammerStartConfigUpgradeEvent{}, err
	}

	return ProgrammerStartConfigUpgradeEvent{
		ReceiverAddress:   packet.DeviceAddress,
		ProgrammerAddress: uint16(packet.Data[2])<<8 | uint16(packet.Data[3]),
		ConfigSize:        uint32(packet.Data[4])<<24 | uint32(packet.Data[5])<<16 | uint32(packet.Data[6])<<8 | uint32(packet.Data[7]),
	}, nil
}

// ToPacket implements PacketEncoder.
func (e ProgrammerStartConfigUpgradeEvent) ToPacket() Packet {
	return Packet{
		IsError:       false,
		DeviceAddress: e.ReceiverAddress,
		Data: []byte{
			byte(ProgrammerStartConfigUpgradeEventCode >> 8), byte(ProgrammerStartConfigUpgradeEventCode),
			byte(e.ProgrammerAddress >> 8), byte(e.ProgrammerAddress),
			byte(e.ConfigSize >> 24), byte(e.ConfigSize >> 16), byte(e.ConfigSize >> 8), byte(e.ConfigSize),
		},
	}
}

// ProgrammerSetDeviceAddressEvent reassigns a device's bus address. The
// programmer addresses the device by its current address and supplies
// the new one.
type ProgrammerSetDeviceAddressEvent struct {
	ReceiverAddress   uint16
	ProgrammerAddress uint16
	NewAddress        uint16
}

// DecodeProgrammerSetDeviceAddressEvent decodes a
// ProgrammerSetDeviceAddressEvent out of packet.
func DecodeProgrammerSetDeviceAddressEvent(packet *Packet) (ProgrammerSetDeviceAddressEvent, error) {
	if packet.IsError {
		return ProgrammerSetDeviceAddressEvent{}, ErrWrongType
	}
	if err := requireSize(packet.Data, 6); err != nil {
		return ProgrammerSetDeviceAddressEvent{}, err
	}
	if err := requireCode(packet.Data, ProgrammerSetDeviceAddressEventCode); err != nil {
		return ProgrammerSetDeviceAddressEvent{}, err
	}

	return ProgrammerSetDeviceAddressEvent{
		ReceiverAddress:   packet.DeviceAddress,
		ProgrammerAddress: uint16(packet.Data[2])<<8 | uint16(packet.Data[3]),
		NewAddress:        uint16(packet.Data[4])<<8 | uint16(packet.Data[5]),
	}, nil
}

// ToPacket implements PacketEncoder.
func (e ProgrammerSetDeviceAddressEvent) ToPacket() Packet {
	return Packet{
		IsError:       false,
		DeviceAddress: e.ReceiverAddress,
		Data: []byte{
			byte(ProgrammerSetDeviceAddressEventCode >> 8), byte(ProgrammerSetDeviceAddressEventCode),
			byte(e.ProgrammerAddress >> 8), byte(e.ProgrammerAddress),
			byte(e.NewAddress >> 8), byte(e.NewAddress),
		},
	}
}
