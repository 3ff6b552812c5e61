package ross

// ConfiguratorHelloEvent is announced by a configurator tool to every
// device on the bus. It carries no
// payload beyond its event code and is always sent to BroadcastAddress.
type ConfiguratorHelloEvent struct{}

// DecodeConfiguratorHelloEvent decodes a ConfiguratorHelloEvent out of
// packet.
func DecodeConfiguratorHelloEvent(packet *Packet) (ConfiguratorHelloEvent, error) {
	if packet.IsError {
		return ConfiguratorHelloEvent{}, ErrWrongType
	}
	if err := requireSize(packet.Data, 2); err != nil {
		return ConfiguratorHelloEvent{}, err
	}
	if err := requireCode(packet.Data, ConfiguratorHelloEventCode); err != nil {
		return ConfiguratorHelloEvent{}, err
	}

	return ConfiguratorHelloEvent{}, nil
}

// ToPacket implements PacketEncoder.
func (e ConfiguratorHelloEvent) ToPacket() Packet {
	return Packet{
		IsError:       false,
		DeviceAddress: BroadcastAddress,
		Data:          []byte{byte(ConfiguratorHelloEventCode >> 8), byte(ConfiguratorHelloEventCode)},
	}
}
