package ross

// RelayValue is the closed, tag-only state of a relay channel. Unlike
// BcmValue and MessageValue it carries no payload beyond
// its own byte: the tag *is* the wire value, which is also the "state"
// byte named by the RELAY_SET_STATE payload table.
type RelayValue uint8

// The closed set of RelayValue tags.
const (
	RelaySingleOn        RelayValue = 0x00
	RelaySingleOff       RelayValue = 0x01
	RelayDoubleFirstOn   RelayValue = 0x02
	RelayDoubleSecondOn  RelayValue = 0x03
	RelayDoubleNeitherOn RelayValue = 0x04
)

// decodeRelayValue validates that b is one of the closed RelayValue
// tags.
func decodeRelayValue(b byte) (RelayValue, error) {
	switch RelayValue(b) {
	case RelaySingleOn, RelaySingleOff, RelayDoubleFirstOn, RelayDoubleSecondOn, RelayDoubleNeitherOn:
		return RelayValue(b), nil
	default:
		return 0, ErrUnknownVariant
	}
}

// RelaySetStateEvent sets a relay channel to an explicit state.
type RelaySetStateEvent struct {
	ReceiverAddress    uint16
	TransmitterAddress uint16
	Index              uint8
	State              RelayValue
}

// DecodeRelaySetStateEvent decodes a RelaySetStateEvent out of packet.
func DecodeRelaySetStateEvent(packet *Packet) (RelaySetStateEvent, error) {
	if packet.IsError {
		return RelaySetStateEvent{}, ErrWrongType
	}
	if err := requireSize(packet.Data, 6); err != nil {
		return RelaySetStateEvent{}, err
	}
	if err := requireCode(packet.Data, RelaySetStateEventCode); err != nil {
		return RelaySetStateEvent{}, err
	}

	state, err := decodeRelayValue(packet.Data[5])
	if err != nil {
		return RelaySetStateEvent{}, err
	}

	return RelaySetStateEvent{
		ReceiverAddress:    packet.DeviceAddress,
		TransmitterAddress: uint16(packet.Data[2])<<8 | uint16(packet.Data[3]),
		Index:              packet.Data[4],
		State:              state,
	}, nil
}

// ToPacket implements PacketEncoder.
func (e RelaySetStateEvent) ToPacket() Packet {
	return Packet{
		IsError:       false,
		DeviceAddress: e.ReceiverAddress,
		Data: []byte{
			byte(RelaySetStateEventCode >> 8), byte(RelaySetStateEventCode),
			byte(e.TransmitterAddress >> 8), byte(e.TransmitterAddress),
			e.Index,
			byte(e.State),
		},
	}
}

// RelayFlipStateEvent toggles a relay channel's current state.
type RelayFlipStateEvent struct {
	ReceiverAddress    uint16
	TransmitterAddress uint16
	Index              uint8
}

// DecodeRelayFlipStateEvent decodes a RelayFlipStateEvent out of packet.
func DecodeRelayFlipStateEvent(packet *Packet) (RelayFlipStateEvent, error) {
	if packet.IsError {
		return RelayFlipStateEvent{}, ErrWrongType
	}
	if err := requireSize(packet.Data, 5); err != nil {
		return RelayFlipStateEvent{}, err
	}
	if err := requireCode(packet.Data, RelayFlipStateEventCode); err != nil {
		return RelayFlipStateEvent{}, err
	}

	return RelayFlipStateEvent{
		ReceiverAddress:    packet.DeviceAddress,
		TransmitterAddress: uint16(packet.Data[2])<<8 | uint16(packet.Data[3]),
		Index:              packet.Data[4],
	}, nil
}

// ToPacket implements PacketEncoder.
func (e RelayFlipStateEvent) ToPacket() Packet {
	return Packet{
		IsError:       false,
		DeviceAddress: e.ReceiverAddress,
		Data: []byte{
			byte(RelayFlipStateEventCode >> 8), byte(RelayFlipStateEventCode),
			byte(e.TransmitterAddress >> 8), byte(e.TransmitterAddress),
			e.Index,
		},
	}
}
