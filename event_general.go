package ross

// AckEvent is a plain acknowledgement sent back to the device that
// issued a request.
type AckEvent struct {
	ReceiverAddress    uint16
	TransmitterAddress uint16
}

// DecodeAckEvent decodes an AckEvent out of packet.
func DecodeAckEvent(packet *Packet) (AckEvent, error) {
	if packet.IsError {
		return AckEvent{}, ErrWrongType
	}
	if err := requireSize(packet.Data, 4); err != nil {
		return AckEvent{}, err
	}
	if err := requireCode(packet.Data, AckEventCode); err != nil {
		return AckEvent{}, err
	}

	return AckEvent{
		ReceiverAddress:    packet.DeviceAddress,
		TransmitterAddress: uint16(packet.Data[2])<<8 | uint16(packet.Data[3]),
	}, nil
}

// ToPacket implements PacketEncoder.
func (e AckEvent) ToPacket() Packet {
	return Packet{
		IsError:       false,
		DeviceAddress: e.ReceiverAddress,
		Data: []byte{
			byte(AckEventCode >> 8), byte(AckEventCode),
			byte(e.TransmitterAddress >> 8), byte(e.TransmitterAddress),
		},
	}
}

// DataEvent carries an opaque, self-length-prefixed byte payload between
// devices.
type DataEvent struct {
	ReceiverAddress    uint16
	TransmitterAddress uint16
	Data               []byte
}

// DecodeDataEvent decodes a DataEvent out of packet. The
// packet's declared data_len field (bytes 4..=5) must agree with the
// number of payload bytes actually present.
func DecodeDataEvent(packet *Packet) (DataEvent, error) {
	if packet.IsError {
		return DataEvent{}, ErrWrongType
	}
	if err := requireMinSize(packet.Data, 6); err != nil {
		return DataEvent{}, err
	}
	if err := requireCode(packet.Data, DataEventCode); err != nil {
		return DataEvent{}, err
	}

	dataLen := int(packet.Data[4])<<8 | int(packet.Data[5])
	if len(packet.Data) != dataLen+6 {
		return DataEvent{}, ErrWrongSize
	}

	data := make([]byte, dataLen)
	copy(data, packet.Data[6:])

	return DataEvent{
		ReceiverAddress:    packet.DeviceAddress,
		TransmitterAddress: uint16(packet.Data[2])<<8 | uint16(packet.Data[3]),
		Data:               data,
	}, nil
}

// ToPacket implements PacketEncoder.
func (e DataEvent) ToPacket() Packet {
	dataLen := uint16(len(e.Data))

	data := make([]byte, 0, 6+len(e.Data))
	data = append(data,
		byte(DataEventCode>>8), byte(DataEventCode),
		byte(e.TransmitterAddress>>8), byte(e.TransmitterAddress),
		byte(dataLen>>8), byte(dataLen),
	)
	data = append(data, e.Data...)

	return Packet{
		IsError:       false,
		DeviceAddress: e.ReceiverAddress,
		Data:          data,
	}
}
