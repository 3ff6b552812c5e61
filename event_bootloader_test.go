package ross

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBootloaderHelloEventRoundTrip(t *testing.T) {
	e := BootloaderHelloEvent{ProgrammerAddress: 0xabab, BootloaderAddress: 0x0123}
	packet := e.ToPacket()
	assert.Equal(t, uint16(0xabab), packet.DeviceAddress)

	got, err := DecodeBootloaderHelloEvent(&packet)
	assert.NoError(t, err)
	assert.Equal(t, e, got)
}

func TestDecodeBootloaderHelloEventWrongSize(t *testing.T) {
	packet := &Packet{Data: []byte{0x00, 0x00, 0x01}}
	_, err := DecodeBootloaderHelloEvent(packet)
	assert.ErrorIs(t, err, ErrWrongSize)
}

func TestDecodeBootloaderHelloEventWrongType(t *testing.T) {
	packet := &Packet{IsError: true, Data: []byte{0x00, 0x00, 0x01, 0x23}}
	_, err := DecodeBootloaderHelloEvent(packet)
	assert.ErrorIs(t, err, ErrWrongType)
}

func TestDecodeBootloaderHelloEventWrongEventType(t *testing.T) {
	packet := &Packet{Data: []byte{0x00, 0x01, 0x01, 0x23}}
	_, err := DecodeBootloaderHelloEvent(packet)
	assert.ErrorIs(t, err, ErrWrongEventType)
}
