package ross

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// fakeTransport is an in-memory Transport for dispatcher tests: inbound
// holds packets waiting to be returned by TryGetPacket, sent records
// every packet handed to TrySendPacket.
type fakeTransport struct {
	inbound []Packet
	sent    []Packet
}

func (t *fakeTransport) TryGetPacket() (Packet, error) {
	if len(t.inbound) == 0 {
		return Packet{}, ErrNoPacketReceived
	}
	packet := t.inbound[0]
	t.inbound = t.inbound[1:]
	return packet, nil
}

func (t *fakeTransport) TrySendPacket(packet *Packet) error {
	t.sent = append(t.sent, *packet)
	return nil
}

func TestDispatcherTickDeliversOwnedPacketToAllHandlers(t *testing.T) {
	transport := &fakeTransport{inbound: []Packet{{DeviceAddress: 0x0001}}}
	d := NewDispatcher(0x0001, transport)

	var calls []bool
	d.AddPacketHandler(func(p *Packet, d *Dispatcher) { calls = append(calls, false) }, false)
	d.AddPacketHandler(func(p *Packet, d *Dispatcher) { calls = append(calls, true) }, true)

	assert.NoError(t, d.Tick())
	assert.Len(t, calls, 2)
}

func TestDispatcherTickOnlyCaptureAllHandlersSeeUnownedPacket(t *testing.T) {
	transport := &fakeTransport{inbound: []Packet{{DeviceAddress: 0x9999}}}
	d := NewDispatcher(0x0001, transport)

	ownedSeen, allSeen := false, false
	d.AddPacketHandler(func(p *Packet, d *Dispatcher) { ownedSeen = true }, false)
	d.AddPacketHandler(func(p *Packet, d *Dispatcher) { allSeen = true }, true)

	assert.NoError(t, d.Tick())
	assert.False(t, ownedSeen)
	assert.True(t, allSeen)
}

func TestDispatcherTickNoPacketIsNotAnError(t *testing.T) {
	transport := &fakeTransport{}
	d := NewDispatcher(0x0001, transport)
	assert.NoError(t, d.Tick())
}

func TestDispatcherHandlerIDsAreLowestUnused(t *testing.T) {
	d := NewDispatcher(0x0001, &fakeTransport{})

	noop := func(p *Packet, d *Dispatcher) {}
	id0 := d.AddPacketHandler(noop, false)
	id1 := d.AddPacketHandler(noop, false)
	id2 := d.AddPacketHandler(noop, false)
	assert.Equal(t, []uint32{0, 1, 2}, []uint32{id0, id1, id2})

	assert.NoError(t, d.RemovePacketHandler(id1))
	id3 := d.AddPacketHandler(noop, false)
	assert.Equal(t, uint32(1), id3)
}

func TestDispatcherRemoveUnknownHandler(t *testing.T) {
	d := NewDispatcher(0x0001, &fakeTransport{})
	assert.ErrorIs(t, d.RemovePacketHandler(42), ErrNoSuchHandler)
}

func TestDispatcherSendPacketLoopback(t *testing.T) {
	transport := &fakeTransport{}
	d := NewDispatcher(0x0001, transport)

	calls := 0
	d.AddPacketHandler(func(p *Packet, d *Dispatcher) { calls++ }, false)

	packet := &Packet{DeviceAddress: 0x0001}
	assert.NoError(t, d.SendPacket(packet))
	assert.Equal(t, 1, calls)
	assert.Empty(t, transport.sent)
}

func TestDispatcherSendPacketBroadcastDeliversAndTransmits(t *testing.T) {
	transport := &fakeTransport{}
	d := NewDispatcher(0x0001, transport)

	calls := 0
	d.AddPacketHandler(func(p *Packet, d *Dispatcher) { calls++ }, false)

	packet := &Packet{DeviceAddress: BroadcastAddress}
	assert.NoError(t, d.SendPacket(packet))
	assert.Equal(t, 1, calls)
	assert.Len(t, transport.sent, 1)
}

func TestDispatcherSendPacketToOtherDeviceOnlyTransmits(t *testing.T) {
	transport := &fakeTransport{}
	d := NewDispatcher(0x0001, transport)

	calls := 0
	d.AddPacketHandler(func(p *Packet, d *Dispatcher) { calls++ }, false)

	packet := &Packet{DeviceAddress: 0xabab}
	assert.NoError(t, d.SendPacket(packet))
	assert.Equal(t, 0, calls)
	assert.Len(t, transport.sent, 1)
}

func TestDispatcherHandlerCanReentrantlySend(t *testing.T) {
	transport := &fakeTransport{}
	d := NewDispatcher(0x0001, transport)

	var replySeen bool
	d.AddPacketHandler(func(p *Packet, d *Dispatcher) {
		if p.DeviceAddress == BroadcastAddress {
			return // the broadcast reply is delivered here too; answering it again would loop
		}
		assert.NoError(t, d.SendPacket(&Packet{DeviceAddress: BroadcastAddress}))
	}, false)
	d.AddPacketHandler(func(p *Packet, d *Dispatcher) { replySeen = true }, true)

	assert.NoError(t, d.SendPacket(&Packet{DeviceAddress: 0x0001}))
	assert.True(t, replySeen)
	assert.Len(t, transport.sent, 1)
}

func TestDispatcherHandlerRegistrationDuringDispatchAppliesNextRound(t *testing.T) {
	transport := &fakeTransport{inbound: []Packet{{DeviceAddress: 0x0001}, {DeviceAddress: 0x0001}}}
	d := NewDispatcher(0x0001, transport)

	var lateCalls int
	d.AddPacketHandler(func(p *Packet, d *Dispatcher) {
		d.AddPacketHandler(func(p *Packet, d *Dispatcher) { lateCalls++ }, false)
	}, false)

	assert.NoError(t, d.Tick())
	assert.Equal(t, 0, lateCalls)

	assert.NoError(t, d.Tick())
	assert.Equal(t, 1, lateCalls)
}

func TestDispatcherHandlerRemovalDuringDispatchAppliesNextRound(t *testing.T) {
	transport := &fakeTransport{inbound: []Packet{{DeviceAddress: 0x0001}, {DeviceAddress: 0x0001}}}
	d := NewDispatcher(0x0001, transport)

	var calls int
	var victimID uint32
	removed := false
	d.AddPacketHandler(func(p *Packet, d *Dispatcher) {
		if !removed {
			removed = true
			assert.NoError(t, d.RemovePacketHandler(victimID))
		}
	}, false)
	victimID = d.AddPacketHandler(func(p *Packet, d *Dispatcher) { calls++ }, false)

	assert.NoError(t, d.Tick())
	assert.Equal(t, 1, calls) // still ran this round

	assert.NoError(t, d.Tick())
	assert.Equal(t, 1, calls) // gone by the second round
}

func TestExchangePacketReturnsFirstMatch(t *testing.T) {
	transport := &fakeTransport{
		inbound: []Packet{
			{DeviceAddress: 0xabab, Data: []byte{0x00, 0x04, 0x01, 0x23, 0x00, 0x00}}, // unrelated DATA
			AckEvent{ReceiverAddress: 0xabab, TransmitterAddress: 0x0001}.ToPacket(),
		},
	}
	d := NewDispatcher(0x0001, transport)

	req := ProgrammerHelloEvent{ProgrammerAddress: 0x0001}
	got, err := ExchangePacket(d, req, true, func() {}, DecodeAckEvent)
	assert.NoError(t, err)
	assert.Equal(t, AckEvent{ReceiverAddress: 0xabab, TransmitterAddress: 0x0001}, got)
}

func TestExchangePacketTimeout(t *testing.T) {
	transport := &fakeTransport{}
	d := NewDispatcher(0x0001, transport)

	req := ProgrammerHelloEvent{ProgrammerAddress: 0x0001}
	_, err := ExchangePacket(d, req, true, func() {}, DecodeAckEvent)
	assert.ErrorIs(t, err, ErrPacketTimeout)
}

func TestExchangePacketsCollectsAllMatches(t *testing.T) {
	transport := &fakeTransport{
		inbound: []Packet{
			AckEvent{ReceiverAddress: 0xabab, TransmitterAddress: 0x0001}.ToPacket(),
			AckEvent{ReceiverAddress: 0xcdcd, TransmitterAddress: 0x0001}.ToPacket(),
		},
	}
	d := NewDispatcher(0x0001, transport)

	req := ProgrammerHelloEvent{ProgrammerAddress: 0x0001}
	got, err := ExchangePackets(d, req, true, func() {}, DecodeAckEvent)
	assert.NoError(t, err)
	assert.Len(t, got, 2)
}
