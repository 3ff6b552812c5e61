package ross

import (
	"errors"
	"sort"
)

// Dispatcher-level errors.
var (
	// ErrNoSuchHandler is returned by RemovePacketHandler for an id that
	// is not currently registered.
	ErrNoSuchHandler = errors.New("ross: no handler registered with this id")
	// ErrPacketTimeout is returned by ExchangePacket/ExchangePackets when
	// the post-send drain completes without a matching reply.
	ErrPacketTimeout = errors.New("ross: no matching reply received")
)

// Handler is called once per dispatched packet a Dispatcher delivers
// locally. It receives the dispatcher itself so it may call back into
// it (SendPacket in particular) to answer what it just received;
// re-entrant sends are supported.
type Handler func(packet *Packet, d *Dispatcher)

type handlerEntry struct {
	handler    Handler
	captureAll bool
}

type pendingOp struct {
	id uint32
}

// Dispatcher is the single-threaded, cooperative, address-filtered
// receive loop built over a Transport. All of its state — the handler
// registry and whatever PacketBuilder state its Transport owns — belongs
// exclusively to one Dispatcher instance; there is no internal locking
// and no background goroutine. The caller drives it with Tick and the
// Exchange* functions.
type Dispatcher struct {
	localAddress uint16
	transport    Transport

	handlers map[uint32]handlerEntry

	dispatchDepth int
	pending       []pendingOp
}

// NewDispatcher creates a Dispatcher for localAddress, driving transport.
func NewDispatcher(localAddress uint16, transport Transport) *Dispatcher {
	return &Dispatcher{
		localAddress: localAddress,
		transport:    transport,
		handlers:     make(map[uint32]handlerEntry),
	}
}

// AddPacketHandler registers handler and returns its id: the lowest
// non-negative integer not currently in use. If called from within a
// handler during dispatch, the registration takes effect starting with
// the next Tick/SendPacket round, not the one in progress.
func (d *Dispatcher) AddPacketHandler(handler Handler, captureAll bool) uint32 {
	id := d.nextHandlerID()
	// Safe to insert immediately even while dispatching: dispatch takes
	// a snapshot of handler ids before it starts calling any of them, so
	// a newly inserted id is simply absent from the round in progress.
	d.handlers[id] = handlerEntry{handler: handler, captureAll: captureAll}
	return id
}

// RemovePacketHandler unregisters the handler with id. Like
// AddPacketHandler, a removal requested from within a handler takes
// effect starting with the next round; the handler being removed still
// runs for the remainder of the current round if it was already due.
func (d *Dispatcher) RemovePacketHandler(id uint32) error {
	if _, ok := d.handlers[id]; !ok {
		return ErrNoSuchHandler
	}

	if d.dispatchDepth > 0 {
		d.pending = append(d.pending, pendingOp{id: id})
		return nil
	}

	delete(d.handlers, id)
	return nil
}

// nextHandlerID returns the lowest non-negative integer not present in
// d.handlers.
func (d *Dispatcher) nextHandlerID() uint32 {
	ids := make([]uint32, 0, len(d.handlers))
	for id := range d.handlers {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var next uint32
	for _, id := range ids {
		if id != next {
			break
		}
		next++
	}
	return next
}

// Tick drives one iteration of the receive loop: it asks the Transport
// for one packet and, if one is available, dispatches it to every
// handler whose CaptureAll flag is set, plus (if the packet's address
// is owned by this dispatcher) every other handler too.
// ErrNoPacketReceived is a normal empty tick, not an error.
func (d *Dispatcher) Tick() error {
	packet, err := d.transport.TryGetPacket()
	if err != nil {
		if errors.Is(err, ErrNoPacketReceived) {
			return nil
		}
		return err
	}

	owned := packet.DeviceAddress == d.localAddress || IsBroadcast(packet.DeviceAddress)
	d.dispatch(&packet, owned)
	return nil
}

// SendPacket delivers packet. A packet addressed to this dispatcher's
// own local address is delivered to local handlers only — it is not put
// on the wire. A broadcast packet is both delivered locally and
// transmitted. Anything else is transmitted only.
func (d *Dispatcher) SendPacket(packet *Packet) error {
	switch {
	case IsBroadcast(packet.DeviceAddress):
		d.dispatch(packet, true)
		return d.transport.TrySendPacket(packet)
	case packet.DeviceAddress == d.localAddress:
		d.dispatch(packet, true)
		return nil
	default:
		return d.transport.TrySendPacket(packet)
	}
}

// dispatch invokes every handler whose CaptureAll flag is set, plus
// every other handler when owned is true, in ascending handler-id
// order. A removal requested by a handler during this call is queued and
// applied once the round finishes; a handler added during this call is
// inserted at once but is absent from the id snapshot taken at the start
// of the round. Either way the traversal in progress is not disturbed.
// dispatchDepth tracks reentrant calls (a handler
// calling SendPacket, which dispatches again before returning) so that
// pending mutations are only applied once the outermost round unwinds.
func (d *Dispatcher) dispatch(packet *Packet, owned bool) {
	d.dispatchDepth++
	defer func() { d.dispatchDepth-- }()

	ids := make([]uint32, 0, len(d.handlers))
	for id := range d.handlers {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		entry, ok := d.handlers[id]
		if !ok {
			continue // defensive: removals during a round are queued, so snapshotted ids stay present
		}
		if entry.captureAll || owned {
			entry.handler(packet, d)
		}
	}

	if d.dispatchDepth == 1 {
		d.applyPending()
	}
}

func (d *Dispatcher) applyPending() {
	pending := d.pending
	d.pending = nil

	for _, op := range pending {
		delete(d.handlers, op.id)
	}
}

// ExchangePacket sends req, calls waitFn once, then drains the
// Transport for a reply decodable by decode, returning the first match.
// There is no internal retry: one transmit, one wait, one drain, per
// the pinned exchange behaviour — callers who need retries compose
// ExchangePacket themselves.
func ExchangePacket[T any](d *Dispatcher, req PacketEncoder, captureAll bool, waitFn func(), decode func(*Packet) (T, error)) (T, error) {
	var zero T

	packet := req.ToPacket()
	if err := d.SendPacket(&packet); err != nil {
		return zero, err
	}

	waitFn()

	for {
		received, err := d.transport.TryGetPacket()
		if err != nil {
			if errors.Is(err, ErrNoPacketReceived) {
				return zero, ErrPacketTimeout
			}
			return zero, err
		}

		if !captureAll && received.DeviceAddress != d.localAddress && !IsBroadcast(received.DeviceAddress) {
			continue
		}

		if value, err := decode(&received); err == nil {
			return value, nil
		}
	}
}

// ExchangePackets is ExchangePacket's batch form: it drains until
// ErrNoPacketReceived and returns every reply decode accepted, in
// arrival order.
func ExchangePackets[T any](d *Dispatcher, req PacketEncoder, captureAll bool, waitFn func(), decode func(*Packet) (T, error)) ([]T, error) {
	var values []T

	packet := req.ToPacket()
	if err := d.SendPacket(&packet); err != nil {
		return nil, err
	}

	waitFn()

	for {
		received, err := d.transport.TryGetPacket()
		if err != nil {
			if errors.Is(err, ErrNoPacketReceived) {
				return values, nil
			}
			return values, err
		}

		if !captureAll && received.DeviceAddress != d.localAddress && !IsBroadcast(received.DeviceAddress) {
			continue
		}

		if value, err := decode(&received); err == nil {
			values = append(values, value)
		}
	}
}
