// bus.go
package bus

import (
	"sync"

	"circuitplay-go/errcode"
	"circuitplay-go/types"
)

// -----------------------------------------------------------------------------
// Keys + Events
// -----------------------------------------------------------------------------

// Key addresses listeners: a (source, value) pair. types.IDAny and
// types.EvtAny act as wildcards on the listener side only.
type Key struct {
	Source types.ID
	Value  uint16
}

func (k Key) matches(ev Event) bool {
	return (k.Source == types.IDAny || k.Source == ev.Source) &&
		(k.Value == types.EvtAny || k.Value == ev.Value)
}

// Event is an immutable notification. TS is microseconds from the bus clock.
type Event struct {
	Source types.ID
	Value  uint16
	TS     int64
}

// Handler consumes an event. It runs on the scheduler's thread and must not
// block.
type Handler func(Event)

// RegistrationObserver is told about every new listener, synchronously and
// before Listen returns.
type RegistrationObserver interface {
	ListenerRegistered(k Key)
}

// Dispatcher defers work onto the single execution context.
type Dispatcher interface {
	Post(fn func()) bool
}

// -----------------------------------------------------------------------------
// Listener
// -----------------------------------------------------------------------------

type Listener struct {
	key Key
	h   Handler
	bus *Bus
}

func (l *Listener) Key() Key { return l.key }
func (l *Listener) Ignore()  { l.bus.Ignore(l) }

// -----------------------------------------------------------------------------
// Bus
// -----------------------------------------------------------------------------

type Bus struct {
	mu        sync.Mutex
	listeners []*Listener
	observers []RegistrationObserver
	sched     Dispatcher
	clock     func() int64
}

// New creates a bus stamping events with clock. A nil clock stamps zero.
func New(clock func() int64) *Bus {
	if clock == nil {
		clock = func() int64 { return 0 }
	}
	return &Bus{clock: clock}
}

// AttachScheduler makes the bus live. Listen fails until this is called.
func (b *Bus) AttachScheduler(d Dispatcher) {
	b.mu.Lock()
	b.sched = d
	b.mu.Unlock()
}

// Observe adds a registration observer.
func (b *Bus) Observe(o RegistrationObserver) {
	b.mu.Lock()
	b.observers = append(b.observers, o)
	b.mu.Unlock()
}

// Listen registers h for events matching (src, val), then notifies observers
// of the new key. Events the observers cause are already visible to h.
func (b *Bus) Listen(src types.ID, val uint16, h Handler) (*Listener, error) {
	if h == nil {
		return nil, errcode.InvalidParams
	}
	l := &Listener{key: Key{Source: src, Value: val}, h: h, bus: b}

	b.mu.Lock()
	if b.sched == nil {
		b.mu.Unlock()
		return nil, errcode.SchedulerNotReady
	}
	b.listeners = append(b.listeners, l)
	obs := b.observers
	b.mu.Unlock()

	for _, o := range obs {
		o.ListenerRegistered(l.key)
	}
	return l, nil
}

// Ignore removes a listener. Unknown listeners are ignored.
func (b *Bus) Ignore(l *Listener) {
	if l == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, x := range b.listeners {
		if x == l {
			// Copy so snapshots held by an in-flight Send stay intact.
			next := make([]*Listener, 0, len(b.listeners)-1)
			next = append(next, b.listeners[:i]...)
			b.listeners = append(next, b.listeners[i+1:]...)
			return
		}
	}
}

// Send stamps and dispatches an event to every matching listener, in
// registration order, before returning.
func (b *Bus) Send(src types.ID, val uint16) Event {
	ev := Event{Source: src, Value: val, TS: b.clock()}
	b.dispatch(ev)
	return ev
}

// SendLater stamps the event now and dispatches it from the scheduler.
// It reports false when no scheduler is attached or its queue is full.
func (b *Bus) SendLater(src types.ID, val uint16) bool {
	b.mu.Lock()
	d := b.sched
	b.mu.Unlock()
	if d == nil {
		return false
	}
	ev := Event{Source: src, Value: val, TS: b.clock()}
	return d.Post(func() { b.dispatch(ev) })
}

// Listeners counts listeners whose key exactly equals (src, val).
func (b *Bus) Listeners(src types.ID, val uint16) int {
	k := Key{Source: src, Value: val}
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, l := range b.listeners {
		if l.key == k {
			n++
		}
	}
	return n
}

func (b *Bus) dispatch(ev Event) {
	b.mu.Lock()
	ls := b.listeners
	b.mu.Unlock()

	for _, l := range ls {
		if l.key.matches(ev) {
			l.h(ev)
		}
	}
}
