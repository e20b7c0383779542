// Package button debounces a digital input and reports button gestures on
// the bus.
package button

import (
	"time"

	"circuitplay-go/bus"
	"circuitplay-go/types"
)

// Debounce filter and gesture timing.
const (
	sigmaMin    = 0
	sigmaMax    = 12
	sigmaHigh   = 8
	sigmaLow    = 2
	TickPeriod  = 6 * time.Millisecond
	LongClickMs = 1000
	HoldMs      = 1500
)

// Pin is the digital input a button samples.
type Pin interface {
	Get() bool
}

// Ticker runs periodic work on the scheduler.
type Ticker interface {
	Every(period time.Duration, fn func())
}

type Button struct {
	id         types.ID
	pin        Pin
	activeHigh bool
	events     types.ButtonEvents

	bus  *bus.Bus
	tick Ticker
	now  func() int64 // ms

	sigma  uint8
	down   bool
	held   bool
	downAt int64
}

// New builds a button. It touches no hardware and registers nothing until
// Init.
func New(b *bus.Bus, tick Ticker, now func() int64, pin Pin, id types.ID, events types.ButtonEvents, activeHigh bool) *Button {
	return &Button{
		id:         id,
		pin:        pin,
		activeHigh: activeHigh,
		events:     events,
		bus:        b,
		tick:       tick,
		now:        now,
	}
}

func (b *Button) ID() types.ID  { return b.id }
func (b *Button) Name() string  { return b.id.Name() }
func (b *Button) Pressed() bool { return b.down }

func (b *Button) Init() error {
	b.tick.Every(TickPeriod, func() { b.Tick(b.now()) })
	return nil
}

// SetEventConfiguration switches between the simple (Down/Up) and the full
// event set. It takes effect from the next transition.
func (b *Button) SetEventConfiguration(e types.ButtonEvents) { b.events = e }

func (b *Button) EventConfiguration() types.ButtonEvents { return b.events }

func (b *Button) raw() bool {
	if b.activeHigh {
		return b.pin.Get()
	}
	return !b.pin.Get()
}

// Tick samples the pin once and emits any events the sample completes.
func (b *Button) Tick(nowMs int64) {
	if b.raw() {
		if b.sigma < sigmaMax {
			b.sigma++
		}
	} else if b.sigma > sigmaMin {
		b.sigma--
	}

	switch {
	case !b.down && b.sigma > sigmaHigh:
		b.down = true
		b.held = false
		b.downAt = nowMs
		b.bus.Send(b.id, types.ButtonEvtDown)

	case b.down && b.sigma < sigmaLow:
		b.down = false
		b.bus.Send(b.id, types.ButtonEvtUp)
		if b.events == types.ButtonAllEvents {
			if nowMs-b.downAt >= LongClickMs {
				b.bus.Send(b.id, types.ButtonEvtLongClick)
			} else {
				b.bus.Send(b.id, types.ButtonEvtClick)
			}
		}

	case b.down && !b.held && nowMs-b.downAt >= HoldMs:
		b.held = true
		if b.events == types.ButtonAllEvents {
			b.bus.Send(b.id, types.ButtonEvtHold)
		}
	}
}
