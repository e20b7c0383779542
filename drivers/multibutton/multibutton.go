// Package multibutton derives a virtual A+B button from two primitive
// buttons, and owns the one-way switch that lets it take over click
// reporting from them.
package multibutton

import (
	"circuitplay-go/bus"
	"circuitplay-go/drivers/button"
	"circuitplay-go/types"
)

type sub struct {
	id         types.ID
	pressed    bool
	suppressed bool
	downAt     int64 // us
}

// MultiButton follows the Down/Up events of two buttons. With the full event
// set enabled it also reports clicks for solo presses of either constituent,
// so constituents can stay in simple mode without losing clicks.
type MultiButton struct {
	id     types.ID
	bus    *bus.Bus
	events types.ButtonEvents
	subs   [2]sub
	downAt int64 // us, when the second constituent went down
}

// New returns a multibutton reporting the simple event set.
func New(b *bus.Bus, a, bID, id types.ID) *MultiButton {
	return &MultiButton{
		id:   id,
		bus:  b,
		subs: [2]sub{{id: a}, {id: bID}},
	}
}

func (m *MultiButton) ID() types.ID { return m.id }
func (m *MultiButton) Name() string { return m.id.Name() }

func (m *MultiButton) Init() error {
	for _, s := range m.subs {
		if _, err := m.bus.Listen(s.id, types.ButtonEvtDown, m.onDown); err != nil {
			return err
		}
		if _, err := m.bus.Listen(s.id, types.ButtonEvtUp, m.onUp); err != nil {
			return err
		}
	}
	return nil
}

func (m *MultiButton) SetEventConfiguration(e types.ButtonEvents) { m.events = e }

func (m *MultiButton) EventConfiguration() types.ButtonEvents { return m.events }

// Pressed reports whether both constituents are down.
func (m *MultiButton) Pressed() bool { return m.subs[0].pressed && m.subs[1].pressed }

func (m *MultiButton) index(id types.ID) int {
	if id == m.subs[0].id {
		return 0
	}
	return 1
}

func (m *MultiButton) onDown(ev bus.Event) {
	i := m.index(ev.Source)
	s, o := &m.subs[i], &m.subs[1-i]
	s.pressed = true
	s.downAt = ev.TS
	if o.pressed {
		m.downAt = ev.TS
		m.emit(m.id, types.ButtonEvtDown)
	}
}

func (m *MultiButton) onUp(ev bus.Event) {
	i := m.index(ev.Source)
	s, o := &m.subs[i], &m.subs[1-i]
	if !s.pressed {
		return
	}
	s.pressed = false

	if o.pressed {
		// First release ends the A+B gesture; neither constituent may click.
		m.emit(m.id, types.ButtonEvtUp)
		if m.events == types.ButtonAllEvents {
			m.emit(m.id, clickFor(ev.TS-m.downAt))
		}
		s.suppressed = true
		o.suppressed = true
		return
	}

	if m.events == types.ButtonAllEvents && !s.suppressed {
		m.emit(s.id, clickFor(ev.TS-s.downAt))
	}
	s.suppressed = false
}

// emit queues the event behind the one being dispatched, so every listener
// sees a constituent's Up before anything derived from it.
func (m *MultiButton) emit(src types.ID, val uint16) {
	if !m.bus.SendLater(src, val) {
		println("[multibutton] dropped event", int(src), int(val))
	}
}

func clickFor(heldUs int64) uint16 {
	if heldUs >= button.LongClickMs*1000 {
		return types.ButtonEvtLongClick
	}
	return types.ButtonEvtClick
}

// -----------------------------------------------------------------------------
// Group
// -----------------------------------------------------------------------------

// Mode is the reporting mode of a button group.
type Mode uint8

const (
	// ModeIndependent: constituents report every event, the composite only
	// Down/Up.
	ModeIndependent Mode = iota
	// ModeCompositeAware: constituents report Down/Up, the composite reports
	// everything, including constituent clicks.
	ModeCompositeAware
)

func (m Mode) String() string {
	if m == ModeCompositeAware {
		return "composite"
	}
	return "independent"
}

// Configurable is a button whose reported event set can change.
type Configurable interface {
	SetEventConfiguration(types.ButtonEvents)
}

// Group ties two primitive buttons to their composite.
type Group struct {
	a, b Configurable
	ab   *MultiButton
	mode Mode
}

// NewGroup applies independent mode to all three buttons.
func NewGroup(a, b Configurable, ab *MultiButton) *Group {
	a.SetEventConfiguration(types.ButtonAllEvents)
	b.SetEventConfiguration(types.ButtonAllEvents)
	ab.SetEventConfiguration(types.ButtonSimpleEvents)
	return &Group{a: a, b: b, ab: ab}
}

func (g *Group) Mode() Mode { return g.mode }

// EnableComposite switches the group to composite-aware mode. There is no
// way back. It reports whether the mode changed.
func (g *Group) EnableComposite() bool {
	if g.mode == ModeCompositeAware {
		return false
	}
	g.a.SetEventConfiguration(types.ButtonSimpleEvents)
	g.b.SetEventConfiguration(types.ButtonSimpleEvents)
	g.ab.SetEventConfiguration(types.ButtonAllEvents)
	g.mode = ModeCompositeAware
	return true
}
