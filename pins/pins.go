// Package pins maps logical pin IDs to physical pins and their capabilities.
package pins

import (
	"circuitplay-go/errcode"
	"circuitplay-go/types"
)

// Cap is a set of pin capability flags.
type Cap uint8

const (
	CapDigital Cap = 1 << iota
	CapAnalog
	CapPWM
	CapTouch

	CapAD = CapDigital | CapAnalog
)

func (c Cap) Has(x Cap) bool { return c&x == x }

// Physical encodes a port/pin pair as port*32+pin (PA16 => 16, PB23 => 55).
type Physical uint8

func PA(n uint8) Physical { return Physical(n) }
func PB(n uint8) Physical { return Physical(32 + n) }

// GP is an rp2040 GPIO number; that chip has a single bank.
func GP(n uint8) Physical { return Physical(n) }

// LogicalPin is immutable once the registry is built.
type LogicalPin struct {
	ID       types.ID
	Physical Physical
	Caps     Cap
}

// Registry is a read-only table of logical pins, kept in table order.
type Registry struct {
	name  string
	order []LogicalPin
	byID  map[types.ID]int
}

// NewRegistry builds a registry from a board table. Duplicate logical IDs
// are a table bug and panic.
func NewRegistry(name string, table []LogicalPin) *Registry {
	r := &Registry{
		name:  name,
		order: append([]LogicalPin(nil), table...),
		byID:  make(map[types.ID]int, len(table)),
	}
	for i, p := range r.order {
		if _, dup := r.byID[p.ID]; dup {
			panic("pins: duplicate logical pin in table " + name)
		}
		r.byID[p.ID] = i
	}
	return r
}

func (r *Registry) Name() string { return r.name }
func (r *Registry) Len() int     { return len(r.order) }

// Lookup returns the pin for a logical ID.
func (r *Registry) Lookup(id types.ID) (LogicalPin, bool) {
	i, ok := r.byID[id]
	if !ok {
		return LogicalPin{}, false
	}
	return r.order[i], true
}

// Require returns the pin for id if it supports every capability in want.
func (r *Registry) Require(id types.ID, want Cap) (LogicalPin, error) {
	p, ok := r.Lookup(id)
	if !ok {
		return LogicalPin{}, errcode.UnknownPin
	}
	if !p.Caps.Has(want) {
		return LogicalPin{}, errcode.Unsupported
	}
	return p, nil
}

// Each calls fn for every pin in table order.
func (r *Registry) Each(fn func(LogicalPin)) {
	for _, p := range r.order {
		fn(p)
	}
}

// Pull selects the input bias for a digital pin.
type Pull uint8

const (
	PullNone Pull = iota
	PullUp
	PullDown
)
