// Package component holds the fixed-capacity table of drivers that bring-up
// initialises in registration order.
package component

import "circuitplay-go/errcode"

// Capacity bounds the number of components on one device.
const Capacity = 30

// Component is anything with a one-shot init hook.
type Component interface {
	Init() error
}

// Named components report a diagnostic name in init failures.
type Named interface {
	Name() string
}

type Registry struct {
	items [Capacity]Component
	n     int
}

// Add appends c. Exceeding Capacity is a board definition bug and panics.
func (r *Registry) Add(c Component) {
	if r.n == Capacity {
		panic(errcode.RegistryFull)
	}
	r.items[r.n] = c
	r.n++
}

func (r *Registry) Len() int { return r.n }

// At returns the i'th registered component.
func (r *Registry) At(i int) Component { return r.items[i] }

// InitAll runs every init hook in registration order and stops at the first
// failure.
func (r *Registry) InitAll() error {
	for i := 0; i < r.n; i++ {
		c := r.items[i]
		if err := c.Init(); err != nil {
			name := "component"
			if nc, ok := c.(Named); ok {
				name = nc.Name()
			}
			return &errcode.E{C: errcode.InitFailed, Op: "init", Msg: name, Err: err}
		}
	}
	return nil
}
