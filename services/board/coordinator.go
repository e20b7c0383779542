package board

import (
	"circuitplay-go/bus"
	"circuitplay-go/types"
)

// action is what a new listener registration asks of the coordinator.
type action uint8

const (
	actNone action = iota
	actWakeAccel
	actWakeThermo
	actWakeLight
	actEnableComposite
)

// actionFor maps a registered key to its action. Unknown sources map to
// actNone.
func actionFor(k bus.Key) action {
	switch k.Source {
	case types.IDAccelerometer, types.IDGesture:
		return actWakeAccel
	case types.IDThermometer:
		return actWakeThermo
	case types.IDLightSensor:
		return actWakeLight
	case types.IDButtonAB:
		return actEnableComposite
	}
	return actNone
}

type sampler interface {
	UpdateSample()
}

type compositeSwitch interface {
	EnableComposite() bool
}

// coordinator starts sensors when someone first listens to them and hands
// A/B click reporting to the composite button when someone listens to A+B.
// It runs inside Listen and must not block.
type coordinator struct {
	accel   sampler
	thermo  sampler
	light   sampler
	buttons compositeSwitch
}

func (c *coordinator) ListenerRegistered(k bus.Key) {
	switch actionFor(k) {
	case actWakeAccel:
		c.accel.UpdateSample()
	case actWakeThermo:
		c.thermo.UpdateSample()
	case actWakeLight:
		c.light.UpdateSample()
	case actEnableComposite:
		c.buttons.EnableComposite()
	}
}
