// Package accel samples a three-axis accelerometer lazily: nothing is read
// until the first UpdateSample, after which the scheduler keeps it running.
package accel

import (
	"time"

	"circuitplay-go/bus"
	"circuitplay-go/types"
	"circuitplay-go/x/mathx"

	"tinygo.org/x/drivers"
)

// Gesture recognition thresholds, milli-g.
const (
	tiltTolerance     = 200
	faceTolerance     = 800
	freefallTolerance = 400
	shakeTolerance    = 1000
	shakeCount        = 4
	gestureDamping    = 5
)

// Reader returns one acceleration sample in milli-g.
type Reader interface {
	ReadAcceleration() (x, y, z int32, err error)
}

// Configurer is implemented by readers that need hardware set-up at init.
type Configurer interface {
	Configure() error
}

// Ticker runs periodic work on the scheduler.
type Ticker interface {
	Every(period time.Duration, fn func())
}

var _ drivers.Sensor = (*Device)(nil)

type Device struct {
	bus    *bus.Bus
	tick   Ticker
	r      Reader
	period time.Duration

	active  bool
	sample  types.AccelSample
	samples uint32

	gesture uint16
	pending uint16
	settled uint8
	shakes  uint8
}

func New(b *bus.Bus, tick Ticker, r Reader, period time.Duration) *Device {
	if period <= 0 {
		period = 20 * time.Millisecond
	}
	return &Device{bus: b, tick: tick, r: r, period: period}
}

func (d *Device) Name() string { return "accelerometer" }

func (d *Device) Init() error {
	if c, ok := d.r.(Configurer); ok {
		if err := c.Configure(); err != nil {
			return err
		}
	}
	d.tick.Every(d.period, func() {
		if d.active {
			d.UpdateSample()
		}
	})
	return nil
}

// Active reports whether periodic sampling has started.
func (d *Device) Active() bool { return d.active }

// Sample returns the last reading.
func (d *Device) Sample() types.AccelSample { return d.sample }

// Samples counts successful reads.
func (d *Device) Samples() uint32 { return d.samples }

// Gesture returns the last reported gesture.
func (d *Device) Gesture() uint16 { return d.gesture }

// Update implements drivers.Sensor.
func (d *Device) Update(which drivers.Measurement) error {
	if which&drivers.Acceleration == 0 {
		return nil
	}
	d.active = true
	x, y, z, err := d.r.ReadAcceleration()
	if err != nil {
		return err
	}
	prev := d.sample
	d.sample = types.AccelSample{X: x, Y: y, Z: z}
	first := d.samples == 0
	d.samples++
	d.bus.Send(types.IDAccelerometer, types.AccelEvtDataUpdate)
	if !first {
		d.trackShake(prev)
	}
	d.trackPosture()
	return nil
}

// UpdateSample takes one reading and starts periodic sampling. Read errors
// leave the previous sample in place.
func (d *Device) UpdateSample() {
	if err := d.Update(drivers.Acceleration); err != nil {
		println("[accel] read failed:", err.Error())
	}
}

func (d *Device) trackShake(prev types.AccelSample) {
	s := d.sample
	jerk := mathx.Max(mathx.Abs(s.X-prev.X), mathx.Max(mathx.Abs(s.Y-prev.Y), mathx.Abs(s.Z-prev.Z)))
	if jerk < shakeTolerance {
		if d.shakes > 0 {
			d.shakes--
		}
		return
	}
	d.shakes++
	if d.shakes >= shakeCount {
		d.shakes = 0
		d.bus.Send(types.IDGesture, types.GestureShake)
	}
}

func (d *Device) trackPosture() {
	g := posture(d.sample)
	if g != d.pending {
		d.pending = g
		d.settled = 0
		return
	}
	if d.settled < gestureDamping {
		d.settled++
	}
	if d.settled == gestureDamping && g != d.gesture {
		d.gesture = g
		if g != types.GestureNone {
			d.bus.Send(types.IDGesture, g)
		}
	}
}

// posture classifies one sample.
func posture(s types.AccelSample) uint16 {
	force := int64(s.X)*int64(s.X) + int64(s.Y)*int64(s.Y) + int64(s.Z)*int64(s.Z)
	switch {
	case force < freefallTolerance*freefallTolerance:
		return types.GestureFreefall
	case s.X < -tiltTolerance:
		return types.GestureTiltLeft
	case s.X > tiltTolerance:
		return types.GestureTiltRight
	case s.Y < -tiltTolerance:
		return types.GestureTiltDown
	case s.Y > tiltTolerance:
		return types.GestureTiltUp
	case s.Z < -faceTolerance:
		return types.GestureFaceUp
	case s.Z > faceTolerance:
		return types.GestureFaceDown
	}
	return types.GestureNone
}
