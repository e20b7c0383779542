// Package board is the composition root: it builds every driver once, wires
// them to the bus and scheduler, and brings the device to a quiescent, ready
// state.
package board

import (
	"context"
	"math/rand"

	"circuitplay-go/bus"
	"circuitplay-go/component"
	"circuitplay-go/dmesg"
	"circuitplay-go/drivers/accel"
	"circuitplay-go/drivers/analog"
	"circuitplay-go/drivers/button"
	"circuitplay-go/drivers/flash"
	"circuitplay-go/drivers/multibutton"
	"circuitplay-go/drivers/pixels"
	"circuitplay-go/drivers/serial"
	"circuitplay-go/errcode"
	"circuitplay-go/pins"
	"circuitplay-go/sched"
	"circuitplay-go/services/config"
	"circuitplay-go/types"
	"circuitplay-go/x/conv"
	"circuitplay-go/x/timex"
)

type Device struct {
	cfg config.Board
	hw  Hardware

	Bus        *bus.Bus
	Sched      *sched.Scheduler
	Clock      *timex.Clock
	Components component.Registry
	Log        *dmesg.Store
	flusher    *dmesg.Flusher

	ButtonA       *button.Button
	ButtonB       *button.Button
	ButtonC       *button.Button
	ButtonAB      *multibutton.MultiButton
	Buttons       *multibutton.Group
	Accelerometer *accel.Device
	Thermometer   *analog.Sensor
	LightSensor   *analog.Sensor
	Serial        *serial.Port
	Flash         *flash.Device
	Pixels        *pixels.Strip

	seed uint32
	rng  *rand.Rand
}

// New runs bring-up to completion. Any failure is fatal: the returned device
// is nil and must not be retried.
func New(hw Hardware, cfg config.Board) (*Device, error) {
	if err := hw.validate(); err != nil {
		return nil, err
	}
	cfg = cfg.Normalise()

	d := &Device{cfg: cfg, hw: hw, Log: &dmesg.Store{}}
	d.flusher = dmesg.NewFlusher(d.Log)
	d.Clock = timex.NewClock(hw.Now)
	d.Bus = bus.New(d.Clock.Micros)
	d.Sched = sched.New(cfg.BusQueueLen, cfg.ButtonTick)

	// Buses first: the accelerometer sits on I²C.
	if err := hw.I2C.Configure(cfg.I2CHz); err != nil {
		return nil, &errcode.E{C: errcode.InitFailed, Op: "bringup", Msg: "i2c", Err: err}
	}
	if err := d.construct(); err != nil {
		return nil, err
	}
	if err := d.flusher.Bind(d.Serial); err != nil {
		return nil, err
	}

	// Listener dispatch needs the scheduler; timestamps need the timer.
	d.Sched.Init(d.Bus)
	d.Clock.Calibrate()
	d.Bus.Observe(&coordinator{
		accel:   d.Accelerometer,
		thermo:  d.Thermometer,
		light:   d.LightSensor,
		buttons: d.Buttons,
	})

	if err := d.Components.InitAll(); err != nil {
		d.Log.Log("[boot] fatal:", err)
		return nil, err
	}

	// Weak, non-cryptographic seed from two environmental readings.
	d.seed = uint32(d.Thermometer.Read() * d.LightSensor.Read())
	d.rng = rand.New(rand.NewSource(int64(d.seed)))

	// The light sensor is very stable, so trust fresh readings.
	d.LightSensor.SetSensitivity(cfg.LightSensitivity)
	d.LightSensor.SetPeriod(cfg.LightPeriod)

	// The first frame after power-on is not reliably latched, so blank twice.
	if err := d.quiescePixels(); err != nil {
		return nil, err
	}

	if err := d.Flash.SetFrequency(cfg.FlashHz); err != nil {
		return nil, &errcode.E{C: errcode.InitFailed, Op: "bringup", Msg: "flash", Err: err}
	}
	if err := d.Flash.SetMode(cfg.FlashMode); err != nil {
		return nil, &errcode.E{C: errcode.InitFailed, Op: "bringup", Msg: "flash", Err: err}
	}

	d.logFlashID()

	d.Sched.SetIdleHook(d.IdleCallback)
	d.Log.Log("[boot] ready", cfg.Name, "components", d.Components.Len(), "seed", d.seed)
	return d, nil
}

// construct builds every driver in dependency order and registers each one.
func (d *Device) construct() error {
	hw := &d.hw
	pin := func(id types.ID, c pins.Cap) (pins.LogicalPin, error) {
		p, err := hw.Pins.Require(id, c)
		if err != nil {
			return p, &errcode.E{C: errcode.Of(err), Op: "bringup", Msg: "pin " + pinName(id)}
		}
		return p, nil
	}

	pa, err := pin(types.IDPinButtonA, pins.CapDigital)
	if err != nil {
		return err
	}
	pb, err := pin(types.IDPinButtonB, pins.CapDigital)
	if err != nil {
		return err
	}
	pc, err := pin(types.IDPinButtonC, pins.CapDigital)
	if err != nil {
		return err
	}
	pt, err := pin(types.IDPinTemperature, pins.CapAnalog)
	if err != nil {
		return err
	}
	pl, err := pin(types.IDPinLight, pins.CapAnalog)
	if err != nil {
		return err
	}
	pcs, err := pin(types.IDPinFlashCS, pins.CapDigital)
	if err != nil {
		return err
	}
	pnp, err := pin(types.IDPinNeopixel, pins.CapDigital)
	if err != nil {
		return err
	}

	ms := d.Clock.Millis
	d.ButtonA = button.New(d.Bus, d.Sched, ms, hw.Digital(pa, pins.PullDown), types.IDButtonA, types.ButtonAllEvents, true)
	d.ButtonB = button.New(d.Bus, d.Sched, ms, hw.Digital(pb, pins.PullDown), types.IDButtonB, types.ButtonAllEvents, true)
	d.ButtonC = button.New(d.Bus, d.Sched, ms, hw.Digital(pc, pins.PullUp), types.IDButtonC, types.ButtonAllEvents, false)
	d.ButtonAB = multibutton.New(d.Bus, types.IDButtonA, types.IDButtonB, types.IDButtonAB)
	d.Buttons = multibutton.NewGroup(d.ButtonA, d.ButtonB, d.ButtonAB)

	d.Accelerometer = accel.New(d.Bus, d.Sched, hw.Accel(hw.I2C, d.cfg.AccelAddress), d.cfg.AccelPeriod)
	th := d.cfg.Thermistor
	d.Thermometer = analog.NewThermometer(d.Bus, d.Sched, hw.Analog(pt), analog.Thermistor{
		NominalC:    th.NominalC,
		NominalOhms: th.NominalOhms,
		Beta:        th.Beta,
		SeriesOhms:  th.SeriesOhms,
		ZeroOffset:  th.ZeroOffset,
	})
	d.LightSensor = analog.NewLight(d.Bus, d.Sched, hw.Analog(pl))

	d.Serial = serial.New(hw.Serial)
	d.Flash = flash.New(hw.FlashSPI, hw.Output(pcs))
	d.Pixels = pixels.New(hw.Pixels(pnp), d.cfg.PixelCount)

	for _, c := range []component.Component{
		d.ButtonA, d.ButtonB, d.ButtonC, d.ButtonAB,
		d.Accelerometer, d.Thermometer, d.LightSensor,
		d.Serial, d.Flash, d.Pixels,
	} {
		d.Components.Add(c)
	}
	return nil
}

func (d *Device) quiescePixels() error {
	for i := 0; i < 2; i++ {
		if i > 0 {
			d.hw.Delay(d.cfg.QuiesceDelay)
		}
		if err := d.Pixels.Blank(); err != nil {
			return &errcode.E{C: errcode.InitFailed, Op: "bringup", Msg: "pixels", Err: err}
		}
	}
	return nil
}

// logFlashID records the flash part. A failed read is not fatal.
func (d *Device) logFlashID() {
	mfr, dev, err := d.Flash.ReadJEDEC()
	if err != nil {
		d.Log.Log("[boot] flash id:", err)
		return
	}
	var buf [8]byte
	d.Log.Log("[boot] flash id", string(conv.AppendHex32(buf[:0], uint32(mfr)<<16|uint32(dev))))
}

// Config returns the effective tuning.
func (d *Device) Config() config.Board { return d.cfg }

// Seed returns the value the random source was seeded with.
func (d *Device) Seed() uint32 { return d.seed }

// Random returns a pseudo-random integer in [0, max). Not for security use.
func (d *Device) Random(max int) int {
	if max <= 0 {
		return 0
	}
	return d.rng.Intn(max)
}

// Run drives the scheduler until ctx is cancelled.
func (d *Device) Run(ctx context.Context) { d.Sched.Run(ctx) }

func pinName(id types.ID) string {
	switch id {
	case types.IDPinButtonA:
		return "buttonA"
	case types.IDPinButtonB:
		return "buttonB"
	case types.IDPinButtonC:
		return "buttonC"
	case types.IDPinTemperature:
		return "temperature"
	case types.IDPinLight:
		return "light"
	case types.IDPinFlashCS:
		return "flash_cs"
	case types.IDPinNeopixel:
		return "neopixel"
	}
	return "?"
}
