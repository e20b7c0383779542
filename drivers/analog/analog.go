// Package analog implements ADC-backed sensors (thermometer, light sensor)
// with decay-average smoothing, thresholds and lazy periodic sampling.
package analog

import (
	"time"

	"circuitplay-go/bus"
	"circuitplay-go/types"
	"circuitplay-go/x/mathx"

	"tinygo.org/x/drivers"
)

const (
	maxSensitivity     = 1023
	defaultSensitivity = 868
	basePeriod         = 10 * time.Millisecond
)

// Input is a 16-bit left-aligned ADC channel, as machine.ADC reports it.
type Input interface {
	Get() uint16
}

// Ticker runs periodic work on the scheduler.
type Ticker interface {
	Every(period time.Duration, fn func())
}

// Converter maps a 10-bit reading to the sensor's unit.
type Converter func(raw uint16) int32

var _ drivers.Sensor = (*Sensor)(nil)

type Sensor struct {
	id      types.ID
	in      Input
	conv    Converter
	measure drivers.Measurement

	bus  *bus.Bus
	tick Ticker

	period      time.Duration
	elapsed     time.Duration
	sensitivity uint16

	value       int32
	initialised bool
	active      bool

	low, high       int32
	lowOn, highOn   bool
	lowHit, highHit bool
}

func newSensor(b *bus.Bus, tick Ticker, in Input, id types.ID, m drivers.Measurement, conv Converter) *Sensor {
	return &Sensor{
		id:      id,
		in:      in,
		conv:    conv,
		measure: m,
		bus:     b,
		tick:    tick,
		period:  500 * time.Millisecond,

		sensitivity: defaultSensitivity,
	}
}

// NewLight returns a light sensor reporting the raw 10-bit level.
func NewLight(b *bus.Bus, tick Ticker, in Input) *Sensor {
	return newSensor(b, tick, in, types.IDLightSensor, drivers.Luminosity, func(raw uint16) int32 { return int32(raw) })
}

// NewThermometer returns a thermistor thermometer reporting whole °C.
func NewThermometer(b *bus.Bus, tick Ticker, in Input, th Thermistor) *Sensor {
	return newSensor(b, tick, in, types.IDThermometer, drivers.Temperature, th.Celsius)
}

func (s *Sensor) ID() types.ID { return s.id }
func (s *Sensor) Name() string { return s.id.Name() }

func (s *Sensor) Init() error {
	s.tick.Every(basePeriod, s.poll)
	return nil
}

func (s *Sensor) poll() {
	if !s.active {
		return
	}
	s.elapsed += basePeriod
	if s.elapsed < s.period {
		return
	}
	s.elapsed = 0
	s.UpdateSample()
}

// Active reports whether periodic sampling has started.
func (s *Sensor) Active() bool { return s.active }

// Value returns the smoothed value.
func (s *Sensor) Value() int32 { return s.value }

// Read converts a fresh reading without smoothing it in or starting
// periodic sampling.
func (s *Sensor) Read() int32 { return s.conv(s.raw()) }

func (s *Sensor) raw() uint16 { return s.in.Get() >> 6 }

// SetSensitivity sets the weight of each new reading, 0..1023. Higher
// follows the input more closely; lower is smoother.
func (s *Sensor) SetSensitivity(v uint16) {
	s.sensitivity = mathx.Clamp(v, 0, maxSensitivity)
}

func (s *Sensor) Sensitivity() uint16 { return s.sensitivity }

// SetPeriod sets the sampling period, rounded up to the base tick.
func (s *Sensor) SetPeriod(d time.Duration) {
	s.period = mathx.Max(d, basePeriod)
}

func (s *Sensor) Period() time.Duration { return s.period }

func (s *Sensor) SetLowThreshold(v int32) {
	s.low, s.lowOn, s.lowHit = v, true, false
}

func (s *Sensor) SetHighThreshold(v int32) {
	s.high, s.highOn, s.highHit = v, true, false
}

// Update implements drivers.Sensor.
func (s *Sensor) Update(which drivers.Measurement) error {
	if which&s.measure == 0 {
		return nil
	}
	s.UpdateSample()
	return nil
}

// UpdateSample folds one reading into the value and starts periodic
// sampling.
func (s *Sensor) UpdateSample() {
	s.active = true
	v := s.Read()
	if !s.initialised {
		s.initialised = true
	} else {
		w := int64(s.sensitivity)
		v = int32((int64(v)*w + int64(s.value)*(maxSensitivity-w)) >> 10)
	}
	s.value = v
	s.bus.Send(s.id, types.SensorEvtUpdate)
	s.checkThresholds()
}

func (s *Sensor) checkThresholds() {
	if s.highOn && !s.highHit && s.value >= s.high {
		s.highHit, s.lowHit = true, false
		s.bus.Send(s.id, types.SensorEvtThresholdHigh)
	}
	if s.lowOn && !s.lowHit && s.value <= s.low {
		s.lowHit, s.highHit = true, false
		s.bus.Send(s.id, types.SensorEvtThresholdLow)
	}
}

// Level scales the value to 0..255 (light sensor convenience).
func (s *Sensor) Level() uint8 {
	v := uint16(mathx.Clamp(s.value, 0, maxSensitivity))
	return uint8(mathx.MapU16(v, 0, maxSensitivity, 0, 255))
}
