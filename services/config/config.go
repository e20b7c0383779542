// Package config holds the board tuning parameters applied during bring-up.
package config

import "time"

// Board is the set of tunables for one board. Zero fields are filled from
// Default by Normalise.
type Board struct {
	Name string `yaml:"name"`

	I2CHz       uint32 `yaml:"i2c_hz"`
	BusQueueLen int    `yaml:"bus_queue_len"`

	ButtonTick   time.Duration `yaml:"button_tick"`
	AccelPeriod  time.Duration `yaml:"accel_period"`
	AccelAddress uint16        `yaml:"accel_address"`

	LightSensitivity uint16        `yaml:"light_sensitivity"`
	LightPeriod      time.Duration `yaml:"light_period"`

	Thermistor Thermistor `yaml:"thermistor"`

	PixelCount   int           `yaml:"pixel_count"`
	QuiesceDelay time.Duration `yaml:"quiesce_delay"`

	FlashHz   uint32 `yaml:"flash_hz"`
	FlashMode uint8  `yaml:"flash_mode"`
}

type Thermistor struct {
	NominalC    float64 `yaml:"nominal_c"`
	NominalOhms float64 `yaml:"nominal_ohms"`
	Beta        float64 `yaml:"beta"`
	SeriesOhms  float64 `yaml:"series_ohms"`
	ZeroOffset  float64 `yaml:"zero_offset"`
}

// Default returns the Circuit Playground tuning.
func Default() Board {
	return Board{
		Name:             "cplay",
		I2CHz:            400_000,
		BusQueueLen:      32,
		ButtonTick:       6 * time.Millisecond,
		AccelPeriod:      20 * time.Millisecond,
		AccelAddress:     0x19,
		LightSensitivity: 912,
		LightPeriod:      50 * time.Millisecond,
		Thermistor: Thermistor{
			NominalC:    20,
			NominalOhms: 10000,
			Beta:        3380,
			SeriesOhms:  10000,
			ZeroOffset:  273.5,
		},
		PixelCount:   10,
		QuiesceDelay: time.Millisecond,
		FlashHz:      4_000_000,
		FlashMode:    0,
	}
}

// Normalise fills unset fields from Default.
func (b Board) Normalise() Board {
	d := Default()
	if b.Name == "" {
		b.Name = d.Name
	}
	if b.I2CHz == 0 {
		b.I2CHz = d.I2CHz
	}
	if b.BusQueueLen <= 0 {
		b.BusQueueLen = d.BusQueueLen
	}
	if b.ButtonTick <= 0 {
		b.ButtonTick = d.ButtonTick
	}
	if b.AccelPeriod <= 0 {
		b.AccelPeriod = d.AccelPeriod
	}
	if b.AccelAddress == 0 {
		b.AccelAddress = d.AccelAddress
	}
	if b.LightSensitivity == 0 {
		b.LightSensitivity = d.LightSensitivity
	}
	if b.LightPeriod <= 0 {
		b.LightPeriod = d.LightPeriod
	}
	if b.Thermistor == (Thermistor{}) {
		b.Thermistor = d.Thermistor
	}
	if b.PixelCount <= 0 {
		b.PixelCount = d.PixelCount
	}
	if b.QuiesceDelay <= 0 {
		b.QuiesceDelay = d.QuiesceDelay
	}
	if b.FlashHz == 0 {
		b.FlashHz = d.FlashHz
	}
	return b
}

// Lookup resolves the compiled-in tuning for a board name. Tests may
// replace it.
var Lookup = func(board string) (Board, bool) {
	b, ok := embedded[board]
	return b, ok
}
