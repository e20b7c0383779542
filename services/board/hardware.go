package board

import (
	"io"
	"time"

	"circuitplay-go/drivers/accel"
	"circuitplay-go/drivers/analog"
	"circuitplay-go/drivers/button"
	"circuitplay-go/drivers/flash"
	"circuitplay-go/drivers/pixels"
	"circuitplay-go/errcode"
	"circuitplay-go/pins"

	"tinygo.org/x/drivers"
)

// I2CBus is the shared inter-chip bus; it must be configured before any
// driver on it is touched.
type I2CBus interface {
	drivers.I2C
	Configure(hz uint32) error
}

// Hardware is the set of platform collaborators bring-up consumes. Every
// field except Accel and Now is required.
type Hardware struct {
	Pins *pins.Registry

	Digital func(p pins.LogicalPin, pull pins.Pull) button.Pin
	Analog  func(p pins.LogicalPin) analog.Input
	Output  func(p pins.LogicalPin) flash.Output
	Pixels  func(p pins.LogicalPin) pixels.Transmitter

	I2C      I2CBus
	FlashSPI flash.Bus
	Serial   io.Writer

	// Accel builds the accelerometer reader; nil selects the LIS3DH.
	Accel func(i2c drivers.I2C, addr uint16) accel.Reader

	Delay func(time.Duration)
	Now   func() time.Time
}

func (hw *Hardware) validate() error {
	if hw.Pins == nil || hw.Digital == nil || hw.Analog == nil || hw.Output == nil ||
		hw.Pixels == nil || hw.I2C == nil || hw.FlashSPI == nil || hw.Serial == nil || hw.Delay == nil {
		return &errcode.E{C: errcode.InvalidParams, Op: "bringup", Msg: "incomplete hardware"}
	}
	if hw.Accel == nil {
		hw.Accel = func(i2c drivers.I2C, addr uint16) accel.Reader { return accel.NewLIS3DH(i2c, addr) }
	}
	return nil
}
