package accel

import (
	"circuitplay-go/errcode"

	"tinygo.org/x/drivers"
	"tinygo.org/x/drivers/lis3dh"
)

// LIS3DH adapts the tinygo lis3dh driver to Reader.
type LIS3DH struct {
	dev lis3dh.Device
}

// NewLIS3DH wraps an accelerometer on an already configured I²C bus. Nothing
// is sent on the bus until Configure.
func NewLIS3DH(i2c drivers.I2C, addr uint16) *LIS3DH {
	d := lis3dh.New(i2c)
	if addr != 0 {
		d.Address = addr
	}
	return &LIS3DH{dev: d}
}

func (l *LIS3DH) Configure() error {
	l.dev.Configure()
	if !l.dev.Connected() {
		return errcode.NotConnected
	}
	l.dev.SetRange(lis3dh.RANGE_2_G)
	return nil
}

// ReadAcceleration returns milli-g (the driver reports micro-g).
func (l *LIS3DH) ReadAcceleration() (x, y, z int32, err error) {
	x, y, z, err = l.dev.ReadAcceleration()
	return x / 1000, y / 1000, z / 1000, err
}
