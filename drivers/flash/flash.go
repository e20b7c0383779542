// Package flash fronts the external SPI flash: bus parameters and
// identification. Transfers beyond that belong to the storage layer.
package flash

import (
	"circuitplay-go/errcode"

	"tinygo.org/x/drivers"
)

const cmdReadJEDEC = 0x9F

// Bus is an SPI bus whose clock and mode can be changed after start-up.
type Bus interface {
	drivers.SPI
	Configure(hz uint32, mode uint8) error
}

// Output drives the chip-select line (machine.Pin satisfies it).
type Output interface {
	Set(high bool)
}

type Device struct {
	spi  Bus
	cs   Output
	hz   uint32
	mode uint8
}

func New(spi Bus, cs Output) *Device {
	return &Device{spi: spi, cs: cs, hz: 1_000_000}
}

func (d *Device) Name() string { return "flash" }

func (d *Device) Init() error {
	d.cs.Set(true)
	return nil
}

func (d *Device) Frequency() uint32 { return d.hz }
func (d *Device) Mode() uint8       { return d.mode }

func (d *Device) SetFrequency(hz uint32) error {
	if hz == 0 {
		return errcode.InvalidParams
	}
	if err := d.spi.Configure(hz, d.mode); err != nil {
		return err
	}
	d.hz = hz
	return nil
}

// SetMode sets SPI mode 0..3.
func (d *Device) SetMode(mode uint8) error {
	if mode > 3 {
		return errcode.InvalidParams
	}
	if err := d.spi.Configure(d.hz, mode); err != nil {
		return err
	}
	d.mode = mode
	return nil
}

// ReadJEDEC returns the manufacturer and device IDs.
func (d *Device) ReadJEDEC() (mfr uint8, dev uint16, err error) {
	w := [4]byte{cmdReadJEDEC}
	var r [4]byte
	d.cs.Set(false)
	err = d.spi.Tx(w[:], r[:])
	d.cs.Set(true)
	if err != nil {
		return 0, 0, err
	}
	return r[1], uint16(r[2])<<8 | uint16(r[3]), nil
}
