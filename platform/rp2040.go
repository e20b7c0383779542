//go:build rp2040

package platform

import (
	"machine"
	"time"

	"circuitplay-go/drivers/analog"
	"circuitplay-go/drivers/button"
	"circuitplay-go/drivers/flash"
	"circuitplay-go/drivers/pixels"
	"circuitplay-go/errcode"
	"circuitplay-go/pins"
	"circuitplay-go/services/board"
	"circuitplay-go/types"

	uartx "github.com/jangala-dev/tinygo-uartx/uartx"
	"tinygo.org/x/drivers/ws2812"
)

const consoleBaud = 115200

// i2cBus defers pin setup to Configure so bring-up picks the clock.
type i2cBus struct {
	*machine.I2C
	sda, scl machine.Pin
}

func (b *i2cBus) Configure(hz uint32) error {
	b.sda.Configure(machine.PinConfig{Mode: machine.PinI2C})
	b.scl.Configure(machine.PinConfig{Mode: machine.PinI2C})
	return b.I2C.Configure(machine.I2CConfig{SDA: b.sda, SCL: b.scl, Frequency: hz})
}

type spiBus struct {
	*machine.SPI
	sck, sdo, sdi machine.Pin
}

func (b *spiBus) Configure(hz uint32, mode uint8) error {
	return b.SPI.Configure(machine.SPIConfig{
		Frequency: hz,
		Mode:      mode,
		SCK:       b.sck,
		SDO:       b.sdo,
		SDI:       b.sdi,
	})
}

type outPin struct{ p machine.Pin }

func (o outPin) Set(high bool) { o.p.Set(high) }

type strip struct{ dev ws2812.Device }

func (s *strip) Write(b []byte) (int, error) { return s.dev.Write(b) }

// Hardware wires bring-up to the rp2040 peripherals named by reg. The
// console UART is configured here so early logs have somewhere to go.
func Hardware(reg *pins.Registry) (board.Hardware, error) {
	gp := func(id types.ID) (machine.Pin, error) {
		p, ok := reg.Lookup(id)
		if !ok {
			return machine.NoPin, &errcode.E{C: errcode.UnknownPin, Op: "platform", Msg: id.Name()}
		}
		return machine.Pin(p.Physical), nil
	}
	var (
		sda, scl, sck, sdo, sdi, tx, rx machine.Pin
		err                             error
	)
	for _, x := range []struct {
		id  types.ID
		dst *machine.Pin
	}{
		{types.IDPinSDA, &sda}, {types.IDPinSCL, &scl},
		{types.IDPinFlashSCLK, &sck}, {types.IDPinFlashMOSI, &sdo}, {types.IDPinFlashMISO, &sdi},
		{types.IDPinTX, &tx}, {types.IDPinRX, &rx},
	} {
		if *x.dst, err = gp(x.id); err != nil {
			return board.Hardware{}, err
		}
	}

	console := uartx.UART0
	if err := console.Configure(uartx.UARTConfig{BaudRate: consoleBaud, TX: tx, RX: rx}); err != nil {
		return board.Hardware{}, err
	}
	machine.InitADC()

	return board.Hardware{
		Pins: reg,
		Digital: func(p pins.LogicalPin, pull pins.Pull) button.Pin {
			mp := machine.Pin(p.Physical)
			mode := machine.PinInput
			switch pull {
			case pins.PullUp:
				mode = machine.PinInputPullup
			case pins.PullDown:
				mode = machine.PinInputPulldown
			}
			mp.Configure(machine.PinConfig{Mode: mode})
			return mp
		},
		Analog: func(p pins.LogicalPin) analog.Input {
			a := machine.ADC{Pin: machine.Pin(p.Physical)}
			a.Configure(machine.ADCConfig{})
			return a
		},
		Output: func(p pins.LogicalPin) flash.Output {
			mp := machine.Pin(p.Physical)
			mp.Configure(machine.PinConfig{Mode: machine.PinOutput})
			return outPin{mp}
		},
		Pixels: func(p pins.LogicalPin) pixels.Transmitter {
			mp := machine.Pin(p.Physical)
			mp.Configure(machine.PinConfig{Mode: machine.PinOutput})
			return &strip{dev: ws2812.New(mp)}
		},
		I2C:      &i2cBus{I2C: machine.I2C0, sda: sda, scl: scl},
		FlashSPI: &spiBus{SPI: machine.SPI0, sck: sck, sdo: sdo, sdi: sdi},
		Serial:   console,
		Delay:    time.Sleep,
		Now:      time.Now,
	}, nil
}
