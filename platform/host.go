//go:build !tinygo

// Package platform supplies the hardware collaborators for bring-up: host
// stand-ins for tests and the simulator, and machine wiring on rp2040.
package platform

import (
	"fmt"
	"io"
	"sync"
	"time"

	"circuitplay-go/drivers/analog"
	"circuitplay-go/drivers/button"
	"circuitplay-go/drivers/flash"
	"circuitplay-go/drivers/pixels"
	"circuitplay-go/errcode"
	"circuitplay-go/pins"
	"circuitplay-go/services/board"
	"circuitplay-go/types"
)

// LIS3DH register map, as far as the host bus emulates it.
const (
	lisWhoAmI = 0x0F
	lisCtrl4  = 0x23
	lisOutXL  = 0x28
	lisID     = 0x33
	lisOneG   = 16380 // raw counts per g at ±2 g
)

// Trace records hardware operations in the order they happen.
type Trace struct {
	mu  sync.Mutex
	ops []string
}

func (t *Trace) add(format string, args ...any) {
	t.mu.Lock()
	t.ops = append(t.ops, fmt.Sprintf(format, args...))
	t.mu.Unlock()
}

// Ops returns a copy of the recorded operations.
func (t *Trace) Ops() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.ops...)
}

// -----------------------------------------------------------------------------
// GPIO / ADC
// -----------------------------------------------------------------------------

// Pin is a host GPIO. Inputs read Level; outputs record their last Set.
type Pin struct {
	mu    sync.Mutex
	ID    types.ID
	Pull  pins.Pull
	level bool
}

func (p *Pin) Get() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.level
}

func (p *Pin) Set(high bool) {
	p.mu.Lock()
	p.level = high
	p.mu.Unlock()
}

// ADC is a host analog channel holding a 10-bit reading.
type ADC struct {
	mu  sync.Mutex
	raw uint16
}

// SetRaw sets the 10-bit reading.
func (a *ADC) SetRaw(v uint16) {
	a.mu.Lock()
	a.raw = v & 0x3FF
	a.mu.Unlock()
}

// Get reports the reading left-aligned, as the machine ADC does.
func (a *ADC) Get() uint16 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.raw << 6
}

// -----------------------------------------------------------------------------
// I²C
// -----------------------------------------------------------------------------

// I2C is a register-file bus. Each target address gets 256 registers and an
// auto-incrementing pointer set by the first written byte.
type I2C struct {
	mu    sync.Mutex
	trace *Trace
	Hz    uint32
	regs  map[uint16]*[256]byte
	ptr   map[uint16]byte
	fail  error
}

func NewI2C(trace *Trace) *I2C {
	return &I2C{trace: trace, regs: map[uint16]*[256]byte{}, ptr: map[uint16]byte{}}
}

func (b *I2C) Configure(hz uint32) error {
	b.mu.Lock()
	b.Hz = hz
	b.mu.Unlock()
	b.trace.add("i2c.configure %d", hz)
	return nil
}

// Fail makes every later transaction return err (nil restores the bus).
func (b *I2C) Fail(err error) {
	b.mu.Lock()
	b.fail = err
	b.mu.Unlock()
}

// Poke writes registers directly, bypassing the bus.
func (b *I2C) Poke(addr uint16, reg byte, data ...byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	f := b.file(addr)
	for i, v := range data {
		f[reg+byte(i)] = v
	}
}

func (b *I2C) file(addr uint16) *[256]byte {
	f := b.regs[addr]
	if f == nil {
		f = new([256]byte)
		b.regs[addr] = f
	}
	return f
}

func (b *I2C) Tx(addr uint16, w, r []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.fail != nil {
		return b.fail
	}
	f, ok := b.regs[addr]
	if !ok {
		return errcode.NotConnected
	}
	if len(w) > 0 {
		p := w[0] &^ 0x80
		for _, v := range w[1:] {
			f[p] = v
			p++
		}
		b.ptr[addr] = w[0] &^ 0x80
	}
	p := b.ptr[addr]
	for i := range r {
		r[i] = f[p]
		p++
	}
	b.ptr[addr] = p
	return nil
}

// AttachLIS3DH places an accelerometer at addr lying flat, face up.
func (b *I2C) AttachLIS3DH(addr uint16) {
	b.Poke(addr, lisWhoAmI, lisID)
	b.SetAcceleration(addr, 0, 0, -1000)
}

// SetAcceleration sets the accelerometer's output registers, in milli-g.
func (b *I2C) SetAcceleration(addr uint16, x, y, z int32) {
	raw := func(mg int32) (byte, byte) {
		v := uint16(int16(mg * lisOneG / 1000))
		return byte(v), byte(v >> 8)
	}
	xl, xh := raw(x)
	yl, yh := raw(y)
	zl, zh := raw(z)
	b.Poke(addr, lisOutXL, xl, xh, yl, yh, zl, zh)
}

// -----------------------------------------------------------------------------
// SPI flash
// -----------------------------------------------------------------------------

// SPI answers a JEDEC ID read and records reconfiguration.
type SPI struct {
	mu    sync.Mutex
	trace *Trace
	Hz    uint32
	Mode  uint8
	JEDEC [3]byte
}

func NewSPI(trace *Trace) *SPI {
	// Winbond W25Q16.
	return &SPI{trace: trace, JEDEC: [3]byte{0xEF, 0x40, 0x15}}
}

func (s *SPI) Configure(hz uint32, mode uint8) error {
	s.mu.Lock()
	s.Hz, s.Mode = hz, mode
	s.mu.Unlock()
	s.trace.add("spi.configure %d %d", hz, mode)
	return nil
}

func (s *SPI) Tx(w, r []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range r {
		r[i] = 0xFF
	}
	if len(w) > 0 && w[0] == 0x9F {
		copy(r[1:], s.JEDEC[:])
	}
	return nil
}

func (s *SPI) Transfer(b byte) (byte, error) {
	return 0xFF, nil
}

// -----------------------------------------------------------------------------
// Pixels / serial
// -----------------------------------------------------------------------------

// Strip records every frame written to the pixel line.
type Strip struct {
	mu     sync.Mutex
	trace  *Trace
	frames [][]byte
}

func (s *Strip) Write(b []byte) (int, error) {
	s.mu.Lock()
	s.frames = append(s.frames, append([]byte(nil), b...))
	s.mu.Unlock()
	s.trace.add("pixels.write %d", len(b))
	return len(b), nil
}

// Frames returns copies of the frames written so far.
func (s *Strip) Frames() [][]byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([][]byte, len(s.frames))
	for i, f := range s.frames {
		out[i] = append([]byte(nil), f...)
	}
	return out
}

// -----------------------------------------------------------------------------
// Host
// -----------------------------------------------------------------------------

// Host is a complete simulated board.
type Host struct {
	Trace *Trace
	Pins  *pins.Registry
	I2C   *I2C
	SPI   *SPI
	Strip *Strip
	Out   io.Writer

	mu     sync.Mutex
	gpio   map[types.ID]*Pin
	adc    map[types.ID]*ADC
	now    time.Time
	delays []time.Duration
	sleep  bool
}

// NewHost builds a simulated board for the pin table reg with an
// accelerometer at accelAddr. Serial output goes to out.
func NewHost(reg *pins.Registry, accelAddr uint16, out io.Writer) *Host {
	tr := &Trace{}
	h := &Host{
		Trace: tr,
		Pins:  reg,
		I2C:   NewI2C(tr),
		SPI:   NewSPI(tr),
		Strip: &Strip{trace: tr},
		Out:   out,
		gpio:  map[types.ID]*Pin{},
		adc:   map[types.ID]*ADC{},
		now:   time.Unix(0, 0),
	}
	h.I2C.AttachLIS3DH(accelAddr)
	return h
}

// RealTime makes Delay sleep and Now follow the wall clock.
func (h *Host) RealTime() { h.sleep = true }

// GPIO returns the simulated pin for id, creating it on first use.
func (h *Host) GPIO(id types.ID) *Pin {
	h.mu.Lock()
	defer h.mu.Unlock()
	p := h.gpio[id]
	if p == nil {
		p = &Pin{ID: id}
		h.gpio[id] = p
	}
	return p
}

// ADC returns the simulated analog channel for id.
func (h *Host) ADC(id types.ID) *ADC {
	h.mu.Lock()
	defer h.mu.Unlock()
	a := h.adc[id]
	if a == nil {
		a = &ADC{}
		h.adc[id] = a
	}
	return a
}

// Advance moves the simulated clock.
func (h *Host) Advance(d time.Duration) {
	h.mu.Lock()
	h.now = h.now.Add(d)
	h.mu.Unlock()
}

func (h *Host) Now() time.Time {
	if h.sleep {
		return time.Now()
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.now
}

func (h *Host) Delay(d time.Duration) {
	h.mu.Lock()
	h.delays = append(h.delays, d)
	h.mu.Unlock()
	h.Trace.add("delay %s", d)
	if h.sleep {
		time.Sleep(d)
		return
	}
	h.Advance(d)
}

// Delays returns the requested delays in order.
func (h *Host) Delays() []time.Duration {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]time.Duration(nil), h.delays...)
}

// Hardware returns the bring-up collaborators backed by this host.
func (h *Host) Hardware() board.Hardware {
	return board.Hardware{
		Pins: h.Pins,
		Digital: func(p pins.LogicalPin, pull pins.Pull) button.Pin {
			g := h.GPIO(p.ID)
			g.Pull = pull
			// An idle pulled-up line reads high.
			if pull == pins.PullUp {
				g.Set(true)
			}
			return g
		},
		Analog:   func(p pins.LogicalPin) analog.Input { return h.ADC(p.ID) },
		Output:   func(p pins.LogicalPin) flash.Output { return h.GPIO(p.ID) },
		Pixels:   func(p pins.LogicalPin) pixels.Transmitter { return h.Strip },
		I2C:      h.I2C,
		FlashSPI: h.SPI,
		Serial:   h.Out,
		Delay:    h.Delay,
		Now:      h.Now,
	}
}
