// Package serial is the diagnostic UART output.
package serial

import "io"

type Port struct {
	w   io.Writer
	one [1]byte
}

func New(w io.Writer) *Port { return &Port{w: w} }

func (p *Port) Name() string { return "serial" }
func (p *Port) Init() error  { return nil }

// Putc writes a single byte.
func (p *Port) Putc(c byte) error {
	p.one[0] = c
	_, err := p.w.Write(p.one[:])
	return err
}

func (p *Port) Write(b []byte) (int, error) { return p.w.Write(b) }
