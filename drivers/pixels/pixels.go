// Package pixels drives a chain of WS2812-style pixels through a byte
// transmitter (GRB order, three bytes per pixel).
package pixels

// Transmitter sends one frame to the chain. ws2812.Device satisfies it.
type Transmitter interface {
	Write(buf []byte) (int, error)
}

type Strip struct {
	tx    Transmitter
	frame []byte
}

func New(tx Transmitter, count int) *Strip {
	return &Strip{tx: tx, frame: make([]byte, 3*count)}
}

func (s *Strip) Name() string { return "pixels" }
func (s *Strip) Init() error  { return nil }

// Len returns the number of pixels.
func (s *Strip) Len() int { return len(s.frame) / 3 }

// FrameSize returns the bytes per frame.
func (s *Strip) FrameSize() int { return len(s.frame) }

// Set stores a colour; Show sends it.
func (s *Strip) Set(i int, r, g, b uint8) {
	if i < 0 || i >= s.Len() {
		return
	}
	s.frame[3*i], s.frame[3*i+1], s.frame[3*i+2] = g, r, b
}

func (s *Strip) Show() error { return s.Send(s.frame) }

// Send transmits buf as-is.
func (s *Strip) Send(buf []byte) error {
	_, err := s.tx.Write(buf)
	return err
}

// Blank sends one all-zero frame without touching the stored colours.
func (s *Strip) Blank() error {
	return s.Send(make([]byte, len(s.frame)))
}
