package timex

import "time"

// Clock is the system timer. Until Calibrate is called every reading is 0,
// so nothing can timestamp against an uncalibrated base.
type Clock struct {
	now  func() time.Time
	base time.Time
	ok   bool
}

// NewClock returns an uncalibrated clock. now defaults to time.Now.
func NewClock(now func() time.Time) *Clock {
	if now == nil {
		now = time.Now
	}
	return &Clock{now: now}
}

// Calibrate fixes the epoch. Later calls are no-ops.
func (c *Clock) Calibrate() {
	if c.ok {
		return
	}
	c.base = c.now()
	c.ok = true
}

func (c *Clock) Calibrated() bool { return c.ok }

// Micros returns microseconds since calibration.
func (c *Clock) Micros() int64 {
	if !c.ok {
		return 0
	}
	return c.now().Sub(c.base).Microseconds()
}

// Millis returns milliseconds since calibration.
func (c *Clock) Millis() int64 { return c.Micros() / 1000 }
