package timex

import (
	"testing"
	"time"
)

func TestClockCalibration(t *testing.T) {
	now := time.Unix(100, 0)
	c := NewClock(func() time.Time { return now })

	if c.Micros() != 0 || c.Calibrated() {
		t.Fatal("uncalibrated clock must read 0")
	}
	c.Calibrate()
	now = now.Add(1500 * time.Microsecond)
	if got := c.Micros(); got != 1500 {
		t.Fatalf("Micros = %d, want 1500", got)
	}
	c.Calibrate() // no-op
	if got := c.Millis(); got != 1 {
		t.Fatalf("Millis = %d, want 1", got)
	}
}
