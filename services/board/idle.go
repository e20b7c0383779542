package board

// IdleCallback is the scheduler's idle hook: low-priority housekeeping.
// Today that is draining the diagnostic log to the serial port.
func (d *Device) IdleCallback() {
	d.flusher.Flush()
}
