package types

// Button event values (sources IDButtonA/B/C/AB).
const (
	ButtonEvtDown      uint16 = 1
	ButtonEvtUp        uint16 = 2
	ButtonEvtClick     uint16 = 3
	ButtonEvtLongClick uint16 = 4
	ButtonEvtHold      uint16 = 5
)

// ButtonEvents selects how much of the button event set a driver reports.
type ButtonEvents uint8

const (
	// ButtonSimpleEvents reports only Down and Up.
	ButtonSimpleEvents ButtonEvents = iota
	// ButtonAllEvents adds Click, LongClick and Hold.
	ButtonAllEvents
)

func (e ButtonEvents) String() string {
	if e == ButtonAllEvents {
		return "all"
	}
	return "simple"
}

// Accelerometer event values.
const (
	AccelEvtDataUpdate uint16 = 1
)

// Gesture event values (source IDGesture).
const (
	GestureNone      uint16 = 0
	GestureTiltUp    uint16 = 1
	GestureTiltDown  uint16 = 2
	GestureTiltLeft  uint16 = 3
	GestureTiltRight uint16 = 4
	GestureFaceUp    uint16 = 5
	GestureFaceDown  uint16 = 6
	GestureFreefall  uint16 = 7
	GestureShake     uint16 = 11
)

// Analog sensor event values (thermometer, light sensor).
const (
	SensorEvtThresholdLow  uint16 = 1
	SensorEvtThresholdHigh uint16 = 2
	SensorEvtUpdate        uint16 = 3
)

// AccelSample is one accelerometer reading in milli-g.
type AccelSample struct {
	X, Y, Z int32
}
