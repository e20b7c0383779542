package types

// ID identifies an event source on the bus. The values below are the wire
// contract with application code and must not be renumbered.
type ID uint16

// Wildcards accepted by bus listeners.
const (
	IDAny  ID     = 0
	EvtAny uint16 = 0
)

// ------------------------
// Reserved component IDs
// ------------------------

const (
	IDButtonA       ID = 1
	IDButtonB       ID = 2
	IDButtonAB      ID = 3
	IDAccelerometer ID = 5
	IDThermometer   ID = 8
	IDSerial        ID = 12
	IDGesture       ID = 13
	IDSystemTimer   ID = 14
	IDScheduler     ID = 15
	IDLightSensor   ID = 17
	IDButtonC       ID = 26
	IDFlash         ID = 27
	IDPixels        ID = 28

	// IDMessageBusListener is the source of the reflective
	// "listener registered" notification; its value is the registered source.
	IDMessageBusListener ID = 1021
)

// Logical pin IDs live in their own range so they never collide with
// component IDs above.
const (
	IDPinA0 ID = 100 + iota
	IDPinA1
	IDPinA2
	IDPinA3
	IDPinA4
	IDPinA5
	IDPinA6
	IDPinA7
	IDPinLED
	IDPinButtonA
	IDPinButtonB
	IDPinButtonC
	IDPinNeopixel
	IDPinSDA
	IDPinSCL
	IDPinInt1
	IDPinTemperature
	IDPinLight
	IDPinFlashMOSI
	IDPinFlashMISO
	IDPinFlashSCLK
	IDPinFlashCS
	IDPinTX
	IDPinRX
)

var names = map[ID]string{
	IDButtonA:            "buttonA",
	IDButtonB:            "buttonB",
	IDButtonAB:           "buttonAB",
	IDAccelerometer:      "accelerometer",
	IDThermometer:        "thermometer",
	IDSerial:             "serial",
	IDGesture:            "gesture",
	IDSystemTimer:        "timer",
	IDScheduler:          "scheduler",
	IDLightSensor:        "light",
	IDButtonC:            "buttonC",
	IDFlash:              "flash",
	IDPixels:             "pixels",
	IDMessageBusListener: "bus_listener",
}

// Name returns a short diagnostic name for a component ID, or "" if unknown.
func (id ID) Name() string { return names[id] }
