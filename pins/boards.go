package pins

import "circuitplay-go/types"

// CircuitPlayground is the pin table of the Circuit Playground Express.
var CircuitPlayground = []LogicalPin{
	{types.IDPinA0, PA(2), CapAD},
	{types.IDPinA1, PA(5), CapAD | CapTouch},
	{types.IDPinA2, PA(6), CapAD | CapTouch},
	{types.IDPinA3, PA(7), CapAD | CapTouch | CapPWM},
	{types.IDPinA4, PB(3), CapAD | CapTouch},
	{types.IDPinA5, PB(2), CapAD | CapTouch},
	{types.IDPinA6, PB(9), CapAD | CapTouch | CapPWM},
	{types.IDPinA7, PB(8), CapAD | CapTouch | CapPWM},
	{types.IDPinLED, PA(17), CapDigital | CapPWM},
	{types.IDPinButtonA, PA(28), CapDigital},
	{types.IDPinButtonB, PA(14), CapDigital},
	{types.IDPinButtonC, PA(15), CapDigital}, // slide switch
	{types.IDPinNeopixel, PB(23), CapDigital},
	{types.IDPinSDA, PA(0), CapDigital},
	{types.IDPinSCL, PA(1), CapDigital},
	{types.IDPinInt1, PA(13), CapDigital},
	{types.IDPinTemperature, PA(9), CapAnalog},
	{types.IDPinLight, PA(11), CapAnalog},
	{types.IDPinFlashMOSI, PB(22), CapDigital},
	{types.IDPinFlashMISO, PA(18), CapDigital},
	{types.IDPinFlashSCLK, PA(19), CapDigital},
	{types.IDPinFlashCS, PA(10), CapDigital},
	{types.IDPinTX, PB(8), CapDigital},
	{types.IDPinRX, PB(9), CapDigital},
}

// Rhubarb is the smaller Rhubarb board: analog header, LED, two buttons and
// a pixel output. It lacks the sensors and flash bring-up needs, so it is
// pin data only and not listed by Boards.
var Rhubarb = []LogicalPin{
	{types.IDPinA0, PA(16), CapAD},
	{types.IDPinA1, PA(17), CapAD},
	{types.IDPinA2, PA(18), CapAD},
	{types.IDPinA3, PA(8), CapAD},
	{types.IDPinA4, PA(9), CapAD},
	{types.IDPinA5, PA(10), CapAD},
	{types.IDPinA6, PA(11), CapAD},
	{types.IDPinLED, PA(22), CapDigital},
	{types.IDPinButtonA, PA(23), CapDigital},
	{types.IDPinButtonB, PA(3), CapDigital},
	{types.IDPinNeopixel, PA(15), CapDigital},
}

// Pico carries the Circuit Playground parts on a Raspberry Pi Pico. The
// temperature and light channels sit on ADC0 and ADC1.
var Pico = []LogicalPin{
	{types.IDPinA0, GP(28), CapAD},
	{types.IDPinLED, GP(25), CapDigital | CapPWM},
	{types.IDPinButtonA, GP(14), CapDigital},
	{types.IDPinButtonB, GP(15), CapDigital},
	{types.IDPinButtonC, GP(13), CapDigital},
	{types.IDPinNeopixel, GP(22), CapDigital},
	{types.IDPinSDA, GP(4), CapDigital},
	{types.IDPinSCL, GP(5), CapDigital},
	{types.IDPinInt1, GP(6), CapDigital},
	{types.IDPinTemperature, GP(26), CapAnalog},
	{types.IDPinLight, GP(27), CapAnalog},
	{types.IDPinFlashMISO, GP(16), CapDigital},
	{types.IDPinFlashCS, GP(17), CapDigital},
	{types.IDPinFlashSCLK, GP(18), CapDigital},
	{types.IDPinFlashMOSI, GP(19), CapDigital},
	{types.IDPinTX, GP(0), CapDigital},
	{types.IDPinRX, GP(1), CapDigital},
}

// Boards names the tables that carry every part bring-up needs.
func Boards() []string { return []string{"cplay", "pico"} }

// Table returns the pin table for one of Boards.
func Table(board string) ([]LogicalPin, bool) {
	switch board {
	case "cplay":
		return CircuitPlayground, true
	case "pico":
		return Pico, true
	}
	return nil, false
}
