package analog

import "math"

// Thermistor describes an NTC thermistor in a divider with a series
// resistor, converted with the B-parameter equation.
type Thermistor struct {
	NominalC    float64 // temperature at which the thermistor reads NominalOhms
	NominalOhms float64
	Beta        float64
	SeriesOhms  float64
	ZeroOffset  float64 // Kelvin offset of 0 °C
}

// Celsius converts a 10-bit reading to whole degrees, rounded.
func (t Thermistor) Celsius(raw uint16) int32 {
	r := math.Min(math.Max(float64(raw), 1), 1022)
	ohms := t.SeriesOhms * (1023 - r) / r
	inv := math.Log(ohms/t.NominalOhms)/t.Beta + 1/(t.NominalC+t.ZeroOffset)
	return int32(math.Round(1/inv - t.ZeroOffset))
}
