package config

// -----------------------------------------------------------------------------
// Embedded configuration
//
// Key: board name
// Val: tuning for that board
// -----------------------------------------------------------------------------

var embedded = map[string]Board{
	"cplay": Default(),
	"pico": Board{
		Name:         "pico",
		AccelAddress: 0x18,
	}.Normalise(),
}
