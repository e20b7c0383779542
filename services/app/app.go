// Package app is the default behaviour on a ready device: button A paints
// the next pixel, A+B or a shake clears the ring, and a hot board is logged.
package app

import (
	"circuitplay-go/bus"
	"circuitplay-go/services/board"
	"circuitplay-go/types"
)

// HotC is the temperature at which the app logs a warning.
const HotC = 35

type App struct {
	d    *board.Device
	next int
}

// Start registers the app's listeners. Listening to A+B puts the buttons
// into composite mode and listening to gestures wakes the accelerometer.
func Start(d *board.Device) (*App, error) {
	a := &App{d: d}
	d.Thermometer.SetHighThreshold(HotC)
	for _, l := range []struct {
		src types.ID
		val uint16
		h   bus.Handler
	}{
		{types.IDButtonA, types.ButtonEvtClick, a.paint},
		{types.IDButtonAB, types.ButtonEvtClick, a.clear},
		{types.IDGesture, types.GestureShake, a.clear},
		{types.IDThermometer, types.SensorEvtThresholdHigh, a.hot},
	} {
		if _, err := d.Bus.Listen(l.src, l.val, l.h); err != nil {
			return nil, err
		}
	}
	d.Log.Log("[app] started")
	return a, nil
}

func (a *App) paint(bus.Event) {
	px := a.d.Pixels
	// Dim the ring in a dark room.
	level := int(a.d.LightSensor.Level())/4 + 8
	px.Set(a.next, uint8(a.d.Random(level)), uint8(a.d.Random(level)), uint8(a.d.Random(level)))
	a.next = (a.next + 1) % px.Len()
	if err := px.Show(); err != nil {
		a.d.Log.Log("[app] show:", err)
	}
}

func (a *App) clear(bus.Event) {
	px := a.d.Pixels
	for i := 0; i < px.Len(); i++ {
		px.Set(i, 0, 0, 0)
	}
	a.next = 0
	if err := px.Show(); err != nil {
		a.d.Log.Log("[app] show:", err)
	}
}

func (a *App) hot(bus.Event) {
	a.d.Log.Log("[app] hot", a.d.Thermometer.Value(), "C")
}

// Next is the pixel the next A click paints.
func (a *App) Next() int { return a.next }
