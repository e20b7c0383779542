//go:build rp2040

// Command cplay is the firmware image for the Pico-carried Circuit
// Playground parts.
package main

import (
	"context"
	"time"

	"circuitplay-go/pins"
	"circuitplay-go/platform"
	"circuitplay-go/services/app"
	"circuitplay-go/services/board"
	"circuitplay-go/services/config"
)

const boardName = "pico"

func main() {
	// Allow USB CDC to enumerate before we print.
	time.Sleep(2 * time.Second)
	println("[cplay] boot")

	cfg, ok := config.Lookup(boardName)
	if !ok {
		halt("[cplay] no tuning for", boardName)
	}
	hw, err := platform.Hardware(pins.NewRegistry(boardName, pins.Pico))
	if err != nil {
		halt("[cplay] platform:", err.Error())
	}
	d, err := board.New(hw, cfg)
	if err != nil {
		halt("[cplay] bring-up failed:", err.Error())
	}
	if _, err := app.Start(d); err != nil {
		halt("[cplay] app:", err.Error())
	}
	println("[cplay] ready")

	d.Run(context.Background())
}

// halt reports a fatal error forever; the device is not usable.
func halt(msg, detail string) {
	for {
		println(msg, detail)
		time.Sleep(5 * time.Second)
	}
}
