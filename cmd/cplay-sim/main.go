//go:build !tinygo

// Command cplay-sim runs the full bring-up and default app against a
// simulated board, with the serial console on stdout.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"strings"
	"time"

	"circuitplay-go/pins"
	"circuitplay-go/platform"
	"circuitplay-go/services/app"
	"circuitplay-go/services/board"
	"circuitplay-go/services/config"
	"circuitplay-go/types"
)

func main() {
	var (
		boardName = flag.String("board", "cplay", "board name ("+strings.Join(pins.Boards(), ", ")+")")
		cfgPath   = flag.String("config", "", "YAML file overriding the board tuning")
		dump      = flag.Bool("dump-config", false, "print the effective tuning and exit")
		runFor    = flag.Duration("for", 0, "stop after this long (0 runs until interrupted)")
		tapEvery  = flag.Duration("tap", time.Second, "press button A this often (0 disables)")
		tempRaw   = flag.Uint("temp", 512, "thermistor ADC reading, 0..1023")
		lightRaw  = flag.Uint("light", 300, "light sensor ADC reading, 0..1023")
	)
	flag.Parse()

	table, ok := pins.Table(*boardName)
	if !ok {
		fatal("[sim] unknown board", *boardName)
	}
	cfg, ok := config.Lookup(*boardName)
	if !ok {
		fatal("[sim] no tuning for", *boardName)
	}
	if *cfgPath != "" {
		data, err := os.ReadFile(*cfgPath)
		if err != nil {
			fatal("[sim] config:", err.Error())
		}
		if cfg, err = config.LoadYAML(data, cfg); err != nil {
			fatal("[sim] config:", err.Error())
		}
	}
	if *dump {
		out, err := config.MarshalYAML(cfg)
		if err != nil {
			fatal("[sim] config:", err.Error())
		}
		os.Stdout.Write(out)
		return
	}

	host := platform.NewHost(pins.NewRegistry(*boardName, table), cfg.AccelAddress, os.Stdout)
	host.RealTime()
	host.ADC(types.IDPinTemperature).SetRaw(uint16(*tempRaw))
	host.ADC(types.IDPinLight).SetRaw(uint16(*lightRaw))

	d, err := board.New(host.Hardware(), cfg)
	if err != nil {
		fatal("[sim] bring-up failed:", err.Error())
	}
	if _, err := app.Start(d); err != nil {
		fatal("[sim] app:", err.Error())
	}
	println("[sim] ready, seed", d.Seed())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if *runFor > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *runFor)
		defer cancel()
	}
	if *tapEvery > 0 {
		go tap(ctx, host.GPIO(types.IDPinButtonA), *tapEvery)
	}
	d.Run(ctx)
	println("[sim] stopped")
}

// tap holds the pin high long enough to pass the debounce filter, then
// releases it, once per period.
func tap(ctx context.Context, p *platform.Pin, every time.Duration) {
	tk := time.NewTicker(every)
	defer tk.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-tk.C:
			p.Set(true)
			time.Sleep(100 * time.Millisecond)
			p.Set(false)
		}
	}
}

func fatal(msg, detail string) {
	println(msg, detail)
	os.Exit(1)
}
