// Command overlayd is the gamepad-to-keyboard/mouse translation daemon:
// it loads the ambient config and profile, builds an engine.Engine wired
// to the platform's dispatcher.Sink, and ticks it once per frame from
// whatever gamepad and fallback-hotkey sources the platform supports.
// Structured the way the teacher's cmd/palaver/main.go wires its config,
// transcriber, recorder, and hotkey listener together, generalized from
// "wire once at startup" to "wire once, then tick forever."
package main

import (
	"context"
	"flag"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.design/x/mainthread"

	"github.com/Danondso/gamepadoverlay/internal/appconfig"
	"github.com/Danondso/gamepadoverlay/internal/engine"
	"github.com/Danondso/gamepadoverlay/internal/globalhotkey"
	"github.com/Danondso/gamepadoverlay/internal/inputmap"
	"github.com/Danondso/gamepadoverlay/internal/painter"
	"github.com/Danondso/gamepadoverlay/internal/profile"
)

// tickInterval is the daemon's fixed per-frame period; §5 only mandates
// ordering within a tick, not a specific rate.
const tickInterval = 16 * time.Millisecond

func main() {
	// golang.design/x/mainthread requires the whole program to run inside
	// the function it schedules onto the OS main thread, since
	// internal/globalhotkey's Register/Unregister calls are thread-affine
	// on several platforms.
	mainthread.Init(run)
}

func run() {
	debug := flag.Bool("debug", false, "enable debug logging to stderr")
	devicePath := flag.String("gamepad-device", "", "evdev device path (auto-detected if empty, Linux only)")
	flag.Parse()

	var dbg *log.Logger
	if *debug {
		dbg = log.New(os.Stderr, "[overlayd] ", log.Ltime|log.Lmicroseconds)
	} else {
		dbg = log.New(io.Discard, "", 0)
	}

	cfg, err := appconfig.Load(appconfig.DefaultPath())
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	store, err := profile.LoadINI(cfg.ProfilePath)
	if err != nil {
		dbg.Printf("profile: %v (starting from an empty profile)", err)
		store = profile.New()
	}

	im, err := inputmap.Load(store)
	if err != nil {
		log.Fatalf("load input map: %v", err)
	}

	sink, err := newSink()
	if err != nil {
		log.Fatalf("create sink: %v", err)
	}

	e := engine.New(store, im, sink, dbg)
	e.SetTarget(engine.TargetWindow{
		Rect:    painter.Rect{X: 0, Y: 0, W: 1920, H: 1080},
		UIScale: cfg.UIScale,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		dbg.Printf("shutting down")
		cancel()
	}()

	events := make(chan engine.ButtonEvent, 64)
	go runGamepadSource(ctx, *devicePath, events, dbg)

	if cfg.Hotkey.Combo != "" {
		listener, err := globalhotkey.NewListener(cfg.Hotkey.Combo)
		if err != nil {
			dbg.Printf("globalhotkey: %v (fallback trigger disabled)", err)
		} else {
			dbg.Printf("fallback hotkey: %s -> signal %d", listener.KeyName(), cfg.Hotkey.SignalID)
			go func() {
				sig := cfg.Hotkey.SignalID
				err := listener.Start(ctx,
					func() { trySend(ctx, events, engine.ButtonEvent{SignalID: sig, Pressed: true}) },
					func() { trySend(ctx, events, engine.ButtonEvent{SignalID: sig, Pressed: false}) },
				)
				if err != nil && ctx.Err() == nil {
					dbg.Printf("globalhotkey: listener stopped: %v", err)
				}
			}()
		}
	}

	runLoop(ctx, e, events, dbg)
}

func trySend(ctx context.Context, events chan<- engine.ButtonEvent, ev engine.ButtonEvent) {
	select {
	case events <- ev:
	case <-ctx.Done():
	}
}

// runLoop drains whatever ButtonEvents arrived since the last tick and
// runs the engine forward at tickInterval, per §5's ordering contract,
// until ctx is cancelled.
func runLoop(ctx context.Context, e *engine.Engine, events <-chan engine.ButtonEvent, dbg *log.Logger) {
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	var pending []engine.ButtonEvent
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-events:
			pending = append(pending, ev)
		case <-ticker.C:
			if err := e.Tick(tickInterval, pending); err != nil {
				dbg.Printf("tick: %v", err)
			}
			pending = pending[:0]
			if n := e.Errors.Len(); n > 0 {
				for _, recErr := range e.Errors.Recent(n) {
					dbg.Printf("recorded: %v", recErr)
				}
			}
		}
	}
}
