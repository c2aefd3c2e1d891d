// Command midiflux is the composition-root binary: it wires the real
// MIDI adapter, input simulator, and game-controller backend into the
// core (action/registry/profile/device/dispatch/controller) and runs
// until interrupted. No UI; per spec.md §1 the core's surrounding host
// integration is out of scope.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/midiflux/core/action"
	"github.com/midiflux/core/controller"
	"github.com/midiflux/core/device"
	"github.com/midiflux/core/dispatch"
	"github.com/midiflux/core/gamepad"
	"github.com/midiflux/core/input"
	"github.com/midiflux/core/midi"
	"github.com/midiflux/core/registry"
	"github.com/midiflux/core/state"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "midiflux:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := newLogger(cfg.LogLevel)

	sim, err := input.NewUinputSimulator()
	if err != nil {
		return fmt.Errorf("create input simulator: %w", err)
	}
	defer sim.Close()

	adapter, err := midi.NewRTMIDIAdapter(log)
	if err != nil {
		return fmt.Errorf("open midi adapter: %w", err)
	}
	defer adapter.Close()

	gp := gamepad.NewLoggingBackend(log)

	st := state.New()
	reg := registry.New()
	factory := action.NewRuntimeFactory(action.Services{
		State:   st,
		Input:   sim,
		Gamepad: gp,
		MidiOut: adapter,
	})
	mgr := device.New(st, reg, factory)

	releaser := func(vk uint16) {
		if err := sim.SendKeyUp(vk); err != nil {
			log.Warn().Err(err).Uint16("vk", vk).Msg("key-release sweep failed to emit key up")
		}
	}
	ctrl := controller.New(mgr, releaser, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	proc := dispatch.NewProcessor(log)
	disp := dispatch.NewDispatcher(mgr, reg, proc, log)

	if err := openConfiguredDevices(adapter, mgr, disp, ctx, cfg.MidiChannels); err != nil {
		return fmt.Errorf("open midi devices: %w", err)
	}

	if cfg.ProfilePath != "" {
		if errs, err := ctrl.Load(cfg.ProfilePath); err != nil {
			return fmt.Errorf("load profile: %w", err)
		} else if len(errs) > 0 {
			for _, e := range errs {
				log.Error().Str("path", e.Path).Str("message", e.Message).Msg("profile validation error")
			}
			return fmt.Errorf("profile %q failed validation (%d errors)", cfg.ProfilePath, len(errs))
		}
	} else {
		log.Warn().Msg("no profile configured; running with an empty registry")
	}

	log.Info().Msg("midiflux running, press Ctrl+C to stop")
	<-ctx.Done()
	log.Info().Msg("shutting down")
	return nil
}

// openConfiguredDevices opens every MIDI input the adapter reports and
// subscribes the dispatcher, binding each device's reported name into
// the manager so device.Manager.DeviceNamesForID resolves it.
func openConfiguredDevices(adapter *midi.RTMIDIAdapter, mgr *device.Manager, disp *dispatch.Dispatcher, ctx context.Context, _ []int) error {
	devices, err := adapter.ListDevices()
	if err != nil {
		return err
	}
	adapter.Subscribe(func(id string, ev midi.Event) {
		disp.Dispatch(ctx, id, ev)
	})
	for _, d := range devices {
		if !d.SupportsInput {
			continue
		}
		if err := adapter.OpenInput(d.ID); err != nil {
			return fmt.Errorf("open input %q: %w", d.Name, err)
		}
		mgr.BindDevice(d.ID, d.Name)
	}
	return nil
}

type config struct {
	ProfilePath  string
	LogLevel     string
	MidiChannels []int
}

func loadConfig() (config, error) {
	flags := pflag.NewFlagSet("midiflux", pflag.ContinueOnError)
	flags.String("profile", "", "path to a profile JSON file to load at startup")
	flags.String("log-level", "info", "zerolog level: debug, info, warn, error")
	if err := flags.Parse(os.Args[1:]); err != nil {
		return config{}, err
	}

	v := viper.New()
	v.SetEnvPrefix("MIDIFLUX")
	v.AutomaticEnv()
	if err := v.BindPFlags(flags); err != nil {
		return config{}, err
	}
	v.SetDefault("log-level", "info")

	return config{
		ProfilePath: v.GetString("profile"),
		LogLevel:    v.GetString("log-level"),
	}, nil
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(lvl).
		With().Timestamp().Logger()
}
