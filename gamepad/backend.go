// Package gamepad defines the game-controller emulation facade the
// action model consumes (spec.md §6: "press_button(idx, name,
// pressed)", "set_axis(idx, name, value)").
package gamepad

import "github.com/rs/zerolog"

// Backend is the facade a real virtual-gamepad driver (vJoy, ViGEm,
// uinput joystick, ...) implements. Out of scope per spec.md §1; the
// core only depends on this interface.
type Backend interface {
	SetButton(controllerIndex int, name string, pressed bool) error
	SetAxis(controllerIndex int, name string, value float64) error
}

// LoggingBackend is a minimal Backend that records every call via
// zerolog instead of driving real hardware. No example in this pack
// ships a Go vJoy/ViGEm binding, so this is the concrete backend
// wired into cmd/midiflux by default; it exists so the gamepad
// actions in this module are exercised end-to-end rather than left
// dangling behind an interface nothing implements. Naming
// (SetButton/SetAxis, controllerIndex) follows viamrobotics-rdk's
// input.Controller conventions.
type LoggingBackend struct {
	log zerolog.Logger
}

func NewLoggingBackend(log zerolog.Logger) *LoggingBackend {
	return &LoggingBackend{log: log.With().Str("component", "gamepad.LoggingBackend").Logger()}
}

func (b *LoggingBackend) SetButton(controllerIndex int, name string, pressed bool) error {
	b.log.Debug().Int("controller", controllerIndex).Str("button", name).Bool("pressed", pressed).Msg("set button")
	return nil
}

func (b *LoggingBackend) SetAxis(controllerIndex int, name string, value float64) error {
	b.log.Debug().Int("controller", controllerIndex).Str("axis", name).Float64("value", value).Msg("set axis")
	return nil
}
