package action

import (
	"context"

	"github.com/midiflux/core/gamepad"
)

// gameControllerButtonAction — spec.md §3
// GameControllerButton{button, controller_index}. Pressed state is
// derived from hasValue/value: a MIDI trigger with value 0 releases,
// any other value (or no value, for KeyPressRelease-style triggers)
// presses.
type gameControllerButtonAction struct {
	backend gamepad.Backend
	cfg     *GameControllerButtonConfig
}

func (a *gameControllerButtonAction) Execute(ctx context.Context, value int, hasValue bool) error {
	if a.backend == nil {
		return &ServiceUnavailableError{ActionKind: TypeGameControllerButton, Service: "game controller backend"}
	}
	pressed := true
	if hasValue && value == 0 {
		pressed = false
	}
	if err := a.backend.SetButton(a.cfg.ControllerIndex, a.cfg.Button, pressed); err != nil {
		return &InputEmitFailedError{Kind: "gamepad_button", Source: err}
	}
	return nil
}

// gameControllerAxisAction — spec.md §3 GameControllerAxis{axis,
// controller_index, axis_value, use_midi_value, min_value, max_value,
// invert}.
type gameControllerAxisAction struct {
	backend gamepad.Backend
	cfg     *GameControllerAxisConfig
}

func (a *gameControllerAxisAction) Execute(ctx context.Context, value int, hasValue bool) error {
	if a.backend == nil {
		return &ServiceUnavailableError{ActionKind: TypeGameControllerAxis, Service: "game controller backend"}
	}
	v := a.cfg.AxisValue
	if a.cfg.UseMidiValue && hasValue {
		v = scaleAxisValue(value, a.cfg.MinValue, a.cfg.MaxValue)
	}
	if a.cfg.Invert {
		v = -v
	}
	if err := a.backend.SetAxis(a.cfg.ControllerIndex, a.cfg.Axis, v); err != nil {
		return &InputEmitFailedError{Kind: "gamepad_axis", Source: err}
	}
	return nil
}

// scaleAxisValue maps a MIDI scalar in [min,max] linearly onto
// [-1.0,1.0], clamping out-of-range input.
func scaleAxisValue(value int, min, max uint8) float64 {
	if max <= min {
		return 0
	}
	clamped := value
	if clamped < int(min) {
		clamped = int(min)
	}
	if clamped > int(max) {
		clamped = int(max)
	}
	span := float64(max) - float64(min)
	return (float64(clamped)-float64(min))/span*2.0 - 1.0
}
