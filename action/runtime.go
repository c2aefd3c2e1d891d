package action

import (
	"fmt"

	"github.com/midiflux/core/gamepad"
	"github.com/midiflux/core/input"
	"github.com/midiflux/core/state"
)

// ServiceUnavailableError — spec.md §7 ServiceUnavailable{action_kind,
// service}: an action attempted to execute without a required service.
// Reaching this at runtime is an editor-context leak, not user error.
type ServiceUnavailableError struct {
	ActionKind string
	Service    string
}

func (e *ServiceUnavailableError) Error() string {
	return fmt.Sprintf("action: %s requires %s, which is unavailable in this context", e.ActionKind, e.Service)
}

// InputEmitFailedError — spec.md §7 InputEmitFailed{kind, source}.
type InputEmitFailedError struct {
	Kind   string
	Source error
}

func (e *InputEmitFailedError) Error() string {
	return fmt.Sprintf("action: emit %s failed: %v", e.Kind, e.Source)
}

func (e *InputEmitFailedError) Unwrap() error { return e.Source }

// MidiSendFailedError — spec.md §7 MidiSendFailed{device, source}.
type MidiSendFailedError struct {
	Device string
	Source error
}

func (e *MidiSendFailedError) Error() string {
	return fmt.Sprintf("action: send to MIDI device %q failed: %v", e.Device, e.Source)
}

func (e *MidiSendFailedError) Unwrap() error { return e.Source }

// CommandFailedError — spec.md §7
// CommandFailed{command, exit_code_or_spawn_error}.
type CommandFailedError struct {
	Command string
	Source  error
}

func (e *CommandFailedError) Error() string {
	return fmt.Sprintf("action: command %q failed: %v", e.Command, e.Source)
}

func (e *CommandFailedError) Unwrap() error { return e.Source }

// MidiOutputSender is the slice of the MIDI adapter's Send method this
// package depends on (spec.md §6: "send(output_device_name, bytes) →
// result").
type MidiOutputSender interface {
	Send(deviceName string, data []byte) error
}

// Services bundles the facades a runtime action may depend on
// (spec.md §4.3). A Factory built by NewEditorFactory holds a
// zero-value Services, so its actions that use a service fail at
// Execute time with ServiceUnavailable. A runtime Factory whose
// Services lacks the state store or MIDI output fails at Create for
// SetState, StateConditional, Alternating and MidiOutput; other actions
// missing a service are built and fail at Execute time.
type Services struct {
	State    *state.Store
	Input    input.Simulator
	Gamepad  gamepad.Backend
	MidiOut  MidiOutputSender
}

// IsEditorContext reports whether no backing services are attached.
func (s Services) IsEditorContext() bool {
	return s.State == nil && s.Input == nil && s.Gamepad == nil && s.MidiOut == nil
}
