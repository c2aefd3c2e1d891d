// Package action implements the action model and factory (spec.md
// §4.2/§4.3, components C4/C5): a closed family of action
// configurations, their runtime counterparts, and the factory that
// builds one from the other in either a runtime or an editor context.
package action

import (
	"context"
	"encoding/json"
	"fmt"
)

// ValidationIssue is one problem found by Config.Validate, carrying
// the JSON-ish field path and a human message (spec.md §3: "validate()
// returns either OK or a list of paths-with-messages").
type ValidationIssue struct {
	Path    string
	Message string
}

func (i ValidationIssue) String() string {
	return fmt.Sprintf("%s: %s", i.Path, i.Message)
}

// Config is the closed polymorphic family from spec.md §3. Every
// variant carries a $type discriminator (Type) and validates itself
// independently of construction context.
type Config interface {
	Type() string
	Validate(path string) []ValidationIssue
}

// Action is the uniform execution contract every runtime action
// satisfies (spec.md §4.2). value/hasValue carry the triggering MIDI
// scalar; hasValue is false for SysEx triggers and for any action
// invoked without one.
type Action interface {
	Execute(ctx context.Context, value int, hasValue bool) error
}

// configType constants, matching the "$type" discriminator values
// used on the wire (spec.md §6).
const (
	TypeKeyPressRelease       = "KeyPressRelease"
	TypeKeyDown               = "KeyDown"
	TypeKeyUp                 = "KeyUp"
	TypeKeyToggle             = "KeyToggle"
	TypeMouseClick            = "MouseClick"
	TypeMouseScroll           = "MouseScroll"
	TypeCommandExecution      = "CommandExecution"
	TypeDelay                 = "Delay"
	TypeGameControllerButton  = "GameControllerButton"
	TypeGameControllerAxis    = "GameControllerAxis"
	TypeSequence              = "Sequence"
	TypeConditional           = "Conditional"
	TypeRelativeCC            = "RelativeCC"
	TypeMidiOutput            = "MidiOutput"
	TypeSetState              = "SetState"
	TypeStateConditional      = "StateConditional"
	TypeAlternating           = "Alternating"
)

// envelope is used to sniff the $type discriminator before dispatching
// to a concrete Config's own json.Unmarshal.
type envelope struct {
	Type string `json:"$type"`
}

// DecodeConfig parses one ActionConfig JSON object, resolving its
// $type discriminator to a concrete Config implementation (spec.md
// §4.5 "resolve $type discriminators; construct ActionConfig tree").
func DecodeConfig(data []byte) (Config, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("action: decode envelope: %w", err)
	}
	switch env.Type {
	case TypeKeyPressRelease:
		var c KeyPressReleaseConfig
		return decodeInto(data, &c)
	case TypeKeyDown:
		var c KeyDownConfig
		return decodeInto(data, &c)
	case TypeKeyUp:
		var c KeyUpConfig
		return decodeInto(data, &c)
	case TypeKeyToggle:
		var c KeyToggleConfig
		return decodeInto(data, &c)
	case TypeMouseClick:
		var c MouseClickConfig
		return decodeInto(data, &c)
	case TypeMouseScroll:
		var c MouseScrollConfig
		return decodeInto(data, &c)
	case TypeCommandExecution:
		var c CommandExecutionConfig
		return decodeInto(data, &c)
	case TypeDelay:
		var c DelayConfig
		return decodeInto(data, &c)
	case TypeGameControllerButton:
		var c GameControllerButtonConfig
		return decodeInto(data, &c)
	case TypeGameControllerAxis:
		var c GameControllerAxisConfig
		return decodeInto(data, &c)
	case TypeSequence:
		return decodeSequence(data)
	case TypeConditional:
		return decodeConditional(data)
	case TypeRelativeCC:
		return decodeRelativeCC(data)
	case TypeMidiOutput:
		var c MidiOutputConfig
		return decodeInto(data, &c)
	case TypeSetState:
		var c SetStateConfig
		return decodeInto(data, &c)
	case TypeStateConditional:
		return decodeStateConditional(data)
	case TypeAlternating:
		return decodeAlternating(data)
	case "":
		return nil, fmt.Errorf("action: missing $type discriminator")
	default:
		return nil, fmt.Errorf("action: unknown $type %q", env.Type)
	}
}

// decodeInto unmarshals data into a *T that also implements Config,
// returning it as the interface.
func decodeInto[T Config](data []byte, dst T) (Config, error) {
	if err := json.Unmarshal(data, dst); err != nil {
		return nil, fmt.Errorf("action: decode %T: %w", dst, err)
	}
	return dst, nil
}

// EncodeConfig serializes cfg back to its $type-tagged JSON form. Each
// concrete Config implements json.Marshaler itself (see
// configs_simple.go, configs_composite.go, midioutput.go) so
// EncodeConfig is just a passthrough to encoding/json.
func EncodeConfig(cfg Config) ([]byte, error) {
	return json.Marshal(cfg)
}
