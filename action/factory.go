package action

import "fmt"

// Factory constructs runtime Actions from Configs (spec.md §4.3,
// component C5). A Factory built with NewEditorFactory carries no
// services: every action it builds is safe to hold and inspect, and
// every action that calls a service fails with ServiceUnavailable if
// Execute is called. Delay calls no service and waits normally when
// executed, so a composite built only from Delays runs without error.
type Factory struct {
	services Services
	editor   bool
}

// NewRuntimeFactory returns a Factory wired to real services, used by
// the dispatcher.
func NewRuntimeFactory(services Services) *Factory {
	return &Factory{services: services}
}

// NewEditorFactory returns a Factory with no services, used by the GUI
// to round-trip profiles without side effects.
func NewEditorFactory() *Factory {
	return &Factory{editor: true}
}

// Create builds a runtime Action from cfg (spec.md §4.3). Construction
// is pure: it never touches the state store, input simulator, MIDI
// adapter, or gamepad backend.
func (f *Factory) Create(cfg Config) (Action, error) {
	switch c := cfg.(type) {
	case *KeyPressReleaseConfig:
		return &keyPressReleaseAction{input: f.services.Input, vk: c.VirtualKey}, nil
	case *KeyDownConfig:
		return &keyDownAction{
			state: f.services.State, input: f.services.Input,
			vk: c.VirtualKey, autoReleaseAfterMs: c.AutoReleaseAfterMs,
		}, nil
	case *KeyUpConfig:
		return &keyUpAction{state: f.services.State, input: f.services.Input, vk: c.VirtualKey}, nil
	case *KeyToggleConfig:
		return &keyToggleAction{state: f.services.State, input: f.services.Input, vk: c.VirtualKey}, nil
	case *MouseClickConfig:
		return &mouseClickAction{input: f.services.Input, button: c.Button}, nil
	case *MouseScrollConfig:
		return &mouseScrollAction{input: f.services.Input, direction: c.Direction, amount: c.Amount}, nil
	case *CommandExecutionConfig:
		return &commandExecutionAction{input: f.services.Input, cfg: c}, nil
	case *DelayConfig:
		return &delayAction{milliseconds: c.Milliseconds}, nil
	case *GameControllerButtonConfig:
		return &gameControllerButtonAction{backend: f.services.Gamepad, cfg: c}, nil
	case *GameControllerAxisConfig:
		return &gameControllerAxisAction{backend: f.services.Gamepad, cfg: c}, nil

	case *SequenceConfig:
		subs := make([]Action, len(c.SubActions))
		for i, sub := range c.SubActions {
			act, err := f.Create(sub)
			if err != nil {
				return nil, fmt.Errorf("action: build Sequence.sub_actions[%d]: %w", i, err)
			}
			subs[i] = act
		}
		return &sequenceAction{subActions: subs, errorHandling: c.ErrorHandling}, nil

	case *ConditionalConfig:
		branches := make([]conditionalBranch, len(c.Conditions))
		for i, cond := range c.Conditions {
			act, err := f.Create(cond.Action)
			if err != nil {
				return nil, fmt.Errorf("action: build Conditional.conditions[%d]: %w", i, err)
			}
			branches[i] = conditionalBranch{minValue: cond.MinValue, maxValue: cond.MaxValue, action: act}
		}
		return &conditionalAction{branches: branches}, nil

	case *RelativeCCConfig:
		inc, err := f.Create(c.Increase)
		if err != nil {
			return nil, fmt.Errorf("action: build RelativeCC.increase: %w", err)
		}
		dec, err := f.Create(c.Decrease)
		if err != nil {
			return nil, fmt.Errorf("action: build RelativeCC.decrease: %w", err)
		}
		return &relativeCCAction{increase: inc, decrease: dec}, nil

	case *MidiOutputConfig:
		if !f.editor && f.services.MidiOut == nil {
			return nil, fmt.Errorf("action: build MidiOutput: %w", &ServiceUnavailableError{ActionKind: TypeMidiOutput, Service: "midi output"})
		}
		return &midiOutputAction{sender: f.services.MidiOut, cfg: c}, nil

	case *SetStateConfig:
		if !f.editor && f.services.State == nil {
			return nil, fmt.Errorf("action: build SetState: %w", &ServiceUnavailableError{ActionKind: TypeSetState, Service: "state store"})
		}
		return &setStateAction{state: f.services.State, cfg: c}, nil

	case *StateConditionalConfig:
		if !f.editor && f.services.State == nil {
			return nil, fmt.Errorf("action: build StateConditional: %w", &ServiceUnavailableError{ActionKind: TypeStateConditional, Service: "state store"})
		}
		inner, err := f.Create(c.Condition.Action)
		if err != nil {
			return nil, fmt.Errorf("action: build StateConditional.condition.action: %w", err)
		}
		return &stateConditionalAction{state: f.services.State, cfg: c, action: inner}, nil

	case *AlternatingConfig:
		if !f.editor && f.services.State == nil {
			return nil, fmt.Errorf("action: build Alternating: %w", &ServiceUnavailableError{ActionKind: TypeAlternating, Service: "state store"})
		}
		primary, err := f.Create(c.Primary)
		if err != nil {
			return nil, fmt.Errorf("action: build Alternating.primary: %w", err)
		}
		secondary, err := f.Create(c.Secondary)
		if err != nil {
			return nil, fmt.Errorf("action: build Alternating.secondary: %w", err)
		}
		return &alternatingAction{
			state: f.services.State, cfg: c,
			primary: primary, secondary: secondary,
		}, nil

	default:
		return nil, fmt.Errorf("action: factory: unhandled config type %T", cfg)
	}
}
