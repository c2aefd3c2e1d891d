package action

import (
	"context"

	"github.com/midiflux/core/state"
)

// setStateAction — spec.md §4.2 SetState(key, value).
type setStateAction struct {
	state *state.Store
	cfg   *SetStateConfig
}

func (a *setStateAction) Execute(ctx context.Context, value int, hasValue bool) error {
	if a.state == nil {
		return &ServiceUnavailableError{ActionKind: TypeSetState, Service: "state store"}
	}
	return a.state.Set(a.cfg.StateKey, a.cfg.StateValue)
}

// stateConditionalAction — spec.md §4.2 StateConditional(key,
// condition): set_state_after applies regardless of the inner
// action's outcome.
type stateConditionalAction struct {
	state  *state.Store
	cfg    *StateConditionalConfig
	action Action
}

func (a *stateConditionalAction) Execute(ctx context.Context, value int, hasValue bool) error {
	if a.state == nil {
		return &ServiceUnavailableError{ActionKind: TypeStateConditional, Service: "state store"}
	}
	current := a.state.Get(a.cfg.StateKey)
	if !evalComparison(current, a.cfg.Condition.StateValue, a.cfg.Condition.Comparison) {
		return nil
	}
	execErr := a.action.Execute(ctx, value, hasValue)
	if a.cfg.Condition.SetStateAfter != -1 {
		if err := a.state.Set(a.cfg.StateKey, a.cfg.Condition.SetStateAfter); err != nil {
			if execErr != nil {
				return execErr
			}
			return err
		}
	}
	return execErr
}

func evalComparison(current, target int32, cmp Comparison) bool {
	switch cmp {
	case Equals:
		return current == target
	case GreaterThan:
		return current > target
	case LessThan:
		return current < target
	default:
		return false
	}
}

// alternatingAction — spec.md §4.2/§9 Alternating(primary, secondary,
// start_with_primary, key?): toggles a dedicated state key between 0
// (next: primary) and 1 (next: secondary).
type alternatingAction struct {
	state     *state.Store
	cfg       *AlternatingConfig
	primary   Action
	secondary Action
}

func (a *alternatingAction) Execute(ctx context.Context, value int, hasValue bool) error {
	if a.state == nil {
		return &ServiceUnavailableError{ActionKind: TypeAlternating, Service: "state store"}
	}
	key := a.cfg.StateKey
	current := a.state.Get(key)
	if current < 0 {
		current = 0
		if !a.cfg.StartWithPrimary {
			current = 1
		}
		if err := a.setAlternatingState(key, current); err != nil {
			return err
		}
	}
	if current == 0 {
		err := a.primary.Execute(ctx, value, hasValue)
		if setErr := a.setAlternatingState(key, 1); setErr != nil && err == nil {
			err = setErr
		}
		return err
	}
	err := a.secondary.Execute(ctx, value, hasValue)
	if setErr := a.setAlternatingState(key, 0); setErr != nil && err == nil {
		err = setErr
	}
	return err
}

// setAlternatingState writes key through whichever Store entry point
// its namespace requires: auto-generated keys live in the reserved
// @Alt namespace (state.IsAlternatingKey), which state.Set rejects, so
// those go through state.SetAlternating; an explicit state_key (e.g.
// S1's "Tg") is a regular user key and goes through state.Set as
// before.
func (a *alternatingAction) setAlternatingState(key string, value int32) error {
	if state.IsAlternatingKey(key) {
		return a.state.SetAlternating(key, value)
	}
	return a.state.Set(key, value)
}
