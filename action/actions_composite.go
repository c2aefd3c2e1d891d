package action

import (
	"context"
	"fmt"
	"strings"
)

// sequenceAction — spec.md §4.2 Sequence(subs, error_handling).
type sequenceAction struct {
	subActions    []Action
	errorHandling ErrorHandling
}

// SequenceError aggregates the sub-action failures from one Sequence
// execution (spec.md §4.2: "an error listing failures").
type SequenceError struct {
	Failures []error
}

func (e *SequenceError) Error() string {
	msgs := make([]string, len(e.Failures))
	for i, err := range e.Failures {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("sequence: %d sub-action(s) failed: %s", len(e.Failures), strings.Join(msgs, "; "))
}

func (e *SequenceError) Unwrap() []error { return e.Failures }

func (a *sequenceAction) Execute(ctx context.Context, value int, hasValue bool) error {
	var failures []error
	for _, sub := range a.subActions {
		if err := sub.Execute(ctx, value, hasValue); err != nil {
			failures = append(failures, err)
			if a.errorHandling == StopOnError {
				break
			}
		}
	}
	if len(failures) == 0 {
		return nil
	}
	return &SequenceError{Failures: failures}
}

// conditionalBranch is the runtime counterpart of a ConditionalBranch.
type conditionalBranch struct {
	minValue uint8
	maxValue uint8
	action   Action
}

// conditionalAction — spec.md §4.2 Conditional(conditions): exactly
// one branch matches (configuration guarantees non-overlap); no-op if
// none does.
type conditionalAction struct {
	branches []conditionalBranch
}

func (a *conditionalAction) Execute(ctx context.Context, value int, hasValue bool) error {
	if !hasValue {
		return nil
	}
	for _, b := range a.branches {
		if uint8(value) >= b.minValue && uint8(value) <= b.maxValue {
			return b.action.Execute(ctx, value, hasValue)
		}
	}
	return nil
}

// relativeCCAction — spec.md §4.2 RelativeCC(increase, decrease). The
// sign of an already-decoded value selects the branch; see
// midi.DecodeRelativeDelta for where the raw byte becomes a signed
// delta.
type relativeCCAction struct {
	increase Action
	decrease Action
}

func (a *relativeCCAction) Execute(ctx context.Context, value int, hasValue bool) error {
	if !hasValue || value == 0 {
		return nil
	}
	if value > 0 {
		return a.increase.Execute(ctx, value, hasValue)
	}
	return a.decrease.Execute(ctx, value, hasValue)
}
