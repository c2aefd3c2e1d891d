package action

import (
	"context"
	"time"

	"github.com/midiflux/core/input"
	"github.com/midiflux/core/state"
)

// keyPressReleaseAction — spec.md §4.2 KeyPressRelease(vk): emits
// key_down then key_up, never touching *Key{vk} state.
type keyPressReleaseAction struct {
	input input.Simulator
	vk    uint16
}

func (a *keyPressReleaseAction) Execute(ctx context.Context, value int, hasValue bool) error {
	if a.input == nil {
		return &ServiceUnavailableError{ActionKind: TypeKeyPressRelease, Service: "input simulator"}
	}
	if err := a.input.SendKeyDown(a.vk); err != nil {
		return &InputEmitFailedError{Kind: "key_down", Source: err}
	}
	if err := a.input.SendKeyUp(a.vk); err != nil {
		return &InputEmitFailedError{Kind: "key_up", Source: err}
	}
	return nil
}

// keyDownAction — spec.md §4.2 KeyDown(vk, auto_release?): idempotent
// while the internal *Key{vk} state is already 1; optionally schedules
// an independent release timer.
type keyDownAction struct {
	state              *state.Store
	input              input.Simulator
	vk                 uint16
	autoReleaseAfterMs *uint32
}

func (a *keyDownAction) Execute(ctx context.Context, value int, hasValue bool) error {
	if a.state == nil || a.input == nil {
		return &ServiceUnavailableError{ActionKind: TypeKeyDown, Service: "input simulator/state store"}
	}
	key := state.InternalKeyName(a.vk)
	if a.state.Get(key) < 1 {
		if err := a.input.SendKeyDown(a.vk); err != nil {
			return &InputEmitFailedError{Kind: "key_down", Source: err}
		}
		if err := a.state.SetInternal(key, 1); err != nil {
			return err
		}
	}
	if a.autoReleaseAfterMs != nil {
		delay := time.Duration(*a.autoReleaseAfterMs) * time.Millisecond
		vk, st, in := a.vk, a.state, a.input
		go func() {
			timer := time.NewTimer(delay)
			defer timer.Stop()
			select {
			case <-timer.C:
				releaseKey(st, in, vk)
			case <-ctx.Done():
			}
		}()
	}
	return nil
}

// releaseKey applies the KeyUp state transition (a no-op while
// *Key{vk} is below 1), used both by KeyUp.Execute and by auto-release
// timers.
func releaseKey(st *state.Store, in input.Simulator, vk uint16) error {
	key := state.InternalKeyName(vk)
	if st.Get(key) < 1 {
		return nil
	}
	if err := in.SendKeyUp(vk); err != nil {
		return &InputEmitFailedError{Kind: "key_up", Source: err}
	}
	return st.SetInternal(key, 0)
}

// keyUpAction — spec.md §4.2 KeyUp(vk): no-op unless *Key{vk} == 1.
type keyUpAction struct {
	state *state.Store
	input input.Simulator
	vk    uint16
}

func (a *keyUpAction) Execute(ctx context.Context, value int, hasValue bool) error {
	if a.state == nil || a.input == nil {
		return &ServiceUnavailableError{ActionKind: TypeKeyUp, Service: "input simulator/state store"}
	}
	return releaseKey(a.state, a.input, a.vk)
}

// keyToggleAction — spec.md §4.2 KeyToggle(vk): flips *Key{vk} between
// 0/absent and 1, emitting the matching OS event.
type keyToggleAction struct {
	state *state.Store
	input input.Simulator
	vk    uint16
}

func (a *keyToggleAction) Execute(ctx context.Context, value int, hasValue bool) error {
	if a.state == nil || a.input == nil {
		return &ServiceUnavailableError{ActionKind: TypeKeyToggle, Service: "input simulator/state store"}
	}
	key := state.InternalKeyName(a.vk)
	if a.state.Get(key) < 1 {
		if err := a.input.SendKeyDown(a.vk); err != nil {
			return &InputEmitFailedError{Kind: "key_down", Source: err}
		}
		return a.state.SetInternal(key, 1)
	}
	if err := a.input.SendKeyUp(a.vk); err != nil {
		return &InputEmitFailedError{Kind: "key_up", Source: err}
	}
	return a.state.SetInternal(key, 0)
}
