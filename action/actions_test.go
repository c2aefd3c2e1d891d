package action_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/midiflux/core/action"
	"github.com/midiflux/core/input"
	"github.com/midiflux/core/midi"
	"github.com/midiflux/core/mock"
	"github.com/midiflux/core/state"
)

func newRuntimeFactory(t *testing.T) (*action.Factory, *state.Store, *mock.Simulator) {
	t.Helper()
	st := state.New()
	sim := mock.NewSimulator()
	return action.NewRuntimeFactory(action.Services{State: st, Input: sim}), st, sim
}

// S1 — Alternating toggle.
func TestScenario_S1_AlternatingToggle(t *testing.T) {
	f, st, sim := newRuntimeFactory(t)
	cfg := &action.AlternatingConfig{
		Primary:          &action.KeyPressReleaseConfig{VirtualKey: 65},
		Secondary:        &action.KeyPressReleaseConfig{VirtualKey: 66},
		StartWithPrimary: true,
		StateKey:         "Tg",
	}
	act, err := f.Create(cfg)
	require.NoError(t, err)

	expectState := []int32{1, 0, 1}
	for i := 0; i < 3; i++ {
		require.NoError(t, act.Execute(context.Background(), 100, true))
		assert.Equal(t, expectState[i], st.Get("Tg"), "state after trigger %d", i+1)
		assert.False(t, sim.IsKeyDown(65))
		assert.False(t, sim.IsKeyDown(66))
	}
}

// Alternating with no explicit state_key: StateKey is the auto-derived
// @Alt... key (as profile.BuildRegistry assigns it via
// DeriveAlternatingKey), which must round-trip through a real write
// path rather than fail with ErrInvalidStateKey on first trigger.
func TestScenario_S1_AlternatingToggle_AutoGeneratedKey(t *testing.T) {
	f, st, sim := newRuntimeFactory(t)
	fp := midi.Fingerprint{DeviceName: "DevA", Channel: midi.AnyChannel, Kind: midi.KindNoteOn(60)}
	autoKey := action.DeriveAlternatingKey("DevA", fp, "mapping-1")
	require.True(t, state.IsAlternatingKey(autoKey))

	cfg := &action.AlternatingConfig{
		Primary:          &action.KeyPressReleaseConfig{VirtualKey: 65},
		Secondary:        &action.KeyPressReleaseConfig{VirtualKey: 66},
		StartWithPrimary: true,
		StateKey:         autoKey,
	}
	act, err := f.Create(cfg)
	require.NoError(t, err)

	expectState := []int32{1, 0, 1}
	for i := 0; i < 3; i++ {
		require.NoError(t, act.Execute(context.Background(), 100, true))
		assert.Equal(t, expectState[i], st.Get(autoKey), "state after trigger %d", i+1)
	}
	assert.False(t, sim.IsKeyDown(65))
	assert.False(t, sim.IsKeyDown(66))
}

// S2 — KeyDown with auto-release.
func TestScenario_S2_KeyDownAutoRelease(t *testing.T) {
	f, st, sim := newRuntimeFactory(t)
	ms := uint32(50)
	cfg := &action.KeyDownConfig{VirtualKey: 16, AutoReleaseAfterMs: &ms}
	act, err := f.Create(cfg)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, act.Execute(ctx, 127, true))
	assert.True(t, sim.IsKeyDown(16))
	assert.Equal(t, int32(1), st.Get("*Key16"))

	time.Sleep(10 * time.Millisecond)
	require.NoError(t, act.Execute(ctx, 127, true)) // second trigger is a no-op
	assert.True(t, sim.IsKeyDown(16))

	time.Sleep(80 * time.Millisecond)
	assert.False(t, sim.IsKeyDown(16))
	assert.Equal(t, int32(0), st.Get("*Key16"))
}

// S4 — Conditional fader routing.
func TestScenario_S4_ConditionalFaderRouting(t *testing.T) {
	f, _, sim := newRuntimeFactory(t)
	cfg := &action.ConditionalConfig{
		Conditions: []action.ConditionalBranch{
			{MinValue: 0, MaxValue: 63, Action: &action.KeyPressReleaseConfig{VirtualKey: 65}},
			{MinValue: 64, MaxValue: 127, Action: &action.KeyPressReleaseConfig{VirtualKey: 66}},
		},
	}
	act, err := f.Create(cfg)
	require.NoError(t, err)

	for _, v := range []int{0, 63, 64, 127} {
		require.NoError(t, act.Execute(context.Background(), v, true))
		assert.False(t, sim.IsKeyDown(65))
		assert.False(t, sim.IsKeyDown(66))
	}
}

// failOnVKSimulator is a minimal input.Simulator that fails
// SendKeyDown for exactly one virtual key, used to make a specific
// Sequence sub-action fail deterministically.
type failOnVKSimulator struct {
	*mock.Simulator
	failVK  uint16
	entered []uint16
}

func (s *failOnVKSimulator) SendKeyDown(vk uint16) error {
	s.entered = append(s.entered, vk)
	if vk == s.failVK {
		return &action.InputEmitFailedError{Kind: "key_down", Source: errSimulated}
	}
	return s.Simulator.SendKeyDown(vk)
}

type simErr string

func (e simErr) Error() string { return string(e) }

const errSimulated = simErr("simulated")

// S6 — Sequence error handling.
func TestScenario_S6_SequenceStopOnError(t *testing.T) {
	sim := &failOnVKSimulator{Simulator: mock.NewSimulator(), failVK: 2}
	f := action.NewRuntimeFactory(action.Services{State: state.New(), Input: sim})

	subs := []action.Config{
		&action.KeyPressReleaseConfig{VirtualKey: 1},
		&action.KeyPressReleaseConfig{VirtualKey: 2}, // fails
		&action.KeyPressReleaseConfig{VirtualKey: 3},
	}

	stopAct, err := f.Create(&action.SequenceConfig{SubActions: subs, ErrorHandling: action.StopOnError})
	require.NoError(t, err)
	err = stopAct.Execute(context.Background(), 0, false)
	require.Error(t, err)
	assert.Equal(t, []uint16{1, 2}, sim.entered, "C must not execute under StopOnError")

	continueSim := &failOnVKSimulator{Simulator: mock.NewSimulator(), failVK: 2}
	f2 := action.NewRuntimeFactory(action.Services{State: state.New(), Input: continueSim})
	continueAct, err := f2.Create(&action.SequenceConfig{SubActions: subs, ErrorHandling: action.ContinueOnError})
	require.NoError(t, err)
	err = continueAct.Execute(context.Background(), 0, false)
	require.Error(t, err)
	var seqErr *action.SequenceError
	require.ErrorAs(t, err, &seqErr)
	assert.Len(t, seqErr.Failures, 1)
	assert.Equal(t, []uint16{1, 2, 3}, continueSim.entered, "A, B, C all execute under ContinueOnError")
}

var _ input.Simulator = (*failOnVKSimulator)(nil)
