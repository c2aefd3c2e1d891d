package dispatch_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/midiflux/core/dispatch"
	"github.com/midiflux/core/midi"
	"github.com/midiflux/core/registry"
)

type fakeResolver struct{ names map[string][]string }

func (r fakeResolver) DeviceNamesForID(id string) []string {
	if n, ok := r.names[id]; ok {
		return n
	}
	return nil
}

type recordingAction struct {
	mu      *sync.Mutex
	calls   *[]string
	name    string
	delay   time.Duration
	lastVal *int32
}

func (a recordingAction) Execute(ctx context.Context, value int, hasValue bool) error {
	if a.delay > 0 {
		time.Sleep(a.delay)
	}
	a.mu.Lock()
	*a.calls = append(*a.calls, a.name)
	a.mu.Unlock()
	if a.lastVal != nil && hasValue {
		atomic.StoreInt32(a.lastVal, int32(value))
	}
	return nil
}

func newEnv() (*dispatch.Dispatcher, *registry.Registry) {
	reg := registry.New()
	resolver := fakeResolver{names: map[string][]string{"dev1": {"DevA"}, "dev2": {"DevB"}}}
	proc := dispatch.NewProcessor(zerolog.Nop())
	d := dispatch.NewDispatcher(resolver, reg, proc, zerolog.Nop())
	return d, reg
}

func TestDispatcher_SequentialWithinOneSubmit(t *testing.T) {
	d, reg := newEnv()

	var mu sync.Mutex
	var calls []string

	regs := []registry.Registration{
		{
			Fingerprint: midi.Fingerprint{DeviceName: "DevA", Channel: midi.AnyChannel, Kind: midi.KindNoteOn(60)},
			Action:      recordingAction{mu: &mu, calls: &calls, name: "first", delay: 20 * time.Millisecond},
			MappingID:   "m1",
		},
		{
			Fingerprint: midi.Fingerprint{DeviceName: "DevA", Channel: midi.AnyChannel, Kind: midi.KindNoteOn(60)},
			Action:      recordingAction{mu: &mu, calls: &calls, name: "second"},
			MappingID:   "m2",
		},
	}
	reg.Rebuild(regs)

	d.Dispatch(context.Background(), "dev1", midi.NewChannelEvent(midi.NoteOn, 1, midi.WithNote(60, 100)))

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(calls) == 2
	}, time.Second, 5*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"first", "second"}, calls)
}

// Per-device events hand off to the processor in arrival order; events
// from distinct devices are not serialized against one another.
func TestDispatcher_PerDeviceOrderingCrossDeviceParallel(t *testing.T) {
	d, reg := newEnv()

	var mu sync.Mutex
	var order []string

	slow := recordingAction{mu: &mu, calls: &order, name: "devA-slow", delay: 40 * time.Millisecond}
	fast := recordingAction{mu: &mu, calls: &order, name: "devA-fast"}
	other := recordingAction{mu: &mu, calls: &order, name: "devB"}

	reg.Rebuild([]registry.Registration{
		{Fingerprint: midi.Fingerprint{DeviceName: "DevA", Channel: midi.AnyChannel, Kind: midi.KindNoteOn(10)}, Action: slow, MappingID: "slow"},
		{Fingerprint: midi.Fingerprint{DeviceName: "DevA", Channel: midi.AnyChannel, Kind: midi.KindNoteOn(11)}, Action: fast, MappingID: "fast"},
		{Fingerprint: midi.Fingerprint{DeviceName: "DevB", Channel: midi.AnyChannel, Kind: midi.KindNoteOn(10)}, Action: other, MappingID: "other"},
	})

	ctx := context.Background()
	d.Dispatch(ctx, "dev1", midi.NewChannelEvent(midi.NoteOn, 1, midi.WithNote(10, 100)))
	d.Dispatch(ctx, "dev1", midi.NewChannelEvent(midi.NoteOn, 1, midi.WithNote(11, 100)))
	d.Dispatch(ctx, "dev2", midi.NewChannelEvent(midi.NoteOn, 1, midi.WithNote(10, 100)))

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(order) == 3
	}, time.Second, 5*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	// DevB's task never waits behind DevA's queue, so it finishes before
	// DevA's slow first task even though it was dispatched last.
	assert.Equal(t, "devB", order[0])
	assert.Equal(t, "devA-slow", order[1])
	assert.Equal(t, "devA-fast", order[2])
}

func TestDispatcher_RelativeCCDecodedOnce(t *testing.T) {
	d, reg := newEnv()

	var mu sync.Mutex
	var calls []string
	var lastVal int32

	reg.Rebuild([]registry.Registration{
		{
			Fingerprint: midi.Fingerprint{DeviceName: "DevA", Channel: midi.AnyChannel, Kind: midi.KindCCRelative(20)},
			Action:      recordingAction{mu: &mu, calls: &calls, name: "rel", lastVal: &lastVal},
			MappingID:   "m1",
		},
	})

	ev := midi.NewChannelEvent(midi.ControlChange, 1, midi.WithControl(20, 3), midi.WithRelative(midi.TwosComplement))
	d.Dispatch(context.Background(), "dev1", ev)

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(calls) == 1
	}, time.Second, 5*time.Millisecond)

	assert.Equal(t, int32(3), atomic.LoadInt32(&lastVal))
}

func TestDispatcher_NoMatchIsNoOp(t *testing.T) {
	d, _ := newEnv()
	assert.NotPanics(t, func() {
		d.Dispatch(context.Background(), "dev1", midi.NewChannelEvent(midi.NoteOn, 1, midi.WithNote(99, 1)))
	})
}
