package state_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/midiflux/core/state"
)

func TestGetAbsentReturnsMinusOne(t *testing.T) {
	s := state.New()
	assert.EqualValues(t, -1, s.Get("Missing"))
}

func TestSetRejectsInternalKeyFromUserPath(t *testing.T) {
	s := state.New()
	err := s.Set("*Key65", 1)
	require.Error(t, err)
	var invalid *state.ErrInvalidStateKey
	require.ErrorAs(t, err, &invalid)
}

func TestSetInternalRejectsUserKey(t *testing.T) {
	s := state.New()
	err := s.SetInternal("Tg", 1)
	require.Error(t, err)
}

func TestSetAndGetRoundTrip(t *testing.T) {
	s := state.New()
	require.NoError(t, s.Set("Tg", 7))
	assert.EqualValues(t, 7, s.Get("Tg"))
}

// No orphan keys (spec.md §8 invariant 4): after ClearAll, every
// previously-1 internal key emits exactly one release and ends absent.
func TestClearAllReleaseSweep(t *testing.T) {
	s := state.New()
	require.NoError(t, s.SetInternal("*Key65", 1))
	require.NoError(t, s.SetInternal("*Key66", 0))
	require.NoError(t, s.Set("Tg", 3))

	var released []uint16
	var mu sync.Mutex
	s.ClearAll(func(vk uint16) {
		mu.Lock()
		released = append(released, vk)
		mu.Unlock()
	})

	assert.Equal(t, []uint16{65}, released)
	assert.EqualValues(t, -1, s.Get("*Key65"))
	assert.EqualValues(t, -1, s.Get("*Key66"))
	assert.EqualValues(t, -1, s.Get("Tg"))
}

func TestInitializeRejectsInternalKeys(t *testing.T) {
	s := state.New()
	err := s.Initialize(map[string]int32{"*Key1": 1}, nil)
	require.Error(t, err)
}

func TestInitializeClearsThenSets(t *testing.T) {
	s := state.New()
	require.NoError(t, s.Set("Stale", 99))
	require.NoError(t, s.Initialize(map[string]int32{"Tg": 1, "Counter": 5}, nil))
	assert.EqualValues(t, -1, s.Get("Stale"))
	assert.EqualValues(t, 1, s.Get("Tg"))
	assert.EqualValues(t, 5, s.Get("Counter"))
}

func TestStatistics(t *testing.T) {
	s := state.New()
	require.NoError(t, s.Set("A", 1))
	require.NoError(t, s.SetInternal("*Key1", 1))
	stats := s.Statistics()
	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 1, stats.UserDefined)
	assert.Equal(t, 1, stats.Internal)
}

func TestIsUserKeyRejectsAlternatingNamespace(t *testing.T) {
	assert.False(t, state.IsUserKey("@Alt1234"))
	assert.False(t, state.IsInternalKey("@Alt1234"))
}

func TestSetRejectsAlternatingKeyFromUserPath(t *testing.T) {
	s := state.New()
	err := s.Set("@Alt1234", 1)
	require.Error(t, err)
	var invalid *state.ErrInvalidStateKey
	require.ErrorAs(t, err, &invalid)
}

func TestSetAlternatingRoundTrip(t *testing.T) {
	s := state.New()
	require.NoError(t, s.SetAlternating("@Alt1234", 1))
	assert.EqualValues(t, 1, s.Get("@Alt1234"))
}

func TestSetAlternatingRejectsNonAlternatingKey(t *testing.T) {
	s := state.New()
	err := s.SetAlternating("Tg", 1)
	require.Error(t, err)
}

func TestConcurrentSetGet(t *testing.T) {
	s := state.New()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			require.NoError(t, s.Set("Counter", int32(n)))
			_ = s.Get("Counter")
		}(i)
	}
	wg.Wait()
	assert.GreaterOrEqual(t, s.Get("Counter"), int32(0))
}
