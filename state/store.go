// Package state implements the shared integer state store (spec.md
// §4.1, component C1): user-defined and internal (*Key{vk}) keys, the
// key-release sweep, and the statistics snapshot.
package state

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
)

var (
	userKeyPattern     = regexp.MustCompile(`^[A-Za-z0-9]+$`)
	internalKeyPattern = regexp.MustCompile(`^\*Key([0-9]+)$`)
)

// AlternatingKeyPrefix is the reserved namespace for auto-generated
// Alternating state keys (spec.md §9), disjoint from user and internal
// keys. IsUserKey/IsInternalKey both reject it.
const AlternatingKeyPrefix = "@Alt"

// IsUserKey reports whether key matches the user-defined grammar
// ^[A-Za-z0-9]+$ and is not in the reserved @Alt namespace.
func IsUserKey(key string) bool {
	if len(key) >= len(AlternatingKeyPrefix) && key[:len(AlternatingKeyPrefix)] == AlternatingKeyPrefix {
		return false
	}
	return userKeyPattern.MatchString(key)
}

// IsInternalKey reports whether key matches ^\*Key[0-9]+$.
func IsInternalKey(key string) bool {
	return internalKeyPattern.MatchString(key)
}

// IsAlternatingKey reports whether key is in the reserved @Alt
// namespace (spec.md §9): auto-generated Alternating state keys,
// written only via SetAlternating.
func IsAlternatingKey(key string) bool {
	return strings.HasPrefix(key, AlternatingKeyPrefix)
}

// InternalKeyVK extracts the virtual-key code from an internal key
// name, e.g. "*Key65" -> 65.
func InternalKeyVK(key string) (uint16, bool) {
	m := internalKeyPattern.FindStringSubmatch(key)
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseUint(m[1], 10, 16)
	if err != nil {
		return 0, false
	}
	return uint16(v), true
}

// InternalKeyName returns the canonical internal state key for a
// virtual-key code.
func InternalKeyName(vk uint16) string {
	return fmt.Sprintf("*Key%d", vk)
}

// ErrInvalidStateKey is returned by Set/Initialize when a key violates
// the grammar expected in that context.
type ErrInvalidStateKey struct {
	Key    string
	Reason string
}

func (e *ErrInvalidStateKey) Error() string {
	return fmt.Sprintf("state: invalid key %q: %s", e.Key, e.Reason)
}

// KeyReleaser is called by ClearAll's release sweep for every internal
// key that was active (== 1) when the sweep ran. Implementations emit
// the OS key-up side effect; spec.md §4.1 requires this happen exactly
// once per previously-1 entry.
type KeyReleaser func(vk uint16)

// Statistics summarizes store contents, per spec.md §4.1.
type Statistics struct {
	Total       int
	UserDefined int
	Internal    int
}

// Store is the concurrent integer-valued state map described in
// spec.md §4.1. Reads never block writers; ClearAll's release sweep is
// made to appear atomic to concurrent Get calls via a brief exclusive
// lock held only across the sweep-then-wipe transition, mirroring how
// tcell's tscreen.go holds its mutex only across struct-field mutation
// and never across I/O.
type Store struct {
	mu     sync.RWMutex
	values map[string]*int64
}

// New returns an empty Store.
func New() *Store {
	return &Store{values: make(map[string]*int64)}
}

// Get returns the value for key, or -1 if absent. Never fails.
func (s *Store) Get(key string) int32 {
	s.mu.RLock()
	cell, ok := s.values[key]
	s.mu.RUnlock()
	if !ok {
		return -1
	}
	return int32(atomic.LoadInt64(cell))
}

// set validates key against the user/internal/alternating grammars and
// records value. allowInternal/allowAlternating control whether
// *Key{vk} or @Alt{...} keys are accepted; user-facing callers
// (SetState action, Initialize) must pass false for both per spec.md
// §4.1/§7 InvalidStateKey.
func (s *Store) set(key string, value int32, allowInternal, allowAlternating bool) error {
	valid := IsUserKey(key) || (allowInternal && IsInternalKey(key)) || (allowAlternating && IsAlternatingKey(key))
	if !valid {
		return &ErrInvalidStateKey{Key: key, Reason: "must match user-defined or internal key grammar"}
	}
	s.mu.RLock()
	cell, ok := s.values[key]
	s.mu.RUnlock()
	if ok {
		atomic.StoreInt64(cell, int64(value))
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if cell, ok := s.values[key]; ok {
		atomic.StoreInt64(cell, int64(value))
		return nil
	}
	v := int64(value)
	s.values[key] = &v
	return nil
}

// Set stores value under key. Internal keys are rejected here;
// internal keys are written by the key-state actions via SetInternal
// and reset directly by the release sweep in ClearAll.
func (s *Store) Set(key string, value int32) error {
	return s.set(key, value, false, false)
}

// SetInternal stores value under an internal (*Key{vk}) key, used by
// the KeyDown/KeyUp/KeyToggle actions and KeyDown's auto-release timer.
func (s *Store) SetInternal(key string, value int32) error {
	if !IsInternalKey(key) {
		return &ErrInvalidStateKey{Key: key, Reason: "not an internal key"}
	}
	return s.set(key, value, true, false)
}

// SetAlternating stores value under an auto-generated Alternating
// state key (the @Alt namespace derived by
// action.DeriveAlternatingKey), used only by alternatingAction when no
// explicit state_key was configured (spec.md §4.2/§9).
func (s *Store) SetAlternating(key string, value int32) error {
	if !IsAlternatingKey(key) {
		return &ErrInvalidStateKey{Key: key, Reason: "not an alternating key"}
	}
	return s.set(key, value, false, true)
}

// Clear removes key, if present.
func (s *Store) Clear(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
}

// ClearAll performs the release sweep (spec.md §4.1): every internal
// key currently == 1 has releaser invoked and is reset to 0, then the
// whole map is emptied. The sweep-then-wipe sequence is performed
// under a single exclusive lock so a concurrent Get observes either
// the pre-sweep or post-sweep state, never an intermediate one.
func (s *Store) ClearAll(releaser KeyReleaser) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, cell := range s.values {
		if !IsInternalKey(key) {
			continue
		}
		if atomic.LoadInt64(cell) != 1 {
			continue
		}
		vk, ok := InternalKeyVK(key)
		if !ok {
			continue
		}
		if releaser != nil {
			releaser(vk)
		}
		atomic.StoreInt64(cell, 0)
	}
	s.values = make(map[string]*int64)
}

// Initialize performs ClearAll then Set for every pair in initial.
// Any key matching the internal grammar is rejected with
// ErrInvalidStateKey and initialization stops (spec.md §4.1).
func (s *Store) Initialize(initial map[string]int32, releaser KeyReleaser) error {
	for key := range initial {
		if IsInternalKey(key) {
			return &ErrInvalidStateKey{Key: key, Reason: "InitialStates keys must be user-defined"}
		}
	}
	s.ClearAll(releaser)
	for key, value := range initial {
		if err := s.Set(key, value); err != nil {
			return err
		}
	}
	return nil
}

// Statistics reports total/user-defined/internal key counts.
func (s *Store) Statistics() Statistics {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stats := Statistics{Total: len(s.values)}
	for key := range s.values {
		if IsInternalKey(key) {
			stats.Internal++
		} else {
			stats.UserDefined++
		}
	}
	return stats
}
