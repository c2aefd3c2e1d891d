// Package device implements the device configuration manager (spec.md
// §4.6, component C8): the active profile, the device-name↔id binding,
// and the apply sequence that rebuilds and publishes the registry.
package device

import (
	"sync"

	"github.com/midiflux/core/action"
	"github.com/midiflux/core/midi"
	"github.com/midiflux/core/profile"
	"github.com/midiflux/core/registry"
	"github.com/midiflux/core/state"
)

// Manager holds the active Profile and Registry, and tracks which
// device ids have bound to which configured device names as MIDI
// devices connect/disconnect (spec.md §4.6).
type Manager struct {
	state    *state.Store
	registry *registry.Registry
	factory  *action.Factory

	mu            sync.RWMutex
	activeProfile *profile.Profile
	idToNames     map[string][]string // device id -> configured names bound to it, in bind order
}

// New returns a Manager wired to the given state store, registry, and
// runtime action factory (normally sharing the factory's Services with
// the caller's dispatcher).
func New(store *state.Store, reg *registry.Registry, factory *action.Factory) *Manager {
	return &Manager{
		state:     store,
		registry:  reg,
		factory:   factory,
		idToNames: make(map[string][]string),
	}
}

// Apply activates p: initializes the state store (which performs the
// key-release sweep), rebuilds the registry from p, and atomically
// publishes it (spec.md §4.6).
func (m *Manager) Apply(p *profile.Profile, releaser state.KeyReleaser) ([]profile.ValidationError, error) {
	if errs := p.Validate(); len(errs) > 0 {
		return errs, nil
	}

	if err := m.state.Initialize(p.InitialStates, releaser); err != nil {
		return nil, err
	}

	regs, err := profile.BuildRegistry(p, m.factory)
	if err != nil {
		return nil, err
	}
	m.registry.Rebuild(regs)

	m.mu.Lock()
	m.activeProfile = p
	m.mu.Unlock()
	return nil, nil
}

// BindDevice records that the live MIDI device id now corresponds to
// deviceName, as reported by the adapter's device list.
func (m *Manager) BindDevice(id string, deviceName string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	names := m.idToNames[id]
	for _, n := range names {
		if n == deviceName {
			return
		}
	}
	m.idToNames[id] = append(names, deviceName)
}

// UnbindDevice forgets every name bound to id (device disconnect).
func (m *Manager) UnbindDevice(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.idToNames, id)
}

// DeviceNamesForID returns the configured device names bound to id,
// concrete names preferred over the wildcard (spec.md §4.6).
func (m *Manager) DeviceNamesForID(id string) []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := m.idToNames[id]
	out := make([]string, 0, len(names)+1)
	for _, n := range names {
		if n != midi.AnyDevice {
			out = append(out, n)
		}
	}
	for _, n := range names {
		if n == midi.AnyDevice {
			out = append(out, n)
		}
	}
	if len(out) == 0 {
		out = append(out, midi.AnyDevice)
	}
	return out
}

// Registry returns the live registry snapshot used for lookups.
func (m *Manager) Registry() *registry.Registry { return m.registry }

// ActiveProfile returns the currently applied profile, or nil before
// the first Apply.
func (m *Manager) ActiveProfile() *profile.Profile {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.activeProfile
}
