// Package controller implements the profile controller (spec.md §4.9,
// component C11): the load/activate/reload loop a caller (eventually
// the outer UI layer) drives.
package controller

import (
	"fmt"
	"os"
	"sync"

	"github.com/rs/zerolog"

	"github.com/midiflux/core/device"
	"github.com/midiflux/core/profile"
	"github.com/midiflux/core/state"
)

// Listener is notified after a profile is successfully activated.
type Listener func(p *profile.Profile)

// Controller owns the currently loaded profile's source path and
// drives device.Manager.Apply on load/activate/reload, per spec.md
// §4.9: "load file via C7; if valid, tell C8 to apply; signal
// listeners; stop otherwise with the validation error list."
type Controller struct {
	manager  *device.Manager
	releaser state.KeyReleaser
	log      zerolog.Logger

	mu        sync.Mutex
	path      string
	listeners []Listener
}

// New returns a Controller that applies profiles to manager, using
// releaser to satisfy the C1 key-release sweep on every activation.
func New(manager *device.Manager, releaser state.KeyReleaser, log zerolog.Logger) *Controller {
	return &Controller{
		manager:  manager,
		releaser: releaser,
		log:      log.With().Str("component", "controller.Controller").Logger(),
	}
}

// OnActivate registers a listener invoked after every successful
// Load/Reload.
func (c *Controller) OnActivate(l Listener) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, l)
}

// Load reads path, parses and validates it, and on success activates
// it as the live profile. On any failure (read error or validation
// errors) the currently active profile is left untouched.
func (c *Controller) Load(path string) ([]profile.ValidationError, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("controller: read %s: %w", path, err)
	}

	p, errs := profile.Load(data)
	if len(errs) > 0 {
		c.log.Warn().Str("path", path).Int("errors", len(errs)).Msg("profile rejected")
		return errs, nil
	}

	if errs, err := c.activate(p); len(errs) > 0 || err != nil {
		return errs, err
	}

	c.mu.Lock()
	c.path = path
	c.mu.Unlock()
	return nil, nil
}

// Reload re-reads the last-loaded path from disk and activates it
// again, e.g. after the user edits a profile file externally.
func (c *Controller) Reload() ([]profile.ValidationError, error) {
	c.mu.Lock()
	path := c.path
	c.mu.Unlock()
	if path == "" {
		return nil, fmt.Errorf("controller: reload: no profile previously loaded")
	}
	return c.Load(path)
}

// Activate applies an already-decoded profile directly, bypassing
// disk I/O — used by callers that built or edited a Profile in memory
// (e.g. a profile editor) and want to push it live.
func (c *Controller) Activate(p *profile.Profile) ([]profile.ValidationError, error) {
	return c.activate(p)
}

func (c *Controller) activate(p *profile.Profile) ([]profile.ValidationError, error) {
	errs, err := c.manager.Apply(p, c.releaser)
	if err != nil {
		return nil, fmt.Errorf("controller: activate %s: %w", p.ProfileName, err)
	}
	if len(errs) > 0 {
		return errs, nil
	}

	c.log.Info().Str("profile", p.ProfileName).Msg("profile activated")

	c.mu.Lock()
	listeners := append([]Listener(nil), c.listeners...)
	c.mu.Unlock()
	for _, l := range listeners {
		l(p)
	}
	return nil, nil
}

// ActiveProfile returns the profile currently applied to the device
// manager, or nil before the first successful Load/Activate.
func (c *Controller) ActiveProfile() *profile.Profile {
	return c.manager.ActiveProfile()
}
