package controller_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/midiflux/core/action"
	"github.com/midiflux/core/controller"
	"github.com/midiflux/core/device"
	"github.com/midiflux/core/mock"
	"github.com/midiflux/core/profile"
	"github.com/midiflux/core/registry"
	"github.com/midiflux/core/state"
)

func newTestController(t *testing.T) (*controller.Controller, *mock.Simulator) {
	t.Helper()
	st := state.New()
	sim := mock.NewSimulator()
	reg := registry.New()
	factory := action.NewRuntimeFactory(action.Services{State: st, Input: sim})
	mgr := device.New(st, reg, factory)
	releaser := func(vk uint16) { sim.SendKeyUp(vk) }
	return controller.New(mgr, releaser, zerolog.Nop()), sim
}

const validProfile = `{
  "ProfileName": "P1",
  "MidiDevices": [{
    "InputProfile": "d",
    "DeviceName": "DevA",
    "Mappings": [{"IsEnabled": true, "InputType": "NoteOn", "Note": 1, "Action": {"$type": "KeyPressRelease", "virtual_key": 1}}]
  }]
}`

const invalidProfile = `{"ProfileName": "", "MidiDevices": []}`

func TestController_LoadActivatesAndNotifiesListeners(t *testing.T) {
	c, _ := newTestController(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "profile.json")
	require.NoError(t, os.WriteFile(path, []byte(validProfile), 0o644))

	var notifiedName string
	c.OnActivate(func(p *profile.Profile) { notifiedName = p.ProfileName })

	errs, err := c.Load(path)
	require.NoError(t, err)
	require.Empty(t, errs)
	require.NotNil(t, c.ActiveProfile())
	assert.Equal(t, "P1", c.ActiveProfile().ProfileName)
	assert.Equal(t, "P1", notifiedName)
}

func TestController_LoadRejectsInvalidProfileWithoutActivating(t *testing.T) {
	c, _ := newTestController(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(invalidProfile), 0o644))

	errs, err := c.Load(path)
	require.NoError(t, err)
	require.NotEmpty(t, errs)
	assert.Nil(t, c.ActiveProfile())
}

func TestController_ReloadReappliesLastPath(t *testing.T) {
	c, _ := newTestController(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "profile.json")
	require.NoError(t, os.WriteFile(path, []byte(validProfile), 0o644))

	_, err := c.Load(path)
	require.NoError(t, err)

	errs, err := c.Reload()
	require.NoError(t, err)
	require.Empty(t, errs)
	assert.Equal(t, "P1", c.ActiveProfile().ProfileName)
}

func TestController_ReloadWithoutPriorLoadFails(t *testing.T) {
	c, _ := newTestController(t)
	_, err := c.Reload()
	assert.Error(t, err)
}
