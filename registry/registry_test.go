package registry_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/midiflux/core/midi"
	"github.com/midiflux/core/registry"
)

type fakeAction struct{ name string }

func (a fakeAction) Execute(ctx context.Context, value int, hasValue bool) error { return nil }

// S3 — SysEx wildcard match.
func TestRegistry_SysExWildcardMatch(t *testing.T) {
	pattern, err := midi.ParseSysExPattern("F0 43 XX 00 41 30 XX F7")
	require.NoError(t, err)

	r := registry.New()
	r.Rebuild([]registry.Registration{{
		Fingerprint: midi.Fingerprint{DeviceName: midi.AnyDevice, Channel: midi.AnyChannel, Kind: midi.KindSysExPattern(pattern)},
		Action:      fakeAction{name: "sysex"},
		MappingID:   "m1",
	}})

	matching := midi.NewSysExEvent(1, []byte{0xF0, 0x43, 0x12, 0x00, 0x41, 0x30, 0x07, 0xF7})
	nonMatching := midi.NewSysExEvent(1, []byte{0xF0, 0x43, 0x12, 0x00, 0x41, 0x31, 0x07, 0xF7})

	assert.Len(t, r.Lookup("DevA", matching), 1)
	assert.Empty(t, r.Lookup("DevA", nonMatching))
}

// Invariant 10 — lookup priority.
func TestRegistry_LookupPriority(t *testing.T) {
	r := registry.New()
	mk := func(name string) registry.Registration {
		return registry.Registration{
			Fingerprint: midi.Fingerprint{Kind: midi.KindNoteOn(60)},
			Action:      fakeAction{name: name},
			MappingID:   name,
		}
	}
	specificDeviceChannel := mk("specific+channel")
	specificDeviceChannel.Fingerprint.DeviceName = "DevA"
	specificDeviceChannel.Fingerprint.Channel = 1

	specificDeviceAny := mk("specific+any")
	specificDeviceAny.Fingerprint.DeviceName = "DevA"
	specificDeviceAny.Fingerprint.Channel = midi.AnyChannel

	wildcardDeviceChannel := mk("wild+channel")
	wildcardDeviceChannel.Fingerprint.DeviceName = midi.AnyDevice
	wildcardDeviceChannel.Fingerprint.Channel = 1

	wildcardDeviceAny := mk("wild+any")
	wildcardDeviceAny.Fingerprint.DeviceName = midi.AnyDevice
	wildcardDeviceAny.Fingerprint.Channel = midi.AnyChannel

	r.Rebuild([]registry.Registration{wildcardDeviceAny, wildcardDeviceChannel, specificDeviceAny, specificDeviceChannel})

	ev := midi.NewChannelEvent(midi.NoteOn, 1, midi.WithNote(60, 100))
	entries := r.Lookup("DevA", ev)
	require.Len(t, entries, 4)
	assert.Equal(t, "specific+channel", entries[0].MappingID)
	assert.Equal(t, "specific+any", entries[1].MappingID)
	assert.Equal(t, "wild+channel", entries[2].MappingID)
	assert.Equal(t, "wild+any", entries[3].MappingID)
}

func TestRegistry_RebuildIsAtomicSwap(t *testing.T) {
	r := registry.New()
	r.Rebuild([]registry.Registration{{
		Fingerprint: midi.Fingerprint{DeviceName: midi.AnyDevice, Channel: midi.AnyChannel, Kind: midi.KindNoteOn(1)},
		Action:      fakeAction{name: "old"},
		MappingID:   "old",
	}})
	ev := midi.NewChannelEvent(midi.NoteOn, 1, midi.WithNote(1, 10))
	before := r.Lookup("Dev", ev)
	require.Len(t, before, 1)

	r.Rebuild(nil)
	after := r.Lookup("Dev", ev)
	assert.Empty(t, after)
}
