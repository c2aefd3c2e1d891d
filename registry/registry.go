// Package registry implements the mapping registry (spec.md §4.4,
// component C6): a read-mostly, RCU-style index from MidiEvent
// fingerprints to the runtime actions that should fire for them.
package registry

import (
	"sync/atomic"

	"github.com/midiflux/core/action"
	"github.com/midiflux/core/midi"
	"github.com/samber/lo"
)

// Entry pairs one registered action with the mapping it came from, for
// diagnostics (profile/device layers can report which mapping fired).
type Entry struct {
	MappingID string
	Action    action.Action
}

type sysexEntry struct {
	pattern midi.SysExPattern
	entry   Entry
}

// bucket holds every mapping registered under one (device, channel)
// key, per spec.md §4.4.
type bucket struct {
	noteOnByNote     map[uint8][]Entry
	noteOffByNote    map[uint8][]Entry
	ccAbsoluteByCC   map[uint8][]Entry
	ccRelativeByCC   map[uint8][]Entry
	sysexPatterns    []sysexEntry
}

func newBucket() *bucket {
	return &bucket{
		noteOnByNote:   make(map[uint8][]Entry),
		noteOffByNote:  make(map[uint8][]Entry),
		ccAbsoluteByCC: make(map[uint8][]Entry),
		ccRelativeByCC: make(map[uint8][]Entry),
	}
}

// snapshot is the immutable index atomically swapped in by Rebuild.
type snapshot struct {
	buckets map[bucketKey]*bucket
}

type bucketKey struct {
	deviceName string
	channel    uint8 // 1..16, or midi.AnyChannel
}

// Registration is one (fingerprint, action, mapping id) tuple fed to
// Rebuild; spec.md §4.5 builds these from a Profile's enabled mappings.
type Registration struct {
	Fingerprint midi.Fingerprint
	Action      action.Action
	MappingID   string
}

// Registry is the lock-free-read index from spec.md §4.4. The zero
// value is ready to use and empty until the first Rebuild.
type Registry struct {
	current atomic.Pointer[snapshot]
}

// New returns an empty Registry.
func New() *Registry {
	r := &Registry{}
	r.current.Store(&snapshot{buckets: make(map[bucketKey]*bucket)})
	return r
}

// Rebuild constructs an entirely new index from registrations, then
// atomically publishes it. Dispatches in flight against the old index
// continue to completion undisturbed (spec.md §4.4).
func (r *Registry) Rebuild(registrations []Registration) {
	next := &snapshot{buckets: make(map[bucketKey]*bucket)}
	for _, reg := range registrations {
		key := bucketKey{deviceName: reg.Fingerprint.DeviceName, channel: reg.Fingerprint.Channel}
		b, ok := next.buckets[key]
		if !ok {
			b = newBucket()
			next.buckets[key] = b
		}
		entry := Entry{MappingID: reg.MappingID, Action: reg.Action}
		k := reg.Fingerprint.Kind
		switch {
		case k.IsNoteOn():
			b.noteOnByNote[k.Number()] = append(b.noteOnByNote[k.Number()], entry)
		case k.IsNoteOff():
			b.noteOffByNote[k.Number()] = append(b.noteOffByNote[k.Number()], entry)
		case k.IsCCAbsolute():
			b.ccAbsoluteByCC[k.Number()] = append(b.ccAbsoluteByCC[k.Number()], entry)
		case k.IsCCRelative():
			b.ccRelativeByCC[k.Number()] = append(b.ccRelativeByCC[k.Number()], entry)
		case k.IsSysEx():
			b.sysexPatterns = append(b.sysexPatterns, sysexEntry{pattern: k.Pattern(), entry: entry})
		}
	}
	r.current.Store(next)
}

// lookupKeys returns the four (device, channel) keys to probe, in
// strict preference order (spec.md §4.4 step 3): specific device
// always precedes the wildcard device.
func lookupKeys(deviceName string, channel uint8) [4]bucketKey {
	return [4]bucketKey{
		{deviceName: deviceName, channel: channel},
		{deviceName: deviceName, channel: midi.AnyChannel},
		{deviceName: midi.AnyDevice, channel: channel},
		{deviceName: midi.AnyDevice, channel: midi.AnyChannel},
	}
}

// Lookup resolves the actions registered for ev, arriving on
// deviceName, in the order specified by spec.md §4.4. Other/Error
// events (no Kind) and events with no matching registration return a
// nil slice.
func (r *Registry) Lookup(deviceName string, ev midi.Event) []Entry {
	kind, ok := midi.KindOf(ev)
	snap := r.current.Load()
	if snap == nil {
		return nil
	}
	keys := lookupKeys(deviceName, ev.Channel())

	if !ok {
		if ev.Type() != midi.SysEx {
			return nil
		}
		return r.lookupSysEx(snap, keys, ev.Raw())
	}

	var out []Entry
	for i, key := range keys {
		if i > 0 && key == keys[i-1] {
			continue // event channel is AnyChannel: same bucket as the previous key
		}
		b, present := snap.buckets[key]
		if !present {
			continue
		}
		out = append(out, entriesFor(b, kind)...)
	}
	return out
}

func entriesFor(b *bucket, kind midi.Kind) []Entry {
	switch {
	case kind.IsNoteOn():
		return b.noteOnByNote[kind.Number()]
	case kind.IsNoteOff():
		return b.noteOffByNote[kind.Number()]
	case kind.IsCCAbsolute():
		return b.ccAbsoluteByCC[kind.Number()]
	case kind.IsCCRelative():
		return b.ccRelativeByCC[kind.Number()]
	default:
		return nil
	}
}

func (r *Registry) lookupSysEx(snap *snapshot, keys [4]bucketKey, payload []byte) []Entry {
	var out []Entry
	for i, key := range keys {
		if i > 0 && key == keys[i-1] {
			continue // event channel is AnyChannel: same bucket as the previous key
		}
		b, present := snap.buckets[key]
		if !present {
			continue
		}
		matches := lo.Filter(b.sysexPatterns, func(se sysexEntry, _ int) bool {
			return se.pattern.Match(payload)
		})
		for _, m := range matches {
			out = append(out, m.entry)
		}
	}
	return out
}
