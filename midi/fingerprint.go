package midi

// AnyDevice is the wildcard device name used both in fingerprints and
// in DeviceConfig.DeviceName when the profile leaves the field empty
// (spec.md §6: "Empty DeviceName is treated identically to \"*\"").
const AnyDevice = "*"

// AnyChannel represents "no specific channel" in a Fingerprint.
const AnyChannel = 0

// Kind is the closed set of fingerprint discriminators from spec.md §3.
type Kind struct {
	tag     kindTag
	number  uint8
	pattern SysExPattern
}

type kindTag int

const (
	kindNoteOn kindTag = iota
	kindNoteOff
	kindCCAbsolute
	kindCCRelative
	kindSysEx
)

func KindNoteOn(note uint8) Kind         { return Kind{tag: kindNoteOn, number: note} }
func KindNoteOff(note uint8) Kind        { return Kind{tag: kindNoteOff, number: note} }
func KindCCAbsolute(cc uint8) Kind       { return Kind{tag: kindCCAbsolute, number: cc} }
func KindCCRelative(cc uint8) Kind       { return Kind{tag: kindCCRelative, number: cc} }
func KindSysExPattern(p SysExPattern) Kind { return Kind{tag: kindSysEx, pattern: p} }

func (k Kind) IsNoteOn() bool      { return k.tag == kindNoteOn }
func (k Kind) IsNoteOff() bool     { return k.tag == kindNoteOff }
func (k Kind) IsCCAbsolute() bool  { return k.tag == kindCCAbsolute }
func (k Kind) IsCCRelative() bool  { return k.tag == kindCCRelative }
func (k Kind) IsSysEx() bool       { return k.tag == kindSysEx }
func (k Kind) Number() uint8       { return k.number }
func (k Kind) Pattern() SysExPattern { return k.pattern }

// Fingerprint is the derived lookup key from spec.md §3: a
// (device_name, channel_or_any, kind) tuple.
type Fingerprint struct {
	DeviceName string
	Channel    uint8 // 1..16, or AnyChannel
	Kind       Kind
}

// NormalizeDeviceName maps the empty string to the wildcard device
// name, per spec.md §6.
func NormalizeDeviceName(name string) string {
	if name == "" {
		return AnyDevice
	}
	return name
}

// KindOf classifies an incoming event into the dispatchable kinds the
// registry indexes on. Other/Error events have no Kind (ok=false),
// matching spec.md §4.4 step 2.
func KindOf(ev Event) (Kind, bool) {
	switch ev.Type() {
	case NoteOn:
		if n, ok := ev.Note(); ok {
			return KindNoteOn(n), true
		}
	case NoteOff:
		if n, ok := ev.Note(); ok {
			return KindNoteOff(n), true
		}
	case ControlChange:
		if c, ok := ev.Control(); ok {
			if ev.IsRelative() {
				return KindCCRelative(c), true
			}
			return KindCCAbsolute(c), true
		}
	case SysEx:
		// SysEx fingerprints are matched by pattern, not carried on
		// the event itself; callers iterate registered patterns
		// instead of constructing a Kind for the event. See
		// registry.Lookup.
	}
	return Kind{}, false
}
