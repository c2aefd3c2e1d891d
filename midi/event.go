// Package midi defines the event and fingerprint types the dispatch
// core operates on, plus the Adapter facade the hardware MIDI layer
// must implement.
package midi

import "fmt"

// Type identifies the kind of a MidiEvent.
type Type int

const (
	NoteOn Type = iota
	NoteOff
	ControlChange
	SysEx
	Other
	Error
)

func (t Type) String() string {
	switch t {
	case NoteOn:
		return "NoteOn"
	case NoteOff:
		return "NoteOff"
	case ControlChange:
		return "ControlChange"
	case SysEx:
		return "SysEx"
	case Other:
		return "Other"
	case Error:
		return "Error"
	default:
		return "Unknown"
	}
}

// RelativeEncoding identifies how a relative control-change value is
// encoded on the wire. See DecodeRelativeDelta for the decode table.
type RelativeEncoding int

const (
	SignMagnitude RelativeEncoding = iota
	TwosComplement
	BinaryOffset
)

// Event is the immutable value object produced by an Adapter for every
// incoming MIDI message. Fields not relevant to Type are zero/absent;
// callers must check the relevant "has" accessor (or Type) before
// reading optional fields.
type Event struct {
	typ              Type
	channel          uint8
	note             *uint8
	velocity         *uint8
	control          *uint8
	value            *uint8
	isRelative       bool
	relativeEncoding RelativeEncoding
	raw              []byte
}

// NewChannelEvent builds an Event for NoteOn/NoteOff/ControlChange
// messages. channel must be in [1,16].
func NewChannelEvent(typ Type, channel uint8, opts ...EventOption) Event {
	ev := Event{typ: typ, channel: channel}
	for _, opt := range opts {
		opt(&ev)
	}
	return ev
}

// NewSysExEvent builds an Event carrying a raw SysEx payload.
func NewSysExEvent(channel uint8, raw []byte) Event {
	cp := make([]byte, len(raw))
	copy(cp, raw)
	return Event{typ: SysEx, channel: channel, raw: cp}
}

// NewOtherEvent and NewErrorEvent cover messages the router does not
// dispatch on (spec.md §4.4 step 2: no lookup for Other/Error).
func NewOtherEvent(channel uint8) Event { return Event{typ: Other, channel: channel} }
func NewErrorEvent() Event              { return Event{typ: Error} }

// EventOption configures optional fields on NewChannelEvent.
type EventOption func(*Event)

func WithNote(note, velocity uint8) EventOption {
	return func(ev *Event) {
		ev.note = &note
		ev.velocity = &velocity
	}
}

func WithControl(control, value uint8) EventOption {
	return func(ev *Event) {
		ev.control = &control
		ev.value = &value
	}
}

func WithRelative(encoding RelativeEncoding) EventOption {
	return func(ev *Event) {
		ev.isRelative = true
		ev.relativeEncoding = encoding
	}
}

func (e Event) Type() Type       { return e.typ }
func (e Event) Channel() uint8   { return e.channel }
func (e Event) IsRelative() bool { return e.isRelative }

func (e Event) RelativeEncoding() RelativeEncoding { return e.relativeEncoding }

func (e Event) Note() (uint8, bool) {
	if e.note == nil {
		return 0, false
	}
	return *e.note, true
}

func (e Event) Velocity() (uint8, bool) {
	if e.velocity == nil {
		return 0, false
	}
	return *e.velocity, true
}

func (e Event) Control() (uint8, bool) {
	if e.control == nil {
		return 0, false
	}
	return *e.control, true
}

func (e Event) Value() (uint8, bool) {
	if e.value == nil {
		return 0, false
	}
	return *e.value, true
}

func (e Event) Raw() []byte {
	if e.raw == nil {
		return nil
	}
	cp := make([]byte, len(e.raw))
	copy(cp, e.raw)
	return cp
}

// Scalar returns the triggering MIDI scalar used by value-aware
// actions: velocity for Note{On,Off}, value for ControlChange, and
// false (no scalar) for SysEx/Other/Error, per spec.md §4.2.
func (e Event) Scalar() (int, bool) {
	switch e.typ {
	case NoteOn, NoteOff:
		if e.velocity != nil {
			return int(*e.velocity), true
		}
	case ControlChange:
		if e.value != nil {
			return int(*e.value), true
		}
	}
	return 0, false
}

func (e Event) String() string {
	switch e.typ {
	case NoteOn, NoteOff:
		n, _ := e.Note()
		v, _ := e.Velocity()
		return fmt.Sprintf("%s ch=%d note=%d vel=%d", e.typ, e.channel, n, v)
	case ControlChange:
		c, _ := e.Control()
		v, _ := e.Value()
		kind := "absolute"
		if e.isRelative {
			kind = "relative"
		}
		return fmt.Sprintf("ControlChange(%s) ch=%d cc=%d value=%d", kind, e.channel, c, v)
	case SysEx:
		return fmt.Sprintf("SysEx ch=%d len=%d", e.channel, len(e.raw))
	default:
		return e.typ.String()
	}
}

// PitchBend14 combines the two 7-bit pitch-bend data bytes into a
// single 14-bit value: data2 is the most-significant byte, data1 the
// least-significant, per spec.md §4.2 "MidiOutput".
func PitchBend14(data1, data2 uint8) uint16 {
	return uint16(data2)<<7 | uint16(data1&0x7f)
}
