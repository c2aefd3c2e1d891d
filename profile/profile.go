// Package profile implements the profile loader/validator (spec.md
// §4.5, component C7): JSON parsing per spec.md §6's bit-exact wire
// shapes, structural + semantic validation, registry construction, and
// lossless save.
package profile

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/midiflux/core/action"
	"github.com/midiflux/core/midi"
	"github.com/midiflux/core/state"
)

// InputType is the wire value of Mapping.InputType (spec.md §6).
type InputType string

const (
	InputNoteOn                 InputType = "NoteOn"
	InputNoteOff                InputType = "NoteOff"
	InputControlChange          InputType = "ControlChange"
	InputControlChangeAbsolute  InputType = "ControlChangeAbsolute"
	InputControlChangeRelative  InputType = "ControlChangeRelative"
	InputSysEx                  InputType = "SysEx"
)

// Mapping is spec.md §6's Mapping: one binding from a MIDI fingerprint
// to an ActionConfig.
type Mapping struct {
	Id            string        `json:"Id,omitempty"`
	Description   string        `json:"Description,omitempty"`
	IsEnabled     bool          `json:"IsEnabled"`
	InputType     InputType     `json:"InputType"`
	Note          *int          `json:"Note,omitempty"`
	ControlNumber *int          `json:"ControlNumber,omitempty"`
	Channel       *int          `json:"Channel,omitempty"`
	SysExPattern  string        `json:"SysExPattern,omitempty"`
	Action        action.Config `json:"Action"`
}

// MarshalJSON renders Action through action.EncodeConfig, preserving
// the $type-tagged wire form.
func (m Mapping) MarshalJSON() ([]byte, error) {
	type alias Mapping
	raw, err := action.EncodeConfig(m.Action)
	if err != nil {
		return nil, fmt.Errorf("profile: encode mapping %q action: %w", m.Id, err)
	}
	return json.Marshal(struct {
		alias
		Action json.RawMessage `json:"Action"`
	}{alias(m), raw})
}

func (m *Mapping) UnmarshalJSON(data []byte) error {
	type alias Mapping
	var wire struct {
		alias
		Action json.RawMessage `json:"Action"`
	}
	wire.IsEnabled = true // default per spec.md §6
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	*m = Mapping(wire.alias)
	cfg, err := action.DecodeConfig(wire.Action)
	if err != nil {
		return fmt.Errorf("profile: decode mapping %q action: %w", m.Id, err)
	}
	m.Action = cfg
	return nil
}

// DeviceConfig is spec.md §6's Device.
type DeviceConfig struct {
	InputProfile string    `json:"InputProfile"`
	DeviceName   string    `json:"DeviceName"`
	MidiChannels []int     `json:"MidiChannels,omitempty"`
	Mappings     []Mapping `json:"Mappings"`
}

// Profile is spec.md §6's top-level object and §3's Profile type.
type Profile struct {
	ProfileName   string           `json:"ProfileName"`
	Description   string           `json:"Description,omitempty"`
	InitialStates map[string]int32 `json:"InitialStates,omitempty"`
	MidiDevices   []DeviceConfig   `json:"MidiDevices"`
}

// ValidationError is one ConfigValidation failure (spec.md §7).
type ValidationError struct {
	Path    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// assignMappingIDs fills every empty Mapping.Id with a fresh UUID, so
// every mapping has a stable identity by the time the registry and
// Alternating auto-keys are derived from it.
func assignMappingIDs(p *Profile) {
	for di := range p.MidiDevices {
		for mi := range p.MidiDevices[di].Mappings {
			if p.MidiDevices[di].Mappings[mi].Id == "" {
				p.MidiDevices[di].Mappings[mi].Id = uuid.NewString()
			}
		}
	}
}

// fingerprintFor derives the EventFingerprint for one Mapping within a
// DeviceConfig (spec.md §3 EventFingerprint, §4.5 "every mapping has a
// valid fingerprint").
func fingerprintFor(dev DeviceConfig, m Mapping) (midi.Fingerprint, error) {
	deviceName := midi.NormalizeDeviceName(dev.DeviceName)
	channel := uint8(midi.AnyChannel)
	if m.Channel != nil {
		channel = uint8(*m.Channel)
	}

	switch m.InputType {
	case InputNoteOn, InputNoteOff:
		if m.Note == nil {
			return midi.Fingerprint{}, fmt.Errorf("%s requires Note", m.InputType)
		}
		kind := midi.KindNoteOn(uint8(*m.Note))
		if m.InputType == InputNoteOff {
			kind = midi.KindNoteOff(uint8(*m.Note))
		}
		return midi.Fingerprint{DeviceName: deviceName, Channel: channel, Kind: kind}, nil

	case InputControlChange, InputControlChangeAbsolute, InputControlChangeRelative:
		if m.ControlNumber == nil {
			return midi.Fingerprint{}, fmt.Errorf("%s requires ControlNumber", m.InputType)
		}
		kind := midi.KindCCAbsolute(uint8(*m.ControlNumber))
		if m.InputType == InputControlChangeRelative {
			kind = midi.KindCCRelative(uint8(*m.ControlNumber))
		}
		return midi.Fingerprint{DeviceName: deviceName, Channel: channel, Kind: kind}, nil

	case InputSysEx:
		if m.SysExPattern == "" {
			return midi.Fingerprint{}, fmt.Errorf("SysEx requires SysExPattern")
		}
		pattern, err := midi.ParseSysExPattern(m.SysExPattern)
		if err != nil {
			return midi.Fingerprint{}, err
		}
		return midi.Fingerprint{DeviceName: deviceName, Channel: channel, Kind: midi.KindSysExPattern(pattern)}, nil

	default:
		return midi.Fingerprint{}, fmt.Errorf("unknown InputType %q", m.InputType)
	}
}

// Validate runs every check from spec.md §4.5 beyond per-config
// Config.Validate, returning every violation found (load never stops
// at the first error).
func (p *Profile) Validate() []ValidationError {
	var errs []ValidationError

	if p.ProfileName == "" {
		errs = append(errs, ValidationError{Path: "ProfileName", Message: "must not be empty"})
	}
	if len(p.MidiDevices) == 0 {
		errs = append(errs, ValidationError{Path: "MidiDevices", Message: "must contain at least one device"})
	}

	for key := range p.InitialStates {
		if !state.IsUserKey(key) {
			errs = append(errs, ValidationError{Path: fmt.Sprintf("InitialStates[%s]", key), Message: "must be a user-defined key"})
		}
	}

	for di, dev := range p.MidiDevices {
		for mi, m := range dev.Mappings {
			path := fmt.Sprintf("MidiDevices[%d].Mappings[%d]", di, mi)
			if _, err := fingerprintFor(dev, m); err != nil {
				errs = append(errs, ValidationError{Path: path, Message: err.Error()})
				continue
			}
			if m.Action == nil {
				errs = append(errs, ValidationError{Path: path + ".Action", Message: "required"})
				continue
			}
			for _, issue := range m.Action.Validate(path + ".Action") {
				errs = append(errs, ValidationError{Path: issue.Path, Message: issue.Message})
			}
		}
	}
	return errs
}
