package action

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/midiflux/core/midi"
)

// MidiMessageType is the wire value of MidiOutputCommand.message_type
// (spec.md §4.2).
type MidiMessageType string

const (
	MidiNoteOn         MidiMessageType = "NoteOn"
	MidiNoteOff        MidiMessageType = "NoteOff"
	MidiControlChange  MidiMessageType = "ControlChange"
	MidiProgramChange  MidiMessageType = "ProgramChange"
	MidiPitchBend      MidiMessageType = "PitchBend"
	MidiSysEx          MidiMessageType = "SysEx"
)

// MidiOutputCommand — spec.md §4.2: "{message_type, channel ∈ 1..=16,
// data1 ∈ 0..=127, data2 ∈ 0..=127, sysex_data?}".
type MidiOutputCommand struct {
	MessageType MidiMessageType `json:"message_type"`
	Channel     int             `json:"channel"`
	Data1       uint8           `json:"data1"`
	Data2       uint8           `json:"data2"`
	SysExData   string          `json:"sysex_data,omitempty"`
}

func (c MidiOutputCommand) validate(path string) []ValidationIssue {
	var issues []ValidationIssue
	if c.Channel < 1 || c.Channel > 16 {
		issues = append(issues, ValidationIssue{Path: path + ".channel", Message: "must be in 1..=16"})
	}
	switch c.MessageType {
	case MidiNoteOn, MidiNoteOff, MidiControlChange:
		if c.Data1 > 127 {
			issues = append(issues, ValidationIssue{Path: path + ".data1", Message: "must be 0..=127"})
		}
		if c.Data2 > 127 {
			issues = append(issues, ValidationIssue{Path: path + ".data2", Message: "must be 0..=127"})
		}
	case MidiProgramChange:
		if c.Data1 > 127 {
			issues = append(issues, ValidationIssue{Path: path + ".data1", Message: "must be 0..=127"})
		}
	case MidiPitchBend:
		if c.Data1 > 127 {
			issues = append(issues, ValidationIssue{Path: path + ".data1", Message: "must be 0..=127"})
		}
		if c.Data2 > 127 {
			issues = append(issues, ValidationIssue{Path: path + ".data2", Message: "must be 0..=127"})
		}
	case MidiSysEx:
		if c.SysExData == "" {
			issues = append(issues, ValidationIssue{Path: path + ".sysex_data", Message: "required for SysEx"})
		} else if _, err := parseSysExLiteral(c.SysExData); err != nil {
			issues = append(issues, ValidationIssue{Path: path + ".sysex_data", Message: err.Error()})
		}
	default:
		issues = append(issues, ValidationIssue{Path: path + ".message_type", Message: "must be NoteOn, NoteOff, ControlChange, ProgramChange, PitchBend, or SysEx"})
	}
	return issues
}

// bytes renders the command to the raw bytes sent to the adapter.
// Pitch-bend packs 14 bits as data2<<7 | data1 (spec.md §4.2).
func (c MidiOutputCommand) bytes() ([]byte, error) {
	status := byte(c.Channel - 1)
	switch c.MessageType {
	case MidiNoteOn:
		return []byte{0x90 | status, c.Data1, c.Data2}, nil
	case MidiNoteOff:
		return []byte{0x80 | status, c.Data1, c.Data2}, nil
	case MidiControlChange:
		return []byte{0xB0 | status, c.Data1, c.Data2}, nil
	case MidiProgramChange:
		return []byte{0xC0 | status, c.Data1}, nil
	case MidiPitchBend:
		return []byte{0xE0 | status, c.Data1, c.Data2}, nil
	case MidiSysEx:
		return parseSysExLiteral(c.SysExData)
	default:
		return nil, fmt.Errorf("action: unknown MIDI message type %q", c.MessageType)
	}
}

// parseSysExLiteral parses a MidiOutputCommand's sysex_data field:
// whitespace-separated two-hex-digit bytes with no wildcards,
// starting 0xF0 and ending 0xF7 (spec.md §4.2).
func parseSysExLiteral(text string) ([]byte, error) {
	fields := strings.Fields(text)
	if len(fields) < 2 {
		return nil, fmt.Errorf("sysex_data: need at least F0 and F7, got %q", text)
	}
	out := make([]byte, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseUint(f, 16, 8)
		if err != nil {
			return nil, fmt.Errorf("sysex_data: invalid byte %q: %w", f, err)
		}
		out[i] = byte(v)
	}
	if out[0] != 0xF0 {
		return nil, fmt.Errorf("sysex_data: must start with F0, got %q", text)
	}
	if out[len(out)-1] != 0xF7 {
		return nil, fmt.Errorf("sysex_data: must end with F7, got %q", text)
	}
	return out, nil
}

// MidiOutputConfig — spec.md §3
// MidiOutput{output_device_name≠"*", commands:[MidiOutputCommand]}.
type MidiOutputConfig struct {
	OutputDeviceName string              `json:"output_device_name"`
	Commands         []MidiOutputCommand `json:"commands"`
}

func (c *MidiOutputConfig) Type() string { return TypeMidiOutput }

func (c *MidiOutputConfig) Validate(path string) []ValidationIssue {
	var issues []ValidationIssue
	if c.OutputDeviceName == "" || c.OutputDeviceName == midi.AnyDevice {
		issues = append(issues, ValidationIssue{Path: path + ".output_device_name", Message: `must be a concrete device name, not "" or "*"`})
	}
	if len(c.Commands) == 0 {
		issues = append(issues, ValidationIssue{Path: path + ".commands", Message: "must be non-empty"})
	}
	for i, cmd := range c.Commands {
		issues = append(issues, cmd.validate(fmt.Sprintf("%s.commands[%d]", path, i))...)
	}
	return issues
}

func (c *MidiOutputConfig) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type             string              `json:"$type"`
		OutputDeviceName string              `json:"output_device_name"`
		Commands         []MidiOutputCommand `json:"commands"`
	}{TypeMidiOutput, c.OutputDeviceName, c.Commands})
}
