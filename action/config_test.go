package action_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/midiflux/core/action"
)

func TestDecodeConfig_RoundTrip_Simple(t *testing.T) {
	cfg := &action.KeyPressReleaseConfig{VirtualKey: 42}
	data, err := action.EncodeConfig(cfg)
	require.NoError(t, err)

	decoded, err := action.DecodeConfig(data)
	require.NoError(t, err)
	assert.Equal(t, cfg, decoded)
}

func TestDecodeConfig_RoundTrip_Composite(t *testing.T) {
	cfg := &action.SequenceConfig{
		SubActions: []action.Config{
			&action.KeyDownConfig{VirtualKey: 1},
			&action.DelayConfig{Milliseconds: 10},
			&action.KeyUpConfig{VirtualKey: 1},
		},
		ErrorHandling: action.StopOnError,
	}
	data, err := action.EncodeConfig(cfg)
	require.NoError(t, err)

	decoded, err := action.DecodeConfig(data)
	require.NoError(t, err)

	reencoded, err := action.EncodeConfig(decoded)
	require.NoError(t, err)
	assert.JSONEq(t, string(data), string(reencoded))
}

func TestDecodeConfig_UnknownType(t *testing.T) {
	_, err := action.DecodeConfig([]byte(`{"$type":"Bogus"}`))
	assert.Error(t, err)
}

func TestDecodeConfig_MissingType(t *testing.T) {
	_, err := action.DecodeConfig([]byte(`{}`))
	assert.Error(t, err)
}

func TestConditionalConfig_Validate_RejectsOverlap(t *testing.T) {
	cfg := &action.ConditionalConfig{
		Conditions: []action.ConditionalBranch{
			{MinValue: 0, MaxValue: 70, Action: &action.KeyPressReleaseConfig{VirtualKey: 1}},
			{MinValue: 64, MaxValue: 127, Action: &action.KeyPressReleaseConfig{VirtualKey: 2}},
		},
	}
	issues := cfg.Validate("action")
	assert.NotEmpty(t, issues)
}

func TestConditionalConfig_Validate_AcceptsNonOverlapping(t *testing.T) {
	cfg := &action.ConditionalConfig{
		Conditions: []action.ConditionalBranch{
			{MinValue: 0, MaxValue: 63, Action: &action.KeyPressReleaseConfig{VirtualKey: 1}},
			{MinValue: 64, MaxValue: 127, Action: &action.KeyPressReleaseConfig{VirtualKey: 2}},
		},
	}
	assert.Empty(t, cfg.Validate("action"))
}

func TestMidiOutputConfig_Validate_RejectsWildcardDevice(t *testing.T) {
	cfg := &action.MidiOutputConfig{
		OutputDeviceName: "*",
		Commands: []action.MidiOutputCommand{
			{MessageType: action.MidiNoteOn, Channel: 1, Data1: 60, Data2: 100},
		},
	}
	assert.NotEmpty(t, cfg.Validate("action"))
}

func TestMidiOutputConfig_Validate_RequiresSysExBounds(t *testing.T) {
	bad := &action.MidiOutputConfig{
		OutputDeviceName: "Synth",
		Commands: []action.MidiOutputCommand{
			{MessageType: action.MidiSysEx, Channel: 1, SysExData: "41 00 F7"},
		},
	}
	assert.NotEmpty(t, bad.Validate("action"))

	good := &action.MidiOutputConfig{
		OutputDeviceName: "Synth",
		Commands: []action.MidiOutputCommand{
			{MessageType: action.MidiSysEx, Channel: 1, SysExData: "F0 41 00 F7"},
		},
	}
	assert.Empty(t, good.Validate("action"))
}

func TestSetStateConfig_Validate_RejectsInternalKey(t *testing.T) {
	cfg := &action.SetStateConfig{StateKey: "*Key65", StateValue: 1}
	assert.NotEmpty(t, cfg.Validate("action"))
}
