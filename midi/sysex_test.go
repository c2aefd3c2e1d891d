package midi_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/midiflux/core/midi"
)

// spec.md §8 invariant 9 / §3: framing bytes F0 (0xF0) and F7 (0xF7)
// are both > 0x7F and must still parse; only data-position literals
// are bounded to [0x00,0x7F].
func TestParseSysExPattern_AcceptsValidPattern(t *testing.T) {
	p, err := midi.ParseSysExPattern("F0 43 XX 00 41 30 XX F7")
	require.NoError(t, err)
	assert.Equal(t, 8, p.Len())
	assert.Equal(t, "F0 43 XX 00 41 30 XX F7", p.String())
}

func TestParseSysExPattern_RejectsOutOfRangeDataByte(t *testing.T) {
	_, err := midi.ParseSysExPattern("F0 FF F7")
	assert.Error(t, err)
}

func TestParseSysExPattern_RejectsMissingFraming(t *testing.T) {
	_, err := midi.ParseSysExPattern("43 00 F7")
	assert.Error(t, err)

	_, err = midi.ParseSysExPattern("F0 43 00")
	assert.Error(t, err)
}

func TestParseSysExPattern_RejectsWildcardFraming(t *testing.T) {
	_, err := midi.ParseSysExPattern("XX 43 F7")
	assert.Error(t, err)

	_, err = midi.ParseSysExPattern("F0 43 XX")
	assert.Error(t, err)
}

func TestSysExPattern_MatchWildcardAndLength(t *testing.T) {
	p, err := midi.ParseSysExPattern("F0 43 XX 00 41 30 XX F7")
	require.NoError(t, err)

	assert.True(t, p.Match([]byte{0xF0, 0x43, 0x01, 0x00, 0x41, 0x30, 0x02, 0xF7}))
	assert.False(t, p.Match([]byte{0xF0, 0x43, 0x01, 0x00, 0x41, 0x31, 0x02, 0xF7}))
	assert.False(t, p.Match([]byte{0xF0, 0x43, 0x01, 0x00, 0x41, 0x30, 0x02}))
}
