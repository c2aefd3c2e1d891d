package action

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"

	"github.com/midiflux/core/midi"
	"github.com/midiflux/core/state"
)

// DeriveAlternatingKey returns the stable auto-generated state key for
// an Alternating action whose config left state_key empty (spec.md §9:
// "deterministic from the mapping id / position, reserved to this
// namespace"). The profile/registry build step calls this once per
// mapping, before the config reaches the factory, so Create never
// needs mapping context.
func DeriveAlternatingKey(deviceName string, fp midi.Fingerprint, mappingID string) string {
	h := sha1.New()
	fmt.Fprintf(h, "%s|%d|%d|%d|%s", deviceName, fp.Channel, fp.Kind.Number(), kindDiscriminant(fp.Kind), mappingID)
	return state.AlternatingKeyPrefix + hex.EncodeToString(h.Sum(nil))[:12]
}

func kindDiscriminant(k midi.Kind) int {
	switch {
	case k.IsNoteOn():
		return 0
	case k.IsNoteOff():
		return 1
	case k.IsCCAbsolute():
		return 2
	case k.IsCCRelative():
		return 3
	case k.IsSysEx():
		return 4
	default:
		return -1
	}
}
