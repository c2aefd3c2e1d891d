package action

import "github.com/midiflux/core/state"

func isUserStateKey(key string) bool {
	return state.IsUserKey(key)
}
