package input

import evdev "github.com/gvalkov/golang-evdev"

// NamedVirtualKeys maps human-readable key names (as authored in a
// profile's virtual_key fields indirectly, via whatever front-end
// generates the JSON) to the Linux evdev virtual-key numbering this
// module's *Key{vk} internal state namespace assumes (spec.md §3).
// Grounded on RadoslavTsvetanov-keyboard-server-for-hyprland's keyMap
// and chul81-go-hidproxy's Scancodes table, both of which target the
// same Linux KEY_* numbering reused here via
// github.com/gvalkov/golang-evdev's constants so the virtual-key
// space a profile author sees matches the one a real uinput/evdev
// backend reports.
var NamedVirtualKeys = map[string]uint16{
	"a": uint16(evdev.KEY_A), "b": uint16(evdev.KEY_B), "c": uint16(evdev.KEY_C),
	"d": uint16(evdev.KEY_D), "e": uint16(evdev.KEY_E), "f": uint16(evdev.KEY_F),
	"g": uint16(evdev.KEY_G), "h": uint16(evdev.KEY_H), "i": uint16(evdev.KEY_I),
	"j": uint16(evdev.KEY_J), "k": uint16(evdev.KEY_K), "l": uint16(evdev.KEY_L),
	"m": uint16(evdev.KEY_M), "n": uint16(evdev.KEY_N), "o": uint16(evdev.KEY_O),
	"p": uint16(evdev.KEY_P), "q": uint16(evdev.KEY_Q), "r": uint16(evdev.KEY_R),
	"s": uint16(evdev.KEY_S), "t": uint16(evdev.KEY_T), "u": uint16(evdev.KEY_U),
	"v": uint16(evdev.KEY_V), "w": uint16(evdev.KEY_W), "x": uint16(evdev.KEY_X),
	"y": uint16(evdev.KEY_Y), "z": uint16(evdev.KEY_Z),

	"1": uint16(evdev.KEY_1), "2": uint16(evdev.KEY_2), "3": uint16(evdev.KEY_3),
	"4": uint16(evdev.KEY_4), "5": uint16(evdev.KEY_5), "6": uint16(evdev.KEY_6),
	"7": uint16(evdev.KEY_7), "8": uint16(evdev.KEY_8), "9": uint16(evdev.KEY_9),
	"0": uint16(evdev.KEY_0),

	"space": uint16(evdev.KEY_SPACE), "enter": uint16(evdev.KEY_ENTER),
	"tab": uint16(evdev.KEY_TAB), "backspace": uint16(evdev.KEY_BACKSPACE),
	"esc": uint16(evdev.KEY_ESC), "escape": uint16(evdev.KEY_ESC),

	"leftctrl": uint16(evdev.KEY_LEFTCTRL), "rightctrl": uint16(evdev.KEY_RIGHTCTRL),
	"leftshift": uint16(evdev.KEY_LEFTSHIFT), "rightshift": uint16(evdev.KEY_RIGHTSHIFT),
	"leftalt": uint16(evdev.KEY_LEFTALT), "rightalt": uint16(evdev.KEY_RIGHTALT),
	"leftmeta": uint16(evdev.KEY_LEFTMETA), "rightmeta": uint16(evdev.KEY_RIGHTMETA),

	"up": uint16(evdev.KEY_UP), "down": uint16(evdev.KEY_DOWN),
	"left": uint16(evdev.KEY_LEFT), "right": uint16(evdev.KEY_RIGHT),

	"f1": uint16(evdev.KEY_F1), "f2": uint16(evdev.KEY_F2), "f3": uint16(evdev.KEY_F3),
	"f4": uint16(evdev.KEY_F4), "f5": uint16(evdev.KEY_F5), "f6": uint16(evdev.KEY_F6),
	"f7": uint16(evdev.KEY_F7), "f8": uint16(evdev.KEY_F8), "f9": uint16(evdev.KEY_F9),
	"f10": uint16(evdev.KEY_F10), "f11": uint16(evdev.KEY_F11), "f12": uint16(evdev.KEY_F12),
}
