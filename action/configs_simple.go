package action

import "encoding/json"

// KeyPressReleaseConfig — spec.md §3 KeyPressRelease{virtual_key:u16}.
type KeyPressReleaseConfig struct {
	VirtualKey uint16 `json:"virtual_key"`
}

func (c *KeyPressReleaseConfig) Type() string { return TypeKeyPressRelease }

func (c *KeyPressReleaseConfig) Validate(path string) []ValidationIssue {
	return nil
}

func (c *KeyPressReleaseConfig) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type       string `json:"$type"`
		VirtualKey uint16 `json:"virtual_key"`
	}{TypeKeyPressRelease, c.VirtualKey})
}

// KeyDownConfig — spec.md §3 KeyDown{virtual_key, auto_release_after_ms?}.
type KeyDownConfig struct {
	VirtualKey         uint16  `json:"virtual_key"`
	AutoReleaseAfterMs *uint32 `json:"auto_release_after_ms,omitempty"`
}

func (c *KeyDownConfig) Type() string { return TypeKeyDown }

func (c *KeyDownConfig) Validate(path string) []ValidationIssue { return nil }

func (c *KeyDownConfig) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type               string  `json:"$type"`
		VirtualKey         uint16  `json:"virtual_key"`
		AutoReleaseAfterMs *uint32 `json:"auto_release_after_ms,omitempty"`
	}{TypeKeyDown, c.VirtualKey, c.AutoReleaseAfterMs})
}

// KeyUpConfig — spec.md §3 KeyUp{virtual_key}.
type KeyUpConfig struct {
	VirtualKey uint16 `json:"virtual_key"`
}

func (c *KeyUpConfig) Type() string                           { return TypeKeyUp }
func (c *KeyUpConfig) Validate(path string) []ValidationIssue { return nil }
func (c *KeyUpConfig) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type       string `json:"$type"`
		VirtualKey uint16 `json:"virtual_key"`
	}{TypeKeyUp, c.VirtualKey})
}

// KeyToggleConfig — spec.md §3 KeyToggle{virtual_key}.
type KeyToggleConfig struct {
	VirtualKey uint16 `json:"virtual_key"`
}

func (c *KeyToggleConfig) Type() string                           { return TypeKeyToggle }
func (c *KeyToggleConfig) Validate(path string) []ValidationIssue { return nil }
func (c *KeyToggleConfig) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type       string `json:"$type"`
		VirtualKey uint16 `json:"virtual_key"`
	}{TypeKeyToggle, c.VirtualKey})
}

// MouseButtonName is the wire representation of spec.md's
// button ∈ {Left,Right,Middle}.
type MouseButtonName string

const (
	MouseLeft   MouseButtonName = "Left"
	MouseRight  MouseButtonName = "Right"
	MouseMiddle MouseButtonName = "Middle"
)

// MouseClickConfig — spec.md §3 MouseClick{button}.
type MouseClickConfig struct {
	Button MouseButtonName `json:"button"`
}

func (c *MouseClickConfig) Type() string { return TypeMouseClick }

func (c *MouseClickConfig) Validate(path string) []ValidationIssue {
	switch c.Button {
	case MouseLeft, MouseRight, MouseMiddle:
		return nil
	default:
		return []ValidationIssue{{Path: path + ".button", Message: "must be Left, Right, or Middle"}}
	}
}

func (c *MouseClickConfig) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type   string          `json:"$type"`
		Button MouseButtonName `json:"button"`
	}{TypeMouseClick, c.Button})
}

// ScrollDirectionName is the wire representation of spec.md's
// direction ∈ {Up,Down,Left,Right}.
type ScrollDirectionName string

const (
	ScrollUp    ScrollDirectionName = "Up"
	ScrollDown  ScrollDirectionName = "Down"
	ScrollLeft  ScrollDirectionName = "Left"
	ScrollRight ScrollDirectionName = "Right"
)

// MouseScrollConfig — spec.md §3 MouseScroll{direction, amount>0}.
type MouseScrollConfig struct {
	Direction ScrollDirectionName `json:"direction"`
	Amount    uint32              `json:"amount"`
}

func (c *MouseScrollConfig) Type() string { return TypeMouseScroll }

func (c *MouseScrollConfig) Validate(path string) []ValidationIssue {
	var issues []ValidationIssue
	switch c.Direction {
	case ScrollUp, ScrollDown, ScrollLeft, ScrollRight:
	default:
		issues = append(issues, ValidationIssue{Path: path + ".direction", Message: "must be Up, Down, Left, or Right"})
	}
	if c.Amount == 0 {
		issues = append(issues, ValidationIssue{Path: path + ".amount", Message: "must be > 0"})
	}
	return issues
}

func (c *MouseScrollConfig) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type      string              `json:"$type"`
		Direction ScrollDirectionName `json:"direction"`
		Amount    uint32              `json:"amount"`
	}{TypeMouseScroll, c.Direction, c.Amount})
}

// ShellName is the wire representation of spec.md's
// shell ∈ {PowerShell,CommandPrompt}.
type ShellName string

const (
	ShellPowerShell    ShellName = "PowerShell"
	ShellCommandPrompt ShellName = "CommandPrompt"
)

// CommandExecutionConfig — spec.md §3 CommandExecution{command, shell,
// run_hidden, wait_for_exit}.
type CommandExecutionConfig struct {
	Command     string    `json:"command"`
	Shell       ShellName `json:"shell"`
	RunHidden   bool      `json:"run_hidden"`
	WaitForExit bool      `json:"wait_for_exit"`
}

func (c *CommandExecutionConfig) Type() string { return TypeCommandExecution }

func (c *CommandExecutionConfig) Validate(path string) []ValidationIssue {
	var issues []ValidationIssue
	if c.Command == "" {
		issues = append(issues, ValidationIssue{Path: path + ".command", Message: "must not be empty"})
	}
	switch c.Shell {
	case ShellPowerShell, ShellCommandPrompt:
	default:
		issues = append(issues, ValidationIssue{Path: path + ".shell", Message: "must be PowerShell or CommandPrompt"})
	}
	return issues
}

func (c *CommandExecutionConfig) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type        string    `json:"$type"`
		Command     string    `json:"command"`
		Shell       ShellName `json:"shell"`
		RunHidden   bool      `json:"run_hidden"`
		WaitForExit bool      `json:"wait_for_exit"`
	}{TypeCommandExecution, c.Command, c.Shell, c.RunHidden, c.WaitForExit})
}

// DelayConfig — spec.md §3 Delay{milliseconds>0}.
type DelayConfig struct {
	Milliseconds uint32 `json:"milliseconds"`
}

func (c *DelayConfig) Type() string { return TypeDelay }

func (c *DelayConfig) Validate(path string) []ValidationIssue {
	if c.Milliseconds == 0 {
		return []ValidationIssue{{Path: path + ".milliseconds", Message: "must be > 0"}}
	}
	return nil
}

func (c *DelayConfig) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type         string `json:"$type"`
		Milliseconds uint32 `json:"milliseconds"`
	}{TypeDelay, c.Milliseconds})
}

// GameControllerButtonConfig — spec.md §3
// GameControllerButton{button, controller_index ∈ 0..=3}.
type GameControllerButtonConfig struct {
	Button          string `json:"button"`
	ControllerIndex int    `json:"controller_index"`
}

func (c *GameControllerButtonConfig) Type() string { return TypeGameControllerButton }

func (c *GameControllerButtonConfig) Validate(path string) []ValidationIssue {
	var issues []ValidationIssue
	if c.Button == "" {
		issues = append(issues, ValidationIssue{Path: path + ".button", Message: "must not be empty"})
	}
	if c.ControllerIndex < 0 || c.ControllerIndex > 3 {
		issues = append(issues, ValidationIssue{Path: path + ".controller_index", Message: "must be in 0..=3"})
	}
	return issues
}

func (c *GameControllerButtonConfig) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type            string `json:"$type"`
		Button          string `json:"button"`
		ControllerIndex int    `json:"controller_index"`
	}{TypeGameControllerButton, c.Button, c.ControllerIndex})
}

// GameControllerAxisConfig — spec.md §3 GameControllerAxis{axis,
// controller_index, axis_value, use_midi_value, min_value, max_value,
// invert}.
type GameControllerAxisConfig struct {
	Axis            string  `json:"axis"`
	ControllerIndex int     `json:"controller_index"`
	AxisValue       float64 `json:"axis_value"`
	UseMidiValue    bool    `json:"use_midi_value"`
	MinValue        uint8   `json:"min_value"`
	MaxValue        uint8   `json:"max_value"`
	Invert          bool    `json:"invert"`
}

func (c *GameControllerAxisConfig) Type() string { return TypeGameControllerAxis }

func (c *GameControllerAxisConfig) Validate(path string) []ValidationIssue {
	var issues []ValidationIssue
	if c.Axis == "" {
		issues = append(issues, ValidationIssue{Path: path + ".axis", Message: "must not be empty"})
	}
	if c.ControllerIndex < 0 || c.ControllerIndex > 3 {
		issues = append(issues, ValidationIssue{Path: path + ".controller_index", Message: "must be in 0..=3"})
	}
	if c.AxisValue < -1.0 || c.AxisValue > 1.0 {
		issues = append(issues, ValidationIssue{Path: path + ".axis_value", Message: "must be in [-1.0,1.0]"})
	}
	if c.MinValue > c.MaxValue {
		issues = append(issues, ValidationIssue{Path: path + ".min_value", Message: "must be <= max_value"})
	}
	return issues
}

func (c *GameControllerAxisConfig) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type            string  `json:"$type"`
		Axis            string  `json:"axis"`
		ControllerIndex int     `json:"controller_index"`
		AxisValue       float64 `json:"axis_value"`
		UseMidiValue    bool    `json:"use_midi_value"`
		MinValue        uint8   `json:"min_value"`
		MaxValue        uint8   `json:"max_value"`
		Invert          bool    `json:"invert"`
	}{TypeGameControllerAxis, c.Axis, c.ControllerIndex, c.AxisValue, c.UseMidiValue, c.MinValue, c.MaxValue, c.Invert})
}

// SetStateConfig — spec.md §3 SetState{state_key, state_value}.
type SetStateConfig struct {
	StateKey   string `json:"state_key"`
	StateValue int32  `json:"state_value"`
}

func (c *SetStateConfig) Type() string { return TypeSetState }

func (c *SetStateConfig) Validate(path string) []ValidationIssue {
	if !isUserStateKey(c.StateKey) {
		return []ValidationIssue{{Path: path + ".state_key", Message: "must be a user-defined state key"}}
	}
	return nil
}

func (c *SetStateConfig) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type       string `json:"$type"`
		StateKey   string `json:"state_key"`
		StateValue int32  `json:"state_value"`
	}{TypeSetState, c.StateKey, c.StateValue})
}
