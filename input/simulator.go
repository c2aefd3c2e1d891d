// Package input defines the OS input-simulator facade the action
// model consumes (spec.md §6) plus a real uinput-backed implementation
// for Linux.
package input

import "context"

// MouseButton identifies a mouse button for SendMouseClick.
type MouseButton int

const (
	Left MouseButton = iota
	Right
	Middle
)

// ScrollDirection identifies a wheel direction for SendMouseScroll.
type ScrollDirection int

const (
	Up ScrollDirection = iota
	Down
	ScrollLeft
	ScrollRight
)

// Shell identifies which shell CommandExecution should run a command
// through, per spec.md §3 CommandExecution.
type Shell int

const (
	PowerShell Shell = iota
	CommandPrompt
)

// Simulator is the facade spec.md §6 describes: "send_key_down(vk)",
// "send_key_up(vk)", "send_mouse_click(button)",
// "send_mouse_scroll(direction, amount)",
// "run_command(cmd, shell, hidden, wait)".
type Simulator interface {
	SendKeyDown(vk uint16) error
	SendKeyUp(vk uint16) error
	SendMouseClick(button MouseButton) error
	SendMouseScroll(direction ScrollDirection, amount uint32) error
	RunCommand(ctx context.Context, command string, shell Shell, hidden bool, waitForExit bool) error
}
