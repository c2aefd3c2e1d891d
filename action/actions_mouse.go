package action

import (
	"context"

	"github.com/midiflux/core/input"
)

func mouseButtonFrom(name MouseButtonName) input.MouseButton {
	switch name {
	case MouseRight:
		return input.Right
	case MouseMiddle:
		return input.Middle
	default:
		return input.Left
	}
}

func scrollDirectionFrom(name ScrollDirectionName) input.ScrollDirection {
	switch name {
	case ScrollDown:
		return input.Down
	case ScrollLeft:
		return input.ScrollLeft
	case ScrollRight:
		return input.ScrollRight
	default:
		return input.Up
	}
}

// mouseClickAction — spec.md §3 MouseClick{button}.
type mouseClickAction struct {
	input  input.Simulator
	button MouseButtonName
}

func (a *mouseClickAction) Execute(ctx context.Context, value int, hasValue bool) error {
	if a.input == nil {
		return &ServiceUnavailableError{ActionKind: TypeMouseClick, Service: "input simulator"}
	}
	if err := a.input.SendMouseClick(mouseButtonFrom(a.button)); err != nil {
		return &InputEmitFailedError{Kind: "mouse_click", Source: err}
	}
	return nil
}

// mouseScrollAction — spec.md §3 MouseScroll{direction, amount}.
type mouseScrollAction struct {
	input     input.Simulator
	direction ScrollDirectionName
	amount    uint32
}

func (a *mouseScrollAction) Execute(ctx context.Context, value int, hasValue bool) error {
	if a.input == nil {
		return &ServiceUnavailableError{ActionKind: TypeMouseScroll, Service: "input simulator"}
	}
	if err := a.input.SendMouseScroll(scrollDirectionFrom(a.direction), a.amount); err != nil {
		return &InputEmitFailedError{Kind: "mouse_scroll", Source: err}
	}
	return nil
}
