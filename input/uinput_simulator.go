//go:build linux

package input

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/bendahl/uinput"
)

// UinputSimulator is the real Simulator implementation for Linux,
// grounded on RadoslavTsvetanov-keyboard-server-for-hyprland's
// VirtualInputDevice: it opens /dev/uinput and synthesizes keyboard
// and mouse events. Unlike the teacher, which talks to uinput through
// raw ioctl syscalls, this uses the bendahl/uinput library directly,
// since that is the dependency the teacher's own go.mod declares.
type UinputSimulator struct {
	keyboard uinput.Keyboard
	mouse    uinput.Mouse
}

// NewUinputSimulator creates virtual keyboard and mouse devices.
func NewUinputSimulator() (*UinputSimulator, error) {
	kb, err := uinput.CreateKeyboard("/dev/uinput", []byte("midiflux-keyboard"))
	if err != nil {
		return nil, fmt.Errorf("input: create virtual keyboard: %w", err)
	}
	ms, err := uinput.CreateMouse("/dev/uinput", []byte("midiflux-mouse"))
	if err != nil {
		kb.Close()
		return nil, fmt.Errorf("input: create virtual mouse: %w", err)
	}
	return &UinputSimulator{keyboard: kb, mouse: ms}, nil
}

func (u *UinputSimulator) Close() error {
	kbErr := u.keyboard.Close()
	msErr := u.mouse.Close()
	if kbErr != nil {
		return kbErr
	}
	return msErr
}

func (u *UinputSimulator) SendKeyDown(vk uint16) error {
	return u.keyboard.KeyDown(int(vk))
}

func (u *UinputSimulator) SendKeyUp(vk uint16) error {
	return u.keyboard.KeyUp(int(vk))
}

func (u *UinputSimulator) SendMouseClick(button MouseButton) error {
	switch button {
	case Left:
		return u.mouse.LeftClick()
	case Right:
		return u.mouse.RightClick()
	case Middle:
		return u.mouse.MiddleClick()
	default:
		return fmt.Errorf("input: unknown mouse button %d", button)
	}
}

func (u *UinputSimulator) SendMouseScroll(direction ScrollDirection, amount uint32) error {
	horizontal := direction == ScrollLeft || direction == ScrollRight
	delta := int32(amount)
	if direction == Down || direction == ScrollLeft {
		delta = -delta
	}
	for i := uint32(0); i < amount; i++ {
		step := int32(1)
		if delta < 0 {
			step = -1
		}
		if err := u.mouse.Wheel(horizontal, step); err != nil {
			return err
		}
	}
	return nil
}

func (u *UinputSimulator) RunCommand(ctx context.Context, command string, shell Shell, hidden bool, waitForExit bool) error {
	name, args := shellCommand(shell, command)
	cmd := exec.CommandContext(ctx, name, args...)
	applyHidden(cmd, hidden)
	if waitForExit {
		return cmd.Run()
	}
	return cmd.Start()
}

func shellCommand(shell Shell, command string) (string, []string) {
	switch shell {
	case PowerShell:
		return "powershell", []string{"-NoProfile", "-Command", command}
	default:
		return "cmd", []string{"/C", command}
	}
}
