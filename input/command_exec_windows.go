//go:build windows

package input

import (
	"os/exec"
	"syscall"
)

// applyHidden suppresses the console window, per spec.md §3
// CommandExecution.run_hidden.
func applyHidden(cmd *exec.Cmd, hidden bool) {
	if !hidden {
		return
	}
	cmd.SysProcAttr = &syscall.SysProcAttr{HideWindow: true}
}
