//go:build !windows

package input

import "os/exec"

// applyHidden is a no-op outside Windows: there is no console window
// to hide on POSIX platforms.
func applyHidden(cmd *exec.Cmd, hidden bool) {}
