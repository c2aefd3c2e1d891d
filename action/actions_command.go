package action

import (
	"context"
	"time"

	"github.com/midiflux/core/input"
)

// commandExecutionAction — spec.md §3 CommandExecution{command, shell,
// run_hidden, wait_for_exit}.
type commandExecutionAction struct {
	input input.Simulator
	cfg   *CommandExecutionConfig
}

func (a *commandExecutionAction) Execute(ctx context.Context, value int, hasValue bool) error {
	if a.input == nil {
		return &ServiceUnavailableError{ActionKind: TypeCommandExecution, Service: "input simulator"}
	}
	shell := input.PowerShell
	if a.cfg.Shell == ShellCommandPrompt {
		shell = input.CommandPrompt
	}
	err := a.input.RunCommand(ctx, a.cfg.Command, shell, a.cfg.RunHidden, a.cfg.WaitForExit)
	if err != nil {
		return &CommandFailedError{Command: a.cfg.Command, Source: err}
	}
	return nil
}

// delayAction — spec.md §3 Delay{milliseconds}: a suspension point
// that yields the executor without blocking the MIDI callback thread
// (spec.md §5).
type delayAction struct {
	milliseconds uint32
}

func (a *delayAction) Execute(ctx context.Context, value int, hasValue bool) error {
	timer := time.NewTimer(time.Duration(a.milliseconds) * time.Millisecond)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
