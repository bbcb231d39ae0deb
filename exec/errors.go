package exec

import (
	"errors"
	"fmt"
)

// ExecError describes a process that failed to start or exited non-zero.
type ExecError struct {
	// Command is the argv that was run.
	Command []string

	// ExitCode is -1 when the process never started.
	ExitCode int

	// Stderr is the captured standard error, if any.
	Stderr string

	Err error
}

func (e *ExecError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("command %v failed with exit code %d: %v", e.Command, e.ExitCode, e.Err)
	}
	return fmt.Sprintf("command %v failed with exit code %d", e.Command, e.ExitCode)
}

func (e *ExecError) Unwrap() error {
	return e.Err
}

// Started reports whether the process was spawned. It is false for a
// missing executable or a failed fork.
func (e *ExecError) Started() bool {
	var exitErr interface{ ExitCode() int }
	return errors.As(e.Err, &exitErr)
}
