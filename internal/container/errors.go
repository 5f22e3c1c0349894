package container

import (
	"fmt"
	"strings"
)

// UnavailableError means the container engine could not be reached at all.
// It is fatal to the invocation and never retried.
type UnavailableError struct {
	Err error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("container runtime unavailable: %v", e.Err)
}

func (e *UnavailableError) Unwrap() error { return e.Err }

// CommandError is a runtime CLI call that exited non-zero or failed to
// run. Cmd is the full rendered command line so a human can rerun it by
// hand.
type CommandError struct {
	Cmd      string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *CommandError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "command failed: %s", e.Cmd)
	if e.ExitCode != 0 {
		fmt.Fprintf(&b, " (exit %d)", e.ExitCode)
	}
	if e.Stderr != "" {
		fmt.Fprintf(&b, "\n%s", strings.TrimSpace(e.Stderr))
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *CommandError) Unwrap() error { return e.Err }
