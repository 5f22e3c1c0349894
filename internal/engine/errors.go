package engine

import (
	"errors"
	"fmt"
)

// errBadCopySpec rejects a cp_cmds entry that is not exactly a host path
// and a container path.
var errBadCopySpec = errors.New("cp_cmds entries must be \"<host-path> <container-path>\"")

// BuildError is an image build or setup command that failed mid-lifecycle.
// Resource and Step carry enough context for a human to inspect and clean
// up by hand; nothing is retried.
type BuildError struct {
	Resource string
	Step     string
	Err      error
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("%s failed for %s: %v", e.Step, e.Resource, e.Err)
}

func (e *BuildError) Unwrap() error { return e.Err }

// ExecError is an entry command that could not execute, surfaced with the
// runtime's own exit code.
type ExecError struct {
	ExitCode int
	Reason   string
}

func (e *ExecError) Error() string {
	return fmt.Sprintf("entering container failed (exit %d): %s", e.ExitCode, e.Reason)
}

// CreateOptionError rejects a create option the engine controls itself.
type CreateOptionError struct {
	Option string
}

func (e *CreateOptionError) Error() string {
	return fmt.Sprintf("create option %q is not allowed: the container name is derived from the environment", e.Option)
}
