package container

import (
	"context"
)

// Runtime is the capability the lifecycle engine consumes: query-by-name,
// create, build, exec, and removal, agnostic to how the calls are
// transported. The engine never caches answers across invocations; every
// decision re-queries the runtime live, which also makes a fake
// implementation sufficient for the full test suite.
type Runtime interface {
	// FindContainer returns the container with exactly the given name, or
	// nil when none exists.
	FindContainer(ctx context.Context, name string) (*Summary, error)

	// ImageExists reports whether an image with the given reference is
	// present locally.
	ImageExists(ctx context.Context, ref string) (bool, error)

	// BuildImage builds the Dockerfile at path into an image tagged ref,
	// using the Dockerfile's directory as the build context.
	BuildImage(ctx context.Context, path, ref string) error

	// CreateContainer creates (but does not start) a container.
	CreateContainer(ctx context.Context, spec CreateSpec) error

	StartContainer(ctx context.Context, name string) error
	StopContainer(ctx context.Context, name string) error
	RemoveContainer(ctx context.Context, name string) error
	RemoveImage(ctx context.Context, ref string) error

	// RenameContainer renames an existing container, moving it out of the
	// reuse namespace while keeping it discoverable.
	RenameContainer(ctx context.Context, oldName, newName string) error

	// Exec runs a setup command inside the container and captures its
	// output; a non-zero exit is an error carrying that output.
	Exec(ctx context.Context, name string, options, cmd []string) error

	// ExecInteractive runs the entry command with the invoking process's
	// stdio attached and returns its exit code.
	ExecInteractive(ctx context.Context, name string, options, cmd []string) (int, error)

	// CopyTo copies a host path into the container.
	CopyTo(ctx context.Context, name, src, dst string) error

	// AttachedSessions counts interactive sessions currently attached to
	// the container.
	AttachedSessions(ctx context.Context, name string) (int, error)
}
