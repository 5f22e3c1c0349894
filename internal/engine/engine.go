package engine

import (
	"context"
	"strings"

	"github.com/kballard/go-shellquote"
	"go.uber.org/zap"

	"github.com/berth-cli/berth/internal/container"
	"github.com/berth-cli/berth/internal/resolve"
)

// failedSuffix moves a half-configured container out of the reuse
// namespace while keeping it discoverable for inspection.
const failedSuffix = "-failed"

// heldCmd keeps a created container alive until it is explicitly stopped.
var heldCmd = []string{"tail", "-f", "/dev/null"}

// StatusFunc receives one-line progress messages for the user.
type StatusFunc func(msg string)

// Engine reconciles one resolved environment against the runtime's current
// state and drives it to ready. All steps for an environment are strictly
// sequential; the runtime's name-uniqueness constraint is the only
// cross-process synchronization.
type Engine struct {
	env     *resolve.Environment
	names   resolve.Names
	runtime container.Runtime
	log     *zap.Logger
	status  StatusFunc
	phase   Phase
}

// New wires an engine for one invocation. The logger and status callback
// may be nil.
func New(res *resolve.Resolution, runtime container.Runtime, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{
		env:     res.Environment,
		names:   res.Names,
		runtime: runtime,
		log:     log,
		status:  func(string) {},
		phase:   PhaseAbsent,
	}
}

// OnStatus registers a progress callback.
func (e *Engine) OnStatus(fn StatusFunc) {
	if fn != nil {
		e.status = fn
	}
}

// Phase returns the engine's current lifecycle phase.
func (e *Engine) Phase() Phase { return e.phase }

// ContainerName returns the canonical container name for this invocation.
func (e *Engine) ContainerName() string { return e.names.Container }

// Up brings the environment to ready, reusing a matching container when
// one exists, then runs the entry command in the foreground. When cleanup
// is set the container is removed after the entry command returns, even if
// entering failed.
func (e *Engine) Up(ctx context.Context, cleanup bool) error {
	err := e.upInner(ctx)

	if cleanup {
		// Cleanup still runs after an interrupt: use a fresh context so a
		// canceled session doesn't leave the container behind.
		if rmErr := e.Cleanup(context.WithoutCancel(ctx), false); err == nil {
			err = rmErr
		}
	}
	return err
}

func (e *Engine) upInner(ctx context.Context) error {
	if err := e.ensureReady(ctx, false); err != nil {
		return err
	}
	return e.enter(ctx)
}

// Build runs the pipeline up to ready without executing the entry command,
// pre-warming the environment. It is an explicit rebuild request: an
// existing container with the computed name is removed and recreated. The
// container is left stopped; with cleanup both the container and, for
// source-built environments, the image are removed.
func (e *Engine) Build(ctx context.Context, cleanup bool) error {
	if err := e.ensureReady(ctx, true); err != nil {
		return err
	}
	if err := e.runtime.StopContainer(ctx, e.names.Container); err != nil {
		return err
	}
	if cleanup {
		return e.Cleanup(ctx, e.env.BuildsFromSource())
	}
	return nil
}

// ensureReady is the reconciliation loop: query the runtime by name and
// decide what is missing. With force set, any existing container is
// removed first.
func (e *Engine) ensureReady(ctx context.Context, force bool) error {
	found, err := e.runtime.FindContainer(ctx, e.names.Container)
	if err != nil {
		return err
	}

	if found != nil {
		if !force && found.State.Runnable() {
			return e.reuse(ctx, found)
		}
		// Unusable state, or an explicit rebuild: start over.
		if err := e.runtime.RemoveContainer(ctx, e.names.Container); err != nil {
			return err
		}
	}
	e.phase = PhaseAbsent

	if e.env.BuildsFromSource() {
		if err := e.ensureImage(ctx); err != nil {
			return err
		}
	}

	if err := e.create(ctx); err != nil {
		return err
	}
	if err := e.copyFiles(ctx); err != nil {
		return e.quarantine(ctx, err)
	}
	if err := e.setup(ctx); err != nil {
		return e.quarantine(ctx, err)
	}

	e.phase = PhaseReady
	return nil
}

// reuse is the primary path the fingerprint exists for: identical resolved
// configuration means an identical name, so the container is taken as-is
// with no rebuild and no re-run of setup commands.
func (e *Engine) reuse(ctx context.Context, found *container.Summary) error {
	e.log.Info("reusing container",
		zap.String("container", found.Name),
		zap.String("state", string(found.State)))

	if found.State != container.StateRunning {
		e.status("Starting container")
		if err := e.runtime.StartContainer(ctx, e.names.Container); err != nil {
			return err
		}
	}
	e.phase = PhaseReady
	return nil
}

// ensureImage builds the content-addressed image unless it already exists.
// The digest is in the name, so a prior successful build is never redone
// and a stale image is never picked up.
func (e *Engine) ensureImage(ctx context.Context) error {
	exists, err := e.runtime.ImageExists(ctx, e.names.Image)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	e.phase = PhaseBuilding
	e.status("Building image")
	if err := e.runtime.BuildImage(ctx, e.env.Dockerfile, e.names.Image); err != nil {
		return &BuildError{Resource: e.names.Image, Step: "image build", Err: err}
	}
	return nil
}

func (e *Engine) create(ctx context.Context) error {
	if err := checkCreateOptions(e.env.CreateOptions); err != nil {
		return err
	}

	e.phase = PhaseCreating
	e.status("Creating container")

	spec := container.CreateSpec{
		Name:    e.names.Container,
		Image:   e.names.Image,
		Options: e.env.CreateOptions,
		Cmd:     heldCmd,
	}
	if err := e.runtime.CreateContainer(ctx, spec); err != nil {
		return err
	}
	return e.runtime.StartContainer(ctx, e.names.Container)
}

func (e *Engine) copyFiles(ctx context.Context) error {
	if len(e.env.CopyCmds) == 0 {
		return nil
	}

	e.phase = PhaseCopying
	e.status("Copying files")
	for _, cp := range e.env.CopyCmds {
		words, err := shellquote.Split(cp)
		if err != nil || len(words) != 2 {
			return &BuildError{
				Resource: e.names.Container,
				Step:     "copy " + cp,
				Err:      errBadCopySpec,
			}
		}
		if err := e.runtime.CopyTo(ctx, e.names.Container, words[0], words[1]); err != nil {
			return &BuildError{Resource: e.names.Container, Step: "copy " + cp, Err: err}
		}
	}
	return nil
}

func (e *Engine) setup(ctx context.Context) error {
	if len(e.env.ExecCmds) == 0 {
		return nil
	}

	e.phase = PhaseSetup
	e.status("Running setup commands")
	for _, cmd := range e.env.ExecCmds {
		words, err := shellquote.Split(cmd)
		if err != nil {
			return &BuildError{Resource: e.names.Container, Step: "setup " + cmd, Err: err}
		}
		if err := e.runtime.Exec(ctx, e.names.Container, e.env.ExecOptions, words); err != nil {
			return &BuildError{Resource: e.names.Container, Step: "setup " + cmd, Err: err}
		}
	}
	return nil
}

// quarantine handles a failed copy or setup step. The partial container is
// renamed out of the reuse namespace but left discoverable for inspection;
// the next invocation finds no matching name and retries from absent. If
// the rename itself fails the container is removed instead.
func (e *Engine) quarantine(ctx context.Context, cause error) error {
	failed := e.names.Container + failedSuffix

	// A leftover from an earlier failure would block the rename.
	if prior, err := e.runtime.FindContainer(ctx, failed); err == nil && prior != nil {
		_ = e.runtime.RemoveContainer(ctx, failed)
	}

	if err := e.runtime.RenameContainer(ctx, e.names.Container, failed); err != nil {
		e.log.Warn("quarantine rename failed, removing container",
			zap.String("container", e.names.Container), zap.Error(err))
		_ = e.runtime.RemoveContainer(ctx, e.names.Container)
		return cause
	}

	e.log.Info("container quarantined for inspection", zap.String("container", failed))
	return cause
}

// enter runs the entry command in the foreground with the user's terminal
// attached, then stops the container if nobody else is still connected.
func (e *Engine) enter(ctx context.Context) error {
	words, err := shellquote.Split(e.env.EntryCmd)
	if err != nil {
		return &ExecError{Reason: "malformed entry_cmd: " + err.Error()}
	}

	e.phase = PhaseEntered
	code, err := e.runtime.ExecInteractive(ctx, e.names.Container, e.env.EntryOptions, words)
	if err != nil {
		return err
	}

	switch code {
	case 125:
		return &ExecError{ExitCode: code, Reason: "runtime exec failed to run"}
	case 126:
		return &ExecError{ExitCode: code, Reason: "command cannot execute"}
	case 127:
		return &ExecError{ExitCode: code, Reason: "command not found"}
	}

	return e.stopIfIdle(ctx)
}

// stopIfIdle stops the container once the last interactive session has
// detached, so reused environments don't keep running in the background.
func (e *Engine) stopIfIdle(ctx context.Context) error {
	found, err := e.runtime.FindContainer(ctx, e.names.Container)
	if err != nil || found == nil || found.State != container.StateRunning {
		return err
	}

	sessions, err := e.runtime.AttachedSessions(ctx, e.names.Container)
	if err != nil || sessions > 0 {
		return err
	}
	return e.runtime.StopContainer(ctx, e.names.Container)
}

// Cleanup removes the container, and the image too when removeImage is
// set. Missing resources are not an error: cleanup is idempotent.
func (e *Engine) Cleanup(ctx context.Context, removeImage bool) error {
	found, err := e.runtime.FindContainer(ctx, e.names.Container)
	if err != nil {
		return err
	}
	if found != nil {
		if err := e.runtime.RemoveContainer(ctx, e.names.Container); err != nil {
			return err
		}
	}
	e.phase = PhaseRemoved

	if removeImage {
		exists, err := e.runtime.ImageExists(ctx, e.names.Image)
		if err != nil {
			return err
		}
		if exists {
			return e.runtime.RemoveImage(ctx, e.names.Image)
		}
	}
	return nil
}

// checkCreateOptions rejects an explicit name-setting flag: the name is
// how reuse and cross-process exclusion work, so it is engine-controlled.
func checkCreateOptions(options []string) error {
	split, err := container.SplitOptions(options)
	if err != nil {
		return err
	}
	for _, opt := range split {
		if opt == "--name" || strings.HasPrefix(opt, "--name=") {
			return &CreateOptionError{Option: opt}
		}
	}
	return nil
}
