package container

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/kballard/go-shellquote"
	"go.uber.org/zap"
)

// CLIRuntime implements Runtime by shelling out to the docker or podman
// CLI. Use DetectRuntime to find an available binary first.
type CLIRuntime struct {
	bin string
	log *zap.Logger
}

// NewCLIRuntime returns a Runtime backed by the given binary ("docker" or
// "podman"). The logger may be nil.
func NewCLIRuntime(bin string, log *zap.Logger) *CLIRuntime {
	if log == nil {
		log = zap.NewNop()
	}
	return &CLIRuntime{bin: bin, log: log}
}

func (r *CLIRuntime) FindContainer(ctx context.Context, name string) (*Summary, error) {
	out, err := r.run(ctx, "ps", "--all",
		"--filter", fmt.Sprintf("name=^/?%s$", name),
		"--format", "{{.ID}}\t{{.Names}}\t{{.State}}")
	if err != nil {
		return nil, err
	}

	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		fields := strings.Split(line, "\t")
		if len(fields) != 3 || fields[1] != name {
			continue
		}
		return &Summary{ID: fields[0], Name: fields[1], State: State(fields[2])}, nil
	}
	return nil, nil
}

func (r *CLIRuntime) ImageExists(ctx context.Context, ref string) (bool, error) {
	cmd := exec.CommandContext(ctx, r.bin, "image", "inspect", "--format", "{{.Id}}", ref)
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return false, nil
		}
		return false, &UnavailableError{Err: err}
	}
	return true, nil
}

func (r *CLIRuntime) BuildImage(ctx context.Context, path, ref string) error {
	_, err := r.run(ctx, "build", "--file", path, "--tag", ref, filepath.Dir(path))
	return err
}

func (r *CLIRuntime) CreateContainer(ctx context.Context, spec CreateSpec) error {
	args := []string{"create", "--name", spec.Name}

	options, err := SplitOptions(spec.Options)
	if err != nil {
		return err
	}
	args = append(args, options...)
	args = append(args, spec.Image)
	args = append(args, spec.Cmd...)

	_, err = r.run(ctx, args...)
	return err
}

func (r *CLIRuntime) StartContainer(ctx context.Context, name string) error {
	_, err := r.run(ctx, "start", name)
	return err
}

func (r *CLIRuntime) StopContainer(ctx context.Context, name string) error {
	_, err := r.run(ctx, "stop", "--time", "0", name)
	return err
}

func (r *CLIRuntime) RemoveContainer(ctx context.Context, name string) error {
	_, err := r.run(ctx, "rm", "--force", name)
	return err
}

func (r *CLIRuntime) RemoveImage(ctx context.Context, ref string) error {
	_, err := r.run(ctx, "rmi", ref)
	return err
}

func (r *CLIRuntime) RenameContainer(ctx context.Context, oldName, newName string) error {
	_, err := r.run(ctx, "rename", oldName, newName)
	return err
}

func (r *CLIRuntime) Exec(ctx context.Context, name string, options, cmd []string) error {
	args, err := execArgs(name, options, cmd)
	if err != nil {
		return err
	}
	_, err = r.run(ctx, args...)
	return err
}

func (r *CLIRuntime) ExecInteractive(ctx context.Context, name string, options, cmd []string) (int, error) {
	args, err := execArgs(name, options, cmd)
	if err != nil {
		return 0, err
	}

	r.log.Info("exec", zap.String("cmd", r.render(args)))

	c := exec.CommandContext(ctx, r.bin, args...)
	c.Stdin = os.Stdin
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr

	if err := c.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode(), nil
		}
		return 0, &CommandError{Cmd: r.render(args), Err: err}
	}
	return 0, nil
}

func (r *CLIRuntime) CopyTo(ctx context.Context, name, src, dst string) error {
	_, err := r.run(ctx, "cp", src, name+":"+dst)
	return err
}

// AttachedSessions counts pseudo-terminals allocated in the container. An
// idle container holds no pts entries beyond the two baseline device
// nodes, so anything above that is an attached session.
func (r *CLIRuntime) AttachedSessions(ctx context.Context, name string) (int, error) {
	out, err := r.run(ctx, "exec", name, "ls", "/dev/pts")
	if err != nil {
		return 0, err
	}

	const baseline = 2
	count := len(strings.Fields(out))
	if count <= baseline {
		return 0, nil
	}
	return count - baseline, nil
}

// execArgs assembles "exec [options] <name> <cmd>" argv, shell-splitting
// the raw option strings.
func execArgs(name string, options, cmd []string) ([]string, error) {
	args := []string{"exec"}
	split, err := SplitOptions(options)
	if err != nil {
		return nil, err
	}
	args = append(args, split...)
	args = append(args, name)
	args = append(args, cmd...)
	return args, nil
}

// SplitOptions shell-splits each raw option string and flattens the
// results, so a config value like "-v $HOME:/root" becomes two argv
// entries.
func SplitOptions(options []string) ([]string, error) {
	var out []string
	for _, opt := range options {
		words, err := shellquote.Split(opt)
		if err != nil {
			return nil, fmt.Errorf("malformed option %q: %w", opt, err)
		}
		out = append(out, words...)
	}
	return out, nil
}

// run executes one runtime CLI call and returns its stdout.
func (r *CLIRuntime) run(ctx context.Context, args ...string) (string, error) {
	r.log.Info("run", zap.String("cmd", r.render(args)))

	cmd := exec.CommandContext(ctx, r.bin, args...)
	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", &CommandError{
				Cmd:      r.render(args),
				ExitCode: exitErr.ExitCode(),
				Stderr:   stderr.String(),
			}
		}
		return "", &CommandError{Cmd: r.render(args), Err: err}
	}
	return stdout.String(), nil
}

func (r *CLIRuntime) render(args []string) string {
	return r.bin + " " + shellquote.Join(args...)
}

var _ Runtime = (*CLIRuntime)(nil)
