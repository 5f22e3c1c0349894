package resolve

import (
	"os"
	"path/filepath"

	"github.com/berth-cli/berth/internal/config"
)

// Resolution is the complete output of the resolution pipeline for one
// invocation: the resolved environment, its identity, and the canonical
// runtime resource names derived from it.
type Resolution struct {
	Environment *Environment
	Fingerprint string
	Names       Names
}

// Resolve runs the full pipeline for the named environment: preset merge,
// variable expansion, Dockerfile hashing (when building from source),
// fingerprinting, and naming. Everything here is decided before any
// runtime call is issued.
func Resolve(doc *config.Document, name string, expander *Expander) (*Resolution, error) {
	if err := CheckName(name); err != nil {
		return nil, err
	}

	base, err := doc.Environment(name)
	if err != nil {
		return nil, err
	}

	env, err := Merge(name, base, doc.Presets)
	if err != nil {
		return nil, err
	}

	if err := expandEnvironment(env, expander); err != nil {
		return nil, err
	}

	names := Names{Image: env.Image}
	if env.BuildsFromSource() {
		path, err := resolveDockerfile(env.Dockerfile, doc.Path)
		if err != nil {
			return nil, err
		}
		digest, err := HashDockerfile(path)
		if err != nil {
			return nil, err
		}

		// Fold the content-addressed image name back in before
		// fingerprinting: a Dockerfile edit must change the environment
		// fingerprint too.
		env.Dockerfile = path
		env.Image = ImageName(name, digest)
		names.Image = env.Image + ":" + ImageTag
	}

	fp := Fingerprint(env)
	container, err := ContainerName(name, fp)
	if err != nil {
		return nil, err
	}
	names.Container = container

	return &Resolution{Environment: env, Fingerprint: fp, Names: names}, nil
}

// expandEnvironment applies variable expansion exactly once, to every
// field that may embed a path or option value, before fingerprinting.
func expandEnvironment(env *Environment, x *Expander) error {
	var err error
	if env.Dockerfile, err = x.ExpandString("dockerfile", env.Dockerfile); err != nil {
		return err
	}
	if env.EntryOptions, err = x.ExpandList("entry_options", env.EntryOptions); err != nil {
		return err
	}
	if env.CopyCmds, err = x.ExpandList("cp_cmds", env.CopyCmds); err != nil {
		return err
	}
	if env.ExecOptions, err = x.ExpandList("exec_options", env.ExecOptions); err != nil {
		return err
	}
	if env.CreateOptions, err = x.ExpandList("create_options", env.CreateOptions); err != nil {
		return err
	}
	return nil
}

// resolveDockerfile turns the configured dockerfile path into an absolute
// path, resolving relative paths against the config file's directory, and
// verifies a regular file exists there.
func resolveDockerfile(path, configPath string) (string, error) {
	resolved := path
	if !filepath.IsAbs(resolved) {
		resolved = filepath.Join(filepath.Dir(configPath), resolved)
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return "", &DockerfileError{Path: resolved, Err: err}
	}
	if info.IsDir() {
		return "", &DockerfileError{Path: resolved, Err: os.ErrInvalid}
	}
	return resolved, nil
}
