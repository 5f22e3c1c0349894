package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// EnvironmentSpec is a user-authored environment definition, pre-merge.
// Scalar fields left empty may still be supplied by a preset; validation
// of required fields happens only after the merge.
type EnvironmentSpec struct {
	// Image is an existing image reference (e.g. "alpine:edge").
	// Mutually exclusive with Dockerfile.
	Image string `toml:"image"`

	// Dockerfile is a path to a Dockerfile to build the image from,
	// absolute or relative to the config file.
	Dockerfile string `toml:"dockerfile"`

	// EntryCmd is the foreground command run when entering the container.
	EntryCmd string `toml:"entry_cmd"`

	// EntryOptions are flags applied to the interactive exec (e.g. "-it").
	EntryOptions []string `toml:"entry_options"`

	// CopyCmds are "host-path container-path" pairs copied into the
	// container after creation, before any exec command runs.
	CopyCmds []string `toml:"cp_cmds"`

	// ExecCmds are setup commands run once, in order, at creation time.
	ExecCmds []string `toml:"exec_cmds"`

	// ExecOptions are flags applied to every setup exec.
	ExecOptions []string `toml:"exec_options"`

	// CreateOptions are flags applied to container creation.
	CreateOptions []string `toml:"create_options"`

	// Presets names preset tables merged into this environment, in order.
	Presets []string `toml:"presets"`
}

// PresetSpec is a reusable, partial environment fragment. It has the same
// field shape as EnvironmentSpec minus Presets: presets cannot reference
// other presets, and a "presets" key inside a preset table is rejected at
// load time by strict decoding.
type PresetSpec struct {
	Image         string   `toml:"image"`
	Dockerfile    string   `toml:"dockerfile"`
	EntryCmd      string   `toml:"entry_cmd"`
	EntryOptions  []string `toml:"entry_options"`
	CopyCmds      []string `toml:"cp_cmds"`
	ExecCmds      []string `toml:"exec_cmds"`
	ExecOptions   []string `toml:"exec_options"`
	CreateOptions []string `toml:"create_options"`
}

// Document is one parsed config file: environment and preset tables keyed
// by name. Specs are never mutated after load.
type Document struct {
	Environments map[string]EnvironmentSpec `toml:"environment"`
	Presets      map[string]PresetSpec      `toml:"preset"`

	// Path is the file the document was loaded from. Relative dockerfile
	// paths resolve against its directory.
	Path string `toml:"-"`
}

// Load parses the TOML config file at path. Decoding is strict: any key
// not present in the spec types is a load error, as is a file with no
// [environment.*] table.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var doc Document
	md, err := toml.Decode(string(data), &doc)
	if err != nil {
		return nil, fmt.Errorf("malformed TOML in %s: %w", path, err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown field %q in %s", undecoded[0].String(), path)
	}

	if len(doc.Environments) == 0 {
		return nil, fmt.Errorf("no environments defined in %s", path)
	}

	doc.Path = path
	return &doc, nil
}

// Environment returns the named environment spec, or an error listing the
// file searched when the name is absent.
func (d *Document) Environment(name string) (EnvironmentSpec, error) {
	env, ok := d.Environments[name]
	if !ok {
		return EnvironmentSpec{}, fmt.Errorf("environment %q not found in %s", name, d.Path)
	}
	return env, nil
}
