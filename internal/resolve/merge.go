package resolve

import (
	"github.com/berth-cli/berth/internal/config"
)

// scalarField pairs a field name with accessors into both spec shapes so
// the conflict rule is applied over a fixed, enumerated field list.
type scalarField struct {
	name       string
	fromBase   func(*config.EnvironmentSpec) string
	fromPreset func(*config.PresetSpec) string
}

var scalarFields = []scalarField{
	{
		name:       "entry_cmd",
		fromBase:   func(e *config.EnvironmentSpec) string { return e.EntryCmd },
		fromPreset: func(p *config.PresetSpec) string { return p.EntryCmd },
	},
	{
		name:       "image",
		fromBase:   func(e *config.EnvironmentSpec) string { return e.Image },
		fromPreset: func(p *config.PresetSpec) string { return p.Image },
	},
	{
		name:       "dockerfile",
		fromBase:   func(e *config.EnvironmentSpec) string { return e.Dockerfile },
		fromPreset: func(p *config.PresetSpec) string { return p.Dockerfile },
	},
}

// listField is the list-valued analogue of scalarField. List fields carry
// positional CLI arguments, so merge order is semantically meaningful.
type listField struct {
	fromBase   func(*config.EnvironmentSpec) []string
	fromPreset func(*config.PresetSpec) []string
	assign     func(*Environment, []string)
}

var listFields = []listField{
	{
		fromBase:   func(e *config.EnvironmentSpec) []string { return e.EntryOptions },
		fromPreset: func(p *config.PresetSpec) []string { return p.EntryOptions },
		assign:     func(env *Environment, v []string) { env.EntryOptions = v },
	},
	{
		fromBase:   func(e *config.EnvironmentSpec) []string { return e.CopyCmds },
		fromPreset: func(p *config.PresetSpec) []string { return p.CopyCmds },
		assign:     func(env *Environment, v []string) { env.CopyCmds = v },
	},
	{
		fromBase:   func(e *config.EnvironmentSpec) []string { return e.ExecCmds },
		fromPreset: func(p *config.PresetSpec) []string { return p.ExecCmds },
		assign:     func(env *Environment, v []string) { env.ExecCmds = v },
	},
	{
		fromBase:   func(e *config.EnvironmentSpec) []string { return e.ExecOptions },
		fromPreset: func(p *config.PresetSpec) []string { return p.ExecOptions },
		assign:     func(env *Environment, v []string) { env.ExecOptions = v },
	},
	{
		fromBase:   func(e *config.EnvironmentSpec) []string { return e.CreateOptions },
		fromPreset: func(p *config.PresetSpec) []string { return p.CreateOptions },
		assign:     func(env *Environment, v []string) { env.CreateOptions = v },
	},
}

// Merge combines a base environment with its referenced presets into one
// fully populated definition, before variable expansion.
//
// Scalar fields may be supplied by at most one source across the base and
// every referenced preset; two or more suppliers is a ConflictError listing
// each of them. List fields concatenate non-destructively: each preset's
// values in the order the presets are listed, then any values the base
// itself supplied. The presets field is consumed here and does not appear
// in the output. Required-field validation runs only after the merge
// completes, so a preset may supply a field the base omits.
func Merge(name string, base config.EnvironmentSpec, presets map[string]config.PresetSpec) (*Environment, error) {
	refs := make([]config.PresetSpec, 0, len(base.Presets))
	for _, presetName := range base.Presets {
		preset, ok := presets[presetName]
		if !ok {
			return nil, &UnknownPresetError{Environment: name, Preset: presetName}
		}
		refs = append(refs, preset)
	}

	env := &Environment{Name: name}

	for _, field := range scalarFields {
		var sources []Source
		var value string

		if v := field.fromBase(&base); v != "" {
			sources = append(sources, Source{Kind: SourceEnvironment, Name: name})
			value = v
		}
		for i, preset := range refs {
			if v := field.fromPreset(&preset); v != "" {
				sources = append(sources, Source{Kind: SourcePreset, Name: base.Presets[i]})
				value = v
			}
		}

		if len(sources) > 1 {
			return nil, &ConflictError{Environment: name, Field: field.name, Sources: sources}
		}

		switch field.name {
		case "entry_cmd":
			env.EntryCmd = value
		case "image":
			env.Image = value
		case "dockerfile":
			env.Dockerfile = value
		}
	}

	for _, field := range listFields {
		var merged []string
		for _, preset := range refs {
			merged = append(merged, field.fromPreset(&preset)...)
		}
		merged = append(merged, field.fromBase(&base)...)
		field.assign(env, merged)
	}

	if err := validate(env); err != nil {
		return nil, err
	}
	return env, nil
}

// validate enforces the post-merge invariants: a non-empty entry command
// and exactly one image source.
func validate(env *Environment) error {
	if env.EntryCmd == "" {
		return &MissingFieldError{Environment: env.Name, Field: "'entry_cmd'"}
	}

	switch {
	case env.Image == "" && env.Dockerfile == "":
		return &MissingFieldError{Environment: env.Name, Field: "'image' or 'dockerfile'"}
	case env.Image != "" && env.Dockerfile != "":
		return &ExclusiveFieldsError{Environment: env.Name}
	}
	return nil
}
