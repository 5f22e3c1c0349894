package resolve

import (
	"fmt"
	"strings"
)

// SourceKind distinguishes where a merged field value came from.
type SourceKind string

const (
	SourceEnvironment SourceKind = "environment"
	SourcePreset      SourceKind = "preset"
)

// Source identifies one supplier of a scalar field during a merge.
type Source struct {
	Kind SourceKind
	Name string
}

func (s Source) String() string {
	return fmt.Sprintf("%s %q", s.Kind, s.Name)
}

// ConflictError reports a scalar field supplied by more than one source
// across the base environment and its presets. Every supplier is listed so
// the diagnostic can point at each offending location.
type ConflictError struct {
	Environment string
	Field       string
	Sources     []Source
}

func (e *ConflictError) Error() string {
	parts := make([]string, len(e.Sources))
	for i, s := range e.Sources {
		parts[i] = s.String()
	}
	return fmt.Sprintf("duplicate field %q for environment %q: supplied by %s",
		e.Field, e.Environment, strings.Join(parts, ", "))
}

// UnknownPresetError reports a preset reference with no matching preset
// table in the configuration.
type UnknownPresetError struct {
	Environment string
	Preset      string
}

func (e *UnknownPresetError) Error() string {
	return fmt.Sprintf("environment %q references unknown preset %q", e.Environment, e.Preset)
}

// MissingFieldError reports a required field still absent after the merge
// completed. It never fires on the base spec alone: a preset may
// legitimately supply what the base omits.
type MissingFieldError struct {
	Environment string
	Field       string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("environment %q requires a %s field", e.Environment, e.Field)
}

// ExclusiveFieldsError reports that both image and dockerfile ended up set
// after the merge, each by a single (non-conflicting) source.
type ExclusiveFieldsError struct {
	Environment string
}

func (e *ExclusiveFieldsError) Error() string {
	return fmt.Sprintf("environment %q can only have an 'image' or 'dockerfile' field, not both", e.Environment)
}

// ExpansionError reports a variable reference that does not resolve in the
// current process environment. Unresolved references are never silently
// dropped.
type ExpansionError struct {
	Field    string
	Variable string
}

func (e *ExpansionError) Error() string {
	return fmt.Sprintf("undefined variable $%s in field %s", e.Variable, e.Field)
}

// DockerfileError reports a dockerfile path that could not be resolved or
// read for hashing.
type DockerfileError struct {
	Path string
	Err  error
}

func (e *DockerfileError) Error() string {
	return fmt.Sprintf("could not read dockerfile %q: %v", e.Path, e.Err)
}

func (e *DockerfileError) Unwrap() error { return e.Err }

// BadNameError reports an environment name the resource namer cannot use.
type BadNameError struct {
	Name string
}

func (e *BadNameError) Error() string {
	return fmt.Sprintf("environment name %q must not contain %q", e.Name, nameDelimiter)
}
