package resolve

// Environment is a fully merged, fully expanded environment definition,
// ready for fingerprinting. It is immutable once produced for a run and
// discarded when the run finishes.
type Environment struct {
	// Name is the environment's key in the configuration document.
	Name string

	// Image is the image reference to create the container from. When the
	// environment builds from a Dockerfile this holds the content-addressed
	// image name derived from the Dockerfile digest, so any byte change in
	// the Dockerfile flows into the environment fingerprint.
	Image string

	// Dockerfile is the absolute path to the Dockerfile, empty when a
	// prebuilt image reference was supplied.
	Dockerfile string

	EntryCmd      string
	EntryOptions  []string
	CopyCmds      []string
	ExecCmds      []string
	ExecOptions   []string
	CreateOptions []string
}

// BuildsFromSource reports whether the environment's image must be built
// from a Dockerfile rather than pulled by reference.
func (e *Environment) BuildsFromSource() bool {
	return e.Dockerfile != ""
}
