package container

// State is a container runtime state as reported by the engine.
type State string

const (
	StateCreated State = "created"
	StateRunning State = "running"
	StateExited  State = "exited"
	StatePaused  State = "paused"
)

// Runnable reports whether a container in this state can serve the reuse
// path: it is either already running or can simply be started.
func (s State) Runnable() bool {
	return s == StateRunning || s == StateCreated || s == StateExited
}

// Summary describes one container discovered by name in the runtime.
type Summary struct {
	ID    string
	Name  string
	State State
}

// CreateSpec holds everything container creation needs. Options are raw
// option strings from the resolved environment; they are shell-split
// before reaching the engine's argv.
type CreateSpec struct {
	Name    string
	Image   string
	Options []string

	// Cmd is the held process keeping the container alive.
	Cmd []string
}
