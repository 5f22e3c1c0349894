package engine

// Phase is the lifecycle state of the environment within one invocation.
// The runtime is re-queried live at every transition; no phase is ever
// trusted across invocations.
type Phase string

const (
	// PhaseAbsent means no container with the computed name exists.
	PhaseAbsent Phase = "absent"

	// PhaseBuilding means the image is being built from a Dockerfile.
	PhaseBuilding Phase = "building"

	// PhaseCreating means the container is being created and started.
	PhaseCreating Phase = "creating"

	// PhaseCopying means cp_cmds are being applied.
	PhaseCopying Phase = "copying"

	// PhaseSetup means exec_cmds are running.
	PhaseSetup Phase = "setup"

	// PhaseReady means the container is running and fully configured.
	PhaseReady Phase = "ready"

	// PhaseEntered means the entry command is in the foreground.
	PhaseEntered Phase = "entered"

	// PhaseRemoved means cleanup removed the container.
	PhaseRemoved Phase = "removed"
)

func (p Phase) String() string { return string(p) }
