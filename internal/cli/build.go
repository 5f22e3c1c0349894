package cli

import (
	"github.com/spf13/cobra"
)

// NewBuildCmd creates the build command
func NewBuildCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "build <environment>",
		Short: "Build or rebuild an environment without entering it",
		Long: `Build pre-warms the named environment: the image is built if needed
and the container is created and fully set up, then left stopped. An
existing container for the environment is recreated from scratch.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Build(args[0])
		},
	}
}

// Build pre-warms the named environment without entering it
func (a *App) Build(name string) error {
	res, err := a.resolveEnvironment(name)
	if err != nil {
		return err
	}

	eng, log, err := a.newEngine(res)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx, cancel := signalContext()
	defer cancel()

	return eng.Build(ctx, a.cleanup)
}
