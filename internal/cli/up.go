package cli

import (
	"github.com/spf13/cobra"
)

// NewUpCmd creates the up command
func NewUpCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "up <environment>",
		Short: "Start an environment and enter it",
		Long: `Up resolves the named environment, reuses or creates its container,
and runs the entry command in the foreground. With --cleanup the
container is removed after the entry command exits.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Up(args[0])
		},
	}
}

// Up brings the named environment to ready and enters it
func (a *App) Up(name string) error {
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

	return eng.Up(ctx, a.cleanup)
}
