package cli

import (
	"github.com/spf13/cobra"
)

// App represents the CLI application with all wired dependencies
type App struct {
	// Root command
	rootCmd *cobra.Command

	// Persistent flags
	configPath string
	cleanup    bool
	verbose    bool

	// Version information
	version string
	commit  string
	date    string
}

// New creates a new CLI application
func New() *App {
	app := &App{}
	app.setupRootCmd()
	return app
}

// Execute runs the CLI application
func (a *App) Execute() error {
	return a.rootCmd.Execute()
}

// SetVersion sets the version string for the version command
func (a *App) SetVersion(version, commit, date string) {
	a.version = version
	a.commit = commit
	a.date = date
}

// setupRootCmd configures the root Cobra command
func (a *App) setupRootCmd() {
	a.rootCmd = &cobra.Command{
		Use:   "berth",
		Short: "Reproducible development containers from declarative config",
		Long: `Berth creates development environments from named definitions in a
config file, without touching repository code. Identical configuration
always maps to the same container, so an environment already built is
simply re-entered.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	a.rootCmd.PersistentFlags().StringVar(&a.configPath, "config-path", "",
		"Path to config file")
	a.rootCmd.PersistentFlags().BoolVar(&a.cleanup, "cleanup", false,
		"Delete container on exit")
	a.rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false,
		"Verbose output")

	a.rootCmd.AddCommand(NewUpCmd(a))
	a.rootCmd.AddCommand(NewBuildCmd(a))
	a.rootCmd.AddCommand(NewViewCmd(a))
	a.rootCmd.AddCommand(NewVersionCmd(a))
}
