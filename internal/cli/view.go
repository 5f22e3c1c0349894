package cli

import (
	"bytes"
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/berth-cli/berth/internal/resolve"
)

// viewEnvironment mirrors the config file shape for re-encoding a
// resolved environment. List fields stay in resolved order; the presets
// field is gone because the merge consumed it.
type viewEnvironment struct {
	Image         string   `toml:"image,omitempty"`
	Dockerfile    string   `toml:"dockerfile,omitempty"`
	EntryCmd      string   `toml:"entry_cmd"`
	EntryOptions  []string `toml:"entry_options,omitempty"`
	CopyCmds      []string `toml:"cp_cmds,omitempty"`
	ExecCmds      []string `toml:"exec_cmds,omitempty"`
	ExecOptions   []string `toml:"exec_options,omitempty"`
	CreateOptions []string `toml:"create_options,omitempty"`
}

type viewDocument struct {
	Environment map[string]viewEnvironment `toml:"environment"`
}

// NewViewCmd creates the view command
func NewViewCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "view <environment>",
		Short: "Print an environment definition after resolution",
		Long: `View resolves the named environment (presets merged, variables
expanded) and prints the result as TOML, exactly as berth will use it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.View(cmd, args[0])
		},
	}
}

// View prints the resolved environment as TOML
func (a *App) View(cmd *cobra.Command, name string) error {
	res, err := a.resolveEnvironment(name)
	if err != nil {
		return err
	}

	rendered, err := renderEnvironment(res.Environment)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), rendered)
	return nil
}

func renderEnvironment(env *resolve.Environment) (string, error) {
	view := viewEnvironment{
		EntryCmd:      env.EntryCmd,
		EntryOptions:  env.EntryOptions,
		CopyCmds:      env.CopyCmds,
		ExecCmds:      env.ExecCmds,
		ExecOptions:   env.ExecOptions,
		CreateOptions: env.CreateOptions,
	}
	if env.BuildsFromSource() {
		view.Dockerfile = env.Dockerfile
	} else {
		view.Image = env.Image
	}

	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	if err := enc.Encode(viewDocument{
		Environment: map[string]viewEnvironment{env.Name: view},
	}); err != nil {
		return "", fmt.Errorf("failed to render environment: %w", err)
	}
	return buf.String(), nil
}
