package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/berth-cli/berth/internal/engine"
)

// Styles contains the lipgloss styles for status output
type Styles struct {
	Status lipgloss.Style
	Name   lipgloss.Style
}

// DefaultStyles returns the default status styles
func DefaultStyles() Styles {
	return Styles{
		Status: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Name:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
	}
}

// statusPrinter writes one-line progress messages to stderr. Styling is
// applied only when stderr is a terminal.
func statusPrinter() engine.StatusFunc {
	if !term.IsTerminal(int(os.Stderr.Fd())) {
		return func(msg string) {
			fmt.Fprintln(os.Stderr, msg+"...")
		}
	}

	styles := DefaultStyles()
	return func(msg string) {
		fmt.Fprintln(os.Stderr, styles.Status.Render(msg+"..."))
	}
}
