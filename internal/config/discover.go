package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNoConfig is returned when no config file exists in any standard
// location and none was provided on the command line.
var ErrNoConfig = errors.New("could not find config file in $XDG_CONFIG_HOME or $HOME")

// Discover resolves the config file path. An explicit path wins but must
// exist; otherwise the standard locations are probed in order:
// $XDG_CONFIG_HOME/.config/berth/config.toml, then
// $HOME/.config/berth/config.toml.
func Discover(explicit string) (string, error) {
	if explicit != "" {
		info, err := os.Stat(explicit)
		if err != nil || info.IsDir() {
			return "", fmt.Errorf("could not find config file at %q", explicit)
		}
		return explicit, nil
	}

	for _, base := range []string{os.Getenv("XDG_CONFIG_HOME"), os.Getenv("HOME")} {
		if base == "" {
			continue
		}
		path := filepath.Join(base, ".config", "berth", "config.toml")
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}
	}

	return "", ErrNoConfig
}
