package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/berth-cli/berth/internal/config"
	"github.com/berth-cli/berth/internal/container"
	"github.com/berth-cli/berth/internal/engine"
	"github.com/berth-cli/berth/internal/logging"
	"github.com/berth-cli/berth/internal/resolve"
)

// resolveEnvironment loads the config document and runs the full
// resolution pipeline for one named environment. Everything here happens
// before any runtime call, so configuration and merge errors fail fast
// with no side effects.
func (a *App) resolveEnvironment(name string) (*resolve.Resolution, error) {
	path, err := config.Discover(a.configPath)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(os.Stderr, "Using config file at %s\n", path)

	doc, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	return resolve.Resolve(doc, name, resolve.NewExpander())
}

// newEngine detects a container runtime and wires the lifecycle engine
// with logging and styled status output.
func (a *App) newEngine(res *resolve.Resolution) (*engine.Engine, *zap.Logger, error) {
	bin, err := container.DetectRuntime()
	if err != nil {
		return nil, nil, err
	}

	log := logging.New(logging.DefaultLogFile(), a.verbose)
	log.Info("resolved environment",
		zap.String("environment", res.Environment.Name),
		zap.String("fingerprint", res.Fingerprint),
		zap.String("container", res.Names.Container),
		zap.String("runtime", bin))

	eng := engine.New(res, container.NewCLIRuntime(bin, log), log)
	eng.OnStatus(statusPrinter())
	return eng, log, nil
}

// signalContext returns a context canceled on SIGINT/SIGTERM so an
// interrupted session still releases runtime handles and runs cleanup.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}
