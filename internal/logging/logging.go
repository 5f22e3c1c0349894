// Package logging configures the invocation-scoped zap logger. Output
// goes to a log file so it never interleaves with the interactive entry
// session; --verbose additionally echoes to stderr.
package logging

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DefaultLogFile resolves the log file location:
// $XDG_CACHE_HOME/berth/berth.log, falling back to ~/.cache/berth/berth.log.
func DefaultLogFile() string {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(os.TempDir(), "berth.log")
		}
		base = filepath.Join(home, ".cache")
	}
	return filepath.Join(base, "berth", "berth.log")
}

// New opens a production-encoded file logger at path, creating parent
// directories as needed. With verbose set, log lines are also written to
// stderr. Returns a no-op logger when the file cannot be opened; logging
// must never block an invocation.
func New(path string, verbose bool) *zap.Logger {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoder := zapcore.NewConsoleEncoder(encoderCfg)

	var cores []zapcore.Core

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err == nil {
		if f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644); err == nil {
			cores = append(cores, zapcore.NewCore(encoder, zapcore.AddSync(f), zap.InfoLevel))
		}
	}
	if verbose {
		cores = append(cores, zapcore.NewCore(encoder, zapcore.AddSync(os.Stderr), zap.DebugLevel))
	}

	if len(cores) == 0 {
		return zap.NewNop()
	}
	return zap.New(zapcore.NewTee(cores...))
}
