// Package logging builds the application's zap logger.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options configures New.
type Options struct {
	// Verbose enables debug level.
	Verbose bool
	// File receives log output instead of stderr. The interactive form
	// sets it so log lines do not tear the screen.
	File string
}

// New builds a production logger for opts.
func New(opts Options) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.Sampling = nil
	if opts.Verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
		cfg.OutputPaths = []string{opts.File}
		cfg.ErrorOutputPaths = []string{opts.File}
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}
