package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/anerkennung/internal/filler"
	"github.com/abhisek/anerkennung/internal/mapping"
	"github.com/abhisek/anerkennung/internal/store"
	"github.com/abhisek/anerkennung/internal/workspace"
)

// session bundles the store and the working session restored from it.
type session struct {
	store *store.Store
	ws    *workspace.Workspace
}

// openSession opens the database and restores the working session with
// the current mapping.
func openSession(cmd *cobra.Command) (*session, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	m := loadMapping(cmd)
	ws, err := workspace.Open(cmd.Context(), st.SessionRepo(), m, studentDefaults(), logger)
	if err != nil {
		st.Close()
		return nil, err
	}
	return &session{store: st, ws: ws}, nil
}

func (s *session) Close() error {
	return s.store.Close()
}

// loadMapping loads the configured mapping. A broken file falls back to
// the built-in default with a warning.
func loadMapping(cmd *cobra.Command) mapping.Mapping {
	m, src, err := mapping.Load(cfg.MappingPath())
	var loadErr *mapping.LoadError
	switch {
	case errors.As(err, &loadErr):
		logger.Warn("mapping unusable, using default", zap.Error(err))
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v (Standard-Mapping aktiv)\n", err)
	case err != nil:
		logger.Warn("load mapping", zap.Error(err))
	case src == mapping.SourceCreated:
		logger.Info("default mapping written", zap.String("path", cfg.MappingPath()))
	}
	return m
}

func studentDefaults() filler.Student {
	return filler.Student{
		Gender:          cfg.Defaults.Gender,
		PreviousStudies: cfg.Defaults.PreviousStudies,
		TargetProgram:   cfg.Defaults.TargetProgram,
	}
}
