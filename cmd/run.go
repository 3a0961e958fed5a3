package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/anerkennung/internal/app"
	"github.com/abhisek/anerkennung/internal/generate"
	"github.com/abhisek/anerkennung/internal/mapping"
	"github.com/abhisek/anerkennung/internal/screens/form"
)

// runApp opens the store, builds dependencies, and launches the form.
func runApp(cmd *cobra.Command) error {
	sess, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer sess.Close()

	opts := app.Options{
		Form: form.Options{
			Workspace:    sess.ws,
			Generator:    generate.New(sess.store.HistoryRepo(), logger),
			History:      sess.store.HistoryRepo(),
			TemplatePath: cfg.TemplatePath(),
			OutputDir:    cfg.OutputDirFor(cfg.TemplatePath()),
			MappingPath:  cfg.MappingPath(),
			Open:         cfg.OpenAfterGenerate,
			Logger:       logger,
		},
	}

	watcher, err := mapping.Watch(cfg.MappingPath(), logger)
	if err != nil {
		logger.Warn("mapping changes will not be picked up", zap.Error(err))
	} else {
		defer watcher.Close()
		opts.Watcher = watcher
	}

	return app.Run(opts)
}
