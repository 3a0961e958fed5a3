package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/anerkennung/internal/config"
	"github.com/abhisek/anerkennung/internal/logging"
	"github.com/abhisek/anerkennung/internal/store"
)

var (
	cfg    config.Config
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "anerkennung",
	Short: "Credit recognition documents from a Word template",
	Long: "Anerkennung fills a Word template with a student's prior courses and grades\n" +
		"and writes the recognition document. Without a subcommand it starts the form.",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides ANERKENNUNG_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file (overrides ANERKENNUNG_CONFIG env var)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(coursesCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(clearCmd)
	rootCmd.AddCommand(studentCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(templateCmd)
	rootCmd.AddCommand(mappingCmd)
	rootCmd.AddCommand(configCmd)
}

// setup loads the configuration and builds the logger. The form logs to
// the configured file only, so its screen stays intact.
func setup(cmd *cobra.Command, args []string) error {
	path, err := resolveConfigPath(cmd)
	if err != nil {
		return err
	}
	cfg, err = config.Load(path)
	if err != nil {
		return err
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	opts := logging.Options{Verbose: verbose}
	if cmd == rootCmd {
		opts.File = cfg.LogPath()
		if opts.File == "" {
			return nil
		}
	}
	logger, err = logging.New(opts)
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	logger.Debug("config loaded", zap.String("path", path), zap.String("template", cfg.TemplatePath()), zap.String("mapping", cfg.MappingPath()))
	return nil
}

// resolveConfigPath returns --config, then ANERKENNUNG_CONFIG, then the
// config file next to the executable.
func resolveConfigPath(cmd *cobra.Command) (string, error) {
	explicit, _ := cmd.Flags().GetString("config")
	if explicit != "" {
		return explicit, nil
	}
	base, err := config.BaseDir()
	if err != nil {
		return "", fmt.Errorf("resolve base dir: %w", err)
	}
	return config.ResolvePath("", base), nil
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then ANERKENNUNG_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}
