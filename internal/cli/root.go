// Package cli provides the command-line interface for the analytics
// application.
package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"edge-analysis/internal/config"
	"edge-analysis/internal/logging"
	"edge-analysis/internal/security"
	"edge-analysis/internal/source"
	"edge-analysis/internal/store"
	"edge-analysis/internal/template"
)

// Version information
const (
	Version   = "0.1.0"
	BuildDate = "2025-08-30"
)

// App holds the application dependencies.
type App struct {
	Config     *config.Config
	Logger     zerolog.Logger
	Store      store.DataStore
	Source     *source.Loader
	Normalizer *template.Normalizer
}

// NewRootCmd creates the root command for the CLI.
func NewRootCmd(cfg *config.Config, logger zerolog.Logger) *cobra.Command {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	app.Normalizer = template.New(cfg.Analysis.TemplatesDir, cfg.Analysis.MinProfileScore, logger)

	// Initialize SQLite store
	dbPath := config.DefaultConfigDir() + "/edge.db"
	dataStore, err := store.NewSQLiteStore(dbPath)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to initialize store, persistence unavailable")
	} else {
		app.Store = dataStore
		logger.Debug().Msg("SQLite store initialized")
	}

	// Initialize source loader if credentials are available
	if cfg.HasSource() {
		client := source.NewClient(cfg.Source, cfg.Credentials.Source.Token, logger)
		app.Source = source.NewLoader(client, cfg.Source.CacheTTL, logger)
		logger.Debug().Msg("Source loader initialized")
	}

	rootCmd := &cobra.Command{
		Use:   "edge",
		Short: "Edge Analysis - trading journal analytics CLI",
		Long: `Edge Analysis turns a personal trading journal into performance
statistics: win rates, R-multiple expectancy, equity curves and grouped
breakdowns across instruments, sessions and entry models.

Journals come in from CSV/TSV/XLSX exports or straight from a
document-database collection, and column layouts are reconciled through
mapping templates.

Use 'edge help <command>' for more information about a command.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			debug, _ := cmd.Flags().GetBool("debug")
			if debug {
				logging.SetDebugLevel()
				app.Logger = app.Logger.Level(zerolog.DebugLevel)
			}
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config directory (default: ~/.config/edge-analysis)")
	rootCmd.PersistentFlags().Bool("json", false, "output in JSON format")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newConfigCmd(app))
	rootCmd.AddCommand(newImportCmd(app))
	rootCmd.AddCommand(newFetchCmd(app))
	rootCmd.AddCommand(newStatsCmd(app))
	rootCmd.AddCommand(newEquityCmd(app))
	rootCmd.AddCommand(newTemplatesCmd(app))
	rootCmd.AddCommand(newUserCmd(app))

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{
					"version":    Version,
					"build_date": BuildDate,
				})
			} else {
				output.Printf("Edge Analysis v%s\n", Version)
				output.Dim("Build date: %s", BuildDate)
			}
		},
	}
}

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
		Long:  "View and manage application configuration.",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if output.IsJSON() {
				return output.JSON(app.Config)
			}
			showConfig(output, app.Config)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration directory path",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{"path": config.DefaultConfigDir()})
			} else {
				output.Println(config.DefaultConfigDir())
			}
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Validate configuration files",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if err := app.Config.Validate(); err != nil {
				output.Error("Configuration validation failed: %v", err)
				return err
			}
			if output.IsJSON() {
				output.JSON(map[string]bool{"valid": true})
			} else {
				output.Success("✓ Configuration is valid")
			}
			return nil
		},
	})

	return cmd
}

func showConfig(output *Output, cfg *config.Config) {
	output.Bold("Analysis Configuration")
	output.Printf("  Strict Completion: %v\n", cfg.Analysis.StrictCompletion)
	output.Printf("  Min Profile Score: %.2f\n", cfg.Analysis.MinProfileScore)
	output.Printf("  Templates Dir:     %s\n", cfg.Analysis.TemplatesDir)
	output.Printf("  Infer Session:     %v\n", cfg.Analysis.InferSession)
	output.Println()

	output.Bold("Source Configuration")
	output.Printf("  Base URL:   %s\n", cfg.Source.BaseURL)
	output.Printf("  Page Size:  %d\n", cfg.Source.PageSize)
	output.Printf("  Rate Limit: %.1f req/s\n", cfg.Source.RateLimit)
	output.Printf("  Cache TTL:  %s\n", cfg.Source.CacheTTL)
	if cfg.HasSource() {
		output.Printf("  Token:      %s\n", security.MaskCredential(cfg.Credentials.Source.Token))
		output.Printf("  Collection: %s\n", cfg.Credentials.Source.CollectionID)
	} else {
		output.Printf("  Configured: false\n")
	}
}
