// Package cli provides the command-line interface for the trading journal.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"trading-journal/internal/config"
	"trading-journal/internal/journal"
	"trading-journal/internal/logging"
	"trading-journal/internal/notify"
	"trading-journal/internal/store"
)

// Version information
const (
	Version   = "0.1.0"
	BuildDate = "2026-10-14"
)

// App holds the application dependencies. The journal is opened on first
// use so that commands like version never touch the data directory.
type App struct {
	Config *config.Config
	Logger zerolog.Logger

	repo    *store.Repository
	journal *journal.Journal
}

// NewRootCmd creates the root command for the CLI.
func NewRootCmd(cfg *config.Config, logger zerolog.Logger) *cobra.Command {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	rootCmd := &cobra.Command{
		Use:   "journal",
		Short: "Trading journal - log trades, track your wallet and objectives",
		Long: `Trading Journal is a personal, local-only trading journal.

Log closed trades, record income and expenses, set savings and performance
objectives, and review statistics computed from your history.

Use 'journal help <command>' for more information about a command.
Use 'journal examples' to see common workflows.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if dir, _ := cmd.Flags().GetString("config"); dir != "" && dir != app.Config.Dir {
				reloaded, err := config.Load(dir)
				if err != nil {
					return err
				}
				app.Config = reloaded
			}

			debug, _ := cmd.Flags().GetBool("debug")
			if debug {
				logging.SetDebugLevel()
				app.Logger = app.Logger.Level(zerolog.DebugLevel)
			}
			cmd.SetContext(logging.WithLogger(cmd.Context(), logging.WithCommand(app.Logger, cmd.CommandPath())))
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return app.Close()
		},
	}

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config directory (default: ~/.config/trading-journal)")
	rootCmd.PersistentFlags().Bool("json", false, "output in JSON format")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	// Add all command groups
	addCoreCommands(rootCmd, app)
	addTradeCommands(rootCmd, app)
	addWalletCommands(rootCmd, app)
	addObjectiveCommands(rootCmd, app)
	addStatsCommands(rootCmd, app)
	addDataCommands(rootCmd, app)
	addSettingsCommands(rootCmd, app)
	addHelpCommands(rootCmd, app)

	return rootCmd
}

// Journal opens the configured store and loads the journal on first call.
func (a *App) Journal(ctx context.Context) (*journal.Journal, error) {
	if a.journal != nil {
		return a.journal, nil
	}

	kv, err := store.Open(a.Config.Storage.Backend, a.Config.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}
	logger := logging.FromContext(ctx)
	logging.LogStoreOpened(logger, a.Config.Storage.Backend, a.Config.Storage.Path)

	repo := store.NewRepository(kv)
	j, err := journal.Open(ctx, repo, journal.Options{
		Logger:     &logger,
		Dispatcher: a.dispatcher(),
	})
	if err != nil {
		repo.Close()
		return nil, fmt.Errorf("loading journal: %w", err)
	}

	a.repo = repo
	a.journal = j
	return j, nil
}

// Close releases the store, if it was opened.
func (a *App) Close() error {
	if a.repo == nil {
		return nil
	}
	err := a.repo.Close()
	a.repo = nil
	a.journal = nil
	return err
}

func (a *App) dispatcher() *notify.Dispatcher {
	d := notify.NewDispatcher(a.Config.Display.Currency, a.Logger)
	d.AddChannel(notify.NewLogChannel(a.Logger))
	if a.Config.Notifications.Desktop {
		d.AddChannel(notify.NewDesktopChannel(true))
	}
	if a.Config.Notifications.Bell {
		d.AddChannel(notify.NewBellChannel(os.Stderr))
	}
	if a.Config.Notifications.SoundCommand != "" {
		d.AddChannel(notify.NewSoundChannel(a.Config.Notifications.SoundCommand))
	}
	return d
}

// addCoreCommands adds core utility commands.
func addCoreCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newVersionCmd(app))
	rootCmd.AddCommand(newConfigCmd(app))
}

func newVersionCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := app.NewOutput(cmd)
			if output.IsJSON() {
				return output.JSON(map[string]string{
					"version":    Version,
					"build_date": BuildDate,
				})
			}
			output.Printf("Trading Journal v%s\n", Version)
			output.Dim("Build date: %s", BuildDate)
			return nil
		},
	}
}

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
		Long:  "View and validate application configuration.",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := app.NewOutput(cmd)
			if output.IsJSON() {
				return output.JSON(app.Config)
			}
			showConfig(output, app.Config)
			return app.showLastSaved(cmd, output)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := app.NewOutput(cmd)
			if output.IsJSON() {
				return output.JSON(map[string]string{"path": app.Config.Dir})
			}
			output.Println(app.Config.Dir)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Validate the configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := app.NewOutput(cmd)
			if err := app.Config.Validate(); err != nil {
				output.Error("Configuration validation failed: %v", err)
				return err
			}
			if output.IsJSON() {
				return output.JSON(map[string]bool{"valid": true})
			}
			output.Success("✓ Configuration is valid")
			return nil
		},
	})

	return cmd
}

func showConfig(output *Output, cfg *config.Config) {
	output.Bold("Storage")
	output.Printf("  Backend:         %s\n", cfg.Storage.Backend)
	output.Printf("  Path:            %s\n", cfg.Storage.Path)
	output.Println()

	output.Bold("Logging")
	output.Printf("  Level:           %s\n", cfg.Log.Level)
	output.Printf("  File:            %v (%s)\n", cfg.Log.File, cfg.Log.FilePath)
	output.Println()

	output.Bold("Notifications")
	output.Printf("  Desktop:         %v\n", cfg.Notifications.Desktop)
	sound := cfg.Notifications.SoundCommand
	if sound == "" {
		sound = "disabled"
	}
	output.Printf("  Sound command:   %s\n", sound)
	output.Println()

	output.Bold("Display")
	output.Printf("  Currency:        %s\n", cfg.Display.Currency)
	output.Printf("  Default filter:  %s\n", cfg.Display.DefaultFilter)
}

// showLastSaved lists when each collection was last written.
func (a *App) showLastSaved(cmd *cobra.Command, output *Output) error {
	if _, err := a.Journal(cmd.Context()); err != nil {
		return err
	}
	saved, err := a.repo.LastSaved(cmd.Context())
	if err != nil {
		return err
	}

	output.Println()
	output.Bold("Last saved")
	for _, key := range store.Keys {
		at, ok := saved[key]
		if !ok {
			output.Printf("  %-16s %s\n", key+":", output.DimText("never"))
			continue
		}
		output.Printf("  %-16s %s\n", key+":", FormatDateTime(at))
	}
	return nil
}
