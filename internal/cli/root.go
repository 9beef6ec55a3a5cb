package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/existflow/ironcal/internal/clock"
	"github.com/existflow/ironcal/internal/config"
	"github.com/existflow/ironcal/internal/db"
	"github.com/existflow/ironcal/internal/logger"
	"github.com/existflow/ironcal/internal/tui"
)

var (
	logLevel   string
	logFile    string
	logConsole bool

	// Loaded once in PersistentPreRunE and handed to every component that
	// needs it; there is no package-level preferences object.
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "ironcal",
	Short: "IronCal - Terminal personal calendar",
	Long: `IronCal is a terminal-based personal calendar with categorized events
backed by a local SQLite store.

Run 'ironcal' without arguments to launch the interactive TUI.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load()
		if err != nil {
			loaded = config.DefaultConfig()
		}
		cfg = loaded

		// Override with CLI flags if provided
		if cmd.Flags().Changed("log-level") {
			cfg.LogLevel = logLevel
		}
		if cmd.Flags().Changed("log-file") {
			cfg.LogFile = logFile
		}
		if cmd.Flags().Changed("log-console") {
			cfg.LogConsole = logConsole
		}

		logConfig := logger.Config{
			Level:    logger.ParseLevel(cfg.LogLevel),
			FilePath: cfg.LogFile,
			MaxSize:  10 * 1024 * 1024,
			Console:  cfg.LogConsole,
		}

		if err := logger.Init(logConfig); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		logger.Info("IronCal started", logger.F("command", cmd.Name()))
		return nil
	},

	RunE: func(cmd *cobra.Command, args []string) error {
		database, err := db.OpenDefault()
		if err != nil {
			logger.Error("Failed to open database", logger.F("error", err))
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer func() {
			_ = database.Close()
			logger.Info("Database closed")
		}()

		logger.Info("Launching TUI")
		m := tui.NewModel(database, cfg, clock.NewSystem())
		p := tea.NewProgram(m, tea.WithAltScreen())

		if _, err := p.Run(); err != nil {
			logger.Error("TUI error", logger.F("error", err))
			return fmt.Errorf("failed to run TUI: %w", err)
		}

		logger.Info("TUI exited normally")
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Info("IronCal exiting", logger.F("command", cmd.Name()))
		logger.Close()
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (DEBUG, INFO, WARN, ERROR)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Path to log file")
	rootCmd.PersistentFlags().BoolVar(&logConsole, "log-console", false, "Enable console logging")

	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(agendaCmd)
	rootCmd.AddCommand(rmCmd)
	rootCmd.AddCommand(categoryCmd)
}
