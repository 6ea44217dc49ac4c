package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/existflow/credboard/internal/config"
	"github.com/existflow/credboard/internal/logger"
	"github.com/existflow/credboard/internal/tui"
	"github.com/spf13/cobra"
)

var (
	logLevel   string
	logFile    string
	logConsole bool
	serverURL  string

	// cfg is the effective configuration, set in PersistentPreRunE
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "credboard",
	Short: "Credboard - browse and copy project credentials from the terminal",
	Long: `Credboard reads sections, credentials and attachments from a REST backend,
groups them by project and copies them to the clipboard as plain text.

Run 'credboard' without arguments to launch the interactive TUI.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Load config from file (or defaults if not exists)
		loaded, err := config.Load()
		if err != nil {
			logger.Warn("Failed to load config, using defaults", logger.F("error", err))
			loaded = config.DefaultConfig()
		}

		// Override with CLI flags if provided
		configChanged := false
		if cmd.Flags().Changed("log-level") {
			loaded.LogLevel = logLevel
			configChanged = true
		}
		if cmd.Flags().Changed("log-file") {
			loaded.LogFile = logFile
			configChanged = true
		}
		if cmd.Flags().Changed("log-console") {
			loaded.LogConsole = logConsole
			configChanged = true
		}
		if cmd.Flags().Changed("server") {
			loaded.ServerURL = serverURL
			configChanged = true
		}

		// Save config if changed via CLI flags
		if configChanged {
			if err := loaded.Save(); err != nil {
				logger.Warn("Failed to save config", logger.F("error", err))
			}
		}
		cfg = loaded

		logConfig := logger.Config{
			Level:      logger.ParseLevel(cfg.LogLevel),
			FilePath:   cfg.LogFile,
			MaxSize:    10 * 1024 * 1024, // 10MB
			MaxAge:     7,
			MaxBackups: 5,
			Console:    cfg.LogConsole,
		}

		if err := logger.Init(logConfig); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		logger.Info("Credboard started", logger.F("command", cmd.Name()), logger.F("server", cfg.ServerURL))
		return nil
	},

	RunE: func(cmd *cobra.Command, args []string) error {
		logger.Info("Launching TUI")
		m := tui.NewModel(tui.Options{
			Engine:          newEngine(cfg),
			Clipboard:       clipboardWriter,
			NoticeTimeout:   cfg.NoticeTimeout,
			MaskPasswords:   cfg.MaskPasswords,
			RefreshInterval: cfg.RefreshInterval,
		})
		defer m.Close()

		p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
		if _, err := p.Run(); err != nil {
			logger.Error("TUI error", logger.F("error", err))
			return fmt.Errorf("failed to run TUI: %w", err)
		}

		logger.Info("TUI exited normally")
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Info("Credboard exiting", logger.F("command", cmd.Name()))
		logger.Close()
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Add logging flags
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (DEBUG, INFO, WARN, ERROR)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Path to log file")
	rootCmd.PersistentFlags().BoolVar(&logConsole, "log-console", false, "Enable console logging")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "API base URL (saved to config)")

	// Add subcommands
	rootCmd.AddCommand(sectionsCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(copyCmd)
	rootCmd.AddCommand(configCmd)
}
