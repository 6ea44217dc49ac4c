package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or update settings",
	Long: `Show the effective settings, or update them with flags.

Examples:
  credboard config
  credboard config --server http://10.0.0.5:8000/api --concurrency 4
  credboard config --refresh-interval 1m --mask=false`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

var (
	configConcurrency     int
	configRefreshInterval time.Duration
	configNoticeTimeout   time.Duration
	configMask            bool
)

func init() {
	configCmd.Flags().IntVar(&configConcurrency, "concurrency", 1, "Parallel fetches per pass (1 = sequential)")
	configCmd.Flags().DurationVar(&configRefreshInterval, "refresh-interval", 0, "Background refresh interval in the TUI (0 disables)")
	configCmd.Flags().DurationVar(&configNoticeTimeout, "notice-timeout", 3*time.Second, "How long notifications stay visible")
	configCmd.Flags().BoolVar(&configMask, "mask", true, "Mask passwords until revealed")
}

func runConfig(cmd *cobra.Command, args []string) error {
	changed := false
	if cmd.Flags().Changed("concurrency") {
		if configConcurrency < 1 {
			return fmt.Errorf("concurrency must be at least 1")
		}
		cfg.Concurrency = configConcurrency
		changed = true
	}
	if cmd.Flags().Changed("refresh-interval") {
		if configRefreshInterval < 0 {
			return fmt.Errorf("refresh-interval cannot be negative")
		}
		cfg.RefreshInterval = configRefreshInterval
		changed = true
	}
	if cmd.Flags().Changed("notice-timeout") {
		if configNoticeTimeout <= 0 {
			return fmt.Errorf("notice-timeout must be positive")
		}
		cfg.NoticeTimeout = configNoticeTimeout
		changed = true
	}
	if cmd.Flags().Changed("mask") {
		cfg.MaskPasswords = configMask
		changed = true
	}

	out := cmd.OutOrStdout()
	if changed {
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
		fmt.Fprintln(out, "✓ Config saved")
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	_, err = out.Write(data)
	return err
}
