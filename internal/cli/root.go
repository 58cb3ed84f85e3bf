// Package cli implements the xidlesync command-line interface using Cobra.
// The root command runs the sync loop; subcommands cover the daemon
// lifecycle (serve, status, stop) and the journal (clear).
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/xidlesync/xidlesync/internal/config"
)

var (
	flagIdleThreshold int
	flagNoResetOnExit bool
	flagOneShot       bool
)

var rootCmd = &cobra.Command{
	Use:   "xidlesync",
	Short: "Sync X11 idle time to the logind session idle hint",
	Long: `xidlesync bridges the X11 screensaver idle counter and systemd-logind's
per-session IdleHint so idle-based power management works on bare X11
sessions without a desktop environment updating the hint.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runSync,
}

func init() {
	rootCmd.PersistentFlags().IntVarP(&flagIdleThreshold, "idle-threshold", "t", 300,
		"Idle threshold in seconds")
	rootCmd.PersistentFlags().BoolVarP(&flagNoResetOnExit, "no-reset-on-exit", "N", false,
		"Disable resetting idle hint to false on exit")
	rootCmd.Flags().BoolVarP(&flagOneShot, "one-shot", "1", false,
		"Run as a one-shot idle check (check once and exit)")
}

// Execute runs the root command. Called from main.go.
func Execute(version string) {
	rootCmd.Version = version

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// loadConfig builds the effective configuration: defaults, then config
// file, then environment, then flags. Validation here keeps a bad
// threshold from ever reaching the engine.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.New()

	if cmd.Flags().Changed("idle-threshold") {
		if err := cfg.SetIdleThreshold(flagIdleThreshold); err != nil {
			return nil, err
		}
	}
	if flagNoResetOnExit {
		cfg.Sync.ResetOnExit = false
	}
	cfg.Sync.OneShot = flagOneShot

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}
