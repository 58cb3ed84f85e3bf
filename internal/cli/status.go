package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/xidlesync/xidlesync/internal/config"
	"github.com/xidlesync/xidlesync/internal/daemon"
	"github.com/xidlesync/xidlesync/pkg/integrations/logind"
	"github.com/xidlesync/xidlesync/pkg/integrations/x11"
)

func init() {
	rootCmd.AddCommand(statusCmd)
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show daemon status, display idle time, and the session idle hint",
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg := config.New()
	dm := daemon.New(cfg.Daemon.PIDFile)

	running, pid, err := dm.IsRunning()
	if err != nil {
		return fmt.Errorf("failed to check daemon status: %w", err)
	}

	if running {
		fmt.Printf("Status: Running (PID: %d)\n", pid)
		fmt.Printf("Idle Threshold: %v\n", cfg.Sync.IdleThreshold)
		fmt.Printf("Poll Interval: %v\n", cfg.Sync.PollInterval)
	} else {
		fmt.Println("Status: Not running")
	}

	// Probe the display and session directly so status works whether or
	// not the daemon is up.
	source, err := x11.NewSource()
	if err != nil {
		fmt.Printf("\nCould not query display: %v\n", err)
	} else {
		defer source.Close()
		if sample, err := source.IdleDuration(); err != nil {
			fmt.Printf("\nCould not sample idle time: %v\n", err)
		} else {
			fmt.Printf("\nDisplay:\n")
			fmt.Printf("  Idle Time: %v\n", sample.Truncate(time.Millisecond))
		}
	}

	sink, err := logind.NewSink()
	if err != nil {
		fmt.Printf("\nCould not query session: %v\n", err)
		return nil
	}
	defer sink.Close()

	fmt.Printf("\nSession:\n")
	if hint, err := sink.IdleHint(); err != nil {
		fmt.Printf("  Idle Hint: error: %v\n", err)
	} else {
		fmt.Printf("  Idle Hint: %v\n", hint)
	}
	if since, err := sink.IdleSince(); err == nil && !since.IsZero() {
		fmt.Printf("  Idle Since: %s\n", since.Format(time.RFC3339))
	}

	return nil
}
