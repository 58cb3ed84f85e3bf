package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xidlesync/xidlesync/internal/config"
	"github.com/xidlesync/xidlesync/internal/daemon"
)

func init() {
	rootCmd.AddCommand(stopCmd)
}

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop a running xidlesync daemon",
	RunE:  runStop,
}

func runStop(cmd *cobra.Command, args []string) error {
	cfg := config.New()
	dm := daemon.New(cfg.Daemon.PIDFile)

	running, pid, err := dm.IsRunning()
	if err != nil {
		return fmt.Errorf("failed to check daemon status: %w", err)
	}

	if !running {
		fmt.Println("Daemon is not running")
		return nil
	}

	fmt.Printf("Stopping daemon (PID: %d)...\n", pid)
	if err := dm.Stop(); err != nil {
		return fmt.Errorf("failed to stop daemon: %w", err)
	}

	fmt.Println("Daemon stopped successfully")
	return nil
}
