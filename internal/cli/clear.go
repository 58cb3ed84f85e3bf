package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xidlesync/xidlesync/internal/config"
	"github.com/xidlesync/xidlesync/internal/database"
)

func init() {
	rootCmd.AddCommand(clearCmd)
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear all transition journal data",
	RunE:  runClear,
}

func runClear(cmd *cobra.Command, args []string) error {
	cfg := config.New()

	fmt.Print("This will delete all journal data. Are you sure? (yes/no): ")
	var response string
	fmt.Scanln(&response)

	if response != "yes" && response != "y" {
		fmt.Println("Operation cancelled")
		return nil
	}

	db, err := database.Connect(cfg.Journal.Path)
	if err != nil {
		return fmt.Errorf("failed to open journal: %w", err)
	}
	defer db.Close()

	repo := database.NewRepository(db)
	if err := repo.Clear(); err != nil {
		return fmt.Errorf("failed to clear journal: %w", err)
	}

	fmt.Println("Journal cleared successfully")
	return nil
}
