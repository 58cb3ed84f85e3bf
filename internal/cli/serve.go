package cli

import (
	"github.com/spf13/cobra"
)

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "", "Host to bind the web server to (overrides config)")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port for the web server (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

var (
	serveHost string
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the sync loop with the status web API",
	Long:  `Run the idle sync loop and expose /api/status, /api/transitions, /health and /metrics over HTTP.`,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if serveHost != "" {
		cfg.Web.Host = serveHost
	}
	if servePort > 0 {
		cfg.Web.Port = servePort
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	return runDaemon(cfg, true)
}
