package cli

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/xidlesync/xidlesync/internal/config"
	"github.com/xidlesync/xidlesync/internal/daemon"
	"github.com/xidlesync/xidlesync/internal/database"
	"github.com/xidlesync/xidlesync/internal/engine"
	"github.com/xidlesync/xidlesync/internal/web"
	"github.com/xidlesync/xidlesync/pkg/integrations/logind"
	"github.com/xidlesync/xidlesync/pkg/integrations/x11"
)

func runSync(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	return runDaemon(cfg, false)
}

// runDaemon wires the idle source, hint sink, and optional journal into
// the engine and drives it to completion.
func runDaemon(cfg *config.Config, withWeb bool) error {
	source, err := x11.NewSource()
	if err != nil {
		return fmt.Errorf("failed to initialize idle source: %w", err)
	}
	defer source.Close()

	sink, err := logind.NewSink()
	if err != nil {
		return fmt.Errorf("failed to initialize session hint sink: %w", err)
	}
	defer sink.Close()

	repo, cleanup, err := openJournal(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	eng := engine.New(cfg, source, sink, repo)

	// One-shot has no loop and no long-lived daemon state: a single
	// sample-and-possibly-write cycle decides the exit code.
	if cfg.Sync.OneShot {
		return eng.CheckOnce()
	}

	dm := daemon.New(cfg.Daemon.PIDFile)
	running, pid, err := dm.IsRunning()
	if err != nil {
		return fmt.Errorf("failed to check daemon status: %w", err)
	}
	if running {
		return fmt.Errorf("daemon is already running (PID: %d)", pid)
	}

	if err := dm.WritePID(); err != nil {
		return fmt.Errorf("failed to write PID file: %w", err)
	}
	defer dm.RemovePID()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Println("Received shutdown signal")
		cancel()
	}()

	var webServer *web.Server
	if withWeb {
		webServer = web.NewServer(cfg, eng, repo)
		go func() {
			if err := webServer.Start(); err != nil && err != http.ErrServerClosed {
				log.Printf("Web server error: %v", err)
			}
		}()
		log.Printf("Web API available at: http://%s", webServer.GetAddress())
	}

	log.Printf("Configuration:\n%s", cfg.String())

	runErr := eng.Run(ctx)

	if webServer != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := webServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("Error shutting down web server: %v", err)
		}
	}

	return runErr
}

// openJournal connects the transition journal when enabled. The returned
// cleanup is always safe to defer.
func openJournal(cfg *config.Config) (*database.Repository, func(), error) {
	if !cfg.Journal.Enabled {
		return nil, func() {}, nil
	}

	db, err := database.Connect(cfg.Journal.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open journal: %w", err)
	}

	if err := db.Initialize(); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to initialize journal: %w", err)
	}

	repo := database.NewRepository(db)

	if cfg.Journal.Retention > 0 {
		cutoff := time.Now().Add(-cfg.Journal.Retention)
		if err := repo.Prune(cutoff); err != nil {
			log.Printf("Failed to prune journal: %v", err)
		}
	}

	return repo, func() { db.Close() }, nil
}
