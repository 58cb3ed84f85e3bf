package config

import (
	"os"
	"strconv"
	"time"
)

// LoadFromEnv loads configuration from environment variables
// Environment variables override file and default values
func LoadFromEnv(cfg *Config) {
	// Sync configuration
	if idleThreshold := os.Getenv("XIDLESYNC_IDLE_THRESHOLD"); idleThreshold != "" {
		if seconds, err := strconv.Atoi(idleThreshold); err == nil && seconds > 0 {
			cfg.Sync.IdleThreshold = time.Duration(seconds) * time.Second
		}
	}

	if pollInterval := os.Getenv("XIDLESYNC_POLL_INTERVAL"); pollInterval != "" {
		if seconds, err := strconv.Atoi(pollInterval); err == nil && seconds > 0 {
			interval := time.Duration(seconds) * time.Second
			if interval >= cfg.Sync.MinPollInterval && interval <= cfg.Sync.MaxPollInterval {
				cfg.Sync.PollInterval = interval
			}
		}
	}

	if resetOnExit := os.Getenv("XIDLESYNC_RESET_ON_EXIT"); resetOnExit != "" {
		if val, err := strconv.ParseBool(resetOnExit); err == nil {
			cfg.Sync.ResetOnExit = val
		}
	}

	// Daemon configuration
	if pidFile := os.Getenv("XIDLESYNC_PID_FILE"); pidFile != "" {
		cfg.Daemon.PIDFile = pidFile
	}

	// Journal configuration
	if journalPath := os.Getenv("XIDLESYNC_JOURNAL_PATH"); journalPath != "" {
		cfg.Journal.Enabled = true
		cfg.Journal.Path = journalPath
	}

	// Web configuration
	if webHost := os.Getenv("XIDLESYNC_WEB_HOST"); webHost != "" {
		cfg.Web.Host = webHost
	}

	if webPort := os.Getenv("XIDLESYNC_WEB_PORT"); webPort != "" {
		if port, err := strconv.Atoi(webPort); err == nil && port > 0 && port <= 65535 {
			cfg.Web.Port = port
		}
	}
}

// New creates a new Config with default values, applies the config file if
// one exists, and finally loads environment overrides
func New() *Config {
	cfg := Default()
	LoadFromFile(cfg)
	LoadFromEnv(cfg)
	return cfg
}
