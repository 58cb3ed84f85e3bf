package config

import (
	"fmt"
	"os"
	"time"
)

// Config holds all application configuration
type Config struct {
	// Sync engine configuration
	Sync SyncConfig

	// Daemon configuration
	Daemon DaemonConfig

	// Transition journal configuration
	Journal JournalConfig

	// Web server configuration
	Web WebConfig
}

// SyncConfig holds the idle synchronization behavior
type SyncConfig struct {
	IdleThreshold   time.Duration // Inactivity required before the session counts as idle
	PollInterval    time.Duration // How often to sample the display idle counter
	MinPollInterval time.Duration // Minimum allowed poll interval
	MaxPollInterval time.Duration // Maximum allowed poll interval
	ResetOnExit     bool          // Clear the idle hint on shutdown
	OneShot         bool          // Perform a single check and exit
}

// DaemonConfig holds daemon process configuration
type DaemonConfig struct {
	PIDFile string // Path to PID file for daemon management
}

// JournalConfig holds the optional transition journal
type JournalConfig struct {
	Enabled   bool          // Record published transitions and poll errors
	Path      string        // SQLite file; empty means ~/.config/xidlesync/journal.db
	Retention time.Duration // Rows older than this are pruned at startup
}

// WebConfig holds web server configuration
type WebConfig struct {
	Host string // Host to bind web server to
	Port int    // Port for web server
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Sync: SyncConfig{
			IdleThreshold: 300 * time.Second, // 5 minutes idle threshold
			// Poll interval is a short constant, independent of the
			// threshold, so transitions are noticed within about a second.
			PollInterval:    1 * time.Second,
			MinPollInterval: 1 * time.Second,
			MaxPollInterval: 60 * time.Second,
			ResetOnExit:     true,
		},
		Daemon: DaemonConfig{
			PIDFile: fmt.Sprintf("/tmp/xidlesync-%d.pid", os.Getuid()),
		},
		Journal: JournalConfig{
			Enabled:   false,
			Retention: 30 * 24 * time.Hour,
		},
		Web: WebConfig{
			Host: "localhost",
			Port: 10000 + os.Getuid(),
		},
	}
}

// Validate checks if the configuration is valid. Called before any polling
// begins so a bad threshold never reaches the engine.
func (c *Config) Validate() error {
	if c.Sync.IdleThreshold <= 0 {
		return fmt.Errorf("idle threshold must be positive, got %v", c.Sync.IdleThreshold)
	}

	if c.Sync.PollInterval < c.Sync.MinPollInterval {
		return fmt.Errorf("poll interval (%v) cannot be less than minimum (%v)",
			c.Sync.PollInterval, c.Sync.MinPollInterval)
	}

	if c.Sync.PollInterval > c.Sync.MaxPollInterval {
		return fmt.Errorf("poll interval (%v) cannot be greater than maximum (%v)",
			c.Sync.PollInterval, c.Sync.MaxPollInterval)
	}

	if c.Journal.Retention < 0 {
		return fmt.Errorf("journal retention cannot be negative")
	}

	if c.Web.Port < 1 || c.Web.Port > 65535 {
		return fmt.Errorf("web port must be between 1 and 65535, got %d", c.Web.Port)
	}

	if c.Web.Host == "" {
		return fmt.Errorf("web host cannot be empty")
	}

	if c.Daemon.PIDFile == "" {
		return fmt.Errorf("PID file path cannot be empty")
	}

	return nil
}

// SetIdleThreshold sets the idle threshold with validation
func (c *Config) SetIdleThreshold(seconds int) error {
	if seconds <= 0 {
		return fmt.Errorf("idle threshold must be a positive number of seconds, got %d", seconds)
	}
	c.Sync.IdleThreshold = time.Duration(seconds) * time.Second
	return nil
}

// SetPollInterval sets the poll interval with validation
func (c *Config) SetPollInterval(interval time.Duration) error {
	if interval < c.Sync.MinPollInterval {
		return fmt.Errorf("poll interval cannot be less than %v", c.Sync.MinPollInterval)
	}
	if interval > c.Sync.MaxPollInterval {
		return fmt.Errorf("poll interval cannot be greater than %v", c.Sync.MaxPollInterval)
	}
	c.Sync.PollInterval = interval
	return nil
}

// GetIdleThresholdSeconds returns the idle threshold in seconds
func (c *Config) GetIdleThresholdSeconds() int64 {
	return int64(c.Sync.IdleThreshold.Seconds())
}

// String returns a string representation of the config
func (c *Config) String() string {
	return fmt.Sprintf(`Configuration:
  Sync:
    Idle Threshold: %v
    Poll Interval: %v
    Reset On Exit: %v
    One Shot: %v
  Daemon:
    PID File: %s
  Journal:
    Enabled: %v
    Path: %s
    Retention: %v
  Web:
    Host: %s
    Port: %d`,
		c.Sync.IdleThreshold,
		c.Sync.PollInterval,
		c.Sync.ResetOnExit,
		c.Sync.OneShot,
		c.Daemon.PIDFile,
		c.Journal.Enabled,
		c.Journal.Path,
		c.Journal.Retention,
		c.Web.Host,
		c.Web.Port,
	)
}
