package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// fileConfig mirrors the on-disk TOML layout. All fields are optional;
// anything absent keeps its default.
type fileConfig struct {
	Sync    syncTable    `toml:"sync"`
	Daemon  daemonTable  `toml:"daemon"`
	Journal journalTable `toml:"journal"`
	Web     webTable     `toml:"web"`
}

type syncTable struct {
	IdleThresholdSeconds int   `toml:"idle_threshold_seconds"`
	PollIntervalSeconds  int   `toml:"poll_interval_seconds"`
	ResetOnExit          *bool `toml:"reset_on_exit"`
}

type daemonTable struct {
	PIDFile string `toml:"pid_file"`
}

type journalTable struct {
	Enabled       *bool  `toml:"enabled"`
	Path          string `toml:"path"`
	RetentionDays int    `toml:"retention_days"`
}

type webTable struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// DefaultConfigPath returns the default config file location
func DefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".config", "xidlesync", "config.toml")
}

// LoadFromFile applies the default config file onto cfg if the file exists.
// A missing file is not an error; a malformed one is ignored silently so a
// bad config file never blocks startup (flags and env still apply).
func LoadFromFile(cfg *Config) {
	path := DefaultConfigPath()
	if path == "" {
		return
	}
	_ = ApplyFile(cfg, path)
}

// ApplyFile decodes the TOML file at path onto cfg
func ApplyFile(cfg *Config, path string) error {
	var fc fileConfig
	if _, err := toml.DecodeFile(path, &fc); err != nil {
		return err
	}

	if fc.Sync.IdleThresholdSeconds > 0 {
		cfg.Sync.IdleThreshold = time.Duration(fc.Sync.IdleThresholdSeconds) * time.Second
	}
	if fc.Sync.PollIntervalSeconds > 0 {
		cfg.Sync.PollInterval = time.Duration(fc.Sync.PollIntervalSeconds) * time.Second
	}
	if fc.Sync.ResetOnExit != nil {
		cfg.Sync.ResetOnExit = *fc.Sync.ResetOnExit
	}

	if fc.Daemon.PIDFile != "" {
		cfg.Daemon.PIDFile = fc.Daemon.PIDFile
	}

	if fc.Journal.Enabled != nil {
		cfg.Journal.Enabled = *fc.Journal.Enabled
	}
	if fc.Journal.Path != "" {
		cfg.Journal.Path = fc.Journal.Path
	}
	if fc.Journal.RetentionDays > 0 {
		cfg.Journal.Retention = time.Duration(fc.Journal.RetentionDays) * 24 * time.Hour
	}

	if fc.Web.Host != "" {
		cfg.Web.Host = fc.Web.Host
	}
	if fc.Web.Port > 0 {
		cfg.Web.Port = fc.Web.Port
	}

	return nil
}
