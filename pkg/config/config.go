package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Log     LogConfig     `yaml:"log"`
	Dataset DatasetConfig `yaml:"dataset"`
	Script  ScriptConfig  `yaml:"script"`
	Offline OfflineConfig `yaml:"offline"`
	Splash  SplashConfig  `yaml:"splash"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr      string `yaml:"addr"`
	StaticDir string `yaml:"static_dir"` // optional front-end bundle to serve at /
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"`
	Path   string `yaml:"path"`   // server log file; empty for stdout only
	Events string `yaml:"events"` // transcript event log (JSON lines); empty to disable
}

// DatasetConfig holds the house dataset location.
type DatasetConfig struct {
	Dir string `yaml:"dir"`
}

// ScriptConfig holds conversation pacing settings.
type ScriptConfig struct {
	DefaultDelay  Duration `yaml:"default_delay"`  // per-turn dwell when a turn has no override
	ResponseDelay Duration `yaml:"response_delay"` // artificial latency of the simulated backend
}

// OfflineConfig holds the self-playing demo mode settings.
type OfflineConfig struct {
	AutoStart bool `yaml:"auto_start"`
}

// SplashConfig holds the loading screen timing.
type SplashConfig struct {
	MinDuration Duration `yaml:"min_duration"`
	MaxDuration Duration `yaml:"max_duration"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr: "127.0.0.1:8743",
		},
		Log: LogConfig{
			Level:  "INFO",
			Path:   "logs/server.log",
			Events: "logs/events.log",
		},
		Dataset: DatasetConfig{
			Dir: "data/houses",
		},
		Script: ScriptConfig{
			DefaultDelay:  Duration(1600 * time.Millisecond),
			ResponseDelay: Duration(900 * time.Millisecond),
		},
		Offline: OfflineConfig{
			AutoStart: true,
		},
		Splash: SplashConfig{
			MinDuration: Duration(3 * time.Second),
			MaxDuration: Duration(6 * time.Second),
		},
	}
}

// Load reads the config file at path, creating it with defaults if missing.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(path); err == nil {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
		if err := cfg.validate(); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	if err := Save(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to save config file: %w", err)
	}
	return cfg, nil
}

// Save writes the config to path as YAML.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// GenerateDefault writes the default config to path.
func GenerateDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	return Save(path, DefaultConfig())
}

func (c *Config) validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr must not be empty")
	}
	if time.Duration(c.Script.DefaultDelay) <= 0 {
		return fmt.Errorf("script.default_delay must be positive, got %s", time.Duration(c.Script.DefaultDelay))
	}
	if time.Duration(c.Script.ResponseDelay) < 0 {
		return fmt.Errorf("script.response_delay must not be negative")
	}
	if time.Duration(c.Splash.MaxDuration) < time.Duration(c.Splash.MinDuration) {
		return fmt.Errorf("splash.max_duration (%s) must not be below splash.min_duration (%s)",
			time.Duration(c.Splash.MaxDuration), time.Duration(c.Splash.MinDuration))
	}
	return nil
}
