// Package config holds the deskpilot configuration and its on-disk manager.
//
// Configuration is an explicit value: callers construct or load one and
// pass it down. There is no process-wide mutable singleton.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

// Duration is a time.Duration stored as a duration string ("10s") in
// config.json rather than raw nanoseconds. Bare numbers are accepted on
// read and interpreted as seconds, the older file format.
type Duration time.Duration

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

func (d Duration) String() string { return time.Duration(d).String() }

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

func (d *Duration) UnmarshalJSON(data []byte) error {
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch value := v.(type) {
	case string:
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("parse duration %q: %w", value, err)
		}
		*d = Duration(parsed)
	case float64:
		*d = Duration(time.Duration(value * float64(time.Second)))
	default:
		return fmt.Errorf("invalid duration value %v", v)
	}
	return nil
}

// Driver configures the external UI-Automation driver process and its
// REST session.
type Driver struct {
	Enabled           bool     `json:"enabled"`
	Path              string   `json:"path"`
	Port              int      `json:"port"`
	AutoStart         bool     `json:"auto_start"`
	Timeout           Duration `json:"timeout"`
	FallbackOnFailure bool     `json:"fallback_on_failure"`
}

// Input configures injection pacing.
type Input struct {
	ClickPause     Duration `json:"click_pause"`
	TypingInterval Duration `json:"typing_interval"`
}

// Logging configures log output.
type Logging struct {
	Level          string `json:"level"`
	File           string `json:"file"`
	ScreenshotsDir string `json:"screenshots_dir"`
}

// Config is the top-level deskpilot configuration.
type Config struct {
	Driver  Driver  `json:"driver"`
	Input   Input   `json:"input"`
	Logging Logging `json:"logging"`
}

// Default returns the stock configuration.
func Default() *Config {
	return &Config{
		Driver: Driver{
			Enabled:           true,
			Path:              `C:\Program Files\Windows Application Driver\WinAppDriver.exe`,
			Port:              4723,
			AutoStart:         true,
			Timeout:           Duration(10 * time.Second),
			FallbackOnFailure: true,
		},
		Input: Input{
			ClickPause:     Duration(100 * time.Millisecond),
			TypingInterval: Duration(50 * time.Millisecond),
		},
		Logging: Logging{
			Level:          "info",
			ScreenshotsDir: "./screenshots",
		},
	}
}

// Manager reads and writes the configuration file.
type Manager struct {
	configDir  string
	configFile string
	mu         sync.RWMutex
}

// NewManager creates a manager rooted at ~/.deskpilot.
func NewManager() *Manager {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}
	return NewManagerWithDir(filepath.Join(homeDir, ".deskpilot"))
}

// NewManagerWithDir creates a manager rooted at the given directory.
func NewManagerWithDir(configDir string) *Manager {
	return &Manager{
		configDir:  configDir,
		configFile: filepath.Join(configDir, "config.json"),
	}
}

// Load reads the configuration file, then applies environment overrides.
// A missing file yields the defaults, not an error. A `.env` file in the
// working directory is honored if present.
func (m *Manager) Load() (*Config, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	cfg := Default()

	if _, err := os.Stat(m.configFile); err == nil {
		data, err := os.ReadFile(m.configFile)
		if err != nil {
			return cfg, fmt.Errorf("read config file: %w", err)
		}
		if err := json.Unmarshal(data, cfg); err != nil {
			return Default(), fmt.Errorf("parse config file: %w", err)
		}
	}

	// .env is optional; a missing file is not an error.
	_ = godotenv.Load()
	applyEnv(cfg)

	return cfg, nil
}

// Save writes the configuration file, creating the directory if needed.
func (m *Manager) Save(cfg *Config) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := os.MkdirAll(m.configDir, 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(m.configFile, data, 0o600); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Clear removes the configuration file.
func (m *Manager) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, err := os.Stat(m.configFile); os.IsNotExist(err) {
		return nil
	}
	return os.Remove(m.configFile)
}

// Exists reports whether the configuration file is present.
func (m *Manager) Exists() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, err := os.Stat(m.configFile)
	return err == nil
}

// ConfigDir returns the directory holding the configuration file.
func (m *Manager) ConfigDir() string {
	return m.configDir
}

// ConfigFile returns the configuration file path.
func (m *Manager) ConfigFile() string {
	return m.configFile
}

// applyEnv overlays DESKPILOT_* environment variables onto cfg.
func applyEnv(cfg *Config) {
	if v, ok := envBool("DESKPILOT_DRIVER_ENABLED"); ok {
		cfg.Driver.Enabled = v
	}
	if v := os.Getenv("DESKPILOT_DRIVER_PATH"); v != "" {
		cfg.Driver.Path = v
	}
	if v := os.Getenv("DESKPILOT_DRIVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil && port > 0 {
			cfg.Driver.Port = port
		}
	}
	if v, ok := envBool("DESKPILOT_DRIVER_AUTO_START"); ok {
		cfg.Driver.AutoStart = v
	}
	if v := os.Getenv("DESKPILOT_DRIVER_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.Driver.Timeout = Duration(d)
		}
	}
	if v, ok := envBool("DESKPILOT_FALLBACK_ON_FAILURE"); ok {
		cfg.Driver.FallbackOnFailure = v
	}
	if v := os.Getenv("DESKPILOT_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("DESKPILOT_SCREENSHOTS_DIR"); v != "" {
		cfg.Logging.ScreenshotsDir = v
	}
}

func envBool(key string) (bool, bool) {
	v := os.Getenv(key)
	if v == "" {
		return false, false
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, false
	}
	return b, true
}
