package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if !cfg.Driver.Enabled {
		t.Error("driver should be enabled by default")
	}
	if cfg.Driver.Port != 4723 {
		t.Errorf("driver port = %d, want 4723", cfg.Driver.Port)
	}
	if cfg.Driver.Timeout.Std() != 10*time.Second {
		t.Errorf("driver timeout = %v, want 10s", cfg.Driver.Timeout)
	}
	if !cfg.Driver.FallbackOnFailure {
		t.Error("fallback on failure should default to true")
	}
	if cfg.Input.TypingInterval.Std() != 50*time.Millisecond {
		t.Errorf("typing interval = %v, want 50ms", cfg.Input.TypingInterval)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("log level = %q, want info", cfg.Logging.Level)
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	m := NewManagerWithDir(t.TempDir())

	cfg, err := m.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Driver.Port != Default().Driver.Port {
		t.Errorf("port = %d, want default %d", cfg.Driver.Port, Default().Driver.Port)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	m := NewManagerWithDir(filepath.Join(t.TempDir(), "nested"))

	cfg := Default()
	cfg.Driver.Port = 9999
	cfg.Driver.AutoStart = false
	cfg.Logging.Level = "debug"

	if err := m.Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !m.Exists() {
		t.Fatal("config file should exist after Save")
	}

	loaded, err := m.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Driver.Port != 9999 {
		t.Errorf("port = %d, want 9999", loaded.Driver.Port)
	}
	if loaded.Driver.AutoStart {
		t.Error("auto start should stay false through the round trip")
	}
	if loaded.Logging.Level != "debug" {
		t.Errorf("log level = %q, want debug", loaded.Logging.Level)
	}
}

func TestDurationFileFormat(t *testing.T) {
	m := NewManagerWithDir(t.TempDir())
	if err := m.Save(Default()); err != nil {
		t.Fatalf("Save: %v", err)
	}

	raw, err := os.ReadFile(m.ConfigFile())
	if err != nil {
		t.Fatal(err)
	}
	// Durations are stored human-readable, never as nanosecond integers.
	if !strings.Contains(string(raw), `"timeout": "10s"`) {
		t.Errorf("timeout not stored as a duration string:\n%s", raw)
	}
	if !strings.Contains(string(raw), `"typing_interval": "50ms"`) {
		t.Errorf("typing_interval not stored as a duration string:\n%s", raw)
	}
}

func TestDurationAcceptsSeconds(t *testing.T) {
	dir := t.TempDir()
	m := NewManagerWithDir(dir)
	body := `{"driver": {"enabled": true, "port": 4723, "timeout": 15, "fallback_on_failure": true}}`
	if err := os.WriteFile(m.ConfigFile(), []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := m.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Driver.Timeout.Std() != 15*time.Second {
		t.Errorf("timeout = %v, want 15s from a bare number", cfg.Driver.Timeout)
	}
}

func TestLoadCorruptFile(t *testing.T) {
	dir := t.TempDir()
	m := NewManagerWithDir(dir)
	if err := os.WriteFile(m.ConfigFile(), []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := m.Load()
	if err == nil {
		t.Fatal("Load should report the parse failure")
	}
	if cfg == nil || cfg.Driver.Port != Default().Driver.Port {
		t.Error("Load should still hand back usable defaults")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("DESKPILOT_DRIVER_PORT", "5555")
	t.Setenv("DESKPILOT_DRIVER_ENABLED", "false")
	t.Setenv("DESKPILOT_DRIVER_TIMEOUT", "30s")
	t.Setenv("DESKPILOT_FALLBACK_ON_FAILURE", "false")
	t.Setenv("DESKPILOT_LOG_LEVEL", "debug")

	m := NewManagerWithDir(t.TempDir())
	cfg, err := m.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Driver.Port != 5555 {
		t.Errorf("port = %d, want 5555", cfg.Driver.Port)
	}
	if cfg.Driver.Enabled {
		t.Error("driver should be disabled via env")
	}
	if cfg.Driver.Timeout.Std() != 30*time.Second {
		t.Errorf("timeout = %v, want 30s", cfg.Driver.Timeout)
	}
	if cfg.Driver.FallbackOnFailure {
		t.Error("fallback should be disabled via env")
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("log level = %q, want debug", cfg.Logging.Level)
	}
}

func TestEnvOverridesIgnoreInvalidValues(t *testing.T) {
	t.Setenv("DESKPILOT_DRIVER_PORT", "not-a-port")
	t.Setenv("DESKPILOT_DRIVER_ENABLED", "maybe")
	t.Setenv("DESKPILOT_DRIVER_TIMEOUT", "-5s")

	m := NewManagerWithDir(t.TempDir())
	cfg, err := m.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	def := Default()
	if cfg.Driver.Port != def.Driver.Port {
		t.Errorf("port = %d, want default %d", cfg.Driver.Port, def.Driver.Port)
	}
	if cfg.Driver.Enabled != def.Driver.Enabled {
		t.Error("invalid bool should leave the default in place")
	}
	if cfg.Driver.Timeout != def.Driver.Timeout {
		t.Errorf("timeout = %v, want default %v", cfg.Driver.Timeout, def.Driver.Timeout)
	}
}

func TestClear(t *testing.T) {
	m := NewManagerWithDir(t.TempDir())

	if err := m.Clear(); err != nil {
		t.Fatalf("Clear without a file: %v", err)
	}

	if err := m.Save(Default()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := m.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if m.Exists() {
		t.Error("config file should be gone after Clear")
	}
}
