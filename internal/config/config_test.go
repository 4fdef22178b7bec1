package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mover.yml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func TestLoadKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `
mover:
  testing: true
redis:
  host: redis.local
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if !cfg.Mover.Testing {
		t.Error("Expected testing mode from file")
	}
	if cfg.Redis.Host != "redis.local" {
		t.Errorf("Expected host override, got %s", cfg.Redis.Host)
	}
	if cfg.Redis.Port != 6379 {
		t.Errorf("Expected default port, got %d", cfg.Redis.Port)
	}
	if cfg.Mover.PublishInterval != 250*time.Millisecond {
		t.Errorf("Expected default publish interval, got %s", cfg.Mover.PublishInterval)
	}
	if cfg.Mover.TestPlaneID != 999 {
		t.Errorf("Expected default test plane id, got %d", cfg.Mover.TestPlaneID)
	}
	if cfg.Channels.CACommands != "ca-commands" {
		t.Errorf("Expected default outbound channel, got %s", cfg.Channels.CACommands)
	}
}

func TestLoadDurations(t *testing.T) {
	path := writeConfig(t, `
mover:
  publish_interval: 100ms
  identity_timeout: 3s
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Mover.PublishInterval != 100*time.Millisecond {
		t.Errorf("Expected 100ms, got %s", cfg.Mover.PublishInterval)
	}
	if cfg.Mover.IdentityTimeout != 3*time.Second {
		t.Errorf("Expected 3s, got %s", cfg.Mover.IdentityTimeout)
	}
}

func TestLoadGPIOLines(t *testing.T) {
	path := writeConfig(t, `
gpio:
  enabled: true
  lines:
    publish_enable: {chip: 4, line: 1}
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	line, ok := cfg.GPIO.Lines["publish_enable"]
	if !ok {
		t.Fatal("Expected publish_enable line")
	}
	if line.Chip != 4 || line.Line != 1 {
		t.Errorf("Unexpected line mapping: %+v", line)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"zero interval": "mover:\n  publish_interval: 0s\n",
		"bad parity":    "serial:\n  enabled: true\n  parity: mark\n",
		"empty channel": "channels:\n  telemetry: \"\"\n",
		"bad yaml":      "mover: [",
	}
	for name, body := range cases {
		if _, err := Load(writeConfig(t, body)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yml")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestDefaultValidates(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default config invalid: %v", err)
	}
	if cfg.RedisAddr() != "127.0.0.1:6379" {
		t.Errorf("Unexpected addr %s", cfg.RedisAddr())
	}
}
