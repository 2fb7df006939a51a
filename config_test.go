package lottiegrab

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte(`
browser:
  remote: ws://127.0.0.1:9222
  open:
    - https://example.com
fetch:
  timeout: 10s
  max_body: 1048576
  user_agent: test-agent
debounce:
  window: 250ms
store:
  path: /tmp/test.db
api:
  addr: ":9999"
sinks:
  - type: stdout
  - type: webhook
    url: https://hooks.example.com/lottie
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfigFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Browser.Remote != "ws://127.0.0.1:9222" {
		t.Errorf("Remote = %q", cfg.Browser.Remote)
	}
	if len(cfg.Browser.Open) != 1 || cfg.Browser.Open[0] != "https://example.com" {
		t.Errorf("Open = %v", cfg.Browser.Open)
	}
	if cfg.Fetch.Timeout != 10*time.Second {
		t.Errorf("Timeout = %v", cfg.Fetch.Timeout)
	}
	if cfg.Fetch.MaxBody != 1<<20 {
		t.Errorf("MaxBody = %d", cfg.Fetch.MaxBody)
	}
	if cfg.Debounce.Window != 250*time.Millisecond {
		t.Errorf("Window = %v", cfg.Debounce.Window)
	}
	if cfg.Store.Path != "/tmp/test.db" {
		t.Errorf("Path = %q", cfg.Store.Path)
	}
	if cfg.API.Addr != ":9999" {
		t.Errorf("Addr = %q", cfg.API.Addr)
	}
	if len(cfg.Sinks) != 2 || cfg.Sinks[1].URL != "https://hooks.example.com/lottie" {
		t.Errorf("Sinks = %+v", cfg.Sinks)
	}
}

func TestConfigDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("{}\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfigFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Fetch.Timeout != 30*time.Second {
		t.Errorf("default Timeout = %v", cfg.Fetch.Timeout)
	}
	if cfg.Fetch.MaxBody != 10<<20 {
		t.Errorf("default MaxBody = %d", cfg.Fetch.MaxBody)
	}
	if cfg.Debounce.Window != 500*time.Millisecond {
		t.Errorf("default Window = %v", cfg.Debounce.Window)
	}
	if cfg.Store.Path != "lottiegrab.db" {
		t.Errorf("default Path = %q", cfg.Store.Path)
	}
	if cfg.API.Addr != ":8087" {
		t.Errorf("default Addr = %q", cfg.API.Addr)
	}
}

func TestLoadConfigFileMissing(t *testing.T) {
	if _, err := LoadConfigFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
