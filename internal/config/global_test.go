package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadGlobalConfigFrom_Missing(t *testing.T) {
	cfg, err := loadGlobalConfigFrom(filepath.Join(t.TempDir(), "nope", "config.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cfg.Hosts) != 0 {
		t.Errorf("expected empty default config, got %v", cfg.Hosts)
	}
}

func TestSaveAndLoadGlobalConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "unixutils", "config.yaml")

	cfg := DefaultGlobalConfig()
	cfg.DefaultUser = "john"
	cfg.SSHTimeout = 15
	cfg.MaxLines = 500
	if err := cfg.AddHost("web", HostConfig{Host: "web.example.com", User: "john", Port: 2222, KeyPath: "~/.ssh/id_ed25519"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := saveGlobalConfigTo(cfg, path); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("expected file mode 0600, got %v", info.Mode().Perm())
	}

	loaded, err := loadGlobalConfigFrom(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.DefaultUser != "john" || loaded.SSHTimeout != 15 || loaded.MaxLines != 500 {
		t.Errorf("global settings not round-tripped: %+v", loaded)
	}

	host, err := loaded.GetHost("web")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if host.Host != "web.example.com" || host.Port != 2222 || host.KeyPath != "~/.ssh/id_ed25519" {
		t.Errorf("host not round-tripped: %+v", host)
	}
}

func TestLoadGlobalConfigFrom_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("hosts: [not a map"), 0600); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	if _, err := loadGlobalConfigFrom(path); err == nil {
		t.Error("expected error for malformed yaml")
	}
}
