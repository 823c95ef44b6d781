package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileIsAnError(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist.json"))
	if err == nil {
		t.Fatal("expected an error for a missing config file")
	}
	if !os.IsNotExist(err) {
		t.Errorf("err = %v, want a not-exist error", err)
	}
}

func TestLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	cfg := Default()
	cfg.Server.Addr = ":9090"
	cfg.Tariff.SchedulePath = "/etc/tariffs.hcl"
	if err := cfg.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Server.Addr != ":9090" {
		t.Errorf("addr = %q, want :9090", loaded.Server.Addr)
	}
	if loaded.Tariff.SchedulePath != "/etc/tariffs.hcl" {
		t.Errorf("schedule path = %q", loaded.Tariff.SchedulePath)
	}
}

func TestLoadFillsDefaultsForOmittedFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"server": {"addr": ":7070"}}`), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Server.Addr != ":7070" {
		t.Errorf("addr = %q, want :7070", loaded.Server.Addr)
	}
	if loaded.Tariff.DefaultCategory != "General" {
		t.Errorf("default category = %q, want General", loaded.Tariff.DefaultCategory)
	}
	if loaded.History.MaxRecords != 50 {
		t.Errorf("max records = %d, want 50", loaded.History.MaxRecords)
	}
}
