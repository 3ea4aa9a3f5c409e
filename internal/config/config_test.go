package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingConfig(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	ResetCache()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Mailto != "" || cfg.DataDir != "" || cfg.NoCache {
		t.Errorf("Load = %+v, want zero config for missing file", cfg)
	}
}

func TestLoadConfig(t *testing.T) {
	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)
	ResetCache()

	dir := filepath.Join(configHome, ConfigDirName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	content := "mailto: dev@example.org\ndata_dir: /tmp/persid-data\nno_cache: true\n"
	if err := os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Mailto != "dev@example.org" {
		t.Errorf("Mailto = %q", cfg.Mailto)
	}
	if cfg.DataDir != "/tmp/persid-data" {
		t.Errorf("DataDir = %q", cfg.DataDir)
	}
	if !cfg.NoCache {
		t.Error("NoCache = false, want true")
	}
}

func TestGetMailtoEnvOverride(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("PERSID_MAILTO", "env@example.org")
	ResetCache()

	if got := GetMailto(); got != "env@example.org" {
		t.Errorf("GetMailto = %q, want environment value", got)
	}
}

func TestResolvedDataDir(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/tmp/xdg-data")

	cfg := &Config{}
	if got := cfg.ResolvedDataDir(); got != filepath.Join("/tmp/xdg-data", ConfigDirName) {
		t.Errorf("ResolvedDataDir = %q", got)
	}

	cfg = &Config{DataDir: "/explicit"}
	if got := cfg.ResolvedDataDir(); got != "/explicit" {
		t.Errorf("ResolvedDataDir = %q, want configured value", got)
	}
}

func TestPaths(t *testing.T) {
	if got := HistoryPath("/data"); got != filepath.Join("/data", HistoryFileName) {
		t.Errorf("HistoryPath = %q", got)
	}
	if got := CachePath("/data"); got != filepath.Join("/data", CacheFileName) {
		t.Errorf("CachePath = %q", got)
	}
}

func TestExpandTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	if got := ExpandTilde("~/persid"); got != filepath.Join(home, "persid") {
		t.Errorf("ExpandTilde(~/persid) = %q", got)
	}
	if got := ExpandTilde("/absolute/path"); got != "/absolute/path" {
		t.Errorf("ExpandTilde(/absolute/path) = %q", got)
	}
}
