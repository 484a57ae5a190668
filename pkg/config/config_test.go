package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mitchellh/go-homedir"
)

func init() {
	homedir.DisableCache = true
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("HOME", dir)
	t.Setenv("OUTBREAK_CONFIG_PATH", dir)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.APIURL != "http://localhost:5000" {
		t.Fatalf("api url = %q", cfg.APIURL)
	}
	if cfg.Timeout != 0 {
		t.Fatalf("timeout = %s", cfg.Timeout)
	}
	if len(cfg.Diseases) != 4 || cfg.Diseases[0] != "Dengue" || cfg.Diseases[3] != "Malaria" {
		t.Fatalf("diseases = %v", cfg.Diseases)
	}
	if cfg.Downloads != filepath.Join(dir, "Downloads") {
		t.Fatalf("downloads = %q", cfg.Downloads)
	}
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("HOME", dir)
	t.Setenv("OUTBREAK_CONFIG_PATH", dir)
	yaml := "api:\n  url: http://backend:8080\n  timeout: 15s\ndiseases:\n  - Dengue\n  - Cholera\n"
	if err := os.WriteFile(filepath.Join(dir, ".outbreak.yaml"), []byte(yaml), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("OUTBREAK_DOWNLOADS", "~/exports")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.APIURL != "http://backend:8080" || cfg.Timeout != 15*time.Second {
		t.Fatalf("api = %q %s", cfg.APIURL, cfg.Timeout)
	}
	if len(cfg.Diseases) != 2 || cfg.Diseases[1] != "Cholera" {
		t.Fatalf("diseases = %v", cfg.Diseases)
	}
	if cfg.Downloads != filepath.Join(dir, "exports") {
		t.Fatalf("downloads = %q", cfg.Downloads)
	}
}

func TestDiseasesFromCommaList(t *testing.T) {
	got := diseases([]string{"Dengue, Malaria", " "})
	if len(got) != 2 || got[1] != "Malaria" {
		t.Fatalf("diseases = %v", got)
	}
	if got := diseases(nil); len(got) != len(DefaultDiseases) {
		t.Fatalf("empty list = %v, want defaults", got)
	}
}

func TestFileUsed(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("HOME", dir)
	t.Setenv("OUTBREAK_CONFIG_PATH", dir)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.File() != "" {
		t.Fatalf("expected no config file, got %q", cfg.File())
	}

	if err := os.WriteFile(filepath.Join(dir, ".outbreak.yaml"), []byte("downloads: /tmp\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err = Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if filepath.Base(cfg.File()) != ".outbreak.yaml" {
		t.Fatalf("config file = %q", cfg.File())
	}
	if cfg.Client().BaseURL != "http://localhost:5000" {
		t.Fatalf("client base url = %q", cfg.Client().BaseURL)
	}
}
