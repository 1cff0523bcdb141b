package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Provider != "anthropic" {
		t.Errorf("Provider = %q", cfg.Provider)
	}
	if cfg.Format != "text" || cfg.FailOn != "none" {
		t.Errorf("Format = %q, FailOn = %q", cfg.Format, cfg.FailOn)
	}
	if cfg.MaxFindings != 50 {
		t.Errorf("MaxFindings = %d", cfg.MaxFindings)
	}
	if !cfg.Cache.Enabled || cfg.Cache.TTLSeconds != 86400 {
		t.Errorf("Cache = %+v", cfg.Cache)
	}
	if !cfg.Privacy.RedactSecrets {
		t.Error("RedactSecrets should default to true")
	}
}

func TestSaveAndLoadFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := Default()
	cfg.Provider = "openai"
	cfg.Model = "gpt-4o"
	cfg.MaxFindings = 7
	if err := Save(cfg); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	loaded, err := LoadFile()
	if err != nil {
		t.Fatalf("LoadFile error: %v", err)
	}
	if loaded.Provider != "openai" || loaded.Model != "gpt-4o" || loaded.MaxFindings != 7 {
		t.Errorf("loaded = %+v", loaded)
	}
}

func TestLoadFile_Missing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cfg, err := LoadFile()
	if err != nil {
		t.Fatalf("LoadFile error for missing file: %v", err)
	}
	if cfg.Provider != "" {
		t.Errorf("missing file should yield zero config, got %+v", cfg)
	}
}

func TestLoadFile_Malformed(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	path := filepath.Join(dir, "ai-pr-reviewer", "config.yaml")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("provider: [not: valid"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestLoad_MergePrecedence(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	fileCfg := Default()
	fileCfg.Provider = "gemini"
	fileCfg.Model = "gemini-pro"
	if err := Save(fileCfg); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	t.Setenv("AIPR_MODEL", "from-env")
	t.Setenv("AIPR_MAX_FINDINGS", "9")

	cfg, err := Load(map[string]string{"model": "from-flag"})
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Provider != "gemini" {
		t.Errorf("Provider = %q, want file value", cfg.Provider)
	}
	if cfg.Model != "from-flag" {
		t.Errorf("Model = %q, flags should beat env and file", cfg.Model)
	}
	if cfg.MaxFindings != 9 {
		t.Errorf("MaxFindings = %d, want env value 9", cfg.MaxFindings)
	}
}

func TestLoad_EnvDebug(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("AIPR_DEBUG", "true")
	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if !cfg.Debug {
		t.Error("AIPR_DEBUG=true should enable debug")
	}
}

func TestSetField(t *testing.T) {
	cfg := Default()

	if err := SetField(&cfg, "provider", "ollama"); err != nil {
		t.Fatalf("SetField error: %v", err)
	}
	if cfg.Provider != "ollama" {
		t.Errorf("Provider = %q", cfg.Provider)
	}

	if err := SetField(&cfg, "maxFindings", "12"); err != nil {
		t.Fatalf("SetField error: %v", err)
	}
	if cfg.MaxFindings != 12 {
		t.Errorf("MaxFindings = %d", cfg.MaxFindings)
	}

	if err := SetField(&cfg, "maxFindings", "abc"); err == nil {
		t.Error("expected error for non-integer maxFindings")
	}
	if err := SetField(&cfg, "nonsense", "x"); err == nil {
		t.Error("expected error for unknown key")
	}
}
