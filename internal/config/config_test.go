package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/litescript/ls-starfield/internal/astro"
	"github.com/litescript/ls-starfield/internal/state"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "starfield.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Source.Kind != SourceBuiltin {
		t.Errorf("source kind = %q, want builtin", cfg.Source.Kind)
	}
	if cfg.Width != 800 || cfg.Height != 600 {
		t.Errorf("size = %dx%d, want 800x600", cfg.Width, cfg.Height)
	}
}

func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, `
profile: toggle
width: 1024
source:
  kind: neo4j
  url: http://graph:7474
  timeout: 5s
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Profile != "toggle" || cfg.Width != 1024 {
		t.Errorf("profile/width = %s/%d", cfg.Profile, cfg.Width)
	}
	if cfg.Height != DefaultHeight {
		t.Errorf("height = %d, want default %d", cfg.Height, DefaultHeight)
	}
	if cfg.Source.Kind != SourceNeo4j || cfg.Source.URL != "http://graph:7474" {
		t.Errorf("source = %+v", cfg.Source)
	}
	if cfg.Source.Database != DefaultDatabase {
		t.Errorf("database = %q, want default", cfg.Source.Database)
	}
	if cfg.Source.Timeout != 5*time.Second {
		t.Errorf("timeout = %s, want 5s", cfg.Source.Timeout)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeFile(t, "profile: toggle\nsource:\n  kind: csv\n  path: a.csv\n")
	t.Setenv("LS_STARFIELD_PROFILE", "fisheye")
	t.Setenv("LS_STARFIELD_SOURCE_PATH", "b.csv")
	t.Setenv("LS_STARFIELD_MAX_SCALE", "2000")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Profile != "fisheye" {
		t.Errorf("profile = %q, want fisheye", cfg.Profile)
	}
	if cfg.Source.Kind != SourceCSV || cfg.Source.Path != "b.csv" {
		t.Errorf("source = %+v", cfg.Source)
	}
	if cfg.MaxScale != 2000 {
		t.Errorf("max scale = %v, want 2000", cfg.MaxScale)
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing file should fail")
	}
	if _, err := Load(writeFile(t, "width: [1, 2]\n")); err == nil {
		t.Error("malformed yaml should fail")
	}
	t.Setenv("LS_STARFIELD_WIDTH", "wide")
	if _, err := Load(""); err == nil {
		t.Error("non-numeric env width should fail")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"unknown profile", func(c *Config) { c.Profile = "rainbow" }, "unknown profile"},
		{"bad mode", func(c *Config) { c.Mode = "cubic" }, "cubic"},
		{"bad size", func(c *Config) { c.Width = 0 }, "invalid size"},
		{"negative scale", func(c *Config) { c.Scale = -1 }, "negative scale"},
		{"inverted bounds", func(c *Config) { c.MinScale, c.MaxScale = 10, 5 }, "exceeds"},
		{"unknown source", func(c *Config) { c.Source.Kind = "ftp" }, "unknown source"},
		{"csv without path", func(c *Config) { c.Source.Kind = SourceCSV }, "needs a path"},
		{"sqlite without path", func(c *Config) { c.Source.Kind = SourceSQLite }, "needs a path"},
		{"neo4j without url", func(c *Config) { c.Source.Kind = SourceNeo4j; c.Source.URL = "" }, "needs a url"},
		{"negative timeout", func(c *Config) { c.Source.Kind = SourceNeo4j; c.Source.Timeout = -time.Second }, "negative timeout"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q should mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestResolveProfile(t *testing.T) {
	cfg := Default()
	cfg.Profile = state.ProfileCycle
	cfg.Mode = "external"
	cfg.Scale = 300
	cfg.MinScale = 100

	p, err := cfg.ResolveProfile()
	if err != nil {
		t.Fatalf("ResolveProfile: %v", err)
	}
	if p.Modes[0] != astro.SphericalExternal || len(p.Modes) != 3 {
		t.Errorf("modes = %v, want external first of 3", p.Modes)
	}
	if p.Modes[1] != astro.FishEye {
		t.Errorf("cycle order should wrap to fish eye, got %v", p.Modes[1])
	}
	if p.InitialScale != 300 || p.MinScale != 100 {
		t.Errorf("scale settings = %v/%v", p.InitialScale, p.MinScale)
	}

	cfg = Default()
	cfg.Profile = state.ProfileFishEye
	cfg.Mode = "spherical"
	if _, err := cfg.ResolveProfile(); err == nil {
		t.Error("fisheye profile cannot start in spherical mode")
	}
}
