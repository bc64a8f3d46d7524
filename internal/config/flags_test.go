package config

import (
	"flag"
	"testing"
	"time"
)

func TestFlags_OnlySetFlagsOverride(t *testing.T) {
	path := writeFile(t, "profile: toggle\nwidth: 1024\nsource:\n  kind: csv\n  path: a.csv\n")

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	flags := BindFlags(fs)
	if err := fs.Parse([]string{"-config", path, "-height", "300", "-timeout", "3s"}); err != nil {
		t.Fatal(err)
	}
	if flags.Path() != path {
		t.Errorf("Path() = %q", flags.Path())
	}

	cfg, err := flags.Resolve()
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if cfg.Profile != "toggle" || cfg.Width != 1024 {
		t.Errorf("file values lost: profile %s width %d", cfg.Profile, cfg.Width)
	}
	if cfg.Height != 300 {
		t.Errorf("height = %d, want 300", cfg.Height)
	}
	if cfg.Source.Timeout != 3*time.Second {
		t.Errorf("timeout = %s", cfg.Source.Timeout)
	}
	if cfg.Source.Path != "a.csv" {
		t.Errorf("catalog path = %q", cfg.Source.Path)
	}
}

func TestFlags_Invalid(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	flags := BindFlags(fs)
	if err := fs.Parse([]string{"-source", "sqlite"}); err != nil {
		t.Fatal(err)
	}
	if _, err := flags.Resolve(); err == nil {
		t.Error("sqlite without a catalog path should fail validation")
	}
}
