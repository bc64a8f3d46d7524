package config

import (
	"flag"
)

// Flags binds command-line overrides. Only flags given on the command line
// replace file and environment values.
type Flags struct {
	fs   *flag.FlagSet
	path string
	v    Config
}

// BindFlags registers the shared settings on fs.
func BindFlags(fs *flag.FlagSet) *Flags {
	f := &Flags{fs: fs}
	d := Default()

	fs.StringVar(&f.path, "config", "", "YAML config file")
	fs.StringVar(&f.v.Profile, "profile", d.Profile, "Viewer profile (cycle, toggle, fisheye)")
	fs.StringVar(&f.v.Mode, "mode", "", "Starting projection (fisheye, spherical, external)")
	fs.Float64Var(&f.v.Scale, "scale", 0, "Initial zoom scale in pixels")
	fs.Float64Var(&f.v.MinScale, "min-scale", 0, "Lower zoom bound (0 = none)")
	fs.Float64Var(&f.v.MaxScale, "max-scale", 0, "Upper zoom bound (0 = none)")
	fs.IntVar(&f.v.Width, "width", d.Width, "Window or snapshot width")
	fs.IntVar(&f.v.Height, "height", d.Height, "Window or snapshot height")
	fs.StringVar(&f.v.LogLevel, "log-level", d.LogLevel, "Log level (debug, info, warn, error)")
	fs.StringVar(&f.v.LogFile, "log-file", "", "Write logs to this file")
	fs.StringVar(&f.v.Source.Kind, "source", d.Source.Kind, "Catalog source (builtin, neo4j, csv, sqlite)")
	fs.StringVar(&f.v.Source.URL, "source-url", d.Source.URL, "Neo4j base URL")
	fs.StringVar(&f.v.Source.Database, "database", d.Source.Database, "Neo4j database")
	fs.StringVar(&f.v.Source.Statement, "statement", "", "Cypher statement returning magnitude, x, y, z")
	fs.StringVar(&f.v.Source.Path, "catalog", "", "CSV or SQLite catalog file")
	fs.StringVar(&f.v.Source.Table, "table", d.Source.Table, "SQLite table")
	fs.DurationVar(&f.v.Source.Timeout, "timeout", d.Source.Timeout, "Catalog request timeout (e.g., 10s)")
	return f
}

// Path returns the -config value.
func (f *Flags) Path() string {
	return f.path
}

// Apply copies the flags that were set onto cfg.
func (f *Flags) Apply(cfg *Config) {
	setters := map[string]func(){
		"profile":    func() { cfg.Profile = f.v.Profile },
		"mode":       func() { cfg.Mode = f.v.Mode },
		"scale":      func() { cfg.Scale = f.v.Scale },
		"min-scale":  func() { cfg.MinScale = f.v.MinScale },
		"max-scale":  func() { cfg.MaxScale = f.v.MaxScale },
		"width":      func() { cfg.Width = f.v.Width },
		"height":     func() { cfg.Height = f.v.Height },
		"log-level":  func() { cfg.LogLevel = f.v.LogLevel },
		"log-file":   func() { cfg.LogFile = f.v.LogFile },
		"source":     func() { cfg.Source.Kind = f.v.Source.Kind },
		"source-url": func() { cfg.Source.URL = f.v.Source.URL },
		"database":   func() { cfg.Source.Database = f.v.Source.Database },
		"statement":  func() { cfg.Source.Statement = f.v.Source.Statement },
		"catalog":    func() { cfg.Source.Path = f.v.Source.Path },
		"table":      func() { cfg.Source.Table = f.v.Source.Table },
		"timeout":    func() { cfg.Source.Timeout = f.v.Source.Timeout },
	}
	f.fs.Visit(func(fl *flag.Flag) {
		if set, ok := setters[fl.Name]; ok {
			set()
		}
	})
}

// Resolve loads the config file named by -config, then applies set flags
// and validates the result.
func (f *Flags) Resolve() (Config, error) {
	cfg, err := Load(f.path)
	if err != nil {
		return cfg, err
	}
	f.Apply(&cfg)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
