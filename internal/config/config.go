// Package config loads viewer settings from a YAML file and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/litescript/ls-starfield/internal/astro"
	"github.com/litescript/ls-starfield/internal/state"
)

// Source kinds.
const (
	SourceBuiltin = "builtin"
	SourceNeo4j   = "neo4j"
	SourceCSV     = "csv"
	SourceSQLite  = "sqlite"
)

// Defaults for a fresh configuration.
const (
	DefaultWidth    = 800
	DefaultHeight   = 600
	DefaultNeo4jURL = "http://localhost:7474"
	DefaultDatabase = "milkyway"
	DefaultTable    = "stars"
	DefaultTimeout  = 30 * time.Second
)

// Config holds all viewer settings.
type Config struct {
	Profile  string       `yaml:"profile" env:"LS_STARFIELD_PROFILE"`
	Mode     string       `yaml:"mode" env:"LS_STARFIELD_MODE"`
	Scale    float64      `yaml:"scale" env:"LS_STARFIELD_SCALE"`
	MinScale float64      `yaml:"min_scale" env:"LS_STARFIELD_MIN_SCALE"`
	MaxScale float64      `yaml:"max_scale" env:"LS_STARFIELD_MAX_SCALE"`
	Width    int          `yaml:"width" env:"LS_STARFIELD_WIDTH"`
	Height   int          `yaml:"height" env:"LS_STARFIELD_HEIGHT"`
	LogLevel string       `yaml:"log_level" env:"LS_STARFIELD_LOG_LEVEL"`
	LogFile  string       `yaml:"log_file" env:"LS_STARFIELD_LOG_FILE"`
	Source   SourceConfig `yaml:"source"`
}

// SourceConfig selects and parameterizes the star catalog source.
type SourceConfig struct {
	Kind      string        `yaml:"kind" env:"LS_STARFIELD_SOURCE"`
	URL       string        `yaml:"url" env:"LS_STARFIELD_SOURCE_URL"`
	Database  string        `yaml:"database" env:"LS_STARFIELD_SOURCE_DATABASE"`
	Statement string        `yaml:"statement" env:"LS_STARFIELD_SOURCE_STATEMENT"`
	Path      string        `yaml:"path" env:"LS_STARFIELD_SOURCE_PATH"`
	Table     string        `yaml:"table" env:"LS_STARFIELD_SOURCE_TABLE"`
	Timeout   time.Duration `yaml:"timeout" env:"LS_STARFIELD_SOURCE_TIMEOUT"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Profile:  state.ProfileCycle,
		Width:    DefaultWidth,
		Height:   DefaultHeight,
		LogLevel: "info",
		Source: SourceConfig{
			Kind:     SourceBuiltin,
			URL:      DefaultNeo4jURL,
			Database: DefaultDatabase,
			Table:    DefaultTable,
			Timeout:  DefaultTimeout,
		},
	}
}

// Load returns the defaults overlaid with the YAML file at path (skipped when
// path is empty) and then with LS_STARFIELD_* environment variables.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := ParseEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Validate checks the settings for consistency.
func (c Config) Validate() error {
	var errs []error
	if _, err := state.ProfileByName(c.Profile); err != nil {
		errs = append(errs, err)
	}
	if c.Mode != "" {
		if _, err := astro.ParseMode(c.Mode); err != nil {
			errs = append(errs, err)
		}
	}
	if c.Scale < 0 {
		errs = append(errs, fmt.Errorf("negative scale %g", c.Scale))
	}
	if c.MinScale < 0 || c.MaxScale < 0 {
		errs = append(errs, errors.New("zoom bounds must not be negative"))
	}
	if c.MaxScale > 0 && c.MinScale > c.MaxScale {
		errs = append(errs, fmt.Errorf("min scale %g exceeds max scale %g", c.MinScale, c.MaxScale))
	}
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("invalid size %dx%d", c.Width, c.Height))
	}
	if err := c.Source.Validate(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Validate checks that the source kind is known and has what it needs.
func (s SourceConfig) Validate() error {
	switch strings.ToLower(s.Kind) {
	case SourceBuiltin, "":
		return nil
	case SourceNeo4j:
		if s.URL == "" {
			return errors.New("neo4j source needs a url")
		}
		if s.Database == "" {
			return errors.New("neo4j source needs a database")
		}
	case SourceCSV:
		if s.Path == "" {
			return errors.New("csv source needs a path")
		}
	case SourceSQLite:
		if s.Path == "" {
			return errors.New("sqlite source needs a path")
		}
	default:
		return fmt.Errorf("unknown source kind %q", s.Kind)
	}
	if s.Timeout < 0 {
		return fmt.Errorf("negative timeout %s", s.Timeout)
	}
	return nil
}

// ResolveProfile returns the configured profile with the scale settings
// applied. A mode override becomes the starting mode when the profile
// offers it.
func (c Config) ResolveProfile() (state.Profile, error) {
	p, err := state.ProfileByName(c.Profile)
	if err != nil {
		return p, err
	}
	if c.Scale > 0 {
		p.InitialScale = c.Scale
	}
	p.MinScale, p.MaxScale = c.MinScale, c.MaxScale
	if err := p.Validate(); err != nil {
		return p, err
	}
	if c.Mode == "" {
		return p, nil
	}
	m, err := astro.ParseMode(c.Mode)
	if err != nil {
		return p, err
	}
	for i, pm := range p.Modes {
		if pm == m {
			p.Modes = append(append([]astro.ProjectionMode{}, p.Modes[i:]...), p.Modes[:i]...)
			return p, nil
		}
	}
	return p, fmt.Errorf("profile %s has no %s mode", p.Name, m)
}
