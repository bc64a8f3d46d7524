// Package catalog loads star catalogs from external sources.
//
// Every source yields stars in source order and reports the rows it had to
// drop instead of failing the whole load.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/litescript/ls-starfield/internal/astro"
	"github.com/litescript/ls-starfield/internal/config"
	"github.com/litescript/ls-starfield/internal/logging"
)

// ErrNoRows is returned when a source yields no usable stars.
var ErrNoRows = errors.New("no stars in catalog")

// Source produces a star catalog.
type Source interface {
	Name() string
	Load(ctx context.Context) (Result, error)
}

// Result contains the outcome of a load.
type Result struct {
	Source   string
	Stars    []astro.Star
	Rejected []RowError
	LoadedAt time.Time
	Duration time.Duration
}

// Catalog returns the accepted stars as a catalog.
func (r Result) Catalog() astro.Catalog {
	return astro.Catalog{Stars: r.Stars}
}

// RowError describes one dropped row. Row is 1-based within the source
// (line number for files, result index for queries).
type RowError struct {
	Row    int
	Reason string
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %s", e.Row, e.Reason)
}

// LoadError wraps a failed load with the source that produced it.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Load runs src and logs the outcome. A panicking source is reported as a
// LoadError.
func Load(ctx context.Context, src Source, log *logging.Logger) (res Result, err error) {
	if log == nil {
		log = logging.Discard()
	}
	name := src.Name()
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			err = &LoadError{Source: name, Err: fmt.Errorf("panic: %v", r)}
			res = Result{Source: name}
		}
		res.Source = name
		res.LoadedAt = start
		res.Duration = time.Since(start)
		if err != nil {
			log.Error("%v", err)
			return
		}
		log.Info("loaded %d stars from %s in %s (%d rejected)",
			len(res.Stars), name, res.Duration.Round(time.Millisecond), len(res.Rejected))
		for i, re := range res.Rejected {
			if i == maxLoggedRejects {
				log.Debug("%d more rejected rows", len(res.Rejected)-i)
				break
			}
			log.Debug("rejected %v", re)
		}
	}()

	res, err = src.Load(ctx)
	if err != nil {
		var le *LoadError
		if !errors.As(err, &le) {
			err = &LoadError{Source: name, Err: err}
		}
		return res, err
	}
	if len(res.Stars) == 0 {
		return res, &LoadError{Source: name, Err: ErrNoRows}
	}
	return res, nil
}

const maxLoggedRejects = 10

// New builds the source described by cfg.
func New(cfg config.SourceConfig) (Source, error) {
	switch strings.ToLower(cfg.Kind) {
	case config.SourceBuiltin, "":
		return Builtin{}, nil
	case config.SourceNeo4j:
		opts := []Neo4jOption{
			WithURL(cfg.URL),
			WithDatabase(cfg.Database),
		}
		if cfg.Timeout > 0 {
			opts = append(opts, WithTimeout(cfg.Timeout))
		}
		if cfg.Statement != "" {
			opts = append(opts, WithStatement(cfg.Statement))
		}
		return NewNeo4j(opts...), nil
	case config.SourceCSV:
		return NewCSV(cfg.Path), nil
	case config.SourceSQLite:
		return NewSQLite(cfg.Path, cfg.Table)
	default:
		return nil, fmt.Errorf("unknown source kind %q", cfg.Kind)
	}
}

// validStar checks that all four values are finite.
func validStar(s astro.Star) error {
	for _, v := range [...]struct {
		name string
		val  float64
	}{{"magnitude", s.Mag}, {"x", s.X}, {"y", s.Y}, {"z", s.Z}} {
		if math.IsNaN(v.val) || math.IsInf(v.val, 0) {
			return fmt.Errorf("%s is not finite", v.name)
		}
	}
	return nil
}
