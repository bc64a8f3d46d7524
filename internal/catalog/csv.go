package catalog

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/litescript/ls-starfield/internal/astro"
)

// csvColumns are the required header names, in Star field order.
var csvColumns = [4]string{"magnitude", "x", "y", "z"}

// CSV loads stars from a header-labelled delimited file. Columns may appear
// in any order; extra columns are ignored.
type CSV struct {
	path string
}

// NewCSV creates a CSV source reading path.
func NewCSV(path string) *CSV {
	return &CSV{path: path}
}

// Name implements Source.
func (c *CSV) Name() string {
	return "csv " + c.path
}

// Load implements Source.
func (c *CSV) Load(ctx context.Context) (Result, error) {
	f, err := os.Open(c.path)
	if err != nil {
		return Result{}, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()
	return ReadCSV(ctx, f)
}

// ReadCSV parses a catalog from r.
func ReadCSV(ctx context.Context, r io.Reader) (Result, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Result{}, errors.New("empty catalog file")
		}
		return Result{}, fmt.Errorf("read header: %w", err)
	}
	idx, err := columnIndex(header)
	if err != nil {
		return Result{}, err
	}

	var res Result
	for {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				res.Rejected = append(res.Rejected, RowError{Row: pe.Line, Reason: pe.Err.Error()})
				continue
			}
			return res, fmt.Errorf("read catalog: %w", err)
		}
		if blank(rec) {
			continue
		}
		line, _ := cr.FieldPos(0)
		star, err := csvRow(rec, idx)
		if err != nil {
			res.Rejected = append(res.Rejected, RowError{Row: line, Reason: err.Error()})
			continue
		}
		res.Stars = append(res.Stars, star)
	}
	return res, nil
}

// columnIndex maps each required column to its position in header.
func columnIndex(header []string) ([4]int, error) {
	idx := [4]int{-1, -1, -1, -1}
	for pos, name := range header {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		for i, want := range csvColumns {
			if name == want && idx[i] < 0 {
				idx[i] = pos
			}
		}
	}
	var missing []string
	for i, pos := range idx {
		if pos < 0 {
			missing = append(missing, csvColumns[i])
		}
	}
	if len(missing) > 0 {
		return idx, fmt.Errorf("header is missing column(s) %s", strings.Join(missing, ", "))
	}
	return idx, nil
}

func csvRow(rec []string, idx [4]int) (astro.Star, error) {
	var f [4]float64
	for i, pos := range idx {
		if pos >= len(rec) {
			return astro.Star{}, fmt.Errorf("missing %s", csvColumns[i])
		}
		raw := strings.TrimSpace(rec[pos])
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return astro.Star{}, fmt.Errorf("%s %q is not a number", csvColumns[i], raw)
		}
		f[i] = v
	}
	s := astro.Star{Mag: f[0], X: f[1], Y: f[2], Z: f[3]}
	if err := validStar(s); err != nil {
		return astro.Star{}, err
	}
	return s, nil
}

func blank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
