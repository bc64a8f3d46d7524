package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/litescript/ls-starfield/internal/astro"
)

// DefaultTable is the table read when none is configured.
const DefaultTable = "stars"

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// SQLite loads stars from a table with magnitude, x, y and z columns.
type SQLite struct {
	path  string
	table string
}

// NewSQLite creates a SQLite source. An empty table selects DefaultTable.
func NewSQLite(path, table string) (*SQLite, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	if table == "" {
		table = DefaultTable
	}
	if !identRe.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}
	return &SQLite{path: filepath.Clean(path), table: table}, nil
}

// Name implements Source.
func (s *SQLite) Name() string {
	return fmt.Sprintf("sqlite %s:%s", s.path, s.table)
}

// Query returns the statement run against the database.
func (s *SQLite) Query() string {
	return fmt.Sprintf("SELECT magnitude, x, y, z FROM %s", s.table)
}

// Load implements Source.
func (s *SQLite) Load(ctx context.Context) (Result, error) {
	// Opening a missing path would create an empty database.
	if _, err := os.Stat(s.path); err != nil {
		return Result{}, fmt.Errorf("open sqlite db: %w", err)
	}
	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return Result{}, fmt.Errorf("open sqlite db: %w", err)
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		return Result{}, fmt.Errorf("ping sqlite db: %w", err)
	}

	rows, err := db.QueryContext(ctx, s.Query())
	if err != nil {
		return Result{}, fmt.Errorf("query stars: %w", err)
	}
	defer rows.Close()

	var res Result
	row := 0
	for rows.Next() {
		row++
		var raw [4]any
		if err := rows.Scan(&raw[0], &raw[1], &raw[2], &raw[3]); err != nil {
			return res, fmt.Errorf("scan row %d: %w", row, err)
		}
		star, err := sqliteRow(raw)
		if err != nil {
			res.Rejected = append(res.Rejected, RowError{Row: row, Reason: err.Error()})
			continue
		}
		res.Stars = append(res.Stars, star)
	}
	if err := rows.Err(); err != nil {
		return res, fmt.Errorf("iterate stars: %w", err)
	}
	return res, nil
}

func sqliteRow(raw [4]any) (astro.Star, error) {
	var f [4]float64
	for i, v := range raw {
		n, err := toFloat(v)
		if err != nil {
			return astro.Star{}, fmt.Errorf("%s %v", csvColumns[i], err)
		}
		f[i] = n
	}
	s := astro.Star{Mag: f[0], X: f[1], Y: f[2], Z: f[3]}
	if err := validStar(s); err != nil {
		return astro.Star{}, err
	}
	return s, nil
}

func toFloat(v any) (float64, error) {
	switch t := v.(type) {
	case nil:
		return 0, fmt.Errorf("is NULL")
	case float64:
		return t, nil
	case int64:
		return float64(t), nil
	case string:
		return parseNumeric(t)
	case []byte:
		return parseNumeric(string(t))
	default:
		return 0, fmt.Errorf("has unsupported type %T", v)
	}
}

func parseNumeric(s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", s)
	}
	return f, nil
}
