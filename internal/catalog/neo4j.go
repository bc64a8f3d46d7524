package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/litescript/ls-starfield/internal/astro"
)

const (
	// DefaultNeo4jURL is a local Neo4j HTTP endpoint.
	DefaultNeo4jURL = "http://localhost:7474"

	// DefaultDatabase holds the star graph.
	DefaultDatabase = "milkyway"

	// DefaultStatement selects every star bright enough to draw.
	DefaultStatement = `MATCH (s:Star)
WHERE s.magnitude <= 6.5
RETURN s.magnitude AS magnitude, s.position.x AS x, s.position.y AS y, s.position.z AS z`

	// DefaultTimeout for HTTP requests.
	DefaultTimeout = 30 * time.Second
)

// Neo4j loads stars through the Neo4j transactional HTTP endpoint. The
// statement must return magnitude, x, y, z in that order.
type Neo4j struct {
	client    *http.Client
	url       string
	database  string
	statement string
	timeout   time.Duration
}

// Neo4jOption configures a Neo4j source.
type Neo4jOption func(*Neo4j)

// WithURL sets the server base URL.
func WithURL(url string) Neo4jOption {
	return func(n *Neo4j) {
		n.url = strings.TrimRight(url, "/")
	}
}

// WithDatabase sets the database name.
func WithDatabase(db string) Neo4jOption {
	return func(n *Neo4j) {
		n.database = db
	}
}

// WithStatement replaces the Cypher statement.
func WithStatement(stmt string) Neo4jOption {
	return func(n *Neo4j) {
		n.statement = stmt
	}
}

// WithTimeout sets the HTTP request timeout.
func WithTimeout(d time.Duration) Neo4jOption {
	return func(n *Neo4j) {
		n.timeout = d
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Neo4jOption {
	return func(n *Neo4j) {
		n.client = client
	}
}

// NewNeo4j creates a Neo4j source.
func NewNeo4j(opts ...Neo4jOption) *Neo4j {
	n := &Neo4j{
		url:       DefaultNeo4jURL,
		database:  DefaultDatabase,
		statement: DefaultStatement,
		timeout:   DefaultTimeout,
	}

	for _, opt := range opts {
		opt(n)
	}

	if n.client == nil {
		n.client = &http.Client{
			Timeout: n.timeout,
		}
	}

	return n
}

// Name implements Source.
func (n *Neo4j) Name() string {
	return "neo4j " + n.Endpoint()
}

// Endpoint returns the commit URL requests are sent to.
func (n *Neo4j) Endpoint() string {
	return fmt.Sprintf("%s/db/%s/tx/commit", n.url, n.database)
}

type txStatement struct {
	Statement string `json:"statement"`
}

type txRequest struct {
	Statements []txStatement `json:"statements"`
}

// Load implements Source.
func (n *Neo4j) Load(ctx context.Context) (Result, error) {
	body, err := n.fetchRaw(ctx)
	if err != nil {
		return Result{}, err
	}
	return ParseNeo4j(body)
}

func (n *Neo4j) fetchRaw(ctx context.Context) ([]byte, error) {
	payload, err := json.Marshal(txRequest{Statements: []txStatement{{Statement: n.statement}}})
	if err != nil {
		return nil, fmt.Errorf("encode statement: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.Endpoint(), bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "ls-starfield/1.0")

	resp, err := n.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("query neo4j: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	return body, nil
}

// ParseNeo4j extracts stars from a transactional endpoint response. Rows
// that are not four numbers are rejected; server-side errors fail the load.
func ParseNeo4j(body []byte) (Result, error) {
	if !gjson.ValidBytes(body) {
		return Result{}, errors.New("response is not valid JSON")
	}

	if errs := gjson.GetBytes(body, "errors"); errs.IsArray() && len(errs.Array()) > 0 {
		first := errs.Array()[0]
		return Result{}, fmt.Errorf("neo4j %s: %s",
			first.Get("code").String(), first.Get("message").String())
	}

	data := gjson.GetBytes(body, "results.0.data")
	if !data.IsArray() {
		return Result{}, errors.New("response has no result data")
	}

	var res Result
	for i, item := range data.Array() {
		rowNum := i + 1
		star, err := neo4jRow(item.Get("row"))
		if err != nil {
			res.Rejected = append(res.Rejected, RowError{Row: rowNum, Reason: err.Error()})
			continue
		}
		res.Stars = append(res.Stars, star)
	}
	return res, nil
}

func neo4jRow(row gjson.Result) (astro.Star, error) {
	if !row.IsArray() {
		return astro.Star{}, errors.New("missing row tuple")
	}
	vals := row.Array()
	if len(vals) < 4 {
		return astro.Star{}, fmt.Errorf("want 4 values, got %d", len(vals))
	}
	var f [4]float64
	for i := range f {
		if vals[i].Type != gjson.Number {
			return astro.Star{}, fmt.Errorf("column %d is %s, not a number", i+1, describe(vals[i]))
		}
		f[i] = vals[i].Float()
	}
	s := astro.Star{Mag: f[0], X: f[1], Y: f[2], Z: f[3]}
	if err := validStar(s); err != nil {
		return astro.Star{}, err
	}
	return s, nil
}

func describe(v gjson.Result) string {
	switch v.Type {
	case gjson.Null:
		return "null"
	case gjson.String:
		return fmt.Sprintf("string %q", v.Str)
	case gjson.True, gjson.False:
		return "a boolean"
	default:
		if v.IsArray() {
			return "an array"
		}
		return "an object"
	}
}
