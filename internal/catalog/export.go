package catalog

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/litescript/ls-starfield/internal/astro"
)

// Export is the JSON-serializable representation of a load.
type Export struct {
	Source     string         `json:"source"`
	LoadedAt   time.Time      `json:"loaded_at"`
	DurationMS int64          `json:"duration_ms"`
	Stars      []StarExport   `json:"stars"`
	Rejected   []RejectExport `json:"rejected,omitempty"`
}

// StarExport is a JSON-friendly star.
type StarExport struct {
	Magnitude float64 `json:"magnitude"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Z         float64 `json:"z"`
}

// RejectExport is a JSON-friendly rejected row.
type RejectExport struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

// ExportResult converts a load result to an exportable format.
func ExportResult(res Result) *Export {
	export := &Export{
		Source:     res.Source,
		LoadedAt:   res.LoadedAt,
		DurationMS: res.Duration.Milliseconds(),
		Stars:      make([]StarExport, 0, len(res.Stars)),
	}
	for _, s := range res.Stars {
		export.Stars = append(export.Stars, StarExport{Magnitude: s.Mag, X: s.X, Y: s.Y, Z: s.Z})
	}
	for _, r := range res.Rejected {
		export.Rejected = append(export.Rejected, RejectExport{Row: r.Row, Reason: r.Reason})
	}
	return export
}

// WriteJSON writes the export as JSON to the given writer.
func (e *Export) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(e)
}

// MagnitudeBand counts stars in a one-magnitude bin.
type MagnitudeBand struct {
	Floor int
	Count int
}

// MagnitudeHistogram bins stars by whole magnitude, brightest first.
func MagnitudeHistogram(stars []astro.Star) []MagnitudeBand {
	counts := make(map[int]int)
	for _, s := range stars {
		counts[floorInt(s.Mag)]++
	}
	bands := make([]MagnitudeBand, 0, len(counts))
	for floor, n := range counts {
		bands = append(bands, MagnitudeBand{Floor: floor, Count: n})
	}
	sort.Slice(bands, func(i, j int) bool { return bands[i].Floor < bands[j].Floor })
	return bands
}

func floorInt(v float64) int {
	i := int(v)
	if float64(i) > v {
		i--
	}
	return i
}

// WriteSummary writes a text report of a load: counts, a magnitude
// histogram, and up to maxRejects rejected rows.
func WriteSummary(w io.Writer, res Result, maxRejects int) {
	fmt.Fprintf(w, "Catalog %s @ %s\n", res.Source, res.LoadedAt.Format(time.RFC3339))
	fmt.Fprintln(w, strings.Repeat("─", 60))
	fmt.Fprintf(w, "Accepted: %d  Rejected: %d  Load time: %s\n",
		len(res.Stars), len(res.Rejected), res.Duration.Round(time.Millisecond))

	if len(res.Stars) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "%-10s %8s\n", "Magnitude", "Stars")
		fmt.Fprintln(w, strings.Repeat("─", 19))
		visible := 0
		for _, b := range MagnitudeHistogram(res.Stars) {
			fmt.Fprintf(w, "%+3d..%+3d  %8d\n", b.Floor, b.Floor+1, b.Count)
		}
		for _, s := range res.Stars {
			if s.Mag < astro.FaintLimit {
				visible++
			}
		}
		fmt.Fprintf(w, "\nBrighter than %.1f: %d\n", astro.FaintLimit, visible)
	}

	if len(res.Rejected) == 0 {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Rejected rows:")
	for i, r := range res.Rejected {
		if i == maxRejects {
			fmt.Fprintf(w, "  ... %d more\n", len(res.Rejected)-i)
			break
		}
		fmt.Fprintf(w, "  %v\n", r)
	}
}
