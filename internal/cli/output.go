// Package cli provides output formatting for pdfsearch results.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/hokkyo/pdfsearch/internal/models"
)

// OutputFormat is the format for search result output.
type OutputFormat string

const (
	// OutputText is human-readable text (default): one "rank: path, score"
	// line per result, ranks starting at 1.
	OutputText OutputFormat = "text"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON OutputFormat = "json"
)

// ParseOutputFormat validates a -output flag value.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch OutputFormat(s) {
	case OutputText, OutputJSON:
		return OutputFormat(s), nil
	default:
		return "", fmt.Errorf("unknown output format %q; use text or json", s)
	}
}

// WriteResults writes a search response to w in the given format.
func WriteResults(w io.Writer, response *models.SearchResponse, format OutputFormat) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(response)
	default:
		for i, r := range response.Results {
			if _, err := fmt.Fprintf(w, "%d: %s, %s\n", i+1, r.Path, FormatScore(r.Score)); err != nil {
				return err
			}
		}
		return nil
	}
}

// FormatScore renders a score in its shortest exact form ("1.5", "0", "1").
func FormatScore(score float64) string {
	return strconv.FormatFloat(score, 'g', -1, 64)
}
