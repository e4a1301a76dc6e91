// Package search scores and ranks indexed documents against a single query term.
package search

import (
	"math"
	"sort"

	"github.com/hokkyo/pdfsearch/internal/models"
)

// Search ranks docs against a single query term. Raw term-frequency scores
// are collected per document, divided by the first collected raw score (see
// normalizeAgainstFirst), deduplicated by path with the first score winning,
// and sorted by score descending with ties keeping collection order. docs is
// borrowed for the duration of the call and never mutated.
func Search(docs []models.Document, query string) []models.ScoredResult {
	results := normalizeAgainstFirst(collect(docs, query))
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return results
}

// collect produces one raw result per per-document index entry. A document
// that does not contain the query term scores 0. Canonically each document
// holds exactly one entry keyed by its own path; for a non-canonical
// multi-entry index the entries are visited in sorted-key order so the
// output is deterministic.
func collect(docs []models.Document, query string) []models.ScoredResult {
	raw := make([]models.ScoredResult, 0, len(docs))
	for _, doc := range docs {
		if len(doc.Data) == 1 {
			for path, freq := range doc.Data {
				raw = append(raw, models.ScoredResult{Path: path, Score: freq[query]})
			}
			continue
		}
		keys := make([]string, 0, len(doc.Data))
		for path := range doc.Data {
			keys = append(keys, path)
		}
		sort.Strings(keys)
		for _, path := range keys {
			raw = append(raw, models.ScoredResult{Path: path, Score: doc.Data[path][query]})
		}
	}
	return raw
}

// normalizeAgainstFirst divides every raw score by the first raw score and
// keeps the first computed score per path. The divisor is deliberately the
// first document's raw score, not a corpus aggregate: historical snapshots
// were ranked by exactly this rule (it grew out of a dedup over path-only
// equality), and reproducing their ordering matters more than a textbook
// normalization. When the divisor is zero the ratio degenerates to NaN or
// Inf; those become 0 and rank last.
func normalizeAgainstFirst(raw []models.ScoredResult) []models.ScoredResult {
	if len(raw) == 0 {
		return nil
	}
	divisor := raw[0].Score
	seen := make(map[string]struct{}, len(raw))
	out := make([]models.ScoredResult, 0, len(raw))
	for _, r := range raw {
		if _, dup := seen[r.Path]; dup {
			continue
		}
		seen[r.Path] = struct{}{}
		ratio := r.Score / divisor
		if math.IsNaN(ratio) || math.IsInf(ratio, 0) {
			ratio = 0
		}
		out = append(out, models.ScoredResult{Path: r.Path, Score: ratio})
	}
	return out
}
