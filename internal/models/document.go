// Package models defines the core data structures for indexed documents and search results.
package models

import "time"

// TermFrequency maps a normalized term to its frequency score within one
// document. The first occurrence of a term counts as a full 1.0 and every
// repeat adds 1/n, where n is the document's total token count, so a term
// seen k times scores 1 + (k-1)/n. Existing snapshots encode exactly this
// weighting, so it must not be "corrected" to a conventional count.
type TermFrequency map[string]float64

// PerDocumentIndex maps a document path to that document's term frequencies.
// In the canonical construction flow it holds exactly one entry, keyed by
// the owning document's own path.
type PerDocumentIndex map[string]TermFrequency

// Document is one indexed document as persisted in the snapshot file.
// Documents are replaced wholesale on reindex, never mutated in place.
type Document struct {
	Data         PerDocumentIndex `json:"data"`
	Path         string           `json:"path"`
	LastModified time.Time        `json:"last_modified"`
}
