// Package index turns document text into per-document term-frequency entries.
package index

import (
	"fmt"
	"time"

	"github.com/hokkyo/pdfsearch/internal/extract"
	"github.com/hokkyo/pdfsearch/internal/models"
	"github.com/hokkyo/pdfsearch/internal/tokenizer"
	"go.uber.org/zap"
)

// Frequencies computes the term-frequency mapping for a token sequence.
// The first occurrence of a term inserts 1.0; every repeat adds 1/n where n
// is the total token count, so a term seen k times ends at 1 + (k-1)/n.
// This asymmetric weighting is what every persisted snapshot contains;
// changing it would silently re-rank existing indices. An empty token
// sequence yields an empty map. The returned map is freshly allocated per
// call, never shared scratch state.
func Frequencies(tokens []string) models.TermFrequency {
	freq := make(models.TermFrequency, len(tokens))
	n := float64(len(tokens))
	for _, term := range tokens {
		if _, ok := freq[term]; ok {
			freq[term] += 1.0 / n
		} else {
			freq[term] = 1.0
		}
	}
	return freq
}

// Builder turns file paths into indexed Documents.
type Builder struct {
	extractor *extract.Extractor
	logger    *zap.Logger // optional; when set, logs per-document debug events
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithLogger sets a logger for debug output (document indexed, term counts).
func WithLogger(l *zap.Logger) BuilderOption {
	return func(b *Builder) { b.logger = l }
}

// NewBuilder creates a Builder. extractor may be nil, in which case a
// default Extractor is used.
func NewBuilder(extractor *extract.Extractor, opts ...BuilderOption) *Builder {
	if extractor == nil {
		extractor = extract.NewExtractor()
	}
	b := &Builder{extractor: extractor}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build produces the index entry for one document: the extracted text is
// tokenized, its term frequencies computed, and the mapping wrapped in a
// PerDocumentIndex keyed by the document's own path. LastModified is stamped
// with the construction time. Build never touches the snapshot file.
func (b *Builder) Build(path string) (models.Document, error) {
	text, err := b.extractor.Extract(path)
	if err != nil {
		return models.Document{}, fmt.Errorf("read document %s: %w", path, err)
	}
	freq := Frequencies(tokenizer.Tokenize(text))
	doc := models.Document{
		Data:         models.PerDocumentIndex{path: freq},
		Path:         path,
		LastModified: time.Now(),
	}
	if b.logger != nil {
		b.logger.Debug("document indexed",
			zap.String("path", path),
			zap.Int("distinct_terms", len(freq)),
		)
	}
	return doc, nil
}

// BuildAll builds one Document per path, preserving path order. Any failing
// document aborts the whole build; there is no partial result.
func (b *Builder) BuildAll(paths []string) ([]models.Document, error) {
	docs := make([]models.Document, 0, len(paths))
	for _, p := range paths {
		doc, err := b.Build(p)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}
