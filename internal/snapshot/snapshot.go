// Package snapshot persists the full document index to disk and decides when
// a persisted index has gone stale.
package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hokkyo/pdfsearch/internal/models"
)

// DefaultFilename is the snapshot file name inside the indexed directory.
const DefaultFilename = ".data.json"

// DefaultTTL is the staleness threshold. A snapshot whose first entry is
// older than a week forces a full rebuild.
const DefaultTTL = 604800 * time.Second

// ErrEmptySnapshot is returned when a snapshot file parses but holds no
// documents. The first entry's timestamp drives staleness, so an empty
// snapshot cannot be aged and cannot be trusted.
var ErrEmptySnapshot = errors.New("snapshot holds no documents")

// BuildFunc produces the index entry for one candidate path.
type BuildFunc func(path string) (models.Document, error)

// Store owns the on-disk snapshot for one directory. Nothing else reads or
// writes the snapshot file. Concurrent processes against the same directory
// are unsupported; the last writer wins.
type Store struct {
	dir      string
	filename string
	ttl      time.Duration
	logger   *zap.Logger // optional; when set, logs reindex runs
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithTTL overrides the staleness threshold.
func WithTTL(ttl time.Duration) StoreOption {
	return func(s *Store) { s.ttl = ttl }
}

// WithFilename overrides the snapshot file name.
func WithFilename(name string) StoreOption {
	return func(s *Store) { s.filename = name }
}

// WithLogger sets a logger for reindex run events.
func WithLogger(l *zap.Logger) StoreOption {
	return func(s *Store) { s.logger = l }
}

// NewStore creates a Store for the given directory.
func NewStore(dir string, opts ...StoreOption) *Store {
	s := &Store{
		dir:      dir,
		filename: DefaultFilename,
		ttl:      DefaultTTL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the snapshot file location.
func (s *Store) Path() string {
	return filepath.Join(s.dir, s.filename)
}

// LoadOrBuild returns the index for the store's directory. Three outcomes:
//
//   - no snapshot file: every candidate path is built via build, the result
//     persisted and returned;
//   - snapshot present but its first entry older than the TTL: candidates
//     are rebuilt from scratch and the snapshot replaced, ignoring the stale
//     content entirely;
//   - snapshot present and fresh: its content is returned verbatim and the
//     candidate paths are ignored — there is no diffing against the current
//     directory listing.
//
// A snapshot that exists but cannot be parsed is an error, not a rebuild:
// corruption must surface, unlike ordinary aging.
func (s *Store) LoadOrBuild(paths []string, build BuildFunc) ([]models.Document, error) {
	if _, err := os.Stat(s.Path()); err != nil {
		if os.IsNotExist(err) {
			return s.Rebuild(paths, build)
		}
		return nil, fmt.Errorf("stat snapshot: %w", err)
	}
	docs, err := s.Load()
	if err != nil {
		return nil, err
	}
	if age := time.Since(docs[0].LastModified); age > s.ttl {
		if s.logger != nil {
			s.logger.Info("snapshot stale",
				zap.Duration("age", age),
				zap.Duration("ttl", s.ttl),
			)
		}
		return s.Rebuild(paths, build)
	}
	return docs, nil
}

// Rebuild indexes every candidate path in order and replaces the snapshot
// wholesale. The previous snapshot content, if any, does not survive.
func (s *Store) Rebuild(paths []string, build BuildFunc) ([]models.Document, error) {
	runID := uuid.New().String()
	if s.logger != nil {
		s.logger.Info("reindexing",
			zap.String("run_id", runID),
			zap.String("directory", s.dir),
			zap.Int("candidates", len(paths)),
		)
	}
	docs := make([]models.Document, 0, len(paths))
	for _, p := range paths {
		doc, err := build(p)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	if err := s.Save(docs); err != nil {
		return nil, err
	}
	if s.logger != nil {
		s.logger.Info("reindex complete",
			zap.String("run_id", runID),
			zap.Int("documents", len(docs)),
		)
	}
	return docs, nil
}

// Load reads and parses the snapshot file.
func (s *Store) Load() ([]models.Document, error) {
	raw, err := os.ReadFile(s.Path())
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	var docs []models.Document
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil, fmt.Errorf("parse snapshot %s: %w", s.Path(), err)
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("snapshot %s: %w", s.Path(), ErrEmptySnapshot)
	}
	return docs, nil
}

// Save serializes docs and replaces the snapshot file. The write goes to a
// temp file in the same directory and is renamed into place, so a reader
// never observes a torn snapshot.
func (s *Store) Save(docs []models.Document) error {
	data, err := json.MarshalIndent(docs, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	tmp, err := os.CreateTemp(s.dir, s.filename+".tmp-*")
	if err != nil {
		return fmt.Errorf("create snapshot temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close snapshot temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.Path()); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}

// Info describes the on-disk state of a snapshot without loading candidates.
type Info struct {
	Exists     bool    `json:"exists"`
	Path       string  `json:"path"`
	Documents  int     `json:"documents,omitempty"`
	SizeBytes  int64   `json:"size_bytes,omitempty"`
	AgeSeconds float64 `json:"age_seconds,omitempty"`
	Stale      bool    `json:"stale,omitempty"`
}

// Stat reports the snapshot's current state. A missing file yields
// Exists=false with no error; a present but unparseable file is an error.
func (s *Store) Stat() (Info, error) {
	info := Info{Path: s.Path()}
	fi, err := os.Stat(s.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return info, nil
		}
		return info, fmt.Errorf("stat snapshot: %w", err)
	}
	info.Exists = true
	info.SizeBytes = fi.Size()
	docs, err := s.Load()
	if err != nil {
		return info, err
	}
	info.Documents = len(docs)
	age := time.Since(docs[0].LastModified)
	info.AgeSeconds = age.Seconds()
	info.Stale = age > s.ttl
	return info, nil
}
