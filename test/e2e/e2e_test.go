package e2e

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hokkyo/pdfsearch/internal/cli"
	"github.com/hokkyo/pdfsearch/internal/extract"
	"github.com/hokkyo/pdfsearch/internal/index"
	"github.com/hokkyo/pdfsearch/internal/models"
	"github.com/hokkyo/pdfsearch/internal/scan"
	"github.com/hokkyo/pdfsearch/internal/search"
	"github.com/hokkyo/pdfsearch/internal/snapshot"
)

// writeCorpus lays down the two-document corpus: "one.txt" containing
// "apple banana apple" and "two.txt" containing "banana banana".
func writeCorpus(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "one.txt"), []byte("apple banana apple"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "two.txt"), []byte("banana banana"), 0644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func runQuery(t *testing.T, dir, query string) []models.ScoredResult {
	t.Helper()
	paths, err := scan.Directory(dir, "txt")
	if err != nil {
		t.Fatal(err)
	}
	builder := index.NewBuilder(extract.NewExtractor())
	store := snapshot.NewStore(dir)
	docs, err := store.LoadOrBuild(paths, builder.Build)
	if err != nil {
		t.Fatal(err)
	}
	return search.Search(docs, query)
}

func TestEndToEnd_appleQuery(t *testing.T) {
	dir := writeCorpus(t)
	results := runQuery(t, dir, "apple")

	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	one := filepath.Join(dir, "one.txt")
	two := filepath.Join(dir, "two.txt")
	if results[0].Path != one || results[0].Score != 1.0 {
		t.Errorf("results[0] = %+v, want %s at 1.0", results[0], one)
	}
	if results[1].Path != two || results[1].Score != 0.0 {
		t.Errorf("results[1] = %+v, want %s at 0.0", results[1], two)
	}

	// Persisted raw frequencies must carry the asymmetric weighting.
	store := snapshot.NewStore(dir)
	docs, err := store.Load()
	if err != nil {
		t.Fatal(err)
	}
	if got, want := docs[0].Data[one]["apple"], 1.0+1.0/3.0; got != want {
		t.Errorf("one.txt apple frequency: got %v, want %v", got, want)
	}
	if got := docs[1].Data[two]["banana"]; got != 1.5 {
		t.Errorf("two.txt banana frequency: got %v, want 1.5", got)
	}
}

func TestEndToEnd_textOutput(t *testing.T) {
	dir := writeCorpus(t)
	results := runQuery(t, dir, "apple")

	var buf bytes.Buffer
	resp := &models.SearchResponse{Query: "apple", Results: results, Total: len(results)}
	if err := cli.WriteResults(&buf, resp, cli.OutputText); err != nil {
		t.Fatal(err)
	}
	want := "1: " + filepath.Join(dir, "one.txt") + ", 1\n" +
		"2: " + filepath.Join(dir, "two.txt") + ", 0\n"
	if buf.String() != want {
		t.Errorf("output:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestEndToEnd_secondRunReusesSnapshot(t *testing.T) {
	dir := writeCorpus(t)
	_ = runQuery(t, dir, "apple")

	// Deleting a source file must not change a fresh snapshot's answer:
	// candidates are ignored while the snapshot is fresh.
	if err := os.Remove(filepath.Join(dir, "two.txt")); err != nil {
		t.Fatal(err)
	}
	results := runQuery(t, dir, "banana")
	if len(results) != 2 {
		t.Fatalf("fresh snapshot ignored: got %d results, want 2", len(results))
	}
}

func TestEndToEnd_staleSnapshotRebuilds(t *testing.T) {
	dir := writeCorpus(t)
	store := snapshot.NewStore(dir)

	// Seed a snapshot that is past the one-week threshold and does not
	// match the directory contents at all.
	old := []models.Document{{
		Data:         models.PerDocumentIndex{"ghost.txt": {"phantom": 1.0}},
		Path:         "ghost.txt",
		LastModified: time.Now().Add(-8 * 24 * time.Hour),
	}}
	if err := store.Save(old); err != nil {
		t.Fatal(err)
	}

	results := runQuery(t, dir, "apple")
	for _, r := range results {
		if r.Path == "ghost.txt" {
			t.Fatal("stale snapshot content leaked into results")
		}
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2 rebuilt documents", len(results))
	}
}

func TestEndToEnd_corruptSnapshotIsFatal(t *testing.T) {
	dir := writeCorpus(t)
	store := snapshot.NewStore(dir)
	if err := os.WriteFile(store.Path(), []byte("corrupt{"), 0644); err != nil {
		t.Fatal(err)
	}

	paths, err := scan.Directory(dir, "txt")
	if err != nil {
		t.Fatal(err)
	}
	builder := index.NewBuilder(extract.NewExtractor())
	if _, err := store.LoadOrBuild(paths, builder.Build); err == nil {
		t.Fatal("corrupt snapshot must fail the run, not silently rebuild")
	}
}
