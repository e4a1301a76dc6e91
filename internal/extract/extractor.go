// Package extract provides text extraction from the document formats the indexer accepts.
package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Extractor extracts plain text from document files.
type Extractor struct{}

// NewExtractor returns a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract reads the file at path and returns its full text content as a
// single string. An empty string is a valid result for a document with no
// extractable text (e.g. a scanned PDF); an error means the file could not
// be read or its container is structurally broken.
func (e *Extractor) Extract(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read file: %w", err)
	}
	return e.ExtractBytes(content, strings.ToLower(filepath.Ext(path)))
}

// ExtractBytes extracts text from content based on ext, which should include
// the leading dot (e.g. ".pdf"). Unknown extensions are treated as plain text.
func (e *Extractor) ExtractBytes(content []byte, ext string) (string, error) {
	switch ext {
	case ".pdf":
		return extractPDF(content)
	case ".docx":
		return extractDOCX(content)
	case ".odt", ".rtf":
		return extractODT(content, ext)
	case ".xlsx":
		return extractExcel(content)
	default:
		return extractPlain(content)
	}
}
