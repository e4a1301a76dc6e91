package extract

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// docxDocumentXMLPath is the main document body inside a .docx zip.
const docxDocumentXMLPath = "word/document.xml"

// wtTag matches <w:t> text nodes regardless of run or paragraph attributes,
// so content stays searchable for real-world files like <w:p w:rsidR="...">.
var wtTag = regexp.MustCompile(`<w:t[^>]*>([^<]*)</w:t>`)

// extractDOCX pulls the text nodes out of word/document.xml in the OOXML zip.
func extractDOCX(content []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("extract DOCX: not a zip: %w", err)
	}
	for _, f := range zr.File {
		if f.Name != docxDocumentXMLPath {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", fmt.Errorf("extract DOCX: open %s: %w", f.Name, err)
		}
		docXML, err := io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			return "", fmt.Errorf("extract DOCX: read %s: %w", f.Name, err)
		}
		parts := wtTag.FindAllStringSubmatch(string(docXML), -1)
		texts := make([]string, 0, len(parts))
		for _, p := range parts {
			texts = append(texts, strings.TrimSpace(p[1]))
		}
		return strings.TrimSpace(strings.Join(texts, " ")), nil
	}
	return "", fmt.Errorf("extract DOCX: %s not found", docxDocumentXMLPath)
}
