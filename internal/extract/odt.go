package extract

import (
	"fmt"
	"strings"

	"github.com/lu4p/cat"
)

// extractODT handles OpenDocument text and RTF through lu4p/cat, which
// sniffs the container from the bytes themselves.
func extractODT(content []byte, ext string) (string, error) {
	txt, err := cat.FromBytes(content)
	if err != nil {
		return "", fmt.Errorf("extract %s: %w", strings.TrimPrefix(ext, "."), err)
	}
	return txt, nil
}
