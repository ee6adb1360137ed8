package converter

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Jay-Jay-D/luis-json-converter/internal/domain"
)

// DefaultSuffix is inserted between the input stem and its extension.
const DefaultSuffix = "_clu"

// ValidateInput returns an error wrapping domain.ErrInputNotFound unless path
// is an existing regular file.
func ValidateInput(path string) error {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return fmt.Errorf("%w: %s is not a valid file", domain.ErrInputNotFound, path)
	}
	return nil
}

// EnsureOutputDir creates dir (and parents) if it does not exist.
func EnsureOutputDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir %s: %w", dir, err)
	}
	return nil
}

// OutputPath builds <dir>/<stem><suffix><ext> from the input file name,
// e.g. ("in/model.json", "output", "_clu") -> "output/model_clu.json".
func OutputPath(inputPath, dir, suffix string) string {
	base := filepath.Base(inputPath)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	if stem == "" {
		stem, ext = base, ""
	}
	return filepath.Join(dir, stem+suffix+ext)
}

// MappingPath returns the location of the rename report for outputPath.
func MappingPath(outputPath string) string {
	return strings.TrimSuffix(outputPath, filepath.Ext(outputPath)) + "_mapping.json"
}
