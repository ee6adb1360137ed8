package converter

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"

	"github.com/Jay-Jay-D/luis-json-converter/internal/domain"
	"github.com/Jay-Jay-D/luis-json-converter/internal/service/rename"
)

func prettyOptions(indent int) *pretty.Options {
	return &pretty.Options{
		Width:    80,
		Indent:   strings.Repeat(" ", indent),
		SortKeys: false,
	}
}

func renderDocument(doc *domain.Document, indent int) ([]byte, error) {
	raw, err := doc.Encode()
	if err != nil {
		return nil, err
	}
	return pretty.PrettyOptions(raw, prettyOptions(indent)), nil
}

// renderMapping builds the rename report:
//
//	{"mapping": {...}, "conflicts": [...], "summary": {...}}
func renderMapping(report rename.Report, indent int) ([]byte, error) {
	mapping := report.Mapping
	if mapping == nil {
		mapping = rename.Mapping{}
	}
	conflicts := report.Conflicts
	if conflicts == nil {
		conflicts = []rename.Conflict{}
	}

	out := []byte(`{}`)
	for _, field := range []struct {
		path  string
		value any
	}{
		{"mapping", mapping},
		{"conflicts", conflicts},
		{"summary.entities_renamed", report.EntitiesRenamed},
		{"summary.mapping_size", len(mapping)},
		{"summary.references_updated", report.ReferencesUpdated},
	} {
		raw, err := encodeRaw(field.value)
		if err != nil {
			return nil, err
		}
		if out, err = sjson.SetRawBytes(out, field.path, raw); err != nil {
			return nil, err
		}
	}
	return pretty.PrettyOptions(out, prettyOptions(indent)), nil
}

func encodeRaw(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// writeFileAtomic writes data to a temp file next to path and renames it into
// place.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return nil
}
