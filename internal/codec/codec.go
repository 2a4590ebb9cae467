// Package codec reads and writes graph data documents.
package codec

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"hanzimap/internal/domain"
)

// ErrUnsupportedFormat is returned for file extensions no codec handles
var ErrUnsupportedFormat = errors.New("unsupported document format")

// Importer interface for importing graph data from various formats
type Importer interface {
	Parse(r io.Reader) (*domain.Document, error)
	Format() string
}

// Exporter interface for exporting graph data to various formats
type Exporter interface {
	Export(doc *domain.Document, w io.Writer) error
	Format() string
}

// Codec both imports and exports
type Codec interface {
	Importer
	Exporter
}

// ForFormat returns the codec registered for a format name ("json", "yaml")
func ForFormat(format string) (Codec, error) {
	switch strings.ToLower(format) {
	case "json":
		return NewJSONCodec(), nil
	case "yaml", "yml":
		return NewYAMLCodec(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// ForPath picks a codec from a file name or URL path extension.
// Paths without an extension are treated as JSON.
func ForPath(path string) (Codec, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return NewJSONCodec(), nil
	}
	return ForFormat(ext)
}
