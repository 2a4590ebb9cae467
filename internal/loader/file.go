package loader

import (
	"context"
	"fmt"
	"os"

	"hanzimap/internal/codec"
	"hanzimap/internal/domain"
)

// FileSource reads a document from disk
type FileSource struct {
	path string
}

// NewFileSource creates a source for a local file
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Path returns the file path
func (s *FileSource) Path() string {
	return s.path
}

// Load parses the file with the codec matching its extension
func (s *FileSource) Load(ctx context.Context) (*domain.Document, error) {
	c, err := codec.ForPath(s.path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	return c.Parse(f)
}

func (s *FileSource) String() string {
	return s.path
}
