package directory

import (
	"context"
	"fmt"
	"os"

	"github.com/olivermillard/mention/internal/types"
)

// FileProvider reads the directory from a JSON file on disk.
type FileProvider struct {
	Path string
}

// NewFileProvider returns a provider for the JSON file at path.
func NewFileProvider(path string) *FileProvider {
	return &FileProvider{Path: path}
}

// FetchDirectory reads and decodes the file.
func (p *FileProvider) FetchDirectory(ctx context.Context) ([]types.DirectoryEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(p.Path)
	if err != nil {
		return nil, fmt.Errorf("read directory file: %w", err)
	}
	return ParseEntries(data)
}
