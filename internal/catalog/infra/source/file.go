package source

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/dwikikusuma/storefront-state/internal/catalog/app"
	"github.com/dwikikusuma/storefront-state/internal/catalog/domain"
	"github.com/dwikikusuma/storefront-state/pkg/logger"
	"gopkg.in/yaml.v3"
)

// FileSource reads a seed catalog from a YAML file. A JSON array is valid
// YAML, so an exported feed can be used as is.
type FileSource struct {
	path string
	log  *slog.Logger
}

var _ app.Source = (*FileSource)(nil)

func NewFileSource(path string, log *slog.Logger) *FileSource {
	return &FileSource{
		path: path,
		log:  logger.OrDiscard(log).With("component", "catalog.file"),
	}
}

func (s *FileSource) Fetch(ctx context.Context) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", s.path, err)
	}

	var records []record
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode catalog %s: %w", s.path, err)
	}
	return convert(records, s.log), nil
}
