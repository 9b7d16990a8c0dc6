package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/dwikikusuma/storefront-state/internal/catalog/app"
	"github.com/dwikikusuma/storefront-state/internal/catalog/domain"
	"github.com/dwikikusuma/storefront-state/pkg/logger"
)

const maxBody = 8 << 20

// HTTPSource reads a JSON array of products from the catalog service.
type HTTPSource struct {
	url    string
	client *http.Client
	log    *slog.Logger
}

var _ app.Source = (*HTTPSource)(nil)

func NewHTTPSource(url string, client *http.Client, log *slog.Logger) *HTTPSource {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPSource{
		url:    url,
		client: client,
		log:    logger.OrDiscard(log).With("component", "catalog.http"),
	}
}

func (s *HTTPSource) Fetch(ctx context.Context) ([]domain.Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build catalog request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", s.url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("get %s: unexpected status %d", s.url, resp.StatusCode)
	}

	var records []record
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBody)).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return convert(records, s.log), nil
}
