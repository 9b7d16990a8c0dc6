package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/dwikikusuma/storefront-state/internal/catalog/domain"
	"github.com/dwikikusuma/storefront-state/internal/eventbus"
	"github.com/dwikikusuma/storefront-state/internal/events"
	"github.com/dwikikusuma/storefront-state/internal/notify"
	"github.com/dwikikusuma/storefront-state/pkg/logger"
)

var (
	ErrNotFound    = errors.New("product not found")
	ErrUnavailable = errors.New("catalog unavailable")
)

const (
	DefaultTimeout = 10 * time.Second

	featuredMinRating = 4.5
	featuredLimit     = 8
	relatedLimit      = 4
	suggestLimit      = 5
)

// Service is the in-memory product mirror. It is never persisted and starts
// empty; reads are served from whatever the last successful Load produced.
type Service struct {
	source   Source
	exec     Executor
	bus      *eventbus.Bus
	notifier *notify.Notifier
	log      *slog.Logger
	timeout  time.Duration

	products []domain.Product
	byID     map[string]int
	loaded   bool
}

func NewService(source Source, exec Executor, bus *eventbus.Bus, notifier *notify.Notifier, log *slog.Logger, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Service{
		source:   source,
		exec:     exec,
		bus:      bus,
		notifier: notifier,
		log:      logger.OrDiscard(log).With("component", "catalog"),
		timeout:  timeout,
		byID:     map[string]int{},
	}
}

// Load fetches the catalog and swaps it in. The fetch runs on the calling
// goroutine; only the swap and the resulting events go through the executor.
// A failed fetch leaves the current products untouched.
func (s *Service) Load(ctx context.Context) error {
	fetchCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	started := time.Now()
	products, err := s.source.Fetch(fetchCtx)
	if err != nil {
		s.log.Error("catalog fetch failed", slog.Any("err", err), slog.Duration("elapsed", time.Since(started)))
		s.exec.Do(func() {
			s.notifier.Error(ctx, "Failed to load products")
		})
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	s.exec.Do(func() {
		s.Replace(products)
		eventbus.Publish(ctx, s.bus, events.ProductsLoadedTopic, events.ProductsLoaded{Products: s.Products()})
	})
	s.log.Info("catalog loaded", slog.Int("products", len(products)), slog.Duration("elapsed", time.Since(started)))
	return nil
}

// Replace installs a new product list. Later duplicates of an id are dropped.
func (s *Service) Replace(products []domain.Product) {
	list := make([]domain.Product, 0, len(products))
	byID := make(map[string]int, len(products))
	for _, p := range products {
		if _, dup := byID[p.ID]; dup {
			s.log.Warn("duplicate product id dropped", slog.String("product_id", p.ID))
			continue
		}
		byID[p.ID] = len(list)
		list = append(list, p)
	}
	s.products, s.byID, s.loaded = list, byID, true
}

func (s *Service) Loaded() bool {
	return s.loaded
}

func (s *Service) Products() []domain.Product {
	out := make([]domain.Product, len(s.products))
	copy(out, s.products)
	return out
}

func (s *Service) Lookup(id string) (domain.Product, bool) {
	i, ok := s.byID[strings.TrimSpace(id)]
	if !ok {
		return domain.Product{}, false
	}
	return s.products[i], true
}

func (s *Service) GetProduct(id string) (domain.Product, error) {
	p, ok := s.Lookup(id)
	if !ok {
		return domain.Product{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return p, nil
}

// Featured lists the best rated products, highest first.
func (s *Service) Featured(limit int) []domain.Product {
	if limit <= 0 {
		limit = featuredLimit
	}
	var out []domain.Product
	for _, p := range s.products {
		if p.Rating >= featuredMinRating {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Rating > out[j].Rating })
	return head(out, limit)
}

// Related lists other products from the same category as id.
func (s *Service) Related(id string, limit int) []domain.Product {
	if limit <= 0 {
		limit = relatedLimit
	}
	p, ok := s.Lookup(id)
	if !ok {
		return []domain.Product{}
	}
	var out []domain.Product
	for _, other := range s.products {
		if other.Category == p.Category && other.ID != p.ID {
			out = append(out, other)
		}
	}
	return head(out, limit)
}

// Suggest matches query against name, category and tags, ignoring case.
func (s *Service) Suggest(query string, limit int) []domain.Product {
	if limit <= 0 {
		limit = suggestLimit
	}
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return []domain.Product{}
	}

	var out []domain.Product
	for _, p := range s.products {
		if matches(p, q) {
			out = append(out, p)
			if len(out) == limit {
				break
			}
		}
	}
	return head(out, limit)
}

func matches(p domain.Product, q string) bool {
	if strings.Contains(strings.ToLower(p.Name), q) || strings.Contains(strings.ToLower(p.Category), q) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

func head(list []domain.Product, n int) []domain.Product {
	if list == nil {
		return []domain.Product{}
	}
	if len(list) > n {
		return list[:n]
	}
	return list
}
