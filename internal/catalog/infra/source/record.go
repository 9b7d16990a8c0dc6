// Package source adapts external catalog feeds to catalog products.
//
// The upstream feed comes straight out of a SQL result set, so every column
// may arrive as a JSON string ("12", "3.49") as well as a number. Records are
// decoded leniently and converted one by one; a bad record is skipped rather
// than failing the whole catalog.
package source

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/dwikikusuma/storefront-state/internal/catalog/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// scalar accepts a quoted or bare JSON/YAML scalar and keeps its text.
type scalar string

func (s *scalar) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*s = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		*s = scalar(str)
		return nil
	}
	*s = scalar(b)
	return nil
}

func (s *scalar) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected a scalar", node.Line)
	}
	if node.Tag == "!!null" {
		*s = ""
		return nil
	}
	*s = scalar(node.Value)
	return nil
}

func (s scalar) text() string {
	return strings.TrimSpace(string(s))
}

type record struct {
	ID            scalar   `json:"id" yaml:"id"`
	Name          string   `json:"name" yaml:"name"`
	Description   string   `json:"description" yaml:"description"`
	Category      string   `json:"category" yaml:"category"`
	Price         scalar   `json:"price" yaml:"price"`
	OriginalPrice scalar   `json:"originalPrice" yaml:"originalPrice"`
	DiscountPrice scalar   `json:"discount_price" yaml:"discount_price"`
	Rating        scalar   `json:"rating" yaml:"rating"`
	Reviews       scalar   `json:"reviews" yaml:"reviews"`
	Stock         scalar   `json:"stock" yaml:"stock"`
	Tags          []string `json:"tags" yaml:"tags"`
	Image         string   `json:"image" yaml:"image"`
	IsOrganic     scalar   `json:"isOrganic" yaml:"isOrganic"`
}

var errMissingField = errors.New("missing field")

func (r record) product() (domain.Product, error) {
	id := r.ID.text()
	if id == "" {
		return domain.Product{}, fmt.Errorf("%w: id", errMissingField)
	}
	if r.Price.text() == "" {
		return domain.Product{}, fmt.Errorf("product %s: %w: price", id, errMissingField)
	}

	p := domain.Product{
		ID:          id,
		Name:        strings.TrimSpace(r.Name),
		Description: r.Description,
		Category:    strings.TrimSpace(r.Category),
		Tags:        r.Tags,
		Image:       r.Image,
	}

	var err error
	if p.Price, err = decimal.NewFromString(r.Price.text()); err != nil {
		return domain.Product{}, fmt.Errorf("product %s: price: %w", id, err)
	}
	if p.OriginalPrice, err = optionalDecimal(r.OriginalPrice); err != nil {
		return domain.Product{}, fmt.Errorf("product %s: originalPrice: %w", id, err)
	}

	// discount_price is the sale price; the list price becomes the original
	discount, err := optionalDecimal(r.DiscountPrice)
	if err != nil {
		return domain.Product{}, fmt.Errorf("product %s: discount_price: %w", id, err)
	}
	if discount.IsPositive() && discount.LessThan(p.Price) {
		p.OriginalPrice, p.Price = p.Price, discount
	}

	if v := r.Rating.text(); v != "" {
		if p.Rating, err = strconv.ParseFloat(v, 64); err != nil {
			return domain.Product{}, fmt.Errorf("product %s: rating: %w", id, err)
		}
	}
	if p.Reviews, err = optionalInt(r.Reviews); err != nil {
		return domain.Product{}, fmt.Errorf("product %s: reviews: %w", id, err)
	}
	if p.Stock, err = optionalInt(r.Stock); err != nil {
		return domain.Product{}, fmt.Errorf("product %s: stock: %w", id, err)
	}
	if v := r.IsOrganic.text(); v != "" {
		if p.IsOrganic, err = strconv.ParseBool(v); err != nil {
			return domain.Product{}, fmt.Errorf("product %s: isOrganic: %w", id, err)
		}
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	return p, nil
}

func optionalDecimal(s scalar) (decimal.Decimal, error) {
	if s.text() == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s.text())
}

func optionalInt(s scalar) (int, error) {
	if s.text() == "" {
		return 0, nil
	}
	return strconv.Atoi(s.text())
}

func convert(records []record, log *slog.Logger) []domain.Product {
	out := make([]domain.Product, 0, len(records))
	for i, r := range records {
		p, err := r.product()
		if err != nil {
			log.Warn("catalog record skipped", slog.Int("index", i), slog.Any("err", err))
			continue
		}
		out = append(out, p)
	}
	return out
}
