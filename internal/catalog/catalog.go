// Package catalog resolves style codes against The Sneaker Database and
// normalizes catalog entries for inventory prefill.
package catalog

import (
	"context"
	"html"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/soletrack/soletrack/internal/pricing"
	"github.com/soletrack/soletrack/pkg/sneakerdb"
)

// ErrEmptySKU marks a blank style code, a client error at the API boundary.
var ErrEmptySKU = eris.New("catalog: sku is required")

// Result is a normalized catalog entry.
type Result struct {
	ID                   string   `json:"id,omitempty"`
	SKU                  string   `json:"sku,omitempty"`
	Brand                string   `json:"brand"`
	Model                string   `json:"model"`
	Colorway             string   `json:"colorway,omitempty"`
	RetailPrice          *float64 `json:"retail_price,omitempty"`
	ReleaseDate          string   `json:"release_date,omitempty"`
	ImageURL             string   `json:"image_url,omitempty"`
	Category             string   `json:"category"`
	Description          string   `json:"description,omitempty"`
	EstimatedMarketValue *float64 `json:"estimated_market_value,omitempty"`
	Silhouette           string   `json:"silhouette,omitempty"`
}

// Service looks up catalog data by SKU. A missing credential degrades every
// lookup to "no match", logged once at construction.
type Service struct {
	client   sneakerdb.Client
	disabled bool
}

// NewService creates the catalog lookup service.
func NewService(client sneakerdb.Client, apiKey string) *Service {
	disabled := apiKey == ""
	if disabled {
		zap.L().Warn("catalog: no Sneaker Database API key configured, lookups disabled")
	}
	return &Service{client: client, disabled: disabled}
}

// LookupBySKU resolves a style code to a catalog entry. It tries an exact
// SKU search first, then a free-text search scanned for SKU-bearing fields,
// finally falling back to the first hit. Returns nil when nothing matched.
func (s *Service) LookupBySKU(ctx context.Context, sku string) (*Result, error) {
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return nil, ErrEmptySKU
	}
	if s.disabled {
		return nil, nil
	}

	zap.L().Info("catalog: looking up sku", zap.String("sku", sku))

	results, err := s.client.Search(ctx, sneakerdb.SearchParams{SKU: sku, Limit: 5})
	if err != nil {
		zap.L().Warn("catalog: sku search failed", zap.Error(err))
	} else if len(results) > 0 {
		return s.resolve(ctx, pricing.Payload(results[0])), nil
	}

	results, err = s.client.Search(ctx, sneakerdb.SearchParams{Name: sku, Limit: 5})
	if err != nil {
		zap.L().Warn("catalog: name search failed", zap.Error(err))
		return nil, nil
	}
	if len(results) == 0 {
		return nil, nil
	}

	for _, raw := range results {
		if skuMatches(sku, pricing.Payload(raw)) {
			return s.resolve(ctx, pricing.Payload(raw)), nil
		}
	}
	return s.resolve(ctx, pricing.Payload(results[0])), nil
}

// resolve upgrades a search hit to the full catalog entry when it carries an
// id; a failed detail fetch degrades to the search payload.
func (s *Service) resolve(ctx context.Context, p pricing.Payload) *Result {
	id := p.String("id")
	if id == "" {
		return formatEntry(p)
	}
	detail, err := s.client.GetByID(ctx, id)
	if err != nil {
		zap.L().Warn("catalog: detail fetch failed", zap.String("id", id), zap.Error(err))
		return formatEntry(p)
	}
	if len(detail) == 0 {
		return formatEntry(p)
	}
	return formatEntry(pricing.Payload(detail))
}

// Brands lists the brand names known to the catalog, empty when the service
// is disabled.
func (s *Service) Brands(ctx context.Context) ([]string, error) {
	if s.disabled {
		return nil, nil
	}
	names, err := s.client.Brands(ctx)
	if err != nil {
		return nil, eris.Wrap(err, "catalog: list brands")
	}
	return names, nil
}

// skuFields are the payload keys that may carry a style code.
var skuFields = []string{"sku", "styleId", "style_id", "productId", "product_id", "code"}

// skuMatches reports whether the searched SKU matches any SKU-bearing field,
// ignoring case, dashes and spaces, in either containment direction.
func skuMatches(search string, p pricing.Payload) bool {
	needle := normalizeSKU(search)
	for _, field := range skuFields {
		value := p.String(field)
		if value == "" {
			continue
		}
		candidate := normalizeSKU(value)
		if strings.Contains(candidate, needle) || strings.Contains(needle, candidate) {
			return true
		}
	}
	return false
}

func normalizeSKU(s string) string {
	s = strings.ToUpper(s)
	s = strings.ReplaceAll(s, "-", "")
	return strings.ReplaceAll(s, " ", "")
}

// formatEntry projects a raw catalog payload into a Result.
func formatEntry(p pricing.Payload) *Result {
	r := &Result{
		ID:                   p.String("id"),
		SKU:                  p.String("sku"),
		Brand:                p.String("brand"),
		Model:                p.String("name"),
		Colorway:             p.String("colorway"),
		RetailPrice:          p.Price("retailPrice"),
		ReleaseDate:          pricing.ParseDate(p["releaseDate"]),
		ImageURL:             pricing.ExtractImageURL(p, "image", "imageUrl", "image_url", "thumbnail", "mainPictureUrl", "pictureUrl"),
		Category:             pricing.ParseCategory(p["gender"]),
		EstimatedMarketValue: p.Price("estimatedMarketValue"),
		Silhouette:           p.String("silhouette"),
	}
	if story := p.String("story"); story != "" {
		r.Description = html.UnescapeString(story)
	}
	return r
}
