// Package pricing implements the multi-source pricing aggregation engine:
// source adapters over external market APIs, schema normalization, numeric
// aggregation with a confidence estimate, and a deterministic synthetic
// fallback when no live source answers.
package pricing

import "time"

// Confidence labels how much the aggregated price can be trusted.
type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// LookupRequest identifies a sneaker for one pricing query cycle.
// Brand and Model are required; the rest narrow the search.
type LookupRequest struct {
	Brand    string `json:"brand"`
	Model    string `json:"model"`
	Colorway string `json:"colorway,omitempty"`
	SKU      string `json:"sku,omitempty"`
	Size     string `json:"size,omitempty"`
}

// SourceRecord is the normalized pricing result from a single source.
// Optional decimals are nil when the source did not supply them. When Err is
// non-empty the pricing fields are unusable and the aggregator skips them.
type SourceRecord struct {
	Platform          string             `json:"platform"`
	ProductID         string             `json:"product_id,omitempty"`
	Name              string             `json:"name,omitempty"`
	Brand             string             `json:"brand,omitempty"`
	RetailPrice       *float64           `json:"retail_price,omitempty"`
	MarketPrice       *float64           `json:"market_price,omitempty"`
	LastSale          *float64           `json:"last_sale,omitempty"`
	HighestBid        *float64           `json:"highest_bid,omitempty"`
	ImageURL          string             `json:"image_url,omitempty"`
	SKU               string             `json:"sku,omitempty"`
	Colorway          string             `json:"colorway,omitempty"`
	ReleaseDate       string             `json:"release_date,omitempty"`
	SizesAvailable    []string           `json:"sizes_available,omitempty"`
	PriceBySize       map[string]float64 `json:"price_by_size,omitempty"`
	SizeSpecificPrice *float64           `json:"size_specific_price,omitempty"`
	Note              string             `json:"note,omitempty"`
	Err               string             `json:"error,omitempty"`
}

// PriceRange is the observed min/max over contributed market prices.
type PriceRange struct {
	Min *float64 `json:"min"`
	Max *float64 `json:"max"`
}

// Summary reconciles the per-source records into one market view.
type Summary struct {
	RetailPrice        *float64   `json:"retail_price"`
	CurrentMarketPrice *float64   `json:"current_market_price"`
	PriceRange         PriceRange `json:"price_range"`
	SourcesCount       int        `json:"sources_count"`
	Confidence         Confidence `json:"confidence"`
	Note               string     `json:"note,omitempty"`
}

// Response is the complete result of one lookup. It is a value: constructed
// fresh per request, never persisted, never mutated after return.
type Response struct {
	Brand       string                  `json:"brand"`
	Model       string                  `json:"model"`
	Colorway    string                  `json:"colorway,omitempty"`
	SKU         string                  `json:"sku,omitempty"`
	Size        string                  `json:"size,omitempty"`
	LastUpdated time.Time               `json:"last_updated"`
	Sources     map[string]SourceRecord `json:"sources"`
	Summary     Summary                 `json:"summary"`
	IsDemo      bool                    `json:"is_demo"`
}

func ptr(v float64) *float64 { return &v }
