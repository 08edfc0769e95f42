// Package inventory holds the owned records of the resale business
// (sneakers, sales and marketplace listings), their persistence interface,
// and the profit analytics computed over them.
package inventory

import (
	"strings"
	"time"
)

// Sneaker is one pair in inventory.
type Sneaker struct {
	ID            string    `json:"id"`
	SKU           string    `json:"sku,omitempty"`
	Brand         string    `json:"brand"`
	Model         string    `json:"model"`
	Size          string    `json:"size"`
	Category      string    `json:"category"`
	Colorway      string    `json:"colorway"`
	RetailPrice   *float64  `json:"retail_price,omitempty"`
	ReleaseDate   string    `json:"release_date,omitempty"`
	PurchasePrice float64   `json:"purchase_price"`
	PurchaseDate  string    `json:"purchase_date"`
	Condition     string    `json:"condition"`
	Description   string    `json:"description,omitempty"`
	Notes         string    `json:"notes,omitempty"`
	ListingPrice  float64   `json:"listing_price"`
	ImageURL      string    `json:"image_url,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Sale records one completed sale of a sneaker.
type Sale struct {
	ID             string    `json:"id"`
	SneakerID      string    `json:"sneaker_id"`
	SalePrice      float64   `json:"sale_price"`
	SaleDate       string    `json:"sale_date"`
	BuyerInfo      string    `json:"buyer_info,omitempty"`
	Platform       string    `json:"platform,omitempty"`
	TrackingNumber string    `json:"tracking_number,omitempty"`
	Fees           float64   `json:"fees"`
	ShippingCost   float64   `json:"shipping_cost"`
	CreatedAt      time.Time `json:"created_at"`
}

// Profit is the sale price less the purchase price, fees and shipping.
func (s Sale) Profit(purchasePrice float64) float64 {
	return s.SalePrice - purchasePrice - s.Fees - s.ShippingCost
}

// DaysToSale is the number of days between purchase and sale, or 0 when
// either date is unparseable.
func (s Sale) DaysToSale(purchaseDate string) int {
	pd, err := parseRecordDate(purchaseDate)
	if err != nil {
		return 0
	}
	sd, err := parseRecordDate(s.SaleDate)
	if err != nil {
		return 0
	}
	return int(sd.Sub(pd).Hours() / 24)
}

// Listing is an active or historical marketplace listing for a sneaker.
type Listing struct {
	ID           string    `json:"id"`
	SneakerID    string    `json:"sneaker_id"`
	Platform     string    `json:"platform"`
	ListingURL   string    `json:"listing_url,omitempty"`
	ListingPrice float64   `json:"listing_price"`
	Status       string    `json:"listing_status"`
	DateListed   string    `json:"date_listed"`
	DateUpdated  string    `json:"date_updated,omitempty"`
	Notes        string    `json:"notes,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// IsActive reports whether the listing is currently live.
func (l Listing) IsActive() bool {
	return strings.EqualFold(l.Status, "active")
}

// parseRecordDate accepts the date shapes the records carry: bare dates,
// RFC 3339 timestamps, and ISO timestamps without a zone.
func parseRecordDate(s string) (time.Time, error) {
	s = strings.TrimSuffix(strings.TrimSpace(s), "Z")
	for _, layout := range []string{"2006-01-02T15:04:05", "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Parse(time.RFC3339, s)
}
