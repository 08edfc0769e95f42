package inventory

import (
	"context"

	"github.com/rotisserie/eris"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = eris.New("inventory: not found")

// SneakerFilter narrows a sneaker listing. Search matches brand, model and
// colorway case-insensitively; the other fields filter exactly (Brand by
// substring, as the UI exposes it).
type SneakerFilter struct {
	Search    string `json:"search,omitempty"`
	Condition string `json:"condition,omitempty"`
	Brand     string `json:"brand,omitempty"`
}

// SaleFilter narrows a sale listing.
type SaleFilter struct {
	Platform string `json:"platform,omitempty"`
}

// ListingFilter narrows a marketplace-listing query.
type ListingFilter struct {
	SneakerID string `json:"sneaker_id,omitempty"`
	Status    string `json:"status,omitempty"`
	Platform  string `json:"platform,omitempty"`
}

// Store defines persistence for the inventory records. Implementations
// assign IDs and timestamps on create.
type Store interface {
	CreateSneaker(ctx context.Context, s *Sneaker) error
	GetSneaker(ctx context.Context, id string) (*Sneaker, error)
	UpdateSneaker(ctx context.Context, s *Sneaker) error
	// DeleteSneaker removes the sneaker and its dependent sales and listings.
	DeleteSneaker(ctx context.Context, id string) error
	ListSneakers(ctx context.Context, filter SneakerFilter) ([]Sneaker, error)

	CreateSale(ctx context.Context, s *Sale) error
	DeleteSale(ctx context.Context, id string) error
	ListSales(ctx context.Context, filter SaleFilter) ([]Sale, error)

	CreateListing(ctx context.Context, l *Listing) error
	UpdateListing(ctx context.Context, l *Listing) error
	DeleteListing(ctx context.Context, id string) error
	ListListings(ctx context.Context, filter ListingFilter) ([]Listing, error)

	Migrate(ctx context.Context) error
	Close() error
}
