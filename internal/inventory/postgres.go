package inventory

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rotisserie/eris"

	"github.com/soletrack/soletrack/internal/db"
)

// PostgresStore implements Store over a pgx pool.
type PostgresStore struct {
	pool db.Pool
}

// NewPostgres wraps an existing pool. The caller owns connection setup.
func NewPostgres(pool db.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS sneakers (
	id             TEXT PRIMARY KEY,
	sku            TEXT,
	brand          TEXT NOT NULL,
	model          TEXT NOT NULL,
	size           TEXT NOT NULL,
	category       TEXT NOT NULL DEFAULT 'Men''s',
	colorway       TEXT NOT NULL,
	retail_price   DOUBLE PRECISION,
	release_date   TEXT,
	purchase_price DOUBLE PRECISION NOT NULL,
	purchase_date  TEXT NOT NULL,
	condition      TEXT NOT NULL DEFAULT 'New',
	description    TEXT NOT NULL DEFAULT '',
	notes          TEXT NOT NULL DEFAULT '',
	listing_price  DOUBLE PRECISION NOT NULL DEFAULT 0,
	image_url      TEXT,
	created_at     TIMESTAMPTZ NOT NULL,
	updated_at     TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS sales (
	id              TEXT PRIMARY KEY,
	sneaker_id      TEXT NOT NULL REFERENCES sneakers(id),
	sale_price      DOUBLE PRECISION NOT NULL,
	sale_date       TEXT NOT NULL,
	buyer_info      TEXT NOT NULL DEFAULT '',
	platform        TEXT NOT NULL DEFAULT '',
	tracking_number TEXT NOT NULL DEFAULT '',
	fees            DOUBLE PRECISION NOT NULL DEFAULT 0,
	shipping_cost   DOUBLE PRECISION NOT NULL DEFAULT 0,
	created_at      TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS listings (
	id             TEXT PRIMARY KEY,
	sneaker_id     TEXT NOT NULL REFERENCES sneakers(id),
	platform       TEXT NOT NULL,
	listing_url    TEXT,
	listing_price  DOUBLE PRECISION NOT NULL,
	listing_status TEXT NOT NULL DEFAULT 'Active',
	date_listed    TEXT NOT NULL,
	date_updated   TEXT,
	notes          TEXT NOT NULL DEFAULT '',
	created_at     TIMESTAMPTZ NOT NULL,
	updated_at     TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_sales_sneaker_id ON sales(sneaker_id);
CREATE INDEX IF NOT EXISTS idx_listings_sneaker_id ON listings(sneaker_id);
CREATE INDEX IF NOT EXISTS idx_listings_status ON listings(listing_status);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

const sneakerColumns = `id, sku, brand, model, size, category, colorway,
	retail_price, release_date, purchase_price, purchase_date, condition,
	description, notes, listing_price, image_url, created_at, updated_at`

func (s *PostgresStore) CreateSneaker(ctx context.Context, sn *Sneaker) error {
	now := time.Now().UTC()
	sn.ID = uuid.NewString()
	sn.CreatedAt = now
	sn.UpdatedAt = now
	if sn.Category == "" {
		sn.Category = "Men's"
	}
	if sn.Condition == "" {
		sn.Condition = "New"
	}

	_, err := s.pool.Exec(ctx, `
		INSERT INTO sneakers (`+sneakerColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`,
		sn.ID, nullString(sn.SKU), sn.Brand, sn.Model, sn.Size, sn.Category,
		sn.Colorway, sn.RetailPrice, nullString(sn.ReleaseDate),
		sn.PurchasePrice, sn.PurchaseDate, sn.Condition, sn.Description,
		sn.Notes, sn.ListingPrice, nullString(sn.ImageURL), now, now,
	)
	return eris.Wrap(err, "postgres: create sneaker")
}

func (s *PostgresStore) GetSneaker(ctx context.Context, id string) (*Sneaker, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+sneakerColumns+` FROM sneakers WHERE id = $1`, id)

	sn, err := scanPGSneaker(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, eris.Wrap(err, "postgres: get sneaker")
	}
	return sn, nil
}

func (s *PostgresStore) UpdateSneaker(ctx context.Context, sn *Sneaker) error {
	sn.UpdatedAt = time.Now().UTC()
	tag, err := s.pool.Exec(ctx, `
		UPDATE sneakers SET sku = $1, brand = $2, model = $3, size = $4,
			category = $5, colorway = $6, retail_price = $7, release_date = $8,
			purchase_price = $9, purchase_date = $10, condition = $11,
			description = $12, notes = $13, listing_price = $14,
			image_url = $15, updated_at = $16
		WHERE id = $17`,
		nullString(sn.SKU), sn.Brand, sn.Model, sn.Size, sn.Category,
		sn.Colorway, sn.RetailPrice, nullString(sn.ReleaseDate),
		sn.PurchasePrice, sn.PurchaseDate, sn.Condition, sn.Description,
		sn.Notes, sn.ListingPrice, nullString(sn.ImageURL), sn.UpdatedAt, sn.ID,
	)
	if err != nil {
		return eris.Wrap(err, "postgres: update sneaker")
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) DeleteSneaker(ctx context.Context, id string) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM sales WHERE sneaker_id = $1`, id); err != nil {
		return eris.Wrap(err, "postgres: delete sneaker sales")
	}
	if _, err := s.pool.Exec(ctx, `DELETE FROM listings WHERE sneaker_id = $1`, id); err != nil {
		return eris.Wrap(err, "postgres: delete sneaker listings")
	}
	tag, err := s.pool.Exec(ctx, `DELETE FROM sneakers WHERE id = $1`, id)
	if err != nil {
		return eris.Wrap(err, "postgres: delete sneaker")
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) ListSneakers(ctx context.Context, filter SneakerFilter) ([]Sneaker, error) {
	query := `SELECT ` + sneakerColumns + ` FROM sneakers WHERE 1=1`
	var args []any

	if filter.Search != "" {
		term := "%" + strings.ToLower(filter.Search) + "%"
		args = append(args, term)
		n := placeholder(len(args))
		query += ` AND (LOWER(brand) LIKE ` + n + ` OR LOWER(model) LIKE ` + n + ` OR LOWER(colorway) LIKE ` + n + `)`
	}
	if filter.Condition != "" {
		args = append(args, filter.Condition)
		query += ` AND condition = ` + placeholder(len(args))
	}
	if filter.Brand != "" {
		args = append(args, "%"+strings.ToLower(filter.Brand)+"%")
		query += ` AND LOWER(brand) LIKE ` + placeholder(len(args))
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list sneakers")
	}
	defer rows.Close()

	var out []Sneaker
	for rows.Next() {
		sn, err := scanPGSneaker(rows)
		if err != nil {
			return nil, eris.Wrap(err, "postgres: scan sneaker")
		}
		out = append(out, *sn)
	}
	return out, eris.Wrap(rows.Err(), "postgres: list sneakers rows")
}

func (s *PostgresStore) CreateSale(ctx context.Context, sale *Sale) error {
	now := time.Now().UTC()
	sale.ID = uuid.NewString()
	sale.CreatedAt = now

	_, err := s.pool.Exec(ctx, `
		INSERT INTO sales (id, sneaker_id, sale_price, sale_date, buyer_info,
			platform, tracking_number, fees, shipping_cost, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		sale.ID, sale.SneakerID, sale.SalePrice, sale.SaleDate, sale.BuyerInfo,
		sale.Platform, sale.TrackingNumber, sale.Fees, sale.ShippingCost, now,
	)
	return eris.Wrap(err, "postgres: create sale")
}

func (s *PostgresStore) DeleteSale(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM sales WHERE id = $1`, id)
	if err != nil {
		return eris.Wrap(err, "postgres: delete sale")
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) ListSales(ctx context.Context, filter SaleFilter) ([]Sale, error) {
	query := `
		SELECT id, sneaker_id, sale_price, sale_date, buyer_info, platform,
			tracking_number, fees, shipping_cost, created_at
		FROM sales WHERE 1=1`
	var args []any

	if filter.Platform != "" {
		args = append(args, filter.Platform)
		query += ` AND platform = ` + placeholder(len(args))
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list sales")
	}
	defer rows.Close()

	var out []Sale
	for rows.Next() {
		var sale Sale
		if err := rows.Scan(&sale.ID, &sale.SneakerID, &sale.SalePrice,
			&sale.SaleDate, &sale.BuyerInfo, &sale.Platform,
			&sale.TrackingNumber, &sale.Fees, &sale.ShippingCost,
			&sale.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "postgres: scan sale")
		}
		out = append(out, sale)
	}
	return out, eris.Wrap(rows.Err(), "postgres: list sales rows")
}

func (s *PostgresStore) CreateListing(ctx context.Context, l *Listing) error {
	now := time.Now().UTC()
	l.ID = uuid.NewString()
	l.CreatedAt = now
	l.UpdatedAt = now
	if l.Status == "" {
		l.Status = "Active"
	}

	_, err := s.pool.Exec(ctx, `
		INSERT INTO listings (id, sneaker_id, platform, listing_url,
			listing_price, listing_status, date_listed, date_updated, notes,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		l.ID, l.SneakerID, l.Platform, nullString(l.ListingURL),
		l.ListingPrice, l.Status, l.DateListed, nullString(l.DateUpdated),
		l.Notes, now, now,
	)
	return eris.Wrap(err, "postgres: create listing")
}

func (s *PostgresStore) UpdateListing(ctx context.Context, l *Listing) error {
	l.UpdatedAt = time.Now().UTC()
	tag, err := s.pool.Exec(ctx, `
		UPDATE listings SET platform = $1, listing_url = $2,
			listing_price = $3, listing_status = $4, date_listed = $5,
			date_updated = $6, notes = $7, updated_at = $8
		WHERE id = $9`,
		l.Platform, nullString(l.ListingURL), l.ListingPrice, l.Status,
		l.DateListed, nullString(l.DateUpdated), l.Notes, l.UpdatedAt, l.ID,
	)
	if err != nil {
		return eris.Wrap(err, "postgres: update listing")
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) DeleteListing(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM listings WHERE id = $1`, id)
	if err != nil {
		return eris.Wrap(err, "postgres: delete listing")
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) ListListings(ctx context.Context, filter ListingFilter) ([]Listing, error) {
	query := `
		SELECT id, sneaker_id, platform, listing_url, listing_price,
			listing_status, date_listed, date_updated, notes, created_at, updated_at
		FROM listings WHERE 1=1`
	var args []any

	if filter.SneakerID != "" {
		args = append(args, filter.SneakerID)
		query += ` AND sneaker_id = ` + placeholder(len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += ` AND listing_status = ` + placeholder(len(args))
	}
	if filter.Platform != "" {
		args = append(args, filter.Platform)
		query += ` AND platform = ` + placeholder(len(args))
	}
	query += ` ORDER BY date_listed DESC`

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list listings")
	}
	defer rows.Close()

	var out []Listing
	for rows.Next() {
		var l Listing
		var listingURL, dateUpdated *string
		if err := rows.Scan(&l.ID, &l.SneakerID, &l.Platform, &listingURL,
			&l.ListingPrice, &l.Status, &l.DateListed, &dateUpdated,
			&l.Notes, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, eris.Wrap(err, "postgres: scan listing")
		}
		l.ListingURL = deref(listingURL)
		l.DateUpdated = deref(dateUpdated)
		out = append(out, l)
	}
	return out, eris.Wrap(rows.Err(), "postgres: list listings rows")
}

func scanPGSneaker(row pgx.Row) (*Sneaker, error) {
	var sn Sneaker
	var sku, releaseDate, imageURL *string

	err := row.Scan(&sn.ID, &sku, &sn.Brand, &sn.Model, &sn.Size, &sn.Category,
		&sn.Colorway, &sn.RetailPrice, &releaseDate, &sn.PurchasePrice,
		&sn.PurchaseDate, &sn.Condition, &sn.Description, &sn.Notes,
		&sn.ListingPrice, &imageURL, &sn.CreatedAt, &sn.UpdatedAt)
	if err != nil {
		return nil, err
	}

	sn.SKU = deref(sku)
	sn.ReleaseDate = deref(releaseDate)
	sn.ImageURL = deref(imageURL)
	return &sn, nil
}

func placeholder(n int) string {
	return "$" + strconv.Itoa(n)
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
