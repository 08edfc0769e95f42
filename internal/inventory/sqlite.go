package inventory

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS sneakers (
	id             TEXT PRIMARY KEY,
	sku            TEXT,
	brand          TEXT NOT NULL,
	model          TEXT NOT NULL,
	size           TEXT NOT NULL,
	category       TEXT NOT NULL DEFAULT 'Men''s',
	colorway       TEXT NOT NULL,
	retail_price   REAL,
	release_date   TEXT,
	purchase_price REAL NOT NULL,
	purchase_date  TEXT NOT NULL,
	condition      TEXT NOT NULL DEFAULT 'New',
	description    TEXT NOT NULL DEFAULT '',
	notes          TEXT NOT NULL DEFAULT '',
	listing_price  REAL NOT NULL DEFAULT 0,
	image_url      TEXT,
	created_at     TEXT NOT NULL,
	updated_at     TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS sales (
	id              TEXT PRIMARY KEY,
	sneaker_id      TEXT NOT NULL REFERENCES sneakers(id),
	sale_price      REAL NOT NULL,
	sale_date       TEXT NOT NULL,
	buyer_info      TEXT NOT NULL DEFAULT '',
	platform        TEXT NOT NULL DEFAULT '',
	tracking_number TEXT NOT NULL DEFAULT '',
	fees            REAL NOT NULL DEFAULT 0,
	shipping_cost   REAL NOT NULL DEFAULT 0,
	created_at      TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS listings (
	id             TEXT PRIMARY KEY,
	sneaker_id     TEXT NOT NULL REFERENCES sneakers(id),
	platform       TEXT NOT NULL,
	listing_url    TEXT,
	listing_price  REAL NOT NULL,
	listing_status TEXT NOT NULL DEFAULT 'Active',
	date_listed    TEXT NOT NULL,
	date_updated   TEXT,
	notes          TEXT NOT NULL DEFAULT '',
	created_at     TEXT NOT NULL,
	updated_at     TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_sales_sneaker_id ON sales(sneaker_id);
CREATE INDEX IF NOT EXISTS idx_listings_sneaker_id ON listings(sneaker_id);
CREATE INDEX IF NOT EXISTS idx_listings_status ON listings(listing_status);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) CreateSneaker(ctx context.Context, sn *Sneaker) error {
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

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sneakers (id, sku, brand, model, size, category, colorway,
			retail_price, release_date, purchase_price, purchase_date,
			condition, description, notes, listing_price, image_url,
			created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sn.ID, sn.SKU, sn.Brand, sn.Model, sn.Size, sn.Category, sn.Colorway,
		nullFloat(sn.RetailPrice), sn.ReleaseDate, sn.PurchasePrice, sn.PurchaseDate,
		sn.Condition, sn.Description, sn.Notes, sn.ListingPrice, sn.ImageURL,
		formatTime(now), formatTime(now),
	)
	return eris.Wrap(err, "sqlite: create sneaker")
}

func (s *SQLiteStore) GetSneaker(ctx context.Context, id string) (*Sneaker, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, sku, brand, model, size, category, colorway, retail_price,
			release_date, purchase_price, purchase_date, condition, description,
			notes, listing_price, image_url, created_at, updated_at
		FROM sneakers WHERE id = ?`, id)

	sn, err := scanSneaker(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: get sneaker")
	}
	return sn, nil
}

func (s *SQLiteStore) UpdateSneaker(ctx context.Context, sn *Sneaker) error {
	sn.UpdatedAt = time.Now().UTC()
	res, err := s.db.ExecContext(ctx, `
		UPDATE sneakers SET sku = ?, brand = ?, model = ?, size = ?,
			category = ?, colorway = ?, retail_price = ?, release_date = ?,
			purchase_price = ?, purchase_date = ?, condition = ?,
			description = ?, notes = ?, listing_price = ?, image_url = ?,
			updated_at = ?
		WHERE id = ?`,
		sn.SKU, sn.Brand, sn.Model, sn.Size, sn.Category, sn.Colorway,
		nullFloat(sn.RetailPrice), sn.ReleaseDate, sn.PurchasePrice, sn.PurchaseDate,
		sn.Condition, sn.Description, sn.Notes, sn.ListingPrice, sn.ImageURL,
		formatTime(sn.UpdatedAt), sn.ID,
	)
	if err != nil {
		return eris.Wrap(err, "sqlite: update sneaker")
	}
	return checkAffected(res)
}

func (s *SQLiteStore) DeleteSneaker(ctx context.Context, id string) error {
	// Dependent records go first to satisfy the foreign keys.
	if _, err := s.db.ExecContext(ctx, `DELETE FROM sales WHERE sneaker_id = ?`, id); err != nil {
		return eris.Wrap(err, "sqlite: delete sneaker sales")
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM listings WHERE sneaker_id = ?`, id); err != nil {
		return eris.Wrap(err, "sqlite: delete sneaker listings")
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM sneakers WHERE id = ?`, id)
	if err != nil {
		return eris.Wrap(err, "sqlite: delete sneaker")
	}
	return checkAffected(res)
}

func (s *SQLiteStore) ListSneakers(ctx context.Context, filter SneakerFilter) ([]Sneaker, error) {
	query := `
		SELECT id, sku, brand, model, size, category, colorway, retail_price,
			release_date, purchase_price, purchase_date, condition, description,
			notes, listing_price, image_url, created_at, updated_at
		FROM sneakers WHERE 1=1`
	var args []any

	if filter.Search != "" {
		term := "%" + strings.ToLower(filter.Search) + "%"
		query += ` AND (LOWER(brand) LIKE ? OR LOWER(model) LIKE ? OR LOWER(colorway) LIKE ?)`
		args = append(args, term, term, term)
	}
	if filter.Condition != "" {
		query += ` AND condition = ?`
		args = append(args, filter.Condition)
	}
	if filter.Brand != "" {
		query += ` AND LOWER(brand) LIKE ?`
		args = append(args, "%"+strings.ToLower(filter.Brand)+"%")
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list sneakers")
	}
	defer rows.Close()

	var out []Sneaker
	for rows.Next() {
		sn, err := scanSneaker(rows)
		if err != nil {
			return nil, eris.Wrap(err, "sqlite: scan sneaker")
		}
		out = append(out, *sn)
	}
	return out, eris.Wrap(rows.Err(), "sqlite: list sneakers rows")
}

func (s *SQLiteStore) CreateSale(ctx context.Context, sale *Sale) error {
	now := time.Now().UTC()
	sale.ID = uuid.NewString()
	sale.CreatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sales (id, sneaker_id, sale_price, sale_date, buyer_info,
			platform, tracking_number, fees, shipping_cost, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sale.ID, sale.SneakerID, sale.SalePrice, sale.SaleDate, sale.BuyerInfo,
		sale.Platform, sale.TrackingNumber, sale.Fees, sale.ShippingCost,
		formatTime(now),
	)
	return eris.Wrap(err, "sqlite: create sale")
}

func (s *SQLiteStore) DeleteSale(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM sales WHERE id = ?`, id)
	if err != nil {
		return eris.Wrap(err, "sqlite: delete sale")
	}
	return checkAffected(res)
}

func (s *SQLiteStore) ListSales(ctx context.Context, filter SaleFilter) ([]Sale, error) {
	query := `
		SELECT id, sneaker_id, sale_price, sale_date, buyer_info, platform,
			tracking_number, fees, shipping_cost, created_at
		FROM sales WHERE 1=1`
	var args []any

	if filter.Platform != "" {
		query += ` AND platform = ?`
		args = append(args, filter.Platform)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list sales")
	}
	defer rows.Close()

	var out []Sale
	for rows.Next() {
		var sale Sale
		var createdAt string
		if err := rows.Scan(&sale.ID, &sale.SneakerID, &sale.SalePrice,
			&sale.SaleDate, &sale.BuyerInfo, &sale.Platform,
			&sale.TrackingNumber, &sale.Fees, &sale.ShippingCost, &createdAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan sale")
		}
		sale.CreatedAt = parseTime(createdAt)
		out = append(out, sale)
	}
	return out, eris.Wrap(rows.Err(), "sqlite: list sales rows")
}

func (s *SQLiteStore) CreateListing(ctx context.Context, l *Listing) error {
	now := time.Now().UTC()
	l.ID = uuid.NewString()
	l.CreatedAt = now
	l.UpdatedAt = now
	if l.Status == "" {
		l.Status = "Active"
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO listings (id, sneaker_id, platform, listing_url,
			listing_price, listing_status, date_listed, date_updated, notes,
			created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		l.ID, l.SneakerID, l.Platform, l.ListingURL, l.ListingPrice,
		l.Status, l.DateListed, l.DateUpdated, l.Notes,
		formatTime(now), formatTime(now),
	)
	return eris.Wrap(err, "sqlite: create listing")
}

func (s *SQLiteStore) UpdateListing(ctx context.Context, l *Listing) error {
	l.UpdatedAt = time.Now().UTC()
	res, err := s.db.ExecContext(ctx, `
		UPDATE listings SET platform = ?, listing_url = ?, listing_price = ?,
			listing_status = ?, date_listed = ?, date_updated = ?, notes = ?,
			updated_at = ?
		WHERE id = ?`,
		l.Platform, l.ListingURL, l.ListingPrice, l.Status, l.DateListed,
		l.DateUpdated, l.Notes, formatTime(l.UpdatedAt), l.ID,
	)
	if err != nil {
		return eris.Wrap(err, "sqlite: update listing")
	}
	return checkAffected(res)
}

func (s *SQLiteStore) DeleteListing(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM listings WHERE id = ?`, id)
	if err != nil {
		return eris.Wrap(err, "sqlite: delete listing")
	}
	return checkAffected(res)
}

func (s *SQLiteStore) ListListings(ctx context.Context, filter ListingFilter) ([]Listing, error) {
	query := `
		SELECT id, sneaker_id, platform, listing_url, listing_price,
			listing_status, date_listed, date_updated, notes, created_at, updated_at
		FROM listings WHERE 1=1`
	var args []any

	if filter.SneakerID != "" {
		query += ` AND sneaker_id = ?`
		args = append(args, filter.SneakerID)
	}
	if filter.Status != "" {
		query += ` AND listing_status = ?`
		args = append(args, filter.Status)
	}
	if filter.Platform != "" {
		query += ` AND platform = ?`
		args = append(args, filter.Platform)
	}
	query += ` ORDER BY date_listed DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list listings")
	}
	defer rows.Close()

	var out []Listing
	for rows.Next() {
		var l Listing
		var listingURL, dateUpdated sql.NullString
		var createdAt, updatedAt string
		if err := rows.Scan(&l.ID, &l.SneakerID, &l.Platform, &listingURL,
			&l.ListingPrice, &l.Status, &l.DateListed, &dateUpdated,
			&l.Notes, &createdAt, &updatedAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan listing")
		}
		l.ListingURL = listingURL.String
		l.DateUpdated = dateUpdated.String
		l.CreatedAt = parseTime(createdAt)
		l.UpdatedAt = parseTime(updatedAt)
		out = append(out, l)
	}
	return out, eris.Wrap(rows.Err(), "sqlite: list listings rows")
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanSneaker(row scanner) (*Sneaker, error) {
	var sn Sneaker
	var sku, releaseDate, imageURL sql.NullString
	var retail sql.NullFloat64
	var createdAt, updatedAt string

	err := row.Scan(&sn.ID, &sku, &sn.Brand, &sn.Model, &sn.Size, &sn.Category,
		&sn.Colorway, &retail, &releaseDate, &sn.PurchasePrice, &sn.PurchaseDate,
		&sn.Condition, &sn.Description, &sn.Notes, &sn.ListingPrice, &imageURL,
		&createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	sn.SKU = sku.String
	sn.ReleaseDate = releaseDate.String
	sn.ImageURL = imageURL.String
	if retail.Valid {
		sn.RetailPrice = &retail.Float64
	}
	sn.CreatedAt = parseTime(createdAt)
	sn.UpdatedAt = parseTime(updatedAt)
	return &sn, nil
}

func checkAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return eris.Wrap(err, "sqlite: rows affected")
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func nullFloat(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
