package main

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/soletrack/soletrack/internal/catalog"
	"github.com/soletrack/soletrack/internal/config"
	"github.com/soletrack/soletrack/internal/inventory"
	"github.com/soletrack/soletrack/internal/pricing"
	"github.com/soletrack/soletrack/pkg/sneakerdb"
	"github.com/soletrack/soletrack/pkg/sneakers"
	"github.com/soletrack/soletrack/pkg/stockx"
)

// appEnv bundles the wired services a command needs.
type appEnv struct {
	Pricing *pricing.Service
	Catalog *catalog.Service
	Store   inventory.Store
}

// initEnv builds the service graph from config: API clients, source
// adapters, the pricing facade, catalog lookup and the inventory store.
func initEnv(ctx context.Context, cfg *config.Config) (*appEnv, error) {
	stockxClient := stockx.NewClient(cfg.StockX.Key, stockx.WithBaseURL(cfg.StockX.BaseURL))
	sneakersClient := sneakers.NewClient(cfg.Sneakers.Key, sneakers.WithBaseURL(cfg.Sneakers.BaseURL))
	sneakerdbClient := sneakerdb.NewClient(cfg.SneakerDB.Key,
		sneakerdb.WithBaseURL(cfg.SneakerDB.BaseURL),
		sneakerdb.WithTimeout(cfg.SneakerDB.Timeout()),
	)

	pricingSvc := pricing.NewService(
		pricing.NewStockXAdapter(stockxClient, cfg.StockX.Key, pricing.StockXOptions{
			Limit:   cfg.StockX.Limit,
			Timeout: cfg.StockX.Timeout(),
		}),
		pricing.NewSneakersAdapter(sneakersClient, cfg.Sneakers.Key, pricing.SneakersOptions{
			Limit:   cfg.Sneakers.Limit,
			Timeout: cfg.Sneakers.Timeout(),
		}),
	)

	store, err := openStore(ctx, cfg.Store)
	if err != nil {
		return nil, err
	}

	return &appEnv{
		Pricing: pricingSvc,
		Catalog: catalog.NewService(sneakerdbClient, cfg.SneakerDB.Key),
		Store:   store,
	}, nil
}

func openStore(ctx context.Context, cfg config.StoreConfig) (inventory.Store, error) {
	var store inventory.Store
	switch cfg.Driver {
	case "sqlite", "":
		s, err := inventory.NewSQLite(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		store = s
	case "postgres":
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, eris.Wrap(err, "open postgres pool")
		}
		store = inventory.NewPostgres(pool)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}

	if err := store.Migrate(ctx); err != nil {
		store.Close()
		return nil, err
	}
	return store, nil
}

func (e *appEnv) Close() {
	if e.Store != nil {
		e.Store.Close()
	}
}
