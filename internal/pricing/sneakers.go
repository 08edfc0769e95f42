package pricing

import (
	"context"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/soletrack/soletrack/pkg/sneakers"
)

// SneakersAdapter normalizes the Database Sneakers API into SourceRecords.
// It is the simpler pricing source: one search call, first hit wins.
type SneakersAdapter struct {
	client   sneakers.Client
	limit    int
	timeout  time.Duration
	disabled bool
}

// SneakersOptions configures the adapter.
type SneakersOptions struct {
	Limit   int
	Timeout time.Duration
}

// NewSneakersAdapter creates the adapter. A missing credential disables it
// permanently with a single warning, same policy as the StockX adapter.
func NewSneakersAdapter(client sneakers.Client, apiKey string, opts SneakersOptions) *SneakersAdapter {
	disabled := apiKey == ""
	if disabled {
		zap.L().Warn("pricing: no Database Sneakers API key configured, adapter disabled")
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = 10
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &SneakersAdapter{
		client:   client,
		limit:    limit,
		timeout:  timeout,
		disabled: disabled,
	}
}

func (a *SneakersAdapter) Name() string { return "alternative" }

// Fetch searches the Database Sneakers API and normalizes the first hit, or
// returns nil when the source has no data.
func (a *SneakersAdapter) Fetch(ctx context.Context, req LookupRequest) *SourceRecord {
	if a.disabled {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	query := searchQuery(req)
	zap.L().Info("pricing: searching alternative source", zap.String("query", query))

	results, err := a.client.Search(ctx, query, a.limit)
	if err != nil {
		zap.L().Warn("pricing: alternative search failed", zap.Error(err))
		return nil
	}
	if len(results) == 0 {
		return nil
	}

	p := Payload(results[0])
	rec := &SourceRecord{
		Platform:    "Alternative",
		ProductID:   p.String("id"),
		Name:        p.String("name", "title"),
		Brand:       p.String("brand"),
		RetailPrice: p.Price("retail_price", "retailPrice"),
		MarketPrice: p.Price("price", "currentPrice"),
		ImageURL:    ExtractImageURL(p),
		SKU:         p.String("sku", "style_id"),
		Colorway:    p.String("colorway"),
	}
	applySizeList(rec, p, req.Size)
	return rec
}

// applySizeList reads a per-size price table shaped as either a list of
// {size, price} objects or a size→price mapping, then prefers the requested
// size's price as the effective market price.
func applySizeList(rec *SourceRecord, p Payload, size string) {
	record := func(sizeVal string, priceVal any) {
		price, ok := ParsePrice(priceVal)
		if sizeVal == "" || !ok || price == 0 {
			return
		}
		if rec.PriceBySize == nil {
			rec.PriceBySize = make(map[string]float64)
		}
		rec.SizesAvailable = append(rec.SizesAvailable, sizeVal)
		rec.PriceBySize[sizeVal] = price
	}

	if entries := p.List("sizes"); len(entries) > 0 {
		for _, entry := range entries {
			record(stringify(firstPresent(entry, "size", "US")), firstPresent(entry, "price", "lowestAsk"))
		}
	} else if table := p.Map("sizes"); table != nil {
		for sizeVal, priceVal := range table {
			record(sizeVal, priceVal)
		}
	}

	if size != "" {
		if price, ok := rec.PriceBySize[size]; ok {
			rec.SizeSpecificPrice = ptr(price)
			rec.MarketPrice = ptr(price)
		}
	}
}

func firstPresent(p Payload, keys ...string) any {
	for _, k := range keys {
		if v, ok := p[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

// stringify renders a size value, which upstream sends as either a string
// or a bare number.
func stringify(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case int:
		return strconv.Itoa(s)
	default:
		return ""
	}
}
