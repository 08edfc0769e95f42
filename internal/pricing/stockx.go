package pricing

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/soletrack/soletrack/pkg/stockx"
)

// StockXAdapter normalizes the StockX market analytics API into SourceRecords.
// It is the richer of the two pricing sources: search hits are upgraded to a
// product-detail lookup when the result carries a product ID, and a supplied
// SKU is tried as a last resort when search yields nothing.
type StockXAdapter struct {
	client   stockx.Client
	limit    int
	timeout  time.Duration
	disabled bool
}

// StockXOptions configures the adapter.
type StockXOptions struct {
	Limit   int
	Timeout time.Duration
}

// NewStockXAdapter creates the adapter. A missing credential is non-fatal:
// the adapter is still constructed but every fetch degrades to no data, and
// the condition is logged once here rather than per call.
func NewStockXAdapter(client stockx.Client, apiKey string, opts StockXOptions) *StockXAdapter {
	disabled := apiKey == ""
	if disabled {
		zap.L().Warn("pricing: no StockX API key configured, adapter disabled")
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = 10
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &StockXAdapter{
		client:   client,
		limit:    limit,
		timeout:  timeout,
		disabled: disabled,
	}
}

func (a *StockXAdapter) Name() string { return "stockx" }

// Fetch searches StockX for the requested sneaker and returns a normalized
// record, or nil when the source has no data.
func (a *StockXAdapter) Fetch(ctx context.Context, req LookupRequest) *SourceRecord {
	if a.disabled {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	query := searchQuery(req)
	zap.L().Info("pricing: searching stockx", zap.String("query", query))

	data, err := a.client.Search(ctx, query, a.limit)
	if err != nil {
		zap.L().Warn("pricing: stockx search failed", zap.Error(err))
		return a.fetchBySKU(ctx, req)
	}

	payload := Payload(data)
	results := payload.List("results")
	if len(results) == 0 {
		results = payload.List("data")
	}

	if len(results) > 0 {
		first := results[0]

		// Upgrade to the product-detail endpoint when an ID is present.
		if id := first.String("id", "uuid", "productId"); id != "" {
			if rec := a.fetchProduct(ctx, id, req.Size); rec != nil {
				return rec
			}
		}
		return a.formatSearchResult(first, req.Size)
	}

	// Some queries answer with a single product object instead of a list.
	if payload.String("name") != "" {
		return a.formatSearchResult(payload, req.Size)
	}

	return a.fetchBySKU(ctx, req)
}

// fetchBySKU is the last-resort lookup when search yields nothing and the
// caller supplied a style code.
func (a *StockXAdapter) fetchBySKU(ctx context.Context, req LookupRequest) *SourceRecord {
	if req.SKU == "" {
		return nil
	}
	zap.L().Info("pricing: stockx sku lookup", zap.String("sku", req.SKU))

	data, err := a.client.ProductBySKU(ctx, req.SKU, req.Size)
	if err != nil {
		zap.L().Warn("pricing: stockx sku lookup failed", zap.Error(err))
		return nil
	}
	return a.formatProduct(Payload(data), req.Size)
}

func (a *StockXAdapter) fetchProduct(ctx context.Context, productID, size string) *SourceRecord {
	zap.L().Info("pricing: stockx product details", zap.String("product_id", productID))

	data, err := a.client.Product(ctx, productID, size)
	if err != nil {
		zap.L().Warn("pricing: stockx product lookup failed", zap.Error(err))
		return nil
	}
	if len(data) == 0 {
		return nil
	}
	return a.formatProduct(Payload(data), size)
}

// formatSearchResult projects a bare search hit into a SourceRecord.
func (a *StockXAdapter) formatSearchResult(p Payload, size string) *SourceRecord {
	rec := &SourceRecord{
		Platform:    "StockX",
		ProductID:   p.String("id", "uuid", "productId"),
		Name:        p.String("name", "title"),
		Brand:       p.String("brand"),
		RetailPrice: p.Price("retailPrice", "retail_price"),
		MarketPrice: p.Price("lowestAsk", "current_price", "lastSale"),
		ImageURL:    ExtractImageURL(p),
		SKU:         p.String("styleId", "sku"),
		Colorway:    p.String("colorway"),
	}

	applySizeTable(rec, p.Map("market"), size)
	return rec
}

// formatProduct projects a product-detail response into a SourceRecord.
func (a *StockXAdapter) formatProduct(p Payload, size string) *SourceRecord {
	market := p.Map("market")

	rec := &SourceRecord{
		Platform:    "StockX",
		ProductID:   p.String("id", "uuid"),
		Name:        p.String("title", "name"),
		Brand:       p.String("brand"),
		RetailPrice: p.Price("retailPrice"),
		ImageURL:    ExtractImageURL(p),
		SKU:         p.String("styleId"),
		Colorway:    p.String("colorway"),
		ReleaseDate: ParseDate(p["releaseDate"]),
	}

	if market != nil {
		rec.MarketPrice = market.Price("lowestAsk")
		rec.LastSale = market.Price("lastSale")
		rec.HighestBid = market.Price("highestBid")
	}
	if rec.MarketPrice == nil {
		rec.MarketPrice = p.Price("lowestAsk")
	}
	if rec.LastSale == nil {
		rec.LastSale = p.Price("lastSale")
	}
	if rec.HighestBid == nil {
		rec.HighestBid = p.Price("highestBid")
	}

	applySizeTable(rec, market, size)

	// A stale listing may have no asks; the last sale is the next best signal.
	if rec.MarketPrice == nil && rec.LastSale != nil {
		rec.MarketPrice = rec.LastSale
	}

	return rec
}

// applySizeTable populates the per-size price table from the market object's
// lowestAskBySize list, and prefers the requested size's price as the
// effective market price when present.
func applySizeTable(rec *SourceRecord, market Payload, size string) {
	if market == nil {
		return
	}
	for _, entry := range market.List("lowestAskBySize") {
		sizeVal := stringify(entry["size"])
		price, ok := ParsePrice(entry["lowestAsk"])
		if sizeVal == "" || !ok || price == 0 {
			continue
		}
		if rec.PriceBySize == nil {
			rec.PriceBySize = make(map[string]float64)
		}
		rec.SizesAvailable = append(rec.SizesAvailable, sizeVal)
		rec.PriceBySize[sizeVal] = price
	}

	if size != "" {
		if price, ok := rec.PriceBySize[size]; ok {
			rec.SizeSpecificPrice = ptr(price)
			rec.MarketPrice = ptr(price)
		}
	}
}
