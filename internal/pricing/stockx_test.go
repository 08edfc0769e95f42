package pricing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStockX scripts the three client endpoints.
type fakeStockX struct {
	searchResp  map[string]any
	searchErr   error
	productResp map[string]any
	productErr  error
	skuResp     map[string]any
	skuErr      error

	searchCalls, productCalls, skuCalls int
}

func (f *fakeStockX) Search(ctx context.Context, query string, limit int) (map[string]any, error) {
	f.searchCalls++
	return f.searchResp, f.searchErr
}

func (f *fakeStockX) Product(ctx context.Context, productID, size string) (map[string]any, error) {
	f.productCalls++
	return f.productResp, f.productErr
}

func (f *fakeStockX) ProductBySKU(ctx context.Context, sku, size string) (map[string]any, error) {
	f.skuCalls++
	return f.skuResp, f.skuErr
}

func newStockXUnderTest(client *fakeStockX) *StockXAdapter {
	return NewStockXAdapter(client, "test-key", StockXOptions{Limit: 10, Timeout: time.Second})
}

func TestStockXDisabledWithoutKey(t *testing.T) {
	client := &fakeStockX{}
	a := NewStockXAdapter(client, "", StockXOptions{})

	rec := a.Fetch(context.Background(), LookupRequest{Brand: "Nike", Model: "Dunk"})
	assert.Nil(t, rec)
	assert.Zero(t, client.searchCalls, "disabled adapter must not call upstream")
}

func TestStockXSearchHitUpgradedToProductDetail(t *testing.T) {
	client := &fakeStockX{
		searchResp: map[string]any{
			"results": []any{
				map[string]any{"id": "prod-1", "name": "Dunk Low Panda"},
			},
		},
		productResp: map[string]any{
			"id":          "prod-1",
			"title":       "Nike Dunk Low Panda",
			"brand":       "Nike",
			"styleId":     "DD1391-100",
			"retailPrice": 110.0,
			"releaseDate": "2021-01-14T00:00:00Z",
			"market": map[string]any{
				"lowestAsk":  150.0,
				"lastSale":   145.0,
				"highestBid": 140.0,
			},
		},
	}
	a := newStockXUnderTest(client)

	rec := a.Fetch(context.Background(), LookupRequest{Brand: "Nike", Model: "Dunk Low"})
	require.NotNil(t, rec)
	assert.Equal(t, 1, client.productCalls)
	assert.Equal(t, "StockX", rec.Platform)
	assert.Equal(t, "Nike Dunk Low Panda", rec.Name)
	assert.Equal(t, "DD1391-100", rec.SKU)
	assert.Equal(t, "2021-01-14", rec.ReleaseDate)
	assert.Equal(t, 110.0, *rec.RetailPrice)
	assert.Equal(t, 150.0, *rec.MarketPrice)
	assert.Equal(t, 145.0, *rec.LastSale)
	assert.Equal(t, 140.0, *rec.HighestBid)
}

func TestStockXProductFailureFallsBackToSearchHit(t *testing.T) {
	client := &fakeStockX{
		searchResp: map[string]any{
			"results": []any{
				map[string]any{
					"id":          "prod-1",
					"name":        "Dunk Low Panda",
					"brand":       "Nike",
					"retailPrice": "110",
					"lowestAsk":   "160",
				},
			},
		},
		productErr: errors.New("rate limited"),
	}
	a := newStockXUnderTest(client)

	rec := a.Fetch(context.Background(), LookupRequest{Brand: "Nike", Model: "Dunk Low"})
	require.NotNil(t, rec)
	assert.Equal(t, "Dunk Low Panda", rec.Name)
	assert.Equal(t, 110.0, *rec.RetailPrice)
	assert.Equal(t, 160.0, *rec.MarketPrice)
}

func TestStockXDataListAccepted(t *testing.T) {
	client := &fakeStockX{
		searchResp: map[string]any{
			"data": []any{
				map[string]any{"name": "Jordan 1 Bred", "lastSale": 320.0},
			},
		},
	}
	a := newStockXUnderTest(client)

	rec := a.Fetch(context.Background(), LookupRequest{Brand: "Jordan", Model: "1"})
	require.NotNil(t, rec)
	assert.Equal(t, "Jordan 1 Bred", rec.Name)
	assert.Equal(t, 320.0, *rec.MarketPrice)
}

func TestStockXSingleObjectResponse(t *testing.T) {
	client := &fakeStockX{
		searchResp: map[string]any{"name": "Yeezy 350 Zebra", "lowestAsk": 280.0},
	}
	a := newStockXUnderTest(client)

	rec := a.Fetch(context.Background(), LookupRequest{Brand: "Adidas", Model: "Yeezy 350"})
	require.NotNil(t, rec)
	assert.Equal(t, "Yeezy 350 Zebra", rec.Name)
}

func TestStockXSKULastResort(t *testing.T) {
	client := &fakeStockX{
		searchErr: errors.New("upstream 502"),
		skuResp: map[string]any{
			"title":   "Air Jordan 4 Thunder",
			"styleId": "DH6927-017",
			"market":  map[string]any{"lowestAsk": 240.0},
		},
	}
	a := newStockXUnderTest(client)

	rec := a.Fetch(context.Background(), LookupRequest{Brand: "Jordan", Model: "4", SKU: "DH6927-017"})
	require.NotNil(t, rec)
	assert.Equal(t, 1, client.skuCalls)
	assert.Equal(t, "Air Jordan 4 Thunder", rec.Name)
	assert.Equal(t, 240.0, *rec.MarketPrice)
}

func TestStockXNoSKUNoLastResort(t *testing.T) {
	client := &fakeStockX{searchErr: errors.New("upstream 502")}
	a := newStockXUnderTest(client)

	rec := a.Fetch(context.Background(), LookupRequest{Brand: "Nike", Model: "Dunk"})
	assert.Nil(t, rec)
	assert.Zero(t, client.skuCalls)
}

func TestStockXEmptySearchTriesSKU(t *testing.T) {
	client := &fakeStockX{
		searchResp: map[string]any{"results": []any{}},
		skuErr:     errors.New("not found"),
	}
	a := newStockXUnderTest(client)

	rec := a.Fetch(context.Background(), LookupRequest{Brand: "Nike", Model: "Dunk", SKU: "DD1391-100"})
	assert.Nil(t, rec)
	assert.Equal(t, 1, client.skuCalls)
}

func TestStockXSizeSpecificPrice(t *testing.T) {
	client := &fakeStockX{
		searchResp: map[string]any{
			"results": []any{map[string]any{"id": "prod-1"}},
		},
		productResp: map[string]any{
			"id":    "prod-1",
			"title": "Dunk Low Panda",
			"market": map[string]any{
				"lowestAsk": 150.0,
				"lowestAskBySize": []any{
					map[string]any{"size": "9", "lowestAsk": 140.0},
					map[string]any{"size": 10.0, "lowestAsk": 165.0},
					map[string]any{"size": "11", "lowestAsk": nil},
				},
			},
		},
	}
	a := newStockXUnderTest(client)

	rec := a.Fetch(context.Background(), LookupRequest{Brand: "Nike", Model: "Dunk Low", Size: "10"})
	require.NotNil(t, rec)
	require.NotNil(t, rec.SizeSpecificPrice)
	assert.Equal(t, 165.0, *rec.SizeSpecificPrice)
	assert.Equal(t, 165.0, *rec.MarketPrice, "requested size overrides the generic ask")
	assert.Equal(t, map[string]float64{"9": 140, "10": 165}, rec.PriceBySize)
	assert.ElementsMatch(t, []string{"9", "10"}, rec.SizesAvailable)
}

func TestStockXLastSaleFillsMissingMarket(t *testing.T) {
	client := &fakeStockX{
		searchResp: map[string]any{
			"results": []any{map[string]any{"id": "prod-1"}},
		},
		productResp: map[string]any{
			"id":     "prod-1",
			"title":  "Old Release",
			"market": map[string]any{"lastSale": 99.0},
		},
	}
	a := newStockXUnderTest(client)

	rec := a.Fetch(context.Background(), LookupRequest{Brand: "Nike", Model: "Old Release"})
	require.NotNil(t, rec)
	require.NotNil(t, rec.MarketPrice)
	assert.Equal(t, 99.0, *rec.MarketPrice)
}
