package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soletrack/soletrack/pkg/sneakerdb"
)

// fakeCatalogClient scripts responses keyed on whether the search carried a
// SKU or a free-text name.
type fakeCatalogClient struct {
	skuResults  []map[string]any
	skuErr      error
	nameResults []map[string]any
	nameErr     error
	detailResp  map[string]any
	detailErr   error
	brandsResp  []string
	brandsErr   error

	skuCalls, nameCalls, detailCalls int
}

func (f *fakeCatalogClient) Search(ctx context.Context, params sneakerdb.SearchParams) ([]map[string]any, error) {
	if params.SKU != "" {
		f.skuCalls++
		return f.skuResults, f.skuErr
	}
	f.nameCalls++
	return f.nameResults, f.nameErr
}

func (f *fakeCatalogClient) GetByID(ctx context.Context, id string) (map[string]any, error) {
	f.detailCalls++
	if f.detailResp == nil && f.detailErr == nil {
		return nil, errors.New("not scripted")
	}
	return f.detailResp, f.detailErr
}

func (f *fakeCatalogClient) Brands(ctx context.Context) ([]string, error) {
	return f.brandsResp, f.brandsErr
}

func TestLookupBySKUEmpty(t *testing.T) {
	svc := NewService(&fakeCatalogClient{}, "key")

	for _, sku := range []string{"", "   "} {
		_, err := svc.LookupBySKU(context.Background(), sku)
		assert.ErrorIs(t, err, ErrEmptySKU)
	}
}

func TestLookupBySKUDisabled(t *testing.T) {
	client := &fakeCatalogClient{}
	svc := NewService(client, "")

	result, err := svc.LookupBySKU(context.Background(), "DD1391-100")
	require.NoError(t, err)
	assert.Nil(t, result)
	assert.Zero(t, client.skuCalls)
}

func TestLookupBySKUExactHit(t *testing.T) {
	client := &fakeCatalogClient{
		skuResults: []map[string]any{
			{
				"id":          "cat-1",
				"sku":         "DD1391-100",
				"brand":       "Nike",
				"name":        "Dunk Low Retro White Black",
				"colorway":    "White/Black",
				"retailPrice": 110.0,
				"releaseDate": "2021-01-14",
				"gender":      "men",
				"story":       "The &quot;Panda&quot; Dunk.",
				"image": map[string]any{
					"original":  "https://cdn.example.com/panda.jpg",
					"thumbnail": "https://cdn.example.com/panda-thumb.jpg",
				},
				"estimatedMarketValue": 160.0,
				"silhouette":           "Dunk",
			},
		},
	}
	svc := NewService(client, "key")

	result, err := svc.LookupBySKU(context.Background(), "DD1391-100")
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, "DD1391-100", result.SKU)
	assert.Equal(t, "Nike", result.Brand)
	assert.Equal(t, "Dunk Low Retro White Black", result.Model)
	assert.Equal(t, 110.0, *result.RetailPrice)
	assert.Equal(t, "2021-01-14", result.ReleaseDate)
	assert.Equal(t, "Men's", result.Category)
	assert.Equal(t, `The "Panda" Dunk.`, result.Description, "story is HTML-unescaped")
	assert.Equal(t, "https://cdn.example.com/panda.jpg", result.ImageURL)
	assert.Equal(t, 160.0, *result.EstimatedMarketValue)
	assert.Zero(t, client.nameCalls, "exact hit skips the free-text pass")
}

func TestLookupBySKUFallsBackToNameSearch(t *testing.T) {
	client := &fakeCatalogClient{
		skuResults: []map[string]any{},
		nameResults: []map[string]any{
			{"name": "Wrong Shoe", "styleId": "ZZ0000-999"},
			{"name": "Right Shoe", "styleId": "dd1391 100", "brand": "Nike"},
		},
	}
	svc := NewService(client, "key")

	result, err := svc.LookupBySKU(context.Background(), "DD1391-100")
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, "Right Shoe", result.Model, "normalized SKU containment picks the match")
}

func TestLookupBySKUNoMatchTakesFirst(t *testing.T) {
	client := &fakeCatalogClient{
		skuErr: errors.New("upstream down"),
		nameResults: []map[string]any{
			{"name": "Closest Guess", "brand": "Nike"},
		},
	}
	svc := NewService(client, "key")

	result, err := svc.LookupBySKU(context.Background(), "DD1391-100")
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, "Closest Guess", result.Model)
}

func TestLookupBySKUNothingFound(t *testing.T) {
	svc := NewService(&fakeCatalogClient{}, "key")

	result, err := svc.LookupBySKU(context.Background(), "ZZ9999-000")
	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestLookupBySKUNameSearchError(t *testing.T) {
	svc := NewService(&fakeCatalogClient{nameErr: errors.New("timeout")}, "key")

	result, err := svc.LookupBySKU(context.Background(), "DD1391-100")
	require.NoError(t, err, "upstream failures degrade to no match, not errors")
	assert.Nil(t, result)
}

func TestLookupBySKUDetailUpgrade(t *testing.T) {
	client := &fakeCatalogClient{
		skuResults: []map[string]any{
			{"id": "cat-1", "sku": "DD1391-100", "name": "Dunk Low"},
		},
		detailResp: map[string]any{
			"id":                   "cat-1",
			"sku":                  "DD1391-100",
			"brand":                "Nike",
			"name":                 "Dunk Low Retro White Black",
			"retailPrice":          110.0,
			"story":                "The Panda Dunk.",
			"estimatedMarketValue": 160.0,
		},
	}
	svc := NewService(client, "key")

	result, err := svc.LookupBySKU(context.Background(), "DD1391-100")
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, 1, client.detailCalls)
	assert.Equal(t, "Dunk Low Retro White Black", result.Model, "detail entry replaces the search hit")
	assert.Equal(t, "The Panda Dunk.", result.Description)
	assert.Equal(t, 160.0, *result.EstimatedMarketValue)
}

func TestLookupBySKUDetailFailureDegrades(t *testing.T) {
	client := &fakeCatalogClient{
		skuResults: []map[string]any{
			{"id": "cat-1", "sku": "DD1391-100", "name": "Dunk Low", "brand": "Nike"},
		},
		detailErr: errors.New("upstream 500"),
	}
	svc := NewService(client, "key")

	result, err := svc.LookupBySKU(context.Background(), "DD1391-100")
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, 1, client.detailCalls)
	assert.Equal(t, "Dunk Low", result.Model, "search hit stands when the detail fetch fails")
}

func TestBrands(t *testing.T) {
	svc := NewService(&fakeCatalogClient{brandsResp: []string{"Nike", "Adidas"}}, "key")

	brands, err := svc.Brands(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Nike", "Adidas"}, brands)
}

func TestBrandsDisabled(t *testing.T) {
	svc := NewService(&fakeCatalogClient{brandsResp: []string{"Nike"}}, "")

	brands, err := svc.Brands(context.Background())
	require.NoError(t, err)
	assert.Empty(t, brands)
}

func TestBrandsError(t *testing.T) {
	svc := NewService(&fakeCatalogClient{brandsErr: errors.New("quota exceeded")}, "key")

	_, err := svc.Brands(context.Background())
	assert.Error(t, err)
}

func TestSKUMatchesNormalization(t *testing.T) {
	tests := []struct {
		search  string
		payload map[string]any
		want    bool
	}{
		{"DD1391-100", map[string]any{"sku": "dd1391100"}, true},
		{"dd1391 100", map[string]any{"styleId": "DD1391-100"}, true},
		{"DD1391", map[string]any{"product_id": "DD1391-100"}, true},
		{"DD1391-100", map[string]any{"code": "DD1391"}, true},
		{"DD1391-100", map[string]any{"sku": "CW2288-111"}, false},
		{"DD1391-100", map[string]any{}, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, skuMatches(tt.search, tt.payload), "search %q against %v", tt.search, tt.payload)
	}
}
