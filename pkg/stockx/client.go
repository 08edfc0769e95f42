// Package stockx provides a client for the StockX pricing data and market
// analytics API on RapidAPI.
package stockx

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rotisserie/eris"
)

// Client defines the StockX market analytics operations.
//
// Responses are returned as untyped JSON trees: the upstream schema is not
// versioned and changes shape without notice, so projection into typed
// records happens at the adapter boundary, not here.
type Client interface {
	// Search runs a free-text product search and returns the decoded body.
	Search(ctx context.Context, query string, limit int) (map[string]any, error)
	// Product fetches detailed market data for a product ID.
	Product(ctx context.Context, productID, size string) (map[string]any, error)
	// ProductBySKU fetches market data by style code.
	ProductBySKU(ctx context.Context, sku, size string) (map[string]any, error)
}

// Option configures the StockX client.
type Option func(*httpClient)

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(u string) Option {
	return func(c *httpClient) {
		c.baseURL = u
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

// WithTimeout overrides the request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *httpClient) {
		c.http.Timeout = d
	}
}

type httpClient struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

// NewClient creates a new StockX client authenticated with a RapidAPI key.
func NewClient(apiKey string, opts ...Option) Client {
	c := &httpClient{
		apiKey:  apiKey,
		baseURL: "https://stockx-pricing-data-and-market-analytics.p.rapidapi.com",
		http: &http.Client{
			Timeout: 15 * time.Second,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// get issues one GET and decodes the body into an untyped JSON object.
// There is no retry: transient upstream failures degrade the calling
// adapter to "no data" within the current lookup.
func (c *httpClient) get(ctx context.Context, path string, params url.Values) (map[string]any, error) {
	reqURL := c.baseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "stockx: create request")
	}
	req.Header.Set("X-RapidAPI-Key", c.apiKey)
	req.Header.Set("X-RapidAPI-Host", rapidAPIHost(c.baseURL))
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "stockx: request failed")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "stockx: read response body")
	}

	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("stockx: unexpected status %d: %s", resp.StatusCode, string(body))
	}

	var decoded map[string]any
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, eris.Wrap(err, "stockx: unmarshal response")
	}
	return decoded, nil
}

func (c *httpClient) Search(ctx context.Context, query string, limit int) (map[string]any, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("limit", strconv.Itoa(limit))
	return c.get(ctx, "/search", params)
}

func (c *httpClient) Product(ctx context.Context, productID, size string) (map[string]any, error) {
	params := url.Values{}
	if size != "" {
		params.Set("size", size)
	}
	return c.get(ctx, fmt.Sprintf("/product/%s", url.PathEscape(productID)), params)
}

func (c *httpClient) ProductBySKU(ctx context.Context, sku, size string) (map[string]any, error) {
	params := url.Values{}
	params.Set("sku", sku)
	if size != "" {
		params.Set("size", size)
	}
	return c.get(ctx, "/product/sku", params)
}

// rapidAPIHost extracts the host portion of the base URL for the
// X-RapidAPI-Host header.
func rapidAPIHost(baseURL string) string {
	u, err := url.Parse(baseURL)
	if err != nil || u.Host == "" {
		return baseURL
	}
	return u.Host
}
