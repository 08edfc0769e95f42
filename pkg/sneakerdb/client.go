// Package sneakerdb provides a client for The Sneaker Database catalog API
// on RapidAPI.
package sneakerdb

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

// SearchParams narrows a catalog search. Zero-value fields are omitted.
type SearchParams struct {
	Name  string
	SKU   string
	Brand string
	Limit int
}

// Client defines The Sneaker Database catalog operations.
type Client interface {
	// Search queries the catalog and returns the raw result list.
	Search(ctx context.Context, params SearchParams) ([]map[string]any, error)
	// GetByID fetches a single catalog entry.
	GetByID(ctx context.Context, id string) (map[string]any, error)
	// Brands lists the brand names known to the catalog.
	Brands(ctx context.Context) ([]string, error)
}

// Option configures the client.
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

// NewClient creates a new catalog client authenticated with a RapidAPI key.
func NewClient(apiKey string, opts ...Option) Client {
	c := &httpClient{
		apiKey:  apiKey,
		baseURL: "https://the-sneaker-database.p.rapidapi.com",
		http: &http.Client{
			Timeout: 10 * time.Second,
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

func (c *httpClient) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	reqURL := c.baseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "sneakerdb: create request")
	}
	req.Header.Set("X-RapidAPI-Key", c.apiKey)
	req.Header.Set("X-RapidAPI-Host", rapidAPIHost(c.baseURL))
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "sneakerdb: request failed")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "sneakerdb: read response body")
	}

	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("sneakerdb: unexpected status %d: %s", resp.StatusCode, string(body))
	}
	return body, nil
}

func (c *httpClient) Search(ctx context.Context, params SearchParams) ([]map[string]any, error) {
	// The API rejects limits outside 10-100.
	limit := params.Limit
	if limit < 10 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	if params.Name != "" {
		q.Set("name", params.Name)
	}
	if params.SKU != "" {
		q.Set("sku", params.SKU)
	}
	if params.Brand != "" {
		q.Set("brand", params.Brand)
	}

	body, err := c.get(ctx, "/sneakers", q)
	if err != nil {
		return nil, err
	}

	// The endpoint answers either {"results": [...]} or a bare array.
	var wrapped struct {
		Results []map[string]any `json:"results"`
	}
	if err := json.Unmarshal(body, &wrapped); err == nil && wrapped.Results != nil {
		return wrapped.Results, nil
	}
	var list []map[string]any
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, eris.Wrap(err, "sneakerdb: unmarshal search response")
	}
	return list, nil
}

func (c *httpClient) GetByID(ctx context.Context, id string) (map[string]any, error) {
	body, err := c.get(ctx, fmt.Sprintf("/sneakers/%s", url.PathEscape(id)), nil)
	if err != nil {
		return nil, err
	}
	var decoded map[string]any
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, eris.Wrap(err, "sneakerdb: unmarshal sneaker")
	}
	return decoded, nil
}

func (c *httpClient) Brands(ctx context.Context) ([]string, error) {
	body, err := c.get(ctx, "/brands", nil)
	if err != nil {
		return nil, err
	}

	// Brand entries arrive either as plain strings or {"name": ...} objects,
	// and may be wrapped in a {"brands": [...]} envelope.
	var raw any
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, eris.Wrap(err, "sneakerdb: unmarshal brands")
	}

	entries, ok := raw.([]any)
	if !ok {
		if m, isMap := raw.(map[string]any); isMap {
			entries, _ = m["brands"].([]any)
		}
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		switch v := e.(type) {
		case string:
			names = append(names, v)
		case map[string]any:
			if n, isStr := v["name"].(string); isStr {
				names = append(names, n)
			} else {
				names = append(names, fmt.Sprint(e))
			}
		default:
			names = append(names, fmt.Sprint(e))
		}
	}
	return names, nil
}

func rapidAPIHost(baseURL string) string {
	u, err := url.Parse(baseURL)
	if err != nil || u.Host == "" {
		return baseURL
	}
	return u.Host
}
