package pricing

import (
	"context"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// ErrInvalidRequest marks client input errors: missing required fields or a
// malformed search query. Never retried, HTTP 400 at the API boundary.
var ErrInvalidRequest = eris.New("pricing: invalid request")

// ErrNoData marks a lookup that produced nothing usable. Distinct from an
// internal fault; HTTP 404 at the API boundary.
var ErrNoData = eris.New("pricing: no data found")

// Service is the query facade: it orchestrates the source adapters, the
// aggregator and the synthetic fallback into one request/response cycle.
type Service struct {
	adapters []Adapter
	now      func() time.Time
}

// NewService creates the facade over the given adapters. Adapters are
// invoked in the order supplied.
func NewService(adapters ...Adapter) *Service {
	return &Service{
		adapters: adapters,
		now:      time.Now,
	}
}

// WithClock overrides the time source (for testing).
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Lookup runs one pricing query cycle: each adapter in sequence, then
// aggregation, falling back to a synthetic response when no source answered.
// The only errors returned are invalid input and a recovered internal fault;
// adapter failures never surface here.
func (s *Service) Lookup(ctx context.Context, req LookupRequest) (resp *Response, err error) {
	req.Brand = strings.TrimSpace(req.Brand)
	req.Model = strings.TrimSpace(req.Model)
	if req.Brand == "" || req.Model == "" {
		return nil, eris.Wrap(ErrInvalidRequest, "brand and model are required")
	}

	// A programming error below must surface as "no data found", never as a
	// crash through the transport layer.
	defer func() {
		if r := recover(); r != nil {
			zap.L().Error("pricing: lookup panicked",
				zap.String("brand", req.Brand),
				zap.String("model", req.Model),
				zap.Any("panic", r),
			)
			resp = nil
			err = ErrNoData
		}
	}()

	sources := make(map[string]SourceRecord)
	for _, a := range s.adapters {
		if rec := safeFetch(ctx, a, req); rec != nil {
			sources[a.Name()] = *rec
		}
	}

	if len(sources) == 0 {
		zap.L().Info("pricing: no live sources answered, generating synthetic response",
			zap.String("brand", req.Brand),
			zap.String("model", req.Model),
		)
		demo := GenerateFallback(req, s.now())
		return &demo, nil
	}

	return &Response{
		Brand:       req.Brand,
		Model:       req.Model,
		Colorway:    req.Colorway,
		SKU:         req.SKU,
		Size:        req.Size,
		LastUpdated: s.now().UTC(),
		Sources:     sources,
		Summary:     Aggregate(sources),
	}, nil
}

// SearchByQuery tokenizes a free-text query (first token is the brand, the
// remainder the model/colorway) and returns lookup results for it.
func (s *Service) SearchByQuery(ctx context.Context, query string) ([]Response, error) {
	tokens := strings.Fields(strings.TrimSpace(query))
	if len(tokens) < 2 {
		return nil, eris.Wrap(ErrInvalidRequest, "query needs at least a brand and a model")
	}

	req := LookupRequest{
		Brand: tokens[0],
		Model: strings.Join(tokens[1:], " "),
	}
	resp, err := s.Lookup(ctx, req)
	if err != nil {
		return nil, err
	}
	return []Response{*resp}, nil
}
