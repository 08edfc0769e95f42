package pricing

import (
	"context"

	"go.uber.org/zap"
)

// Adapter wraps one external pricing API behind a uniform fetch contract.
// Fetch returns a normalized record, or nil when the source has no data for
// the request. Adapters never return errors and never panic out: upstream
// failures are diagnostics, not faults.
type Adapter interface {
	Name() string
	Fetch(ctx context.Context, req LookupRequest) *SourceRecord
}

// safeFetch invokes an adapter and converts any escaped panic into "no data"
// so one misbehaving source cannot block the others or the aggregation step.
func safeFetch(ctx context.Context, a Adapter, req LookupRequest) (rec *SourceRecord) {
	defer func() {
		if r := recover(); r != nil {
			zap.L().Error("pricing: adapter panicked",
				zap.String("adapter", a.Name()),
				zap.Any("panic", r),
			)
			rec = nil
		}
	}()
	return a.Fetch(ctx, req)
}

// searchQuery builds the free-text query shared by the adapters:
// brand + model, plus the colorway when present.
func searchQuery(req LookupRequest) string {
	q := req.Brand + " " + req.Model
	if req.Colorway != "" {
		q += " " + req.Colorway
	}
	return q
}
