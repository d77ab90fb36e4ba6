package tokenmetrics

import "context"

// RangeOptions filters endpoints that only page over a date range.
type RangeOptions struct {
	DateRange
	Pagination
	// Extra is passed through to the query string as given and wins over
	// typed fields. Nil entries are ignored, so they never unset a typed field.
	Extra Params
}

func (o *RangeOptions) params() Params {
	q := Params{}
	if o == nil {
		return q
	}
	o.DateRange.apply(q)
	o.Pagination.apply(q)
	q.merge(o.Extra)
	return q
}

// TraderIndicesService serves the trader index allocations.
type TraderIndicesService struct{ resource }

// Get fetches /v2/trader-indices. opts may be nil.
func (s *TraderIndicesService) Get(ctx context.Context, opts *RangeOptions) (Envelope, error) {
	return s.get(ctx, opts.params())
}

// MarketMetricsService serves the market-wide bullish/bearish indicator.
type MarketMetricsService struct{ resource }

// Get fetches /v2/market-metrics. opts may be nil.
func (s *MarketMetricsService) Get(ctx context.Context, opts *RangeOptions) (Envelope, error) {
	return s.get(ctx, opts.params())
}
