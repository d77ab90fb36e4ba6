package tokenmetrics

import "context"

// OHLCVOptions filters the hourly and daily OHLCV endpoints.
type OHLCVOptions struct {
	TokenFilter
	DateRange
	Pagination
	// Extra is passed through to the query string as given and wins over
	// typed fields. Nil entries are ignored, so they never unset a typed field.
	Extra Params
}

func (o *OHLCVOptions) params() Params {
	q := Params{}
	if o == nil {
		return q
	}
	o.TokenFilter.apply(q)
	o.DateRange.apply(q)
	o.Pagination.apply(q)
	q.merge(o.Extra)
	return q
}

// OHLCVService serves price candles. The client carries one per granularity.
type OHLCVService struct{ resource }

// Get fetches candles for the bound granularity. opts may be nil.
func (s *OHLCVService) Get(ctx context.Context, opts *OHLCVOptions) (Envelope, error) {
	return s.get(ctx, opts.params())
}
