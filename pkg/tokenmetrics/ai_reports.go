package tokenmetrics

import "context"

// AIReportsOptions filters /v2/ai-reports.
type AIReportsOptions struct {
	TokenID string
	Symbol  string
	Pagination
	// Extra is passed through to the query string as given and wins over
	// typed fields. Nil entries are ignored, so they never unset a typed field.
	Extra Params
}

func (o *AIReportsOptions) params() Params {
	q := Params{}
	if o == nil {
		return q
	}
	q.setString("token_id", o.TokenID)
	q.setString("symbol", o.Symbol)
	o.Pagination.apply(q)
	q.merge(o.Extra)
	return q
}

// AIReportsService serves generated token research reports.
type AIReportsService struct{ resource }

// Get fetches /v2/ai-reports. opts may be nil.
func (s *AIReportsService) Get(ctx context.Context, opts *AIReportsOptions) (Envelope, error) {
	return s.get(ctx, opts.params())
}
