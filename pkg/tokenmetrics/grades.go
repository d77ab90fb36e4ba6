package tokenmetrics

import "context"

// InvestorGradesOptions filters /v2/investor-grades.
type InvestorGradesOptions struct {
	TokenFilter
	DateRange
	MarketFilter
	// InvestorGrade is a minimum grade (0-100).
	InvestorGrade float64
	Pagination
	// Extra is passed through to the query string as given and wins over
	// typed fields. Nil entries are ignored, so they never unset a typed field.
	Extra Params
}

func (o *InvestorGradesOptions) params() Params {
	q := Params{}
	if o == nil {
		return q
	}
	o.TokenFilter.apply(q)
	o.DateRange.apply(q)
	o.MarketFilter.apply(q)
	q.setFloat("investorGrade", o.InvestorGrade)
	o.Pagination.apply(q)
	q.merge(o.Extra)
	return q
}

// InvestorGradesService serves long-term investor grades.
type InvestorGradesService struct{ resource }

// Get fetches /v2/investor-grades. opts may be nil.
func (s *InvestorGradesService) Get(ctx context.Context, opts *InvestorGradesOptions) (Envelope, error) {
	return s.get(ctx, opts.params())
}

// TraderGradesOptions filters /v2/trader-grades.
type TraderGradesOptions struct {
	TokenFilter
	DateRange
	MarketFilter
	TraderGrade              float64
	TraderGradePercentChange float64
	Pagination
	// Extra is passed through to the query string as given and wins over
	// typed fields. Nil entries are ignored, so they never unset a typed field.
	Extra Params
}

func (o *TraderGradesOptions) params() Params {
	q := Params{}
	if o == nil {
		return q
	}
	o.TokenFilter.apply(q)
	o.DateRange.apply(q)
	o.MarketFilter.apply(q)
	q.setFloat("traderGrade", o.TraderGrade)
	q.setFloat("traderGradePercentChange", o.TraderGradePercentChange)
	o.Pagination.apply(q)
	q.merge(o.Extra)
	return q
}

// TraderGradesService serves short-term trader grades.
type TraderGradesService struct{ resource }

// Get fetches /v2/trader-grades. opts may be nil.
func (s *TraderGradesService) Get(ctx context.Context, opts *TraderGradesOptions) (Envelope, error) {
	return s.get(ctx, opts.params())
}
