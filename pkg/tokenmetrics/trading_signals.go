package tokenmetrics

import (
	"context"
	"strconv"
)

// Signal is the trading signal value used by the API.
type Signal int

const (
	SignalBearish Signal = -1
	SignalNone    Signal = 0
	SignalBullish Signal = 1
)

func (s Signal) String() string { return strconv.Itoa(int(s)) }

// Ptr returns a pointer to s, for use in TradingSignalsOptions.
func (s Signal) Ptr() *Signal { return &s }

// TradingSignalsOptions filters /v2/trading-signals.
type TradingSignalsOptions struct {
	TokenFilter
	DateRange
	MarketFilter
	// Signal is nil to return every signal; SignalNone is a valid filter.
	Signal *Signal
	Pagination
	// Extra is passed through to the query string as given and wins over
	// typed fields. Nil entries are ignored, so they never unset a typed field.
	Extra Params
}

func (o *TradingSignalsOptions) params() Params {
	q := Params{}
	if o == nil {
		return q
	}
	o.TokenFilter.apply(q)
	o.DateRange.apply(q)
	o.MarketFilter.apply(q)
	if o.Signal != nil {
		q["signal"] = int(*o.Signal)
	}
	o.Pagination.apply(q)
	q.merge(o.Extra)
	return q
}

// TradingSignalsService serves long/short signals.
type TradingSignalsService struct{ resource }

// Get fetches /v2/trading-signals. opts may be nil.
func (s *TradingSignalsService) Get(ctx context.Context, opts *TradingSignalsOptions) (Envelope, error) {
	return s.get(ctx, opts.params())
}
