package tokenmetrics

import "context"

// TokensOptions filters /v2/tokens.
type TokensOptions struct {
	TokenFilter
	Category          string
	Exchange          string
	BlockchainAddress string
	Pagination
	// Extra is passed through to the query string as given and wins over
	// typed fields. Nil entries are ignored, so they never unset a typed field.
	Extra Params
}

func (o *TokensOptions) params() Params {
	q := Params{}
	if o == nil {
		return q
	}
	o.TokenFilter.apply(q)
	q.setString("category", o.Category)
	q.setString("exchange", o.Exchange)
	q.setString("blockchain_address", o.BlockchainAddress)
	o.Pagination.apply(q)
	q.merge(o.Extra)
	return q
}

// TokensService lists supported tokens and their identifiers.
type TokensService struct{ resource }

// Get fetches /v2/tokens. opts may be nil.
func (s *TokensService) Get(ctx context.Context, opts *TokensOptions) (Envelope, error) {
	return s.get(ctx, opts.params())
}
