package tokenmetrics

import (
	"context"
	"net/http"
	"time"
)

// API paths bound by the facades.
const (
	PathTokens         = "/v2/tokens"
	PathHourlyOHLCV    = "/v2/hourly-ohlcv"
	PathDailyOHLCV     = "/v2/daily-ohlcv"
	PathInvestorGrades = "/v2/investor-grades"
	PathTraderGrades   = "/v2/trader-grades"
	PathTraderIndices  = "/v2/trader-indices"
	PathMarketMetrics  = "/v2/market-metrics"
	PathAIAgent        = "/v2/tmai"
	PathAIReports      = "/v2/ai-reports"
	PathTradingSignals = "/v2/trading-signals"
)

// resource binds a facade to its fixed path.
type resource struct {
	client *Client
	path   string
}

// Path returns the API path the facade is bound to.
func (r resource) Path() string { return r.path }

func (r resource) get(ctx context.Context, q Params) (Envelope, error) {
	return r.client.Do(ctx, Request{Method: http.MethodGet, Path: r.path, Query: q})
}

// Pagination is shared by every list endpoint.
type Pagination struct {
	Limit int
	Page  int
}

func (o Pagination) apply(q Params) {
	q.setInt("limit", o.Limit)
	q.setInt("page", o.Page)
}

// DateRange filters by startDate/endDate (sent as YYYY-MM-DD).
type DateRange struct {
	StartDate time.Time
	EndDate   time.Time
}

func (o DateRange) apply(q Params) {
	q.setDate("startDate", o.StartDate)
	q.setDate("endDate", o.EndDate)
}

// TokenFilter selects tokens; each field accepts a comma-separated list.
type TokenFilter struct {
	TokenID   string
	TokenName string
	Symbol    string
}

func (o TokenFilter) apply(q Params) {
	q.setString("token_id", o.TokenID)
	q.setString("token_name", o.TokenName)
	q.setString("symbol", o.Symbol)
}

// MarketFilter narrows results by listing and minimum size.
type MarketFilter struct {
	Category string
	Exchange string
	// Minimum market cap, fully diluted valuation and volume, in USD.
	MarketCap float64
	FDV       float64
	Volume    float64
}

func (o MarketFilter) apply(q Params) {
	q.setString("category", o.Category)
	q.setString("exchange", o.Exchange)
	q.setFloat("marketcap", o.MarketCap)
	q.setFloat("fdv", o.FDV)
	q.setFloat("volume", o.Volume)
}
