package tokenmetrics

import (
	"maps"

	"github.com/samvad-hq/tokenmetrics-go/pkg/httpclient"
)

// Client is safe for concurrent use; calls share no mutable state.
type Client struct {
	cfg  Config
	http httpclient.Client
	log  Logger

	Tokens         *TokensService
	HourlyOHLCV    *OHLCVService
	DailyOHLCV     *OHLCVService
	InvestorGrades *InvestorGradesService
	TraderGrades   *TraderGradesService
	TraderIndices  *TraderIndicesService
	MarketMetrics  *MarketMetricsService
	AIAgent        *AIAgentService
	AIReports      *AIReportsService
	TradingSignals *TradingSignalsService
}

// New builds a client for apiKey. An empty key fails here, before any network call.
func New(apiKey string, opts ...Option) (*Client, error) {
	return NewFromConfig(Config{APIKey: apiKey}, opts...)
}

// NewFromConfig builds a client from an explicit configuration; opts are applied on top.
func NewFromConfig(cfg Config, opts ...Option) (*Client, error) {
	o := options{cfg: cfg}
	o.cfg.Headers = maps.Clone(cfg.Headers)
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	o.cfg = o.cfg.normalize()
	if err := o.cfg.validate(); err != nil {
		return nil, err
	}

	hc := o.http
	if hc == nil {
		hc = httpclient.NewRestyClient(o.cfg.Timeout)
	}

	c := &Client{
		cfg:  o.cfg,
		http: hc,
		log:  ensureLogger(o.logger),
	}
	c.Tokens = &TokensService{resource{client: c, path: PathTokens}}
	c.HourlyOHLCV = &OHLCVService{resource{client: c, path: PathHourlyOHLCV}}
	c.DailyOHLCV = &OHLCVService{resource{client: c, path: PathDailyOHLCV}}
	c.InvestorGrades = &InvestorGradesService{resource{client: c, path: PathInvestorGrades}}
	c.TraderGrades = &TraderGradesService{resource{client: c, path: PathTraderGrades}}
	c.TraderIndices = &TraderIndicesService{resource{client: c, path: PathTraderIndices}}
	c.MarketMetrics = &MarketMetricsService{resource{client: c, path: PathMarketMetrics}}
	c.AIAgent = &AIAgentService{resource{client: c, path: PathAIAgent}}
	c.AIReports = &AIReportsService{resource{client: c, path: PathAIReports}}
	c.TradingSignals = &TradingSignalsService{resource{client: c, path: PathTradingSignals}}
	return c, nil
}

// Config returns a copy of the client's configuration.
func (c *Client) Config() Config {
	cfg := c.cfg
	cfg.Headers = maps.Clone(c.cfg.Headers)
	return cfg
}
