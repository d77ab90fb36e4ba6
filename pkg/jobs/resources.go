package jobs

import (
	"context"
	"fmt"
	"strings"

	"github.com/samvad-hq/tokenmetrics-go/internal/domain"
	"github.com/samvad-hq/tokenmetrics-go/pkg/tokenmetrics"
)

// Resource names accepted in job files. They match the API path segment.
const (
	ResourceTokens         = "tokens"
	ResourceHourlyOHLCV    = "hourly-ohlcv"
	ResourceDailyOHLCV     = "daily-ohlcv"
	ResourceInvestorGrades = "investor-grades"
	ResourceTraderGrades   = "trader-grades"
	ResourceTraderIndices  = "trader-indices"
	ResourceMarketMetrics  = "market-metrics"
	ResourceAIReports      = "ai-reports"
	ResourceTradingSignals = "trading-signals"
	ResourceAIAgent        = "ai-agent"
)

var knownResources = map[string]struct{}{
	ResourceTokens:         {},
	ResourceHourlyOHLCV:    {},
	ResourceDailyOHLCV:     {},
	ResourceInvestorGrades: {},
	ResourceTraderGrades:   {},
	ResourceTraderIndices:  {},
	ResourceMarketMetrics:  {},
	ResourceAIReports:      {},
	ResourceTradingSignals: {},
	ResourceAIAgent:        {},
}

// IsKnownResource reports whether resource names a supported API resource.
func IsKnownResource(resource string) bool {
	_, ok := knownResources[strings.ToLower(strings.TrimSpace(resource))]
	return ok
}

type getFunc func(ctx context.Context, params tokenmetrics.Params) (tokenmetrics.Envelope, error)

// resourceFetcher runs a list endpoint; job params travel as pass-through query params.
type resourceFetcher struct {
	resource string
	get      getFunc
}

func (f *resourceFetcher) ID() string { return f.resource }

func (f *resourceFetcher) Fetch(ctx context.Context, job Job) ([]domain.Record, error) {
	if !strings.EqualFold(job.Resource, f.resource) {
		return nil, fmt.Errorf("%s fetcher received incompatible job resource %q", f.resource, job.Resource)
	}

	env, err := f.get(ctx, tokenmetrics.Params(job.Params))
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", f.resource, err)
	}
	records, err := recordsFromEnvelope(job, env)
	if err != nil {
		return nil, fmt.Errorf("split %s response: %w", f.resource, err)
	}
	return records, nil
}

// agentFetcher asks the AI agent the job's prompt; the whole envelope is one record.
type agentFetcher struct {
	agent *tokenmetrics.AIAgentService
}

func (f *agentFetcher) ID() string { return ResourceAIAgent }

func (f *agentFetcher) Fetch(ctx context.Context, job Job) ([]domain.Record, error) {
	if !strings.EqualFold(job.Resource, ResourceAIAgent) {
		return nil, fmt.Errorf("%s fetcher received incompatible job resource %q", ResourceAIAgent, job.Resource)
	}

	env, err := f.agent.Ask(ctx, job.Prompt)
	if err != nil {
		return nil, fmt.Errorf("ask %s: %w", ResourceAIAgent, err)
	}
	answer, ok := env.Answer()
	if !ok {
		return nil, fmt.Errorf("ask %s: %w", ResourceAIAgent, tokenmetrics.ErrNoAnswer)
	}
	return []domain.Record{{
		ID:       hashRecord(ResourceAIAgent, []byte(job.Prompt+"\x00"+answer)),
		Resource: ResourceAIAgent,
		Symbol:   ParamString(job, "symbol", ""),
		Payload:  env.Raw(),
	}}, nil
}

func resourceFetchersFor(c *tokenmetrics.Client) []Fetcher {
	return []Fetcher{
		&resourceFetcher{resource: ResourceTokens, get: func(ctx context.Context, p tokenmetrics.Params) (tokenmetrics.Envelope, error) {
			return c.Tokens.Get(ctx, &tokenmetrics.TokensOptions{Extra: p})
		}},
		&resourceFetcher{resource: ResourceHourlyOHLCV, get: func(ctx context.Context, p tokenmetrics.Params) (tokenmetrics.Envelope, error) {
			return c.HourlyOHLCV.Get(ctx, &tokenmetrics.OHLCVOptions{Extra: p})
		}},
		&resourceFetcher{resource: ResourceDailyOHLCV, get: func(ctx context.Context, p tokenmetrics.Params) (tokenmetrics.Envelope, error) {
			return c.DailyOHLCV.Get(ctx, &tokenmetrics.OHLCVOptions{Extra: p})
		}},
		&resourceFetcher{resource: ResourceInvestorGrades, get: func(ctx context.Context, p tokenmetrics.Params) (tokenmetrics.Envelope, error) {
			return c.InvestorGrades.Get(ctx, &tokenmetrics.InvestorGradesOptions{Extra: p})
		}},
		&resourceFetcher{resource: ResourceTraderGrades, get: func(ctx context.Context, p tokenmetrics.Params) (tokenmetrics.Envelope, error) {
			return c.TraderGrades.Get(ctx, &tokenmetrics.TraderGradesOptions{Extra: p})
		}},
		&resourceFetcher{resource: ResourceTraderIndices, get: func(ctx context.Context, p tokenmetrics.Params) (tokenmetrics.Envelope, error) {
			return c.TraderIndices.Get(ctx, &tokenmetrics.RangeOptions{Extra: p})
		}},
		&resourceFetcher{resource: ResourceMarketMetrics, get: func(ctx context.Context, p tokenmetrics.Params) (tokenmetrics.Envelope, error) {
			return c.MarketMetrics.Get(ctx, &tokenmetrics.RangeOptions{Extra: p})
		}},
		&resourceFetcher{resource: ResourceAIReports, get: func(ctx context.Context, p tokenmetrics.Params) (tokenmetrics.Envelope, error) {
			return c.AIReports.Get(ctx, &tokenmetrics.AIReportsOptions{Extra: p})
		}},
		&resourceFetcher{resource: ResourceTradingSignals, get: func(ctx context.Context, p tokenmetrics.Params) (tokenmetrics.Envelope, error) {
			return c.TradingSignals.Get(ctx, &tokenmetrics.TradingSignalsOptions{Extra: p})
		}},
		&agentFetcher{agent: c.AIAgent},
	}
}
