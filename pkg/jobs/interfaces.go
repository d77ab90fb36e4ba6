package jobs

import (
	"context"

	"github.com/samvad-hq/tokenmetrics-go/internal/domain"
)

// Fetcher runs a job against the API and splits the response into records.
type Fetcher interface {
	ID() string
	Fetch(ctx context.Context, job Job) ([]domain.Record, error)
}

// FetcherRegistry resolves the fetcher implementation for a given job.
type FetcherRegistry interface {
	FetcherFor(job Job) (Fetcher, error)
}
