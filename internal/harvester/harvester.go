package harvester

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/samvad-hq/tokenmetrics-go/internal/logger"
	"github.com/samvad-hq/tokenmetrics-go/internal/metrics"
	"github.com/samvad-hq/tokenmetrics-go/pkg/jobs"
)

// Service runs harvest passes across the configured jobs.
type Service struct {
	processor *JobProcessor
	log       logger.Logger
}

// Option customizes a Service.
type Option func(*JobProcessor)

// WithMetrics records fetch and publish counters on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(p *JobProcessor) { p.metrics = m }
}

// NewService wires a harvester with the fetcher registry, the publisher and the seen-record store.
func NewService(reg jobs.FetcherRegistry, pub EventPublisher, log logger.Logger, store Deduper, opts ...Option) *Service {
	if log == nil {
		log = logger.NopLogger{}
	}
	p := NewJobProcessor(reg, pub, log, store)
	for _, opt := range opts {
		opt(p)
	}
	return &Service{processor: p, log: log}
}

// Run executes one harvest pass over jobs in order.
// A cancelled context stops the pass early without reporting an error.
func (s *Service) Run(ctx context.Context, list []jobs.Job) error {
	if s == nil || s.processor == nil || s.processor.registry == nil {
		return fmt.Errorf("harvester service is not initialized")
	}
	if len(list) == 0 {
		return fmt.Errorf("no jobs configured for harvesting")
	}

	if errs := s.runAll(ctx, list); len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

func (s *Service) runAll(ctx context.Context, list []jobs.Job) []error {
	errs := make([]error, 0, len(list))

	for i, job := range list {
		if ctx.Err() != nil {
			break
		}

		if err := s.processor.Process(ctx, job, i); err != nil {
			if ctx.Err() != nil {
				break
			}
			errs = append(errs, err)
			s.log.ErrorObj("job harvest failed", "job_error", map[string]any{
				"job_id":   job.ID,
				"resource": job.Resource,
				"error":    err.Error(),
			})
		}

		if i < len(list)-1 && !sleep(ctx, job.RequestDelay()) {
			break
		}
	}

	return errs
}

// sleep waits for d and reports false when ctx ends first.
func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
