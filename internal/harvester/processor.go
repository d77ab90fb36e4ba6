package harvester

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/samvad-hq/tokenmetrics-go/internal/domain"
	"github.com/samvad-hq/tokenmetrics-go/internal/logger"
	"github.com/samvad-hq/tokenmetrics-go/internal/metrics"
	"github.com/samvad-hq/tokenmetrics-go/pkg/jobs"
	"github.com/samvad-hq/tokenmetrics-go/pkg/publishers"
)

// JobProcessor fetches one job, drops records already published and publishes the rest.
type JobProcessor struct {
	registry jobs.FetcherRegistry
	pub      EventPublisher
	log      logger.Logger
	deduper  Deduper
	metrics  *metrics.Metrics
}

// NewJobProcessor builds a processor; a nil deduper publishes every record.
func NewJobProcessor(reg jobs.FetcherRegistry, pub EventPublisher, log logger.Logger, deduper Deduper) *JobProcessor {
	if log == nil {
		log = logger.NopLogger{}
	}
	return &JobProcessor{
		registry: reg,
		pub:      pub,
		log:      log,
		deduper:  deduper,
	}
}

// Process runs job; idx is its position in the current pass and only used for logging.
func (p *JobProcessor) Process(ctx context.Context, job jobs.Job, idx int) error {
	fetcher, err := p.registry.FetcherFor(job)
	if err != nil {
		p.metrics.JobError(job.ID, "fetcher")
		return fmt.Errorf("resolve fetcher for job %s: %w", job.ID, err)
	}

	start := time.Now()
	records, err := fetcher.Fetch(ctx, job)
	elapsed := time.Since(start)
	if err != nil {
		p.metrics.JobError(job.ID, "fetch")
		return fmt.Errorf("fetch job %s: %w", job.ID, err)
	}
	p.metrics.ObserveFetch(job.Resource, elapsed, len(records))

	fresh := p.filterNewRecords(job, records)
	p.metrics.Skipped(job.Resource, len(records)-len(fresh))

	published, err := p.publish(ctx, job, fresh)
	p.metrics.Published(job.Resource, published)
	if err != nil {
		p.metrics.JobError(job.ID, "publish")
	}

	p.log.InfoObj("job harvest completed", "job_result", map[string]any{
		"job_id":            job.ID,
		"job_index":         idx,
		"resource":          job.Resource,
		"records_fetched":   len(records),
		"records_fresh":     len(fresh),
		"records_published": published,
		"elapsed_ms":        elapsed.Milliseconds(),
	})
	return err
}

// filterNewRecords drops records the deduper has seen. Lookup failures keep the record.
func (p *JobProcessor) filterNewRecords(job jobs.Job, records []domain.Record) []domain.Record {
	if p.deduper == nil || len(records) == 0 {
		return records
	}

	out := make([]domain.Record, 0, len(records))
	for _, r := range records {
		seen, err := p.deduper.SeenRecord(r.ID)
		if err != nil {
			p.log.WarnObj("seen-record lookup failed", "dedupe_error", map[string]any{
				"job_id":    job.ID,
				"record_id": r.ID,
				"error":     err.Error(),
			})
			out = append(out, r)
			continue
		}
		if !seen {
			out = append(out, r)
		}
	}
	return out
}

// publish sends each record and marks those accepted by at least one sink.
func (p *JobProcessor) publish(ctx context.Context, job jobs.Job, records []domain.Record) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}
	if p.pub == nil {
		p.log.WarnObj("no publisher configured; records dropped", "job_id", job.ID)
		return 0, nil
	}

	var errs []error
	delivered := make([]string, 0, len(records))
	for _, r := range records {
		if ctx.Err() != nil {
			errs = append(errs, ctx.Err())
			break
		}
		n, err := p.pub.Publish(ctx, publishers.NewEvent(job.ID, r))
		if err != nil {
			errs = append(errs, fmt.Errorf("publish record %s: %w", r.ID, err))
		}
		if n > 0 {
			delivered = append(delivered, r.ID)
		}
	}

	if p.deduper != nil && len(delivered) > 0 {
		if err := p.deduper.MarkRecords(delivered...); err != nil {
			errs = append(errs, fmt.Errorf("mark %d records: %w", len(delivered), err))
		}
	}
	return len(delivered), errors.Join(errs...)
}
