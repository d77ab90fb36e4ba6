package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/samvad-hq/tokenmetrics-go/internal/config"
	"github.com/samvad-hq/tokenmetrics-go/internal/harvester"
	"github.com/samvad-hq/tokenmetrics-go/internal/logger"
	"github.com/samvad-hq/tokenmetrics-go/internal/metrics"
	"github.com/samvad-hq/tokenmetrics-go/internal/storage"
	"github.com/samvad-hq/tokenmetrics-go/pkg/jobs"
	"github.com/samvad-hq/tokenmetrics-go/pkg/publishers"
	"github.com/samvad-hq/tokenmetrics-go/pkg/tokenmetrics"
)

// Harvester is the long-running runtime: it polls the configured jobs on a
// fixed interval and owns the publishers, the store and the metrics listener.
type Harvester struct {
	cfg             *config.Config
	jobReg          *jobs.Registry
	fanout          *publishers.Fanout
	service         *harvester.Service
	harvestInterval time.Duration
	log             logger.Logger
	store           storage.Store
	metricsServer   *http.Server
}

// NewHarvester builds a harvester runtime from config files.
func NewHarvester(ctx context.Context, cfg *config.Config, log logger.Logger) (*Harvester, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	if ctx == nil {
		ctx = context.Background()
	}

	client, err := tokenmetrics.New(cfg.APIKey,
		tokenmetrics.WithBaseURL(cfg.APIBaseURL),
		tokenmetrics.WithTimeout(cfg.APITimeout),
		tokenmetrics.WithLogger(log),
	)
	if err != nil {
		return nil, fmt.Errorf("build api client: %w", err)
	}

	jobReg, err := jobs.LoadRegistry(cfg.JobsFile)
	if err != nil {
		return nil, fmt.Errorf("load jobs registry: %w", err)
	}
	jobList := jobReg.All()
	jobIDs := make([]string, 0, len(jobList))
	for _, j := range jobList {
		jobIDs = append(jobIDs, j.ID)
	}
	log.InfoObj("jobs registry loaded", "jobs_meta", map[string]any{
		"count": len(jobIDs),
		"ids":   jobIDs,
	})

	fetchers, err := jobs.DefaultFetcherRegistry(client)
	if err != nil {
		return nil, fmt.Errorf("build fetcher registry: %w", err)
	}

	publisherReg, err := publishers.LoadRegistry(cfg.PublishersFile)
	if err != nil {
		return nil, fmt.Errorf("load publishers registry: %w", err)
	}
	enabledPublishers := publisherReg.Enabled()
	if len(enabledPublishers) == 0 {
		return nil, fmt.Errorf("no publishers configured")
	}

	pubClients, err := publishers.BuildAll(ctx, publishers.DefaultRegistry(), enabledPublishers, log)
	if err != nil {
		return nil, fmt.Errorf("build publishers: %w", err)
	}
	fanout := publishers.NewFanout(pubClients)
	publisherSummaries := make([]map[string]string, 0, len(enabledPublishers))
	for _, pubCfg := range enabledPublishers {
		publisherSummaries = append(publisherSummaries, map[string]string{
			"id":   pubCfg.ID,
			"type": pubCfg.Type,
		})
	}
	log.InfoObj("publishers registry loaded", "publishers_meta", map[string]any{
		"count":      len(publisherSummaries),
		"publishers": publisherSummaries,
	})

	store, err := storage.NewStore(cfg.StorageType, cfg.BBoltPath, storage.Options{
		RecordTTL:       cfg.StorageTTL,
		CleanupInterval: cfg.StorageCleanupInterval,
	})
	if err != nil {
		_ = fanout.Close()
		return nil, fmt.Errorf("init storage: %w", err)
	}
	log.InfoObj("storage initialized", "storage_config", map[string]any{
		"type":                     cfg.StorageType,
		"path":                     cfg.BBoltPath,
		"record_ttl_seconds":       int(cfg.StorageTTL.Seconds()),
		"cleanup_interval_seconds": int(cfg.StorageCleanupInterval.Seconds()),
	})

	m := metrics.New()
	var metricsServer *http.Server
	if cfg.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", m.Handler())
		metricsServer = &http.Server{
			Addr:              cfg.MetricsAddr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
	}

	return &Harvester{
		cfg:             cfg,
		jobReg:          jobReg,
		fanout:          fanout,
		service:         harvester.NewService(fetchers, fanout, log, store, harvester.WithMetrics(m)),
		harvestInterval: cfg.HarvestInterval,
		log:             log,
		store:           store,
		metricsServer:   metricsServer,
	}, nil
}

// Run starts the harvest loop until the context is cancelled.
func (h *Harvester) Run(ctx context.Context) error {
	if h == nil || h.service == nil {
		return fmt.Errorf("harvester is not initialized")
	}
	defer h.shutdown()

	h.startMetrics()

	enabled := h.jobReg.Enabled()
	if len(enabled) == 0 {
		h.log.WarnObj("no enabled jobs; harvester idle", "jobs_file", h.cfg.JobsFile)
		<-ctx.Done()
		return nil
	}

	h.log.InfoObj("harvester loop starting", "harvester_state", map[string]any{
		"jobs_count":       len(enabled),
		"publishers_count": h.fanout.Size(),
		"harvest_interval": h.harvestInterval.String(),
	})

	if err := h.runOnce(ctx, enabled); err != nil {
		h.log.ErrorObj("initial harvest failed", "error", err.Error())
	}

	ticker := time.NewTicker(h.harvestInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			h.log.InfoObj("harvester loop exiting", "reason", ctx.Err().Error())
			return nil
		case <-ticker.C:
			if err := h.runOnce(ctx, enabled); err != nil {
				h.log.ErrorObj("scheduled harvest failed", "error", err.Error())
			}
		}
	}
}

// RunOnce performs one harvest pass over the enabled jobs and releases resources.
func (h *Harvester) RunOnce(ctx context.Context) error {
	if h == nil || h.service == nil {
		return fmt.Errorf("harvester is not initialized")
	}
	defer h.shutdown()
	return h.runOnce(ctx, h.jobReg.Enabled())
}

// runOnce performs a single harvest pass across all enabled jobs.
func (h *Harvester) runOnce(ctx context.Context, list []jobs.Job) error {
	start := time.Now()
	h.log.InfoObj("harvest started", "harvest_meta", map[string]any{
		"jobs_count": len(list),
		"started_at": start.UTC(),
	})
	if err := h.service.Run(ctx, list); err != nil {
		return err
	}
	if n, err := h.store.Len(); err == nil {
		h.log.InfoObj("harvest completed", "harvest_meta", map[string]any{
			"jobs_count":      len(list),
			"elapsed_ms":      time.Since(start).Milliseconds(),
			"tracked_records": n,
		})
	}
	return nil
}

func (h *Harvester) startMetrics() {
	if h.metricsServer == nil {
		return
	}
	go func() {
		h.log.InfoObj("metrics listener starting", "metrics_addr", h.metricsServer.Addr)
		if err := h.metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			h.log.ErrorObj("metrics listener failed", "error", err.Error())
		}
	}()
}

// shutdown releases the metrics listener, the publishers and the store, logging any errors.
func (h *Harvester) shutdown() {
	if h.metricsServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := h.metricsServer.Shutdown(ctx); err != nil {
			h.log.ErrorObj("metrics listener shutdown failed", "error", err.Error())
		}
		cancel()
	}
	if err := h.fanout.Close(); err != nil {
		h.log.ErrorObj("publishers close failed", "error", err.Error())
	}
	if h.store != nil {
		if err := h.store.Close(); err != nil {
			h.log.ErrorObj("storage close failed", "error", err.Error())
		}
	}
}
