package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/samvad-hq/tokenmetrics-go/internal/app"
	"github.com/samvad-hq/tokenmetrics-go/internal/config"
	"github.com/samvad-hq/tokenmetrics-go/internal/logger"
)

func main() {
	once := flag.Bool("once", false, "run a single harvest pass and exit")
	jobsFile := flag.String("jobs", "", "override the jobs file path")
	publishersFile := flag.String("publishers", "", "override the publishers file path")
	flag.Parse()

	if err := run(*once, *jobsFile, *publishersFile); err != nil {
		fmt.Fprintf(os.Stderr, "harvester failed: %v\n", err)
		os.Exit(1)
	}
}

func run(once bool, jobsFile, publishersFile string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if jobsFile != "" {
		cfg.JobsFile = jobsFile
	}
	if publishersFile != "" {
		cfg.PublishersFile = publishersFile
	}

	log, err := logger.Init(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Close()

	logger.InfoObj("harvester starting", "config", cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	h, err := app.NewHarvester(ctx, cfg, log)
	if err != nil {
		logger.ErrorObj("failed to initialize harvester", "error", err.Error())
		return err
	}

	if once {
		if err := h.RunOnce(ctx); err != nil {
			return fmt.Errorf("harvest pass: %w", err)
		}
		return nil
	}
	if err := h.Run(ctx); err != nil {
		return fmt.Errorf("harvester run: %w", err)
	}
	return nil
}
