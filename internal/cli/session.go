package cli

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/rsahil/equityscope/internal/config"
	"github.com/rsahil/equityscope/internal/dataflows"
	"github.com/rsahil/equityscope/internal/display"
	"github.com/rsahil/equityscope/internal/llm"
	"github.com/rsahil/equityscope/internal/pipeline"
	"github.com/rsahil/equityscope/internal/search"
)

// buildDeps wires the production collaborators. Longport is optional
// and only attached when credentials are configured; everything else is
// required.
func buildDeps(ctx context.Context, cfg *config.Config) (pipeline.Deps, error) {
	inferencer, err := llm.NewClient(ctx, cfg)
	if err != nil {
		return pipeline.Deps{}, fmt.Errorf("failed to create LLM client: %w", err)
	}

	yahoo := dataflows.NewYahooClient(cfg)

	var longport *dataflows.LongportClient
	if cfg.HasLongport() {
		longport, err = dataflows.NewLongportClient(cfg)
		if err != nil {
			log.Printf("[CLI] longport unavailable, using yahoo only: %v", err)
			longport = nil
		}
	}

	return pipeline.Deps{
		LLM:          inferencer,
		Search:       search.NewGoogleClient(cfg),
		Market:       dataflows.NewMarketRouter(yahoo, longport),
		News:         dataflows.NewNewsFeedClient(cfg),
		NewsFallback: dataflows.NewGoogleNewsClient(cfg),
		Profile:      yahoo,
	}, nil
}

// runAnalysis executes one full analysis and renders per-stage progress
// plus the final report.
func runAnalysis(ctx context.Context, cfg *config.Config, companyName string) error {
	deps, err := buildDeps(ctx, cfg)
	if err != nil {
		return err
	}

	p := pipeline.New(cfg, deps)

	display.Info(fmt.Sprintf("Analyzing %s...", companyName))
	started := time.Now()

	order := []string{
		pipeline.StageResolver,
		pipeline.StageFundamentals,
		pipeline.StagePrice,
		pipeline.StageNews,
		pipeline.StageProfile,
		pipeline.StageAnalyst,
	}

	events := p.Run(ctx, companyName)

	var final *pipeline.State
	for _, stageName := range order {
		display.StageStarted(stageName)
		result, ok := <-events
		if !ok {
			return fmt.Errorf("analysis stream ended early at %s", stageName)
		}
		display.StageFinished(result.Stage, result.Err)
		final = result.State
	}

	display.Info(fmt.Sprintf("Completed in %s", time.Since(started).Round(time.Second)))
	display.Report(final)

	return nil
}
