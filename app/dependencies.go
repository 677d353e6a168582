// Package app wires the application's services together.
package app

import (
	"github.com/lexops/casechron/config"
	"github.com/lexops/casechron/handlers"
	"github.com/lexops/casechron/internal/observability"
	"github.com/lexops/casechron/services"
	"github.com/lexops/casechron/services/chronology"
	"github.com/lexops/casechron/services/extraction"
	"github.com/lexops/casechron/services/normalize"
	"github.com/lexops/casechron/services/providers"
	"github.com/lexops/casechron/services/providers/gemini"
	"github.com/lexops/casechron/services/report"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Dependencies holds every constructed component of the application.
type Dependencies struct {
	Config *config.Config
	Logger *zap.Logger

	Extractor  providers.Extractor
	Normalizer *normalize.Service
	Chronology *chronology.Service
	Renderer   *report.Service
	Extraction *extraction.Service
	Metrics    *observability.Metrics

	ChronologyHandler *handlers.ChronologyHandler
}

// NewDependencies builds the full dependency graph from configuration.
func NewDependencies(cfg *config.Config, logger *zap.Logger) (*Dependencies, error) {
	prompts, err := config.LoadPrompts(cfg.PromptsPath)
	if err != nil {
		return nil, services.WrapInternal("failed to load prompts", err)
	}

	extractorCfg := providers.DefaultExtractorConfig()
	extractorCfg.APIKey = cfg.Gemini.APIKey
	extractorCfg.BaseURL = cfg.Gemini.BaseURL
	extractorCfg.Model = cfg.Gemini.Model
	extractorCfg.Timeout = cfg.Gemini.Timeout
	extractorCfg.MaxRetries = cfg.Gemini.MaxRetries
	extractorCfg.RetryDelay = cfg.Gemini.RetryDelay

	extractor := gemini.NewAdapter(extractorCfg,
		gemini.WithPrompts(prompts.ExtractionInstruction, prompts.ReasoningInstruction))

	var metrics *observability.Metrics
	if cfg.Observability.MetricsEnabled {
		metrics = observability.NewMetrics(prometheus.DefaultRegisterer)
	}

	normalizer := normalize.NewService(logger.Named("normalize"))
	chron := chronology.NewService(logger.Named("chronology"))
	renderer := report.NewService()

	extractionSvc := extraction.NewService(
		extractor,
		normalizer,
		chron,
		renderer,
		metrics,
		logger.Named("extraction"),
	)

	return &Dependencies{
		Config:            cfg,
		Logger:            logger,
		Extractor:         extractor,
		Normalizer:        normalizer,
		Chronology:        chron,
		Renderer:          renderer,
		Extraction:        extractionSvc,
		Metrics:           metrics,
		ChronologyHandler: handlers.NewChronologyHandler(extractionSvc, cfg.Server.MaxUploadBytes, logger.Named("handlers")),
	}, nil
}
