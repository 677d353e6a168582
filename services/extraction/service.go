// Package extraction drives the chronology pipeline: per-document event
// extraction through the external collaborator, normalization and
// accumulation, the advisory reasoning pass, then sort, analysis and
// rendering.
package extraction

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/lexops/casechron/internal/observability"
	"github.com/lexops/casechron/models"
	"github.com/lexops/casechron/services"
	"github.com/lexops/casechron/services/chronology"
	"github.com/lexops/casechron/services/normalize"
	"github.com/lexops/casechron/services/providers"
	"github.com/lexops/casechron/services/report"
	"go.uber.org/zap"
)

// Document is one input document: its extracted text plus the name used
// as the authoritative source_document for its events.
type Document struct {
	Name string
	Text string
}

// Result is the outcome of one chronology build.
type Result struct {
	// Markdown is the rendered report, the only externally returned
	// artifact.
	Markdown string

	// Events is the final sorted event list behind the report.
	Events []models.Event

	// Analysis is the derived observations behind the report.
	Analysis models.Analysis

	// Warnings records per-document problems that did not abort the
	// batch (empty documents, failed extraction calls, zero yields).
	Warnings []string
}

// Service orchestrates the chronology pipeline.
type Service struct {
	extractor  providers.Extractor
	normalizer *normalize.Service
	chron      *chronology.Service
	renderer   *report.Service
	metrics    *observability.Metrics
	logger     *zap.Logger
}

// NewService creates an extraction service with all dependencies.
func NewService(
	extractor providers.Extractor,
	normalizer *normalize.Service,
	chron *chronology.Service,
	renderer *report.Service,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *Service {
	return &Service{
		extractor:  extractor,
		normalizer: normalizer,
		chron:      chron,
		renderer:   renderer,
		metrics:    metrics,
		logger:     logger,
	}
}

// BuildChronology runs the full pipeline over a batch of documents.
// It fails with a no_events domain error only when every document
// yielded nothing usable; any other unexpected failure surfaces as one
// wrapped internal error.
func (s *Service) BuildChronology(ctx context.Context, docs []Document, caseDescription string) (result *Result, err error) {
	buildID := uuid.New()
	start := time.Now()

	// Unexpected failures surface as a single generic error; internal
	// detail never reaches the rendered report.
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("chronology build panicked",
				zap.String("build_id", buildID.String()),
				zap.Any("cause", r))
			result = nil
			err = services.ErrChronologyBuild
		}
	}()

	s.logger.Info("starting chronology build",
		zap.String("build_id", buildID.String()),
		zap.Int("documents", len(docs)))

	if len(docs) == 0 {
		return nil, services.ErrNoDocuments
	}

	result = &Result{Warnings: []string{}}

	// Step 1: extract and normalize per document. Failures here are
	// soft: the document is skipped and the batch continues.
	accumulated := s.extractFromDocuments(ctx, docs, buildID, result)

	// Step 2: batch check. An empty accumulation buffer is the only
	// condition that aborts the whole request.
	if len(accumulated) == 0 {
		s.logger.Warn("no events extracted from any document",
			zap.String("build_id", buildID.String()))
		return nil, services.ErrNoEvents.WithDetail("documents", len(docs))
	}
	s.metrics.RecordEvents(len(accumulated))

	// Step 3: advisory reasoning pass. Degraded-but-present beats
	// aborting: any failure falls back to the pre-reasoning list.
	chosen := s.reasonOverEvents(ctx, accumulated, caseDescription, buildID)

	// Step 4: sort, analyze, render.
	sorted := s.chron.Sort(chosen)
	analysis := s.chron.Analyze(sorted)
	markdown := s.renderer.Render(sorted, analysis)

	result.Markdown = markdown
	result.Events = sorted
	result.Analysis = analysis

	s.metrics.ObserveBuildDuration(time.Since(start))
	s.logger.Info("chronology build completed",
		zap.String("build_id", buildID.String()),
		zap.Int("events", len(sorted)),
		zap.Int("warnings", len(result.Warnings)),
		zap.Duration("elapsed", time.Since(start)))

	return result, nil
}

// extractFromDocuments runs the extractor over each document, normalizes
// the raw records with the document name as authoritative source, and
// accumulates the survivors.
func (s *Service) extractFromDocuments(ctx context.Context, docs []Document, buildID uuid.UUID, result *Result) []models.Event {
	var accumulated []models.Event

	for _, doc := range docs {
		if doc.Text == "" {
			s.warn(result, buildID, "document "+doc.Name+" has no text content, skipping")
			s.metrics.RecordDocument("empty")
			continue
		}

		raws, err := s.extractor.ExtractEvents(ctx, doc.Text, doc.Name)
		if err != nil {
			s.metrics.RecordExtractorCall("extract", "error")
			s.metrics.RecordDocument("failed")
			s.logger.Warn("event extraction failed for document",
				zap.String("build_id", buildID.String()),
				zap.String("document", doc.Name),
				zap.Bool("retryable", providers.IsRetryable(err)),
				zap.Error(services.WrapExternal("event extraction failed for "+doc.Name, err)))
			s.warn(result, buildID, "event extraction failed for "+doc.Name)
			continue
		}
		s.metrics.RecordExtractorCall("extract", "ok")

		events := s.normalizer.NormalizeAll(raws, doc.Name)
		if len(events) == 0 {
			s.warn(result, buildID, "no usable events extracted from "+doc.Name)
			s.metrics.RecordDocument("empty")
			continue
		}

		s.logger.Debug("document extracted",
			zap.String("build_id", buildID.String()),
			zap.String("document", doc.Name),
			zap.Int("events", len(events)))
		s.metrics.RecordDocument("ok")
		accumulated = append(accumulated, events...)
	}

	return accumulated
}

// reasonOverEvents runs the second model pass and re-normalizes its
// output. The reasoning step is advisory: unparsable or unusable output
// means the original list is used instead.
func (s *Service) reasonOverEvents(ctx context.Context, events []models.Event, caseDescription string, buildID uuid.UUID) []models.Event {
	raws, err := s.extractor.ReasonOverEvents(ctx, events, caseDescription)
	if err != nil {
		s.metrics.RecordExtractorCall("reason", "error")
		s.logger.Warn("reasoning pass failed, keeping extracted events",
			zap.String("build_id", buildID.String()),
			zap.Error(err))
		return events
	}
	s.metrics.RecordExtractorCall("reason", "ok")

	// Reasoned records carry their own source_document claims; there is
	// no authoritative name to enforce at this stage.
	reasoned := s.normalizer.NormalizeAll(raws, "")
	if len(reasoned) == 0 {
		s.logger.Warn("reasoning pass produced no usable events, keeping extracted events",
			zap.String("build_id", buildID.String()))
		return events
	}

	s.logger.Debug("reasoning pass applied",
		zap.String("build_id", buildID.String()),
		zap.Int("events_in", len(events)),
		zap.Int("events_out", len(reasoned)))
	return reasoned
}

func (s *Service) warn(result *Result, buildID uuid.UUID, msg string) {
	s.logger.Warn(msg, zap.String("build_id", buildID.String()))
	result.Warnings = append(result.Warnings, msg)
}
