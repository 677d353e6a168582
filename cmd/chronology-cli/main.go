package main

import (
	"context"
	"fmt"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/lexops/casechron/app"
	"github.com/lexops/casechron/config"
	"github.com/lexops/casechron/internal/fileproc"
	"github.com/lexops/casechron/internal/observability"
	"github.com/lexops/casechron/services"
	"github.com/lexops/casechron/services/extraction"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

func run(ctx context.Context, cmd *cli.Command) error {
	files := cmd.Args().Slice()
	if len(files) == 0 {
		return fmt.Errorf("at least one document file is required")
	}

	cfg, err := config.New()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	// The CLI is a one-shot batch run; metrics have no scrape surface.
	cfg.Observability.MetricsEnabled = false

	logger, err := observability.NewLogger(cfg.Observability.LogLevel, "console")
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	deps, err := app.NewDependencies(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to build dependencies: %w", err)
	}

	// Fail fast before reading files: a batch run with an unreachable
	// extractor can only end in per-document warnings and an empty batch.
	if !deps.Extractor.IsAvailable(ctx) {
		return services.ErrExtractorUnavailable
	}

	docs := make([]extraction.Document, 0, len(files))
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		text, err := fileproc.ExtractText(path, data)
		if err != nil {
			logger.Warn("failed to extract text, skipping file",
				zap.String("file", path), zap.Error(err))
			text = ""
		}
		docs = append(docs, extraction.Document{Name: path, Text: text})
	}

	result, err := deps.Extraction.BuildChronology(ctx, docs, cmd.String("case-description"))
	if err != nil {
		return fmt.Errorf("chronology build failed: %w", err)
	}

	for _, warning := range result.Warnings {
		fmt.Fprintln(os.Stderr, "warning:", warning)
	}

	output := cmd.String("output")
	if output == "-" {
		fmt.Print(result.Markdown)
		return nil
	}
	if err := os.WriteFile(output, []byte(result.Markdown), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", output, err)
	}
	fmt.Fprintf(os.Stderr, "wrote %s (%d events)\n", output, len(result.Events))
	return nil
}

func main() {
	cmd := &cli.Command{
		Name:      "chronology-cli",
		Usage:     "Extract dated events from legal documents and build a chronological markdown report",
		ArgsUsage: "FILE [FILE...]",
		Action:    run,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "case-description",
				Aliases: []string{"d"},
				Usage:   "Brief description of the case to guide the analysis",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output file, or - for stdout",
				Value:   "chronology.md",
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
