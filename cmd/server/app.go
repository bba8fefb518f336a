package main

import (
	"context"
	"fmt"
	"html/template"
	"log/slog"

	"github.com/mamyzabawki/descgen-api/internal/config"
	"github.com/mamyzabawki/descgen-api/internal/generation"
	"github.com/mamyzabawki/descgen-api/internal/platform/gemini"
	"github.com/mamyzabawki/descgen-api/internal/platform/openai"
	"github.com/mamyzabawki/descgen-api/internal/platform/shoper"
	"github.com/mamyzabawki/descgen-api/internal/platform/xlsx"
	"github.com/mamyzabawki/descgen-api/internal/service"
	"github.com/mamyzabawki/descgen-api/internal/task"
)

// application holds the wired dependencies of the running server.
type application struct {
	config    *config.Config
	logger    *slog.Logger
	generator generation.Generator
	batch     *service.BatchService
	store     task.StatusStore
	queue     *task.Queue
	pool      *task.WorkerPool
	templates *template.Template
}

// reportWriterAdapter bridges the xlsx writer to the service interface.
type reportWriterAdapter struct {
	writer *xlsx.Writer
}

func (a reportWriterAdapter) Write(filename string, rows []service.ReportRow) (string, error) {
	out := make([]xlsx.Row, len(rows))
	for i, row := range rows {
		out[i] = xlsx.Row{ID: row.ID, Name: row.Name, HTML: row.HTML}
	}
	return a.writer.Write(filename, out)
}

// newApplication wires all components from configuration.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	generator, err := newGenerator(ctx, cfg.LLM, logger)
	if err != nil {
		return nil, err
	}

	catalogs := func(shop string) service.Catalog {
		return shoper.NewClient(shop, logger)
	}
	writer := reportWriterAdapter{writer: xlsx.NewWriter(cfg.Server.StaticDir)}

	batch := service.NewBatchService(catalogs, generator, writer, cfg.Batch.Pacing, logger)

	store := task.NewMemoryStore()
	queue := task.NewQueue(cfg.Batch.QueueSize, logger)
	pool := task.NewWorkerPool(queue, cfg.Batch.Workers, logger)

	templates, err := template.ParseGlob("web/templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	return &application{
		config:    cfg,
		logger:    logger,
		generator: generator,
		batch:     batch,
		store:     store,
		queue:     queue,
		pool:      pool,
		templates: templates,
	}, nil
}

// newGenerator builds the configured completion provider.
func newGenerator(ctx context.Context, cfg config.LLMConfig, logger *slog.Logger) (generation.Generator, error) {
	retry := generation.FixedDelay(cfg.MaxAttempts, cfg.RetryDelay)

	switch cfg.Provider {
	case "gemini":
		return gemini.NewGenerator(ctx, cfg.GeminiAPIKey, cfg.Model, retry, logger)
	default:
		return openai.NewClient(cfg.OpenAIAPIKey, cfg.Model, cfg.Timeout, retry, logger)
	}
}
