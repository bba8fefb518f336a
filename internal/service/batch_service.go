// Package service contains the batch orchestration: fetching product
// records from the catalog platform and generating one description per
// record into a result report.
package service

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/mamyzabawki/descgen-api/internal/generation"
	"github.com/mamyzabawki/descgen-api/internal/platform/shoper"
)

// Fatal batch errors. Nothing is written when one of these occurs.
var (
	ErrNoIdentifiers = errors.New("no product identifiers provided")
	ErrNoProducts    = errors.New("no products fetched from catalog")
)

// Catalog is the per-shop view of the catalog platform.
type Catalog interface {
	Authenticate(ctx context.Context, user, password string) (string, error)
	FetchProducts(ctx context.Context, token string, ids []string) []shoper.Product
}

// CatalogFactory builds a Catalog for one shop name.
type CatalogFactory func(shop string) Catalog

// ReportRow is one line of the batch result.
type ReportRow struct {
	ID   string
	Name string
	HTML string
}

// ReportWriter persists the batch result and returns the written file path.
type ReportWriter interface {
	Write(filename string, rows []ReportRow) (string, error)
}

// BatchRequest describes one batch run.
type BatchRequest struct {
	Shop     string
	User     string
	Password string
	// Model is accepted from the upload form for forward compatibility but
	// the active provider's configured model is what generates; see the
	// upstream behavior this mirrors.
	Model    string
	IDs      []string
	Filename string
}

// ProgressFunc is called after each processed record.
type ProgressFunc func(done, total int)

// BatchService runs batches sequentially: one catalog fetch pass, then one
// completion call per record with a pacing delay between records.
type BatchService struct {
	catalogs  CatalogFactory
	generator generation.Generator
	writer    ReportWriter
	pacing    time.Duration
	logger    *slog.Logger
}

// NewBatchService wires a batch service from its collaborators.
func NewBatchService(
	catalogs CatalogFactory,
	generator generation.Generator,
	writer ReportWriter,
	pacing time.Duration,
	logger *slog.Logger,
) *BatchService {
	return &BatchService{
		catalogs:  catalogs,
		generator: generator,
		writer:    writer,
		pacing:    pacing,
		logger:    logger,
	}
}

// ParseIdentifiers reads a newline-delimited identifier list, trimming
// whitespace and ignoring blank lines.
func ParseIdentifiers(r io.Reader) ([]string, error) {
	var ids []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		ids = append(ids, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read identifier list: %w", err)
	}
	return ids, nil
}

// Run executes one batch. Records are processed strictly in the order the
// catalog returned them; a per-record generation failure is recorded as an
// error marker in that row and the run continues. It returns the written
// file path and the number of result rows.
func (s *BatchService) Run(ctx context.Context, req BatchRequest, progress ProgressFunc) (string, int, error) {
	if len(req.IDs) == 0 {
		return "", 0, ErrNoIdentifiers
	}

	log := s.logger.With("shop", req.Shop, "requested", len(req.IDs))
	if req.Model != "" {
		log = log.With("requested_model", req.Model)
	}

	catalog := s.catalogs(req.Shop)
	token, err := catalog.Authenticate(ctx, req.User, req.Password)
	if err != nil {
		return "", 0, err
	}

	products := catalog.FetchProducts(ctx, token, req.IDs)
	if len(products) == 0 {
		return "", 0, ErrNoProducts
	}
	log.Info("catalog fetch finished", "fetched", len(products))

	rows := make([]ReportRow, 0, len(products))
	for i, product := range products {
		if i > 0 {
			// Pacing between completion calls keeps the provider's rate
			// limits at bay.
			select {
			case <-time.After(s.pacing):
			case <-ctx.Done():
				return "", 0, ctx.Err()
			}
		}

		input := product.Input()
		name := input.Name
		html, err := s.generator.Generate(ctx, generation.BuildPrompt(input))
		if err != nil {
			log.Warn("description generation failed for record",
				"product_id", product.ProductID.String(),
				"name", input.Name,
				"error", err)
			html = "Błąd: " + err.Error()
			// Error rows still need a readable name column.
			if name == "" {
				name = "Brak nazwy"
			}
		} else {
			log.Info("description generated",
				"product_id", product.ProductID.String(),
				"name", input.Name,
				"progress", fmt.Sprintf("%d/%d", i+1, len(products)))
		}

		rows = append(rows, ReportRow{
			ID:   product.ProductID.String(),
			Name: name,
			HTML: html,
		})

		if progress != nil {
			progress(i+1, len(products))
		}
	}

	path, err := s.writer.Write(req.Filename, rows)
	if err != nil {
		return "", 0, fmt.Errorf("failed to write report: %w", err)
	}
	log.Info("batch finished", "rows", len(rows), "file", path)

	return path, len(rows), nil
}
