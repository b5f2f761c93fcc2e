// Package engine owns the index lifecycle: reading the catalog source,
// building the TF-IDF index, and publishing it behind a single atomic
// reference. Readers never block writers and never see a partial index; a
// failed load keeps the previous index in service and is surfaced, never
// retried silently.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/RMoulla/search-engine/internal/catalog"
	"github.com/RMoulla/search-engine/internal/index"
	"github.com/RMoulla/search-engine/internal/search"
	"github.com/RMoulla/search-engine/pkg/config"
	apperrors "github.com/RMoulla/search-engine/pkg/errors"
	"github.com/RMoulla/search-engine/pkg/metrics"
)

// Engine serves searches against the currently published index and rebuilds
// it on demand. One writer, many readers.
type Engine struct {
	csvPath  string
	override map[string]string
	metrics  *metrics.Metrics
	logger   *slog.Logger

	current atomic.Pointer[index.Index]

	mu      sync.Mutex // serializes loads and guards lastErr
	lastErr error
}

// New creates an Engine for the configured catalog source. No index is
// published until the first successful Load.
func New(cfg config.CatalogConfig, m *metrics.Metrics) *Engine {
	return &Engine{
		csvPath:  cfg.CSVPath,
		override: catalog.ParseColumnMap(cfg.ColumnMapJSON),
		metrics:  m,
		logger:   slog.Default().With("component", "engine"),
	}
}

// Load reads the catalog file, builds a fresh index off to the side, and
// swaps it in atomically on success. On failure the previous index (if any)
// stays published and the error is recorded and returned.
func (e *Engine) Load(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	start := time.Now()
	idx, err := e.build()
	if err != nil {
		e.lastErr = err
		if e.metrics != nil {
			e.metrics.IndexBuildsTotal.WithLabelValues("failure").Inc()
		}
		e.logger.Error("catalog load failed", "path", e.csvPath, "error", err)
		return err
	}
	idx.BuildTime = time.Since(start)

	e.current.Store(idx)
	e.lastErr = nil
	if e.metrics != nil {
		e.metrics.IndexBuildsTotal.WithLabelValues("success").Inc()
		e.metrics.IndexBuildDuration.Observe(idx.BuildTime.Seconds())
		e.metrics.IndexDocuments.Set(float64(idx.Len()))
	}
	e.logger.Info("catalog index published",
		"path", e.csvPath,
		"products", idx.Len(),
		"categories", len(idx.Categories),
		"vocabulary", len(idx.IDF),
		"build_ms", idx.BuildTime.Milliseconds(),
	)
	return nil
}

func (e *Engine) build() (*index.Index, error) {
	headers, rows, err := catalog.ReadFile(e.csvPath)
	if err != nil {
		return nil, err
	}
	columns := catalog.DetectColumns(headers, e.override)
	corpus, err := catalog.Load(rows, columns)
	if err != nil {
		return nil, err
	}
	return index.Build(corpus), nil
}

// Current returns the published index, or an error describing why none is
// available (never loaded, or every load so far has failed).
func (e *Engine) Current() (*index.Index, error) {
	if idx := e.current.Load(); idx != nil {
		return idx, nil
	}
	e.mu.Lock()
	lastErr := e.lastErr
	e.mu.Unlock()
	if lastErr != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrIndexNotReady, lastErr)
	}
	return nil, apperrors.ErrIndexNotReady
}

// Search runs a query against the published index.
func (e *Engine) Search(query string, filters search.Filters, limit int, debug bool) ([]search.Result, search.Diagnostics, error) {
	idx, err := e.Current()
	if err != nil {
		return nil, search.Diagnostics{}, err
	}
	results, diagnostics := search.Search(idx, query, filters, limit, debug)
	return results, diagnostics, nil
}

// Categories returns the sorted distinct categories of the published index.
func (e *Engine) Categories() ([]string, error) {
	idx, err := e.Current()
	if err != nil {
		return nil, err
	}
	return idx.Categories, nil
}

// Ready reports whether an index is published.
func (e *Engine) Ready() bool {
	return e.current.Load() != nil
}
