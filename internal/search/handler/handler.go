// Package handler exposes the search engine over HTTP. It is thin glue: it
// parses request parameters, delegates to the engine and cache, and
// serialises responses. Malformed numeric filter values are treated as
// absent here, before they ever reach the scorer.
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/RMoulla/search-engine/internal/analytics"
	"github.com/RMoulla/search-engine/internal/engine"
	"github.com/RMoulla/search-engine/internal/search"
	"github.com/RMoulla/search-engine/internal/search/cache"
	apperrors "github.com/RMoulla/search-engine/pkg/errors"
	"github.com/RMoulla/search-engine/pkg/logger"
	"github.com/RMoulla/search-engine/pkg/metrics"
	"github.com/RMoulla/search-engine/pkg/middleware"
)

// SearchResponse is the JSON body of a search call.
type SearchResponse struct {
	Results     []search.Result    `json:"results"`
	Diagnostics search.Diagnostics `json:"diagnostics"`
}

type Handler struct {
	engine       *engine.Engine
	cache        *cache.QueryCache
	collector    *analytics.Collector
	metrics      *metrics.Metrics
	defaultLimit int
	maxResults   int
	logger       *slog.Logger
}

// New creates a Handler. cache, collector, and m may be nil; the matching
// features are then disabled.
func New(eng *engine.Engine, queryCache *cache.QueryCache, collector *analytics.Collector, m *metrics.Metrics, defaultLimit, maxResults int) *Handler {
	if defaultLimit <= 0 {
		defaultLimit = search.DefaultLimit
	}
	if maxResults < defaultLimit {
		maxResults = defaultLimit
	}
	return &Handler{
		engine:       eng,
		cache:        queryCache,
		collector:    collector,
		metrics:      m,
		defaultLimit: defaultLimit,
		maxResults:   maxResults,
		logger:       slog.Default().With("component", "search-handler"),
	}
}

// Search handles GET /api/v1/search. An empty or stop-word-only query is a
// valid request that returns zero results.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ctx := r.Context()
	log := logger.FromContext(ctx)

	query := r.URL.Query().Get("q")
	filters := search.Filters{
		MinPrice:  floatParam(r, "min_price"),
		MaxPrice:  floatParam(r, "max_price"),
		MinRating: floatParam(r, "min_rating"),
		Category:  r.URL.Query().Get("category"),
	}
	debug := boolParam(r, "debug")

	limit := h.defaultLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 1 {
			h.writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		if parsed > h.maxResults {
			parsed = h.maxResults
		}
		limit = parsed
	}

	compute := func() (*cache.Entry, error) {
		results, diagnostics, err := h.engine.Search(query, filters, limit, debug)
		if err != nil {
			return nil, err
		}
		return &cache.Entry{Results: results, Diagnostics: diagnostics}, nil
	}

	var entry *cache.Entry
	var err error
	cacheHit := false
	if h.cache != nil {
		entry, cacheHit, err = h.cache.GetOrCompute(ctx, query, filters, limit, debug, compute)
	} else {
		entry, err = compute()
	}
	if err != nil {
		status := apperrors.HTTPStatusCode(err)
		log.Warn("search unavailable", "query", query, "error", err)
		h.recordQueryMetric("not_ready", cacheHit, start)
		h.writeError(w, status, err.Error())
		return
	}

	resp := SearchResponse{Results: entry.Results, Diagnostics: entry.Diagnostics}
	if resp.Results == nil {
		resp.Results = []search.Result{}
	}
	latency := time.Since(start)
	if cacheHit {
		// The cached query latency belongs to another call.
		resp.Diagnostics.QueryTimeMs = float64(latency.Microseconds()) / 1000
	}

	outcome := "ok"
	switch {
	case len(resp.Diagnostics.QueryTokens) == 0:
		outcome = "empty_query"
	case len(resp.Results) == 0:
		outcome = "zero_result"
	}
	h.recordQueryMetric(outcome, cacheHit, start)
	if h.metrics != nil {
		h.metrics.SearchResultsCount.Observe(float64(len(resp.Results)))
	}

	log.Info("search completed",
		"query", query,
		"results", len(resp.Results),
		"cache_hit", cacheHit,
		"latency_ms", latency.Milliseconds(),
	)
	if h.collector != nil {
		h.collector.Track(analytics.SearchEvent{
			Type:        analytics.EventSearch,
			Query:       query,
			QueryTokens: resp.Diagnostics.QueryTokens,
			Results:     len(resp.Results),
			CacheHit:    cacheHit,
			LatencyMs:   latency.Milliseconds(),
			Timestamp:   time.Now().UTC(),
			RequestID:   middleware.GetRequestID(ctx),
		})
	}

	h.writeJSON(w, http.StatusOK, resp)
}

// Categories handles GET /api/v1/categories, serving the distinct category
// list for filter UIs.
func (h *Handler) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.engine.Categories()
	if err != nil {
		h.writeError(w, apperrors.HTTPStatusCode(err), err.Error())
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"categories": categories})
}

// Reload handles POST /api/v1/reload: rebuild the index from the source
// file. On failure the previous index stays in service and the load error is
// returned to the caller.
func (h *Handler) Reload(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	log := logger.FromContext(r.Context())

	err := h.engine.Load(r.Context())
	if err != nil {
		log.Error("reload failed", "error", err)
		if h.collector != nil {
			h.collector.Track(analytics.ReloadEvent{
				Type:      analytics.EventReload,
				Success:   false,
				Error:     err.Error(),
				Timestamp: time.Now().UTC(),
			})
		}
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if h.cache != nil {
		if err := h.cache.Invalidate(r.Context()); err != nil {
			log.Error("cache invalidation after reload failed", "error", err)
		}
	}

	idx, _ := h.engine.Current()
	if h.collector != nil {
		h.collector.Track(analytics.ReloadEvent{
			Type:      analytics.EventReload,
			Success:   true,
			Products:  idx.Len(),
			BuildMs:   idx.BuildTime.Milliseconds(),
			Timestamp: time.Now().UTC(),
		})
	}
	h.writeJSON(w, http.StatusOK, map[string]any{
		"status":     "reloaded",
		"products":   idx.Len(),
		"build_ms":   idx.BuildTime.Milliseconds(),
		"elapsed_ms": time.Since(start).Milliseconds(),
	})
}

// CacheStats handles GET /api/v1/cache/stats.
func (h *Handler) CacheStats(w http.ResponseWriter, r *http.Request) {
	if h.cache == nil {
		h.writeJSON(w, http.StatusOK, map[string]string{"status": "disabled"})
		return
	}
	hits, misses := h.cache.Stats()
	total := hits + misses
	var hitRate float64
	if total > 0 {
		hitRate = float64(hits) / float64(total) * 100
	}
	h.writeJSON(w, http.StatusOK, map[string]any{
		"hits":     hits,
		"misses":   misses,
		"total":    total,
		"hit_rate": strconv.FormatFloat(hitRate, 'f', 1, 64) + "%",
	})
}

// CacheInvalidate handles POST /api/v1/cache/invalidate.
func (h *Handler) CacheInvalidate(w http.ResponseWriter, r *http.Request) {
	if h.cache == nil {
		h.writeError(w, http.StatusServiceUnavailable, "caching is disabled")
		return
	}
	if err := h.cache.Invalidate(r.Context()); err != nil {
		h.logger.Error("cache invalidation failed", "error", err)
		h.writeError(w, http.StatusInternalServerError, "cache invalidation failed")
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "invalidated"})
}

func (h *Handler) recordQueryMetric(outcome string, cacheHit bool, start time.Time) {
	if h.metrics == nil {
		return
	}
	h.metrics.SearchQueriesTotal.WithLabelValues(outcome).Inc()
	cacheStatus := "disabled"
	if h.cache != nil {
		if cacheHit {
			cacheStatus = "hit"
			h.metrics.CacheHitsTotal.Inc()
		} else {
			cacheStatus = "miss"
			h.metrics.CacheMissesTotal.Inc()
		}
	}
	h.metrics.SearchLatency.WithLabelValues(cacheStatus).Observe(time.Since(start).Seconds())
}

func floatParam(r *http.Request, name string) *float64 {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		// Malformed bounds are absent, not errors.
		return nil
	}
	return &value
}

func boolParam(r *http.Request, name string) bool {
	switch r.URL.Query().Get(name) {
	case "1", "true", "yes":
		return true
	}
	return false
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to write response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
