// Package cache provides a Redis-backed cache of search responses, keyed on
// the normalised query tokens plus filters and limit. Concurrent misses for
// the same key are collapsed with singleflight. The cache is invalidated
// wholesale whenever the index is rebuilt.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"github.com/RMoulla/search-engine/internal/analysis"
	"github.com/RMoulla/search-engine/internal/search"
	"github.com/RMoulla/search-engine/pkg/config"
	pkgredis "github.com/RMoulla/search-engine/pkg/redis"
)

const keyPrefix = "search:"

// Entry is the cached payload: results plus the diagnostics they shipped
// with, except for the per-call query latency which the handler overwrites.
type Entry struct {
	Results     []search.Result    `json:"results"`
	Diagnostics search.Diagnostics `json:"diagnostics"`
}

type QueryCache struct {
	client *pkgredis.Client
	cfg    config.RedisConfig
	group  singleflight.Group
	logger *slog.Logger
	hits   atomic.Int64
	misses atomic.Int64
}

func New(client *pkgredis.Client, cfg config.RedisConfig) *QueryCache {
	return &QueryCache{
		client: client,
		cfg:    cfg,
		logger: slog.Default().With("component", "query-cache"),
	}
}

// GetOrCompute returns the cached entry for the request, or runs computeFn
// once per key across concurrent callers and caches its result. The boolean
// reports whether the entry came from the cache.
func (c *QueryCache) GetOrCompute(
	ctx context.Context,
	query string,
	filters search.Filters,
	limit int,
	debug bool,
	computeFn func() (*Entry, error),
) (*Entry, bool, error) {
	key := c.buildKey(query, filters, limit, debug)
	if entry, ok := c.get(ctx, key); ok {
		return entry, true, nil
	}
	val, err, _ := c.group.Do(key, func() (interface{}, error) {
		if entry, ok := c.get(ctx, key); ok {
			return entry, nil
		}
		entry, err := computeFn()
		if err != nil {
			return nil, err
		}
		c.set(ctx, key, entry)
		return entry, nil
	})
	if err != nil {
		return nil, false, err
	}
	return val.(*Entry), false, nil
}

func (c *QueryCache) get(ctx context.Context, key string) (*Entry, bool) {
	data, err := c.client.Get(ctx, key)
	if err != nil {
		if !pkgredis.IsNilError(err) {
			c.logger.Error("cache get failed", "key", key, "error", err)
		}
		c.misses.Add(1)
		return nil, false
	}
	var entry Entry
	if err := json.Unmarshal([]byte(data), &entry); err != nil {
		c.logger.Error("cache unmarshal failed", "key", key, "error", err)
		c.misses.Add(1)
		return nil, false
	}
	c.hits.Add(1)
	return &entry, true
}

func (c *QueryCache) set(ctx context.Context, key string, entry *Entry) {
	data, err := json.Marshal(entry)
	if err != nil {
		c.logger.Error("cache marshal failed", "key", key, "error", err)
		return
	}
	if err := c.client.Set(ctx, key, data, c.cfg.CacheTTL); err != nil {
		c.logger.Error("cache set failed", "key", key, "error", err)
	}
}

// Invalidate removes every cached search response. Called after an index
// rebuild, since all scores may have changed.
func (c *QueryCache) Invalidate(ctx context.Context) error {
	deleted, err := c.client.FlushByPattern(ctx, keyPrefix+"*")
	if err != nil {
		return fmt.Errorf("invalidating cache: %w", err)
	}
	c.logger.Info("cache invalidated", "keys_deleted", deleted)
	return nil
}

// Stats returns the hit and miss counters.
func (c *QueryCache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

// buildKey canonicalises the request: sorted distinct query tokens plus the
// active filters, so "running shoes" and "shoes running" share an entry.
func (c *QueryCache) buildKey(query string, filters search.Filters, limit int, debug bool) string {
	tokens := analysis.Tokenize(query)
	distinct := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		distinct[t] = struct{}{}
	}
	sorted := make([]string, 0, len(distinct))
	for t := range distinct {
		sorted = append(sorted, t)
	}
	sort.Strings(sorted)

	parts := []string{
		strings.Join(sorted, ","),
		"min=" + formatBound(filters.MinPrice),
		"max=" + formatBound(filters.MaxPrice),
		"rating=" + formatBound(filters.MinRating),
		"cat=" + filters.Category,
		"limit=" + strconv.Itoa(limit),
		"debug=" + strconv.FormatBool(debug),
	}
	hash := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return fmt.Sprintf("%s%x", keyPrefix, hash[:16])
}

func formatBound(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
