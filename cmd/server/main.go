package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/RMoulla/search-engine/internal/analytics"
	"github.com/RMoulla/search-engine/internal/engine"
	"github.com/RMoulla/search-engine/internal/search/cache"
	"github.com/RMoulla/search-engine/internal/search/handler"
	"github.com/RMoulla/search-engine/pkg/config"
	"github.com/RMoulla/search-engine/pkg/health"
	"github.com/RMoulla/search-engine/pkg/kafka"
	"github.com/RMoulla/search-engine/pkg/logger"
	"github.com/RMoulla/search-engine/pkg/metrics"
	"github.com/RMoulla/search-engine/pkg/middleware"
	"github.com/RMoulla/search-engine/pkg/postgres"
	pkgredis "github.com/RMoulla/search-engine/pkg/redis"
)

func main() {
	configPath := flag.String("config", "configs/development.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Setup(cfg.Logging.Level, cfg.Logging.Format)
	slog.Info("starting product search service",
		"port", cfg.Server.Port,
		"catalog", cfg.Catalog.CSVPath,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New()
	eng := engine.New(cfg.Catalog, m)

	// A failed initial load is an explicit state, not a crash: the service
	// starts, surfaces the load error on every search, and a later reload
	// can recover without a restart.
	if err := eng.Load(ctx); err != nil {
		slog.Error("initial catalog load failed, serving degraded", "error", err)
	}

	var queryCache *cache.QueryCache
	var redisClient *pkgredis.Client
	if cfg.Redis.Addr != "" {
		redisClient, err = pkgredis.NewClient(cfg.Redis)
		if err != nil {
			slog.Warn("redis unavailable, query caching disabled", "error", err)
		} else {
			defer redisClient.Close()
			queryCache = cache.New(redisClient, cfg.Redis)
			slog.Info("query cache enabled", "addr", cfg.Redis.Addr, "ttl", cfg.Redis.CacheTTL)
		}
	}

	var collector *analytics.Collector
	var analyticsHandler *analytics.Handler
	if len(cfg.Kafka.Brokers) > 0 {
		producer := kafka.NewProducer(cfg.Kafka, cfg.Kafka.Topics.AnalyticsEvents)
		defer producer.Close()
		collector = analytics.NewCollector(producer, 10000)
		collector.Start(ctx)
		defer collector.Close()

		var aggregator *analytics.Aggregator
		eventsConsumer := kafka.NewConsumer(cfg.Kafka, cfg.Kafka.Topics.AnalyticsEvents,
			func(ctx context.Context, key, value []byte) error {
				return analytics.HandleEvent(aggregator)(ctx, key, value)
			})
		aggregator = analytics.NewAggregator(eventsConsumer)
		go func() {
			if err := aggregator.Start(ctx); err != nil {
				slog.Error("analytics aggregator error", "error", err)
			}
		}()
		analyticsHandler = analytics.NewHandler(aggregator)
		slog.Info("analytics pipeline started", "topic", cfg.Kafka.Topics.AnalyticsEvents)

		// Reload signals let a fleet rebuild without restarts.
		reloadConsumer := kafka.NewConsumer(cfg.Kafka, cfg.Kafka.Topics.CatalogReload,
			func(ctx context.Context, key, value []byte) error {
				req, err := kafka.DecodeJSON[analytics.ReloadRequest](value)
				if err != nil {
					slog.Warn("ignoring malformed reload request", "error", err)
					return nil
				}
				slog.Info("catalog reload requested", "requested_by", req.RequestedBy)
				if err := eng.Load(ctx); err != nil {
					return err
				}
				if queryCache != nil {
					return queryCache.Invalidate(ctx)
				}
				return nil
			})
		go func() {
			if err := reloadConsumer.Start(ctx); err != nil {
				slog.Error("reload consumer error", "error", err)
			}
		}()

		if cfg.Postgres.Host != "" {
			pgClient, err := postgres.New(cfg.Postgres)
			if err != nil {
				slog.Warn("postgres unavailable, analytics persistence disabled", "error", err)
			} else {
				defer pgClient.Close()
				store := analytics.NewStore(pgClient)
				store.StartPeriodicSave(ctx, aggregator, cfg.Postgres.SnapshotInterval)
			}
		}
	}

	checker := health.NewChecker()
	checker.Register("index", func(ctx context.Context) health.ComponentHealth {
		idx, err := eng.Current()
		if err != nil {
			return health.ComponentHealth{Status: health.StatusDown, Message: err.Error()}
		}
		return health.ComponentHealth{
			Status:  health.StatusUp,
			Message: fmt.Sprintf("%d products indexed", idx.Len()),
		}
	})
	if redisClient != nil {
		checker.Register("redis", func(ctx context.Context) health.ComponentHealth {
			if err := redisClient.Ping(ctx); err != nil {
				return health.ComponentHealth{Status: health.StatusDegraded, Message: err.Error()}
			}
			return health.ComponentHealth{Status: health.StatusUp}
		})
	}

	h := handler.New(eng, queryCache, collector, m, cfg.Search.DefaultLimit, cfg.Search.MaxResults)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/search", h.Search)
	mux.HandleFunc("GET /api/v1/categories", h.Categories)
	mux.HandleFunc("POST /api/v1/reload", h.Reload)
	mux.HandleFunc("GET /api/v1/cache/stats", h.CacheStats)
	mux.HandleFunc("POST /api/v1/cache/invalidate", h.CacheInvalidate)
	if analyticsHandler != nil {
		mux.HandleFunc("GET /api/v1/analytics", analyticsHandler.Stats)
	}
	mux.HandleFunc("GET /health/live", checker.LiveHandler())
	mux.HandleFunc("GET /health/ready", checker.ReadyHandler())
	if cfg.Metrics.Enabled {
		mux.Handle("GET "+cfg.Metrics.Path, m.Handler())
	}

	var chain http.Handler = mux
	chain = middleware.Metrics(m)(chain)
	chain = middleware.Timeout(cfg.Server.WriteTimeout)(chain)
	chain = middleware.RequestID(chain)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      chain,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		<-ctx.Done()
		slog.Info("shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown error", "error", err)
		}
	}()

	slog.Info("search service listening", "addr", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
	slog.Info("search service stopped")
}
