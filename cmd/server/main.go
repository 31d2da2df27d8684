package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/joblens/aggregator/internal/aggregator"
	"github.com/joblens/aggregator/internal/cache"
	"github.com/joblens/aggregator/internal/careers"
	"github.com/joblens/aggregator/internal/config"
	"github.com/joblens/aggregator/internal/domain"
	"github.com/joblens/aggregator/internal/indexer"
	"github.com/joblens/aggregator/internal/provider"
	"github.com/joblens/aggregator/internal/ratelimit"
	"github.com/joblens/aggregator/internal/sched"
	"github.com/joblens/aggregator/internal/server"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("Starting Job Aggregation Service")

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}
	cfg := config.Load()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Learned career-page store is optional: without Redis the resolver
	// still serves static and generated URLs.
	var store careers.Store
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Printf("Redis connection failed, continuing without learned store: %v", err)
		} else {
			log.Println("Redis connected")
			store = careers.NewRedisStore(rdb, "careers", 0)
		}
	}

	prober := careers.NewLinkProber(cfg.Providers.HTTPTimeout, "")
	resolver := careers.NewResolver(store, prober)

	limits := ratelimit.NewLimiter()
	limits.Register(string(domain.SourceJooble), ratelimit.WindowDaily, cfg.Providers.Jooble.DailyLimit)
	limits.Register(string(domain.SourceJSearch), ratelimit.WindowMonthly, cfg.Providers.JSearch.MonthlyLimit)

	resultCache := cache.New(cfg.Cache.MaxEntries, cfg.Cache.TTL)

	deps := aggregator.Deps{
		Direct:    provider.NewArbeitnow(cfg.Providers.Arbeitnow.BaseURL, cfg.Providers.HTTPTimeout, resolver),
		Secondary: provider.NewRemotive(cfg.Providers.Remotive.BaseURL, cfg.Providers.HTTPTimeout, resolver),
		Cache:     resultCache,
		Limits:    limits,
	}
	if cfg.Providers.Jooble.APIKey != "" {
		deps.Primary = provider.NewJooble(cfg.Providers.Jooble.BaseURL, cfg.Providers.Jooble.APIKey, cfg.Providers.HTTPTimeout, resolver)
	} else {
		log.Println("JOOBLE_API_KEY not set, primary provider disabled")
	}
	if cfg.Providers.JSearch.APIKey != "" && cfg.Providers.JSearch.BaseURL != "" {
		deps.Complex = provider.NewJSearch(cfg.Providers.JSearch.BaseURL, cfg.Providers.JSearch.APIKey, cfg.Providers.HTTPTimeout, resolver)
	}

	if cfg.Elasticsearch.URL != "" {
		esIndexer, err := indexer.NewElasticsearchIndexer([]string{cfg.Elasticsearch.URL}, cfg.Elasticsearch.Index)
		if err != nil {
			log.Printf("Elasticsearch connection failed, continuing without indexer: %v", err)
		} else {
			log.Println("Elasticsearch connected")
			deps.Indexer = esIndexer
		}
	}

	svc := aggregator.NewService(deps)

	sweeper := sched.New(resultCache, limits, cfg.Server.SweepSpec)
	if err := sweeper.Start(); err != nil {
		log.Fatalf("Start sweeper: %v", err)
	}
	defer sweeper.Stop()

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: server.NewRouter(svc),
	}

	go func() {
		log.Printf("Listening on :%s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("ListenAndServe: %v", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Println("Shutting down...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Shutdown: %v", err)
	}
	log.Println("Bye")
}
