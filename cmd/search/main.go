// Command search runs a one-shot aggregate job search from the command
// line and prints the normalized results as JSON.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/joblens/aggregator/internal/aggregator"
	"github.com/joblens/aggregator/internal/cache"
	"github.com/joblens/aggregator/internal/careers"
	"github.com/joblens/aggregator/internal/config"
	"github.com/joblens/aggregator/internal/domain"
	"github.com/joblens/aggregator/internal/provider"
	"github.com/joblens/aggregator/internal/ratelimit"
)

func main() {
	location := flag.String("location", "", "preferred job location")
	limit := flag.Int("limit", 20, "max results")
	remote := flag.Bool("remote", false, "remote positions only")
	complexSearch := flag.Bool("complex", false, "widen fan-out to the quota-limited provider")
	timeout := flag.Duration("timeout", 60*time.Second, "overall search deadline")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: search [flags] skill [skill...]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	if err := godotenv.Load(); err == nil {
		log.Println("Loaded .env")
	}
	cfg := config.Load()

	resolver := careers.NewResolver(nil, nil)

	limits := ratelimit.NewLimiter()
	limits.Register(string(domain.SourceJooble), ratelimit.WindowDaily, cfg.Providers.Jooble.DailyLimit)
	limits.Register(string(domain.SourceJSearch), ratelimit.WindowMonthly, cfg.Providers.JSearch.MonthlyLimit)

	deps := aggregator.Deps{
		Direct:    provider.NewArbeitnow(cfg.Providers.Arbeitnow.BaseURL, cfg.Providers.HTTPTimeout, resolver),
		Secondary: provider.NewRemotive(cfg.Providers.Remotive.BaseURL, cfg.Providers.HTTPTimeout, resolver),
		Cache:     cache.New(cfg.Cache.MaxEntries, cfg.Cache.TTL),
		Limits:    limits,
	}
	if cfg.Providers.Jooble.APIKey != "" {
		deps.Primary = provider.NewJooble(cfg.Providers.Jooble.BaseURL, cfg.Providers.Jooble.APIKey, cfg.Providers.HTTPTimeout, resolver)
	}
	if cfg.Providers.JSearch.APIKey != "" && cfg.Providers.JSearch.BaseURL != "" {
		deps.Complex = provider.NewJSearch(cfg.Providers.JSearch.BaseURL, cfg.Providers.JSearch.APIKey, cfg.Providers.HTTPTimeout, resolver)
	}

	svc := aggregator.NewService(deps)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	jobs := svc.Search(ctx, flag.Args(), domain.SearchOptions{
		Location: *location,
		Limit:    *limit,
		Remote:   *remote,
		Complex:  *complexSearch,
	})

	out, err := json.MarshalIndent(jobs, "", "  ")
	if err != nil {
		log.Fatalf("marshal results: %v", err)
	}
	fmt.Println(string(out))
	log.Printf("%d jobs", len(jobs))
}
