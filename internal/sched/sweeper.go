// Package sched wires up the cron job that periodically sweeps expired
// cache entries and resets elapsed rate-limit windows, so diagnostics stay
// accurate even when no search traffic triggers the lazy paths.
package sched

import (
	"fmt"
	"log"

	"github.com/robfig/cron/v3"

	"github.com/joblens/aggregator/internal/cache"
	"github.com/joblens/aggregator/internal/ratelimit"
)

// Sweeper wraps robfig/cron around the periodic maintenance pass.
type Sweeper struct {
	cron   *cron.Cron
	cache  *cache.Cache
	limits *ratelimit.Limiter
	spec   string // cron spec, e.g. "@hourly"
}

// New creates a Sweeper. An empty spec defaults to hourly.
func New(c *cache.Cache, limits *ratelimit.Limiter, spec string) *Sweeper {
	if spec == "" {
		spec = "@hourly"
	}
	return &Sweeper{
		cron:   cron.New(),
		cache:  c,
		limits: limits,
		spec:   spec,
	}
}

// Start registers the sweep and starts the scheduler.
func (s *Sweeper) Start() error {
	_, err := s.cron.AddFunc(s.spec, s.sweep)
	if err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}
	s.cron.Start()
	log.Printf("[sweeper] Started with spec %s", s.spec)
	return nil
}

// Stop gracefully shuts down the scheduler.
func (s *Sweeper) Stop() {
	s.cron.Stop()
	log.Println("[sweeper] Stopped")
}

func (s *Sweeper) sweep() {
	expired := s.cache.Sweep()
	s.limits.Sweep()
	log.Printf("[sweeper] Sweep complete: %d cache entries expired", expired)
}
