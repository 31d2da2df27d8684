// Package aggregator orchestrates the multi-provider job search: it builds
// queries from the caller's skills, fans out over providers in priority
// order under cache, rate-limit and result-count gates, then deduplicates,
// ranks and truncates the merged results.
package aggregator

import (
	"context"
	"log"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/joblens/aggregator/internal/cache"
	"github.com/joblens/aggregator/internal/domain"
	"github.com/joblens/aggregator/internal/indexer"
	"github.com/joblens/aggregator/internal/provider"
	"github.com/joblens/aggregator/internal/ratelimit"
	"github.com/joblens/aggregator/internal/skills"
)

const (
	// DefaultLimit caps the result list when the caller doesn't.
	DefaultLimit = 50

	maxQueries = 3

	// floorSecondary gates the secondary free provider: skipped once a
	// query has accumulated this many results.
	floorSecondary = 15
	// floorComplex gates the quota-limited complex provider.
	floorComplex = 20
	// quotaSafety keeps a reserve on the primary provider's budget so
	// one burst of searches cannot drain the whole day's quota.
	quotaSafety = 10
)

// Ranking bonuses. Skill matches dominate; recency, remoteness and having
// any direct company link are secondary signals.
const (
	skillPoints      = 10
	freshWeekPoints  = 5
	freshMonthPoints = 2
	remotePoints     = 3
	directLinkPoints = 15
)

// providerTTLs override the cache default per provider. Quota-limited
// providers keep results longer.
var providerTTLs = map[domain.JobSource]time.Duration{
	domain.SourceJooble:    30 * time.Minute,
	domain.SourceArbeitnow: time.Hour,
	domain.SourceRemotive:  time.Hour,
	domain.SourceJSearch:   6 * time.Hour,
}

// Deps carries the aggregator's collaborators. Provider slots may be nil;
// a nil slot is simply skipped. Indexer may be nil.
type Deps struct {
	// Primary is the keyed provider, consulted only while its remaining
	// quota stays above the safety reserve.
	Primary provider.Provider
	// Direct is the free provider with direct-link listings, always
	// consulted.
	Direct provider.Provider
	// Secondary is the second free provider, consulted while the query's
	// accumulated results are under floorSecondary.
	Secondary provider.Provider
	// Complex is the quota-limited wide-query provider, consulted while
	// results are under floorComplex, the search opts in, and quota holds.
	Complex provider.Provider

	Cache   *cache.Cache
	Limits  *ratelimit.Limiter
	Indexer indexer.Indexer
}

// Service is the aggregation entry point shared by all callers. Cache and
// limiter state is process-wide; both are internally synchronized.
type Service struct {
	deps Deps
	now  func() time.Time
}

// NewService creates a Service. Cache and Limits must be non-nil.
func NewService(deps Deps) *Service {
	return &Service{deps: deps, now: time.Now}
}

// Search runs an aggregate job search. It never fails: provider errors,
// quota exhaustion and cancellation all degrade to fewer results. Empty
// skills yield an empty slice without contacting any provider. When ctx is
// cancelled mid-search, whatever has been aggregated so far is deduped,
// ranked and returned (partial-result contract).
func (s *Service) Search(ctx context.Context, rawSkills []string, opts domain.SearchOptions) []domain.Job {
	normalized := skills.Normalize(rawSkills)
	if len(normalized) == 0 {
		return []domain.Job{}
	}
	if opts.Limit <= 0 {
		opts.Limit = DefaultLimit
	}

	queries := skills.BuildQueries(normalized, maxQueries)
	log.Printf("[aggregator] Searching %d queries for skills %v", len(queries), normalized)

	var merged []domain.Job
	for _, query := range queries {
		if ctx.Err() != nil {
			log.Printf("[aggregator] Search cancelled, returning partial results")
			break
		}
		merged = append(merged, s.runQuery(ctx, query, opts)...)
	}

	deduped := Dedupe(merged)
	s.rank(deduped, normalized)

	if len(deduped) > opts.Limit {
		deduped = deduped[:opts.Limit]
	}
	if deduped == nil {
		deduped = []domain.Job{}
	}

	s.indexAsync(deduped)

	log.Printf("[aggregator] Returning %d jobs", len(deduped))
	return deduped
}

// runQuery walks the provider chain for one query. Gating floors read the
// result count accumulated so far within this query, matching the
// sequential fallback model.
func (s *Service) runQuery(ctx context.Context, query string, opts domain.SearchOptions) []domain.Job {
	var results []domain.Job

	if p := s.deps.Primary; p != nil {
		if s.deps.Limits.Remaining(string(p.Name())) > quotaSafety {
			results = append(results, s.callProvider(ctx, p, query, opts)...)
		} else {
			log.Printf("[aggregator] Skipping %s: quota reserve reached", p.Name())
		}
	}

	if ctx.Err() != nil {
		return results
	}
	if p := s.deps.Direct; p != nil {
		results = append(results, s.callProvider(ctx, p, query, opts)...)
	}

	if ctx.Err() != nil {
		return results
	}
	if p := s.deps.Secondary; p != nil && len(results) < floorSecondary {
		results = append(results, s.callProvider(ctx, p, query, opts)...)
	}

	if ctx.Err() != nil {
		return results
	}
	if p := s.deps.Complex; p != nil && len(results) < floorComplex && opts.Complex &&
		s.deps.Limits.CanCall(string(p.Name())) {
		results = append(results, s.callProvider(ctx, p, query, opts)...)
	}

	return results
}

// callProvider consults the cache, then the rate-limit gate, then the
// provider itself. Failures are logged and degrade to zero results.
func (s *Service) callProvider(ctx context.Context, p provider.Provider, query string, opts domain.SearchOptions) []domain.Job {
	name := string(p.Name())
	key := cache.Key(name, map[string]string{
		"keywords": query,
		"location": opts.Location,
		"remote":   strconv.FormatBool(opts.Remote),
	})

	if cached, ok := s.deps.Cache.Get(key); ok {
		log.Printf("[aggregator] Cache hit for %s %q (%d jobs)", name, query, len(cached))
		return append([]domain.Job(nil), cached...)
	}

	if !s.deps.Limits.CanCall(name) {
		log.Printf("[aggregator] Skipping %s: rate limit reached", name)
		return nil
	}

	// The cached payload is shared by searches with any limit, so the
	// upstream fetch must not be capped by this caller's. Providers fetch
	// their own maximum; truncation happens after merging.
	opts.Limit = 0
	jobs, err := p.Search(ctx, query, opts)
	s.deps.Limits.RecordCall(name)
	if err != nil {
		log.Printf("[aggregator] %s search %q failed: %v", name, query, err)
		return nil
	}

	// Scores depend on the querying user's skills; cached copies carry none.
	for i := range jobs {
		jobs[i].RelevanceScore = 0
	}
	ttl := providerTTLs[p.Name()]
	s.deps.Cache.SetTTL(key, jobs, ttl)

	log.Printf("[aggregator] %s returned %d jobs for %q", name, len(jobs), query)
	return append([]domain.Job(nil), jobs...)
}

// Dedupe collapses duplicate listings, first-seen-wins. Identity is the
// listing URL when present, else company plus title. Job IDs are not used:
// they are regenerated per fetch and unstable across calls.
func Dedupe(jobs []domain.Job) []domain.Job {
	if len(jobs) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(jobs))
	out := make([]domain.Job, 0, len(jobs))
	for _, job := range jobs {
		key := job.URL
		if key == "" || key == "#" {
			key = job.Company + "_" + job.Title
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, job)
	}
	return out
}

// rank scores jobs against the user's skills and sorts descending. Ties
// keep the order dedup left them in.
func (s *Service) rank(jobs []domain.Job, normalizedSkills []string) {
	now := s.now()
	for i := range jobs {
		jobs[i].RelevanceScore = score(&jobs[i], normalizedSkills, now)
	}
	sort.SliceStable(jobs, func(a, b int) bool {
		return jobs[a].RelevanceScore > jobs[b].RelevanceScore
	})
}

func score(job *domain.Job, normalizedSkills []string, now time.Time) int {
	total := 0
	haystack := strings.ToLower(job.Title + " " + job.Description)
	for _, skill := range normalizedSkills {
		if strings.Contains(haystack, skill) {
			total += skillPoints
		}
	}

	age := now.Sub(job.PostedDate)
	if age < 7*24*time.Hour {
		total += freshWeekPoints
	} else if age < 30*24*time.Hour {
		total += freshMonthPoints
	}

	if job.Remote {
		total += remotePoints
	}
	if !job.RedirectWarning {
		total += directLinkPoints
	}
	return total
}

// indexAsync ships ranked results to the analytics index without ever
// blocking or failing the search.
func (s *Service) indexAsync(jobs []domain.Job) {
	if s.deps.Indexer == nil || len(jobs) == 0 {
		return
	}
	snapshot := append([]domain.Job(nil), jobs...)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := s.deps.Indexer.BulkIndex(ctx, snapshot); err != nil {
			log.Printf("[aggregator] Index results: %v", err)
		}
	}()
}

// Stats returns the diagnostic snapshot. No side effects.
func (s *Service) Stats() domain.Stats {
	return domain.Stats{
		RateLimits: s.deps.Limits.Snapshot(),
		Cache:      s.deps.Cache.Stats(),
	}
}
