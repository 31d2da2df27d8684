package aggregator

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/joblens/aggregator/internal/cache"
	"github.com/joblens/aggregator/internal/domain"
	"github.com/joblens/aggregator/internal/ratelimit"
)

// stubProvider is an in-memory Provider with a call counter. Searches are
// sequential, so no locking is needed.
type stubProvider struct {
	name  domain.JobSource
	jobs  []domain.Job
	err   error
	calls int
}

func (s *stubProvider) Name() domain.JobSource { return s.name }

func (s *stubProvider) Search(_ context.Context, _ string, _ domain.SearchOptions) ([]domain.Job, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return append([]domain.Job(nil), s.jobs...), nil
}

func stubJobs(source domain.JobSource, titles ...string) []domain.Job {
	out := make([]domain.Job, 0, len(titles))
	for i, title := range titles {
		out = append(out, domain.Job{
			ID:         fmt.Sprintf("%s_%d_test", source, i),
			Title:      title,
			Company:    "Acme",
			URL:        fmt.Sprintf("https://example.com/%s/%d", source, i),
			Source:     source,
			PostedDate: time.Now().Add(-48 * time.Hour),
		})
	}
	return out
}

func newTestService(deps Deps) *Service {
	if deps.Cache == nil {
		deps.Cache = cache.New(100, time.Minute)
	}
	if deps.Limits == nil {
		deps.Limits = ratelimit.NewLimiter()
	}
	return NewService(deps)
}

func TestSearch_ScenarioA_RankedAndLimited(t *testing.T) {
	direct := &stubProvider{
		name: domain.SourceArbeitnow,
		jobs: stubJobs(domain.SourceArbeitnow,
			"React Developer", "Senior React Developer", "React Developer (m/f/d)"),
	}
	svc := newTestService(Deps{Direct: direct})

	got := svc.Search(context.Background(), []string{"javascript", "react"}, domain.SearchOptions{Limit: 5})
	if len(got) == 0 || len(got) > 5 {
		t.Fatalf("got %d jobs, want 1..5", len(got))
	}
	for i, job := range got {
		if job.RelevanceScore <= 0 {
			t.Errorf("job %d has no relevance score", i)
		}
		if i > 0 && got[i-1].RelevanceScore < job.RelevanceScore {
			t.Errorf("results not sorted descending at %d", i)
		}
	}
}

func TestSearch_ScenarioB_EmptySkillsNoCalls(t *testing.T) {
	primary := &stubProvider{name: domain.SourceJooble}
	direct := &stubProvider{name: domain.SourceArbeitnow}
	svc := newTestService(Deps{Primary: primary, Direct: direct})

	got := svc.Search(context.Background(), nil, domain.SearchOptions{})
	if len(got) != 0 {
		t.Errorf("got %d jobs for empty skills, want 0", len(got))
	}
	if primary.calls != 0 || direct.calls != 0 {
		t.Errorf("providers contacted for empty skills: primary=%d direct=%d", primary.calls, direct.calls)
	}
}

func TestSearch_ScenarioC_ProviderFailureDegrades(t *testing.T) {
	direct := &stubProvider{name: domain.SourceArbeitnow, err: errors.New("connection refused")}
	secondary := &stubProvider{
		name: domain.SourceRemotive,
		jobs: stubJobs(domain.SourceRemotive, "Go Engineer"),
	}
	svc := newTestService(Deps{Direct: direct, Secondary: secondary})

	got := svc.Search(context.Background(), []string{"go"}, domain.SearchOptions{})
	if len(got) == 0 {
		t.Fatal("expected results from the healthy provider")
	}
	for _, job := range got {
		if job.Source != domain.SourceRemotive {
			t.Errorf("unexpected source %s", job.Source)
		}
	}
}

func TestSearch_ScenarioD_SecondCallFullyCached(t *testing.T) {
	direct := &stubProvider{
		name: domain.SourceArbeitnow,
		jobs: stubJobs(domain.SourceArbeitnow, "JS Dev", "React Dev"),
	}
	svc := newTestService(Deps{Direct: direct})

	first := svc.Search(context.Background(), []string{"javascript", "react"}, domain.SearchOptions{})
	callsAfterFirst := direct.calls
	if callsAfterFirst == 0 {
		t.Fatal("first search made no provider calls")
	}

	second := svc.Search(context.Background(), []string{"javascript", "react"}, domain.SearchOptions{})
	if direct.calls != callsAfterFirst {
		t.Errorf("second search made %d extra provider calls, want 0", direct.calls-callsAfterFirst)
	}
	if len(second) != len(first) {
		t.Errorf("cached search returned %d jobs, first returned %d", len(second), len(first))
	}
	for _, job := range second {
		if job.RelevanceScore <= 0 {
			t.Error("cache-served jobs must be re-scored per search")
		}
	}
}

// limitedProvider caps its results at opts.Limit, mimicking providers that
// forward a result cap to the upstream API.
type limitedProvider struct {
	stubProvider
}

func (p *limitedProvider) Search(_ context.Context, _ string, opts domain.SearchOptions) ([]domain.Job, error) {
	p.calls++
	jobs := append([]domain.Job(nil), p.jobs...)
	if opts.Limit > 0 && opts.Limit < len(jobs) {
		jobs = jobs[:opts.Limit]
	}
	return jobs, nil
}

func TestSearch_MixedLimitsShareFullCachedPayload(t *testing.T) {
	titles := make([]string, 40)
	for i := range titles {
		titles[i] = fmt.Sprintf("Go Engineer %d", i)
	}
	direct := &limitedProvider{stubProvider{name: domain.SourceArbeitnow, jobs: stubJobs(domain.SourceArbeitnow, titles...)}}
	svc := newTestService(Deps{Direct: direct})

	first := svc.Search(context.Background(), []string{"go"}, domain.SearchOptions{Limit: 1})
	if len(first) != 1 {
		t.Fatalf("narrow search returned %d jobs, want 1", len(first))
	}

	// The cached entry must hold the provider's full payload, not the
	// narrow search's truncated view of it.
	second := svc.Search(context.Background(), []string{"go"}, domain.SearchOptions{Limit: 50})
	if direct.calls != 1 {
		t.Errorf("wider search made %d extra provider calls, want 0", direct.calls-1)
	}
	if len(second) != 40 {
		t.Errorf("wider search got %d jobs, want the full 40 from cache", len(second))
	}
}

func TestSearch_PrimarySkippedAtQuotaReserve(t *testing.T) {
	primary := &stubProvider{name: domain.SourceJooble, jobs: stubJobs(domain.SourceJooble, "Dev")}
	direct := &stubProvider{name: domain.SourceArbeitnow}
	limits := ratelimit.NewLimiter()
	limits.Register(string(domain.SourceJooble), ratelimit.WindowDaily, quotaSafety) // remaining == reserve
	svc := newTestService(Deps{Primary: primary, Direct: direct, Limits: limits})

	svc.Search(context.Background(), []string{"go"}, domain.SearchOptions{})
	if primary.calls != 0 {
		t.Errorf("primary called %d times with quota at reserve, want 0", primary.calls)
	}
	if direct.calls == 0 {
		t.Error("direct provider should still be consulted")
	}
}

func TestSearch_SecondarySkippedAboveFloor(t *testing.T) {
	titles := make([]string, floorSecondary)
	for i := range titles {
		titles[i] = fmt.Sprintf("Engineer %d", i)
	}
	direct := &stubProvider{name: domain.SourceArbeitnow, jobs: stubJobs(domain.SourceArbeitnow, titles...)}
	secondary := &stubProvider{name: domain.SourceRemotive}
	svc := newTestService(Deps{Direct: direct, Secondary: secondary})

	svc.Search(context.Background(), []string{"nonmatching"}, domain.SearchOptions{})
	if secondary.calls != 0 {
		t.Errorf("secondary called %d times above floor, want 0", secondary.calls)
	}
}

func TestSearch_ComplexGating(t *testing.T) {
	newComplex := func() (*stubProvider, *Service, *ratelimit.Limiter) {
		complexP := &stubProvider{name: domain.SourceJSearch, jobs: stubJobs(domain.SourceJSearch, "Architect")}
		limits := ratelimit.NewLimiter()
		limits.Register(string(domain.SourceJSearch), ratelimit.WindowMonthly, 50)
		svc := newTestService(Deps{Complex: complexP, Limits: limits})
		return complexP, svc, limits
	}

	// Not opted in: never called.
	complexP, svc, _ := newComplex()
	svc.Search(context.Background(), []string{"go"}, domain.SearchOptions{})
	if complexP.calls != 0 {
		t.Errorf("complex called without opt-in: %d", complexP.calls)
	}

	// Opted in with quota: called.
	complexP, svc, _ = newComplex()
	svc.Search(context.Background(), []string{"go"}, domain.SearchOptions{Complex: true})
	if complexP.calls == 0 {
		t.Error("complex not called despite opt-in and quota")
	}

	// Opted in without quota: skipped.
	complexP, svc, limits := newComplex()
	limits.Register(string(domain.SourceJSearch), ratelimit.WindowMonthly, 0)
	svc.Search(context.Background(), []string{"go"}, domain.SearchOptions{Complex: true})
	if complexP.calls != 0 {
		t.Errorf("complex called with exhausted quota: %d", complexP.calls)
	}
}

func TestSearch_CancelledContextReturnsPartial(t *testing.T) {
	direct := &stubProvider{name: domain.SourceArbeitnow, jobs: stubJobs(domain.SourceArbeitnow, "Dev")}
	svc := newTestService(Deps{Direct: direct})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	got := svc.Search(ctx, []string{"go"}, domain.SearchOptions{})
	if got == nil {
		t.Error("cancelled search must return a (possibly empty) slice, not nil")
	}
	if direct.calls != 0 {
		t.Errorf("provider called %d times after cancellation", direct.calls)
	}
}

func TestDedupe(t *testing.T) {
	a := domain.Job{Title: "A", Company: "X", URL: "https://x.com/1"}
	b := domain.Job{Title: "B", Company: "Y", URL: "https://x.com/1"} // same URL
	c := domain.Job{Title: "A", Company: "X", URL: ""}                // falls back to company_title
	d := domain.Job{Title: "A", Company: "X", URL: "#"}               // placeholder URL, same identity as c

	got := Dedupe([]domain.Job{a, b, c, d})
	if len(got) != 2 {
		t.Fatalf("Dedupe returned %d jobs, want 2", len(got))
	}
	if got[0].Title != "A" || got[0].URL != "https://x.com/1" {
		t.Errorf("first-seen job not preserved: %+v", got[0])
	}

	// Idempotent.
	twice := Dedupe(got)
	if len(twice) != len(got) {
		t.Errorf("Dedupe not idempotent: %d vs %d", len(twice), len(got))
	}

	if len(Dedupe(nil)) != 0 {
		t.Error("Dedupe(nil) should be empty")
	}
}

func TestScore_RemoteBonusExact(t *testing.T) {
	now := time.Now()
	base := domain.Job{Title: "Go Developer", PostedDate: now.Add(-40 * 24 * time.Hour), RedirectWarning: true}
	remote := base
	remote.Remote = true

	skills := []string{"go"}
	diff := score(&remote, skills, now) - score(&base, skills, now)
	if diff != remotePoints {
		t.Errorf("remote bonus = %d, want %d", diff, remotePoints)
	}
}

func TestScore_MoreSkillMatchesNeverLower(t *testing.T) {
	now := time.Now()
	one := domain.Job{Title: "Go Developer", PostedDate: now}
	two := domain.Job{Title: "Go Developer with React", PostedDate: now}

	skills := []string{"go", "react"}
	if score(&two, skills, now) < score(&one, skills, now) {
		t.Error("job matching more skills scored lower")
	}
}

func TestScore_FreshnessTiers(t *testing.T) {
	now := time.Now()
	skills := []string{"go"}
	fresh := domain.Job{Title: "go", PostedDate: now.Add(-24 * time.Hour), RedirectWarning: true}
	month := domain.Job{Title: "go", PostedDate: now.Add(-10 * 24 * time.Hour), RedirectWarning: true}
	stale := domain.Job{Title: "go", PostedDate: now.Add(-60 * 24 * time.Hour), RedirectWarning: true}

	if score(&fresh, skills, now)-score(&stale, skills, now) != freshWeekPoints {
		t.Error("week-fresh bonus wrong")
	}
	if score(&month, skills, now)-score(&stale, skills, now) != freshMonthPoints {
		t.Error("month-fresh bonus wrong")
	}
}

func TestScore_DirectLinkBonus(t *testing.T) {
	now := time.Now()
	withLink := domain.Job{Title: "go", CompanyCareerPage: "https://x.com/careers", PostedDate: now.Add(-60 * 24 * time.Hour)}
	without := withLink
	without.CompanyCareerPage = ""
	without.RedirectWarning = true

	if diff := score(&withLink, []string{"go"}, now) - score(&without, []string{"go"}, now); diff != directLinkPoints {
		t.Errorf("direct link bonus = %d, want %d", diff, directLinkPoints)
	}
}

func TestStats_Snapshot(t *testing.T) {
	limits := ratelimit.NewLimiter()
	limits.Register(string(domain.SourceJooble), ratelimit.WindowDaily, 500)
	svc := newTestService(Deps{Limits: limits})

	stats := svc.Stats()
	if _, ok := stats.RateLimits[string(domain.SourceJooble)]; !ok {
		t.Error("stats missing jooble rate limit")
	}
	if stats.Cache.MaxEntries == 0 {
		t.Error("stats missing cache info")
	}
}
