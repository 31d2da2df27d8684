// Package careers resolves company names to direct careers-page URLs. A
// static table covers well-known companies; everything else falls back to
// a generated pattern URL. With a Store attached the resolver additionally
// learns URLs for companies it keeps being asked about.
package careers

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strings"
	"sync"
	"time"
)

// learnThreshold is how many lookups of the same unknown company trigger
// persisting a learned mapping.
const learnThreshold = 3

var (
	legalSuffixRe = regexp.MustCompile(`(?i)[,\s]+(inc|llc|ltd|corporation|corp)\.?\s*$`)
	slugRe        = regexp.MustCompile(`[^a-z0-9]`)
)

// Store persists learned company-to-URL mappings. Implementations must be
// safe for concurrent use. See RedisStore.
type Store interface {
	Get(ctx context.Context, company string) (string, error)
	Set(ctx context.Context, company, url string) error
	IncrLookups(ctx context.Context, company string) (int64, error)
}

// Prober discovers a careers link from a company website. See LinkProber.
type Prober interface {
	Probe(ctx context.Context, siteURL string) (string, error)
}

// Resolver maps company names to careers URLs. The zero dependencies form
// (NewResolver(nil, nil)) is a pure lookup/generate function; attaching a
// Store and optionally a Prober enables the learning path.
type Resolver struct {
	store  Store
	prober Prober

	mu      sync.Mutex
	learned map[string]string // local view of store-backed mappings
	probing map[string]bool   // companies with a learn already in flight
}

// NewResolver creates a resolver. Both arguments may be nil.
func NewResolver(store Store, prober Prober) *Resolver {
	return &Resolver{
		store:   store,
		prober:  prober,
		learned: make(map[string]string),
		probing: make(map[string]bool),
	}
}

// Resolve returns a careers URL for the company. It never fails: unknown
// companies get a generated pattern URL. Resolution order is exact static
// match, substring static match (longest table key wins), learned mapping,
// generated pattern.
func (r *Resolver) Resolve(company string) string {
	normalized := normalizeCompany(company)
	if normalized == "" {
		return generateURL(company)
	}

	if url, ok := staticPages[normalized]; ok {
		return url
	}

	if url, ok := substringMatch(normalized); ok {
		return url
	}

	if url, ok := r.learnedURL(normalized); ok {
		return url
	}

	url := generateURL(normalized)
	log.Printf("[careers] No known page for %q, generated %s", company, url)
	r.maybeLearn(normalized, url)
	return url
}

// learnedURL checks the in-memory learned map so Resolve never blocks on
// the store.
func (r *Resolver) learnedURL(normalized string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	url, ok := r.learned[normalized]
	return url, ok
}

// maybeLearn counts lookups of an unknown company and, past the threshold,
// persists a mapping in the background. The prober gets first shot at
// discovering a real link; the generated URL is the fallback value.
func (r *Resolver) maybeLearn(normalized, generated string) {
	if r.store == nil {
		return
	}

	r.mu.Lock()
	if r.probing[normalized] {
		r.mu.Unlock()
		return
	}
	r.probing[normalized] = true
	r.mu.Unlock()

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		defer func() {
			r.mu.Lock()
			delete(r.probing, normalized)
			r.mu.Unlock()
		}()

		if url, err := r.store.Get(ctx, normalized); err == nil && url != "" {
			r.remember(normalized, url)
			return
		}

		n, err := r.store.IncrLookups(ctx, normalized)
		if err != nil {
			log.Printf("[careers] Lookup count for %q: %v", normalized, err)
			return
		}
		if n < learnThreshold {
			return
		}

		url := generated
		if r.prober != nil {
			site := fmt.Sprintf("https://www.%s.com", slugify(normalized))
			if found, err := r.prober.Probe(ctx, site); err == nil && found != "" {
				url = found
			}
		}
		if err := r.store.Set(ctx, normalized, url); err != nil {
			log.Printf("[careers] Persist mapping for %q: %v", normalized, err)
			return
		}
		r.remember(normalized, url)
		log.Printf("[careers] Learned %q -> %s after %d lookups", normalized, url, n)
	}()
}

func (r *Resolver) remember(normalized, url string) {
	r.mu.Lock()
	r.learned[normalized] = url
	r.mu.Unlock()
}

// substringMatch finds a static-table key that contains or is contained in
// the normalized name. Among multiple candidates the longest key wins;
// equal lengths fall back to lexicographic order so the result is stable.
func substringMatch(normalized string) (string, bool) {
	var best string
	for key := range staticPages {
		if !strings.Contains(normalized, key) && !strings.Contains(key, normalized) {
			continue
		}
		if best == "" || len(key) > len(best) || (len(key) == len(best) && key < best) {
			best = key
		}
	}
	if best == "" {
		return "", false
	}
	return staticPages[best], true
}

// normalizeCompany lowercases, strips a trailing legal suffix and trims.
func normalizeCompany(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = legalSuffixRe.ReplaceAllString(name, "")
	return strings.TrimSpace(name)
}

func slugify(normalized string) string {
	return slugRe.ReplaceAllString(strings.ReplaceAll(normalized, " ", ""), "")
}

// generateURL synthesizes a best-guess careers URL. The pattern is one of
// several plausible ones; it is a guess, not a verified link.
func generateURL(name string) string {
	slug := slugify(normalizeCompany(name))
	if slug == "" {
		slug = "jobs"
	}
	return fmt.Sprintf("https://www.%s.com/careers", slug)
}
