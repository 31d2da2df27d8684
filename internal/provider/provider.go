// Package provider contains the external job-listing API clients. Each
// client normalizes its vendor payload into domain.Job, sanitizing HTML
// descriptions and enriching records with a company careers URL.
package provider

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"

	"github.com/joblens/aggregator/internal/careers"
	"github.com/joblens/aggregator/internal/domain"
)

// DefaultTimeout bounds every provider HTTP call. Without it a single slow
// provider stalls the whole aggregate search.
const DefaultTimeout = 10 * time.Second

// Provider is the common interface the aggregator fans out over.
type Provider interface {
	// Name returns the immutable provenance tag stamped on every job.
	Name() domain.JobSource
	// Search fetches and normalizes listings for one query. Any failure
	// (non-2xx, network error, malformed body) is returned as an error;
	// the aggregator converts it to zero results.
	Search(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.Job, error)
}

var strictPolicy = bluemonday.StrictPolicy()

// cleanText strips all HTML from a provider description and collapses
// leftover blank runs.
func cleanText(s string) string {
	s = strictPolicy.Sanitize(s)
	s = strings.ReplaceAll(s, "\n\n\n", "\n\n")
	return strings.TrimSpace(s)
}

// newJobID synthesizes a best-effort unique ID. Not collision-free; dedup
// never relies on it.
func newJobID(source domain.JobSource, providerID string) string {
	if providerID == "" {
		providerID = fmt.Sprintf("%d", time.Now().UnixMilli())
	}
	suffix := uuid.NewString()[:8]
	return fmt.Sprintf("%s_%s_%s", source, providerID, suffix)
}

// limitOr returns opts.Limit bounded to [1, max], defaulting to max.
func limitOr(opts domain.SearchOptions, max int) int {
	if opts.Limit <= 0 || opts.Limit > max {
		return max
	}
	return opts.Limit
}

var remoteKeywords = []string{"remote", "anywhere", "worldwide", "work from home", "home office"}

// isRemoteLocation heuristically classifies a location string.
func isRemoteLocation(location string) bool {
	l := strings.ToLower(location)
	for _, kw := range remoteKeywords {
		if strings.Contains(l, kw) {
			return true
		}
	}
	return false
}

// parseTime tries the formats providers actually emit. Missing or
// unparseable dates default to now.
func parseTime(s string) time.Time {
	formats := []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006-01-02",
	}
	for _, f := range formats {
		if t, err := time.Parse(f, s); err == nil {
			return t
		}
	}
	return time.Now()
}

// finalize applies the best-effort defaults every normalized record must
// carry and resolves the company careers page. Records stay in the result
// set even when malformed upstream; only identity fields get placeholders.
func finalize(job *domain.Job, resolver *careers.Resolver) {
	if job.Title == "" {
		job.Title = "Unknown"
	}
	if job.Company == "" {
		job.Company = "Unknown"
	}
	if job.Location == "" {
		job.Location = "Remote"
	}
	if job.Type == "" {
		job.Type = "Full-time"
	}
	if job.URL == "" {
		job.URL = "#"
	}
	if job.PostedDate.IsZero() {
		job.PostedDate = time.Now()
	}
	if !job.Remote {
		job.Remote = isRemoteLocation(job.Location)
	}
	if resolver != nil && job.Company != "Unknown" {
		job.CompanyCareerPage = resolver.Resolve(job.Company)
	}
	job.RedirectWarning = job.CompanyCareerPage == ""
}
