package domain

import "time"

// Job is the normalized record every provider's payload is mapped into.
// Provenance is carried in Source; RedirectWarning signals that URL (which
// may route through the provider's domain) is the best available link
// because no direct company careers page could be resolved.
type Job struct {
	ID                string    `json:"id"`
	Title             string    `json:"title"`
	Company           string    `json:"company"`
	Location          string    `json:"location"`
	Description       string    `json:"description"`
	URL               string    `json:"url"`
	CompanyCareerPage string    `json:"company_career_page,omitempty"`
	Salary            string    `json:"salary,omitempty"`
	Type              string    `json:"type"`
	Remote            bool      `json:"remote"`
	PostedDate        time.Time `json:"posted_date"`
	Source            JobSource `json:"source"`
	RedirectWarning   bool      `json:"redirect_warning"`

	// RelevanceScore is computed per search against the querying user's
	// skills. It is never cached.
	RelevanceScore int `json:"relevance_score"`
}

// SearchOptions tunes a single aggregate search.
type SearchOptions struct {
	Location string `json:"location"`
	Limit    int    `json:"limit"` // default 50
	Remote   bool   `json:"remote"`
	Complex  bool   `json:"complex"` // widen fan-out to the quota-limited complex provider
}

// JobSource identifies a provider.
type JobSource string

const (
	SourceJooble    JobSource = "jooble"
	SourceArbeitnow JobSource = "arbeitnow"
	SourceRemotive  JobSource = "remotive"
	SourceJSearch   JobSource = "jsearch"
)

// Stats is the diagnostic snapshot exposed alongside search.
type Stats struct {
	RateLimits map[string]QuotaStats `json:"rate_limits"`
	Cache      CacheStats            `json:"cache"`
}

// QuotaStats describes one provider's current rate-limit window.
type QuotaStats struct {
	Window    string    `json:"window"` // "daily" or "monthly"
	Limit     int       `json:"limit"`
	Used      int       `json:"used"`
	Remaining int       `json:"remaining"`
	ResetAt   time.Time `json:"reset_at"`
}

// CacheStats describes the TTL cache.
type CacheStats struct {
	Entries    int    `json:"entries"`
	MaxEntries int    `json:"max_entries"`
	Hits       uint64 `json:"hits"`
	Misses     uint64 `json:"misses"`
}
