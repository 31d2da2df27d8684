package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/joblens/aggregator/internal/careers"
	"github.com/joblens/aggregator/internal/domain"
)

const (
	remotiveDefaultBaseURL = "https://remotive.com/api/remote-jobs"
	remotiveMaxResults     = 50
)

// Remotive is the secondary free provider. All of its listings are remote
// positions.
type Remotive struct {
	baseURL  string
	client   *http.Client
	resolver *careers.Resolver
}

// NewRemotive creates a Remotive client.
func NewRemotive(baseURL string, timeout time.Duration, resolver *careers.Resolver) *Remotive {
	if baseURL == "" {
		baseURL = remotiveDefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Remotive{
		baseURL:  baseURL,
		client:   &http.Client{Timeout: timeout},
		resolver: resolver,
	}
}

// Name implements Provider.
func (r *Remotive) Name() domain.JobSource { return domain.SourceRemotive }

type remotiveResponse struct {
	Jobs []struct {
		ID              int64  `json:"id"`
		URL             string `json:"url"`
		Title           string `json:"title"`
		CompanyName     string `json:"company_name"`
		Category        string `json:"category"`
		JobType         string `json:"job_type"`
		PublicationDate string `json:"publication_date"`
		Location        string `json:"candidate_required_location"`
		Salary          string `json:"salary"`
		Description     string `json:"description"`
	} `json:"jobs"`
}

// Search implements Provider.
func (r *Remotive) Search(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.Job, error) {
	params := url.Values{}
	params.Set("search", query)
	params.Set("limit", strconv.Itoa(limitOr(opts, remotiveMaxResults)))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	var parsed remotiveResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	jobs := make([]domain.Job, 0, len(parsed.Jobs))
	for _, item := range parsed.Jobs {
		var providerID string
		if item.ID != 0 {
			providerID = strconv.FormatInt(item.ID, 10)
		}
		var posted time.Time
		if item.PublicationDate != "" {
			posted = parseTime(item.PublicationDate)
		}
		job := domain.Job{
			ID:          newJobID(domain.SourceRemotive, providerID),
			Title:       item.Title,
			Company:     item.CompanyName,
			Location:    item.Location,
			Description: cleanText(item.Description),
			URL:         item.URL,
			Salary:      item.Salary,
			Type:        item.JobType,
			Remote:      true,
			PostedDate:  posted,
			Source:      domain.SourceRemotive,
		}
		finalize(&job, r.resolver)
		jobs = append(jobs, job)
	}
	return jobs, nil
}
