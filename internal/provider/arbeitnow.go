package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/joblens/aggregator/internal/careers"
	"github.com/joblens/aggregator/internal/domain"
)

const arbeitnowDefaultBaseURL = "https://www.arbeitnow.com/api/job-board-api"

// Arbeitnow is a free provider whose listings link directly to the
// company's application page. No auth required.
type Arbeitnow struct {
	baseURL  string
	client   *http.Client
	resolver *careers.Resolver
}

// NewArbeitnow creates an Arbeitnow client.
func NewArbeitnow(baseURL string, timeout time.Duration, resolver *careers.Resolver) *Arbeitnow {
	if baseURL == "" {
		baseURL = arbeitnowDefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Arbeitnow{
		baseURL:  baseURL,
		client:   &http.Client{Timeout: timeout},
		resolver: resolver,
	}
}

// Name implements Provider.
func (a *Arbeitnow) Name() domain.JobSource { return domain.SourceArbeitnow }

type arbeitnowResponse struct {
	Data []struct {
		Slug        string   `json:"slug"`
		CompanyName string   `json:"company_name"`
		Title       string   `json:"title"`
		Description string   `json:"description"`
		Remote      bool     `json:"remote"`
		URL         string   `json:"url"`
		Tags        []string `json:"tags"`
		JobTypes    []string `json:"job_types"`
		Location    string   `json:"location"`
		CreatedAt   int64    `json:"created_at"`
	} `json:"data"`
}

// Search implements Provider.
func (a *Arbeitnow) Search(ctx context.Context, query string, _ domain.SearchOptions) ([]domain.Job, error) {
	params := url.Values{}
	params.Set("search", query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := a.client.Do(req)
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

	var parsed arbeitnowResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	jobs := make([]domain.Job, 0, len(parsed.Data))
	for _, item := range parsed.Data {
		var posted time.Time
		if item.CreatedAt > 0 {
			posted = time.Unix(item.CreatedAt, 0)
		}
		job := domain.Job{
			ID:          newJobID(domain.SourceArbeitnow, item.Slug),
			Title:       item.Title,
			Company:     item.CompanyName,
			Location:    item.Location,
			Description: cleanText(item.Description),
			URL:         item.URL,
			Type:        strings.Join(item.JobTypes, ", "),
			Remote:      item.Remote,
			PostedDate:  posted,
			Source:      domain.SourceArbeitnow,
		}
		finalize(&job, a.resolver)
		jobs = append(jobs, job)
	}
	return jobs, nil
}
