package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/joblens/aggregator/internal/careers"
	"github.com/joblens/aggregator/internal/domain"
)

const joobleDefaultBaseURL = "https://jooble.org/api"

// Jooble is the primary keyword-search provider. Auth is the API key in
// the request path; listings link through Jooble's own redirect domain.
type Jooble struct {
	baseURL  string
	apiKey   string
	client   *http.Client
	resolver *careers.Resolver
}

// NewJooble creates a Jooble client.
func NewJooble(baseURL, apiKey string, timeout time.Duration, resolver *careers.Resolver) *Jooble {
	if baseURL == "" {
		baseURL = joobleDefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Jooble{
		baseURL:  baseURL,
		apiKey:   apiKey,
		client:   &http.Client{Timeout: timeout},
		resolver: resolver,
	}
}

// Name implements Provider.
func (j *Jooble) Name() domain.JobSource { return domain.SourceJooble }

type joobleRequest struct {
	Keywords string `json:"keywords"`
	Location string `json:"location,omitempty"`
	Radius   string `json:"radius"`
	Page     string `json:"page"`
}

type joobleResponse struct {
	TotalCount int `json:"totalCount"`
	Jobs       []struct {
		Title    string      `json:"title"`
		Location string      `json:"location"`
		Snippet  string      `json:"snippet"`
		Salary   string      `json:"salary"`
		Source   string      `json:"source"`
		Type     string      `json:"type"`
		Link     string      `json:"link"`
		Company  string      `json:"company"`
		Updated  string      `json:"updated"`
		ID       json.Number `json:"id"`
	} `json:"jobs"`
}

// Search implements Provider.
func (j *Jooble) Search(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.Job, error) {
	payload := joobleRequest{
		Keywords: query,
		Location: opts.Location,
		Radius:   "25",
		Page:     "1",
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}

	endpoint := fmt.Sprintf("%s/%s", j.baseURL, j.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := j.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	var parsed joobleResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	jobs := make([]domain.Job, 0, len(parsed.Jobs))
	for _, item := range parsed.Jobs {
		var posted time.Time
		if item.Updated != "" {
			posted = parseTime(item.Updated)
		}
		job := domain.Job{
			ID:          newJobID(domain.SourceJooble, item.ID.String()),
			Title:       item.Title,
			Company:     item.Company,
			Location:    item.Location,
			Description: cleanText(item.Snippet),
			URL:         item.Link,
			Salary:      item.Salary,
			Type:        item.Type,
			PostedDate:  posted,
			Source:      domain.SourceJooble,
		}
		finalize(&job, j.resolver)
		jobs = append(jobs, job)
	}
	return jobs, nil
}
