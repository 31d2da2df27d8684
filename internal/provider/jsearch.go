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

const jsearchMaxResults = 20

// JSearch is the complex-query provider: expensive, tightly quota-limited,
// and only consulted when a search opts into the wider fan-out. Auth is a
// Bearer token.
type JSearch struct {
	baseURL  string
	apiKey   string
	client   *http.Client
	resolver *careers.Resolver
}

// NewJSearch creates a JSearch client.
func NewJSearch(baseURL, apiKey string, timeout time.Duration, resolver *careers.Resolver) *JSearch {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &JSearch{
		baseURL:  baseURL,
		apiKey:   apiKey,
		client:   &http.Client{Timeout: timeout},
		resolver: resolver,
	}
}

// Name implements Provider.
func (s *JSearch) Name() domain.JobSource { return domain.SourceJSearch }

type jsearchResponse struct {
	Data []struct {
		JobID          string  `json:"job_id"`
		Title          string  `json:"job_title"`
		Employer       string  `json:"employer_name"`
		City           string  `json:"job_city"`
		Country        string  `json:"job_country"`
		Description    string  `json:"job_description"`
		ApplyLink      string  `json:"job_apply_link"`
		EmploymentType string  `json:"job_employment_type"`
		IsRemote       bool    `json:"job_is_remote"`
		PostedAt       string  `json:"job_posted_at_datetime_utc"`
		MinSalary      float64 `json:"job_min_salary"`
		MaxSalary      float64 `json:"job_max_salary"`
	} `json:"data"`
}

// Search implements Provider.
func (s *JSearch) Search(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.Job, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("limit", strconv.Itoa(limitOr(opts, jsearchMaxResults)))
	if opts.Location != "" {
		params.Set("location", opts.Location)
	}
	if opts.Remote {
		params.Set("remote", "true")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
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

	var parsed jsearchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	jobs := make([]domain.Job, 0, len(parsed.Data))
	for _, item := range parsed.Data {
		location := item.City
		if location != "" && item.Country != "" {
			location += ", " + item.Country
		} else if location == "" {
			location = item.Country
		}

		var salary string
		if item.MinSalary > 0 && item.MaxSalary > 0 {
			salary = fmt.Sprintf("%.0f - %.0f", item.MinSalary, item.MaxSalary)
		}

		var posted time.Time
		if item.PostedAt != "" {
			posted = parseTime(item.PostedAt)
		}

		job := domain.Job{
			ID:          newJobID(domain.SourceJSearch, item.JobID),
			Title:       item.Title,
			Company:     item.Employer,
			Location:    location,
			Description: cleanText(item.Description),
			URL:         item.ApplyLink,
			Salary:      salary,
			Type:        item.EmploymentType,
			Remote:      item.IsRemote,
			PostedDate:  posted,
			Source:      domain.SourceJSearch,
		}
		finalize(&job, s.resolver)
		jobs = append(jobs, job)
	}
	return jobs, nil
}
