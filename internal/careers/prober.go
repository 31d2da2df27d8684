package careers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// LinkProber fetches a company website and scans its anchors for a careers
// link. Used only on the background learning path, never while resolving.
type LinkProber struct {
	client    *http.Client
	userAgent string
}

// NewLinkProber creates a prober with its own bounded HTTP client.
func NewLinkProber(timeout time.Duration, userAgent string) *LinkProber {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if userAgent == "" {
		userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
	}
	return &LinkProber{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
	}
}

// Probe fetches siteURL and returns the first anchor that looks like a
// careers link, resolved to an absolute URL. Returns "" when none is found.
func (p *LinkProber) Probe(ctx context.Context, siteURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, siteURL, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", p.userAgent)
	req.Header.Set("Accept", "text/html")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", siteURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}

	base, err := url.Parse(siteURL)
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}

	var found string
	doc.Find("a[href]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		href, _ := sel.Attr("href")
		if !looksLikeCareersLink(href, sel.Text()) {
			return true
		}
		ref, err := url.Parse(href)
		if err != nil {
			return true
		}
		found = base.ResolveReference(ref).String()
		return false
	})

	return found, nil
}

func looksLikeCareersLink(href, text string) bool {
	href = strings.ToLower(href)
	text = strings.ToLower(strings.TrimSpace(text))
	if strings.HasPrefix(href, "mailto:") || strings.HasPrefix(href, "javascript:") {
		return false
	}
	for _, kw := range []string{"career", "jobs", "join-us", "joinus", "work-with-us", "hiring"} {
		if strings.Contains(href, kw) || strings.Contains(text, kw) {
			return true
		}
	}
	return text == "we're hiring" || text == "join us"
}
