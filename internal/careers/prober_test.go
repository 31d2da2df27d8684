package careers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestLinkProber_FindsCareersAnchor(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<html><body>
			<a href="/about">About</a>
			<a href="/careers">Join the team</a>
			<a href="/contact">Contact</a>
		</body></html>`))
	}))
	defer srv.Close()

	p := NewLinkProber(2*time.Second, "")
	got, err := p.Probe(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Probe error: %v", err)
	}
	if got != srv.URL+"/careers" {
		t.Errorf("Probe = %q, want %q", got, srv.URL+"/careers")
	}
}

func TestLinkProber_MatchesAnchorText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<html><body><a href="/team/openings">We're hiring</a></body></html>`))
	}))
	defer srv.Close()

	p := NewLinkProber(2*time.Second, "")
	got, err := p.Probe(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Probe error: %v", err)
	}
	if got != srv.URL+"/team/openings" {
		t.Errorf("Probe = %q", got)
	}
}

func TestLinkProber_NoLinkFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<html><body><a href="/about">About</a></body></html>`))
	}))
	defer srv.Close()

	p := NewLinkProber(2*time.Second, "")
	got, err := p.Probe(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Probe error: %v", err)
	}
	if got != "" {
		t.Errorf("Probe = %q, want empty", got)
	}
}

func TestLinkProber_Non200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	p := NewLinkProber(2*time.Second, "")
	if _, err := p.Probe(context.Background(), srv.URL); err == nil {
		t.Error("expected error for non-200 response")
	}
}
