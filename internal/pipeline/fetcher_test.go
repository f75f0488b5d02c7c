package pipeline

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ajmayo/fortscan/internal/cache"
	"github.com/ajmayo/fortscan/internal/model"
)

func fetchConfig() *model.Config {
	cfg := model.DefaultConfig()
	cfg.HTTP.CheckRobots = false
	cfg.RateLimiting.RequestsPerSecond = 1000
	cfg.RateLimiting.BurstSize = 100
	cfg.RateLimiting.Delay = 0
	return cfg
}

func TestFetcherFetch(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Write([]byte("<html><body>Fort Page</body></html>"))
	}))
	defer srv.Close()

	f := NewFetcher(fetchConfig(), nil)
	body, fromCache, err := f.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	if fromCache {
		t.Error("first fetch must not come from cache")
	}
	if !strings.Contains(body, "Fort Page") {
		t.Errorf("unexpected body: %q", body)
	}
	if !strings.HasPrefix(gotUA, "fortscan/") {
		t.Errorf("user agent not sent: %q", gotUA)
	}
}

func TestFetcherStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	f := NewFetcher(fetchConfig(), nil)
	if _, _, err := f.Fetch(context.Background(), srv.URL); err == nil {
		t.Error("expected error for 404 response")
	}
}

func TestFetcherBodyLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(strings.Repeat("x", 1000)))
	}))
	defer srv.Close()

	cfg := fetchConfig()
	cfg.HTTP.MaxBodyBytes = 100
	f := NewFetcher(cfg, nil)
	body, _, err := f.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	if len(body) != 100 {
		t.Errorf("expected truncated body of 100 bytes, got %d", len(body))
	}
}

func TestFetcherUsesCache(t *testing.T) {
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte("cached page"))
	}))
	defer srv.Close()

	f := NewFetcher(fetchConfig(), cache.NewMemoryCache(time.Minute, time.Minute))

	if _, fromCache, err := f.Fetch(context.Background(), srv.URL); err != nil || fromCache {
		t.Fatalf("first fetch: fromCache=%v err=%v", fromCache, err)
	}
	body, fromCache, err := f.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	if !fromCache || body != "cached page" {
		t.Errorf("second fetch: fromCache=%v body=%q", fromCache, body)
	}
	if hits.Load() != 1 {
		t.Errorf("server hit %d times, want 1", hits.Load())
	}
}

func TestFetcherRobotsDisallow(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			w.Write([]byte("User-agent: *\nDisallow: /private/\n"))
			return
		}
		w.Write([]byte("page"))
	}))
	defer srv.Close()

	cfg := fetchConfig()
	cfg.HTTP.CheckRobots = true
	f := NewFetcher(cfg, nil)

	if _, _, err := f.Fetch(context.Background(), srv.URL+"/private/page.html"); err == nil {
		t.Error("expected robots.txt to block the fetch")
	}
	if _, _, err := f.Fetch(context.Background(), srv.URL+"/public/page.html"); err != nil {
		t.Errorf("public path should be allowed: %v", err)
	}
}
