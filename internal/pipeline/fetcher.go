package pipeline

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ajmayo/fortscan/internal/cache"
	"github.com/ajmayo/fortscan/internal/model"
	"github.com/ajmayo/fortscan/internal/util"
	"github.com/ajmayo/fortscan/internal/worker"
)

// Fetcher downloads state pages politely: robots.txt is honored, a
// per-host rate limit plus a fixed delay throttles requests, and bodies
// are served from the layered cache when fresh.
type Fetcher struct {
	client   *http.Client
	ua       string
	maxBytes int64
	delay    time.Duration
	limiter  *worker.Limiter
	robots   *util.RobotsChecker
	cache    cache.Cache
}

// NewFetcher builds a fetcher from config. pageCache may be nil to
// disable caching.
func NewFetcher(cfg *model.Config, pageCache cache.Cache) *Fetcher {
	f := &Fetcher{
		client: &http.Client{
			Timeout: cfg.HTTP.Timeout,
			Transport: &http.Transport{
				Proxy: util.NewProxyFunc(cfg.HTTP.HTTPProxy, cfg.HTTP.HTTPSProxy),
			},
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		ua:       cfg.HTTP.UserAgent,
		maxBytes: cfg.HTTP.MaxBodyBytes,
		delay:    cfg.RateLimiting.Delay,
		limiter:  worker.NewLimiter(cfg.RateLimiting.RequestsPerSecond, cfg.RateLimiting.BurstSize),
		cache:    pageCache,
	}
	if cfg.HTTP.CheckRobots {
		f.robots = util.NewRobotsChecker(cfg.HTTP.UserAgent, cfg.HTTP.Timeout)
	}
	return f
}

// Fetch returns the page body for rawURL. fromCache reports whether the
// network was skipped.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (body string, fromCache bool, err error) {
	key := cache.Key(rawURL)
	if f.cache != nil {
		if cached, found := f.cache.Get(key); found {
			return string(cached), true, nil
		}
	}

	delay := f.delay
	if f.robots != nil {
		allowed, crawlDelay, err := f.robots.CanFetch(ctx, rawURL)
		if err != nil {
			return "", false, err
		}
		if !allowed {
			return "", false, fmt.Errorf("disallowed by robots.txt: %s", rawURL)
		}
		if crawlDelay > delay {
			delay = crawlDelay
		}
	}

	if err := f.limiter.WaitWithDelay(ctx, rawURL, delay); err != nil {
		return "", false, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", false, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", f.ua)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", false, fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", false, fmt.Errorf("unexpected status: %d %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes))
	if err != nil {
		return "", false, fmt.Errorf("read body: %w", err)
	}

	if f.cache != nil {
		_ = f.cache.Set(key, data, 0)
	}
	return string(data), false, nil
}
