package archive

import (
	"context"
	"net/url"
	"sync"

	"github.com/fwojciec/statblock"
	"golang.org/x/time/rate"
)

// HostLimiter provides per-host rate limiting using token buckets.
// Requests to different hosts proceed independently.
type HostLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      float64
}

// NewHostLimiter creates a HostLimiter allowing rps requests per second to
// each host, with a burst of 1.
func NewHostLimiter(rps float64) *HostLimiter {
	return &HostLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rps,
	}
}

// Wait blocks until the rate limit allows a request to host.
// Returns an error if the context is canceled before the wait completes.
func (h *HostLimiter) Wait(ctx context.Context, host string) error {
	h.mu.Lock()
	limiter, ok := h.limiters[host]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(h.rps), 1)
		h.limiters[host] = limiter
	}
	h.mu.Unlock()

	return limiter.Wait(ctx)
}

// Ensure LimitedFetcher implements statblock.Fetcher at compile time.
var _ statblock.Fetcher = (*LimitedFetcher)(nil)

// LimitedFetcher waits on a HostLimiter before every fetch.
type LimitedFetcher struct {
	next    statblock.Fetcher
	limiter *HostLimiter
}

// NewLimitedFetcher wraps next with per-host rate limiting.
func NewLimitedFetcher(next statblock.Fetcher, limiter *HostLimiter) *LimitedFetcher {
	return &LimitedFetcher{next: next, limiter: limiter}
}

// Fetch waits for the host of rawURL to accept a request, then delegates.
func (f *LimitedFetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", statblock.Errorf(statblock.EINVALID, "invalid url %q: %v", rawURL, err)
	}
	if err := f.limiter.Wait(ctx, u.Host); err != nil {
		return "", statblock.Errorf(statblock.ERETRIEVAL, "rate limit wait for %s: %v", u.Host, err)
	}
	return f.next.Fetch(ctx, rawURL)
}
