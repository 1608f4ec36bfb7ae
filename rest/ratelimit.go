package rest

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// rateLimit is the server-advertised limit state of one route. It is
// mutated only while its mutex is held, which also serialises the
// in-flight request for the route.
type rateLimit struct {
	sync.Mutex
	limit     uint64
	remaining uint64
	reset     time.Time
}

// TooManyRequests is the body of a 429 response.
type TooManyRequests struct {
	RetryAfter float64 `json:"retry_after"`
}

// RateLimiter wraps every REST request in the per-route limit protocol:
// wait out an exhausted bucket, retry on 429 for as long as the server
// says, and fold the response headers back into the route state.
type RateLimiter struct {
	mu     sync.RWMutex
	routes map[Route]*rateLimit

	log zerolog.Logger
}

// NewRateLimiter returns an empty limiter. Route entries are created
// lazily on first use and never removed.
func NewRateLimiter(log zerolog.Logger) *RateLimiter {
	return &RateLimiter{
		routes: make(map[Route]*rateLimit),
		log:    log,
	}
}

// get returns the state for route, creating it on first touch. Before
// the first response a route permits exactly one request.
func (r *RateLimiter) get(route Route) *rateLimit {
	r.mu.RLock()
	limit, ok := r.routes[route]
	r.mu.RUnlock()
	if ok {
		return limit
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if limit, ok = r.routes[route]; !ok {
		limit = &rateLimit{remaining: 1, reset: time.Now()}
		r.routes[route] = limit
	}

	return limit
}

// Do executes attempt under the limit protocol. attempt must issue a
// fresh request on every call; it is re-invoked after each 429. With a
// nil route only the 429 retry applies.
func (r *RateLimiter) Do(route *Route, attempt func() (*http.Response, error)) (*http.Response, error) {
	if route == nil {
		return r.retry(attempt)
	}

	limit := r.get(*route)
	limit.Lock()
	defer limit.Unlock()

	if limit.remaining == 0 {
		if delay := time.Until(limit.reset); delay > 0 {
			r.log.Debug().Str("route", route.String()).Dur("delay", delay).Msg("route exhausted, waiting for reset")
			time.Sleep(delay)
		}
	}

	resp, err := r.retry(attempt)
	if err != nil {
		return nil, err
	}

	// Only successful responses carry bucket headers worth trusting.
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		limit.update(resp.Header)
	}

	return resp, nil
}

// retry loops attempt until the response is anything but 429, sleeping
// the server-supplied retry_after between tries. The server is the
// authority on the delay, so there is no local cap.
func (r *RateLimiter) retry(attempt func() (*http.Response, error)) (*http.Response, error) {
	for {
		resp, err := attempt()
		if err != nil {
			return nil, err
		}

		if resp.StatusCode != http.StatusTooManyRequests {
			return resp, nil
		}

		var tmr TooManyRequests
		err = json.NewDecoder(resp.Body).Decode(&tmr)
		resp.Body.Close()
		if err != nil {
			return nil, err
		}

		delay := time.Duration(tmr.RetryAfter * float64(time.Second))
		r.log.Debug().Dur("retry_after", delay).Msg("request was rate limited")
		time.Sleep(delay)
	}
}

// update folds the rate-limit headers into the route state, keeping the
// previous value for any header the server omitted.
func (rl *rateLimit) update(header http.Header) {
	if v := header.Get("x-ratelimit-limit"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			rl.limit = n
		}
	}

	if v := header.Get("x-ratelimit-remaining"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			rl.remaining = n
		}
	}

	if v := header.Get("x-ratelimit-reset"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			rl.reset = time.Unix(0, int64(f*float64(time.Second)))
		}
	}
}
