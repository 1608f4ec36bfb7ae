package rest

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doGet(t *testing.T, limiter *RateLimiter, route *Route, url string) *http.Response {
	t.Helper()

	resp, err := limiter.Do(route, func() (*http.Response, error) {
		return http.Get(url)
	})
	require.NoError(t, err)
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return resp
}

func TestSameRouteSerialisesCallers(t *testing.T) {
	var inFlight, maxInFlight int64

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt64(&inFlight, 1)
		for {
			max := atomic.LoadInt64(&maxInFlight)
			if n <= max || atomic.CompareAndSwapInt64(&maxInFlight, max, n) {
				break
			}
		}
		time.Sleep(20 * time.Millisecond)
		atomic.AddInt64(&inFlight, -1)
	}))
	t.Cleanup(server.Close)

	limiter := NewRateLimiter(zerolog.Nop())
	route := ChannelRoute(42)

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			doGet(t, limiter, optional(route), server.URL)
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(1), atomic.LoadInt64(&maxInFlight))
}

func TestDistinctRoutesRunConcurrently(t *testing.T) {
	release := make(chan struct{})
	arrived := make(chan struct{}, 2)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		arrived <- struct{}{}
		<-release
	}))
	t.Cleanup(server.Close)

	limiter := NewRateLimiter(zerolog.Nop())

	var wg sync.WaitGroup
	for _, route := range []Route{ChannelRoute(1), ChannelRoute(2)} {
		route := route
		wg.Add(1)
		go func() {
			defer wg.Done()
			doGet(t, limiter, optional(route), server.URL)
		}()
	}

	// Both requests must be in flight before either is released.
	for i := 0; i < 2; i++ {
		select {
		case <-arrived:
		case <-time.After(time.Second):
			t.Fatal("second route blocked behind the first")
		}
	}
	close(release)
	wg.Wait()
}

func TestExhaustedRouteWaitsForReset(t *testing.T) {
	reset := time.Now().Add(500 * time.Millisecond)

	var requests int64
	var second time.Time

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch atomic.AddInt64(&requests, 1) {
		case 1:
			w.Header().Set("x-ratelimit-limit", "5")
			w.Header().Set("x-ratelimit-remaining", "0")
			w.Header().Set("x-ratelimit-reset", fmt.Sprintf("%.3f", float64(reset.UnixNano())/float64(time.Second)))
		case 2:
			second = time.Now()
			w.Header().Set("x-ratelimit-remaining", "4")
		}
	}))
	t.Cleanup(server.Close)

	limiter := NewRateLimiter(zerolog.Nop())
	route := optional(ChannelRoute(42))

	doGet(t, limiter, route, server.URL)
	doGet(t, limiter, route, server.URL)

	// The header carries millisecond precision, so allow that much slack.
	require.False(t, second.IsZero())
	assert.False(t, second.Before(reset.Add(-5*time.Millisecond)),
		"second request started %s before reset", reset.Sub(second))
}

func TestRetriesOn429UntilSuccess(t *testing.T) {
	var requests int64
	start := time.Now()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt64(&requests, 1) <= 2 {
			w.WriteHeader(http.StatusTooManyRequests)
			fmt.Fprint(w, `{"retry_after":0.1}`)
			return
		}
		fmt.Fprint(w, `{}`)
	}))
	t.Cleanup(server.Close)

	limiter := NewRateLimiter(zerolog.Nop())

	resp := doGet(t, limiter, optional(ChannelMessageRoute(1, 2)), server.URL)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int64(3), atomic.LoadInt64(&requests))
	assert.GreaterOrEqual(t, time.Since(start), 200*time.Millisecond)
}

func TestNilRouteStillRetries429(t *testing.T) {
	var requests int64

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt64(&requests, 1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			fmt.Fprint(w, `{"retry_after":0.05}`)
			return
		}
	}))
	t.Cleanup(server.Close)

	limiter := NewRateLimiter(zerolog.Nop())

	resp := doGet(t, limiter, nil, server.URL)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int64(2), atomic.LoadInt64(&requests))
}

func TestNonSuccessLeavesBucketStateAlone(t *testing.T) {
	var requests int64

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// A failure carrying poisoned headers must not exhaust the route.
		w.Header().Set("x-ratelimit-remaining", "0")
		w.Header().Set("x-ratelimit-reset", fmt.Sprintf("%d", time.Now().Add(time.Hour).Unix()))
		if atomic.AddInt64(&requests, 1) == 1 {
			w.WriteHeader(http.StatusForbidden)
		}
	}))
	t.Cleanup(server.Close)

	limiter := NewRateLimiter(zerolog.Nop())
	route := optional(GuildRoute(9))

	doGet(t, limiter, route, server.URL)

	done := make(chan struct{})
	go func() {
		doGet(t, limiter, route, server.URL)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("second request blocked on headers from a failed response")
	}
}

func TestRouteKeysPartitionAsDocumented(t *testing.T) {
	assert.Equal(t, ChannelRoute(1), ChannelRoute(1))
	assert.NotEqual(t, ChannelRoute(1), ChannelRoute(2))
	assert.NotEqual(t, ChannelRoute(1), GuildRoute(1))
	assert.NotEqual(t, ChannelMessageRoute(1, 2), ChannelMessageRoute(1, 3))
	assert.NotEqual(t, GuildMemberRoute(1, 2), GuildRoute(1))
	assert.Equal(t, WebhookRoute(7), WebhookRoute(7))

	assert.Equal(t, "channel:1", ChannelRoute(1).String())
	assert.Equal(t, "guild:1:member:2", GuildMemberRoute(1, 2).String())
}

func TestTooManyRequestsBodyDecodes(t *testing.T) {
	var tmr TooManyRequests
	require.NoError(t, json.NewDecoder(strings.NewReader(`{"retry_after":0.5}`)).Decode(&tmr))
	assert.Equal(t, 0.5, tmr.RetryAfter)
}
