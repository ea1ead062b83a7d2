package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

type staticLimiter struct {
	allow bool
}

func (s *staticLimiter) Allow(*http.Request) bool {
	return s.allow
}

func requestFrom(addr string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = addr
	return req
}

func TestRateLimitMiddlewareBlocksWhenLimiterDenies(t *testing.T) {
	middleware := rateLimitMiddleware(&staticLimiter{allow: false}, http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		t.Fatalf("handler should not execute when rate limited")
	}))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	middleware.ServeHTTP(rec, req)

	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
}

func TestRateLimitMiddlewarePassesWhenLimiterAllows(t *testing.T) {
	var called bool
	middleware := rateLimitMiddleware(&staticLimiter{allow: true}, http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		called = true
	}))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	middleware.ServeHTTP(rec, req)

	if !called {
		t.Fatalf("expected handler to execute when limiter allows")
	}
}

func TestNewTokenBucketLimiterUsesDefaults(t *testing.T) {
	limiter := newTokenBucketLimiter(0, 0)
	if limiter == nil {
		t.Fatalf("expected limiter instance")
	}
	if !limiter.Allow(requestFrom("192.0.2.1:1000")) {
		t.Fatalf("expected first request to be allowed")
	}
}

func TestTokenBucketLimiterIsPerClient(t *testing.T) {
	limiter := newTokenBucketLimiter(1, 1)

	if !limiter.Allow(requestFrom("192.0.2.1:1000")) {
		t.Fatalf("expected first request from client A to be allowed")
	}
	if limiter.Allow(requestFrom("192.0.2.1:2000")) {
		t.Fatalf("expected second request from client A to be limited regardless of port")
	}
	if !limiter.Allow(requestFrom("192.0.2.2:1000")) {
		t.Fatalf("expected client B to have its own bucket")
	}
}

func TestTokenBucketLimiterEvictsIdleClients(t *testing.T) {
	now := time.Date(2024, 11, 1, 12, 0, 0, 0, time.UTC)
	limiter := newTokenBucketLimiter(1, 1)
	limiter.clock = func() time.Time { return now }

	limiter.Allow(requestFrom("192.0.2.1:1000"))
	limiter.Allow(requestFrom("192.0.2.2:1000"))
	if got := limiter.tracked(); got != 2 {
		t.Fatalf("expected 2 tracked clients, got %d", got)
	}

	now = now.Add(clientIdleTTL + time.Second)
	limiter.Allow(requestFrom("192.0.2.3:1000"))
	if got := limiter.tracked(); got != 1 {
		t.Fatalf("expected idle clients to be evicted, got %d tracked", got)
	}
}
