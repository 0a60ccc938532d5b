package api

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRateLimitMiddleware_AllowsWithinLimit(t *testing.T) {
	handler := RateLimitMiddleware(5)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 5; i++ {
		req := httptest.NewRequest("GET", "/", nil)
		req.RemoteAddr = "192.0.2.1:1234"
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i+1, w.Code)
		}
	}
}

func TestRateLimitMiddleware_BlocksOverLimit(t *testing.T) {
	handler := RateLimitMiddleware(3)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest("GET", "/", nil)
		req.RemoteAddr = "192.0.2.1:1234"
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
	}

	// 4th request should be rate-limited
	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "192.0.2.1:1234"
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusTooManyRequests {
		t.Errorf("expected 429, got %d", w.Code)
	}
}

func TestRateLimitMiddleware_KeysByClient(t *testing.T) {
	handler := RateLimitMiddleware(2)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	// Exhaust limit for the first client
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest("GET", "/", nil)
		req.RemoteAddr = "192.0.2.1:1234"
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
	}

	// A second client should still be allowed
	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "198.51.100.7:4321"
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("second client should not be rate-limited, got %d", w.Code)
	}

	req = httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "192.0.2.1:1234"
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusTooManyRequests {
		t.Errorf("first client should be rate-limited, got %d", w.Code)
	}
}

func TestRateLimitMiddleware_IgnoresSourcePort(t *testing.T) {
	handler := RateLimitMiddleware(2)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	blocked := 0
	for i := 0; i < 10; i++ {
		req := httptest.NewRequest("GET", "/", nil)
		req.RemoteAddr = fmt.Sprintf("192.0.2.1:%d", 40000+i)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		if w.Code == http.StatusTooManyRequests {
			blocked++
		}
	}

	if blocked != 8 {
		t.Errorf("expected 8 of 10 requests from one host to be blocked, got %d", blocked)
	}
}

func TestRateLimiterSweepsIdleClients(t *testing.T) {
	rl := &rateLimiter{requests: make(map[string][]time.Time), limit: 5, window: time.Minute}
	now := time.Now()

	rl.allow("a", now)
	rl.allow("b", now.Add(10*time.Second))
	rl.allow("c", now.Add(2*time.Minute))

	if _, ok := rl.requests["a"]; ok {
		t.Error("idle client a should have been dropped")
	}
	if _, ok := rl.requests["b"]; ok {
		t.Error("idle client b should have been dropped")
	}
	if len(rl.requests) != 1 {
		t.Errorf("expected only the active client to remain, got %d entries", len(rl.requests))
	}
}

func TestRateLimiterWindowExpires(t *testing.T) {
	rl := &rateLimiter{requests: make(map[string][]time.Time), limit: 1, window: time.Minute}
	now := time.Now()

	if !rl.allow("c", now) {
		t.Fatal("first request should pass")
	}
	if rl.allow("c", now.Add(30*time.Second)) {
		t.Error("second request inside the window should be blocked")
	}
	if !rl.allow("c", now.Add(61*time.Second)) {
		t.Error("request after the window should pass")
	}
}

func TestRequestLogger(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	called := false
	handler := RequestLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest("GET", "/test", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if !called {
		t.Error("inner handler was not called")
	}
	if w.Code != http.StatusTeapot {
		t.Errorf("expected 418, got %d", w.Code)
	}
}
