package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

func TestIPRateLimiter_Middleware(t *testing.T) {
	limiter := NewIPRateLimiter("test", rate.Limit(0.001), 2, zap.NewNop())
	handler := limiter.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	do := func(addr string) int {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	for i := 0; i < 2; i++ {
		if code := do("10.0.0.1:1000"); code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, code)
		}
	}
	if code := do("10.0.0.1:1001"); code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 once burst is spent, got %d", code)
	}
	if code := do("10.0.0.2:1000"); code != http.StatusOK {
		t.Fatalf("other IPs must have their own bucket, got %d", code)
	}
}

func TestIPRateLimiter_Cleanup(t *testing.T) {
	limiter := NewIPRateLimiter("test", rate.Limit(1), 1, zap.NewNop())
	limiter.GetLimiter("idle")
	limiter.GetLimiter("busy").Allow()

	removed, remaining := limiter.cleanup(time.Now())
	if removed != 1 || remaining != 1 {
		t.Fatalf("expected 1 removed and 1 remaining, got %d %d", removed, remaining)
	}
	if _, ok := limiter.limits["busy"]; !ok {
		t.Fatalf("busy limiter should survive cleanup")
	}
}

func TestIPRateLimiter_IgnoresForwardedHeadersWithoutTrustedProxy(t *testing.T) {
	limiter := NewIPRateLimiter("test", rate.Limit(0.001), 2, zap.NewNop())
	handler := RealIP(false)(limiter.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})))

	allowed := 0
	for i := 0; i < 50; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
		req.RemoteAddr = "203.0.113.9:5555"
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("10.0.0.%d", i))
		req.Header.Set("X-Real-IP", fmt.Sprintf("10.0.1.%d", i))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code == http.StatusOK {
			allowed++
		}
	}
	if allowed != 2 {
		t.Fatalf("allowed %d requests from one socket with burst 2", allowed)
	}
}

func TestRealIP_TrustedProxyUsesForwardedAddress(t *testing.T) {
	var seen string
	handler := RealIP(true)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.RemoteAddr
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.1.1.1:4000"
	req.Header.Set("X-Real-IP", "198.51.100.7")
	handler.ServeHTTP(httptest.NewRecorder(), req)
	if seen != "198.51.100.7" {
		t.Fatalf("expected forwarded address, got %q", seen)
	}
}
