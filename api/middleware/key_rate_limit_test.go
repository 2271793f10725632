package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	pkgerrors "github.com/angelmondragon/storefront-checkout/pkg/errors"
)

func TestKeyGuessRateLimit_AllowsUnderLimit(t *testing.T) {
	limiter := newFakeLimiter()
	handler := KeyGuessRateLimit(NewKeyGuessPolicy("order_pay", time.Minute, 2), limiter, nil)(okHandler())

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/checkout/order-pay/7?key=wc_order_abc", nil)
		req.RemoteAddr = "1.2.3.4:5678"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("attempt %d: expected 200, got %d", i, rec.Code)
		}
	}
}

func TestKeyGuessRateLimit_BlocksOverLimit(t *testing.T) {
	limiter := newFakeLimiter()
	handler := KeyGuessRateLimit(NewKeyGuessPolicy("order_pay", time.Minute, 1), limiter, nil)(okHandler())

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/checkout/order-pay/7?key=guess", nil)
		req.RemoteAddr = "5.6.7.8:1234"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if i == 0 && rec.Code != http.StatusOK {
			t.Fatalf("expected success, got %d", rec.Code)
		}
		if i == 1 {
			if rec.Code != http.StatusTooManyRequests {
				t.Fatalf("expected 429, got %d", rec.Code)
			}
			var payload struct {
				Error struct {
					Code string `json:"code"`
				} `json:"error"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
				t.Fatalf("decode error: %v", err)
			}
			if payload.Error.Code != string(pkgerrors.CodeRateLimit) {
				t.Fatalf("unexpected code: %s", payload.Error.Code)
			}
		}
	}
}

func TestKeyGuessRateLimit_IgnoresRequestsWithoutKey(t *testing.T) {
	limiter := newFakeLimiter()
	handler := KeyGuessRateLimit(NewKeyGuessPolicy("order_pay", time.Minute, 1), limiter, nil)(okHandler())

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/checkout/order-received/", nil)
		req.RemoteAddr = "5.6.7.8:1234"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	}
	if len(limiter.counts) != 0 {
		t.Fatalf("expected no counters, got %v", limiter.counts)
	}
}

func TestKeyGuessRateLimit_CountsPerPeerAddress(t *testing.T) {
	limiter := newFakeLimiter()
	handler := KeyGuessRateLimit(NewKeyGuessPolicy("order_pay", time.Minute, 1), limiter, nil)(okHandler())

	for _, addr := range []string{"9.9.9.9:1000", "8.8.8.8:2000"} {
		req := httptest.NewRequest(http.MethodGet, "/checkout/order-pay/7?key=guess", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("addr %s: expected 200, got %d", addr, rec.Code)
		}
	}
	if limiter.counts["order_pay:9.9.9.9"] != 1 || limiter.counts["order_pay:8.8.8.8"] != 1 {
		t.Fatalf("unexpected counters %v", limiter.counts)
	}
}

func TestKeyGuessRateLimit_IgnoresForwardingHeaders(t *testing.T) {
	limiter := newFakeLimiter()
	handler := KeyGuessRateLimit(NewKeyGuessPolicy("order_pay", time.Minute, 3), limiter, nil)(okHandler())

	allowed := 0
	for i := 0; i < 50; i++ {
		req := httptest.NewRequest(http.MethodGet, "/checkout/order-pay/7?key=guess", nil)
		req.RemoteAddr = "203.0.113.9:1234"
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("198.51.100.%d", i))
		req.Header.Set("X-Real-IP", fmt.Sprintf("192.0.2.%d", i))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code == http.StatusOK {
			allowed++
		}
	}
	if allowed != 3 {
		t.Fatalf("expected 3 allowed attempts, got %d", allowed)
	}
	if limiter.counts["order_pay:203.0.113.9"] != 50 {
		t.Fatalf("unexpected counters %v", limiter.counts)
	}
}

func TestKeyGuessRateLimit_LimiterFailure(t *testing.T) {
	limiter := newFakeLimiter()
	limiter.err = errors.New("redis down")
	handler := KeyGuessRateLimit(NewKeyGuessPolicy("order_pay", time.Minute, 1), limiter, nil)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/checkout/order-pay/7?key=guess", nil)
	req.RemoteAddr = "5.6.7.8:1234"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}

func TestKeyGuessRateLimit_DisabledPolicyPassesThrough(t *testing.T) {
	handler := KeyGuessRateLimit(NewKeyGuessPolicy("order_pay", 0, 0), nil, nil)(okHandler())
	req := httptest.NewRequest(http.MethodGet, "/checkout/order-pay/7?key=guess", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

type fakeLimiter struct {
	mu     sync.Mutex
	counts map[string]int64
	err    error
}

func newFakeLimiter() *fakeLimiter {
	return &fakeLimiter{counts: map[string]int64{}}
}

func (f *fakeLimiter) FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (bool, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return false, 0, f.err
	}
	f.counts[scope]++
	return f.counts[scope] <= limit, f.counts[scope], nil
}
