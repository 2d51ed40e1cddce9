package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"gitlab.com/code-round.net/internal/adapter/crypto"
	"gitlab.com/code-round.net/internal/adapter/logging"
	"gitlab.com/code-round.net/internal/adapter/memory"
	"gitlab.com/code-round.net/internal/config"
)

func teamEcho() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		team, _ := TeamFromContext(r.Context())
		_, _ = w.Write([]byte(team))
	})
}

func TestJWTMiddlewareDisabled(t *testing.T) {
	m := New(nil, nil, nil, logging.NewNopLogger())
	rec := httptest.NewRecorder()
	m.JWTMiddleware(teamEcho()).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/execute", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestJWTMiddleware(t *testing.T) {
	tokens := crypto.NewJWTService(&config.JwtConfig{Secret: "s3cret"})
	m := New(tokens, nil, nil, logging.NewNopLogger())
	valid, err := tokens.GenerateTokenHMAC(context.Background(), "HS256", map[string]interface{}{"team": "blue"})
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		header   string
		wantCode int
		wantBody string
	}{
		{"missing", "", http.StatusUnauthorized, "Authorization header missing"},
		{"garbage", "Bearer nope", http.StatusUnauthorized, "Invalid token"},
		{"valid", "Bearer " + valid, http.StatusOK, "blue"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/execute", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			m.JWTMiddleware(teamEcho()).ServeHTTP(rec, req)

			if rec.Code != tt.wantCode || !strings.Contains(rec.Body.String(), tt.wantBody) {
				t.Fatalf("got %d %q", rec.Code, rec.Body.String())
			}
		})
	}
}

type failingLimiter struct{}

func (failingLimiter) Allow(context.Context, string, int, time.Duration) (bool, error) {
	return false, errors.New("redis down")
}

func TestRateLimitMiddleware(t *testing.T) {
	limit := &config.RateLimitConfig{PerWindow: 2, Window: time.Minute}
	m := New(nil, memory.NewRateLimiter(), limit, logging.NewNopLogger())
	h := m.RateLimitMiddleware(teamEcho())

	hit := func(addr string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/api/problems", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	for i := 0; i < 2; i++ {
		if rec := hit("10.0.0.1:5000"); rec.Code != http.StatusOK {
			t.Fatalf("hit %d: status %d", i+1, rec.Code)
		}
	}
	rec := hit("10.0.0.1:5001")
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), TooManyRequestsMessage) || !strings.Contains(rec.Body.String(), `"results":[]`) {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
	if rec := hit("10.0.0.2:5000"); rec.Code != http.StatusOK {
		t.Fatalf("other clients must not be limited, got %d", rec.Code)
	}
}

func TestRateLimitMiddlewareFailsOpen(t *testing.T) {
	limit := &config.RateLimitConfig{PerWindow: 1, Window: time.Minute}
	m := New(nil, failingLimiter{}, limit, logging.NewNopLogger())
	rec := httptest.NewRecorder()
	m.RateLimitMiddleware(teamEcho()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/problems", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}
