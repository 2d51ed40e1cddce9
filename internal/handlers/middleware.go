package handlers

import (
	"context"
	"net"
	"net/http"
	"strings"

	"gitlab.com/code-round.net/internal/config"
	"gitlab.com/code-round.net/internal/core/ports/primary"
	"gitlab.com/code-round.net/internal/core/ports/secondary"
	"gitlab.com/code-round.net/internal/domain"
	"gitlab.com/code-round.net/internal/handlers/response"
)

const TooManyRequestsMessage = "Too many requests, please try again later."

type ctxKey string

const teamCtxKey ctxKey = "team"

type MiddlewareProvider struct {
	tokens  primary.TokenService
	limiter secondary.RateLimiter
	limit   *config.RateLimitConfig
	logger  primary.Logger
}

// New creates the middleware set. A nil token service turns authentication off.
func New(tokens primary.TokenService, limiter secondary.RateLimiter, limit *config.RateLimitConfig, logger primary.Logger) *MiddlewareProvider {
	return &MiddlewareProvider{
		tokens:  tokens,
		limiter: limiter,
		limit:   limit,
		logger:  logger,
	}
}

// TeamFromContext returns the team claim of a verified bearer token
func TeamFromContext(ctx context.Context) (string, bool) {
	team, ok := ctx.Value(teamCtxKey).(string)
	return team, ok && team != ""
}

func (m *MiddlewareProvider) JWTMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.tokens == nil {
			next.ServeHTTP(w, r)
			return
		}

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			response.WriteError(w, response.ErrorMessage{Message: "Authorization header missing", StatusCode: http.StatusUnauthorized})
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		valid, err := m.tokens.VerifyTokenHMAC(r.Context(), tokenString)
		if err != nil || !valid {
			m.logger.Debug("Rejected token", "error", err)
			response.WriteError(w, response.ErrorMessage{Message: "Invalid token", StatusCode: http.StatusUnauthorized})
			return
		}

		payload, err := m.tokens.DecodeTokenPayload(r.Context(), tokenString)
		if err != nil {
			response.WriteError(w, response.ErrorMessage{Message: "Invalid token", StatusCode: http.StatusUnauthorized})
			return
		}

		ctx := context.WithValue(r.Context(), teamCtxKey, payload.Team)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RateLimitMiddleware counts requests per client IP. Limiter failures let the request through.
func (m *MiddlewareProvider) RateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.limiter == nil || m.limit == nil || m.limit.PerWindow <= 0 {
			next.ServeHTTP(w, r)
			return
		}

		ip := clientIP(r)
		allowed, err := m.limiter.Allow(r.Context(), ip, m.limit.PerWindow, m.limit.Window)
		if err != nil {
			m.logger.Warn("Rate limiter unavailable", "error", err)
			next.ServeHTTP(w, r)
			return
		}
		if !allowed {
			m.logger.Info("Rate limit exceeded", "ip", ip, "path", r.URL.Path)
			response.WriteExecutionError(w, http.StatusTooManyRequests, domain.StatusError, TooManyRequestsMessage)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
