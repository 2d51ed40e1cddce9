package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"gitlab.com/code-round.net/internal/adapter/catalog"
	"gitlab.com/code-round.net/internal/adapter/logging"
	"gitlab.com/code-round.net/internal/adapter/memory"
	"gitlab.com/code-round.net/internal/config"
	"gitlab.com/code-round.net/internal/domain"
	mw "gitlab.com/code-round.net/internal/handlers"
	"gitlab.com/code-round.net/internal/static/errs"
)

type stubExecution struct{}

func (stubExecution) Execute(context.Context, domain.ExecutionRequest) (*domain.ExecutionResult, error) {
	return &domain.ExecutionResult{ID: uuid.New(), Status: domain.StatusAccepted, Score: "100.00", Results: []domain.TestResult{}}, nil
}

func (stubExecution) GetResult(context.Context, uuid.UUID) (*domain.ExecutionResult, error) {
	return nil, errs.ErrNotFound
}

func (stubExecution) GetTeamSubmissions(context.Context, string, int) ([]*domain.Submission, error) {
	return []*domain.Submission{}, nil
}

type langs []string

func (l langs) Languages() []string { return l }

func newServer(t *testing.T, perWindow int) *Server {
	t.Helper()
	logger := logging.NewNopLogger()
	registry, err := catalog.NewCatalog(&config.CatalogConfig{DefaultProblemID: "two-sum"})
	if err != nil {
		t.Fatal(err)
	}
	limit := &config.RateLimitConfig{PerWindow: perWindow, Window: time.Minute}
	provider := NewServiceProvider(stubExecution{}, registry, langs{"python"},
		mw.New(nil, memory.NewRateLimiter(), limit, logger))

	srv := NewServer(&config.HttpConfig{Port: 0, CorsOrigins: []string{"*"}}, "code-round", *provider, logger)
	if err := srv.Init(); err != nil {
		t.Fatal(err)
	}
	return srv
}

func do(h http.Handler, method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	req.RemoteAddr = "192.0.2.7:4312"
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestInitRequiresServices(t *testing.T) {
	srv := NewServer(&config.HttpConfig{}, "code-round", ServiceProvider{}, logging.NewNopLogger())
	if err := srv.Init(); err == nil {
		t.Fatal("expected error without services")
	}
}

func TestHealthIsNotRateLimited(t *testing.T) {
	h := newServer(t, 1).Handler()
	for i := 0; i < 3; i++ {
		if rec := do(h, http.MethodGet, "/healthz"); rec.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d", i, rec.Code)
		}
	}
}

func TestApiRoutesAreRateLimited(t *testing.T) {
	h := newServer(t, 2).Handler()

	for i := 0; i < 2; i++ {
		if rec := do(h, http.MethodGet, "/api/problems"); rec.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d", i, rec.Code)
		}
	}
	rec := do(h, http.MethodGet, "/api/languages")
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", rec.Code)
	}
}

func TestCorsHeaders(t *testing.T) {
	rec := do(newServer(t, 0).Handler(), http.MethodGet, "/api/problems")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got == "" {
		t.Fatal("missing Access-Control-Allow-Origin")
	}
}

func TestExecuteRouteIsMounted(t *testing.T) {
	rec := do(newServer(t, 0).Handler(), http.MethodGet, "/api/execute")
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rec.Code)
	}
}
