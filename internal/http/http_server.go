package http

// this is entry point of the http request handlers

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"gitlab.com/code-round.net/internal/config"
	"gitlab.com/code-round.net/internal/core/ports/primary"
	"gitlab.com/code-round.net/internal/core/ports/secondary"
	"gitlab.com/code-round.net/internal/core/services/execution"
	mw "gitlab.com/code-round.net/internal/handlers"
	"gitlab.com/code-round.net/internal/handlers/execute"
	"gitlab.com/code-round.net/internal/handlers/problems"
	"gitlab.com/code-round.net/internal/handlers/submissions"
)

const apiPrefix = "/api/"

type ServiceProvider struct {
	executionService execution.IExecutionService
	registry         secondary.ProblemRegistry
	harness          problems.HarnessLanguages
	middleware       *mw.MiddlewareProvider
}

func NewServiceProvider(
	executionService execution.IExecutionService,
	registry secondary.ProblemRegistry,
	harness problems.HarnessLanguages,
	middleware *mw.MiddlewareProvider,
) *ServiceProvider {
	return &ServiceProvider{
		executionService: executionService,
		registry:         registry,
		harness:          harness,
		middleware:       middleware,
	}
}

type Server struct {
	router          *mux.Router
	handler         http.Handler
	srv             *http.Server
	Port            int
	ServiceName     string
	ServiceProvider ServiceProvider
	cfg             *config.HttpConfig
	logger          primary.Logger
}

func NewServer(cfg *config.HttpConfig, serviceName string, serviceProvider ServiceProvider, logger primary.Logger) *Server {
	return &Server{
		Port:            cfg.Port,
		ServiceName:     serviceName,
		ServiceProvider: serviceProvider,
		cfg:             cfg,
		logger:          logger,
	}
}

func (s *Server) Init() error {
	if s.ServiceProvider.executionService == nil || s.ServiceProvider.registry == nil {
		return errors.New("http server needs an execution service and a problem registry")
	}

	r := mux.NewRouter()
	r.HandleFunc("/healthz", s.health).Methods(http.MethodGet)

	provider := s.ServiceProvider.middleware
	if provider != nil {
		r.Use(apiOnly(provider.RateLimitMiddleware))
	}

	var executeMiddleware []mux.MiddlewareFunc
	if provider != nil {
		executeMiddleware = append(executeMiddleware, provider.JWTMiddleware)
	}
	execute.
		NewExecuteHandler(s.ServiceProvider.executionService, s.logger).
		RegisterRoutes(r, executeMiddleware...)
	problems.
		NewProblemHandler(s.ServiceProvider.registry, s.ServiceProvider.harness, s.logger).
		RegisterRoutes(r)
	submissions.
		NewSubmissionHandler(s.ServiceProvider.executionService, s.logger).
		RegisterRoutes(r)

	s.router = r
	s.handler = s.wrap(r)
	return nil
}

// Handler returns the fully wrapped handler, available after Init.
func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) wrap(r *mux.Router) http.Handler {
	cors := handlers.CORS(
		handlers.AllowedOrigins(s.cfg.CorsOrigins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)
	var h http.Handler = cors(r)
	if s.cfg.TrustProxy {
		h = handlers.ProxyHeaders(h)
	}
	if s.cfg.AccessLog {
		h = handlers.CombinedLoggingHandler(os.Stdout, h)
	}
	return h
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	mw.ResponseWithJson(w, http.StatusOK, map[string]string{"status": "ok", "service": s.ServiceName})
}

func (s *Server) Start(ctx context.Context) {
	// Set up server
	s.srv = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.Port),
		Handler:      s.handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	// Start the server in a goroutine
	go func() {
		s.logger.Info("Server listening", "addr", s.srv.Addr, "service", s.ServiceName)
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()
}

func (s *Server) Stop(ctx context.Context) {
	s.logger.Info("Shutting down http server...")
	if s.srv == nil {
		return
	}
	if err := s.srv.Shutdown(ctx); err != nil {
		s.logger.Error("Server forced to shutdown", "error", err)
	}
}

// apiOnly applies the middleware to /api/ routes and leaves the rest untouched.
func apiOnly(m mux.MiddlewareFunc) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		limited := m(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if strings.HasPrefix(r.URL.Path, apiPrefix) {
				limited.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
