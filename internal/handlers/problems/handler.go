package problems

import (
	"net/http"

	"github.com/gorilla/mux"

	"gitlab.com/code-round.net/internal/core/ports/primary"
	"gitlab.com/code-round.net/internal/core/ports/secondary"
	"gitlab.com/code-round.net/internal/domain"
	"gitlab.com/code-round.net/internal/handlers"
	"gitlab.com/code-round.net/internal/handlers/response"
)

// HarnessLanguages reports which languages have a loaded harness template
type HarnessLanguages interface {
	Languages() []string
}

// LanguageView is one entry of GET /api/languages
type LanguageView struct {
	domain.Language
	Harness bool `json:"harness"`
}

// ProblemHandler exposes the catalog without hidden test cases
type ProblemHandler struct {
	registry  secondary.ProblemRegistry
	templates HarnessLanguages
	logger    primary.Logger
}

func NewProblemHandler(registry secondary.ProblemRegistry, templates HarnessLanguages, logger primary.Logger) *ProblemHandler {
	return &ProblemHandler{
		registry:  registry,
		templates: templates,
		logger:    logger,
	}
}

// RegisterRoutes registers the API routes for ProblemHandler
func (h *ProblemHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/problems", h.ListProblems).Methods(http.MethodGet)
	router.HandleFunc("/api/problems/{problemId}", h.GetProblem).Methods(http.MethodGet)
	router.HandleFunc("/api/languages", h.ListLanguages).Methods(http.MethodGet)
}

func (h *ProblemHandler) ListProblems(w http.ResponseWriter, r *http.Request) {
	list := h.registry.List()
	views := make([]domain.PublicProblem, 0, len(list))
	for _, p := range list {
		views = append(views, p.Public())
	}
	handlers.ResponseWithJson(w, http.StatusOK, map[string][]domain.PublicProblem{"problems": views})
}

// GetProblem does not fall back to the default problem, unknown ids are 404
func (h *ProblemHandler) GetProblem(w http.ResponseWriter, r *http.Request) {
	problemID := mux.Vars(r)["problemId"]
	p, ok := h.registry.Lookup(problemID)
	if !ok {
		response.WriteError(w, response.ErrorMessage{Message: "Problem not found", StatusCode: http.StatusNotFound})
		return
	}
	handlers.ResponseWithJson(w, http.StatusOK, p.Public())
}

func (h *ProblemHandler) ListLanguages(w http.ResponseWriter, r *http.Request) {
	loaded := make(map[string]bool)
	for _, name := range h.templates.Languages() {
		loaded[name] = true
	}
	views := make([]LanguageView, 0)
	for _, lang := range domain.Languages() {
		views = append(views, LanguageView{Language: lang, Harness: loaded[lang.Name]})
	}
	handlers.ResponseWithJson(w, http.StatusOK, map[string][]LanguageView{"languages": views})
}
