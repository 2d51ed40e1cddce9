package execute

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"gitlab.com/code-round.net/internal/core/ports/primary"
	"gitlab.com/code-round.net/internal/core/services/execution"
	"gitlab.com/code-round.net/internal/domain"
	"gitlab.com/code-round.net/internal/handlers"
	"gitlab.com/code-round.net/internal/handlers/response"
	"gitlab.com/code-round.net/internal/static/errs"
)

const (
	maxBodyBytes = 1 << 20

	invalidCodeMessage         = "Code validation failed: Restricted content detected."
	unsupportedLanguageMessage = "Unsupported Language"
	dispatchFailedPrefix       = "Judge0 Connection Failed: "
)

// ExecuteHandler serves runs and submissions
type ExecuteHandler struct {
	executionService execution.IExecutionService
	logger           primary.Logger
}

func NewExecuteHandler(executionService execution.IExecutionService, logger primary.Logger) *ExecuteHandler {
	return &ExecuteHandler{
		executionService: executionService,
		logger:           logger,
	}
}

// RegisterRoutes registers the API routes for ExecuteHandler
func (h *ExecuteHandler) RegisterRoutes(router *mux.Router, mw ...mux.MiddlewareFunc) {
	var handler http.Handler = http.HandlerFunc(h.Execute)
	for i := len(mw) - 1; i >= 0; i-- {
		handler = mw[i](handler)
	}
	router.Handle("/api/execute", handler).Methods(http.MethodPost)
}

// Execute answers 200 for every graded outcome, wrong answers included.
func (h *ExecuteHandler) Execute(w http.ResponseWriter, r *http.Request) {
	var req ExecuteRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		h.logger.Error("Failed to decode request", "error", err)
		response.WriteExecutionError(w, http.StatusBadRequest, domain.StatusError, "Invalid request body")
		return
	}

	execReq := req.ToDomain()
	if team, ok := handlers.TeamFromContext(r.Context()); ok {
		execReq.TeamID = team
	}

	result, err := h.executionService.Execute(r.Context(), execReq)
	if err != nil {
		h.writeFailure(w, err)
		return
	}

	handlers.ResponseWithJson(w, http.StatusOK, result)
}

func (h *ExecuteHandler) writeFailure(w http.ResponseWriter, err error) {
	var dispatchErr *errs.DispatchError
	switch {
	case errors.Is(err, errs.ErrValidation):
		response.WriteExecutionError(w, http.StatusBadRequest, domain.StatusInvalid, invalidCodeMessage)
	case errors.Is(err, errs.ErrUnsupportedLanguage):
		response.WriteExecutionError(w, http.StatusBadRequest, domain.StatusError, unsupportedLanguageMessage)
	case errors.As(err, &dispatchErr):
		response.WriteExecutionError(w, http.StatusInternalServerError, domain.StatusError, dispatchFailedPrefix+dispatchErr.Cause)
	case errors.Is(err, errs.ErrDispatch):
		response.WriteExecutionError(w, http.StatusInternalServerError, domain.StatusError, dispatchFailedPrefix+err.Error())
	default:
		h.logger.Error("Failed to execute code", "error", err)
		response.WriteExecutionError(w, http.StatusInternalServerError, domain.StatusError, "Internal Server Error")
	}
}
