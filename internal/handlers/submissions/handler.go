package submissions

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"gitlab.com/code-round.net/internal/core/ports/primary"
	"gitlab.com/code-round.net/internal/core/services/execution"
	"gitlab.com/code-round.net/internal/handlers"
	"gitlab.com/code-round.net/internal/handlers/response"
	"gitlab.com/code-round.net/internal/static/errs"
)

const maxLimit = 200

// SubmissionHandler reads back results and the submission ledger
type SubmissionHandler struct {
	executionService execution.IExecutionService
	logger           primary.Logger
}

func NewSubmissionHandler(executionService execution.IExecutionService, logger primary.Logger) *SubmissionHandler {
	return &SubmissionHandler{
		executionService: executionService,
		logger:           logger,
	}
}

// RegisterRoutes registers the API routes for SubmissionHandler
func (h *SubmissionHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/executions/{executionId}", h.GetExecution).Methods(http.MethodGet)
	router.HandleFunc("/api/teams/{teamId}/submissions", h.GetTeamSubmissions).Methods(http.MethodGet)
}

func (h *SubmissionHandler) GetExecution(w http.ResponseWriter, r *http.Request) {
	idStr := mux.Vars(r)["executionId"]
	executionID, err := uuid.Parse(idStr)
	if err != nil {
		response.WriteError(w, response.ErrorMessage{Message: "Invalid execution ID", StatusCode: http.StatusBadRequest})
		return
	}

	result, err := h.executionService.GetResult(r.Context(), executionID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			response.WriteError(w, response.ErrorMessage{Message: "Execution not found", StatusCode: http.StatusNotFound})
			return
		}
		h.logger.Error("Failed to get execution", "executionId", executionID, "error", err)
		response.WriteError(w, response.ErrorMessage{Message: "Failed to get execution", StatusCode: http.StatusInternalServerError})
		return
	}

	handlers.ResponseWithJson(w, http.StatusOK, result)
}

// GetTeamSubmissions accepts ?limit=N, capped at maxLimit
func (h *SubmissionHandler) GetTeamSubmissions(w http.ResponseWriter, r *http.Request) {
	teamID := mux.Vars(r)["teamId"]

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			response.WriteError(w, response.ErrorMessage{Message: "Invalid limit", StatusCode: http.StatusBadRequest})
			return
		}
		limit = min(n, maxLimit)
	}

	list, err := h.executionService.GetTeamSubmissions(r.Context(), teamID, limit)
	if err != nil {
		h.logger.Error("Failed to get submissions", "team", teamID, "error", err)
		response.WriteError(w, response.ErrorMessage{Message: "Failed to get submissions", StatusCode: http.StatusInternalServerError})
		return
	}

	handlers.ResponseWithJson(w, http.StatusOK, map[string]interface{}{"submissions": list})
}
