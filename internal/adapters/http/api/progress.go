// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/okian/mentorpath/internal/adapters/repository"
	"github.com/okian/mentorpath/internal/domain/model"
	"github.com/okian/mentorpath/internal/domain/progress"
)

// ProgressHandler handles milestone completion requests.
type ProgressHandler struct {
	deps Dependencies
}

// NewProgressHandler creates a new progress handler.
func NewProgressHandler(deps Dependencies) *ProgressHandler {
	return &ProgressHandler{deps: deps}
}

// progressRequest mirrors the OpenAPI schema for POST /progress.
type progressRequest struct {
	LearnerID string `json:"learner_id"`
	PathID    string `json:"path_id"`
	StepIndex *int   `json:"step_index"`
}

func (p progressRequest) validate() error {
	switch {
	case strings.TrimSpace(p.LearnerID) == "":
		return errors.New("missing learner_id")
	case strings.TrimSpace(p.PathID) == "":
		return errors.New("missing path_id")
	case p.StepIndex == nil:
		return errors.New("missing step_index")
	}
	return nil
}

// HandlePostProgress handles POST /progress requests. A version
// conflict maps to 409; the client retries with fresh state.
func (h *ProgressHandler) HandlePostProgress(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_progress"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req progressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%s: %w: %w", op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%s: %w: %w", op, ErrBadRequest, err))
		return
	}

	rec, err := h.deps.RecordProgress(r.Context(), req.LearnerID, req.PathID, *req.StepIndex)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrPlanNotFound):
			writeError(w, http.StatusNotFound, "plan_not_found", err)
		case errors.Is(err, progress.ErrOutOfRange):
			writeError(w, http.StatusBadRequest, "step_out_of_range", err)
		case errors.Is(err, repository.ErrVersionConflict):
			writeError(w, http.StatusConflict, "version_conflict", err)
		default:
			writeError(w, http.StatusInternalServerError, "internal_error", fmt.Errorf("%s: %w", op, err))
		}
		return
	}
	writeJSON(w, http.StatusOK, progressResponse{Record: rec})
}

type progressResponse struct {
	Record model.TransferProgressRecord `json:"record"`
}
