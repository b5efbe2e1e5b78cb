// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	json "github.com/goccy/go-json"

	service "github.com/okian/mentorpath/internal/app"
	"github.com/okian/mentorpath/internal/domain/model"
)

// RecommendationsHandler handles recommendation requests.
type RecommendationsHandler struct {
	deps    Dependencies
	topNMax int
}

// NewRecommendationsHandler creates a new recommendations handler.
func NewRecommendationsHandler(deps Dependencies, topNMax int) *RecommendationsHandler {
	return &RecommendationsHandler{deps: deps, topNMax: topNMax}
}

// recommendationRequest mirrors the OpenAPI schema for POST /recommendations.
type recommendationRequest struct {
	LearnerID         string             `json:"learner_id"`
	SkillDomain       string             `json:"skill_domain"`
	Metrics           map[string]float64 `json:"metrics"`
	PracticeFrequency int                `json:"practice_frequency"`
	Trend             string             `json:"trend"`
	TopN              int                `json:"top_n"`
}

func (r recommendationRequest) validate() error {
	switch {
	case strings.TrimSpace(r.LearnerID) == "":
		return errors.New("missing learner_id")
	case strings.TrimSpace(r.SkillDomain) == "":
		return errors.New("missing skill_domain")
	case len(r.Metrics) == 0:
		return errors.New("missing metrics")
	}
	return nil
}

// HandlePostRecommendations handles POST /recommendations requests.
func (h *RecommendationsHandler) HandlePostRecommendations(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_recommendations"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req recommendationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%s: %w: %w", op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%s: %w: %w", op, ErrBadRequest, err))
		return
	}
	if req.TopN > h.topNMax {
		writeError(w, http.StatusBadRequest, "limit_exceeded", fmt.Errorf("%s: %w: top_n exceeds %d", op, ErrBadRequest, h.topNMax))
		return
	}

	learner := model.LearnerContext{
		LearnerID:         req.LearnerID,
		Metrics:           model.MetricVector(req.Metrics),
		PracticeFrequency: req.PracticeFrequency,
		Trend:             model.Trend(req.Trend),
	}
	recs, err := h.deps.Recommend(r.Context(), learner, req.SkillDomain, req.TopN)
	if err != nil {
		if errors.Is(err, service.ErrEmptyCatalog) {
			writeError(w, http.StatusUnprocessableEntity, "empty_catalog", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", fmt.Errorf("%s: %w", op, err))
		return
	}
	writeJSON(w, http.StatusOK, recommendationsResponse{
		LearnerID:       req.LearnerID,
		SkillDomain:     req.SkillDomain,
		Recommendations: recs,
	})
}

type recommendationsResponse struct {
	LearnerID       string                 `json:"learner_id"`
	SkillDomain     string                 `json:"skill_domain"`
	Recommendations []model.Recommendation `json:"recommendations"`
}
