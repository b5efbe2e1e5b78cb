// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	json "github.com/goccy/go-json"

	"github.com/okian/mentorpath/internal/domain/model"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Recommend ranks catalog profiles for a learner, best match first.
	Recommend(ctx context.Context, learner model.LearnerContext, skillDomain string, topN int) ([]model.Recommendation, error)

	// TransferPlan maps a source skill onto a target and registers the
	// plan for progress tracking.
	TransferPlan(ctx context.Context, sourceSkill, targetSkill string) (model.TransferPlan, error)

	// RecordProgress marks a plan step complete for a learner.
	RecordProgress(ctx context.Context, learnerID, pathID string, stepIndex int) (model.TransferProgressRecord, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler          *HealthHandler
	statsHandler           *StatsHandler
	recommendationsHandler *RecommendationsHandler
	transferHandler        *TransferHandler
	progressHandler        *ProgressHandler
}

// NewServer creates a new API server with all handlers. topNMax caps
// the per-request result count.
func NewServer(deps Dependencies, statsProvider StatsProvider, topNMax int) *Server {
	return &Server{
		healthHandler:          NewHealthHandler(),
		statsHandler:           NewStatsHandler(statsProvider),
		recommendationsHandler: NewRecommendationsHandler(deps, topNMax),
		transferHandler:        NewTransferHandler(deps),
		progressHandler:        NewProgressHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/recommendations", MetricsMiddleware(s.recommendationsHandler.HandlePostRecommendations, "recommendations"))
	mux.HandleFunc("/transfer-plan", MetricsMiddleware(s.transferHandler.HandleGetTransferPlan, "transfer_plan"))
	mux.HandleFunc("/progress", MetricsMiddleware(s.progressHandler.HandlePostProgress, "progress"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
