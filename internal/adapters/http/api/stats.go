// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"

	json "github.com/goccy/go-json"
)

// StatsProvider exposes engine statistics for the stats endpoint.
type StatsProvider interface {
	GetStats() map[string]interface{}
}

// StatsHandler serves engine statistics.
type StatsHandler struct {
	provider StatsProvider
}

// NewStatsHandler creates a new stats handler.
func NewStatsHandler(provider StatsProvider) *StatsHandler {
	return &StatsHandler{provider: provider}
}

// HandleStats handles GET /stats requests.
func (h *StatsHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_ = json.NewEncoder(w).Encode(h.provider.GetStats())
}
