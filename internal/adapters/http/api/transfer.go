// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"fmt"
	"net/http"
	"strings"
)

// TransferHandler handles cross-domain transfer plan requests.
type TransferHandler struct {
	deps Dependencies
}

// NewTransferHandler creates a new transfer handler.
func NewTransferHandler(deps Dependencies) *TransferHandler {
	return &TransferHandler{deps: deps}
}

// HandleGetTransferPlan handles GET /transfer-plan?source=S&target=T requests.
func (h *TransferHandler) HandleGetTransferPlan(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_transfer_plan"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	source := strings.TrimSpace(r.URL.Query().Get("source"))
	target := strings.TrimSpace(r.URL.Query().Get("target"))
	if source == "" || target == "" {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%s: %w: source and target are required", op, ErrBadRequest))
		return
	}
	plan, err := h.deps.TransferPlan(r.Context(), source, target)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", fmt.Errorf("%s: %w", op, err))
		return
	}
	writeJSON(w, http.StatusOK, plan)
}
