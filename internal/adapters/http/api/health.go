package api

import (
	"net/http"
)

// ReadinessProvider reports whether the service can serve predictions.
type ReadinessProvider interface {
	Ready() bool
}

// HealthHandler handles liveness and readiness requests.
type HealthHandler struct {
	readiness ReadinessProvider
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(readiness ReadinessProvider) *HealthHandler {
	return &HealthHandler{readiness: readiness}
}

type healthResponse struct {
	Status      string `json:"status"`
	ModelLoaded *bool  `json:"model_loaded,omitempty"`
}

// HandleHealth handles GET /healthz requests. The process is alive even
// without a model.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok"})
}

// HandleReady handles GET /readyz requests.
func (h *HealthHandler) HandleReady(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	ready := h.readiness.Ready()
	if !ready {
		writeJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "unavailable", ModelLoaded: &ready})
		return
	}
	writeJSON(w, http.StatusOK, healthResponse{Status: "ready", ModelLoaded: &ready})
}
