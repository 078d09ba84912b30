package api

import (
	"net/http"

	"github.com/okian/loanapi/internal/adapters/classifier"
	service "github.com/okian/loanapi/internal/app"
)

// ModelInfoProvider describes the loaded model.
type ModelInfoProvider interface {
	ModelInfo() (classifier.Info, bool)
}

// InfoHandler handles model metadata requests.
type InfoHandler struct {
	provider ModelInfoProvider
}

// NewInfoHandler creates a new model info handler.
func NewInfoHandler(p ModelInfoProvider) *InfoHandler {
	return &InfoHandler{provider: p}
}

// HandleInfo handles GET /model/info requests.
func (h *InfoHandler) HandleInfo(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	info, ok := h.provider.ModelInfo()
	if !ok {
		writeError(w, http.StatusServiceUnavailable, service.ErrModelUnavailable)
		return
	}
	writeJSON(w, http.StatusOK, info)
}
