package handlers

import (
	"net/http"

	"service-delivery-slots/internal/logx"
)

// MethodHandler handles HTTP requests for delivery methods.
type MethodHandler struct {
	lister methodLister
	logger logx.Logger
}

// NewMethodHandler creates a new MethodHandler.
func NewMethodHandler(logger logx.Logger, lister methodLister) *MethodHandler {
	return &MethodHandler{lister: lister, logger: logger}
}

// List handles GET /methods and returns all delivery methods in stable order.
func (h *MethodHandler) List(w http.ResponseWriter, r *http.Request) {
	infos := h.lister.List()
	out := make([]methodDTO, 0, len(infos))
	for _, m := range infos {
		out = append(out, toMethodDTO(m))
	}
	writeJSON(h.logger, w, r, http.StatusOK, out)
}
