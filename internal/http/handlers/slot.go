package handlers

import (
	"errors"
	"net/http"
	"time"

	"service-delivery-slots/internal/apperr"
	"service-delivery-slots/internal/logx"
)

// SlotHandler handles HTTP requests for time slot listings.
type SlotHandler struct {
	usecase slotsUsecase
	logger  logx.Logger
}

// NewSlotHandler creates a new SlotHandler.
func NewSlotHandler(logger logx.Logger, uc slotsUsecase) *SlotHandler {
	return &SlotHandler{usecase: uc, logger: logger}
}

// List handles GET /slots?method=<code>&date=<YYYY-MM-DD>.
func (h *SlotHandler) List(w http.ResponseWriter, r *http.Request) {
	method := r.URL.Query().Get("method")
	if method == "" {
		writeError(h.logger, w, r, http.StatusBadRequest, "method query parameter is required")
		return
	}
	date, err := time.Parse(time.DateOnly, r.URL.Query().Get("date"))
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "date must be formatted as YYYY-MM-DD")
		return
	}

	found, err := h.usecase.List(r.Context(), method, date)
	switch {
	case err == nil:
		out := make([]slotDTO, 0, len(found))
		for _, s := range found {
			out = append(out, toSlotDTO(s))
		}
		writeJSON(h.logger, w, r, http.StatusOK, out)
	case errors.Is(err, apperr.ErrInvalid):
		writeError(h.logger, w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, apperr.ErrUnavailable):
		writeError(h.logger, w, r, http.StatusServiceUnavailable, "storage unavailable")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}
