package handlers

import (
	"errors"
	"net/http"
	"time"

	"service-delivery-slots/internal/apperr"
	"service-delivery-slots/internal/logx"
)

// ReservationHandler handles HTTP requests for reservations.
type ReservationHandler struct {
	usecase bookingUsecase
	logger  logx.Logger
}

// NewReservationHandler creates a new ReservationHandler.
func NewReservationHandler(logger logx.Logger, uc bookingUsecase) *ReservationHandler {
	return &ReservationHandler{usecase: uc, logger: logger}
}

// Create handles POST /reservations. A 409 means the slot was taken in the
// meantime: the client should re-fetch the slot listing and pick another.
func (h *ReservationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createReservationRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}
	date, err := time.Parse(time.DateOnly, req.Date)
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "date must be formatted as YYYY-MM-DD")
		return
	}

	res, err := h.usecase.Reserve(r.Context(), req.Method, date, req.SlotID)
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusCreated, toReservationDTO(res))
	case errors.Is(err, apperr.ErrInvalid):
		writeError(h.logger, w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, apperr.ErrConflict):
		writeError(h.logger, w, r, http.StatusConflict, "slot already reserved")
	case errors.Is(err, apperr.ErrUnavailable):
		writeError(h.logger, w, r, http.StatusServiceUnavailable, "storage unavailable")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}

// Get handles GET /reservations/{id}.
func (h *ReservationHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}

	res, err := h.usecase.Get(r.Context(), id)
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusOK, toReservationDTO(res))
	case errors.Is(err, apperr.ErrNotFound):
		writeError(h.logger, w, r, http.StatusNotFound, "reservation not found")
	case errors.Is(err, apperr.ErrUnavailable):
		writeError(h.logger, w, r, http.StatusServiceUnavailable, "storage unavailable")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}
