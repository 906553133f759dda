package handlers

import (
	"time"

	"service-delivery-slots/internal/domain"
)

func toMethodDTO(m domain.MethodInfo) methodDTO {
	return methodDTO{
		Code:        string(m.Code),
		Name:        m.Name,
		Description: m.Description,
	}
}

func toSlotDTO(s domain.TimeSlot) slotDTO {
	return slotDTO{
		ID:        s.ID,
		Method:    string(s.Method),
		Date:      s.Date.Format(time.DateOnly),
		StartTime: s.Start.String(),
		EndTime:   s.End.String(),
		Status:    string(s.Status),
	}
}

func toReservationDTO(r *domain.Reservation) reservationDTO {
	return reservationDTO{
		ID:        r.ID,
		SlotID:    r.SlotID,
		Method:    string(r.Method),
		Date:      r.Date.Format(time.DateOnly),
		StartTime: r.Start.String(),
		EndTime:   r.End.String(),
		CreatedAt: r.CreatedAt.UTC().Format(time.RFC3339),
	}
}
