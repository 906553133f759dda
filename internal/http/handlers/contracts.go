package handlers

import (
	"context"
	"time"

	"service-delivery-slots/internal/domain"
	"service-delivery-slots/internal/service/booking"
	"service-delivery-slots/internal/service/methods"
	"service-delivery-slots/internal/service/slots"
)

type methodLister interface {
	List() []domain.MethodInfo
}

// NewMethodLister wires a methods.Registry into a methodLister.
func NewMethodLister(r *methods.Registry) methodLister {
	return r
}

type slotsUsecase interface {
	List(ctx context.Context, code string, date time.Time) ([]domain.TimeSlot, error)
}

// NewSlotsUsecase wires a slots.Service into a slotsUsecase.
func NewSlotsUsecase(svc *slots.Service) slotsUsecase {
	return svc
}

type bookingUsecase interface {
	Reserve(ctx context.Context, code string, date time.Time, slotID int64) (*domain.Reservation, error)
	Get(ctx context.Context, id int64) (*domain.Reservation, error)
}

// NewBookingUsecase wires a booking.Service into a bookingUsecase.
func NewBookingUsecase(svc *booking.Service) bookingUsecase {
	return svc
}
