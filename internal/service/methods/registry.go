package methods

import (
	"fmt"
	"time"

	"service-delivery-slots/internal/apperr"
	"service-delivery-slots/internal/domain"
)

// DefaultHorizonDays is the rolling booking horizon for scheduled methods.
const DefaultHorizonDays = 30

// Registry holds the closed set of delivery methods and the date window
// policy of each. Read-only after construction, safe for concurrent use.
type Registry struct {
	ordered     []domain.MethodInfo
	horizonDays int
}

// NewRegistry creates a Registry with the built-in method set.
func NewRegistry(horizonDays int) *Registry {
	if horizonDays <= 0 {
		horizonDays = DefaultHorizonDays
	}
	return &Registry{
		horizonDays: horizonDays,
		ordered: []domain.MethodInfo{
			{Code: domain.MethodDrive, Name: "Store pickup", Description: "Pick up your order at the store"},
			{Code: domain.MethodDelivery, Name: "Courier delivery", Description: "Delivery to your address on a chosen day"},
			{Code: domain.MethodDeliveryToday, Name: "Same-day delivery", Description: "Delivery today in an afternoon window"},
			{Code: domain.MethodDeliveryASAP, Name: "Express delivery", Description: "Delivery within two hours"},
		},
	}
}

// List returns all delivery methods in stable order.
func (r *Registry) List() []domain.MethodInfo {
	out := make([]domain.MethodInfo, len(r.ordered))
	copy(out, r.ordered)
	return out
}

// Get resolves a method code against the closed set.
func (r *Registry) Get(code string) (domain.MethodInfo, error) {
	for _, m := range r.ordered {
		if string(m.Code) == code {
			return m, nil
		}
	}
	return domain.MethodInfo{}, fmt.Errorf("unknown delivery method %q: %w", code, apperr.ErrInvalid)
}

// ValidateDate enforces the policy window of a method: date-fixed methods
// accept exactly today, scheduled methods accept [today, today+horizon].
func (r *Registry) ValidateDate(method domain.Method, date, today time.Time) error {
	date = domain.DateOnly(date)
	today = domain.DateOnly(today)

	if date.Before(today) {
		return fmt.Errorf("date %s is in the past: %w", date.Format(time.DateOnly), apperr.ErrInvalid)
	}
	if method.DateFixed() {
		if !date.Equal(today) {
			return fmt.Errorf("%s is only available for today's date: %w", method, apperr.ErrInvalid)
		}
		return nil
	}
	if maxDate := today.AddDate(0, 0, r.horizonDays); date.After(maxDate) {
		return fmt.Errorf("date %s is beyond the %d-day booking horizon: %w",
			date.Format(time.DateOnly), r.horizonDays, apperr.ErrInvalid)
	}
	return nil
}
