package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"service-delivery-slots/internal/http/handlers"
	mw "service-delivery-slots/internal/http/middleware"
	"service-delivery-slots/internal/http/middleware/ratelimit"
	"service-delivery-slots/internal/logx"
)

// New constructs a chi-based http.Handler with base middleware and routes.
// The rate limiter guards only the write path: reads are cheap and
// idempotent, reservations are not.
func New(
	logger logx.Logger,
	h *handlers.Handlers,
	methods *handlers.MethodHandler,
	slots *handlers.SlotHandler,
	reservations *handlers.ReservationHandler,
	limiter *ratelimit.Middleware,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(5 * time.Second))
	r.Use(mw.Observability(logger))

	r.Get("/ping", h.Ping)
	r.Method(http.MethodHead, "/healthcheck", http.HandlerFunc(h.HealthcheckHead))
	r.Handle("/metrics", promhttp.Handler())

	r.Get("/methods", methods.List)
	r.Get("/slots", slots.List)

	r.Group(func(r chi.Router) {
		if limiter != nil {
			r.Use(limiter.Handler())
		}
		r.Post("/reservations", reservations.Create)
	})
	r.Get("/reservations/{id}", reservations.Get)

	r.NotFound(http.HandlerFunc(h.NotFound))

	return r
}
