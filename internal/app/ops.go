package app

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Sakurayo-Crispita/saborreal-storefront/internal/cart"
	"github.com/Sakurayo-Crispita/saborreal-storefront/internal/session"
	"github.com/Sakurayo-Crispita/saborreal-storefront/pkg/health"
	"github.com/Sakurayo-Crispita/saborreal-storefront/pkg/middleware"
)

// newOpsRouter builds the loopback ops listener: liveness, readiness,
// prometheus metrics, and a read-only state snapshot for debugging kiosks
// in the field.
func newOpsRouter(healthHandler *health.Handler, sess *session.Manager, cartManager *cart.Manager, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(logger))
	r.Use(chimw.Timeout(15 * time.Second))
	r.Use(middleware.RequestLogging(logger))

	r.Get("/healthz", healthHandler.LivenessHandler())
	r.Get("/readyz", healthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	r.Get("/state", func(w http.ResponseWriter, r *http.Request) {
		snapshot := struct {
			Ready         bool    `json:"ready"`
			Authenticated bool    `json:"authenticated"`
			Identity      string  `json:"identity,omitempty"`
			CartItems     int     `json:"cart_items"`
			CartTotal     float64 `json:"cart_total"`
		}{
			Ready:         sess.Ready(),
			Authenticated: sess.Authenticated(),
			Identity:      sess.Identity(),
			CartItems:     cartManager.Len(),
			CartTotal:     cartManager.Total(),
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(snapshot); err != nil {
			logger.Error("failed to encode state snapshot", slog.String("error", err.Error()))
		}
	})

	return r
}
