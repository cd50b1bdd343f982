package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	authhandler "qrgate/internal/auth/handler"
	"qrgate/internal/platform/health"
	"qrgate/internal/platform/middleware"
	qrhandler "qrgate/internal/qr/handler"
)

// ScopeGenerate is required on tokens hitting the generation endpoint.
const ScopeGenerate = "qr:generate"

// NewRouter wires all endpoints with the middleware stack. Health, metrics,
// and auth issuance stay outside the request gate; everything else under
// /v1 requires a verified bearer token.
func NewRouter(
	authH *authhandler.Handler,
	qrH *qrhandler.Handler,
	healthH *health.Handler,
	verifier middleware.TokenVerifier,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(middleware.ContentTypeJSON)

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		healthH.Register(r)
		authH.Register(r)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(verifier, logger))
			r.Use(middleware.RequireScope(ScopeGenerate, logger))
			qrH.Register(r)
		})
	})

	return r
}
