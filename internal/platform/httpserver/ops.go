package httpserver

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	dErrors "kabal/pkg/domain-errors"
	"kabal/pkg/platform/httputil"
	"kabal/pkg/platform/middleware/requesttime"
)

const healthTimeout = 2 * time.Second

// HealthCheck probes one dependency. A nil Check is reported as disabled.
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// OpsRouter serves /healthz and /metrics.
func OpsRouter(logger *slog.Logger, gatherer prometheus.Gatherer, checks ...HealthCheck) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requesttime.Middleware)

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		ctx, cancel := context.WithTimeout(req.Context(), healthTimeout)
		defer cancel()

		resp := healthResponse{Status: "ok", Checks: make(map[string]string, len(checks))}
		for _, hc := range checks {
			if hc.Check == nil {
				resp.Checks[hc.Name] = "disabled"
				continue
			}
			if err := hc.Check(ctx); err != nil {
				resp.Status = "degraded"
				resp.Checks[hc.Name] = err.Error()
				if logger != nil {
					logger.WarnContext(ctx, "health check failed", "check", hc.Name, "error", err)
				}
				continue
			}
			resp.Checks[hc.Name] = "ok"
		}

		status := http.StatusOK
		if resp.Status != "ok" {
			status = http.StatusServiceUnavailable
		}
		httputil.WriteJSON(w, status, resp)
	})
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		httputil.WriteError(w, dErrors.Newf(dErrors.CodeNotFound, "no ops endpoint at %s", req.URL.Path))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		httputil.WriteError(w, dErrors.Newf(dErrors.CodeBadRequest, "method %s is not supported on %s", req.Method, req.URL.Path))
	})
	return r
}
