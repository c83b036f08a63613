// Package httptransport assembles the chi router: shared middleware, the
// operational endpoints and every module's handler.
package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"numcheck/internal/platform/metrics"
	"numcheck/pkg/platform/httputil"
	"numcheck/pkg/platform/middleware/metadata"
	"numcheck/pkg/platform/middleware/requestid"
	"numcheck/pkg/platform/middleware/requesttime"
)

const healthCheckTimeout = 2 * time.Second

// Registrar is implemented by every module handler.
type Registrar interface {
	Register(r chi.Router)
}

// HealthCheck reports the state of one dependency; nil means healthy.
type HealthCheck func(ctx context.Context) error

// Config controls the shared parts of the router.
type Config struct {
	// StaticDir, when set, is served at the root for the operator frontend.
	StaticDir string
	Metrics   *metrics.Metrics
	// Gatherer backs /metrics; nil uses the default registry.
	Gatherer     prometheus.Gatherer
	HealthChecks map[string]HealthCheck
}

// NewRouter wires the middleware chain, /health, /metrics and the handlers.
func NewRouter(logger *slog.Logger, cfg Config, handlers ...Registrar) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestid.Middleware)
	r.Use(metadata.ClientMetadata)
	r.Use(requesttime.Middleware)
	r.Use(cfg.Metrics.Middleware)

	gatherer := cfg.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	r.Get("/health", healthHandler(logger, cfg.HealthChecks))

	for _, h := range handlers {
		h.Register(r)
	}

	if cfg.StaticDir != "" {
		if info, err := os.Stat(cfg.StaticDir); err != nil || !info.IsDir() {
			logger.Warn("static directory not served", "dir", cfg.StaticDir, "error", err)
		} else {
			r.Handle("/*", http.FileServer(http.Dir(cfg.StaticDir)))
		}
	}
	return r
}

// HealthResponse lists each dependency as "ok" or its error text.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

func healthHandler(logger *slog.Logger, checks map[string]HealthCheck) http.HandlerFunc {
	names := make([]string, 0, len(checks))
	for name := range checks {
		names = append(names, name)
	}
	sort.Strings(names)

	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
		defer cancel()

		resp := HealthResponse{Status: "ok", Checks: make(map[string]string, len(names))}
		for _, name := range names {
			if err := checks[name](ctx); err != nil {
				logger.WarnContext(ctx, "health check failed", "check", name, "error", err)
				resp.Status = "degraded"
				resp.Checks[name] = err.Error()
				continue
			}
			resp.Checks[name] = "ok"
		}

		status := http.StatusOK
		if resp.Status != "ok" {
			status = http.StatusServiceUnavailable
		}
		httputil.WriteJSON(w, status, resp)
	}
}
