package handler

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"forwardauth-mocks/internal/config"
	"forwardauth-mocks/internal/metrics"
)

// RegisterAuthRoutes wires auth-mock onto the Echo instance. Every path goes
// to the handler, which owns the 404 response.
func RegisterAuthRoutes(e *echo.Echo, auth *AuthHandler, cfg *config.Config, m *metrics.Metrics) {
	registerMetrics(e, cfg, m)
	e.Any("/*", auth.Handle)
}

// RegisterUpstreamRoutes wires upstream-mock onto the Echo instance.
func RegisterUpstreamRoutes(e *echo.Echo, upstream *UpstreamHandler, cfg *config.Config, m *metrics.Metrics) {
	registerMetrics(e, cfg, m)
	e.Any("/*", upstream.Handle)
}

func registerMetrics(e *echo.Echo, cfg *config.Config, m *metrics.Metrics) {
	if !cfg.Metrics.Enabled || m == nil {
		return
	}
	e.GET(cfg.Metrics.Path, echo.WrapHandler(promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})))
}
