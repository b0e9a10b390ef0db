package handler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"forwardauth-mocks/internal/model"
)

// Fixed upstream-mock routes.
const (
	HealthPath = "/health"
	UsagePath  = "/usage"
	MCPPrefix  = "/mcp"
)

// UpstreamHandler stands in for the backend behind the forward-auth proxy.
type UpstreamHandler struct {
	logger *slog.Logger
}

// NewUpstreamHandler creates an UpstreamHandler.
func NewUpstreamHandler(logger *slog.Logger) *UpstreamHandler {
	return &UpstreamHandler{logger: logger.With("component", "upstream_handler")}
}

// Handle dispatches on method and path.
func (h *UpstreamHandler) Handle(c echo.Context) error {
	switch c.Request().Method {
	case http.MethodGet:
		return h.get(c)
	case http.MethodPost:
		return h.post(c)
	default:
		return errUnsupportedMethod
	}
}

func (h *UpstreamHandler) get(c echo.Context) error {
	switch requestTarget(c.Request()) {
	case HealthPath:
		return writeText(c, http.StatusOK, "ok\n")
	case UsagePath:
		return writeJSON(c, http.StatusOK, model.DefaultUsage())
	default:
		return notFound(c)
	}
}

func (h *UpstreamHandler) post(c echo.Context) error {
	req := c.Request()
	target := requestTarget(req)
	if !strings.HasPrefix(target, MCPPrefix) {
		return notFound(c)
	}

	n, err := discardBody(req)
	if err != nil {
		var he *echo.HTTPError
		if errors.As(err, &he) {
			return he
		}
		h.logger.Warn("reading request body", "err", err, "path", target, "read", n)
		return echo.NewHTTPError(http.StatusBadRequest, "incomplete request body").SetInternal(err)
	}

	return writeJSON(c, http.StatusOK, model.MCPEcho{
		OK:        true,
		Mock:      model.MockName,
		Path:      target,
		Method:    req.Method,
		BodyBytes: n,
	})
}

// discardBody reads and drops up to the declared Content-Length, returning the
// number of bytes read. Without a positive Content-Length the body is treated
// as empty and left unread.
func discardBody(req *http.Request) (int64, error) {
	if req.ContentLength <= 0 {
		return 0, nil
	}
	return io.Copy(io.Discard, io.LimitReader(req.Body, req.ContentLength))
}

func notFound(c echo.Context) error {
	return writeJSON(c, http.StatusNotFound, model.NotFound{
		Error: "not_found",
		Path:  requestTarget(c.Request()),
	})
}
