package handler

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"forwardauth-mocks/internal/basicauth"
	"forwardauth-mocks/internal/config"
	"forwardauth-mocks/internal/metrics"
	"forwardauth-mocks/internal/model"
)

// AuthPath is the only path auth-mock answers.
const AuthPath = "/auth"

// Identity headers returned to the forward-auth proxy on success.
const (
	HeaderRemoteEmail = "Remote-Email"
	HeaderRemoteName  = "Remote-Name"
)

// AuthHandler validates Basic credentials for a forward-auth proxy.
type AuthHandler struct {
	cred      basicauth.Credential
	challenge string
	logger    *slog.Logger
	metrics   *metrics.Metrics
}

// NewAuthHandler creates an AuthHandler. The expected token is computed here,
// once. The metrics parameter is optional; pass nil to disable recording.
func NewAuthHandler(cfg *config.Config, logger *slog.Logger, m *metrics.Metrics) *AuthHandler {
	return &AuthHandler{
		cred:      basicauth.NewCredential(cfg.Auth.User, cfg.Auth.Password),
		challenge: basicauth.Challenge(cfg.Auth.Realm),
		logger:    logger.With("component", "auth_handler"),
		metrics:   m,
	}
}

// Handle answers GET /auth with 200 and identity headers when the request
// carries the expected credential, and 401 with a challenge otherwise.
func (h *AuthHandler) Handle(c echo.Context) error {
	req := c.Request()
	if req.Method != http.MethodGet {
		return errUnsupportedMethod
	}
	if requestTarget(req) != AuthPath {
		return writeText(c, http.StatusNotFound, "Not Found\n")
	}

	if !h.cred.Match(req.Header.Get(echo.HeaderAuthorization)) {
		h.record(metrics.DecisionDenied)
		c.Response().Header().Set(echo.HeaderWWWAuthenticate, h.challenge)
		return writeText(c, http.StatusUnauthorized, "Unauthorized\n")
	}

	h.record(metrics.DecisionAllowed)
	c.Response().Header().Set(HeaderRemoteEmail, model.RemoteEmail)
	c.Response().Header().Set(HeaderRemoteName, model.RemoteName)
	return writeText(c, http.StatusOK, "ok\n")
}

func (h *AuthHandler) record(decision string) {
	h.logger.Debug("auth decision", "result", decision)
	if h.metrics != nil {
		h.metrics.AuthDecisions.WithLabelValues(decision).Inc()
	}
}
