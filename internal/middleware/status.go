// Package middleware provides Echo middleware for access logging, response
// headers and metrics.
package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

// responseStatus resolves the status a request ends with. When a handler
// returns an *echo.HTTPError the response has not been written yet; Echo's
// central error handler writes it after the middleware chain unwinds.
func responseStatus(c echo.Context, err error) int {
	if err != nil && !c.Response().Committed {
		var he *echo.HTTPError
		if errors.As(err, &he) {
			return he.Code
		}
		return http.StatusInternalServerError
	}
	return c.Response().Status
}
