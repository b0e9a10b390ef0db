// Package handler implements the auth-mock and upstream-mock endpoints.
package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// Content types the mocks answer with. Echo's own constants spell the charset
// in upper case, which forward-auth fixtures compare literally.
const (
	mimeTextPlain = "text/plain; charset=utf-8"
	mimeJSON      = "application/json; charset=utf-8"
)

// errUnsupportedMethod mirrors a bare HTTP server with no handler for the
// method.
var errUnsupportedMethod = echo.NewHTTPError(http.StatusNotImplemented, "unsupported method")

func writeText(c echo.Context, code int, body string) error {
	return c.Blob(code, mimeTextPlain, []byte(body))
}

// writeJSON writes v as compact JSON with an explicit Content-Length. HTML
// characters are left unescaped so echoed paths stay byte-identical.
func writeJSON(c echo.Context, code int, v any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode response: %w", err)
	}
	data := bytes.TrimSuffix(buf.Bytes(), []byte("\n"))

	c.Response().Header().Set(echo.HeaderContentLength, strconv.Itoa(len(data)))
	return c.Blob(code, mimeJSON, data)
}

// requestTarget returns the request target exactly as the client sent it,
// still percent-encoded and with any query string. Routes match against it
// verbatim, so "/auth?x=1" is not "/auth".
func requestTarget(req *http.Request) string {
	if req.RequestURI != "" {
		return req.RequestURI
	}
	return req.URL.RequestURI()
}
