// Package client provides the HTTP client mcp-probe uses to reach an MCP
// endpoint.
package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"forwardauth-mocks/internal/metrics"
	"forwardauth-mocks/internal/model"
)

const userAgent = "forwardauth-mocks-probe/1.0"

// maxResponseBytes caps how much of a response body is kept.
const maxResponseBytes = 1 << 20

// MCPClient posts JSON-RPC payloads to an MCP endpoint.
type MCPClient struct {
	httpClient *http.Client
	logger     *slog.Logger
	metrics    *metrics.Metrics
}

// NewMCPClient creates an MCPClient with connection pooling and the given
// per-request timeout. The metrics parameter is optional; pass nil to disable
// recording.
func NewMCPClient(timeout time.Duration, idleConns int, logger *slog.Logger, m *metrics.Metrics) *MCPClient {
	transport := &http.Transport{
		MaxIdleConns:        idleConns,
		MaxIdleConnsPerHost: idleConns,
		IdleConnTimeout:     90 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
	}

	return &MCPClient{
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   timeout,
		},
		logger:  logger.With("component", "mcp_client"),
		metrics: m,
	}
}

// Post sends body to url and reads the complete response. mode labels the
// request in metrics.
func (c *MCPClient) Post(ctx context.Context, url, mode string, header http.Header, body []byte) (*model.ProbeResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build probe request: %w", err)
	}
	req.Header = header.Clone()
	if req.Header == nil {
		req.Header = make(http.Header)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json, text/event-stream")
	req.Header.Set("User-Agent", userAgent)

	c.logger.Debug("probe request", "url", url, "mode", mode, "bytes", len(body))

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(start).Seconds()

	if c.metrics != nil {
		c.metrics.ProbeDuration.WithLabelValues(mode).Observe(duration)
	}
	if err != nil {
		return nil, fmt.Errorf("probe request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if c.metrics != nil {
		c.metrics.ProbeResponses.WithLabelValues(mode, strconv.Itoa(resp.StatusCode)).Inc()
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read probe response: %w", err)
	}

	return &model.ProbeResponse{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       data,
	}, nil
}
