package probe

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"slices"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"

	"forwardauth-mocks/internal/client"
	"forwardauth-mocks/internal/config"
	"forwardauth-mocks/internal/handler"
	"forwardauth-mocks/internal/model"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type recordingPoster struct {
	mu      sync.Mutex
	ids     []string
	headers []http.Header
	status  int
	err     error
}

func (p *recordingPoster) Post(_ context.Context, _, _ string, header http.Header, body []byte) (*model.ProbeResponse, error) {
	var req model.RPCRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, err
	}

	p.mu.Lock()
	p.ids = append(p.ids, req.ID)
	p.headers = append(p.headers, header)
	p.mu.Unlock()

	if p.err != nil {
		return nil, p.err
	}
	return &model.ProbeResponse{StatusCode: p.status}, nil
}

func TestSplit(t *testing.T) {
	tests := []struct {
		count, workers int
		want           []int
	}{
		{20, 1, []int{20}},
		{10, 3, []int{4, 3, 3}},
		{2, 4, []int{1, 1, 0, 0}},
		{0, 2, []int{0, 0}},
		{5, 0, nil},
	}

	for _, tt := range tests {
		if got := Split(tt.count, tt.workers); !slices.Equal(got, tt.want) {
			t.Errorf("Split(%d, %d) = %v, want %v", tt.count, tt.workers, got, tt.want)
		}
	}
}

func TestBuildRequest(t *testing.T) {
	tests := []struct {
		mode string
		want string
	}{
		{config.ModeCallTool, `{"jsonrpc":"2.0","id":"req-7","method":"tools/call","params":{"name":"mock-tool","arguments":{"prompt":"hi"}}}`},
		{config.ModeListTools, `{"jsonrpc":"2.0","id":"req-7","method":"tools/list"}`},
		{config.ModePing, `{"jsonrpc":"2.0","id":"req-7","method":"ping"}`},
	}

	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			data, err := json.Marshal(BuildRequest(tt.mode, "mock-tool", "hi", 7))
			if err != nil {
				t.Fatalf("Marshal() error = %v", err)
			}
			if string(data) != tt.want {
				t.Errorf("request = %s, want %s", data, tt.want)
			}
		})
	}
}

func TestOptionsFromCLI_Authorization(t *testing.T) {
	tests := []struct {
		name string
		cli  config.ProbeCLI
		want string
	}{
		{"token", config.ProbeCLI{Token: "th-1-secret", User: "admin"}, "Bearer th-1-secret"},
		{"basic", config.ProbeCLI{User: "admin", Password: "password"}, "Basic YWRtaW46cGFzc3dvcmQ="},
		{"none", config.ProbeCLI{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := OptionsFromCLI(&tt.cli).Authorization; got != tt.want {
				t.Errorf("Authorization = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRunner_Run(t *testing.T) {
	poster := &recordingPoster{status: http.StatusOK}
	opts := Options{
		Endpoint:      "http://proxy.invalid/mcp",
		Authorization: "Bearer token",
		Mode:          config.ModePing,
		Count:         5,
		Workers:       2,
	}

	summary, err := NewRunner(poster, opts, testLogger()).Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if summary != (Summary{Sent: 5, Succeeded: 5}) {
		t.Errorf("summary = %+v, want 5 sent and succeeded", summary)
	}

	slices.Sort(poster.ids)
	want := []string{"req-0", "req-1", "req-10000", "req-10001", "req-2"}
	if !slices.Equal(poster.ids, want) {
		t.Errorf("ids = %v, want %v", poster.ids, want)
	}
	for _, h := range poster.headers {
		if h.Get("Authorization") != "Bearer token" {
			t.Errorf("Authorization = %q, want %q", h.Get("Authorization"), "Bearer token")
		}
	}
}

func TestRunner_Run_CountsFailures(t *testing.T) {
	tests := []struct {
		name   string
		poster *recordingPoster
	}{
		{"transport error", &recordingPoster{err: errors.New("connection refused")}},
		{"unauthorized", &recordingPoster{status: http.StatusUnauthorized}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := Options{Endpoint: "http://proxy.invalid/mcp", Mode: config.ModePing, Count: 3, Workers: 1}

			summary, err := NewRunner(tt.poster, opts, testLogger()).Run(context.Background())
			if err != nil {
				t.Fatalf("Run() error = %v; request failures must not abort the run", err)
			}
			if summary != (Summary{Sent: 3, Failed: 3}) {
				t.Errorf("summary = %+v, want 3 sent and failed", summary)
			}
		})
	}
}

func TestRunner_Run_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	opts := Options{Endpoint: "http://proxy.invalid/mcp", Mode: config.ModePing, Count: 3, Workers: 1}
	summary, err := NewRunner(&recordingPoster{status: http.StatusOK}, opts, testLogger()).Run(ctx)

	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
	if summary.Sent != 0 {
		t.Errorf("Sent = %d, want 0", summary.Sent)
	}
}

func TestRunner_Run_CanceledMidRequest(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	calls := 0
	poster := posterFunc(func(ctx context.Context, _, _ string, _ http.Header, _ []byte) (*model.ProbeResponse, error) {
		calls++
		if calls == 1 {
			return &model.ProbeResponse{StatusCode: http.StatusOK}, nil
		}
		cancel()
		return nil, ctx.Err()
	})

	opts := Options{Endpoint: "http://proxy.invalid/mcp", Mode: config.ModePing, Count: 3, Workers: 1}
	summary, err := NewRunner(poster, opts, testLogger()).Run(ctx)

	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run() error = %v, want context.Canceled", err)
	}
	if summary != (Summary{Sent: 2, Succeeded: 1, Failed: 1}) {
		t.Errorf("summary = %+v, want 2 sent, 1 succeeded, 1 failed", summary)
	}
	if summary.Sent != summary.Succeeded+summary.Failed {
		t.Errorf("Sent = %d, want Succeeded+Failed = %d", summary.Sent, summary.Succeeded+summary.Failed)
	}
}

func TestRunner_Run_AgainstUpstreamMock(t *testing.T) {
	e := echo.New()
	handler.RegisterUpstreamRoutes(e, handler.NewUpstreamHandler(testLogger()), &config.Config{}, nil)
	srv := httptest.NewServer(e)
	defer srv.Close()

	var bodies []model.MCPEcho
	var mu sync.Mutex
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	c := client.NewMCPClient(0, 2, logger, nil)

	poster := posterFunc(func(ctx context.Context, url, mode string, header http.Header, body []byte) (*model.ProbeResponse, error) {
		resp, err := c.Post(ctx, url, mode, header, body)
		if err == nil {
			var echoed model.MCPEcho
			if json.Unmarshal(resp.Body, &echoed) == nil {
				mu.Lock()
				bodies = append(bodies, echoed)
				mu.Unlock()
			}
		}
		return resp, err
	})

	opts := Options{Endpoint: srv.URL + "/mcp", Mode: config.ModeCallTool, Tool: "mock-tool", Prompt: "hello", Count: 4, Workers: 2}
	summary, err := NewRunner(poster, opts, logger).Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if summary.Succeeded != 4 {
		t.Errorf("Succeeded = %d, want 4", summary.Succeeded)
	}
	for _, b := range bodies {
		if !b.OK || b.Path != "/mcp" || b.BodyBytes == 0 {
			t.Errorf("echo = %+v, want ok on /mcp with a non-empty body", b)
		}
	}
}

type posterFunc func(ctx context.Context, url, mode string, header http.Header, body []byte) (*model.ProbeResponse, error)

func (f posterFunc) Post(ctx context.Context, url, mode string, header http.Header, body []byte) (*model.ProbeResponse, error) {
	return f(ctx, url, mode, header, body)
}
