// Package probe drives JSON-RPC traffic at an MCP endpoint, normally through
// the forward-auth proxy in front of upstream-mock.
package probe

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"forwardauth-mocks/internal/basicauth"
	"forwardauth-mocks/internal/config"
	"forwardauth-mocks/internal/model"
)

// seqStride separates request ids of different workers.
const seqStride = 10_000

// Poster sends one request body and returns the complete response.
type Poster interface {
	Post(ctx context.Context, url, mode string, header http.Header, body []byte) (*model.ProbeResponse, error)
}

// Options describes one probe run.
type Options struct {
	Endpoint      string
	Authorization string
	Mode          string
	Tool          string
	Prompt        string
	Count         int
	Workers       int
	Interval      time.Duration
}

// OptionsFromCLI converts parsed flags into Options. A bearer token wins over
// Basic credentials; with neither, no Authorization header is sent.
func OptionsFromCLI(cli *config.ProbeCLI) Options {
	var authorization string
	switch {
	case cli.Token != "":
		authorization = "Bearer " + cli.Token
	case cli.User != "":
		authorization = basicauth.Encode(cli.User, cli.Password)
	}

	return Options{
		Endpoint:      cli.Endpoint,
		Authorization: authorization,
		Mode:          cli.Mode,
		Tool:          cli.Tool,
		Prompt:        cli.Prompt,
		Count:         cli.Count,
		Workers:       cli.Workers,
		Interval:      cli.Interval,
	}
}

// Summary counts the outcome of a run.
type Summary struct {
	Sent      int64
	Succeeded int64
	Failed    int64
}

// Runner executes a probe run.
type Runner struct {
	client Poster
	opts   Options
	logger *slog.Logger
}

// NewRunner creates a Runner.
func NewRunner(client Poster, opts Options, logger *slog.Logger) *Runner {
	return &Runner{
		client: client,
		opts:   opts,
		logger: logger.With("component", "probe"),
	}
}

// Run sends Count requests spread over Workers goroutines, each pacing itself
// to one request per Interval. Request failures are logged and counted; only
// context cancellation ends the run early.
func (r *Runner) Run(ctx context.Context) (Summary, error) {
	var sent, succeeded, failed atomic.Int64

	header := make(http.Header)
	if r.opts.Authorization != "" {
		header.Set("Authorization", r.opts.Authorization)
	}

	g, ctx := errgroup.WithContext(ctx)
	for worker, total := range Split(r.opts.Count, r.opts.Workers) {
		g.Go(func() error {
			limiter := rate.NewLimiter(rate.Every(r.opts.Interval), 1)
			for seq := range total {
				if err := limiter.Wait(ctx); err != nil {
					return err
				}

				body, err := json.Marshal(BuildRequest(r.opts.Mode, r.opts.Tool, r.opts.Prompt, worker*seqStride+seq))
				if err != nil {
					return fmt.Errorf("encode request: %w", err)
				}

				// Every sent request ends up in exactly one of succeeded or
				// failed, including one cut off by cancellation.
				sent.Add(1)
				resp, err := r.client.Post(ctx, r.opts.Endpoint, r.opts.Mode, header, body)
				if err != nil {
					failed.Add(1)
					if ctx.Err() != nil {
						return ctx.Err()
					}
					r.logger.Error("request error", "worker", worker, "err", err)
					continue
				}

				if resp.StatusCode >= 200 && resp.StatusCode < 300 {
					succeeded.Add(1)
				} else {
					failed.Add(1)
				}
				r.logger.Info("response",
					"worker", worker,
					"status", resp.StatusCode,
					"body", string(resp.Body),
				)
			}
			return nil
		})
	}

	err := g.Wait()
	return Summary{
		Sent:      sent.Load(),
		Succeeded: succeeded.Load(),
		Failed:    failed.Load(),
	}, err
}

// Split divides count requests over workers; the first count%workers workers
// take one extra.
func Split(count, workers int) []int {
	if workers < 1 {
		return nil
	}
	shares := make([]int, workers)
	for i := range shares {
		shares[i] = count / workers
		if i < count%workers {
			shares[i]++
		}
	}
	return shares
}

// BuildRequest returns the JSON-RPC message for mode with id req-<seq>.
func BuildRequest(mode, tool, prompt string, seq int) model.RPCRequest {
	req := model.RPCRequest{
		JSONRPC: "2.0",
		ID:      fmt.Sprintf("req-%d", seq),
	}

	switch mode {
	case config.ModeListTools:
		req.Method = "tools/list"
	case config.ModePing:
		req.Method = "ping"
	default:
		req.Method = "tools/call"
		req.Params = model.CallToolParams{
			Name:      tool,
			Arguments: map[string]any{"prompt": prompt},
		}
	}
	return req
}
