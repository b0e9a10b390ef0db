// Command mcp-probe sends JSON-RPC requests to an MCP endpoint, usually
// through the forward-auth proxy, and reports the responses.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/prometheus/client_golang/prometheus"

	"forwardauth-mocks/internal/client"
	"forwardauth-mocks/internal/config"
	"forwardauth-mocks/internal/metrics"
	"forwardauth-mocks/internal/probe"
	"forwardauth-mocks/internal/server"
)

// Set by goreleaser ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	var cli config.ProbeCLI
	kong.Parse(&cli,
		kong.Name("mcp-probe"),
		kong.Description("Drive MCP JSON-RPC traffic through a forward-auth proxy."),
		kong.Vars{"version": fmt.Sprintf("%s (%s, %s)", version, commit, date)},
	)
	os.Exit(run(&cli))
}

// run executes the probe and returns the process exit code: 0 when every
// request got a 2xx, 1 otherwise.
func run(cli *config.ProbeCLI) int {
	logger := server.NewLogger(&config.Config{Log: config.LogConfig{Level: cli.LogLevel}})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New()
	c := client.NewMCPClient(cli.Timeout, cli.Workers, logger, m)
	summary, err := probe.NewRunner(c, probe.OptionsFromCLI(cli), logger).Run(ctx)

	logger.Info("probe finished",
		"sent", summary.Sent,
		"succeeded", summary.Succeeded,
		"failed", summary.Failed,
	)

	if cli.MetricsFile != "" {
		if werr := prometheus.WriteToTextfile(cli.MetricsFile, m.Registry); werr != nil {
			logger.Error("writing metrics file", "path", cli.MetricsFile, "err", werr)
		}
	}

	switch {
	case err != nil && !errors.Is(err, context.Canceled):
		logger.Error("probe aborted", "err", err)
		return 1
	case summary.Failed > 0:
		return 1
	}
	return 0
}
