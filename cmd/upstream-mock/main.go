// Command upstream-mock stands in for the service behind a forward-auth proxy,
// answering health, usage and MCP requests with canned JSON.
package main

import (
	"fmt"

	"github.com/alecthomas/kong"
	"go.uber.org/fx"

	"forwardauth-mocks/internal/config"
	"forwardauth-mocks/internal/handler"
	"forwardauth-mocks/internal/server"
)

// Set by goreleaser ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	var cli config.CLI
	kong.Parse(&cli,
		kong.Name("upstream-mock"),
		kong.Description("Upstream mock serving /health, /usage and POST /mcp*."),
		kong.Vars{"version": fmt.Sprintf("%s (%s, %s)", version, commit, date)},
	)

	fx.New(
		fx.Provide(
			func() *config.CLI { return &cli },
			config.Load,
			handler.NewUpstreamHandler,
		),
		server.Module("upstream-mock"),
		fx.Invoke(handler.RegisterUpstreamRoutes),
	).Run()
}
