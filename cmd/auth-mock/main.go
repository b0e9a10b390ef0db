// Command auth-mock is a forward-auth endpoint that accepts a single Basic
// credential and answers with identity headers.
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
	var cli config.AuthCLI
	kong.Parse(&cli,
		kong.Name("auth-mock"),
		kong.Description("Forward-auth mock validating HTTP Basic credentials."),
		kong.Vars{"version": fmt.Sprintf("%s (%s, %s)", version, commit, date)},
	)

	fx.New(
		fx.Provide(
			func() *config.AuthCLI { return &cli },
			config.LoadAuth,
			handler.NewAuthHandler,
		),
		server.Module("auth-mock"),
		fx.Invoke(handler.RegisterAuthRoutes),
	).Run()
}
