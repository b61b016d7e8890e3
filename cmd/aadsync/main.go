// Package main provides the entry point for the aadsync CLI tool.
package main

import (
	"context"
	"os"

	"github.com/agentstation/aadsync/cmd/aadsync/app"
	"github.com/agentstation/aadsync/pkg/constants"
)

// Version information populated by goreleaser.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
	builtBy = "unknown"
)

func main() {
	application, err := app.New(version, commit, date, builtBy)
	if err != nil {
		app.ExitOnError(err)
	}

	ctx, cancel := app.ContextWithSignals(context.Background())
	defer cancel()

	if err := application.Execute(ctx, os.Args[1:]); err != nil {
		// Signal context may already be cancelled
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
		defer shutdownCancel()

		if shutdownErr := application.Shutdown(shutdownCtx); shutdownErr != nil {
			application.Logger().Error().Err(shutdownErr).Msg("Shutdown error during error handling")
		}
		app.ExitOnError(err)
	}
}
