// Package application provides the application interface for aadsync commands.
//
// Commands accept Application rather than the concrete App type so they can
// be tested with Mock and an in-memory directory.
//
//	mock := &application.Mock{
//	    DirectoryFunc: func(context.Context) (directory.Directory, error) {
//	        return memory.New(), nil
//	    },
//	}
//	cmd := reconcile.NewCommand(mock)
package application

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/agentstation/aadsync/internal/auth"
	"github.com/agentstation/aadsync/pkg/directory"
	"github.com/agentstation/aadsync/pkg/reconciler"
)

// Application provides what commands need from the application layer.
//
// Thread Safety: All methods must be safe for concurrent access.
type Application interface {
	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (table, json, yaml).
	OutputFormat() string

	// Directory returns the directory client, creating the credential and
	// transport on first use.
	Directory(ctx context.Context) (directory.Directory, error)

	// ReconcilerOptions returns options derived from configuration that every
	// reconciler should be built with.
	ReconcilerOptions() []reconciler.Option

	// CredentialStatus inspects the ambient credential. When verify is set a
	// token is requested from the identity provider.
	CredentialStatus(ctx context.Context, verify bool) (*auth.Status, error)

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
