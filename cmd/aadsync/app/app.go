// Package app provides the application context and dependency management
// for the aadsync CLI. Configuration, logging and the directory client are
// built here and handed to commands through application.Application.
package app

import (
	"context"
	"sync"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/rs/zerolog"

	"github.com/agentstation/aadsync/internal/auth"
	"github.com/agentstation/aadsync/internal/graph"
	"github.com/agentstation/aadsync/internal/transport"
	"github.com/agentstation/aadsync/pkg/directory"
	"github.com/agentstation/aadsync/pkg/errors"
	"github.com/agentstation/aadsync/pkg/reconciler"
)

// App represents the aadsync application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger

	// Lazily created; guarded by mu
	mu         sync.RWMutex
	credential azcore.TokenCredential
	directory  directory.Directory
}

// New creates a new App instance with the given version information.
// The app is initialized with default configuration that can be
// customized using functional options.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig("")
	if err != nil {
		return nil, errors.WrapResource("load", "config", "", err)
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the configured output format.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// ReconcilerOptions returns the reconciler options derived from configuration.
func (a *App) ReconcilerOptions() []reconciler.Option {
	return []reconciler.Option{
		reconciler.WithStrictMutations(a.config.StrictMutations),
	}
}

// Directory returns the Graph directory client, creating it lazily.
// This is thread-safe and ensures only one instance is created.
func (a *App) Directory(_ context.Context) (directory.Directory, error) {
	a.mu.RLock()
	if a.directory != nil {
		dir := a.directory
		a.mu.RUnlock()
		return dir, nil
	}
	a.mu.RUnlock()

	a.mu.Lock()
	defer a.mu.Unlock()

	// Double-check after acquiring write lock
	if a.directory != nil {
		return a.directory, nil
	}

	cred, err := a.credentialLocked()
	if err != nil {
		return nil, err
	}

	tc := transport.New(
		transport.NewTokenAuth(cred, auth.CLICredentialName, a.config.GraphScope),
		transport.WithTimeout(a.config.HTTPTimeout),
	)
	a.directory = graph.New(tc, a.config.GraphURL)
	a.logger.Debug().
		Str("graph_url", a.config.GraphURL).
		Str("tenant_id", a.config.TenantID).
		Msg("Created directory client")

	return a.directory, nil
}

// CredentialStatus reports whether the ambient credential can be used.
func (a *App) CredentialStatus(ctx context.Context, verify bool) (*auth.Status, error) {
	var cred azcore.TokenCredential
	if verify {
		a.mu.Lock()
		c, err := a.credentialLocked()
		a.mu.Unlock()
		if err != nil {
			return nil, err
		}
		cred = c
	}
	return auth.NewChecker(a.config.TenantID, a.config.GraphScope, cred).Check(ctx, verify), nil
}

// credentialLocked returns the ambient credential, creating it on first use.
// Callers must hold mu for writing.
func (a *App) credentialLocked() (azcore.TokenCredential, error) {
	if a.credential != nil {
		return a.credential, nil
	}
	cred, err := auth.NewCLICredential(a.config.TenantID)
	if err != nil {
		return nil, err
	}
	a.credential = cred
	return cred, nil
}

// Shutdown releases application resources. Requests in flight are bounded
// by the HTTP timeout, so there is nothing to drain.
func (a *App) Shutdown(_ context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.directory = nil
	return nil
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithDirectory sets a custom directory (useful for testing).
func WithDirectory(dir directory.Directory) Option {
	return func(a *App) error {
		a.directory = dir
		return nil
	}
}

// WithCredential sets a custom credential in place of the Azure CLI one.
func WithCredential(cred azcore.TokenCredential) Option {
	return func(a *App) error {
		a.credential = cred
		return nil
	}
}
