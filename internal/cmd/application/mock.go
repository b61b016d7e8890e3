package application

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/agentstation/aadsync/internal/auth"
	"github.com/agentstation/aadsync/pkg/directory"
	"github.com/agentstation/aadsync/pkg/reconciler"
)

// Mock provides a mock implementation of Application for testing.
// Each method can be customized by setting the corresponding function field.
// If a function field is nil, the method returns a default/zero value.
type Mock struct {
	LoggerFunc            func() *zerolog.Logger
	OutputFormatFunc      func() string
	DirectoryFunc         func(ctx context.Context) (directory.Directory, error)
	ReconcilerOptionsFunc func() []reconciler.Option
	CredentialStatusFunc  func(ctx context.Context, verify bool) (*auth.Status, error)
	VersionFunc           func() string
	CommitFunc            func() string
	DateFunc              func() string
	BuiltByFunc           func() string
}

// Logger returns a logger using the mock function or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// OutputFormat returns output format using the mock function or "table".
func (m *Mock) OutputFormat() string {
	if m.OutputFormatFunc != nil {
		return m.OutputFormatFunc()
	}
	return "table"
}

// Directory returns a directory using the mock function or nil.
func (m *Mock) Directory(ctx context.Context) (directory.Directory, error) {
	if m.DirectoryFunc != nil {
		return m.DirectoryFunc(ctx)
	}
	return nil, nil
}

// ReconcilerOptions returns options using the mock function or none.
func (m *Mock) ReconcilerOptions() []reconciler.Option {
	if m.ReconcilerOptionsFunc != nil {
		return m.ReconcilerOptionsFunc()
	}
	return nil
}

// CredentialStatus returns a status using the mock function or a configured status.
func (m *Mock) CredentialStatus(ctx context.Context, verify bool) (*auth.Status, error) {
	if m.CredentialStatusFunc != nil {
		return m.CredentialStatusFunc(ctx, verify)
	}
	return &auth.Status{State: auth.StateConfigured}, nil
}

// Version returns version using the mock function or "dev".
func (m *Mock) Version() string {
	if m.VersionFunc != nil {
		return m.VersionFunc()
	}
	return "dev"
}

// Commit returns commit using the mock function or "unknown".
func (m *Mock) Commit() string {
	if m.CommitFunc != nil {
		return m.CommitFunc()
	}
	return "unknown"
}

// Date returns date using the mock function or "unknown".
func (m *Mock) Date() string {
	if m.DateFunc != nil {
		return m.DateFunc()
	}
	return "unknown"
}

// BuiltBy returns builtBy using the mock function or "test".
func (m *Mock) BuiltBy() string {
	if m.BuiltByFunc != nil {
		return m.BuiltByFunc()
	}
	return "test"
}

// Ensure Mock implements Application at compile time.
var _ Application = (*Mock)(nil)
