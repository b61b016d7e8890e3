package app

import (
	"context"
	"os/signal"
	"syscall"
)

// ContextWithSignals creates a context that is cancelled when the application
// receives an interrupt or termination signal. In-flight directory requests
// observe the cancellation and the run ends with ErrCanceled.
func ContextWithSignals(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
}
