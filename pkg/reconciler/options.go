package reconciler

import (
	"strings"

	"github.com/agentstation/aadsync/pkg/errors"
)

// Mode selects whether a run only adds or also removes.
type Mode string

// Modes.
const (
	// ModeAdd ensures every source user is present in the target.
	ModeAdd Mode = "add"
	// ModeSync additionally removes target users absent from the source.
	ModeSync Mode = "sync"
)

// ParseMode maps a mode argument to a Mode. Only "sync" (any case) enables
// removal; every other value is additive.
func ParseMode(s string) Mode {
	if strings.ToLower(s) == string(ModeSync) {
		return ModeSync
	}
	return ModeAdd
}

// options configures a reconciler.
type options struct {
	mode          Mode
	removeNoEmail bool
	strict        bool // benign mutation errors are fatal
}

func defaultOptions() *options {
	return &options{mode: ModeAdd}
}

// Option is a function that configures a Reconciler.
type Option func(*options) error

func (o *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// newOptions returns reconciler options with default values.
func newOptions(opts ...Option) (*options, error) {
	return defaultOptions().apply(opts...)
}

// WithMode sets the reconciliation mode.
func WithMode(mode Mode) Option {
	return func(o *options) error {
		if mode != ModeAdd && mode != ModeSync {
			return &errors.ValidationError{
				Field:   "mode",
				Value:   mode,
				Message: "must be add or sync",
			}
		}
		o.mode = mode
		return nil
	}
}

// WithRemoveNoEmail enables removal of target users without an email address.
func WithRemoveNoEmail(enabled bool) Option {
	return func(o *options) error {
		o.removeNoEmail = enabled
		return nil
	}
}

// WithStrictMutations makes "already exists" and "not found" mutation
// responses abort the run instead of being recorded as skips.
func WithStrictMutations(enabled bool) Option {
	return func(o *options) error {
		o.strict = enabled
		return nil
	}
}
