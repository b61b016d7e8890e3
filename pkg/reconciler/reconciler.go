// Package reconciler resolves a source set of users and a single target
// relation, then adds and removes references until the target reflects the
// source.
//
// A run is strictly sequential: identity, sources, target, then the removal,
// no-email and addition passes. Every lookup is read fresh and nothing is
// re-verified after a mutation.
package reconciler

import (
	"context"

	"github.com/agentstation/aadsync/pkg/directory"
	"github.com/agentstation/aadsync/pkg/errors"
	"github.com/agentstation/aadsync/pkg/logging"
)

// Request names what to reconcile.
type Request struct {
	Sources    string // identifiers separated by ";"
	TargetName string
	Kind       directory.TargetKind
}

// Validate checks the request before any remote call is made.
func (r Request) Validate() error {
	if r.Kind == directory.KindUnknown {
		return &errors.UnknownTargetKindError{Value: r.Kind.String()}
	}
	if r.TargetName == "" {
		return errors.NewValidationError("target", r.TargetName, "target name is required")
	}
	if len(SplitSources(r.Sources)) == 0 {
		return errors.NewValidationError("sources", r.Sources, "at least one source identifier is required")
	}
	return nil
}

// Reconciler reconciles one target against one source specification.
type Reconciler struct {
	dir  directory.Directory
	opts *options
}

// New creates a Reconciler backed by dir.
func New(dir directory.Directory, opts ...Option) (*Reconciler, error) {
	if dir == nil {
		return nil, errors.NewValidationError("directory", nil, "cannot be nil")
	}
	options, err := newOptions(opts...)
	if err != nil {
		return nil, err
	}
	return &Reconciler{dir: dir, opts: options}, nil
}

// Mode returns the configured mode.
func (r *Reconciler) Mode() Mode {
	return r.opts.mode
}

// Run executes the full pipeline. On a mutation failure the partial result
// is returned together with the error.
func (r *Reconciler) Run(ctx context.Context, req Request) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	ctx = logging.WithTarget(ctx, req.TargetName, req.Kind.String())
	logger := logging.FromContext(ctx)

	// Step 1: identity
	me, err := r.dir.Me(ctx)
	if err != nil {
		return nil, err
	}
	logger.Debug().Str("me", me.PrincipalName).Msg("Resolved current identity")

	// Step 2: sources
	sources, err := r.ResolveSources(ctx, req.Sources)
	if err != nil {
		return nil, err
	}

	// Step 3: target
	target, err := r.ResolveTarget(ctx, req.TargetName, req.Kind)
	if err != nil {
		return nil, err
	}

	// Step 4: passes
	result := newResult(*me, target, r.opts, sources)
	if err := r.Apply(ctx, *me, sources, target, result); err != nil {
		return result, err
	}

	logger.Info().
		Int("added", len(result.Added())).
		Int("removed", len(result.Removed())).
		Int("skipped", len(result.Skipped())).
		Msg(result.Summary())

	return result, nil
}
