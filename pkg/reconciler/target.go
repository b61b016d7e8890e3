package reconciler

import (
	"context"

	"github.com/agentstation/aadsync/pkg/constants"
	"github.com/agentstation/aadsync/pkg/directory"
	"github.com/agentstation/aadsync/pkg/errors"
	"github.com/agentstation/aadsync/pkg/logging"
)

// ResolvedTarget is the target being reconciled with a snapshot of the users
// currently held by the reconciled relation.
type ResolvedTarget struct {
	directory.Target
	Kind    directory.TargetKind
	Members []directory.User
}

// Reference returns the relation mutated for the target.
func (t *ResolvedTarget) Reference() directory.Reference {
	return directory.Reference{
		Resource: t.Kind.Resource(),
		TargetID: t.ID,
		Relation: t.Kind.Relation(),
	}
}

// ResolveTarget looks up exactly one target of the given kind by display name.
// Enterprise app lookups ignore managed identity service principals.
func (r *Reconciler) ResolveTarget(ctx context.Context, name string, kind directory.TargetKind) (*ResolvedTarget, error) {
	if kind == directory.KindUnknown {
		return nil, &errors.UnknownTargetKindError{Value: kind.String()}
	}

	targets, err := r.dir.FindTargets(ctx, kind.Resource(), name, kind.Relation())
	if err != nil {
		return nil, err
	}
	if kind == directory.KindEnterpriseApp {
		targets = excludeManagedIdentities(targets)
	}

	t, err := single(kind.String(), name, targets)
	if err != nil {
		return nil, err
	}

	resolved := &ResolvedTarget{Target: t, Kind: kind, Members: t.Users()}
	logging.FromContext(ctx).Debug().
		Str("id", t.ID).
		Int("members", len(resolved.Members)).
		Msg("Resolved target")
	return resolved, nil
}

func excludeManagedIdentities(targets []directory.Target) []directory.Target {
	kept := targets[:0:0]
	for _, t := range targets {
		if t.ServicePrincipalType == constants.ManagedIdentityType {
			continue
		}
		kept = append(kept, t)
	}
	return kept
}
