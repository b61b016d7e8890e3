package reconciler

import (
	"context"

	"github.com/agentstation/aadsync/pkg/directory"
	"github.com/agentstation/aadsync/pkg/errors"
	"github.com/agentstation/aadsync/pkg/logging"
)

// Apply runs the removal (sync only), no-email (when enabled) and addition
// passes against the target snapshot, recording every decision in result.
// The current identity is never removed.
func (r *Reconciler) Apply(ctx context.Context, me directory.User, sources []directory.User, target *ResolvedTarget, result *Result) error {
	removed := make(map[string]Pass)

	if r.opts.mode == ModeSync {
		if err := r.removalPass(ctx, me, sources, target, result, removed); err != nil {
			return err
		}
	}
	if r.opts.removeNoEmail {
		if err := r.noEmailPass(ctx, me, target, result, removed); err != nil {
			return err
		}
	}
	return r.additionPass(ctx, sources, target, result, removed)
}

// removalPass removes target users whose principal name is not in sources.
func (r *Reconciler) removalPass(ctx context.Context, me directory.User, sources []directory.User, target *ResolvedTarget, result *Result, removed map[string]Pass) error {
	ctx = logging.WithField(ctx, "pass", string(PassRemoval))

	inSource := make(map[string]bool, len(sources))
	for _, s := range sources {
		inSource[s.PrincipalName] = true
	}

	for _, t := range target.Members {
		if t.PrincipalName == me.PrincipalName {
			r.skip(ctx, result, PassRemoval, t, ReasonSelf)
			continue
		}
		if inSource[t.PrincipalName] {
			continue
		}
		if err := r.remove(ctx, target, result, PassRemoval, t); err != nil {
			return err
		}
		removed[t.ID] = PassRemoval
	}
	return nil
}

// noEmailPass removes target users that have no email address.
func (r *Reconciler) noEmailPass(ctx context.Context, me directory.User, target *ResolvedTarget, result *Result, removed map[string]Pass) error {
	ctx = logging.WithField(ctx, "pass", string(PassNoEmail))

	for _, t := range target.Members {
		if t.HasMail() {
			continue
		}
		if t.PrincipalName == me.PrincipalName {
			r.skip(ctx, result, PassNoEmail, t, ReasonSelf)
			continue
		}
		if _, ok := removed[t.ID]; ok {
			r.skip(ctx, result, PassNoEmail, t, ReasonAlreadyRemoved)
			continue
		}
		if err := r.remove(ctx, target, result, PassNoEmail, t); err != nil {
			return err
		}
		removed[t.ID] = PassNoEmail
	}
	return nil
}

// additionPass adds source users whose email matches no target user. A
// source user that is the very same object as a target user is also present,
// whatever the two snapshots say about its email. Users purged by the
// no-email pass are never added back.
func (r *Reconciler) additionPass(ctx context.Context, sources []directory.User, target *ResolvedTarget, result *Result, removed map[string]Pass) error {
	ctx = logging.WithField(ctx, "pass", string(PassAddition))

	mails := make(map[string]bool, len(target.Members))
	ids := make(map[string]bool, len(target.Members))
	for _, t := range target.Members {
		if _, ok := removed[t.ID]; !ok {
			ids[t.ID] = true
		}
		if t.HasMail() {
			mails[t.Mail] = true
		}
	}

	for _, s := range sources {
		if removed[s.ID] == PassNoEmail {
			r.skip(ctx, result, PassAddition, s, ReasonNoEmail)
			continue
		}
		if (s.HasMail() && mails[s.Mail]) || ids[s.ID] {
			r.skip(ctx, result, PassAddition, s, ReasonAlreadyMember)
			continue
		}
		if err := r.add(ctx, target, result, s); err != nil {
			return err
		}
	}
	return nil
}

func (r *Reconciler) add(ctx context.Context, target *ResolvedTarget, result *Result, u directory.User) error {
	err := r.dir.AddReference(ctx, target.Reference(), u.ID)
	if err == nil {
		logging.FromContext(ctx).Info().Str("user", u.PrincipalName).Msg("Added user")
		result.record(Change{Type: ChangeAdd, Pass: PassAddition, User: u})
		return nil
	}
	return r.handleMutationError(ctx, target, result, "add", PassAddition, u, err)
}

func (r *Reconciler) remove(ctx context.Context, target *ResolvedTarget, result *Result, pass Pass, u directory.User) error {
	err := r.dir.RemoveReference(ctx, target.Reference(), u.ID)
	if err == nil {
		logging.FromContext(ctx).Info().Str("user", u.PrincipalName).Msg("Removed user")
		result.record(Change{Type: ChangeRemove, Pass: pass, User: u})
		return nil
	}
	return r.handleMutationError(ctx, target, result, "remove", pass, u, err)
}

func (r *Reconciler) handleMutationError(ctx context.Context, target *ResolvedTarget, result *Result, op string, pass Pass, u directory.User, err error) error {
	merr := errors.NewMutationError(op, target.DisplayName, string(target.Kind.Relation()), u.PrincipalName, err)
	if r.opts.strict || !errors.IsBenignMutation(err) {
		return merr
	}

	reason := ReasonReferenceAbsent
	if op == "add" {
		reason = ReasonReferenceExists
	}
	logging.FromContext(ctx).Warn().Err(merr).Msg("Ignoring mutation error")
	result.record(Change{Type: ChangeSkip, Pass: pass, User: u, Reason: reason})
	return nil
}

func (r *Reconciler) skip(ctx context.Context, result *Result, pass Pass, u directory.User, reason string) {
	logging.FromContext(ctx).Info().Str("user", u.PrincipalName).Str("reason", reason).Msg("Skipped user")
	result.record(Change{Type: ChangeSkip, Pass: pass, User: u, Reason: reason})
}
