package reconciler

import (
	"context"
	"strings"

	"github.com/agentstation/aadsync/pkg/constants"
	"github.com/agentstation/aadsync/pkg/directory"
	"github.com/agentstation/aadsync/pkg/errors"
	"github.com/agentstation/aadsync/pkg/logging"
)

// SplitSources splits a source specification into trimmed, non-empty tokens.
func SplitSources(spec string) []string {
	var tokens []string
	for _, tok := range strings.Split(spec, constants.SourceSeparator) {
		if tok = strings.TrimSpace(tok); tok != "" {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

// ResolveSources expands a source specification into users. A token
// containing "@" names a user by principal name; any other token names a
// group whose user members are taken. Users are deduplicated by principal
// name, keeping the first occurrence.
func (r *Reconciler) ResolveSources(ctx context.Context, spec string) ([]directory.User, error) {
	logger := logging.FromContext(ctx)

	tokens := SplitSources(spec)
	if len(tokens) == 0 {
		return nil, errors.NewValidationError("sources", spec, "at least one source identifier is required")
	}

	var users []directory.User
	seen := make(map[string]bool)
	for _, tok := range tokens {
		resolved, err := r.resolveToken(ctx, tok)
		if err != nil {
			return nil, err
		}
		for _, u := range resolved {
			if seen[u.PrincipalName] {
				continue
			}
			seen[u.PrincipalName] = true
			users = append(users, u)
			logger.Info().
				Str("source", tok).
				Str("user", u.PrincipalName).
				Str("mail", u.Mail).
				Msg("Resolved source user")
		}
	}
	return users, nil
}

func (r *Reconciler) resolveToken(ctx context.Context, tok string) ([]directory.User, error) {
	if strings.Contains(tok, "@") {
		users, err := r.dir.FindUsers(ctx, tok)
		if err != nil {
			return nil, err
		}
		u, err := single("user", tok, users)
		if err != nil {
			return nil, err
		}
		return []directory.User{u}, nil
	}

	groups, err := r.dir.FindTargets(ctx, directory.ResourceGroups, tok, directory.RelationMembers)
	if err != nil {
		return nil, err
	}
	g, err := single("group", tok, groups)
	if err != nil {
		return nil, err
	}
	return g.Users(), nil
}

// single enforces exactly one lookup result.
func single[T any](resource, name string, items []T) (T, error) {
	var zero T
	switch len(items) {
	case 0:
		return zero, errors.NewNotFoundError(resource, name)
	case 1:
		return items[0], nil
	default:
		return zero, errors.NewAmbiguousMatchError(resource, name, len(items))
	}
}
