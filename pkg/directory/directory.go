// Package directory defines the directory principals aadsync reconciles and
// the Directory interface through which they are read and mutated.
package directory

import "context"

// Directory is the remote directory service consumed by the reconciler.
//
// Lookups return every match; enforcing "exactly one" is the caller's job so
// that not-found and ambiguous results can be reported with context.
type Directory interface {
	// Me returns the principal the ambient credential acts as.
	Me(ctx context.Context) (*User, error)

	// FindUsers returns users whose principal name equals name.
	FindUsers(ctx context.Context, principalName string) ([]User, error)

	// FindTargets returns resources of the given type whose display name
	// equals name, each with the given relation expanded.
	FindTargets(ctx context.Context, resource Resource, displayName string, relation Relation) ([]Target, error)

	// AddReference adds objectID to the relation addressed by ref.
	AddReference(ctx context.Context, ref Reference, objectID string) error

	// RemoveReference removes objectID from the relation addressed by ref.
	RemoveReference(ctx context.Context, ref Reference, objectID string) error
}

// Reference addresses one relation on one resource.
type Reference struct {
	Resource Resource
	TargetID string
	Relation Relation
}
