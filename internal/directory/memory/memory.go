// Package memory provides an in-memory directory.Directory for tests.
// Mutations are applied to the stored relations, so a second reconciliation
// against the same directory observes the first run's changes.
package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/agentstation/aadsync/pkg/directory"
	"github.com/agentstation/aadsync/pkg/errors"
)

// Operation names recorded in Call.
const (
	OpAdd    = "add"
	OpRemove = "remove"
)

// Call records one mutation issued against the directory.
type Call struct {
	Op       string
	Ref      directory.Reference
	ObjectID string
}

// TargetSpec seeds a group, application or service principal.
type TargetSpec struct {
	ID                   string
	DisplayName          string
	Resource             directory.Resource
	ServicePrincipalType string
	Members              []string // object IDs
	Owners               []string // object IDs
}

type entry struct {
	spec      TargetSpec
	relations map[directory.Relation][]string
}

// Directory is an in-memory directory. The zero value is not usable; call New.
type Directory struct {
	mu      sync.Mutex
	me      *directory.User
	objects map[string]directory.Object
	order   []string
	targets []*entry
	calls   []Call

	// FailFunc, when set, is consulted before every mutation; a non-nil
	// error is returned to the caller and the mutation is not applied.
	FailFunc func(Call) error
}

var _ directory.Directory = (*Directory)(nil)

// New creates an empty in-memory directory.
func New() *Directory {
	return &Directory{objects: make(map[string]directory.Object)}
}

// SetMe sets the identity returned by Me and registers it as a user.
func (d *Directory) SetMe(u directory.User) {
	d.AddUser(u)
	d.mu.Lock()
	defer d.mu.Unlock()
	d.me = &u
}

// AddUser registers a user object.
func (d *Directory) AddUser(u directory.User) {
	d.AddObject(directory.Object{
		ID:            u.ID,
		Type:          directory.ObjectTypeUser,
		DisplayName:   u.DisplayName,
		PrincipalName: u.PrincipalName,
		Mail:          u.Mail,
	})
}

// AddObject registers any directory object.
func (d *Directory) AddObject(o directory.Object) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, exists := d.objects[o.ID]; !exists {
		d.order = append(d.order, o.ID)
	}
	d.objects[o.ID] = o
}

// AddTarget registers a target resource with its initial relations.
func (d *Directory) AddTarget(spec TargetSpec) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.targets = append(d.targets, &entry{
		spec: spec,
		relations: map[directory.Relation][]string{
			directory.RelationMembers: slices.Clone(spec.Members),
			directory.RelationOwners:  slices.Clone(spec.Owners),
		},
	})
}

// Relation returns the object IDs currently held by a relation.
func (d *Directory) Relation(ref directory.Reference) []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	e := d.lookup(ref)
	if e == nil {
		return nil
	}
	return slices.Clone(e.relations[ref.Relation])
}

// Calls returns the mutations issued so far, in order.
func (d *Directory) Calls() []Call {
	d.mu.Lock()
	defer d.mu.Unlock()
	return slices.Clone(d.calls)
}

// ResetCalls clears the recorded mutations.
func (d *Directory) ResetCalls() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls = nil
}

// Me implements directory.Directory.
func (d *Directory) Me(_ context.Context) (*directory.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.me == nil {
		return nil, errors.NewCredentialUnavailableError("memory", "no identity configured", nil)
	}
	me := *d.me
	return &me, nil
}

// FindUsers implements directory.Directory.
func (d *Directory) FindUsers(_ context.Context, principalName string) ([]directory.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	var users []directory.User
	for _, id := range d.order {
		if u, ok := d.objects[id].User(); ok && u.PrincipalName == principalName {
			users = append(users, u)
		}
	}
	return users, nil
}

// FindTargets implements directory.Directory.
func (d *Directory) FindTargets(_ context.Context, resource directory.Resource, displayName string, relation directory.Relation) ([]directory.Target, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	var targets []directory.Target
	for _, e := range d.targets {
		if e.spec.Resource != resource || e.spec.DisplayName != displayName {
			continue
		}
		t := directory.Target{
			ID:                   e.spec.ID,
			DisplayName:          e.spec.DisplayName,
			Resource:             e.spec.Resource,
			ServicePrincipalType: e.spec.ServicePrincipalType,
		}
		for _, id := range e.relations[relation] {
			if o, ok := d.objects[id]; ok {
				t.Objects = append(t.Objects, o)
			}
		}
		targets = append(targets, t)
	}
	return targets, nil
}

// AddReference implements directory.Directory.
func (d *Directory) AddReference(_ context.Context, ref directory.Reference, objectID string) error {
	return d.mutate(Call{Op: OpAdd, Ref: ref, ObjectID: objectID})
}

// RemoveReference implements directory.Directory.
func (d *Directory) RemoveReference(_ context.Context, ref directory.Reference, objectID string) error {
	return d.mutate(Call{Op: OpRemove, Ref: ref, ObjectID: objectID})
}

func (d *Directory) mutate(call Call) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls = append(d.calls, call)

	if d.FailFunc != nil {
		if err := d.FailFunc(call); err != nil {
			return err
		}
	}

	e := d.lookup(call.Ref)
	if e == nil {
		return errors.NewNotFoundError(string(call.Ref.Resource), call.Ref.TargetID)
	}

	ids := e.relations[call.Ref.Relation]
	idx := slices.Index(ids, call.ObjectID)
	switch call.Op {
	case OpAdd:
		if idx >= 0 {
			return errors.ErrReferenceExists
		}
		e.relations[call.Ref.Relation] = append(ids, call.ObjectID)
	case OpRemove:
		if idx < 0 {
			return errors.ErrReferenceNotFound
		}
		e.relations[call.Ref.Relation] = slices.Delete(ids, idx, idx+1)
	}
	return nil
}

func (d *Directory) lookup(ref directory.Reference) *entry {
	for _, e := range d.targets {
		if e.spec.Resource == ref.Resource && e.spec.ID == ref.TargetID {
			return e
		}
	}
	return nil
}
