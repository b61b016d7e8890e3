package reconciler

import (
	"fmt"

	"github.com/agentstation/aadsync/pkg/directory"
)

// ChangeType is the outcome recorded for one user in one pass.
type ChangeType string

// Change types.
const (
	ChangeAdd    ChangeType = "add"
	ChangeRemove ChangeType = "remove"
	ChangeSkip   ChangeType = "skip"
)

// Pass identifies the reconciliation pass that produced a change.
type Pass string

// Passes, in execution order.
const (
	PassRemoval  Pass = "removal"
	PassNoEmail  Pass = "no-email"
	PassAddition Pass = "addition"
)

// Skip reasons.
const (
	ReasonSelf            = "current identity"
	ReasonAlreadyMember   = "already a member"
	ReasonAlreadyRemoved  = "already removed"
	ReasonNoEmail         = "no email address"
	ReasonReferenceExists = "reference already exists"
	ReasonReferenceAbsent = "reference not found"
)

// Change is one add, remove or skip decision.
type Change struct {
	Type   ChangeType     `json:"type" yaml:"type"`
	Pass   Pass           `json:"pass" yaml:"pass"`
	User   directory.User `json:"user" yaml:"user"`
	Reason string         `json:"reason,omitempty" yaml:"reason,omitempty"`
}

// Result is the outcome of one reconciliation run.
type Result struct {
	Target        string           `json:"target" yaml:"target"`
	TargetID      string           `json:"targetId" yaml:"targetId"`
	Kind          string           `json:"kind" yaml:"kind"`
	Resource      string           `json:"resource" yaml:"resource"`
	Relation      string           `json:"relation" yaml:"relation"`
	Mode          Mode             `json:"mode" yaml:"mode"`
	RemoveNoEmail bool             `json:"removeNoEmail" yaml:"removeNoEmail"`
	Me            string           `json:"me" yaml:"me"`
	Sources       []directory.User `json:"sources" yaml:"sources"`
	Changes       []Change         `json:"changes" yaml:"changes"`
}

func newResult(me directory.User, target *ResolvedTarget, opts *options, sources []directory.User) *Result {
	ref := target.Reference()
	return &Result{
		Target:        target.DisplayName,
		TargetID:      target.ID,
		Kind:          target.Kind.String(),
		Resource:      string(ref.Resource),
		Relation:      string(ref.Relation),
		Mode:          opts.mode,
		RemoveNoEmail: opts.removeNoEmail,
		Me:            me.PrincipalName,
		Sources:       sources,
		Changes:       []Change{},
	}
}

func (r *Result) record(c Change) {
	r.Changes = append(r.Changes, c)
}

func (r *Result) filter(t ChangeType) []Change {
	var out []Change
	for _, c := range r.Changes {
		if c.Type == t {
			out = append(out, c)
		}
	}
	return out
}

// Added returns the users added to the target.
func (r *Result) Added() []Change { return r.filter(ChangeAdd) }

// Removed returns the users removed from the target.
func (r *Result) Removed() []Change { return r.filter(ChangeRemove) }

// Skipped returns the decisions that left the target unchanged.
func (r *Result) Skipped() []Change { return r.filter(ChangeSkip) }

// HasChanges returns true if any reference was added or removed.
func (r *Result) HasChanges() bool {
	for _, c := range r.Changes {
		if c.Type != ChangeSkip {
			return true
		}
	}
	return false
}

// Summary returns a human-readable summary of the run.
func (r *Result) Summary() string {
	if !r.HasChanges() {
		return fmt.Sprintf("%s %s: No changes", r.Target, r.Relation)
	}
	return fmt.Sprintf("%s %s: %d added, %d removed, %d skipped",
		r.Target, r.Relation, len(r.Added()), len(r.Removed()), len(r.Skipped()))
}
