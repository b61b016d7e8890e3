package directory

import (
	"strings"

	"github.com/agentstation/aadsync/pkg/errors"
)

// Resource is a directory collection that can be searched by display name.
type Resource string

// Resources.
const (
	ResourceGroups            Resource = "groups"
	ResourceApplications      Resource = "applications"
	ResourceServicePrincipals Resource = "servicePrincipals"
)

// Relation is the reference collection on a resource being reconciled.
type Relation string

// Relations.
const (
	RelationMembers Relation = "members"
	RelationOwners  Relation = "owners"
)

// TargetKind selects which relation on which resource type is reconciled.
type TargetKind int

// Target kinds.
const (
	KindUnknown TargetKind = iota
	KindAppRegistration
	KindEnterpriseApp
	KindGroupMembers
	KindGroupOwners
)

var kindNames = map[TargetKind]string{
	KindAppRegistration: "AppRegistration",
	KindEnterpriseApp:   "EnterpriseApp",
	KindGroupMembers:    "GroupMembers",
	KindGroupOwners:     "GroupOwners",
}

// Kinds lists the valid target kinds in declaration order.
func Kinds() []TargetKind {
	return []TargetKind{KindAppRegistration, KindEnterpriseApp, KindGroupMembers, KindGroupOwners}
}

// String implements fmt.Stringer.
func (k TargetKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Resource returns the resource type looked up for the kind.
func (k TargetKind) Resource() Resource {
	switch k {
	case KindAppRegistration:
		return ResourceApplications
	case KindEnterpriseApp:
		return ResourceServicePrincipals
	default:
		return ResourceGroups
	}
}

// Relation returns the relation read and mutated for the kind.
// Only GroupMembers works on members; every other kind works on owners.
func (k TargetKind) Relation() Relation {
	if k == KindGroupMembers {
		return RelationMembers
	}
	return RelationOwners
}

// ParseTargetKind matches s against the kind names, ignoring case and
// underscores, so "group_members" and "GroupMembers" are equivalent.
func ParseTargetKind(s string) (TargetKind, error) {
	normalized := strings.ReplaceAll(s, "_", "")
	for _, k := range Kinds() {
		if strings.EqualFold(k.String(), normalized) {
			return k, nil
		}
	}
	return KindUnknown, &errors.UnknownTargetKindError{Value: s}
}
