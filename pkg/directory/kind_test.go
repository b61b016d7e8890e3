package directory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/aadsync/pkg/errors"
)

func TestParseTargetKind(t *testing.T) {
	tests := []struct {
		input    string
		expected TargetKind
	}{
		{"app_registration", KindAppRegistration},
		{"AppRegistration", KindAppRegistration},
		{"enterprise_app", KindEnterpriseApp},
		{"ENTERPRISE_APP", KindEnterpriseApp},
		{"group_members", KindGroupMembers},
		{"group_owners", KindGroupOwners},
		{"g_r_o_u_p_owners", KindGroupOwners},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			kind, err := ParseTargetKind(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, kind)
		})
	}
}

func TestParseTargetKind_Unknown(t *testing.T) {
	for _, input := range []string{"", "owners", "unknown", "group-members"} {
		t.Run(input, func(t *testing.T) {
			kind, err := ParseTargetKind(input)
			require.Error(t, err)
			assert.Equal(t, KindUnknown, kind)
			assert.True(t, errors.IsValidationError(err))
		})
	}
}

func TestTargetKind_ResourceAndRelation(t *testing.T) {
	tests := []struct {
		kind     TargetKind
		resource Resource
		relation Relation
	}{
		{KindAppRegistration, ResourceApplications, RelationOwners},
		{KindEnterpriseApp, ResourceServicePrincipals, RelationOwners},
		{KindGroupMembers, ResourceGroups, RelationMembers},
		{KindGroupOwners, ResourceGroups, RelationOwners},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			assert.Equal(t, tt.resource, tt.kind.Resource())
			assert.Equal(t, tt.relation, tt.kind.Relation())
		})
	}
}

func TestUsers_FiltersNonUserObjects(t *testing.T) {
	objects := []Object{
		{ID: "1", Type: ObjectTypeUser, PrincipalName: "bob@x.com", Mail: "bob@x.com"},
		{ID: "2", Type: ObjectTypeGroup, DisplayName: "Nested"},
		{ID: "3", Type: ObjectTypeServicePrincipal, DisplayName: "ci-identity"},
		{ID: "4", Type: ObjectTypeUser, PrincipalName: "guest@x.com"},
	}

	users := Users(objects)
	require.Len(t, users, 2)
	assert.Equal(t, "bob@x.com", users[0].PrincipalName)
	assert.True(t, users[0].HasMail())
	assert.Equal(t, "guest@x.com", users[1].PrincipalName)
	assert.False(t, users[1].HasMail())

	target := Target{Objects: objects}
	assert.Equal(t, users, target.Users())
}
