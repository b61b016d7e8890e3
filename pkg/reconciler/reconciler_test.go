package reconciler_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/aadsync/internal/directory/memory"
	"github.com/agentstation/aadsync/pkg/directory"
	"github.com/agentstation/aadsync/pkg/errors"
	"github.com/agentstation/aadsync/pkg/logging"
	"github.com/agentstation/aadsync/pkg/reconciler"
)

var (
	admin = newUser("admin", "admin@x.com")
	alice = newUser("alice", "alice@x.com")
	bob   = newUser("bob", "bob@x.com")
	carol = newUser("carol", "carol@x.com")
	dave  = newUser("dave", "dave@x.com")
)

func TestParseMode(t *testing.T) {
	tests := map[string]reconciler.Mode{
		"sync":  reconciler.ModeSync,
		"SYNC":  reconciler.ModeSync,
		"Sync":  reconciler.ModeSync,
		"add":   reconciler.ModeAdd,
		"merge": reconciler.ModeAdd,
		"":      reconciler.ModeAdd,
	}
	for input, expected := range tests {
		t.Run(input, func(t *testing.T) {
			assert.Equal(t, expected, reconciler.ParseMode(input))
		})
	}
}

func TestNew_Validation(t *testing.T) {
	_, err := reconciler.New(nil)
	assert.True(t, errors.IsValidationError(err))

	_, err = reconciler.New(memory.New(), reconciler.WithMode("replace"))
	assert.True(t, errors.IsValidationError(err))
}

func TestRun_SyncScenario(t *testing.T) {
	dir := newDirectory(admin, alice, bob, carol, dave)
	dir.AddTarget(memory.TargetSpec{ID: "g-teamb", DisplayName: "TeamB", Resource: directory.ResourceGroups, Members: ids(bob, carol)})
	dir.AddTarget(memory.TargetSpec{ID: "g-admins", DisplayName: "Admins", Resource: directory.ResourceGroups, Members: ids(bob, dave)})

	result := run(t, dir, reconciler.Request{
		Sources:    "alice@x.com;TeamB",
		TargetName: "Admins",
		Kind:       directory.KindGroupMembers,
	}, reconciler.WithMode(reconciler.ModeSync))

	ref := directory.Reference{Resource: directory.ResourceGroups, TargetID: "g-admins", Relation: directory.RelationMembers}
	assert.Equal(t, []memory.Call{
		{Op: memory.OpRemove, Ref: ref, ObjectID: dave.ID},
		{Op: memory.OpAdd, Ref: ref, ObjectID: alice.ID},
		{Op: memory.OpAdd, Ref: ref, ObjectID: carol.ID},
	}, dir.Calls())
	assert.ElementsMatch(t, ids(bob, alice, carol), dir.Relation(ref))

	require.Len(t, result.Sources, 3)
	assert.Equal(t, "alice@x.com", result.Sources[0].PrincipalName)
	assert.Len(t, result.Added(), 2)
	assert.Len(t, result.Removed(), 1)
	require.Len(t, result.Skipped(), 1)
	assert.Equal(t, bob.ID, result.Skipped()[0].User.ID)
	assert.Equal(t, reconciler.ReasonAlreadyMember, result.Skipped()[0].Reason)
	assert.True(t, result.HasChanges())
	assert.Equal(t, "Admins members: 2 added, 1 removed, 1 skipped", result.Summary())
}

func TestRun_AddModeNeverRemoves(t *testing.T) {
	dir := newDirectory(admin, alice, dave)
	dir.AddTarget(memory.TargetSpec{ID: "g1", DisplayName: "Admins", Resource: directory.ResourceGroups, Members: ids(dave)})

	result := run(t, dir, reconciler.Request{Sources: "alice@x.com", TargetName: "Admins", Kind: directory.KindGroupMembers})

	assert.Empty(t, removedIDs(dir))
	assert.Equal(t, ids(alice), addedIDs(dir))
	assert.Equal(t, reconciler.ModeAdd, result.Mode)
}

func TestRun_KindDispatch(t *testing.T) {
	tests := []struct {
		kind     directory.TargetKind
		resource directory.Resource
		relation directory.Relation
	}{
		{directory.KindAppRegistration, directory.ResourceApplications, directory.RelationOwners},
		{directory.KindEnterpriseApp, directory.ResourceServicePrincipals, directory.RelationOwners},
		{directory.KindGroupMembers, directory.ResourceGroups, directory.RelationMembers},
		{directory.KindGroupOwners, directory.ResourceGroups, directory.RelationOwners},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			dir := newDirectory(admin, alice, bob, carol)
			// bob is a member, carol is an owner; neither is in the source.
			dir.AddTarget(memory.TargetSpec{
				ID:          "t1",
				DisplayName: "Target",
				Resource:    tt.resource,
				Members:     ids(bob),
				Owners:      ids(carol),
			})

			result := run(t, dir, reconciler.Request{Sources: "alice@x.com", TargetName: "Target", Kind: tt.kind},
				reconciler.WithMode(reconciler.ModeSync))

			require.NotEmpty(t, dir.Calls())
			for _, c := range dir.Calls() {
				assert.Equal(t, tt.resource, c.Ref.Resource)
				assert.Equal(t, tt.relation, c.Ref.Relation)
				assert.Equal(t, "t1", c.Ref.TargetID)
			}

			// The relation that was not reconciled keeps its users.
			members := dir.Relation(directory.Reference{Resource: tt.resource, TargetID: "t1", Relation: directory.RelationMembers})
			owners := dir.Relation(directory.Reference{Resource: tt.resource, TargetID: "t1", Relation: directory.RelationOwners})
			if tt.relation == directory.RelationMembers {
				assert.Equal(t, ids(alice), members)
				assert.Equal(t, ids(carol), owners)
			} else {
				assert.Equal(t, ids(bob), members)
				assert.Equal(t, ids(alice), owners)
			}
			assert.Equal(t, string(tt.relation), result.Relation)
			assert.Equal(t, tt.kind.String(), result.Kind)
		})
	}
}

func TestRun_SelfPreservation(t *testing.T) {
	noMailAdmin := newUser("admin", "")

	for _, mode := range []reconciler.Mode{reconciler.ModeAdd, reconciler.ModeSync} {
		for _, removeNoEmail := range []bool{false, true} {
			for _, me := range []directory.User{admin, noMailAdmin} {
				name := fmt.Sprintf("%s/removeNoEmail=%t/mail=%q", mode, removeNoEmail, me.Mail)
				t.Run(name, func(t *testing.T) {
					nomail := newUser("nomail", "")
					dir := newDirectory(me, alice, dave, nomail)
					dir.AddTarget(memory.TargetSpec{ID: "g1", DisplayName: "Admins", Resource: directory.ResourceGroups, Members: ids(me, dave, nomail)})

					run(t, dir, reconciler.Request{Sources: "alice@x.com", TargetName: "Admins", Kind: directory.KindGroupMembers},
						reconciler.WithMode(mode), reconciler.WithRemoveNoEmail(removeNoEmail))

					assert.NotContains(t, removedIDs(dir), me.ID)
				})
			}
		}
	}
}

func TestRun_RemoveNoEmail(t *testing.T) {
	me := newUser("admin", "")
	nomail := newUser("nomail", "")
	dir := newDirectory(me, alice, dave, nomail)
	dir.AddTarget(memory.TargetSpec{ID: "g1", DisplayName: "Admins", Resource: directory.ResourceGroups, Members: ids(me, dave, nomail)})

	t.Run("additive mode", func(t *testing.T) {
		result := run(t, dir, reconciler.Request{Sources: "alice@x.com", TargetName: "Admins", Kind: directory.KindGroupMembers},
			reconciler.WithRemoveNoEmail(true))

		assert.Equal(t, []string{nomail.ID}, removedIDs(dir))
		require.Len(t, result.Removed(), 1)
		assert.Equal(t, reconciler.PassNoEmail, result.Removed()[0].Pass)
	})

	t.Run("sync removes once", func(t *testing.T) {
		dir := newDirectory(me, alice, dave, nomail)
		dir.AddTarget(memory.TargetSpec{ID: "g1", DisplayName: "Admins", Resource: directory.ResourceGroups, Members: ids(me, dave, nomail)})

		result := run(t, dir, reconciler.Request{Sources: "alice@x.com", TargetName: "Admins", Kind: directory.KindGroupMembers},
			reconciler.WithMode(reconciler.ModeSync), reconciler.WithRemoveNoEmail(true))

		assert.ElementsMatch(t, ids(dave, nomail), removedIDs(dir))

		var alreadyRemoved []string
		for _, c := range result.Skipped() {
			if c.Reason == reconciler.ReasonAlreadyRemoved {
				alreadyRemoved = append(alreadyRemoved, c.User.ID)
			}
		}
		assert.Equal(t, ids(nomail), alreadyRemoved)
	})
}

func TestRun_RemoveNoEmailSourceUserNotAddedBack(t *testing.T) {
	guest := newUser("guest", "")
	relation := directory.Reference{Resource: directory.ResourceGroups, TargetID: "g-t", Relation: directory.RelationMembers}

	for _, mode := range []reconciler.Mode{reconciler.ModeAdd, reconciler.ModeSync} {
		t.Run(string(mode), func(t *testing.T) {
			dir := newDirectory(admin, alice, guest)
			dir.AddTarget(memory.TargetSpec{ID: "g-src", DisplayName: "Src", Resource: directory.ResourceGroups, Members: ids(guest, alice)})
			dir.AddTarget(memory.TargetSpec{ID: "g-t", DisplayName: "T", Resource: directory.ResourceGroups, Members: ids(guest)})

			result := run(t, dir, reconciler.Request{Sources: "Src", TargetName: "T", Kind: directory.KindGroupMembers},
				reconciler.WithMode(mode), reconciler.WithRemoveNoEmail(true))

			assert.Equal(t, ids(guest), removedIDs(dir))
			assert.Equal(t, ids(alice), addedIDs(dir))
			assert.Equal(t, ids(alice), dir.Relation(relation))

			var skipped []reconciler.Change
			for _, c := range result.Skipped() {
				if c.Pass == reconciler.PassAddition {
					skipped = append(skipped, c)
				}
			}
			require.Len(t, skipped, 1)
			assert.Equal(t, guest.ID, skipped[0].User.ID)
			assert.Equal(t, reconciler.ReasonNoEmail, skipped[0].Reason)
			assert.Equal(t, "T members: 1 added, 1 removed, 1 skipped", result.Summary())
		})
	}
}

func TestRun_AdditionIdempotent(t *testing.T) {
	dir := newDirectory(admin, alice, bob, carol)
	dir.AddTarget(memory.TargetSpec{ID: "g-team", DisplayName: "Team", Resource: directory.ResourceGroups, Members: ids(bob, carol)})
	dir.AddTarget(memory.TargetSpec{ID: "a1", DisplayName: "Portal", Resource: directory.ResourceApplications})

	req := reconciler.Request{Sources: "alice@x.com;Team", TargetName: "Portal", Kind: directory.KindAppRegistration}

	first := run(t, dir, req)
	assert.Len(t, first.Added(), 3)

	dir.ResetCalls()
	second := run(t, dir, req)
	assert.Empty(t, addedIDs(dir))
	assert.False(t, second.HasChanges())
	assert.Len(t, second.Skipped(), 3)
}

func TestApply_MatchingKeys(t *testing.T) {
	ctx := context.Background()
	target := func(members ...directory.User) *reconciler.ResolvedTarget {
		return &reconciler.ResolvedTarget{
			Target:  directory.Target{ID: "g1", DisplayName: "Admins", Resource: directory.ResourceGroups},
			Kind:    directory.KindGroupMembers,
			Members: members,
		}
	}

	t.Run("same principal name with changed email is not re-added or removed", func(t *testing.T) {
		stale := directory.User{ID: "id-erin", PrincipalName: "erin@x.com", Mail: "erin.old@x.com"}
		fresh := directory.User{ID: "id-erin", PrincipalName: "erin@x.com", Mail: "erin@x.com"}

		dir := memory.New()
		dir.AddTarget(memory.TargetSpec{ID: "g1", DisplayName: "Admins", Resource: directory.ResourceGroups, Members: ids(stale)})
		r, err := reconciler.New(dir, reconciler.WithMode(reconciler.ModeSync))
		require.NoError(t, err)

		result := &reconciler.Result{}
		require.NoError(t, r.Apply(ctx, admin, []directory.User{fresh}, target(stale), result))
		assert.Empty(t, dir.Calls())
	})

	t.Run("same email with different principal name is already present", func(t *testing.T) {
		old := directory.User{ID: "id-frank-old", PrincipalName: "frank.old@x.com", Mail: "frank@x.com"}
		src := directory.User{ID: "id-frank", PrincipalName: "frank@x.com", Mail: "frank@x.com"}

		dir := memory.New()
		dir.AddTarget(memory.TargetSpec{ID: "g1", DisplayName: "Admins", Resource: directory.ResourceGroups, Members: ids(old)})
		r, err := reconciler.New(dir)
		require.NoError(t, err)

		result := &reconciler.Result{}
		require.NoError(t, r.Apply(ctx, admin, []directory.User{src}, target(old), result))
		assert.Empty(t, dir.Calls())
		require.Len(t, result.Skipped(), 1)
		assert.Equal(t, reconciler.ReasonAlreadyMember, result.Skipped()[0].Reason)
	})

	t.Run("empty email never matches", func(t *testing.T) {
		member := directory.User{ID: "id-g1", PrincipalName: "guest1@x.com"}
		src := directory.User{ID: "id-g2", PrincipalName: "guest2@x.com"}

		dir := memory.New()
		dir.AddTarget(memory.TargetSpec{ID: "g1", DisplayName: "Admins", Resource: directory.ResourceGroups, Members: ids(member)})
		r, err := reconciler.New(dir)
		require.NoError(t, err)

		result := &reconciler.Result{}
		require.NoError(t, r.Apply(ctx, admin, []directory.User{src}, target(member), result))
		assert.Equal(t, []string{"id-g2"}, addedIDs(dir))
	})
}

func TestRun_MutationErrors(t *testing.T) {
	setup := func() *memory.Directory {
		dir := newDirectory(admin, alice, dave)
		dir.AddTarget(memory.TargetSpec{ID: "g1", DisplayName: "Admins", Resource: directory.ResourceGroups, Members: ids(dave)})
		return dir
	}
	req := reconciler.Request{Sources: "alice@x.com", TargetName: "Admins", Kind: directory.KindGroupMembers}

	t.Run("benign is recorded as skip", func(t *testing.T) {
		dir := setup()
		dir.FailFunc = func(memory.Call) error { return errors.ErrReferenceExists }

		result := run(t, dir, req)
		require.Len(t, result.Skipped(), 1)
		assert.Equal(t, reconciler.ReasonReferenceExists, result.Skipped()[0].Reason)
		assert.False(t, result.HasChanges())
	})

	t.Run("benign is fatal when strict", func(t *testing.T) {
		dir := setup()
		dir.FailFunc = func(memory.Call) error { return errors.ErrReferenceExists }

		r, err := reconciler.New(dir, reconciler.WithStrictMutations(true))
		require.NoError(t, err)
		_, err = r.Run(context.Background(), req)
		assert.ErrorIs(t, err, errors.ErrReferenceExists)
	})

	t.Run("other errors abort with partial result", func(t *testing.T) {
		dir := setup()
		dir.FailFunc = func(c memory.Call) error {
			if c.Op == memory.OpAdd {
				return errors.NewAPIError("graph", 403, "Insufficient privileges")
			}
			return nil
		}

		r, err := reconciler.New(dir, reconciler.WithMode(reconciler.ModeSync))
		require.NoError(t, err)
		result, err := r.Run(context.Background(), req)
		require.Error(t, err)

		var merr *errors.MutationError
		require.ErrorAs(t, err, &merr)
		assert.Equal(t, "add", merr.Operation)
		assert.Equal(t, "alice@x.com", merr.User)
		require.NotNil(t, result)
		assert.Len(t, result.Removed(), 1)
	})
}

func TestRun_ValidatesBeforeRemoteCalls(t *testing.T) {
	// No identity is configured, so any remote call would fail with a credential error.
	dir := memory.New()
	r, err := reconciler.New(dir)
	require.NoError(t, err)

	_, err = r.Run(context.Background(), reconciler.Request{Sources: "alice@x.com", TargetName: "Admins"})
	var kindErr *errors.UnknownTargetKindError
	assert.ErrorAs(t, err, &kindErr)

	_, err = r.Run(context.Background(), reconciler.Request{Sources: " ; ", TargetName: "Admins", Kind: directory.KindGroupMembers})
	assert.True(t, errors.IsValidationError(err))

	_, err = r.Run(context.Background(), reconciler.Request{Sources: "alice@x.com", TargetName: "Admins", Kind: directory.KindGroupMembers})
	assert.True(t, errors.IsCredentialUnavailable(err))
}

func TestRun_LogsResolvedSources(t *testing.T) {
	dir := newDirectory(admin, alice)
	dir.AddTarget(memory.TargetSpec{ID: "g1", DisplayName: "Admins", Resource: directory.ResourceGroups})

	logger := logging.NewTestLogger(t)
	ctx := logging.WithLogger(context.Background(), logger.Logger)

	r, err := reconciler.New(dir)
	require.NoError(t, err)
	_, err = r.Run(ctx, reconciler.Request{Sources: "alice@x.com", TargetName: "Admins", Kind: directory.KindGroupMembers})
	require.NoError(t, err)

	logger.AssertContains(t, "Resolved source user")
	logger.AssertContains(t, `"mail":"alice@x.com"`)
	logger.AssertContains(t, `"target":"Admins"`)
	logger.AssertContains(t, "Added user")
}
