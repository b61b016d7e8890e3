package reconciler_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/agentstation/aadsync/internal/directory/memory"
	"github.com/agentstation/aadsync/pkg/directory"
	"github.com/agentstation/aadsync/pkg/reconciler"
)

// newUser creates a test user named name@x.com. Passing an empty mail
// leaves the user without an email address.
func newUser(name, mail string) directory.User {
	return directory.User{
		ID:            "id-" + name,
		PrincipalName: name + "@x.com",
		DisplayName:   name,
		Mail:          mail,
	}
}

func ids(users ...directory.User) []string {
	out := make([]string, len(users))
	for i, u := range users {
		out[i] = u.ID
	}
	return out
}

// newDirectory creates a directory acting as me with the given users registered.
func newDirectory(me directory.User, users ...directory.User) *memory.Directory {
	dir := memory.New()
	dir.SetMe(me)
	for _, u := range users {
		dir.AddUser(u)
	}
	return dir
}

func run(t *testing.T, dir *memory.Directory, req reconciler.Request, opts ...reconciler.Option) *reconciler.Result {
	t.Helper()
	r, err := reconciler.New(dir, opts...)
	require.NoError(t, err)
	result, err := r.Run(context.Background(), req)
	require.NoError(t, err)
	return result
}

// removedIDs returns the object IDs passed to RemoveReference.
func removedIDs(dir *memory.Directory) []string {
	var out []string
	for _, c := range dir.Calls() {
		if c.Op == memory.OpRemove {
			out = append(out, c.ObjectID)
		}
	}
	return out
}

// addedIDs returns the object IDs passed to AddReference.
func addedIDs(dir *memory.Directory) []string {
	var out []string
	for _, c := range dir.Calls() {
		if c.Op == memory.OpAdd {
			out = append(out, c.ObjectID)
		}
	}
	return out
}
