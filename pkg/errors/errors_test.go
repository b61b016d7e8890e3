package errors_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/agentstation/aadsync/pkg/errors"
)

func TestNew(t *testing.T) {
	err := pkgerrors.New("test error")
	assert.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())
}

func TestNotFoundError(t *testing.T) {
	t.Run("basic error", func(t *testing.T) {
		err := &pkgerrors.NotFoundError{Resource: "group", Name: "TeamB"}
		assert.Equal(t, "group with name TeamB not found", err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrNotFound))
	})

	t.Run("wrapped error", func(t *testing.T) {
		base := pkgerrors.NewNotFoundError("user", "alice@x.com")
		wrapped := fmt.Errorf("resolve sources: %w", base)
		assert.True(t, pkgerrors.IsNotFound(wrapped))
		assert.False(t, pkgerrors.IsAmbiguous(wrapped))
	})
}

func TestAmbiguousMatchError(t *testing.T) {
	err := pkgerrors.NewAmbiguousMatchError("GroupMembers", "Admins", 2)
	assert.Contains(t, err.Error(), "Admins")
	assert.Contains(t, err.Error(), "2 matches")
	assert.True(t, pkgerrors.IsAmbiguous(err))
	assert.False(t, pkgerrors.IsNotFound(err))
}

func TestUnknownTargetKindError(t *testing.T) {
	err := &pkgerrors.UnknownTargetKindError{Value: "owners"}
	assert.Equal(t, "Unknown target type: owners", err.Error())
	assert.True(t, pkgerrors.IsValidationError(err))
}

func TestCredentialUnavailableError(t *testing.T) {
	reason := errors.New("Azure CLI not found on path")
	err := pkgerrors.NewCredentialUnavailableError("AzureCLICredential", "no token", reason)

	assert.True(t, pkgerrors.IsCredentialUnavailable(err))
	assert.ErrorIs(t, err, reason)
	assert.Contains(t, err.Error(), "no token")
	assert.Contains(t, err.Error(), "Azure CLI not found on path")

	wrapped := fmt.Errorf("resolve identity: %w", err)
	var target *pkgerrors.CredentialUnavailableError
	require.ErrorAs(t, wrapped, &target)
	assert.Equal(t, "AzureCLICredential", target.Credential)
}

func TestAPIError(t *testing.T) {
	t.Run("with code", func(t *testing.T) {
		err := &pkgerrors.APIError{
			Service:    "graph",
			StatusCode: 404,
			Code:       "Request_ResourceNotFound",
			Message:    "does not exist",
		}
		assert.Contains(t, err.Error(), "404")
		assert.Contains(t, err.Error(), "Request_ResourceNotFound")
	})

	t.Run("server error is unavailable", func(t *testing.T) {
		err := pkgerrors.NewAPIError("graph", 503, "busy")
		assert.True(t, errors.Is(err, pkgerrors.ErrDirectoryUnavailable))
	})

	t.Run("unauthorized", func(t *testing.T) {
		err := pkgerrors.NewAPIError("graph", 401, "expired")
		assert.True(t, errors.Is(err, pkgerrors.ErrAuthenticationFailed))
	})
}

func TestMutationError(t *testing.T) {
	err := pkgerrors.NewMutationError("remove", "Admins", "members", "dave@x.com", pkgerrors.ErrReferenceNotFound)
	assert.Equal(t, "failed to remove dave@x.com in Admins members: reference not found", err.Error())
	assert.True(t, pkgerrors.IsBenignMutation(err))

	fatal := pkgerrors.NewMutationError("add", "Admins", "members", "x", pkgerrors.NewAPIError("graph", 403, "denied"))
	assert.False(t, pkgerrors.IsBenignMutation(fatal))
}

func TestWrapResource(t *testing.T) {
	assert.Nil(t, pkgerrors.WrapResource("read", "config", "", nil))

	err := pkgerrors.WrapResource("decode", "response", "GET /me", errors.New("bad json"))
	assert.Equal(t, "failed to decode response GET /me: bad json", err.Error())
}
