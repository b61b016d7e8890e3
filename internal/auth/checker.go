package auth

import (
	"context"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"

	"github.com/agentstation/aadsync/internal/auth/azcli"
)

// Checker checks the ambient credential.
type Checker struct {
	tenantID   string
	scope      string
	credential azcore.TokenCredential
	inspect    func(tenantID string) *azcli.Details
}

// NewChecker creates a checker. credential may be nil, in which case only
// local checks are performed.
func NewChecker(tenantID, scope string, credential azcore.TokenCredential) *Checker {
	return &Checker{
		tenantID:   tenantID,
		scope:      scope,
		credential: credential,
		inspect:    azcli.BuildDetails,
	}
}

// Check inspects the local Azure CLI login. When verify is set and a
// credential is present, a token is also requested for the directory scope.
func (c *Checker) Check(ctx context.Context, verify bool) *Status {
	details := c.inspect(c.tenantID)

	status := &Status{
		State:   mapState(details.State),
		Summary: azcli.FormatBrief(details),
		CLI:     details,
	}
	if !verify || c.credential == nil || status.State == StateMissing {
		return status
	}

	token, err := c.credential.GetToken(ctx, policy.TokenRequestOptions{Scopes: []string{c.scope}})
	if err != nil {
		status.State = StateInvalid
		status.Summary = ClassifyTokenError(CLICredentialName, err).Error()
		return status
	}

	status.State = StateConfigured
	status.Token = &TokenDetails{Scope: c.scope, ExpiresOn: token.ExpiresOn}
	return status
}

func mapState(s azcli.State) State {
	switch s {
	case azcli.StateConfigured:
		return StateConfigured
	case azcli.StateMissing:
		return StateMissing
	default:
		return StateInvalid
	}
}
