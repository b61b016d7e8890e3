package transport

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"

	"github.com/agentstation/aadsync/internal/auth"
	"github.com/agentstation/aadsync/pkg/constants"
)

// Authenticator applies authentication to HTTP requests.
type Authenticator interface {
	Apply(ctx context.Context, req *http.Request) error
}

// NoAuth implements no authentication.
type NoAuth struct{}

// Apply implements the Authenticator interface for NoAuth.
func (a *NoAuth) Apply(_ context.Context, _ *http.Request) error {
	return nil
}

// BearerAuth implements static Bearer token authentication.
type BearerAuth struct {
	Token string
}

// Apply implements the Authenticator interface for BearerAuth.
func (a *BearerAuth) Apply(_ context.Context, req *http.Request) error {
	req.Header.Set("Authorization", "Bearer "+a.Token)
	return nil
}

// TokenAuth implements Bearer authentication with tokens from an azcore
// credential. A token is reused until it is within the refresh margin of
// its expiry.
type TokenAuth struct {
	credential azcore.TokenCredential
	name       string
	scopes     []string
	margin     time.Duration
	now        func() time.Time

	mu    sync.Mutex
	token azcore.AccessToken
}

// NewTokenAuth creates a TokenAuth. name identifies the credential in errors.
func NewTokenAuth(credential azcore.TokenCredential, name string, scopes ...string) *TokenAuth {
	return &TokenAuth{
		credential: credential,
		name:       name,
		scopes:     scopes,
		margin:     constants.TokenRefreshMargin,
		now:        time.Now,
	}
}

// Token returns a valid access token, requesting a new one when needed.
func (a *TokenAuth) Token(ctx context.Context) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.token.Token != "" && a.now().Add(a.margin).Before(a.token.ExpiresOn) {
		return a.token.Token, nil
	}

	token, err := a.credential.GetToken(ctx, policy.TokenRequestOptions{Scopes: a.scopes})
	if err != nil {
		return "", auth.ClassifyTokenError(a.name, err)
	}
	a.token = token
	return token.Token, nil
}

// Apply implements the Authenticator interface for TokenAuth.
func (a *TokenAuth) Apply(ctx context.Context, req *http.Request) error {
	token, err := a.Token(ctx)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	return nil
}
