package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"

	pkgerrors "github.com/agentstation/aadsync/pkg/errors"
)

// CLICredentialName names the Azure CLI credential in errors.
const CLICredentialName = "AzureCLICredential"

// NewCLICredential creates a credential that obtains tokens from the
// signed-in Azure CLI. An empty tenantID uses the CLI's default tenant.
func NewCLICredential(tenantID string) (azcore.TokenCredential, error) {
	cred, err := azidentity.NewAzureCLICredential(&azidentity.AzureCLICredentialOptions{
		TenantID: tenantID,
	})
	if err != nil {
		return nil, pkgerrors.NewCredentialUnavailableError(CLICredentialName, "failed to create credential", err)
	}
	return cred, nil
}

// ClassifyTokenError maps a token acquisition failure onto the error
// taxonomy. A rejection by the identity provider is an AuthenticationError;
// any other failure means no credential was usable.
func ClassifyTokenError(credential string, err error) error {
	if err == nil {
		return nil
	}

	var unavailable *pkgerrors.CredentialUnavailableError
	var rejected *pkgerrors.AuthenticationError
	if errors.As(err, &unavailable) || errors.As(err, &rejected) {
		return err
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", pkgerrors.ErrCanceled, err)
	}

	var authFailed *azidentity.AuthenticationFailedError
	if errors.As(err, &authFailed) {
		return pkgerrors.NewAuthenticationError(credential, "the identity provider rejected the credential", err)
	}

	return pkgerrors.NewCredentialUnavailableError(credential, "failed to acquire a token", err)
}
