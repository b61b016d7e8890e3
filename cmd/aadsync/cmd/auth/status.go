package auth

import (
	"github.com/spf13/cobra"

	internalauth "github.com/agentstation/aadsync/internal/auth"
	"github.com/agentstation/aadsync/internal/cmd/application"
	"github.com/agentstation/aadsync/internal/cmd/output"
	"github.com/agentstation/aadsync/pkg/errors"
)

// NewStatusCommand creates the auth status subcommand using app context.
func NewStatusCommand(app application.Application) *cobra.Command {
	var verify bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the ambient credential status",
		Long: `Display whether an Azure CLI login is available.

Without --verify only the local Azure CLI installation and profile are
inspected. With --verify a Microsoft Graph token is requested, which proves
the login is still valid.

Exits non-zero unless the credential is configured.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runStatus(cmd, app, verify)
		},
	}
	cmd.Flags().BoolVar(&verify, "verify", false, "request a token to prove the credential works")

	return cmd
}

func runStatus(cmd *cobra.Command, app application.Application, verify bool) error {
	format, err := output.ParseFormat(app.OutputFormat())
	if err != nil {
		return errors.NewValidationError("format", app.OutputFormat(), err.Error())
	}
	format = output.DetectFormat(string(format))

	status, err := app.CredentialStatus(cmd.Context(), verify)
	if err != nil {
		return err
	}

	if err := output.Status(cmd.OutOrStdout(), status, format); err != nil {
		return err
	}

	if status.State != internalauth.StateConfigured {
		return errors.NewCredentialUnavailableError(internalauth.CLICredentialName, status.Summary, nil)
	}
	return nil
}
