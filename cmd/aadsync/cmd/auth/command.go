// Package auth provides credential inspection commands.
package auth

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/aadsync/internal/cmd/application"
)

// NewCommand creates the auth command using app context.
func NewCommand(app application.Application) *cobra.Command {
	status := NewStatusCommand(app)

	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Inspect the ambient Azure credential",
		Long: `Check whether aadsync can authenticate to Microsoft Graph.

Commands:
  status - Show the Azure CLI login used for directory calls

Examples:
  aadsync auth                  # Show credential status
  aadsync auth status --verify  # Also request a Graph token`,
		Args: cobra.NoArgs,
		RunE: status.RunE,
	}
	cmd.Flags().AddFlagSet(status.Flags())
	cmd.AddCommand(status)

	return cmd
}
