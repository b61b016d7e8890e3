// Package reconcile provides the add/sync command that reconciles a target
// relation against a source specification.
package reconcile

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/aadsync/internal/cmd/application"
	"github.com/agentstation/aadsync/internal/cmd/output"
	"github.com/agentstation/aadsync/pkg/constants"
	"github.com/agentstation/aadsync/pkg/directory"
	"github.com/agentstation/aadsync/pkg/errors"
	"github.com/agentstation/aadsync/pkg/logging"
	"github.com/agentstation/aadsync/pkg/reconciler"
)

const positionalArgs = 4

// NewCommand creates the reconcile command using app context.
func NewCommand(app application.Application) *cobra.Command {
	var removeNoEmail bool

	cmd := &cobra.Command{
		Use:   "aadsync <add|sync> <source_spec> <target_name> <target_kind>",
		Short: "Reconcile Azure AD group membership and application ownership",
		Long: `Reconcile the members or owners of one Azure AD object against a list
of users and groups.

  add   adds every source user missing from the target
  sync  also removes target users that are not in the source

source_spec is a ";"-separated list of user principal names (anything with an
"@") and group display names, whose user members are included.

target_kind selects what is reconciled:
  GroupMembers     members of the group named target_name
  GroupOwners      owners of the group named target_name
  AppRegistration  owners of the app registration named target_name
  EnterpriseApp    owners of the enterprise application named target_name

The signed-in identity is never removed from the target.`,
		Example: `  aadsync add "alice@contoso.com;Platform Team" Admins GroupMembers
  aadsync sync "Platform Team" Billing EnterpriseApp --remove-no-email
  aadsync sync bob@contoso.com "Deploy Bot" AppRegistration -o json`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, app, removeNoEmail)
		},
	}

	cmd.Flags().BoolVar(&removeNoEmail, constants.RemoveNoEmailFlag, false,
		"remove target users without an email address (never the signed-in identity)")

	return cmd
}

func run(cmd *cobra.Command, args []string, app application.Application, removeNoEmail bool) error {
	if len(args) < positionalArgs {
		return cmd.Help()
	}
	if len(args) > positionalArgs {
		return errors.NewValidationError("args", args,
			fmt.Sprintf("expected %d positional arguments, got %d", positionalArgs, len(args)))
	}

	kind, err := directory.ParseTargetKind(args[3])
	if err != nil {
		return err
	}

	format, err := output.ParseFormat(app.OutputFormat())
	if err != nil {
		return errors.NewValidationError("format", app.OutputFormat(), err.Error())
	}
	format = output.DetectFormat(string(format))

	ctx := logging.WithLogger(cmd.Context(), app.Logger())

	dir, err := app.Directory(ctx)
	if err != nil {
		return err
	}

	opts := append(app.ReconcilerOptions(),
		reconciler.WithMode(reconciler.ParseMode(args[0])),
		reconciler.WithRemoveNoEmail(removeNoEmail),
	)
	r, err := reconciler.New(dir, opts...)
	if err != nil {
		return err
	}

	result, runErr := r.Run(ctx, reconciler.Request{
		Sources:    args[1],
		TargetName: args[2],
		Kind:       kind,
	})

	// A failed mutation still reports what was applied before it
	if result != nil {
		if err := output.Result(cmd.OutOrStdout(), result, format); err != nil && runErr == nil {
			return err
		}
	}
	return runErr
}
