package app

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentstation/aadsync/cmd/aadsync/cmd/reconcile"
)

// Execute runs the aadsync CLI application with the given arguments.
// This is the main entry point called from main.go.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

// createRootCommand creates the root cobra command with all subcommands.
// The root command is the reconcile command itself; auth and version are
// matched first, so a mode argument cannot be named after them.
func (a *App) createRootCommand() *cobra.Command {
	rootCmd := reconcile.NewCommand(a)
	rootCmd.Version = a.version
	rootCmd.PersistentPreRunE = a.setupCommand
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true

	rootCmd.PersistentFlags().StringVar(&a.config.ConfigFile, "config", "", "config file (default is $HOME/.aadsync.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&a.config.Verbose, "verbose", "v", false, "verbose output (shortcut for --log-level=debug)")
	rootCmd.PersistentFlags().BoolVarP(&a.config.Quiet, "quiet", "q", false, "minimal output (shortcut for --log-level=warn)")
	rootCmd.PersistentFlags().BoolVar(&a.config.NoColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().StringVarP(&a.config.Format, "format", "o", a.config.Format, "output format: table, json, yaml")
	rootCmd.PersistentFlags().StringVar(&a.config.LogLevel, "log-level", "", "log level: trace, debug, info, warn, error (overrides -v/-q)")
	rootCmd.PersistentFlags().StringVar(&a.config.TenantID, "tenant-id", a.config.TenantID, "Azure AD tenant to authenticate against")

	rootCmd.SetVersionTemplate("aadsync {{.Version}}\n")

	a.registerCommands(rootCmd)

	return rootCmd
}

// setupCommand is called before any command runs.
func (a *App) setupCommand(cmd *cobra.Command, _ []string) error {
	verbose := mustGetBool(cmd, "verbose")
	quiet := mustGetBool(cmd, "quiet")
	noColor := mustGetBool(cmd, "no-color")
	format := mustGetString(cmd, "format")
	logLevel := mustGetString(cmd, "log-level")
	tenantID := mustGetString(cmd, "tenant-id")

	if cmd.Flags().Changed("config") {
		config, err := LoadConfig(mustGetString(cmd, "config"))
		if err != nil {
			return err
		}
		a.config = config
	}

	a.config.UpdateFromFlags(verbose, quiet, noColor, format, logLevel, tenantID)

	// Reinitialize logger with updated config
	logger := NewLogger(a.config)
	a.logger = &logger

	return nil
}

// ExitOnError is a helper that prints an error and exits with status 1.
// Every failure maps to the same exit status.
func ExitOnError(err error) {
	if err != nil {
		//nolint:errcheck // Ignoring write error since we're exiting anyway
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}

// mustGetBool retrieves a boolean flag value or panics if the flag doesn't exist.
// This should only be used for flags defined in this package.
func mustGetBool(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}

// mustGetString retrieves a string flag value or panics if the flag doesn't exist.
// This should only be used for flags defined in this package.
func mustGetString(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}
