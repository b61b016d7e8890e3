package app

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/agentstation/aadsync/cmd/aadsync/cmd/auth"
)

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	rootCmd.AddCommand(auth.NewCommand(a))
	rootCmd.AddCommand(a.NewVersionCommand())
}

// NewVersionCommand creates the version command.
func (a *App) NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "aadsync %s\n", a.version)
			if a.config.Verbose {
				fmt.Fprintf(w, "  commit:   %s\n", a.commit)
				fmt.Fprintf(w, "  built:    %s\n", a.date)
				fmt.Fprintf(w, "  built by: %s\n", a.builtBy)
				fmt.Fprintf(w, "  go:       %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
			}
		},
	}
}
