package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nwgo/networth-projector/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "networth",
		Short:   "Multi-year household net worth projection",
		Long:    "networth simulates a household plan year by year: income growth, taxes, loan amortization, priority-bucket savings, and account growth.",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newProjectCommand())
	rootCmd.AddCommand(newValidateCommand())
	rootCmd.AddCommand(newExampleCommand())
	rootCmd.AddCommand(newServeCommand())

	return rootCmd
}
