package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nwgo/networth-projector/internal/config"
)

func newValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <plan.yaml>",
		Short: "Check a plan file without running a projection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parser := config.NewInputParser()
			plan, err := parser.LoadFromFile(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(),
				"%s: ok (%d accounts, %d incomes, %d expenses, %d buckets, horizon %d)\n",
				args[0], len(plan.Accounts), len(plan.Incomes), len(plan.Expenses),
				len(plan.Buckets), plan.Horizon)
			return nil
		},
	}
}
