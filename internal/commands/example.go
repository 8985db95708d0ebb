package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nwgo/networth-projector/internal/config"
)

func newExampleCommand() *cobra.Command {
	var outFile string

	cmd := &cobra.Command{
		Use:   "example",
		Short: "Write a fully-populated example plan",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			plan := config.CreateExamplePlan()
			if err := config.SavePlan(plan, outFile); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", outFile)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outFile, "output", "o", "plan.yaml", "path for the generated plan")
	return cmd
}
