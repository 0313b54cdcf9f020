package commands

import (
	"github.com/epeers/warehouse/internal/report"
	"github.com/spf13/cobra"
)

func calcCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "calc",
		Short: "Compute one month of income, expenses and profit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, flush := warningContext(cmd)
			defer flush()

			resp, err := opts.calcSvc.Calculate(ctx, opts.params)
			if err != nil {
				return err
			}
			if opts.output == outputCSV {
				return report.WriteCalculationCSV(cmd.OutOrStdout(), resp)
			}
			return printJSON(cmd.OutOrStdout(), resp)
		},
	}
}
