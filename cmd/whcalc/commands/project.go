package commands

import (
	"github.com/epeers/warehouse/internal/report"
	"github.com/spf13/cobra"
)

func projectCmd(opts *options) *cobra.Command {
	var horizon int

	cmd := &cobra.Command{
		Use:   "project",
		Short: "Project profit month by month over the time horizon",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, flush := warningContext(cmd)
			defer flush()

			p := opts.params
			if cmd.Flags().Changed("months") {
				p.TimeHorizon = horizon
			}
			resp, err := opts.calcSvc.Project(ctx, p)
			if err != nil {
				return err
			}
			if opts.output == outputCSV {
				return report.WriteProjectionCSV(cmd.OutOrStdout(), resp.Months)
			}
			return printJSON(cmd.OutOrStdout(), resp)
		},
	}

	cmd.Flags().IntVarP(&horizon, "months", "m", 0, "override the scenario's time_horizon")
	return cmd
}
