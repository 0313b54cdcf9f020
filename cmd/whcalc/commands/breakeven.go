package commands

import (
	"github.com/epeers/warehouse/internal/engine"
	"github.com/epeers/warehouse/internal/models"
	"github.com/epeers/warehouse/internal/report"
	"github.com/spf13/cobra"
)

func breakevenCmd(opts *options) *cobra.Command {
	var (
		targets       []string
		allowNegative bool
		floor         float64
		curvePoints   int
	)

	cmd := &cobra.Command{
		Use:   "breakeven",
		Short: "Solve parameters for zero monthly profit",
		Long: "Solve each --param for the value at which monthly profit is zero, holding every other\n" +
			"parameter at its scenario value. Searches stay at or above zero unless --allow-negative\n" +
			"or --floor is given.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, flush := warningContext(cmd)
			defer flush()

			req := &models.BreakevenRequest{
				Targets:       targets,
				AllowNegative: allowNegative,
				IncludeCurve:  curvePoints > 0,
				CurvePoints:   curvePoints,
			}
			if cmd.Flags().Changed("floor") {
				req.Floor = &floor
			}

			resp, err := opts.calcSvc.Breakeven(ctx, opts.params, req)
			if err != nil {
				return err
			}
			if opts.output == outputCSV {
				return report.WriteBreakevenCSV(cmd.OutOrStdout(), resp.Results)
			}
			return printJSON(cmd.OutOrStdout(), resp)
		},
	}

	cmd.Flags().StringSliceVarP(&targets, "param", "p", []string{string(engine.ParamStorageFee)}, "parameter to solve (repeatable)")
	cmd.Flags().BoolVar(&allowNegative, "allow-negative", false, "let the search probe negative values")
	cmd.Flags().Float64Var(&floor, "floor", 0, "lowest value the search may probe")
	cmd.Flags().IntVar(&curvePoints, "curve", 0, "include a profit curve with this many points")
	return cmd
}
