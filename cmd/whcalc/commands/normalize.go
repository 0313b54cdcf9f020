package commands

import (
	"encoding/csv"

	"github.com/epeers/warehouse/internal/models"
	"github.com/epeers/warehouse/internal/scenario"
	"github.com/epeers/warehouse/internal/services"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func normalizeCmd(opts *options) *cobra.Command {
	var (
		changed  string
		value    float64
		disabled []string
		write    bool
	)

	cmd := &cobra.Command{
		Use:   "normalize",
		Short: "Set one line share and rebalance the others",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, flush := warningContext(cmd)
			defer flush()

			shares, err := services.NormalizeShares(ctx, opts.params.Shares(), changed, value, disabled)
			if err != nil {
				return err
			}

			if write {
				if opts.scenarioPath == "" {
					log.Warn("--write needs --scenario, nothing saved")
				} else {
					p := opts.params
					p.SetShares(shares)
					if err := scenario.WriteFile(opts.scenarioPath, p); err != nil {
						return err
					}
					log.WithField("path", opts.scenarioPath).Info("scenario updated")
				}
			}

			if opts.output == outputCSV {
				w := csv.NewWriter(cmd.OutOrStdout())
				rows := [][]string{
					{"share", "value"},
					{services.ShareStorage, decimal.NewFromFloat(shares.Storage).String()},
					{services.ShareLoan, decimal.NewFromFloat(shares.Loan).String()},
					{services.ShareVIP, decimal.NewFromFloat(shares.VIP).String()},
					{services.ShareShortTerm, decimal.NewFromFloat(shares.ShortTerm).String()},
				}
				return w.WriteAll(rows)
			}
			return printJSON(cmd.OutOrStdout(), models.NormalizeSharesResponse{Shares: shares, Sum: shares.Sum()})
		},
	}

	cmd.Flags().StringVarP(&changed, "changed", "c", "", "share that was edited (storage_share, loan_share, vip_share, short_term_share)")
	cmd.Flags().Float64VarP(&value, "value", "v", 0, "new value of the edited share, 0..1")
	cmd.Flags().StringSliceVar(&disabled, "disabled", nil, "lines switched off (repeatable)")
	cmd.Flags().BoolVarP(&write, "write", "w", false, "save the rebalanced shares back to --scenario")
	_ = cmd.MarkFlagRequired("changed")
	_ = cmd.MarkFlagRequired("value")
	return cmd
}
