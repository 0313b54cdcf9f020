package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/epeers/warehouse/internal/cache"
	"github.com/epeers/warehouse/internal/models"
	"github.com/epeers/warehouse/internal/scenario"
	"github.com/epeers/warehouse/internal/services"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const (
	outputJSON = "json"
	outputCSV  = "csv"
)

// options carries the persistent flags and the state they resolve to
type options struct {
	scenarioPath string
	output       string
	logLevel     string

	params  models.Params
	calcSvc *services.CalculatorService
}

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:          "whcalc",
		Short:        "Warehouse financial model calculator",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := log.ParseLevel(opts.logLevel)
			if err != nil {
				return err
			}
			log.SetLevel(level)
			log.SetOutput(cmd.ErrOrStderr())

			if opts.output != outputJSON && opts.output != outputCSV {
				return fmt.Errorf("unknown output %q (want json or csv)", opts.output)
			}

			opts.params = models.DefaultParams()
			if opts.scenarioPath != "" {
				p, ignored, err := scenario.ReadFile(opts.scenarioPath, opts.params)
				if err != nil {
					return err
				}
				for _, key := range ignored {
					log.Warnf("unknown key %q in %s was ignored", key, opts.scenarioPath)
				}
				opts.params = p
			}

			// breakeven searches re-evaluate the same inputs often
			opts.calcSvc = services.NewCalculatorService(cache.NewMemoryCache(0, 10000))
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&opts.scenarioPath, "scenario", "s", "", "scenario file (.json, .yaml or .yml); defaults apply when omitted")
	root.PersistentFlags().StringVarP(&opts.output, "output", "o", outputJSON, "output format: json|csv")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	root.AddCommand(
		calcCmd(opts),
		projectCmd(opts),
		breakevenCmd(opts),
		normalizeCmd(opts),
		initCmd(),
	)
	return root
}

// warningContext returns a context collecting model warnings and a func
// that logs whatever was collected
func warningContext(cmd *cobra.Command) (context.Context, func()) {
	ctx, wc := services.NewWarningContext(cmd.Context())
	return ctx, func() {
		for _, w := range wc.GetWarnings() {
			log.WithField("code", w.Code).Warn(w.Message)
		}
	}
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
