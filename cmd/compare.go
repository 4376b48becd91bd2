package cmd

import (
	"fmt"
	"time"

	"table-reconciler/core/config"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// compareCmd represents the compare command
var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare every configured rule once",
	Long: `Runs one full comparison pass: every rule is compared in rule id order and its
outcome recorded on the result table. Prints "Processed rows: <n>; RUN_ID=<run_id>".`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		startTime := time.Now()

		loc, _ := cmd.Flags().GetString("output-location")
		a, err := newApp(ctx, func(cfg *config.Config) {
			if loc != "" {
				cfg.Compare.OutputLocation = loc
			}
		})
		if err != nil {
			return err
		}
		defer a.log.Sync()

		summary, _, err := a.service.Run(ctx)
		if err != nil {
			return err
		}

		a.log.Info("Comparison completed",
			zap.String("run_id", summary.RunID),
			zap.Int("processed", summary.Processed),
			zap.Duration("execution_time", time.Since(startTime)),
		)
		fmt.Fprintln(cmd.OutOrStdout(), summary.String())
		return nil
	},
}

func init() {
	compareCmd.Flags().String("output-location", "", "override compare.output_location for this run")
	RootCmd.AddCommand(compareCmd)
}
