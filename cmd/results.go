package cmd

import (
	"github.com/spf13/cobra"
)

// resultsCmd represents the results command
var resultsCmd = &cobra.Command{
	Use:   "results",
	Short: "Inspect the result table",
}

// resultsListCmd represents the results list command
var resultsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the latest result of every rule, failures first",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.log.Sync()

		stored, _ := cmd.Flags().GetBool("stored-order")
		list, err := a.service.Results(cmd.Context(), !stored)
		if err != nil {
			return err
		}
		return renderResults(cmd.OutOrStdout(), list, outputFormat)
	},
}

// samplesCmd represents the samples command
var samplesCmd = &cobra.Command{
	Use:   "samples",
	Short: "Inspect sample datasets",
}

// samplesShowCmd represents the samples show command
var samplesShowCmd = &cobra.Command{
	Use:     "show <dataset>",
	Short:   "Show a sample dataset, e.g. UTIL.SAMPLE_T_7_20250811091523456",
	Args:    cobra.ExactArgs(1),
	Example: "  table-reconciler samples show UTIL.SAMPLE_7_20250811091523456",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.log.Sync()

		ds, err := a.service.Sample(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return renderDataset(cmd.OutOrStdout(), ds, outputFormat)
	},
}

func init() {
	resultsListCmd.Flags().Bool("stored-order", false, "keep the stored order instead of listing failures first")
	resultsCmd.AddCommand(resultsListCmd)
	samplesCmd.AddCommand(samplesShowCmd)
	RootCmd.AddCommand(resultsCmd)
	RootCmd.AddCommand(samplesCmd)
}
