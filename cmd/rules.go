package cmd

import (
	"github.com/spf13/cobra"
)

// rulesCmd represents the rules command
var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Inspect comparison rules",
}

// rulesListCmd represents the rules list command
var rulesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured rules ordered by rule id",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.log.Sync()

		list, err := a.service.Rules(cmd.Context())
		if err != nil {
			return err
		}
		return renderRules(cmd.OutOrStdout(), list, outputFormat)
	},
}

func init() {
	rulesCmd.AddCommand(rulesListCmd)
	RootCmd.AddCommand(rulesCmd)
}
