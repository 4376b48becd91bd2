package cmd

import (
	"fmt"
	"os"

	"table-reconciler/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configDir    string
	outputFormat string
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "table-reconciler",
	Short: "Table Reconciliation Service",
	Long: `Table Reconciler compares configured pairs of source and target tables.
It records row counts, differing row counts and a PASS/FAIL/ERROR result per rule,
and writes an inspectable sample of one differing row for every mismatch.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console encoding with the development config gives readable CLI errors.
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().StringVar(&configDir, "config-dir", ".", "directory holding .env and config.yaml")
	RootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "table", "output format (table, json)")
}
