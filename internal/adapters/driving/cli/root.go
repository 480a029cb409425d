// Package cli implements the formbridge command line interface.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/kisanmitra/formbridge/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

var (
	flagVerbose    bool
	flagConfigPath string
)

var rootCmd = &cobra.Command{
	Use:   "formbridge",
	Short: "REST adapter between form clients and a Frappe ERP",
	Long: `formbridge exposes a small REST API to form-filling frontends and
translates it into calls against an upstream Frappe/ERPNext instance.
Submissions carry a schema fingerprint; formbridge recomputes it from
the live schema and rejects submissions against outdated form layouts.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(flagVerbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false,
		"enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&flagConfigPath, "config", "c", "config.toml",
		"path to the TOML config file")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
