// Package commands implements the malladmin command tree.
package commands

import (
	"github.com/spf13/cobra"
)

var version = "dev"

// globalOptions are the persistent flags shared by every command.
type globalOptions struct {
	configFile string
	locale     string
	logLevel   string
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "malladmin",
		Short: "Shopping mall admin lists",
		Long: `malladmin manages the mall's tenants, inventory, purchase orders,
payments, sales and maintenance issues in English and Hindi.

Every list is searchable, every add or edit is validated against the
entity schema, and messages come back in the selected locale.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "config file (default is ./malladmin.yaml when present)")
	rootCmd.PersistentFlags().StringVar(&opts.locale, "locale", "", "message locale (overrides app.locale)")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "logging level (debug, info, warn, error)")

	rootCmd.AddCommand(
		newSchemasCmd(opts),
		newOverviewCmd(opts),
		newListCmd(opts),
		newAddCmd(opts),
		newEditCmd(opts),
		newDeleteCmd(opts),
		newServeCmd(opts),
	)
	return rootCmd
}

// Execute runs the root command with os.Args.
func Execute() error {
	return NewRootCmd().Execute()
}

// SetVersion sets the version for the CLI
func SetVersion(v string) {
	version = v
}
