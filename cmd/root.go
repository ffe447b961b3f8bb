// Package cmd holds the charsheet command line.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewRootCmd creates the root command. Subcommands share v, so flags bound
// by one command are visible to config.Load.
func NewRootCmd() *cobra.Command {
	v := viper.New()
	var configFile string

	cmd := &cobra.Command{
		Use:           "charsheet",
		Short:         "Character sheet REST API",
		Long:          `charsheet serves player accounts and role-playing character sheets over HTTP.`,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	// Global flag for config file path
	cmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (default ./config.yaml or ./config/config.yaml)")

	cmd.AddCommand(newServeCmd(v, &configFile))
	cmd.AddCommand(newMigrateCmd(v, &configFile))
	cmd.AddCommand(newSeedCmd(v, &configFile))
	return cmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}
