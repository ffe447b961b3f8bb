package cmd

import (
	"charsheet-restful/config"
	"charsheet-restful/database"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func newMigrateCmd(v *viper.Viper, configFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the users and characters tables",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(v, *configFile)
			if err != nil {
				return err
			}
			logger, err := newLogger(cfg.LogLevel)
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck

			db, err := database.Open(cfg.Database, logger)
			if err != nil {
				return err
			}
			defer database.Close(db) //nolint:errcheck

			if err := database.Migrate(db); err != nil {
				return err
			}
			logger.Info("Migrations complete", zap.String("driver", cfg.Database.Driver))
			return nil
		},
	}
}
