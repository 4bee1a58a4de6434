package cmd

import (
	"github.com/spf13/cobra"

	"payoutdesk/database"
	"payoutdesk/logger"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg.DBAutoMigrate = false
		if err := database.Connect(cfg); err != nil {
			return err
		}
		if err := database.Migrate(database.DB); err != nil {
			return err
		}

		log := logger.WithComponent("migrate")
		log.Info().Str("driver", cfg.DBDriver).Msg("Schema is up to date")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
