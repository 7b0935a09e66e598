package main

import (
	"github.com/spf13/cobra"

	"github.com/lizet96/saludvital-backend/database"
)

var migrateCmd = &cobra.Command{
	Use:       "migrate [up|down|status|reset|version]",
	Short:     "Aplica las migraciones del esquema (por defecto up)",
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"up", "down", "status", "reset", "version"},
	RunE: func(cmd *cobra.Command, args []string) error {
		comando := "up"
		if len(args) == 1 {
			comando = args[0]
		}

		pool, err := database.Connect(cmd.Context(), cfg.Database, logger)
		if err != nil {
			return err
		}
		defer pool.Close()

		return database.Migrate(cmd.Context(), pool, comando, logger)
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
