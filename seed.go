package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lizet96/saludvital-backend/database"
)

var seedFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Carga el catálogo base de especialidades, tipos de tratamiento y medicamentos",
	Long: `Crea los registros del catálogo que aún no existen. Sin --file usa el
catálogo incluido en el binario. Puede ejecutarse varias veces.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		catalogo, err := database.CargarCatalogo(seedFile)
		if err != nil {
			return err
		}

		pool, err := database.Connect(cmd.Context(), cfg.Database, logger)
		if err != nil {
			return err
		}
		store := database.NewPGStore(pool)
		defer store.Close()

		res, err := database.Sembrar(cmd.Context(), store, catalogo, logger)
		if err != nil {
			return err
		}
		logger.Info("Catálogo cargado", zap.Int("creados", res.Creados), zap.Int("omitidos", res.Omitidos))
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "", "archivo YAML del catálogo")
	rootCmd.AddCommand(seedCmd)
}
