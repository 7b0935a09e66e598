package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lizet96/saludvital-backend/config"
)

var (
	// Configuración y logger compartidos por los subcomandos
	cfg    config.Config
	logger *zap.Logger
)

// rootCmd es el comando base
var rootCmd = &cobra.Command{
	Use:   "saludvital",
	Short: "Salud Vital - API y gestión de la clínica",
	Long: `Salud Vital administra especialidades, pacientes, médicos, consultas,
tratamientos, medicamentos y recetas.

Sin subcomando inicia el servidor HTTP (equivalente a "saludvital serve").`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cfg, err = config.Load(zap.NewNop()); err != nil {
			return err
		}
		if logger, err = config.NewLogger(cfg.Environment, cfg.LogLevel); err != nil {
			return fmt.Errorf("inicializar logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runServe,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
