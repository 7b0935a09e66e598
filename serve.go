package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lizet96/saludvital-backend/config"
	"github.com/lizet96/saludvital-backend/database"
	"github.com/lizet96/saludvital-backend/handlers"
	"github.com/lizet96/saludvital-backend/middleware"
	"github.com/lizet96/saludvital-backend/repository"
	"github.com/lizet96/saludvital-backend/routes"
	"github.com/lizet96/saludvital-backend/views"
)

var (
	servePort   string
	serveMemory bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Inicia el servidor HTTP (API, documentación y gestión HTML)",
	RunE:  runServe,
}

func init() {
	for _, c := range []*cobra.Command{rootCmd, serveCmd} {
		c.Flags().StringVarP(&servePort, "port", "p", "", "puerto HTTP (por defecto PORT o 3000)")
		c.Flags().BoolVar(&serveMemory, "memory", false, "usar el almacén en memoria con el catálogo base, sin PostgreSQL")
	}
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := abrirStore(ctx, serveMemory)
	if err != nil {
		return err
	}
	defer store.Close()

	operadores, err := config.CargarOperadores(cfg.OperadoresFile)
	if err != nil {
		return err
	}
	if cfg.AuthHabilitada() && len(operadores) == 0 {
		logger.Warn("JWT_SECRET configurado sin operadores; nadie podrá iniciar sesión",
			zap.String("archivo", cfg.OperadoresFile))
	}
	if !cfg.AuthHabilitada() {
		logger.Warn("JWT_SECRET vacío: la API no exige autenticación")
	}

	autorizador, err := middleware.NewAutorizador()
	if err != nil {
		return err
	}

	h := handlers.New(store, cfg, operadores, logger)
	vistas := views.New(store, cfg.StockMinimo, logger)

	// Crear instancia de Fiber con configuración
	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(logger),
		AppName:      "Salud Vital API v1.0.0",
		Views:        views.NewEngine(),
		BodyLimit:    cfg.BodyLimit,
	})

	// Configurar rutas
	routes.SetupRoutes(app, h, vistas, autorizador)

	go func() {
		<-ctx.Done()
		logger.Info("Deteniendo el servidor")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			logger.Error("Error al detener el servidor", zap.Error(err))
		}
	}()

	port := servePort
	if port == "" {
		port = cfg.Port
	}
	logger.Info("Servidor Salud Vital iniciado",
		zap.String("port", port),
		zap.String("environment", cfg.Environment),
		zap.String("docs", "http://localhost:"+port+"/api/docs/"),
		zap.String("gestion", "http://localhost:"+port+"/"))
	return app.Listen(":" + port)
}

// abrirStore conecta a PostgreSQL o crea el almacén en memoria con el catálogo base
func abrirStore(ctx context.Context, memoria bool) (repository.Store, error) {
	if memoria {
		store := repository.NewMemoryStore()
		catalogo, err := database.CargarCatalogo("")
		if err != nil {
			return nil, err
		}
		if _, err := database.Sembrar(ctx, store, catalogo, logger); err != nil {
			return nil, err
		}
		logger.Info("Usando almacén en memoria")
		return store, nil
	}

	pool, err := database.Connect(ctx, cfg.Database, logger)
	if err != nil {
		return nil, err
	}
	return database.NewPGStore(pool), nil
}
