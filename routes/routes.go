package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/lizet96/saludvital-backend/handlers"
	"github.com/lizet96/saludvital-backend/middleware"
	"github.com/lizet96/saludvital-backend/models"
	"github.com/lizet96/saludvital-backend/views"
)

// SetupRoutes configura todas las rutas de la aplicación
func SetupRoutes(app *fiber.App, h *handlers.Handler, vistas *views.Vistas, autorizador *middleware.Autorizador) {
	cfg := h.Config

	// Middleware global
	app.Use(middleware.RequestID())
	app.Use(middleware.RequestLogger(h.Log))
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))
	app.Use(middleware.SecurityHeaders())
	app.Use(middleware.BodySizeLimit(cfg.BodyLimit))
	app.Use(middleware.CreateRateLimiter(middleware.DefaultRateLimit(cfg.RateLimitMax, cfg.RateLimitWindow)))

	// Ruta de salud del sistema
	app.Get("/health", h.Health)

	// Documentación
	recursos := h.Recursos()
	openapi := handlers.NewGeneradorOpenAPI(recursos, "1.0.0", "/")
	app.Get("/api/schema", openapi.Schema)
	app.Get("/api/docs", openapi.Docs)

	// Grupo de API
	api := app.Group("/api/v1", middleware.LoggingMiddleware(h.Store, cfg.Environment, h.Log))

	// === RUTAS PÚBLICAS (Sin autenticación) ===
	auth := api.Group("/auth")
	auth.Post("/login", middleware.AuthRateLimiter(), h.Login)

	// === RUTAS PROTEGIDAS ===
	// Sin JWT_SECRET la API queda abierta (desarrollo)
	protected := api
	if cfg.AuthHabilitada() {
		jwt := middleware.JWTMiddleware(cfg.JWTSecret)
		auth.Get("/perfil", jwt, h.ObtenerPerfil)
		protected = api.Group("/", jwt, middleware.RequirePermission(autorizador, "/api/v1"))
	}

	// --- CRUD DE ENTIDADES ---
	for _, r := range recursos {
		r.Registrar(protected)
	}

	// --- RUTAS DE REPORTES ---
	protected.Get("/reportes/resumen", h.GenerarResumen)

	// --- RUTAS DE LOGS ---
	if cfg.AuthHabilitada() {
		protected.Get("/logs", middleware.RequireRole(models.RolAdmin), h.ObtenerLogs)
	} else {
		protected.Get("/logs", h.ObtenerLogs)
	}

	// --- GESTIÓN HTML ---
	vistas.Registrar(app)

	app.Use(handlers.NotFound)
}
