package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/lizet96/saludvital-backend/config"
	"github.com/lizet96/saludvital-backend/models"
	"github.com/lizet96/saludvital-backend/repository"
)

// Handler reúne las dependencias compartidas por los endpoints de la API
type Handler struct {
	Store  repository.Store
	Config config.Config
	Log    *zap.Logger

	operadores map[string]models.Operador
}

// New crea el Handler; operadores puede ser nil cuando la autenticación está deshabilitada
func New(store repository.Store, cfg config.Config, operadores []models.Operador, log *zap.Logger) *Handler {
	h := &Handler{Store: store, Config: cfg, Log: log, operadores: map[string]models.Operador{}}
	for _, op := range operadores {
		h.operadores[op.Email] = op
	}
	return h
}

// ErrorResponse es el cuerpo de todas las respuestas de error de la API
type ErrorResponse struct {
	Error string `json:"error"`
	// Campos detalla el error de cada campo cuando aplica
	Campos map[string]string `json:"campos,omitempty"`
}

// Health responde el estado del servicio y de la base de datos
func (h *Handler) Health(c *fiber.Ctx) error {
	estado := fiber.Map{
		"status":      "ok",
		"message":     "Salud Vital API",
		"version":     "1.0.0",
		"environment": h.Config.Environment,
	}
	if err := h.Store.Ping(c.UserContext()); err != nil {
		h.Log.Warn("Base de datos no disponible", zap.Error(err))
		estado["status"] = "degradado"
		estado["database"] = "no disponible"
		return c.Status(fiber.StatusServiceUnavailable).JSON(estado)
	}
	estado["database"] = "ok"
	return c.JSON(estado)
}
