package handlers

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/lizet96/saludvital-backend/models"
	"github.com/lizet96/saludvital-backend/repository"
)

// responderError traduce los errores de validación y de almacenamiento a HTTP
func (h *Handler) responderError(c *fiber.Ctx, err error) error {
	var (
		verr models.ErroresValidacion
		dup  *repository.DuplicateError
		ref  *repository.ReferenceError
		prot *repository.ProtectedError
	)
	switch {
	case errors.As(err, &verr):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:  "Datos inválidos",
			Campos: verr,
		})
	case errors.As(err, &ref):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:  err.Error(),
			Campos: map[string]string{ref.Field: "El registro seleccionado no existe"},
		})
	case errors.As(err, &dup):
		return c.Status(fiber.StatusConflict).JSON(ErrorResponse{
			Error:  err.Error(),
			Campos: map[string]string{dup.Field: "Ya existe un registro con este valor"},
		})
	case errors.As(err, &prot):
		return c.Status(fiber.StatusConflict).JSON(ErrorResponse{Error: err.Error()})
	case repository.IsNotFound(err):
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: "Registro no encontrado"})
	default:
		h.Log.Error("Error procesando la petición",
			zap.String("method", c.Method()), zap.String("path", c.Path()), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "Error interno del servidor"})
	}
}

// errorDeCuerpo responde un cuerpo JSON que no se pudo interpretar, indicando el campo cuando se conoce
func (h *Handler) errorDeCuerpo(c *fiber.Ctx, err error) error {
	var (
		verr models.ErroresValidacion
		terr *json.UnmarshalTypeError
	)
	switch {
	case errors.As(err, &verr):
		return h.responderError(c, verr)
	case errors.As(err, &terr) && terr.Field != "":
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:  "Datos inválidos",
			Campos: map[string]string{terr.Field: "Tipo de dato inválido"},
		})
	}
	return datosInvalidos(c)
}

func datosInvalidos(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "Datos inválidos"})
}

func idInvalido(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "ID inválido"})
}

// ErrorHandler es el manejador de errores de la aplicación Fiber
func ErrorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
		}
		if code >= fiber.StatusInternalServerError {
			log.Error("Error no controlado", zap.String("path", c.Path()), zap.Error(err))
		}
		return c.Status(code).JSON(fiber.Map{
			"error":   true,
			"message": err.Error(),
		})
	}
}

// NotFound responde las rutas inexistentes
func NotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"error":   "Ruta no encontrada",
		"message": "La ruta solicitada no existe en este servidor",
		"path":    c.Path(),
		"method":  c.Method(),
	})
}
