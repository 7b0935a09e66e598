package handlers

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/lizet96/saludvital-backend/models"
)

// ObtenerLogs obtiene el registro de peticiones con filtros opcionales
func (h *Handler) ObtenerLogs(c *fiber.Ctx) error {
	// Parámetros de paginación
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	limit := c.QueryInt("limit", PageSizePorDefecto)
	if limit < 1 || limit > PageSizeMaximo {
		limit = PageSizePorDefecto
	}

	filtro := models.FiltroLogs{
		Method:     strings.ToUpper(c.Query("method")),
		StatusCode: c.QueryInt("status_code", 0),
		Path:       strings.Clone(c.Query("path")),
		IP:         strings.Clone(c.Query("ip")),
		LogLevel:   strings.Clone(c.Query("log_level")),
		Limit:      limit,
		Offset:     (page - 1) * limit,
	}

	if v := c.Query("fecha_inicio"); v != "" {
		fecha, err := time.ParseInLocation(models.FormatoFecha, v, time.Local)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
				Error:  "Datos inválidos",
				Campos: map[string]string{"fecha_inicio": "Se espera YYYY-MM-DD"},
			})
		}
		filtro.FechaInicio = &fecha
	}
	if v := c.Query("fecha_fin"); v != "" {
		fecha, err := time.ParseInLocation(models.FormatoFecha, v, time.Local)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
				Error:  "Datos inválidos",
				Campos: map[string]string{"fecha_fin": "Se espera YYYY-MM-DD"},
			})
		}
		// Incluir todo el día
		fecha = fecha.Add(24*time.Hour - time.Nanosecond)
		filtro.FechaFin = &fecha
	}

	logs, total, err := h.Store.ListarLogs(c.UserContext(), filtro)
	if err != nil {
		return h.responderError(c, err)
	}
	if logs == nil {
		logs = []models.Log{}
	}

	return c.JSON(fiber.Map{
		"logs":  logs,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}
