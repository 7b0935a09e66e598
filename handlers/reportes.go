package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lizet96/saludvital-backend/models"
)

// GenerarResumen genera el reporte general de la clínica
func (h *Handler) GenerarResumen(c *fiber.Ctx) error {
	stockMinimo := c.QueryInt("stock_minimo", h.Config.StockMinimo)
	if stockMinimo < 0 {
		stockMinimo = h.Config.StockMinimo
	}

	reporte, err := h.Store.Resumen(c.UserContext(), stockMinimo)
	if err != nil {
		return h.responderError(c, err)
	}
	if reporte.MedicamentosBajoStock == nil {
		reporte.MedicamentosBajoStock = []models.Medicamento{}
	}

	return c.JSON(fiber.Map{
		"reporte": reporte,
		"mensaje": "Reporte generado exitosamente",
	})
}
