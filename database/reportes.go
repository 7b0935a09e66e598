package database

import (
	"context"
	"fmt"
	"time"

	"github.com/lizet96/saludvital-backend/models"
)

// Resumen calcula los indicadores generales de la clínica
func (s *PGStore) Resumen(ctx context.Context, stockMinimo int) (models.ResumenClinica, error) {
	reporte := models.ResumenClinica{
		ConsultasPorEstado: map[string]int{},
		StockMinimo:        stockMinimo,
		FechaGeneracion:    time.Now(),
	}

	// Totales generales
	err := s.db.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM pacientes),
			(SELECT COUNT(*) FROM medicos),
			(SELECT COUNT(*) FROM consultas_medicas),
			(SELECT COUNT(*) FROM consultas_medicas WHERE fecha_hora::date = CURRENT_DATE),
			(SELECT COUNT(*) FROM recetas_medicas)
	`).Scan(&reporte.TotalPacientes, &reporte.TotalMedicos, &reporte.TotalConsultas,
		&reporte.ConsultasHoy, &reporte.RecetasEmitidas)
	if err != nil {
		return reporte, fmt.Errorf("resumen: totales: %w", err)
	}

	// Consultas por estado
	for _, o := range models.OpcionesEstadoConsulta {
		reporte.ConsultasPorEstado[o.Valor] = 0
	}
	rows, err := s.db.Query(ctx, `SELECT estado, COUNT(*) FROM consultas_medicas GROUP BY estado`)
	if err != nil {
		return reporte, fmt.Errorf("resumen: consultas por estado: %w", err)
	}
	for rows.Next() {
		var estado string
		var cantidad int
		if err := rows.Scan(&estado, &cantidad); err != nil {
			rows.Close()
			return reporte, fmt.Errorf("resumen: consultas por estado: %w", err)
		}
		reporte.ConsultasPorEstado[estado] = cantidad
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return reporte, fmt.Errorf("resumen: consultas por estado: %w", err)
	}

	// Medicamentos con stock bajo
	t := s.medicamentos
	rows, err = s.db.Query(ctx, "SELECT "+t.selectCols+" FROM "+t.from+
		" WHERE md.stock <= $1 ORDER BY md.stock, md.nombre_comercial", stockMinimo)
	if err != nil {
		return reporte, fmt.Errorf("resumen: stock bajo: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var m models.Medicamento
		if err := t.scan(rows, &m); err != nil {
			return reporte, fmt.Errorf("resumen: stock bajo: %w", err)
		}
		reporte.MedicamentosBajoStock = append(reporte.MedicamentosBajoStock, m)
	}
	return reporte, rows.Err()
}
