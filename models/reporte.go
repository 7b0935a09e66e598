package models

import "time"

// ResumenClinica agrupa los indicadores generales de la clínica
type ResumenClinica struct {
	TotalPacientes        int            `json:"total_pacientes"`
	TotalMedicos          int            `json:"total_medicos"`
	TotalConsultas        int            `json:"total_consultas"`
	ConsultasPorEstado    map[string]int `json:"consultas_por_estado"`
	ConsultasHoy          int            `json:"consultas_hoy"`
	RecetasEmitidas       int            `json:"recetas_emitidas"`
	StockMinimo           int            `json:"stock_minimo"`
	MedicamentosBajoStock []Medicamento  `json:"medicamentos_bajo_stock"`
	FechaGeneracion       time.Time      `json:"fecha_generacion"`
}
