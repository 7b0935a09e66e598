package models

import (
	"fmt"
	"strings"
)

// RecetaMedica representa la receta emitida en una consulta (una por consulta)
type RecetaMedica struct {
	ID                    int    `json:"id" db:"id"`
	ConsultaID            int    `json:"consulta" db:"consulta_id" validate:"required,gt=0"`
	PacienteNombre        string `json:"paciente_nombre" db:"-"`
	FechaEmision          Fecha  `json:"fecha_emision" db:"fecha_emision"`
	IndicacionesGenerales string `json:"indicaciones_generales" db:"indicaciones_generales"`
}

func (r *RecetaMedica) Identificador() int { return r.ID }
func (r *RecetaMedica) AsignarID(id int)   { r.ID = id }

func (r *RecetaMedica) Normalizar() {
	r.IndicacionesGenerales = strings.TrimSpace(r.IndicacionesGenerales)
	r.PacienteNombre = ""
}

func (r *RecetaMedica) Validar() error { return Validar(r) }

func (r RecetaMedica) String() string {
	return fmt.Sprintf("Receta para %s del %s", r.PacienteNombre, r.FechaEmision)
}

// DetalleReceta es una línea de la receta: un medicamento con su posología
type DetalleReceta struct {
	ID                int    `json:"id" db:"id"`
	RecetaID          int    `json:"receta" db:"receta_id" validate:"required,gt=0"`
	MedicamentoID     int    `json:"medicamento" db:"medicamento_id" validate:"required,gt=0"`
	MedicamentoNombre string `json:"medicamento_nombre" db:"-"`
	Dosis             string `json:"dosis" db:"dosis" validate:"required,max=100"`
	Frecuencia        string `json:"frecuencia" db:"frecuencia" validate:"required,max=100"`
	Duracion          string `json:"duracion" db:"duracion" validate:"required,max=100"`
}

func (d *DetalleReceta) Identificador() int { return d.ID }
func (d *DetalleReceta) AsignarID(id int)   { d.ID = id }

func (d *DetalleReceta) Normalizar() {
	d.Dosis = strings.TrimSpace(d.Dosis)
	d.Frecuencia = strings.TrimSpace(d.Frecuencia)
	d.Duracion = strings.TrimSpace(d.Duracion)
	d.MedicamentoNombre = ""
}

func (d *DetalleReceta) Validar() error { return Validar(d) }

func (d DetalleReceta) String() string {
	return fmt.Sprintf("%s - %s", d.MedicamentoNombre, d.Dosis)
}
