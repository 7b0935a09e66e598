package models

import (
	"fmt"
	"strings"
)

// Tratamiento representa un tratamiento aplicado en una consulta
type Tratamiento struct {
	ID             int    `json:"id" db:"id"`
	ConsultaID     int    `json:"consulta" db:"consulta_id" validate:"required,gt=0"`
	TipoID         int    `json:"tipo" db:"tipo_id" validate:"required,gt=0"`
	TipoNombre     string `json:"tipo_nombre" db:"-"`
	PacienteNombre string `json:"paciente_nombre" db:"-"`
	Nombre         string `json:"nombre" db:"nombre" validate:"required,max=150"`
	Descripcion    string `json:"descripcion" db:"descripcion" validate:"required"`
	FechaInicio    Fecha  `json:"fecha_inicio" db:"fecha_inicio" validate:"required"`
	FechaFin       *Fecha `json:"fecha_fin" db:"fecha_fin"`
}

func (t *Tratamiento) Identificador() int { return t.ID }
func (t *Tratamiento) AsignarID(id int)   { t.ID = id }

func (t *Tratamiento) Normalizar() {
	t.Nombre = strings.TrimSpace(t.Nombre)
	t.Descripcion = strings.TrimSpace(t.Descripcion)
	if t.FechaFin != nil && t.FechaFin.IsZero() {
		t.FechaFin = nil
	}
	t.TipoNombre = ""
	t.PacienteNombre = ""
}

func (t *Tratamiento) Validar() error {
	if err := Validar(t); err != nil {
		return err
	}
	if t.FechaFin != nil && t.FechaFin.Antes(t.FechaInicio) {
		return ErroresValidacion{"fecha_fin": "La fecha de término no puede ser anterior a la de inicio"}
	}
	return nil
}

func (t Tratamiento) String() string {
	return fmt.Sprintf("Tratamiento: %s (%s)", t.Nombre, t.PacienteNombre)
}
