package models

import (
	"fmt"
	"strings"
)

// Medico representa la tabla medicos
type Medico struct {
	ID                 int    `json:"id" db:"id"`
	RUT                string `json:"rut" db:"rut" validate:"required,max=12,rut"`
	Nombre             string `json:"nombre" db:"nombre" validate:"required,max=100"`
	Apellido           string `json:"apellido" db:"apellido" validate:"required,max=100"`
	EspecialidadID     int    `json:"especialidad" db:"especialidad_id" validate:"required,gt=0"`
	EspecialidadNombre string `json:"especialidad_nombre" db:"-"`
	Telefono           string `json:"telefono" db:"telefono" validate:"required,max=15"`
	Email              string `json:"email" db:"email" validate:"required,max=254,email"`
}

func (m *Medico) Identificador() int { return m.ID }
func (m *Medico) AsignarID(id int)   { m.ID = id }

func (m *Medico) Normalizar() {
	m.RUT = NormalizarRUT(m.RUT)
	m.Nombre = strings.TrimSpace(m.Nombre)
	m.Apellido = strings.TrimSpace(m.Apellido)
	m.Telefono = strings.TrimSpace(m.Telefono)
	m.Email = strings.ToLower(strings.TrimSpace(m.Email))
	m.EspecialidadNombre = ""
}

func (m *Medico) Validar() error { return Validar(m) }

func (m Medico) String() string {
	return fmt.Sprintf("Dr(a). %s %s - %s", m.Nombre, m.Apellido, m.EspecialidadNombre)
}
