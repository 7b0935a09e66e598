package models

import (
	"fmt"
	"strings"
)

// Medicamento representa el catálogo de medicamentos disponibles en la clínica
type Medicamento struct {
	ID              int    `json:"id" db:"id"`
	NombreComercial string `json:"nombre_comercial" db:"nombre_comercial" validate:"required,max=100"`
	PrincipioActivo string `json:"principio_activo" db:"principio_activo" validate:"required,max=100"`
	Concentracion   string `json:"concentracion" db:"concentracion" validate:"required,max=50"`
	// Presentacion: comprimido, jarabe, inyectable...
	Presentacion string `json:"presentacion" db:"presentacion" validate:"required,max=50"`
	Stock        int    `json:"stock" db:"stock"`
}

func (m *Medicamento) Identificador() int { return m.ID }
func (m *Medicamento) AsignarID(id int)   { m.ID = id }

func (m *Medicamento) Normalizar() {
	m.NombreComercial = strings.TrimSpace(m.NombreComercial)
	m.PrincipioActivo = strings.TrimSpace(m.PrincipioActivo)
	m.Concentracion = strings.TrimSpace(m.Concentracion)
	m.Presentacion = strings.TrimSpace(m.Presentacion)
}

func (m *Medicamento) Validar() error { return Validar(m) }

func (m Medicamento) String() string {
	return fmt.Sprintf("%s (%s)", m.NombreComercial, m.PrincipioActivo)
}
