package models

import "strings"

// Especialidad representa la tabla especialidades
type Especialidad struct {
	ID          int    `json:"id" db:"id"`
	Nombre      string `json:"nombre" db:"nombre" validate:"required,max=100"`
	Descripcion string `json:"descripcion" db:"descripcion"`
}

func (e *Especialidad) Identificador() int { return e.ID }
func (e *Especialidad) AsignarID(id int)   { e.ID = id }

func (e *Especialidad) Normalizar() {
	e.Nombre = strings.TrimSpace(e.Nombre)
	e.Descripcion = strings.TrimSpace(e.Descripcion)
}

func (e *Especialidad) Validar() error { return Validar(e) }

func (e Especialidad) String() string { return e.Nombre }

// TipoTratamiento clasifica los tratamientos (farmacológico, fisioterapia, cirugía...)
type TipoTratamiento struct {
	ID          int    `json:"id" db:"id"`
	Nombre      string `json:"nombre" db:"nombre" validate:"required,max=100"`
	Descripcion string `json:"descripcion" db:"descripcion"`
}

func (t *TipoTratamiento) Identificador() int { return t.ID }
func (t *TipoTratamiento) AsignarID(id int)   { t.ID = id }

func (t *TipoTratamiento) Normalizar() {
	t.Nombre = strings.TrimSpace(t.Nombre)
	t.Descripcion = strings.TrimSpace(t.Descripcion)
}

func (t *TipoTratamiento) Validar() error { return Validar(t) }

func (t TipoTratamiento) String() string { return t.Nombre }
