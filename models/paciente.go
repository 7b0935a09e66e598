package models

import (
	"fmt"
	"strings"
)

// Valores permitidos para el sexo del paciente
const (
	SexoMasculino = "M"
	SexoFemenino  = "F"
	SexoOtro      = "O"
)

// OpcionesSexo mantiene el orden y la etiqueta de cada valor
var OpcionesSexo = []Opcion{
	{Valor: SexoMasculino, Etiqueta: "Masculino"},
	{Valor: SexoFemenino, Etiqueta: "Femenino"},
	{Valor: SexoOtro, Etiqueta: "Otro"},
}

// Opcion es un par valor/etiqueta de una enumeración
type Opcion struct {
	Valor    string `json:"valor"`
	Etiqueta string `json:"etiqueta"`
}

// EtiquetaOpcion busca la etiqueta de un valor, o retorna el valor si no existe
func EtiquetaOpcion(opciones []Opcion, valor string) string {
	for _, o := range opciones {
		if o.Valor == valor {
			return o.Etiqueta
		}
	}
	return valor
}

// Paciente representa la tabla pacientes
type Paciente struct {
	ID              int    `json:"id" db:"id"`
	RUT             string `json:"rut" db:"rut" validate:"required,max=12,rut"`
	Nombre          string `json:"nombre" db:"nombre" validate:"required,max=100"`
	Apellido        string `json:"apellido" db:"apellido" validate:"required,max=100"`
	FechaNacimiento Fecha  `json:"fecha_nacimiento" db:"fecha_nacimiento" validate:"required"`
	Sexo            string `json:"sexo" db:"sexo" validate:"required,oneof=M F O"`
	Direccion       string `json:"direccion" db:"direccion" validate:"max=255"`
	Telefono        string `json:"telefono" db:"telefono" validate:"max=15"`
}

func (p *Paciente) Identificador() int { return p.ID }
func (p *Paciente) AsignarID(id int)   { p.ID = id }

func (p *Paciente) Normalizar() {
	p.RUT = NormalizarRUT(p.RUT)
	p.Nombre = strings.TrimSpace(p.Nombre)
	p.Apellido = strings.TrimSpace(p.Apellido)
	p.Sexo = strings.ToUpper(strings.TrimSpace(p.Sexo))
	p.Direccion = strings.TrimSpace(p.Direccion)
	p.Telefono = strings.TrimSpace(p.Telefono)
}

func (p *Paciente) Validar() error {
	if err := Validar(p); err != nil {
		return err
	}
	if p.FechaNacimiento.After(Hoy().Time) {
		return ErroresValidacion{"fecha_nacimiento": "La fecha de nacimiento no puede ser futura"}
	}
	return nil
}

func (p Paciente) String() string {
	return fmt.Sprintf("%s %s (%s)", p.Nombre, p.Apellido, p.RUT)
}
