package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Estados posibles de una consulta médica
const (
	EstadoPendiente  = "PENDIENTE"
	EstadoConfirmada = "CONFIRMADA"
	EstadoRealizada  = "REALIZADA"
	EstadoCancelada  = "CANCELADA"
)

// OpcionesEstadoConsulta lista los estados en el orden en que se muestran
var OpcionesEstadoConsulta = []Opcion{
	{Valor: EstadoPendiente, Etiqueta: "Pendiente"},
	{Valor: EstadoConfirmada, Etiqueta: "Confirmada"},
	{Valor: EstadoRealizada, Etiqueta: "Realizada"},
	{Valor: EstadoCancelada, Etiqueta: "Cancelada"},
}

// ConsultaMedica representa una atención médica o cita
type ConsultaMedica struct {
	ID             int       `json:"id" db:"id"`
	PacienteID     int       `json:"paciente" db:"paciente_id" validate:"required,gt=0"`
	PacienteNombre string    `json:"paciente_nombre" db:"-"`
	MedicoID       int       `json:"medico" db:"medico_id" validate:"required,gt=0"`
	MedicoNombre   string    `json:"medico_nombre" db:"-"`
	FechaHora      time.Time `json:"fecha_hora" db:"fecha_hora" validate:"required"`
	MotivoConsulta string    `json:"motivo_consulta" db:"motivo_consulta" validate:"required"`
	Diagnostico    string    `json:"diagnostico" db:"diagnostico"`
	Estado         string    `json:"estado" db:"estado" validate:"required,oneof=PENDIENTE CONFIRMADA REALIZADA CANCELADA"`
}

func (c *ConsultaMedica) Identificador() int { return c.ID }
func (c *ConsultaMedica) AsignarID(id int)   { c.ID = id }

func (c *ConsultaMedica) Normalizar() {
	c.MotivoConsulta = strings.TrimSpace(c.MotivoConsulta)
	c.Diagnostico = strings.TrimSpace(c.Diagnostico)
	c.Estado = strings.ToUpper(strings.TrimSpace(c.Estado))
	if c.Estado == "" {
		c.Estado = EstadoPendiente
	}
	c.PacienteNombre = ""
	c.MedicoNombre = ""
}

func (c *ConsultaMedica) Validar() error { return Validar(c) }

// UnmarshalJSON acepta fecha_hora en RFC 3339 o con el formato de datetime-local.
// Si el cuerpo no trae fecha_hora se conserva el valor actual.
func (c *ConsultaMedica) UnmarshalJSON(data []byte) error {
	type consulta ConsultaMedica
	aux := struct {
		*consulta
		FechaHora *string `json:"fecha_hora"`
	}{consulta: (*consulta)(c)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.FechaHora == nil {
		return nil
	}
	if *aux.FechaHora == "" {
		c.FechaHora = time.Time{}
		return nil
	}
	t, err := ParseFechaHora(*aux.FechaHora)
	if err != nil {
		return ErroresValidacion{"fecha_hora": "Ingrese una fecha y hora válidas (YYYY-MM-DDTHH:MM)"}
	}
	c.FechaHora = t
	return nil
}

func (c ConsultaMedica) String() string {
	return fmt.Sprintf("Consulta de %s con %s el %s", c.PacienteNombre, c.MedicoNombre, c.FechaHora.Format(FormatoFecha))
}

// EstadoEtiqueta retorna el nombre legible del estado
func (c ConsultaMedica) EstadoEtiqueta() string {
	return EtiquetaOpcion(OpcionesEstadoConsulta, c.Estado)
}
