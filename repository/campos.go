package repository

import (
	"slices"
	"strings"
)

// Campos describe qué nombres acepta cada listado para búsqueda, filtros y orden
type Campos struct {
	Busqueda        []string
	Filtros         []string
	Orden           []string
	OrdenPorDefecto []string
}

var (
	CamposEspecialidad = Campos{
		Busqueda:        []string{"nombre", "descripcion"},
		Orden:           []string{"id", "nombre"},
		OrdenPorDefecto: []string{"nombre"},
	}
	CamposTipoTratamiento = Campos{
		Busqueda:        []string{"nombre", "descripcion"},
		Orden:           []string{"id", "nombre"},
		OrdenPorDefecto: []string{"nombre"},
	}
	CamposPaciente = Campos{
		Busqueda:        []string{"rut", "nombre", "apellido"},
		Filtros:         []string{"sexo"},
		Orden:           []string{"id", "rut", "nombre", "apellido", "fecha_nacimiento"},
		OrdenPorDefecto: []string{"apellido", "nombre"},
	}
	CamposMedico = Campos{
		Busqueda:        []string{"rut", "nombre", "apellido", "especialidad_nombre"},
		Filtros:         []string{"especialidad"},
		Orden:           []string{"id", "rut", "nombre", "apellido", "email"},
		OrdenPorDefecto: []string{"apellido", "nombre"},
	}
	CamposMedicamento = Campos{
		Busqueda:        []string{"nombre_comercial", "principio_activo"},
		Filtros:         []string{"presentacion"},
		Orden:           []string{"id", "nombre_comercial", "principio_activo", "stock"},
		OrdenPorDefecto: []string{"nombre_comercial"},
	}
	CamposConsulta = Campos{
		Busqueda:        []string{"diagnostico", "motivo_consulta", "paciente_rut", "medico_apellido"},
		Filtros:         []string{"medico", "paciente", "estado"},
		Orden:           []string{"id", "fecha_hora", "estado"},
		OrdenPorDefecto: []string{"-fecha_hora"},
	}
	CamposTratamiento = Campos{
		Busqueda:        []string{"nombre"},
		Filtros:         []string{"consulta", "tipo"},
		Orden:           []string{"id", "fecha_inicio", "nombre"},
		OrdenPorDefecto: []string{"-fecha_inicio"},
	}
	CamposReceta = Campos{
		Busqueda:        []string{"indicaciones_generales"},
		Filtros:         []string{"consulta"},
		Orden:           []string{"id", "fecha_emision"},
		OrdenPorDefecto: []string{"-fecha_emision", "-id"},
	}
	CamposDetalleReceta = Campos{
		Busqueda:        []string{"dosis"},
		Filtros:         []string{"receta", "medicamento"},
		Orden:           []string{"id"},
		OrdenPorDefecto: []string{"id"},
	}
)

// OrdenEfectivo descarta los campos no permitidos y aplica el orden por defecto si no queda ninguno
func (c Campos) OrdenEfectivo(pedido []string) []string {
	var orden []string
	for _, o := range pedido {
		nombre := strings.TrimPrefix(strings.TrimSpace(o), "-")
		if slices.Contains(c.Orden, nombre) {
			orden = append(orden, strings.TrimSpace(o))
		}
	}
	if len(orden) == 0 {
		orden = append(orden, c.OrdenPorDefecto...)
	}
	return orden
}

// PermiteFiltro indica si el listado acepta filtrar por el campo
func (c Campos) PermiteFiltro(campo string) bool {
	return slices.Contains(c.Filtros, campo)
}
