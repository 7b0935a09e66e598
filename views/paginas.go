package views

import (
	"github.com/lizet96/saludvital-backend/models"
	"github.com/lizet96/saludvital-backend/repository"
)

// definirPaginas define las páginas de gestión en el orden del índice
func (v *Vistas) definirPaginas() []Pagina {
	especialidades := opcionesDe[models.Especialidad](repository.Store.Especialidades)
	tipos := opcionesDe[models.TipoTratamiento](repository.Store.TiposTratamiento)
	pacientes := opcionesDe[models.Paciente](repository.Store.Pacientes)
	medicos := opcionesDe[models.Medico](repository.Store.Medicos)
	medicamentos := opcionesDe[models.Medicamento](repository.Store.Medicamentos)
	consultas := opcionesDe[models.ConsultaMedica](repository.Store.Consultas)
	recetas := opcionesDe[models.RecetaMedica](repository.Store.Recetas)

	return []Pagina{
		nuevaPagina[models.Especialidad](v,
			InfoPagina{Slug: "especialidades", Titulo: "Especialidad", TituloPlural: "Especialidades"},
			repository.Store.Especialidades, repository.CamposEspecialidad,
			[]Campo{
				{Nombre: "nombre", Etiqueta: "Nombre", Tipo: TipoTexto, Requerido: true},
				{Nombre: "descripcion", Etiqueta: "Descripción", Tipo: TipoArea},
			},
			[]Columna{{Titulo: "Nombre", Campo: "nombre"}, {Titulo: "Descripción", Campo: "descripcion"}},
		),
		nuevaPagina[models.TipoTratamiento](v,
			InfoPagina{Slug: "tipos-tratamiento", Titulo: "Tipo de Tratamiento", TituloPlural: "Tipos de Tratamiento"},
			repository.Store.TiposTratamiento, repository.CamposTipoTratamiento,
			[]Campo{
				{Nombre: "nombre", Etiqueta: "Nombre", Tipo: TipoTexto, Requerido: true},
				{Nombre: "descripcion", Etiqueta: "Descripción", Tipo: TipoArea},
			},
			[]Columna{{Titulo: "Nombre", Campo: "nombre"}, {Titulo: "Descripción", Campo: "descripcion"}},
		),
		nuevaPagina[models.Paciente](v,
			InfoPagina{Slug: "pacientes", Titulo: "Paciente", TituloPlural: "Pacientes"},
			repository.Store.Pacientes, repository.CamposPaciente,
			[]Campo{
				{Nombre: "rut", Etiqueta: "RUT", Tipo: TipoTexto, Requerido: true, Ayuda: "Ej: 12345678-5"},
				{Nombre: "nombre", Etiqueta: "Nombre", Tipo: TipoTexto, Requerido: true},
				{Nombre: "apellido", Etiqueta: "Apellido", Tipo: TipoTexto, Requerido: true},
				{Nombre: "fecha_nacimiento", Etiqueta: "Fecha de nacimiento", Tipo: TipoFecha, Requerido: true},
				{Nombre: "sexo", Etiqueta: "Sexo", Tipo: TipoSelect, Requerido: true, Opciones: models.OpcionesSexo},
				{Nombre: "direccion", Etiqueta: "Dirección", Tipo: TipoTexto},
				{Nombre: "telefono", Etiqueta: "Teléfono", Tipo: TipoTexto},
			},
			[]Columna{
				{Titulo: "RUT", Campo: "rut"},
				{Titulo: "Nombre", Campo: "nombre"},
				{Titulo: "Apellido", Campo: "apellido"},
				{Titulo: "Nacimiento", Campo: "fecha_nacimiento"},
				{Titulo: "Sexo", Campo: "sexo", Opciones: models.OpcionesSexo},
				{Titulo: "Teléfono", Campo: "telefono"},
			},
		),
		nuevaPagina[models.Medico](v,
			InfoPagina{Slug: "medicos", Titulo: "Médico", TituloPlural: "Médicos"},
			repository.Store.Medicos, repository.CamposMedico,
			[]Campo{
				{Nombre: "rut", Etiqueta: "RUT", Tipo: TipoTexto, Requerido: true},
				{Nombre: "nombre", Etiqueta: "Nombre", Tipo: TipoTexto, Requerido: true},
				{Nombre: "apellido", Etiqueta: "Apellido", Tipo: TipoTexto, Requerido: true},
				{Nombre: "especialidad", Etiqueta: "Especialidad", Tipo: TipoSelect, Requerido: true, Fuente: especialidades},
				{Nombre: "telefono", Etiqueta: "Teléfono", Tipo: TipoTexto, Requerido: true},
				{Nombre: "email", Etiqueta: "Email", Tipo: TipoEmail, Requerido: true},
			},
			[]Columna{
				{Titulo: "RUT", Campo: "rut"},
				{Titulo: "Nombre", Campo: "nombre"},
				{Titulo: "Apellido", Campo: "apellido"},
				{Titulo: "Especialidad", Campo: "especialidad_nombre"},
				{Titulo: "Email", Campo: "email"},
			},
		),
		nuevaPagina[models.Medicamento](v,
			InfoPagina{Slug: "medicamentos", Titulo: "Medicamento", TituloPlural: "Medicamentos"},
			repository.Store.Medicamentos, repository.CamposMedicamento,
			[]Campo{
				{Nombre: "nombre_comercial", Etiqueta: "Nombre comercial", Tipo: TipoTexto, Requerido: true},
				{Nombre: "principio_activo", Etiqueta: "Principio activo", Tipo: TipoTexto, Requerido: true},
				{Nombre: "concentracion", Etiqueta: "Concentración", Tipo: TipoTexto, Requerido: true, Ayuda: "Ej: 500mg"},
				{Nombre: "presentacion", Etiqueta: "Presentación", Tipo: TipoTexto, Requerido: true, Ayuda: "Comprimido, jarabe, inyectable"},
				{Nombre: "stock", Etiqueta: "Stock", Tipo: TipoNumero},
			},
			[]Columna{
				{Titulo: "Nombre comercial", Campo: "nombre_comercial"},
				{Titulo: "Principio activo", Campo: "principio_activo"},
				{Titulo: "Concentración", Campo: "concentracion"},
				{Titulo: "Presentación", Campo: "presentacion"},
				{Titulo: "Stock", Campo: "stock"},
			},
		),
		nuevaPagina[models.ConsultaMedica](v,
			InfoPagina{Slug: "consultas", Titulo: "Consulta Médica", TituloPlural: "Consultas Médicas"},
			repository.Store.Consultas, repository.CamposConsulta,
			[]Campo{
				{Nombre: "paciente", Etiqueta: "Paciente", Tipo: TipoSelect, Requerido: true, Fuente: pacientes},
				{Nombre: "medico", Etiqueta: "Médico", Tipo: TipoSelect, Requerido: true, Fuente: medicos},
				{Nombre: "fecha_hora", Etiqueta: "Fecha y hora", Tipo: TipoFechaHora, Requerido: true},
				{Nombre: "motivo_consulta", Etiqueta: "Motivo de consulta", Tipo: TipoArea, Requerido: true},
				{Nombre: "diagnostico", Etiqueta: "Diagnóstico", Tipo: TipoArea},
				{Nombre: "estado", Etiqueta: "Estado", Tipo: TipoSelect, Requerido: true,
					Opciones: models.OpcionesEstadoConsulta, Ayuda: "Estado de la cita: Pendiente, Confirmada, Realizada, Cancelada"},
			},
			[]Columna{
				{Titulo: "Fecha y hora", Campo: "fecha_hora"},
				{Titulo: "Paciente", Campo: "paciente_nombre"},
				{Titulo: "Médico", Campo: "medico_nombre"},
				{Titulo: "Motivo", Campo: "motivo_consulta"},
				{Titulo: "Estado", Campo: "estado", Opciones: models.OpcionesEstadoConsulta},
			},
		),
		nuevaPagina[models.Tratamiento](v,
			InfoPagina{Slug: "tratamientos", Titulo: "Tratamiento", TituloPlural: "Tratamientos"},
			repository.Store.Tratamientos, repository.CamposTratamiento,
			[]Campo{
				{Nombre: "consulta", Etiqueta: "Consulta", Tipo: TipoSelect, Requerido: true, Fuente: consultas},
				{Nombre: "tipo", Etiqueta: "Tipo", Tipo: TipoSelect, Requerido: true, Fuente: tipos, Ayuda: "Clasificación del tratamiento."},
				{Nombre: "nombre", Etiqueta: "Nombre", Tipo: TipoTexto, Requerido: true},
				{Nombre: "descripcion", Etiqueta: "Descripción", Tipo: TipoArea, Requerido: true},
				{Nombre: "fecha_inicio", Etiqueta: "Fecha de inicio", Tipo: TipoFecha, Requerido: true},
				{Nombre: "fecha_fin", Etiqueta: "Fecha de término", Tipo: TipoFecha},
			},
			[]Columna{
				{Titulo: "Nombre", Campo: "nombre"},
				{Titulo: "Tipo", Campo: "tipo_nombre"},
				{Titulo: "Paciente", Campo: "paciente_nombre"},
				{Titulo: "Inicio", Campo: "fecha_inicio"},
				{Titulo: "Término", Campo: "fecha_fin"},
			},
		),
		nuevaPagina[models.RecetaMedica](v,
			InfoPagina{Slug: "recetas", Titulo: "Receta Médica", TituloPlural: "Recetas Médicas"},
			repository.Store.Recetas, repository.CamposReceta,
			[]Campo{
				{Nombre: "consulta", Etiqueta: "Consulta", Tipo: TipoSelect, Requerido: true, Fuente: consultas},
				{Nombre: "indicaciones_generales", Etiqueta: "Indicaciones generales", Tipo: TipoArea},
			},
			[]Columna{
				{Titulo: "Paciente", Campo: "paciente_nombre"},
				{Titulo: "Emisión", Campo: "fecha_emision"},
				{Titulo: "Indicaciones", Campo: "indicaciones_generales"},
			},
		),
		nuevaPagina[models.DetalleReceta](v,
			InfoPagina{Slug: "detalles-receta", Titulo: "Detalle de Receta", TituloPlural: "Detalles de Receta"},
			repository.Store.DetallesReceta, repository.CamposDetalleReceta,
			[]Campo{
				{Nombre: "receta", Etiqueta: "Receta", Tipo: TipoSelect, Requerido: true, Fuente: recetas},
				{Nombre: "medicamento", Etiqueta: "Medicamento", Tipo: TipoSelect, Requerido: true, Fuente: medicamentos},
				{Nombre: "dosis", Etiqueta: "Dosis", Tipo: TipoTexto, Requerido: true},
				{Nombre: "frecuencia", Etiqueta: "Frecuencia", Tipo: TipoTexto, Requerido: true},
				{Nombre: "duracion", Etiqueta: "Duración", Tipo: TipoTexto, Requerido: true},
			},
			[]Columna{
				{Titulo: "Receta", Campo: "receta"},
				{Titulo: "Medicamento", Campo: "medicamento_nombre"},
				{Titulo: "Dosis", Campo: "dosis"},
				{Titulo: "Frecuencia", Campo: "frecuencia"},
				{Titulo: "Duración", Campo: "duracion"},
			},
		),
	}
}
