package handlers

import (
	"github.com/lizet96/saludvital-backend/models"
	"github.com/lizet96/saludvital-backend/repository"
)

// Recursos retorna los endpoints CRUD de todas las entidades, en el orden de la documentación
func (h *Handler) Recursos() []Endpoint {
	return []Endpoint{
		nuevoRecurso[models.Especialidad](h, InfoRecurso{
			Nombre: "especialidades", Singular: "especialidad", Plural: "especialidades",
			Titulo: "Especialidad", Genero: "a", Campos: repository.CamposEspecialidad,
		}, repository.Store.Especialidades),
		nuevoRecurso[models.TipoTratamiento](h, InfoRecurso{
			Nombre: "tipos-tratamiento", Singular: "tipo_tratamiento", Plural: "tipos_tratamiento",
			Titulo: "Tipo de tratamiento", Genero: "o", Campos: repository.CamposTipoTratamiento,
		}, repository.Store.TiposTratamiento),
		nuevoRecurso[models.Paciente](h, InfoRecurso{
			Nombre: "pacientes", Singular: "paciente", Plural: "pacientes",
			Titulo: "Paciente", Genero: "o", Campos: repository.CamposPaciente,
		}, repository.Store.Pacientes),
		nuevoRecurso[models.Medico](h, InfoRecurso{
			Nombre: "medicos", Singular: "medico", Plural: "medicos",
			Titulo: "Médico", Genero: "o", Campos: repository.CamposMedico,
		}, repository.Store.Medicos),
		nuevoRecurso[models.Medicamento](h, InfoRecurso{
			Nombre: "medicamentos", Singular: "medicamento", Plural: "medicamentos",
			Titulo: "Medicamento", Genero: "o", Campos: repository.CamposMedicamento,
		}, repository.Store.Medicamentos),
		nuevoRecurso[models.ConsultaMedica](h, InfoRecurso{
			Nombre: "consultas-medicas", Singular: "consulta_medica", Plural: "consultas_medicas",
			Titulo: "Consulta médica", Genero: "a", Campos: repository.CamposConsulta,
		}, repository.Store.Consultas),
		nuevoRecurso[models.Tratamiento](h, InfoRecurso{
			Nombre: "tratamientos", Singular: "tratamiento", Plural: "tratamientos",
			Titulo: "Tratamiento", Genero: "o", Campos: repository.CamposTratamiento,
		}, repository.Store.Tratamientos),
		nuevoRecurso[models.RecetaMedica](h, InfoRecurso{
			Nombre: "recetas-medicas", Singular: "receta_medica", Plural: "recetas_medicas",
			Titulo: "Receta médica", Genero: "a", Campos: repository.CamposReceta,
			SoloLectura: []string{"fecha_emision"},
		}, repository.Store.Recetas),
		nuevoRecurso[models.DetalleReceta](h, InfoRecurso{
			Nombre: "detalles-receta", Singular: "detalle_receta", Plural: "detalles_receta",
			Titulo: "Detalle de receta", Genero: "o", Campos: repository.CamposDetalleReceta,
		}, repository.Store.DetallesReceta),
	}
}
