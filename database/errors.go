package database

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/lizet96/saludvital-backend/repository"
)

// Códigos SQLSTATE relevantes
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

// restriccion describe una constraint del esquema en términos de la API
type restriccion struct {
	campo       string // campo JSON afectado
	relacionada string // recurso que mantiene la referencia (para PROTECT)
}

var restricciones = map[string]restriccion{
	"especialidades_nombre_key":              {campo: "nombre"},
	"tipos_tratamiento_nombre_key":           {campo: "nombre"},
	"pacientes_rut_key":                      {campo: "rut"},
	"medicos_rut_key":                        {campo: "rut"},
	"medicos_email_key":                      {campo: "email"},
	"medicamentos_nombre_comercial_key":      {campo: "nombre_comercial"},
	"recetas_consulta_key":                   {campo: "consulta"},
	"detalles_receta_receta_medicamento_key": {campo: "medicamento"},

	"medicos_especialidad_fk":        {campo: "especialidad", relacionada: "medicos"},
	"consultas_paciente_fk":          {campo: "paciente", relacionada: "consultas"},
	"consultas_medico_fk":            {campo: "medico", relacionada: "consultas"},
	"tratamientos_consulta_fk":       {campo: "consulta", relacionada: "tratamientos"},
	"tratamientos_tipo_fk":           {campo: "tipo", relacionada: "tratamientos"},
	"recetas_consulta_fk":            {campo: "consulta", relacionada: "recetas"},
	"detalles_receta_receta_fk":      {campo: "receta", relacionada: "detalles de receta"},
	"detalles_receta_medicamento_fk": {campo: "medicamento", relacionada: "detalles de receta"},
}

// operacion distingue si una violación de FK proviene de escribir o de borrar
type operacion int

const (
	opEscritura operacion = iota
	opBorrado
)

// traducirError convierte errores de pgx en los errores tipados del repositorio
func traducirError(err error, op operacion) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return repository.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	r, conocida := restricciones[pgErr.ConstraintName]
	switch pgErr.Code {
	case codeUniqueViolation:
		if !conocida {
			r.campo = pgErr.ConstraintName
		}
		return &repository.DuplicateError{Field: r.campo}
	case codeForeignKeyViolation:
		if op == opBorrado {
			if !conocida {
				r.relacionada = pgErr.TableName
			}
			return &repository.ProtectedError{Related: r.relacionada}
		}
		if !conocida {
			r.campo = pgErr.ConstraintName
		}
		return &repository.ReferenceError{Field: r.campo}
	}
	return err
}
