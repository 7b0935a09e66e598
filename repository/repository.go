// Package repository define el acceso a datos de la clínica y una implementación en memoria.
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/lizet96/saludvital-backend/models"
)

// ErrNotFound se retorna cuando el registro solicitado no existe
var ErrNotFound = errors.New("registro no encontrado")

// DuplicateError indica que un campo único ya está en uso
type DuplicateError struct {
	Field string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("ya existe un registro con el mismo valor de %s", e.Field)
}

// ProtectedError indica que el registro no puede eliminarse porque otros lo referencian
type ProtectedError struct {
	Related string
}

func (e *ProtectedError) Error() string {
	return fmt.Sprintf("no se puede eliminar porque tiene registros asociados en %s", e.Related)
}

// ReferenceError indica que una clave foránea apunta a un registro inexistente
type ReferenceError struct {
	Field string
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("el registro referenciado en %s no existe", e.Field)
}

func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

func IsDuplicate(err error) bool {
	var e *DuplicateError
	return errors.As(err, &e)
}

func IsProtected(err error) bool {
	var e *ProtectedError
	return errors.As(err, &e)
}

func IsReference(err error) bool {
	var e *ReferenceError
	return errors.As(err, &e)
}

// ListParams son los criterios de búsqueda, filtrado, orden y paginación de un listado
type ListParams struct {
	Search string
	// Filters compara por igualdad exacta; las claves deben estar en Campos.Filtros
	Filters map[string]string
	// Ordering admite "campo" o "-campo"; se ignoran los campos no permitidos
	Ordering []string
	Limit    int
	Offset   int
}

// Repository es el CRUD genérico de una entidad
type Repository[T any] interface {
	List(ctx context.Context, params ListParams) ([]T, int, error)
	Get(ctx context.Context, id int) (T, error)
	Create(ctx context.Context, v *T) error
	Update(ctx context.Context, v *T) error
	Delete(ctx context.Context, id int) error
}

// Store agrupa los repositorios de todas las entidades
type Store interface {
	Especialidades() Repository[models.Especialidad]
	TiposTratamiento() Repository[models.TipoTratamiento]
	Pacientes() Repository[models.Paciente]
	Medicos() Repository[models.Medico]
	Medicamentos() Repository[models.Medicamento]
	Consultas() Repository[models.ConsultaMedica]
	Tratamientos() Repository[models.Tratamiento]
	Recetas() Repository[models.RecetaMedica]
	DetallesReceta() Repository[models.DetalleReceta]

	GuardarLog(ctx context.Context, entry models.Log) error
	ListarLogs(ctx context.Context, filtro models.FiltroLogs) ([]models.Log, int, error)
	Resumen(ctx context.Context, stockMinimo int) (models.ResumenClinica, error)

	Ping(ctx context.Context) error
	Close()
}
