package database

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lizet96/saludvital-backend/models"
	"github.com/lizet96/saludvital-backend/repository"
)

// querier es el subconjunto de pgxpool.Pool que usan los repositorios
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// scanner cubre pgx.Row y pgx.Rows
type scanner interface {
	Scan(dest ...any) error
}

var _ repository.Store = (*PGStore)(nil)

// PGStore implementa repository.Store sobre PostgreSQL
type PGStore struct {
	pool *pgxpool.Pool
	db   querier

	especialidades   *pgTable[models.Especialidad]
	tiposTratamiento *pgTable[models.TipoTratamiento]
	pacientes        *pgTable[models.Paciente]
	medicos          *pgTable[models.Medico]
	medicamentos     *pgTable[models.Medicamento]
	consultas        *pgTable[models.ConsultaMedica]
	tratamientos     *pgTable[models.Tratamiento]
	recetas          *pgTable[models.RecetaMedica]
	detalles         *pgTable[models.DetalleReceta]
}

// NewPGStore crea el almacén sobre un pool ya conectado
func NewPGStore(pool *pgxpool.Pool) *PGStore {
	s := newPGStore(pool)
	s.pool = pool
	return s
}

func newPGStore(db querier) *PGStore {
	return &PGStore{
		db:               db,
		especialidades:   tablaEspecialidades(db),
		tiposTratamiento: tablaTiposTratamiento(db),
		pacientes:        tablaPacientes(db),
		medicos:          tablaMedicos(db),
		medicamentos:     tablaMedicamentos(db),
		consultas:        tablaConsultas(db),
		tratamientos:     tablaTratamientos(db),
		recetas:          tablaRecetas(db),
		detalles:         tablaDetallesReceta(db),
	}
}

func (s *PGStore) Especialidades() repository.Repository[models.Especialidad] {
	return s.especialidades
}
func (s *PGStore) TiposTratamiento() repository.Repository[models.TipoTratamiento] {
	return s.tiposTratamiento
}
func (s *PGStore) Pacientes() repository.Repository[models.Paciente] { return s.pacientes }
func (s *PGStore) Medicos() repository.Repository[models.Medico]     { return s.medicos }
func (s *PGStore) Medicamentos() repository.Repository[models.Medicamento] {
	return s.medicamentos
}
func (s *PGStore) Consultas() repository.Repository[models.ConsultaMedica] { return s.consultas }
func (s *PGStore) Tratamientos() repository.Repository[models.Tratamiento] {
	return s.tratamientos
}
func (s *PGStore) Recetas() repository.Repository[models.RecetaMedica] { return s.recetas }
func (s *PGStore) DetallesReceta() repository.Repository[models.DetalleReceta] {
	return s.detalles
}

func (s *PGStore) Ping(ctx context.Context) error {
	if s.pool == nil {
		return nil
	}
	return s.pool.Ping(ctx)
}

// Close cierra el pool de conexiones
func (s *PGStore) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// pgTable es el repositorio genérico de una tabla
type pgTable[T any] struct {
	db     querier
	campos repository.Campos

	tabla string
	alias string
	// selectCols y from forman el SELECT con los JOIN de los nombres derivados
	selectCols string
	from       string
	// columnas escribibles, en el mismo orden que retorna valores
	columnas []string
	valores  func(*T) []any
	scan     func(scanner, *T) error
	// expr traduce los nombres de búsqueda, filtro y orden a expresiones SQL
	expr map[string]string
}

func (t *pgTable[T]) List(ctx context.Context, p repository.ListParams) ([]T, int, error) {
	where, args := t.condiciones(p)

	var total int
	countSQL := "SELECT COUNT(*) FROM " + t.from + where
	if err := t.db.QueryRow(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%s: contar: %w", t.tabla, err)
	}

	query := "SELECT " + t.selectCols + " FROM " + t.from + where + t.ordenSQL(p.Ordering)
	if p.Limit > 0 {
		args = append(args, p.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if p.Offset > 0 {
		args = append(args, p.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := t.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: listar: %w", t.tabla, err)
	}
	defer rows.Close()

	items := []T{}
	for rows.Next() {
		var v T
		if err := t.scan(rows, &v); err != nil {
			return nil, 0, fmt.Errorf("%s: leer fila: %w", t.tabla, err)
		}
		items = append(items, v)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%s: listar: %w", t.tabla, err)
	}
	return items, total, nil
}

func (t *pgTable[T]) Get(ctx context.Context, id int) (T, error) {
	var v T
	query := "SELECT " + t.selectCols + " FROM " + t.from + " WHERE " + t.alias + ".id = $1"
	if err := t.scan(t.db.QueryRow(ctx, query, id), &v); err != nil {
		return v, traducirError(err, opEscritura)
	}
	return v, nil
}

func (t *pgTable[T]) Create(ctx context.Context, v *T) error {
	marcadores := make([]string, len(t.columnas))
	for i := range t.columnas {
		marcadores[i] = fmt.Sprintf("$%d", i+1)
	}
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING id",
		t.tabla, strings.Join(t.columnas, ", "), strings.Join(marcadores, ", "))

	var id int
	if err := t.db.QueryRow(ctx, query, t.valores(v)...).Scan(&id); err != nil {
		return traducirError(err, opEscritura)
	}
	return t.recargar(ctx, id, v)
}

func (t *pgTable[T]) Update(ctx context.Context, v *T) error {
	id := any(v).(models.Entidad).Identificador()
	sets := make([]string, len(t.columnas))
	for i, c := range t.columnas {
		sets[i] = fmt.Sprintf("%s = $%d", c, i+1)
	}
	args := append(t.valores(v), id)
	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d", t.tabla, strings.Join(sets, ", "), len(args))

	tag, err := t.db.Exec(ctx, query, args...)
	if err != nil {
		return traducirError(err, opEscritura)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return t.recargar(ctx, id, v)
}

func (t *pgTable[T]) Delete(ctx context.Context, id int) error {
	tag, err := t.db.Exec(ctx, "DELETE FROM "+t.tabla+" WHERE id = $1", id)
	if err != nil {
		return traducirError(err, opBorrado)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// recargar vuelve a leer la fila para completar id, valores por defecto y nombres derivados
func (t *pgTable[T]) recargar(ctx context.Context, id int, v *T) error {
	fresco, err := t.Get(ctx, id)
	if err != nil {
		return err
	}
	*v = fresco
	return nil
}

// condiciones arma el WHERE de búsqueda y filtros. Los filtros se recorren en orden
// para que la consulta generada sea estable.
func (t *pgTable[T]) condiciones(p repository.ListParams) (string, []any) {
	var conds []string
	var args []any

	claves := make([]string, 0, len(p.Filters))
	for k := range p.Filters {
		claves = append(claves, k)
	}
	slices.Sort(claves)
	for _, campo := range claves {
		expr, ok := t.expr[campo]
		if !ok || !t.campos.PermiteFiltro(campo) {
			continue
		}
		args = append(args, p.Filters[campo])
		conds = append(conds, fmt.Sprintf("%s::text = $%d", expr, len(args)))
	}

	if termino := strings.TrimSpace(p.Search); termino != "" {
		args = append(args, "%"+escaparLike(termino)+"%")
		var alternativas []string
		for _, campo := range t.campos.Busqueda {
			alternativas = append(alternativas, fmt.Sprintf("%s ILIKE $%d", t.expr[campo], len(args)))
		}
		conds = append(conds, "("+strings.Join(alternativas, " OR ")+")")
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (t *pgTable[T]) ordenSQL(pedido []string) string {
	var partes []string
	for _, o := range t.campos.OrdenEfectivo(pedido) {
		campo := strings.TrimPrefix(o, "-")
		expr, ok := t.expr[campo]
		if !ok {
			continue
		}
		if strings.HasPrefix(o, "-") {
			expr += " DESC"
		}
		partes = append(partes, expr)
	}
	partes = append(partes, t.alias+".id")
	return " ORDER BY " + strings.Join(partes, ", ")
}

var likeReplacer = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escaparLike(s string) string {
	return likeReplacer.Replace(s)
}
