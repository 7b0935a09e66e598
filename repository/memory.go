package repository

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/lizet96/saludvital-backend/models"
)

// maxLogsMemoria limita el registro de peticiones retenido por el almacén en memoria
const maxLogsMemoria = 10000

var _ Store = (*MemoryStore)(nil)

// MemoryStore implementa Store sin base de datos. Respeta las mismas reglas de
// unicidad, PROTECT y CASCADE que el esquema de PostgreSQL.
type MemoryStore struct {
	mu sync.RWMutex

	especialidades   *memTable[models.Especialidad]
	tiposTratamiento *memTable[models.TipoTratamiento]
	pacientes        *memTable[models.Paciente]
	medicos          *memTable[models.Medico]
	medicamentos     *memTable[models.Medicamento]
	consultas        *memTable[models.ConsultaMedica]
	tratamientos     *memTable[models.Tratamiento]
	recetas          *memTable[models.RecetaMedica]
	detalles         *memTable[models.DetalleReceta]

	logs      []models.Log
	nextLogID int
	now       func() time.Time
}

// NewMemoryStore crea un almacén vacío
func NewMemoryStore() *MemoryStore {
	s := &MemoryStore{now: time.Now}
	s.registrarTablas()
	return s
}

func (s *MemoryStore) Especialidades() Repository[models.Especialidad] { return s.especialidades }
func (s *MemoryStore) TiposTratamiento() Repository[models.TipoTratamiento] {
	return s.tiposTratamiento
}
func (s *MemoryStore) Pacientes() Repository[models.Paciente]           { return s.pacientes }
func (s *MemoryStore) Medicos() Repository[models.Medico]               { return s.medicos }
func (s *MemoryStore) Medicamentos() Repository[models.Medicamento]     { return s.medicamentos }
func (s *MemoryStore) Consultas() Repository[models.ConsultaMedica]     { return s.consultas }
func (s *MemoryStore) Tratamientos() Repository[models.Tratamiento]     { return s.tratamientos }
func (s *MemoryStore) Recetas() Repository[models.RecetaMedica]         { return s.recetas }
func (s *MemoryStore) DetallesReceta() Repository[models.DetalleReceta] { return s.detalles }

func (s *MemoryStore) Ping(ctx context.Context) error { return ctx.Err() }

func (s *MemoryStore) Close() {}

// GuardarLog agrega una entrada al registro descartando las más antiguas sobre el límite
func (s *MemoryStore) GuardarLog(ctx context.Context, entry models.Log) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextLogID++
	entry.IDLog = s.nextLogID
	if entry.Timestamp.IsZero() {
		entry.Timestamp = s.now()
	}
	s.logs = append(s.logs, entry)
	if len(s.logs) > maxLogsMemoria {
		s.logs = slices.Clone(s.logs[len(s.logs)-maxLogsMemoria:])
	}
	return nil
}

// ListarLogs retorna las entradas más recientes primero
func (s *MemoryStore) ListarLogs(ctx context.Context, f models.FiltroLogs) ([]models.Log, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Log
	for i := len(s.logs) - 1; i >= 0; i-- {
		l := s.logs[i]
		switch {
		case f.Method != "" && !strings.EqualFold(l.Method, f.Method):
			continue
		case f.StatusCode != 0 && l.StatusCode != f.StatusCode:
			continue
		case f.Path != "" && !strings.Contains(strings.ToLower(l.Path), strings.ToLower(f.Path)):
			continue
		case f.IP != "" && l.IP != f.IP:
			continue
		case f.LogLevel != "" && l.LogLevel != f.LogLevel:
			continue
		case f.FechaInicio != nil && l.Timestamp.Before(*f.FechaInicio):
			continue
		case f.FechaFin != nil && l.Timestamp.After(*f.FechaFin):
			continue
		}
		out = append(out, l)
	}
	total := len(out)
	return paginar(out, f.Limit, f.Offset), total, nil
}

// Resumen calcula los indicadores generales de la clínica
func (s *MemoryStore) Resumen(ctx context.Context, stockMinimo int) (models.ResumenClinica, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r := models.ResumenClinica{
		TotalPacientes:     len(s.pacientes.rows),
		TotalMedicos:       len(s.medicos.rows),
		TotalConsultas:     len(s.consultas.rows),
		ConsultasPorEstado: map[string]int{},
		RecetasEmitidas:    len(s.recetas.rows),
		StockMinimo:        stockMinimo,
		FechaGeneracion:    s.now(),
	}
	for _, o := range models.OpcionesEstadoConsulta {
		r.ConsultasPorEstado[o.Valor] = 0
	}
	hoy := s.now().Format(models.FormatoFecha)
	for _, c := range s.consultas.rows {
		r.ConsultasPorEstado[c.Estado]++
		if c.FechaHora.Format(models.FormatoFecha) == hoy {
			r.ConsultasHoy++
		}
	}
	for _, m := range s.medicamentos.rows {
		if m.Stock <= stockMinimo {
			r.MedicamentosBajoStock = append(r.MedicamentosBajoStock, m)
		}
	}
	slices.SortFunc(r.MedicamentosBajoStock, func(a, b models.Medicamento) int {
		return cmp.Or(cmp.Compare(a.Stock, b.Stock), strings.Compare(a.NombreComercial, b.NombreComercial))
	})
	return r, nil
}

// memTable es el repositorio genérico sobre un mapa. Todas las funciones de
// configuración se invocan con el candado del almacén tomado.
type memTable[T any] struct {
	store  *MemoryStore
	campos Campos
	rows   map[int]T
	nextID int

	// valores expone los campos usados para búsqueda, filtros y orden
	valores func(T) map[string]any
	// completar rellena los campos derivados (nombres de registros relacionados)
	completar func(*T)
	// verificar aplica unicidad y existencia de claves foráneas
	verificar func(v *T, id int) error
	// antesDeBorrar aplica PROTECT y retorna los borrados en cascada a ejecutar
	antesDeBorrar func(id int) (func(), error)
	// alCrear asigna valores que define el almacenamiento (por ejemplo fechas de emisión)
	alCrear func(*T)
	// separar copia los campos puntero para que las filas guardadas no se compartan
	separar func(*T)
}

func newMemTable[T any](s *MemoryStore, campos Campos) *memTable[T] {
	return &memTable[T]{store: s, campos: campos, rows: map[int]T{}}
}

func (t *memTable[T]) List(ctx context.Context, p ListParams) ([]T, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()

	type fila struct {
		v    T
		vals map[string]any
	}
	var filas []fila
	termino := strings.ToLower(strings.TrimSpace(p.Search))
	for _, v := range t.rows {
		t.desacoplar(&v)
		t.completar(&v)
		vals := t.valores(v)
		if !coincideFiltros(vals, t.campos, p.Filters) {
			continue
		}
		if termino != "" && !coincideBusqueda(vals, t.campos.Busqueda, termino) {
			continue
		}
		filas = append(filas, fila{v: v, vals: vals})
	}

	orden := t.campos.OrdenEfectivo(p.Ordering)
	slices.SortFunc(filas, func(a, b fila) int {
		for _, o := range orden {
			desc := strings.HasPrefix(o, "-")
			campo := strings.TrimPrefix(o, "-")
			c := comparar(a.vals[campo], b.vals[campo])
			if desc {
				c = -c
			}
			if c != 0 {
				return c
			}
		}
		return comparar(a.vals["id"], b.vals["id"])
	})

	out := make([]T, 0, len(filas))
	for _, f := range filas {
		out = append(out, f.v)
	}
	return paginar(out, p.Limit, p.Offset), len(out), nil
}

func (t *memTable[T]) Get(ctx context.Context, id int) (T, error) {
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	v, ok := t.rows[id]
	if !ok {
		var zero T
		return zero, ErrNotFound
	}
	t.desacoplar(&v)
	t.completar(&v)
	return v, nil
}

func (t *memTable[T]) Create(ctx context.Context, v *T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	if err := t.verificar(v, 0); err != nil {
		return err
	}
	if t.alCrear != nil {
		t.alCrear(v)
	}
	t.nextID++
	entidad(v).AsignarID(t.nextID)
	t.guardar(t.nextID, *v)
	t.completar(v)
	return nil
}

func (t *memTable[T]) Update(ctx context.Context, v *T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	id := entidad(v).Identificador()
	actual, ok := t.rows[id]
	if !ok {
		return ErrNotFound
	}
	if err := t.verificar(v, id); err != nil {
		return err
	}
	if t.alCrear != nil {
		// Los valores asignados al crear no se modifican en una actualización
		conservarAsignados(&actual, v)
	}
	t.guardar(id, *v)
	t.completar(v)
	return nil
}

func (t *memTable[T]) Delete(ctx context.Context, id int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	if _, ok := t.rows[id]; !ok {
		return ErrNotFound
	}
	if t.antesDeBorrar != nil {
		cascada, err := t.antesDeBorrar(id)
		if err != nil {
			return err
		}
		if cascada != nil {
			cascada()
		}
	}
	delete(t.rows, id)
	return nil
}

// guardar almacena una copia de v que no comparte memoria con el llamador
func (t *memTable[T]) guardar(id int, v T) {
	t.desacoplar(&v)
	t.rows[id] = v
}

func (t *memTable[T]) desacoplar(v *T) {
	if t.separar != nil {
		t.separar(v)
	}
}

// existe se usa desde las funciones de verificación, con el candado ya tomado
func (t *memTable[T]) existe(id int) bool {
	_, ok := t.rows[id]
	return ok
}

// alguno indica si alguna fila cumple la condición
func (t *memTable[T]) alguno(cond func(T) bool) bool {
	for _, v := range t.rows {
		if cond(v) {
			return true
		}
	}
	return false
}

// borrarDonde elimina las filas que cumplen la condición y retorna sus ids
func (t *memTable[T]) borrarDonde(cond func(T) bool) []int {
	var ids []int
	for id, v := range t.rows {
		if cond(v) {
			ids = append(ids, id)
			delete(t.rows, id)
		}
	}
	return ids
}

func conservarAsignados[T any](actual, nuevo *T) {
	if r, ok := any(nuevo).(*models.RecetaMedica); ok {
		r.FechaEmision = any(actual).(*models.RecetaMedica).FechaEmision
	}
}

func entidad[T any](v *T) models.Entidad {
	e, ok := any(v).(models.Entidad)
	if !ok {
		panic(fmt.Sprintf("repository: %T no implementa models.Entidad", v))
	}
	return e
}

func coincideFiltros(vals map[string]any, campos Campos, filtros map[string]string) bool {
	for campo, valor := range filtros {
		if !campos.PermiteFiltro(campo) {
			continue
		}
		if fmt.Sprint(vals[campo]) != valor {
			return false
		}
	}
	return true
}

func coincideBusqueda(vals map[string]any, campos []string, termino string) bool {
	for _, campo := range campos {
		if strings.Contains(strings.ToLower(fmt.Sprint(vals[campo])), termino) {
			return true
		}
	}
	return false
}

func comparar(a, b any) int {
	switch x := a.(type) {
	case int:
		y, _ := b.(int)
		return cmp.Compare(x, y)
	case string:
		y, _ := b.(string)
		return strings.Compare(strings.ToLower(x), strings.ToLower(y))
	case time.Time:
		y, _ := b.(time.Time)
		return x.Compare(y)
	case models.Fecha:
		y, _ := b.(models.Fecha)
		return x.Compare(y.Time)
	}
	return 0
}

func paginar[T any](items []T, limit, offset int) []T {
	if offset > len(items) {
		offset = len(items)
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
