package views

import (
	"context"
	"errors"
	"reflect"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/lizet96/saludvital-backend/handlers"
	"github.com/lizet96/saludvital-backend/models"
	"github.com/lizet96/saludvital-backend/repository"
)

// Tipos de input de los formularios
const (
	TipoTexto     = "text"
	TipoArea      = "textarea"
	TipoEmail     = "email"
	TipoNumero    = "number"
	TipoFecha     = "date"
	TipoFechaHora = "datetime-local"
	TipoSelect    = "select"
)

// fuenteOpciones carga las opciones de un select a partir de otro repositorio
type fuenteOpciones func(ctx context.Context, store repository.Store) ([]models.Opcion, error)

// Campo describe un input del formulario, identificado por el nombre JSON del modelo
type Campo struct {
	Nombre    string
	Etiqueta  string
	Tipo      string
	Requerido bool
	Ayuda     string
	// Opciones fijas (choices) o una fuente de registros relacionados
	Opciones []models.Opcion
	Fuente   fuenteOpciones
}

// Columna es una columna del listado
type Columna struct {
	Titulo string
	Campo  string
	// Opciones traduce el valor guardado a su etiqueta
	Opciones []models.Opcion
}

// campoForm es el campo listo para la plantilla
type campoForm struct {
	Campo
	Valor    string
	Error    string
	Opciones []models.Opcion
}

type fila struct {
	ID     int
	Celdas []string
}

// InfoPagina resume una página de gestión para el índice
type InfoPagina struct {
	Slug         string
	Titulo       string
	TituloPlural string
}

// Pagina es el CRUD HTML de una entidad
type Pagina interface {
	Info() InfoPagina
	Registrar(r fiber.Router)
}

type pagina[T any, PT interface {
	*T
	models.Entidad
}] struct {
	v        *Vistas
	info     InfoPagina
	repo     func(repository.Store) repository.Repository[T]
	campos   []Campo
	columnas []Columna
	listado  repository.Campos
}

func nuevaPagina[T any, PT interface {
	*T
	models.Entidad
}](v *Vistas, info InfoPagina, repo func(repository.Store) repository.Repository[T],
	listado repository.Campos, campos []Campo, columnas []Columna) *pagina[T, PT] {
	return &pagina[T, PT]{v: v, info: info, repo: repo, campos: campos, columnas: columnas, listado: listado}
}

func (p *pagina[T, PT]) Info() InfoPagina { return p.info }

func (p *pagina[T, PT]) Registrar(r fiber.Router) {
	g := r.Group("/" + p.info.Slug)
	g.Get("/", p.listar)
	g.Get("/crear", p.formCrear)
	g.Post("/crear", p.crear)
	g.Get("/editar/:id", p.formEditar)
	g.Post("/editar/:id", p.editar)
	g.Get("/eliminar/:id", p.confirmarEliminar)
	g.Post("/eliminar/:id", p.eliminar)
}

func (p *pagina[T, PT]) urlListado() string {
	return "/gestion/" + p.info.Slug + "/"
}

func (p *pagina[T, PT]) listar(c *fiber.Ctx) error {
	params, page, pageSize := handlers.ParseListParams(c, p.listado)
	items, total, err := p.repo(p.v.store).List(c.UserContext(), params)
	if err != nil {
		return p.v.fallo(c, err)
	}

	filas := make([]fila, 0, len(items))
	for i := range items {
		rv := reflect.ValueOf(&items[i]).Elem()
		f := fila{ID: PT(&items[i]).Identificador()}
		for _, col := range p.columnas {
			celda := ""
			if fv, ok := campoPorJSON(rv, col.Campo); ok {
				celda = textoCelda(fv, col.Opciones)
			}
			f.Celdas = append(f.Celdas, celda)
		}
		filas = append(filas, f)
	}

	titulos := make([]string, len(p.columnas))
	for i, col := range p.columnas {
		titulos[i] = col.Titulo
	}

	return c.Render("lista", fiber.Map{
		"Pagina":    p.info,
		"Columnas":  titulos,
		"Filas":     filas,
		"Total":     total,
		"Busqueda":  params.Search,
		"Page":      page,
		"Anterior":  page - 1,
		"Siguiente": siguiente(page, pageSize, total),
		"URL":       p.urlListado(),
	}, "layouts/base")
}

func siguiente(page, pageSize, total int) int {
	if page*pageSize < total {
		return page + 1
	}
	return 0
}

func (p *pagina[T, PT]) formCrear(c *fiber.Ctx) error {
	var v T
	PT(&v).Normalizar()
	return p.renderForm(c, fiber.StatusOK, &v, nil, false)
}

func (p *pagina[T, PT]) crear(c *fiber.Ctx) error {
	var v T
	errs := p.bind(c, &v)
	if err := p.guardar(c.UserContext(), &v, errs, false); err != nil {
		return p.falloForm(c, &v, err, false)
	}
	p.v.log.Info("Registro creado desde gestión", zap.String("pagina", p.info.Slug), zap.Int("id", PT(&v).Identificador()))
	return c.Redirect(p.urlListado(), fiber.StatusSeeOther)
}

func (p *pagina[T, PT]) formEditar(c *fiber.Ctx) error {
	v, err := p.obtener(c)
	if err != nil {
		return p.v.fallo(c, err)
	}
	return p.renderForm(c, fiber.StatusOK, &v, nil, true)
}

func (p *pagina[T, PT]) editar(c *fiber.Ctx) error {
	v, err := p.obtener(c)
	if err != nil {
		return p.v.fallo(c, err)
	}
	errs := p.bind(c, &v)
	if err := p.guardar(c.UserContext(), &v, errs, true); err != nil {
		return p.falloForm(c, &v, err, true)
	}
	return c.Redirect(p.urlListado(), fiber.StatusSeeOther)
}

func (p *pagina[T, PT]) confirmarEliminar(c *fiber.Ctx) error {
	v, err := p.obtener(c)
	if err != nil {
		return p.v.fallo(c, err)
	}
	return p.renderEliminar(c, fiber.StatusOK, &v, "")
}

func (p *pagina[T, PT]) eliminar(c *fiber.Ctx) error {
	v, err := p.obtener(c)
	if err != nil {
		return p.v.fallo(c, err)
	}
	err = p.repo(p.v.store).Delete(c.UserContext(), PT(&v).Identificador())
	var prot *repository.ProtectedError
	switch {
	case err == nil:
		return c.Redirect(p.urlListado(), fiber.StatusSeeOther)
	case errors.As(err, &prot):
		return p.renderEliminar(c, fiber.StatusConflict, &v, err.Error())
	default:
		return p.v.fallo(c, err)
	}
}

func (p *pagina[T, PT]) obtener(c *fiber.Ctx) (T, error) {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id <= 0 {
		var zero T
		return zero, repository.ErrNotFound
	}
	return p.repo(p.v.store).Get(c.UserContext(), id)
}

// bind copia los valores del formulario sobre v; solo se tocan los campos del formulario
func (p *pagina[T, PT]) bind(c *fiber.Ctx, v *T) models.ErroresValidacion {
	errs := models.ErroresValidacion{}
	rv := reflect.ValueOf(v).Elem()
	for _, campo := range p.campos {
		fv, ok := campoPorJSON(rv, campo.Nombre)
		if !ok {
			continue
		}
		if msg := asignarCampo(fv, c.FormValue(campo.Nombre)); msg != "" {
			errs.Agregar(campo.Nombre, msg)
		}
	}
	return errs
}

// guardar normaliza, valida y persiste. Los errores de conversión del formulario
// tienen prioridad sobre los de las reglas de validación.
func (p *pagina[T, PT]) guardar(ctx context.Context, v *T, errs models.ErroresValidacion, existente bool) error {
	e := PT(v)
	e.Normalizar()
	var verr models.ErroresValidacion
	if err := e.Validar(); err != nil {
		if !errors.As(err, &verr) {
			return err
		}
		for campo, msg := range verr {
			errs.Agregar(campo, msg)
		}
	}
	if len(errs) > 0 {
		return errs
	}
	if existente {
		return p.repo(p.v.store).Update(ctx, v)
	}
	return p.repo(p.v.store).Create(ctx, v)
}

// falloForm vuelve a mostrar el formulario con los errores por campo
func (p *pagina[T, PT]) falloForm(c *fiber.Ctx, v *T, err error, existente bool) error {
	var (
		verr models.ErroresValidacion
		dup  *repository.DuplicateError
		ref  *repository.ReferenceError
	)
	switch {
	case errors.As(err, &verr):
	case errors.As(err, &dup):
		verr = models.ErroresValidacion{dup.Field: "Ya existe un registro con este valor"}
	case errors.As(err, &ref):
		verr = models.ErroresValidacion{ref.Field: "El registro seleccionado no existe"}
	default:
		return p.v.fallo(c, err)
	}
	return p.renderForm(c, fiber.StatusUnprocessableEntity, v, verr, existente)
}

func (p *pagina[T, PT]) renderForm(c *fiber.Ctx, status int, v *T, errs models.ErroresValidacion, existente bool) error {
	rv := reflect.ValueOf(v).Elem()
	campos := make([]campoForm, 0, len(p.campos))
	for _, campo := range p.campos {
		cf := campoForm{Campo: campo, Error: errs[campo.Nombre], Opciones: campo.Opciones}
		if fv, ok := campoPorJSON(rv, campo.Nombre); ok {
			cf.Valor = valorCampo(fv, campo.Tipo == TipoSelect)
		}
		if campo.Fuente != nil {
			opciones, err := campo.Fuente(c.UserContext(), p.v.store)
			if err != nil {
				return p.v.fallo(c, err)
			}
			cf.Opciones = opciones
		}
		campos = append(campos, cf)
	}

	accion := "/gestion/" + p.info.Slug + "/crear"
	titulo := "Nuevo registro: " + p.info.Titulo
	if existente {
		id := PT(v).Identificador()
		accion = "/gestion/" + p.info.Slug + "/editar/" + strconv.Itoa(id)
		titulo = "Editar " + p.info.Titulo
	}

	return c.Status(status).Render("formulario", fiber.Map{
		"Pagina":  p.info,
		"Titulo":  titulo,
		"Accion":  accion,
		"Campos":  campos,
		"Errores": len(errs) > 0,
		"URL":     p.urlListado(),
	}, "layouts/base")
}

func (p *pagina[T, PT]) renderEliminar(c *fiber.Ctx, status int, v *T, motivo string) error {
	id := PT(v).Identificador()
	return c.Status(status).Render("eliminar", fiber.Map{
		"Pagina":   p.info,
		"Etiqueta": PT(v).String(),
		"Accion":   "/gestion/" + p.info.Slug + "/eliminar/" + strconv.Itoa(id),
		"Motivo":   motivo,
		"URL":      p.urlListado(),
	}, "layouts/base")
}

// opcionesDe lista todos los registros de un repositorio como opciones de un select
func opcionesDe[T any, PT interface {
	*T
	models.Entidad
}](repo func(repository.Store) repository.Repository[T]) fuenteOpciones {
	return func(ctx context.Context, store repository.Store) ([]models.Opcion, error) {
		items, _, err := repo(store).List(ctx, repository.ListParams{})
		if err != nil {
			return nil, err
		}
		opciones := make([]models.Opcion, 0, len(items))
		for i := range items {
			e := PT(&items[i])
			opciones = append(opciones, models.Opcion{Valor: strconv.Itoa(e.Identificador()), Etiqueta: e.String()})
		}
		return opciones, nil
	}
}
