package handlers

import (
	"reflect"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/lizet96/saludvital-backend/models"
	"github.com/lizet96/saludvital-backend/repository"
)

// Paginación de los listados
const (
	PageSizePorDefecto = 50
	PageSizeMaximo     = 200
)

// InfoRecurso describe un recurso de la API
type InfoRecurso struct {
	// Nombre es el segmento de la URL (consultas-medicas)
	Nombre string
	// Singular y Plural son las claves JSON de las respuestas
	Singular string
	Plural   string
	// Titulo y Genero ("o" / "a") forman los mensajes ("Paciente creado exitosamente")
	Titulo string
	Genero string
	Campos repository.Campos
	// SoloLectura lista campos asignados por el almacenamiento además de id y los *_nombre
	SoloLectura []string
	Tipo        reflect.Type
}

// Endpoint es un recurso CRUD que se registra en un router
type Endpoint interface {
	Info() InfoRecurso
	Registrar(r fiber.Router)
}

// recurso implementa el CRUD genérico de una entidad sobre su repositorio
type recurso[T any, PT interface {
	*T
	models.Entidad
}] struct {
	h    *Handler
	info InfoRecurso
	repo func(repository.Store) repository.Repository[T]
}

func nuevoRecurso[T any, PT interface {
	*T
	models.Entidad
}](h *Handler, info InfoRecurso, repo func(repository.Store) repository.Repository[T]) *recurso[T, PT] {
	info.Tipo = reflect.TypeFor[T]()
	return &recurso[T, PT]{h: h, info: info, repo: repo}
}

func (r *recurso[T, PT]) Info() InfoRecurso { return r.info }

func (r *recurso[T, PT]) Registrar(router fiber.Router) {
	g := router.Group("/" + r.info.Nombre)
	g.Get("/", r.Listar)
	g.Post("/", r.Crear)
	g.Get("/:id", r.Obtener)
	g.Put("/:id", r.Actualizar)
	g.Patch("/:id", r.ActualizarParcial)
	g.Delete("/:id", r.Eliminar)
}

// Listar retorna la página solicitada aplicando búsqueda, filtros y orden
func (r *recurso[T, PT]) Listar(c *fiber.Ctx) error {
	params, page, pageSize := ParseListParams(c, r.info.Campos)
	items, total, err := r.repo(r.h.Store).List(c.UserContext(), params)
	if err != nil {
		return r.h.responderError(c, err)
	}
	if items == nil {
		items = []T{}
	}
	return c.JSON(fiber.Map{
		r.info.Plural: items,
		"total":       total,
		"page":        page,
		"page_size":   pageSize,
	})
}

func (r *recurso[T, PT]) Obtener(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return idInvalido(c)
	}
	v, err := r.repo(r.h.Store).Get(c.UserContext(), id)
	if err != nil {
		return r.h.responderError(c, err)
	}
	return c.JSON(fiber.Map{r.info.Singular: v})
}

func (r *recurso[T, PT]) Crear(c *fiber.Ctx) error {
	var v T
	if err := c.BodyParser(&v); err != nil {
		return r.h.errorDeCuerpo(c, err)
	}
	PT(&v).AsignarID(0)
	if err := r.guardar(c, &v, false); err != nil {
		return r.h.responderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		r.info.Singular: v,
		"mensaje":       r.mensaje("cread"),
	})
}

// Actualizar reemplaza todos los campos editables (PUT)
func (r *recurso[T, PT]) Actualizar(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return idInvalido(c)
	}
	var v T
	if err := c.BodyParser(&v); err != nil {
		return r.h.errorDeCuerpo(c, err)
	}
	PT(&v).AsignarID(id)
	if err := r.guardar(c, &v, true); err != nil {
		return r.h.responderError(c, err)
	}
	return c.JSON(fiber.Map{
		r.info.Singular: v,
		"mensaje":       r.mensaje("actualizad"),
	})
}

// ActualizarParcial aplica el cuerpo sobre el registro guardado (PATCH); los
// campos ausentes conservan su valor
func (r *recurso[T, PT]) ActualizarParcial(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return idInvalido(c)
	}
	v, err := r.repo(r.h.Store).Get(c.UserContext(), id)
	if err != nil {
		return r.h.responderError(c, err)
	}
	if err := c.BodyParser(&v); err != nil {
		return r.h.errorDeCuerpo(c, err)
	}
	PT(&v).AsignarID(id)
	if err := r.guardar(c, &v, true); err != nil {
		return r.h.responderError(c, err)
	}
	return c.JSON(fiber.Map{
		r.info.Singular: v,
		"mensaje":       r.mensaje("actualizad"),
	})
}

func (r *recurso[T, PT]) Eliminar(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return idInvalido(c)
	}
	if err := r.repo(r.h.Store).Delete(c.UserContext(), id); err != nil {
		return r.h.responderError(c, err)
	}
	return c.JSON(fiber.Map{"mensaje": r.mensaje("eliminad")})
}

func (r *recurso[T, PT]) guardar(c *fiber.Ctx, v *T, existente bool) error {
	e := PT(v)
	e.Normalizar()
	if err := e.Validar(); err != nil {
		return err
	}
	if existente {
		return r.repo(r.h.Store).Update(c.UserContext(), v)
	}
	return r.repo(r.h.Store).Create(c.UserContext(), v)
}

func (r *recurso[T, PT]) mensaje(participio string) string {
	return r.info.Titulo + " " + participio + r.info.Genero + " exitosamente"
}

// ParseListParams lee search, ordering, los filtros permitidos y la paginación
func ParseListParams(c *fiber.Ctx, campos repository.Campos) (repository.ListParams, int, int) {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	pageSize := c.QueryInt("page_size", PageSizePorDefecto)
	if pageSize < 1 {
		pageSize = PageSizePorDefecto
	}
	if pageSize > PageSizeMaximo {
		pageSize = PageSizeMaximo
	}

	params := repository.ListParams{
		Search: strings.Clone(strings.TrimSpace(c.Query("search"))),
		Limit:  pageSize,
		Offset: (page - 1) * pageSize,
	}
	if orden := c.Query("ordering"); orden != "" {
		for _, o := range strings.Split(orden, ",") {
			if o = strings.TrimSpace(o); o != "" {
				params.Ordering = append(params.Ordering, strings.Clone(o))
			}
		}
	}
	for _, campo := range campos.Filtros {
		if v := c.Query(campo); v != "" {
			if params.Filters == nil {
				params.Filters = map[string]string{}
			}
			params.Filters[campo] = strings.Clone(v)
		}
	}
	return params, page, pageSize
}
