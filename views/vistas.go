// Package views implementa la gestión HTML de la clínica con plantillas embebidas.
package views

import (
	"embed"
	"errors"
	"io/fs"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/template/html/v2"
	"go.uber.org/zap"

	"github.com/lizet96/saludvital-backend/repository"
)

//go:embed templates
var plantillas embed.FS

//go:embed static
var estaticos embed.FS

// NewEngine crea el motor de plantillas sobre los archivos embebidos
func NewEngine() *html.Engine {
	sub, err := fs.Sub(plantillas, "templates")
	if err != nil {
		panic(err)
	}
	return html.NewFileSystem(http.FS(sub), ".html")
}

// Vistas agrupa las páginas de gestión
type Vistas struct {
	store       repository.Store
	stockMinimo int
	log         *zap.Logger
	paginas     []Pagina
}

// New crea las vistas sobre el store indicado
func New(store repository.Store, stockMinimo int, log *zap.Logger) *Vistas {
	v := &Vistas{store: store, stockMinimo: stockMinimo, log: log}
	v.paginas = v.definirPaginas()
	return v
}

// Registrar monta el índice, los archivos estáticos y /gestion/<slug>/
func (v *Vistas) Registrar(app fiber.Router) {
	sub, err := fs.Sub(estaticos, "static")
	if err != nil {
		panic(err)
	}
	app.Use("/static", filesystem.New(filesystem.Config{Root: http.FS(sub)}))

	app.Get("/", v.Index)
	gestion := app.Group("/gestion")
	for _, p := range v.paginas {
		p.Registrar(gestion)
	}
}

// Index muestra el menú de gestión y el resumen de la clínica
func (v *Vistas) Index(c *fiber.Ctx) error {
	infos := make([]InfoPagina, len(v.paginas))
	for i, p := range v.paginas {
		infos[i] = p.Info()
	}
	resumen, err := v.store.Resumen(c.UserContext(), v.stockMinimo)
	if err != nil {
		return v.fallo(c, err)
	}
	return c.Render("index", fiber.Map{
		"Paginas": infos,
		"Resumen": resumen,
	}, "layouts/base")
}

// fallo muestra la página de error; los errores inesperados se registran
func (v *Vistas) fallo(c *fiber.Ctx, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).Render("error", fiber.Map{
			"Titulo":  "No encontrado",
			"Mensaje": "El registro solicitado no existe.",
		}, "layouts/base")
	}
	v.log.Error("Error en gestión", zap.String("path", c.Path()), zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).Render("error", fiber.Map{
		"Titulo":  "Error interno",
		"Mensaje": "No se pudo completar la operación.",
	}, "layouts/base")
}
