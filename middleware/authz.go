package middleware

import (
	"fmt"
	"strings"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"github.com/gofiber/fiber/v2"

	"github.com/lizet96/saludvital-backend/models"
)

// Acciones evaluadas por la política
const (
	AccionLeer     = "read"
	AccionEscribir = "write"
)

const modeloRBAC = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && keyMatch(r.obj, p.obj) && (p.act == "*" || r.act == p.act)
`

// recursosAgenda son los recursos que recepción puede modificar
var recursosAgenda = []string{"pacientes", "consultas-medicas", "tratamientos", "recetas-medicas", "detalles-receta"}

// recursosLectura son los recursos visibles para cualquier operador
var recursosLectura = []string{
	"especialidades", "tipos-tratamiento", "pacientes", "medicos", "medicamentos",
	"consultas-medicas", "tratamientos", "recetas-medicas", "detalles-receta", "reportes",
}

// Autorizador evalúa permisos de rol sobre los recursos de la API con casbin
type Autorizador struct {
	enforcer *casbin.Enforcer
}

// NewAutorizador construye el enforcer con la política por defecto:
// admin accede a todo, recepcion hereda lectura y escribe la agenda, lectura solo consulta.
func NewAutorizador() (*Autorizador, error) {
	m, err := model.NewModelFromString(modeloRBAC)
	if err != nil {
		return nil, fmt.Errorf("authz: modelo inválido: %w", err)
	}
	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("authz: %w", err)
	}

	politicas := [][]string{{SubjectFromRol(models.RolAdmin), "*", "*"}}
	for _, r := range recursosLectura {
		politicas = append(politicas, []string{SubjectFromRol(models.RolLectura), r, AccionLeer})
	}
	for _, r := range recursosAgenda {
		politicas = append(politicas, []string{SubjectFromRol(models.RolRecepcion), r, AccionEscribir})
	}
	if _, err := enforcer.AddPolicies(politicas); err != nil {
		return nil, fmt.Errorf("authz: cargar políticas: %w", err)
	}
	if _, err := enforcer.AddGroupingPolicy(SubjectFromRol(models.RolRecepcion), SubjectFromRol(models.RolLectura)); err != nil {
		return nil, fmt.Errorf("authz: cargar roles: %w", err)
	}
	return &Autorizador{enforcer: enforcer}, nil
}

// SubjectFromRol convierte el rol del token en el sujeto de la política
func SubjectFromRol(rol string) string {
	rol = strings.TrimSpace(strings.ToLower(rol))
	if rol == "" {
		rol = "anonimo"
	}
	return "rol:" + rol
}

// Permitido indica si el rol puede ejecutar la acción sobre el recurso
func (a *Autorizador) Permitido(rol, recurso, accion string) (bool, error) {
	return a.enforcer.Enforce(SubjectFromRol(rol), recurso, accion)
}

// AccionDeMetodo traduce el método HTTP a la acción de la política
func AccionDeMetodo(method string) string {
	switch method {
	case fiber.MethodGet, fiber.MethodHead, fiber.MethodOptions:
		return AccionLeer
	default:
		return AccionEscribir
	}
}

// RequirePermission aplica la política al recurso indicado por el primer
// segmento de la ruta bajo prefijo (por ejemplo /api/v1/pacientes/3 -> pacientes)
func RequirePermission(a *Autorizador, prefijo string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		recurso := strings.TrimPrefix(c.Path(), prefijo)
		recurso = strings.Trim(recurso, "/")
		if i := strings.IndexByte(recurso, '/'); i >= 0 {
			recurso = recurso[:i]
		}

		rol, _ := c.Locals(LocalRol).(string)
		ok, err := a.Permitido(rol, recurso, AccionDeMetodo(c.Method()))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Error al evaluar permisos")
		}
		if !ok {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Acceso denegado: permisos insuficientes",
			})
		}
		return c.Next()
	}
}
