package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/lizet96/saludvital-backend/config"
	"github.com/lizet96/saludvital-backend/models"
	"github.com/lizet96/saludvital-backend/repository"
)

const totpSecreto = "JBSWY3DPEHPK3PXP"

func nuevaApp(t *testing.T, operadores ...models.Operador) (*fiber.App, *Handler) {
	t.Helper()
	cfg := config.Config{
		Environment:   models.EnvironmentDevelopment,
		JWTSecret:     "secreto-de-prueba",
		JWTExpiracion: time.Hour,
		StockMinimo:   5,
	}
	h := New(repository.NewMemoryStore(), cfg, operadores, zap.NewNop())

	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(zap.NewNop())})
	app.Get("/health", h.Health)
	api := app.Group("/api/v1")
	api.Post("/auth/login", h.Login)
	for _, r := range h.Recursos() {
		r.Registrar(api)
	}
	api.Get("/reportes/resumen", h.GenerarResumen)
	api.Get("/logs", h.ObtenerLogs)
	app.Use(NotFound)
	return app, h
}

func pedir(t *testing.T, app *fiber.App, metodo, ruta, cuerpo string) (int, map[string]any) {
	t.Helper()
	var body io.Reader
	if cuerpo != "" {
		body = strings.NewReader(cuerpo)
	}
	req := httptest.NewRequest(metodo, ruta, body)
	if cuerpo != "" {
		req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	datos := map[string]any{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &datos), string(raw))
	}
	return resp.StatusCode, datos
}

func idDe(t *testing.T, datos map[string]any, clave string) int {
	t.Helper()
	obj, ok := datos[clave].(map[string]any)
	require.True(t, ok, "falta %q en %v", clave, datos)
	return int(obj["id"].(float64))
}

func TestHealth(t *testing.T) {
	app, _ := nuevaApp(t)
	status, datos := pedir(t, app, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", datos["database"])
}

func TestCRUDEspecialidad(t *testing.T) {
	app, _ := nuevaApp(t)

	status, datos := pedir(t, app, http.MethodPost, "/api/v1/especialidades/", `{"nombre":"  Cardiología ","descripcion":"Corazón"}`)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "Especialidad creada exitosamente", datos["mensaje"])
	id := idDe(t, datos, "especialidad")
	assert.Equal(t, "Cardiología", datos["especialidad"].(map[string]any)["nombre"])

	ruta := "/api/v1/especialidades/" + itoa(id)
	status, datos = pedir(t, app, http.MethodGet, ruta, "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Corazón", datos["especialidad"].(map[string]any)["descripcion"])

	status, datos = pedir(t, app, http.MethodPatch, ruta, `{"descripcion":"Enfermedades del corazón"}`)
	assert.Equal(t, http.StatusOK, status)
	esp := datos["especialidad"].(map[string]any)
	assert.Equal(t, "Cardiología", esp["nombre"])
	assert.Equal(t, "Enfermedades del corazón", esp["descripcion"])
	assert.Equal(t, "Especialidad actualizada exitosamente", datos["mensaje"])

	status, datos = pedir(t, app, http.MethodPut, ruta, `{"nombre":"Cardiología adultos"}`)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "", datos["especialidad"].(map[string]any)["descripcion"])

	status, datos = pedir(t, app, http.MethodDelete, ruta, "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Especialidad eliminada exitosamente", datos["mensaje"])

	status, _ = pedir(t, app, http.MethodGet, ruta, "")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestCrearErrores(t *testing.T) {
	app, _ := nuevaApp(t)

	status, _ := pedir(t, app, http.MethodPost, "/api/v1/especialidades/", `{"nombre":"Pediatría"}`)
	require.Equal(t, http.StatusCreated, status)

	status, datos := pedir(t, app, http.MethodPost, "/api/v1/especialidades/", `{"nombre":"pediatría"}`)
	assert.Equal(t, http.StatusConflict, status)
	assert.Contains(t, datos["campos"], "nombre")

	status, datos = pedir(t, app, http.MethodPost, "/api/v1/especialidades/", `{"descripcion":"sin nombre"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Datos inválidos", datos["error"])
	assert.Contains(t, datos["campos"], "nombre")

	status, _ = pedir(t, app, http.MethodPost, "/api/v1/especialidades/", `{"nombre":`)
	assert.Equal(t, http.StatusBadRequest, status)

	status, datos = pedir(t, app, http.MethodPost, "/api/v1/medicos/",
		`{"rut":"7654321-6","nombre":"Luis","apellido":"Soto","especialidad":99,"telefono":"+56911111111","email":"luis@clinica.cl"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, datos["campos"], "especialidad")

	status, datos = pedir(t, app, http.MethodPost, "/api/v1/pacientes/",
		`{"rut":"12345678-9","nombre":"Ana","apellido":"Rojas","fecha_nacimiento":"1990-05-10","sexo":"F"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, datos["campos"], "rut")
}

func TestIDInvalidoYRutaInexistente(t *testing.T) {
	app, _ := nuevaApp(t)

	status, datos := pedir(t, app, http.MethodGet, "/api/v1/pacientes/abc", "")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "ID inválido", datos["error"])

	status, _ = pedir(t, app, http.MethodDelete, "/api/v1/pacientes/0", "")
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = pedir(t, app, http.MethodPatch, "/api/v1/pacientes/7", `{"nombre":"X"}`)
	assert.Equal(t, http.StatusNotFound, status)

	status, datos = pedir(t, app, http.MethodGet, "/api/v1/no-existe", "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Ruta no encontrada", datos["error"])
}

func TestEliminarProtegido(t *testing.T) {
	app, _ := nuevaApp(t)

	_, datos := pedir(t, app, http.MethodPost, "/api/v1/especialidades/", `{"nombre":"Neurología"}`)
	esp := idDe(t, datos, "especialidad")
	status, datos := pedir(t, app, http.MethodPost, "/api/v1/medicos/",
		`{"rut":"7.654.321-6","nombre":"Luis","apellido":"Soto","especialidad":`+itoa(esp)+`,"telefono":"+56911111111","email":"Luis@Clinica.cl"}`)
	require.Equal(t, http.StatusCreated, status)
	medico := datos["medico"].(map[string]any)
	assert.Equal(t, "Neurología", medico["especialidad_nombre"])
	assert.Equal(t, "7654321-6", medico["rut"])
	assert.Equal(t, "luis@clinica.cl", medico["email"])

	status, datos = pedir(t, app, http.MethodDelete, "/api/v1/especialidades/"+itoa(esp), "")
	assert.Equal(t, http.StatusConflict, status)
	assert.Contains(t, datos["error"], "medicos")
}

func TestListarConParametros(t *testing.T) {
	app, _ := nuevaApp(t)
	for _, n := range []string{"Dermatología", "Cardiología", "Traumatología"} {
		status, _ := pedir(t, app, http.MethodPost, "/api/v1/especialidades/", `{"nombre":"`+n+`"}`)
		require.Equal(t, http.StatusCreated, status)
	}

	status, datos := pedir(t, app, http.MethodGet, "/api/v1/especialidades/?page_size=2", "")
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 3, datos["total"])
	assert.EqualValues(t, 2, datos["page_size"])
	items := datos["especialidades"].([]any)
	require.Len(t, items, 2)
	assert.Equal(t, "Cardiología", items[0].(map[string]any)["nombre"])

	_, datos = pedir(t, app, http.MethodGet, "/api/v1/especialidades/?page=2&page_size=2", "")
	assert.Len(t, datos["especialidades"], 1)
	assert.EqualValues(t, 2, datos["page"])

	_, datos = pedir(t, app, http.MethodGet, "/api/v1/especialidades/?search=TOLOG", "")
	assert.EqualValues(t, 2, datos["total"])

	_, datos = pedir(t, app, http.MethodGet, "/api/v1/especialidades/?ordering=-nombre&page=0&page_size=500", "")
	assert.EqualValues(t, 1, datos["page"])
	assert.EqualValues(t, PageSizeMaximo, datos["page_size"])
	assert.Equal(t, "Traumatología", datos["especialidades"].([]any)[0].(map[string]any)["nombre"])

	_, datos = pedir(t, app, http.MethodGet, "/api/v1/pacientes/", "")
	assert.Equal(t, []any{}, datos["pacientes"])
}

func TestLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("clave-segura"), bcrypt.MinCost)
	require.NoError(t, err)
	app, _ := nuevaApp(t,
		models.Operador{Email: "admin@saludvital.cl", Nombre: "Admin", Rol: models.RolAdmin, PasswordHash: string(hash)},
		models.Operador{Email: "recepcion@saludvital.cl", Rol: models.RolRecepcion, PasswordHash: string(hash), TOTPSecret: totpSecreto},
	)

	status, _ := pedir(t, app, http.MethodPost, "/api/v1/auth/login", `{"email":"admin@saludvital.cl","password":"otra"}`)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = pedir(t, app, http.MethodPost, "/api/v1/auth/login", `{"email":"nadie@saludvital.cl","password":"clave-segura"}`)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, datos := pedir(t, app, http.MethodPost, "/api/v1/auth/login", `{"email":"no-es-email","password":"x"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, datos["campos"], "email")

	status, datos = pedir(t, app, http.MethodPost, "/api/v1/auth/login", `{"email":" ADMIN@saludvital.cl ","password":"clave-segura"}`)
	require.Equal(t, http.StatusOK, status)
	assert.NotEmpty(t, datos["access_token"])
	assert.EqualValues(t, 3600, datos["expires_in"])
	assert.Equal(t, models.RolAdmin, datos["operador"].(map[string]any)["rol"])
	assert.NotContains(t, datos["operador"], "password_hash")
}

func TestLoginConMFA(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("clave-segura"), bcrypt.MinCost)
	require.NoError(t, err)
	app, _ := nuevaApp(t, models.Operador{
		Email: "recepcion@saludvital.cl", Rol: models.RolRecepcion, PasswordHash: string(hash), TOTPSecret: totpSecreto,
	})

	status, datos := pedir(t, app, http.MethodPost, "/api/v1/auth/login", `{"email":"recepcion@saludvital.cl","password":"clave-segura"}`)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, true, datos["mfa_required"])

	status, _ = pedir(t, app, http.MethodPost, "/api/v1/auth/login", `{"email":"recepcion@saludvital.cl","password":"clave-segura","mfa_code":"000000x"}`)
	assert.Equal(t, http.StatusUnauthorized, status)

	codigo, err := totp.GenerateCode(totpSecreto, time.Now())
	require.NoError(t, err)
	status, datos = pedir(t, app, http.MethodPost, "/api/v1/auth/login",
		`{"email":"recepcion@saludvital.cl","password":"clave-segura","mfa_code":"`+codigo+`"}`)
	assert.Equal(t, http.StatusOK, status)
	assert.NotEmpty(t, datos["access_token"])
}

func TestResumen(t *testing.T) {
	app, h := nuevaApp(t)
	ctx := context.Background()
	require.NoError(t, h.Store.Medicamentos().Create(ctx, &models.Medicamento{
		NombreComercial: "Aspirina", PrincipioActivo: "Ácido acetilsalicílico", Concentracion: "100mg", Presentacion: "Comprimido", Stock: 2,
	}))

	status, datos := pedir(t, app, http.MethodGet, "/api/v1/reportes/resumen", "")
	require.Equal(t, http.StatusOK, status)
	reporte := datos["reporte"].(map[string]any)
	assert.EqualValues(t, 5, reporte["stock_minimo"])
	assert.Len(t, reporte["medicamentos_bajo_stock"], 1)

	_, datos = pedir(t, app, http.MethodGet, "/api/v1/reportes/resumen?stock_minimo=1", "")
	assert.Equal(t, []any{}, datos["reporte"].(map[string]any)["medicamentos_bajo_stock"])
}

func TestObtenerLogs(t *testing.T) {
	app, h := nuevaApp(t)
	ctx := context.Background()
	require.NoError(t, h.Store.GuardarLog(ctx, models.Log{Method: "GET", Path: "/api/v1/pacientes/", StatusCode: 200, LogLevel: models.LogLevelSuccess}))
	require.NoError(t, h.Store.GuardarLog(ctx, models.Log{Method: "POST", Path: "/api/v1/pacientes/", StatusCode: 400, LogLevel: models.LogLevelWarning}))
	require.NoError(t, h.Store.GuardarLog(ctx, models.Log{Method: "DELETE", Path: "/api/v1/medicos/1", StatusCode: 409, LogLevel: models.LogLevelWarning}))

	status, datos := pedir(t, app, http.MethodGet, "/api/v1/logs", "")
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 3, datos["total"])

	_, datos = pedir(t, app, http.MethodGet, "/api/v1/logs?method=post", "")
	assert.EqualValues(t, 1, datos["total"])

	_, datos = pedir(t, app, http.MethodGet, "/api/v1/logs?log_level=warning&limit=1", "")
	assert.EqualValues(t, 2, datos["total"])
	assert.Len(t, datos["logs"], 1)
	assert.EqualValues(t, 1, datos["limit"])

	status, datos = pedir(t, app, http.MethodGet, "/api/v1/logs?fecha_inicio=ayer", "")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, datos["campos"], "fecha_inicio")
}

func TestDocumentoOpenAPI(t *testing.T) {
	_, h := nuevaApp(t)
	doc := NewGeneradorOpenAPI(h.Recursos(), "1.0.0", "/").Documento()

	assert.Equal(t, "3.0.3", doc["openapi"])
	paths := doc["paths"].(map[string]interface{})
	for _, r := range h.Recursos() {
		assert.Contains(t, paths, "/api/v1/"+r.Info().Nombre+"/")
		assert.Contains(t, paths, "/api/v1/"+r.Info().Nombre+"/{id}")
	}

	schemas := doc["components"].(map[string]interface{})["schemas"].(map[string]interface{})
	receta := schemas["RecetaMedica"].(map[string]interface{})["properties"].(map[string]interface{})
	assert.Equal(t, true, receta["fecha_emision"].(map[string]interface{})["readOnly"])
	assert.Equal(t, true, receta["id"].(map[string]interface{})["readOnly"])

	paciente := schemas["Paciente"].(map[string]interface{})
	props := paciente["properties"].(map[string]interface{})
	assert.Equal(t, "date", props["fecha_nacimiento"].(map[string]interface{})["format"])
	assert.Equal(t, []string{"M", "F", "O"}, props["sexo"].(map[string]interface{})["enum"])
	assert.Contains(t, paciente["required"], "rut")

	for _, ruta := range []string{"/api/v1/auth/login", "/api/v1/reportes/resumen", "/api/v1/logs"} {
		assert.Contains(t, paths, ruta)
	}
	resumen := schemas["ResumenClinica"].(map[string]interface{})["properties"].(map[string]interface{})
	assert.Equal(t, "array", resumen["medicamentos_bajo_stock"].(map[string]interface{})["type"])
	assert.Equal(t, "object", resumen["consultas_por_estado"].(map[string]interface{})["type"])
	assert.Contains(t, schemas, "LoginRequest")
	assert.Contains(t, schemas, "Log")

	medico := schemas["Medico"].(map[string]interface{})["properties"].(map[string]interface{})
	assert.Equal(t, true, medico["especialidad_nombre"].(map[string]interface{})["readOnly"])
	assert.Equal(t, "integer", medico["especialidad"].(map[string]interface{})["type"])
}

func itoa(n int) string {
	b, _ := json.Marshal(n)
	return string(b)
}
