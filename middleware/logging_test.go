package middleware

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/lizet96/saludvital-backend/models"
)

// sinkCanal entrega cada entrada guardada por un canal
type sinkCanal chan models.Log

func (s sinkCanal) GuardarLog(ctx context.Context, entry models.Log) error {
	s <- entry
	return nil
}

func TestFilterSensitiveData(t *testing.T) {
	filtrado := filterSensitiveData(`{"email":"a@b.cl","password":"1234","mfa_code":"000000"}`)

	var data map[string]string
	require.NoError(t, json.Unmarshal([]byte(filtrado), &data))
	assert.Equal(t, "a@b.cl", data["email"])
	assert.Equal(t, "[FILTERED]", data["password"])
	assert.Equal(t, "[FILTERED]", data["mfa_code"])

	// un cuerpo que no es JSON se guarda truncado
	largo := strings.Repeat("x", maxBodyLog+10)
	assert.Equal(t, strings.Repeat("x", maxBodyLog)+"...[truncated]", filterSensitiveData(largo))
	assert.Equal(t, "nombre=Ana", filterSensitiveData("nombre=Ana"))
}

func TestDetermineLogLevel(t *testing.T) {
	assert.Equal(t, models.LogLevelSuccess, determineLogLevel(201))
	assert.Equal(t, models.LogLevelInfo, determineLogLevel(303))
	assert.Equal(t, models.LogLevelWarning, determineLogLevel(404))
	assert.Equal(t, models.LogLevelError, determineLogLevel(503))
	assert.Equal(t, models.LogLevelInfo, determineLogLevel(101))
}

func TestLoggingMiddlewareGuardaEntrada(t *testing.T) {
	sink := make(sinkCanal, 1)
	app := fiber.New()
	app.Use(RequestID())
	app.Use(LoggingMiddleware(sink, models.EnvironmentTesting, zap.NewNop()))
	app.Post("/api/v1/auth/login", func(c *fiber.Ctx) error {
		c.Locals(LocalEmail, "admin@saludvital.cl")
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Credenciales inválidas"})
	})

	req := httptest.NewRequest(fiber.MethodPost, "/api/v1/auth/login?intento=1",
		strings.NewReader(`{"email":"admin@saludvital.cl","password":"secreta"}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	req.Header.Set("X-Real-IP", "10.0.0.7")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	var entry models.Log
	select {
	case entry = <-sink:
	case <-time.After(2 * time.Second):
		t.Fatal("no se guardó la entrada del registro")
	}
	assert.Equal(t, fiber.MethodPost, entry.Method)
	assert.Equal(t, "/api/v1/auth/login", entry.Path)
	assert.Equal(t, fiber.StatusUnauthorized, entry.StatusCode)
	assert.Equal(t, models.LogLevelWarning, entry.LogLevel)
	assert.Equal(t, "10.0.0.7", entry.IP)
	assert.Equal(t, models.EnvironmentTesting, entry.Environment)
	assert.NotEmpty(t, entry.RequestID)
	require.NotNil(t, entry.Body)
	assert.NotContains(t, *entry.Body, "secreta")
	require.NotNil(t, entry.Query)
	assert.Equal(t, "intento=1", *entry.Query)
	require.NotNil(t, entry.Operador)
	assert.Equal(t, "admin@saludvital.cl", *entry.Operador)
}

func TestRequestLoggerNiveles(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	app := fiber.New()
	app.Use(RequestLogger(zap.New(core)))
	app.Get("/ok", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })
	app.Get("/falla", func(c *fiber.Ctx) error { return fiber.NewError(fiber.StatusServiceUnavailable, "sin base") })

	for _, ruta := range []string{"/ok", "/falla", "/no-existe"} {
		_, err := app.Test(httptest.NewRequest(fiber.MethodGet, ruta, nil))
		require.NoError(t, err)
	}

	entradas := logs.All()
	require.Len(t, entradas, 3)
	assert.Equal(t, zap.InfoLevel, entradas[0].Level)
	assert.Equal(t, zap.ErrorLevel, entradas[1].Level)
	assert.Equal(t, zap.WarnLevel, entradas[2].Level)
	assert.EqualValues(t, fiber.StatusServiceUnavailable, entradas[1].ContextMap()["status"])
}

func TestBodySizeLimit(t *testing.T) {
	app := fiber.New()
	app.Use(BodySizeLimit(10))
	app.Post("/", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) })

	resp, err := app.Test(httptest.NewRequest(fiber.MethodPost, "/", strings.NewReader("corto")))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(fiber.MethodPost, "/", strings.NewReader(strings.Repeat("x", 11))))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusRequestEntityTooLarge, resp.StatusCode)
}
