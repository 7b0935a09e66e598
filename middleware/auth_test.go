package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lizet96/saludvital-backend/models"
)

const secretoPrueba = "secreto-de-prueba"

var recepcionista = models.Operador{Email: "recepcion@saludvital.cl", Rol: models.RolRecepcion}

func TestGenerateAndParseJWT(t *testing.T) {
	token, err := GenerateJWT(secretoPrueba, recepcionista, time.Hour)
	require.NoError(t, err)

	claims, err := ParseJWT(secretoPrueba, token)
	require.NoError(t, err)
	assert.Equal(t, recepcionista.Email, claims.Email)
	assert.Equal(t, models.RolRecepcion, claims.Rol)
	assert.Equal(t, "saludvital", claims.Issuer)

	_, err = ParseJWT("otro-secreto", token)
	assert.Error(t, err)
}

func TestGenerateJWTSinSecreto(t *testing.T) {
	_, err := GenerateJWT("", recepcionista, time.Hour)
	assert.Error(t, err)
}

func TestParseJWTExpirado(t *testing.T) {
	token, err := GenerateJWT(secretoPrueba, recepcionista, -time.Minute)
	require.NoError(t, err)
	_, err = ParseJWT(secretoPrueba, token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestParseJWTRechazaOtroAlgoritmo(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{Email: "x@y.cl", Rol: models.RolAdmin})
	firmado, err := token.SignedString([]byte(secretoPrueba))
	require.NoError(t, err)
	_, err = ParseJWT(secretoPrueba, firmado)
	assert.Error(t, err)
}

func appProtegida() *fiber.App {
	app := fiber.New()
	app.Get("/privado", JWTMiddleware(secretoPrueba), RequireRole(models.RolAdmin, models.RolRecepcion), func(c *fiber.Ctx) error {
		return c.SendString(c.Locals(LocalEmail).(string))
	})
	app.Get("/admin", JWTMiddleware(secretoPrueba), RequireRole(models.RolAdmin), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})
	return app
}

func TestJWTMiddleware(t *testing.T) {
	app := appProtegida()
	token, err := GenerateJWT(secretoPrueba, recepcionista, time.Hour)
	require.NoError(t, err)

	casos := []struct {
		nombre string
		ruta   string
		header string
		status int
	}{
		{"sin header", "/privado", "", fiber.StatusUnauthorized},
		{"sin Bearer", "/privado", token, fiber.StatusUnauthorized},
		{"token inválido", "/privado", "Bearer abc.def.ghi", fiber.StatusUnauthorized},
		{"válido", "/privado", "Bearer " + token, fiber.StatusOK},
		{"rol insuficiente", "/admin", "Bearer " + token, fiber.StatusForbidden},
	}
	for _, tc := range casos {
		t.Run(tc.nombre, func(t *testing.T) {
			req := httptest.NewRequest(fiber.MethodGet, tc.ruta, nil)
			if tc.header != "" {
				req.Header.Set(fiber.HeaderAuthorization, tc.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tc.status, resp.StatusCode)
		})
	}
}
