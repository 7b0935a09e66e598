package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/pquerna/otp/totp"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/lizet96/saludvital-backend/middleware"
	"github.com/lizet96/saludvital-backend/models"
)

// Login autentica un operador y devuelve un token JWT
func (h *Handler) Login(c *fiber.Ctx) error {
	var loginReq models.LoginRequest
	if err := c.BodyParser(&loginReq); err != nil {
		return datosInvalidos(c)
	}
	loginReq.Email = strings.ToLower(strings.TrimSpace(loginReq.Email))
	if err := models.Validar(&loginReq); err != nil {
		return h.responderError(c, err)
	}

	op, ok := h.operadores[loginReq.Email]
	if !ok {
		return credencialesInvalidas(c)
	}

	// Verificar contraseña
	if err := bcrypt.CompareHashAndPassword([]byte(op.PasswordHash), []byte(loginReq.Password)); err != nil {
		h.Log.Info("Intento de login fallido", zap.String("email", op.Email))
		return credencialesInvalidas(c)
	}

	// Segundo factor cuando el operador lo tiene configurado
	if op.TOTPSecret != "" {
		if loginReq.MFACode == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error":        "Código MFA requerido",
				"mfa_required": true,
			})
		}
		if !totp.Validate(loginReq.MFACode, op.TOTPSecret) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Código MFA inválido",
			})
		}
	}

	// Generar token JWT
	token, err := middleware.GenerateJWT(h.Config.JWTSecret, op, h.Config.JWTExpiracion)
	if err != nil {
		h.Log.Error("Error al generar token", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "Error al generar token"})
	}

	return c.JSON(models.LoginResponse{
		AccessToken: token,
		ExpiresIn:   int(h.Config.JWTExpiracion.Seconds()),
		Operador:    op,
	})
}

// ObtenerPerfil retorna el operador autenticado
func (h *Handler) ObtenerPerfil(c *fiber.Ctx) error {
	email, _ := c.Locals(middleware.LocalEmail).(string)
	op, ok := h.operadores[email]
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: "Operador no encontrado"})
	}
	return c.JSON(fiber.Map{"operador": op})
}

func credencialesInvalidas(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{Error: "Credenciales inválidas"})
}
