package middleware

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/lizet96/saludvital-backend/models"
)

// Claves de c.Locals con los datos del operador autenticado
const (
	LocalEmail = "operador_email"
	LocalRol   = "operador_rol"
)

// Claims personalizados para el JWT
type Claims struct {
	Email string `json:"email"`
	Rol   string `json:"rol"`
	jwt.RegisteredClaims
}

// GenerateJWT genera un token JWT para un operador
func GenerateJWT(secret string, op models.Operador, expiracion time.Duration) (string, error) {
	if secret == "" {
		return "", errors.New("JWT_SECRET no configurado")
	}
	ahora := time.Now()
	claims := Claims{
		Email: op.Email,
		Rol:   op.Rol,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   op.Email,
			Issuer:    "saludvital",
			ExpiresAt: jwt.NewNumericDate(ahora.Add(expiracion)),
			IssuedAt:  jwt.NewNumericDate(ahora),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseJWT valida la firma y la expiración del token y retorna sus claims
func ParseJWT(secret, tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("claims inválidos")
	}
	return claims, nil
}

// JWTMiddleware middleware para validar tokens JWT
func JWTMiddleware(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Obtener el token del header Authorization
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Token de autorización requerido",
			})
		}

		// Verificar que el token tenga el formato "Bearer <token>"
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Formato de token inválido",
			})
		}

		claims, err := ParseJWT(secret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Token inválido",
			})
		}

		c.Locals(LocalEmail, claims.Email)
		c.Locals(LocalRol, claims.Rol)
		return c.Next()
	}
}

// RequireRole middleware para requerir un rol específico
func RequireRole(allowedRoles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rol, ok := c.Locals(LocalRol).(string)
		if !ok {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Rol de operador no encontrado",
			})
		}

		for _, role := range allowedRoles {
			if rol == role {
				return c.Next()
			}
		}

		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Acceso denegado: permisos insuficientes",
		})
	}
}
