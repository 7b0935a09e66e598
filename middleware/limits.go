package middleware

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
)

// RateLimitConfig define una ventana de limitación por IP
type RateLimitConfig struct {
	Max        int
	Expiration time.Duration
	Message    string
	// Omitir excluye peticiones del conteo (archivos estáticos, health)
	Omitir func(c *fiber.Ctx) bool
}

// DefaultRateLimit construye la configuración general a partir de los valores del entorno
func DefaultRateLimit(max int, ventana time.Duration) RateLimitConfig {
	return RateLimitConfig{
		Max:        max,
		Expiration: ventana,
		Message:    "Demasiadas peticiones, intenta más tarde",
		Omitir:     rutaLibre,
	}
}

func rutaLibre(c *fiber.Ctx) bool {
	p := c.Path()
	return p == "/health" || strings.HasPrefix(p, "/static/")
}

// AuthRateLimit configuración para endpoints de autenticación
var AuthRateLimit = RateLimitConfig{
	Max:        20,
	Expiration: 30 * time.Minute,
	Message:    "Demasiados intentos de login, intenta más tarde",
}

// CreateRateLimiter crea un middleware de rate limiting con la configuración especificada
func CreateRateLimiter(config RateLimitConfig) fiber.Handler {
	return limiter.New(limiter.Config{
		Next:         config.Omitir,
		Max:          config.Max,
		Expiration:   config.Expiration,
		KeyGenerator: clientIP,
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error":       true,
				"message":     config.Message,
				"retry_after": int(config.Expiration.Seconds()),
			})
		},
	})
}

// AuthRateLimiter limita los intentos de login por IP
func AuthRateLimiter() fiber.Handler {
	return CreateRateLimiter(AuthRateLimit)
}

// BodySizeLimit rechaza cuerpos mayores a maxSize; 0 deshabilita el control
func BodySizeLimit(maxSize int) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if maxSize > 0 && len(c.Body()) > maxSize {
			return c.Status(fiber.StatusRequestEntityTooLarge).JSON(fiber.Map{
				"error":    true,
				"message":  "El tamaño de la petición excede el límite permitido",
				"max_size": maxSize,
			})
		}
		return c.Next()
	}
}

// RequestID asigna un identificador UUID a cada petición (o respeta el recibido)
func RequestID() fiber.Handler {
	return requestid.New(requestid.Config{
		Header:     fiber.HeaderXRequestID,
		Generator:  uuid.NewString,
		ContextKey: LocalRequestID,
	})
}

// LocalRequestID es la clave de c.Locals con el identificador de la petición
const LocalRequestID = "requestid"

// SecurityHeaders agrega los headers de seguridad a todas las respuestas
func SecurityHeaders() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-XSS-Protection", "1; mode=block")
		c.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		// Swagger UI se sirve desde un CDN en /api/docs/
		c.Set("Content-Security-Policy", "default-src 'self'; script-src 'self' 'unsafe-inline' https://unpkg.com; style-src 'self' 'unsafe-inline' https://unpkg.com; img-src 'self' data:")
		c.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		return c.Next()
	}
}
