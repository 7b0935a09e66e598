package middleware

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/lizet96/saludvital-backend/models"
)

// LogSink persiste las entradas del registro de peticiones
type LogSink interface {
	GuardarLog(ctx context.Context, entry models.Log) error
}

// maxBodyLog limita el cuerpo guardado en el registro
const maxBodyLog = 1000

// RequestLogger emite una línea de zap por petición
func RequestLogger(log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := statusDe(c, err)

		fields := []zap.Field{
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", clientIP(c)),
		}
		if id, ok := c.Locals(LocalRequestID).(string); ok {
			fields = append(fields, zap.String("request_id", id))
		}
		switch {
		case status >= 500:
			log.Error("Petición HTTP", append(fields, zap.Error(err))...)
		case status >= 400:
			log.Warn("Petición HTTP", fields...)
		default:
			log.Info("Petición HTTP", fields...)
		}
		return err
	}
}

// LoggingMiddleware captura las peticiones HTTP y las guarda en el registro
func LoggingMiddleware(sink LogSink, environment string, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		// Continuar con la petición
		err := c.Next()

		// Calcular tiempo de respuesta
		responseTime := int(time.Since(start).Milliseconds())

		logEntry := createLogEntry(c, statusDe(c, err), responseTime, environment)

		// Guardar de forma asíncrona, fuera del ciclo de vida del contexto de la petición
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := sink.GuardarLog(ctx, logEntry); err != nil {
				log.Warn("Error guardando log de petición", zap.Error(err))
			}
		}()

		return err
	}
}

// createLogEntry crea una entrada de log basada en la petición. Copia todos los
// valores porque fasthttp reutiliza los buffers del contexto.
func createLogEntry(c *fiber.Ctx, status, responseTime int, environment string) models.Log {
	entry := models.Log{
		Method:       strings.Clone(c.Method()),
		Path:         strings.Clone(c.Path()),
		StatusCode:   status,
		ResponseTime: responseTime,
		IP:           clientIP(c),
		LogLevel:     determineLogLevel(status),
		Environment:  environment,
		Timestamp:    time.Now(),
	}
	if id, ok := c.Locals(LocalRequestID).(string); ok {
		entry.RequestID = strings.Clone(id)
	}

	if email, ok := c.Locals(LocalEmail).(string); ok && email != "" {
		entry.Operador = &email
	}
	if rol, ok := c.Locals(LocalRol).(string); ok && rol != "" {
		entry.Rol = &rol
	}

	if ua := c.Get(fiber.HeaderUserAgent); ua != "" {
		ua = strings.Clone(ua)
		entry.UserAgent = &ua
	}

	// Obtener body (solo para métodos POST, PUT, PATCH)
	switch c.Method() {
	case fiber.MethodPost, fiber.MethodPut, fiber.MethodPatch:
		if body := string(c.Body()); body != "" {
			body = filterSensitiveData(body)
			entry.Body = &body
		}
	}

	if qs := string(c.Request().URI().QueryString()); qs != "" {
		entry.Query = &qs
	}
	return entry
}

// statusDe retorna el código final de la respuesta. Si el handler retornó un error,
// el ErrorHandler aún no se ejecutó y se usa el código del error.
func statusDe(c *fiber.Ctx, err error) int {
	if err == nil {
		return c.Response().StatusCode()
	}
	if fe, ok := err.(*fiber.Error); ok {
		return fe.Code
	}
	return fiber.StatusInternalServerError
}

// clientIP obtiene la IP real del cliente
func clientIP(c *fiber.Ctx) string {
	if realIP := c.Get("X-Real-IP"); realIP != "" {
		return strings.Clone(realIP)
	}
	if forwarded := c.Get(fiber.HeaderXForwardedFor); forwarded != "" {
		return strings.Clone(strings.TrimSpace(strings.Split(forwarded, ",")[0]))
	}
	return strings.Clone(c.IP())
}

// filterSensitiveData filtra información sensible del body
func filterSensitiveData(body string) string {
	sensitiveFields := []string{"password", "mfa_code", "secret", "token", "totp_secret"}

	var data map[string]interface{}
	if err := json.Unmarshal([]byte(body), &data); err != nil {
		// Si no es JSON (por ejemplo un formulario) se guarda truncado
		return truncar(body)
	}

	for _, field := range sensitiveFields {
		if _, exists := data[field]; exists {
			data[field] = "[FILTERED]"
		}
	}

	filteredJSON, _ := json.Marshal(data)
	return truncar(string(filteredJSON))
}

func truncar(s string) string {
	if len(s) > maxBodyLog {
		return s[:maxBodyLog] + "...[truncated]"
	}
	return s
}

// determineLogLevel determina el nivel de log basado en el status code
func determineLogLevel(statusCode int) string {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return models.LogLevelSuccess
	case statusCode >= 300 && statusCode < 400:
		return models.LogLevelInfo
	case statusCode >= 400 && statusCode < 500:
		return models.LogLevelWarning
	case statusCode >= 500:
		return models.LogLevelError
	default:
		return models.LogLevelInfo
	}
}
