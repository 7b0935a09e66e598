// Package config carga la configuración del servicio desde el entorno y el archivo .env.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/lizet96/saludvital-backend/models"
)

// Config reúne todos los parámetros del servicio
type Config struct {
	Port        string
	Environment string
	LogLevel    string

	Database Database

	// JWTSecret vacío deshabilita la autenticación de la API
	JWTSecret      string
	JWTExpiracion  time.Duration
	OperadoresFile string

	RateLimitMax    int
	RateLimitWindow time.Duration
	BodyLimit       int

	StockMinimo int
}

// Database agrupa la conexión y los tamaños del pool
type Database struct {
	URL             string
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

// Load lee .env (si existe) y luego las variables de entorno
func Load(log *zap.Logger) (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug("No se pudo cargar el archivo .env", zap.Error(err))
	}

	cfg := Config{
		Port:           getenvDefault("PORT", "3000"),
		Environment:    getenvDefault("ENVIRONMENT", models.EnvironmentDevelopment),
		LogLevel:       getenvDefault("LOG_LEVEL", "info"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		OperadoresFile: getenvDefault("OPERADORES_FILE", "operadores.yaml"),
		Database: Database{
			URL: dbDSNFromEnv(),
		},
	}

	var err error
	if cfg.JWTExpiracion, err = getenvDuration("JWT_EXPIRACION", 8*time.Hour); err != nil {
		return Config{}, err
	}
	if cfg.RateLimitMax, err = getenvInt("RATE_LIMIT_MAX", 100); err != nil {
		return Config{}, err
	}
	if cfg.RateLimitWindow, err = getenvDuration("RATE_LIMIT_WINDOW", 15*time.Minute); err != nil {
		return Config{}, err
	}
	if cfg.BodyLimit, err = getenvInt("BODY_LIMIT", 1<<20); err != nil {
		return Config{}, err
	}
	if cfg.StockMinimo, err = getenvInt("STOCK_MINIMO", 5); err != nil {
		return Config{}, err
	}

	maxConns, err := getenvInt("DB_MAX_CONNS", 30)
	if err != nil {
		return Config{}, err
	}
	minConns, err := getenvInt("DB_MIN_CONNS", 5)
	if err != nil {
		return Config{}, err
	}
	cfg.Database.MaxConns = int32(maxConns)
	cfg.Database.MinConns = int32(minConns)
	if cfg.Database.MaxConnLifetime, err = getenvDuration("DB_MAX_CONN_LIFETIME", time.Hour); err != nil {
		return Config{}, err
	}
	if cfg.Database.MaxConnIdleTime, err = getenvDuration("DB_MAX_CONN_IDLE_TIME", 30*time.Minute); err != nil {
		return Config{}, err
	}

	switch cfg.Environment {
	case models.EnvironmentDevelopment, models.EnvironmentProduction, models.EnvironmentTesting:
	default:
		return Config{}, fmt.Errorf("config: ENVIRONMENT inválido %q (development|production|testing)", cfg.Environment)
	}
	return cfg, nil
}

// AuthHabilitada indica si la API exige token
func (c Config) AuthHabilitada() bool {
	return c.JWTSecret != ""
}

// NewLogger construye el logger según el ambiente y el nivel configurado
func NewLogger(environment, level string) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if environment != models.EnvironmentProduction {
		zc = zap.NewDevelopmentConfig()
	}
	lvl, err := zapcore.ParseLevel(strings.ToLower(level))
	if err != nil {
		return nil, fmt.Errorf("config: LOG_LEVEL inválido %q: %w", level, err)
	}
	zc.Level = zap.NewAtomicLevelAt(lvl)
	return zc.Build()
}

func dbDSNFromEnv() string {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		return v
	}

	host := getenvDefault("DB_HOST", "127.0.0.1")
	port := getenvDefault("DB_PORT", "5432")
	user := getenvDefault("DB_USER", "saludvital")
	pass := getenvDefault("DB_PASSWORD", "saludvital")
	name := getenvDefault("DB_NAME", "saludvital")
	sslmode := getenvDefault("DB_SSLMODE", "disable")

	u := &url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(user, pass),
		Host:   host + ":" + port,
		Path:   "/" + name,
	}
	q := u.Query()
	q.Set("sslmode", sslmode)
	u.RawQuery = q.Encode()
	return u.String()
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s debe ser un entero: %w", key, err)
	}
	return n, nil
}

func getenvDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s debe ser una duración (ej. 15m): %w", key, err)
	}
	return d, nil
}
