package models

import (
	"time"
)

// Log es una entrada persistida del registro de peticiones a la API
type Log struct {
	IDLog        int       `json:"id_log" db:"id_log"`
	RequestID    string    `json:"request_id" db:"request_id"`
	Method       string    `json:"method" db:"method"`
	Path         string    `json:"path" db:"path"`
	StatusCode   int       `json:"status_code" db:"status_code"`
	ResponseTime int       `json:"response_time" db:"response_time"`
	UserAgent    *string   `json:"user_agent" db:"user_agent"`
	IP           string    `json:"ip" db:"ip"`
	Body         *string   `json:"body" db:"body"`
	Query        *string   `json:"query" db:"query"`
	Operador     *string   `json:"operador" db:"operador"`
	Rol          *string   `json:"rol" db:"rol"`
	LogLevel     string    `json:"log_level" db:"log_level"`
	Environment  string    `json:"environment" db:"environment"`
	Timestamp    time.Time `json:"timestamp" db:"timestamp"`
}

// FiltroLogs son los criterios opcionales para consultar el registro
type FiltroLogs struct {
	Method      string
	StatusCode  int
	Path        string
	IP          string
	LogLevel    string
	FechaInicio *time.Time
	FechaFin    *time.Time
	Limit       int
	Offset      int
}

// Constantes para niveles de log
const (
	LogLevelInfo    = "info"
	LogLevelWarning = "warning"
	LogLevelError   = "error"
	LogLevelDebug   = "debug"
	LogLevelSuccess = "success"
)

// Constantes para ambientes
const (
	EnvironmentDevelopment = "development"
	EnvironmentProduction  = "production"
	EnvironmentTesting     = "testing"
)
