package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/lizet96/saludvital-backend/models"
)

// GuardarLog inserta una entrada del registro de peticiones
func (s *PGStore) GuardarLog(ctx context.Context, entry models.Log) error {
	query := `
		INSERT INTO logs (
			request_id, method, path, status_code, response_time, user_agent, ip,
			body, query, operador, rol, log_level, environment, timestamp
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, COALESCE($14, now()))
	`
	var ts any
	if !entry.Timestamp.IsZero() {
		ts = entry.Timestamp
	}
	_, err := s.db.Exec(ctx, query,
		entry.RequestID,
		entry.Method,
		entry.Path,
		entry.StatusCode,
		entry.ResponseTime,
		entry.UserAgent,
		entry.IP,
		entry.Body,
		entry.Query,
		entry.Operador,
		entry.Rol,
		entry.LogLevel,
		entry.Environment,
		ts,
	)
	if err != nil {
		return fmt.Errorf("guardar log: %w", err)
	}
	return nil
}

// ListarLogs consulta el registro con filtros opcionales, los más recientes primero
func (s *PGStore) ListarLogs(ctx context.Context, f models.FiltroLogs) ([]models.Log, int, error) {
	// Construir query dinámicamente
	var conditions []string
	var args []any
	argIndex := 1

	if f.LogLevel != "" {
		conditions = append(conditions, fmt.Sprintf("log_level = $%d", argIndex))
		args = append(args, f.LogLevel)
		argIndex++
	}
	if f.Method != "" {
		conditions = append(conditions, fmt.Sprintf("method = $%d", argIndex))
		args = append(args, strings.ToUpper(f.Method))
		argIndex++
	}
	if f.StatusCode != 0 {
		conditions = append(conditions, fmt.Sprintf("status_code = $%d", argIndex))
		args = append(args, f.StatusCode)
		argIndex++
	}
	if f.IP != "" {
		conditions = append(conditions, fmt.Sprintf("ip = $%d", argIndex))
		args = append(args, f.IP)
		argIndex++
	}
	if f.Path != "" {
		conditions = append(conditions, fmt.Sprintf("path ILIKE $%d", argIndex))
		args = append(args, "%"+escaparLike(f.Path)+"%")
		argIndex++
	}
	if f.FechaInicio != nil {
		conditions = append(conditions, fmt.Sprintf("timestamp >= $%d", argIndex))
		args = append(args, *f.FechaInicio)
		argIndex++
	}
	if f.FechaFin != nil {
		conditions = append(conditions, fmt.Sprintf("timestamp <= $%d", argIndex))
		args = append(args, *f.FechaFin)
		argIndex++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	if err := s.db.QueryRow(ctx, "SELECT COUNT(*) FROM logs "+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("contar logs: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id_log, request_id, method, path, status_code, response_time, user_agent, ip,
		       body, query, operador, rol, log_level, environment, timestamp
		FROM logs %s
		ORDER BY timestamp DESC, id_log DESC
		LIMIT $%d OFFSET $%d
	`, whereClause, argIndex, argIndex+1)
	// LIMIT NULL equivale a sin límite
	var limit any
	if f.Limit > 0 {
		limit = f.Limit
	}
	args = append(args, limit, f.Offset)

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("obtener logs: %w", err)
	}
	defer rows.Close()

	logs := []models.Log{}
	for rows.Next() {
		var l models.Log
		err := rows.Scan(
			&l.IDLog, &l.RequestID, &l.Method, &l.Path, &l.StatusCode, &l.ResponseTime,
			&l.UserAgent, &l.IP, &l.Body, &l.Query, &l.Operador, &l.Rol,
			&l.LogLevel, &l.Environment, &l.Timestamp,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("leer log: %w", err)
		}
		logs = append(logs, l)
	}
	return logs, total, rows.Err()
}
