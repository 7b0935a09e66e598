// Package database implementa el almacenamiento de la clínica sobre PostgreSQL.
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/lizet96/saludvital-backend/config"
)

// Connect crea el pool de conexiones y verifica que la base de datos responda
func Connect(ctx context.Context, cfg config.Database, log *zap.Logger) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parsear la URL de la base de datos: %w", err)
	}
	poolCfg.MaxConns = cfg.MaxConns               // Número máximo de conexiones abiertas al mismo tiempo
	poolCfg.MinConns = cfg.MinConns               // Conexiones que se mantienen abiertas en espera
	poolCfg.MaxConnLifetime = cfg.MaxConnLifetime // Tiempo máximo de vida de una conexión
	poolCfg.MaxConnIdleTime = cfg.MaxConnIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("crear el pool de conexiones: %w", err)
	}

	// Probar si la base de datos está viva haciendo una consulta rápida
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var version string
	if err := pool.QueryRow(pingCtx, "SELECT version()").Scan(&version); err != nil {
		pool.Close()
		return nil, fmt.Errorf("probar la conexión: %w", err)
	}

	log.Info("Conectado a la base de datos", zap.String("version", version))
	return pool, nil
}
