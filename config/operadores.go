package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/lizet96/saludvital-backend/models"
)

type archivoOperadores struct {
	Operadores []models.Operador `yaml:"operadores"`
}

// CargarOperadores lee el archivo YAML de cuentas del personal.
// Un archivo inexistente equivale a una lista vacía.
func CargarOperadores(path string) ([]models.Operador, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: leer operadores: %w", err)
	}
	return ParseOperadores(data)
}

// ParseOperadores valida y normaliza la lista de operadores
func ParseOperadores(data []byte) ([]models.Operador, error) {
	var archivo archivoOperadores
	if err := yaml.Unmarshal(data, &archivo); err != nil {
		return nil, fmt.Errorf("config: operadores YAML inválido: %w", err)
	}
	vistos := map[string]bool{}
	for i := range archivo.Operadores {
		op := &archivo.Operadores[i]
		op.Email = strings.ToLower(strings.TrimSpace(op.Email))
		op.Rol = strings.ToLower(strings.TrimSpace(op.Rol))
		if op.Email == "" || op.PasswordHash == "" {
			return nil, fmt.Errorf("config: operador %d sin email o password_hash", i+1)
		}
		switch op.Rol {
		case models.RolAdmin, models.RolRecepcion, models.RolLectura:
		default:
			return nil, fmt.Errorf("config: operador %s con rol desconocido %q", op.Email, op.Rol)
		}
		if vistos[op.Email] {
			return nil, fmt.Errorf("config: operador duplicado %s", op.Email)
		}
		vistos[op.Email] = true
	}
	return archivo.Operadores, nil
}
