package database

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lizet96/saludvital-backend/repository"
)

func TestCatalogoPorDefecto(t *testing.T) {
	c, err := CargarCatalogo("")
	require.NoError(t, err)
	assert.Len(t, c.Especialidades, 5)
	assert.Len(t, c.TiposTratamiento, 4)
	assert.Len(t, c.Medicamentos, 4)
}

func TestSembrarEsIdempotente(t *testing.T) {
	c, err := CargarCatalogo("")
	require.NoError(t, err)
	store := repository.NewMemoryStore()
	ctx := context.Background()

	res, err := Sembrar(ctx, store, c, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, ResultadoSemilla{Creados: 13}, res)

	res, err = Sembrar(ctx, store, c, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, ResultadoSemilla{Omitidos: 13}, res)

	_, total, err := store.Medicamentos().List(ctx, repository.ListParams{})
	require.NoError(t, err)
	assert.Equal(t, 4, total)
}

func TestSembrarCatalogoInvalido(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalogo.yaml")
	require.NoError(t, os.WriteFile(path, []byte("especialidades:\n  - nombre: \"\"\n"), 0o600))

	c, err := CargarCatalogo(path)
	require.NoError(t, err)
	_, err = Sembrar(context.Background(), repository.NewMemoryStore(), c, zap.NewNop())
	assert.Error(t, err)
}

func TestCargarCatalogoErrores(t *testing.T) {
	_, err := CargarCatalogo(filepath.Join(t.TempDir(), "no-existe.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "roto.yaml")
	require.NoError(t, os.WriteFile(path, []byte("especialidades: ["), 0o600))
	_, err = CargarCatalogo(path)
	assert.Error(t, err)
}
