package database

import (
	"context"
	_ "embed"
	"fmt"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/lizet96/saludvital-backend/models"
	"github.com/lizet96/saludvital-backend/repository"
)

//go:embed seed/catalogo.yaml
var catalogoPorDefecto []byte

type itemCatalogo struct {
	Nombre      string `yaml:"nombre"`
	Descripcion string `yaml:"descripcion"`
}

type medicamentoCatalogo struct {
	NombreComercial string `yaml:"nombre_comercial"`
	PrincipioActivo string `yaml:"principio_activo"`
	Concentracion   string `yaml:"concentracion"`
	Presentacion    string `yaml:"presentacion"`
	Stock           int    `yaml:"stock"`
}

// Catalogo son los datos maestros con los que se inicializa una clínica
type Catalogo struct {
	Especialidades   []itemCatalogo        `yaml:"especialidades"`
	TiposTratamiento []itemCatalogo        `yaml:"tipos_tratamiento"`
	Medicamentos     []medicamentoCatalogo `yaml:"medicamentos"`
}

// ResultadoSemilla cuenta los registros creados y los que ya existían
type ResultadoSemilla struct {
	Creados  int
	Omitidos int
}

// CargarCatalogo lee el catálogo desde un archivo YAML; sin ruta usa el catálogo incluido
func CargarCatalogo(path string) (Catalogo, error) {
	data := catalogoPorDefecto
	if path != "" {
		var err error
		if data, err = os.ReadFile(path); err != nil {
			return Catalogo{}, fmt.Errorf("leer catálogo: %w", err)
		}
	}
	var c Catalogo
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Catalogo{}, fmt.Errorf("catálogo YAML inválido: %w", err)
	}
	return c, nil
}

// Sembrar crea los registros del catálogo. Los que ya existen (por nombre único) se omiten,
// por lo que puede ejecutarse varias veces.
func Sembrar(ctx context.Context, store repository.Store, c Catalogo, log *zap.Logger) (ResultadoSemilla, error) {
	var res ResultadoSemilla

	for _, it := range c.Especialidades {
		e := models.Especialidad{Nombre: it.Nombre, Descripcion: it.Descripcion}
		if err := crearSemilla(ctx, store.Especialidades(), &e, &res, log); err != nil {
			return res, err
		}
	}
	for _, it := range c.TiposTratamiento {
		t := models.TipoTratamiento{Nombre: it.Nombre, Descripcion: it.Descripcion}
		if err := crearSemilla(ctx, store.TiposTratamiento(), &t, &res, log); err != nil {
			return res, err
		}
	}
	for _, it := range c.Medicamentos {
		m := models.Medicamento{
			NombreComercial: it.NombreComercial,
			PrincipioActivo: it.PrincipioActivo,
			Concentracion:   it.Concentracion,
			Presentacion:    it.Presentacion,
			Stock:           it.Stock,
		}
		if err := crearSemilla(ctx, store.Medicamentos(), &m, &res, log); err != nil {
			return res, err
		}
	}
	return res, nil
}

func crearSemilla[T any, PT interface {
	*T
	models.Entidad
}](ctx context.Context, repo repository.Repository[T], v PT, res *ResultadoSemilla, log *zap.Logger) error {
	v.Normalizar()
	if err := v.Validar(); err != nil {
		return fmt.Errorf("catálogo: %s: %w", v.String(), err)
	}
	err := repo.Create(ctx, (*T)(v))
	switch {
	case err == nil:
		res.Creados++
		log.Debug("Registro del catálogo creado", zap.String("registro", v.String()))
	case repository.IsDuplicate(err):
		res.Omitidos++
	default:
		return fmt.Errorf("catálogo: crear %s: %w", v.String(), err)
	}
	return nil
}
