package handlers

import (
	"reflect"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/lizet96/saludvital-backend/models"
)

// GeneradorOpenAPI construye el documento OpenAPI 3 a partir de los recursos registrados
type GeneradorOpenAPI struct {
	recursos []Endpoint
	version  string
	baseURL  string
}

// NewGeneradorOpenAPI crea el generador del documento
func NewGeneradorOpenAPI(recursos []Endpoint, version, baseURL string) *GeneradorOpenAPI {
	return &GeneradorOpenAPI{recursos: recursos, version: version, baseURL: baseURL}
}

// Documento produce el documento OpenAPI como mapa
func (g *GeneradorOpenAPI) Documento() map[string]interface{} {
	paths := map[string]interface{}{}
	schemas := map[string]interface{}{
		"Error": map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"error":  map[string]string{"type": "string"},
				"campos": map[string]interface{}{"type": "object", "additionalProperties": map[string]string{"type": "string"}},
			},
		},
	}

	for _, ep := range g.recursos {
		info := ep.Info()
		nombreSchema := nombreTipo(info.Tipo)
		schemas[nombreSchema] = schemaDeTipo(info)
		ref := "#/components/schemas/" + nombreSchema
		tags := []string{info.Nombre}

		idParam := map[string]interface{}{
			"name": "id", "in": "path", "required": true,
			"schema": map[string]string{"type": "integer"},
		}
		cuerpo := map[string]interface{}{
			"required": true,
			"content": map[string]interface{}{
				fiber.MIMEApplicationJSON: map[string]interface{}{"schema": map[string]string{"$ref": ref}},
			},
		}

		paths["/api/v1/"+info.Nombre+"/"] = map[string]interface{}{
			"get": map[string]interface{}{
				"summary":     "Listar " + info.Plural,
				"operationId": "listar_" + info.Plural,
				"tags":        tags,
				"parameters":  parametrosListado(info),
				"responses": map[string]interface{}{
					"200": respuestaJSON("Listado paginado", map[string]interface{}{
						"type": "object",
						"properties": map[string]interface{}{
							info.Plural: map[string]interface{}{"type": "array", "items": map[string]string{"$ref": ref}},
							"total":     map[string]string{"type": "integer"},
							"page":      map[string]string{"type": "integer"},
							"page_size": map[string]string{"type": "integer"},
						},
					}),
				},
			},
			"post": map[string]interface{}{
				"summary":     "Crear " + info.Singular,
				"operationId": "crear_" + info.Singular,
				"tags":        tags,
				"requestBody": cuerpo,
				"responses": map[string]interface{}{
					"201": respuestaJSON("Creado", envoltura(info.Singular, ref)),
					"400": respuestaError("Datos inválidos"),
					"409": respuestaError("Valor duplicado"),
				},
			},
		}

		paths["/api/v1/"+info.Nombre+"/{id}"] = map[string]interface{}{
			"get": map[string]interface{}{
				"summary":     "Obtener " + info.Singular,
				"operationId": "obtener_" + info.Singular,
				"tags":        tags,
				"parameters":  []interface{}{idParam},
				"responses": map[string]interface{}{
					"200": respuestaJSON("Registro", envoltura(info.Singular, ref)),
					"404": respuestaError("No encontrado"),
				},
			},
			"put": map[string]interface{}{
				"summary":     "Actualizar " + info.Singular,
				"operationId": "actualizar_" + info.Singular,
				"tags":        tags,
				"parameters":  []interface{}{idParam},
				"requestBody": cuerpo,
				"responses": map[string]interface{}{
					"200": respuestaJSON("Actualizado", envoltura(info.Singular, ref)),
					"400": respuestaError("Datos inválidos"),
					"404": respuestaError("No encontrado"),
					"409": respuestaError("Valor duplicado"),
				},
			},
			"patch": map[string]interface{}{
				"summary":     "Actualizar parcialmente " + info.Singular,
				"operationId": "actualizar_parcial_" + info.Singular,
				"tags":        tags,
				"parameters":  []interface{}{idParam},
				"requestBody": cuerpo,
				"responses": map[string]interface{}{
					"200": respuestaJSON("Actualizado", envoltura(info.Singular, ref)),
					"400": respuestaError("Datos inválidos"),
					"404": respuestaError("No encontrado"),
				},
			},
			"delete": map[string]interface{}{
				"summary":     "Eliminar " + info.Singular,
				"operationId": "eliminar_" + info.Singular,
				"tags":        tags,
				"parameters":  []interface{}{idParam},
				"responses": map[string]interface{}{
					"200": map[string]string{"description": "Eliminado"},
					"404": respuestaError("No encontrado"),
					"409": respuestaError("Tiene registros asociados"),
				},
			},
		}
	}

	g.rutasGenerales(paths, schemas)

	return map[string]interface{}{
		"openapi": "3.0.3",
		"info": map[string]interface{}{
			"title":       "Salud Vital API",
			"version":     g.version,
			"description": "Gestión de pacientes, médicos, consultas, tratamientos y recetas",
		},
		"servers": []map[string]string{{"url": g.baseURL}},
		"paths":   paths,
		"components": map[string]interface{}{
			"schemas": schemas,
			"securitySchemes": map[string]interface{}{
				"bearerAuth": map[string]string{"type": "http", "scheme": "bearer", "bearerFormat": "JWT"},
			},
		},
	}
}

// rutasGenerales documenta el login, el reporte y el registro de peticiones
func (g *GeneradorOpenAPI) rutasGenerales(paths, schemas map[string]interface{}) {
	schemas["LoginRequest"] = map[string]interface{}{
		"type":     "object",
		"required": []string{"email", "password"},
		"properties": map[string]interface{}{
			"email":    map[string]string{"type": "string", "format": "email"},
			"password": map[string]string{"type": "string", "format": "password"},
			"mfa_code": map[string]string{"type": "string"},
		},
	}
	schemas["LoginResponse"] = map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"access_token": map[string]string{"type": "string"},
			"expires_in":   map[string]string{"type": "integer"},
			"operador": map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"email":  map[string]string{"type": "string"},
					"nombre": map[string]string{"type": "string"},
					"rol":    map[string]string{"type": "string"},
				},
			},
		},
	}
	schemas["ResumenClinica"] = schemaDeTipo(InfoRecurso{Tipo: reflect.TypeFor[models.ResumenClinica]()})
	schemas["Log"] = schemaDeTipo(InfoRecurso{Tipo: reflect.TypeFor[models.Log]()})

	paths["/api/v1/auth/login"] = map[string]interface{}{
		"post": map[string]interface{}{
			"summary":     "Iniciar sesión",
			"operationId": "login",
			"tags":        []string{"auth"},
			"requestBody": map[string]interface{}{
				"required": true,
				"content": map[string]interface{}{
					fiber.MIMEApplicationJSON: map[string]interface{}{"schema": map[string]string{"$ref": "#/components/schemas/LoginRequest"}},
				},
			},
			"responses": map[string]interface{}{
				"200": respuestaJSON("Token emitido", map[string]string{"$ref": "#/components/schemas/LoginResponse"}),
				"400": respuestaError("Datos inválidos"),
				"401": respuestaError("Credenciales inválidas o código MFA requerido"),
			},
		},
	}
	paths["/api/v1/reportes/resumen"] = map[string]interface{}{
		"get": map[string]interface{}{
			"summary":     "Resumen general de la clínica",
			"operationId": "reporte_resumen",
			"tags":        []string{"reportes"},
			"parameters": []interface{}{
				queryParam("stock_minimo", "integer", "Umbral de stock bajo"),
			},
			"responses": map[string]interface{}{
				"200": respuestaJSON("Reporte", envoltura("reporte", "#/components/schemas/ResumenClinica")),
			},
		},
	}
	paths["/api/v1/logs"] = map[string]interface{}{
		"get": map[string]interface{}{
			"summary":     "Registro de peticiones",
			"operationId": "listar_logs",
			"tags":        []string{"logs"},
			"parameters": []interface{}{
				queryParam("method", "string", "Método HTTP"),
				queryParam("status_code", "integer", "Código de respuesta"),
				queryParam("path", "string", "Fragmento de la ruta"),
				queryParam("ip", "string", "IP del cliente"),
				queryParam("log_level", "string", "Nivel: info, success, warning, error"),
				queryParam("fecha_inicio", "string", "Desde (YYYY-MM-DD)"),
				queryParam("fecha_fin", "string", "Hasta (YYYY-MM-DD), inclusive"),
				queryParam("page", "integer", "Página, desde 1"),
				queryParam("limit", "integer", "Registros por página (máximo 200)"),
			},
			"responses": map[string]interface{}{
				"200": respuestaJSON("Listado paginado", map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"logs":  map[string]interface{}{"type": "array", "items": map[string]string{"$ref": "#/components/schemas/Log"}},
						"total": map[string]string{"type": "integer"},
						"page":  map[string]string{"type": "integer"},
						"limit": map[string]string{"type": "integer"},
					},
				}),
				"400": respuestaError("Filtro inválido"),
			},
		},
	}
}

// Schema responde el documento OpenAPI
func (g *GeneradorOpenAPI) Schema(c *fiber.Ctx) error {
	return c.JSON(g.Documento())
}

// Docs sirve Swagger UI apuntando al documento
func (g *GeneradorOpenAPI) Docs(c *fiber.Ctx) error {
	c.Type("html", "utf-8")
	return c.SendString(swaggerUI)
}

const swaggerUI = `<!DOCTYPE html>
<html lang="es">
<head>
  <meta charset="utf-8">
  <title>Salud Vital API</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css">
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.ui = SwaggerUIBundle({ url: "/api/schema/", dom_id: "#swagger-ui" });
  </script>
</body>
</html>`

func parametrosListado(info InfoRecurso) []interface{} {
	params := []interface{}{
		queryParam("search", "string", "Búsqueda en "+strings.Join(info.Campos.Busqueda, ", ")),
		queryParam("ordering", "string", "Campos separados por coma, prefijo - para descendente: "+strings.Join(info.Campos.Orden, ", ")),
		queryParam("page", "integer", "Página, desde 1"),
		queryParam("page_size", "integer", "Registros por página (máximo 200)"),
	}
	for _, f := range info.Campos.Filtros {
		params = append(params, queryParam(f, "string", "Filtro exacto por "+f))
	}
	return params
}

func queryParam(nombre, tipo, descripcion string) map[string]interface{} {
	return map[string]interface{}{
		"name": nombre, "in": "query", "required": false,
		"description": descripcion,
		"schema":      map[string]string{"type": tipo},
	}
}

func envoltura(clave, ref string) map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			clave:     map[string]string{"$ref": ref},
			"mensaje": map[string]string{"type": "string"},
		},
	}
}

func respuestaJSON(descripcion string, schema interface{}) map[string]interface{} {
	return map[string]interface{}{
		"description": descripcion,
		"content": map[string]interface{}{
			fiber.MIMEApplicationJSON: map[string]interface{}{"schema": schema},
		},
	}
}

func respuestaError(descripcion string) map[string]interface{} {
	return respuestaJSON(descripcion, map[string]string{"$ref": "#/components/schemas/Error"})
}

func nombreTipo(t reflect.Type) string {
	if t == nil {
		return ""
	}
	return t.Name()
}

var (
	tipoFecha = reflect.TypeFor[models.Fecha]()
	tipoTime  = reflect.TypeFor[time.Time]()
)

// schemaDeTipo describe el modelo a partir de sus etiquetas json y validate
func schemaDeTipo(info InfoRecurso) map[string]interface{} {
	props := map[string]interface{}{}
	var requeridos []string
	t := info.Tipo
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		nombre := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if nombre == "" || nombre == "-" {
			continue
		}
		prop := schemaDeCampo(f.Type)
		if nombre == "id" || f.Tag.Get("db") == "-" || slices.Contains(info.SoloLectura, nombre) {
			prop["readOnly"] = true
		}
		reglas := strings.Split(f.Tag.Get("validate"), ",")
		for _, regla := range reglas {
			switch {
			case regla == "required":
				requeridos = append(requeridos, nombre)
			case strings.HasPrefix(regla, "max=") && prop["type"] == "string":
				if n, err := strconv.Atoi(strings.TrimPrefix(regla, "max=")); err == nil {
					prop["maxLength"] = n
				}
			case strings.HasPrefix(regla, "oneof="):
				prop["enum"] = strings.Fields(strings.TrimPrefix(regla, "oneof="))
			case regla == "email":
				prop["format"] = "email"
			}
		}
		props[nombre] = prop
	}
	schema := map[string]interface{}{"type": "object", "properties": props}
	if len(requeridos) > 0 {
		schema["required"] = requeridos
	}
	return schema
}

func schemaDeCampo(t reflect.Type) map[string]interface{} {
	nullable := false
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
		nullable = true
	}
	var prop map[string]interface{}
	switch {
	case t == tipoFecha:
		prop = map[string]interface{}{"type": "string", "format": "date"}
	case t == tipoTime:
		prop = map[string]interface{}{"type": "string", "format": "date-time"}
	case t.Kind() == reflect.Int:
		prop = map[string]interface{}{"type": "integer"}
	case t.Kind() == reflect.Map:
		prop = map[string]interface{}{"type": "object", "additionalProperties": schemaDeCampo(t.Elem())}
	case t.Kind() == reflect.Slice:
		prop = map[string]interface{}{"type": "array", "items": schemaDeCampo(t.Elem())}
	case t.Kind() == reflect.Struct:
		prop = map[string]interface{}{"$ref": "#/components/schemas/" + t.Name()}
	default:
		prop = map[string]interface{}{"type": "string"}
	}
	if nullable {
		prop["nullable"] = true
	}
	return prop
}
