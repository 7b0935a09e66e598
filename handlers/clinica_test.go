package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lizet96/saludvital-backend/models"
)

// idsClinica son los registros base creados a través de la API
type idsClinica struct {
	especialidad, tipo, paciente, medico, medicamento, otroMedicamento, consulta int
}

func crearClinica(t *testing.T, app *fiber.App) idsClinica {
	t.Helper()
	var ids idsClinica
	crear := func(ruta, singular, cuerpo string) int {
		t.Helper()
		status, datos := pedir(t, app, http.MethodPost, "/api/v1/"+ruta+"/", cuerpo)
		require.Equal(t, http.StatusCreated, status, "%s: %v", ruta, datos)
		return idDe(t, datos, singular)
	}

	ids.especialidad = crear("especialidades", "especialidad", `{"nombre":"Cardiología"}`)
	ids.tipo = crear("tipos-tratamiento", "tipo_tratamiento", `{"nombre":"Farmacológico"}`)
	ids.paciente = crear("pacientes", "paciente",
		`{"rut":"12345678-5","nombre":"Ana","apellido":"Rojas","fecha_nacimiento":"1990-05-10","sexo":"F"}`)
	ids.medico = crear("medicos", "medico", fmt.Sprintf(
		`{"rut":"7654321-6","nombre":"Luis","apellido":"Soto","especialidad":%d,"telefono":"+56911111111","email":"luis@clinica.cl"}`,
		ids.especialidad))
	ids.medicamento = crear("medicamentos", "medicamento",
		`{"nombre_comercial":"Paracetamol","principio_activo":"Paracetamol","concentracion":"500mg","presentacion":"Comprimido","stock":20}`)
	ids.otroMedicamento = crear("medicamentos", "medicamento",
		`{"nombre_comercial":"Ibuprofeno","principio_activo":"Ibuprofeno","concentracion":"400mg","presentacion":"Comprimido"}`)
	ids.consulta = crear("consultas-medicas", "consulta_medica", fmt.Sprintf(
		`{"paciente":%d,"medico":%d,"fecha_hora":"2024-03-01T10:30","motivo_consulta":"Dolor de pecho","paciente_nombre":"Otro"}`,
		ids.paciente, ids.medico))
	return ids
}

func TestConsultaFechaHoraDesdeJSON(t *testing.T) {
	app, _ := nuevaApp(t)
	ids := crearClinica(t, app)

	status, datos := pedir(t, app, http.MethodGet, "/api/v1/consultas-medicas/"+itoa(ids.consulta), "")
	require.Equal(t, http.StatusOK, status)
	consulta := datos["consulta_medica"].(map[string]any)
	assert.Equal(t, models.EstadoPendiente, consulta["estado"])
	assert.Equal(t, "Ana Rojas (12345678-5)", consulta["paciente_nombre"])
	assert.Equal(t, "Dr(a). Luis Soto - Cardiología", consulta["medico_nombre"])
	assert.Contains(t, consulta["fecha_hora"], "2024-03-01T10:30:00")

	// Un PATCH sin fecha_hora conserva la fecha guardada
	status, datos = pedir(t, app, http.MethodPatch, "/api/v1/consultas-medicas/"+itoa(ids.consulta), `{"estado":"confirmada"}`)
	require.Equal(t, http.StatusOK, status)
	consulta = datos["consulta_medica"].(map[string]any)
	assert.Equal(t, models.EstadoConfirmada, consulta["estado"])
	assert.Contains(t, consulta["fecha_hora"], "2024-03-01T10:30:00")
}

func TestRecetaIgnoraCamposDeSoloLectura(t *testing.T) {
	app, _ := nuevaApp(t)
	ids := crearClinica(t, app)
	hoy := models.Hoy().String()

	status, datos := pedir(t, app, http.MethodPost, "/api/v1/recetas-medicas/", fmt.Sprintf(
		`{"consulta":%d,"fecha_emision":"2000-01-01","paciente_nombre":"Otro","indicaciones_generales":"Reposo"}`, ids.consulta))
	require.Equal(t, http.StatusCreated, status)
	receta := datos["receta_medica"].(map[string]any)
	assert.Equal(t, hoy, receta["fecha_emision"])
	assert.Equal(t, "Ana Rojas (12345678-5)", receta["paciente_nombre"])
	assert.Equal(t, "Receta médica creada exitosamente", datos["mensaje"])
	id := idDe(t, datos, "receta_medica")

	status, datos = pedir(t, app, http.MethodPut, "/api/v1/recetas-medicas/"+itoa(id), fmt.Sprintf(
		`{"consulta":%d,"fecha_emision":"2000-01-01","indicaciones_generales":"Reposo absoluto"}`, ids.consulta))
	require.Equal(t, http.StatusOK, status)
	receta = datos["receta_medica"].(map[string]any)
	assert.Equal(t, hoy, receta["fecha_emision"])
	assert.Equal(t, "Reposo absoluto", receta["indicaciones_generales"])

	status, datos = pedir(t, app, http.MethodPost, "/api/v1/detalles-receta/", fmt.Sprintf(
		`{"receta":%d,"medicamento":%d,"medicamento_nombre":"Otro","dosis":"1 comprimido","frecuencia":"cada 8 horas","duracion":"5 días"}`,
		id, ids.medicamento))
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "Paracetamol", datos["detalle_receta"].(map[string]any)["medicamento_nombre"])
}

func TestRecursosClinicosErrores(t *testing.T) {
	app, _ := nuevaApp(t)
	ids := crearClinica(t, app)

	_, datos := pedir(t, app, http.MethodPost, "/api/v1/recetas-medicas/", fmt.Sprintf(`{"consulta":%d}`, ids.consulta))
	receta := idDe(t, datos, "receta_medica")
	status, _ := pedir(t, app, http.MethodPost, "/api/v1/detalles-receta/", fmt.Sprintf(
		`{"receta":%d,"medicamento":%d,"dosis":"1","frecuencia":"diaria","duracion":"3 días"}`, receta, ids.medicamento))
	require.Equal(t, http.StatusCreated, status)

	casos := []struct {
		nombre string
		ruta   string
		cuerpo string
		status int
		campo  string
	}{
		{
			nombre: "detalle duplicado",
			ruta:   "detalles-receta",
			cuerpo: fmt.Sprintf(`{"receta":%d,"medicamento":%d,"dosis":"2","frecuencia":"diaria","duracion":"3 días"}`, receta, ids.medicamento),
			status: http.StatusConflict,
			campo:  "medicamento",
		},
		{
			nombre: "receta inexistente",
			ruta:   "detalles-receta",
			cuerpo: fmt.Sprintf(`{"receta":999,"medicamento":%d,"dosis":"1","frecuencia":"diaria","duracion":"3 días"}`, ids.otroMedicamento),
			status: http.StatusBadRequest,
			campo:  "receta",
		},
		{
			nombre: "segunda receta para la consulta",
			ruta:   "recetas-medicas",
			cuerpo: fmt.Sprintf(`{"consulta":%d}`, ids.consulta),
			status: http.StatusConflict,
			campo:  "consulta",
		},
		{
			nombre: "consulta inexistente",
			ruta:   "recetas-medicas",
			cuerpo: `{"consulta":999}`,
			status: http.StatusBadRequest,
			campo:  "consulta",
		},
		{
			nombre: "tipo de tratamiento inexistente",
			ruta:   "tratamientos",
			cuerpo: fmt.Sprintf(`{"consulta":%d,"tipo":999,"nombre":"Analgesia","descripcion":"Dolor","fecha_inicio":"2024-03-01"}`, ids.consulta),
			status: http.StatusBadRequest,
			campo:  "tipo",
		},
		{
			nombre: "fecha de término anterior al inicio",
			ruta:   "tratamientos",
			cuerpo: fmt.Sprintf(`{"consulta":%d,"tipo":%d,"nombre":"Analgesia","descripcion":"Dolor","fecha_inicio":"2024-03-01","fecha_fin":"2024-02-01"}`, ids.consulta, ids.tipo),
			status: http.StatusBadRequest,
			campo:  "fecha_fin",
		},
		{
			nombre: "fecha y hora inválida",
			ruta:   "consultas-medicas",
			cuerpo: fmt.Sprintf(`{"paciente":%d,"medico":%d,"fecha_hora":"ayer","motivo_consulta":"Control"}`, ids.paciente, ids.medico),
			status: http.StatusBadRequest,
			campo:  "fecha_hora",
		},
		{
			nombre: "fecha y hora con tipo incorrecto",
			ruta:   "consultas-medicas",
			cuerpo: fmt.Sprintf(`{"paciente":%d,"medico":%d,"fecha_hora":5,"motivo_consulta":"Control"}`, ids.paciente, ids.medico),
			status: http.StatusBadRequest,
			campo:  "fecha_hora",
		},
	}

	for _, tc := range casos {
		t.Run(tc.nombre, func(t *testing.T) {
			status, datos := pedir(t, app, http.MethodPost, "/api/v1/"+tc.ruta+"/", tc.cuerpo)
			assert.Equal(t, tc.status, status)
			assert.Contains(t, datos["campos"], tc.campo)
		})
	}
}

func TestPatchRechazadoNoModificaTratamiento(t *testing.T) {
	app, _ := nuevaApp(t)
	ids := crearClinica(t, app)

	status, datos := pedir(t, app, http.MethodPost, "/api/v1/tratamientos/", fmt.Sprintf(
		`{"consulta":%d,"tipo":%d,"nombre":"Analgesia","descripcion":"Control del dolor","fecha_inicio":"2024-03-01","fecha_fin":"2024-03-10","tipo_nombre":"Otro"}`,
		ids.consulta, ids.tipo))
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "Farmacológico", datos["tratamiento"].(map[string]any)["tipo_nombre"])
	ruta := "/api/v1/tratamientos/" + itoa(idDe(t, datos, "tratamiento"))

	status, datos = pedir(t, app, http.MethodPatch, ruta, `{"fecha_fin":"2020-01-01"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, datos["campos"], "fecha_fin")

	status, datos = pedir(t, app, http.MethodGet, ruta, "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "2024-03-10", datos["tratamiento"].(map[string]any)["fecha_fin"])

	status, datos = pedir(t, app, http.MethodPatch, ruta, `{"nombre":"Analgesia oral"}`)
	require.Equal(t, http.StatusOK, status)
	tratamiento := datos["tratamiento"].(map[string]any)
	assert.Equal(t, "Analgesia oral", tratamiento["nombre"])
	assert.Equal(t, "2024-03-10", tratamiento["fecha_fin"])
	assert.Equal(t, "Ana Rojas (12345678-5)", tratamiento["paciente_nombre"])
}
