package repository

import (
	"strings"

	"github.com/lizet96/saludvital-backend/models"
)

// registrarTablas configura las reglas de cada entidad del almacén en memoria
func (s *MemoryStore) registrarTablas() {
	s.especialidades = newMemTable[models.Especialidad](s, CamposEspecialidad)
	s.tiposTratamiento = newMemTable[models.TipoTratamiento](s, CamposTipoTratamiento)
	s.pacientes = newMemTable[models.Paciente](s, CamposPaciente)
	s.medicos = newMemTable[models.Medico](s, CamposMedico)
	s.medicamentos = newMemTable[models.Medicamento](s, CamposMedicamento)
	s.consultas = newMemTable[models.ConsultaMedica](s, CamposConsulta)
	s.tratamientos = newMemTable[models.Tratamiento](s, CamposTratamiento)
	s.recetas = newMemTable[models.RecetaMedica](s, CamposReceta)
	s.detalles = newMemTable[models.DetalleReceta](s, CamposDetalleReceta)

	// --- Especialidad ---
	s.especialidades.valores = func(e models.Especialidad) map[string]any {
		return map[string]any{"id": e.ID, "nombre": e.Nombre, "descripcion": e.Descripcion}
	}
	s.especialidades.completar = func(*models.Especialidad) {}
	s.especialidades.verificar = func(e *models.Especialidad, id int) error {
		if s.especialidades.alguno(func(o models.Especialidad) bool { return o.ID != id && igual(o.Nombre, e.Nombre) }) {
			return &DuplicateError{Field: "nombre"}
		}
		return nil
	}
	s.especialidades.antesDeBorrar = func(id int) (func(), error) {
		if s.medicos.alguno(func(m models.Medico) bool { return m.EspecialidadID == id }) {
			return nil, &ProtectedError{Related: "medicos"}
		}
		return nil, nil
	}

	// --- TipoTratamiento ---
	s.tiposTratamiento.valores = func(t models.TipoTratamiento) map[string]any {
		return map[string]any{"id": t.ID, "nombre": t.Nombre, "descripcion": t.Descripcion}
	}
	s.tiposTratamiento.completar = func(*models.TipoTratamiento) {}
	s.tiposTratamiento.verificar = func(t *models.TipoTratamiento, id int) error {
		if s.tiposTratamiento.alguno(func(o models.TipoTratamiento) bool { return o.ID != id && igual(o.Nombre, t.Nombre) }) {
			return &DuplicateError{Field: "nombre"}
		}
		return nil
	}
	s.tiposTratamiento.antesDeBorrar = func(id int) (func(), error) {
		if s.tratamientos.alguno(func(t models.Tratamiento) bool { return t.TipoID == id }) {
			return nil, &ProtectedError{Related: "tratamientos"}
		}
		return nil, nil
	}

	// --- Paciente ---
	s.pacientes.valores = func(p models.Paciente) map[string]any {
		return map[string]any{
			"id": p.ID, "rut": p.RUT, "nombre": p.Nombre, "apellido": p.Apellido,
			"fecha_nacimiento": p.FechaNacimiento, "sexo": p.Sexo,
		}
	}
	s.pacientes.completar = func(*models.Paciente) {}
	s.pacientes.verificar = func(p *models.Paciente, id int) error {
		if s.pacientes.alguno(func(o models.Paciente) bool { return o.ID != id && o.RUT == p.RUT }) {
			return &DuplicateError{Field: "rut"}
		}
		return nil
	}
	s.pacientes.antesDeBorrar = func(id int) (func(), error) {
		if s.consultas.alguno(func(c models.ConsultaMedica) bool { return c.PacienteID == id }) {
			return nil, &ProtectedError{Related: "consultas"}
		}
		return nil, nil
	}

	// --- Medico ---
	s.medicos.valores = func(m models.Medico) map[string]any {
		return map[string]any{
			"id": m.ID, "rut": m.RUT, "nombre": m.Nombre, "apellido": m.Apellido,
			"email": m.Email, "especialidad": m.EspecialidadID, "especialidad_nombre": m.EspecialidadNombre,
		}
	}
	s.medicos.completar = func(m *models.Medico) {
		m.EspecialidadNombre = s.especialidades.rows[m.EspecialidadID].Nombre
	}
	s.medicos.verificar = func(m *models.Medico, id int) error {
		if !s.especialidades.existe(m.EspecialidadID) {
			return &ReferenceError{Field: "especialidad"}
		}
		if s.medicos.alguno(func(o models.Medico) bool { return o.ID != id && o.RUT == m.RUT }) {
			return &DuplicateError{Field: "rut"}
		}
		if s.medicos.alguno(func(o models.Medico) bool { return o.ID != id && igual(o.Email, m.Email) }) {
			return &DuplicateError{Field: "email"}
		}
		return nil
	}
	s.medicos.antesDeBorrar = func(id int) (func(), error) {
		if s.consultas.alguno(func(c models.ConsultaMedica) bool { return c.MedicoID == id }) {
			return nil, &ProtectedError{Related: "consultas"}
		}
		return nil, nil
	}

	// --- Medicamento ---
	s.medicamentos.valores = func(m models.Medicamento) map[string]any {
		return map[string]any{
			"id": m.ID, "nombre_comercial": m.NombreComercial, "principio_activo": m.PrincipioActivo,
			"presentacion": m.Presentacion, "stock": m.Stock,
		}
	}
	s.medicamentos.completar = func(*models.Medicamento) {}
	s.medicamentos.verificar = func(m *models.Medicamento, id int) error {
		if s.medicamentos.alguno(func(o models.Medicamento) bool {
			return o.ID != id && igual(o.NombreComercial, m.NombreComercial)
		}) {
			return &DuplicateError{Field: "nombre_comercial"}
		}
		return nil
	}
	s.medicamentos.antesDeBorrar = func(id int) (func(), error) {
		if s.detalles.alguno(func(d models.DetalleReceta) bool { return d.MedicamentoID == id }) {
			return nil, &ProtectedError{Related: "detalles de receta"}
		}
		return nil, nil
	}

	// --- ConsultaMedica ---
	s.consultas.valores = func(c models.ConsultaMedica) map[string]any {
		return map[string]any{
			"id": c.ID, "fecha_hora": c.FechaHora, "estado": c.Estado,
			"paciente": c.PacienteID, "medico": c.MedicoID,
			"diagnostico": c.Diagnostico, "motivo_consulta": c.MotivoConsulta,
			"paciente_rut":    s.pacientes.rows[c.PacienteID].RUT,
			"medico_apellido": s.medicos.rows[c.MedicoID].Apellido,
		}
	}
	s.consultas.completar = func(c *models.ConsultaMedica) {
		c.PacienteNombre = s.etiquetaPaciente(c.PacienteID)
		c.MedicoNombre = s.etiquetaMedico(c.MedicoID)
	}
	s.consultas.verificar = func(c *models.ConsultaMedica, id int) error {
		if !s.pacientes.existe(c.PacienteID) {
			return &ReferenceError{Field: "paciente"}
		}
		if !s.medicos.existe(c.MedicoID) {
			return &ReferenceError{Field: "medico"}
		}
		return nil
	}
	s.consultas.antesDeBorrar = func(id int) (func(), error) {
		return func() {
			s.tratamientos.borrarDonde(func(t models.Tratamiento) bool { return t.ConsultaID == id })
			for _, recetaID := range s.recetas.borrarDonde(func(r models.RecetaMedica) bool { return r.ConsultaID == id }) {
				s.borrarDetallesDe(recetaID)
			}
		}, nil
	}

	// --- Tratamiento ---
	s.tratamientos.valores = func(t models.Tratamiento) map[string]any {
		return map[string]any{
			"id": t.ID, "nombre": t.Nombre, "fecha_inicio": t.FechaInicio,
			"consulta": t.ConsultaID, "tipo": t.TipoID,
		}
	}
	s.tratamientos.completar = func(t *models.Tratamiento) {
		t.TipoNombre = s.tiposTratamiento.rows[t.TipoID].Nombre
		t.PacienteNombre = s.etiquetaPaciente(s.consultas.rows[t.ConsultaID].PacienteID)
	}
	s.tratamientos.separar = func(t *models.Tratamiento) {
		if t.FechaFin != nil {
			fin := *t.FechaFin
			t.FechaFin = &fin
		}
	}
	s.tratamientos.verificar = func(t *models.Tratamiento, id int) error {
		if !s.consultas.existe(t.ConsultaID) {
			return &ReferenceError{Field: "consulta"}
		}
		if !s.tiposTratamiento.existe(t.TipoID) {
			return &ReferenceError{Field: "tipo"}
		}
		return nil
	}

	// --- RecetaMedica ---
	s.recetas.valores = func(r models.RecetaMedica) map[string]any {
		return map[string]any{
			"id": r.ID, "fecha_emision": r.FechaEmision, "consulta": r.ConsultaID,
			"indicaciones_generales": r.IndicacionesGenerales,
		}
	}
	s.recetas.completar = func(r *models.RecetaMedica) {
		r.PacienteNombre = s.etiquetaPaciente(s.consultas.rows[r.ConsultaID].PacienteID)
	}
	s.recetas.verificar = func(r *models.RecetaMedica, id int) error {
		if !s.consultas.existe(r.ConsultaID) {
			return &ReferenceError{Field: "consulta"}
		}
		if s.recetas.alguno(func(o models.RecetaMedica) bool { return o.ID != id && o.ConsultaID == r.ConsultaID }) {
			return &DuplicateError{Field: "consulta"}
		}
		return nil
	}
	s.recetas.alCrear = func(r *models.RecetaMedica) {
		ahora := s.now()
		r.FechaEmision = models.NuevaFecha(ahora.Year(), ahora.Month(), ahora.Day())
	}
	s.recetas.antesDeBorrar = func(id int) (func(), error) {
		return func() { s.borrarDetallesDe(id) }, nil
	}

	// --- DetalleReceta ---
	s.detalles.valores = func(d models.DetalleReceta) map[string]any {
		return map[string]any{
			"id": d.ID, "dosis": d.Dosis, "receta": d.RecetaID, "medicamento": d.MedicamentoID,
		}
	}
	s.detalles.completar = func(d *models.DetalleReceta) {
		d.MedicamentoNombre = s.medicamentos.rows[d.MedicamentoID].NombreComercial
	}
	s.detalles.verificar = func(d *models.DetalleReceta, id int) error {
		if !s.recetas.existe(d.RecetaID) {
			return &ReferenceError{Field: "receta"}
		}
		if !s.medicamentos.existe(d.MedicamentoID) {
			return &ReferenceError{Field: "medicamento"}
		}
		if s.detalles.alguno(func(o models.DetalleReceta) bool {
			return o.ID != id && o.RecetaID == d.RecetaID && o.MedicamentoID == d.MedicamentoID
		}) {
			return &DuplicateError{Field: "medicamento"}
		}
		return nil
	}
}

func (s *MemoryStore) borrarDetallesDe(recetaID int) {
	s.detalles.borrarDonde(func(d models.DetalleReceta) bool { return d.RecetaID == recetaID })
}

func (s *MemoryStore) etiquetaPaciente(id int) string {
	p, ok := s.pacientes.rows[id]
	if !ok {
		return ""
	}
	return p.String()
}

func (s *MemoryStore) etiquetaMedico(id int) string {
	m, ok := s.medicos.rows[id]
	if !ok {
		return ""
	}
	s.medicos.completar(&m)
	return m.String()
}

// igual compara sin distinguir mayúsculas, como los índices únicos sobre lower(...)
func igual(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
