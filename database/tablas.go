package database

import (
	"github.com/lizet96/saludvital-backend/models"
	"github.com/lizet96/saludvital-backend/repository"
)

// Cada tabla declara sus columnas escribibles, el SELECT con los JOIN necesarios
// para los nombres derivados y la expresión SQL de cada campo listable.

func tablaEspecialidades(db querier) *pgTable[models.Especialidad] {
	return &pgTable[models.Especialidad]{
		db:         db,
		campos:     repository.CamposEspecialidad,
		tabla:      "especialidades",
		alias:      "e",
		selectCols: "e.id, e.nombre, e.descripcion",
		from:       "especialidades e",
		columnas:   []string{"nombre", "descripcion"},
		valores: func(e *models.Especialidad) []any {
			return []any{e.Nombre, e.Descripcion}
		},
		scan: func(row scanner, e *models.Especialidad) error {
			return row.Scan(&e.ID, &e.Nombre, &e.Descripcion)
		},
		expr: map[string]string{"id": "e.id", "nombre": "e.nombre", "descripcion": "e.descripcion"},
	}
}

func tablaTiposTratamiento(db querier) *pgTable[models.TipoTratamiento] {
	return &pgTable[models.TipoTratamiento]{
		db:         db,
		campos:     repository.CamposTipoTratamiento,
		tabla:      "tipos_tratamiento",
		alias:      "t",
		selectCols: "t.id, t.nombre, t.descripcion",
		from:       "tipos_tratamiento t",
		columnas:   []string{"nombre", "descripcion"},
		valores: func(t *models.TipoTratamiento) []any {
			return []any{t.Nombre, t.Descripcion}
		},
		scan: func(row scanner, t *models.TipoTratamiento) error {
			return row.Scan(&t.ID, &t.Nombre, &t.Descripcion)
		},
		expr: map[string]string{"id": "t.id", "nombre": "t.nombre", "descripcion": "t.descripcion"},
	}
}

func tablaPacientes(db querier) *pgTable[models.Paciente] {
	return &pgTable[models.Paciente]{
		db:         db,
		campos:     repository.CamposPaciente,
		tabla:      "pacientes",
		alias:      "p",
		selectCols: "p.id, p.rut, p.nombre, p.apellido, p.fecha_nacimiento, p.sexo, p.direccion, p.telefono",
		from:       "pacientes p",
		columnas:   []string{"rut", "nombre", "apellido", "fecha_nacimiento", "sexo", "direccion", "telefono"},
		valores: func(p *models.Paciente) []any {
			return []any{p.RUT, p.Nombre, p.Apellido, p.FechaNacimiento, p.Sexo, p.Direccion, p.Telefono}
		},
		scan: func(row scanner, p *models.Paciente) error {
			return row.Scan(&p.ID, &p.RUT, &p.Nombre, &p.Apellido, &p.FechaNacimiento, &p.Sexo, &p.Direccion, &p.Telefono)
		},
		expr: map[string]string{
			"id": "p.id", "rut": "p.rut", "nombre": "p.nombre", "apellido": "p.apellido",
			"fecha_nacimiento": "p.fecha_nacimiento", "sexo": "p.sexo",
		},
	}
}

func tablaMedicos(db querier) *pgTable[models.Medico] {
	return &pgTable[models.Medico]{
		db:         db,
		campos:     repository.CamposMedico,
		tabla:      "medicos",
		alias:      "m",
		selectCols: "m.id, m.rut, m.nombre, m.apellido, m.especialidad_id, e.nombre, m.telefono, m.email",
		from:       "medicos m JOIN especialidades e ON e.id = m.especialidad_id",
		columnas:   []string{"rut", "nombre", "apellido", "especialidad_id", "telefono", "email"},
		valores: func(m *models.Medico) []any {
			return []any{m.RUT, m.Nombre, m.Apellido, m.EspecialidadID, m.Telefono, m.Email}
		},
		scan: func(row scanner, m *models.Medico) error {
			return row.Scan(&m.ID, &m.RUT, &m.Nombre, &m.Apellido, &m.EspecialidadID, &m.EspecialidadNombre, &m.Telefono, &m.Email)
		},
		expr: map[string]string{
			"id": "m.id", "rut": "m.rut", "nombre": "m.nombre", "apellido": "m.apellido", "email": "m.email",
			"especialidad": "m.especialidad_id", "especialidad_nombre": "e.nombre",
		},
	}
}

func tablaMedicamentos(db querier) *pgTable[models.Medicamento] {
	return &pgTable[models.Medicamento]{
		db:         db,
		campos:     repository.CamposMedicamento,
		tabla:      "medicamentos",
		alias:      "md",
		selectCols: "md.id, md.nombre_comercial, md.principio_activo, md.concentracion, md.presentacion, md.stock",
		from:       "medicamentos md",
		columnas:   []string{"nombre_comercial", "principio_activo", "concentracion", "presentacion", "stock"},
		valores: func(m *models.Medicamento) []any {
			return []any{m.NombreComercial, m.PrincipioActivo, m.Concentracion, m.Presentacion, m.Stock}
		},
		scan: func(row scanner, m *models.Medicamento) error {
			return row.Scan(&m.ID, &m.NombreComercial, &m.PrincipioActivo, &m.Concentracion, &m.Presentacion, &m.Stock)
		},
		expr: map[string]string{
			"id": "md.id", "nombre_comercial": "md.nombre_comercial", "principio_activo": "md.principio_activo",
			"presentacion": "md.presentacion", "stock": "md.stock",
		},
	}
}

func tablaConsultas(db querier) *pgTable[models.ConsultaMedica] {
	return &pgTable[models.ConsultaMedica]{
		db:     db,
		campos: repository.CamposConsulta,
		tabla:  "consultas_medicas",
		alias:  "c",
		selectCols: "c.id, c.paciente_id, p.nombre, p.apellido, p.rut, c.medico_id, m.nombre, m.apellido, e.nombre, " +
			"c.fecha_hora, c.motivo_consulta, c.diagnostico, c.estado",
		from: "consultas_medicas c" +
			" JOIN pacientes p ON p.id = c.paciente_id" +
			" JOIN medicos m ON m.id = c.medico_id" +
			" JOIN especialidades e ON e.id = m.especialidad_id",
		columnas: []string{"paciente_id", "medico_id", "fecha_hora", "motivo_consulta", "diagnostico", "estado"},
		valores: func(c *models.ConsultaMedica) []any {
			return []any{c.PacienteID, c.MedicoID, c.FechaHora, c.MotivoConsulta, c.Diagnostico, c.Estado}
		},
		scan: func(row scanner, c *models.ConsultaMedica) error {
			var p models.Paciente
			var m models.Medico
			err := row.Scan(&c.ID, &c.PacienteID, &p.Nombre, &p.Apellido, &p.RUT,
				&c.MedicoID, &m.Nombre, &m.Apellido, &m.EspecialidadNombre,
				&c.FechaHora, &c.MotivoConsulta, &c.Diagnostico, &c.Estado)
			if err != nil {
				return err
			}
			c.PacienteNombre = p.String()
			c.MedicoNombre = m.String()
			return nil
		},
		expr: map[string]string{
			"id": "c.id", "fecha_hora": "c.fecha_hora", "estado": "c.estado",
			"paciente": "c.paciente_id", "medico": "c.medico_id",
			"diagnostico": "c.diagnostico", "motivo_consulta": "c.motivo_consulta",
			"paciente_rut": "p.rut", "medico_apellido": "m.apellido",
		},
	}
}

func tablaTratamientos(db querier) *pgTable[models.Tratamiento] {
	return &pgTable[models.Tratamiento]{
		db:     db,
		campos: repository.CamposTratamiento,
		tabla:  "tratamientos",
		alias:  "tr",
		selectCols: "tr.id, tr.consulta_id, tr.tipo_id, t.nombre, p.nombre, p.apellido, p.rut, " +
			"tr.nombre, tr.descripcion, tr.fecha_inicio, tr.fecha_fin",
		from: "tratamientos tr" +
			" JOIN tipos_tratamiento t ON t.id = tr.tipo_id" +
			" JOIN consultas_medicas c ON c.id = tr.consulta_id" +
			" JOIN pacientes p ON p.id = c.paciente_id",
		columnas: []string{"consulta_id", "tipo_id", "nombre", "descripcion", "fecha_inicio", "fecha_fin"},
		valores: func(t *models.Tratamiento) []any {
			return []any{t.ConsultaID, t.TipoID, t.Nombre, t.Descripcion, t.FechaInicio, t.FechaFin}
		},
		scan: func(row scanner, t *models.Tratamiento) error {
			var p models.Paciente
			err := row.Scan(&t.ID, &t.ConsultaID, &t.TipoID, &t.TipoNombre, &p.Nombre, &p.Apellido, &p.RUT,
				&t.Nombre, &t.Descripcion, &t.FechaInicio, &t.FechaFin)
			if err != nil {
				return err
			}
			t.PacienteNombre = p.String()
			return nil
		},
		expr: map[string]string{
			"id": "tr.id", "nombre": "tr.nombre", "fecha_inicio": "tr.fecha_inicio",
			"consulta": "tr.consulta_id", "tipo": "tr.tipo_id",
		},
	}
}

func tablaRecetas(db querier) *pgTable[models.RecetaMedica] {
	return &pgTable[models.RecetaMedica]{
		db:         db,
		campos:     repository.CamposReceta,
		tabla:      "recetas_medicas",
		alias:      "r",
		selectCols: "r.id, r.consulta_id, p.nombre, p.apellido, p.rut, r.fecha_emision, r.indicaciones_generales",
		from: "recetas_medicas r" +
			" JOIN consultas_medicas c ON c.id = r.consulta_id" +
			" JOIN pacientes p ON p.id = c.paciente_id",
		// fecha_emision la asigna la base de datos al crear y no se modifica
		columnas: []string{"consulta_id", "indicaciones_generales"},
		valores: func(r *models.RecetaMedica) []any {
			return []any{r.ConsultaID, r.IndicacionesGenerales}
		},
		scan: func(row scanner, r *models.RecetaMedica) error {
			var p models.Paciente
			err := row.Scan(&r.ID, &r.ConsultaID, &p.Nombre, &p.Apellido, &p.RUT, &r.FechaEmision, &r.IndicacionesGenerales)
			if err != nil {
				return err
			}
			r.PacienteNombre = p.String()
			return nil
		},
		expr: map[string]string{
			"id": "r.id", "fecha_emision": "r.fecha_emision", "consulta": "r.consulta_id",
			"indicaciones_generales": "r.indicaciones_generales",
		},
	}
}

func tablaDetallesReceta(db querier) *pgTable[models.DetalleReceta] {
	return &pgTable[models.DetalleReceta]{
		db:         db,
		campos:     repository.CamposDetalleReceta,
		tabla:      "detalles_receta",
		alias:      "d",
		selectCols: "d.id, d.receta_id, d.medicamento_id, md.nombre_comercial, d.dosis, d.frecuencia, d.duracion",
		from:       "detalles_receta d JOIN medicamentos md ON md.id = d.medicamento_id",
		columnas:   []string{"receta_id", "medicamento_id", "dosis", "frecuencia", "duracion"},
		valores: func(d *models.DetalleReceta) []any {
			return []any{d.RecetaID, d.MedicamentoID, d.Dosis, d.Frecuencia, d.Duracion}
		},
		scan: func(row scanner, d *models.DetalleReceta) error {
			return row.Scan(&d.ID, &d.RecetaID, &d.MedicamentoID, &d.MedicamentoNombre, &d.Dosis, &d.Frecuencia, &d.Duracion)
		},
		expr: map[string]string{
			"id": "d.id", "dosis": "d.dosis", "receta": "d.receta_id", "medicamento": "d.medicamento_id",
		},
	}
}
