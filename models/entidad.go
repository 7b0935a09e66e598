package models

// Entidad es el contrato común de los registros administrados por la clínica
type Entidad interface {
	Identificador() int
	AsignarID(id int)
	// Normalizar limpia espacios y aplica valores por defecto antes de validar
	Normalizar()
	Validar() error
	// String es la etiqueta usada en selects y campos *_nombre
	String() string
}
