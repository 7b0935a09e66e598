package views

import (
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/lizet96/saludvital-backend/models"
)

var (
	tipoFecha      = reflect.TypeFor[models.Fecha]()
	tipoFechaPtr   = reflect.TypeFor[*models.Fecha]()
	tipoTime       = reflect.TypeFor[time.Time]()
	formatoListado = "2006-01-02 15:04"
)

// campoPorJSON busca el campo del struct cuya etiqueta json coincide con el nombre
func campoPorJSON(v reflect.Value, nombre string) (reflect.Value, bool) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		if strings.SplitN(t.Field(i).Tag.Get("json"), ",", 2)[0] == nombre {
			return v.Field(i), true
		}
	}
	return reflect.Value{}, false
}

// asignarCampo convierte el valor del formulario al tipo del campo.
// Retorna un mensaje de error para el usuario cuando el valor no se puede interpretar.
func asignarCampo(fv reflect.Value, raw string) string {
	raw = strings.TrimSpace(raw)
	switch fv.Type() {
	case tipoFecha:
		if raw == "" {
			fv.Set(reflect.ValueOf(models.Fecha{}))
			return ""
		}
		f, err := models.ParseFecha(raw)
		if err != nil {
			return "Ingrese una fecha válida"
		}
		fv.Set(reflect.ValueOf(f))
	case tipoFechaPtr:
		if raw == "" {
			fv.Set(reflect.Zero(tipoFechaPtr))
			return ""
		}
		f, err := models.ParseFecha(raw)
		if err != nil {
			return "Ingrese una fecha válida"
		}
		fv.Set(reflect.ValueOf(&f))
	case tipoTime:
		if raw == "" {
			fv.Set(reflect.ValueOf(time.Time{}))
			return ""
		}
		t, err := models.ParseFechaHora(raw)
		if err != nil {
			return "Ingrese una fecha y hora válidas"
		}
		fv.Set(reflect.ValueOf(t))
	default:
		switch fv.Kind() {
		case reflect.String:
			// FormValue apunta al buffer de la petición, que fasthttp reutiliza
			fv.SetString(strings.Clone(raw))
		case reflect.Int:
			if raw == "" {
				fv.SetInt(0)
				return ""
			}
			n, err := strconv.Atoi(raw)
			if err != nil {
				return "Ingrese un número entero"
			}
			fv.SetInt(int64(n))
		}
	}
	return ""
}

// valorCampo formatea el campo para un input del formulario
func valorCampo(fv reflect.Value, esSelect bool) string {
	switch fv.Type() {
	case tipoFecha:
		return fv.Interface().(models.Fecha).String()
	case tipoFechaPtr:
		if fv.IsNil() {
			return ""
		}
		return fv.Interface().(*models.Fecha).String()
	case tipoTime:
		t := fv.Interface().(time.Time)
		if t.IsZero() {
			return ""
		}
		return t.In(time.Local).Format(models.FormatoFechaHoraLocal)
	}
	switch fv.Kind() {
	case reflect.String:
		return fv.String()
	case reflect.Int:
		if esSelect && fv.Int() == 0 {
			return ""
		}
		return strconv.FormatInt(fv.Int(), 10)
	}
	return ""
}

// textoCelda formatea el campo para una celda del listado
func textoCelda(fv reflect.Value, opciones []models.Opcion) string {
	if fv.Type() == tipoTime {
		t := fv.Interface().(time.Time)
		if t.IsZero() {
			return ""
		}
		return t.In(time.Local).Format(formatoListado)
	}
	s := valorCampo(fv, false)
	if opciones != nil {
		return models.EtiquetaOpcion(opciones, s)
	}
	return s
}
