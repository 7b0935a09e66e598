package models

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Validador retorna la instancia compartida del validador con las reglas propias registradas
func Validador() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		// Los errores se reportan con el nombre JSON del campo
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		_ = validate.RegisterValidation("rut", func(fl validator.FieldLevel) bool {
			return RUTValido(fl.Field().String())
		})
	})
	return validate
}

// ErroresValidacion agrupa los mensajes de error por campo
type ErroresValidacion map[string]string

func (e ErroresValidacion) Error() string {
	partes := make([]string, 0, len(e))
	for campo, msg := range e {
		partes = append(partes, campo+": "+msg)
	}
	return "datos inválidos: " + strings.Join(partes, "; ")
}

// Agregar registra un error para un campo si aún no tiene uno
func (e ErroresValidacion) Agregar(campo, msg string) {
	if _, ok := e[campo]; !ok {
		e[campo] = msg
	}
}

// Validar ejecuta las reglas de las etiquetas `validate` y retorna ErroresValidacion
func Validar(v any) error {
	err := Validador().Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	errs := ErroresValidacion{}
	for _, fe := range verrs {
		errs.Agregar(fe.Field(), mensajeRegla(fe))
	}
	return errs
}

func mensajeRegla(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Este campo es obligatorio"
	case "max":
		return fmt.Sprintf("Máximo %s caracteres", fe.Param())
	case "email":
		return "Ingrese un correo electrónico válido"
	case "oneof":
		return fmt.Sprintf("Valor no permitido, opciones: %s", fe.Param())
	case "rut":
		return "RUT inválido"
	case "gt", "min":
		return "Seleccione un valor válido"
	default:
		return "Valor inválido"
	}
}

// NormalizarRUT elimina puntos y espacios y deja el dígito verificador en mayúscula
func NormalizarRUT(rut string) string {
	rut = strings.ToUpper(strings.TrimSpace(rut))
	rut = strings.ReplaceAll(rut, ".", "")
	rut = strings.ReplaceAll(rut, " ", "")
	if !strings.Contains(rut, "-") && len(rut) > 1 {
		rut = rut[:len(rut)-1] + "-" + rut[len(rut)-1:]
	}
	return rut
}

// RUTValido verifica el formato cuerpo-dígito y el dígito verificador módulo 11
func RUTValido(rut string) bool {
	rut = NormalizarRUT(rut)
	partes := strings.Split(rut, "-")
	if len(partes) != 2 || len(partes[0]) < 6 || len(partes[1]) != 1 {
		return false
	}
	cuerpo, err := strconv.Atoi(partes[0])
	if err != nil || cuerpo <= 0 {
		return false
	}
	return partes[1] == DigitoVerificador(cuerpo)
}

// DigitoVerificador calcula el dígito verificador de un RUT
func DigitoVerificador(cuerpo int) string {
	suma, factor := 0, 2
	for ; cuerpo > 0; cuerpo /= 10 {
		suma += (cuerpo % 10) * factor
		factor++
		if factor > 7 {
			factor = 2
		}
	}
	switch dv := 11 - suma%11; dv {
	case 11:
		return "0"
	case 10:
		return "K"
	default:
		return strconv.Itoa(dv)
	}
}
