package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

// FormatoFecha es el formato usado para las fechas sin hora (campos DATE)
const FormatoFecha = "2006-01-02"

// FormatoFechaHoraLocal es el formato que envían los inputs datetime-local de HTML
const FormatoFechaHoraLocal = "2006-01-02T15:04"

// Fecha representa una fecha de calendario sin hora ni zona horaria.
// Se serializa como "YYYY-MM-DD" en JSON y se mapea a columnas DATE de PostgreSQL.
type Fecha struct {
	time.Time
}

// NuevaFecha crea una Fecha a partir de año, mes y día
func NuevaFecha(anio int, mes time.Month, dia int) Fecha {
	return Fecha{Time: time.Date(anio, mes, dia, 0, 0, 0, 0, time.UTC)}
}

// Hoy retorna la fecha actual
func Hoy() Fecha {
	ahora := time.Now()
	return NuevaFecha(ahora.Year(), ahora.Month(), ahora.Day())
}

// ParseFecha interpreta una cadena "YYYY-MM-DD"
func ParseFecha(s string) (Fecha, error) {
	t, err := time.Parse(FormatoFecha, strings.TrimSpace(s))
	if err != nil {
		return Fecha{}, fmt.Errorf("fecha inválida %q: se espera YYYY-MM-DD", s)
	}
	return Fecha{Time: t}, nil
}

// ParseFechaHora acepta RFC 3339 y el formato de los inputs datetime-local
func ParseFechaHora(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{time.RFC3339, FormatoFechaHoraLocal, "2006-01-02T15:04:05", "2006-01-02 15:04"} {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("fecha y hora inválida %q", s)
}

func (f Fecha) String() string {
	if f.IsZero() {
		return ""
	}
	return f.Format(FormatoFecha)
}

// Antes indica si f es estrictamente anterior a otra fecha
func (f Fecha) Antes(otra Fecha) bool {
	return f.Time.Before(otra.Time)
}

func (f Fecha) MarshalJSON() ([]byte, error) {
	if f.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + f.Format(FormatoFecha) + `"`), nil
}

func (f *Fecha) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*f = Fecha{}
		return nil
	}
	// Se aceptan también timestamps completos y se trunca la hora
	if len(s) > len(FormatoFecha) {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return fmt.Errorf("fecha inválida %q: se espera YYYY-MM-DD", s)
		}
		*f = NuevaFecha(t.Year(), t.Month(), t.Day())
		return nil
	}
	parsed, err := ParseFecha(s)
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// ScanDate implementa pgtype.DateScanner
func (f *Fecha) ScanDate(v pgtype.Date) error {
	if !v.Valid {
		*f = Fecha{}
		return nil
	}
	*f = NuevaFecha(v.Time.Year(), v.Time.Month(), v.Time.Day())
	return nil
}

// DateValue implementa pgtype.DateValuer
func (f Fecha) DateValue() (pgtype.Date, error) {
	if f.IsZero() {
		return pgtype.Date{}, nil
	}
	return pgtype.Date{Time: f.Time, Valid: true}, nil
}
