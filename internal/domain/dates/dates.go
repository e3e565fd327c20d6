// Package dates canoniza fechas heterogéneas (reportes, formularios, timestamps)
// a medianoche local y deriva la clave YYYY-MM-DD usada para agrupar y hacer upsert.
//
// "Local" es time.Local; cmd/api lo fija a APP_TIMEZONE al arrancar.
// Dos entradas del mismo día calendario producen siempre la misma clave.
package dates

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// KeyLayout formato de la clave diaria.
const KeyLayout = "2006-01-02"

// excelEpochOffset días entre la época de las hojas de cálculo (1899-12-30) y 1970-01-01.
const excelEpochOffset = 25569

// Serial máximo aceptado (9999-12-31).
const maxExcelSerial = 2958465

// Timestamper lo cumplen los timestamps de SDKs (ej. timestamppb.Timestamp).
type Timestamper interface {
	AsTime() time.Time
}

// Layouts sin zona horaria: se interpretan en hora local.
var localLayouts = []string{
	KeyLayout,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006/01/02",
	"2006/01/02 15:04:05",
	"2006/01/02 15:04",
	// Día primero, como los exportan los marketplaces locales.
	"2-1-2006",
	"2/1/2006",
	"2.1.2006",
	"2-1-2006 15:04",
	"2/1/2006 15:04",
	"2-1-2006 15:04:05",
	"2/1/2006 15:04:05",
}

// Layouts con zona explícita: se convierten a hora local antes de truncar.
var zonedLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.000Z07:00",
}

// ToLocalMidnight normaliza v a las 00:00:00.000 del día calendario local.
// Acepta time.Time, *time.Time, Timestamper, números (serial de hoja de cálculo)
// y strings en formatos ISO, día-primero o numéricos. Devuelve false si no se puede interpretar.
func ToLocalMidnight(v any) (time.Time, bool) {
	switch x := v.(type) {
	case nil:
		return time.Time{}, false
	case time.Time:
		return midnightOf(x)
	case *time.Time:
		if x == nil {
			return time.Time{}, false
		}
		return midnightOf(*x)
	case Timestamper:
		return midnightOf(x.AsTime())
	case string:
		return parseString(x)
	default:
		if f, ok := toFloat(v); ok {
			return serialToDate(f)
		}
		return time.Time{}, false
	}
}

// ExcelSerialToLocalDate convierte un serial de hoja de cálculo (días desde 1899-12-30)
// a medianoche local. La fracción (hora del día) se descarta. Falla si v no es numérico.
func ExcelSerialToLocalDate(v any) (time.Time, bool) {
	if s, ok := v.(string); ok {
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return time.Time{}, false
		}
		return serialToDate(f)
	}
	f, ok := toFloat(v)
	if !ok {
		return time.Time{}, false
	}
	return serialToDate(f)
}

// DateKey devuelve la clave YYYY-MM-DD del día normalizado, o false si v no es una fecha.
func DateKey(v any) (string, bool) {
	t, ok := ToLocalMidnight(v)
	if !ok {
		return "", false
	}
	return t.Format(KeyLayout), true
}

// MustKey devuelve la clave de una fecha ya válida (time.Time nunca falla salvo el valor cero).
func MustKey(t time.Time) string {
	k, _ := DateKey(t)
	return k
}

// EndOfDay devuelve el último instante del día local de t (23:59:59.999999999).
func EndOfDay(t time.Time) time.Time {
	m, ok := midnightOf(t)
	if !ok {
		return time.Time{}
	}
	return m.AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// InRange indica si el día de t cae dentro de [start, end] (ambos inclusivos, por día calendario).
func InRange(t, start, end time.Time) bool {
	d, ok := midnightOf(t)
	if !ok {
		return false
	}
	s, _ := midnightOf(start)
	e, _ := midnightOf(end)
	return !d.Before(s) && !d.After(e)
}

func midnightOf(t time.Time) (time.Time, bool) {
	if t.IsZero() {
		return time.Time{}, false
	}
	l := t.In(time.Local)
	return time.Date(l.Year(), l.Month(), l.Day(), 0, 0, 0, 0, time.Local), true
}

func serialToDate(serial float64) (time.Time, bool) {
	if math.IsNaN(serial) || math.IsInf(serial, 0) || serial < 1 || serial > maxExcelSerial {
		return time.Time{}, false
	}
	days := int(math.Floor(serial)) - excelEpochOffset
	// time.Date normaliza el desborde de días.
	return time.Date(1970, time.January, 1+days, 0, 0, 0, 0, time.Local), true
}

func parseString(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return serialToDate(f)
	}
	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return midnightOf(t)
		}
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return midnightOf(t)
		}
	}
	return time.Time{}, false
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}
