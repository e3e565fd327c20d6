// Package spreadsheet implementa los lectores de reportes del marketplace:
// ventas (XLSX), vouchers del vendedor (XLSX) y gasto en anuncios (CSV).
//
// Los tres comparten la misma limpieza numérica y nunca abortan por una celda
// mal formada: la celda vale cero y la fila sigue.
package spreadsheet

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var currencyTokens = strings.NewReplacer(
	"Rp", "", "rp", "", "RP", "",
	"IDR", "", "idr", "",
	"$", "", "USD", "",
	" ", "", "\u00a0", "", "\u202f", "", "\t", "",
)

var (
	numericChars  = regexp.MustCompile(`^[0-9.,+-]+$`)
	thousandsOnly = regexp.MustCompile(`^\(?[+-]?\d{1,3}([.,]\d{3})+\)?$`)
)

var groupSeparators = strings.NewReplacer(".", "", ",", "")

// CleanNumber interpreta un monto tal como aparece en los reportes:
//
//   - quita símbolos de moneda (Rp, IDR, $) y espacios
//   - "(500)" es negativo
//   - grupos de tres dígitos son miles, con o sin moneda ("Rp 150.000", "2,500" → 150000, 2500)
//   - con punto y coma a la vez, el último separador es el decimal ("1.234,56" y "1,234.56" → 1234.56)
//   - fuera de eso, un separador suelto es decimal ("12,5", "1234.56")
//
// Devuelve cero y false si la celda no es un número.
func CleanNumber(raw string) (decimal.Decimal, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero, false
	}
	// El rupiah no usa centavos: "150.000" son ciento cincuenta mil.
	grouped := thousandsOnly.MatchString(currencyTokens.Replace(s))
	if !grouped {
		// Valores crudos de celdas numéricas (incluida notación científica).
		if d, err := decimal.NewFromString(s); err == nil {
			return d, true
		}
	}

	s = currencyTokens.Replace(s)
	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = strings.TrimSuffix(strings.TrimPrefix(s, "("), ")")
	}
	if s == "" || !numericChars.MatchString(s) || !strings.ContainsAny(s, "0123456789") {
		return decimal.Zero, false
	}

	if grouped {
		s = groupSeparators.Replace(s)
	} else {
		s = normalizeSeparators(s)
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	if negative {
		d = d.Abs().Neg()
	}
	return d, true
}

func normalizeSeparators(s string) string {
	dots := strings.Count(s, ".")
	commas := strings.Count(s, ",")

	switch {
	case dots > 0 && commas > 0:
		if strings.LastIndex(s, ",") > strings.LastIndex(s, ".") {
			s = strings.ReplaceAll(s, ".", "")
			return strings.Replace(s, ",", ".", 1)
		}
		return strings.ReplaceAll(s, ",", "")
	case commas == 1:
		return strings.Replace(s, ",", ".", 1)
	case commas > 1:
		return strings.ReplaceAll(s, ",", "")
	case dots > 1:
		return strings.ReplaceAll(s, ".", "")
	default:
		return s
	}
}

// CleanCount interpreta un contador de pedidos con las reglas de CleanNumber
// ("1.000" son mil pedidos) y descarta la parte fraccionaria.
func CleanCount(raw string) (int, bool) {
	d, ok := CleanNumber(raw)
	if !ok {
		return 0, false
	}
	return int(d.IntPart()), true
}

// amount devuelve el monto o cero; la limpieza ya tolera celdas vacías.
func amount(raw string) decimal.Decimal {
	d, _ := CleanNumber(raw)
	return d
}

func count(raw string) int {
	n, _ := CleanCount(raw)
	return n
}
