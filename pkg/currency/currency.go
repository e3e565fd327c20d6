// Package currency formatea montos en rupias para presentación (PDF, mensajes).
// No participa en ningún cálculo.
package currency

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.Indonesian)

// IDR formatea un monto como "Rp 1.234.567", redondeado a rupias enteras.
func IDR(amount decimal.Decimal) string {
	n := amount.Round(0).IntPart()
	if n < 0 {
		return printer.Sprintf("-Rp %d", -n)
	}
	return printer.Sprintf("Rp %d", n)
}

// Percent formatea un porcentaje con dos decimales, ej: "12,50%".
func Percent(p decimal.Decimal) string {
	f, _ := p.Round(2).Float64()
	return printer.Sprintf("%.2f%%", f)
}

// Int formatea un entero con separador de miles local.
func Int(n int) string {
	return printer.Sprintf("%d", n)
}
