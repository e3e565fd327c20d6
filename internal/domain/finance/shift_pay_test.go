package finance_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/mygameon-ops/internal/domain/finance"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func assertDecimal(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), append([]any{"esperado %s, obtenido %s", want, got.String()}, msgAndArgs...)...)
}

// Tabla de límites de la política de pago; cada caso debe cumplirse exacto.
func TestCalculateShiftPay_TablaDeLimites(t *testing.T) {
	cases := []struct {
		name  string
		hours string
		gross string
		want  string
	}{
		{"menos de 4h: 10% del bruto", "3.9", "100000", "10000"},
		{"menos de 8h: solo base", "7.9", "0", "20000"},
		{"exactamente 8h: sin horas extra", "8", "0", "30000"},
		{"9h: primera hora extra a 3000", "9", "0", "33000"},
		{"10h: segunda hora extra a 5000", "10", "0", "38000"},
		{"16h: extra plana 2500 sobre 8h", "16", "0", "70000"},
		{"15h: tope del tramo escalonado", "15", "0", "63000"},
		{"8.5h: media hora extra", "8.5", "0", "31500"},
		{"exactamente 4h: entra al tramo base", "4", "0", "20000"},
		{"bono del 5% desde 4h", "6", "200000", "30000"},
		{"turno corto sin ventas", "2", "0", "0"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := finance.CalculateShiftPay(dec(tc.hours), dec(tc.gross))
			assertDecimal(t, tc.want, got)
		})
	}
}

func TestCalculateShiftPay_EntradasNegativasSeTratanComoCero(t *testing.T) {
	assertDecimal(t, "0", finance.CalculateShiftPay(dec("-3"), dec("-1000")))
	assertDecimal(t, "30000", finance.CalculateShiftPay(dec("8"), dec("-50000")))
}

func TestShiftDurationHours(t *testing.T) {
	start := time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC)

	assertDecimal(t, "9.5", finance.ShiftDurationHours(start, start.Add(9*time.Hour+30*time.Minute)))
	assertDecimal(t, "0.33", finance.ShiftDurationHours(start, start.Add(20*time.Minute)))
	assertDecimal(t, "0", finance.ShiftDurationHours(start, start.Add(-time.Hour)), "fin anterior al inicio")
}
