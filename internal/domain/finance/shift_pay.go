// Package finance contiene los servicios de dominio del motor financiero operativo:
// pago de turnos, ingreso neto diario, asignación proporcional de costos y
// consolidado por período. Todo es aritmética pura sobre decimal, sin I/O.
package finance

import (
	"time"

	"github.com/shopspring/decimal"
)

// ── Política de pago de turnos ────────────────────────────────────────────────

var (
	shortShiftHours    = decimal.NewFromInt(4)
	standardShiftHours = decimal.NewFromInt(8)
	longShiftHours     = decimal.NewFromInt(15)

	shortShiftCommission = decimal.RequireFromString("0.10")
	performanceBonusRate = decimal.RequireFromString("0.05")

	basePayShort    = decimal.NewFromInt(20_000) // 4h a <8h
	basePayStandard = decimal.NewFromInt(30_000) // 8h a 15h
	basePayLong     = decimal.NewFromInt(50_000) // >15h

	overtimeFirstHourRate = decimal.NewFromInt(3_000)
	overtimeRate          = decimal.NewFromInt(5_000)
	longShiftOvertimeRate = decimal.NewFromInt(2_500)
)

// CalculateShiftPay calcula el pago de un admin para la duración (horas) y el ingreso bruto
// acumulados en un día:
//
//	< 4h          → 10% del bruto, sin base ni horas extra
//	4h a < 8h     → base 20.000
//	8h a 15h      → base 30.000; extra: 1ª hora a 3.000, siguientes a 5.000
//	> 15h         → base 50.000; extra plana a 2.500/h sobre las horas después de 8
//	desde 4h      → + bono de 5% del bruto
//
// Entradas negativas se tratan como cero. El resultado nunca es negativo.
func CalculateShiftPay(totalHours, totalGross decimal.Decimal) decimal.Decimal {
	hours := clampZero(totalHours)
	gross := clampZero(totalGross)

	if hours.LessThan(shortShiftHours) {
		return clampZero(gross.Mul(shortShiftCommission))
	}

	var base decimal.Decimal
	switch {
	case hours.LessThan(standardShiftHours):
		base = basePayShort
	case hours.LessThanOrEqual(longShiftHours):
		base = basePayStandard
	default:
		base = basePayLong
	}

	bonus := gross.Mul(performanceBonusRate)
	overtime := overtimePay(hours)

	return clampZero(base.Add(bonus).Add(overtime))
}

// overtimePay sólo cuenta las horas posteriores al turno estándar de 8h.
func overtimePay(hours decimal.Decimal) decimal.Decimal {
	if hours.LessThanOrEqual(standardShiftHours) {
		return decimal.Zero
	}
	extra := hours.Sub(standardShiftHours)

	if hours.GreaterThan(longShiftHours) {
		return extra.Mul(longShiftOvertimeRate)
	}
	if extra.LessThanOrEqual(decimal.NewFromInt(1)) {
		return extra.Mul(overtimeFirstHourRate)
	}
	return overtimeFirstHourRate.Add(extra.Sub(decimal.NewFromInt(1)).Mul(overtimeRate))
}

// ShiftDurationHours horas transcurridas entre inicio y fin, redondeadas a 2 decimales.
// Un fin anterior al inicio produce cero.
func ShiftDurationHours(start, end time.Time) decimal.Decimal {
	if end.Before(start) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(end.Sub(start).Hours()).Round(2)
}

func clampZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
