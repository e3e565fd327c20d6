package finance

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/mygameon-ops/internal/domain/entity"
)

var (
	// AdminFeeRate comisión de la plataforma sobre (bruto real - voucher).
	AdminFeeRate = decimal.RequireFromString("0.075")
	// FixedFeePerOrder cargo fijo por pedido exitoso, en rupias.
	FixedFeePerOrder = decimal.NewFromInt(1_250)
)

// RevenueInputs entradas crudas de un día. Cualquier campo ausente vale cero.
type RevenueInputs struct {
	GrossIncome    decimal.Decimal
	TotalOrders    int
	CanceledOrders int
	CanceledValue  decimal.Decimal
	ReturnedOrders int
	ReturnedValue  decimal.Decimal
	VoucherCost    decimal.Decimal
	AdSpend        decimal.Decimal
}

// RevenueBreakdown desglose completo del ingreso neto de un día.
type RevenueBreakdown struct {
	SuccessfulOrders  int
	ActualGrossIncome decimal.Decimal
	AdminFeeBase      decimal.Decimal
	AdminFee          decimal.Decimal
	FixedFee          decimal.Decimal
	NetRevenue        decimal.Decimal
}

// Reconcile aplica la fórmula de ingreso neto:
//
//	successfulOrders  = totalOrders - canceledOrders - returnedOrders
//	actualGrossIncome = grossIncome - canceledValue - returnedValue
//	adminFee          = max(0, actualGrossIncome - voucherCost) * 7.5%
//	fixedFee          = successfulOrders * 1.250
//	netRevenue        = actualGrossIncome - voucherCost - adminFee - fixedFee - adSpend
func Reconcile(in RevenueInputs) RevenueBreakdown {
	successful := in.TotalOrders - in.CanceledOrders - in.ReturnedOrders
	actualGross := in.GrossIncome.Sub(in.CanceledValue).Sub(in.ReturnedValue)
	feeBase := actualGross.Sub(in.VoucherCost)
	// La plataforma no devuelve comisión: una base negativa (día sólo con voucher) cobra cero.
	adminFee := clampZero(feeBase).Mul(AdminFeeRate)
	fixedFee := decimal.NewFromInt(int64(successful)).Mul(FixedFeePerOrder)

	net := actualGross.
		Sub(in.VoucherCost).
		Sub(adminFee).
		Sub(fixedFee).
		Sub(in.AdSpend)

	return RevenueBreakdown{
		SuccessfulOrders:  successful,
		ActualGrossIncome: actualGross,
		AdminFeeBase:      feeBase,
		AdminFee:          adminFee,
		FixedFee:          fixedFee,
		NetRevenue:        net,
	}
}

// InputsOf extrae las entradas de la fórmula desde un registro diario.
func InputsOf(r *entity.DailyRevenue) RevenueInputs {
	return RevenueInputs{
		GrossIncome:    r.GrossIncome,
		TotalOrders:    r.TotalOrders,
		CanceledOrders: r.CanceledOrders,
		CanceledValue:  r.CanceledValue,
		ReturnedOrders: r.ReturnedOrders,
		ReturnedValue:  r.ReturnedValue,
		VoucherCost:    r.VoucherCost,
		AdSpend:        r.AdSpend,
	}
}

// Recalculate refresca los campos derivados del registro (pedidos exitosos,
// ingreso neto, mes y año). Debe llamarse después de cualquier cambio en sus entradas.
func Recalculate(r *entity.DailyRevenue) RevenueBreakdown {
	b := Reconcile(InputsOf(r))
	r.SuccessfulOrders = b.SuccessfulOrders
	r.CalculatedNetRevenue = b.NetRevenue
	if !r.Date.IsZero() {
		r.Month = int(r.Date.Month())
		r.Year = r.Date.Year()
	}
	return b
}
