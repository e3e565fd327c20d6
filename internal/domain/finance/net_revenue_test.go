package finance_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/mygameon-ops/internal/domain/entity"
	"github.com/jhoicas/mygameon-ops/internal/domain/finance"
)

func TestReconcile_VectorDeReferencia(t *testing.T) {
	b := finance.Reconcile(finance.RevenueInputs{
		GrossIncome:    dec("1000000"),
		TotalOrders:    10,
		CanceledOrders: 1,
		CanceledValue:  dec("50000"),
		VoucherCost:    dec("20000"),
		AdSpend:        dec("10000"),
	})

	assert.Equal(t, 9, b.SuccessfulOrders)
	assertDecimal(t, "950000", b.ActualGrossIncome)
	assertDecimal(t, "930000", b.AdminFeeBase)
	assertDecimal(t, "69750", b.AdminFee)
	assertDecimal(t, "11250", b.FixedFee)
	assertDecimal(t, "839000", b.NetRevenue)
}

func TestReconcile_SinEntradasEsCero(t *testing.T) {
	b := finance.Reconcile(finance.RevenueInputs{})
	assert.Equal(t, 0, b.SuccessfulOrders)
	assertDecimal(t, "0", b.NetRevenue)
}

// Un día creado sólo por el reporte de vouchers queda con ingreso neto negativo
// igual al costo del voucher.
func TestReconcile_SoloVoucherQuedaNegativo(t *testing.T) {
	b := finance.Reconcile(finance.RevenueInputs{VoucherCost: dec("15000")})
	assertDecimal(t, "-15000", b.AdminFeeBase)
	assertDecimal(t, "0", b.AdminFee, "sin comisión sobre base negativa")
	assertDecimal(t, "-15000", b.NetRevenue)
}

func TestRecalculate_ActualizaDerivados(t *testing.T) {
	r := &entity.DailyRevenue{
		Date:           time.Date(2024, 3, 5, 0, 0, 0, 0, time.Local),
		GrossIncome:    dec("200000"),
		TotalOrders:    4,
		ReturnedOrders: 1,
		ReturnedValue:  dec("50000"),
	}

	finance.Recalculate(r)

	assert.Equal(t, 3, r.SuccessfulOrders)
	assert.Equal(t, 3, r.Month)
	assert.Equal(t, 2024, r.Year)
	// 150000 - 11250 - 3750
	assertDecimal(t, "135000", r.CalculatedNetRevenue)

	r.VoucherCost = dec("10000")
	finance.Recalculate(r)
	// 150000 - 10000 - 10500 - 3750
	assertDecimal(t, "125750", r.CalculatedNetRevenue)
}
