package finance_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/mygameon-ops/internal/domain"
	"github.com/jhoicas/mygameon-ops/internal/domain/entity"
	"github.com/jhoicas/mygameon-ops/internal/domain/finance"
)

func day(d int) time.Time { return time.Date(2024, 1, d, 0, 0, 0, 0, time.Local) }

func revenueDay(d int, gross string) *entity.DailyRevenue {
	r := &entity.DailyRevenue{Date: day(d), DateKey: day(d).Format("2006-01-02"), GrossIncome: dec(gross)}
	finance.Recalculate(r)
	return r
}

func TestComputeAllocation_Proporcional(t *testing.T) {
	records := []*entity.DailyRevenue{revenueDay(2, "300"), revenueDay(1, "100")}

	p, err := finance.ComputeAllocation(dec("40"), day(1), day(2), records)
	require.NoError(t, err)
	require.Len(t, p.Lines, 2)

	assert.Equal(t, "2024-01-01", p.Lines[0].DateKey, "las líneas quedan ordenadas por fecha")
	assertDecimal(t, "10", p.Lines[0].AllocatedCost)
	assertDecimal(t, "30", p.Lines[1].AllocatedCost)
	assertDecimal(t, "400", p.TotalGross)
}

func TestComputeAllocation_SinIngresosSeRechaza(t *testing.T) {
	records := []*entity.DailyRevenue{revenueDay(1, "0"), revenueDay(2, "0")}

	p, err := finance.ComputeAllocation(dec("40"), day(1), day(2), records)
	assert.ErrorIs(t, err, domain.ErrNoRevenueInPeriod)
	assert.Nil(t, p, "no debe producirse una vista previa confirmable")

	_, err = finance.ComputeAllocation(dec("40"), day(1), day(2), nil)
	assert.ErrorIs(t, err, domain.ErrNoRevenueInPeriod)
}

func TestComputeAllocation_IgnoraDiasFueraDelRango(t *testing.T) {
	records := []*entity.DailyRevenue{revenueDay(1, "100"), revenueDay(5, "900"), revenueDay(10, "100")}

	p, err := finance.ComputeAllocation(dec("50"), day(1), day(5), records)
	require.NoError(t, err)
	require.Len(t, p.Lines, 2)
	assertDecimal(t, "5", p.Lines[0].AllocatedCost)
	assertDecimal(t, "45", p.Lines[1].AllocatedCost)
}

func TestComputeAllocation_ResiduoDeRedondeoCuadraElTotal(t *testing.T) {
	records := []*entity.DailyRevenue{revenueDay(1, "100"), revenueDay(2, "100"), revenueDay(3, "101")}

	p, err := finance.ComputeAllocation(dec("100"), day(1), day(3), records)
	require.NoError(t, err)

	assertDecimal(t, "100", p.Allocated(), "las líneas deben sumar exactamente el total")
	assertDecimal(t, "33.22", p.Lines[0].AllocatedCost)
	assertDecimal(t, "33.22", p.Lines[1].AllocatedCost)
	assertDecimal(t, "33.56", p.Lines[2].AllocatedCost, "el residuo va al día de mayor bruto")
}

func TestComputeAllocation_PeriodoInvalido(t *testing.T) {
	_, err := finance.ComputeAllocation(dec("10"), day(5), day(1), []*entity.DailyRevenue{revenueDay(3, "100")})
	assert.ErrorIs(t, err, domain.ErrInvalidPeriod)

	_, err = finance.ComputeAllocation(dec("-10"), day(1), day(5), []*entity.DailyRevenue{revenueDay(3, "100")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Confirmar la vista previa y recalcular cada día deja como AdSpend exactamente
// el monto previsto, y repetir la confirmación no acumula.
func TestApplyAllocation_RoundTripEIdempotencia(t *testing.T) {
	records := []*entity.DailyRevenue{revenueDay(1, "100000"), revenueDay(2, "300000")}
	p, err := finance.ComputeAllocation(dec("40000"), day(1), day(2), records)
	require.NoError(t, err)

	for i, line := range p.Lines {
		finance.ApplyAllocation(records[i], line)
		finance.ApplyAllocation(records[i], line)

		assertDecimal(t, line.AllocatedCost.String(), records[i].AdSpend)
		b := finance.Reconcile(finance.InputsOf(records[i]))
		assert.True(t, b.NetRevenue.Equal(records[i].CalculatedNetRevenue))
	}
	assertDecimal(t, "10000", records[0].AdSpend)
	assertDecimal(t, "30000", records[1].AdSpend)
	// 100000 - 7500 - 10000
	assertDecimal(t, "82500", records[0].CalculatedNetRevenue)
}
