package revenue_test

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/mygameon-ops/internal/application/dto"
	"github.com/jhoicas/mygameon-ops/internal/application/revenue"
	"github.com/jhoicas/mygameon-ops/internal/domain"
	"github.com/jhoicas/mygameon-ops/internal/domain/entity"
	"github.com/jhoicas/mygameon-ops/internal/domain/finance"
)

func TestMain(m *testing.M) {
	time.Local = time.FixedZone("WIB", 7*3600)
	os.Exit(m.Run())
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func day(d int) time.Time { return time.Date(2024, time.January, d, 0, 0, 0, 0, time.Local) }

func ptr[T any](v T) *T { return &v }

// stored arma un registro ya persistido con el neto calculado.
func stored(d int, gross string, orders int, voucher, adSpend string) *entity.DailyRevenue {
	r := &entity.DailyRevenue{
		Date:          day(d),
		DateKey:       day(d).Format("2006-01-02"),
		GrossIncome:   dec(gross),
		TotalOrders:   orders,
		CanceledValue: decimal.Zero,
		ReturnedValue: decimal.Zero,
		VoucherCost:   dec(voucher),
		AdSpend:       dec(adSpend),
	}
	finance.Recalculate(r)
	return r
}

func newUseCase(repo *memRevenueRepo, parser stubParser) *revenue.UseCase {
	return revenue.NewUseCase(repo, &fakeTx{repo: repo}, parser, zerolog.Nop())
}

func TestImportSales_ConservaVoucherYAdSpend(t *testing.T) {
	repo := newMemRevenueRepo(stored(15, "500000", 10, "15000", "20000"))
	parser := stubParser{sales: []entity.SalesReportRow{
		{Date: day(15), GrossIncome: dec("1000000"), TotalOrders: 50, CanceledOrders: 5, CanceledValue: dec("100000"), ReturnedOrders: 2, ReturnedValue: dec("40000")},
		{Date: day(16), GrossIncome: dec("200000"), TotalOrders: 4},
	}}

	res, err := newUseCase(repo, parser).ImportSales(context.Background(), strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, 2, res.ParsedRows)
	assert.Equal(t, 1, res.Created)
	assert.Equal(t, 1, res.Updated)
	assert.Equal(t, "2024-01-15", res.StartDate)
	assert.Equal(t, "2024-01-16", res.EndDate)

	got, ok := repo.get("2024-01-15")
	require.True(t, ok)
	assert.True(t, dec("15000").Equal(got.VoucherCost), "voucher previo se conserva")
	assert.True(t, dec("20000").Equal(got.AdSpend), "ad spend previo se conserva")
	assert.Equal(t, 43, got.SuccessfulOrders)
	// 860000 - 15000 - 63375 - 53750 - 20000
	assert.True(t, dec("707875").Equal(got.CalculatedNetRevenue), "obtenido %s", got.CalculatedNetRevenue)

	fresh, ok := repo.get("2024-01-16")
	require.True(t, ok)
	assert.True(t, fresh.VoucherCost.IsZero())
	assert.Equal(t, 2024, fresh.Year)
	assert.Equal(t, 1, fresh.Month)
}

func TestImportSales_ErroresDelParser(t *testing.T) {
	repo := newMemRevenueRepo()

	_, err := newUseCase(repo, stubParser{err: domain.ErrSheetNotFound}).ImportSales(context.Background(), strings.NewReader(""))
	assert.ErrorIs(t, err, domain.ErrSheetNotFound)

	_, err = newUseCase(repo, stubParser{}).ImportSales(context.Background(), strings.NewReader(""))
	assert.ErrorIs(t, err, domain.ErrEmptyReport)
	assert.Zero(t, repo.upserts)
}

func TestImportVouchers_CreaDiasPlaceholder(t *testing.T) {
	repo := newMemRevenueRepo(stored(15, "1000000", 50, "0", "0"))
	parser := stubParser{vouchers: []entity.VoucherReportRow{
		{Date: day(15), VoucherCost: dec("15000")},
		{Date: day(17), VoucherCost: dec("15000")},
	}}
	uc := newUseCase(repo, parser)

	res, err := uc.ImportVouchers(context.Background(), strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Created)
	assert.Equal(t, 1, res.Updated)

	placeholder, ok := repo.get("2024-01-17")
	require.True(t, ok)
	assert.True(t, placeholder.GrossIncome.IsZero())
	assert.True(t, dec("-15000").Equal(placeholder.CalculatedNetRevenue), "día sólo con voucher: neto = -voucher")

	// Reimportar no duplica el costo.
	_, err = uc.ImportVouchers(context.Background(), strings.NewReader(""))
	require.NoError(t, err)
	again, _ := repo.get("2024-01-15")
	assert.True(t, dec("15000").Equal(again.VoucherCost))
}

func TestUpdate_RecalculaNeto(t *testing.T) {
	repo := newMemRevenueRepo(stored(15, "1000000", 50, "0", "0"))
	uc := newUseCase(repo, stubParser{})

	out, err := uc.Update(context.Background(), "2024-01-15", dto.UpdateDailyRevenueRequest{
		CanceledOrders: ptr(5),
		CanceledValue:  ptr(dec("100000")),
		ReturnedOrders: ptr(2),
		ReturnedValue:  ptr(dec("40000")),
		VoucherCost:    ptr(dec("15000")),
	})
	require.NoError(t, err)
	assert.True(t, dec("1000000").Equal(out.GrossIncome), "campos ausentes no cambian")
	assert.True(t, dec("727875").Equal(out.CalculatedNetRevenue), "obtenido %s", out.CalculatedNetRevenue)

	got, _ := repo.get("2024-01-15")
	assert.True(t, dec("727875").Equal(got.CalculatedNetRevenue))
}

func TestUpdate_Errores(t *testing.T) {
	repo := newMemRevenueRepo(stored(15, "1000", 1, "0", "0"))
	uc := newUseCase(repo, stubParser{})

	_, err := uc.Update(context.Background(), "2024-01-20", dto.UpdateDailyRevenueRequest{TotalOrders: ptr(3)})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Update(context.Background(), "2024-01-15", dto.UpdateDailyRevenueRequest{GrossIncome: ptr(dec("-1"))})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Update(context.Background(), "no-es-fecha", dto.UpdateDailyRevenueRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdate_PedidosExcedenTotal(t *testing.T) {
	repo := newMemRevenueRepo(stored(15, "1000000", 10, "0", "0"))
	uc := newUseCase(repo, stubParser{})
	before, _ := repo.get("2024-01-15")

	// El total guardado es 10: 6 + 5 lo supera aunque cada campo sea válido por sí solo.
	_, err := uc.Update(context.Background(), "2024-01-15", dto.UpdateDailyRevenueRequest{
		CanceledOrders: ptr(6),
		ReturnedOrders: ptr(5),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	got, _ := repo.get("2024-01-15")
	assert.Equal(t, 0, got.CanceledOrders, "el registro no se modifica")
	assert.True(t, before.CalculatedNetRevenue.Equal(got.CalculatedNetRevenue))

	// Bajar el total por debajo de lo ya cancelado también se rechaza.
	_, err = uc.Update(context.Background(), "2024-01-15", dto.UpdateDailyRevenueRequest{
		CanceledOrders: ptr(4),
		TotalOrders:    ptr(3),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	out, err := uc.Update(context.Background(), "2024-01-15", dto.UpdateDailyRevenueRequest{
		CanceledOrders: ptr(6),
		ReturnedOrders: ptr(4),
	})
	require.NoError(t, err)
	assert.Equal(t, 0, out.SuccessfulOrders)
}

func TestGetListDelete(t *testing.T) {
	repo := newMemRevenueRepo(stored(15, "1000", 1, "0", "0"), stored(16, "2000", 1, "0", "0"), stored(20, "3000", 1, "0", "0"))
	uc := newUseCase(repo, stubParser{})
	ctx := context.Background()

	got, err := uc.Get(ctx, "15-01-2024")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-15", got.Date)

	list, err := uc.List(ctx, day(15), day(16))
	require.NoError(t, err)
	assert.Equal(t, 2, list.Count)
	assert.Equal(t, "2024-01-16", list.Items[1].Date)

	_, err = uc.List(ctx, day(16), day(15))
	assert.ErrorIs(t, err, domain.ErrInvalidPeriod)

	require.NoError(t, uc.Delete(ctx, "2024-01-16"))
	assert.ErrorIs(t, uc.Delete(ctx, "2024-01-16"), domain.ErrNotFound)
	_, err = uc.Get(ctx, "2024-01-16")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
