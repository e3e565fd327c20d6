package revenue

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/mygameon-ops/internal/application/dto"
	"github.com/jhoicas/mygameon-ops/internal/domain"
	"github.com/jhoicas/mygameon-ops/internal/domain/dates"
	"github.com/jhoicas/mygameon-ops/internal/domain/entity"
	"github.com/jhoicas/mygameon-ops/internal/domain/finance"
	"github.com/jhoicas/mygameon-ops/internal/domain/repository"
)

// UseCase casos de uso de los registros diarios de ingresos.
//
// Toda ruta que modifica un registro (importación de ventas, de vouchers,
// edición manual) recalcula el ingreso neto antes de persistir.
type UseCase struct {
	repo   repository.DailyRevenueRepository
	tx     TxRunner
	parser ReportParser
	log    zerolog.Logger
	now    func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	repo repository.DailyRevenueRepository,
	tx TxRunner,
	parser ReportParser,
	log zerolog.Logger,
) *UseCase {
	return &UseCase{repo: repo, tx: tx, parser: parser, log: log, now: time.Now}
}

// ── Importaciones ─────────────────────────────────────────────────────────────

// ImportSales carga el reporte de ventas y hace upsert por día. Conserva el
// VoucherCost y el AdSpend ya registrados del día: llegan de otros reportes.
func (uc *UseCase) ImportSales(ctx context.Context, r io.Reader) (*dto.ImportResultResponse, error) {
	rows, err := uc.parser.ParseSalesReport(r)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, domain.ErrEmptyReport
	}

	keys := make([]string, len(rows))
	for i, row := range rows {
		keys[i] = row.Date.Format(dates.KeyLayout)
	}
	existing, err := uc.repo.ListByDateKeys(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("ventas: leer días existentes: %w", err)
	}

	now := uc.now()
	result := &dto.ImportResultResponse{ParsedRows: len(rows)}
	records := make([]*entity.DailyRevenue, 0, len(rows))
	for i, row := range rows {
		rec, found := existing[keys[i]]
		if found {
			result.Updated++
		} else {
			rec = newDailyRevenue(row.Date, keys[i], now)
			result.Created++
		}
		rec.GrossIncome = row.GrossIncome
		rec.TotalOrders = row.TotalOrders
		rec.CanceledOrders = row.CanceledOrders
		rec.CanceledValue = row.CanceledValue
		rec.ReturnedOrders = row.ReturnedOrders
		rec.ReturnedValue = row.ReturnedValue
		rec.UpdatedAt = now
		finance.Recalculate(rec)
		records = append(records, rec)
	}

	if err := uc.repo.UpsertMany(ctx, records); err != nil {
		return nil, fmt.Errorf("ventas: guardar: %w", err)
	}
	fillRange(result, keys)

	uc.log.Info().
		Int("rows", result.ParsedRows).
		Int("created", result.Created).
		Int("updated", result.Updated).
		Str("from", result.StartDate).
		Str("to", result.EndDate).
		Msg("reporte de ventas importado")
	return result, nil
}

// ImportVouchers fija el VoucherCost de cada día del reporte. Los días sin
// registro se crean con ventas en cero; su ingreso neto queda en -VoucherCost
// hasta que llegue el reporte de ventas.
func (uc *UseCase) ImportVouchers(ctx context.Context, r io.Reader) (*dto.ImportResultResponse, error) {
	rows, err := uc.parser.ParseVoucherReport(r)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, domain.ErrEmptyReport
	}

	keys := make([]string, len(rows))
	for i, row := range rows {
		keys[i] = row.Date.Format(dates.KeyLayout)
	}
	existing, err := uc.repo.ListByDateKeys(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("vouchers: leer días existentes: %w", err)
	}

	now := uc.now()
	result := &dto.ImportResultResponse{ParsedRows: len(rows)}
	records := make([]*entity.DailyRevenue, 0, len(rows))
	for i, row := range rows {
		rec, found := existing[keys[i]]
		if found {
			result.Updated++
		} else {
			rec = newDailyRevenue(row.Date, keys[i], now)
			result.Created++
		}
		// Reemplaza: reimportar el mismo reporte no duplica el costo.
		rec.VoucherCost = row.VoucherCost
		rec.UpdatedAt = now
		finance.Recalculate(rec)
		records = append(records, rec)
	}

	if err := uc.repo.UpsertMany(ctx, records); err != nil {
		return nil, fmt.Errorf("vouchers: guardar: %w", err)
	}
	fillRange(result, keys)

	uc.log.Info().
		Int("days", result.ParsedRows).
		Int("placeholders", result.Created).
		Int("updated", result.Updated).
		Msg("reporte de vouchers importado")
	return result, nil
}

// ── Consulta y edición ────────────────────────────────────────────────────────

// List devuelve los registros de [start, end] ordenados por fecha.
func (uc *UseCase) List(ctx context.Context, start, end time.Time) (*dto.DailyRevenueListResponse, error) {
	if start.After(end) {
		return nil, domain.ErrInvalidPeriod
	}
	list, err := uc.repo.ListByRange(ctx, start, end)
	if err != nil {
		return nil, err
	}
	items := make([]dto.DailyRevenueResponse, 0, len(list))
	for _, r := range list {
		items = append(items, ToDailyRevenueResponse(r))
	}
	return &dto.DailyRevenueListResponse{
		StartDate: dates.MustKey(start),
		EndDate:   dates.MustKey(end),
		Items:     items,
		Count:     len(items),
	}, nil
}

// Get devuelve el registro de un día. date acepta cualquier formato de fecha reconocido.
func (uc *UseCase) Get(ctx context.Context, date string) (*dto.DailyRevenueResponse, error) {
	key, ok := dates.DateKey(date)
	if !ok {
		return nil, fmt.Errorf("%w: fecha %q", domain.ErrInvalidInput, date)
	}
	rec, err := uc.repo.GetByDateKey(ctx, key)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, domain.ErrNotFound
	}
	out := ToDailyRevenueResponse(rec)
	return &out, nil
}

// Update aplica una edición manual parcial y recalcula el ingreso neto.
func (uc *UseCase) Update(ctx context.Context, date string, in dto.UpdateDailyRevenueRequest) (*dto.DailyRevenueResponse, error) {
	key, ok := dates.DateKey(date)
	if !ok {
		return nil, fmt.Errorf("%w: fecha %q", domain.ErrInvalidInput, date)
	}
	if err := validateUpdate(in); err != nil {
		return nil, err
	}

	var updated *entity.DailyRevenue
	err := uc.tx.Run(ctx, func(revenueRepo repository.DailyRevenueRepository, _ repository.AdminShiftRepository) error {
		rec, err := revenueRepo.GetByDateKey(ctx, key)
		if err != nil {
			return err
		}
		if rec == nil {
			return domain.ErrNotFound
		}
		applyUpdate(rec, in)
		if err := validateOrderCounts(rec); err != nil {
			return err
		}
		rec.UpdatedAt = uc.now()
		finance.Recalculate(rec)
		if err := revenueRepo.Upsert(ctx, rec); err != nil {
			return err
		}
		updated = rec
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("date", key).Str("net", updated.CalculatedNetRevenue.String()).Msg("registro diario editado")
	out := ToDailyRevenueResponse(updated)
	return &out, nil
}

// Delete elimina el registro de un día.
func (uc *UseCase) Delete(ctx context.Context, date string) error {
	key, ok := dates.DateKey(date)
	if !ok {
		return fmt.Errorf("%w: fecha %q", domain.ErrInvalidInput, date)
	}
	rec, err := uc.repo.GetByDateKey(ctx, key)
	if err != nil {
		return err
	}
	if rec == nil {
		return domain.ErrNotFound
	}
	if err := uc.repo.Delete(ctx, key); err != nil {
		return err
	}
	uc.log.Info().Str("date", key).Msg("registro diario eliminado")
	return nil
}

// ── helpers ───────────────────────────────────────────────────────────────────

func newDailyRevenue(day time.Time, key string, now time.Time) *entity.DailyRevenue {
	return &entity.DailyRevenue{
		Date:          day,
		DateKey:       key,
		GrossIncome:   decimal.Zero,
		CanceledValue: decimal.Zero,
		ReturnedValue: decimal.Zero,
		VoucherCost:   decimal.Zero,
		AdSpend:       decimal.Zero,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func validateUpdate(in dto.UpdateDailyRevenueRequest) error {
	for name, v := range map[string]*decimal.Decimal{
		"gross_income":   in.GrossIncome,
		"canceled_value": in.CanceledValue,
		"returned_value": in.ReturnedValue,
		"voucher_cost":   in.VoucherCost,
	} {
		if v != nil && v.IsNegative() {
			return fmt.Errorf("%w: %s no puede ser negativo", domain.ErrInvalidInput, name)
		}
	}
	for name, v := range map[string]*int{
		"total_orders":    in.TotalOrders,
		"canceled_orders": in.CanceledOrders,
		"returned_orders": in.ReturnedOrders,
	} {
		if v != nil && *v < 0 {
			return fmt.Errorf("%w: %s no puede ser negativo", domain.ErrInvalidInput, name)
		}
	}
	return nil
}

// validateOrderCounts se evalúa sobre el registro ya combinado con el parche.
func validateOrderCounts(rec *entity.DailyRevenue) error {
	if rec.CanceledOrders+rec.ReturnedOrders > rec.TotalOrders {
		return fmt.Errorf("%w: canceled_orders + returned_orders (%d) supera total_orders (%d)",
			domain.ErrInvalidInput, rec.CanceledOrders+rec.ReturnedOrders, rec.TotalOrders)
	}
	return nil
}

func applyUpdate(rec *entity.DailyRevenue, in dto.UpdateDailyRevenueRequest) {
	if in.GrossIncome != nil {
		rec.GrossIncome = *in.GrossIncome
	}
	if in.TotalOrders != nil {
		rec.TotalOrders = *in.TotalOrders
	}
	if in.CanceledOrders != nil {
		rec.CanceledOrders = *in.CanceledOrders
	}
	if in.CanceledValue != nil {
		rec.CanceledValue = *in.CanceledValue
	}
	if in.ReturnedOrders != nil {
		rec.ReturnedOrders = *in.ReturnedOrders
	}
	if in.ReturnedValue != nil {
		rec.ReturnedValue = *in.ReturnedValue
	}
	if in.VoucherCost != nil {
		rec.VoucherCost = *in.VoucherCost
	}
}

// fillRange completa el rango cubierto por la importación. YYYY-MM-DD ordena como texto.
func fillRange(result *dto.ImportResultResponse, keys []string) {
	for _, k := range keys {
		if result.StartDate == "" || k < result.StartDate {
			result.StartDate = k
		}
		if k > result.EndDate {
			result.EndDate = k
		}
	}
}
