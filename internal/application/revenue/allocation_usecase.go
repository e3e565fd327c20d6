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

// AllocationUseCase reparte un costo de período (gasto en anuncios) entre los días
// en dos fases: vista previa sin escrituras y commit explícito de la vista aprobada.
type AllocationUseCase struct {
	repo   repository.DailyRevenueRepository
	tx     TxRunner
	parser ReportParser
	log    zerolog.Logger
	now    func() time.Time
}

// NewAllocationUseCase construye el caso de uso.
func NewAllocationUseCase(
	repo repository.DailyRevenueRepository,
	tx TxRunner,
	parser ReportParser,
	log zerolog.Logger,
) *AllocationUseCase {
	return &AllocationUseCase{repo: repo, tx: tx, parser: parser, log: log, now: time.Now}
}

// PreviewFromAdSpend lee el CSV de anuncios y calcula la vista previa sobre el
// período del archivo. start/end explícitos (ambos) reemplazan al período detectado;
// sin período en el archivo son obligatorios.
func (uc *AllocationUseCase) PreviewFromAdSpend(ctx context.Context, r io.Reader, start, end *time.Time) (*dto.AllocationPreviewResponse, error) {
	report, err := uc.parser.ParseAdSpendReport(r)
	if err != nil {
		return nil, err
	}

	from, to := report.Start, report.End
	switch {
	case start != nil && end != nil:
		from, to = *start, *end
	case !report.PeriodDetected:
		return nil, domain.ErrPeriodNotFound
	}

	out, err := uc.preview(ctx, report.TotalAdSpend, from, to)
	if err != nil {
		return nil, err
	}
	out.PeriodDetected = report.PeriodDetected
	out.SourceRows = report.RowsSummed
	return out, nil
}

// Preview calcula la vista previa de un costo manual sobre [start, end].
func (uc *AllocationUseCase) Preview(ctx context.Context, totalCost decimal.Decimal, start, end time.Time) (*dto.AllocationPreviewResponse, error) {
	return uc.preview(ctx, totalCost, start, end)
}

func (uc *AllocationUseCase) preview(ctx context.Context, totalCost decimal.Decimal, start, end time.Time) (*dto.AllocationPreviewResponse, error) {
	if start.After(end) {
		return nil, domain.ErrInvalidPeriod
	}
	records, err := uc.repo.ListByRange(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("asignación: leer período: %w", err)
	}
	p, err := finance.ComputeAllocation(totalCost, start, end, records)
	if err != nil {
		return nil, err
	}

	uc.log.Debug().
		Str("from", p.Start.Format(dates.KeyLayout)).
		Str("to", p.End.Format(dates.KeyLayout)).
		Str("total_cost", p.TotalCost.String()).
		Int("days", len(p.Lines)).
		Msg("vista previa de asignación")
	return toPreviewResponse(p), nil
}

// Commit aplica la vista previa aprobada: sobrescribe el AdSpend de cada día y
// recalcula su ingreso neto, todo en una transacción. Reintentar con la misma
// vista deja el mismo estado. Si un día de la vista ya no existe el commit
// falla completo con ErrConflict.
func (uc *AllocationUseCase) Commit(ctx context.Context, in dto.CommitAllocationRequest) (*dto.CommitAllocationResponse, error) {
	lines, total, err := validateCommit(in)
	if err != nil {
		return nil, err
	}

	keys := make([]string, len(lines))
	for i, l := range lines {
		keys[i] = l.DateKey
	}

	err = uc.tx.Run(ctx, func(revenueRepo repository.DailyRevenueRepository, _ repository.AdminShiftRepository) error {
		existing, err := revenueRepo.ListByDateKeys(ctx, keys)
		if err != nil {
			return err
		}
		now := uc.now()
		records := make([]*entity.DailyRevenue, 0, len(lines))
		for _, l := range lines {
			rec, ok := existing[l.DateKey]
			if !ok {
				return fmt.Errorf("%w: el día %s ya no existe, genere una nueva vista previa", domain.ErrConflict, l.DateKey)
			}
			finance.ApplyAllocation(rec, l)
			rec.UpdatedAt = now
			records = append(records, rec)
		}
		return revenueRepo.UpsertMany(ctx, records)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Int("days", len(lines)).
		Str("total", total.String()).
		Msg("asignación de gasto publicitario confirmada")
	return &dto.CommitAllocationResponse{DaysUpdated: len(lines), TotalAllocated: total}, nil
}

// validateCommit convierte las líneas del DTO y verifica que sean coherentes:
// fechas válidas sin repetir, montos no negativos y, si viene TotalCost, que la
// suma coincida exactamente.
func validateCommit(in dto.CommitAllocationRequest) ([]finance.AllocationLine, decimal.Decimal, error) {
	if len(in.Lines) == 0 {
		return nil, decimal.Zero, fmt.Errorf("%w: la asignación no tiene líneas", domain.ErrInvalidInput)
	}
	seen := make(map[string]bool, len(in.Lines))
	lines := make([]finance.AllocationLine, 0, len(in.Lines))
	total := decimal.Zero
	for _, l := range in.Lines {
		day, ok := dates.ToLocalMidnight(l.Date)
		if !ok {
			return nil, decimal.Zero, fmt.Errorf("%w: fecha %q", domain.ErrInvalidInput, l.Date)
		}
		key := day.Format(dates.KeyLayout)
		if seen[key] {
			return nil, decimal.Zero, fmt.Errorf("%w: fecha repetida %s", domain.ErrInvalidInput, key)
		}
		seen[key] = true
		if l.AllocatedCost.IsNegative() {
			return nil, decimal.Zero, fmt.Errorf("%w: monto negativo en %s", domain.ErrInvalidInput, key)
		}
		lines = append(lines, finance.AllocationLine{
			Date:          day,
			DateKey:       key,
			GrossIncome:   l.GrossIncome,
			AllocatedCost: l.AllocatedCost,
		})
		total = total.Add(l.AllocatedCost)
	}
	if !in.TotalCost.IsZero() && !in.TotalCost.Equal(total) {
		return nil, decimal.Zero, fmt.Errorf("%w: las líneas suman %s y el total es %s", domain.ErrInvalidInput, total, in.TotalCost)
	}
	return lines, total, nil
}
