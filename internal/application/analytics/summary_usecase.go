package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/mygameon-ops/internal/application/dto"
	"github.com/jhoicas/mygameon-ops/internal/domain"
	"github.com/jhoicas/mygameon-ops/internal/domain/dates"
	"github.com/jhoicas/mygameon-ops/internal/domain/entity"
	"github.com/jhoicas/mygameon-ops/internal/domain/finance"
	"github.com/jhoicas/mygameon-ops/internal/domain/repository"
)

// SummaryUseCase genera el resumen financiero de un período.
//
// Fuentes: registros diarios y turnos completados del rango (consultas read-only).
// Nada se cachea: cada consulta recalcula el resumen completo.
type SummaryUseCase struct {
	revenueRepo repository.DailyRevenueRepository
	shiftRepo   repository.AdminShiftRepository
	pdf         SummaryPDFGenerator
	now         func() time.Time
}

// NewSummaryUseCase construye el caso de uso. pdf puede ser nil si no se exporta.
func NewSummaryUseCase(
	revenueRepo repository.DailyRevenueRepository,
	shiftRepo repository.AdminShiftRepository,
	pdf SummaryPDFGenerator,
) *SummaryUseCase {
	return &SummaryUseCase{revenueRepo: revenueRepo, shiftRepo: shiftRepo, pdf: pdf, now: time.Now}
}

// GetSummary construye el PeriodSummaryResponse de [start, end].
func (uc *SummaryUseCase) GetSummary(ctx context.Context, start, end time.Time) (*dto.PeriodSummaryResponse, error) {
	report, err := uc.load(ctx, start, end)
	if err != nil {
		return nil, err
	}
	return toSummaryResponse(report), nil
}

// ExportPDF genera el PDF del resumen de [start, end] y su nombre de archivo.
func (uc *SummaryUseCase) ExportPDF(ctx context.Context, start, end time.Time) (pdfBytes []byte, filename string, err error) {
	if uc.pdf == nil {
		return nil, "", fmt.Errorf("resumen: generador PDF no configurado")
	}
	report, err := uc.load(ctx, start, end)
	if err != nil {
		return nil, "", err
	}
	pdfBytes, err = uc.pdf.GenerateSummaryPDF(ctx, report)
	if err != nil {
		return nil, "", fmt.Errorf("resumen: generar PDF: %w", err)
	}
	filename = fmt.Sprintf("ringkasan_%s_%s.pdf", report.Start.Format("20060102"), report.End.Format("20060102"))
	return pdfBytes, filename, nil
}

// load lee ingresos y turnos en paralelo y calcula el resumen.
func (uc *SummaryUseCase) load(ctx context.Context, start, end time.Time) (*SummaryReport, error) {
	from, okFrom := dates.ToLocalMidnight(start)
	to, okTo := dates.ToLocalMidnight(end)
	if !okFrom || !okTo {
		return nil, domain.ErrInvalidInput
	}
	if from.After(to) {
		return nil, domain.ErrInvalidPeriod
	}

	// ── Goroutines para paralelizar las 2 consultas DB ────────────────────────
	type revenuesResult struct {
		days []*entity.DailyRevenue
		err  error
	}
	type shiftsResult struct {
		shifts []*entity.AdminShift
		err    error
	}

	revenuesCh := make(chan revenuesResult, 1)
	shiftsCh := make(chan shiftsResult, 1)

	go func() {
		days, err := uc.revenueRepo.ListByRange(ctx, from, to)
		revenuesCh <- revenuesResult{days, err}
	}()
	go func() {
		shifts, err := uc.shiftRepo.ListCompletedByRange(ctx, from, to)
		shiftsCh <- shiftsResult{shifts, err}
	}()

	revenues := <-revenuesCh
	shifts := <-shiftsCh

	if revenues.err != nil {
		return nil, fmt.Errorf("resumen: ingresos diarios: %w", revenues.err)
	}
	if shifts.err != nil {
		return nil, fmt.Errorf("resumen: turnos: %w", shifts.err)
	}

	return &SummaryReport{
		Start:       from,
		End:         to,
		Label:       periodLabel(from, to),
		Summary:     finance.SummarizePeriod(shifts.shifts, revenues.days),
		Days:        revenues.days,
		GeneratedAt: uc.now(),
	}, nil
}

func toSummaryResponse(r *SummaryReport) *dto.PeriodSummaryResponse {
	s := r.Summary
	pay := make([]dto.AdminDayPayDTO, 0, len(s.AdminPay))
	for _, p := range s.AdminPay {
		pay = append(pay, dto.AdminDayPayDTO{
			Date:        p.DateKey,
			AdminName:   p.AdminName,
			Shifts:      p.Shifts,
			Hours:       p.Hours,
			GrossIncome: p.GrossIncome,
			OrdersCount: p.OrdersCount,
			Pay:         p.Pay,
		})
	}
	return &dto.PeriodSummaryResponse{
		StartDate:             r.Start.Format(dates.KeyLayout),
		EndDate:               r.End.Format(dates.KeyLayout),
		DateLabel:             r.Label,
		TotalGrossRevenue:     s.TotalGrossRevenue,
		TotalVoucherCost:      s.TotalVoucherCost,
		TotalAdSpend:          s.TotalAdSpend,
		TotalNetRevenue:       s.TotalNetRevenue,
		TotalSuccessfulOrders: s.TotalSuccessfulOrders,
		TotalAdminPay:         s.TotalAdminPay,
		NetProfit:             s.NetProfit,
		SalaryPercentage:      s.SalaryPercentage,
		AvgRevenuePerOrder:    s.AvgRevenuePerOrder,
		RevenueDays:           s.RevenueDays,
		AdminPay:              pay,
	}
}

var monthNames = [...]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

// periodLabel devuelve una etiqueta legible del período: "Januari 2024" si cubre
// un mes calendario completo, o "01/01/2024 - 15/01/2024" en otro caso.
func periodLabel(from, to time.Time) string {
	lastOfMonth := time.Date(from.Year(), from.Month()+1, 0, 0, 0, 0, 0, from.Location())
	if from.Day() == 1 && to.Equal(lastOfMonth) {
		return fmt.Sprintf("%s %d", monthNames[from.Month()-1], from.Year())
	}
	return fmt.Sprintf("%s - %s", from.Format("02/01/2006"), to.Format("02/01/2006"))
}
