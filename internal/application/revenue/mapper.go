package revenue

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/mygameon-ops/internal/application/dto"
	"github.com/jhoicas/mygameon-ops/internal/domain/dates"
	"github.com/jhoicas/mygameon-ops/internal/domain/entity"
	"github.com/jhoicas/mygameon-ops/internal/domain/finance"
)

// weightScale decimales del peso informativo de cada línea.
const weightScale = 4

// ToDailyRevenueResponse convierte la entidad a DTO.
func ToDailyRevenueResponse(r *entity.DailyRevenue) dto.DailyRevenueResponse {
	return dto.DailyRevenueResponse{
		Date:                 r.DateKey,
		GrossIncome:          r.GrossIncome,
		TotalOrders:          r.TotalOrders,
		CanceledOrders:       r.CanceledOrders,
		CanceledValue:        r.CanceledValue,
		ReturnedOrders:       r.ReturnedOrders,
		ReturnedValue:        r.ReturnedValue,
		VoucherCost:          r.VoucherCost,
		AdSpend:              r.AdSpend,
		SuccessfulOrders:     r.SuccessfulOrders,
		CalculatedNetRevenue: r.CalculatedNetRevenue,
		Month:                r.Month,
		Year:                 r.Year,
		CreatedAt:            r.CreatedAt,
		UpdatedAt:            r.UpdatedAt,
	}
}

func toPreviewResponse(p *finance.AllocationPreview) *dto.AllocationPreviewResponse {
	lines := make([]dto.AllocationLineDTO, 0, len(p.Lines))
	for _, l := range p.Lines {
		weight := decimal.Zero
		if p.TotalGross.IsPositive() {
			weight = l.GrossIncome.Div(p.TotalGross).Round(weightScale)
		}
		lines = append(lines, dto.AllocationLineDTO{
			Date:          l.DateKey,
			GrossIncome:   l.GrossIncome,
			Weight:        weight,
			AllocatedCost: l.AllocatedCost,
		})
	}
	return &dto.AllocationPreviewResponse{
		StartDate:  p.Start.Format(dates.KeyLayout),
		EndDate:    p.End.Format(dates.KeyLayout),
		TotalCost:  p.TotalCost,
		TotalGross: p.TotalGross,
		Allocated:  p.Allocated(),
		Lines:      lines,
	}
}
