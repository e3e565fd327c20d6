package finance

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/mygameon-ops/internal/domain"
	"github.com/jhoicas/mygameon-ops/internal/domain/dates"
	"github.com/jhoicas/mygameon-ops/internal/domain/entity"
)

// allocationScale decimales de cada monto asignado.
const allocationScale = 2

// AllocationLine parte del costo asignada a un día.
type AllocationLine struct {
	Date          time.Time
	DateKey       string
	GrossIncome   decimal.Decimal
	AllocatedCost decimal.Decimal
}

// AllocationPreview resultado de ComputeAllocation. No se persiste nada hasta que
// un humano lo confirma (CommitAllocation en la capa de aplicación).
type AllocationPreview struct {
	Start      time.Time
	End        time.Time
	TotalCost  decimal.Decimal
	TotalGross decimal.Decimal
	Lines      []AllocationLine
}

// Allocated suma de los montos asignados; coincide con TotalCost.
func (p *AllocationPreview) Allocated() decimal.Decimal {
	sum := decimal.Zero
	for _, l := range p.Lines {
		sum = sum.Add(l.AllocatedCost)
	}
	return sum
}

// ComputeAllocation reparte totalCost entre los días de [start, end] en proporción
// al ingreso bruto de cada día:
//
//	peso_i  = bruto_i / Σ bruto
//	costo_i = peso_i * totalCost   (redondeado a 2 decimales)
//
// El residuo de redondeo se suma al día de mayor bruto para que las líneas sumen
// exactamente totalCost. Si el período no tiene ventas devuelve ErrNoRevenueInPeriod:
// el costo nunca se reparte en partes iguales ni se descarta en silencio.
func ComputeAllocation(totalCost decimal.Decimal, start, end time.Time, records []*entity.DailyRevenue) (*AllocationPreview, error) {
	from, ok := dates.ToLocalMidnight(start)
	if !ok {
		return nil, domain.ErrInvalidInput
	}
	to, ok := dates.ToLocalMidnight(end)
	if !ok {
		return nil, domain.ErrInvalidInput
	}
	if from.After(to) {
		return nil, domain.ErrInvalidPeriod
	}
	if totalCost.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	lines := make([]AllocationLine, 0, len(records))
	totalGross := decimal.Zero
	for _, r := range records {
		if r == nil || !dates.InRange(r.Date, from, to) {
			continue
		}
		day, _ := dates.ToLocalMidnight(r.Date)
		lines = append(lines, AllocationLine{
			Date:        day,
			DateKey:     day.Format(dates.KeyLayout),
			GrossIncome: r.GrossIncome,
		})
		totalGross = totalGross.Add(r.GrossIncome)
	}

	if !totalGross.IsPositive() {
		return nil, domain.ErrNoRevenueInPeriod
	}

	sort.SliceStable(lines, func(i, j int) bool { return lines[i].Date.Before(lines[j].Date) })

	allocated := decimal.Zero
	largest := 0
	for i := range lines {
		share := lines[i].GrossIncome.Mul(totalCost).Div(totalGross).Round(allocationScale)
		lines[i].AllocatedCost = share
		allocated = allocated.Add(share)
		if lines[i].GrossIncome.GreaterThan(lines[largest].GrossIncome) {
			largest = i
		}
	}
	if remainder := totalCost.Sub(allocated); !remainder.IsZero() {
		lines[largest].AllocatedCost = lines[largest].AllocatedCost.Add(remainder)
	}

	return &AllocationPreview{
		Start:      from,
		End:        to,
		TotalCost:  totalCost,
		TotalGross: totalGross,
		Lines:      lines,
	}, nil
}

// ApplyAllocation sobrescribe (no acumula) el AdSpend de un día con su parte asignada
// y recalcula el ingreso neto. Aplicarlo dos veces con la misma línea deja el mismo estado.
func ApplyAllocation(r *entity.DailyRevenue, line AllocationLine) RevenueBreakdown {
	r.AdSpend = line.AllocatedCost
	return Recalculate(r)
}
