// Package analytics contiene los casos de uso de reportes del período:
// resumen financiero (ingresos, costos, pago de admins) y su exportación a PDF.
package analytics

import (
	"context"
	"time"

	"github.com/jhoicas/mygameon-ops/internal/domain/entity"
	"github.com/jhoicas/mygameon-ops/internal/domain/finance"
)

// SummaryReport datos completos de un período para el PDF.
type SummaryReport struct {
	Start       time.Time
	End         time.Time
	Label       string
	Summary     finance.PeriodSummary
	Days        []*entity.DailyRevenue
	GeneratedAt time.Time
}

// SummaryPDFGenerator genera la representación PDF del resumen del período.
type SummaryPDFGenerator interface {
	GenerateSummaryPDF(ctx context.Context, report *SummaryReport) ([]byte, error)
}
