// Package revenue contiene los casos de uso de ingresos diarios: importación de
// reportes del marketplace, edición manual y asignación de gasto publicitario.
package revenue

import (
	"context"
	"io"

	"github.com/jhoicas/mygameon-ops/internal/domain/entity"
	"github.com/jhoicas/mygameon-ops/internal/domain/repository"
)

// ReportParser lee los reportes exportados por el marketplace.
type ReportParser interface {
	ParseSalesReport(r io.Reader) ([]entity.SalesReportRow, error)
	ParseVoucherReport(r io.Reader) ([]entity.VoucherReportRow, error)
	ParseAdSpendReport(r io.Reader) (*entity.AdSpendReport, error)
}

// TxRunner ejecuta fn dentro de una transacción con repos atados a ella.
// Si fn devuelve error no queda ninguna escritura aplicada.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		revenueRepo repository.DailyRevenueRepository,
		shiftRepo repository.AdminShiftRepository,
	) error) error
}
