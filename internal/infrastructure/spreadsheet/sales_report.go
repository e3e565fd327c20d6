package spreadsheet

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/mygameon-ops/internal/domain"
	"github.com/jhoicas/mygameon-ops/internal/domain/dates"
	"github.com/jhoicas/mygameon-ops/internal/domain/entity"
)

// SalesSheetName hoja del reporte de ventas exportado por el marketplace.
const SalesSheetName = "Pesanan Dibuat"

// Columnas del reporte de ventas (etiquetas normalizadas). La primera es el ancla del encabezado.
var (
	salesDateColumn           = []string{"tanggal"}
	salesGrossColumn          = []string{"total penjualan (idr)", "total penjualan", "penjualan (idr)"}
	salesTotalOrdersColumn    = []string{"total pesanan", "pesanan"}
	salesCanceledOrdersColumn = []string{"pesanan dibatalkan"}
	salesCanceledValueColumn  = []string{"penjualan dibatalkan (idr)", "penjualan dibatalkan", "nilai pesanan dibatalkan"}
	salesReturnedOrdersColumn = []string{"pesanan dikembalikan"}
	salesReturnedValueColumn  = []string{"penjualan dikembalikan (idr)", "penjualan dikembalikan", "nilai pesanan dikembalikan"}
)

// ParseSalesReport lee el libro de ventas y devuelve una fila normalizada por día.
//
// Busca la hoja SalesSheetName, localiza la fila de encabezados por la columna "Tanggal",
// arma el mapa nombre→índice y convierte cada fila siguiente. Las filas sin fecha
// interpretable se omiten. Si un día aparece dos veces, prevalece la última fila.
// Hoja o encabezado ausentes devuelven un resultado vacío con el error de dominio
// correspondiente para que el llamador muestre el mensaje adecuado.
func (p *Parser) ParseSalesReport(r io.Reader) ([]entity.SalesReportRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnreadableFile, err)
	}
	defer func() { _ = f.Close() }()

	sheet, ok := findSheet(f, SalesSheetName)
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrSheetNotFound, SalesSheetName)
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnreadableFile, err)
	}

	headerIdx := -1
	for i := 0; i < len(rows) && i < maxHeaderScanRows; i++ {
		if _, ok := newColumnMap(rows[i]).find(salesDateColumn...); ok {
			headerIdx = i
			break
		}
	}
	if headerIdx < 0 {
		return nil, domain.ErrHeaderNotFound
	}

	cols := newColumnMap(rows[headerIdx])
	dateCol, _ := cols.find(salesDateColumn...)
	grossCol, ok := cols.find(salesGrossColumn...)
	if !ok {
		return nil, fmt.Errorf("%w: total penjualan", domain.ErrColumnNotFound)
	}
	totalCol, _ := cols.find(salesTotalOrdersColumn...)
	canceledCol, _ := cols.find(salesCanceledOrdersColumn...)
	canceledValCol, _ := cols.find(salesCanceledValueColumn...)
	returnedCol, _ := cols.find(salesReturnedOrdersColumn...)
	returnedValCol, _ := cols.find(salesReturnedValueColumn...)

	byDay := make(map[string]entity.SalesReportRow)
	skipped := 0
	for _, row := range rows[headerIdx+1:] {
		day, ok := reportDate(cell(row, dateCol))
		if !ok {
			skipped++
			continue
		}
		byDay[day.Format(dates.KeyLayout)] = entity.SalesReportRow{
			Date:           day,
			GrossIncome:    amount(cell(row, grossCol)),
			TotalOrders:    count(cell(row, totalCol)),
			CanceledOrders: count(cell(row, canceledCol)),
			CanceledValue:  amount(cell(row, canceledValCol)),
			ReturnedOrders: count(cell(row, returnedCol)),
			ReturnedValue:  amount(cell(row, returnedValCol)),
		}
	}

	out := make([]entity.SalesReportRow, 0, len(byDay))
	for _, r := range byDay {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })

	p.log.Debug().
		Str("sheet", sheet).
		Int("days", len(out)).
		Int("skipped_rows", skipped).
		Msg("reporte de ventas leído")

	return out, nil
}

// findSheet busca la hoja por nombre sin distinguir mayúsculas ni espacios extremos.
func findSheet(f *excelize.File, name string) (string, bool) {
	for _, s := range f.GetSheetList() {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			return s, true
		}
	}
	return "", false
}
