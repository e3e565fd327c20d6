package spreadsheet

import (
	"fmt"
	"io"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/mygameon-ops/internal/domain"
	"github.com/jhoicas/mygameon-ops/internal/domain/dates"
	"github.com/jhoicas/mygameon-ops/internal/domain/entity"
)

// Encabezados conocidos del reporte de vouchers; si ninguno aparece se usan las pistas por subcadena.
var (
	voucherDateColumns = []string{
		"waktu pesanan dibuat",
		"tanggal pesanan dibuat",
		"tanggal pesanan",
		"waktu pembayaran dilakukan",
		"tanggal",
		"waktu",
	}
	voucherCostColumns = []string{
		"voucher ditanggung penjual",
		"biaya voucher ditanggung penjual",
		"voucher dari penjual",
		"biaya voucher",
		"biaya voucher (idr)",
	}
	voucherDateHints = []string{"waktu", "tanggal"}
	voucherCostHints = []string{"biaya", "voucher"}
)

// ParseVoucherReport lee el libro de vouchers y devuelve el costo de vouchers del vendedor
// consolidado por día. Revisa todas las hojas en orden y usa la primera con una fila de
// encabezados que tenga columna de fecha y de costo. Las filas con costo no positivo
// o sin fecha se descartan.
func (p *Parser) ParseVoucherReport(r io.Reader) ([]entity.VoucherReportRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnreadableFile, err)
	}
	defer func() { _ = f.Close() }()

	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
		if err != nil {
			p.log.Warn().Err(err).Str("sheet", sheet).Msg("hoja de vouchers ilegible, se omite")
			continue
		}
		headerIdx, dateCol, costCol, ok := locateVoucherColumns(rows)
		if !ok {
			continue
		}

		byDay := make(map[string]*entity.VoucherReportRow)
		dropped := 0
		for _, row := range rows[headerIdx+1:] {
			day, ok := reportDate(cell(row, dateCol))
			if !ok {
				dropped++
				continue
			}
			cost := amount(cell(row, costCol))
			if !cost.IsPositive() {
				dropped++
				continue
			}
			key := day.Format(dates.KeyLayout)
			agg, exists := byDay[key]
			if !exists {
				agg = &entity.VoucherReportRow{Date: day, VoucherCost: decimal.Zero}
				byDay[key] = agg
			}
			agg.VoucherCost = agg.VoucherCost.Add(cost)
		}

		out := make([]entity.VoucherReportRow, 0, len(byDay))
		for _, v := range byDay {
			out = append(out, *v)
		}
		sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })

		p.log.Debug().
			Str("sheet", sheet).
			Int("days", len(out)).
			Int("dropped_rows", dropped).
			Msg("reporte de vouchers leído")
		return out, nil
	}

	return nil, domain.ErrHeaderNotFound
}

// locateVoucherColumns busca la fila de encabezados: primero por nombres exactos,
// luego por subcadenas ("waktu"/"tanggal" para la fecha, "biaya"/"voucher" para el costo).
func locateVoucherColumns(rows [][]string) (headerIdx, dateCol, costCol int, ok bool) {
	for i := 0; i < len(rows) && i < maxHeaderScanRows; i++ {
		cols := newColumnMap(rows[i])

		dateCol, okDate := cols.find(voucherDateColumns...)
		if !okDate {
			dateCol, okDate = findContaining(rows[i], voucherDateHints)
		}
		costCol, okCost := cols.find(voucherCostColumns...)
		if !okCost {
			costCol, okCost = findContaining(rows[i], voucherCostHints, "kode", "nama", "code")
		}
		if okDate && okCost && dateCol != costCol {
			return i, dateCol, costCol, true
		}
	}
	return -1, -1, -1, false
}
