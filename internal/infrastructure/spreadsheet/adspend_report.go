package spreadsheet

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/mygameon-ops/internal/domain"
	"github.com/jhoicas/mygameon-ops/internal/domain/dates"
	"github.com/jhoicas/mygameon-ops/internal/domain/entity"
)

const (
	// adSpendCostColumn posición de "Biaya" en la exportación estándar de anuncios.
	adSpendCostColumn = 8
	// adSpendScoreRows celdas por columna evaluadas por la heurística numérica.
	adSpendScoreRows = 30
)

var (
	adSpendPeriod      = regexp.MustCompile(`(\d{1,2}/\d{1,2}/\d{4})\s*-\s*(\d{1,2}/\d{1,2}/\d{4})`)
	adSpendCostColumns = []string{"biaya", "biaya iklan", "biaya (idr)", "pengeluaran", "cost", "spend", "amount spent"}
	adSpendCostHints   = []string{"biaya", "cost", "spend"}
	utf8BOM            = []byte{0xEF, 0xBB, 0xBF}
)

// ParseAdSpendReport lee el CSV de anuncios y devuelve el gasto total del período.
//
//   - Período: primer texto "DD/MM/YYYY - DD/MM/YYYY" en las primeras filas.
//   - Columna de costo: posición fija si su encabezado es de costo, si no por nombre,
//     y como último recurso la columna con más celdas numéricas entre las primeras 30.
//   - Suma desde la fila siguiente al encabezado (o desde la primera si no hay encabezado).
//
// Si no hay período, el reporte vuelve con PeriodDetected=false y el llamador decide.
func (p *Parser) ParseAdSpendReport(r io.Reader) (*entity.AdSpendReport, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnreadableFile, err)
	}
	raw = bytes.TrimPrefix(raw, utf8BOM)
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, domain.ErrEmptyReport
	}
	if !utf8.Valid(raw) {
		// Exportaciones antiguas llegan en Windows-1252.
		decoded, _, err := transform.Bytes(charmap.Windows1252.NewDecoder(), raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrUnreadableFile, err)
		}
		raw = decoded
	}

	reader := csv.NewReader(bytes.NewReader(raw))
	reader.Comma = sniffDelimiter(raw)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnreadableFile, err)
	}

	report := &entity.AdSpendReport{TotalAdSpend: decimal.Zero}
	p.detectPeriod(rows, report)

	headerIdx := findAdSpendHeader(rows)
	col, ok := costColumn(rows, headerIdx)
	if !ok {
		return nil, fmt.Errorf("%w: biaya", domain.ErrColumnNotFound)
	}
	report.CostColumn = col

	for _, row := range rows[headerIdx+1:] {
		v, ok := CleanNumber(cell(row, col))
		if !ok {
			continue
		}
		report.TotalAdSpend = report.TotalAdSpend.Add(v)
		report.RowsSummed++
	}

	p.log.Debug().
		Bool("period_detected", report.PeriodDetected).
		Int("cost_column", col).
		Int("rows_summed", report.RowsSummed).
		Str("total", report.TotalAdSpend.String()).
		Msg("reporte de anuncios leído")

	return report, nil
}

func (p *Parser) detectPeriod(rows [][]string, report *entity.AdSpendReport) {
	for i := 0; i < len(rows) && i < maxPeriodScanRows; i++ {
		m := adSpendPeriod.FindStringSubmatch(strings.Join(rows[i], " "))
		if m == nil {
			continue
		}
		start, okStart := dates.ToLocalMidnight(m[1])
		end, okEnd := dates.ToLocalMidnight(m[2])
		if !okStart || !okEnd {
			p.log.Warn().Str("period", m[0]).Msg("rango de fechas del reporte de anuncios inválido")
			continue
		}
		if start.After(end) {
			start, end = end, start
		}
		report.Start, report.End, report.PeriodDetected = start, end, true
		return
	}
}

// findAdSpendHeader devuelve la fila de encabezados o -1 si no hay una reconocible.
func findAdSpendHeader(rows [][]string) int {
	for i := 0; i < len(rows) && i < maxHeaderScanRows; i++ {
		if _, ok := newColumnMap(rows[i]).find(adSpendCostColumns...); ok {
			return i
		}
	}
	return -1
}

func costColumn(rows [][]string, headerIdx int) (int, bool) {
	if headerIdx >= 0 {
		header := rows[headerIdx]
		if strings.Contains(normalizeLabel(cell(header, adSpendCostColumn)), "biaya") {
			return adSpendCostColumn, true
		}
		if i, ok := newColumnMap(header).find(adSpendCostColumns...); ok {
			return i, true
		}
		if i, ok := findContaining(header, adSpendCostHints); ok {
			return i, true
		}
	}
	return mostNumericColumn(rows[headerIdx+1:])
}

// mostNumericColumn puntúa cada columna por cuántas de sus primeras celdas son numéricas.
// En empate gana la columna más a la izquierda.
func mostNumericColumn(rows [][]string) (int, bool) {
	scores := make(map[int]int)
	width := 0
	for i := 0; i < len(rows) && i < adSpendScoreRows; i++ {
		if len(rows[i]) > width {
			width = len(rows[i])
		}
		for c, v := range rows[i] {
			if _, ok := CleanNumber(v); ok {
				scores[c]++
			}
		}
	}
	best, bestScore := -1, 0
	for c := 0; c < width; c++ {
		if scores[c] > bestScore {
			best, bestScore = c, scores[c]
		}
	}
	return best, best >= 0
}

// sniffDelimiter elige ';' cuando la primera línea con datos tiene más ';' que ','.
func sniffDelimiter(raw []byte) rune {
	for _, line := range bytes.Split(raw, []byte("\n")) {
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}
		if bytes.Count(line, []byte(";")) > bytes.Count(line, []byte(",")) {
			return ';'
		}
		return ','
	}
	return ','
}
