package spreadsheet

import (
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/mygameon-ops/internal/domain/dates"
)

// Filas revisadas al buscar encabezados o el rango del período.
const (
	maxHeaderScanRows = 20
	maxPeriodScanRows = 10
)

// Parser agrupa los tres lectores de reportes. Es seguro para uso concurrente.
type Parser struct {
	log zerolog.Logger
}

// NewParser construye el lector de reportes.
func NewParser(log zerolog.Logger) *Parser {
	return &Parser{log: log}
}

// columnMap nombre de columna normalizado → índice.
type columnMap map[string]int

func newColumnMap(header []string) columnMap {
	m := make(columnMap, len(header))
	for i, h := range header {
		label := normalizeLabel(h)
		if label == "" {
			continue
		}
		if _, dup := m[label]; !dup {
			m[label] = i
		}
	}
	return m
}

// find devuelve el índice del primer candidato exacto presente.
func (m columnMap) find(candidates ...string) (int, bool) {
	for _, c := range candidates {
		if i, ok := m[c]; ok {
			return i, true
		}
	}
	return -1, false
}

// findContaining busca la columna más a la izquierda cuyo nombre contiene alguna pista,
// omitiendo las que contienen alguno de los términos excluidos.
func findContaining(header []string, hints []string, exclude ...string) (int, bool) {
	for _, hint := range hints {
	columns:
		for i, h := range header {
			label := normalizeLabel(h)
			if !strings.Contains(label, hint) {
				continue
			}
			for _, ex := range exclude {
				if strings.Contains(label, ex) {
					continue columns
				}
			}
			return i, true
		}
	}
	return -1, false
}

func normalizeLabel(s string) string {
	s = strings.TrimPrefix(s, "\ufeff")
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// reportDate interpreta la celda de fecha: serial numérico o texto (DD-MM-YYYY, ISO...).
func reportDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	if t, ok := dates.ExcelSerialToLocalDate(raw); ok {
		return t, true
	}
	return dates.ToLocalMidnight(raw)
}
