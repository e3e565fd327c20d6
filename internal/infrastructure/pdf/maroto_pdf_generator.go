// Package pdf genera el resumen financiero de un período en PDF (Ringkasan).
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: MyGameON + período       │  Fecha de generación    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  KPIs: Bruto | Voucher | Ads | Neto | Pago admins | Utilidad │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA DIARIA: Fecha | Bruto | Pedidos | Voucher | Ads | Neto│
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA ADMINS: Fecha | Admin | Turnos | Horas | Bruto | Pago │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: leyenda                                             │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/mygameon-ops/internal/application/analytics"
	"github.com/jhoicas/mygameon-ops/internal/domain/entity"
	"github.com/jhoicas/mygameon-ops/internal/domain/finance"
	"github.com/jhoicas/mygameon-ops/pkg/currency"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary  = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray     = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorNegative = &props.Color{Red: 170, Green: 30, Blue: 30}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ analytics.SummaryPDFGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa analytics.SummaryPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	company string
}

// NewMarotoPDFGenerator construye el generador. company es el nombre del encabezado.
func NewMarotoPDFGenerator(company string) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{company: nonEmpty(company, "MyGameON")}
}

// GenerateSummaryPDF genera el PDF del resumen y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateSummaryPDF(_ context.Context, report *analytics.SummaryReport) ([]byte, error) {
	if report == nil {
		return nil, fmt.Errorf("pdf: resumen vacío")
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Ringkasan "+report.Label, true).
		WithAuthor(g.company, true).
		Build()

	m := maroto.New(cfg)

	// Header principal
	m.AddRows(g.headerRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	// KPIs del período
	m.AddRows(kpiRows(report.Summary)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	// Tabla diaria
	m.AddRows(sectionTitle("PENDAPATAN HARIAN"))
	m.AddRows(dailyHeaderRow())
	m.AddRows(dailyRows(report.Days)...)

	// Pago de admins
	m.AddRows(line.NewRow(3))
	m.AddRows(sectionTitle("GAJI ADMIN"))
	m.AddRows(adminHeaderRow())
	m.AddRows(adminRows(report.Summary.AdminPay)...)

	// Footer
	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(report))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: empresa + período (izq) y fecha de generación (der).
func (g *MarotoPDFGenerator) headerRow(report *analytics.SummaryReport) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(g.company, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Periode: "+report.Label, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("RINGKASAN KEUANGAN", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%s - %s",
				report.Start.Format("02/01/2006"), report.End.Format("02/01/2006"),
			), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 7,
			}),
			text.New("Dibuat: "+report.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// kpiRows: dos filas de tres indicadores cada una.
func kpiRows(s finance.PeriodSummary) []core.Row {
	kpi := func(label, value string, c *props.Color) core.Col {
		return col.New(4).Add(
			text.New(label, props.Text{Size: 7, Color: colorGray, Top: 1, Left: 1}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 11, Color: c, Top: 5, Left: 1}),
		)
	}
	profitColor := colorPrimary
	if s.NetProfit.IsNegative() {
		profitColor = colorNegative
	}
	return []core.Row{
		row.New(13).Add(
			kpi("Pendapatan kotor", currency.IDR(s.TotalGrossRevenue), nil),
			kpi("Biaya voucher", currency.IDR(s.TotalVoucherCost), nil),
			kpi("Biaya iklan", currency.IDR(s.TotalAdSpend), nil),
		),
		row.New(13).Add(
			kpi("Pendapatan bersih", currency.IDR(s.TotalNetRevenue), colorPrimary),
			kpi("Gaji admin ("+currency.Percent(s.SalaryPercentage)+")", currency.IDR(s.TotalAdminPay), nil),
			kpi("Laba bersih", currency.IDR(s.NetProfit), profitColor),
		),
		row.New(7).Add(
			col.New(12).Add(text.New(fmt.Sprintf(
				"%s hari tercatat   |   %s pesanan berhasil   |   rata-rata %s per pesanan",
				currency.Int(s.RevenueDays),
				currency.Int(s.TotalSuccessfulOrders),
				currency.IDR(s.AvgRevenuePerOrder),
			), props.Text{Size: 8, Color: colorGray, Top: 1, Left: 1})),
		),
	}
}

func sectionTitle(label string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2,
		}),
	))
}

func headerCell(label string, size int, a align.Type) core.Col {
	return col.New(size).Add(text.New(label, props.Text{
		Style: fontstyle.Bold, Size: 8, Align: a,
		Color: colorPrimary, Top: 2, Left: 1, Right: 1,
	}))
}

func cellText(value string, size int, a align.Type) core.Col {
	return col.New(size).Add(text.New(value, props.Text{
		Size: 8, Align: a, Top: 1, Left: 1, Right: 1,
	}))
}

// dailyHeaderRow: cabecera de la tabla de registros diarios.
func dailyHeaderRow() core.Row {
	return row.New(8).Add(
		headerCell("Tanggal", 2, align.Left),
		headerCell("Kotor", 2, align.Right),
		headerCell("Pesanan", 1, align.Center),
		headerCell("Batal/Retur", 2, align.Right),
		headerCell("Voucher", 2, align.Right),
		headerCell("Iklan", 1, align.Right),
		headerCell("Bersih", 2, align.Right),
	)
}

// dailyRows: una fila por día registrado.
func dailyRows(days []*entity.DailyRevenue) []core.Row {
	if len(days) == 0 {
		return []core.Row{emptyRow("Tidak ada data pendapatan pada periode ini.")}
	}
	result := make([]core.Row, 0, len(days))
	for _, d := range days {
		if d == nil {
			continue
		}
		result = append(result, row.New(6).Add(
			cellText(d.Date.Format("02/01/2006"), 2, align.Left),
			cellText(currency.IDR(d.GrossIncome), 2, align.Right),
			cellText(currency.Int(d.SuccessfulOrders), 1, align.Center),
			cellText(currency.IDR(d.CanceledValue.Add(d.ReturnedValue)), 2, align.Right),
			cellText(currency.IDR(d.VoucherCost), 2, align.Right),
			cellText(currency.IDR(d.AdSpend), 1, align.Right),
			cellText(currency.IDR(d.CalculatedNetRevenue), 2, align.Right),
		))
	}
	return result
}

// adminHeaderRow: cabecera de la tabla de pagos por (día, admin).
func adminHeaderRow() core.Row {
	return row.New(8).Add(
		headerCell("Tanggal", 2, align.Left),
		headerCell("Admin", 3, align.Left),
		headerCell("Shift", 1, align.Center),
		headerCell("Jam", 1, align.Right),
		headerCell("Kotor", 3, align.Right),
		headerCell("Gaji", 2, align.Right),
	)
}

func adminRows(pay []finance.AdminDayPay) []core.Row {
	if len(pay) == 0 {
		return []core.Row{emptyRow("Tidak ada shift selesai pada periode ini.")}
	}
	result := make([]core.Row, 0, len(pay))
	for _, p := range pay {
		result = append(result, row.New(6).Add(
			cellText(p.DateKey, 2, align.Left),
			cellText(p.AdminName, 3, align.Left),
			cellText(currency.Int(p.Shifts), 1, align.Center),
			cellText(p.Hours.StringFixed(2), 1, align.Right),
			cellText(currency.IDR(p.GrossIncome), 3, align.Right),
			cellText(currency.IDR(p.Pay), 2, align.Right),
		))
	}
	return result
}

func emptyRow(msg string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(msg, props.Text{Size: 8, Color: colorGray, Align: align.Center, Top: 2}),
	))
}

// footerRow: leyenda del cálculo.
func footerRow(report *analytics.SummaryReport) core.Row {
	return row.New(10).Add(col.New(12).Add(
		text.New(
			"Pendapatan bersih = kotor - batal - retur - biaya admin - voucher - iklan. "+
				"Gaji admin dihitung per admin per hari dari total jam dan pendapatan shift. "+
				"Periode: "+report.Label+".",
			props.Text{Size: 6.5, Color: colorGray, Top: 2},
		),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
