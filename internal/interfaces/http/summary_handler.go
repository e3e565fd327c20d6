package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/mygameon-ops/internal/application/analytics"
)

// SummaryHandler resumen financiero del período.
type SummaryHandler struct {
	uc  *analytics.SummaryUseCase
	now func() time.Time
}

// NewSummaryHandler construye el handler.
func NewSummaryHandler(uc *analytics.SummaryUseCase) *SummaryHandler {
	return &SummaryHandler{uc: uc, now: time.Now}
}

// GetSummary godoc
// @Summary      Resumen del período
// @Description  Totales de ingresos, pago de admins por día, utilidad neta y porcentaje salarial.
// @Tags         summary
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  false  "Inicio (YYYY-MM-DD). Default: primer día del mes."
// @Param        end_date    query  string  false  "Fin (YYYY-MM-DD). Default: último día del mes."
// @Success      200  {object}  dto.PeriodSummaryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/summary [get]
func (h *SummaryHandler) GetSummary(c *fiber.Ctx) error {
	start, end, err := parseDateRange(c, h.now())
	if err != nil {
		return respondError(c, err)
	}
	summary, err := h.uc.GetSummary(c.UserContext(), start, end)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(summary)
}

// ExportPDF godoc
// @Summary      Resumen del período en PDF
// @Tags         summary
// @Security     Bearer
// @Produce      application/pdf
// @Param        start_date  query  string  false  "Inicio (YYYY-MM-DD)"
// @Param        end_date    query  string  false  "Fin (YYYY-MM-DD)"
// @Success      200  {file}  binary  "PDF"
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/summary/pdf [get]
func (h *SummaryHandler) ExportPDF(c *fiber.Ctx) error {
	start, end, err := parseDateRange(c, h.now())
	if err != nil {
		return respondError(c, err)
	}
	data, filename, err := h.uc.ExportPDF(c.UserContext(), start, end)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(data)
}
