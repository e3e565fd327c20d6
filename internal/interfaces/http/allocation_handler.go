package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/mygameon-ops/internal/application/dto"
	"github.com/jhoicas/mygameon-ops/internal/application/revenue"
)

// AllocationHandler reparto del gasto en anuncios: vista previa y commit.
type AllocationHandler struct {
	uc        *revenue.AllocationUseCase
	maxUpload int64
}

// NewAllocationHandler construye el handler.
func NewAllocationHandler(uc *revenue.AllocationUseCase, maxUpload int64) *AllocationHandler {
	return &AllocationHandler{uc: uc, maxUpload: maxUpload}
}

// PreviewAdSpend godoc
// @Summary      Vista previa desde el CSV de anuncios
// @Description  Suma la columna de costo y la reparte por ingreso bruto sobre el período del archivo.
// @Description  start_date/end_date (ambos) reemplazan al período detectado. No escribe nada.
// @Tags         allocations
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file        formData  file    true   "CSV de anuncios"
// @Param        start_date  formData  string  false  "Inicio (YYYY-MM-DD)"
// @Param        end_date    formData  string  false  "Fin (YYYY-MM-DD)"
// @Success      200  {object}  dto.AllocationPreviewResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/allocations/ad-spend/preview [post]
func (h *AllocationHandler) PreviewAdSpend(c *fiber.Ctx) error {
	var start, end *time.Time
	if c.FormValue("start_date") != "" || c.FormValue("end_date") != "" {
		from, to, err := resolveRange(c.FormValue("start_date"), c.FormValue("end_date"), time.Now())
		if err != nil {
			return respondError(c, err)
		}
		start, end = &from, &to
	}

	f, err := openUpload(c, h.maxUpload)
	if err != nil {
		return respondError(c, err)
	}
	defer f.Close()

	preview, err := h.uc.PreviewFromAdSpend(c.UserContext(), f, start, end)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(preview)
}

// Preview godoc
// @Summary      Vista previa de un costo manual
// @Tags         allocations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AllocationPreviewRequest  true  "Costo y rango"
// @Success      200  {object}  dto.AllocationPreviewResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/allocations/preview [post]
func (h *AllocationHandler) Preview(c *fiber.Ctx) error {
	var in dto.AllocationPreviewRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if in.StartDate == "" || in.EndDate == "" {
		return badRequest(c, "VALIDATION", "start_date y end_date son obligatorios")
	}
	start, end, err := resolveRange(in.StartDate, in.EndDate, time.Now())
	if err != nil {
		return respondError(c, err)
	}
	preview, err := h.uc.Preview(c.UserContext(), in.TotalCost, start, end)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(preview)
}

// Commit godoc
// @Summary      Confirmar una vista previa
// @Description  Sobrescribe el gasto en anuncios de cada día de la vista y recalcula el neto, todo o nada.
// @Tags         allocations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CommitAllocationRequest  true  "Vista previa aprobada"
// @Success      200  {object}  dto.CommitAllocationResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/allocations/commit [post]
func (h *AllocationHandler) Commit(c *fiber.Ctx) error {
	var in dto.CommitAllocationRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.Commit(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
