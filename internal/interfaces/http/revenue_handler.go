package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/mygameon-ops/internal/application/dto"
	"github.com/jhoicas/mygameon-ops/internal/application/revenue"
)

// RevenueHandler maneja los registros diarios de ingresos y la carga de reportes.
type RevenueHandler struct {
	uc        *revenue.UseCase
	maxUpload int64
	now       func() time.Time
}

// NewRevenueHandler construye el handler. maxUpload es el límite de archivo en bytes.
func NewRevenueHandler(uc *revenue.UseCase, maxUpload int64) *RevenueHandler {
	return &RevenueHandler{uc: uc, maxUpload: maxUpload, now: time.Now}
}

// ImportSales godoc
// @Summary      Importar reporte de ventas (XLSX)
// @Description  Upsert por día de ventas, cancelaciones y devoluciones. Conserva voucher y gasto en anuncios.
// @Tags         revenues
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Reporte de ventas"
// @Success      200  {object}  dto.ImportResultResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      413  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/revenues/import/sales [post]
func (h *RevenueHandler) ImportSales(c *fiber.Ctx) error {
	f, err := openUpload(c, h.maxUpload)
	if err != nil {
		return respondError(c, err)
	}
	defer f.Close()

	result, err := h.uc.ImportSales(c.UserContext(), f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

// ImportVouchers godoc
// @Summary      Importar reporte de vouchers (XLSX)
// @Description  Fija el costo de vouchers por día; crea el día con ventas en cero si no existe.
// @Tags         revenues
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Reporte de vouchers"
// @Success      200  {object}  dto.ImportResultResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/revenues/import/vouchers [post]
func (h *RevenueHandler) ImportVouchers(c *fiber.Ctx) error {
	f, err := openUpload(c, h.maxUpload)
	if err != nil {
		return respondError(c, err)
	}
	defer f.Close()

	result, err := h.uc.ImportVouchers(c.UserContext(), f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

// List godoc
// @Summary      Listar registros diarios
// @Tags         revenues
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  false  "Inicio (YYYY-MM-DD). Default: primer día del mes."
// @Param        end_date    query  string  false  "Fin (YYYY-MM-DD). Default: último día del mes."
// @Success      200  {object}  dto.DailyRevenueListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/revenues [get]
func (h *RevenueHandler) List(c *fiber.Ctx) error {
	start, end, err := parseDateRange(c, h.now())
	if err != nil {
		return respondError(c, err)
	}
	list, err := h.uc.List(c.UserContext(), start, end)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// Get godoc
// @Summary      Obtener el registro de un día
// @Tags         revenues
// @Security     Bearer
// @Produce      json
// @Param        date  path  string  true  "Fecha (YYYY-MM-DD)"
// @Success      200  {object}  dto.DailyRevenueResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/revenues/{date} [get]
func (h *RevenueHandler) Get(c *fiber.Ctx) error {
	rec, err := h.uc.Get(c.UserContext(), c.Params("date"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(rec)
}

// Update godoc
// @Summary      Editar manualmente un día
// @Description  Actualización parcial; el ingreso neto se recalcula.
// @Tags         revenues
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        date  path  string                         true  "Fecha (YYYY-MM-DD)"
// @Param        body  body  dto.UpdateDailyRevenueRequest  true  "Campos a modificar"
// @Success      200  {object}  dto.DailyRevenueResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/revenues/{date} [patch]
func (h *RevenueHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateDailyRevenueRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	rec, err := h.uc.Update(c.UserContext(), c.Params("date"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(rec)
}

// Delete godoc
// @Summary      Eliminar el registro de un día
// @Tags         revenues
// @Security     Bearer
// @Param        date  path  string  true  "Fecha (YYYY-MM-DD)"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/revenues/{date} [delete]
func (h *RevenueHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("date")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
