package http

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/mygameon-ops/internal/application/dto"
	"github.com/jhoicas/mygameon-ops/internal/application/shift"
	"github.com/jhoicas/mygameon-ops/internal/domain"
	"github.com/jhoicas/mygameon-ops/pkg/jwt"
)

// ShiftHandler maneja el ciclo de vida de los turnos de admins.
type ShiftHandler struct {
	uc  *shift.UseCase
	now func() time.Time
}

// NewShiftHandler construye el handler.
func NewShiftHandler(uc *shift.UseCase) *ShiftHandler {
	return &ShiftHandler{uc: uc, now: time.Now}
}

// Start godoc
// @Summary      Iniciar turno
// @Description  Abre un turno a nombre del admin del token. Sólo el owner puede abrirlo a nombre de otro.
// @Tags         shifts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StartShiftRequest  false  "Admin (opcional)"
// @Success      201  {object}  dto.ShiftResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/shifts/start [post]
func (h *ShiftHandler) Start(c *fiber.Ctx) error {
	var in dto.StartShiftRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return badRequest(c, "INVALID_BODY", "cuerpo inválido")
		}
	}

	adminName := GetAdminName(c)
	if requested := strings.TrimSpace(in.AdminName); requested != "" && !strings.EqualFold(requested, adminName) {
		if GetRole(c) != jwt.RoleOwner {
			return respondError(c, domain.ErrForbidden)
		}
		adminName = requested
	}

	s, err := h.uc.Start(c.UserContext(), adminName)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(s)
}

// End godoc
// @Summary      Finalizar turno
// @Description  Registra ingreso bruto y pedidos del turno. Un admin sólo cierra sus propios turnos.
// @Tags         shifts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string               true  "ID del turno"
// @Param        body  body  dto.EndShiftRequest  true  "Resultados del turno"
// @Success      200  {object}  dto.ShiftResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/shifts/{id}/end [post]
func (h *ShiftHandler) End(c *fiber.Ctx) error {
	var in dto.EndShiftRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	s, err := h.uc.End(c.UserContext(), c.Params("id"), GetAdminName(c), GetRole(c) == jwt.RoleOwner, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(s)
}

// Active godoc
// @Summary      Turno activo
// @Tags         shifts
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ActiveShiftResponse
// @Router       /api/shifts/active [get]
func (h *ShiftHandler) Active(c *fiber.Ctx) error {
	out, err := h.uc.Active(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar turnos del período
// @Tags         shifts
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  false  "Inicio (YYYY-MM-DD). Default: primer día del mes."
// @Param        end_date    query  string  false  "Fin (YYYY-MM-DD). Default: último día del mes."
// @Success      200  {object}  dto.ShiftListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/shifts [get]
func (h *ShiftHandler) List(c *fiber.Ctx) error {
	start, end, err := parseDateRange(c, h.now())
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.List(c.UserContext(), start, end)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
