package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/mygameon-ops/internal/application/dto"
	"github.com/jhoicas/mygameon-ops/internal/domain"
)

type errorMapping struct {
	err    error
	status int
	code   string
}

// Orden: el primer error que coincide con errors.Is define la respuesta.
var errorMappings = []errorMapping{
	{errFileTooLarge, fiber.StatusRequestEntityTooLarge, "FILE_TOO_LARGE"},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
	{domain.ErrInvalidPeriod, fiber.StatusBadRequest, "INVALID_PERIOD"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
	{domain.ErrConflict, fiber.StatusConflict, "CONFLICT"},

	{domain.ErrActiveShiftExists, fiber.StatusConflict, "ACTIVE_SHIFT_EXISTS"},
	{domain.ErrShiftAlreadyComplete, fiber.StatusConflict, "SHIFT_ALREADY_COMPLETED"},
	{domain.ErrShiftLockBusy, fiber.StatusConflict, "SHIFT_LOCK_BUSY"},

	{domain.ErrNoRevenueInPeriod, fiber.StatusUnprocessableEntity, "NO_REVENUE_IN_PERIOD"},

	{domain.ErrUnreadableFile, fiber.StatusBadRequest, "UNREADABLE_FILE"},
	{domain.ErrSheetNotFound, fiber.StatusUnprocessableEntity, "SHEET_NOT_FOUND"},
	{domain.ErrHeaderNotFound, fiber.StatusUnprocessableEntity, "HEADER_NOT_FOUND"},
	{domain.ErrColumnNotFound, fiber.StatusUnprocessableEntity, "COLUMN_NOT_FOUND"},
	{domain.ErrPeriodNotFound, fiber.StatusUnprocessableEntity, "PERIOD_NOT_FOUND"},
	{domain.ErrEmptyReport, fiber.StatusUnprocessableEntity, "EMPTY_REPORT"},
}

// respondError traduce errores de dominio a HTTP. Lo que no es de dominio es 500.
func respondError(c *fiber.Ctx, err error) error {
	for _, m := range errorMappings {
		if errors.Is(err, m.err) {
			return c.Status(m.status).JSON(dto.ErrorResponse{Code: m.code, Message: err.Error()})
		}
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

func badRequest(c *fiber.Ctx, code, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: code, Message: msg})
}
