package http

import (
	"fmt"
	"io"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/mygameon-ops/internal/application/dto"
	"github.com/jhoicas/mygameon-ops/internal/domain"
	"github.com/jhoicas/mygameon-ops/internal/domain/dates"
)

// uploadField nombre del campo multipart con el reporte.
const uploadField = "file"

// parseDateRange lee start_date/end_date del query. Sin ninguno devuelve el mes
// en curso; con uno solo es un error.
func parseDateRange(c *fiber.Ctx, now time.Time) (time.Time, time.Time, error) {
	var q dto.DateRangeQuery
	if err := c.QueryParser(&q); err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: parámetros de consulta", domain.ErrInvalidInput)
	}
	return resolveRange(q.StartDate, q.EndDate, now)
}

func resolveRange(startRaw, endRaw string, now time.Time) (time.Time, time.Time, error) {
	if startRaw == "" && endRaw == "" {
		start, end := currentMonth(now)
		return start, end, nil
	}
	if startRaw == "" || endRaw == "" {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: start_date y end_date van juntos", domain.ErrInvalidInput)
	}
	start, ok := dates.ToLocalMidnight(startRaw)
	if !ok {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: start_date %q", domain.ErrInvalidInput, startRaw)
	}
	end, ok := dates.ToLocalMidnight(endRaw)
	if !ok {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: end_date %q", domain.ErrInvalidInput, endRaw)
	}
	if start.After(end) {
		return time.Time{}, time.Time{}, domain.ErrInvalidPeriod
	}
	return start, end, nil
}

// currentMonth primer y último día del mes de now, en hora local.
func currentMonth(now time.Time) (time.Time, time.Time) {
	local := now.In(time.Local)
	start := time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, time.Local)
	return start, start.AddDate(0, 1, -1)
}

// openUpload abre el archivo multipart del campo "file" respetando maxBytes.
// El llamador debe cerrar el ReadCloser.
func openUpload(c *fiber.Ctx, maxBytes int64) (io.ReadCloser, error) {
	header, err := c.FormFile(uploadField)
	if err != nil {
		return nil, fmt.Errorf("%w: el archivo es obligatorio (campo %q)", domain.ErrInvalidInput, uploadField)
	}
	if maxBytes > 0 && header.Size > maxBytes {
		return nil, errFileTooLarge
	}
	f, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnreadableFile, err)
	}
	return f, nil
}

var errFileTooLarge = fmt.Errorf("%w: el archivo excede el tamaño máximo", domain.ErrInvalidInput)
