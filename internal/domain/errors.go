package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
	ErrConflict     = errors.New("conflicto con el estado actual")

	// Turnos
	ErrActiveShiftExists    = errors.New("ya existe un turno activo")
	ErrShiftAlreadyComplete = errors.New("el turno ya fue finalizado")
	ErrShiftLockBusy        = errors.New("otro admin está iniciando un turno, intente de nuevo")

	// Asignación de costos
	ErrNoRevenueInPeriod = errors.New("no hay datos de ingresos para este período")
	ErrInvalidPeriod     = errors.New("período inválido: la fecha inicial es posterior a la final")

	// Reportes
	ErrUnreadableFile = errors.New("no se pudo leer el archivo")
	ErrSheetNotFound  = errors.New("no se encontró la hoja esperada en el reporte")
	ErrHeaderNotFound = errors.New("no se encontró la fila de encabezados del reporte")
	ErrColumnNotFound = errors.New("no se encontró la columna esperada en el reporte")
	ErrPeriodNotFound = errors.New("no se encontró el rango de fechas en el reporte")
	ErrEmptyReport    = errors.New("el reporte no contiene registros válidos")
)
