package dto

// DateRangeQuery rango de fechas de los listados y reportes (YYYY-MM-DD, ambos inclusivos).
// Sin valores se usa el mes en curso.
type DateRangeQuery struct {
	StartDate string `query:"start_date"`
	EndDate   string `query:"end_date"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
