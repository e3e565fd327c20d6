package dto

import "github.com/shopspring/decimal"

// AllocationPreviewRequest reparto manual de un costo sobre un rango.
type AllocationPreviewRequest struct {
	TotalCost decimal.Decimal `json:"total_cost"`
	StartDate string          `json:"start_date" validate:"required"` // YYYY-MM-DD
	EndDate   string          `json:"end_date" validate:"required"`
}

// AllocationLineDTO parte del costo asignada a un día.
type AllocationLineDTO struct {
	Date          string          `json:"date"`
	GrossIncome   decimal.Decimal `json:"gross_income"`
	Weight        decimal.Decimal `json:"weight"` // gross / total gross, 4 decimales (informativo)
	AllocatedCost decimal.Decimal `json:"allocated_cost"`
}

// AllocationPreviewResponse vista previa; nada se escribe hasta el commit.
type AllocationPreviewResponse struct {
	StartDate      string              `json:"start_date"`
	EndDate        string              `json:"end_date"`
	TotalCost      decimal.Decimal     `json:"total_cost"`
	TotalGross     decimal.Decimal     `json:"total_gross"`
	Allocated      decimal.Decimal     `json:"allocated"`
	PeriodDetected bool                `json:"period_detected"` // sólo para vistas previas desde CSV
	SourceRows     int                 `json:"source_rows,omitempty"`
	Lines          []AllocationLineDTO `json:"lines"`
}

// CommitAllocationRequest la vista previa aprobada, tal como se mostró.
type CommitAllocationRequest struct {
	StartDate string              `json:"start_date"`
	EndDate   string              `json:"end_date"`
	TotalCost decimal.Decimal     `json:"total_cost"`
	Lines     []AllocationLineDTO `json:"lines" validate:"required,min=1"`
}

// CommitAllocationResponse resultado del commit.
type CommitAllocationResponse struct {
	DaysUpdated    int             `json:"days_updated"`
	TotalAllocated decimal.Decimal `json:"total_allocated"`
}
