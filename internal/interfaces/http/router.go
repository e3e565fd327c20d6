package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/mygameon-ops/internal/application/analytics"
	"github.com/jhoicas/mygameon-ops/internal/application/revenue"
	"github.com/jhoicas/mygameon-ops/internal/application/shift"
	"github.com/jhoicas/mygameon-ops/pkg/jwt"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	RevenueUC      *revenue.UseCase
	AllocationUC   *revenue.AllocationUseCase
	ShiftUC        *shift.UseCase
	SummaryUC      *analytics.SummaryUseCase
	JWTSecret      string
	MaxUploadBytes int64
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	anyRole := RequireRole(jwt.RoleOwner, jwt.RoleAdmin)
	ownerOnly := RequireRole(jwt.RoleOwner)

	// Registros diarios: lectura para todos, carga y edición sólo owner
	revenues := protected.Group("/revenues")
	revenueHandler := NewRevenueHandler(deps.RevenueUC, deps.MaxUploadBytes)
	revenues.Get("/", anyRole, revenueHandler.List)
	revenues.Post("/import/sales", ownerOnly, revenueHandler.ImportSales)
	revenues.Post("/import/vouchers", ownerOnly, revenueHandler.ImportVouchers)
	revenues.Get("/:date", anyRole, revenueHandler.Get)
	revenues.Patch("/:date", ownerOnly, revenueHandler.Update)
	revenues.Delete("/:date", ownerOnly, revenueHandler.Delete)

	// Asignación del gasto en anuncios (owner)
	allocations := protected.Group("/allocations", ownerOnly)
	allocationHandler := NewAllocationHandler(deps.AllocationUC, deps.MaxUploadBytes)
	allocations.Post("/ad-spend/preview", allocationHandler.PreviewAdSpend)
	allocations.Post("/preview", allocationHandler.Preview)
	allocations.Post("/commit", allocationHandler.Commit)

	// Turnos
	shifts := protected.Group("/shifts", anyRole)
	shiftHandler := NewShiftHandler(deps.ShiftUC)
	shifts.Get("/", shiftHandler.List)
	shifts.Get("/active", shiftHandler.Active)
	shifts.Post("/start", shiftHandler.Start)
	shifts.Post("/:id/end", shiftHandler.End)

	// Resumen del período (owner)
	summary := protected.Group("/summary", ownerOnly)
	summaryHandler := NewSummaryHandler(deps.SummaryUC)
	summary.Get("/", summaryHandler.GetSummary)
	summary.Get("/pdf", summaryHandler.ExportPDF)
}
