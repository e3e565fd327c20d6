package shift

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/mygameon-ops/internal/application/dto"
	"github.com/jhoicas/mygameon-ops/internal/domain"
	"github.com/jhoicas/mygameon-ops/internal/domain/entity"
	"github.com/jhoicas/mygameon-ops/internal/domain/finance"
	"github.com/jhoicas/mygameon-ops/internal/domain/repository"
)

// maxAdminNameLen coincide con admin_shifts.admin_name.
const maxAdminNameLen = 120

// UseCase inicia, cierra y lista turnos. Como mucho hay un turno activo en
// todo el sistema: el candado (si hay Redis) serializa la verificación previa
// y el índice parcial de la base lo garantiza en última instancia.
type UseCase struct {
	repo   repository.AdminShiftRepository
	locker Locker // nil: sin candado distribuido
	log    zerolog.Logger
	now    func() time.Time
	newID  func() string
}

// NewUseCase construye el caso de uso. locker puede ser nil.
func NewUseCase(repo repository.AdminShiftRepository, locker Locker, log zerolog.Logger) *UseCase {
	return &UseCase{
		repo:   repo,
		locker: locker,
		log:    log,
		now:    time.Now,
		newID:  func() string { return uuid.New().String() },
	}
}

// Start abre un turno para adminName. Falla con ErrActiveShiftExists si ya hay uno abierto.
func (uc *UseCase) Start(ctx context.Context, adminName string) (*dto.ShiftResponse, error) {
	adminName = strings.TrimSpace(adminName)
	if adminName == "" || len(adminName) > maxAdminNameLen {
		return nil, fmt.Errorf("%w: nombre de admin", domain.ErrInvalidInput)
	}

	if uc.locker != nil {
		unlock, err := uc.locker.Lock(ctx)
		if err != nil {
			return nil, err
		}
		defer func() {
			if err := unlock(context.WithoutCancel(ctx)); err != nil {
				uc.log.Warn().Err(err).Msg("no se pudo liberar el candado de turnos")
			}
		}()
	}

	active, err := uc.repo.GetActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("turno: leer activo: %w", err)
	}
	if active != nil {
		return nil, fmt.Errorf("%w: %s desde %s", domain.ErrActiveShiftExists,
			active.AdminName, active.StartTime.Format("15:04"))
	}

	now := uc.now()
	s := &entity.AdminShift{
		ID:          uc.newID(),
		AdminName:   adminName,
		StartTime:   now,
		Status:      entity.ShiftStatusActive,
		Duration:    decimal.Zero,
		GrossIncome: decimal.Zero,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, s); err != nil {
		return nil, err
	}

	uc.log.Info().Str("shift_id", s.ID).Str("admin", adminName).Msg("turno iniciado")
	return ToShiftResponse(s), nil
}

// End cierra el turno id con sus resultados. Sólo el admin dueño del turno puede
// cerrarlo, salvo que canEndOthers sea true.
func (uc *UseCase) End(ctx context.Context, id, actor string, canEndOthers bool, in dto.EndShiftRequest) (*dto.ShiftResponse, error) {
	if in.GrossIncome.IsNegative() || in.OrdersCount < 0 {
		return nil, fmt.Errorf("%w: ingreso y pedidos no pueden ser negativos", domain.ErrInvalidInput)
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%w: id de turno", domain.ErrInvalidInput)
	}

	s, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("turno: leer: %w", err)
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	if !s.IsActive() {
		return nil, domain.ErrShiftAlreadyComplete
	}
	if !canEndOthers && !strings.EqualFold(s.AdminName, actor) {
		return nil, domain.ErrForbidden
	}

	end := uc.now()
	if end.Before(s.StartTime) {
		end = s.StartTime
	}
	s.EndTime = &end
	s.Duration = finance.ShiftDurationHours(s.StartTime, end)
	s.GrossIncome = in.GrossIncome
	s.OrdersCount = in.OrdersCount
	s.UpdatedAt = end
	if err := uc.repo.Complete(ctx, s); err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("shift_id", s.ID).
		Str("admin", s.AdminName).
		Str("hours", s.Duration.String()).
		Str("gross", s.GrossIncome.String()).
		Int("orders", s.OrdersCount).
		Msg("turno finalizado")
	return ToShiftResponse(s), nil
}

// Active devuelve el turno activo, si existe.
func (uc *UseCase) Active(ctx context.Context) (*dto.ActiveShiftResponse, error) {
	s, err := uc.repo.GetActive(ctx)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return &dto.ActiveShiftResponse{Active: false}, nil
	}
	return &dto.ActiveShiftResponse{Active: true, Shift: ToShiftResponse(s)}, nil
}

// List devuelve los turnos iniciados en [start, end].
func (uc *UseCase) List(ctx context.Context, start, end time.Time) (*dto.ShiftListResponse, error) {
	if start.After(end) {
		return nil, domain.ErrInvalidPeriod
	}
	list, err := uc.repo.ListByRange(ctx, start, end)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ShiftResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *ToShiftResponse(s))
	}
	return &dto.ShiftListResponse{Items: items, Count: len(items)}, nil
}

// ToShiftResponse convierte la entidad a DTO. Los turnos cerrados incluyen el
// pago que tendrían por sí solos.
func ToShiftResponse(s *entity.AdminShift) *dto.ShiftResponse {
	out := &dto.ShiftResponse{
		ID:          s.ID,
		AdminName:   s.AdminName,
		StartTime:   s.StartTime,
		EndTime:     s.EndTime,
		Status:      s.Status,
		Duration:    s.Duration,
		GrossIncome: s.GrossIncome,
		OrdersCount: s.OrdersCount,
	}
	if s.Status == entity.ShiftStatusCompleted {
		pay := finance.CalculateShiftPay(s.Duration, s.GrossIncome)
		out.ShiftPay = &pay
	}
	return out
}
