package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	goredis "github.com/redis/go-redis/v9"

	"github.com/jhoicas/mygameon-ops/internal/application/shift"
	"github.com/jhoicas/mygameon-ops/internal/domain"
)

var _ shift.Locker = (*ShiftLocker)(nil)

const (
	// ShiftStartLockKey clave única: el candado cubre a todo el sistema, no a un admin.
	ShiftStartLockKey = "mygameon:shift:start"
	defaultLockTTL    = 10 * time.Second
)

// ShiftLocker serializa la sección "leer turno activo → crear turno" entre instancias.
type ShiftLocker struct {
	locker *redislock.Client
	ttl    time.Duration
	retry  redislock.RetryStrategy
}

// NewShiftLocker construye el candado. ttl <= 0 usa 10s.
func NewShiftLocker(rdb *goredis.Client, ttl time.Duration) *ShiftLocker {
	if ttl <= 0 {
		ttl = defaultLockTTL
	}
	return &ShiftLocker{
		locker: redislock.New(rdb),
		ttl:    ttl,
		retry:  redislock.LimitRetry(redislock.LinearBackoff(100*time.Millisecond), 5),
	}
}

// Lock obtiene el candado o devuelve domain.ErrShiftLockBusy tras agotar los reintentos.
func (l *ShiftLocker) Lock(ctx context.Context) (func(context.Context) error, error) {
	lock, err := l.locker.Obtain(ctx, ShiftStartLockKey, l.ttl, &redislock.Options{RetryStrategy: l.retry})
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, domain.ErrShiftLockBusy
	}
	if err != nil {
		return nil, fmt.Errorf("obtener candado de turnos: %w", err)
	}
	return func(ctx context.Context) error {
		err := lock.Release(ctx)
		if errors.Is(err, redislock.ErrLockNotHeld) {
			// Expiró por TTL; otro proceso pudo tomarlo ya.
			return nil
		}
		return err
	}, nil
}
