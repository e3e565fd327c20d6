// Package shift contiene los casos de uso del ciclo de vida de los turnos de admins.
package shift

import "context"

// Locker serializa el inicio de turnos entre instancias. Lock devuelve la
// función que libera el candado; ErrShiftLockBusy si otro inicio está en curso.
type Locker interface {
	Lock(ctx context.Context) (unlock func(context.Context) error, err error)
}
