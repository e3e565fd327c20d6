package revenue_test

import (
	"context"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/mygameon-ops/internal/domain/dates"
	"github.com/jhoicas/mygameon-ops/internal/domain/entity"
	"github.com/jhoicas/mygameon-ops/internal/domain/repository"
)

// memRevenueRepo repositorio en memoria; guarda copias para que los cambios
// del llamador no se filtren sin pasar por Upsert.
type memRevenueRepo struct {
	mu      sync.Mutex
	byKey   map[string]entity.DailyRevenue
	upserts int
}

func newMemRevenueRepo(records ...*entity.DailyRevenue) *memRevenueRepo {
	m := &memRevenueRepo{byKey: make(map[string]entity.DailyRevenue)}
	for _, r := range records {
		m.byKey[r.DateKey] = *r
	}
	return m
}

func (m *memRevenueRepo) GetByDateKey(_ context.Context, key string) (*entity.DailyRevenue, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.byKey[key]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

func (m *memRevenueRepo) ListByDateKeys(_ context.Context, keys []string) (map[string]*entity.DailyRevenue, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]*entity.DailyRevenue)
	for _, k := range keys {
		if r, ok := m.byKey[k]; ok {
			r := r
			out[k] = &r
		}
	}
	return out, nil
}

func (m *memRevenueRepo) ListByRange(_ context.Context, start, end time.Time) ([]*entity.DailyRevenue, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.DailyRevenue
	for _, r := range m.byKey {
		if dates.InRange(r.Date, start, end) {
			r := r
			out = append(out, &r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (m *memRevenueRepo) Upsert(_ context.Context, r *entity.DailyRevenue) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byKey[r.DateKey] = *r
	m.upserts++
	return nil
}

func (m *memRevenueRepo) UpsertMany(ctx context.Context, records []*entity.DailyRevenue) error {
	for _, r := range records {
		if err := m.Upsert(ctx, r); err != nil {
			return err
		}
	}
	return nil
}

func (m *memRevenueRepo) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.byKey, key)
	return nil
}

func (m *memRevenueRepo) get(key string) (entity.DailyRevenue, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.byKey[key]
	return r, ok
}

// fakeTx ejecuta fn directamente sobre el repo en memoria.
type fakeTx struct {
	repo *memRevenueRepo
	runs int
}

func (f *fakeTx) Run(_ context.Context, fn func(repository.DailyRevenueRepository, repository.AdminShiftRepository) error) error {
	f.runs++
	return fn(f.repo, nil)
}

// stubParser devuelve resultados fijos sin leer el archivo.
type stubParser struct {
	sales    []entity.SalesReportRow
	vouchers []entity.VoucherReportRow
	ads      *entity.AdSpendReport
	err      error
}

func (s stubParser) ParseSalesReport(io.Reader) ([]entity.SalesReportRow, error) {
	return s.sales, s.err
}

func (s stubParser) ParseVoucherReport(io.Reader) ([]entity.VoucherReportRow, error) {
	return s.vouchers, s.err
}

func (s stubParser) ParseAdSpendReport(io.Reader) (*entity.AdSpendReport, error) {
	return s.ads, s.err
}
