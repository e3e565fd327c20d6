package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/mygameon-ops/internal/application/analytics"
	"github.com/jhoicas/mygameon-ops/internal/application/dto"
	"github.com/jhoicas/mygameon-ops/internal/application/revenue"
	"github.com/jhoicas/mygameon-ops/internal/application/shift"
	"github.com/jhoicas/mygameon-ops/internal/domain"
	"github.com/jhoicas/mygameon-ops/internal/domain/dates"
	"github.com/jhoicas/mygameon-ops/internal/domain/entity"
	"github.com/jhoicas/mygameon-ops/internal/domain/finance"
	"github.com/jhoicas/mygameon-ops/internal/domain/repository"
	"github.com/jhoicas/mygameon-ops/internal/infrastructure/spreadsheet"
	apphttp "github.com/jhoicas/mygameon-ops/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/mygameon-ops/pkg/jwt"
)

func TestMain(m *testing.M) {
	time.Local = time.FixedZone("WIB", 7*3600)
	os.Exit(m.Run())
}

// ──────────────────────────────────────────────────────────────────────────────
// Repos en memoria
// ──────────────────────────────────────────────────────────────────────────────

type memRevenues struct {
	mu    sync.Mutex
	byKey map[string]entity.DailyRevenue
}

func (m *memRevenues) GetByDateKey(_ context.Context, key string) (*entity.DailyRevenue, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.byKey[key]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

func (m *memRevenues) ListByDateKeys(_ context.Context, keys []string) (map[string]*entity.DailyRevenue, error) {
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

func (m *memRevenues) ListByRange(_ context.Context, start, end time.Time) ([]*entity.DailyRevenue, error) {
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

func (m *memRevenues) Upsert(_ context.Context, r *entity.DailyRevenue) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byKey[r.DateKey] = *r
	return nil
}

func (m *memRevenues) UpsertMany(ctx context.Context, records []*entity.DailyRevenue) error {
	for _, r := range records {
		_ = m.Upsert(ctx, r)
	}
	return nil
}

func (m *memRevenues) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.byKey, key)
	return nil
}

type memShifts struct {
	mu   sync.Mutex
	byID map[string]entity.AdminShift
}

func (m *memShifts) Create(_ context.Context, s *entity.AdminShift) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.byID {
		if existing.IsActive() {
			return domain.ErrActiveShiftExists
		}
	}
	m.byID[s.ID] = *s
	return nil
}

func (m *memShifts) GetByID(_ context.Context, id string) (*entity.AdminShift, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.byID[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (m *memShifts) GetActive(_ context.Context) (*entity.AdminShift, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.byID {
		if s.IsActive() {
			s := s
			return &s, nil
		}
	}
	return nil, nil
}

func (m *memShifts) Complete(_ context.Context, s *entity.AdminShift) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s.Status = entity.ShiftStatusCompleted
	m.byID[s.ID] = *s
	return nil
}

func (m *memShifts) ListCompletedByRange(ctx context.Context, start, end time.Time) ([]*entity.AdminShift, error) {
	all, _ := m.ListByRange(ctx, start, end)
	var out []*entity.AdminShift
	for _, s := range all {
		if s.Status == entity.ShiftStatusCompleted {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *memShifts) ListByRange(_ context.Context, start, end time.Time) ([]*entity.AdminShift, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.AdminShift
	for _, s := range m.byID {
		if dates.InRange(s.StartTime, start, end) {
			s := s
			out = append(out, &s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

type directTx struct {
	revenues *memRevenues
	shifts   *memShifts
}

func (d directTx) Run(_ context.Context, fn func(repository.DailyRevenueRepository, repository.AdminShiftRepository) error) error {
	return fn(d.revenues, d.shifts)
}

type stubPDF struct{}

func (stubPDF) GenerateSummaryPDF(context.Context, *analytics.SummaryReport) ([]byte, error) {
	return []byte("%PDF-1.3 stub"), nil
}

// ──────────────────────────────────────────────────────────────────────────────
// App de prueba
// ──────────────────────────────────────────────────────────────────────────────

type testEnv struct {
	app      *fiber.App
	revenues *memRevenues
	shifts   *memShifts
}

func jan(d int) time.Time { return time.Date(2024, 1, d, 0, 0, 0, 0, time.Local) }

func seedDay(d int, gross int64) entity.DailyRevenue {
	r := entity.DailyRevenue{
		Date:          jan(d),
		DateKey:       dates.MustKey(jan(d)),
		GrossIncome:   decimal.NewFromInt(gross),
		TotalOrders:   10,
		CanceledValue: decimal.Zero,
		ReturnedValue: decimal.Zero,
		VoucherCost:   decimal.Zero,
		AdSpend:       decimal.Zero,
	}
	finance.Recalculate(&r)
	return r
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	revenues := &memRevenues{byKey: map[string]entity.DailyRevenue{}}
	shifts := &memShifts{byID: map[string]entity.AdminShift{}}
	for d, gross := range map[int]int64{1: 100000, 2: 300000} {
		r := seedDay(d, gross)
		revenues.byKey[r.DateKey] = r
	}

	log := zerolog.Nop()
	tx := directTx{revenues: revenues, shifts: shifts}
	parser := spreadsheet.NewParser(log)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		RevenueUC:      revenue.NewUseCase(revenues, tx, parser, log),
		AllocationUC:   revenue.NewAllocationUseCase(revenues, tx, parser, log),
		ShiftUC:        shift.NewUseCase(shifts, nil, log),
		SummaryUC:      analytics.NewSummaryUseCase(revenues, shifts, stubPDF{}),
		JWTSecret:      testJWTSecret,
		MaxUploadBytes: 1 << 20,
	})
	return &testEnv{app: app, revenues: revenues, shifts: shifts}
}

func bearer(t *testing.T, admin, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, admin, role, testIssuer, testExpMin)
	require.NoError(t, err)
	return "Bearer " + tok
}

func (e *testEnv) do(t *testing.T, method, path, auth string, body io.Reader, contentType string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func (e *testEnv) doJSON(t *testing.T, method, path, auth string, payload any) *http.Response {
	t.Helper()
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}
	return e.do(t, method, path, auth, body, fiber.MIMEApplicationJSON)
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func multipartFile(t *testing.T, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = io.Copy(part, strings.NewReader(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

// ──────────────────────────────────────────────────────────────────────────────
// Asignación de gasto en anuncios
// ──────────────────────────────────────────────────────────────────────────────

const adSpendCSV = "Periode,01/01/2024 - 02/01/2024\n" +
	"Kampanye,Biaya\n" +
	"Promo A,100\n" +
	"Promo B,200\n"

func TestAllocation_PreviewYCommitDesdeCSV(t *testing.T) {
	env := newTestEnv(t)
	owner := bearer(t, "Budi", pkgjwt.RoleOwner)

	body, ct := multipartFile(t, "ads.csv", adSpendCSV)
	resp := env.do(t, http.MethodPost, "/api/allocations/ad-spend/preview", owner, body, ct)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	preview := decode[dto.AllocationPreviewResponse](t, resp)

	assert.True(t, preview.PeriodDetected)
	assert.Equal(t, 2, preview.SourceRows)
	assert.True(t, decimal.NewFromInt(300).Equal(preview.TotalCost))
	require.Len(t, preview.Lines, 2)
	assert.True(t, decimal.NewFromInt(75).Equal(preview.Lines[0].AllocatedCost))
	assert.True(t, decimal.NewFromInt(225).Equal(preview.Lines[1].AllocatedCost))

	// La vista previa no escribe.
	before, _ := env.revenues.GetByDateKey(context.Background(), "2024-01-02")
	assert.True(t, before.AdSpend.IsZero())

	resp = env.doJSON(t, http.MethodPost, "/api/allocations/commit", owner, dto.CommitAllocationRequest{
		StartDate: preview.StartDate,
		EndDate:   preview.EndDate,
		TotalCost: preview.TotalCost,
		Lines:     preview.Lines,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	committed := decode[dto.CommitAllocationResponse](t, resp)
	assert.Equal(t, 2, committed.DaysUpdated)

	resp = env.do(t, http.MethodGet, "/api/revenues/2024-01-02", owner, nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	day := decode[dto.DailyRevenueResponse](t, resp)
	assert.True(t, decimal.NewFromInt(225).Equal(day.AdSpend))
}

func TestAllocation_AdminNoPuedeAsignar(t *testing.T) {
	env := newTestEnv(t)
	body, ct := multipartFile(t, "ads.csv", adSpendCSV)
	resp := env.do(t, http.MethodPost, "/api/allocations/ad-spend/preview", bearer(t, "Rina", pkgjwt.RoleAdmin), body, ct)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestAllocation_PreviewManualSinIngresos(t *testing.T) {
	env := newTestEnv(t)
	resp := env.doJSON(t, http.MethodPost, "/api/allocations/preview", bearer(t, "Budi", pkgjwt.RoleOwner),
		dto.AllocationPreviewRequest{TotalCost: decimal.NewFromInt(500), StartDate: "2024-02-01", EndDate: "2024-02-29"})
	out := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, "NO_REVENUE_IN_PERIOD", out.Code)
}

func TestAllocation_CommitDiaInexistente(t *testing.T) {
	env := newTestEnv(t)
	resp := env.doJSON(t, http.MethodPost, "/api/allocations/commit", bearer(t, "Budi", pkgjwt.RoleOwner),
		dto.CommitAllocationRequest{Lines: []dto.AllocationLineDTO{
			{Date: "2024-01-01", AllocatedCost: decimal.NewFromInt(10)},
			{Date: "2024-01-09", AllocatedCost: decimal.NewFromInt(10)},
		}})
	out := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "CONFLICT", out.Code)
}

// ──────────────────────────────────────────────────────────────────────────────
// Registros diarios
// ──────────────────────────────────────────────────────────────────────────────

func TestRevenues_ListYErrores(t *testing.T) {
	env := newTestEnv(t)
	owner := bearer(t, "Budi", pkgjwt.RoleOwner)

	resp := env.do(t, http.MethodGet, "/api/revenues?start_date=2024-01-01&end_date=2024-01-31", owner, nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[dto.DailyRevenueListResponse](t, resp)
	assert.Equal(t, 2, list.Count)
	assert.Equal(t, "2024-01-01", list.Items[0].Date)

	resp = env.do(t, http.MethodGet, "/api/revenues?start_date=2024-01-01", owner, nil, "")
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "start_date sin end_date")

	resp = env.do(t, http.MethodGet, "/api/revenues?start_date=2024-02-01&end_date=2024-01-01", owner, nil, "")
	out := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "INVALID_PERIOD", out.Code)

	resp = env.do(t, http.MethodGet, "/api/revenues/2024-03-01", owner, nil, "")
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRevenues_ImportSinArchivo(t *testing.T) {
	env := newTestEnv(t)
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("note", "sin archivo"))
	require.NoError(t, w.Close())

	resp := env.do(t, http.MethodPost, "/api/revenues/import/sales", bearer(t, "Budi", pkgjwt.RoleOwner), &buf, w.FormDataContentType())
	out := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", out.Code)
}

func TestRevenues_UpdateRecalculaNeto(t *testing.T) {
	env := newTestEnv(t)
	voucher := decimal.NewFromInt(5000)
	resp := env.doJSON(t, http.MethodPatch, "/api/revenues/2024-01-01", bearer(t, "Budi", pkgjwt.RoleOwner),
		dto.UpdateDailyRevenueRequest{VoucherCost: &voucher})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decode[dto.DailyRevenueResponse](t, resp)

	// 100000 - 5000 - 7,5% de (100000 - 5000) - 10 pedidos * 1250 = 75375
	assert.True(t, decimal.NewFromInt(75375).Equal(got.CalculatedNetRevenue), "obtenido %s", got.CalculatedNetRevenue)
}

// ──────────────────────────────────────────────────────────────────────────────
// Turnos
// ──────────────────────────────────────────────────────────────────────────────

func TestShifts_CicloDeVida(t *testing.T) {
	env := newTestEnv(t)
	rina := bearer(t, "Rina", pkgjwt.RoleAdmin)
	dewi := bearer(t, "Dewi", pkgjwt.RoleAdmin)

	resp := env.doJSON(t, http.MethodPost, "/api/shifts/start", rina, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	started := decode[dto.ShiftResponse](t, resp)
	assert.Equal(t, "Rina", started.AdminName)
	assert.Equal(t, entity.ShiftStatusActive, started.Status)

	resp = env.doJSON(t, http.MethodPost, "/api/shifts/start", dewi, nil)
	out := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "ACTIVE_SHIFT_EXISTS", out.Code)

	resp = env.do(t, http.MethodGet, "/api/shifts/active", dewi, nil, "")
	active := decode[dto.ActiveShiftResponse](t, resp)
	require.True(t, active.Active)
	assert.Equal(t, started.ID, active.Shift.ID)

	endBody := dto.EndShiftRequest{GrossIncome: decimal.NewFromInt(200000), OrdersCount: 5}
	resp = env.doJSON(t, http.MethodPost, "/api/shifts/"+started.ID+"/end", dewi, endBody)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode, "un admin no cierra el turno de otro")

	resp = env.doJSON(t, http.MethodPost, "/api/shifts/"+started.ID+"/end", rina, endBody)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	ended := decode[dto.ShiftResponse](t, resp)
	assert.Equal(t, entity.ShiftStatusCompleted, ended.Status)
	assert.Equal(t, 5, ended.OrdersCount)
	require.NotNil(t, ended.ShiftPay)

	resp = env.doJSON(t, http.MethodPost, "/api/shifts/"+started.ID+"/end", rina, endBody)
	out = decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "SHIFT_ALREADY_COMPLETED", out.Code)
}

func TestShifts_StartANombreDeOtro(t *testing.T) {
	env := newTestEnv(t)

	resp := env.doJSON(t, http.MethodPost, "/api/shifts/start", bearer(t, "Rina", pkgjwt.RoleAdmin),
		dto.StartShiftRequest{AdminName: "Dewi"})
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = env.doJSON(t, http.MethodPost, "/api/shifts/start", bearer(t, "Budi", pkgjwt.RoleOwner),
		dto.StartShiftRequest{AdminName: "Dewi"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	started := decode[dto.ShiftResponse](t, resp)
	assert.Equal(t, "Dewi", started.AdminName)
}

// ──────────────────────────────────────────────────────────────────────────────
// Resumen
// ──────────────────────────────────────────────────────────────────────────────

func TestSummary_JSONYPDF(t *testing.T) {
	env := newTestEnv(t)
	owner := bearer(t, "Budi", pkgjwt.RoleOwner)

	resp := env.do(t, http.MethodGet, "/api/summary?start_date=2024-01-01&end_date=2024-01-31", owner, nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	summary := decode[dto.PeriodSummaryResponse](t, resp)
	assert.Equal(t, "Januari 2024", summary.DateLabel)
	assert.Equal(t, 2, summary.RevenueDays)
	assert.True(t, decimal.NewFromInt(400000).Equal(summary.TotalGrossRevenue))

	resp = env.do(t, http.MethodGet, "/api/summary/pdf?start_date=2024-01-01&end_date=2024-01-31", owner, nil, "")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "ringkasan_20240101_20240131.pdf")
	raw, _ := io.ReadAll(resp.Body)
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")))
}

func TestSummary_SoloOwner(t *testing.T) {
	env := newTestEnv(t)
	resp := env.do(t, http.MethodGet, "/api/summary", bearer(t, "Rina", pkgjwt.RoleAdmin), nil, "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
