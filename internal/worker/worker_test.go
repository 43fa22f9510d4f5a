package worker

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jassler1/el-refugio-de-las-gibas/internal/infra"
	"github.com/jassler1/el-refugio-de-las-gibas/internal/model"
	"github.com/jassler1/el-refugio-de-las-gibas/internal/reporte"
	"github.com/jassler1/el-refugio-de-las-gibas/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────

type stubVentaRepo struct {
	ventas map[uuid.UUID]*model.Venta
}

var _ repository.VentaRepository = (*stubVentaRepo)(nil)

func (r *stubVentaRepo) Create(_ context.Context, _ *gorm.DB, v *model.Venta) error {
	r.ventas[v.ID] = v
	return nil
}
func (r *stubVentaRepo) FindByID(_ context.Context, owner, id uuid.UUID) (*model.Venta, error) {
	v, ok := r.ventas[id]
	if !ok || v.UserID != owner {
		return nil, gorm.ErrRecordNotFound
	}
	return v, nil
}
func (r *stubVentaRepo) NextTicketNumber(_ context.Context, _ *gorm.DB) (int, error) { return 1, nil }
func (r *stubVentaRepo) List(_ context.Context, _ uuid.UUID, _ repository.Rango, _, _ int) ([]model.Venta, int64, error) {
	return nil, 0, nil
}
func (r *stubVentaRepo) ListAll(_ context.Context, _ uuid.UUID, _ repository.Rango) ([]model.Venta, error) {
	return nil, nil
}
func (r *stubVentaRepo) TotalesPorCliente(_ context.Context, _ uuid.UUID) (map[uuid.UUID]decimal.Decimal, error) {
	return nil, nil
}
func (r *stubVentaRepo) DB() *gorm.DB { return nil }

type stubBuilder struct {
	desde, hasta *time.Time
	err          error
}

func (b *stubBuilder) Resumen(_ context.Context, _ uuid.UUID, desde, hasta *time.Time) (reporte.Resumen, error) {
	b.desde, b.hasta = desde, hasta
	return reporte.Construir(desde, hasta, nil, nil, nil), b.err
}

type stubSender struct {
	to    string
	data  []byte
	err   error
	calls int
}

func (s *stubSender) SendPDF(to, _, _, _ string, data []byte) error {
	s.calls++
	s.to, s.data = to, data
	return s.err
}

func raw(t *testing.T, v interface{}) json.RawMessage {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}

// ── Ticket ────────────────────────────────────────────────────────────────────

func TestTicketWorker_GeneraPDF(t *testing.T) {
	owner := uuid.New()
	v := &model.Venta{ID: uuid.New(), UserID: owner, NumeroTicket: 7, Mesa: "Mesa 1", Total: decimal.NewFromInt(10)}
	repo := &stubVentaRepo{ventas: map[uuid.UUID]*model.Venta{v.ID: v}}
	dir := t.TempDir()
	w := NewTicketWorker(repo, "El Refugio", dir)

	err := w.Process(context.Background(), raw(t, TicketJobPayload{VentaID: v.ID.String(), UserID: owner.String()}))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "ticket_7.pdf"))
	assert.NoError(t, err)
}

func TestTicketWorker_VentaDeOtroDuenoNoSeReintenta(t *testing.T) {
	v := &model.Venta{ID: uuid.New(), UserID: uuid.New()}
	repo := &stubVentaRepo{ventas: map[uuid.UUID]*model.Venta{v.ID: v}}
	w := NewTicketWorker(repo, "X", t.TempDir())

	err := w.Process(context.Background(), raw(t, TicketJobPayload{VentaID: v.ID.String(), UserID: uuid.NewString()}))
	assert.NoError(t, err)
}

func TestTicketWorker_PayloadInvalido(t *testing.T) {
	w := NewTicketWorker(&stubVentaRepo{}, "X", t.TempDir())
	assert.NoError(t, w.Process(context.Background(), json.RawMessage(`{"venta_id":"nope"}`)))
}

// ── Reporte e-mail ────────────────────────────────────────────────────────────

func TestReporteEmailWorker_EnviaPDF(t *testing.T) {
	b := &stubBuilder{}
	s := &stubSender{}
	w := NewReporteEmailWorker(b, s, nil, "El Refugio")

	err := w.Process(context.Background(), raw(t, ReporteEmailPayload{
		UserID: uuid.NewString(), Email: "dueno@refugio.bo", Desde: "2024-05-01", Hasta: "2024-05-31",
	}))
	require.NoError(t, err)
	assert.Equal(t, "dueno@refugio.bo", s.to)
	assert.True(t, len(s.data) > 4 && string(s.data[:4]) == "%PDF")
	require.NotNil(t, b.hasta)
	assert.Equal(t, 23, b.hasta.Hour(), "hasta incluye todo el dia")
}

func TestReporteEmailWorker_FalloSMTPSeReintenta(t *testing.T) {
	s := &stubSender{err: errors.New("connection refused")}
	cb := infra.NewCircuitBreaker(infra.CircuitBreakerConfig{FailureThreshold: 1, OpenTimeout: time.Hour})
	w := NewReporteEmailWorker(&stubBuilder{}, s, cb, "X")
	payload := raw(t, ReporteEmailPayload{UserID: uuid.NewString(), Email: "a@b.c"})

	assert.Error(t, w.Process(context.Background(), payload))
	assert.Equal(t, infra.CBOpen, cb.State())

	err := w.Process(context.Background(), payload)
	assert.ErrorIs(t, err, infra.ErrCircuitOpen)
	assert.Equal(t, 1, s.calls, "con el breaker abierto no se intenta enviar")
}

func TestReporteEmailWorker_SinSMTPNoSeReintenta(t *testing.T) {
	s := &stubSender{err: infra.ErrSMTPNoConfigurado}
	w := NewReporteEmailWorker(&stubBuilder{}, s, nil, "X")
	assert.NoError(t, w.Process(context.Background(), raw(t, ReporteEmailPayload{UserID: uuid.NewString(), Email: "a@b.c"})))
}

// ── Retry ─────────────────────────────────────────────────────────────────────

func TestComputeRetryBackoff(t *testing.T) {
	assert.Equal(t, time.Minute, computeRetryBackoff(1))
	assert.Equal(t, 4*time.Minute, computeRetryBackoff(3))
	assert.Equal(t, 30*time.Minute, computeRetryBackoff(10))
	assert.Equal(t, 30*time.Minute, computeRetryBackoff(80))
}

func TestWorkerHandlers_ForQueue(t *testing.T) {
	tw := &TicketWorker{}
	h := WorkerHandlers{Ticket: tw}
	assert.Equal(t, Processor(tw), h.forQueue(QueueTicket))
	assert.Nil(t, h.forQueue(QueueEmail))
	assert.Nil(t, h.forQueue("jobs:otro"))
}
