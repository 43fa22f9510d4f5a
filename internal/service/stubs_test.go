package service_test

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/jassler1/el-refugio-de-las-gibas/internal/dto"
	"github.com/jassler1/el-refugio-de-las-gibas/internal/model"
	"github.com/jassler1/el-refugio-de-las-gibas/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ── Insumos ───────────────────────────────────────────────────────────────────

type stubInsumoRepo struct {
	insumos map[uuid.UUID]*model.Insumo
	// failCreate makes the next n Create calls fail with a unique violation.
	failCreate int
	// antesDeActualizar runs right before UpdateStockTx applies its delta.
	antesDeActualizar func(id uuid.UUID)
}

func newStubInsumoRepo(items ...model.Insumo) *stubInsumoRepo {
	r := &stubInsumoRepo{insumos: make(map[uuid.UUID]*model.Insumo)}
	for i := range items {
		it := items[i]
		r.insumos[it.ID] = &it
	}
	return r
}

func (r *stubInsumoRepo) DB() *gorm.DB { return nil }

func (r *stubInsumoRepo) Create(_ context.Context, i *model.Insumo) error {
	if r.failCreate > 0 {
		r.failCreate--
		return gorm.ErrDuplicatedKey
	}
	for _, ex := range r.insumos {
		if ex.UserID == i.UserID && ex.Codigo == i.Codigo {
			return gorm.ErrDuplicatedKey
		}
	}
	cp := *i
	r.insumos[i.ID] = &cp
	return nil
}

func (r *stubInsumoRepo) FindByID(_ context.Context, owner, id uuid.UUID) (*model.Insumo, error) {
	i, ok := r.insumos[id]
	if !ok || i.UserID != owner {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *i
	return &cp, nil
}

func (r *stubInsumoRepo) FindByIDs(_ context.Context, owner uuid.UUID, ids []uuid.UUID) ([]model.Insumo, error) {
	var out []model.Insumo
	for _, id := range ids {
		if i, ok := r.insumos[id]; ok && i.UserID == owner {
			out = append(out, *i)
		}
	}
	return out, nil
}

func (r *stubInsumoRepo) List(_ context.Context, owner uuid.UUID, f dto.InsumoFilter) ([]model.Insumo, error) {
	var out []model.Insumo
	for _, i := range r.insumos {
		if i.UserID != owner {
			continue
		}
		if f.Q != "" && !strings.Contains(i.Nombre, strings.ToUpper(f.Q)) {
			continue
		}
		out = append(out, *i)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Nombre < out[b].Nombre })
	return out, nil
}

func (r *stubInsumoRepo) ListCodigos(_ context.Context, owner uuid.UUID, prefijo string) ([]string, error) {
	var out []string
	for _, i := range r.insumos {
		if i.UserID == owner && strings.HasPrefix(i.Codigo, prefijo) {
			out = append(out, i.Codigo)
		}
	}
	return out, nil
}

func (r *stubInsumoRepo) Update(_ context.Context, i *model.Insumo) error {
	cp := *i
	r.insumos[i.ID] = &cp
	return nil
}

func (r *stubInsumoRepo) Delete(_ context.Context, owner, id uuid.UUID) error {
	if i, ok := r.insumos[id]; !ok || i.UserID != owner {
		return gorm.ErrRecordNotFound
	}
	delete(r.insumos, id)
	return nil
}

func (r *stubInsumoRepo) FindForUpdateTx(_ *gorm.DB, owner, id uuid.UUID) (*model.Insumo, error) {
	return r.FindByID(context.Background(), owner, id)
}

func (r *stubInsumoRepo) UpdateStockTx(_ *gorm.DB, id uuid.UUID, delta decimal.Decimal) error {
	if r.antesDeActualizar != nil {
		r.antesDeActualizar(id)
	}
	i, ok := r.insumos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if i.Cantidad.Add(delta).IsNegative() {
		return repository.ErrStockNegativo
	}
	i.Cantidad = i.Cantidad.Add(delta)
	return nil
}

var _ repository.InsumoRepository = (*stubInsumoRepo)(nil)

// ── Kits ──────────────────────────────────────────────────────────────────────

type stubKitRepo struct {
	kits map[uuid.UUID]*model.Kit
}

func newStubKitRepo(items ...model.Kit) *stubKitRepo {
	r := &stubKitRepo{kits: make(map[uuid.UUID]*model.Kit)}
	for i := range items {
		it := items[i]
		r.kits[it.ID] = &it
	}
	return r
}

func (r *stubKitRepo) DB() *gorm.DB { return nil }

func (r *stubKitRepo) Create(_ context.Context, k *model.Kit) error {
	cp := *k
	r.kits[k.ID] = &cp
	return nil
}

func (r *stubKitRepo) FindByID(_ context.Context, owner, id uuid.UUID) (*model.Kit, error) {
	k, ok := r.kits[id]
	if !ok || k.UserID != owner {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *k
	return &cp, nil
}

func (r *stubKitRepo) List(_ context.Context, owner uuid.UUID) ([]model.Kit, error) {
	var out []model.Kit
	for _, k := range r.kits {
		if k.UserID == owner {
			out = append(out, *k)
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Nombre < out[b].Nombre })
	return out, nil
}

func (r *stubKitRepo) ListByInsumo(_ context.Context, owner, insumoID uuid.UUID) ([]model.Kit, error) {
	var out []model.Kit
	for _, k := range r.kits {
		if k.UserID == owner && k.ReferenciaInsumo(insumoID) {
			out = append(out, *k)
		}
	}
	return out, nil
}

func (r *stubKitRepo) Update(_ context.Context, k *model.Kit) error {
	cp := *k
	r.kits[k.ID] = &cp
	return nil
}

func (r *stubKitRepo) Delete(_ context.Context, owner, id uuid.UUID) error {
	if k, ok := r.kits[id]; !ok || k.UserID != owner {
		return gorm.ErrRecordNotFound
	}
	delete(r.kits, id)
	return nil
}

func (r *stubKitRepo) FindForUpdateTx(_ *gorm.DB, owner, id uuid.UUID) (*model.Kit, error) {
	return r.FindByID(context.Background(), owner, id)
}

func (r *stubKitRepo) UpdateStockTx(_ *gorm.DB, id uuid.UUID, delta int) error {
	k, ok := r.kits[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if k.Cantidad+delta < 0 {
		return repository.ErrStockNegativo
	}
	k.Cantidad += delta
	return nil
}

var _ repository.KitRepository = (*stubKitRepo)(nil)

// ── Ventas ────────────────────────────────────────────────────────────────────

type stubVentaRepo struct {
	ventas    []model.Venta
	ticketSeq int
}

func (r *stubVentaRepo) DB() *gorm.DB { return nil }

func (r *stubVentaRepo) Create(_ context.Context, _ *gorm.DB, v *model.Venta) error {
	r.ventas = append(r.ventas, *v)
	return nil
}

func (r *stubVentaRepo) FindByID(_ context.Context, owner, id uuid.UUID) (*model.Venta, error) {
	for i := range r.ventas {
		if r.ventas[i].ID == id && r.ventas[i].UserID == owner {
			v := r.ventas[i]
			return &v, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubVentaRepo) NextTicketNumber(_ context.Context, _ *gorm.DB) (int, error) {
	r.ticketSeq++
	return r.ticketSeq, nil
}

func (r *stubVentaRepo) enRango(v model.Venta, rango repository.Rango) bool {
	if rango.Desde != nil && v.CreatedAt.Before(*rango.Desde) {
		return false
	}
	if rango.Hasta != nil && v.CreatedAt.After(*rango.Hasta) {
		return false
	}
	return true
}

func (r *stubVentaRepo) List(ctx context.Context, owner uuid.UUID, rango repository.Rango, page, limit int) ([]model.Venta, int64, error) {
	all, _ := r.ListAll(ctx, owner, rango)
	total := int64(len(all))
	start := (page - 1) * limit
	if start >= len(all) {
		return []model.Venta{}, total, nil
	}
	end := start + limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (r *stubVentaRepo) ListAll(_ context.Context, owner uuid.UUID, rango repository.Rango) ([]model.Venta, error) {
	var out []model.Venta
	for _, v := range r.ventas {
		if v.UserID == owner && r.enRango(v, rango) {
			out = append(out, v)
		}
	}
	return out, nil
}

func (r *stubVentaRepo) TotalesPorCliente(_ context.Context, owner uuid.UUID) (map[uuid.UUID]decimal.Decimal, error) {
	out := map[uuid.UUID]decimal.Decimal{}
	for _, v := range r.ventas {
		if v.UserID == owner && v.ClienteID != nil {
			out[*v.ClienteID] = out[*v.ClienteID].Add(v.Total)
		}
	}
	return out, nil
}

var _ repository.VentaRepository = (*stubVentaRepo)(nil)

// ── Comandas ──────────────────────────────────────────────────────────────────

type stubComandaRepo struct {
	comandas map[string]model.ComandaPendiente
}

func newStubComandaRepo() *stubComandaRepo {
	return &stubComandaRepo{comandas: make(map[string]model.ComandaPendiente)}
}

func comandaKey(owner uuid.UUID, mesa string) string { return owner.String() + "|" + mesa }

func (r *stubComandaRepo) Upsert(_ context.Context, c *model.ComandaPendiente) error {
	r.comandas[comandaKey(c.UserID, c.Mesa)] = *c
	return nil
}

func (r *stubComandaRepo) Find(_ context.Context, owner uuid.UUID, mesa string) (*model.ComandaPendiente, error) {
	c, ok := r.comandas[comandaKey(owner, mesa)]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &c, nil
}

func (r *stubComandaRepo) List(_ context.Context, owner uuid.UUID) ([]model.ComandaPendiente, error) {
	var out []model.ComandaPendiente
	for _, c := range r.comandas {
		if c.UserID == owner {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Mesa < out[b].Mesa })
	return out, nil
}

func (r *stubComandaRepo) DeleteTx(_ *gorm.DB, owner uuid.UUID, mesa string) error {
	delete(r.comandas, comandaKey(owner, mesa))
	return nil
}

var _ repository.ComandaRepository = (*stubComandaRepo)(nil)

// ── Movimientos ───────────────────────────────────────────────────────────────

type stubMovimientoRepo struct {
	movs []model.MovimientoStock
}

func (r *stubMovimientoRepo) CreateTx(_ *gorm.DB, m *model.MovimientoStock) error {
	r.movs = append(r.movs, *m)
	return nil
}

func (r *stubMovimientoRepo) List(_ context.Context, owner uuid.UUID, f repository.MovimientoStockFilter) ([]model.MovimientoStock, error) {
	var out []model.MovimientoStock
	for _, m := range r.movs {
		if m.UserID != owner || (f.ProductoID != nil && m.ProductoID != *f.ProductoID) {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

var _ repository.MovimientoStockRepository = (*stubMovimientoRepo)(nil)

// ── Clientes ──────────────────────────────────────────────────────────────────

type stubClienteRepo struct {
	clientes map[uuid.UUID]*model.Cliente
}

func newStubClienteRepo(items ...model.Cliente) *stubClienteRepo {
	r := &stubClienteRepo{clientes: make(map[uuid.UUID]*model.Cliente)}
	for i := range items {
		it := items[i]
		r.clientes[it.ID] = &it
	}
	return r
}

func (r *stubClienteRepo) Create(_ context.Context, c *model.Cliente) error {
	cp := *c
	r.clientes[c.ID] = &cp
	return nil
}

func (r *stubClienteRepo) FindByID(_ context.Context, owner, id uuid.UUID) (*model.Cliente, error) {
	c, ok := r.clientes[id]
	if !ok || c.UserID != owner {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *stubClienteRepo) List(_ context.Context, owner uuid.UUID, f dto.ClienteFilter) ([]model.Cliente, error) {
	var out []model.Cliente
	for _, c := range r.clientes {
		if c.UserID == owner && (f.Q == "" || strings.Contains(c.NombreCompleto, strings.ToUpper(f.Q)) || strings.Contains(c.CI, f.Q)) {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].NombreCompleto < out[b].NombreCompleto })
	return out, nil
}

func (r *stubClienteRepo) Update(_ context.Context, c *model.Cliente) error {
	cp := *c
	r.clientes[c.ID] = &cp
	return nil
}

func (r *stubClienteRepo) Delete(_ context.Context, owner, id uuid.UUID) error {
	if c, ok := r.clientes[id]; !ok || c.UserID != owner {
		return gorm.ErrRecordNotFound
	}
	delete(r.clientes, id)
	return nil
}

var _ repository.ClienteRepository = (*stubClienteRepo)(nil)

// ── Egresos / gastos ──────────────────────────────────────────────────────────

type stubEgresoRepo struct {
	egresos []model.Egreso
}

func (r *stubEgresoRepo) Create(_ context.Context, e *model.Egreso) error {
	r.egresos = append(r.egresos, *e)
	return nil
}

func (r *stubEgresoRepo) FindByID(_ context.Context, owner, id uuid.UUID) (*model.Egreso, error) {
	for i := range r.egresos {
		if r.egresos[i].ID == id && r.egresos[i].UserID == owner {
			e := r.egresos[i]
			return &e, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubEgresoRepo) List(_ context.Context, owner uuid.UUID, rango repository.Rango) ([]model.Egreso, error) {
	var out []model.Egreso
	for _, e := range r.egresos {
		if e.UserID != owner {
			continue
		}
		if rango.Desde != nil && e.Timestamp.Before(*rango.Desde) {
			continue
		}
		if rango.Hasta != nil && e.Timestamp.After(*rango.Hasta) {
			continue
		}
		out = append(out, e)
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].Timestamp.After(out[b].Timestamp) })
	return out, nil
}

func (r *stubEgresoRepo) Update(_ context.Context, e *model.Egreso) error {
	for i := range r.egresos {
		if r.egresos[i].ID == e.ID {
			r.egresos[i] = *e
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *stubEgresoRepo) Delete(_ context.Context, owner, id uuid.UUID) error {
	for i := range r.egresos {
		if r.egresos[i].ID == id && r.egresos[i].UserID == owner {
			r.egresos = append(r.egresos[:i], r.egresos[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

var _ repository.EgresoRepository = (*stubEgresoRepo)(nil)

type stubGastoRepo struct {
	gastos []model.GastoDiario
}

func (r *stubGastoRepo) Create(_ context.Context, g *model.GastoDiario) error {
	r.gastos = append(r.gastos, *g)
	return nil
}

func (r *stubGastoRepo) FindByID(_ context.Context, owner, id uuid.UUID) (*model.GastoDiario, error) {
	for i := range r.gastos {
		if r.gastos[i].ID == id && r.gastos[i].UserID == owner {
			g := r.gastos[i]
			return &g, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubGastoRepo) List(_ context.Context, owner uuid.UUID, rango repository.Rango) ([]model.GastoDiario, error) {
	var out []model.GastoDiario
	for _, g := range r.gastos {
		if g.UserID != owner {
			continue
		}
		if rango.Desde != nil && g.Timestamp.Before(*rango.Desde) {
			continue
		}
		if rango.Hasta != nil && g.Timestamp.After(*rango.Hasta) {
			continue
		}
		out = append(out, g)
	}
	return out, nil
}

func (r *stubGastoRepo) Update(_ context.Context, g *model.GastoDiario) error {
	for i := range r.gastos {
		if r.gastos[i].ID == g.ID {
			r.gastos[i] = *g
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *stubGastoRepo) Delete(_ context.Context, owner, id uuid.UUID) error {
	for i := range r.gastos {
		if r.gastos[i].ID == id && r.gastos[i].UserID == owner {
			r.gastos = append(r.gastos[:i], r.gastos[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

var _ repository.GastoDiarioRepository = (*stubGastoRepo)(nil)

// ── Feed ──────────────────────────────────────────────────────────────────────

type stubPublisher struct {
	mu      sync.Mutex
	eventos []string
}

func (p *stubPublisher) Publicar(_ context.Context, _ uuid.UUID, coleccion string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.eventos = append(p.eventos, coleccion)
	return nil
}

func (p *stubPublisher) publicados() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.eventos...)
}
