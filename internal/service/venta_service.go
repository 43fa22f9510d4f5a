package service

import (
	"bytes"
	"context"
	"errors"
	"os"
	"sort"
	"time"

	"github.com/jassler1/el-refugio-de-las-gibas/internal/dto"
	"github.com/jassler1/el-refugio-de-las-gibas/internal/feed"
	"github.com/jassler1/el-refugio-de-las-gibas/internal/infra"
	"github.com/jassler1/el-refugio-de-las-gibas/internal/model"
	"github.com/jassler1/el-refugio-de-las-gibas/internal/pos"
	"github.com/jassler1/el-refugio-de-las-gibas/internal/reporte"
	"github.com/jassler1/el-refugio-de-las-gibas/internal/repository"
	"github.com/jassler1/el-refugio-de-las-gibas/internal/worker"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// VentaService records checkouts and serves the sales history.
type VentaService interface {
	// Registrador returns the checkout backend bound to owner.
	Registrador(owner uuid.UUID) pos.Registrador
	ListVentas(ctx context.Context, owner uuid.UUID, filter dto.VentaFilter) (*dto.VentaListResponse, error)
	ObtenerVenta(ctx context.Context, owner, id uuid.UUID) (*dto.VentaResponse, error)
	TicketPDF(ctx context.Context, owner, id uuid.UUID) ([]byte, error)
}

type ventaService struct {
	repo        repository.VentaRepository
	insumos     repository.InsumoRepository
	kits        repository.KitRepository
	comandas    repository.ComandaRepository
	movimientos repository.MovimientoStockRepository
	dispatcher  *worker.Dispatcher
	pub         feed.Publisher
	negocio     string
	pdfPath     string
	now         func() time.Time
}

func NewVentaService(
	repo repository.VentaRepository,
	insumos repository.InsumoRepository,
	kits repository.KitRepository,
	comandas repository.ComandaRepository,
	movimientos repository.MovimientoStockRepository,
	dispatcher *worker.Dispatcher,
	pub feed.Publisher,
	negocio string,
	pdfPath string,
) VentaService {
	return &ventaService{
		repo:        repo,
		insumos:     insumos,
		kits:        kits,
		comandas:    comandas,
		movimientos: movimientos,
		dispatcher:  dispatcher,
		pub:         pub,
		negocio:     negocio,
		pdfPath:     pdfPath,
		now:         time.Now,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

func (s *ventaService) Registrador(owner uuid.UUID) pos.Registrador {
	return &registrador{svc: s, owner: owner}
}

type registrador struct {
	svc   *ventaService
	owner uuid.UUID
}

func (r *registrador) Registrar(ctx context.Context, p pos.Pedido) (*model.Venta, error) {
	return r.svc.registrar(ctx, r.owner, p)
}

// ── Checkout ──────────────────────────────────────────────────────────────────
// Single transaction:
//   1. lock every product row in (tipo, id) order and verify stock
//   2. decrement stock, one movimiento per line
//   3. nextval ticket, insert venta
//   4. delete the table's comanda
// Nothing is written until every line passed step 1. Any failure rolls
// everything back. The ticket PDF is rendered async.

func (s *ventaService) registrar(ctx context.Context, owner uuid.UUID, p pos.Pedido) (*model.Venta, error) {
	lineas := make([]model.LineaCarrito, len(p.Lineas))
	copy(lineas, p.Lineas)
	// fixed lock order so two checkouts sharing products cannot deadlock
	sort.Slice(lineas, func(i, j int) bool {
		if lineas[i].Tipo != lineas[j].Tipo {
			return lineas[i].Tipo < lineas[j].Tipo
		}
		return lineas[i].ProductoID.String() < lineas[j].ProductoID.String()
	})

	venta := &model.Venta{
		ID:           uuid.New(),
		UserID:       owner,
		Mesa:         p.Mesa,
		ClienteID:    p.ClienteID,
		Articulos:    articulosDe(p.Lineas),
		Subtotal:     p.Subtotal,
		DescuentoPct: p.DescuentoPct,
		Descuento:    p.Descuento,
		Total:        p.Total,
		MetodoPago:   p.Metodo,
		Pagos:        p.Pagos,
		Vuelto:       p.Vuelto,
		CreatedAt:    s.now(),
	}

	err := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		reservas := make([]reserva, 0, len(lineas))
		for _, l := range lineas {
			r, err := s.reservar(tx, owner, l)
			if err != nil {
				return err
			}
			reservas = append(reservas, r)
		}
		for _, r := range reservas {
			if err := s.descontar(tx, owner, venta.ID, r); err != nil {
				return err
			}
		}
		numero, err := s.repo.NextTicketNumber(ctx, tx)
		if err != nil {
			return err
		}
		venta.NumeroTicket = numero
		if err := s.repo.Create(ctx, tx, venta); err != nil {
			return err
		}
		return s.comandas.DeleteTx(tx, owner, p.Mesa)
	})
	if err != nil {
		return nil, err
	}

	log.Info().Int("ticket", venta.NumeroTicket).Str("mesa", venta.Mesa).
		Str("total", venta.Total.StringFixed(2)).Msg("venta registrada")
	notificar(ctx, s.pub, owner, feed.Insumos, feed.Kits, feed.Ventas, feed.Comandas)

	if s.dispatcher != nil {
		payload := worker.TicketJobPayload{VentaID: venta.ID.String(), UserID: owner.String()}
		if err := s.dispatcher.EnqueueTicket(ctx, payload); err != nil {
			log.Warn().Err(err).Int("ticket", venta.NumeroTicket).Msg("no se pudo encolar el ticket PDF")
		}
	}
	return venta, nil
}

// reserva is a locked line whose stock was verified.
type reserva struct {
	linea      model.LineaCarrito
	nombre     string
	disponible decimal.Decimal
	requerido  decimal.Decimal
}

// reservar locks the product row of l and checks it can cover the line.
func (s *ventaService) reservar(tx *gorm.DB, owner uuid.UUID, l model.LineaCarrito) (reserva, error) {
	r := reserva{linea: l, nombre: l.Nombre, requerido: decimal.NewFromInt(int64(l.Cantidad))}
	var err error
	switch l.Tipo {
	case model.TipoInsumo:
		var insumo *model.Insumo
		if insumo, err = s.insumos.FindForUpdateTx(tx, owner, l.ProductoID); err == nil {
			r.nombre, r.disponible = insumo.Nombre, insumo.Cantidad
		}
	case model.TipoKit:
		var kit *model.Kit
		if kit, err = s.kits.FindForUpdateTx(tx, owner, l.ProductoID); err == nil {
			r.nombre, r.disponible = kit.Nombre, decimal.NewFromInt(int64(kit.Cantidad))
		}
	default:
		return r, &StockError{Producto: l.Nombre, NoExiste: true}
	}
	if repository.IsNotFound(err) {
		return r, &StockError{Producto: l.Nombre, NoExiste: true}
	}
	if err != nil {
		return r, err
	}
	if r.disponible.LessThan(r.requerido) {
		return r, &StockError{Producto: r.nombre, Disponible: r.disponible, Requerido: r.requerido}
	}
	return r, nil
}

func (s *ventaService) descontar(tx *gorm.DB, owner, ventaID uuid.UUID, r reserva) error {
	var err error
	if r.linea.Tipo == model.TipoKit {
		err = s.kits.UpdateStockTx(tx, r.linea.ProductoID, -r.linea.Cantidad)
	} else {
		err = s.insumos.UpdateStockTx(tx, r.linea.ProductoID, r.requerido.Neg())
	}
	if errors.Is(err, repository.ErrStockNegativo) {
		return &StockError{Producto: r.nombre, Disponible: r.disponible, Requerido: r.requerido}
	}
	if err != nil {
		return err
	}
	return s.movimientos.CreateTx(tx, &model.MovimientoStock{
		UserID:        owner,
		TipoProducto:  r.linea.Tipo,
		ProductoID:    r.linea.ProductoID,
		Tipo:          "venta",
		Cantidad:      r.requerido.Neg(),
		StockAnterior: r.disponible,
		StockNuevo:    r.disponible.Sub(r.requerido),
		Motivo:        "Venta",
		ReferenciaID:  &ventaID,
	})
}

func articulosDe(lineas []model.LineaCarrito) []model.ArticuloVenta {
	out := make([]model.ArticuloVenta, len(lineas))
	for i, l := range lineas {
		out[i] = model.ArticuloVenta{
			Tipo:           l.Tipo,
			ProductoID:     l.ProductoID,
			Nombre:         l.Nombre,
			Cantidad:       l.Cantidad,
			PrecioUnitario: l.PrecioVenta,
			Subtotal:       l.Subtotal(),
		}
	}
	return out
}

// ── Consultas ─────────────────────────────────────────────────────────────────

func (s *ventaService) ListVentas(ctx context.Context, owner uuid.UUID, filter dto.VentaFilter) (*dto.VentaListResponse, error) {
	rango, err := rangoDeFiltro(filter.Desde, filter.Hasta, true, s.now())
	if err != nil {
		return nil, err
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	ventas, total, err := s.repo.List(ctx, owner, rango, filter.Page, filter.Limit)
	if err != nil {
		return nil, err
	}
	resp := &dto.VentaListResponse{Data: make([]dto.VentaResponse, len(ventas)), Total: total, Page: filter.Page, Limit: filter.Limit}
	for i := range ventas {
		resp.Data[i] = *ventaToResponse(&ventas[i])
	}
	return resp, nil
}

func (s *ventaService) ObtenerVenta(ctx context.Context, owner, id uuid.UUID) (*dto.VentaResponse, error) {
	v, err := s.repo.FindByID(ctx, owner, id)
	if err != nil {
		return nil, notFound(err)
	}
	return ventaToResponse(v), nil
}

// TicketPDF serves the ticket stored by the ticket worker. When the file is
// missing (job pending or failed) it renders the ticket and stores it.
func (s *ventaService) TicketPDF(ctx context.Context, owner, id uuid.UUID) ([]byte, error) {
	v, err := s.repo.FindByID(ctx, owner, id)
	if err != nil {
		return nil, notFound(err)
	}
	if s.pdfPath != "" {
		if data, err := os.ReadFile(infra.TicketPath(s.pdfPath, v.NumeroTicket)); err == nil {
			return data, nil
		}
		if _, err := infra.GenerateTicketPDF(v, s.negocio, s.pdfPath); err != nil {
			log.Warn().Err(err).Int("ticket", v.NumeroTicket).Msg("venta: no se pudo guardar el ticket")
		}
	}
	var buf bytes.Buffer
	if err := infra.RenderTicketPDF(&buf, v, s.negocio); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// rangoDeFiltro parses YYYY-MM-DD bounds; hasta covers the whole day. With
// both empty and hoyPorDefecto set, the range is today.
func rangoDeFiltro(desde, hasta string, hoyPorDefecto bool, now time.Time) (repository.Rango, error) {
	if desde == "" && hasta == "" && hoyPorDefecto {
		ini, fin := reporte.Hoy(now)
		return repository.Rango{Desde: &ini, Hasta: &fin}, nil
	}
	v := validacion{}
	d, err := reporte.ParseFecha(desde, now.Location())
	if err != nil {
		v.add("desde", "Formato de fecha invalido, use AAAA-MM-DD")
	}
	h, err := reporte.ParseFecha(hasta, now.Location())
	if err != nil {
		v.add("hasta", "Formato de fecha invalido, use AAAA-MM-DD")
	}
	if err := v.err(); err != nil {
		return repository.Rango{}, err
	}
	if h != nil {
		fin := reporte.FinDelDia(*h)
		h = &fin
	}
	if d != nil && h != nil && d.After(*h) {
		return repository.Rango{}, &ValidationError{Fields: map[string]string{"desde": "La fecha inicial no puede ser posterior a la final"}}
	}
	return repository.Rango{Desde: d, Hasta: h}, nil
}

func ventaToResponse(v *model.Venta) *dto.VentaResponse {
	resp := &dto.VentaResponse{
		ID:           v.ID.String(),
		NumeroTicket: v.NumeroTicket,
		Mesa:         v.Mesa,
		Articulos:    make([]dto.ArticuloVentaResponse, len(v.Articulos)),
		Subtotal:     v.Subtotal,
		DescuentoPct: v.DescuentoPct,
		Descuento:    v.Descuento,
		Total:        v.Total,
		MetodoPago:   v.MetodoPago,
		Pagos:        make([]dto.PagoResponse, len(v.Pagos)),
		Vuelto:       v.Vuelto,
		CreatedAt:    v.CreatedAt.Format(time.RFC3339),
	}
	if v.ClienteID != nil {
		id := v.ClienteID.String()
		resp.ClienteID = &id
	}
	for i, a := range v.Articulos {
		resp.Articulos[i] = dto.ArticuloVentaResponse{
			Tipo:           string(a.Tipo),
			ProductoID:     a.ProductoID.String(),
			Nombre:         a.Nombre,
			Cantidad:       a.Cantidad,
			PrecioUnitario: a.PrecioUnitario,
			Subtotal:       a.Subtotal,
		}
	}
	for i, p := range v.Pagos {
		resp.Pagos[i] = dto.PagoResponse{Metodo: p.Metodo, Monto: p.Monto}
	}
	return resp
}
