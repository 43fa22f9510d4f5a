package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jassler1/el-refugio-de-las-gibas/internal/dto"
	"github.com/jassler1/el-refugio-de-las-gibas/internal/feed"
	"github.com/jassler1/el-refugio-de-las-gibas/internal/model"
	"github.com/jassler1/el-refugio-de-las-gibas/internal/pos"
	"github.com/jassler1/el-refugio-de-las-gibas/internal/repository"

	"github.com/google/uuid"
)

// ErrProductoSinPrecio rejects adding an item that is not sold directly.
var ErrProductoSinPrecio = errors.New("el producto no tiene precio de venta")

// PuntoVentaService drives one pos.Sesion per owner. Sessions live in memory;
// parked carts survive restarts as comandas.
type PuntoVentaService interface {
	Estado(ctx context.Context, owner uuid.UUID) (*dto.SesionPOSResponse, error)
	Mesas(ctx context.Context, owner uuid.UUID) ([]dto.MesaResponse, error)
	AgregarMesa(ctx context.Context, owner uuid.UUID) ([]dto.MesaResponse, error)
	SeleccionarMesa(ctx context.Context, owner uuid.UUID, mesa string) (*dto.SesionPOSResponse, error)
	AsignarCliente(ctx context.Context, owner uuid.UUID, clienteID *uuid.UUID) (*dto.SesionPOSResponse, error)
	Catalogo(ctx context.Context, owner uuid.UUID, filter dto.CatalogoFilter) ([]dto.CatalogoItem, error)
	Agregar(ctx context.Context, owner uuid.UUID, tipo model.TipoProducto, productoID uuid.UUID) (*dto.SesionPOSResponse, error)
	Incrementar(ctx context.Context, owner, productoID uuid.UUID) (*dto.SesionPOSResponse, error)
	Decrementar(ctx context.Context, owner, productoID uuid.UUID) (*dto.SesionPOSResponse, error)
	Quitar(ctx context.Context, owner, productoID uuid.UUID) (*dto.SesionPOSResponse, error)
	Checkout(ctx context.Context, owner uuid.UUID, req dto.CheckoutRequest) (*dto.CheckoutResponse, error)
}

type puntoVentaService struct {
	ventas         VentaService
	insumos        repository.InsumoRepository
	kits           repository.KitRepository
	clientes       repository.ClienteRepository
	comandas       repository.ComandaRepository
	pub            feed.Publisher
	mesasIniciales int

	mu       sync.Mutex
	sesiones map[uuid.UUID]*pos.Sesion
}

func NewPuntoVentaService(
	ventas VentaService,
	insumos repository.InsumoRepository,
	kits repository.KitRepository,
	clientes repository.ClienteRepository,
	comandas repository.ComandaRepository,
	pub feed.Publisher,
	mesasIniciales int,
) PuntoVentaService {
	return &puntoVentaService{
		ventas:         ventas,
		insumos:        insumos,
		kits:           kits,
		clientes:       clientes,
		comandas:       comandas,
		pub:            pub,
		mesasIniciales: mesasIniciales,
		sesiones:       make(map[uuid.UUID]*pos.Sesion),
	}
}

func (s *puntoVentaService) sesion(owner uuid.UUID) *pos.Sesion {
	s.mu.Lock()
	defer s.mu.Unlock()
	ses, ok := s.sesiones[owner]
	if !ok {
		ses = pos.NuevaSesion(
			&comandaStore{repo: s.comandas, owner: owner},
			&clienteResolver{repo: s.clientes, owner: owner},
			s.ventas.Registrador(owner),
			s.mesasIniciales,
		)
		s.sesiones[owner] = ses
	}
	return ses
}

// ── adapters ──────────────────────────────────────────────────────────────────

type comandaStore struct {
	repo  repository.ComandaRepository
	owner uuid.UUID
}

func (c *comandaStore) Guardar(ctx context.Context, mesa string, carrito []model.LineaCarrito, clienteID *uuid.UUID) error {
	return c.repo.Upsert(ctx, &model.ComandaPendiente{
		UserID:    c.owner,
		Mesa:      mesa,
		Carrito:   carrito,
		ClienteID: clienteID,
		UpdatedAt: time.Now(),
	})
}

func (c *comandaStore) Cargar(ctx context.Context, mesa string) ([]model.LineaCarrito, *uuid.UUID, error) {
	com, err := c.repo.Find(ctx, c.owner, mesa)
	if repository.IsNotFound(err) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}
	return com.Carrito, com.ClienteID, nil
}

type clienteResolver struct {
	repo  repository.ClienteRepository
	owner uuid.UUID
}

func (r *clienteResolver) Cliente(ctx context.Context, id uuid.UUID) (*model.Cliente, error) {
	c, err := r.repo.FindByID(ctx, r.owner, id)
	if repository.IsNotFound(err) {
		return nil, nil
	}
	return c, err
}

// ── operations ────────────────────────────────────────────────────────────────

func (s *puntoVentaService) Estado(_ context.Context, owner uuid.UUID) (*dto.SesionPOSResponse, error) {
	return snapshotToResponse(s.sesion(owner).Snapshot()), nil
}

// Mesas lists the session tables plus any table with a parked comanda.
func (s *puntoVentaService) Mesas(ctx context.Context, owner uuid.UUID) ([]dto.MesaResponse, error) {
	ses := s.sesion(owner)
	comandas, err := s.comandas.List(ctx, owner)
	if err != nil {
		return nil, err
	}
	pendientes := make(map[string]bool, len(comandas))
	for _, c := range comandas {
		if len(c.Carrito) > 0 {
			pendientes[c.Mesa] = true
		}
	}

	actual := ses.Snapshot().Mesa
	nombres := ses.Mesas()
	vistas := make(map[string]bool, len(nombres))
	for _, n := range nombres {
		vistas[n] = true
	}
	for _, c := range comandas {
		if !vistas[c.Mesa] && pendientes[c.Mesa] {
			nombres = append(nombres, c.Mesa)
			vistas[c.Mesa] = true
		}
	}

	out := make([]dto.MesaResponse, len(nombres))
	for i, n := range nombres {
		out[i] = dto.MesaResponse{Nombre: n, Seleccionada: n == actual, Pendiente: pendientes[n]}
	}
	return out, nil
}

func (s *puntoVentaService) AgregarMesa(ctx context.Context, owner uuid.UUID) ([]dto.MesaResponse, error) {
	s.sesion(owner).AgregarMesa()
	return s.Mesas(ctx, owner)
}

func (s *puntoVentaService) SeleccionarMesa(ctx context.Context, owner uuid.UUID, mesa string) (*dto.SesionPOSResponse, error) {
	ses := s.sesion(owner)
	anterior := ses.Snapshot().Mesa
	if err := ses.SeleccionarMesa(ctx, mesa); err != nil {
		return nil, err
	}
	if anterior != "" && anterior != mesa {
		notificar(ctx, s.pub, owner, feed.Comandas)
	}
	return snapshotToResponse(ses.Snapshot()), nil
}

func (s *puntoVentaService) AsignarCliente(ctx context.Context, owner uuid.UUID, clienteID *uuid.UUID) (*dto.SesionPOSResponse, error) {
	ses := s.sesion(owner)
	var c *model.Cliente
	if clienteID != nil {
		var err error
		if c, err = s.clientes.FindByID(ctx, owner, *clienteID); err != nil {
			return nil, notFound(err)
		}
	}
	if err := ses.AsignarCliente(c); err != nil {
		return nil, err
	}
	return snapshotToResponse(ses.Snapshot()), nil
}

func (s *puntoVentaService) Catalogo(ctx context.Context, owner uuid.UUID, filter dto.CatalogoFilter) ([]dto.CatalogoItem, error) {
	insumos, err := s.insumos.List(ctx, owner, dto.InsumoFilter{})
	if err != nil {
		return nil, err
	}
	kits, err := s.kits.List(ctx, owner)
	if err != nil {
		return nil, err
	}
	productos := pos.Catalogo(insumos, kits, filter.Q)
	out := make([]dto.CatalogoItem, len(productos))
	for i, p := range productos {
		out[i] = dto.CatalogoItem{
			Tipo:       string(p.Tipo()),
			ID:         p.ProductoID().String(),
			Nombre:     p.ProductoNombre(),
			Precio:     p.Precio(),
			Disponible: p.Disponible(),
		}
	}
	return out, nil
}

func (s *puntoVentaService) Agregar(ctx context.Context, owner uuid.UUID, tipo model.TipoProducto, productoID uuid.UUID) (*dto.SesionPOSResponse, error) {
	var (
		p   model.Vendible
		err error
	)
	switch tipo {
	case model.TipoInsumo:
		p, err = s.insumos.FindByID(ctx, owner, productoID)
	case model.TipoKit:
		p, err = s.kits.FindByID(ctx, owner, productoID)
	default:
		return nil, &ValidationError{Fields: map[string]string{"tipo": "El tipo debe ser insumo o kit"}}
	}
	if err != nil {
		return nil, notFound(err)
	}
	if !p.Precio().IsPositive() {
		return nil, ErrProductoSinPrecio
	}
	ses := s.sesion(owner)
	if err := ses.Agregar(p); err != nil {
		return nil, err
	}
	return snapshotToResponse(ses.Snapshot()), nil
}

func (s *puntoVentaService) Incrementar(_ context.Context, owner, productoID uuid.UUID) (*dto.SesionPOSResponse, error) {
	return s.mutarLinea(owner, func(ses *pos.Sesion) error { return ses.Incrementar(productoID) })
}

func (s *puntoVentaService) Decrementar(_ context.Context, owner, productoID uuid.UUID) (*dto.SesionPOSResponse, error) {
	return s.mutarLinea(owner, func(ses *pos.Sesion) error { return ses.Decrementar(productoID) })
}

func (s *puntoVentaService) Quitar(_ context.Context, owner, productoID uuid.UUID) (*dto.SesionPOSResponse, error) {
	return s.mutarLinea(owner, func(ses *pos.Sesion) error { return ses.Quitar(productoID) })
}

func (s *puntoVentaService) mutarLinea(owner uuid.UUID, fn func(*pos.Sesion) error) (*dto.SesionPOSResponse, error) {
	ses := s.sesion(owner)
	if err := fn(ses); err != nil {
		return nil, err
	}
	return snapshotToResponse(ses.Snapshot()), nil
}

func (s *puntoVentaService) Checkout(ctx context.Context, owner uuid.UUID, req dto.CheckoutRequest) (*dto.CheckoutResponse, error) {
	venta, err := s.sesion(owner).Checkout(ctx, req.Metodo, req.Pagos)
	if err != nil {
		return nil, err
	}
	return &dto.CheckoutResponse{Venta: *ventaToResponse(venta), Vuelto: venta.Vuelto}, nil
}

func snapshotToResponse(snap pos.Snapshot) *dto.SesionPOSResponse {
	resp := &dto.SesionPOSResponse{
		Estado:    snap.Estado.String(),
		Mesa:      snap.Mesa,
		Carrito:   make([]dto.LineaCarritoResponse, len(snap.Lineas)),
		Subtotal:  snap.Subtotal,
		Descuento: snap.Descuento,
		Total:     snap.Total,
	}
	if snap.Cliente != nil {
		resp.Cliente = &dto.ClienteResumen{
			ID:             snap.Cliente.ID.String(),
			NombreCompleto: snap.Cliente.NombreCompleto,
			Descuento:      snap.Cliente.Descuento,
		}
	}
	for i, l := range snap.Lineas {
		resp.Carrito[i] = dto.LineaCarritoResponse{
			Tipo:        string(l.Tipo),
			ProductoID:  l.ProductoID.String(),
			Nombre:      l.Nombre,
			Cantidad:    l.Cantidad,
			PrecioVenta: l.PrecioVenta,
			Subtotal:    l.Subtotal(),
		}
	}
	return resp
}
