package pos

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/jassler1/el-refugio-de-las-gibas/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrSinMesa      = errors.New("seleccione una mesa primero")
	ErrCarritoVacio = errors.New("el carrito esta vacio")
	ErrPagoEnCurso  = errors.New("hay un pago en curso para esta mesa")
)

// Estado is the state of a point-of-sale session.
type Estado int

const (
	SinMesa Estado = iota
	MesaVacia
	MesaConItems
	PagoEnCurso
)

func (e Estado) String() string {
	switch e {
	case SinMesa:
		return "sin_mesa"
	case MesaVacia:
		return "mesa_vacia"
	case MesaConItems:
		return "mesa_con_items"
	case PagoEnCurso:
		return "pago_en_curso"
	default:
		return "desconocido"
	}
}

// ComandaStore persists the parked cart of each table.
type ComandaStore interface {
	Guardar(ctx context.Context, mesa string, carrito []model.LineaCarrito, clienteID *uuid.UUID) error
	// Cargar returns an empty cart and nil client when the table has no comanda.
	Cargar(ctx context.Context, mesa string) ([]model.LineaCarrito, *uuid.UUID, error)
}

// ClienteResolver looks up the client attached to a comanda. A client that no
// longer exists resolves to nil without error.
type ClienteResolver interface {
	Cliente(ctx context.Context, id uuid.UUID) (*model.Cliente, error)
}

// Registrador runs the atomic checkout against the store.
type Registrador interface {
	Registrar(ctx context.Context, p Pedido) (*model.Venta, error)
}

// Pedido is everything the store needs to record a sale.
type Pedido struct {
	Mesa         string
	ClienteID    *uuid.UUID
	Lineas       []model.LineaCarrito
	Subtotal     decimal.Decimal
	DescuentoPct decimal.Decimal
	Descuento    decimal.Decimal
	Total        decimal.Decimal
	Metodo       string
	Pagos        []model.Pago
	Vuelto       decimal.Decimal
}

// Snapshot is a read-only copy of the session state.
type Snapshot struct {
	Estado    Estado
	Mesa      string
	Cliente   *model.Cliente
	Lineas    []model.LineaCarrito
	Subtotal  decimal.Decimal
	Descuento decimal.Decimal
	Total     decimal.Decimal
}

// Sesion is the point-of-sale state machine of one terminal:
//
//	SinMesa --SeleccionarMesa--> MesaVacia | MesaConItems
//	MesaVacia --Agregar--> MesaConItems
//	MesaConItems --Decrementar/Quitar (last line)--> MesaVacia
//	MesaConItems --Checkout--> PagoEnCurso --ok--> SinMesa
//	                                       --error--> MesaConItems
//
// Local state changes only after the store confirmed the operation.
type Sesion struct {
	mu          sync.Mutex
	comandas    ComandaStore
	clientes    ClienteResolver
	registrador Registrador

	mesas   []string
	mesa    string
	carrito *Carrito
	cliente *model.Cliente
	pagando bool
}

// NuevaSesion creates a session with tables "Mesa 1".."Mesa n".
func NuevaSesion(comandas ComandaStore, clientes ClienteResolver, registrador Registrador, mesasIniciales int) *Sesion {
	s := &Sesion{
		comandas:    comandas,
		clientes:    clientes,
		registrador: registrador,
		carrito:     NuevoCarrito(nil),
	}
	for i := 1; i <= mesasIniciales; i++ {
		s.mesas = append(s.mesas, nombreMesa(i))
	}
	return s
}

func nombreMesa(n int) string { return fmt.Sprintf("Mesa %d", n) }

func (s *Sesion) estadoLocked() Estado {
	switch {
	case s.pagando:
		return PagoEnCurso
	case s.mesa == "":
		return SinMesa
	case s.carrito.Vacio():
		return MesaVacia
	default:
		return MesaConItems
	}
}

func (s *Sesion) Estado() Estado {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.estadoLocked()
}

func (s *Sesion) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	lineas := s.carrito.Lineas()
	subtotal, descuento, total := Totales(lineas, s.descuentoLocked())
	return Snapshot{
		Estado:    s.estadoLocked(),
		Mesa:      s.mesa,
		Cliente:   s.cliente,
		Lineas:    lineas,
		Subtotal:  subtotal,
		Descuento: descuento,
		Total:     total,
	}
}

func (s *Sesion) descuentoLocked() decimal.Decimal {
	if s.cliente == nil {
		return decimal.Zero
	}
	return s.cliente.Descuento
}

// Mesas returns the known tables in creation order.
func (s *Sesion) Mesas() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.mesas))
	copy(out, s.mesas)
	return out
}

// AgregarMesa registers the next "Mesa N" and returns its name.
func (s *Sesion) AgregarMesa() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.mesas) + 1
	for s.tieneMesaLocked(nombreMesa(n)) {
		n++
	}
	nombre := nombreMesa(n)
	s.mesas = append(s.mesas, nombre)
	return nombre
}

func (s *Sesion) tieneMesaLocked(mesa string) bool {
	for _, m := range s.mesas {
		if m == mesa {
			return true
		}
	}
	return false
}

// SeleccionarMesa parks the current table's cart and client as its comanda
// and loads the comanda of mesa. Selecting the current table is a no-op.
func (s *Sesion) SeleccionarMesa(ctx context.Context, mesa string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pagando {
		return ErrPagoEnCurso
	}
	if mesa == s.mesa {
		return nil
	}

	if s.mesa != "" {
		if err := s.comandas.Guardar(ctx, s.mesa, s.carrito.Lineas(), s.clienteIDLocked()); err != nil {
			return fmt.Errorf("guardar comanda de %s: %w", s.mesa, err)
		}
	}

	lineas, clienteID, err := s.comandas.Cargar(ctx, mesa)
	if err != nil {
		return fmt.Errorf("cargar comanda de %s: %w", mesa, err)
	}
	var cliente *model.Cliente
	if clienteID != nil && s.clientes != nil {
		cliente, err = s.clientes.Cliente(ctx, *clienteID)
		if err != nil {
			return fmt.Errorf("cargar cliente de %s: %w", mesa, err)
		}
	}

	s.mesa = mesa
	s.carrito = NuevoCarrito(lineas)
	s.cliente = cliente
	if !s.tieneMesaLocked(mesa) {
		s.mesas = append(s.mesas, mesa)
	}
	return nil
}

func (s *Sesion) clienteIDLocked() *uuid.UUID {
	if s.cliente == nil {
		return nil
	}
	id := s.cliente.ID
	return &id
}

// AsignarCliente attaches c to the current table; nil detaches.
func (s *Sesion) AsignarCliente(c *model.Cliente) error {
	return s.mutar(func() error {
		s.cliente = c
		return nil
	})
}

func (s *Sesion) Agregar(p model.Vendible) error {
	return s.mutar(func() error {
		s.carrito.Agregar(p)
		return nil
	})
}

func (s *Sesion) Incrementar(productoID uuid.UUID) error {
	return s.mutar(func() error { return s.carrito.Incrementar(productoID) })
}

func (s *Sesion) Decrementar(productoID uuid.UUID) error {
	return s.mutar(func() error { return s.carrito.Decrementar(productoID) })
}

func (s *Sesion) Quitar(productoID uuid.UUID) error {
	return s.mutar(func() error { return s.carrito.Quitar(productoID) })
}

// mutar runs fn under the lock when a table is selected and no payment is running.
func (s *Sesion) mutar(fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pagando {
		return ErrPagoEnCurso
	}
	if s.mesa == "" {
		return ErrSinMesa
	}
	return fn()
}

// Checkout validates the payment, then hands the order to the Registrador.
// On success the session returns to SinMesa; on any error the table, cart
// and client are left exactly as they were.
func (s *Sesion) Checkout(ctx context.Context, metodo string, montos map[string]decimal.Decimal) (*model.Venta, error) {
	s.mu.Lock()
	if s.pagando {
		s.mu.Unlock()
		return nil, ErrPagoEnCurso
	}
	if s.mesa == "" {
		s.mu.Unlock()
		return nil, ErrSinMesa
	}
	if s.carrito.Vacio() {
		s.mu.Unlock()
		return nil, ErrCarritoVacio
	}

	lineas := s.carrito.Lineas()
	descuentoPct := s.descuentoLocked()
	subtotal, descuento, total := Totales(lineas, descuentoPct)
	pagos, vuelto, err := ValidarPago(metodo, montos, total)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}

	pedido := Pedido{
		Mesa:         s.mesa,
		ClienteID:    s.clienteIDLocked(),
		Lineas:       lineas,
		Subtotal:     subtotal,
		DescuentoPct: descuentoPct,
		Descuento:    descuento,
		Total:        total,
		Metodo:       metodo,
		Pagos:        pagos,
		Vuelto:       vuelto,
	}
	s.pagando = true
	s.mu.Unlock()

	venta, err := s.registrador.Registrar(ctx, pedido)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.pagando = false
	if err != nil {
		return nil, err
	}
	s.mesa = ""
	s.carrito = NuevoCarrito(nil)
	s.cliente = nil
	return venta, nil
}
