package dto

import "github.com/shopspring/decimal"

type SeleccionarMesaRequest struct {
	Mesa string `json:"mesa" validate:"required,max=40"`
}

// AsignarClienteRequest attaches a client to the current table; null detaches.
type AsignarClienteRequest struct {
	ClienteID *string `json:"cliente_id" validate:"omitempty,uuid"`
}

type AgregarCarritoRequest struct {
	Tipo       string `json:"tipo"        validate:"required,oneof=insumo kit"`
	ProductoID string `json:"producto_id" validate:"required,uuid"`
}

type CheckoutRequest struct {
	Metodo string                     `json:"metodo" validate:"required,oneof=efectivo tarjeta qr transferencia mixto"`
	Pagos  map[string]decimal.Decimal `json:"pagos"`
}

type CatalogoFilter struct {
	Q string `form:"q"`
}

type CatalogoItem struct {
	Tipo       string          `json:"tipo"`
	ID         string          `json:"id"`
	Nombre     string          `json:"nombre"`
	Precio     decimal.Decimal `json:"precio"`
	Disponible decimal.Decimal `json:"disponible"`
}

type LineaCarritoResponse struct {
	Tipo        string          `json:"tipo"`
	ProductoID  string          `json:"producto_id"`
	Nombre      string          `json:"nombre"`
	Cantidad    int             `json:"cantidad"`
	PrecioVenta decimal.Decimal `json:"precio_venta"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

type ClienteResumen struct {
	ID             string          `json:"id"`
	NombreCompleto string          `json:"nombre_completo"`
	Descuento      decimal.Decimal `json:"descuento"`
}

// SesionPOSResponse is the full state of the point-of-sale session.
type SesionPOSResponse struct {
	Estado    string                 `json:"estado"`
	Mesa      string                 `json:"mesa"`
	Cliente   *ClienteResumen        `json:"cliente"`
	Carrito   []LineaCarritoResponse `json:"carrito"`
	Subtotal  decimal.Decimal        `json:"subtotal"`
	Descuento decimal.Decimal        `json:"descuento"`
	Total     decimal.Decimal        `json:"total"`
}

type MesaResponse struct {
	Nombre       string `json:"nombre"`
	Seleccionada bool   `json:"seleccionada"`
	Pendiente    bool   `json:"pendiente"` // has a parked comanda
}

type CheckoutResponse struct {
	Venta  VentaResponse   `json:"venta"`
	Vuelto decimal.Decimal `json:"vuelto"`
}
