package dto

import "github.com/shopspring/decimal"

// ─── Filter / List ──────────────────────────────────────────────────────────

// VentaFilter is bound from query string of GET /v1/ventas.
type VentaFilter struct {
	Desde string `form:"desde"` // YYYY-MM-DD; empty = today
	Hasta string `form:"hasta"` // YYYY-MM-DD, inclusive
	Page  int    `form:"page,default=1"   validate:"min=1"`
	Limit int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type VentaListResponse struct {
	Data  []VentaResponse `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ArticuloVentaResponse struct {
	Tipo           string          `json:"tipo"`
	ProductoID     string          `json:"producto_id"`
	Nombre         string          `json:"nombre"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

type PagoResponse struct {
	Metodo string          `json:"metodo"`
	Monto  decimal.Decimal `json:"monto"`
}

type VentaResponse struct {
	ID           string                  `json:"id"`
	NumeroTicket int                     `json:"numero_ticket"`
	Mesa         string                  `json:"mesa"`
	ClienteID    *string                 `json:"cliente_id"`
	Articulos    []ArticuloVentaResponse `json:"articulos"`
	Subtotal     decimal.Decimal         `json:"subtotal"`
	DescuentoPct decimal.Decimal         `json:"descuento_pct"`
	Descuento    decimal.Decimal         `json:"descuento"`
	Total        decimal.Decimal         `json:"total"`
	MetodoPago   string                  `json:"metodo_pago"`
	Pagos        []PagoResponse          `json:"pagos"`
	Vuelto       decimal.Decimal         `json:"vuelto"`
	CreatedAt    string                  `json:"created_at"`
}
