package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type ArticuloEgresoRequest struct {
	Descripcion string          `json:"descripcion" validate:"required,max=200"`
	Cantidad    decimal.Decimal `json:"cantidad"`
	Total       decimal.Decimal `json:"total"`
}

// CrearEgresoRequest covers both kinds of expense. Tipo producto needs
// NumeroFactura and Articulos; tipo servicio needs NombreServicio and Total.
type CrearEgresoRequest struct {
	Tipo           string                  `json:"tipo"            validate:"required,oneof=producto servicio"`
	NumeroFactura  string                  `json:"numero_factura"  validate:"max=60"`
	NombreServicio string                  `json:"nombre_servicio" validate:"max=120"`
	QuienPago      string                  `json:"quien_pago"      validate:"required,max=120"`
	Articulos      []ArticuloEgresoRequest `json:"articulos"       validate:"omitempty,dive"`
	Total          *decimal.Decimal        `json:"total"`
	Descripcion    string                  `json:"descripcion"     validate:"max=500"`
	Fecha          *time.Time              `json:"fecha"`
}

type ActualizarEgresoRequest struct {
	NumeroFactura  *string          `json:"numero_factura"  validate:"omitempty,max=60"`
	NombreServicio *string          `json:"nombre_servicio" validate:"omitempty,max=120"`
	QuienPago      *string          `json:"quien_pago"      validate:"omitempty,min=1,max=120"`
	Total          *decimal.Decimal `json:"total"`
	Descripcion    *string          `json:"descripcion"     validate:"omitempty,max=500"`
}

// EgresoFilter is bound from the query string of GET /v1/egresos.
type EgresoFilter struct {
	QuienPago string `form:"quien_pago"`
	Tipo      string `form:"tipo"  validate:"omitempty,oneof=producto servicio"`
	SoloHoy   bool   `form:"solo_hoy"`
	Desde     string `form:"desde"` // YYYY-MM-DD
	Hasta     string `form:"hasta"` // YYYY-MM-DD, inclusive
	Page      int    `form:"page,default=1"    validate:"min=1"`
	Limit     int    `form:"limit,default=100" validate:"min=1,max=500"`
}

type ArticuloEgresoResponse struct {
	Descripcion string          `json:"descripcion"`
	Cantidad    decimal.Decimal `json:"cantidad"`
	Total       decimal.Decimal `json:"total"`
}

type EgresoResponse struct {
	ID             string                   `json:"id"`
	Tipo           string                   `json:"tipo"`
	NumeroFactura  string                   `json:"numero_factura,omitempty"`
	NombreServicio string                   `json:"nombre_servicio,omitempty"`
	QuienPago      string                   `json:"quien_pago"`
	Articulos      []ArticuloEgresoResponse `json:"articulos,omitempty"`
	Descripcion    string                   `json:"descripcion"`
	Total          decimal.Decimal          `json:"total"`
	Timestamp      string                   `json:"timestamp"`
}

// EgresoListResponse carries one page plus the sum over every filtered row.
type EgresoListResponse struct {
	Data       []EgresoResponse `json:"data"`
	TotalMonto decimal.Decimal  `json:"total_monto"`
	Count      int              `json:"count"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	Pages      int              `json:"pages"`
}
