package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type ProductoGastoRequest struct {
	Nombre   string          `json:"nombre"   validate:"required,max=120"`
	Precio   decimal.Decimal `json:"precio"`
	Cantidad decimal.Decimal `json:"cantidad"`
}

type CrearGastoRequest struct {
	NumeroFactura string                 `json:"numero_factura" validate:"required,max=60"`
	PagadoPor     string                 `json:"pagado_por"     validate:"required,max=120"`
	Productos     []ProductoGastoRequest `json:"productos"      validate:"required,min=1,dive"`
	FechaHora     *time.Time             `json:"fecha_hora"`
}

// ActualizarGastoRequest replaces the given fields; Productos, when present,
// replaces the whole list and the total is recomputed.
type ActualizarGastoRequest struct {
	NumeroFactura *string                `json:"numero_factura" validate:"omitempty,min=1,max=60"`
	PagadoPor     *string                `json:"pagado_por"     validate:"omitempty,min=1,max=120"`
	Productos     []ProductoGastoRequest `json:"productos"      validate:"omitempty,min=1,dive"`
}

// GastoFilter is bound from the query string of GET /v1/gastos-diarios.
// SoloHoy defaults to true when omitted.
type GastoFilter struct {
	Producto string `form:"producto"`
	SoloHoy  *bool  `form:"solo_hoy"`
}

type ProductoGastoResponse struct {
	Nombre   string          `json:"nombre"`
	Precio   decimal.Decimal `json:"precio"`
	Cantidad decimal.Decimal `json:"cantidad"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

type GastoResponse struct {
	ID            string                  `json:"id"`
	NumeroFactura string                  `json:"numero_factura"`
	Productos     []ProductoGastoResponse `json:"productos"`
	Total         decimal.Decimal         `json:"total"`
	PagadoPor     string                  `json:"pagado_por"`
	Timestamp     string                  `json:"timestamp"`
}

type GastoListResponse struct {
	Data       []GastoResponse `json:"data"`
	TotalMonto decimal.Decimal `json:"total_monto"`
}
