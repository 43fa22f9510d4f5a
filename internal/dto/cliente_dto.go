package dto

import "github.com/shopspring/decimal"

type CrearClienteRequest struct {
	NombreCompleto string          `json:"nombre_completo" validate:"required,max=120"`
	CI             string          `json:"ci"              validate:"required,numeric,max=20"`
	Telefono       string          `json:"telefono"        validate:"required,numeric,max=20"`
	Instagram      *string         `json:"instagram"       validate:"omitempty,max=60"`
	Descuento      decimal.Decimal `json:"descuento"       validate:"min=0,max=100"`
}

type ActualizarClienteRequest struct {
	NombreCompleto *string          `json:"nombre_completo" validate:"omitempty,min=1,max=120"`
	CI             *string          `json:"ci"              validate:"omitempty,numeric,max=20"`
	Telefono       *string          `json:"telefono"        validate:"omitempty,numeric,max=20"`
	Instagram      *string          `json:"instagram"       validate:"omitempty,max=60"`
	Descuento      *decimal.Decimal `json:"descuento"`
}

// ClienteFilter matches by name or CI substring.
type ClienteFilter struct {
	Q string `form:"q"`
}

type ClienteResponse struct {
	ID             string          `json:"id"`
	NombreCompleto string          `json:"nombre_completo"`
	CI             string          `json:"ci"`
	Telefono       string          `json:"telefono"`
	Instagram      *string         `json:"instagram"`
	Descuento      decimal.Decimal `json:"descuento"`
	Codigo         string          `json:"codigo"`
	TotalGastado   decimal.Decimal `json:"total_gastado"`
	CreatedAt      string          `json:"created_at"`
}

type TopConsumidorResponse struct {
	ClienteID      string          `json:"cliente_id"`
	NombreCompleto string          `json:"nombre_completo"`
	Codigo         string          `json:"codigo"`
	TotalGastado   decimal.Decimal `json:"total_gastado"`
}
