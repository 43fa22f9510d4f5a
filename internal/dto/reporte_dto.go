package dto

import "github.com/shopspring/decimal"

// ReporteFilter selects the period of the consolidated report. Empty bounds
// mean "since the beginning" / "until now".
type ReporteFilter struct {
	Desde string `form:"desde" json:"desde"` // YYYY-MM-DD
	Hasta string `form:"hasta" json:"hasta"` // YYYY-MM-DD, inclusive
}

type ReporteTotalResponse struct {
	Desde         string           `json:"desde"`
	Hasta         string           `json:"hasta"`
	TotalVentas   decimal.Decimal  `json:"total_ventas"`
	TotalEgresos  decimal.Decimal  `json:"total_egresos"`
	TotalGastos   decimal.Decimal  `json:"total_gastos"`
	Inversion     decimal.Decimal  `json:"inversion"`
	GananciaBruta decimal.Decimal  `json:"ganancia_bruta"`
	Perdidas      decimal.Decimal  `json:"perdidas"`
	SaldoNeto     decimal.Decimal  `json:"saldo_neto"`
	Ventas        []VentaResponse  `json:"ventas"`
	Egresos       []EgresoResponse `json:"egresos"`
	Gastos        []GastoResponse  `json:"gastos"`
}

type EnviarReporteRequest struct {
	Email string `json:"email" validate:"required,email"`
	Desde string `json:"desde" validate:"omitempty,datetime=2006-01-02"`
	Hasta string `json:"hasta" validate:"omitempty,datetime=2006-01-02"`
}
