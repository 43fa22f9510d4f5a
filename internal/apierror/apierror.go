// Package apierror holds the JSON bodies of every 4xx/5xx response. Handlers
// build errors here so clients always see the same envelope and never a
// driver or stack message.
package apierror

import "github.com/shopspring/decimal"

// MensajeInterno is the only text a client gets for an unexpected failure.
const MensajeInterno = "Error interno del servidor"

// APIError is the base envelope: {"detail": "..."}.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// Interno is the body of every 500.
func Interno() *APIError { return New(MensajeInterno) }

// ValidationError lists the offending fields, keyed by field name.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Error de validacion", Fields: fields}
}

// StockError tells the cashier which product blocked the checkout and how
// much of it is left, so the cart can be corrected without a reload.
type StockError struct {
	Detail     string          `json:"detail"`
	Producto   string          `json:"producto"`
	Disponible decimal.Decimal `json:"disponible"`
}

func NewStock(msg, producto string, disponible decimal.Decimal) *StockError {
	return &StockError{Detail: msg, Producto: producto, Disponible: disponible}
}
