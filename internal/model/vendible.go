package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TipoProducto distinguishes the two kinds of sellable products.
type TipoProducto string

const (
	TipoInsumo TipoProducto = "insumo"
	TipoKit    TipoProducto = "kit"
)

// Valido reports whether t is one of the known product kinds.
func (t TipoProducto) Valido() bool {
	return t == TipoInsumo || t == TipoKit
}

// Vendible is a product offered at the point of sale. Implemented by *Insumo
// and *Kit.
type Vendible interface {
	ProductoID() uuid.UUID
	ProductoNombre() string
	Precio() decimal.Decimal
	Tipo() TipoProducto
	Disponible() decimal.Decimal
}

var (
	_ Vendible = (*Insumo)(nil)
	_ Vendible = (*Kit)(nil)
)
