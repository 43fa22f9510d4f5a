package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Unidades de medida aceptadas para un insumo.
const (
	UnidadKG     = "KG"
	UnidadGR     = "GR"
	UnidadLTS    = "LTS"
	UnidadUnidad = "UNIDAD"
	UnidadML     = "ML"
)

// Insumo is a supply item: raw stock that can be sold directly (when it has a
// sale price) or consumed as a kit component.
// Ganancia is stored as a fraction (0.25 = 25%). When SinPrecioVenta is true
// both Ganancia and CostoVenta are NULL.
type Insumo struct {
	ID             uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID         uuid.UUID        `gorm:"type:uuid;not null;index;uniqueIndex:idx_insumos_owner_codigo"`
	Codigo         string           `gorm:"not null;uniqueIndex:idx_insumos_owner_codigo"`
	Nombre         string           `gorm:"index;not null"`
	Categoria      string           `gorm:"not null"`
	Cantidad       decimal.Decimal  `gorm:"type:decimal(12,3);not null;default:0"`
	StockMinimo    decimal.Decimal  `gorm:"type:decimal(12,3);not null;default:0"`
	UnidadMedida   string           `gorm:"type:varchar(10);not null;default:'UNIDAD'"`
	CostoCompra    decimal.Decimal  `gorm:"type:decimal(12,2);not null"`
	Ganancia       *decimal.Decimal `gorm:"type:decimal(7,4)"`
	CostoVenta     *decimal.Decimal `gorm:"type:decimal(12,2)"`
	SinPrecioVenta bool             `gorm:"not null;default:false"`
	// PrecioManual marks CostoVenta as typed by the user instead of derived from Ganancia.
	PrecioManual bool   `gorm:"not null;default:false"`
	Proveedor    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Precio returns the sale price, zero when the item is not sold directly.
func (i *Insumo) Precio() decimal.Decimal {
	if i.SinPrecioVenta || i.CostoVenta == nil {
		return decimal.Zero
	}
	return *i.CostoVenta
}

func (i *Insumo) ProductoID() uuid.UUID       { return i.ID }
func (i *Insumo) ProductoNombre() string      { return i.Nombre }
func (i *Insumo) Tipo() TipoProducto          { return TipoInsumo }
func (i *Insumo) Disponible() decimal.Decimal { return i.Cantidad }

// StockBajo reports whether the on-hand quantity reached the alert threshold.
func (i *Insumo) StockBajo() bool {
	return i.Cantidad.LessThanOrEqual(i.StockMinimo)
}
