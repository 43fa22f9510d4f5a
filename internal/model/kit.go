package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// KitComponente is one insumo requirement inside a kit. Stored as JSONB.
type KitComponente struct {
	InsumoID     uuid.UUID       `json:"insumo_id"`
	NombreInsumo string          `json:"nombre_insumo"`
	Cantidad     decimal.Decimal `json:"cantidad"`
}

// Kit is a bundle of insumos sold as a single product.
// MaxKitsPosibles and InsumoLimitante are a snapshot taken when the kit was
// created (or explicitly recalculated); they are not refreshed on stock changes.
type Kit struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	Nombre          string          `gorm:"index;not null"`
	Componentes     []KitComponente `gorm:"type:jsonb;serializer:json;not null"`
	CostoCompra     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PrecioVenta     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	GananciaPct     decimal.Decimal `gorm:"type:decimal(7,2);not null;default:0"`
	Ganancia        decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Cantidad        int             `gorm:"not null;default:0"`
	MaxKitsPosibles int             `gorm:"not null;default:0"`
	InsumoLimitante string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (k *Kit) ProductoID() uuid.UUID       { return k.ID }
func (k *Kit) ProductoNombre() string      { return k.Nombre }
func (k *Kit) Tipo() TipoProducto          { return TipoKit }
func (k *Kit) Precio() decimal.Decimal     { return k.PrecioVenta }
func (k *Kit) Disponible() decimal.Decimal { return decimal.NewFromInt(int64(k.Cantidad)) }

// ReferenciaInsumo reports whether the kit lists id among its components.
func (k *Kit) ReferenciaInsumo(id uuid.UUID) bool {
	for _, c := range k.Componentes {
		if c.InsumoID == id {
			return true
		}
	}
	return false
}
