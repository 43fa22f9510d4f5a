package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Métodos de pago.
const (
	MetodoEfectivo      = "efectivo"
	MetodoTarjeta       = "tarjeta"
	MetodoQR            = "qr"
	MetodoTransferencia = "transferencia"
	MetodoMixto         = "mixto"
)

// LineaCarrito is one cart line. It captures the sale price at the moment the
// product was added; later price edits do not change it.
type LineaCarrito struct {
	Tipo        TipoProducto    `json:"tipo"`
	ProductoID  uuid.UUID       `json:"producto_id"`
	Nombre      string          `json:"nombre"`
	Cantidad    int             `json:"cantidad"`
	PrecioVenta decimal.Decimal `json:"precio_venta"`
}

// Subtotal returns cantidad × precio.
func (l LineaCarrito) Subtotal() decimal.Decimal {
	return l.PrecioVenta.Mul(decimal.NewFromInt(int64(l.Cantidad)))
}

// ArticuloVenta is the immutable copy of a cart line stored with the sale.
type ArticuloVenta struct {
	Tipo           TipoProducto    `json:"tipo"`
	ProductoID     uuid.UUID       `json:"producto_id"`
	Nombre         string          `json:"nombre"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

// Pago is the amount received through one payment method.
type Pago struct {
	Metodo string          `json:"metodo"`
	Monto  decimal.Decimal `json:"monto"`
}

// Venta is a completed sale. Created only inside the checkout transaction.
type Venta struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	NumeroTicket int             `gorm:"uniqueIndex;not null"`
	UserID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	Mesa         string          `gorm:"not null"`
	ClienteID    *uuid.UUID      `gorm:"type:uuid;index"`
	Articulos    []ArticuloVenta `gorm:"type:jsonb;serializer:json;not null"`
	Subtotal     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	DescuentoPct decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	Descuento    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Total        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	MetodoPago   string          `gorm:"type:varchar(20);not null"`
	Pagos        []Pago          `gorm:"type:jsonb;serializer:json;not null"`
	Vuelto       decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	CreatedAt    time.Time       `gorm:"index"`
}
