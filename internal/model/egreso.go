package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	EgresoProducto = "producto"
	EgresoServicio = "servicio"
)

// ArticuloEgreso is one line of a supplier invoice.
type ArticuloEgreso struct {
	Descripcion string          `json:"descripcion"`
	Cantidad    decimal.Decimal `json:"cantidad"`
	Total       decimal.Decimal `json:"total"`
}

// Egreso is a business expense: either a supplier invoice (tipo producto,
// total = sum of its articulos) or a service payment (tipo servicio).
type Egreso struct {
	ID             uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID         uuid.UUID        `gorm:"type:uuid;not null;index"`
	Tipo           string           `gorm:"type:varchar(10);not null"`
	NumeroFactura  string
	NombreServicio string
	QuienPago      string           `gorm:"not null"`
	Articulos      []ArticuloEgreso `gorm:"type:jsonb;serializer:json"`
	Descripcion    string
	Total          decimal.Decimal  `gorm:"type:decimal(12,2);not null"`
	Timestamp      time.Time        `gorm:"index;not null"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
