package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductoGasto is one purchased item of a daily expense.
type ProductoGasto struct {
	Nombre   string          `json:"nombre"`
	Precio   decimal.Decimal `json:"precio"`
	Cantidad decimal.Decimal `json:"cantidad"`
}

// GastoDiario is a small day-to-day purchase paid by one of the configured payers.
type GastoDiario struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	NumeroFactura string          `gorm:"not null"`
	Productos     []ProductoGasto `gorm:"type:jsonb;serializer:json;not null"`
	Total         decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PagadoPor     string          `gorm:"not null"`
	Timestamp     time.Time       `gorm:"index;not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName overrides GORM's default pluralization (gasto_diarios → gastos_diarios).
func (GastoDiario) TableName() string { return "gastos_diarios" }
