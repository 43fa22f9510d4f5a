package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Cliente is a registered customer. Descuento is a percentage (0-100) applied
// to the cart total when the client is attached to a table.
type Cliente struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	NombreCompleto string          `gorm:"index;not null"`
	CI             string          `gorm:"column:ci;not null"`
	Telefono       string          `gorm:"not null"`
	Instagram      *string
	Descuento      decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	Codigo         string          `gorm:"type:varchar(6);not null"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
