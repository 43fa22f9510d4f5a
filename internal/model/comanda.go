package model

import (
	"time"

	"github.com/google/uuid"
)

// ComandaPendiente is the parked cart of a table. One row per (owner, mesa);
// it is upserted when the cashier switches tables and deleted by checkout.
type ComandaPendiente struct {
	UserID    uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Mesa      string         `gorm:"primaryKey"`
	Carrito   []LineaCarrito `gorm:"type:jsonb;serializer:json;not null"`
	ClienteID *uuid.UUID     `gorm:"type:uuid"`
	UpdatedAt time.Time
}

// TableName overrides GORM's default pluralization.
func (ComandaPendiente) TableName() string { return "comandas_pendientes" }
