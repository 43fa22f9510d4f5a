package model

import (
	"time"

	"github.com/google/uuid"
)

// SesionAnonima is a device-bound anonymous identity. Its ID is the owner id
// stamped on every record the device creates.
type SesionAnonima struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SecretHash string    `gorm:"not null"`
	LastSeenAt time.Time
	CreatedAt  time.Time
}

// TableName overrides GORM's default pluralization.
func (SesionAnonima) TableName() string { return "sesiones_anonimas" }
