package repository

import (
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ErrStockNegativo is returned by the conditional stock updates when applying
// the delta would leave the on-hand quantity below zero.
var ErrStockNegativo = errors.New("la operacion dejaria el stock en negativo")

// pgUniqueViolation is the SQLSTATE for unique_violation.
const pgUniqueViolation = "23505"

// IsUniqueViolation reports whether err comes from a violated unique index.
func IsUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

// IsNotFound reports whether err means the row does not exist for this owner.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// Rango bounds a query by a timestamp column. Nil ends are open.
type Rango struct {
	Desde *time.Time
	Hasta *time.Time
}

func (r Rango) apply(q *gorm.DB, column string) *gorm.DB {
	if r.Desde != nil {
		q = q.Where(column+" >= ?", *r.Desde)
	}
	if r.Hasta != nil {
		q = q.Where(column+" <= ?", *r.Hasta)
	}
	return q
}
