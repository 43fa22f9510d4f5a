package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/jassler1/el-refugio-de-las-gibas/internal/feed"
	"github.com/jassler1/el-refugio-de-las-gibas/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// ErrNotFound means the record does not exist for the calling owner.
var ErrNotFound = errors.New("registro no encontrado")

// ValidationError carries field → message pairs for a 422 response.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + e.Fields[k]
	}
	return "validacion: " + strings.Join(parts, "; ")
}

// validacion accumulates field errors; err returns nil when nothing was added.
type validacion map[string]string

func (v validacion) add(campo, msg string) {
	if _, ok := v[campo]; !ok {
		v[campo] = msg
	}
}

func (v validacion) err() error {
	if len(v) == 0 {
		return nil
	}
	return &ValidationError{Fields: v}
}

// StockError aborts a checkout when a line cannot be served.
type StockError struct {
	Producto   string
	Disponible decimal.Decimal
	Requerido  decimal.Decimal
	NoExiste   bool
}

func (e *StockError) Error() string {
	if e.NoExiste {
		return fmt.Sprintf("El documento de inventario para %s no existe", e.Producto)
	}
	return fmt.Sprintf("Cantidad insuficiente para: %s. Disponible: %s", e.Producto, e.Disponible.String())
}

// notFound maps a repository miss to ErrNotFound and passes other errors through.
func notFound(err error) error {
	if repository.IsNotFound(err) {
		return ErrNotFound
	}
	return err
}

// notificar publishes change events after a commit. Failures only delay
// live refreshes, so they are logged and swallowed.
func notificar(ctx context.Context, pub feed.Publisher, owner uuid.UUID, colecciones ...string) {
	if pub == nil {
		return
	}
	for _, c := range colecciones {
		if err := pub.Publicar(ctx, owner, c); err != nil {
			log.Warn().Err(err).Str("coleccion", c).Str("owner", owner.String()).Msg("feed: publish failed")
		}
	}
}

var cien = decimal.NewFromInt(100)

func round2(d decimal.Decimal) decimal.Decimal { return d.Round(2) }
