// Package pos holds the point-of-sale engine: the per-table cart, payment
// validation and the session state machine that drives table switching and
// checkout. It has no storage of its own; persistence is reached through the
// small interfaces declared in sesion.go.
package pos

import (
	"errors"

	"github.com/jassler1/el-refugio-de-las-gibas/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrLineaNoEncontrada is returned when a cart operation names a product that
// is not in the cart.
var ErrLineaNoEncontrada = errors.New("el producto no esta en el carrito")

var cien = decimal.NewFromInt(100)

// Carrito is an ordered list of cart lines, at most one per product.
// Not safe for concurrent use; Sesion serializes access.
type Carrito struct {
	lineas []model.LineaCarrito
}

// NuevoCarrito builds a cart from previously saved lines.
func NuevoCarrito(lineas []model.LineaCarrito) *Carrito {
	c := &Carrito{lineas: make([]model.LineaCarrito, 0, len(lineas))}
	for _, l := range lineas {
		if l.Cantidad > 0 {
			c.lineas = append(c.lineas, l)
		}
	}
	return c
}

// Lineas returns a copy of the cart lines.
func (c *Carrito) Lineas() []model.LineaCarrito {
	out := make([]model.LineaCarrito, len(c.lineas))
	copy(out, c.lineas)
	return out
}

func (c *Carrito) Vacio() bool { return len(c.lineas) == 0 }

// Agregar adds one unit of p. An existing line for the same product is
// incremented; otherwise a new line captures the current sale price.
func (c *Carrito) Agregar(p model.Vendible) {
	if i := c.indice(p.ProductoID()); i >= 0 {
		c.lineas[i].Cantidad++
		return
	}
	c.lineas = append(c.lineas, model.LineaCarrito{
		Tipo:        p.Tipo(),
		ProductoID:  p.ProductoID(),
		Nombre:      p.ProductoNombre(),
		Cantidad:    1,
		PrecioVenta: p.Precio(),
	})
}

func (c *Carrito) Incrementar(productoID uuid.UUID) error {
	i := c.indice(productoID)
	if i < 0 {
		return ErrLineaNoEncontrada
	}
	c.lineas[i].Cantidad++
	return nil
}

// Decrementar removes one unit; the line disappears when it reaches zero.
func (c *Carrito) Decrementar(productoID uuid.UUID) error {
	i := c.indice(productoID)
	if i < 0 {
		return ErrLineaNoEncontrada
	}
	c.lineas[i].Cantidad--
	if c.lineas[i].Cantidad <= 0 {
		c.lineas = append(c.lineas[:i], c.lineas[i+1:]...)
	}
	return nil
}

func (c *Carrito) Quitar(productoID uuid.UUID) error {
	i := c.indice(productoID)
	if i < 0 {
		return ErrLineaNoEncontrada
	}
	c.lineas = append(c.lineas[:i], c.lineas[i+1:]...)
	return nil
}

// indice finds the line of productoID. Every operation keys lines by product
// id alone: insumo and kit ids are random UUIDs from the same space, so an id
// names one product regardless of its tipo.
func (c *Carrito) indice(productoID uuid.UUID) int {
	for i := range c.lineas {
		if c.lineas[i].ProductoID == productoID {
			return i
		}
	}
	return -1
}

// Totales computes subtotal, discount amount and total for the given lines.
// total = round2(subtotal - subtotal*descuentoPct/100); descuento is the
// difference so that subtotal - descuento == total always holds.
func Totales(lineas []model.LineaCarrito, descuentoPct decimal.Decimal) (subtotal, descuento, total decimal.Decimal) {
	subtotal = decimal.Zero
	for _, l := range lineas {
		subtotal = subtotal.Add(l.Subtotal())
	}
	total = subtotal.Sub(subtotal.Mul(descuentoPct).Div(cien)).Round(2)
	descuento = subtotal.Sub(total)
	return subtotal, descuento, total
}
