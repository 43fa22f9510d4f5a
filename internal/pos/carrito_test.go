package pos

import (
	"testing"

	"github.com/jassler1/el-refugio-de-las-gibas/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func insumoVendible(nombre, precio string) *model.Insumo {
	p := d(precio)
	return &model.Insumo{ID: uuid.New(), Nombre: nombre, CostoVenta: &p, Cantidad: d("10")}
}

func TestCarrito_AgregarMismoProductoIncrementa(t *testing.T) {
	c := NuevoCarrito(nil)
	coca := insumoVendible("COCA COLA", "2")

	c.Agregar(coca)
	c.Agregar(coca)

	lineas := c.Lineas()
	require.Len(t, lineas, 1)
	assert.Equal(t, 2, lineas[0].Cantidad)
	assert.True(t, d("2").Equal(lineas[0].PrecioVenta))
	assert.Equal(t, model.TipoInsumo, lineas[0].Tipo)
}

func TestCarrito_PrecioCapturadoAlAgregar(t *testing.T) {
	c := NuevoCarrito(nil)
	coca := insumoVendible("COCA COLA", "2")
	c.Agregar(coca)

	nuevo := d("3")
	coca.CostoVenta = &nuevo
	c.Agregar(coca)

	lineas := c.Lineas()
	require.Len(t, lineas, 1)
	assert.True(t, d("2").Equal(lineas[0].PrecioVenta), "el precio de la linea no debe cambiar")
}

func TestCarrito_DecrementarHastaCeroQuitaLinea(t *testing.T) {
	c := NuevoCarrito(nil)
	coca := insumoVendible("COCA COLA", "2")
	c.Agregar(coca)

	require.NoError(t, c.Decrementar(coca.ID))
	assert.True(t, c.Vacio())
	assert.ErrorIs(t, c.Decrementar(coca.ID), ErrLineaNoEncontrada)
}

func TestCarrito_QuitarEIncrementar(t *testing.T) {
	c := NuevoCarrito(nil)
	a := insumoVendible("A", "1")
	b := insumoVendible("B", "1")
	c.Agregar(a)
	c.Agregar(b)

	require.NoError(t, c.Incrementar(b.ID))
	require.NoError(t, c.Quitar(a.ID))

	lineas := c.Lineas()
	require.Len(t, lineas, 1)
	assert.Equal(t, b.ID, lineas[0].ProductoID)
	assert.Equal(t, 2, lineas[0].Cantidad)
	assert.ErrorIs(t, c.Quitar(a.ID), ErrLineaNoEncontrada)
}

func TestCarrito_KitYInsumoSeUbicanPorID(t *testing.T) {
	c := NuevoCarrito(nil)
	coca := insumoVendible("COCA", "2")
	combo := &model.Kit{ID: uuid.New(), Nombre: "COMBO", PrecioVenta: d("10"), Cantidad: 5}
	c.Agregar(coca)
	c.Agregar(combo)
	c.Agregar(combo)

	require.NoError(t, c.Incrementar(combo.ID))
	require.NoError(t, c.Decrementar(coca.ID))

	lineas := c.Lineas()
	require.Len(t, lineas, 1)
	assert.Equal(t, model.TipoKit, lineas[0].Tipo)
	assert.Equal(t, 3, lineas[0].Cantidad)

	require.NoError(t, c.Quitar(combo.ID))
	assert.True(t, c.Vacio())
}

func TestCarrito_LineasEsCopia(t *testing.T) {
	c := NuevoCarrito(nil)
	c.Agregar(insumoVendible("A", "1"))
	lineas := c.Lineas()
	lineas[0].Cantidad = 99
	assert.Equal(t, 1, c.Lineas()[0].Cantidad)
}

func TestTotales_ConDescuento(t *testing.T) {
	lineas := []model.LineaCarrito{
		{Cantidad: 10, PrecioVenta: d("2")},
		{Cantidad: 5, PrecioVenta: d("1")},
	}
	subtotal, descuento, total := Totales(lineas, d("10"))
	assert.Equal(t, "25.00", subtotal.StringFixed(2))
	assert.Equal(t, "2.50", descuento.StringFixed(2))
	assert.Equal(t, "22.50", total.StringFixed(2))
}

func TestTotales_RedondeaADosDecimales(t *testing.T) {
	lineas := []model.LineaCarrito{{Cantidad: 1, PrecioVenta: d("9.99")}}
	subtotal, descuento, total := Totales(lineas, d("15"))
	assert.Equal(t, "8.49", total.String())
	assert.True(t, subtotal.Sub(descuento).Equal(total))
}

func TestTotales_CarritoVacio(t *testing.T) {
	_, _, total := Totales(nil, d("50"))
	assert.True(t, total.IsZero())
}
