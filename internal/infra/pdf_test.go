package infra

import (
	"bytes"
	"os"
	"testing"
	"time"

	"github.com/jassler1/el-refugio-de-las-gibas/internal/model"
	"github.com/jassler1/el-refugio-de-las-gibas/internal/reporte"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ventaDePrueba() *model.Venta {
	return &model.Venta{
		NumeroTicket: 42,
		Mesa:         "Mesa 2",
		CreatedAt:    time.Date(2024, 5, 10, 20, 30, 0, 0, time.UTC),
		Articulos: []model.ArticuloVenta{
			{Nombre: "COCA COLA 2L", Cantidad: 2, PrecioUnitario: decimal.NewFromInt(15), Subtotal: decimal.NewFromInt(30)},
			{Nombre: "COMBO PIÑA COLADA CON NOMBRE MUY LARGO", Cantidad: 1, PrecioUnitario: decimal.NewFromInt(20), Subtotal: decimal.NewFromInt(20)},
		},
		Subtotal:     decimal.NewFromInt(50),
		DescuentoPct: decimal.NewFromInt(10),
		Descuento:    decimal.NewFromInt(5),
		Total:        decimal.NewFromInt(45),
		MetodoPago:   model.MetodoEfectivo,
		Pagos:        []model.Pago{{Metodo: model.MetodoEfectivo, Monto: decimal.NewFromInt(45)}},
		Vuelto:       decimal.NewFromInt(5),
	}
}

func TestRenderTicketPDF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderTicketPDF(&buf, ventaDePrueba(), "El Refugio"))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}

func TestGenerateTicketPDF_EscribeArchivo(t *testing.T) {
	dir := t.TempDir()
	path, err := GenerateTicketPDF(ventaDePrueba(), "El Refugio", dir)
	require.NoError(t, err)
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
	assert.Contains(t, path, "ticket_42.pdf")
}

func TestGenerateReportePDF(t *testing.T) {
	r := reporte.Construir(nil, nil,
		[]model.Venta{*ventaDePrueba()},
		[]model.Egreso{{Tipo: model.EgresoServicio, NombreServicio: "LUZ", QuienPago: "Caja", Total: decimal.NewFromInt(100)}},
		nil,
	)
	data, err := GenerateReportePDF(r, "El Refugio")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}
