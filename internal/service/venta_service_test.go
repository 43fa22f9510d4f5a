package service_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jassler1/el-refugio-de-las-gibas/internal/infra"
	"github.com/jassler1/el-refugio-de-las-gibas/internal/model"
	"github.com/jassler1/el-refugio-de-las-gibas/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (f *posFixture) venta(numero int) model.Venta {
	v := model.Venta{ID: uuid.New(), UserID: f.owner, NumeroTicket: numero, Mesa: "Mesa 1", Total: d("12"), CreatedAt: time.Now()}
	f.vts.ventas = append(f.vts.ventas, v)
	return v
}

func TestTicketPDF_SirveElArchivoGuardado(t *testing.T) {
	f := newPOS(t)
	v := f.venta(9)
	guardado := []byte("%PDF-1.3 ticket guardado por el worker")
	require.NoError(t, os.WriteFile(infra.TicketPath(f.pdfDir, 9), guardado, 0o644))

	data, err := f.ventas.TicketPDF(context.Background(), f.owner, v.ID)
	require.NoError(t, err)
	assert.Equal(t, guardado, data)
}

func TestTicketPDF_SinArchivoRenderizaYGuarda(t *testing.T) {
	f := newPOS(t)
	v := f.venta(3)

	data, err := f.ventas.TicketPDF(context.Background(), f.owner, v.ID)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(data[:4]))

	_, err = os.Stat(infra.TicketPath(f.pdfDir, 3))
	assert.NoError(t, err, "el ticket queda guardado para la proxima vez")
}

func TestTicketPDF_VentaDeOtroDueno(t *testing.T) {
	f := newPOS(t)
	v := f.venta(1)

	_, err := f.ventas.TicketPDF(context.Background(), uuid.New(), v.ID)
	assert.ErrorIs(t, err, service.ErrNotFound)
}
