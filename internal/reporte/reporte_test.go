package reporte

import (
	"testing"
	"time"

	"github.com/jassler1/el-refugio-de-las-gibas/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestConstruir_GananciaPositiva(t *testing.T) {
	base := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	ventas := []model.Venta{
		{Total: d("100"), CreatedAt: base},
		{Total: d("50.50"), CreatedAt: base.Add(time.Hour)},
	}
	egresos := []model.Egreso{{Total: d("40"), Timestamp: base}}
	gastos := []model.GastoDiario{{Total: d("10.50"), Timestamp: base}}

	r := Construir(nil, nil, ventas, egresos, gastos)

	assert.Equal(t, "150.50", r.TotalVentas.StringFixed(2))
	assert.Equal(t, "50.50", r.Inversion.StringFixed(2))
	assert.Equal(t, "100.00", r.GananciaBruta.StringFixed(2))
	assert.True(t, r.Perdidas.IsZero())
	assert.True(t, r.SaldoNeto.Equal(r.GananciaBruta))

	require.Len(t, r.Ventas, 2)
	assert.True(t, r.Ventas[0].CreatedAt.After(r.Ventas[1].CreatedAt), "mas reciente primero")
	assert.True(t, ventas[0].CreatedAt.Equal(base), "la entrada no se modifica")
}

func TestConstruir_Perdidas(t *testing.T) {
	r := Construir(nil, nil,
		[]model.Venta{{Total: d("20")}},
		[]model.Egreso{{Total: d("30")}},
		[]model.GastoDiario{{Total: d("5")}},
	)
	assert.Equal(t, "-15", r.GananciaBruta.String())
	assert.Equal(t, "15", r.Perdidas.String())
	assert.Equal(t, "-15", r.SaldoNeto.String())
}

func TestConstruir_Vacio(t *testing.T) {
	r := Construir(nil, nil, nil, nil, nil)
	assert.True(t, r.TotalVentas.IsZero())
	assert.True(t, r.SaldoNeto.IsZero())
}

func TestFinDelDia_Inclusivo(t *testing.T) {
	dia := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
	fin := FinDelDia(dia)
	assert.True(t, time.Date(2024, 5, 10, 23, 59, 59, 0, time.UTC).Before(fin))
	assert.True(t, fin.Before(time.Date(2024, 5, 11, 0, 0, 0, 0, time.UTC)))
}

func TestParseFecha(t *testing.T) {
	f, err := ParseFecha("", time.UTC)
	require.NoError(t, err)
	assert.Nil(t, f)

	f, err = ParseFecha("2024-02-29", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, 29, f.Day())

	_, err = ParseFecha("29/02/2024", time.UTC)
	assert.Error(t, err)
}

func TestPaginar(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	page, pages := Paginar(items, 2, 2)
	assert.Equal(t, []int{3, 4}, page)
	assert.Equal(t, 3, pages)

	page, _ = Paginar(items, 3, 2)
	assert.Equal(t, []int{5}, page)

	page, _ = Paginar(items, 9, 2)
	assert.Empty(t, page)

	page, pages = Paginar([]int{}, 1, 100)
	assert.Empty(t, page)
	assert.Equal(t, 0, pages)
}
