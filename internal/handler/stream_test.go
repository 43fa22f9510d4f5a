package handler

import (
	"testing"

	"github.com/jassler1/el-refugio-de-las-gibas/internal/feed"

	"github.com/stretchr/testify/assert"
)

func TestParseColecciones(t *testing.T) {
	cols, invalida := parseColecciones("")
	assert.Empty(t, invalida)
	assert.Equal(t, feed.Todas, cols)

	cols, invalida = parseColecciones(" insumos, kits ,insumos,")
	assert.Empty(t, invalida)
	assert.Equal(t, []string{feed.Insumos, feed.Kits}, cols)

	_, invalida = parseColecciones("insumos,usuarios")
	assert.Equal(t, "usuarios", invalida)

	cols, _ = parseColecciones(",,")
	assert.Equal(t, feed.Todas, cols)
}

func TestCanalesPara_IncludesSources(t *testing.T) {
	assert.Equal(t, []string{feed.Insumos}, canalesPara([]string{feed.Insumos}))
	assert.Equal(t, []string{feed.Clientes, feed.Ventas, feed.Kits},
		canalesPara([]string{feed.Clientes, feed.Ventas, feed.Kits}))
}

func TestAfectadas_ClientesFollowVentas(t *testing.T) {
	pedidas := []string{feed.Clientes, feed.Insumos}
	assert.Equal(t, []string{feed.Clientes}, afectadas(pedidas, feed.Ventas))
	assert.Equal(t, []string{feed.Insumos}, afectadas(pedidas, feed.Insumos))
	assert.Empty(t, afectadas(pedidas, feed.Kits))
}
