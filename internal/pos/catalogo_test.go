package pos

import (
	"testing"

	"github.com/jassler1/el-refugio-de-las-gibas/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogo_FiltraProductosSinPrecio(t *testing.T) {
	sinPrecio := model.Insumo{ID: uuid.New(), Nombre: "HARINA", SinPrecioVenta: true}
	conPrecio := *insumoVendible("COCA COLA", "2")
	kit := model.Kit{ID: uuid.New(), Nombre: "COMBO", PrecioVenta: d("10")}
	kitSinPrecio := model.Kit{ID: uuid.New(), Nombre: "ARMADO", PrecioVenta: d("0")}

	out := Catalogo([]model.Insumo{sinPrecio, conPrecio}, []model.Kit{kit, kitSinPrecio}, "")
	require.Len(t, out, 2)
	assert.Equal(t, "COCA COLA", out[0].ProductoNombre())
	assert.Equal(t, model.TipoInsumo, out[0].Tipo())
	assert.Equal(t, model.TipoKit, out[1].Tipo())
}

func TestCatalogo_FiltroPorNombre(t *testing.T) {
	insumos := []model.Insumo{*insumoVendible("COCA COLA", "2"), *insumoVendible("AGUA", "1")}
	out := Catalogo(insumos, nil, "coca")
	require.Len(t, out, 1)
	assert.Equal(t, "COCA COLA", out[0].ProductoNombre())
}
