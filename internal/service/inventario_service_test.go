package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jassler1/el-refugio-de-las-gibas/internal/dto"
	"github.com/jassler1/el-refugio-de-las-gibas/internal/model"
	"github.com/jassler1/el-refugio-de-las-gibas/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal   { return decimal.RequireFromString(s) }
func dp(s string) *decimal.Decimal { v := d(s); return &v }

type inventarioFixture struct {
	svc   service.InventarioService
	ins   *stubInsumoRepo
	kits  *stubKitRepo
	vts   *stubVentaRepo
	movs  *stubMovimientoRepo
	pub   *stubPublisher
	owner uuid.UUID
}

func newInventario(insumos ...model.Insumo) *inventarioFixture {
	f := &inventarioFixture{
		ins:   newStubInsumoRepo(insumos...),
		kits:  newStubKitRepo(),
		vts:   &stubVentaRepo{},
		movs:  &stubMovimientoRepo{},
		pub:   &stubPublisher{},
		owner: uuid.New(),
	}
	f.svc = service.NewInventarioService(f.ins, f.kits, f.vts, f.movs, f.pub)
	return f
}

func (f *inventarioFixture) insumo(nombre, codigo, cantidad, costo string) model.Insumo {
	i := model.Insumo{
		ID: uuid.New(), UserID: f.owner, Nombre: nombre, Codigo: codigo, Categoria: "VARIOS",
		Cantidad: d(cantidad), StockMinimo: d("1"), CostoCompra: d(costo), CostoVenta: dp("5"),
	}
	f.ins.insumos[i.ID] = &i
	return i
}

func crearInsumoReq(nombre, categoria string) dto.CrearInsumoRequest {
	return dto.CrearInsumoRequest{
		Nombre:      nombre,
		Categoria:   categoria,
		Cantidad:    dp("10"),
		StockMinimo: dp("2"),
		CostoCompra: d("4"),
		GananciaPct: dp("25"),
	}
}

func TestCrearInsumo_CodigoAguaYPrecio(t *testing.T) {
	f := newInventario()
	f.insumo("VILLA SANTA", "A004", "1", "1")
	f.insumo("OTRA", "A012", "1", "1")

	resp, err := f.svc.CrearInsumo(context.Background(), f.owner, crearInsumoReq("vital", "agua"))
	require.NoError(t, err)

	assert.Equal(t, "A013", resp.Codigo)
	assert.Equal(t, "VITAL", resp.Nombre)
	require.NotNil(t, resp.CostoVenta)
	assert.True(t, d("5").Equal(*resp.CostoVenta))
	require.NotNil(t, resp.GananciaPct)
	assert.True(t, d("25").Equal(*resp.GananciaPct))

	stored := f.ins.insumos[uuid.MustParse(resp.ID)]
	assert.True(t, d("0.25").Equal(*stored.Ganancia), "ganancia is stored as a fraction")
	assert.Contains(t, f.pub.publicados(), "insumos")
}

func TestCrearInsumo_PrecioManualYSinPrecio(t *testing.T) {
	f := newInventario()

	req := crearInsumoReq("hielo", "varios")
	req.PrecioVenta = dp("7.5")
	resp, err := f.svc.CrearInsumo(context.Background(), f.owner, req)
	require.NoError(t, err)
	assert.True(t, d("7.5").Equal(*resp.CostoVenta))

	req = crearInsumoReq("servilletas", "varios")
	req.SinPrecioVenta = true
	req.GananciaPct = nil
	resp, err = f.svc.CrearInsumo(context.Background(), f.owner, req)
	require.NoError(t, err)
	assert.Nil(t, resp.CostoVenta)
	assert.Nil(t, resp.GananciaPct)
}

func TestCrearInsumo_Validacion(t *testing.T) {
	f := newInventario()
	req := crearInsumoReq("", "agua")
	req.Cantidad = dp("-1")
	req.CostoCompra = decimal.Zero
	req.GananciaPct = nil

	_, err := f.svc.CrearInsumo(context.Background(), f.owner, req)

	var ve *service.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Contains(t, ve.Fields, "nombre")
	assert.Contains(t, ve.Fields, "cantidad")
	assert.Contains(t, ve.Fields, "costo_compra")
	assert.Contains(t, ve.Fields, "ganancia")
	assert.Empty(t, f.ins.insumos)
}

func TestCrearInsumo_ReintentaCodigoDuplicado(t *testing.T) {
	f := newInventario()
	f.ins.failCreate = 2

	resp, err := f.svc.CrearInsumo(context.Background(), f.owner, crearInsumoReq("vital", "agua"))
	require.NoError(t, err)
	assert.Equal(t, "A001", resp.Codigo)

	f.ins.failCreate = 3
	_, err = f.svc.CrearInsumo(context.Background(), f.owner, crearInsumoReq("otra", "agua"))
	assert.Error(t, err, "gives up after three collisions")
}

func TestActualizarInsumo_RecalculaPrecio(t *testing.T) {
	f := newInventario()
	resp, err := f.svc.CrearInsumo(context.Background(), f.owner, crearInsumoReq("vital", "agua"))
	require.NoError(t, err)
	id := uuid.MustParse(resp.ID)

	resp, err = f.svc.ActualizarInsumo(context.Background(), f.owner, id, dto.ActualizarInsumoRequest{CostoCompra: dp("8")})
	require.NoError(t, err)
	assert.True(t, d("10").Equal(*resp.CostoVenta), resp.CostoVenta.String())

	sinPrecio := true
	resp, err = f.svc.ActualizarInsumo(context.Background(), f.owner, id, dto.ActualizarInsumoRequest{SinPrecioVenta: &sinPrecio})
	require.NoError(t, err)
	assert.Nil(t, resp.CostoVenta)
}

func TestActualizarInsumo_NoExiste(t *testing.T) {
	f := newInventario()
	_, err := f.svc.ActualizarInsumo(context.Background(), f.owner, uuid.New(), dto.ActualizarInsumoRequest{})
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestAgregarStock(t *testing.T) {
	f := newInventario()
	i := f.insumo("LIMON", "L001", "3.5", "10")

	resp, err := f.svc.AgregarStock(context.Background(), f.owner, i.ID, dto.AgregarStockRequest{Cantidad: d("2.25")})
	require.NoError(t, err)
	assert.True(t, d("5.75").Equal(resp.Cantidad))
	assert.True(t, d("5.75").Equal(f.ins.insumos[i.ID].Cantidad))

	require.Len(t, f.movs.movs, 1)
	assert.Equal(t, "reposicion", f.movs.movs[0].Tipo)
	assert.True(t, d("3.5").Equal(f.movs.movs[0].StockAnterior))

	_, err = f.svc.AgregarStock(context.Background(), f.owner, i.ID, dto.AgregarStockRequest{Cantidad: d("-1")})
	var ve *service.ValidationError
	assert.True(t, errors.As(err, &ve))

	_, err = f.svc.AgregarStock(context.Background(), f.owner, uuid.New(), dto.AgregarStockRequest{Cantidad: d("1")})
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestCrearKit(t *testing.T) {
	f := newInventario()
	limon := f.insumo("LIMON", "L001", "10", "20")
	azucar := f.insumo("AZUCAR", "A001", "3", "9")

	kit, err := f.svc.CrearKit(context.Background(), f.owner, dto.CrearKitRequest{
		Nombre: "limonada",
		Componentes: []dto.ComponenteKitRequest{
			{InsumoID: limon.ID.String(), Cantidad: d("2")},
			{InsumoID: azucar.ID.String(), Cantidad: d("1")},
		},
		GananciaPct: d("50"),
	})
	require.NoError(t, err)

	assert.Equal(t, "LIMONADA", kit.Nombre)
	assert.True(t, d("7").Equal(kit.CostoCompra))
	assert.True(t, d("10.5").Equal(kit.PrecioVenta))
	assert.Equal(t, 3, kit.MaxKitsPosibles)
	assert.Equal(t, 3, kit.Cantidad)
	assert.Equal(t, "AZUCAR", kit.InsumoLimitante)
}

func TestCrearKit_Validacion(t *testing.T) {
	f := newInventario()
	limon := f.insumo("LIMON", "L001", "10", "20")

	cases := map[string]dto.CrearKitRequest{
		"nombre con numeros": {Nombre: "KIT 1", Componentes: []dto.ComponenteKitRequest{{InsumoID: limon.ID.String(), Cantidad: d("1")}}},
		"sin componentes":    {Nombre: "KIT"},
		"cantidad cero":      {Nombre: "KIT", Componentes: []dto.ComponenteKitRequest{{InsumoID: limon.ID.String(), Cantidad: d("0")}}},
		"duplicado": {Nombre: "KIT", Componentes: []dto.ComponenteKitRequest{
			{InsumoID: limon.ID.String(), Cantidad: d("1")},
			{InsumoID: limon.ID.String(), Cantidad: d("2")},
		}},
		"insumo inexistente": {Nombre: "KIT", Componentes: []dto.ComponenteKitRequest{{InsumoID: uuid.NewString(), Cantidad: d("1")}}},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := f.svc.CrearKit(context.Background(), f.owner, req)
			var ve *service.ValidationError
			assert.True(t, errors.As(err, &ve), "got %v", err)
		})
	}
	assert.Empty(t, f.kits.kits)
}

func TestEliminarInsumo_KitQuedaSinComponente(t *testing.T) {
	f := newInventario()
	limon := f.insumo("LIMON", "L001", "10", "20")
	kit, err := f.svc.CrearKit(context.Background(), f.owner, dto.CrearKitRequest{
		Nombre:      "LIMONADA",
		Componentes: []dto.ComponenteKitRequest{{InsumoID: limon.ID.String(), Cantidad: d("2")}},
	})
	require.NoError(t, err)
	assert.Equal(t, 5, kit.MaxKitsPosibles)

	require.NoError(t, f.svc.EliminarInsumo(context.Background(), f.owner, limon.ID))
	kits, err := f.svc.ListarKits(context.Background(), f.owner)
	require.NoError(t, err)
	require.Len(t, kits, 1)
	assert.Equal(t, 5, kits[0].MaxKitsPosibles, "cached value is not refreshed implicitly")

	kit, err = f.svc.RecalcularKit(context.Background(), f.owner, uuid.MustParse(kit.ID))
	require.NoError(t, err)
	assert.Equal(t, 0, kit.MaxKitsPosibles)
	assert.Contains(t, kit.InsumoLimitante, "no encontrado")
	assert.Equal(t, "LIMON", kit.Componentes[0].NombreInsumo)
}

func TestAgregarStockKit(t *testing.T) {
	f := newInventario()
	k := model.Kit{ID: uuid.New(), UserID: f.owner, Nombre: "COMBO", Cantidad: 2}
	f.kits.kits[k.ID] = &k

	resp, err := f.svc.AgregarStockKit(context.Background(), f.owner, k.ID, dto.AgregarStockKitRequest{Cantidad: 3})
	require.NoError(t, err)
	assert.Equal(t, 5, resp.Cantidad)
	assert.Equal(t, 5, f.kits.kits[k.ID].Cantidad)
}

func TestAlertasYVentasEsperadas(t *testing.T) {
	f := newInventario()
	f.insumo("LIMON", "L001", "1", "10") // stock == minimo
	f.insumo("AZUCAR", "A001", "4", "10")
	k := model.Kit{ID: uuid.New(), UserID: f.owner, Nombre: "COMBO", Cantidad: 2, PrecioVenta: d("12")}
	f.kits.kits[k.ID] = &k

	alertas, err := f.svc.ObtenerAlertas(context.Background(), f.owner)
	require.NoError(t, err)
	require.Len(t, alertas, 1)
	assert.Equal(t, "LIMON", alertas[0].Nombre)

	esp, err := f.svc.VentasEsperadas(context.Background(), f.owner)
	require.NoError(t, err)
	// 1×5 + 4×5 + 2×12
	assert.True(t, d("49").Equal(esp.Total), esp.Total.String())
	assert.Len(t, esp.Items, 3)
}

func TestMasVendidos(t *testing.T) {
	f := newInventario()
	f.vts.ventas = []model.Venta{
		{UserID: f.owner, Articulos: []model.ArticuloVenta{
			{Tipo: model.TipoInsumo, Nombre: "AGUA", Cantidad: 2},
			{Tipo: model.TipoKit, Nombre: "COMBO", Cantidad: 1},
		}},
		{UserID: f.owner, Articulos: []model.ArticuloVenta{
			{Tipo: model.TipoInsumo, Nombre: "COCA", Cantidad: 5},
			{Tipo: model.TipoInsumo, Nombre: "AGUA", Cantidad: 1},
		}},
	}

	resp, err := f.svc.MasVendidos(context.Background(), f.owner)
	require.NoError(t, err)
	require.Len(t, resp.Insumos, 2)
	assert.Equal(t, dto.MasVendidoItem{Nombre: "COCA", Cantidad: 5}, resp.Insumos[0])
	assert.Equal(t, dto.MasVendidoItem{Nombre: "AGUA", Cantidad: 3}, resp.Insumos[1])
	assert.Equal(t, []dto.MasVendidoItem{{Nombre: "COMBO", Cantidad: 1}}, resp.Kits)
}
