package dto

import "github.com/shopspring/decimal"

// ─── Insumos ─────────────────────────────────────────────────────────────────

type CrearInsumoRequest struct {
	Nombre       string           `json:"nombre"        validate:"required,max=120"`
	Categoria    string           `json:"categoria"     validate:"required,max=60"`
	Cantidad     *decimal.Decimal `json:"cantidad"      validate:"required"`
	StockMinimo  *decimal.Decimal `json:"stock_minimo"  validate:"required"`
	UnidadMedida string           `json:"unidad_medida" validate:"omitempty,oneof=KG GR LTS UNIDAD ML"`
	CostoCompra  decimal.Decimal  `json:"costo_compra"`
	// GananciaPct is a percentage (25 = 25%). Required unless SinPrecioVenta.
	GananciaPct *decimal.Decimal `json:"ganancia"`
	// PrecioVenta overrides the price derived from GananciaPct.
	PrecioVenta    *decimal.Decimal `json:"precio_venta"`
	SinPrecioVenta bool             `json:"sin_precio_venta"`
	Proveedor      string           `json:"proveedor" validate:"max=120"`
}

type ActualizarInsumoRequest struct {
	Nombre         *string          `json:"nombre"        validate:"omitempty,min=1,max=120"`
	Categoria      *string          `json:"categoria"     validate:"omitempty,min=1,max=60"`
	StockMinimo    *decimal.Decimal `json:"stock_minimo"`
	UnidadMedida   *string          `json:"unidad_medida" validate:"omitempty,oneof=KG GR LTS UNIDAD ML"`
	CostoCompra    *decimal.Decimal `json:"costo_compra"`
	GananciaPct    *decimal.Decimal `json:"ganancia"`
	PrecioVenta    *decimal.Decimal `json:"precio_venta"`
	SinPrecioVenta *bool            `json:"sin_precio_venta"`
	Proveedor      *string          `json:"proveedor" validate:"omitempty,max=120"`
}

// AgregarStockRequest adds a non-negative delta to the on-hand quantity.
type AgregarStockRequest struct {
	Cantidad decimal.Decimal `json:"cantidad" validate:"min=0"`
	Motivo   string          `json:"motivo"   validate:"max=200"`
}

// InsumoFilter is bound from the query string of GET /v1/insumos.
type InsumoFilter struct {
	Q         string `form:"q"`
	Categoria string `form:"categoria"`
}

type InsumoResponse struct {
	ID             string           `json:"id"`
	Codigo         string           `json:"codigo"`
	Nombre         string           `json:"nombre"`
	Categoria      string           `json:"categoria"`
	Cantidad       decimal.Decimal  `json:"cantidad"`
	StockMinimo    decimal.Decimal  `json:"stock_minimo"`
	UnidadMedida   string           `json:"unidad_medida"`
	CostoCompra    decimal.Decimal  `json:"costo_compra"`
	GananciaPct    *decimal.Decimal `json:"ganancia"`
	CostoVenta     *decimal.Decimal `json:"costo_venta"`
	SinPrecioVenta bool             `json:"sin_precio_venta"`
	Proveedor      string           `json:"proveedor"`
	StockBajo      bool             `json:"stock_bajo"`
	CreatedAt      string           `json:"created_at"`
}

// ─── Kits ────────────────────────────────────────────────────────────────────

type ComponenteKitRequest struct {
	InsumoID string          `json:"insumo_id" validate:"required,uuid"`
	Cantidad decimal.Decimal `json:"cantidad"`
}

type CrearKitRequest struct {
	Nombre      string                 `json:"nombre"      validate:"required,max=120"`
	Componentes []ComponenteKitRequest `json:"componentes" validate:"required,min=1,dive"`
	GananciaPct decimal.Decimal        `json:"ganancia"    validate:"min=0"`
}

type ComponenteKitResponse struct {
	InsumoID     string          `json:"insumo_id"`
	NombreInsumo string          `json:"nombre_insumo"`
	Cantidad     decimal.Decimal `json:"cantidad"`
}

type KitResponse struct {
	ID              string                  `json:"id"`
	Nombre          string                  `json:"nombre"`
	Componentes     []ComponenteKitResponse `json:"componentes"`
	CostoCompra     decimal.Decimal         `json:"costo_compra"`
	PrecioVenta     decimal.Decimal         `json:"precio_venta"`
	GananciaPct     decimal.Decimal         `json:"ganancia_pct"`
	Ganancia        decimal.Decimal         `json:"ganancia"`
	Cantidad        int                     `json:"cantidad"`
	MaxKitsPosibles int                     `json:"max_kits_posibles"`
	InsumoLimitante string                  `json:"insumo_limitante"`
	CreatedAt       string                  `json:"created_at"`
}

type AgregarStockKitRequest struct {
	Cantidad int    `json:"cantidad" validate:"min=0"`
	Motivo   string `json:"motivo"   validate:"max=200"`
}

// ─── Reportes de inventario ──────────────────────────────────────────────────

type AlertaStockResponse struct {
	InsumoID     string          `json:"insumo_id"`
	Codigo       string          `json:"codigo"`
	Nombre       string          `json:"nombre"`
	Cantidad     decimal.Decimal `json:"cantidad"`
	StockMinimo  decimal.Decimal `json:"stock_minimo"`
	UnidadMedida string          `json:"unidad_medida"`
}

type ValorInventarioItem struct {
	Tipo          string          `json:"tipo"`
	ID            string          `json:"id"`
	Nombre        string          `json:"nombre"`
	Cantidad      decimal.Decimal `json:"cantidad"`
	PrecioVenta   decimal.Decimal `json:"precio_venta"`
	ValorEsperado decimal.Decimal `json:"valor_esperado"`
}

type VentasEsperadasResponse struct {
	Items []ValorInventarioItem `json:"items"`
	Total decimal.Decimal       `json:"total"`
}

type MasVendidoItem struct {
	Nombre   string `json:"nombre"`
	Cantidad int    `json:"cantidad"`
}

type MasVendidosResponse struct {
	Insumos []MasVendidoItem `json:"insumos"`
	Kits    []MasVendidoItem `json:"kits"`
}

type MovimientoFilter struct {
	ProductoID string `form:"producto_id" validate:"omitempty,uuid"`
	Limit      int    `form:"limit,default=100" validate:"min=1,max=500"`
}

type MovimientoStockResponse struct {
	ID            string          `json:"id"`
	TipoProducto  string          `json:"tipo_producto"`
	ProductoID    string          `json:"producto_id"`
	Tipo          string          `json:"tipo"`
	Cantidad      decimal.Decimal `json:"cantidad"`
	StockAnterior decimal.Decimal `json:"stock_anterior"`
	StockNuevo    decimal.Decimal `json:"stock_nuevo"`
	Motivo        string          `json:"motivo"`
	CreatedAt     string          `json:"created_at"`
}
