package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jassler1/el-refugio-de-las-gibas/internal/dto"
	"github.com/jassler1/el-refugio-de-las-gibas/internal/feed"
	"github.com/jassler1/el-refugio-de-las-gibas/internal/model"
	"github.com/jassler1/el-refugio-de-las-gibas/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const maxIntentosCodigo = 3

// InventarioService manages supplies (insumos), kits and their stock.
type InventarioService interface {
	CrearInsumo(ctx context.Context, owner uuid.UUID, req dto.CrearInsumoRequest) (*dto.InsumoResponse, error)
	ActualizarInsumo(ctx context.Context, owner, id uuid.UUID, req dto.ActualizarInsumoRequest) (*dto.InsumoResponse, error)
	ObtenerInsumo(ctx context.Context, owner, id uuid.UUID) (*dto.InsumoResponse, error)
	ListarInsumos(ctx context.Context, owner uuid.UUID, filter dto.InsumoFilter) ([]dto.InsumoResponse, error)
	EliminarInsumo(ctx context.Context, owner, id uuid.UUID) error
	AgregarStock(ctx context.Context, owner, id uuid.UUID, req dto.AgregarStockRequest) (*dto.InsumoResponse, error)

	CrearKit(ctx context.Context, owner uuid.UUID, req dto.CrearKitRequest) (*dto.KitResponse, error)
	ListarKits(ctx context.Context, owner uuid.UUID) ([]dto.KitResponse, error)
	EliminarKit(ctx context.Context, owner, id uuid.UUID) error
	AgregarStockKit(ctx context.Context, owner, id uuid.UUID, req dto.AgregarStockKitRequest) (*dto.KitResponse, error)
	// RecalcularKit refreshes the cached cost, price and producible count.
	RecalcularKit(ctx context.Context, owner, id uuid.UUID) (*dto.KitResponse, error)

	ObtenerAlertas(ctx context.Context, owner uuid.UUID) ([]dto.AlertaStockResponse, error)
	VentasEsperadas(ctx context.Context, owner uuid.UUID) (*dto.VentasEsperadasResponse, error)
	MasVendidos(ctx context.Context, owner uuid.UUID) (*dto.MasVendidosResponse, error)
	ListarMovimientos(ctx context.Context, owner uuid.UUID, filter dto.MovimientoFilter) ([]dto.MovimientoStockResponse, error)
}

type inventarioService struct {
	insumos     repository.InsumoRepository
	kits        repository.KitRepository
	ventas      repository.VentaRepository
	movimientos repository.MovimientoStockRepository
	pub         feed.Publisher
}

func NewInventarioService(
	insumos repository.InsumoRepository,
	kits repository.KitRepository,
	ventas repository.VentaRepository,
	movimientos repository.MovimientoStockRepository,
	pub feed.Publisher,
) InventarioService {
	return &inventarioService{insumos: insumos, kits: kits, ventas: ventas, movimientos: movimientos, pub: pub}
}

// ── Insumos ───────────────────────────────────────────────────────────────────

func (s *inventarioService) CrearInsumo(ctx context.Context, owner uuid.UUID, req dto.CrearInsumoRequest) (*dto.InsumoResponse, error) {
	v := validacion{}
	nombre := normalizarNombre(req.Nombre)
	categoria := normalizarNombre(req.Categoria)
	if nombre == "" {
		v.add("nombre", "El nombre es obligatorio")
	}
	if categoria == "" {
		v.add("categoria", "La categoria es obligatoria")
	}
	if req.Cantidad == nil || req.Cantidad.IsNegative() {
		v.add("cantidad", "La cantidad debe ser un numero mayor o igual a 0")
	}
	if req.StockMinimo == nil || req.StockMinimo.IsNegative() {
		v.add("stock_minimo", "El stock minimo debe ser un numero mayor o igual a 0")
	}
	if !req.CostoCompra.IsPositive() {
		v.add("costo_compra", "El costo de compra debe ser mayor a 0")
	}
	if !req.SinPrecioVenta {
		if req.GananciaPct == nil || req.GananciaPct.IsNegative() {
			v.add("ganancia", "La ganancia es obligatoria y no puede ser negativa")
		}
		if req.PrecioVenta != nil && req.PrecioVenta.IsNegative() {
			v.add("precio_venta", "El precio de venta no puede ser negativo")
		}
	}
	if err := v.err(); err != nil {
		return nil, err
	}

	unidad := req.UnidadMedida
	if unidad == "" {
		unidad = model.UnidadUnidad
	}
	insumo := &model.Insumo{
		UserID:         owner,
		Nombre:         nombre,
		Categoria:      categoria,
		Cantidad:       *req.Cantidad,
		StockMinimo:    *req.StockMinimo,
		UnidadMedida:   unidad,
		CostoCompra:    round2(req.CostoCompra),
		SinPrecioVenta: req.SinPrecioVenta,
		Proveedor:      strings.TrimSpace(req.Proveedor),
	}
	if !req.SinPrecioVenta {
		fraccion := req.GananciaPct.Div(cien)
		insumo.Ganancia = &fraccion
		precio := precioConGanancia(insumo.CostoCompra, *req.GananciaPct)
		if req.PrecioVenta != nil {
			precio = round2(*req.PrecioVenta)
			insumo.PrecioManual = true
		}
		insumo.CostoVenta = &precio
	}

	prefijo := prefijoCodigo(categoria, nombre)
	var err error
	for intento := 1; intento <= maxIntentosCodigo; intento++ {
		var codigos []string
		codigos, err = s.insumos.ListCodigos(ctx, owner, prefijo)
		if err != nil {
			return nil, err
		}
		insumo.ID = uuid.New()
		insumo.Codigo = generarCodigo(categoria, nombre, codigos)
		err = s.insumos.Create(ctx, insumo)
		if err == nil || !repository.IsUniqueViolation(err) {
			break
		}
		log.Warn().Str("codigo", insumo.Codigo).Int("intento", intento).Msg("inventario: codigo duplicado, regenerando")
	}
	if err != nil {
		return nil, err
	}

	notificar(ctx, s.pub, owner, feed.Insumos)
	return insumoToResponse(insumo), nil
}

func (s *inventarioService) ActualizarInsumo(ctx context.Context, owner, id uuid.UUID, req dto.ActualizarInsumoRequest) (*dto.InsumoResponse, error) {
	insumo, err := s.insumos.FindByID(ctx, owner, id)
	if err != nil {
		return nil, notFound(err)
	}

	v := validacion{}
	if req.Nombre != nil {
		if n := normalizarNombre(*req.Nombre); n == "" {
			v.add("nombre", "El nombre es obligatorio")
		} else {
			insumo.Nombre = n
		}
	}
	if req.Categoria != nil {
		if c := normalizarNombre(*req.Categoria); c == "" {
			v.add("categoria", "La categoria es obligatoria")
		} else {
			insumo.Categoria = c
		}
	}
	if req.StockMinimo != nil {
		if req.StockMinimo.IsNegative() {
			v.add("stock_minimo", "El stock minimo debe ser un numero mayor o igual a 0")
		}
		insumo.StockMinimo = *req.StockMinimo
	}
	if req.UnidadMedida != nil {
		insumo.UnidadMedida = *req.UnidadMedida
	}
	if req.Proveedor != nil {
		insumo.Proveedor = strings.TrimSpace(*req.Proveedor)
	}
	costoCambio := false
	if req.CostoCompra != nil {
		if !req.CostoCompra.IsPositive() {
			v.add("costo_compra", "El costo de compra debe ser mayor a 0")
		}
		insumo.CostoCompra = round2(*req.CostoCompra)
		costoCambio = true
	}
	if req.SinPrecioVenta != nil {
		insumo.SinPrecioVenta = *req.SinPrecioVenta
	}
	if req.GananciaPct != nil && req.GananciaPct.IsNegative() {
		v.add("ganancia", "La ganancia no puede ser negativa")
	}
	if req.PrecioVenta != nil && req.PrecioVenta.IsNegative() {
		v.add("precio_venta", "El precio de venta no puede ser negativo")
	}

	switch {
	case insumo.SinPrecioVenta:
		insumo.Ganancia, insumo.CostoVenta, insumo.PrecioManual = nil, nil, false
	case req.PrecioVenta != nil:
		precio := round2(*req.PrecioVenta)
		insumo.CostoVenta, insumo.PrecioManual = &precio, true
		if req.GananciaPct != nil {
			f := req.GananciaPct.Div(cien)
			insumo.Ganancia = &f
		}
	case req.GananciaPct != nil:
		f := req.GananciaPct.Div(cien)
		precio := precioConGanancia(insumo.CostoCompra, *req.GananciaPct)
		insumo.Ganancia, insumo.CostoVenta, insumo.PrecioManual = &f, &precio, false
	case insumo.Ganancia == nil:
		v.add("ganancia", "La ganancia es obligatoria para insumos con precio de venta")
	case (costoCambio || insumo.CostoVenta == nil) && !insumo.PrecioManual:
		precio := precioConGanancia(insumo.CostoCompra, insumo.Ganancia.Mul(cien))
		insumo.CostoVenta = &precio
	}
	if err := v.err(); err != nil {
		return nil, err
	}

	insumo.UpdatedAt = time.Now()
	if err := s.insumos.Update(ctx, insumo); err != nil {
		return nil, err
	}
	notificar(ctx, s.pub, owner, feed.Insumos)
	return insumoToResponse(insumo), nil
}

func (s *inventarioService) ObtenerInsumo(ctx context.Context, owner, id uuid.UUID) (*dto.InsumoResponse, error) {
	insumo, err := s.insumos.FindByID(ctx, owner, id)
	if err != nil {
		return nil, notFound(err)
	}
	return insumoToResponse(insumo), nil
}

func (s *inventarioService) ListarInsumos(ctx context.Context, owner uuid.UUID, filter dto.InsumoFilter) ([]dto.InsumoResponse, error) {
	insumos, err := s.insumos.List(ctx, owner, filter)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.InsumoResponse, len(insumos))
	for i := range insumos {
		resp[i] = *insumoToResponse(&insumos[i])
	}
	return resp, nil
}

// EliminarInsumo deletes unconditionally. Kits that use it stay in place and
// become unbuildable on their next recalculation.
func (s *inventarioService) EliminarInsumo(ctx context.Context, owner, id uuid.UUID) error {
	afectados, err := s.kits.ListByInsumo(ctx, owner, id)
	if err != nil {
		return err
	}
	if err := s.insumos.Delete(ctx, owner, id); err != nil {
		return notFound(err)
	}
	if len(afectados) > 0 {
		nombres := make([]string, len(afectados))
		for i, k := range afectados {
			nombres[i] = k.Nombre
		}
		log.Warn().Str("insumo_id", id.String()).Strs("kits", nombres).Msg("inventario: insumo eliminado deja kits sin componente")
	}
	notificar(ctx, s.pub, owner, feed.Insumos)
	return nil
}

func (s *inventarioService) AgregarStock(ctx context.Context, owner, id uuid.UUID, req dto.AgregarStockRequest) (*dto.InsumoResponse, error) {
	if req.Cantidad.IsNegative() {
		return nil, &ValidationError{Fields: map[string]string{"cantidad": "La cantidad a agregar no puede ser negativa"}}
	}
	var actualizado *model.Insumo
	err := runTx(ctx, s.insumos.DB(), func(tx *gorm.DB) error {
		insumo, err := s.insumos.FindForUpdateTx(tx, owner, id)
		if err != nil {
			return notFound(err)
		}
		if err := s.insumos.UpdateStockTx(tx, id, req.Cantidad); err != nil {
			return err
		}
		anterior := insumo.Cantidad
		insumo.Cantidad = anterior.Add(req.Cantidad)
		actualizado = insumo
		return s.movimientos.CreateTx(tx, &model.MovimientoStock{
			UserID:        owner,
			TipoProducto:  model.TipoInsumo,
			ProductoID:    id,
			Tipo:          "reposicion",
			Cantidad:      req.Cantidad,
			StockAnterior: anterior,
			StockNuevo:    insumo.Cantidad,
			Motivo:        motivoOr(req.Motivo, "Reposicion de stock"),
		})
	})
	if err != nil {
		return nil, err
	}
	notificar(ctx, s.pub, owner, feed.Insumos)
	return insumoToResponse(actualizado), nil
}

func motivoOr(motivo, def string) string {
	if m := strings.TrimSpace(motivo); m != "" {
		return m
	}
	return def
}

// ── Kits ──────────────────────────────────────────────────────────────────────

func (s *inventarioService) CrearKit(ctx context.Context, owner uuid.UUID, req dto.CrearKitRequest) (*dto.KitResponse, error) {
	v := validacion{}
	nombre := normalizarNombre(req.Nombre)
	if nombre == "" || !soloLetrasYEspacios(nombre) {
		v.add("nombre", "El nombre del kit solo puede contener letras y espacios")
	}
	if req.GananciaPct.IsNegative() {
		v.add("ganancia", "La ganancia no puede ser negativa")
	}
	if len(req.Componentes) == 0 {
		v.add("componentes", "El kit debe tener al menos un componente")
	}

	componentes := make([]model.KitComponente, 0, len(req.Componentes))
	ids := make([]uuid.UUID, 0, len(req.Componentes))
	vistos := map[uuid.UUID]bool{}
	for i, c := range req.Componentes {
		campo := fmt.Sprintf("componentes[%d]", i)
		id, err := uuid.Parse(c.InsumoID)
		if err != nil {
			v.add(campo, "Seleccione un insumo")
			continue
		}
		if !c.Cantidad.IsPositive() {
			v.add(campo, "La cantidad necesaria debe ser mayor a 0")
			continue
		}
		if vistos[id] {
			v.add(campo, "El insumo esta repetido en el kit")
			continue
		}
		vistos[id] = true
		ids = append(ids, id)
		componentes = append(componentes, model.KitComponente{InsumoID: id, Cantidad: c.Cantidad})
	}
	if err := v.err(); err != nil {
		return nil, err
	}

	porID, err := s.insumosPorID(ctx, owner, ids)
	if err != nil {
		return nil, err
	}
	for i, c := range componentes {
		if _, ok := porID[c.InsumoID]; !ok {
			v.add(fmt.Sprintf("componentes[%d]", i), "El insumo no existe")
		}
	}
	if err := v.err(); err != nil {
		return nil, err
	}

	calc := calcularKit(componentes, porID, req.GananciaPct)
	kit := &model.Kit{
		ID:              uuid.New(),
		UserID:          owner,
		Nombre:          nombre,
		Componentes:     calc.Componentes,
		CostoCompra:     calc.Costo,
		PrecioVenta:     calc.Precio,
		GananciaPct:     req.GananciaPct,
		Ganancia:        calc.Ganancia,
		Cantidad:        calc.MaxKits,
		MaxKitsPosibles: calc.MaxKits,
		InsumoLimitante: calc.Limitante,
	}
	if err := s.kits.Create(ctx, kit); err != nil {
		return nil, err
	}
	notificar(ctx, s.pub, owner, feed.Kits)
	return kitToResponse(kit), nil
}

func (s *inventarioService) insumosPorID(ctx context.Context, owner uuid.UUID, ids []uuid.UUID) (map[uuid.UUID]model.Insumo, error) {
	insumos, err := s.insumos.FindByIDs(ctx, owner, ids)
	if err != nil {
		return nil, err
	}
	out := make(map[uuid.UUID]model.Insumo, len(insumos))
	for _, i := range insumos {
		out[i.ID] = i
	}
	return out, nil
}

func (s *inventarioService) ListarKits(ctx context.Context, owner uuid.UUID) ([]dto.KitResponse, error) {
	kits, err := s.kits.List(ctx, owner)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.KitResponse, len(kits))
	for i := range kits {
		resp[i] = *kitToResponse(&kits[i])
	}
	return resp, nil
}

func (s *inventarioService) EliminarKit(ctx context.Context, owner, id uuid.UUID) error {
	if err := s.kits.Delete(ctx, owner, id); err != nil {
		return notFound(err)
	}
	notificar(ctx, s.pub, owner, feed.Kits)
	return nil
}

func (s *inventarioService) AgregarStockKit(ctx context.Context, owner, id uuid.UUID, req dto.AgregarStockKitRequest) (*dto.KitResponse, error) {
	if req.Cantidad < 0 {
		return nil, &ValidationError{Fields: map[string]string{"cantidad": "La cantidad a agregar no puede ser negativa"}}
	}
	var actualizado *model.Kit
	err := runTx(ctx, s.kits.DB(), func(tx *gorm.DB) error {
		kit, err := s.kits.FindForUpdateTx(tx, owner, id)
		if err != nil {
			return notFound(err)
		}
		if err := s.kits.UpdateStockTx(tx, id, req.Cantidad); err != nil {
			return err
		}
		anterior := kit.Cantidad
		kit.Cantidad += req.Cantidad
		actualizado = kit
		return s.movimientos.CreateTx(tx, &model.MovimientoStock{
			UserID:        owner,
			TipoProducto:  model.TipoKit,
			ProductoID:    id,
			Tipo:          "reposicion",
			Cantidad:      decimal.NewFromInt(int64(req.Cantidad)),
			StockAnterior: decimal.NewFromInt(int64(anterior)),
			StockNuevo:    decimal.NewFromInt(int64(kit.Cantidad)),
			Motivo:        motivoOr(req.Motivo, "Reposicion de kits"),
		})
	})
	if err != nil {
		return nil, err
	}
	notificar(ctx, s.pub, owner, feed.Kits)
	return kitToResponse(actualizado), nil
}

func (s *inventarioService) RecalcularKit(ctx context.Context, owner, id uuid.UUID) (*dto.KitResponse, error) {
	kit, err := s.kits.FindByID(ctx, owner, id)
	if err != nil {
		return nil, notFound(err)
	}
	ids := make([]uuid.UUID, len(kit.Componentes))
	for i, c := range kit.Componentes {
		ids[i] = c.InsumoID
	}
	porID, err := s.insumosPorID(ctx, owner, ids)
	if err != nil {
		return nil, err
	}

	calc := calcularKit(kit.Componentes, porID, kit.GananciaPct)
	// keep the last known name of a deleted component
	for i := range calc.Componentes {
		if calc.Componentes[i].NombreInsumo == "" {
			calc.Componentes[i].NombreInsumo = kit.Componentes[i].NombreInsumo
		}
	}
	kit.Componentes = calc.Componentes
	kit.CostoCompra = calc.Costo
	kit.PrecioVenta = calc.Precio
	kit.Ganancia = calc.Ganancia
	kit.MaxKitsPosibles = calc.MaxKits
	kit.InsumoLimitante = calc.Limitante
	kit.UpdatedAt = time.Now()
	if err := s.kits.Update(ctx, kit); err != nil {
		return nil, err
	}
	notificar(ctx, s.pub, owner, feed.Kits)
	return kitToResponse(kit), nil
}

// ── Reportes de inventario ────────────────────────────────────────────────────

func (s *inventarioService) ObtenerAlertas(ctx context.Context, owner uuid.UUID) ([]dto.AlertaStockResponse, error) {
	insumos, err := s.insumos.List(ctx, owner, dto.InsumoFilter{})
	if err != nil {
		return nil, err
	}
	alertas := []dto.AlertaStockResponse{}
	for _, i := range insumos {
		if !i.StockBajo() {
			continue
		}
		alertas = append(alertas, dto.AlertaStockResponse{
			InsumoID:     i.ID.String(),
			Codigo:       i.Codigo,
			Nombre:       i.Nombre,
			Cantidad:     i.Cantidad,
			StockMinimo:  i.StockMinimo,
			UnidadMedida: i.UnidadMedida,
		})
	}
	return alertas, nil
}

// VentasEsperadas values the stock at sale price: what the business would
// collect if everything priced were sold.
func (s *inventarioService) VentasEsperadas(ctx context.Context, owner uuid.UUID) (*dto.VentasEsperadasResponse, error) {
	insumos, err := s.insumos.List(ctx, owner, dto.InsumoFilter{})
	if err != nil {
		return nil, err
	}
	kits, err := s.kits.List(ctx, owner)
	if err != nil {
		return nil, err
	}

	resp := &dto.VentasEsperadasResponse{Items: []dto.ValorInventarioItem{}, Total: decimal.Zero}
	agregar := func(p model.Vendible) {
		if !p.Precio().IsPositive() {
			return
		}
		valor := round2(p.Precio().Mul(p.Disponible()))
		resp.Items = append(resp.Items, dto.ValorInventarioItem{
			Tipo:          string(p.Tipo()),
			ID:            p.ProductoID().String(),
			Nombre:        p.ProductoNombre(),
			Cantidad:      p.Disponible(),
			PrecioVenta:   p.Precio(),
			ValorEsperado: valor,
		})
		resp.Total = resp.Total.Add(valor)
	}
	for i := range insumos {
		agregar(&insumos[i])
	}
	for i := range kits {
		agregar(&kits[i])
	}
	return resp, nil
}

func (s *inventarioService) MasVendidos(ctx context.Context, owner uuid.UUID) (*dto.MasVendidosResponse, error) {
	ventas, err := s.ventas.ListAll(ctx, owner, repository.Rango{})
	if err != nil {
		return nil, err
	}
	porTipo := map[model.TipoProducto]map[string]int{
		model.TipoInsumo: {},
		model.TipoKit:    {},
	}
	for _, v := range ventas {
		for _, a := range v.Articulos {
			if m, ok := porTipo[a.Tipo]; ok {
				m[a.Nombre] += a.Cantidad
			}
		}
	}
	return &dto.MasVendidosResponse{
		Insumos: ranking(porTipo[model.TipoInsumo]),
		Kits:    ranking(porTipo[model.TipoKit]),
	}, nil
}

func ranking(m map[string]int) []dto.MasVendidoItem {
	out := make([]dto.MasVendidoItem, 0, len(m))
	for nombre, cant := range m {
		out = append(out, dto.MasVendidoItem{Nombre: nombre, Cantidad: cant})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Cantidad != out[j].Cantidad {
			return out[i].Cantidad > out[j].Cantidad
		}
		return out[i].Nombre < out[j].Nombre
	})
	return out
}

func (s *inventarioService) ListarMovimientos(ctx context.Context, owner uuid.UUID, filter dto.MovimientoFilter) ([]dto.MovimientoStockResponse, error) {
	f := repository.MovimientoStockFilter{Limit: filter.Limit}
	if filter.ProductoID != "" {
		id, err := uuid.Parse(filter.ProductoID)
		if err != nil {
			return nil, &ValidationError{Fields: map[string]string{"producto_id": "Identificador invalido"}}
		}
		f.ProductoID = &id
	}
	movs, err := s.movimientos.List(ctx, owner, f)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.MovimientoStockResponse, len(movs))
	for i, m := range movs {
		resp[i] = dto.MovimientoStockResponse{
			ID:            m.ID.String(),
			TipoProducto:  string(m.TipoProducto),
			ProductoID:    m.ProductoID.String(),
			Tipo:          m.Tipo,
			Cantidad:      m.Cantidad,
			StockAnterior: m.StockAnterior,
			StockNuevo:    m.StockNuevo,
			Motivo:        m.Motivo,
			CreatedAt:     m.CreatedAt.Format(time.RFC3339),
		}
	}
	return resp, nil
}

// ── Mappers ───────────────────────────────────────────────────────────────────

func insumoToResponse(i *model.Insumo) *dto.InsumoResponse {
	resp := &dto.InsumoResponse{
		ID:             i.ID.String(),
		Codigo:         i.Codigo,
		Nombre:         i.Nombre,
		Categoria:      i.Categoria,
		Cantidad:       i.Cantidad,
		StockMinimo:    i.StockMinimo,
		UnidadMedida:   i.UnidadMedida,
		CostoCompra:    i.CostoCompra,
		CostoVenta:     i.CostoVenta,
		SinPrecioVenta: i.SinPrecioVenta,
		Proveedor:      i.Proveedor,
		StockBajo:      i.StockBajo(),
		CreatedAt:      i.CreatedAt.Format(time.RFC3339),
	}
	if i.Ganancia != nil {
		pct := i.Ganancia.Mul(cien)
		resp.GananciaPct = &pct
	}
	return resp
}

func kitToResponse(k *model.Kit) *dto.KitResponse {
	comps := make([]dto.ComponenteKitResponse, len(k.Componentes))
	for i, c := range k.Componentes {
		comps[i] = dto.ComponenteKitResponse{
			InsumoID:     c.InsumoID.String(),
			NombreInsumo: c.NombreInsumo,
			Cantidad:     c.Cantidad,
		}
	}
	return &dto.KitResponse{
		ID:              k.ID.String(),
		Nombre:          k.Nombre,
		Componentes:     comps,
		CostoCompra:     k.CostoCompra,
		PrecioVenta:     k.PrecioVenta,
		GananciaPct:     k.GananciaPct,
		Ganancia:        k.Ganancia,
		Cantidad:        k.Cantidad,
		MaxKitsPosibles: k.MaxKitsPosibles,
		InsumoLimitante: k.InsumoLimitante,
		CreatedAt:       k.CreatedAt.Format(time.RFC3339),
	}
}
