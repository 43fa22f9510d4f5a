package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jassler1/el-refugio-de-las-gibas/internal/dto"
	"github.com/jassler1/el-refugio-de-las-gibas/internal/feed"
	"github.com/jassler1/el-refugio-de-las-gibas/internal/model"
	"github.com/jassler1/el-refugio-de-las-gibas/internal/reporte"
	"github.com/jassler1/el-refugio-de-las-gibas/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type GastoService interface {
	Crear(ctx context.Context, owner uuid.UUID, req dto.CrearGastoRequest) (*dto.GastoResponse, error)
	Actualizar(ctx context.Context, owner, id uuid.UUID, req dto.ActualizarGastoRequest) (*dto.GastoResponse, error)
	Eliminar(ctx context.Context, owner, id uuid.UUID) error
	Listar(ctx context.Context, owner uuid.UUID, filter dto.GastoFilter) (*dto.GastoListResponse, error)
	Pagadores() []string
}

type gastoService struct {
	repo      repository.GastoDiarioRepository
	pub       feed.Publisher
	pagadores []string
	now       func() time.Time
}

func NewGastoService(repo repository.GastoDiarioRepository, pub feed.Publisher, pagadores []string) GastoService {
	return &gastoService{repo: repo, pub: pub, pagadores: pagadores, now: time.Now}
}

func (s *gastoService) Pagadores() []string {
	out := make([]string, len(s.pagadores))
	copy(out, s.pagadores)
	return out
}

func (s *gastoService) pagadorValido(p string) bool {
	for _, x := range s.pagadores {
		if x == p {
			return true
		}
	}
	return false
}

func (s *gastoService) Crear(ctx context.Context, owner uuid.UUID, req dto.CrearGastoRequest) (*dto.GastoResponse, error) {
	v := validacion{}
	g := &model.GastoDiario{
		ID:            uuid.New(),
		UserID:        owner,
		NumeroFactura: strings.TrimSpace(req.NumeroFactura),
		PagadoPor:     strings.TrimSpace(req.PagadoPor),
		Timestamp:     s.now(),
	}
	if req.FechaHora != nil {
		g.Timestamp = *req.FechaHora
	}
	if g.NumeroFactura == "" {
		v.add("numero_factura", "El numero de factura es obligatorio")
	}
	if !s.pagadorValido(g.PagadoPor) {
		v.add("pagado_por", "Seleccione quien pago")
	}
	g.Productos, g.Total = productosGasto(v, req.Productos)
	if err := v.err(); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, g); err != nil {
		return nil, err
	}
	notificar(ctx, s.pub, owner, feed.GastosDiarios)
	return gastoToResponse(g), nil
}

// productosGasto validates the items and returns them with the invoice total.
func productosGasto(v validacion, reqs []dto.ProductoGastoRequest) ([]model.ProductoGasto, decimal.Decimal) {
	if len(reqs) == 0 {
		v.add("productos", "Agregue al menos un producto")
	}
	total := decimal.Zero
	out := make([]model.ProductoGasto, 0, len(reqs))
	for i, p := range reqs {
		nombre := strings.TrimSpace(p.Nombre)
		if nombre == "" || !p.Precio.IsPositive() || !p.Cantidad.IsPositive() {
			v.add(fmt.Sprintf("productos[%d]", i), "Complete nombre, precio y cantidad validos")
			continue
		}
		out = append(out, model.ProductoGasto{Nombre: nombre, Precio: p.Precio, Cantidad: p.Cantidad})
		total = total.Add(p.Precio.Mul(p.Cantidad))
	}
	return out, round2(total)
}

func (s *gastoService) Actualizar(ctx context.Context, owner, id uuid.UUID, req dto.ActualizarGastoRequest) (*dto.GastoResponse, error) {
	g, err := s.repo.FindByID(ctx, owner, id)
	if err != nil {
		return nil, notFound(err)
	}
	v := validacion{}
	if req.NumeroFactura != nil {
		g.NumeroFactura = strings.TrimSpace(*req.NumeroFactura)
		if g.NumeroFactura == "" {
			v.add("numero_factura", "El numero de factura es obligatorio")
		}
	}
	if req.PagadoPor != nil {
		g.PagadoPor = strings.TrimSpace(*req.PagadoPor)
		if !s.pagadorValido(g.PagadoPor) {
			v.add("pagado_por", "Seleccione quien pago")
		}
	}
	if req.Productos != nil {
		g.Productos, g.Total = productosGasto(v, req.Productos)
	}
	if err := v.err(); err != nil {
		return nil, err
	}
	g.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, g); err != nil {
		return nil, err
	}
	notificar(ctx, s.pub, owner, feed.GastosDiarios)
	return gastoToResponse(g), nil
}

func (s *gastoService) Eliminar(ctx context.Context, owner, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, owner, id); err != nil {
		return notFound(err)
	}
	notificar(ctx, s.pub, owner, feed.GastosDiarios)
	return nil
}

// Listar keeps gastos with at least one product whose name contains the
// filter. SoloHoy defaults to true.
func (s *gastoService) Listar(ctx context.Context, owner uuid.UUID, filter dto.GastoFilter) (*dto.GastoListResponse, error) {
	var rango repository.Rango
	if filter.SoloHoy == nil || *filter.SoloHoy {
		ini, fin := reporte.Hoy(s.now())
		rango = repository.Rango{Desde: &ini, Hasta: &fin}
	}
	gastos, err := s.repo.List(ctx, owner, rango)
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(strings.TrimSpace(filter.Producto))
	filtrados := make([]model.GastoDiario, 0, len(gastos))
	for _, g := range gastos {
		if q == "" || contieneProducto(g, q) {
			filtrados = append(filtrados, g)
		}
	}
	resp := &dto.GastoListResponse{Data: make([]dto.GastoResponse, len(filtrados)), TotalMonto: reporte.SumarGastos(filtrados)}
	for i := range filtrados {
		resp.Data[i] = *gastoToResponse(&filtrados[i])
	}
	return resp, nil
}

func contieneProducto(g model.GastoDiario, q string) bool {
	for _, p := range g.Productos {
		if strings.Contains(strings.ToLower(p.Nombre), q) {
			return true
		}
	}
	return false
}

func gastoToResponse(g *model.GastoDiario) *dto.GastoResponse {
	resp := &dto.GastoResponse{
		ID:            g.ID.String(),
		NumeroFactura: g.NumeroFactura,
		Productos:     make([]dto.ProductoGastoResponse, len(g.Productos)),
		Total:         g.Total,
		PagadoPor:     g.PagadoPor,
		Timestamp:     g.Timestamp.Format(time.RFC3339),
	}
	for i, p := range g.Productos {
		resp.Productos[i] = dto.ProductoGastoResponse{
			Nombre:   p.Nombre,
			Precio:   p.Precio,
			Cantidad: p.Cantidad,
			Subtotal: round2(p.Precio.Mul(p.Cantidad)),
		}
	}
	return resp
}
