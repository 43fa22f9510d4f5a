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

const largoResumenFactura = 150

type EgresoService interface {
	Crear(ctx context.Context, owner uuid.UUID, req dto.CrearEgresoRequest) (*dto.EgresoResponse, error)
	Actualizar(ctx context.Context, owner, id uuid.UUID, req dto.ActualizarEgresoRequest) (*dto.EgresoResponse, error)
	Eliminar(ctx context.Context, owner, id uuid.UUID) error
	Listar(ctx context.Context, owner uuid.UUID, filter dto.EgresoFilter) (*dto.EgresoListResponse, error)
}

type egresoService struct {
	repo repository.EgresoRepository
	pub  feed.Publisher
	now  func() time.Time
}

func NewEgresoService(repo repository.EgresoRepository, pub feed.Publisher) EgresoService {
	return &egresoService{repo: repo, pub: pub, now: time.Now}
}

func (s *egresoService) Crear(ctx context.Context, owner uuid.UUID, req dto.CrearEgresoRequest) (*dto.EgresoResponse, error) {
	v := validacion{}
	quien := strings.TrimSpace(req.QuienPago)
	if quien == "" {
		v.add("quien_pago", "Indique quien pago")
	}

	e := &model.Egreso{
		ID:        uuid.New(),
		UserID:    owner,
		Tipo:      req.Tipo,
		QuienPago: quien,
		Timestamp: s.now(),
	}
	if req.Fecha != nil {
		e.Timestamp = *req.Fecha
	}

	switch req.Tipo {
	case model.EgresoProducto:
		e.NumeroFactura = strings.TrimSpace(req.NumeroFactura)
		if e.NumeroFactura == "" {
			v.add("numero_factura", "El numero de factura es obligatorio")
		}
		if len(req.Articulos) == 0 {
			v.add("articulos", "Agregue al menos un articulo")
		}
		e.Total = decimal.Zero
		resumen := make([]string, 0, len(req.Articulos))
		for i, a := range req.Articulos {
			if !a.Cantidad.IsPositive() || a.Total.IsNegative() {
				v.add(fmt.Sprintf("articulos[%d]", i), "La cantidad y el total deben ser numeros validos")
				continue
			}
			desc := strings.TrimSpace(a.Descripcion)
			e.Articulos = append(e.Articulos, model.ArticuloEgreso{Descripcion: desc, Cantidad: a.Cantidad, Total: round2(a.Total)})
			e.Total = e.Total.Add(round2(a.Total))
			resumen = append(resumen, a.Cantidad.String()+"x "+desc)
		}
		e.Descripcion = descripcionFactura(e.NumeroFactura, resumen)
	case model.EgresoServicio:
		e.NombreServicio = strings.TrimSpace(req.NombreServicio)
		if e.NombreServicio == "" {
			v.add("nombre_servicio", "El nombre del servicio es obligatorio")
		}
		if req.Total == nil || !req.Total.IsPositive() {
			v.add("total", "El total debe ser mayor a 0")
		} else {
			e.Total = round2(*req.Total)
		}
		e.Descripcion = strings.TrimSpace(req.Descripcion)
		if e.Descripcion == "" {
			e.Descripcion = e.NombreServicio
		}
	default:
		v.add("tipo", "El tipo debe ser producto o servicio")
	}
	if err := v.err(); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	notificar(ctx, s.pub, owner, feed.Egresos)
	return egresoToResponse(e), nil
}

// descripcionFactura builds "Factura #N (1x A, 2x B...)" with the item
// summary cut at 150 characters.
func descripcionFactura(numero string, resumen []string) string {
	r := []rune(strings.Join(resumen, ", "))
	if len(r) > largoResumenFactura {
		r = r[:largoResumenFactura]
	}
	return fmt.Sprintf("Factura #%s (%s...)", numero, string(r))
}

func (s *egresoService) Actualizar(ctx context.Context, owner, id uuid.UUID, req dto.ActualizarEgresoRequest) (*dto.EgresoResponse, error) {
	e, err := s.repo.FindByID(ctx, owner, id)
	if err != nil {
		return nil, notFound(err)
	}
	v := validacion{}
	if req.NumeroFactura != nil && e.Tipo == model.EgresoProducto {
		e.NumeroFactura = strings.TrimSpace(*req.NumeroFactura)
	}
	if req.NombreServicio != nil && e.Tipo == model.EgresoServicio {
		e.NombreServicio = strings.TrimSpace(*req.NombreServicio)
	}
	if req.QuienPago != nil {
		e.QuienPago = strings.TrimSpace(*req.QuienPago)
		if e.QuienPago == "" {
			v.add("quien_pago", "Indique quien pago")
		}
	}
	if req.Descripcion != nil {
		e.Descripcion = strings.TrimSpace(*req.Descripcion)
	}
	if req.Total != nil {
		switch {
		case e.Tipo == model.EgresoProducto:
			v.add("total", "El total de una factura es la suma de sus articulos")
		case !req.Total.IsPositive():
			v.add("total", "El total debe ser mayor a 0")
		default:
			e.Total = round2(*req.Total)
		}
	}
	if err := v.err(); err != nil {
		return nil, err
	}
	e.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, e); err != nil {
		return nil, err
	}
	notificar(ctx, s.pub, owner, feed.Egresos)
	return egresoToResponse(e), nil
}

func (s *egresoService) Eliminar(ctx context.Context, owner, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, owner, id); err != nil {
		return notFound(err)
	}
	notificar(ctx, s.pub, owner, feed.Egresos)
	return nil
}

// Listar applies the date range in the query and the remaining filters in
// memory. TotalMonto sums every filtered row, not just the page.
func (s *egresoService) Listar(ctx context.Context, owner uuid.UUID, filter dto.EgresoFilter) (*dto.EgresoListResponse, error) {
	rango, err := rangoDeFiltro(filter.Desde, filter.Hasta, false, s.now())
	if err != nil {
		return nil, err
	}
	if filter.SoloHoy {
		ini, fin := reporte.Hoy(s.now())
		rango = repository.Rango{Desde: &ini, Hasta: &fin}
	}
	egresos, err := s.repo.List(ctx, owner, rango)
	if err != nil {
		return nil, err
	}

	quien := strings.ToLower(strings.TrimSpace(filter.QuienPago))
	filtrados := make([]model.Egreso, 0, len(egresos))
	for _, e := range egresos {
		if filter.Tipo != "" && e.Tipo != filter.Tipo {
			continue
		}
		if quien != "" && !strings.Contains(strings.ToLower(e.QuienPago), quien) {
			continue
		}
		filtrados = append(filtrados, e)
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 100
	}
	pagina, pages := reporte.Paginar(filtrados, filter.Page, filter.Limit)
	resp := &dto.EgresoListResponse{
		Data:       make([]dto.EgresoResponse, len(pagina)),
		TotalMonto: reporte.SumarEgresos(filtrados),
		Count:      len(filtrados),
		Page:       filter.Page,
		Limit:      filter.Limit,
		Pages:      pages,
	}
	for i := range pagina {
		resp.Data[i] = *egresoToResponse(&pagina[i])
	}
	return resp, nil
}

func egresoToResponse(e *model.Egreso) *dto.EgresoResponse {
	resp := &dto.EgresoResponse{
		ID:             e.ID.String(),
		Tipo:           e.Tipo,
		NumeroFactura:  e.NumeroFactura,
		NombreServicio: e.NombreServicio,
		QuienPago:      e.QuienPago,
		Descripcion:    e.Descripcion,
		Total:          e.Total,
		Timestamp:      e.Timestamp.Format(time.RFC3339),
	}
	for _, a := range e.Articulos {
		resp.Articulos = append(resp.Articulos, dto.ArticuloEgresoResponse{Descripcion: a.Descripcion, Cantidad: a.Cantidad, Total: a.Total})
	}
	return resp
}
