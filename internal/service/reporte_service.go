package service

import (
	"context"
	"errors"
	"time"

	"github.com/jassler1/el-refugio-de-las-gibas/internal/dto"
	"github.com/jassler1/el-refugio-de-las-gibas/internal/infra"
	"github.com/jassler1/el-refugio-de-las-gibas/internal/reporte"
	"github.com/jassler1/el-refugio-de-las-gibas/internal/repository"
	"github.com/jassler1/el-refugio-de-las-gibas/internal/worker"

	"github.com/google/uuid"
)

// ErrEmailNoDisponible is returned when report e-mailing is requested but no
// job queue is configured.
var ErrEmailNoDisponible = errors.New("el envio de reportes por correo no esta disponible")

type ReporteService interface {
	// Resumen loads and totals the three ledgers. It also backs the e-mail worker.
	Resumen(ctx context.Context, owner uuid.UUID, desde, hasta *time.Time) (reporte.Resumen, error)
	Total(ctx context.Context, owner uuid.UUID, filter dto.ReporteFilter) (*dto.ReporteTotalResponse, error)
	PDF(ctx context.Context, owner uuid.UUID, filter dto.ReporteFilter) ([]byte, error)
	EnviarPorEmail(ctx context.Context, owner uuid.UUID, req dto.EnviarReporteRequest) error
}

var _ worker.ReporteBuilder = (ReporteService)(nil)

type reporteService struct {
	ventas     repository.VentaRepository
	egresos    repository.EgresoRepository
	gastos     repository.GastoDiarioRepository
	dispatcher *worker.Dispatcher
	negocio    string
	now        func() time.Time
}

func NewReporteService(
	ventas repository.VentaRepository,
	egresos repository.EgresoRepository,
	gastos repository.GastoDiarioRepository,
	dispatcher *worker.Dispatcher,
	negocio string,
) ReporteService {
	return &reporteService{ventas: ventas, egresos: egresos, gastos: gastos, dispatcher: dispatcher, negocio: negocio, now: time.Now}
}

func (s *reporteService) Resumen(ctx context.Context, owner uuid.UUID, desde, hasta *time.Time) (reporte.Resumen, error) {
	rango := repository.Rango{Desde: desde, Hasta: hasta}
	ventas, err := s.ventas.ListAll(ctx, owner, rango)
	if err != nil {
		return reporte.Resumen{}, err
	}
	egresos, err := s.egresos.List(ctx, owner, rango)
	if err != nil {
		return reporte.Resumen{}, err
	}
	gastos, err := s.gastos.List(ctx, owner, rango)
	if err != nil {
		return reporte.Resumen{}, err
	}
	return reporte.Construir(desde, hasta, ventas, egresos, gastos), nil
}

func (s *reporteService) resumenDeFiltro(ctx context.Context, owner uuid.UUID, filter dto.ReporteFilter) (reporte.Resumen, error) {
	rango, err := rangoDeFiltro(filter.Desde, filter.Hasta, false, s.now())
	if err != nil {
		return reporte.Resumen{}, err
	}
	return s.Resumen(ctx, owner, rango.Desde, rango.Hasta)
}

func (s *reporteService) Total(ctx context.Context, owner uuid.UUID, filter dto.ReporteFilter) (*dto.ReporteTotalResponse, error) {
	r, err := s.resumenDeFiltro(ctx, owner, filter)
	if err != nil {
		return nil, err
	}
	resp := &dto.ReporteTotalResponse{
		Desde:         filter.Desde,
		Hasta:         filter.Hasta,
		TotalVentas:   r.TotalVentas,
		TotalEgresos:  r.TotalEgresos,
		TotalGastos:   r.TotalGastos,
		Inversion:     r.Inversion,
		GananciaBruta: r.GananciaBruta,
		Perdidas:      r.Perdidas,
		SaldoNeto:     r.SaldoNeto,
		Ventas:        make([]dto.VentaResponse, len(r.Ventas)),
		Egresos:       make([]dto.EgresoResponse, len(r.Egresos)),
		Gastos:        make([]dto.GastoResponse, len(r.Gastos)),
	}
	for i := range r.Ventas {
		resp.Ventas[i] = *ventaToResponse(&r.Ventas[i])
	}
	for i := range r.Egresos {
		resp.Egresos[i] = *egresoToResponse(&r.Egresos[i])
	}
	for i := range r.Gastos {
		resp.Gastos[i] = *gastoToResponse(&r.Gastos[i])
	}
	return resp, nil
}

func (s *reporteService) PDF(ctx context.Context, owner uuid.UUID, filter dto.ReporteFilter) ([]byte, error) {
	r, err := s.resumenDeFiltro(ctx, owner, filter)
	if err != nil {
		return nil, err
	}
	return infra.GenerateReportePDF(r, s.negocio)
}

func (s *reporteService) EnviarPorEmail(ctx context.Context, owner uuid.UUID, req dto.EnviarReporteRequest) error {
	// reject bad dates now rather than inside the worker
	if _, err := rangoDeFiltro(req.Desde, req.Hasta, false, s.now()); err != nil {
		return err
	}
	if s.dispatcher == nil {
		return ErrEmailNoDisponible
	}
	return s.dispatcher.EnqueueReporteEmail(ctx, worker.ReporteEmailPayload{
		UserID: owner.String(),
		Email:  req.Email,
		Desde:  req.Desde,
		Hasta:  req.Hasta,
	})
}
