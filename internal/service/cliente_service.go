package service

import (
	"context"
	"crypto/rand"
	"math/big"
	"sort"
	"strings"
	"time"

	"github.com/jassler1/el-refugio-de-las-gibas/internal/dto"
	"github.com/jassler1/el-refugio-de-las-gibas/internal/feed"
	"github.com/jassler1/el-refugio-de-las-gibas/internal/model"
	"github.com/jassler1/el-refugio-de-las-gibas/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	alfabetoCodigo   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	largoCodigo      = 6
	topPorDefecto    = 10
	maxIntentosClien = 3
)

type ClienteService interface {
	Crear(ctx context.Context, owner uuid.UUID, req dto.CrearClienteRequest) (*dto.ClienteResponse, error)
	Actualizar(ctx context.Context, owner, id uuid.UUID, req dto.ActualizarClienteRequest) (*dto.ClienteResponse, error)
	Eliminar(ctx context.Context, owner, id uuid.UUID) error
	Obtener(ctx context.Context, owner, id uuid.UUID) (*model.Cliente, error)
	// Listar includes the total each client has spent.
	Listar(ctx context.Context, owner uuid.UUID, filter dto.ClienteFilter) ([]dto.ClienteResponse, error)
	TopConsumidores(ctx context.Context, owner uuid.UUID, n int) ([]dto.TopConsumidorResponse, error)
}

type clienteService struct {
	repo   repository.ClienteRepository
	ventas repository.VentaRepository
	pub    feed.Publisher
}

func NewClienteService(repo repository.ClienteRepository, ventas repository.VentaRepository, pub feed.Publisher) ClienteService {
	return &clienteService{repo: repo, ventas: ventas, pub: pub}
}

func (s *clienteService) Crear(ctx context.Context, owner uuid.UUID, req dto.CrearClienteRequest) (*dto.ClienteResponse, error) {
	v := validacion{}
	nombre := normalizarNombre(req.NombreCompleto)
	validarNombreCliente(v, nombre)
	validarDescuento(v, req.Descuento)
	if err := v.err(); err != nil {
		return nil, err
	}

	c := &model.Cliente{
		UserID:         owner,
		NombreCompleto: nombre,
		CI:             strings.TrimSpace(req.CI),
		Telefono:       strings.TrimSpace(req.Telefono),
		Instagram:      limpiarOpcional(req.Instagram),
		Descuento:      req.Descuento,
	}
	var err error
	for intento := 0; intento < maxIntentosClien; intento++ {
		c.ID = uuid.New()
		if c.Codigo, err = codigoCliente(); err != nil {
			return nil, err
		}
		if err = s.repo.Create(ctx, c); err == nil || !repository.IsUniqueViolation(err) {
			break
		}
	}
	if err != nil {
		return nil, err
	}
	notificar(ctx, s.pub, owner, feed.Clientes)
	return clienteToResponse(c, decimal.Zero), nil
}

func (s *clienteService) Actualizar(ctx context.Context, owner, id uuid.UUID, req dto.ActualizarClienteRequest) (*dto.ClienteResponse, error) {
	c, err := s.repo.FindByID(ctx, owner, id)
	if err != nil {
		return nil, notFound(err)
	}
	v := validacion{}
	if req.NombreCompleto != nil {
		c.NombreCompleto = normalizarNombre(*req.NombreCompleto)
		validarNombreCliente(v, c.NombreCompleto)
	}
	if req.CI != nil {
		c.CI = strings.TrimSpace(*req.CI)
	}
	if req.Telefono != nil {
		c.Telefono = strings.TrimSpace(*req.Telefono)
	}
	if req.Instagram != nil {
		c.Instagram = limpiarOpcional(req.Instagram)
	}
	if req.Descuento != nil {
		validarDescuento(v, *req.Descuento)
		c.Descuento = *req.Descuento
	}
	if err := v.err(); err != nil {
		return nil, err
	}
	c.UpdatedAt = time.Now()
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	notificar(ctx, s.pub, owner, feed.Clientes)
	totales, err := s.ventas.TotalesPorCliente(ctx, owner)
	if err != nil {
		return nil, err
	}
	return clienteToResponse(c, totales[c.ID]), nil
}

func (s *clienteService) Eliminar(ctx context.Context, owner, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, owner, id); err != nil {
		return notFound(err)
	}
	notificar(ctx, s.pub, owner, feed.Clientes)
	return nil
}

func (s *clienteService) Obtener(ctx context.Context, owner, id uuid.UUID) (*model.Cliente, error) {
	c, err := s.repo.FindByID(ctx, owner, id)
	if err != nil {
		return nil, notFound(err)
	}
	return c, nil
}

func (s *clienteService) Listar(ctx context.Context, owner uuid.UUID, filter dto.ClienteFilter) ([]dto.ClienteResponse, error) {
	clientes, err := s.repo.List(ctx, owner, filter)
	if err != nil {
		return nil, err
	}
	totales, err := s.ventas.TotalesPorCliente(ctx, owner)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ClienteResponse, len(clientes))
	for i := range clientes {
		resp[i] = *clienteToResponse(&clientes[i], totales[clientes[i].ID])
	}
	return resp, nil
}

// TopConsumidores returns the n clients with the highest positive spend.
func (s *clienteService) TopConsumidores(ctx context.Context, owner uuid.UUID, n int) ([]dto.TopConsumidorResponse, error) {
	if n <= 0 {
		n = topPorDefecto
	}
	clientes, err := s.repo.List(ctx, owner, dto.ClienteFilter{})
	if err != nil {
		return nil, err
	}
	totales, err := s.ventas.TotalesPorCliente(ctx, owner)
	if err != nil {
		return nil, err
	}

	top := make([]dto.TopConsumidorResponse, 0, len(clientes))
	for _, c := range clientes {
		gastado := totales[c.ID]
		if !gastado.IsPositive() {
			continue
		}
		top = append(top, dto.TopConsumidorResponse{
			ClienteID:      c.ID.String(),
			NombreCompleto: c.NombreCompleto,
			Codigo:         c.Codigo,
			TotalGastado:   gastado,
		})
	}
	sort.SliceStable(top, func(i, j int) bool { return top[i].TotalGastado.GreaterThan(top[j].TotalGastado) })
	if len(top) > n {
		top = top[:n]
	}
	return top, nil
}

// ── helpers ───────────────────────────────────────────────────────────────────

func validarNombreCliente(v validacion, nombre string) {
	if nombre == "" || !soloLetrasYEspacios(nombre) {
		v.add("nombre_completo", "El nombre solo puede contener letras y espacios")
	}
}

func validarDescuento(v validacion, d decimal.Decimal) {
	if d.IsNegative() || d.GreaterThan(cien) {
		v.add("descuento", "El descuento debe estar entre 0 y 100")
	}
}

func limpiarOpcional(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}

// codigoCliente draws a random 6-character code from [A-Z0-9].
func codigoCliente() (string, error) {
	var b strings.Builder
	limite := big.NewInt(int64(len(alfabetoCodigo)))
	for i := 0; i < largoCodigo; i++ {
		n, err := rand.Int(rand.Reader, limite)
		if err != nil {
			return "", err
		}
		b.WriteByte(alfabetoCodigo[n.Int64()])
	}
	return b.String(), nil
}

func clienteToResponse(c *model.Cliente, gastado decimal.Decimal) *dto.ClienteResponse {
	return &dto.ClienteResponse{
		ID:             c.ID.String(),
		NombreCompleto: c.NombreCompleto,
		CI:             c.CI,
		Telefono:       c.Telefono,
		Instagram:      c.Instagram,
		Descuento:      c.Descuento,
		Codigo:         c.Codigo,
		TotalGastado:   gastado,
		CreatedAt:      c.CreatedAt.Format(time.RFC3339),
	}
}
