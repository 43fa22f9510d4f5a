package handler

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jassler1/el-refugio-de-las-gibas/internal/apierror"
	"github.com/jassler1/el-refugio-de-las-gibas/internal/dto"
	"github.com/jassler1/el-refugio-de-las-gibas/internal/feed"
	"github.com/jassler1/el-refugio-de-las-gibas/internal/middleware"
	"github.com/jassler1/el-refugio-de-las-gibas/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const streamHeartbeat = 25 * time.Second

// fuentes lists the collections whose changes also alter a snapshot: the
// clientes snapshot carries each client's total spend.
var fuentes = map[string][]string{
	feed.Clientes: {feed.Ventas},
}

// canalesPara returns the collections to listen on for the requested snapshots.
func canalesPara(colecciones []string) []string {
	vistos := make(map[string]bool)
	var out []string
	for _, c := range colecciones {
		for _, x := range append([]string{c}, fuentes[c]...) {
			if !vistos[x] {
				vistos[x] = true
				out = append(out, x)
			}
		}
	}
	return out
}

// afectadas returns the requested snapshots that depend on cambio.
func afectadas(colecciones []string, cambio string) []string {
	var out []string
	for _, c := range colecciones {
		if c == cambio {
			out = append(out, c)
			continue
		}
		for _, f := range fuentes[c] {
			if f == cambio {
				out = append(out, c)
				break
			}
		}
	}
	return out
}

// Suscriptor opens change subscriptions; *feed.Hub implements it.
type Suscriptor interface {
	Suscribir(ctx context.Context, owner uuid.UUID, colecciones ...string) (*feed.Suscripcion, error)
}

// Loader reads the current snapshot of one collection.
type Loader func(ctx context.Context, owner uuid.UUID) (interface{}, error)

// SnapshotLoaders maps every observable collection to the service call that
// reads it.
func SnapshotLoaders(
	inventario service.InventarioService,
	puntoVenta service.PuntoVentaService,
	clientes service.ClienteService,
	ventas service.VentaService,
	egresos service.EgresoService,
	gastos service.GastoService,
) map[string]Loader {
	return map[string]Loader{
		feed.Insumos: func(ctx context.Context, owner uuid.UUID) (interface{}, error) {
			return inventario.ListarInsumos(ctx, owner, dto.InsumoFilter{})
		},
		feed.Kits: func(ctx context.Context, owner uuid.UUID) (interface{}, error) {
			return inventario.ListarKits(ctx, owner)
		},
		feed.Clientes: func(ctx context.Context, owner uuid.UUID) (interface{}, error) {
			return clientes.Listar(ctx, owner, dto.ClienteFilter{})
		},
		feed.Ventas: func(ctx context.Context, owner uuid.UUID) (interface{}, error) {
			return ventas.ListVentas(ctx, owner, dto.VentaFilter{Page: 1, Limit: 50})
		},
		feed.Egresos: func(ctx context.Context, owner uuid.UUID) (interface{}, error) {
			return egresos.Listar(ctx, owner, dto.EgresoFilter{SoloHoy: true, Page: 1, Limit: 100})
		},
		feed.GastosDiarios: func(ctx context.Context, owner uuid.UUID) (interface{}, error) {
			return gastos.Listar(ctx, owner, dto.GastoFilter{})
		},
		feed.Comandas: func(ctx context.Context, owner uuid.UUID) (interface{}, error) {
			return puntoVenta.Mesas(ctx, owner)
		},
	}
}

// StreamHandler pushes collection snapshots over Server-Sent Events: one
// event per collection on connect, then a fresh one after every change.
type StreamHandler struct {
	hub     Suscriptor
	loaders map[string]Loader
}

func NewStreamHandler(hub Suscriptor, loaders map[string]Loader) *StreamHandler {
	return &StreamHandler{hub: hub, loaders: loaders}
}

// parseColecciones splits ?colecciones=a,b; empty means all.
func parseColecciones(raw string) ([]string, string) {
	if strings.TrimSpace(raw) == "" {
		return feed.Todas, ""
	}
	var out []string
	vistas := make(map[string]bool)
	for _, c := range strings.Split(raw, ",") {
		c = strings.TrimSpace(c)
		if c == "" || vistas[c] {
			continue
		}
		if !feed.Valida(c) {
			return nil, c
		}
		vistas[c] = true
		out = append(out, c)
	}
	if len(out) == 0 {
		return feed.Todas, ""
	}
	return out, ""
}

func (h *StreamHandler) Stream(c *gin.Context) {
	colecciones, invalida := parseColecciones(c.Query("colecciones"))
	if invalida != "" {
		c.JSON(http.StatusBadRequest, apierror.New("Coleccion desconocida: "+invalida))
		return
	}
	owner := middleware.GetOwner(c)
	ctx := c.Request.Context()

	sub, err := h.hub.Suscribir(ctx, owner, canalesPara(colecciones)...)
	if err != nil {
		respondError(c, err)
		return
	}
	defer sub.Close()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)

	for _, col := range colecciones {
		h.enviar(c, owner, col)
	}
	c.Writer.Flush()

	heartbeat := time.NewTicker(streamHeartbeat)
	defer heartbeat.Stop()

	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case cambio, ok := <-sub.Cambios():
			if !ok {
				return false
			}
			for _, col := range afectadas(colecciones, cambio.Coleccion) {
				h.enviar(c, owner, col)
			}
			return true
		case <-heartbeat.C:
			c.SSEvent("ping", time.Now().Unix())
			return true
		}
	})
}

// enviar writes the current snapshot of col as an event named after it.
// Load failures are reported as an "error" event; the stream stays open.
func (h *StreamHandler) enviar(c *gin.Context, owner uuid.UUID, col string) {
	load, ok := h.loaders[col]
	if !ok {
		return
	}
	data, err := load(c.Request.Context(), owner)
	if err != nil {
		log.Warn().Err(err).
			Str("request_id", c.GetString(middleware.RequestIDKey)).
			Str("coleccion", col).
			Msg("stream: snapshot failed")
		c.SSEvent("error", gin.H{"coleccion": col, "detail": "No se pudo leer la coleccion"})
		return
	}
	c.SSEvent(col, data)
}
