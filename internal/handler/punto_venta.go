package handler

import (
	"context"
	"net/http"

	"github.com/jassler1/el-refugio-de-las-gibas/internal/dto"
	"github.com/jassler1/el-refugio-de-las-gibas/internal/middleware"
	"github.com/jassler1/el-refugio-de-las-gibas/internal/model"
	"github.com/jassler1/el-refugio-de-las-gibas/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PuntoVentaHandler exposes the table/cart session of the caller.
type PuntoVentaHandler struct{ svc service.PuntoVentaService }

func NewPuntoVentaHandler(svc service.PuntoVentaService) *PuntoVentaHandler {
	return &PuntoVentaHandler{svc: svc}
}

func (h *PuntoVentaHandler) Estado(c *gin.Context) {
	resp, err := h.svc.Estado(c.Request.Context(), middleware.GetOwner(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PuntoVentaHandler) Mesas(c *gin.Context) {
	resp, err := h.svc.Mesas(c.Request.Context(), middleware.GetOwner(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PuntoVentaHandler) AgregarMesa(c *gin.Context) {
	resp, err := h.svc.AgregarMesa(c.Request.Context(), middleware.GetOwner(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// SeleccionarMesa godoc
// @Summary      Seleccionar mesa
// @Description  Guarda la comanda de la mesa actual y carga la de la mesa elegida.
// @Tags         punto-venta
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.SeleccionarMesaRequest true "Mesa"
// @Success      200  {object} dto.SesionPOSResponse
// @Failure      409  {object} apierror.APIError
// @Router       /v1/pos/mesa [post]
func (h *PuntoVentaHandler) SeleccionarMesa(c *gin.Context) {
	var req dto.SeleccionarMesaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.SeleccionarMesa(c.Request.Context(), middleware.GetOwner(c), req.Mesa)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PuntoVentaHandler) AsignarCliente(c *gin.Context) {
	var req dto.AsignarClienteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	var clienteID *uuid.UUID
	if req.ClienteID != nil {
		id := uuid.MustParse(*req.ClienteID) // validated by the uuid tag
		clienteID = &id
	}
	resp, err := h.svc.AsignarCliente(c.Request.Context(), middleware.GetOwner(c), clienteID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PuntoVentaHandler) Catalogo(c *gin.Context) {
	var filter dto.CatalogoFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.Catalogo(c.Request.Context(), middleware.GetOwner(c), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ── Carrito ──────────────────────────────────────────────────────────────────

func (h *PuntoVentaHandler) Agregar(c *gin.Context) {
	var req dto.AgregarCarritoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	productoID := uuid.MustParse(req.ProductoID)
	resp, err := h.svc.Agregar(c.Request.Context(), middleware.GetOwner(c), model.TipoProducto(req.Tipo), productoID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PuntoVentaHandler) Incrementar(c *gin.Context) {
	h.linea(c, h.svc.Incrementar)
}

func (h *PuntoVentaHandler) Decrementar(c *gin.Context) {
	h.linea(c, h.svc.Decrementar)
}

func (h *PuntoVentaHandler) Quitar(c *gin.Context) {
	h.linea(c, h.svc.Quitar)
}

// linea runs a quantity operation on the cart line named by :producto_id.
func (h *PuntoVentaHandler) linea(c *gin.Context, op func(context.Context, uuid.UUID, uuid.UUID) (*dto.SesionPOSResponse, error)) {
	productoID, ok := parseID(c, "producto_id")
	if !ok {
		return
	}
	resp, err := op(c.Request.Context(), middleware.GetOwner(c), productoID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Checkout godoc
// @Summary      Cobrar la mesa actual
// @Description  Valida el pago, descuenta stock de forma atomica y registra la venta.
// @Tags         punto-venta
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CheckoutRequest true "Metodo y montos"
// @Success      201  {object} dto.CheckoutResponse
// @Failure      400  {object} apierror.APIError
// @Failure      409  {object} apierror.APIError
// @Router       /v1/pos/checkout [post]
func (h *PuntoVentaHandler) Checkout(c *gin.Context) {
	var req dto.CheckoutRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Checkout(c.Request.Context(), middleware.GetOwner(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}
