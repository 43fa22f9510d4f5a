package handler

import (
	"net/http"

	"github.com/jassler1/el-refugio-de-las-gibas/internal/dto"
	"github.com/jassler1/el-refugio-de-las-gibas/internal/middleware"
	"github.com/jassler1/el-refugio-de-las-gibas/internal/service"

	"github.com/gin-gonic/gin"
)

type InventarioHandler struct{ svc service.InventarioService }

func NewInventarioHandler(svc service.InventarioService) *InventarioHandler {
	return &InventarioHandler{svc: svc}
}

// ── Insumos ──────────────────────────────────────────────────────────────────

// CrearInsumo godoc
// @Summary      Registrar insumo
// @Description  Genera el codigo por categoria y deriva el precio de venta de la ganancia.
// @Tags         inventario
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CrearInsumoRequest true "Insumo"
// @Success      201  {object} dto.InsumoResponse
// @Failure      422  {object} apierror.ValidationError
// @Router       /v1/insumos [post]
func (h *InventarioHandler) CrearInsumo(c *gin.Context) {
	var req dto.CrearInsumoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearInsumo(c.Request.Context(), middleware.GetOwner(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *InventarioHandler) ListarInsumos(c *gin.Context) {
	var filter dto.InsumoFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.ListarInsumos(c.Request.Context(), middleware.GetOwner(c), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *InventarioHandler) ObtenerInsumo(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.ObtenerInsumo(c.Request.Context(), middleware.GetOwner(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *InventarioHandler) ActualizarInsumo(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.ActualizarInsumoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ActualizarInsumo(c.Request.Context(), middleware.GetOwner(c), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// EliminarInsumo godoc
// @Summary      Eliminar insumo
// @Description  Los kits que lo usan conservan el componente y dejan de poder armarse.
// @Tags         inventario
// @Security     BearerAuth
// @Param        id path string true "UUID del insumo"
// @Success      204
// @Failure      404 {object} apierror.APIError
// @Router       /v1/insumos/{id} [delete]
func (h *InventarioHandler) EliminarInsumo(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.EliminarInsumo(c.Request.Context(), middleware.GetOwner(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *InventarioHandler) AgregarStock(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.AgregarStockRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AgregarStock(c.Request.Context(), middleware.GetOwner(c), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *InventarioHandler) ObtenerAlertas(c *gin.Context) {
	resp, err := h.svc.ObtenerAlertas(c.Request.Context(), middleware.GetOwner(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ── Kits ─────────────────────────────────────────────────────────────────────

func (h *InventarioHandler) CrearKit(c *gin.Context) {
	var req dto.CrearKitRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearKit(c.Request.Context(), middleware.GetOwner(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *InventarioHandler) ListarKits(c *gin.Context) {
	resp, err := h.svc.ListarKits(c.Request.Context(), middleware.GetOwner(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *InventarioHandler) EliminarKit(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.EliminarKit(c.Request.Context(), middleware.GetOwner(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *InventarioHandler) AgregarStockKit(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.AgregarStockKitRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AgregarStockKit(c.Request.Context(), middleware.GetOwner(c), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *InventarioHandler) RecalcularKit(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.RecalcularKit(c.Request.Context(), middleware.GetOwner(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ── Reportes de inventario ───────────────────────────────────────────────────

func (h *InventarioHandler) VentasEsperadas(c *gin.Context) {
	resp, err := h.svc.VentasEsperadas(c.Request.Context(), middleware.GetOwner(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *InventarioHandler) MasVendidos(c *gin.Context) {
	resp, err := h.svc.MasVendidos(c.Request.Context(), middleware.GetOwner(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *InventarioHandler) ListarMovimientos(c *gin.Context) {
	var filter dto.MovimientoFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.ListarMovimientos(c.Request.Context(), middleware.GetOwner(c), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
