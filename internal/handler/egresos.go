package handler

import (
	"net/http"

	"github.com/jassler1/el-refugio-de-las-gibas/internal/dto"
	"github.com/jassler1/el-refugio-de-las-gibas/internal/middleware"
	"github.com/jassler1/el-refugio-de-las-gibas/internal/service"

	"github.com/gin-gonic/gin"
)

type EgresosHandler struct{ svc service.EgresoService }

func NewEgresosHandler(svc service.EgresoService) *EgresosHandler {
	return &EgresosHandler{svc: svc}
}

// Crear godoc
// @Summary      Registrar egreso
// @Description  Tipo producto: factura con articulos, el total es la suma. Tipo servicio: nombre y total.
// @Tags         egresos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CrearEgresoRequest true "Egreso"
// @Success      201  {object} dto.EgresoResponse
// @Failure      422  {object} apierror.ValidationError
// @Router       /v1/egresos [post]
func (h *EgresosHandler) Crear(c *gin.Context) {
	var req dto.CrearEgresoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), middleware.GetOwner(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *EgresosHandler) Listar(c *gin.Context) {
	var filter dto.EgresoFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), middleware.GetOwner(c), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *EgresosHandler) Actualizar(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.ActualizarEgresoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), middleware.GetOwner(c), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *EgresosHandler) Eliminar(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Eliminar(c.Request.Context(), middleware.GetOwner(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
