package handler

import (
	"net/http"

	"github.com/jassler1/el-refugio-de-las-gibas/internal/dto"
	"github.com/jassler1/el-refugio-de-las-gibas/internal/middleware"
	"github.com/jassler1/el-refugio-de-las-gibas/internal/service"

	"github.com/gin-gonic/gin"
)

type ReportesHandler struct{ svc service.ReporteService }

func NewReportesHandler(svc service.ReporteService) *ReportesHandler {
	return &ReportesHandler{svc: svc}
}

// Total godoc
// @Summary      Reporte consolidado
// @Description  Totales de ventas, egresos y gastos diarios del periodo, con el detalle de cada uno.
// @Tags         reportes
// @Produce      json
// @Security     BearerAuth
// @Param        desde query string false "Fecha YYYY-MM-DD"
// @Param        hasta query string false "Fecha YYYY-MM-DD, inclusive"
// @Success      200   {object} dto.ReporteTotalResponse
// @Failure      422   {object} apierror.ValidationError
// @Router       /v1/reportes/total [get]
func (h *ReportesHandler) Total(c *gin.Context) {
	var filter dto.ReporteFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.Total(c.Request.Context(), middleware.GetOwner(c), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ReportesHandler) PDF(c *gin.Context) {
	var filter dto.ReporteFilter
	if !bindQuery(c, &filter) {
		return
	}
	pdf, err := h.svc.PDF(c.Request.Context(), middleware.GetOwner(c), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="reporte.pdf"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// Enviar queues the report PDF for delivery by e-mail.
func (h *ReportesHandler) Enviar(c *gin.Context) {
	var req dto.EnviarReporteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.EnviarPorEmail(c.Request.Context(), middleware.GetOwner(c), req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"encolado": true})
}
