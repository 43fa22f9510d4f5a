package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jassler1/el-refugio-de-las-gibas/internal/apierror"
	"github.com/jassler1/el-refugio-de-las-gibas/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newErrorEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), middleware.Recovery(), middleware.ErrorHandler())
	return r
}

func TestErrorHandler_OcultaLaCausa(t *testing.T) {
	r := newErrorEngine()
	r.GET("/x", func(c *gin.Context) {
		_ = c.Error(errors.New("pq: relation \"ventas\" does not exist"))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), apierror.MensajeInterno)
	assert.NotContains(t, w.Body.String(), "relation")
}

func TestErrorHandler_NoPisaRespuestaEnviada(t *testing.T) {
	r := newErrorEngine()
	r.GET("/ticket", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/pdf", []byte("%PDF"))
		_ = c.Error(errors.New("cliente desconectado"))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ticket", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "%PDF", w.Body.String())
}

func TestRecovery_PanicEs500(t *testing.T) {
	r := newErrorEngine()
	r.GET("/boom", func(c *gin.Context) { panic("nil map") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"detail":"`+apierror.MensajeInterno+`"}`, w.Body.String())
}
