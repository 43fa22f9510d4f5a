package handler

import (
	"errors"
	"net/http"

	"github.com/jassler1/el-refugio-de-las-gibas/internal/apierror"
	"github.com/jassler1/el-refugio-de-las-gibas/internal/dto"
	"github.com/jassler1/el-refugio-de-las-gibas/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct{ svc service.AuthService }

func NewAuthHandler(svc service.AuthService) *AuthHandler { return &AuthHandler{svc: svc} }

// Anonimo godoc
// @Summary Iniciar o reanudar una sesion anonima
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.SesionAnonimaRequest true "Dispositivo (opcional)"
// @Success 200 {object} dto.SesionResponse
// @Success 201 {object} dto.SesionResponse
// @Failure 401 {object} apierror.APIError
// @Router /v1/auth/anonimo [post]
func (h *AuthHandler) Anonimo(c *gin.Context) {
	var req dto.SesionAnonimaRequest
	// an empty body asks for a brand new session
	if c.Request.ContentLength != 0 {
		if !bindAndValidate(c, &req) {
			return
		}
	}

	resp, err := h.svc.SesionAnonima(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	status := http.StatusOK
	if resp.Nueva {
		status = http.StatusCreated
	}
	c.JSON(status, resp)
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		msg := "Token de refresco invalido o expirado"
		if errors.Is(err, service.ErrCredenciales) {
			msg = err.Error()
		}
		c.JSON(http.StatusUnauthorized, apierror.New(msg))
		return
	}
	c.JSON(http.StatusOK, resp)
}
