package handler

import (
	"net/http"

	"github.com/paridu/pos-backend/internal/dto"
	"github.com/paridu/pos-backend/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct{ svc service.AuthService }

func NewAuthHandler(svc service.AuthService) *AuthHandler { return &AuthHandler{svc: svc} }

// CreateSession godoc
// @Summary      Open a terminal session
// @Description  Role-selector login: the terminal picks an operator name and role and receives a scoped session token. No passwords exist in this system.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body body dto.CreateSessionRequest true "Operator"
// @Success      201  {object} dto.SessionResponse
// @Failure      422  {object} apierror.ValidationError
// @Router       /v1/sessions [post]
func (h *AuthHandler) CreateSession(c *gin.Context) {
	var req dto.CreateSessionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreateSession(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}
