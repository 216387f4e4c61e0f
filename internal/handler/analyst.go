package handler

import (
	"net/http"

	"github.com/paridu/pos-backend/internal/dto"
	"github.com/paridu/pos-backend/internal/service"

	"github.com/gin-gonic/gin"
)

type AnalystHandler struct{ svc service.AnalystService }

func NewAnalystHandler(svc service.AnalystService) *AnalystHandler {
	return &AnalystHandler{svc: svc}
}

// Ask godoc
// @Summary      Ask the store analyst
// @Description  Sends the question with a compact snapshot of recent sales and low-stock items to the hosted model. When the model is unreachable the response carries a fallback answer instead of an error.
// @Tags         analyst
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.AskAnalystRequest true "Question"
// @Success      200  {object} dto.AskAnalystResponse
// @Router       /v1/analyst/ask [post]
func (h *AnalystHandler) Ask(c *gin.Context) {
	var req dto.AskAnalystRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Ask(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
