package handler

import (
	"net/http"

	"github.com/paridu/pos-backend/internal/apierror"
	"github.com/paridu/pos-backend/internal/dto"
	"github.com/paridu/pos-backend/internal/service"

	"github.com/gin-gonic/gin"
)

type InventoryHandler struct{ svc service.InventoryService }

func NewInventoryHandler(svc service.InventoryService) *InventoryHandler {
	return &InventoryHandler{svc: svc}
}

// AdjustStock godoc
// @Summary      Adjust stock
// @Description  Applies a signed delta (restock or correction) and records the movement. Sale decrements are written by the sale processor, not here.
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.AdjustStockRequest true "Adjustment"
// @Success      200  {object} dto.ProductResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/inventory/adjust [post]
func (h *InventoryHandler) AdjustStock(c *gin.Context) {
	var req dto.AdjustStockRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AdjustStock(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *InventoryHandler) ListHistory(c *gin.Context) {
	var filter dto.StockHistoryFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.ListHistory(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
