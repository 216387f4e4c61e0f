package handler

import (
	"net/http"

	"github.com/paridu/pos-backend/internal/apierror"
	"github.com/paridu/pos-backend/internal/dto"
	"github.com/paridu/pos-backend/internal/middleware"
	"github.com/paridu/pos-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type SalesHandler struct{ svc service.SaleService }

func NewSalesHandler(svc service.SaleService) *SalesHandler { return &SalesHandler{svc: svc} }

// ProcessSale godoc
// @Summary      Process a sale
// @Description  Commits the cart atomically: creates the sale, decrements stock, records stock movements and accrues loyalty points. Sheet export is dispatched asynchronously.
// @Tags         sales
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.ProcessSaleRequest true "Cart"
// @Success      201  {object} dto.SaleResponse
// @Failure      400  {object} apierror.APIError
// @Failure      404  {object} apierror.APIError
// @Router       /v1/sales [post]
func (h *SalesHandler) ProcessSale(c *gin.Context) {
	var req dto.ProcessSaleRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ProcessSale(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	middleware.SalesProcessedTotal.WithLabelValues(resp.PaymentMethod).Inc()

	// Who rang it up goes to the audit log, not onto the sale itself.
	operator := "unknown"
	if claims := middleware.GetClaims(c); claims != nil {
		operator = claims.Name
	}
	log.Info().
		Str("operator", operator).
		Str("sale_id", resp.ID).
		Str("payment_method", resp.PaymentMethod).
		Msg("sale committed")

	c.JSON(http.StatusCreated, resp)
}

// List godoc
// @Summary      List sales
// @Tags         sales
// @Produce      json
// @Security     BearerAuth
// @Param        date           query string false "Day filter YYYY-MM-DD"
// @Param        payment_method query string false "cash | qrcode | credit"
// @Param        customer_id    query string false "Customer UUID"
// @Param        page           query int    false "Page (default 1)"
// @Param        limit          query int    false "Page size (default 50)"
// @Success      200  {object} dto.SaleListResponse
// @Router       /v1/sales [get]
func (h *SalesHandler) List(c *gin.Context) {
	var filter dto.SaleFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.ListSales(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *SalesHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	resp, err := h.svc.GetSale(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
