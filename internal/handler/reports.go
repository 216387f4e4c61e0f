package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/paridu/pos-backend/internal/apierror"
	"github.com/paridu/pos-backend/internal/service"

	"github.com/gin-gonic/gin"
)

type ReportsHandler struct{ svc service.ReportService }

func NewReportsHandler(svc service.ReportService) *ReportsHandler {
	return &ReportsHandler{svc: svc}
}

func (h *ReportsHandler) Summary(c *gin.Context) {
	resp, err := h.svc.Summary(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ReportsHandler) RevenueSeries(c *gin.Context) {
	days := 7
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, apierror.New("days must be a positive integer"))
			return
		}
		days = parsed
	}
	resp, err := h.svc.RevenueSeries(c.Request.Context(), days)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ExportCSV godoc
// @Summary      Download sales history as CSV
// @Tags         reports
// @Produce      text/csv
// @Security     BearerAuth
// @Success      200 {string} string "CSV file"
// @Router       /v1/reports/sales.csv [get]
func (h *ReportsHandler) ExportCSV(c *gin.Context) {
	filename := fmt.Sprintf("sales-%s.csv", time.Now().Format("2006-01-02"))
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)

	if err := h.svc.ExportSalesCSV(c.Request.Context(), c.Writer); err != nil {
		// Headers are already out; all we can do is log via the error chain.
		_ = c.Error(err)
	}
}
