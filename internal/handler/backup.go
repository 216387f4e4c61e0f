package handler

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/paridu/pos-backend/internal/apierror"
	"github.com/paridu/pos-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// maxBackupBytes caps the restore upload; a store dump is a few MB at most.
const maxBackupBytes = 32 << 20

type BackupHandler struct{ svc service.BackupService }

func NewBackupHandler(svc service.BackupService) *BackupHandler {
	return &BackupHandler{svc: svc}
}

// Export godoc
// @Summary      Download a full store backup
// @Tags         backup
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.BackupDocument
// @Router       /v1/backup [get]
func (h *BackupHandler) Export(c *gin.Context) {
	doc, err := h.svc.Export(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	filename := fmt.Sprintf("pos-backup-%s.json", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.JSON(http.StatusOK, doc)
}

// Restore godoc
// @Summary      Replace the store state from a backup document
// @Description  The document is shape-checked before anything is written; a rejected or failed restore leaves the current data untouched.
// @Tags         backup
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Success      204
// @Failure      400 {object} apierror.APIError
// @Router       /v1/backup/restore [post]
func (h *BackupHandler) Restore(c *gin.Context) {
	raw, err := io.ReadAll(io.LimitReader(c.Request.Body, maxBackupBytes+1))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("failed to read request body"))
		return
	}
	if len(raw) > maxBackupBytes {
		c.JSON(http.StatusRequestEntityTooLarge, apierror.New("backup document too large"))
		return
	}
	if err := h.svc.Restore(c.Request.Context(), raw); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
