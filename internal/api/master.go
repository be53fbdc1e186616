package api

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"shiftmaster/internal/workbook"
)

// MasterStatus reports the master workbook location, size and row count.
// GET /api/master/status
func (h *Handler) MasterStatus(c *gin.Context) {
	status, err := h.master().Status()
	if err != nil {
		var schemaErr *workbook.SchemaError
		if errors.As(err, &schemaErr) {
			c.JSON(http.StatusConflict, gin.H{"error": schemaErr.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, status)
}

// DownloadMaster streams the master workbook file.
// GET /api/master/download
func (h *Handler) DownloadMaster(c *gin.Context) {
	path := h.masterPath()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		c.JSON(http.StatusNotFound, gin.H{"error": "master workbook does not exist yet"})
		return
	}
	c.FileAttachment(path, filepath.Base(path))
}
