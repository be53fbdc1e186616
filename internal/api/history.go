package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"shiftmaster/internal/store"
)

// ListIngests returns recent ingest batches, newest first.
// GET /api/ingests
func (h *Handler) ListIngests(c *gin.Context) {
	limit := 50
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}

	logs, err := h.store.ListIngestLogs(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if logs == nil {
		logs = []store.IngestLog{}
	}
	c.JSON(http.StatusOK, gin.H{"ingests": logs})
}
