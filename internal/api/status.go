package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const appVersion = "1.1.0"

// StatusResponse is the system status.
type StatusResponse struct {
	Version        string `json:"version"`
	UptimeSeconds  int64  `json:"uptimeSeconds"`
	MasterExists   bool   `json:"masterExists"`
	MasterRows     int    `json:"masterRows"`
	LastIngestTime string `json:"lastIngestTime,omitempty"`
}

// GetStatus returns version, uptime and master summary.
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	resp := StatusResponse{
		Version:       appVersion,
		UptimeSeconds: int64(time.Since(h.startTime).Seconds()),
	}

	if status, err := h.master().Status(); err == nil {
		resp.MasterExists = status.Exists
		resp.MasterRows = status.RowCount
	}

	if logs, err := h.store.ListIngestLogs(1); err == nil && len(logs) > 0 {
		resp.LastIngestTime = logs[0].StartedAt.UTC().Format(time.RFC3339)
	}

	c.JSON(http.StatusOK, resp)
}
