package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ConfigResponse is the effective runtime configuration.
type ConfigResponse struct {
	AssumedYear int    `json:"assumedYear"` // 0 = current year
	MasterPath  string `json:"masterPath"`
	DataDir     string `json:"dataDir"`
	Port        int    `json:"port"`
}

// UpdateConfigRequest is a partial settings update.
type UpdateConfigRequest struct {
	AssumedYear *int    `json:"assumedYear,omitempty"`
	MasterPath  *string `json:"masterPath,omitempty"`
}

// GetConfig returns the effective settings.
// GET /api/config
func (h *Handler) GetConfig(c *gin.Context) {
	c.JSON(http.StatusOK, ConfigResponse{
		AssumedYear: h.assumedYear(),
		MasterPath:  h.masterPath(),
		DataDir:     h.cfg.Data.DataDir,
		Port:        h.cfg.Server.Port,
	})
}

// UpdateConfig updates runtime settings (assumed year, master path). Server
// settings stay in config.toml and are not editable here.
// PATCH /api/config
func (h *Handler) UpdateConfig(c *gin.Context) {
	var req UpdateConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if req.AssumedYear != nil {
		year := *req.AssumedYear
		if year != 0 && (year < 2000 || year > 2100) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "assumedYear out of range"})
			return
		}
		if err := h.store.SetSetting("assumed_year", strconv.Itoa(year)); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}

	if req.MasterPath != nil {
		if err := h.store.SetSetting("master_path", *req.MasterPath); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}

	h.GetConfig(c)
}
