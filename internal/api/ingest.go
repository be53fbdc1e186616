package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"shiftmaster/internal/importer"
)

// IngestRequest confirms a previously previewed upload batch.
type IngestRequest struct {
	UploadID string `json:"uploadId"`
}

// Ingest appends a previewed batch to the master workbook, streaming
// progress as SSE. The upload handle is consumed either way; a failed batch
// must be re-uploaded.
// POST /api/ingest
func (h *Handler) Ingest(c *gin.Context) {
	var req IngestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	batch, ok := h.takeUpload(req.UploadID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown or expired uploadId"})
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "streaming not supported"})
		return
	}

	coordinator := importer.NewCoordinator(h.master(), h.store)
	progressChan := coordinator.Ingest(importer.IngestOptions{
		Files:       batch.Files,
		AssumedYear: batch.AssumedYear,
	})

	for event := range progressChan {
		eventData, err := json.Marshal(event)
		if err != nil {
			continue
		}

		// SSE framing: data: {json}\n\n
		fmt.Fprintf(c.Writer, "data: %s\n\n", eventData)
		flusher.Flush()
	}
}
