package api

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"shiftmaster/internal/importer"
	"shiftmaster/internal/model"
	"shiftmaster/internal/parser"
)

// uploads larger than this are rejected outright
const maxUploadBytes = 32 << 20

// FilePreview is the extraction preview for one uploaded document.
type FilePreview struct {
	Filename string             `json:"filename"`
	Status   string             `json:"status"` // extracted/error
	Report   *model.ShiftReport `json:"report,omitempty"`
	Rows     int                `json:"rows"`
	NewRows  int                `json:"newRows"` // rows not already in the master
	Error    string             `json:"error,omitempty"`
}

// ExtractResponse is the preview for one upload batch.
type ExtractResponse struct {
	UploadID    string        `json:"uploadId"`
	AssumedYear int           `json:"assumedYear"`
	Files       []FilePreview `json:"files"`
	Warning     string        `json:"warning,omitempty"`
}

// Extract parses uploaded shift reports and returns a preview without
// touching the master. The batch is cached under uploadId until the user
// confirms via POST /api/ingest.
// POST /api/extract
func (h *Handler) Extract(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid form data"})
		return
	}

	files := form.File["files"]
	if len(files) == 0 {
		files = form.File["file"]
	}
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no uploaded files"})
		return
	}

	assumedYear := h.assumedYear()
	if v := c.PostForm("assumedYear"); v != "" {
		if year, err := strconv.Atoi(v); err == nil && year > 0 {
			assumedYear = year
		}
	}

	resp := ExtractResponse{
		UploadID:    uuid.New().String(),
		AssumedYear: assumedYear,
	}

	// known keys let the preview show what an append would actually add;
	// a broken master must not block previewing, only appending
	existingKeys, keysErr := h.master().Keys()
	if keysErr != nil {
		resp.Warning = fmt.Sprintf("master not readable, duplicate preview unavailable: %v", keysErr)
	}

	p := parser.New(assumedYear)
	batch := &uploadBatch{
		ID:          resp.UploadID,
		AssumedYear: assumedYear,
		CreatedAt:   time.Now(),
	}

	for _, fh := range files {
		name := filepath.Base(fh.Filename)
		data, err := readUpload(fh)
		if err != nil {
			resp.Files = append(resp.Files, FilePreview{
				Filename: name,
				Status:   "error",
				Error:    err.Error(),
			})
			continue
		}

		batch.Files = append(batch.Files, importer.IngestFile{Name: name, Data: data})

		report, err := p.Parse(name, data)
		if err != nil {
			resp.Files = append(resp.Files, FilePreview{
				Filename: name,
				Status:   "error",
				Error:    err.Error(),
			})
			continue
		}

		preview := FilePreview{
			Filename: name,
			Status:   "extracted",
			Report:   report,
			Rows:     len(report.Items),
		}
		if keysErr == nil {
			for _, row := range model.RowsFromReport(report, time.Time{}) {
				if !existingKeys[row.DedupKey()] {
					preview.NewRows++
				}
			}
		}
		resp.Files = append(resp.Files, preview)
	}

	if len(batch.Files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no readable files in upload", "files": resp.Files})
		return
	}

	h.putUpload(batch)
	c.JSON(http.StatusOK, resp)
}

func readUpload(fh *multipart.FileHeader) ([]byte, error) {
	if fh.Size > maxUploadBytes {
		return nil, fmt.Errorf("file too large (%d bytes)", fh.Size)
	}
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxUploadBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if len(data) > maxUploadBytes {
		return nil, fmt.Errorf("file too large")
	}
	return data, nil
}
