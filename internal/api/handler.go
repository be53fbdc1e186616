package api

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"shiftmaster/internal/config"
	"shiftmaster/internal/importer"
	"shiftmaster/internal/store"
	"shiftmaster/internal/workbook"
)

// Handler serves the upload-and-review API.
type Handler struct {
	cfg       *config.AppConfig
	store     *store.Store
	startTime time.Time

	// uploads parsed for preview, waiting for the user to confirm the append
	uploads   map[string]*uploadBatch
	uploadsMu sync.RWMutex
}

type uploadBatch struct {
	ID          string
	Files       []importer.IngestFile
	AssumedYear int
	CreatedAt   time.Time
}

// NewHandler creates the API handler.
func NewHandler(cfg *config.AppConfig, st *store.Store) *Handler {
	return &Handler{
		cfg:       cfg,
		store:     st,
		startTime: time.Now(),
		uploads:   make(map[string]*uploadBatch),
	}
}

// RegisterRoutes registers the API routes.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	// system
	router.GET("/status", h.GetStatus)

	// settings
	router.GET("/config", h.GetConfig)
	router.PATCH("/config", h.UpdateConfig)

	// upload -> preview -> confirmed append
	router.POST("/extract", h.Extract)
	router.POST("/ingest", h.Ingest)

	// master workbook
	router.GET("/master/status", h.MasterStatus)
	router.GET("/master/download", h.DownloadMaster)

	// ingest history
	router.GET("/ingests", h.ListIngests)
}

// assumedYear resolves the effective assumed year: runtime setting first,
// then the config file value (0 = current year, handled by the parser).
func (h *Handler) assumedYear() int {
	if v, err := h.store.GetSetting("assumed_year"); err == nil && v != "" {
		if year, err := strconv.Atoi(v); err == nil && year > 0 {
			return year
		}
	}
	return h.cfg.Ingest.AssumedYear
}

// masterPath resolves the effective master workbook path.
func (h *Handler) masterPath() string {
	if v, err := h.store.GetSetting("master_path"); err == nil && v != "" {
		return v
	}
	return config.MasterPath(h.cfg)
}

func (h *Handler) master() *workbook.Master {
	return workbook.NewMaster(h.masterPath())
}

func (h *Handler) takeUpload(id string) (*uploadBatch, bool) {
	h.uploadsMu.Lock()
	defer h.uploadsMu.Unlock()
	batch, ok := h.uploads[id]
	if ok {
		delete(h.uploads, id)
	}
	return batch, ok
}

func (h *Handler) putUpload(batch *uploadBatch) {
	h.uploadsMu.Lock()
	defer h.uploadsMu.Unlock()

	// drop stale previews the user never confirmed
	for id, b := range h.uploads {
		if time.Since(b.CreatedAt) > time.Hour {
			delete(h.uploads, id)
		}
	}
	h.uploads[batch.ID] = batch
}
