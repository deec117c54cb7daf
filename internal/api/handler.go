// Package api exposes the import pipelines over HTTP.
package api

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/Royal-Thai-Navy-RTC/back-end-sub000/internal/domain"
	"github.com/Royal-Thai-Navy-RTC/back-end-sub000/internal/importer"
	"github.com/Royal-Thai-Navy-RTC/back-end-sub000/internal/model"
)

// Importer runs one import from a file on disk.
type Importer interface {
	Import(ctx context.Context, path string, d domain.Domain, opts importer.ImportOptions) (*model.ImportSummary, error)
}

// LogReader lists journaled imports.
type LogReader interface {
	ListImportLogs(ctx context.Context, domainName string, limit int) ([]model.ImportLog, error)
}

// RecordReader reads stored batches back.
type RecordReader interface {
	ListBatch(ctx context.Context, d domain.Domain, batchID string) ([]*model.ExtractedRecord, error)
}

// Pinger checks the database.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler serves the import API.
type Handler struct {
	domains   *domain.Registry
	importer  Importer
	logs      LogReader
	records   RecordReader
	db        Pinger
	uploadDir string
	maxUpload int64
	log       zerolog.Logger
	started   time.Time
}

// Options wires the optional collaborators of a Handler.
type Options struct {
	Logs      LogReader    // nil disables GET /imports
	Records   RecordReader // nil disables GET /records and its export
	DB        Pinger
	UploadDir string // temp directory for uploads, "" uses os.TempDir
	MaxUpload int64  // bytes, 0 means 20 MiB
	Logger    zerolog.Logger
}

// NewHandler creates the API handler.
func NewHandler(domains *domain.Registry, imp Importer, opts Options) *Handler {
	if opts.MaxUpload <= 0 {
		opts.MaxUpload = 20 << 20
	}
	return &Handler{
		domains:   domains,
		importer:  imp,
		logs:      opts.Logs,
		records:   opts.Records,
		db:        opts.DB,
		uploadDir: opts.UploadDir,
		maxUpload: opts.MaxUpload,
		log:       opts.Logger,
		started:   time.Now(),
	}
}

// RegisterRoutes mounts the API under router.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/status", h.GetStatus)

	router.GET("/domains", h.ListDomains)
	router.GET("/domains/:domain", h.GetDomain)

	router.POST("/imports/:domain", h.Import)
	router.GET("/imports", h.ListImports)

	router.GET("/records/:domain", h.ListRecords)
	router.GET("/records/:domain/export", h.ExportRecords)
}
