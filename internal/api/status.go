package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// StatusResponse is the health of the service.
type StatusResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Domains  int    `json:"domains"`
	Uptime   string `json:"uptime"`
}

// GetStatus GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	resp := StatusResponse{
		Status:   "ok",
		Database: "unknown",
		Domains:  len(h.domains.Names()),
		Uptime:   time.Since(h.started).Round(time.Second).String(),
	}
	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.Ping(ctx); err != nil {
			h.log.Warn().Err(err).Msg("database ping")
			resp.Status = "degraded"
			resp.Database = "unreachable"
		} else {
			resp.Database = "ok"
		}
	}
	c.JSON(http.StatusOK, resp)
}

// ListImports GET /api/imports?domain=&limit=
func (h *Handler) ListImports(c *gin.Context) {
	if h.logs == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "import journal not available for this database"})
		return
	}
	name := c.Query("domain")
	if name != "" {
		d, ok := h.domains.Lookup(name)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown domain " + name})
			return
		}
		name = d.Name
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	logs, err := h.logs.ListImportLogs(c.Request.Context(), name, limit)
	if err != nil {
		h.log.Error().Err(err).Msg("list import logs")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list imports"})
		return
	}
	if logs == nil {
		c.JSON(http.StatusOK, []any{})
		return
	}
	c.JSON(http.StatusOK, logs)
}

// ListRecords GET /api/records/:domain?batchId=
func (h *Handler) ListRecords(c *gin.Context) {
	if h.records == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "record queries not available for this database"})
		return
	}
	d, ok := h.lookup(c)
	if !ok {
		return
	}
	batchID := c.Query("batchId")
	if batchID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "batchId is required"})
		return
	}
	records, err := h.records.ListBatch(c.Request.Context(), d, batchID)
	if err != nil {
		h.log.Error().Err(err).Msg("list records")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list records"})
		return
	}
	if records == nil {
		c.JSON(http.StatusOK, []any{})
		return
	}
	c.JSON(http.StatusOK, records)
}
