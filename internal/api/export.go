package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/Royal-Thai-Navy-RTC/back-end-sub000/internal/exporter"
)

// ExportRecords GET /api/records/:domain/export?batchId=
//
// Streams the batch as an xlsx laid out like the domain template.
func (h *Handler) ExportRecords(c *gin.Context) {
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

	file, err := exporter.NewExporter(h.records).Export(c.Request.Context(), d, batchID)
	if errors.Is(err, exporter.ErrEmptyBatch) {
		c.JSON(http.StatusNotFound, gin.H{"error": "no records in batch " + batchID})
		return
	}
	if err != nil {
		h.log.Error().Err(err).Str("batch", batchID).Msg("export batch")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
		return
	}
	defer file.Close()

	c.Header("Content-Disposition", exportContentDisposition(d.Name, batchID))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := file.Write(c.Writer); err != nil {
		h.log.Error().Err(err).Str("batch", batchID).Msg("write export")
	}
}

func exportContentDisposition(domainName, batchID string) string {
	name := fmt.Sprintf("%s-%s.xlsx", domainName, batchID)
	return fmt.Sprintf("attachment; filename=\"%s.xlsx\"; filename*=UTF-8''%s", domainName, url.PathEscape(name))
}
