package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Royal-Thai-Navy-RTC/back-end-sub000/internal/importer"
	"github.com/Royal-Thai-Navy-RTC/back-end-sub000/internal/parser"
)

// Import POST /api/imports/:domain
//
// Multipart fields: file (xlsx), batchId and importedById (both optional).
// With ?stream=true progress is sent as server-sent events.
func (h *Handler) Import(c *gin.Context) {
	d, ok := h.lookup(c)
	if !ok {
		return
	}

	tooLarge := gin.H{"error": fmt.Sprintf("upload exceeds %d bytes", h.maxUpload)}
	if c.Request.ContentLength > h.maxUpload {
		c.JSON(http.StatusRequestEntityTooLarge, tooLarge)
		return
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUpload)
	upload, err := c.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			c.JSON(http.StatusRequestEntityTooLarge, tooLarge)
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing upload field \"file\""})
		return
	}

	dir := h.uploadDir
	if dir == "" {
		dir = os.TempDir()
	}
	filename := filepath.Base(upload.Filename)
	tempPath := filepath.Join(dir, fmt.Sprintf("rtc_import_%d_%s", time.Now().UnixNano(), filename))
	// a failed save can leave a partial file behind
	defer os.Remove(tempPath)
	if err := c.SaveUploadedFile(upload, tempPath); err != nil {
		h.log.Error().Err(err).Msg("save upload")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save upload"})
		return
	}

	opts := importer.ImportOptions{
		BatchID:    c.PostForm("batchId"),
		ImporterID: c.PostForm("importedById"),
		SourceFile: filename,
	}

	if c.Query("stream") != "true" {
		summary, err := h.importer.Import(c.Request.Context(), tempPath, d, opts)
		if err != nil {
			h.writeImportError(c, err)
			return
		}
		c.JSON(http.StatusOK, summary)
		return
	}

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "streaming not supported"})
		return
	}
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)

	send := func(evt importer.ProgressEvent) {
		data, err := json.Marshal(evt)
		if err != nil {
			return
		}
		fmt.Fprintf(c.Writer, "data: %s\n\n", data)
		flusher.Flush()
	}
	opts.Progress = func(evt importer.ProgressEvent) {
		// the terminal events are sent below with their payload
		if evt.Type != "done" && evt.Type != "error" {
			send(evt)
		}
	}

	summary, err := h.importer.Import(c.Request.Context(), tempPath, d, opts)
	if err != nil {
		send(importer.ProgressEvent{Type: "error", Message: err.Error(), Data: errorBody(err), Timestamp: time.Now()})
		return
	}
	send(importer.ProgressEvent{Type: "done", Message: "import completed", Data: summary, Timestamp: time.Now()})
}

func errorBody(err error) gin.H {
	if se, ok := parser.AsStructural(err); ok {
		return gin.H{"kind": se.Kind, "message": se.Message, "sheet": se.Sheet, "missing": se.Missing}
	}
	return gin.H{"error": "import failed"}
}

// writeImportError maps structural errors to 422 and anything else to 500.
func (h *Handler) writeImportError(c *gin.Context, err error) {
	if _, ok := parser.AsStructural(err); ok {
		c.JSON(http.StatusUnprocessableEntity, errorBody(err))
		return
	}
	h.log.Error().Err(err).Str("path", c.FullPath()).Msg("import failed")
	c.JSON(http.StatusInternalServerError, errorBody(err))
}
