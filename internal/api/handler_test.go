package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/Royal-Thai-Navy-RTC/back-end-sub000/internal/domain"
	"github.com/Royal-Thai-Navy-RTC/back-end-sub000/internal/importer"
	"github.com/Royal-Thai-Navy-RTC/back-end-sub000/internal/model"
	"github.com/Royal-Thai-Navy-RTC/back-end-sub000/internal/store"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type failingImporter struct{}

func (failingImporter) Import(context.Context, string, domain.Domain, importer.ImportOptions) (*model.ImportSummary, error) {
	return nil, errors.New("database is locked")
}

func newRouter(t *testing.T, imp Importer, opts Options) *gin.Engine {
	t.Helper()
	reg, err := domain.DefaultRegistry(nil)
	require.NoError(t, err)

	r := gin.New()
	NewHandler(reg, imp, opts).RegisterRoutes(r.Group("/api"))
	return r
}

func newStoreRouter(t *testing.T) (*gin.Engine, *store.Store) {
	t.Helper()
	st, err := store.New(filepath.Join(t.TempDir(), "rtc.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	r := newRouter(t, importer.NewCoordinator(st), Options{
		Logs:      st,
		Records:   st,
		DB:        st,
		UploadDir: t.TempDir(),
	})
	return r, st
}

func ethicsWorkbook(t *testing.T, sheet string) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetName("Sheet1", sheet))

	rows := [][]any{
		{"ลำดับ", "กองพัน", "กองร้อย", "คะแนนรวม", "ร้อยละ", "หมายเหตุ"},
		{1, "กองพันที่ 1", "กองร้อยที่ 1", 85, 85, ""},
		{2, "", "กองร้อยที่ 2", 90, 90, "อันดับ 1"},
	}
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &rows[i]))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func uploadRequest(t *testing.T, url string, file []byte, fields map[string]string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	if file != nil {
		part, err := w.CreateFormFile("file", "ethics.xlsx")
		require.NoError(t, err)
		_, err = part.Write(file)
		require.NoError(t, err)
	}
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, url, &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestImport_Success(t *testing.T) {
	t.Parallel()

	r, _ := newStoreRouter(t)
	req := uploadRequest(t, "/api/imports/ethics", ethicsWorkbook(t, "คุณธรรมจริยธรรม"), map[string]string{
		"batchId":      "ethics-api-1",
		"importedById": "3",
	})
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var summary model.ImportSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	assert.Equal(t, "ethics-api-1", summary.BatchID)
	assert.Equal(t, 2, summary.ParsedRows)
	assert.Equal(t, int64(2), summary.Inserted)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/records/ethics?batchId=ethics-api-1", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var records []model.ExtractedRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &records))
	require.Len(t, records, 2)
	require.NotNil(t, records[1].Battalion)
	assert.Equal(t, "กองพันที่ 1", *records[1].Battalion)
	assert.Equal(t, 3, *records[1].ImportedByID)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/imports?domain=ethics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var logs []model.ImportLog
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &logs))
	require.Len(t, logs, 1)
	assert.Equal(t, model.ImportStatusCompleted, logs[0].Status)
}

func TestImport_StructuralErrorIs422(t *testing.T) {
	t.Parallel()

	r, _ := newStoreRouter(t)
	req := uploadRequest(t, "/api/imports/ethics", ethicsWorkbook(t, "อื่นๆ"), nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "SHEET_NOT_FOUND", body["kind"])
}

func TestImport_PersistenceErrorIs500(t *testing.T) {
	t.Parallel()

	r := newRouter(t, failingImporter{}, Options{UploadDir: t.TempDir()})
	req := uploadRequest(t, "/api/imports/ethics", ethicsWorkbook(t, "คุณธรรมจริยธรรม"), nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "locked")
}

func TestImport_BadRequests(t *testing.T) {
	t.Parallel()

	r, _ := newStoreRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, uploadRequest(t, "/api/imports/unknown", ethicsWorkbook(t, "x"), nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, uploadRequest(t, "/api/imports/ethics", nil, map[string]string{"batchId": "b"}))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestImport_TooLarge(t *testing.T) {
	t.Parallel()

	r := newRouter(t, failingImporter{}, Options{UploadDir: t.TempDir(), MaxUpload: 1024})
	big := bytes.Repeat([]byte("x"), 4096)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, uploadRequest(t, "/api/imports/ethics", big, nil))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestImport_Stream(t *testing.T) {
	t.Parallel()

	r, _ := newStoreRouter(t)
	req := uploadRequest(t, "/api/imports/ethics?stream=true", ethicsWorkbook(t, "คุณธรรมจริยธรรม"), nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))
	events := strings.Split(strings.TrimSpace(rec.Body.String()), "\n\n")
	require.NotEmpty(t, events)
	assert.Contains(t, events[0], `"type":"start"`)
	assert.Contains(t, events[len(events)-1], `"type":"done"`)
}

func TestDomainsAndStatus(t *testing.T) {
	t.Parallel()

	r, _ := newStoreRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/domains", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var domains []DomainInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &domains))
	assert.Len(t, domains, 7)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/domains/discipline", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var d DomainInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &d))
	assert.Equal(t, "remaining_points", d.Scores["total"])

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/status", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var status StatusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, "ok", status.Database)
	assert.Equal(t, 7, status.Domains)
}

func TestListImports_NoJournal(t *testing.T) {
	t.Parallel()

	r := newRouter(t, failingImporter{}, Options{})
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/imports", nil))
	assert.Equal(t, http.StatusNotImplemented, rec.Code)
}

func TestExportRecords(t *testing.T) {
	t.Parallel()

	r, _ := newStoreRouter(t)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, uploadRequest(t, "/api/imports/ethics", ethicsWorkbook(t, "คุณธรรมจริยธรรม"), map[string]string{"batchId": "exp-1"}))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/records/ethics/export?batchId=exp-1", nil))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "ethics-exp-1.xlsx")

	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("คุณธรรมจริยธรรม")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "กองพันที่ 1", rows[2][1])
	assert.Equal(t, "อันดับ 1", rows[2][5])

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/records/ethics/export?batchId=none", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/records/ethics/export", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestImport_RemovesUploadOnEveryPath(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	r := newRouter(t, failingImporter{}, Options{UploadDir: dir})
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, uploadRequest(t, "/api/imports/ethics", ethicsWorkbook(t, "คุณธรรมจริยธรรม"), nil))
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)

	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("not a directory"), 0o644))
	r = newRouter(t, failingImporter{}, Options{UploadDir: filepath.Join(blocker, "uploads")})
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, uploadRequest(t, "/api/imports/ethics", ethicsWorkbook(t, "คุณธรรมจริยธรรม"), nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "failed to save upload")
}
