package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Royal-Thai-Navy-RTC/back-end-sub000/internal/domain"
	"github.com/Royal-Thai-Navy-RTC/back-end-sub000/internal/model"
	"github.com/Royal-Thai-Navy-RTC/back-end-sub000/internal/parser"
)

// Persister stores one batch of records atomically and returns how many rows
// were written.
type Persister interface {
	BatchInsert(ctx context.Context, d domain.Domain, records []*model.ExtractedRecord) (int64, error)
}

// Journal records import attempts. A persister may implement it as well.
type Journal interface {
	CreateImportLog(ctx context.Context, log model.ImportLog) error
	FinishImportLog(ctx context.Context, log model.ImportLog) error
	InsertSheetMeta(ctx context.Context, meta model.SheetMeta) error
}

// ImportOptions are the per-call inputs of an import.
type ImportOptions struct {
	BatchID    string // empty generates <domain>-<timestamp>
	ImporterID string // numeric user id, anything else is stored as null
	SourceFile string // defaults to the base name of the uploaded path
	Progress   func(ProgressEvent)
}

// ProgressEvent reports a stage of an import.
type ProgressEvent struct {
	Type      string    `json:"type"` // start/sheet/persist/done/error
	Message   string    `json:"message"`
	Data      any       `json:"data,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Coordinator runs domain pipelines and hands the records to a Persister.
// It is safe for concurrent use; each call works on its own workbook.
type Coordinator struct {
	persister Persister
	journal   Journal
	numbers   parser.NumberFormat
	now       func() time.Time
	log       zerolog.Logger
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithLogger sets the logger.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Coordinator) { c.log = log }
}

// WithClock replaces time.Now, used for batch ids and durations.
func WithClock(now func() time.Time) Option {
	return func(c *Coordinator) { c.now = now }
}

// WithNumberFormat sets how numeric cells are read.
func WithNumberFormat(f parser.NumberFormat) Option {
	return func(c *Coordinator) { c.numbers = f }
}

// WithJournal sets the import journal explicitly.
func WithJournal(j Journal) Option {
	return func(c *Coordinator) { c.journal = j }
}

// NewCoordinator creates a coordinator. When p also implements Journal it is
// used as the journal unless WithJournal says otherwise.
func NewCoordinator(p Persister, opts ...Option) *Coordinator {
	c := &Coordinator{
		persister: p,
		now:       time.Now,
		log:       zerolog.Nop(),
	}
	if j, ok := p.(Journal); ok {
		c.journal = j
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Import reads the workbook at path and imports it into d.
func (c *Coordinator) Import(ctx context.Context, path string, d domain.Domain, opts ImportOptions) (*model.ImportSummary, error) {
	if opts.SourceFile == "" {
		opts.SourceFile = filepath.Base(path)
	}
	wb, err := parser.OpenWorkbook(path)
	if err != nil {
		return nil, err
	}
	return c.ImportWorkbook(ctx, wb, d, opts)
}

// ImportReader reads a workbook from r and imports it into d.
func (c *Coordinator) ImportReader(ctx context.Context, r io.Reader, d domain.Domain, opts ImportOptions) (*model.ImportSummary, error) {
	wb, err := parser.ReadWorkbook(r)
	if err != nil {
		return nil, err
	}
	return c.ImportWorkbook(ctx, wb, d, opts)
}

// ImportWorkbook extracts, normalizes and persists one sheet. Structural
// failures are returned as *parser.StructuralError and nothing is stored.
func (c *Coordinator) ImportWorkbook(ctx context.Context, wb *parser.Workbook, d domain.Domain, opts ImportOptions) (*model.ImportSummary, error) {
	start := c.now()
	entry := model.ImportLog{
		ID:           uuid.NewString(),
		Domain:       d.Name,
		Filename:     opts.SourceFile,
		BatchID:      strings.TrimSpace(opts.BatchID),
		ImportedByID: ParseImporterID(opts.ImporterID),
		Status:       model.ImportStatusProcessing,
		StartedAt:    start,
	}
	if entry.BatchID == "" {
		entry.BatchID = DefaultBatchID(d.Name, start)
	}
	log := c.log.With().
		Str("import_id", entry.ID).
		Str("domain", d.Name).
		Str("batch_id", entry.BatchID).
		Logger()

	c.journalCreate(ctx, log, entry)
	progress(opts, "start", fmt.Sprintf("import %s into %s", opts.SourceFile, d.Name), nil)

	ext, err := parser.Extract(wb, d, parser.ExtractOptions{Numbers: c.numbers, Logger: &log})
	if ext != nil {
		entry.TotalRows = ext.TotalRows
		entry.ParsedRows = len(ext.Rows)
		entry.SkippedRows = ext.SkippedRows()
	}
	if err != nil {
		return nil, c.fail(ctx, log, opts, entry, err)
	}
	progress(opts, "sheet", fmt.Sprintf("sheet %s: %d rows, %d parsed", ext.SheetName, ext.TotalRows, len(ext.Rows)), ext.Columns.Reports())

	records := NormalizeRecords(d, ext.Rows, Batch{
		ID:           entry.BatchID,
		SourceFile:   opts.SourceFile,
		ImportedByID: entry.ImportedByID,
	})

	inserted, err := c.persister.BatchInsert(ctx, d, records)
	if err != nil {
		return nil, c.fail(ctx, log, opts, entry, fmt.Errorf("persist %s batch %s: %w", d.Name, entry.BatchID, err))
	}
	progress(opts, "persist", fmt.Sprintf("%d rows stored", inserted), nil)

	summary := &model.ImportSummary{
		ImportID:      entry.ID,
		Domain:        d.Name,
		SheetName:     d.SheetName,
		WorkbookSheet: ext.SheetName,
		BatchID:       entry.BatchID,
		TotalRows:     ext.TotalRows,
		ParsedRows:    len(ext.Rows),
		Inserted:      inserted,
		SkippedRows:   ext.SkippedRows(),
		HeaderRows:    oneBased(ext.Header.Rows),
		Columns:       ext.Columns.Reports(),
		Duration:      c.now().Sub(start),
	}

	c.journalSheet(ctx, log, entry, ext, opts.SourceFile)
	entry.Inserted = inserted
	entry.Status = model.ImportStatusCompleted
	c.journalFinish(ctx, log, entry)

	log.Info().
		Str("sheet", summary.WorkbookSheet).
		Int("total_rows", summary.TotalRows).
		Int("parsed_rows", summary.ParsedRows).
		Int64("inserted", inserted).
		Dur("duration", summary.Duration).
		Msg("import completed")
	progress(opts, "done", "import completed", summary)
	return summary, nil
}

// Preview is the dry-run result of an import.
type Preview struct {
	Domain        string                   `json:"domain"`
	SheetName     string                   `json:"sheetName"`
	WorkbookSheet string                   `json:"workbookSheet"`
	HeaderRows    []int                    `json:"headerRows"`
	Columns       []model.ColumnReport     `json:"columns"`
	TotalRows     int                      `json:"totalRows"`
	ParsedRows    int                      `json:"parsedRows"`
	SkippedRows   int                      `json:"skippedRows"`
	Records       []*model.ExtractedRecord `json:"records"`
}

// Inspect runs the pipeline without persisting anything.
func (c *Coordinator) Inspect(wb *parser.Workbook, d domain.Domain, opts ImportOptions) (*Preview, error) {
	ext, err := parser.Extract(wb, d, parser.ExtractOptions{Numbers: c.numbers, Logger: &c.log})
	if err != nil {
		return nil, err
	}
	batchID := strings.TrimSpace(opts.BatchID)
	if batchID == "" {
		batchID = DefaultBatchID(d.Name, c.now())
	}
	return &Preview{
		Domain:        d.Name,
		SheetName:     d.SheetName,
		WorkbookSheet: ext.SheetName,
		HeaderRows:    oneBased(ext.Header.Rows),
		Columns:       ext.Columns.Reports(),
		TotalRows:     ext.TotalRows,
		ParsedRows:    len(ext.Rows),
		SkippedRows:   ext.SkippedRows(),
		Records: NormalizeRecords(d, ext.Rows, Batch{
			ID:           batchID,
			SourceFile:   opts.SourceFile,
			ImportedByID: ParseImporterID(opts.ImporterID),
		}),
	}, nil
}

func (c *Coordinator) fail(ctx context.Context, log zerolog.Logger, opts ImportOptions, entry model.ImportLog, err error) error {
	entry.Status = model.ImportStatusFailed
	entry.ErrorMessage = err.Error()
	if se, ok := parser.AsStructural(err); ok {
		entry.ErrorKind = string(se.Kind)
		log.Warn().Str("kind", string(se.Kind)).Strs("missing", se.Missing).Msg(se.Message)
	} else {
		log.Error().Err(err).Msg("import failed")
	}
	c.journalFinish(ctx, log, entry)
	progress(opts, "error", err.Error(), nil)
	return err
}

// journal writes are best effort: a failing journal never fails the import.

func (c *Coordinator) journalCreate(ctx context.Context, log zerolog.Logger, entry model.ImportLog) {
	if c.journal == nil {
		return
	}
	if err := c.journal.CreateImportLog(ctx, entry); err != nil {
		log.Warn().Err(err).Msg("create import log")
	}
}

func (c *Coordinator) journalFinish(ctx context.Context, log zerolog.Logger, entry model.ImportLog) {
	if c.journal == nil {
		return
	}
	done := c.now()
	entry.CompletedAt = &done
	if err := c.journal.FinishImportLog(ctx, entry); err != nil {
		log.Warn().Err(err).Msg("finish import log")
	}
}

func (c *Coordinator) journalSheet(ctx context.Context, log zerolog.Logger, entry model.ImportLog, ext *parser.Extraction, sourceFile string) {
	if c.journal == nil {
		return
	}
	headerRows, _ := json.Marshal(oneBased(ext.Header.Rows))
	columns, _ := json.Marshal(ext.Columns.Reports())
	meta := model.SheetMeta{
		ImportLogID:  entry.ID,
		Domain:       ext.Domain,
		SheetName:    ext.SheetName,
		HeaderRows:   string(headerRows),
		TotalColumns: ext.Width,
		TotalRows:    ext.TotalRows,
		ParsedRows:   len(ext.Rows),
		ColumnsJSON:  string(columns),
		SourceFile:   sourceFile,
	}
	if err := c.journal.InsertSheetMeta(ctx, meta); err != nil {
		log.Warn().Err(err).Msg("insert sheet meta")
	}
}

func progress(opts ImportOptions, typ, msg string, data any) {
	if opts.Progress == nil {
		return
	}
	opts.Progress(ProgressEvent{Type: typ, Message: msg, Data: data, Timestamp: time.Now()})
}

func oneBased(rows []int) []int {
	out := make([]int, len(rows))
	for i, r := range rows {
		out[i] = r + 1
	}
	return out
}
