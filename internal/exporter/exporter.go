// Package exporter writes stored batches back out as workbooks in the layout
// of their domain, so an exported file can be corrected and imported again.
package exporter

import (
	"context"
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/Royal-Thai-Navy-RTC/back-end-sub000/internal/domain"
	"github.com/Royal-Thai-Navy-RTC/back-end-sub000/internal/model"
)

// RecordReader reads one stored batch.
type RecordReader interface {
	ListBatch(ctx context.Context, d domain.Domain, batchID string) ([]*model.ExtractedRecord, error)
}

// Exporter renders batches as xlsx.
type Exporter struct {
	records RecordReader
}

// NewExporter creates an exporter over records.
func NewExporter(records RecordReader) *Exporter {
	return &Exporter{records: records}
}

// ErrEmptyBatch is returned when a batch has no stored rows.
var ErrEmptyBatch = errors.New("batch has no records")

// Export loads batchID of d and renders it. The caller closes the file.
func (e *Exporter) Export(ctx context.Context, d domain.Domain, batchID string) (*excelize.File, error) {
	records, err := e.records.ListBatch(ctx, d, batchID)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrEmptyBatch
	}
	return Render(d, records)
}

type column struct {
	title string
	value func(r *model.ExtractedRecord) any
}

func columns(d domain.Domain) []column {
	cols := []column{
		{d.HeaderTitle(domain.RoleOrder), func(r *model.ExtractedRecord) any { return r.OrderNumber }},
		{d.HeaderTitle(domain.RoleBattalion), func(r *model.ExtractedRecord) any { return deref(r.Battalion) }},
		{d.HeaderTitle(domain.RoleCompany), func(r *model.ExtractedRecord) any { return deref(r.Company) }},
	}
	if d.HasRule(domain.RolePlatoon) {
		cols = append(cols, column{d.HeaderTitle(domain.RolePlatoon), func(r *model.ExtractedRecord) any { return deref(r.Platoon) }})
	}
	for _, s := range d.Scores {
		role := s.Role
		cols = append(cols, column{d.HeaderTitle(role), func(r *model.ExtractedRecord) any {
			v := r.Score(role)
			if !v.Valid {
				return ""
			}
			f, _ := v.Decimal.Float64()
			return f
		}})
	}
	return append(cols, column{d.HeaderTitle(domain.RoleNote), func(r *model.ExtractedRecord) any { return deref(r.Note) }})
}

// Render writes records into a new workbook with one sheet named after d.
func Render(d domain.Domain, records []*model.ExtractedRecord) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", d.SheetName); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("name sheet: %w", err)
	}

	cols := columns(d)
	header := make([]any, len(cols))
	for i, c := range cols {
		header[i] = c.title
	}
	if err := f.SetSheetRow(d.SheetName, "A1", &header); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("write header: %w", err)
	}

	for i, r := range records {
		row := make([]any, len(cols))
		for j, c := range cols {
			row[j] = c.value(r)
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(d.SheetName, cell, &row); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := f.SetPanes(d.SheetName, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("freeze header: %w", err)
	}
	return f, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
