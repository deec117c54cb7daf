package parser

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/Royal-Thai-Navy-RTC/back-end-sub000/internal/domain"
)

// ExtractOptions tunes an extraction run.
type ExtractOptions struct {
	Numbers NumberFormat
	Logger  *zerolog.Logger
}

func (o ExtractOptions) logger() zerolog.Logger {
	if o.Logger == nil {
		return zerolog.Nop()
	}
	return *o.Logger
}

// Extract runs the pipeline of d over wb: locate the sheet, detect the header,
// classify columns and walk the data rows. It never touches storage.
func Extract(wb *Workbook, d domain.Domain, opts ExtractOptions) (*Extraction, error) {
	log := opts.logger().With().Str("domain", d.Name).Logger()

	sheet, err := LocateSheet(wb, d)
	if err != nil {
		return nil, err
	}
	g := sheet.Grid

	header, err := DetectHeader(g, d)
	if err != nil {
		return nil, withSheet(err, sheet.Name)
	}

	cols, err := ClassifyColumns(g, header, d, log)
	if err != nil {
		return nil, withSheet(err, sheet.Name)
	}

	rows, total := ExtractRows(g, header, cols, d, opts.Numbers)
	ext := &Extraction{
		Domain:    d.Name,
		SheetName: sheet.Name,
		Header:    header,
		Columns:   cols,
		Width:     g.ColumnCount(),
		Rows:      rows,
		TotalRows: total,
	}

	log.Debug().
		Str("sheet", sheet.Name).
		Ints("header_rows", header.Rows).
		Int("total_rows", total).
		Int("parsed_rows", len(rows)).
		Msg("sheet extracted")

	if len(rows) == 0 {
		return ext, &StructuralError{
			Kind:    ErrNoExtractableRows,
			Sheet:   sheet.Name,
			Message: fmt.Sprintf("none of %d rows below the header has a location and a score", total),
		}
	}
	return ext, nil
}

func withSheet(err error, sheet string) error {
	if se, ok := AsStructural(err); ok && se.Sheet == "" {
		se.Sheet = sheet
	}
	return err
}
