package store

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/Royal-Thai-Navy-RTC/back-end-sub000/internal/model"
)

// InsertSheetMeta records the detected layout of an imported sheet.
func (s *Store) InsertSheetMeta(ctx context.Context, meta model.SheetMeta) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sheets_meta (
			import_log_id, domain, sheet_name,
			header_rows, total_columns,
			total_rows, parsed_rows,
			columns_json, source_file
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		meta.ImportLogID, meta.Domain, meta.SheetName,
		meta.HeaderRows, meta.TotalColumns,
		meta.TotalRows, meta.ParsedRows,
		meta.ColumnsJSON, meta.SourceFile,
	)
	if err != nil {
		return eris.Wrap(err, "insert sheets_meta")
	}
	return nil
}

// SheetMetaFor returns the layouts recorded for one import.
func (s *Store) SheetMetaFor(ctx context.Context, importLogID string) ([]model.SheetMeta, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT import_log_id, domain, sheet_name, header_rows, total_columns,
			total_rows, parsed_rows, columns_json, source_file
		FROM sheets_meta WHERE import_log_id = ? ORDER BY id
	`, importLogID)
	if err != nil {
		return nil, eris.Wrap(err, "query sheets_meta")
	}
	defer rows.Close()

	var out []model.SheetMeta
	for rows.Next() {
		var m model.SheetMeta
		if err := rows.Scan(&m.ImportLogID, &m.Domain, &m.SheetName, &m.HeaderRows, &m.TotalColumns,
			&m.TotalRows, &m.ParsedRows, &m.ColumnsJSON, &m.SourceFile); err != nil {
			return nil, eris.Wrap(err, "scan sheets_meta")
		}
		out = append(out, m)
	}
	return out, eris.Wrap(rows.Err(), "iterate sheets_meta")
}
