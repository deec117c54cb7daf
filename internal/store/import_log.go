package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/rotisserie/eris"

	"github.com/Royal-Thai-Navy-RTC/back-end-sub000/internal/model"
)

// CreateImportLog journals the start of an import.
func (s *Store) CreateImportLog(ctx context.Context, log model.ImportLog) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO import_logs (id, domain, filename, batch_id, imported_by_id, status, started_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, log.ID, log.Domain, log.Filename, log.BatchID, log.ImportedByID, log.Status, log.StartedAt.UTC())
	if err != nil {
		return eris.Wrap(err, "create import log")
	}
	return nil
}

// FinishImportLog stores the outcome of an import.
func (s *Store) FinishImportLog(ctx context.Context, log model.ImportLog) error {
	completed := time.Now().UTC()
	if log.CompletedAt != nil {
		completed = log.CompletedAt.UTC()
	}
	_, err := s.db.ExecContext(ctx, `
		UPDATE import_logs SET
			status = ?,
			total_rows = ?,
			parsed_rows = ?,
			inserted_rows = ?,
			skipped_rows = ?,
			error_kind = ?,
			error_message = ?,
			completed_at = ?
		WHERE id = ?
	`, log.Status, log.TotalRows, log.ParsedRows, log.Inserted, log.SkippedRows,
		nullString(log.ErrorKind), nullString(log.ErrorMessage), completed, log.ID)
	if err != nil {
		return eris.Wrap(err, "update import log")
	}
	return nil
}

// ListImportLogs returns the most recent imports first. domainName filters
// when non-empty.
func (s *Store) ListImportLogs(ctx context.Context, domainName string, limit int) ([]model.ImportLog, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, domain, filename, batch_id, imported_by_id, status,
			total_rows, parsed_rows, inserted_rows, skipped_rows,
			error_kind, error_message, started_at, completed_at
		FROM import_logs
		WHERE (? = '' OR domain = ?)
		ORDER BY started_at DESC
		LIMIT ?
	`, domainName, domainName, limit)
	if err != nil {
		return nil, eris.Wrap(err, "query import logs")
	}
	defer rows.Close()

	var out []model.ImportLog
	for rows.Next() {
		var (
			l                       model.ImportLog
			filename, kind, message sql.NullString
			importedBy              sql.NullInt64
			completed               sql.NullTime
		)
		if err := rows.Scan(
			&l.ID, &l.Domain, &filename, &l.BatchID, &importedBy, &l.Status,
			&l.TotalRows, &l.ParsedRows, &l.Inserted, &l.SkippedRows,
			&kind, &message, &l.StartedAt, &completed,
		); err != nil {
			return nil, eris.Wrap(err, "scan import log")
		}
		l.Filename = filename.String
		l.ImportedByID = intPtr(importedBy)
		l.ErrorKind = kind.String
		l.ErrorMessage = message.String
		if completed.Valid {
			t := completed.Time
			l.CompletedAt = &t
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "iterate import logs")
	}
	return out, nil
}
