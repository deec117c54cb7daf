package store

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/shopspring/decimal"

	"github.com/Royal-Thai-Navy-RTC/back-end-sub000/internal/domain"
	"github.com/Royal-Thai-Navy-RTC/back-end-sub000/internal/model"
)

var identifier = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// checkIdentifiers guards the table and column names spliced into SQL.
func checkIdentifiers(d domain.Domain) error {
	if !identifier.MatchString(d.Table) {
		return eris.Errorf("invalid table name %q", d.Table)
	}
	for _, c := range d.Columns() {
		if !identifier.MatchString(c) {
			return eris.Errorf("invalid column name %q", c)
		}
	}
	return nil
}

func insertSQL(d domain.Domain) string {
	cols := d.Columns()
	marks := strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", ")
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", d.Table, strings.Join(cols, ", "), marks)
}

// rowArgs orders record values like domain.Columns.
func rowArgs(d domain.Domain, r *model.ExtractedRecord) []any {
	args := make([]any, 0, len(d.Scores)+11)
	args = append(args, r.OrderNumber, r.Battalion, r.Company, r.Platoon)
	for _, s := range d.Scores {
		args = append(args, r.Score(s.Role))
	}
	return append(args,
		r.Note, r.Ranking, r.BatchID, nullString(r.SourceFile), r.SheetName, r.ImportedByID, r.RowNumber,
	)
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// BatchInsert writes all records of one import in a single transaction. On any
// failure nothing is committed.
func (s *Store) BatchInsert(ctx context.Context, d domain.Domain, records []*model.ExtractedRecord) (int64, error) {
	if len(records) == 0 {
		return 0, nil
	}
	if err := checkIdentifiers(d); err != nil {
		return 0, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, eris.Wrap(err, "begin transaction")
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, insertSQL(d))
	if err != nil {
		return 0, eris.Wrapf(err, "prepare insert into %s", d.Table)
	}
	defer stmt.Close()

	var inserted int64
	for _, r := range records {
		res, err := stmt.ExecContext(ctx, rowArgs(d, r)...)
		if err != nil {
			return 0, eris.Wrapf(err, "insert %s row %d", d.Table, r.RowNumber)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, eris.Wrap(err, "rows affected")
		}
		inserted += n
	}

	if err := tx.Commit(); err != nil {
		return 0, eris.Wrap(err, "commit transaction")
	}
	return inserted, nil
}

// CountBatch returns the number of stored rows of one batch.
func (s *Store) CountBatch(ctx context.Context, d domain.Domain, batchID string) (int, error) {
	if err := checkIdentifiers(d); err != nil {
		return 0, err
	}
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+d.Table+" WHERE batch_id = ?", batchID).Scan(&n)
	if err != nil {
		return 0, eris.Wrapf(err, "count %s batch %s", d.Table, batchID)
	}
	return n, nil
}

// ListBatch reads back the records of one batch in sheet order.
func (s *Store) ListBatch(ctx context.Context, d domain.Domain, batchID string) ([]*model.ExtractedRecord, error) {
	if err := checkIdentifiers(d); err != nil {
		return nil, err
	}
	query := fmt.Sprintf("SELECT %s FROM %s WHERE batch_id = ? ORDER BY row_no", strings.Join(d.Columns(), ", "), d.Table)
	rows, err := s.db.QueryContext(ctx, query, batchID)
	if err != nil {
		return nil, eris.Wrapf(err, "query %s batch %s", d.Table, batchID)
	}
	defer rows.Close()

	var out []*model.ExtractedRecord
	for rows.Next() {
		r := &model.ExtractedRecord{Domain: d.Name}
		var (
			battalion, company, platoon, note, sourceFile sql.NullString
			ranking, importedBy                           sql.NullInt64
		)
		scores := make([]decimal.NullDecimal, len(d.Scores))

		dest := []any{&r.OrderNumber, &battalion, &company, &platoon}
		for i := range scores {
			dest = append(dest, &scores[i])
		}
		dest = append(dest, &note, &ranking, &r.BatchID, &sourceFile, &r.SheetName, &importedBy, &r.RowNumber)
		if err := rows.Scan(dest...); err != nil {
			return nil, eris.Wrapf(err, "scan %s", d.Table)
		}

		r.Battalion = stringPtr(battalion)
		r.Company = stringPtr(company)
		r.Platoon = stringPtr(platoon)
		r.Note = stringPtr(note)
		r.Ranking = intPtr(ranking)
		r.ImportedByID = intPtr(importedBy)
		r.SourceFile = sourceFile.String
		for i, sc := range d.Scores {
			r.Scores = append(r.Scores, model.Score{Role: sc.Role, Value: scores[i]})
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrapf(err, "iterate %s", d.Table)
	}
	return out, nil
}

func stringPtr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

func intPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}
