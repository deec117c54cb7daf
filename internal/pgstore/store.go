// Package pgstore persists score batches into PostgreSQL with COPY.
package pgstore

import (
	"context"
	"math"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"
	"github.com/shopspring/decimal"

	"github.com/Royal-Thai-Navy-RTC/back-end-sub000/internal/domain"
	"github.com/Royal-Thai-Navy-RTC/back-end-sub000/internal/model"
)

// Store writes into pre-provisioned score tables of the back-office database.
type Store struct {
	pool *pgxpool.Pool
}

// New connects to dsn and checks the connection.
func New(ctx context.Context, dsn string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, eris.Wrap(err, "parse postgres dsn")
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, eris.Wrap(err, "connect postgres")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "ping postgres")
	}
	return &Store{pool: pool}, nil
}

// Close releases the pool.
func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

// Ping checks the connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// BatchInsert copies records into the domain table inside one transaction.
func (s *Store) BatchInsert(ctx context.Context, d domain.Domain, records []*model.ExtractedRecord) (int64, error) {
	if len(records) == 0 {
		return 0, nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return 0, eris.Wrap(err, "begin transaction")
	}
	defer tx.Rollback(ctx)

	n, err := tx.CopyFrom(ctx, pgx.Identifier{d.Table}, d.Columns(), copySource(d, records))
	if err != nil {
		return 0, eris.Wrapf(err, "copy into %s", d.Table)
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, eris.Wrap(err, "commit transaction")
	}
	return n, nil
}

func copySource(d domain.Domain, records []*model.ExtractedRecord) pgx.CopyFromSource {
	return pgx.CopyFromSlice(len(records), func(i int) ([]any, error) {
		return rowValues(d, records[i]), nil
	})
}

// rowValues orders record values like domain.Columns.
func rowValues(d domain.Domain, r *model.ExtractedRecord) []any {
	values := make([]any, 0, len(d.Scores)+11)
	values = append(values, int32(r.OrderNumber), r.Battalion, r.Company, r.Platoon)
	for _, s := range d.Scores {
		values = append(values, numeric(r.Score(s.Role)))
	}
	return append(values,
		r.Note, int4(r.Ranking), r.BatchID, text(r.SourceFile), r.SheetName, int4(r.ImportedByID), int32(r.RowNumber),
	)
}

func numeric(v decimal.NullDecimal) pgtype.Numeric {
	if !v.Valid {
		return pgtype.Numeric{}
	}
	return pgtype.Numeric{Int: v.Decimal.Coefficient(), Exp: v.Decimal.Exponent(), Valid: true}
}

func int4(v *int) pgtype.Int4 {
	if v == nil || *v < math.MinInt32 || *v > math.MaxInt32 {
		return pgtype.Int4{}
	}
	return pgtype.Int4{Int32: int32(*v), Valid: true}
}

func text(s string) pgtype.Text {
	return pgtype.Text{String: s, Valid: s != ""}
}
