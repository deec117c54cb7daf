package exporter

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Royal-Thai-Navy-RTC/back-end-sub000/internal/domain"
	"github.com/Royal-Thai-Navy-RTC/back-end-sub000/internal/model"
	"github.com/Royal-Thai-Navy-RTC/back-end-sub000/internal/parser"
)

type memReader map[string][]*model.ExtractedRecord

func (m memReader) ListBatch(_ context.Context, _ domain.Domain, batchID string) ([]*model.ExtractedRecord, error) {
	return m[batchID], nil
}

func score(role domain.Role, v string) model.Score {
	if v == "" {
		return model.Score{Role: role}
	}
	return model.Score{Role: role, Value: decimal.NewNullDecimal(decimal.RequireFromString(v))}
}

func strp(s string) *string { return &s }

func TestExport_ReimportsToSameRows(t *testing.T) {
	t.Parallel()

	for _, d := range domain.Builtins() {
		d := d
		t.Run(d.Name, func(t *testing.T) {
			t.Parallel()

			var scores []model.Score
			for i, s := range d.Scores {
				v := "12.5"
				if i == len(d.Scores)-1 {
					v = ""
				}
				if i == 0 {
					v = "80"
				}
				scores = append(scores, score(s.Role, v))
			}
			records := []*model.ExtractedRecord{{
				OrderNumber: 1,
				Battalion:   strp("กองพันที่ 1"),
				Company:     strp("กองร้อยที่ 2"),
				Scores:      scores,
				Note:        strp("อันดับ 3"),
			}}

			f, err := NewExporter(memReader{"b1": records}).Export(context.Background(), d, "b1")
			require.NoError(t, err)
			defer f.Close()

			wb, err := parser.LoadWorkbook(f)
			require.NoError(t, err)
			ext, err := parser.Extract(wb, d, parser.ExtractOptions{})
			require.NoError(t, err)
			require.Len(t, ext.Rows, 1)

			row := ext.Rows[0]
			assert.Equal(t, "กองพันที่ 1", *row.Battalion)
			assert.Equal(t, "กองร้อยที่ 2", *row.Company)
			require.NotNil(t, row.Ranking)
			assert.Equal(t, 3, *row.Ranking)
			for i, s := range row.Scores {
				assert.Equal(t, scores[i].Value.Valid, s.Value.Valid, s.Role.String())
				if s.Value.Valid {
					assert.True(t, scores[i].Value.Decimal.Equal(s.Value.Decimal), s.Role.String())
				}
			}
		})
	}
}

func TestExport_EmptyBatch(t *testing.T) {
	t.Parallel()

	_, err := NewExporter(memReader{}).Export(context.Background(), domain.EthicsDomain(), "missing")
	assert.ErrorIs(t, err, ErrEmptyBatch)
}
