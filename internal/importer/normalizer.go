package importer

import (
	"strconv"
	"strings"
	"time"

	"github.com/Royal-Thai-Navy-RTC/back-end-sub000/internal/domain"
	"github.com/Royal-Thai-Navy-RTC/back-end-sub000/internal/model"
	"github.com/Royal-Thai-Navy-RTC/back-end-sub000/internal/parser"
)

// Batch carries the metadata stamped on every record of one import.
type Batch struct {
	ID           string
	SourceFile   string
	ImportedByID *int
}

// DefaultBatchID is "<domain>-YYYYMMDDHHMMSS" at now.
func DefaultBatchID(domainName string, now time.Time) string {
	return domainName + "-" + now.Format("20060102150405")
}

// ParseImporterID reads the numeric id of the importing user. Anything that is
// not an integer yields nil.
func ParseImporterID(raw string) *int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	n, err := strconv.ParseInt(parser.NormalizeDigits(raw), 10, 32)
	if err != nil {
		return nil
	}
	id := int(n)
	return &id
}

// NormalizeRecords attaches batch metadata to extracted rows. The stored sheet
// name is the canonical one of d, whatever the workbook tab was called.
func NormalizeRecords(d domain.Domain, rows []parser.Row, batch Batch) []*model.ExtractedRecord {
	out := make([]*model.ExtractedRecord, 0, len(rows))
	for _, r := range rows {
		out = append(out, &model.ExtractedRecord{
			Domain:       d.Name,
			RowNumber:    r.RowNumber,
			OrderNumber:  r.OrderNumber,
			Battalion:    r.Battalion,
			Company:      r.Company,
			Platoon:      r.Platoon,
			Scores:       r.Scores,
			Note:         r.Note,
			Ranking:      r.Ranking,
			BatchID:      batch.ID,
			SourceFile:   batch.SourceFile,
			SheetName:    d.SheetName,
			ImportedByID: batch.ImportedByID,
		})
	}
	return out
}
