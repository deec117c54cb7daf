package model

import (
	"github.com/shopspring/decimal"

	"github.com/Royal-Thai-Navy-RTC/back-end-sub000/internal/domain"
)

// Score is one numeric cell of a record. Value is invalid when the cell was
// blank or unparseable.
type Score struct {
	Role  domain.Role         `json:"role"`
	Value decimal.NullDecimal `json:"value"`
}

// ExtractedRecord is one normalized data row ready for persistence.
type ExtractedRecord struct {
	Domain       string  `json:"domain"`
	RowNumber    int     `json:"rowNumber"` // 1-based sheet row
	OrderNumber  int     `json:"orderNumber"`
	Battalion    *string `json:"battalion"`
	Company      *string `json:"company"`
	Platoon      *string `json:"platoon,omitempty"`
	Scores       []Score `json:"scores"`
	Note         *string `json:"note"`
	Ranking      *int    `json:"ranking"`
	BatchID      string  `json:"batchId"`
	SourceFile   string  `json:"sourceFile"`
	SheetName    string  `json:"sheetName"`
	ImportedByID *int    `json:"importedById"`
}

// Score returns the value of role, invalid when the record has no such score.
func (r *ExtractedRecord) Score(role domain.Role) decimal.NullDecimal {
	for _, s := range r.Scores {
		if s.Role == role {
			return s.Value
		}
	}
	return decimal.NullDecimal{}
}
