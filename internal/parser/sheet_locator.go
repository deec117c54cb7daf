package parser

import (
	"fmt"
	"strings"

	"github.com/Royal-Thai-Navy-RTC/back-end-sub000/internal/domain"
)

// LocateSheet finds the worksheet of d. The configured name is tried against
// every sheet before any alias, comparing names without whitespace.
func LocateSheet(wb *Workbook, d domain.Domain) (*Sheet, error) {
	candidates := append([]string{d.SheetName}, d.SheetAliases...)
	for _, name := range candidates {
		target := normalizeSheetName(name)
		if target == "" {
			continue
		}
		for i := range wb.Sheets {
			if normalizeSheetName(wb.Sheets[i].Name) == target {
				return &wb.Sheets[i], nil
			}
		}
	}
	return nil, &StructuralError{
		Kind:    ErrSheetNotFound,
		Message: fmt.Sprintf("sheet %q not found, workbook has [%s]", d.SheetName, strings.Join(wb.SheetNames(), ", ")),
	}
}
