package parser

import (
	"fmt"

	"github.com/Royal-Thai-Navy-RTC/back-end-sub000/internal/domain"
)

// DetectHeader returns the first row, within the scan window, containing at
// least HeaderMinMatches distinct header keywords. The following row joins the
// block when it carries a secondary keyword.
func DetectHeader(g *Grid, d domain.Domain) (HeaderBlock, error) {
	primary := newKeywordSet(d.HeaderKeywords)
	secondary := newKeywordSet(d.SecondaryKeywords)

	limit := g.RowCount()
	if d.HeaderScanRows > 0 && d.HeaderScanRows < limit {
		limit = d.HeaderScanRows
	}

	for r := 0; r < limit; r++ {
		if primary.distinctIn(g.rowTexts(r)) < d.HeaderMinMatches {
			continue
		}
		block := HeaderBlock{Rows: []int{r}}
		if next := r + 1; next < g.RowCount() && secondary.distinctIn(g.rowTexts(next)) > 0 {
			block.Rows = append(block.Rows, next)
		}
		return block, nil
	}

	return HeaderBlock{}, &StructuralError{
		Kind:    ErrHeaderNotFound,
		Message: fmt.Sprintf("no row in the first %d has %d of the %s header keywords", limit, d.HeaderMinMatches, d.Name),
	}
}
