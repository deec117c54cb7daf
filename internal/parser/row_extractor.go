package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/unicode/norm"

	"github.com/Royal-Thai-Navy-RTC/back-end-sub000/internal/domain"
	"github.com/Royal-Thai-Navy-RTC/back-end-sub000/internal/model"
)

var rankingPattern = regexp.MustCompile(norm.NFKC.String(`(?:อันดับ|ลำดับ)\s*(?:ที่)?\s*(\d+)`))

// ExtractRanking finds "อันดับ N" or "ลำดับที่ N" in a note, Thai digits
// included.
func ExtractRanking(note string) *int {
	m := rankingPattern.FindStringSubmatch(norm.NFKC.String(CleanLabel(note)))
	if m == nil {
		return nil
	}
	n, err := strconv.ParseInt(m[1], 10, 32)
	if err != nil {
		return nil
	}
	rank := int(n)
	return &rank
}

// carryForward remembers the last non-empty label of each hierarchical role.
type carryForward struct {
	last    map[domain.Role]string
	deduced map[domain.Role]string
}

func newCarryForward(deduced map[domain.Role]string) *carryForward {
	return &carryForward{last: map[domain.Role]string{}, deduced: deduced}
}

// resolve returns cell when non-empty and remembers it, else the last seen
// value, else the value deduced from the header area.
func (c *carryForward) resolve(role domain.Role, cell string) *string {
	if cell != "" {
		c.last[role] = cell
		return &cell
	}
	if v, ok := c.last[role]; ok {
		return &v
	}
	if v, ok := c.deduced[role]; ok {
		return &v
	}
	return nil
}

// deduceLabel looks for "<keyword> [ที่] <identifier>" in the rows above and
// inside the header at column col. A bare keyword is a column title and yields
// nothing. The match keeps the case of the cell, like labels read from rows.
func deduceLabel(g *Grid, header HeaderBlock, col int, keywords []string) string {
	kws := newKeywordSet(keywords)
	if len(kws) == 0 {
		return ""
	}
	alts := make([]string, 0, len(kws))
	for _, kw := range kws {
		alts = append(alts, regexp.QuoteMeta(kw))
	}
	re := regexp.MustCompile(`(?i)(?:` + strings.Join(alts, "|") + `)\s*(?:` + NormalizeText("ที่") + `)?\s*[0-9a-z][0-9a-z./-]*`)

	for r := 0; r <= header.Last(); r++ {
		if m := re.FindString(norm.NFKC.String(CleanLabel(g.ValueAt(r, col)))); m != "" {
			return m
		}
	}
	return ""
}

// dataRegion returns [start, end) of the rows below the header.
func dataRegion(g *Grid, header HeaderBlock, d domain.Domain) (int, int) {
	start := header.Last() + 1 + d.DataStartOffset
	end := g.RowCount()
	if d.MaxRow > 0 && d.MaxRow+1 < end {
		end = d.MaxRow + 1
	}
	if start > end {
		start = end
	}
	return start, end
}

// ExtractRows walks the data region and returns accepted rows plus the number
// of rows examined. Rows repeating the note header are dropped first; every
// other row updates the carried labels even when it is later rejected for
// lacking scores, which is how group heading rows label the rows below them.
func ExtractRows(g *Grid, header HeaderBlock, cols ColumnMap, d domain.Domain, numbers NumberFormat) ([]Row, int) {
	start, end := dataRegion(g, header, d)
	noteHeaders := newKeywordSet(d.NoteHeaderKeywords)

	deduced := make(map[domain.Role]string)
	for _, role := range d.CarryForward {
		idx, ok := cols.Index(role)
		if !ok {
			continue
		}
		if v := deduceLabel(g, header, idx, d.RuleKeywords(role)); v != "" {
			deduced[role] = v
		}
	}
	carry := newCarryForward(deduced)

	noteIdx, hasNote := cols.Index(domain.RoleNote)
	orderIdx, hasOrder := cols.Index(domain.RoleOrder)
	scoreRoles := d.ScoreRoles()

	var extras []Column
	for _, c := range cols.Columns() {
		if c.Role.Kind() == domain.KindLabel && !d.IsCarryForward(c.Role) {
			extras = append(extras, c)
		}
	}

	rows := make([]Row, 0, end-start)
	for r := start; r < end; r++ {
		var noteRaw string
		if hasNote {
			noteRaw = g.ValueAt(r, noteIdx)
			if noteHeaders.equals(NormalizeText(noteRaw)) {
				continue
			}
		}

		row := Row{RowNumber: r + 1}

		located := false
		for _, role := range d.CarryForward {
			var cell string
			if idx, ok := cols.Index(role); ok {
				cell = CleanLabel(g.ValueAt(r, idx))
			}
			if v := carry.resolve(role, cell); v != nil {
				located = true
				row.setLabel(role, v)
			}
		}
		for _, c := range extras {
			if v := CleanLabel(g.ValueAt(r, c.Index)); v != "" {
				row.setLabel(c.Role, &v)
			}
		}

		scored := false
		row.Scores = make([]model.Score, 0, len(scoreRoles))
		for _, role := range scoreRoles {
			var v decimal.NullDecimal
			if idx, ok := cols.Index(role); ok {
				v = numbers.Parse(g.ValueAt(r, idx))
			}
			scored = scored || v.Valid
			row.Scores = append(row.Scores, model.Score{Role: role, Value: v})
		}

		if !scored || !located {
			continue
		}

		if note := CleanLabel(noteRaw); note != "" {
			row.Note = &note
			row.Ranking = ExtractRanking(note)
		}
		row.OrderNumber = len(rows) + 1
		if hasOrder {
			if n := numbers.ParseInt(g.ValueAt(r, orderIdx)); n != nil {
				row.OrderNumber = *n
			}
		}
		rows = append(rows, row)
	}
	return rows, end - start
}
