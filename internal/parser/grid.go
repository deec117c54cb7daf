package parser

// MergeRegion is an inclusive, 0-based rectangle of merged cells. Value is the
// anchor value as read from the workbook.
type MergeRegion struct {
	StartRow int
	StartCol int
	EndRow   int
	EndCol   int
	Value    string
}

// Contains reports whether (row, col) lies inside the region.
func (m MergeRegion) Contains(row, col int) bool {
	return row >= m.StartRow && row <= m.EndRow && col >= m.StartCol && col <= m.EndCol
}

// Grid is a ragged, 0-indexed matrix of raw cell strings plus its merges.
type Grid struct {
	rows   [][]string
	merges []MergeRegion
	cols   int
}

// NewGrid wraps rows and merges. Rows may have different lengths.
func NewGrid(rows [][]string, merges []MergeRegion) *Grid {
	g := &Grid{rows: rows, merges: merges}
	for _, r := range rows {
		if len(r) > g.cols {
			g.cols = len(r)
		}
	}
	for _, m := range merges {
		if m.EndCol+1 > g.cols {
			g.cols = m.EndCol + 1
		}
	}
	return g
}

// RowCount is the physical number of rows.
func (g *Grid) RowCount() int {
	return len(g.rows)
}

// ColumnCount is the widest row or merge extent.
func (g *Grid) ColumnCount() int {
	return g.cols
}

// Merges returns the merge regions of the sheet.
func (g *Grid) Merges() []MergeRegion {
	return g.merges
}

// Raw returns the cell as stored, or "" when out of range.
func (g *Grid) Raw(row, col int) string {
	if row < 0 || row >= len(g.rows) || col < 0 || col >= len(g.rows[row]) {
		return ""
	}
	return g.rows[row][col]
}

// ValueAt returns the cell value with merges resolved: a non-blank raw cell
// wins, otherwise the anchor of the enclosing merge region, otherwise "".
func (g *Grid) ValueAt(row, col int) string {
	if v := g.Raw(row, col); !isBlank(v) {
		return v
	}
	for _, m := range g.merges {
		if !m.Contains(row, col) {
			continue
		}
		if !isBlank(m.Value) {
			return m.Value
		}
		return g.Raw(m.StartRow, m.StartCol)
	}
	return ""
}

// rowTexts returns the normalized, merge-resolved values of one row.
func (g *Grid) rowTexts(row int) []string {
	out := make([]string, 0, g.cols)
	for c := 0; c < g.cols; c++ {
		if v := NormalizeText(g.ValueAt(row, c)); v != "" {
			out = append(out, v)
		}
	}
	return out
}
