package parser

import (
	"sort"

	"github.com/Royal-Thai-Navy-RTC/back-end-sub000/internal/domain"
	"github.com/Royal-Thai-Navy-RTC/back-end-sub000/internal/model"
)

// HeaderBlock lists the 0-based rows forming the header, in ascending order.
type HeaderBlock struct {
	Rows []int `json:"rows"`
}

// First returns the first header row.
func (h HeaderBlock) First() int {
	if len(h.Rows) == 0 {
		return -1
	}
	return h.Rows[0]
}

// Last returns the last header row.
func (h HeaderBlock) Last() int {
	if len(h.Rows) == 0 {
		return -1
	}
	return h.Rows[len(h.Rows)-1]
}

// ColumnSource tells whether a role was found by keyword or by position.
type ColumnSource string

const (
	SourceKeyword  ColumnSource = "keyword"
	SourceFallback ColumnSource = "fallback"
)

// Column is a classified column.
type Column struct {
	Role   domain.Role  `json:"role"`
	Index  int          `json:"index"`
	Source ColumnSource `json:"source"`
	Header string       `json:"header"`
}

// ColumnMap assigns roles to distinct column indices.
type ColumnMap struct {
	byRole  map[domain.Role]Column
	byIndex map[int]domain.Role
}

func newColumnMap() ColumnMap {
	return ColumnMap{byRole: map[domain.Role]Column{}, byIndex: map[int]domain.Role{}}
}

func (m ColumnMap) assign(c Column) {
	m.byRole[c.Role] = c
	m.byIndex[c.Index] = c.Role
}

// Index returns the column of role.
func (m ColumnMap) Index(role domain.Role) (int, bool) {
	c, ok := m.byRole[role]
	return c.Index, ok
}

// Has reports whether role is assigned.
func (m ColumnMap) Has(role domain.Role) bool {
	_, ok := m.byRole[role]
	return ok
}

// Owner returns the role assigned to column idx.
func (m ColumnMap) Owner(idx int) (domain.Role, bool) {
	r, ok := m.byIndex[idx]
	return r, ok
}

// Columns returns the assignments ordered by column index.
func (m ColumnMap) Columns() []Column {
	out := make([]Column, 0, len(m.byRole))
	for _, c := range m.byRole {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out
}

// Reports renders the assignments for summaries and the sheet journal.
func (m ColumnMap) Reports() []model.ColumnReport {
	cols := m.Columns()
	out := make([]model.ColumnReport, 0, len(cols))
	for _, c := range cols {
		out = append(out, model.ColumnReport{
			Role:   c.Role.String(),
			Index:  c.Index,
			Source: string(c.Source),
			Header: c.Header,
		})
	}
	return out
}

// Row is one accepted data row before batch metadata is attached.
type Row struct {
	RowNumber   int // 1-based
	OrderNumber int
	Battalion   *string
	Company     *string
	Platoon     *string
	Scores      []model.Score
	Note        *string
	Ranking     *int
}

func (r *Row) setLabel(role domain.Role, v *string) {
	switch role {
	case domain.RoleBattalion:
		r.Battalion = v
	case domain.RoleCompany:
		r.Company = v
	case domain.RolePlatoon:
		r.Platoon = v
	}
}

// Extraction is the result of running a domain pipeline over a workbook.
type Extraction struct {
	Domain    string
	SheetName string // actual sheet name in the workbook
	Header    HeaderBlock
	Columns   ColumnMap
	Width     int
	Rows      []Row
	TotalRows int
}

// SkippedRows is the number of data-region rows that produced no record.
func (e *Extraction) SkippedRows() int {
	return e.TotalRows - len(e.Rows)
}
