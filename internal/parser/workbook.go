package parser

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// Sheet is one worksheet loaded into memory.
type Sheet struct {
	Name string
	Grid *Grid
}

// Workbook is the in-memory view of an uploaded spreadsheet. The source file
// is read once and never written.
type Workbook struct {
	Sheets []Sheet
}

// SheetNames returns sheet names in workbook order.
func (w *Workbook) SheetNames() []string {
	names := make([]string, 0, len(w.Sheets))
	for _, s := range w.Sheets {
		names = append(names, s.Name)
	}
	return names
}

// OpenWorkbook reads the workbook at path.
func OpenWorkbook(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()
	return LoadWorkbook(f)
}

// ReadWorkbook reads a workbook from r.
func ReadWorkbook(r io.Reader) (*Workbook, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("read workbook: %w", err)
	}
	defer f.Close()
	return LoadWorkbook(f)
}

// LoadWorkbook copies every sheet of f, raw cell values and merge regions,
// into a Workbook.
func LoadWorkbook(f *excelize.File) (*Workbook, error) {
	wb := &Workbook{}
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, fmt.Errorf("read sheet %s: %w", name, err)
		}
		merges, err := f.GetMergeCells(name)
		if err != nil {
			return nil, fmt.Errorf("read merges of %s: %w", name, err)
		}

		regions := make([]MergeRegion, 0, len(merges))
		for _, mc := range merges {
			region, err := mergeRegion(mc)
			if err != nil {
				return nil, fmt.Errorf("sheet %s: %w", name, err)
			}
			// keep the raw anchor so every cell of the region reads the same
			if anchor := cellAt(rows, region.StartRow, region.StartCol); !isBlank(anchor) {
				region.Value = anchor
			}
			regions = append(regions, region)
		}
		wb.Sheets = append(wb.Sheets, Sheet{Name: name, Grid: NewGrid(rows, regions)})
	}
	return wb, nil
}

func mergeRegion(mc excelize.MergeCell) (MergeRegion, error) {
	startCol, startRow, err := excelize.CellNameToCoordinates(mc.GetStartAxis())
	if err != nil {
		return MergeRegion{}, fmt.Errorf("merge start %s: %w", mc.GetStartAxis(), err)
	}
	endCol, endRow, err := excelize.CellNameToCoordinates(mc.GetEndAxis())
	if err != nil {
		return MergeRegion{}, fmt.Errorf("merge end %s: %w", mc.GetEndAxis(), err)
	}
	return MergeRegion{
		StartRow: startRow - 1,
		StartCol: startCol - 1,
		EndRow:   endRow - 1,
		EndCol:   endCol - 1,
		Value:    mc.GetCellValue(),
	}, nil
}

func cellAt(rows [][]string, row, col int) string {
	if row < 0 || row >= len(rows) || col < 0 || col >= len(rows[row]) {
		return ""
	}
	return rows[row][col]
}
