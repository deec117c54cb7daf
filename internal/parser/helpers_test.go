package parser

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// buildWorkbook writes rows into a single sheet, merges the given ranges and
// loads the result back through LoadWorkbook.
func buildWorkbook(t *testing.T, sheet string, rows [][]any, merges ...[2]string) *Workbook {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetName("Sheet1", sheet))

	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &rows[i]))
	}
	for _, m := range merges {
		require.NoError(t, f.MergeCell(sheet, m[0], m[1]))
	}

	wb, err := LoadWorkbook(f)
	require.NoError(t, err)
	return wb
}

// ethicsRows is the two-row ethics template: "คะแนน" spans the total and
// percent columns and the other titles span both header rows.
func ethicsRows() ([][]any, [][2]string) {
	rows := [][]any{
		{"ลำดับ", "กองพัน", "กองร้อย", "คะแนน", "", "หมายเหตุ"},
		{"", "", "", "รวม", "ร้อยละ", ""},
		{1, "กองพันที่ 1", "กองร้อยที่ 1", 85.5, 85.5, ""},
		{2, "", "กองร้อยที่ 2", 90, 90, "อันดับ ๑"},
		{3, "กองพันที่ 2", "กองร้อยที่ 1", "๗๘", 78, ""},
		{4, "", "กองร้อยที่ 2", 80, 80, ""},
		{5, "", "กองร้อยที่ 3", "", 70, ""},
		{6, "", "กองร้อยที่ 4", 60, 60, "ลำดับที่ 4"},
		{"หมายเหตุ", "", "", "", "", "หมายเหตุ"},
		{"เกณฑ์ผ่าน ร้อยละ 60", "", "", "", "", ""},
	}
	merges := [][2]string{
		{"A1", "A2"}, {"B1", "B2"}, {"C1", "C2"}, {"D1", "E1"}, {"F1", "F2"},
	}
	return rows, merges
}
