package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeFixture(t *testing.T, dir string) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetName("Sheet1", "วินัย"))
	rows := [][]any{
		{"ลำดับ", "กองพัน", "กองร้อย", "ตัดคะแนน", "คงเหลือ", "หมายเหตุ"},
		{1, "กองพันที่ 1", "กองร้อยที่ 1", 5, 95, ""},
		{2, "", "กองร้อยที่ 2", 0, 100, ""},
	}
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("วินัย", cell, &rows[i]))
	}
	path := filepath.Join(dir, "discipline.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func writeConfig(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "config.toml")
	body := "[data]\ndata_dir = \"" + filepath.ToSlash(filepath.Join(dir, "data")) + "\"\n[log]\nlevel = \"error\"\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRunAndInspect(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeConfig(t, dir)
	xlsx := writeFixture(t, dir)

	out, err := run(t, "inspect", "--config", cfgPath, "discipline", xlsx)
	require.NoError(t, err, out)
	var preview map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &preview))
	assert.EqualValues(t, 2, preview["parsedRows"])

	out, err = run(t, "run", "--config", cfgPath, "--batch-id", "cli-1", "--imported-by", "4", "discipline", xlsx)
	require.NoError(t, err, out)
	var summary map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &summary))
	assert.Equal(t, "cli-1", summary["batchId"])
	assert.EqualValues(t, 2, summary["inserted"])

	_, err = os.Stat(filepath.Join(dir, "data", "rtc.db"))
	assert.NoError(t, err)
}

func TestRun_UnknownDomain(t *testing.T) {
	dir := t.TempDir()
	_, err := run(t, "run", "--config", writeConfig(t, dir), "payroll", "x.xlsx")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown domain")
}

func TestDomains(t *testing.T) {
	out, err := run(t, "domains", "--config", writeConfig(t, t.TempDir()))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "NAME"))
	assert.Contains(t, out, "discipline_scores")
	assert.Equal(t, 8, strings.Count(out, "\n"))
}
