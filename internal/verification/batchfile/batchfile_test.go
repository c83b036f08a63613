package batchfile

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	dErrors "numcheck/pkg/domain-errors"
)

func workbook(t *testing.T, rows [][]any) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestReadWorkbookFirstColumn(t *testing.T) {
	data := workbook(t, [][]any{
		{"+910000000001", "Alice"},
		{"+910000000002"},
		{nil, nil},
		{"", "no number"},
		{" +910000000003 "},
	})

	numbers, err := Read(bytes.NewReader(data), "batch.xlsx")
	require.NoError(t, err)
	assert.Equal(t, []string{"+910000000001", "+910000000002", "", "+910000000003"}, numbers)
}

func TestReadCSV(t *testing.T) {
	in := "+910000000001,first\n\n+910000000002\n"
	numbers, err := Read(strings.NewReader(in), "batch.CSV")
	require.NoError(t, err)
	assert.Equal(t, []string{"+910000000001", "+910000000002"}, numbers)
}

func TestReadRejectsGarbage(t *testing.T) {
	_, err := Read(strings.NewReader("definitely not a workbook"), "batch.xlsx")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnreadable)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "upload-1")
	require.NoError(t, os.WriteFile(path, workbook(t, [][]any{{"+910000000001"}}), 0o600))

	numbers, err := ReadFile(path, "numbers.xlsx")
	require.NoError(t, err)
	assert.Equal(t, []string{"+910000000001"}, numbers)

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing"), "numbers.xlsx")
	assert.Error(t, err)
}
