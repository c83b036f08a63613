// Package batchfile reads the phone numbers of an uploaded batch: the first
// column of every row of the first worksheet, or of a CSV file.
package batchfile

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	dErrors "numcheck/pkg/domain-errors"
)

// ErrUnreadable is returned for files that cannot be parsed as a batch.
var ErrUnreadable = errors.New("unreadable batch file")

// ReadFile parses the file at path. name is the client-side file name and
// selects the format; anything not ending in .csv is read as a workbook.
func ReadFile(path, name string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open batch file: %w", err)
	}
	defer f.Close()
	return Read(f, name)
}

// Read parses a batch from r. Rows with no content at all are skipped; a row
// whose first cell is blank is kept so it still produces a result.
func Read(r io.Reader, name string) ([]string, error) {
	var (
		rows [][]string
		err  error
	)
	if strings.EqualFold(filepath.Ext(name), ".csv") {
		rows, err = readCSV(r)
	} else {
		rows, err = readWorkbook(r)
	}
	if err != nil {
		return nil, dErrors.Wrap(fmt.Errorf("%w: %w", ErrUnreadable, err), dErrors.CodeValidation,
			"Error reading the file. Please ensure it is a valid Excel file.")
	}
	return firstColumn(rows), nil
}

func readWorkbook(r io.Reader) ([][]string, error) {
	wb, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	sheets := wb.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}
	return wb.GetRows(sheets[0], excelize.Options{RawCellValue: true})
}

func readCSV(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	return cr.ReadAll()
}

func firstColumn(rows [][]string) []string {
	numbers := make([]string, 0, len(rows))
	for _, row := range rows {
		if blank(row) {
			continue
		}
		numbers = append(numbers, strings.TrimSpace(row[0]))
	}
	return numbers
}

func blank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
