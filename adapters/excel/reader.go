package excel

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"slotsense/domain/evidence"
	"slotsense/internal/errors"
)

// ReadCounters loads one Counters per data row from an .xlsx or .csv file.
// Columns are matched by header name; missing columns read as zero. For
// workbooks the first sheet is read, so a history workbook reads back too.
func ReadCounters(path string) ([]evidence.Counters, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, errors.NotFound(fmt.Sprintf("counter file %s", path), err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		file, err := os.Open(path)
		if err != nil {
			return nil, errors.StorageError("failed to open CSV file", err)
		}
		defer file.Close()
		return ReadCSV(file)
	case ".xlsx":
		f, err := excelize.OpenFile(path)
		if err != nil {
			return nil, errors.StorageError("failed to open Excel file", err)
		}
		defer f.Close()
		return readWorkbook(f)
	}
	return nil, errors.InvalidInput(fmt.Sprintf("unsupported file type: %s", filepath.Ext(path)))
}

// ReadWorkbook reads counters from an .xlsx stream
func ReadWorkbook(r io.Reader) ([]evidence.Counters, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.ValidationError("failed to open Excel data", err)
	}
	defer f.Close()
	return readWorkbook(f)
}

// ReadCSV reads counters from CSV
func ReadCSV(r io.Reader) ([]evidence.Counters, error) {
	rows, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, errors.ValidationError("failed to read CSV data", err)
	}
	return processRows(rows)
}

func readWorkbook(f *excelize.File) ([]evidence.Counters, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.ValidationError("workbook has no sheets", nil)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errors.ValidationError(fmt.Sprintf("failed to read %s", sheets[0]), err)
	}
	return processRows(rows)
}

func processRows(rows [][]string) ([]evidence.Counters, error) {
	if len(rows) < 1 {
		return nil, errors.ValidationError("counter sheet must have a header row", nil)
	}

	index := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		index[strings.TrimSpace(h)] = i
	}

	out := make([]evidence.Counters, 0, len(rows)-1)
	for r, row := range rows[1:] {
		if blank(row) {
			continue
		}
		var c evidence.Counters
		for _, col := range counterColumns {
			i, ok := index[col.header]
			if !ok || i >= len(row) {
				continue
			}
			v, err := parseCount(row[i])
			if err != nil {
				return nil, errors.ValidationError(fmt.Sprintf("row %d column %s", r+2, col.header), err)
			}
			*col.field(&c) = v
		}
		if i, ok := index[StateHeader]; ok && i < len(row) && strings.TrimSpace(row[i]) != "" {
			state, err := evidence.ParseState(row[i])
			if err != nil {
				return nil, errors.ValidationError(fmt.Sprintf("row %d column %s", r+2, StateHeader), err)
			}
			c.Game.State = state
		}
		out = append(out, c)
	}
	return out, nil
}

func parseCount(cell string) (int, error) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return 0, nil
	}
	if n, err := strconv.Atoi(cell); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(cell, 64)
	if err != nil || f != math.Trunc(f) {
		return 0, fmt.Errorf("%q is not a whole number", cell)
	}
	return int(f), nil
}

func blank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
