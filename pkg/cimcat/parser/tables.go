package parser

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/cimtools/cimcat/pkg/cimcat/config"
	"github.com/xuri/excelize/v2"
)

// Row is one kept data row: header name -> trimmed cell value, plus the
// 1-based sheet row it came from.
type Row struct {
	Number int
	Values map[string]string
}

// HeaderNotFoundError indicates that no row in a sheet contains all
// required header names. Extraction of that sheet cannot proceed.
type HeaderNotFoundError struct {
	Sheet        string
	Required     []string
	RowsSearched int
}

func (e *HeaderNotFoundError) Error() string {
	return fmt.Sprintf("no header row with columns %v in sheet %q (searched %d rows)",
		e.Required, e.Sheet, e.RowsSearched)
}

// ExtractTable reads the table embedded in a sheet. The header row is
// the first row whose cell values contain every required header; kept
// columns are those matching a required or optional header, leftmost
// occurrence winning. Data rows run from the header row to the last
// non-empty row; rows whose kept cells are all blank are skipped, and
// rows carrying a red fill or font in any kept cell are suppressed.
// The relative order of kept rows is preserved.
func ExtractTable(f *excelize.File, sheet string, required, optional []string, rule config.ColorRule, log *slog.Logger) ([]Row, error) {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}

	headerIdx := -1 // 0-based
	var columns map[int]string
	for i, row := range rows {
		if m := matchHeader(row, required, optional); m != nil {
			headerIdx = i
			columns = m
			break
		}
	}
	if headerIdx < 0 {
		return nil, &HeaderNotFoundError{Sheet: sheet, Required: required, RowsSearched: len(rows)}
	}
	log.Debug("header row located", "sheet", sheet, "row", headerIdx+1)

	last := lastNonEmptyRow(rows, headerIdx+1)

	var out []Row
	suppressed := 0
	for i := headerIdx + 1; i <= last; i++ {
		rowNum := i + 1
		values := make(map[string]string, len(columns))
		blank := true
		for col, name := range columns {
			var v string
			if col < len(rows[i]) {
				v = strings.TrimSpace(rows[i][col])
			}
			if v != "" {
				blank = false
			}
			values[name] = v
		}
		if blank {
			continue
		}
		if rowSuppressed(f, sheet, rowNum, columns, rule) {
			log.Debug("row suppressed by color", "sheet", sheet, "row", rowNum)
			suppressed++
			continue
		}
		out = append(out, Row{Number: rowNum, Values: values})
	}

	log.Info("table extracted", "sheet", sheet, "rows", len(out), "suppressed", suppressed)
	return out, nil
}

// matchHeader maps column index to header name when the row contains
// every required header, or returns nil. Duplicate header names keep
// their leftmost column.
func matchHeader(cells []string, required, optional []string) map[int]string {
	byName := make(map[string]int, len(cells))
	for i, c := range cells {
		name := strings.TrimSpace(c)
		if name == "" {
			continue
		}
		if _, seen := byName[name]; !seen {
			byName[name] = i
		}
	}

	columns := make(map[int]string, len(required)+len(optional))
	for _, name := range required {
		i, ok := byName[name]
		if !ok {
			return nil
		}
		columns[i] = name
	}
	for _, name := range optional {
		if name == "" {
			continue
		}
		if i, ok := byName[name]; ok {
			if _, taken := columns[i]; !taken {
				columns[i] = name
			}
		}
	}
	return columns
}

// lastNonEmptyRow returns the 0-based index of the last row at or after
// from with any non-empty cell, or from-1 when there is none.
func lastNonEmptyRow(rows [][]string, from int) int {
	last := from - 1
	for i := from; i < len(rows); i++ {
		for _, c := range rows[i] {
			if strings.TrimSpace(c) != "" {
				last = i
				break
			}
		}
	}
	return last
}

// rowSuppressed reports whether any kept cell of the row is marked red.
func rowSuppressed(f *excelize.File, sheet string, rowNum int, columns map[int]string, rule config.ColorRule) bool {
	for col := range columns {
		cell, err := excelize.CoordinatesToCellName(col+1, rowNum)
		if err != nil {
			continue
		}
		if Suppressed(StyleOf(f, sheet, cell), rule) {
			return true
		}
	}
	return false
}
