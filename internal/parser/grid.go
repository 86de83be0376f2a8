package parser

import (
	"fmt"
	"strconv"
	"strings"
)

// RawGrid is an uploaded sheet after ingestion: ordered rows of ordered
// cells, every cell already coerced to a trimmed string. Coercion happens
// once, here, so nothing downstream has to re-handle mixed cell types.
type RawGrid struct {
	Rows [][]string
}

// FromValues builds a RawGrid from the mixed-type cell values handed over
// by the spreadsheet-reading collaborator (string, number, bool or nil).
func FromValues(rows [][]any) RawGrid {
	grid := RawGrid{Rows: make([][]string, 0, len(rows))}
	for _, row := range rows {
		cells := make([]string, 0, len(row))
		for _, v := range row {
			cells = append(cells, coerce(v))
		}
		grid.Rows = append(grid.Rows, cells)
	}
	return grid
}

// FromStrings wraps pre-stringified rows, trimming each cell.
func FromStrings(rows [][]string) RawGrid {
	grid := RawGrid{Rows: make([][]string, 0, len(rows))}
	for _, row := range rows {
		cells := make([]string, 0, len(row))
		for _, v := range row {
			cells = append(cells, strings.TrimSpace(v))
		}
		grid.Rows = append(grid.Rows, cells)
	}
	return grid
}

// coerce turns one raw cell into a trimmed string. JSON numbers arrive as
// float64; whole values must not render with a decimal point or calendar
// day headers like 15 would become "15.000000".
func coerce(v any) string {
	switch c := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(c)
	case float64:
		if c == float64(int64(c)) {
			return strconv.FormatInt(int64(c), 10)
		}
		return strconv.FormatFloat(c, 'g', -1, 64)
	case int:
		return strconv.Itoa(c)
	case int64:
		return strconv.FormatInt(c, 10)
	case bool:
		return strconv.FormatBool(c)
	default:
		return strings.TrimSpace(fmt.Sprint(c))
	}
}

// cell returns the cell at (row, col), or "" when the row is ragged.
func (g RawGrid) cell(row, col int) string {
	if row < 0 || row >= len(g.Rows) {
		return ""
	}
	r := g.Rows[row]
	if col < 0 || col >= len(r) {
		return ""
	}
	return r[col]
}
