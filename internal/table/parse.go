// Package table turns delimited text and spreadsheet grids into records.
package table

import (
	"strings"

	"github.com/gstcopilot/gstcopilot/internal/model"
)

// Delimiter separates fields in delimited text. Quoting is not supported:
// a quoted field containing the delimiter is split like any other.
const Delimiter = ","

// Parse converts delimited text into records. Lines that are empty after
// trimming are skipped, and the first line with a non-empty field is the
// header. A line of only delimiters is a record with every field "". Fields
// are trimmed, short rows are padded with "" and extra fields are dropped.
// Parse never fails.
func Parse(text string) []model.Record {
	var header []string
	var records []model.Record
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		cells := trimAll(strings.Split(line, Delimiter))
		if header == nil {
			if !isBlank(cells) {
				header = cells
			}
			continue
		}
		records = append(records, zip(header, cells))
	}
	return records
}

// FromGrid converts an already split grid, such as the rows of a
// spreadsheet, with the Parse rules. Rows whose cells are all empty are
// skipped.
func FromGrid(grid [][]string) []model.Record {
	var header []string
	var records []model.Record
	for _, row := range grid {
		cells := trimAll(row)
		if isBlank(cells) {
			continue
		}
		if header == nil {
			header = cells
			continue
		}
		records = append(records, zip(header, cells))
	}
	return records
}

// MissingColumns returns the names in want that records do not carry.
// Records from one table share a shape, so only the first is inspected.
func MissingColumns(records []model.Record, want ...string) []string {
	if len(records) == 0 {
		return nil
	}
	var missing []string
	for _, name := range want {
		if _, ok := records[0].Get(name); !ok {
			missing = append(missing, name)
		}
	}
	return missing
}

func zip(header, cells []string) model.Record {
	rec := make(model.Record, len(header))
	for i, name := range header {
		if i < len(cells) {
			rec[name] = cells[i]
		} else {
			rec[name] = ""
		}
	}
	return rec
}

func trimAll(row []string) []string {
	out := make([]string, len(row))
	for i, cell := range row {
		out[i] = strings.TrimSpace(cell)
	}
	return out
}

func isBlank(cells []string) bool {
	for _, c := range cells {
		if c != "" {
			return false
		}
	}
	return true
}
