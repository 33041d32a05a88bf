package sales

import "strings"

// FilterState is the active column filter. Text is matched verbatim.
type FilterState struct {
	Column string `json:"column"`
	Text   string `json:"text"`
}

// ApplyFilter keeps the rows whose stringified value at column contains text
// (case-sensitive). Empty text keeps every row. The input is never modified.
func ApplyFilter(rows []Sale, column Column, text string) []Sale {
	if text == "" || column.Value == nil {
		return append([]Sale(nil), rows...)
	}
	out := make([]Sale, 0, len(rows))
	for _, row := range rows {
		if strings.Contains(column.Text(row), text) {
			out = append(out, row)
		}
	}
	return out
}
