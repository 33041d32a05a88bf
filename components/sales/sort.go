package sales

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// SortDirection is the order applied to the sort column.
type SortDirection string

const (
	SortNone SortDirection = ""
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// SortState is the active sort. Only one column sorts at a time.
type SortState struct {
	Column    string        `json:"column,omitempty"`
	Direction SortDirection `json:"direction,omitempty"`
}

// SortMode decides how repeated header clicks cycle the direction.
type SortMode int

const (
	// SortModeToggle goes none -> asc -> desc -> asc.
	SortModeToggle SortMode = iota
	// SortModeTriState goes none -> asc -> desc -> none.
	SortModeTriState
)

// ParseSortMode accepts "toggle" and "tristate".
func ParseSortMode(value string) (SortMode, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "toggle":
		return SortModeToggle, nil
	case "tristate", "tri-state", "tri_state":
		return SortModeTriState, nil
	default:
		return SortModeToggle, fmt.Errorf("sales: unknown sort mode %q", value)
	}
}

// Next returns the direction following current.
func (m SortMode) Next(current SortDirection) SortDirection {
	switch current {
	case SortAsc:
		return SortDesc
	case SortDesc:
		if m == SortModeTriState {
			return SortNone
		}
		return SortAsc
	default:
		return SortAsc
	}
}

// Indicator is the header glyph for the direction.
func (d SortDirection) Indicator() string {
	switch d {
	case SortAsc:
		return "↑"
	case SortDesc:
		return "↓"
	default:
		return "↕"
	}
}

// ApplySort returns a sorted copy of rows. Numeric columns compare as numbers,
// the rest as strings. Equal keys keep their input order.
func ApplySort(rows []Sale, column Column, direction SortDirection) []Sale {
	out := append([]Sale(nil), rows...)
	if direction == SortNone || column.Value == nil {
		return out
	}
	compare := func(a, b Sale) int {
		if column.Numeric {
			return cmp.Compare(column.Number(a), column.Number(b))
		}
		return strings.Compare(column.Text(a), column.Text(b))
	}
	slices.SortStableFunc(out, func(a, b Sale) int {
		if direction == SortDesc {
			return compare(b, a)
		}
		return compare(a, b)
	})
	return out
}
