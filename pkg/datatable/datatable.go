// Package datatable holds a generic table of rows with configurable columns,
// searching, sorting, and pagination, that can be rendered as text or encoded
// as JSON or YAML.
package datatable

import (
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/samber/lo"
)

// Column describes how to present one value of a row.
type Column[R any] struct {
	// ID identifies the column in sorting settings.
	ID string
	// Header is the human readable column title.
	Header string
	// Value returns the displayed value for a row.
	Value func(R) string
	// Style optionally returns the color to print the value with. A nil color
	// prints the value as-is.
	Style func(R) *color.Color
	// DisableSort disallows sorting on this column.
	DisableSort bool
}

// Table is a set of rows together with how they should be presented.
type Table[R any] struct {
	Title             string
	Columns           []Column[R]
	Rows              []R
	RowID             func(R) string
	IsLoading         bool
	EmptyContentLabel string
	DisableSelect     bool
	State             State
}

// Column returns the column with the given ID, if any.
func (t Table[R]) Column(id string) (Column[R], bool) {
	return lo.Find(t.Columns, func(c Column[R]) bool {
		return strings.EqualFold(c.ID, id)
	})
}

// Filtered returns the rows matching the search, sorted according to the
// table's state. The table's rows are left untouched.
func (t Table[R]) Filtered() []R {
	rows := t.Rows
	if search := strings.TrimSpace(t.State.Search); search != "" {
		search = strings.ToLower(search)
		rows = lo.Filter(rows, func(row R, _ int) bool {
			return lo.SomeBy(t.Columns, func(c Column[R]) bool {
				return strings.Contains(strings.ToLower(c.Value(row)), search)
			})
		})
	}
	sorted := make([]R, len(rows))
	copy(sorted, rows)
	if col, ok := t.Column(t.State.SortBy); ok && !col.DisableSort {
		desc := t.State.SortDesc
		sort.SliceStable(sorted, func(i, j int) bool {
			a, b := col.Value(sorted[i]), col.Value(sorted[j])
			if desc {
				return a > b
			}
			return a < b
		})
	}
	return sorted
}

// Visible returns the rows of the current page.
func (t Table[R]) Visible() []R {
	rows := t.Filtered()
	size := t.State.PageSize
	if size <= 0 {
		return rows
	}
	start := (t.State.page(t.pageCount(len(rows))) - 1) * size
	end := start + size
	if end > len(rows) {
		end = len(rows)
	}
	return rows[start:end]
}

// PageCount returns the number of pages of filtered rows. It is always at
// least 1.
func (t Table[R]) PageCount() int {
	return t.pageCount(len(t.Filtered()))
}

func (t Table[R]) pageCount(rowCount int) int {
	size := t.State.PageSize
	if size <= 0 || rowCount == 0 {
		return 1
	}
	return (rowCount + size - 1) / size
}

// Page returns the effective page number, clamped to the valid range.
func (t Table[R]) Page() int {
	return t.State.page(t.PageCount())
}

// ID returns the identity of a row, or an empty string if the table has no
// RowID func.
func (t Table[R]) ID(row R) string {
	if t.RowID == nil {
		return ""
	}
	return t.RowID(row)
}
