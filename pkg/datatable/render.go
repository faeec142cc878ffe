package datatable

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
)

const (
	loadingLabel      = "Loading..."
	defaultEmptyLabel = "No items found"
	columnGap         = "   "
)

var headerColor = color.New(color.Bold)

// Render writes the table as aligned text columns. Colors are only applied
// to the padded cells so they do not affect the alignment.
func (t Table[R]) Render(w io.Writer) error {
	bw := bufio.NewWriter(w)
	if t.Title != "" {
		fmt.Fprintln(bw, headerColor.Sprint(t.Title))
		fmt.Fprintln(bw)
	}

	if t.IsLoading {
		fmt.Fprintln(bw, loadingLabel)
		return bw.Flush()
	}

	filtered := t.Filtered()
	if len(filtered) == 0 {
		label := t.EmptyContentLabel
		if label == "" {
			label = defaultEmptyLabel
		}
		fmt.Fprintln(bw, label)
		return bw.Flush()
	}

	rows := t.Visible()
	cells := make([][]string, 0, len(rows)+1)
	header := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		header[i] = strings.ToUpper(c.Header)
	}
	cells = append(cells, header)
	for _, row := range rows {
		line := make([]string, len(t.Columns))
		for i, c := range t.Columns {
			line[i] = sanitizeCell(c.Value(row))
		}
		cells = append(cells, line)
	}

	widths := padWidths(cells)
	for i, line := range cells {
		var sb strings.Builder
		for j, cell := range line {
			last := j == len(line)-1
			if !last {
				cell = runewidth.FillRight(cell, widths[j])
			}
			switch {
			case i == 0:
				cell = headerColor.Sprint(cell)
			case t.Columns[j].Style != nil:
				if c := t.Columns[j].Style(rows[i-1]); c != nil {
					cell = c.Sprint(cell)
				}
			}
			sb.WriteString(cell)
			if !last {
				sb.WriteString(columnGap)
			}
		}
		fmt.Fprintln(bw, strings.TrimRight(sb.String(), " "))
	}

	if t.State.PageSize > 0 {
		fmt.Fprintln(bw)
		fmt.Fprintf(bw, "Page %d of %d (%d rows)\n", t.Page(), t.pageCount(len(filtered)), len(filtered))
	}
	return bw.Flush()
}

func padWidths(cells [][]string) []int {
	if len(cells) == 0 {
		return nil
	}
	widths := make([]int, len(cells[0]))
	for _, line := range cells {
		for i, cell := range line {
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}
	return widths
}

func sanitizeCell(s string) string {
	if s == "" {
		return "-"
	}
	return strings.NewReplacer("\n", " ", "\t", " ").Replace(s)
}
