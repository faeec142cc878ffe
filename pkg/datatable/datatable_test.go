package datatable

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fruit struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

func init() {
	color.NoColor = true
}

func newFruitTable(state State) Table[fruit] {
	return Table[fruit]{
		Title: "Fruits",
		Columns: []Column[fruit]{
			{ID: "name", Header: "Name", Value: func(f fruit) string { return f.Name }},
			{ID: "color", Header: "Color", Value: func(f fruit) string { return f.Color }},
		},
		Rows: []fruit{
			{Name: "banana", Color: "yellow"},
			{Name: "apple", Color: "red"},
			{Name: "cherry", Color: "red"},
			{Name: "lime", Color: "green"},
		},
		RowID:             func(f fruit) string { return f.Name },
		EmptyContentLabel: "No fruits found",
		State:             state,
	}
}

func names(fruits []fruit) []string {
	out := make([]string, len(fruits))
	for i, f := range fruits {
		out[i] = f.Name
	}
	return out
}

func TestFiltered_KeepsOrderWithoutSort(t *testing.T) {
	table := newFruitTable(State{})
	assert.Equal(t, []string{"banana", "apple", "cherry", "lime"}, names(table.Filtered()))
}

func TestFiltered_Sort(t *testing.T) {
	table := newFruitTable(State{SortBy: "name"})
	assert.Equal(t, []string{"apple", "banana", "cherry", "lime"}, names(table.Filtered()))

	table.State.SortDesc = true
	assert.Equal(t, []string{"lime", "cherry", "banana", "apple"}, names(table.Filtered()))
}

func TestFiltered_SortIsStable(t *testing.T) {
	table := newFruitTable(State{SortBy: "COLOR"})
	assert.Equal(t, []string{"lime", "apple", "cherry", "banana"}, names(table.Filtered()))
}

func TestFiltered_SortOnDisabledColumnIsIgnored(t *testing.T) {
	table := newFruitTable(State{SortBy: "name"})
	table.Columns[0].DisableSort = true
	assert.Equal(t, []string{"banana", "apple", "cherry", "lime"}, names(table.Filtered()))
}

func TestFiltered_SearchAnyColumn(t *testing.T) {
	table := newFruitTable(State{Search: "RED"})
	assert.Equal(t, []string{"apple", "cherry"}, names(table.Filtered()))
}

func TestFiltered_DoesNotMutateRows(t *testing.T) {
	table := newFruitTable(State{SortBy: "name"})
	table.Filtered()
	assert.Equal(t, "banana", table.Rows[0].Name)
}

func TestVisible_Pagination(t *testing.T) {
	testCases := []struct {
		name      string
		state     State
		want      []string
		wantPages int
	}{
		{
			name:      "no page size shows all",
			state:     State{},
			want:      []string{"banana", "apple", "cherry", "lime"},
			wantPages: 1,
		},
		{
			name:      "first page",
			state:     State{PageSize: 3},
			want:      []string{"banana", "apple", "cherry"},
			wantPages: 2,
		},
		{
			name:      "last partial page",
			state:     State{PageSize: 3, Page: 2},
			want:      []string{"lime"},
			wantPages: 2,
		},
		{
			name:      "page past end is clamped",
			state:     State{PageSize: 2, Page: 10},
			want:      []string{"cherry", "lime"},
			wantPages: 2,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			table := newFruitTable(tc.state)
			assert.Equal(t, tc.want, names(table.Visible()))
			assert.Equal(t, tc.wantPages, table.PageCount())
		})
	}
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	table := newFruitTable(State{SortBy: "name"})
	require.NoError(t, table.Render(&buf))

	want := `Fruits

NAME     COLOR
apple    red
banana   yellow
cherry   red
lime     green
`
	assert.Equal(t, want, buf.String())
}

func TestRender_Loading(t *testing.T) {
	var buf bytes.Buffer
	table := newFruitTable(State{})
	table.IsLoading = true
	require.NoError(t, table.Render(&buf))
	assert.Equal(t, "Fruits\n\nLoading...\n", buf.String())
}

func TestRender_Empty(t *testing.T) {
	var buf bytes.Buffer
	table := newFruitTable(State{Search: "purple"})
	require.NoError(t, table.Render(&buf))
	assert.Equal(t, "Fruits\n\nNo fruits found\n", buf.String())
}

func TestRender_PageFooter(t *testing.T) {
	var buf bytes.Buffer
	table := newFruitTable(State{PageSize: 3, Page: 2})
	require.NoError(t, table.Render(&buf))
	assert.True(t, strings.HasSuffix(buf.String(), "Page 2 of 2 (4 rows)\n"), buf.String())
}

func TestRender_EmptyCellsAreDashed(t *testing.T) {
	var buf bytes.Buffer
	table := newFruitTable(State{})
	table.Title = ""
	table.Rows = []fruit{{Name: "mystery"}}
	require.NoError(t, table.Render(&buf))
	assert.Equal(t, "NAME      COLOR\nmystery   -\n", buf.String())
}

func TestEncodeJSON(t *testing.T) {
	var buf bytes.Buffer
	table := newFruitTable(State{Search: "lime"})
	require.NoError(t, table.Encode(&buf, FormatJSON))

	var got []Record[fruit]
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, []Record[fruit]{{ID: "lime", Row: fruit{Name: "lime", Color: "green"}}}, got)
}

func TestEncodeYAML(t *testing.T) {
	var buf bytes.Buffer
	table := newFruitTable(State{Search: "lime"})
	require.NoError(t, table.Encode(&buf, FormatYAML))
	assert.Equal(t, "- id: lime\n  row:\n    color: green\n    name: lime\n", buf.String())
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("YML")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	_, err = ParseFormat("xml")
	assert.Error(t, err)
}

func TestStateValidate(t *testing.T) {
	assert.NoError(t, State{PageSize: 10, Page: 1}.Validate())
	assert.Error(t, State{PageSize: -1}.Validate())
	assert.Error(t, State{Page: -1}.Validate())
}
