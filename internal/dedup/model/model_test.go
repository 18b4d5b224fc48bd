package model

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColumnKind(t *testing.T) {
	cases := []struct {
		name  string
		cells []Cell
		want  Kind
	}{
		{"numbers", []Cell{Text("1"), Text("2.5"), Text("-3")}, KindOther},
		{"numbers with gaps", []Cell{Text("1"), Missing, Text("1 234,50")}, KindOther},
		{"all missing", []Cell{Missing, Missing}, KindOther},
		{"empty", nil, KindOther},
		{"mixed", []Cell{Text("1"), Text("two")}, KindTextual},
		{"text", []Cell{Text("Acme"), Missing}, KindTextual},
	}
	for _, c := range cases {
		col := Column{Name: c.name, Cells: c.cells}
		assert.Equal(t, c.want, col.Kind(), c.name)
	}
	assert.Equal(t, "textual", KindTextual.String())
	assert.Equal(t, "other", KindOther.String())
}

func TestColumnDistinct(t *testing.T) {
	col := Column{Cells: []Cell{Text("a"), Text("A"), Text("a"), Missing, Missing, Text("")}}
	assert.Equal(t, 3, col.Distinct())
}

func TestNewTable(t *testing.T) {
	tbl := NewTable([]string{"id", "name"}, [][]string{
		{"1", "Acme"},
		{"2"},
		{"NULL", "N/A"},
	})
	require.Equal(t, 3, tbl.NumRows())
	assert.Equal(t, []string{"id", "name"}, tbl.Names())

	name, ok := tbl.Column("name")
	require.True(t, ok)
	assert.Equal(t, []Cell{Text("Acme"), Missing, Missing}, name.Cells)

	_, ok = tbl.Column("missing")
	assert.False(t, ok)

	assert.Equal(t, map[string]string{"id": "2", "name": ""}, tbl.Row(1))
}

func TestParseCell(t *testing.T) {
	for _, v := range []string{"", "  ", "NaN", "null", "#N/A", "<NA>", "None"} {
		assert.False(t, ParseCell(v).Valid, "%q", v)
	}
	assert.Equal(t, Text(" Acme "), ParseCell(" Acme "))
	assert.Equal(t, Text("0"), ParseCell("0"))
}

func TestClone(t *testing.T) {
	tbl := NewTable([]string{"name"}, [][]string{{"Acme"}})
	cp := tbl.Clone()
	cp.Columns[0].Cells[0].Value = "changed"
	cp.Columns[0].Name = "other"
	assert.Equal(t, "Acme", tbl.Columns[0].Cells[0].Value)
	assert.Equal(t, "name", tbl.Columns[0].Name)
}

func TestNumRowsEmpty(t *testing.T) {
	var tbl *Table
	assert.Equal(t, 0, tbl.NumRows())
	assert.Equal(t, 0, (&Table{}).NumRows())
}

func TestErrors(t *testing.T) {
	cause := errors.New("bad quote")
	err := fmt.Errorf("upload: %w", &MalformedTableError{File: "a.csv", Err: cause})

	var mt *MalformedTableError
	require.True(t, errors.As(err, &mt))
	assert.Equal(t, "a.csv", mt.File)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "malformed table a.csv: bad quote", mt.Error())

	assert.Equal(t, `unknown column "x"`, (&UnknownColumnError{Column: "x"}).Error())
	assert.Contains(t, (&InvalidThresholdError{Threshold: 120}).Error(), "120")
	assert.Contains(t, (&NoSuitableColumnError{}).Error(), "at least one column with text data")
}

func TestResultDuplicateRows(t *testing.T) {
	r := Result{Groups: []GroupResult{{Indices: []int{0, 1}}, {Indices: []int{2, 5, 7}}}}
	assert.Equal(t, 5, r.DuplicateRows())
}
