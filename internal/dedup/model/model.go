package model

import (
	"strings"

	"dedup-service/internal/utils"
)

type Kind int

const (
	KindOther   Kind = iota // числа, пустые колонки и всё прочее
	KindTextual             // есть хотя бы одно нечисловое значение
)

func (k Kind) String() string {
	if k == KindTextual {
		return "textual"
	}
	return "other"
}

// Cell: значение ячейки; Valid=false означает пропуск (NULL/NaN/пусто).
type Cell struct {
	Value string
	Valid bool
}

func Text(v string) Cell { return Cell{Value: v, Valid: true} }

var Missing = Cell{}

type Column struct {
	Name  string
	Cells []Cell
}

// Kind infers the value kind from the observed (non-missing) cells.
func (c *Column) Kind() Kind {
	for _, cell := range c.Cells {
		if cell.Valid && !utils.IsNumeric(cell.Value) {
			return KindTextual
		}
	}
	return KindOther
}

// Distinct counts distinct raw values, missing cells excluded.
func (c *Column) Distinct() int {
	seen := make(map[string]struct{}, len(c.Cells))
	for _, cell := range c.Cells {
		if cell.Valid {
			seen[cell.Value] = struct{}{}
		}
	}
	return len(seen)
}

// Table: колонки в исходном порядке, ячейки выровнены по индексу строки.
type Table struct {
	Columns []Column
}

func (t *Table) NumRows() int {
	if t == nil || len(t.Columns) == 0 {
		return 0
	}
	return len(t.Columns[0].Cells)
}

func (t *Table) Names() []string {
	out := make([]string, len(t.Columns))
	for i := range t.Columns {
		out[i] = t.Columns[i].Name
	}
	return out
}

func (t *Table) Column(name string) (*Column, bool) {
	for i := range t.Columns {
		if t.Columns[i].Name == name {
			return &t.Columns[i], true
		}
	}
	return nil, false
}

// Row returns the raw values of row i keyed by column name; missing cells are "".
func (t *Table) Row(i int) map[string]string {
	m := make(map[string]string, len(t.Columns))
	for _, c := range t.Columns {
		if i < len(c.Cells) && c.Cells[i].Valid {
			m[c.Name] = c.Cells[i].Value
		} else {
			m[c.Name] = ""
		}
	}
	return m
}

// Clone makes a deep copy, so in-place normalization of one copy is not visible in the other.
func (t *Table) Clone() *Table {
	out := &Table{Columns: make([]Column, len(t.Columns))}
	for i, c := range t.Columns {
		cells := make([]Cell, len(c.Cells))
		copy(cells, c.Cells)
		out.Columns[i] = Column{Name: c.Name, Cells: cells}
	}
	return out
}

// NewTable builds a table from a header and string records. Short records are padded
// with missing cells; null tokens become missing cells.
func NewTable(header []string, records [][]string) *Table {
	t := &Table{Columns: make([]Column, len(header))}
	for i, h := range header {
		t.Columns[i] = Column{Name: h, Cells: make([]Cell, 0, len(records))}
	}
	for _, rec := range records {
		for i := range header {
			var v string
			if i < len(rec) {
				v = rec[i]
			}
			t.Columns[i].Cells = append(t.Columns[i].Cells, ParseCell(v))
		}
	}
	return t
}

// нулевые токены, которые табличные выгрузки пишут вместо пустого значения
var nullTokens = map[string]struct{}{
	"": {}, "#N/A": {}, "#N/A N/A": {}, "#NA": {}, "-1.#IND": {}, "-1.#QNAN": {},
	"-NaN": {}, "-nan": {}, "1.#IND": {}, "1.#QNAN": {}, "<NA>": {}, "N/A": {},
	"NA": {}, "NULL": {}, "NaN": {}, "None": {}, "n/a": {}, "nan": {}, "null": {},
}

// ParseCell turns raw file text into a cell, recognising null tokens.
func ParseCell(v string) Cell {
	if _, ok := nullTokens[strings.TrimSpace(v)]; ok {
		return Missing
	}
	return Text(v)
}

// Group: номера строк (по возрастанию) одной сущности, минимум две.
type Group []int

type Options struct {
	Column    string // явный выбор колонки; пусто: автоопределение
	Threshold int    // порог схожести 0..100
	Limit     int    // сколько лучших совпадений проверять на семя; 0: все
	Keywords  []string
}

const DefaultThreshold = 85

func DefaultOptions() Options {
	return Options{Threshold: DefaultThreshold}
}

type GroupResult struct {
	Indices []int               `json:"indices"`
	Rows    []map[string]string `json:"rows"`
}

type Result struct {
	ID        string        `json:"id,omitempty"`
	File      string        `json:"file,omitempty"`
	Column    string        `json:"column"`
	Strategy  string        `json:"strategy"` // keyword | cardinality | first-textual | explicit
	Threshold int           `json:"threshold"`
	Limit     int           `json:"limit,omitempty"`
	Rows      int           `json:"rows"`
	Columns   []string      `json:"columns"`
	Groups    []GroupResult `json:"groups"`
}

// DuplicateRows counts rows that ended up in some group.
func (r Result) DuplicateRows() int {
	n := 0
	for _, g := range r.Groups {
		n += len(g.Indices)
	}
	return n
}
