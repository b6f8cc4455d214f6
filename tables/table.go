package tables

import (
	"go-ml.dev/pkg/photoz/fu"
	"go-ml.dev/pkg/zorros"
)

type kind int

const (
	floatKind kind = iota
	stringKind
	boolKind
)

/*
Column is a single named typed column of a Table
*/
type Column struct {
	kind kind
	f    []float64
	s    []string
	b    []bool
}

/*
Col wraps a float slice into a column
*/
func Col(v []float64) *Column { return &Column{kind: floatKind, f: v} }

/*
StrCol wraps a string slice into a column
*/
func StrCol(v []string) *Column { return &Column{kind: stringKind, s: v} }

/*
BoolCol wraps a bool slice into a column
*/
func BoolCol(v []bool) *Column { return &Column{kind: boolKind, b: v} }

func (c *Column) Len() int {
	switch c.kind {
	case stringKind:
		return len(c.s)
	case boolKind:
		return len(c.b)
	}
	return len(c.f)
}

/*
Float returns the i-th value of a float column
*/
func (c *Column) Float(i int) float64 { return c.f[i] }

/*
String returns the i-th value of a string column
*/
func (c *Column) String(i int) string { return c.s[i] }

/*
Bool returns the i-th value of a bool column
*/
func (c *Column) Bool(i int) bool { return c.b[i] }

/*
Floats returns the backing float slice of a float column
*/
func (c *Column) Floats() []float64 { return c.f }

/*
Strings returns the backing string slice of a string column
*/
func (c *Column) Strings() []string { return c.s }

/*
Bools returns the backing bool slice of a bool column
*/
func (c *Column) Bools() []bool { return c.b }

func (c *Column) slice(idx []int) *Column {
	switch c.kind {
	case stringKind:
		v := make([]string, len(idx))
		for j, i := range idx {
			v[j] = c.s[i]
		}
		return StrCol(v)
	case boolKind:
		v := make([]bool, len(idx))
		for j, i := range idx {
			v[j] = c.b[i]
		}
		return BoolCol(v)
	}
	v := make([]float64, len(idx))
	for j, i := range idx {
		v[j] = c.f[i]
	}
	return Col(v)
}

/*
Table is an immutable in-memory column-major snapshot of tabular data
*/
type Table struct {
	names   []string
	columns []*Column
}

/*
MakeTable creates a table from names and columns of equal length
*/
func MakeTable(names []string, columns ...*Column) *Table {
	if len(names) != len(columns) {
		panic(zorros.Panic(zorros.Errorf("got %v names for %v columns", len(names), len(columns))))
	}
	for i, c := range columns {
		if c.Len() != columns[0].Len() {
			panic(zorros.Panic(zorros.Errorf("column `%v` has length %v, expected %v", names[i], c.Len(), columns[0].Len())))
		}
	}
	return &Table{names: names, columns: columns}
}

/*
NewEmpty creates a zero-length table with float columns of the given names
*/
func NewEmpty(names []string) *Table {
	columns := make([]*Column, len(names))
	for i := range columns {
		columns[i] = Col(nil)
	}
	return &Table{names: names, columns: columns}
}

/*
FromStructs collects same-shaped records into a float table, one row per record
*/
func FromStructs(rows []fu.Struct) *Table {
	if len(rows) == 0 {
		return NewEmpty(nil)
	}
	names := rows[0].Names
	columns := make([]*Column, len(names))
	for j := range names {
		v := make([]float64, len(rows))
		for i, r := range rows {
			v[i] = r.Values[j]
		}
		columns[j] = Col(v)
	}
	return MakeTable(names, columns...)
}

func (t *Table) Len() int {
	if len(t.columns) == 0 {
		return 0
	}
	return t.columns[0].Len()
}

func (t *Table) Names() []string { return t.names }

/*
Col returns the named column, nil if absent
*/
func (t *Table) Col(name string) *Column {
	for i, n := range t.names {
		if n == name {
			return t.columns[i]
		}
	}
	return nil
}

/*
Has reports whether the table has the named column
*/
func (t *Table) Has(name string) bool { return t.Col(name) != nil }

/*
Floats returns the float values of the named column, panics if absent
*/
func (t *Table) Floats(name string) []float64 {
	c := t.Col(name)
	if c == nil {
		panic(zorros.Panic(zorros.Errorf("table does not have column `%v`", name)))
	}
	return c.Floats()
}

/*
With returns a new table with the column appended, replacing any same-named one
*/
func (t *Table) With(c *Column, name string) *Table {
	names := make([]string, 0, len(t.names)+1)
	columns := make([]*Column, 0, len(t.columns)+1)
	for i, n := range t.names {
		if n != name {
			names = append(names, n)
			columns = append(columns, t.columns[i])
		}
	}
	names = append(names, name)
	columns = append(columns, c)
	return MakeTable(names, columns...)
}

/*
Filter returns a new table keeping the rows the predicate accepts
*/
func (t *Table) Filter(pred func(i int) bool) *Table {
	idx := make([]int, 0, t.Len())
	for i := 0; i < t.Len(); i++ {
		if pred(i) {
			idx = append(idx, i)
		}
	}
	return t.Slice(idx)
}

/*
Slice returns a new table of the rows at the given indexes, in order
*/
func (t *Table) Slice(idx []int) *Table {
	columns := make([]*Column, len(t.columns))
	for i, c := range t.columns {
		columns[i] = c.slice(idx)
	}
	return MakeTable(t.names, columns...)
}

/*
Matrix gathers the named float columns into a row-major feature matrix
*/
func (t *Table) Matrix(features []string) [][]float64 {
	cols := make([]*Column, len(features))
	for j, name := range features {
		c := t.Col(name)
		if c == nil {
			panic(zorros.Panic(zorros.Errorf("table does not have column `%v`", name)))
		}
		cols[j] = c
	}
	m := make([][]float64, t.Len())
	for i := range m {
		row := make([]float64, len(features))
		for j, c := range cols {
			row[j] = c.Float(i)
		}
		m[i] = row
	}
	return m
}
