// Package frame provides a typed columnar table for query results.
//
// A Frame is created from a schema.Table descriptor. Every appended value is
// validated and converted according to the field descriptor, so a Frame
// never contains a NULL in a non-nullable field or a value of a wrong type.
// Frames are gob-encodable and are what the table cache stores.
package frame

import (
	"slices"

	"github.com/gnames/symbdb/pkg/schema"
)

// Column keeps values of one field. Only the slice matching the kind of
// the field is used. Nulls marks NULL values and defines the length of
// the column.
type Column struct {
	Field   schema.Field
	Ints    []int64
	Floats  []float64
	Strings []string
	Nulls   []bool
}

// Frame is a typed columnar table.
type Frame struct {
	// Table is the name of the table the data came from.
	Table string

	// Columns contain data, one column per field of the descriptor.
	Columns []Column
}

// New creates an empty Frame for a table descriptor.
func New(t schema.Table) *Frame {
	res := &Frame{
		Table:   t.Name,
		Columns: make([]Column, len(t.Fields)),
	}
	for i := range t.Fields {
		res.Columns[i].Field = t.Fields[i]
	}
	return res
}

// Schema returns the table descriptor of the Frame.
func (f *Frame) Schema() schema.Table {
	res := schema.Table{
		Name:   f.Table,
		Fields: make([]schema.Field, len(f.Columns)),
	}
	for i := range f.Columns {
		res.Fields[i] = f.Columns[i].Field
	}
	return res
}

// Len returns the number of rows.
func (f *Frame) Len() int {
	if f == nil || len(f.Columns) == 0 {
		return 0
	}
	return len(f.Columns[0].Nulls)
}

// Index returns the position of a column by its field name, or -1.
func (f *Frame) Index(name string) int {
	for i := range f.Columns {
		if f.Columns[i].Field.Name == name {
			return i
		}
	}
	return -1
}

// Append validates a row of raw values, converts them to the kinds of
// their fields and appends the row. Values must follow the order of
// fields. On error nothing is appended.
func (f *Frame) Append(vals ...any) error {
	if len(vals) != len(f.Columns) {
		return ColumnCountError(f.Table, len(f.Columns), len(vals))
	}
	row := make([]any, len(vals))
	for i := range vals {
		v, err := coerce(f.Columns[i].Field, vals[i])
		if err != nil {
			return CoercionError(f.Table, f.Columns[i].Field, vals[i], err)
		}
		row[i] = v
	}
	for i := range row {
		f.Columns[i].push(row[i])
	}
	return nil
}

// Value returns the value at row i and column j. The result is nil, int64,
// float64 or string.
func (f *Frame) Value(i, j int) any {
	c := &f.Columns[j]
	if c.Nulls[i] {
		return nil
	}
	switch c.Field.Kind {
	case schema.Int:
		return c.Ints[i]
	case schema.Float:
		return c.Floats[i]
	default:
		return c.Strings[i]
	}
}

// Row returns all values of row i.
func (f *Frame) Row(i int) []any {
	res := make([]any, len(f.Columns))
	for j := range f.Columns {
		res[j] = f.Value(i, j)
	}
	return res
}

// Get returns the value of a named field at row i. The second value is
// false if the field does not exist.
func (f *Frame) Get(name string, i int) (any, bool) {
	j := f.Index(name)
	if j < 0 {
		return nil, false
	}
	return f.Value(i, j), true
}

// Int returns an integer value of a named field at row i. The second
// value is false for NULL values, unknown or non-integer fields.
func (f *Frame) Int(name string, i int) (int64, bool) {
	j := f.Index(name)
	if j < 0 {
		return 0, false
	}
	c := &f.Columns[j]
	if c.Field.Kind != schema.Int || c.Nulls[i] {
		return 0, false
	}
	return c.Ints[i], true
}

// Distinct returns sorted distinct non-NULL values of an integer field.
// NULL values are excluded, so the result is safe to use in membership
// tests.
func (f *Frame) Distinct(name string) []int64 {
	j := f.Index(name)
	if j < 0 || f.Columns[j].Field.Kind != schema.Int {
		return nil
	}
	c := &f.Columns[j]
	seen := make(map[int64]struct{})
	res := make([]int64, 0)
	for i := range c.Ints {
		if c.Nulls[i] {
			continue
		}
		if _, ok := seen[c.Ints[i]]; ok {
			continue
		}
		seen[c.Ints[i]] = struct{}{}
		res = append(res, c.Ints[i])
	}
	slices.Sort(res)
	return res
}

// AppendRow copies row i of src into the Frame. Columns are matched by
// field name, src must have every field of the Frame.
func (f *Frame) AppendRow(src *Frame, i int) error {
	vals := make([]any, len(f.Columns))
	for j := range f.Columns {
		v, ok := src.Get(f.Columns[j].Field.Name, i)
		if !ok {
			return MissingColumnError(src.Table, f.Columns[j].Field.Name)
		}
		vals[j] = v
	}
	return f.Append(vals...)
}

// Concat appends all rows of src to the Frame.
func (f *Frame) Concat(src *Frame) error {
	for i := range src.Len() {
		if err := f.AppendRow(src, i); err != nil {
			return err
		}
	}
	return nil
}

func (c *Column) push(v any) {
	c.Nulls = append(c.Nulls, v == nil)
	switch c.Field.Kind {
	case schema.Int:
		i, _ := v.(int64)
		c.Ints = append(c.Ints, i)
	case schema.Float:
		fl, _ := v.(float64)
		c.Floats = append(c.Floats, fl)
	default:
		s, _ := v.(string)
		c.Strings = append(c.Strings, s)
	}
}
