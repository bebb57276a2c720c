// Package schema describes tables symbdb reads from a Symbiota database
// and writes into the output SQLite file.
//
// Every table is a list of typed field descriptors. Values are validated
// against descriptors when they are fetched (see package frame), instead of
// being coerced after the fact.
package schema

import (
	_ "embed"
	"fmt"
)

// CreateScript is the static SQL script that creates the output database.
//
//go:embed create-db.sql
var CreateScript string

// Kind is a semantic type of a field.
type Kind int

const (
	// Int is a 64-bit integer.
	Int Kind = iota + 1
	// Float is a 64-bit floating point number.
	Float
	// String is a UTF-8 text. Dates and timestamps are kept as text.
	String
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case Int:
		return "int"
	case Float:
		return "float"
	case String:
		return "string"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Field describes one column of a table.
type Field struct {
	// Name is the name of the field in symbdb and in the output database.
	Name string

	// Column is the name of the column in the source database, if it
	// differs from Name.
	Column string

	// Kind is the semantic type of the field.
	Kind Kind

	// Nullable is true if the field can be NULL.
	Nullable bool
}

// SourceColumn returns the column name used in the source database.
func (f Field) SourceColumn() string {
	if f.Column != "" {
		return f.Column
	}
	return f.Name
}

// Table describes a table as a list of fields.
type Table struct {
	// Name is the name of the table, identical in the source and the
	// output databases.
	Name string

	// Fields are the columns of the table in the output order.
	Fields []Field
}

// FieldNames returns names of all fields in order.
func (t Table) FieldNames() []string {
	res := make([]string, len(t.Fields))
	for i := range t.Fields {
		res[i] = t.Fields[i].Name
	}
	return res
}

// Index returns the position of a field by its name, or -1.
func (t Table) Index(name string) int {
	for i := range t.Fields {
		if t.Fields[i].Name == name {
			return i
		}
	}
	return -1
}

// Field returns a field by its name.
func (t Table) Field(name string) (Field, bool) {
	idx := t.Index(name)
	if idx < 0 {
		return Field{}, false
	}
	return t.Fields[idx], true
}

// Select returns a table with the same name and only the given fields.
// Unknown names are ignored.
func (t Table) Select(names ...string) Table {
	res := Table{Name: t.Name}
	for _, v := range names {
		if f, ok := t.Field(v); ok {
			res.Fields = append(res.Fields, f)
		}
	}
	return res
}
