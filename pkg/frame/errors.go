package frame

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/symbdb/pkg/errcode"
	"github.com/gnames/symbdb/pkg/schema"
)

// CoercionError is returned when a value does not fit its field
// descriptor, for example an unexpected NULL in a non-nullable field.
func CoercionError(
	table string,
	field schema.Field,
	val any,
	err error,
) error {
	msg := `Unexpected value in <em>%s.%s</em> (%s)

<em>Value:</em> %v

The source data do not match the field descriptor.`
	vars := []any{table, field.SourceColumn(), field.Kind, val}

	return &gn.Error{
		Code: errcode.FrameCoercionError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("cannot coerce %s.%s value %v: %w",
			table, field.Name, val, err),
	}
}

// ColumnCountError is returned when a row has a wrong number of values.
func ColumnCountError(table string, want, got int) error {
	msg := "Table <em>%s</em> expects %d values per row, got %d"
	vars := []any{table, want, got}

	return &gn.Error{
		Code: errcode.FrameColumnError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("table %s: expected %d values, got %d",
			table, want, got),
	}
}

// MissingColumnError is returned when a row is copied from a frame that
// lacks a required field.
func MissingColumnError(table, field string) error {
	msg := "Table <em>%s</em> has no field <em>%s</em>"
	vars := []any{table, field}

	return &gn.Error{
		Code: errcode.FrameColumnError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("table %s has no field %s", table, field),
	}
}
