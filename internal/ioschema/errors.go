package ioschema

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/symbdb/pkg/errcode"
)

func CreateError(path string, err error) error {
	msg := "Cannot create output file <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.OutputCreateError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot create %s: %w", fn, path, err),
	}
}

// SchemaError is returned when the schema script fails.
func SchemaError(err error) error {
	msg := `Cannot create tables of the output database

<em>Possible causes:</em>
  - the schema script is invalid
  - not enough disk space`

	return &gn.Error{
		Code: errcode.OutputSchemaError,
		Msg:  msg,
		Err:  fmt.Errorf("failed to run schema script: %w", err),
	}
}

func InsertError(table string, err error) error {
	msg := "Cannot write table <em>%s</em> to the output file"
	vars := []any{table}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.OutputInsertError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: insert into %s: %w", fn, table, err),
	}
}

func RenameError(path string, err error) error {
	msg := "Cannot move the finished output file to <em>%s</em>"
	vars := []any{path}
	return &gn.Error{
		Code: errcode.OutputRenameError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot rename output to %s: %w", path, err),
	}
}

func NamesError(err error) error {
	msg := "Cannot parse taxa names"
	return &gn.Error{
		Code: errcode.OutputNamesError,
		Msg:  msg,
		Err:  fmt.Errorf("failed to parse taxa names: %w", err),
	}
}

// VacuumError is returned when the filled output file cannot be
// compacted.
func VacuumError(err error) error {
	msg := "Cannot compact the output database"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.OutputVacuumError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: vacuum: %w", fn, err),
	}
}
