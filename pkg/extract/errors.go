package extract

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/symbdb/pkg/errcode"
)

func OccurrencesError(err error) error {
	msg := "Cannot select occurrences of the region"
	return &gn.Error{
		Code: errcode.ExtractOccurrencesError,
		Msg:  msg,
		Err:  fmt.Errorf("cannot select occurrences: %w", err),
	}
}

func TableError(table string, err error) error {
	msg := "Cannot extract table <em>%s</em>"
	vars := []any{table}
	return &gn.Error{
		Code: errcode.ExtractTableError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot extract %s: %w", table, err),
	}
}
