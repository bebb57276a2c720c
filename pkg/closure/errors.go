package closure

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/symbdb/pkg/errcode"
)

// FetchError is returned when a round of the closure cannot be fetched.
func FetchError(table string, round int, err error) error {
	msg := "Cannot fetch round <em>%d</em> of the taxonomic closure from <em>%s</em>"
	vars := []any{round, table}
	return &gn.Error{
		Code: errcode.ClosureFetchError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("closure round %d of %s: %w", round, table, err),
	}
}
