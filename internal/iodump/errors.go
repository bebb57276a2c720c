package iodump

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/symbdb/pkg/errcode"
)

// CancelledError is returned when a dump is interrupted between phases.
// Tables finished before the interruption stay in the cache.
func CancelledError(err error) error {
	msg := `Extraction was cancelled

Finished tables are cached, the next run continues from them.`
	return &gn.Error{
		Code: errcode.DumpCancelledError,
		Msg:  msg,
		Err:  fmt.Errorf("dump cancelled: %w", err),
	}
}
