package iocache

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/symbdb/pkg/errcode"
)

func OpenError(dir string, err error) error {
	msg := "Cannot open table cache at <em>%s</em>"
	vars := []any{dir}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CacheOpenError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot open cache %s: %w", fn, dir, err),
	}
}

func ReadError(key string, err error) error {
	msg := "Cannot read cached table <em>%s</em>"
	vars := []any{key}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CacheReadError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot read %s: %w", fn, key, err),
	}
}

// DecodeError is returned for a corrupt artifact. Artifacts are never
// re-fetched automatically, the user has to remove them.
func DecodeError(key, location string, err error) error {
	msg := `Cached table <em>%s</em> is corrupt (%s)

Remove it with <em>symbdb cache clear %s</em> and run the dump again.`
	vars := []any{key, location, key}
	return &gn.Error{
		Code: errcode.CacheDecodeError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot decode %s: %w", key, err),
	}
}

func WriteError(key string, err error) error {
	msg := "Cannot save table <em>%s</em> to cache"
	vars := []any{key}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CacheWriteError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot write %s: %w", fn, key, err),
	}
}

func DeleteError(key string, err error) error {
	msg := "Cannot delete cached table <em>%s</em>"
	vars := []any{key}
	return &gn.Error{
		Code: errcode.CacheDeleteError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot delete %s: %w", key, err),
	}
}
