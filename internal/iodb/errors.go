package iodb

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/symbdb/pkg/config"
	"github.com/gnames/symbdb/pkg/errcode"
)

// ConnectionError is returned when the source database is not reachable.
func ConnectionError(cfg config.SourceConfig, err error) error {
	msg := `Could not connect to the <em>%s</em> source database

<em>Possible causes:</em>
  • the database server is not running
  • connection settings are incorrect
  • network connectivity issues

<em>Connection settings:</em>
  Host: %s
  Port: %d
  Database: %s
  User: %s

Check <em>~/.config/symbdb/config.yaml</em> and the credentials file.`
	vars := []any{cfg.Driver, cfg.Host, cfg.Port, cfg.Database, cfg.User}
	return &gn.Error{
		Code: errcode.SourceConnectionError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("failed to connect to %s:%d/%s: %w",
			cfg.Host, cfg.Port, cfg.Database, err),
	}
}

// NotConnectedError is returned when a query runs before Connect.
func NotConnectedError() error {
	msg := "Source database is not connected"
	return &gn.Error{
		Code: errcode.SourceNotConnectedError,
		Msg:  msg,
		Err:  fmt.Errorf("source database is not connected"),
	}
}

func UnsupportedDriverError(driver string) error {
	msg := "Unsupported source driver <em>%s</em>, use mysql, postgres or sqlite"
	vars := []any{driver}
	return &gn.Error{
		Code: errcode.SourceUnsupportedDriverError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("unsupported driver %q", driver),
	}
}

func QueryError(table string, err error) error {
	msg := "Query to <em>%s</em> failed"
	vars := []any{table}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.SourceQueryError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: query %s: %w", fn, table, err),
	}
}

func ScanError(table string, err error) error {
	msg := "Cannot read a row of <em>%s</em>"
	vars := []any{table}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.SourceScanError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: scan %s: %w", fn, table, err),
	}
}

func CredentialsFileError(path string, err error) error {
	msg := `Cannot read credentials file <em>%s</em>

Host, port, user and password are taken from its [client] section.`
	vars := []any{path}
	return &gn.Error{
		Code: errcode.CredentialsFileError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot read credentials %s: %w", path, err),
	}
}
