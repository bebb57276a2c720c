package iodb

import (
	"database/sql"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gnames/symbdb/pkg/config"
	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// dialect hides differences between supported SQL servers.
type dialect interface {
	// open creates a connection pool without connecting.
	open(cfg config.SourceConfig) (*sql.DB, error)

	// quote quotes an identifier.
	quote(ident string) string

	// placeholder returns the n-th (starting from 1) query parameter.
	placeholder(n int) string
}

func newDialect(driver string) (dialect, error) {
	switch driver {
	case "mysql":
		return mysqlDialect{}, nil
	case "postgres":
		return postgresDialect{}, nil
	case "sqlite":
		return sqliteDialect{}, nil
	default:
		return nil, UnsupportedDriverError(driver)
	}
}

type mysqlDialect struct{}

func (mysqlDialect) open(cfg config.SourceConfig) (*sql.DB, error) {
	c := mysql.NewConfig()
	c.User = cfg.User
	c.Passwd = cfg.Password
	c.Net = "tcp"
	c.Addr = net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	c.DBName = cfg.Database
	c.Loc = time.UTC
	c.Params = map[string]string{"charset": "utf8mb4"}
	if cfg.SSLMode != "" && cfg.SSLMode != "disable" {
		c.TLSConfig = "preferred"
	}

	conn, err := mysql.NewConnector(c)
	if err != nil {
		return nil, err
	}
	return sql.OpenDB(conn), nil
}

func (mysqlDialect) quote(ident string) string {
	return "`" + strings.ReplaceAll(ident, "`", "``") + "`"
}

func (mysqlDialect) placeholder(int) string {
	return "?"
}

type postgresDialect struct{}

func (postgresDialect) open(cfg config.SourceConfig) (*sql.DB, error) {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(cfg.User, cfg.Password),
		Host:     net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Path:     "/" + cfg.Database,
		RawQuery: "sslmode=" + url.QueryEscape(cfg.SSLMode),
	}

	connCfg, err := pgx.ParseConfig(u.String())
	if err != nil {
		return nil, err
	}
	return stdlib.OpenDB(*connCfg), nil
}

func (postgresDialect) quote(ident string) string {
	return pgx.Identifier{ident}.Sanitize()
}

func (postgresDialect) placeholder(n int) string {
	return fmt.Sprintf("$%d", n)
}

// sqliteDialect reads a Symbiota database exported to a SQLite file.
// Database is the path to the file.
type sqliteDialect struct{}

func (sqliteDialect) open(cfg config.SourceConfig) (*sql.DB, error) {
	dsn := "file:" + cfg.Database + "?mode=ro"
	return sql.Open("sqlite", dsn)
}

func (sqliteDialect) quote(ident string) string {
	return `"` + strings.ReplaceAll(ident, `"`, `""`) + `"`
}

func (sqliteDialect) placeholder(int) string {
	return "?"
}
