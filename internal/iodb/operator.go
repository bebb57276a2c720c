// Package iodb implements source.Source on top of database/sql.
// Symbiota portals run on MySQL, PostgreSQL mirrors and SQLite exports of
// a portal are supported as well.
// This is an impure I/O package that implements contracts
// defined in pkg/.
package iodb

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/gnames/symbdb/pkg/config"
	"github.com/gnames/symbdb/pkg/frame"
	"github.com/gnames/symbdb/pkg/source"
	"golang.org/x/sync/errgroup"
)

// SQLSource reads Symbiota tables from a SQL server.
type SQLSource struct {
	cfg     config.SourceConfig
	jobs    int
	dialect dialect
	db      *sql.DB
}

// New creates a SQLSource (without connecting).
func New(cfg *config.Config) *SQLSource {
	return &SQLSource{
		cfg:  cfg.Source,
		jobs: cfg.JobsNumber,
	}
}

// Connect opens a connection pool and verifies the connection.
func (s *SQLSource) Connect(ctx context.Context) error {
	d, err := newDialect(s.cfg.Driver)
	if err != nil {
		return err
	}

	db, err := d.open(s.cfg)
	if err != nil {
		return ConnectionError(s.cfg, err)
	}

	// Hardcoded pool settings, enough for chunked queries.
	db.SetMaxOpenConns(max(s.jobs, 1) + 1)
	db.SetMaxIdleConns(max(s.jobs, 1))
	db.SetConnMaxLifetime(0)

	if err = db.PingContext(ctx); err != nil {
		db.Close()
		return ConnectionError(s.cfg, err)
	}

	s.dialect = d
	s.db = db
	slog.Info("Connected to source database",
		"driver", s.cfg.Driver, "host", s.cfg.Host, "database", s.cfg.Database)
	return nil
}

// Close releases all database connections.
func (s *SQLSource) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// Fetch implements source.Source. Large IN lists are split into chunks
// of BatchSize ids. Chunks run concurrently and their results are merged
// in chunk order.
func (s *SQLSource) Fetch(ctx context.Context, q source.Query) (*frame.Frame, error) {
	if s.db == nil {
		return nil, NotConnectedError()
	}
	if source.Empty(q.Where) {
		return frame.New(q.Table), nil
	}

	stmts, err := builder{d: s.dialect}.statements(q, s.cfg.BatchSize)
	if err != nil {
		return nil, QueryError(q.Table.Name, err)
	}

	parts := make([]*frame.Frame, len(stmts))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(s.jobs, 1))
	for i := range stmts {
		g.Go(func() error {
			f, err := s.query(ctx, q, stmts[i])
			if err != nil {
				return err
			}
			parts[i] = f
			return nil
		})
	}
	if err = g.Wait(); err != nil {
		return nil, err
	}

	if len(parts) == 1 {
		return parts[0], nil
	}
	res := frame.New(q.Table)
	for _, p := range parts {
		if err = res.Concat(p); err != nil {
			return nil, err
		}
	}
	return res, nil
}

func (s *SQLSource) query(
	ctx context.Context,
	q source.Query,
	stmt statement,
) (*frame.Frame, error) {
	slog.Debug("Running query", "table", q.Table.Name, "args", len(stmt.args))
	rows, err := s.db.QueryContext(ctx, stmt.sql, stmt.args...)
	if err != nil {
		return nil, QueryError(q.Table.Name, err)
	}
	defer rows.Close()

	res := frame.New(q.Table)
	vals := make([]any, len(q.Table.Fields))
	ptrs := make([]any, len(vals))
	for i := range vals {
		ptrs[i] = &vals[i]
	}

	for rows.Next() {
		if err = rows.Scan(ptrs...); err != nil {
			return nil, ScanError(q.Table.Name, err)
		}
		if err = res.Append(vals...); err != nil {
			return nil, err
		}
	}
	if err = rows.Err(); err != nil {
		return nil, QueryError(q.Table.Name, err)
	}
	return res, nil
}
