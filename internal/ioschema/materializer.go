// Package ioschema implements the symbdb.Materializer interface. It writes
// a snapshot into a SQLite file created from the static schema script.
// This is an impure I/O package.
//
// The output file is built under a temporary name in the same directory
// and renamed into place only after every table and the completeness
// marker are written. An existing output file is never touched.
package ioschema

import (
	"context"
	"database/sql"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gnames/gnsys"
	"github.com/gnames/symbdb/pkg/frame"
	"github.com/gnames/symbdb/pkg/symbdb"
	_ "modernc.org/sqlite"
)

var _ symbdb.Materializer = (*Materializer)(nil)

// Materializer creates the output SQLite file.
type Materializer struct {
	path           string
	script         string
	withCanonicals bool
	jobs           int
	progress       bool
	meta           map[string]string
}

// Option configures a Materializer.
type Option func(*Materializer)

// OptWithCanonicals adds canonical forms of taxa names to the output.
func OptWithCanonicals(b bool) Option {
	return func(m *Materializer) {
		m.withCanonicals = b
	}
}

// OptJobsNumber sets the number of name parsing workers.
func OptJobsNumber(i int) Option {
	return func(m *Materializer) {
		if i > 0 {
			m.jobs = i
		}
	}
}

// OptProgress shows progress bars while tables are written.
func OptProgress(b bool) Option {
	return func(m *Materializer) {
		m.progress = b
	}
}

// OptMetadata adds key/value pairs to the metadata table.
func OptMetadata(meta map[string]string) Option {
	return func(m *Materializer) {
		for k, v := range meta {
			m.meta[k] = v
		}
	}
}

// New creates a Materializer of the file at path. The script creates all
// tables of the output database.
func New(path, script string, opts ...Option) *Materializer {
	res := &Materializer{
		path:   path,
		script: script,
		jobs:   1,
		meta:   make(map[string]string),
	}
	for _, opt := range opts {
		opt(res)
	}
	return res
}

// Path returns the path of the output file.
func (m *Materializer) Path() string {
	return m.path
}

// Exists implements symbdb.Materializer.
func (m *Materializer) Exists() bool {
	_, err := os.Stat(m.path)
	return !errors.Is(err, fs.ErrNotExist)
}

// Create implements symbdb.Materializer.
func (m *Materializer) Create(ctx context.Context) (bool, error) {
	return m.build(ctx, nil)
}

// Materialize implements symbdb.Materializer.
func (m *Materializer) Materialize(
	ctx context.Context,
	tables ...*frame.Frame,
) (bool, error) {
	return m.build(ctx, func(db *sql.DB) error {
		counts := make(map[string]int)
		for _, f := range tables {
			if err := m.insert(ctx, db, f); err != nil {
				return err
			}
			counts[f.Table] += f.Len()
		}

		if m.withCanonicals {
			n, err := m.names(ctx, db, tables)
			if err != nil {
				return err
			}
			counts[namesTable] = n
		}

		if err := m.complete(ctx, db, counts); err != nil {
			return err
		}
		return vacuumAnalyze(ctx, db)
	})
}

// build runs the script in a temporary file, lets fill populate it
// and renames the file into place. On any error the temporary file is
// removed.
func (m *Materializer) build(
	ctx context.Context,
	fill func(*sql.DB) error,
) (bool, error) {
	if m.Exists() {
		slog.Info("Output file exists, skipping", "path", m.path)
		return false, nil
	}

	dir := filepath.Dir(m.path)
	if err := gnsys.MakeDir(dir); err != nil {
		return false, CreateError(m.path, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(m.path)+".*.tmp")
	if err != nil {
		return false, CreateError(m.path, err)
	}
	tmpPath := tmp.Name()
	tmp.Close()
	defer os.Remove(tmpPath)

	if err = m.fillFile(ctx, tmpPath, fill); err != nil {
		return false, err
	}

	if err = os.Rename(tmpPath, m.path); err != nil {
		return false, RenameError(m.path, err)
	}
	slog.Info("Output file created", "path", m.path)
	return true, nil
}

func (m *Materializer) fillFile(
	ctx context.Context,
	path string,
	fill func(*sql.DB) error,
) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return CreateError(path, err)
	}
	defer db.Close()
	// one writer, temporary tables stay on the same connection
	db.SetMaxOpenConns(1)

	if _, err = db.ExecContext(ctx, m.script); err != nil {
		return SchemaError(err)
	}

	if fill != nil {
		if err = fill(db); err != nil {
			return err
		}
	}

	if err = db.Close(); err != nil {
		return CreateError(path, err)
	}
	return nil
}
