package ioschema

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	symbdb "github.com/gnames/symbdb/pkg"
	"github.com/gnames/symbdb/pkg/frame"
)

// insert writes all rows of a frame in one transaction.
func (m *Materializer) insert(
	ctx context.Context,
	db *sql.DB,
	f *frame.Frame,
) error {
	cols := f.Schema().FieldNames()
	err := insertRows(ctx, db, f.Table, cols, f.Len(), m.bar(f.Table, f.Len()),
		func(i int) []any { return f.Row(i) },
	)
	if err != nil {
		return err
	}
	slog.Info("Table written",
		"table", f.Table, "rows", humanize.Comma(int64(f.Len())))
	return nil
}

// insertRows inserts rows given by row(0) ... row(n-1) into a table
// using a prepared statement inside one transaction.
func insertRows(
	ctx context.Context,
	db *sql.DB,
	table string,
	cols []string,
	n int,
	bar *pb.ProgressBar,
	row func(int) []any,
) error {
	if bar != nil {
		defer bar.Finish()
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return InsertError(table, err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, insertSQL(table, cols))
	if err != nil {
		return InsertError(table, err)
	}
	defer stmt.Close()

	for i := range n {
		if _, err = stmt.ExecContext(ctx, row(i)...); err != nil {
			return InsertError(table, err)
		}
		if bar != nil {
			bar.Increment()
		}
	}

	if err = tx.Commit(); err != nil {
		return InsertError(table, err)
	}
	return nil
}

func insertSQL(table string, cols []string) string {
	quoted := make([]string, len(cols))
	for i := range cols {
		quoted[i] = quote(cols[i])
	}
	params := strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", ")
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		quote(table), strings.Join(quoted, ", "), params)
}

func quote(ident string) string {
	return `"` + strings.ReplaceAll(ident, `"`, `""`) + `"`
}

// complete writes the completeness marker. It is the last write before
// the file is renamed into place.
func (m *Materializer) complete(
	ctx context.Context,
	db *sql.DB,
	counts map[string]int,
) error {
	meta := make(map[string]string, len(m.meta)+len(counts)+2)
	for k, v := range m.meta {
		meta[k] = v
	}
	for k, v := range counts {
		meta["rows_"+k] = fmt.Sprintf("%d", v)
	}
	meta["symbdb_version"] = symbdb.Version
	meta["completed_at"] = time.Now().UTC().Format(time.RFC3339)

	keys := slices.Sorted(maps.Keys(meta))
	return insertRows(ctx, db, metadataTable, []string{"key", "value"},
		len(keys), nil,
		func(i int) []any { return []any{keys[i], meta[keys[i]]} },
	)
}

func (m *Materializer) bar(table string, total int) *pb.ProgressBar {
	if !m.progress || total == 0 {
		return nil
	}
	bar := pb.Full.Start(total)
	bar.Set("prefix", fmt.Sprintf("Writing %s: ", table))
	bar.Set(pb.CleanOnFinish, true)
	return bar
}
