package iodb

import (
	"fmt"
	"strings"

	"github.com/gnames/symbdb/pkg/region"
	"github.com/gnames/symbdb/pkg/schema"
	"github.com/gnames/symbdb/pkg/source"
)

// statement is a query with its parameters.
type statement struct {
	sql  string
	args []any
}

// builder renders queries in a SQL dialect.
type builder struct {
	d dialect
}

// selectClause lists fields of a table, renaming source columns to field
// names where they differ.
func (b builder) selectClause(tbl schema.Table) string {
	cols := make([]string, len(tbl.Fields))
	for i, f := range tbl.Fields {
		col := b.d.quote(f.SourceColumn())
		if f.Column != "" && f.Column != f.Name {
			col += " AS " + b.d.quote(f.Name)
		}
		cols[i] = col
	}
	return fmt.Sprintf("SELECT %s FROM %s",
		strings.Join(cols, ", "), b.d.quote(tbl.Name))
}

// all selects every row of a table.
func (b builder) all(tbl schema.Table) statement {
	return statement{sql: b.selectClause(tbl)}
}

// in selects rows where a field is one of ids.
func (b builder) in(tbl schema.Table, field string, ids []int64) statement {
	col := field
	if f, ok := tbl.Field(field); ok {
		col = f.SourceColumn()
	}
	args := make([]any, len(ids))
	for i := range ids {
		args[i] = ids[i]
	}
	where := fmt.Sprintf("%s IN (%s)", b.d.quote(col), b.placeholders(1, len(ids)))
	return statement{
		sql:  b.selectClause(tbl) + " WHERE " + where,
		args: args,
	}
}

// within selects occurrences of a region: the point is inside the box,
// or the lower-cased country or state/province is in recognized lists.
// Empty lists do not add their clause.
func (b builder) within(tbl schema.Table, rgn region.Region) statement {
	var clauses []string
	var args []any
	next := func(vals ...any) string {
		ph := b.placeholders(len(args)+1, len(vals))
		args = append(args, vals...)
		return ph
	}

	lat := b.d.quote(schema.Latitude)
	lon := b.d.quote(schema.Longitude)
	box := rgn.Box
	latClause := fmt.Sprintf("%s BETWEEN %s AND %s",
		lat, next(box.MinLat), next(box.MaxLat))
	var lonClause string
	if box.MinLon <= box.MaxLon {
		lonClause = fmt.Sprintf("%s BETWEEN %s AND %s",
			lon, next(box.MinLon), next(box.MaxLon))
	} else {
		// the box crosses the antimeridian
		lonClause = fmt.Sprintf("(%s >= %s OR %s <= %s)",
			lon, next(box.MinLon), lon, next(box.MaxLon))
	}
	clauses = append(clauses, fmt.Sprintf("(%s AND %s)", latClause, lonClause))

	lists := []struct {
		field string
		names []string
	}{
		{schema.Country, rgn.Countries},
		{schema.StateProvince, rgn.States},
	}
	for _, v := range lists {
		if len(v.names) == 0 {
			continue
		}
		vals := make([]any, len(v.names))
		for i := range v.names {
			vals[i] = v.names[i]
		}
		clauses = append(clauses, fmt.Sprintf("LOWER(%s) IN (%s)",
			b.d.quote(v.field), next(vals...)))
	}

	return statement{
		sql:  b.selectClause(tbl) + " WHERE " + strings.Join(clauses, " OR "),
		args: args,
	}
}

// placeholders returns count comma-separated parameters starting from
// the parameter number start.
func (b builder) placeholders(start, count int) string {
	res := make([]string, count)
	for i := range count {
		res[i] = b.d.placeholder(start + i)
	}
	return strings.Join(res, ", ")
}

// chunk splits ids into slices of at most size elements.
func chunk(ids []int64, size int) [][]int64 {
	if size <= 0 {
		size = len(ids)
	}
	var res [][]int64
	for len(ids) > size {
		res = append(res, ids[:size])
		ids = ids[size:]
	}
	if len(ids) > 0 {
		res = append(res, ids)
	}
	return res
}

// statements renders a query, splitting large IN lists into several
// statements.
func (b builder) statements(q source.Query, batchSize int) ([]statement, error) {
	switch w := q.Where.(type) {
	case nil:
		return []statement{b.all(q.Table)}, nil
	case source.In:
		chunks := chunk(w.Values, batchSize)
		res := make([]statement, len(chunks))
		for i := range chunks {
			res[i] = b.in(q.Table, w.Field, chunks[i])
		}
		return res, nil
	case source.Within:
		return []statement{b.within(q.Table, w.Region)}, nil
	default:
		return nil, fmt.Errorf("unknown predicate %T", q.Where)
	}
}
