package iodb

import (
	"testing"

	"github.com/gnames/symbdb/pkg/region"
	"github.com/gnames/symbdb/pkg/schema"
	"github.com/gnames/symbdb/pkg/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectClause(t *testing.T) {
	tbl := schema.Institutions.Select(schema.IID, "initialTimestamp")
	tests := []struct {
		msg string
		d   dialect
		res string
	}{
		{"mysql", mysqlDialect{},
			"SELECT `iid`, `IntialTimeStamp` AS `initialTimestamp` FROM `institutions`"},
		{"postgres", postgresDialect{},
			`SELECT "iid", "IntialTimeStamp" AS "initialTimestamp" FROM "institutions"`},
	}

	for _, v := range tests {
		assert.Equal(t, v.res, builder{d: v.d}.selectClause(tbl), v.msg)
	}
}

func TestIn(t *testing.T) {
	assert := assert.New(t)
	tbl := schema.TaxaEnumTree.Select(schema.Tid, schema.ParentTid)

	st := builder{d: postgresDialect{}}.in(tbl, schema.Tid, []int64{42, 7})
	assert.Equal(
		`SELECT "tid", "parenttid" FROM "taxaenumtree" WHERE "tid" IN ($1, $2)`,
		st.sql,
	)
	assert.Equal([]any{int64(42), int64(7)}, st.args)

	st = builder{d: mysqlDialect{}}.in(tbl, schema.Tid, []int64{1})
	assert.Equal(
		"SELECT `tid`, `parenttid` FROM `taxaenumtree` WHERE `tid` IN (?)",
		st.sql,
	)
}

func TestWithin(t *testing.T) {
	assert := assert.New(t)
	tbl := schema.OccurrenceIDs
	box := region.BBox{MinLat: 10, MaxLat: 20, MinLon: -100, MaxLon: -90}
	head := `SELECT "occid", "collid", "tidinterpreted" FROM "omoccurrences" WHERE `

	tests := []struct {
		msg  string
		rgn  region.Region
		sql  string
		args []any
	}{
		{"box only", region.New(box, nil, nil),
			`("decimalLatitude" BETWEEN $1 AND $2 AND "decimalLongitude" BETWEEN $3 AND $4)`,
			[]any{10.0, 20.0, -100.0, -90.0}},
		{"box and lists", region.New(box, []string{"Unknown"}, []string{"Ontario", "Quebec"}),
			`("decimalLatitude" BETWEEN $1 AND $2 AND "decimalLongitude" BETWEEN $3 AND $4)` +
				` OR LOWER("country") IN ($5)` +
				` OR LOWER("stateProvince") IN ($6, $7)`,
			[]any{10.0, 20.0, -100.0, -90.0, "unknown", "ontario", "quebec"}},
		{"antimeridian", region.New(region.BBox{MinLat: 50, MaxLat: 60, MinLon: 170, MaxLon: -170}, nil, []string{"alaska"}),
			`("decimalLatitude" BETWEEN $1 AND $2 AND ("decimalLongitude" >= $3 OR "decimalLongitude" <= $4))` +
				` OR LOWER("stateProvince") IN ($5)`,
			[]any{50.0, 60.0, 170.0, -170.0, "alaska"}},
	}

	for _, v := range tests {
		st := builder{d: postgresDialect{}}.within(tbl, v.rgn)
		assert.Equal(head+v.sql, st.sql, v.msg)
		assert.Equal(v.args, st.args, v.msg)
	}
}

func TestChunk(t *testing.T) {
	tests := []struct {
		msg  string
		ids  []int64
		size int
		res  [][]int64
	}{
		{"empty", nil, 2, nil},
		{"one chunk", []int64{1, 2}, 2, [][]int64{{1, 2}}},
		{"remainder", []int64{1, 2, 3, 4, 5}, 2, [][]int64{{1, 2}, {3, 4}, {5}}},
		{"no limit", []int64{1, 2, 3}, 0, [][]int64{{1, 2, 3}}},
	}

	for _, v := range tests {
		assert.Equal(t, v.res, chunk(v.ids, v.size), v.msg)
	}
}

func TestStatements(t *testing.T) {
	assert := assert.New(t)
	b := builder{d: mysqlDialect{}}

	q := source.Query{
		Table: schema.Taxa,
		Where: source.In{Field: schema.Tid, Values: []int64{1, 2, 3, 4, 5}},
	}
	stmts, err := b.statements(q, 2)
	require.NoError(t, err)
	assert.Len(stmts, 3)
	assert.Equal([]any{int64(5)}, stmts[2].args)

	q.Where = nil
	stmts, err = b.statements(q, 2)
	require.NoError(t, err)
	require.Len(t, stmts, 1)
	assert.NotContains(stmts[0].sql, "WHERE")
	assert.Empty(stmts[0].args)
}

func TestNewDialect(t *testing.T) {
	for _, v := range []string{"mysql", "postgres", "sqlite"} {
		_, err := newDialect(v)
		assert.NoError(t, err, v)
	}
	_, err := newDialect("oracle")
	assert.Error(t, err)
}
