package frame_test

import (
	"math"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/gnames/gn"
	"github.com/gnames/symbdb/pkg/errcode"
	"github.com/gnames/symbdb/pkg/frame"
	"github.com/gnames/symbdb/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTable = schema.Table{
	Name: "test",
	Fields: []schema.Field{
		{Name: "id", Kind: schema.Int},
		{Name: "parent", Kind: schema.Int, Nullable: true},
		{Name: "lat", Kind: schema.Float, Nullable: true},
		{Name: "name", Kind: schema.String},
	},
}

func TestAppend(t *testing.T) {
	assert := assert.New(t)
	ts := time.Date(2024, 3, 1, 10, 20, 30, 0, time.UTC)
	tests := []struct {
		msg  string
		vals []any
		res  []any
	}{
		{"native types",
			[]any{int64(1), int64(2), 3.5, "Aus"},
			[]any{int64(1), int64(2), 3.5, "Aus"}},
		{"driver bytes",
			[]any{[]byte("7"), []byte(nil), []byte("-12.25"), []byte("Bus")},
			[]any{int64(7), nil, -12.25, "Bus"}},
		{"empty numeric text",
			[]any{int32(3), " ", "", "Cus"},
			[]any{int64(3), nil, nil, "Cus"}},
		{"integral float",
			[]any{float64(4), uint8(1), float32(1.5), 10},
			[]any{int64(4), int64(1), 1.5, "10"}},
		{"timestamp",
			[]any{5, nil, nil, ts},
			[]any{int64(5), nil, nil, "2024-03-01 10:20:30"}},
	}

	for _, v := range tests {
		f := frame.New(testTable)
		require.NoError(t, f.Append(v.vals...), v.msg)
		assert.Equal(1, f.Len(), v.msg)
		assert.Equal(v.res, f.Row(0), v.msg)
	}
}

func TestAppendInvalidUTF8(t *testing.T) {
	f := frame.New(testTable)
	require.NoError(t, f.Append(6, nil, nil, "Bad\xffName"))
	name, ok := f.Get("name", 0)
	require.True(t, ok)
	assert.True(t, utf8.ValidString(name.(string)))
	assert.Contains(t, name, "Bad")
}

func TestAppendErrors(t *testing.T) {
	assert := assert.New(t)
	tests := []struct {
		msg  string
		vals []any
		code gn.ErrorCode
	}{
		{"NULL in non-nullable", []any{nil, 1, 1.0, "a"}, errcode.FrameCoercionError},
		{"empty text in non-nullable", []any{"", 1, 1.0, "a"}, errcode.FrameCoercionError},
		{"fraction in int", []any{1.5, 1, 1.0, "a"}, errcode.FrameCoercionError},
		{"infinity in int", []any{math.Inf(1), 1, 1.0, "a"}, errcode.FrameCoercionError},
		{"text in float", []any{1, 1, "north", "a"}, errcode.FrameCoercionError},
		{"uint64 overflow", []any{uint64(math.MaxUint64), 1, 1.0, "a"}, errcode.FrameCoercionError},
		{"float overflow", []any{1e19, 1, 1.0, "a"}, errcode.FrameCoercionError},
		{"negative float overflow", []any{-1e19, 1, 1.0, "a"}, errcode.FrameCoercionError},
		{"NaN in int", []any{math.NaN(), 1, 1.0, "a"}, errcode.FrameCoercionError},
		{"unknown type", []any{1, 1, 1.0, struct{}{}}, errcode.FrameCoercionError},
		{"too few values", []any{1, 1}, errcode.FrameColumnError},
	}

	for _, v := range tests {
		f := frame.New(testTable)
		err := f.Append(v.vals...)
		require.Error(t, err, v.msg)
		gnErr, ok := err.(*gn.Error)
		require.True(t, ok, v.msg)
		assert.Equal(v.code, gnErr.Code, v.msg)
		assert.Equal(0, f.Len(), v.msg)
		for _, c := range f.Columns {
			assert.Empty(c.Nulls, v.msg)
		}
	}
}

func TestAccess(t *testing.T) {
	assert := assert.New(t)
	f := frame.New(testTable)
	require.NoError(t, f.Append(3, 1, nil, "c"))
	require.NoError(t, f.Append(1, nil, 2.5, "a"))
	require.NoError(t, f.Append(2, 1, nil, "b"))
	require.NoError(t, f.Append(1, 3, nil, "a"))

	assert.Equal(4, f.Len())
	assert.Equal(testTable, f.Schema())
	assert.Equal(2, f.Index("lat"))
	assert.Equal(-1, f.Index("none"))

	assert.Equal([]int64{1, 2, 3}, f.Distinct("id"))
	assert.Equal([]int64{1, 3}, f.Distinct("parent"))
	assert.Nil(f.Distinct("name"))
	assert.Nil(f.Distinct("none"))

	v, ok := f.Int("parent", 1)
	assert.False(ok)
	assert.Equal(int64(0), v)
	v, ok = f.Int("parent", 3)
	assert.True(ok)
	assert.Equal(int64(3), v)
	_, ok = f.Int("lat", 1)
	assert.False(ok)

	lat, ok := f.Get("lat", 1)
	assert.True(ok)
	assert.Equal(2.5, lat)
	_, ok = f.Get("none", 1)
	assert.False(ok)

	var empty *frame.Frame
	assert.Equal(0, empty.Len())
}

func TestConcat(t *testing.T) {
	assert := assert.New(t)
	src := frame.New(testTable)
	require.NoError(t, src.Append(1, nil, 2.5, "a"))
	require.NoError(t, src.Append(2, 1, nil, "b"))

	proj := frame.New(schema.Table{
		Name:   "proj",
		Fields: []schema.Field{testTable.Fields[3], testTable.Fields[0]},
	})
	require.NoError(t, proj.Concat(src))
	assert.Equal(2, proj.Len())
	assert.Equal([]any{"b", int64(2)}, proj.Row(1))

	wide := frame.New(schema.Table{
		Name:   "wide",
		Fields: append([]schema.Field{{Name: "extra", Kind: schema.Int}}, testTable.Fields...),
	})
	err := wide.Concat(src)
	require.Error(t, err)
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(errcode.FrameColumnError, gnErr.Code)
}
