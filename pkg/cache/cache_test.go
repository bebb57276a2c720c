package cache_test

import (
	"context"
	"errors"
	"testing"

	"github.com/gnames/symbdb/pkg/cache"
	"github.com/gnames/symbdb/pkg/frame"
	"github.com/gnames/symbdb/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoize(t *testing.T) {
	assert := assert.New(t)
	c := cache.NewMemory()
	calls := 0
	fetch := func(context.Context) (*frame.Frame, error) {
		calls++
		f := frame.New(schema.TaxaEnumTree)
		err := f.Append(42, 1, 7, nil)
		return f, err
	}

	res, hit, err := cache.Memoize(context.Background(), c, "key", fetch)
	require.NoError(t, err)
	assert.False(hit)
	assert.Equal(1, res.Len())
	assert.Equal(1, calls)

	res2, hit, err := cache.Memoize(context.Background(), c, "key", fetch)
	require.NoError(t, err)
	assert.True(hit)
	assert.Equal(res, res2)
	assert.Equal(1, calls)
	assert.Equal(1, c.Puts("key"))
}

func TestMemoizeError(t *testing.T) {
	assert := assert.New(t)
	c := cache.NewMemory()
	errFetch := errors.New("no connection")
	fetch := func(context.Context) (*frame.Frame, error) {
		return nil, errFetch
	}

	_, _, err := cache.Memoize(context.Background(), c, "key", fetch)
	assert.ErrorIs(err, errFetch)
	assert.False(c.Has("key"))
}

func TestMemory(t *testing.T) {
	assert := assert.New(t)
	c := cache.NewMemory()
	assert.False(c.Has(cache.KeyTaxa))
	_, err := c.Get(cache.KeyTaxa)
	assert.Error(err)

	require.NoError(t, c.Put(cache.KeyTaxa, frame.New(schema.Taxa)))
	require.NoError(t, c.Put(cache.KeyOccurrenceIDs, frame.New(schema.OccurrenceIDs)))
	keys, err := c.List()
	require.NoError(t, err)
	assert.Equal([]string{cache.KeyOccurrenceIDs, cache.KeyTaxa}, keys)

	require.NoError(t, c.Delete(cache.KeyTaxa))
	require.NoError(t, c.Delete("missing"))
	assert.False(c.Has(cache.KeyTaxa))
	assert.Len(cache.Keys(), 7)
}
