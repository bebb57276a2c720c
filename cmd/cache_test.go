package cmd

import (
	"testing"

	"github.com/gnames/symbdb/internal/iocache"
	"github.com/gnames/symbdb/pkg/cache"
	"github.com/gnames/symbdb/pkg/config"
	"github.com/gnames/symbdb/pkg/frame"
	"github.com/gnames/symbdb/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGetCacheCmd_Subcommands verifies list and clear exist.
func TestGetCacheCmd_Subcommands(t *testing.T) {
	cmd := getCacheCmd()
	var names []string
	for _, v := range cmd.Commands() {
		names = append(names, v.Name())
	}
	assert.ElementsMatch(t, []string{"list", "clear"}, names)
}

// TestRunCacheClear verifies removal of chosen and of all keys.
func TestRunCacheClear(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that uses file system in short mode")
	}
	assert := assert.New(t)
	dir := t.TempDir()
	cfg = config.New()
	cfg.Update([]config.Option{config.OptCacheDir(dir)})

	c, err := iocache.NewFileCache(dir)
	require.NoError(t, err)
	for _, k := range []string{cache.KeyTaxa, cache.KeyTaxaEnumTree, cache.KeyTaxonUnits} {
		require.NoError(t, c.Put(k, frame.New(schema.Taxa)))
	}

	require.NoError(t, runCacheList())

	require.NoError(t, runCacheClear([]string{cache.KeyTaxa, "unknown"}))
	keys, err := c.List()
	require.NoError(t, err)
	assert.Equal([]string{cache.KeyTaxaEnumTree, cache.KeyTaxonUnits}, keys)

	require.NoError(t, runCacheClear(nil))
	keys, err = c.List()
	require.NoError(t, err)
	assert.Empty(keys)
}
