package templates_test

import (
	"testing"

	"github.com/gnames/symbdb/pkg/config"
	"github.com/gnames/symbdb/pkg/region"
	"github.com/gnames/symbdb/pkg/templates"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestConfigYAML(t *testing.T) {
	assert := assert.New(t)
	var cfg config.Config
	require.NoError(t, yaml.Unmarshal([]byte(templates.ConfigYAML), &cfg))

	def := config.New()
	assert.Equal(def.Source.Driver, cfg.Source.Driver)
	assert.Equal(def.Source.Database, cfg.Source.Database)
	assert.Equal(def.Source.BatchSize, cfg.Source.BatchSize)
	assert.Empty(cfg.Source.Host)
	assert.Empty(cfg.Source.User)
	assert.Equal(def.Filter.MinLatitude, cfg.Filter.MinLatitude)
	assert.Equal(def.Filter.MaxLongitude, cfg.Filter.MaxLongitude)
	assert.Equal(def.Cache.Backend, cfg.Cache.Backend)
	assert.True(cfg.Output.WithCanonicals)
	assert.Equal(def.Log, cfg.Log)
}

func TestRegionsYAML(t *testing.T) {
	assert := assert.New(t)
	lists, err := region.ParseLists([]byte(templates.RegionsYAML))
	require.NoError(t, err)
	assert.Contains(lists.Countries, "canada")
	assert.Contains(lists.States, "ontario")

	rgn := region.New(region.BBox{}, lists.Countries, lists.States)
	assert.Len(rgn.Countries, len(lists.Countries), "no duplicates")
	assert.Len(rgn.States, len(lists.States), "no duplicates")
}
