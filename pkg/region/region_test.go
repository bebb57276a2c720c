package region_test

import (
	"testing"

	"github.com/gnames/symbdb/pkg/region"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(f float64) *float64 {
	return &f
}

func TestBBoxContains(t *testing.T) {
	assert := assert.New(t)
	box := region.BBox{MinLat: 10, MaxLat: 20, MinLon: -100, MaxLon: -90}
	tests := []struct {
		msg      string
		lat, lon float64
		res      bool
	}{
		{"inside", 15, -95, true},
		{"origin", 0, 0, false},
		{"south-west corner", 10, -100, true},
		{"north-east corner", 20, -90, true},
		{"north of box", 20.001, -95, false},
		{"east of box", 15, -89.999, false},
		{"invalid latitude", 95, -95, false},
	}

	for _, v := range tests {
		assert.Equal(v.res, box.Contains(v.lat, v.lon), v.msg)
	}
}

func TestMatch(t *testing.T) {
	assert := assert.New(t)
	box := region.BBox{MinLat: 10, MaxLat: 20, MinLon: -100, MaxLon: -90}
	tests := []struct {
		msg       string
		countries []string
		states    []string
		rec       region.Record
		res       bool
	}{
		{"in box", nil, nil,
			region.Record{Lat: ptr(15), Lon: ptr(-95)}, true},
		{"outside box, no lists", nil, nil,
			region.Record{Lat: ptr(0), Lon: ptr(0), Country: "Unknown"}, false},
		{"outside box, country listed", []string{"unknown"}, nil,
			region.Record{Lat: ptr(0), Lon: ptr(0), Country: "Unknown"}, true},
		{"no coordinates, state listed", nil, []string{" Ontario "},
			region.Record{State: "ONTARIO"}, true},
		{"only latitude", nil, nil,
			region.Record{Lat: ptr(15)}, false},
		{"empty country never matches", []string{""}, nil,
			region.Record{}, false},
	}

	for _, v := range tests {
		rgn := region.New(box, v.countries, v.states)
		assert.Equal(v.res, rgn.Match(v.rec), v.msg)
	}
}

func TestNew(t *testing.T) {
	rgn := region.New(region.BBox{},
		[]string{"Canada", " canada", "", "USA"}, nil)
	assert.Equal(t, []string{"canada", "usa"}, rgn.Countries)
	assert.Empty(t, rgn.States)
}

func TestParseLists(t *testing.T) {
	assert := assert.New(t)
	data := []byte(`
countries:
  - Canada
  - United States
states:
  - Alaska
`)
	res, err := region.ParseLists(data)
	require.NoError(t, err)
	assert.Equal([]string{"Canada", "United States"}, res.Countries)
	assert.Equal([]string{"Alaska"}, res.States)

	_, err = region.ParseLists([]byte("countries: [a"))
	assert.Error(err)
}
