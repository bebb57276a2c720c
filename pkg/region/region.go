// Package region defines the predicate that selects occurrences for a
// snapshot: a geographic bounding box, or membership of the record's
// country or state/province in lists of recognized names.
package region

import (
	"strings"

	"github.com/golang/geo/r1"
	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
	"gopkg.in/yaml.v3"
)

// BBox is a bounding box in decimal degrees. All edges are inclusive,
// like SQL BETWEEN.
type BBox struct {
	MinLat, MaxLat float64
	MinLon, MaxLon float64
}

// Rect converts the box to an s2 rectangle.
func (b BBox) Rect() s2.Rect {
	lo := s2.LatLngFromDegrees(b.MinLat, b.MinLon)
	hi := s2.LatLngFromDegrees(b.MaxLat, b.MaxLon)
	return s2.Rect{
		Lat: r1.Interval{Lo: lo.Lat.Radians(), Hi: hi.Lat.Radians()},
		Lng: s1.IntervalFromEndpoints(lo.Lng.Radians(), hi.Lng.Radians()),
	}
}

// Contains reports if a point is inside the box. Points with invalid
// coordinates are never inside.
func (b BBox) Contains(lat, lon float64) bool {
	ll := s2.LatLngFromDegrees(lat, lon)
	if !ll.IsValid() {
		return false
	}
	return b.Rect().ContainsLatLng(ll)
}

// Region selects occurrence records.
type Region struct {
	// Box is the geographic bounding box.
	Box BBox

	// Countries are lower-case recognized country names.
	Countries []string

	// States are lower-case recognized state/province names.
	States []string
}

// New creates a Region. Names are trimmed and lower-cased, empty names
// and duplicates are dropped.
func New(box BBox, countries, states []string) Region {
	return Region{
		Box:       box,
		Countries: normalize(countries),
		States:    normalize(states),
	}
}

// Record is what the predicate needs to know about an occurrence.
// Lat and Lon are nil when coordinates are missing.
type Record struct {
	Lat, Lon *float64
	Country  string
	State    string
}

// Match reports if a record belongs to the region: its coordinates are
// inside the box, or its country, or its state/province is recognized.
func (r Region) Match(rec Record) bool {
	if rec.Lat != nil && rec.Lon != nil && r.Box.Contains(*rec.Lat, *rec.Lon) {
		return true
	}
	if contains(r.Countries, rec.Country) {
		return true
	}
	return contains(r.States, rec.State)
}

// Lists are recognized country and state/province names as they are
// kept in a lookup file.
type Lists struct {
	Countries []string `yaml:"countries"`
	States    []string `yaml:"states"`
}

// ParseLists reads lookup lists from YAML data.
func ParseLists(data []byte) (Lists, error) {
	var res Lists
	if err := yaml.Unmarshal(data, &res); err != nil {
		return res, err
	}
	return res, nil
}

func contains(names []string, name string) bool {
	if name == "" {
		return false
	}
	name = strings.ToLower(name)
	for _, v := range names {
		if v == name {
			return true
		}
	}
	return false
}

func normalize(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	res := make([]string, 0, len(names))
	for _, v := range names {
		v = strings.ToLower(strings.TrimSpace(v))
		if _, ok := seen[v]; ok || v == "" {
			continue
		}
		seen[v] = struct{}{}
		res = append(res, v)
	}
	return res
}
