package config

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/gnames/gn"
)

// Update applies a slice of Option functions to the Config.
// This is the only way to modify a Config after creation.
// Invalid options are rejected with warnings - config remains in valid state.
func (c *Config) Update(opts []Option) {
	for _, opt := range opts {
		opt(c)
	}
}

// ToOptions converts the Config to a slice of Option functions.
// Only includes persistent fields appropriate for config.yaml.
// Excludes runtime-only fields (HomeDir, Countries, States, Output.Date).
// Used for round-tripping config.yaml ↔ Config conversions.
func (c *Config) ToOptions() []Option {
	var res []Option
	var s string
	var i int
	s = c.Source.Driver
	if s != "" {
		res = append(res, OptSourceDriver(s))
	}
	s = c.Source.Host
	if s != "" {
		res = append(res, OptSourceHost(s))
	}
	i = c.Source.Port
	if i > 0 {
		res = append(res, OptSourcePort(i))
	}
	s = c.Source.User
	if s != "" {
		res = append(res, OptSourceUser(s))
	}
	s = c.Source.Password
	if s != "" {
		res = append(res, OptSourcePassword(s))
	}
	s = c.Source.Database
	if s != "" {
		res = append(res, OptSourceDatabase(s))
	}
	s = c.Source.SSLMode
	if s != "" {
		res = append(res, OptSourceSSLMode(s))
	}
	i = c.Source.BatchSize
	if i > 0 {
		res = append(res, OptSourceBatchSize(i))
	}
	s = c.Source.CredentialsFile
	if s != "" {
		res = append(res, OptSourceCredentialsFile(s))
	}

	f := c.Filter
	if f.MinLatitude != 0 || f.MaxLatitude != 0 ||
		f.MinLongitude != 0 || f.MaxLongitude != 0 {
		res = append(res, OptFilterBox(
			f.MinLatitude, f.MaxLatitude, f.MinLongitude, f.MaxLongitude,
		))
	}

	s = c.Cache.Dir
	if s != "" {
		res = append(res, OptCacheDir(s))
	}
	s = c.Cache.Backend
	if s != "" {
		res = append(res, OptCacheBackend(s))
	}

	s = c.Output.Dir
	if s != "" {
		res = append(res, OptOutputDir(s))
	}
	res = append(res, OptOutputWithCanonicals(c.Output.WithCanonicals))

	s = c.Log.Format
	if s != "" {
		res = append(res, OptLogFormat(s))
	}
	s = c.Log.Level
	if s != "" {
		res = append(res, OptLogLevel(s))
	}
	s = c.Log.Destination
	if s != "" {
		res = append(res, OptLogDestination(s))
	}

	i = c.JobsNumber
	if i > 0 {
		res = append(res, OptJobsNumber(i))
	}
	return res
}

func isValidString(name, s string) bool {
	res := s != ""
	if !res {
		gn.Warn("<em>%s</em> cannot be empty, ignoring", name)
	}
	return res
}

func isValidInt(name string, i int) bool {
	res := i > 0
	if !res {
		gn.Warn("<em>%s</em> has to be positive number, ignoring %d", name, i)
	}
	return res
}

func isValidBox(minLat, maxLat, minLon, maxLon float64) bool {
	switch {
	case minLat < -90 || maxLat > 90 || minLat > maxLat:
		gn.Warn(
			"Latitude range <em>[%v, %v]</em> is invalid, ignoring bounding box",
			minLat, maxLat,
		)
		return false
	case minLon < -180 || minLon > 180 || maxLon < -180 || maxLon > 180:
		gn.Warn(
			"Longitude range <em>[%v, %v]</em> is invalid, ignoring bounding box",
			minLon, maxLon,
		)
		return false
	}
	return true
}

// cleanList trims names, drops empty ones and duplicates.
// Names keep their case, comparison happens later in lower case.
func cleanList(ss []string) []string {
	seen := make(map[string]struct{}, len(ss))
	res := make([]string, 0, len(ss))
	for _, s := range ss {
		s = strings.TrimSpace(s)
		key := strings.ToLower(s)
		if _, ok := seen[key]; ok || s == "" {
			continue
		}
		seen[key] = struct{}{}
		res = append(res, s)
	}
	return res
}

func isValidEnum(name, val string) bool {
	s := struct{}{}
	data := map[string]map[string]struct{}{
		"Source.Driver":  {"mysql": s, "postgres": s, "sqlite": s},
		"Source.SSLMode": {"disable": s, "require": s,
			"verify-ca": s, "verify-full": s},
		"Cache.Backend":   {"file": s, "badger": s},
		"Log.Level":       {"debug": s, "info": s, "warn": s, "error": s},
		"Log.Format":      {"json": s, "text": s, "tint": s},
		"Log.Destination": {"file": s, "stderr": s, "stdout": s},
	}
	vals := slices.Sorted(maps.Keys(data[name]))
	var lines []string
	for _, v := range vals {
		line := fmt.Sprintf("  * %s", v)
		lines = append(lines, line)
	}
	if _, ok := data[name][val]; ok {
		return true
	}
	gn.Warn(
		"<em>%s</em> does not support '%s' as a value. "+
			"Valid values are: \n%s\nIgnoring...",
		name, val, strings.Join(lines, "\n"),
	)
	return false
}
