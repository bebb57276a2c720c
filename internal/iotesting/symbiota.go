// Package iotesting provides shared test utilities: a small Symbiota
// database in a SQLite file and the configuration of a real test source
// for integration tests.
package iotesting

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/gnames/symbdb/pkg/config"
	"github.com/gnames/symbdb/pkg/schema"
	_ "modernc.org/sqlite"
)

// Expected results of a dump of the fixture with the default bounding
// box, country "canada" and state "ontario".
var (
	FixtureOccIDs     = []int64{1, 2, 6}
	FixtureCollIDs    = []int64{10, 11, 12}
	FixtureIIDs       = []int64{1, 2}
	FixtureTids       = []int64{1, 2, 3, 4, 5, 6, 7, 8, 9}
	FixtureRounds     = 4
	FixtureCountries  = []string{"canada"}
	FixtureStates     = []string{"ontario"}
	FixtureTaxonUnits = 4
)

var fixture = map[string][][]any{
	"taxonunits": {
		{1, "Plantae", 10, "Kingdom", nil, 10, nil, "2020-01-01 00:00:00"},
		{2, "Plantae", 140, "Family", "aceae", 100, 10, nil},
		{3, "Plantae", 180, "Genus", nil, 140, 140, nil},
		{4, "Plantae", 220, "Species", nil, 180, 180, nil},
	},
	"institutions": {
		inst(1, "MICH", "University of Michigan Herbarium", "USA"),
		inst(2, "CAN", "Canadian Museum of Nature", "Canada"),
		inst(3, "P", "Muséum national d'Histoire naturelle", "France"),
	},
	"omcollections": {
		coll(10, "Vascular Plants", 1),
		coll(11, "National Herbarium", 2),
		coll(12, "Orphan Collection", nil),
		coll(13, "Paris Herbarium", 3),
	},
	"taxaenumtree": {
		{4, 1, 3, nil}, {3, 1, 2, nil}, {2, 1, 1, nil}, {1, 1, nil, nil},
		{5, 1, 6, nil}, {6, 1, 7, nil}, {7, 1, 1, nil},
		{8, 1, 9, nil}, {9, 1, 8, nil},
		{100, 1, 100, nil},
	},
	"taxa": {
		taxon(1, "Plantae", 10, "Plantae", "", nil),
		taxon(2, "Plantae", 140, "Asteraceae", "", "Bercht. & J.Presl"),
		taxon(3, "Plantae", 180, "Solidago", "", "L."),
		taxon(4, "Plantae", 220, "Solidago canadensis", "canadensis", "L."),
		taxon(5, "Plantae", 220, "Picea glauca", "glauca", "(Moench) Voss"),
		taxon(6, "Plantae", 180, "Picea", "", "A.Dietr."),
		taxon(7, "Plantae", 140, "Pinaceae", "", "Spreng. ex F.Rudolphi"),
		taxon(8, "Animalia", 220, "Bombus terricola", "terricola", "Kirby, 1837"),
		taxon(9, "Animalia", 180, "Bombus", "", "Latreille, 1802"),
		taxon(100, "Animalia", 220, "Homo sapiens", "sapiens", "Linnaeus, 1758"),
	},
	"omoccurrences": {
		occ(1, 10, 4, 42.5, -83.7, "USA", "Michigan"),
		occ(2, 11, 5, nil, nil, "Canada", "Ontario"),
		occ(3, 12, nil, -33.9, 151.2, "Australia", "New South Wales"),
		occ(4, 12, 8, 0.0, 0.0, "Unknown", nil),
		occ(5, 13, 100, 48.8, 2.3, "France", "Île-de-France"),
		occ(6, 12, 8, 60.0, -100.0, nil, "Nunavut"),
	},
}

// SymbiotaDB creates a SQLite file with Symbiota tables that use source
// column names, fills it with a small data set and returns its path.
func SymbiotaDB(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "symbiota.sqlite")
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("cannot open fixture: %v", err)
	}
	defer db.Close()

	for _, tbl := range schema.Output() {
		if _, err = db.Exec(createTable(tbl)); err != nil {
			t.Fatalf("cannot create %s: %v", tbl.Name, err)
		}
		ins := fmt.Sprintf("INSERT INTO %s VALUES (%s)", tbl.Name,
			strings.TrimSuffix(strings.Repeat("?, ", len(tbl.Fields)), ", "))
		for _, row := range fixture[tbl.Name] {
			if _, err = db.Exec(ins, row...); err != nil {
				t.Fatalf("cannot insert into %s: %v", tbl.Name, err)
			}
		}
	}
	return path
}

// SourceConfig returns options for a SQLite source at path.
func SourceConfig(path string) []config.Option {
	return []config.Option{
		config.OptSourceDriver("sqlite"),
		config.OptSourceDatabase(path),
		config.OptSourceBatchSize(2),
		config.OptJobsNumber(2),
	}
}

// IntegrationConfig returns options for a real source database described
// by SYMBDB_TEST_SOURCE_* environment variables. The second value is
// false if SYMBDB_TEST_SOURCE_HOST is not set.
func IntegrationConfig() ([]config.Option, bool) {
	host := os.Getenv("SYMBDB_TEST_SOURCE_HOST")
	if host == "" {
		return nil, false
	}
	res := []config.Option{config.OptSourceHost(host)}
	envs := []struct {
		name string
		opt  func(string) config.Option
	}{
		{"SYMBDB_TEST_SOURCE_DRIVER", config.OptSourceDriver},
		{"SYMBDB_TEST_SOURCE_USER", config.OptSourceUser},
		{"SYMBDB_TEST_SOURCE_PASSWORD", config.OptSourcePassword},
		{"SYMBDB_TEST_SOURCE_DATABASE", config.OptSourceDatabase},
	}
	for _, v := range envs {
		if s := os.Getenv(v.name); s != "" {
			res = append(res, v.opt(s))
		}
	}
	if s := os.Getenv("SYMBDB_TEST_SOURCE_PORT"); s != "" {
		if port, err := strconv.Atoi(s); err == nil {
			res = append(res, config.OptSourcePort(port))
		}
	}
	return res, true
}

func createTable(tbl schema.Table) string {
	types := map[schema.Kind]string{
		schema.Int:    "INTEGER",
		schema.Float:  "REAL",
		schema.String: "TEXT",
	}
	cols := make([]string, len(tbl.Fields))
	for i, f := range tbl.Fields {
		cols[i] = fmt.Sprintf("%q %s", f.SourceColumn(), types[f.Kind])
	}
	return fmt.Sprintf("CREATE TABLE %s (%s)", tbl.Name, strings.Join(cols, ", "))
}

func inst(iid int, code, name, country string) []any {
	res := make([]any, len(schema.Institutions.Fields))
	res[0], res[1], res[2] = iid, code, name
	res[schema.Institutions.Index("Country")] = country
	res[len(res)-1] = "2019-05-04 12:00:00"
	return res
}

func coll(collid int, name string, iid any) []any {
	res := make([]any, len(schema.Collections.Fields))
	res[0] = collid
	res[schema.Collections.Index("collectionName")] = name
	res[schema.Collections.Index(schema.IID)] = iid
	return res
}

func taxon(tid int, kingdom string, rank int, name, epithet string, author any) []any {
	res := make([]any, len(schema.Taxa.Fields))
	res[0], res[1], res[2], res[3] = tid, kingdom, rank, name
	res[schema.Taxa.Index("unitName1")] = strings.Fields(name)[0]
	if epithet != "" {
		res[schema.Taxa.Index("unitName2")] = epithet
	}
	res[schema.Taxa.Index(schema.Author)] = author
	res[schema.Taxa.Index("securityStatus")] = 0
	return res
}

func occ(occid, collid int, tid, lat, lon, country, state any) []any {
	res := make([]any, len(schema.Occurrences.Fields))
	res[0], res[1] = occid, collid
	res[schema.Occurrences.Index(schema.TidInterpreted)] = tid
	res[schema.Occurrences.Index(schema.Latitude)] = lat
	res[schema.Occurrences.Index(schema.Longitude)] = lon
	res[schema.Occurrences.Index(schema.Country)] = country
	res[schema.Occurrences.Index(schema.StateProvince)] = state
	res[schema.Occurrences.Index("catalogNumber")] = fmt.Sprintf("CAT-%05d", occid)
	res[schema.Occurrences.Index("initialTimestamp")] = "2021-07-15 09:30:00"
	return res
}
