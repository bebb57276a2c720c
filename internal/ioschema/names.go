package ioschema

import (
	"context"
	"database/sql"
	"log/slog"
	"strings"

	"github.com/gnames/gnuuid"
	"github.com/gnames/symbdb/pkg/frame"
	"github.com/gnames/symbdb/pkg/parserpool"
	"github.com/gnames/symbdb/pkg/schema"
	"golang.org/x/sync/errgroup"
)

const (
	namesTable    = "taxa_names"
	metadataTable = "metadata"
)

// taxonName is a row of taxa_names. Unparsed names have only tid and
// nameStringID.
type taxonName struct {
	tid          int64
	nameStringID string
	canonical    string
	canonicalID  string
	cardinality  int
}

func (n taxonName) row() []any {
	res := []any{n.tid, n.nameStringID, nil, nil, nil}
	if n.canonical != "" {
		res[2], res[3], res[4] = n.canonical, n.canonicalID, n.cardinality
	}
	return res
}

// names parses names of the taxa table and writes taxa_names. It returns
// the number of written rows.
func (m *Materializer) names(
	ctx context.Context,
	db *sql.DB,
	tables []*frame.Frame,
) (int, error) {
	var taxa *frame.Frame
	for _, f := range tables {
		if f.Table == schema.Taxa.Name {
			taxa = f
		}
	}
	if taxa == nil || taxa.Len() == 0 {
		return 0, nil
	}

	res, err := m.parseTaxa(ctx, taxa)
	if err != nil {
		return 0, err
	}

	cols := []string{"tid", "name_string_id", "canonical", "canonical_id", "cardinality"}
	err = insertRows(ctx, db, namesTable, cols, len(res), m.bar(namesTable, len(res)),
		func(i int) []any { return res[i].row() },
	)
	if err != nil {
		return 0, err
	}
	return len(res), nil
}

// parseTaxa parses names with JobsNumber workers. Results keep the order
// of the taxa rows.
func (m *Materializer) parseTaxa(
	ctx context.Context,
	taxa *frame.Frame,
) ([]taxonName, error) {
	pool := parserpool.NewPool(m.jobs)
	defer pool.Close()

	res := make([]taxonName, taxa.Len())
	chIn := make(chan int)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(chIn)
		for i := range res {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case chIn <- i:
			}
		}
		return nil
	})

	for range m.jobs {
		g.Go(func() error {
			for i := range chIn {
				name, err := parseTaxon(pool, taxa, i)
				if err != nil {
					return err
				}
				res[i] = name
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, NamesError(err)
	}
	slog.Info("Taxa names parsed", "count", len(res))
	return res, nil
}

func parseTaxon(
	pool parserpool.Pool,
	taxa *frame.Frame,
	i int,
) (taxonName, error) {
	tid, _ := taxa.Int(schema.Tid, i)
	nameString := taxonNameString(taxa, i)
	kingdom, _ := taxa.Get(schema.KingdomName, i)
	kingdomStr, _ := kingdom.(string)

	res := taxonName{
		tid:          tid,
		nameStringID: gnuuid.New(nameString).String(),
	}

	p, err := pool.Parse(nameString, parserpool.CodeByKingdom(kingdomStr))
	if err != nil {
		return res, err
	}
	if !p.Parsed || p.Canonical == nil {
		return res, nil
	}
	res.canonical = p.Canonical.Simple
	res.canonicalID = gnuuid.New(p.Canonical.Simple).String()
	res.cardinality = p.Cardinality
	return res, nil
}

// taxonNameString joins the scientific name and its authorship.
func taxonNameString(taxa *frame.Frame, i int) string {
	sciName, _ := taxa.Get(schema.SciName, i)
	author, _ := taxa.Get(schema.Author, i)
	name, _ := sciName.(string)
	auth, _ := author.(string)
	return strings.TrimSpace(strings.TrimSpace(name) + " " + strings.TrimSpace(auth))
}
