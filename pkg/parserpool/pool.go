// Package parserpool provides a pool of gnparser instances for concurrent
// parsing of taxon names.
package parserpool

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/gnames/gnlib/ent/nomcode"
	"github.com/gnames/gnparser"
	"github.com/gnames/gnparser/ent/parsed"
)

// Pool parses scientific names concurrently.
type Pool interface {
	// Parse parses a name string according to a nomenclatural code.
	// It is safe for concurrent use.
	Parse(nameString string, code nomcode.Code) (parsed.Parsed, error)

	// Close releases parsers. The pool cannot be used afterwards.
	Close()
}

type poolImpl struct {
	botanicalCh  chan gnparser.GNparser
	zoologicalCh chan gnparser.GNparser
}

// NewPool creates a pool with jobsNum parsers per nomenclatural code.
// Zero jobsNum means runtime.NumCPU().
func NewPool(jobsNum int) Pool {
	poolSize := jobsNum
	if poolSize == 0 {
		poolSize = runtime.NumCPU()
	}

	botanicalCfg := gnparser.NewConfig(
		gnparser.OptCode(nomcode.Botanical),
		gnparser.OptWithDetails(true),
	)
	zoologicalCfg := gnparser.NewConfig(
		gnparser.OptCode(nomcode.Zoological),
		gnparser.OptWithDetails(true),
	)

	return &poolImpl{
		botanicalCh:  gnparser.NewPool(botanicalCfg, poolSize),
		zoologicalCh: gnparser.NewPool(zoologicalCfg, poolSize),
	}
}

// Parse implements Pool.
func (p *poolImpl) Parse(
	nameString string,
	code nomcode.Code,
) (parsed.Parsed, error) {
	var ch chan gnparser.GNparser
	switch code {
	case nomcode.Botanical:
		ch = p.botanicalCh
	case nomcode.Zoological:
		ch = p.zoologicalCh
	default:
		return parsed.Parsed{}, fmt.Errorf("unsupported nomenclatural code: %v", code)
	}

	parser := <-ch
	res := parser.ParseName(nameString)
	ch <- parser

	return res, nil
}

// Close implements Pool.
func (p *poolImpl) Close() {
	if p.botanicalCh != nil {
		close(p.botanicalCh)
		for range p.botanicalCh {
		}
	}
	if p.zoologicalCh != nil {
		close(p.zoologicalCh)
		for range p.zoologicalCh {
		}
	}
}

// CodeByKingdom returns the nomenclatural code that governs names of a
// kingdom. Plants, fungi and algae follow the botanical code, everything
// else is parsed as zoological.
func CodeByKingdom(kingdom string) nomcode.Code {
	switch strings.ToLower(strings.TrimSpace(kingdom)) {
	case "plantae", "fungi", "chromista", "protista", "algae":
		return nomcode.Botanical
	default:
		return nomcode.Zoological
	}
}
