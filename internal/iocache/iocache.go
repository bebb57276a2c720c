// Package iocache keeps cached tables on disk.
// This is an impure I/O package that implements the cache.Manager
// contract defined in pkg/cache.
//
// Two backends are available: "file" keeps one gzipped gob artifact per
// key, "badger" keeps all artifacts in a Badger key/value store. Both
// serialize frames with gnfmt.GNgob and compress them with gzip.
package iocache

import (
	"bytes"
	"io"

	"github.com/gnames/gnfmt"
	"github.com/gnames/symbdb/pkg/cache"
	"github.com/gnames/symbdb/pkg/config"
	"github.com/gnames/symbdb/pkg/frame"
	"github.com/klauspost/compress/gzip"
)

// New opens a cache of the backend set in the config.
func New(cfg *config.Config) (cache.Manager, error) {
	dir := cfg.TablesCacheDir()
	switch cfg.Cache.Backend {
	case "badger":
		return NewBadgerCache(dir)
	default:
		return NewFileCache(dir)
	}
}

func encode(f *frame.Frame) ([]byte, error) {
	enc := gnfmt.GNgob{}
	data, err := enc.Encode(f)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err = zw.Write(data); err != nil {
		return nil, err
	}
	if err = zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decode(r io.Reader) (*frame.Frame, error) {
	zr, err := gzip.NewReader(r)
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	data, err := io.ReadAll(zr)
	if err != nil {
		return nil, err
	}

	enc := gnfmt.GNgob{}
	var res frame.Frame
	if err = enc.Decode(data, &res); err != nil {
		return nil, err
	}
	return &res, nil
}
