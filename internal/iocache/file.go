package iocache

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gnames/gnsys"
	"github.com/gnames/symbdb/pkg/frame"
)

// FileExt is the extension of cached artifacts.
const FileExt = ".gob.gz"

// FileCache keeps every artifact in its own file <dir>/<key>.gob.gz.
type FileCache struct {
	dir string
}

// NewFileCache creates the cache directory if it does not exist.
// Existing artifacts are kept.
func NewFileCache(dir string) (*FileCache, error) {
	if err := gnsys.MakeDir(dir); err != nil {
		slog.Error("Cannot create cache directory", "error", err, "dir", dir)
		return nil, OpenError(dir, err)
	}
	return &FileCache{dir: dir}, nil
}

// Dir returns the cache directory.
func (c *FileCache) Dir() string {
	return c.dir
}

// Path returns the path of the artifact of a key.
func (c *FileCache) Path(key string) string {
	return filepath.Join(c.dir, key+FileExt)
}

// Has implements cache.Cache.
func (c *FileCache) Has(key string) bool {
	fi, err := os.Stat(c.Path(key))
	return err == nil && fi.Mode().IsRegular()
}

// Get implements cache.Cache.
func (c *FileCache) Get(key string) (*frame.Frame, error) {
	path := c.Path(key)
	f, err := os.Open(path)
	if err != nil {
		return nil, ReadError(key, err)
	}
	defer f.Close()

	res, err := decode(f)
	if err != nil {
		slog.Error("Cannot decode cached table", "error", err, "path", path)
		return nil, DecodeError(key, path, err)
	}
	slog.Debug("Cache hit", "key", key, "rows", res.Len())
	return res, nil
}

// Put implements cache.Cache. The artifact is written to a temporary
// file first and renamed into place, so a partial write is never taken
// for a cache hit.
func (c *FileCache) Put(key string, f *frame.Frame) error {
	data, err := encode(f)
	if err != nil {
		return WriteError(key, err)
	}

	tmp, err := os.CreateTemp(c.dir, key+".*.tmp")
	if err != nil {
		return WriteError(key, err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return WriteError(key, err)
	}
	if err = tmp.Close(); err != nil {
		return WriteError(key, err)
	}
	if err = os.Rename(tmpPath, c.Path(key)); err != nil {
		return WriteError(key, err)
	}
	slog.Debug("Table cached", "key", key, "rows", f.Len(), "bytes", len(data))
	return nil
}

// List implements cache.Manager.
func (c *FileCache) List() ([]string, error) {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return nil, ReadError(c.dir, err)
	}
	var res []string
	for _, v := range entries {
		name := v.Name()
		if v.IsDir() || !strings.HasSuffix(name, FileExt) {
			continue
		}
		res = append(res, strings.TrimSuffix(name, FileExt))
	}
	slices.Sort(res)
	return res, nil
}

// Delete implements cache.Manager.
func (c *FileCache) Delete(key string) error {
	err := os.Remove(c.Path(key))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return DeleteError(key, err)
	}
	return nil
}

// Close implements cache.Manager.
func (c *FileCache) Close() error {
	return nil
}
