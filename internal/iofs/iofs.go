// Package iofs prepares the file system for symbdb: configuration, cache
// and log directories, configuration templates and the regions lookup
// file.
package iofs

import (
	"os"

	"github.com/gnames/symbdb/pkg/config"
	"github.com/gnames/symbdb/pkg/region"
	"github.com/gnames/symbdb/pkg/templates"
)

// EnsureDirs creates config, cache and log directories if they are
// missing.
func EnsureDirs(homeDir string) error {
	dirs := []string{
		config.ConfigDir(homeDir),
		config.CacheDir(homeDir),
		config.LogDir(homeDir),
	}
	for _, v := range dirs {
		if err := touchDir(v); err != nil {
			return err
		}
	}
	return nil
}

func touchDir(dir string) error {
	info, err := os.Stat(dir)
	if err == nil && info.IsDir() {
		return nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return CreateDirError(dir, err)
	}

	return nil
}

// EnsureConfigFile writes the default config.yaml unless it exists.
func EnsureConfigFile(homeDir string) error {
	return ensureFile(config.ConfigFilePath(homeDir), templates.ConfigYAML)
}

// EnsureRegionsFile writes the default regions.yaml unless it exists.
func EnsureRegionsFile(homeDir string) error {
	return ensureFile(config.RegionsFilePath(homeDir), templates.RegionsYAML)
}

func ensureFile(path, content string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return CopyFileError(path, err)
	}

	return nil
}

// ReadRegions reads recognized countries and states/provinces from a
// regions lookup file.
func ReadRegions(path string) (region.Lists, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return region.Lists{}, ReadFileError(path, err)
	}

	res, err := region.ParseLists(data)
	if err != nil {
		return region.Lists{}, RegionsFileError(path, err)
	}
	return res, nil
}
