package config

import (
	"fmt"
	"path/filepath"
	"time"
)

var (
	// AppName is used in generating file system paths.
	AppName = "symbdb"

	// OutputSuffix is the name of the output file after its date prefix.
	OutputSuffix = "symbscan.sqlite"
)

// ConfigDir returns the directory path for configuration files.
// Returns ~/.config/symbdb by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// CacheDir returns the directory path for cache files.
// Returns ~/.cache/symbdb by default.
func CacheDir(homeDir string) string {
	return filepath.Join(homeDir, ".cache", AppName)
}

// LogDir returns the directory path for log files.
// Returns ~/.local/share/symbdb/logs by default.
func LogDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName, "logs")
}

// ConfigFilePath returns the full path to the config.yaml file.
// Returns ~/.config/symbdb/config.yaml by default.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "config.yaml")
}

// RegionsFilePath returns the full path to the regions.yaml file with
// recognized countries and states/provinces.
// Returns ~/.config/symbdb/regions.yaml by default.
func RegionsFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "regions.yaml")
}

// CredentialsFilePath returns the default MySQL option file ~/.my.cnf.
func CredentialsFilePath(homeDir string) string {
	return filepath.Join(homeDir, ".my.cnf")
}

// TablesCacheDir returns the directory of cached tables.
// Cache.Dir wins when it is set, otherwise ~/.cache/symbdb/tables is used.
func (c *Config) TablesCacheDir() string {
	if c.Cache.Dir != "" {
		return c.Cache.Dir
	}
	return filepath.Join(CacheDir(c.HomeDir), "tables")
}

// OutputPath returns the path of the output SQLite file, named by the
// date of the run, for example 2025-03-14_symbscan.sqlite.
func (c *Config) OutputPath() string {
	date := c.Output.Date
	if date.IsZero() {
		date = time.Now()
	}
	name := fmt.Sprintf("%s_%s", date.Format("2006-01-02"), OutputSuffix)
	return filepath.Join(c.Output.Dir, name)
}
