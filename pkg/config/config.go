// Package config provides configuration management for symbdb.
//
// This package has no I/O dependencies (no file operations, no network calls).
// Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml >
// credentials file > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - Source: driver, host, port, user, password, database, ssl_mode,
//     batch_size, credentials_file
//   - Filter: min_latitude, max_latitude, min_longitude, max_longitude
//   - Cache: dir, backend
//   - Output: dir, with_canonicals
//   - Log: level, format, destination
//   - General: jobs_number
//
// Runtime-only fields (CLI flags only):
//   - Filter.Countries, Filter.States (loaded from regions.yaml)
//   - Output.Date (date used in the output file name)
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use SYMBDB_ prefix with underscores for nesting:
//
//	SYMBDB_SOURCE_HOST=localhost
//	SYMBDB_SOURCE_DRIVER=mysql
//	SYMBDB_CACHE_BACKEND=badger
//	SYMBDB_LOG_LEVEL=info
package config

import (
	"runtime"
	"time"
)

// Config represents the complete symbdb configuration.
type Config struct {
	// Source contains connection settings for the Symbiota database
	// the snapshot is extracted from.
	Source SourceConfig `mapstructure:"source" yaml:"source"`

	// Filter contains the region that selects occurrence records.
	Filter FilterConfig `mapstructure:"filter" yaml:"filter"`

	// Cache contains settings of the table cache.
	Cache CacheConfig `mapstructure:"cache" yaml:"cache"`

	// Output contains settings of the generated SQLite file.
	Output OutputConfig `mapstructure:"output" yaml:"output"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// JobsNumber is the number of concurrent workers for chunked queries
	// and name parsing.
	// Default value is set accoring to the number of available threads.
	JobsNumber int `mapstructure:"jobs_number" yaml:"jobs_number"`

	// HomeDir determines where config, cache and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string
}

// SourceConfig contains connection parameters of the source database.
type SourceConfig struct {
	// Driver is "mysql" (native Symbiota portals), "postgres" (a PostgreSQL
	// mirror of a portal) or "sqlite" (a portal exported to a SQLite file,
	// Database is the path to the file).
	Driver string `mapstructure:"driver" yaml:"driver"`

	// Host is the database server hostname or IP address.
	Host string `mapstructure:"host" yaml:"host"`

	// Port is the database server port number.
	Port int `mapstructure:"port" yaml:"port"`

	// User is the database username.
	User string `mapstructure:"user" yaml:"user"`

	// Password is the database password.
	Password string `mapstructure:"password" yaml:"password"`

	// Database is the name of the source database.
	Database string `mapstructure:"database" yaml:"database"`

	// SSLMode specifies the SSL connection mode for PostgreSQL.
	// Valid values: "disable", "require", "verify-ca", "verify-full"
	SSLMode string `mapstructure:"ssl_mode" yaml:"ssl_mode"`

	// BatchSize is the largest number of identifiers sent in one
	// `WHERE ... IN (...)` query. Larger sets are split into chunks.
	BatchSize int `mapstructure:"batch_size" yaml:"batch_size"`

	// CredentialsFile is a MySQL option file (like ~/.my.cnf). Its [client]
	// section provides host, port, user and password.
	CredentialsFile string `mapstructure:"credentials_file" yaml:"credentials_file"`
}

// FilterConfig describes which occurrences get into the snapshot.
// A record is selected if its coordinates are inside the bounding box,
// or its country or state/province is one of the recognized names.
type FilterConfig struct {
	MinLatitude  float64 `mapstructure:"min_latitude"  yaml:"min_latitude"`
	MaxLatitude  float64 `mapstructure:"max_latitude"  yaml:"max_latitude"`
	MinLongitude float64 `mapstructure:"min_longitude" yaml:"min_longitude"`
	MaxLongitude float64 `mapstructure:"max_longitude" yaml:"max_longitude"`

	// Countries are recognized country names, compared case-insensitively.
	Countries []string `mapstructure:"-" yaml:"-"`

	// States are recognized state/province names, compared
	// case-insensitively.
	States []string `mapstructure:"-" yaml:"-"`
}

// CacheConfig contains settings of the table cache.
type CacheConfig struct {
	// Dir is the directory where cached tables are kept. If empty,
	// ~/.cache/symbdb/tables is used.
	Dir string `mapstructure:"dir" yaml:"dir"`

	// Backend is "file" (one gob.gz artifact per table) or "badger".
	Backend string `mapstructure:"backend" yaml:"backend"`
}

// OutputConfig contains settings of the generated SQLite file.
type OutputConfig struct {
	// Dir is the directory for the output file.
	Dir string `mapstructure:"dir" yaml:"dir"`

	// WithCanonicals adds canonical forms and GN name UUIDs of taxa names
	// to the output.
	WithCanonicals bool `mapstructure:"with_canonicals" yaml:"with_canonicals"`

	// Date is used as a prefix of the output file name.
	Date time.Time `mapstructure:"-" yaml:"-"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json', 'text' or 'tint' (user-facing and colored).
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Source: SourceConfig{
			Driver:    "mysql",
			Host:      "localhost",
			Port:      3306,
			User:      "root",
			Database:  "symbscan",
			SSLMode:   "disable",
			BatchSize: 10_000,
		},
		// Northern America, as used by the SCAN portal snapshots.
		Filter: FilterConfig{
			MinLatitude:  6.6,
			MaxLatitude:  83.3,
			MinLongitude: -178.2,
			MaxLongitude: -49.0,
		},
		Cache: CacheConfig{
			Backend: "file",
		},
		Output: OutputConfig{
			Dir:            ".",
			WithCanonicals: true,
			Date:           time.Now(),
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
		JobsNumber: runtime.NumCPU(),
	}

	return res
}
