package config

import (
	"strings"
	"time"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptSourceDriver sets the SQL driver of the source database.
// Valid values: "mysql", "postgres", "sqlite".
func OptSourceDriver(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Source.Driver", s) {
			c.Source.Driver = s
		}
	}
}

// OptSourceHost sets the source server hostname or IP address.
func OptSourceHost(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Source Host", s) {
			c.Source.Host = s
		}
	}
}

// OptSourcePort sets the source server port number.
func OptSourcePort(i int) Option {
	return func(c *Config) {
		if isValidInt("Source Port", i) {
			c.Source.Port = i
		}
	}
}

// OptSourceUser sets the source database username.
func OptSourceUser(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Source User", s) {
			c.Source.User = s
		}
	}
}

// OptSourcePassword sets the source database password.
func OptSourcePassword(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Source Password", s) {
			c.Source.Password = s
		}
	}
}

// OptSourceDatabase sets the source database name.
func OptSourceDatabase(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Source Database", s) {
			c.Source.Database = s
		}
	}
}

// OptSourceSSLMode sets the SSL connection mode (PostgreSQL only).
// Valid values: "disable", "require", "verify-ca", "verify-full".
func OptSourceSSLMode(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Source.SSLMode", s) {
			c.Source.SSLMode = s
		}
	}
}

// OptSourceBatchSize sets the maximum number of identifiers per
// membership query.
func OptSourceBatchSize(i int) Option {
	return func(c *Config) {
		if isValidInt("Batch Size", i) {
			c.Source.BatchSize = i
		}
	}
}

// OptSourceCredentialsFile sets the path to a MySQL option file.
func OptSourceCredentialsFile(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Credentials File", s) {
			c.Source.CredentialsFile = s
		}
	}
}

// OptFilterBox sets the bounding box of the occurrence filter.
// Latitudes must be within [-90, 90] with min <= max, longitudes within
// [-180, 180].
func OptFilterBox(minLat, maxLat, minLon, maxLon float64) Option {
	return func(c *Config) {
		if isValidBox(minLat, maxLat, minLon, maxLon) {
			c.Filter.MinLatitude = minLat
			c.Filter.MaxLatitude = maxLat
			c.Filter.MinLongitude = minLon
			c.Filter.MaxLongitude = maxLon
		}
	}
}

// OptFilterCountries sets recognized country names.
// Runtime-only field - not in ToOptions().
func OptFilterCountries(ss []string) Option {
	ss = cleanList(ss)
	return func(c *Config) {
		c.Filter.Countries = ss
	}
}

// OptFilterStates sets recognized state/province names.
// Runtime-only field - not in ToOptions().
func OptFilterStates(ss []string) Option {
	ss = cleanList(ss)
	return func(c *Config) {
		c.Filter.States = ss
	}
}

// OptCacheDir sets the directory of the table cache.
func OptCacheDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Cache Dir", s) {
			c.Cache.Dir = s
		}
	}
}

// OptCacheBackend sets the storage of the table cache.
// Valid values: "file", "badger".
func OptCacheBackend(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Cache.Backend", s) {
			c.Cache.Backend = s
		}
	}
}

// OptOutputDir sets the directory of the output SQLite file.
func OptOutputDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Output Dir", s) {
			c.Output.Dir = s
		}
	}
}

// OptOutputWithCanonicals toggles canonical forms of taxa names in
// the output.
func OptOutputWithCanonicals(b bool) Option {
	return func(c *Config) {
		c.Output.WithCanonicals = b
	}
}

// OptOutputDate sets the date used in the output file name.
// Runtime-only field - not in ToOptions().
func OptOutputDate(t time.Time) Option {
	return func(c *Config) {
		if !t.IsZero() {
			c.Output.Date = t
		}
	}
}

// OptLogLevel sets the logging level.
// Valid values: "debug", "info", "warn", "error".
func OptLogLevel(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogFormat sets the log output format.
// Valid values: "json", "text", "tint".
func OptLogFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogDestination sets where logs are written.
// Valid values: "file", "stderr", "stdout".
func OptLogDestination(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptJobsNumber sets the number of concurrent workers.
// Default is runtime.NumCPU().
func OptJobsNumber(i int) Option {
	return func(c *Config) {
		if isValidInt("Jobs Number", i) {
			c.JobsNumber = i
		}
	}
}

// OptHomeDir sets the home directory for config, cache, and log locations.
// Set once at startup from os.UserHomeDir().
// Runtime-only field - not in ToOptions().
func OptHomeDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Home Directory", s) {
			c.HomeDir = s
		}
	}
}
