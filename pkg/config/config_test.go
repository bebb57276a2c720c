package config_test

import (
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/gnames/symbdb/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirs(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that uses file system in short mode")
	}

	tempHome := t.TempDir()

	tests := []struct {
		msg string
		fn  func(string) string
		res string
	}{
		{
			msg: "config dir",
			fn:  config.ConfigDir,
			res: filepath.Join(tempHome, ".config", "symbdb"),
		},
		{
			msg: "cache dir",
			fn:  config.CacheDir,
			res: filepath.Join(tempHome, ".cache", "symbdb"),
		},
		{
			msg: "log dir",
			fn:  config.LogDir,
			res: filepath.Join(tempHome, ".local", "share", "symbdb", "logs"),
		},
		{
			msg: "regions file",
			fn:  config.RegionsFilePath,
			res: filepath.Join(tempHome, ".config", "symbdb", "regions.yaml"),
		},
		{
			msg: "credentials file",
			fn:  config.CredentialsFilePath,
			res: filepath.Join(tempHome, ".my.cnf"),
		},
	}

	for _, v := range tests {
		res := v.fn(tempHome)
		assert.Equal(t, v.res, res, v.msg)
	}
}

func TestNew(t *testing.T) {
	cfg := config.New()

	t.Run("creates valid default config", func(t *testing.T) {
		require.NotNil(t, cfg)

		// Source defaults
		assert.Equal(t, "mysql", cfg.Source.Driver)
		assert.Equal(t, "localhost", cfg.Source.Host)
		assert.Equal(t, 3306, cfg.Source.Port)
		assert.Equal(t, "root", cfg.Source.User)
		assert.Equal(t, "", cfg.Source.Password)
		assert.Equal(t, "symbscan", cfg.Source.Database)
		assert.Equal(t, 10_000, cfg.Source.BatchSize)

		// Filter defaults
		assert.Equal(t, 6.6, cfg.Filter.MinLatitude)
		assert.Equal(t, 83.3, cfg.Filter.MaxLatitude)
		assert.Equal(t, -178.2, cfg.Filter.MinLongitude)
		assert.Equal(t, -49.0, cfg.Filter.MaxLongitude)
		assert.Empty(t, cfg.Filter.Countries)

		// Cache and output
		assert.Equal(t, "file", cfg.Cache.Backend)
		assert.Equal(t, ".", cfg.Output.Dir)
		assert.True(t, cfg.Output.WithCanonicals)

		// Log defaults
		assert.Equal(t, "json", cfg.Log.Format)
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, "file", cfg.Log.Destination)

		// JobsNumber defaults to CPU count
		assert.Equal(t, runtime.NumCPU(), cfg.JobsNumber)
	})
}

func TestOptionSourceDriver(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"sets postgres", "postgres", "postgres"},
		{"sets sqlite with spaces and case", "  SQLite ", "sqlite"},
		{"rejects unknown driver", "oracle", "mysql"},
		{"rejects empty driver", "", "mysql"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{config.OptSourceDriver(tt.input)})
			assert.Equal(t, tt.expected, cfg.Source.Driver)
		})
	}
}

func TestOptionSourceHost(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"sets valid host", "scan.example.org", "scan.example.org"},
		{"trims whitespace", "  10.0.0.1  ", "10.0.0.1"},
		{"rejects empty string", "", "localhost"},
		{"rejects whitespace only", "   ", "localhost"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{config.OptSourceHost(tt.input)})
			assert.Equal(t, tt.expected, cfg.Source.Host)
		})
	}
}

func TestOptionSourcePort(t *testing.T) {
	tests := []struct {
		name     string
		input    int
		expected int
	}{
		{"sets valid port", 5432, 5432},
		{"rejects zero", 0, 3306},
		{"rejects negative", -1, 3306},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{config.OptSourcePort(tt.input)})
			assert.Equal(t, tt.expected, cfg.Source.Port)
		})
	}
}

func TestOptionSourceSSLMode(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"sets require", "require", "require"},
		{"sets verify-full in upper case", "VERIFY-FULL", "verify-full"},
		{"rejects invalid mode", "sometimes", "disable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{config.OptSourceSSLMode(tt.input)})
			assert.Equal(t, tt.expected, cfg.Source.SSLMode)
		})
	}
}

func TestOptionBatchSize(t *testing.T) {
	tests := []struct {
		name     string
		input    int
		expected int
	}{
		{"sets batch size", 500, 500},
		{"rejects zero", 0, 10_000},
		{"rejects negative", -5, 10_000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{config.OptSourceBatchSize(tt.input)})
			assert.Equal(t, tt.expected, cfg.Source.BatchSize)
		})
	}
}

func TestOptionFilterBox(t *testing.T) {
	tests := []struct {
		name                           string
		minLat, maxLat, minLon, maxLon float64
		expected                       [4]float64
	}{
		{"sets valid box", 40, 50, -100, -90, [4]float64{40, 50, -100, -90}},
		{"keeps antimeridian box", 50, 70, 170, -130, [4]float64{50, 70, 170, -130}},
		{"rejects inverted latitudes", 50, 40, -100, -90,
			[4]float64{6.6, 83.3, -178.2, -49.0}},
		{"rejects latitude out of range", -91, 10, 0, 10,
			[4]float64{6.6, 83.3, -178.2, -49.0}},
		{"rejects longitude out of range", 0, 10, -181, 10,
			[4]float64{6.6, 83.3, -178.2, -49.0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{
				config.OptFilterBox(tt.minLat, tt.maxLat, tt.minLon, tt.maxLon),
			})
			f := cfg.Filter
			res := [4]float64{f.MinLatitude, f.MaxLatitude, f.MinLongitude, f.MaxLongitude}
			assert.Equal(t, tt.expected, res)
		})
	}
}

func TestOptionFilterLists(t *testing.T) {
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptFilterCountries([]string{" Canada", "", "canada", "USA"}),
		config.OptFilterStates([]string{"Ontario", "ONTARIO ", "Quebec"}),
	})
	assert.Equal(t, []string{"Canada", "USA"}, cfg.Filter.Countries)
	assert.Equal(t, []string{"Ontario", "Quebec"}, cfg.Filter.States)
}

func TestOptionCacheBackend(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"sets badger", "badger", "badger"},
		{"sets file in upper case", "FILE", "file"},
		{"rejects unknown backend", "redis", "file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{config.OptCacheBackend(tt.input)})
			assert.Equal(t, tt.expected, cfg.Cache.Backend)
		})
	}
}

func TestOptionLogLevel(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"sets debug", "debug", "debug"},
		{"sets error in upper case", "ERROR", "error"},
		{"rejects invalid level", "trace", "info"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{config.OptLogLevel(tt.input)})
			assert.Equal(t, tt.expected, cfg.Log.Level)
		})
	}
}

func TestOptionLogFormat(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"sets text", "text", "text"},
		{"sets tint", "tint", "tint"},
		{"rejects invalid format", "xml", "json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{config.OptLogFormat(tt.input)})
			assert.Equal(t, tt.expected, cfg.Log.Format)
		})
	}
}

func TestOptionJobsNumber(t *testing.T) {
	tests := []struct {
		name     string
		input    int
		expected int
	}{
		{"sets jobs number", 3, 3},
		{"rejects zero", 0, runtime.NumCPU()},
		{"rejects negative", -2, runtime.NumCPU()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{config.OptJobsNumber(tt.input)})
			assert.Equal(t, tt.expected, cfg.JobsNumber)
		})
	}
}

func TestMultipleOptions(t *testing.T) {
	t.Run("applies multiple options in order", func(t *testing.T) {
		cfg := config.New()
		cfg.Update([]config.Option{
			config.OptSourceHost("custom.host.com"),
			config.OptSourcePort(3307),
			config.OptSourceUser("scan"),
			config.OptLogLevel("debug"),
			config.OptJobsNumber(16),
		})

		assert.Equal(t, "custom.host.com", cfg.Source.Host)
		assert.Equal(t, 3307, cfg.Source.Port)
		assert.Equal(t, "scan", cfg.Source.User)
		assert.Equal(t, "debug", cfg.Log.Level)
		assert.Equal(t, 16, cfg.JobsNumber)

		// unchanged defaults
		assert.Equal(t, "symbscan", cfg.Source.Database)
		assert.Equal(t, "json", cfg.Log.Format)
	})

	t.Run("later options override earlier ones", func(t *testing.T) {
		cfg := config.New()
		cfg.Update([]config.Option{
			config.OptSourceHost("first.host.com"),
			config.OptSourceHost("second.host.com"),
		})
		assert.Equal(t, "second.host.com", cfg.Source.Host)
	})
}

func TestToOptions(t *testing.T) {
	t.Run("converts config to options correctly", func(t *testing.T) {
		original := config.New()
		original.Update([]config.Option{
			config.OptSourceDriver("postgres"),
			config.OptSourceHost("db.example.org"),
			config.OptSourcePort(5432),
			config.OptSourcePassword("secret"),
			config.OptSourceBatchSize(250),
			config.OptFilterBox(40, 50, -100, -90),
			config.OptCacheDir("/tmp/symbdb"),
			config.OptCacheBackend("badger"),
			config.OptOutputDir("/tmp/out"),
			config.OptOutputWithCanonicals(false),
			config.OptLogDestination("stderr"),
			config.OptJobsNumber(2),
		})

		newCfg := config.New()
		newCfg.Update(original.ToOptions())

		assert.Equal(t, original.Source, newCfg.Source)
		assert.Equal(t, original.Filter.MinLatitude, newCfg.Filter.MinLatitude)
		assert.Equal(t, original.Filter.MaxLongitude, newCfg.Filter.MaxLongitude)
		assert.Equal(t, original.Cache, newCfg.Cache)
		assert.Equal(t, original.Output.Dir, newCfg.Output.Dir)
		assert.False(t, newCfg.Output.WithCanonicals)
		assert.Equal(t, original.Log, newCfg.Log)
		assert.Equal(t, original.JobsNumber, newCfg.JobsNumber)
	})

	t.Run("excludes runtime-only fields", func(t *testing.T) {
		date := time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC)
		original := config.New()
		original.Update([]config.Option{
			config.OptHomeDir("/home/test"),
			config.OptFilterCountries([]string{"Canada"}),
			config.OptFilterStates([]string{"Ontario"}),
			config.OptOutputDate(date),
		})

		newCfg := &config.Config{}
		newCfg.Update(original.ToOptions())

		assert.Equal(t, "", newCfg.HomeDir)
		assert.Nil(t, newCfg.Filter.Countries)
		assert.Nil(t, newCfg.Filter.States)
		assert.True(t, newCfg.Output.Date.IsZero())
	})
}

func TestPaths(t *testing.T) {
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptHomeDir("/home/test"),
		config.OptOutputDir("/data"),
		config.OptOutputDate(time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)),
	})

	assert.Equal(t, filepath.Join("/data", "2025-03-14_symbscan.sqlite"),
		cfg.OutputPath())
	assert.Equal(t,
		filepath.Join("/home/test", ".cache", "symbdb", "tables"),
		cfg.TablesCacheDir())

	cfg.Update([]config.Option{config.OptCacheDir("/var/cache/scan")})
	assert.Equal(t, "/var/cache/scan", cfg.TablesCacheDir())
}
