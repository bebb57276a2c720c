/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/symbdb/internal/iodb"
	"github.com/gnames/symbdb/internal/iofs"
	"github.com/gnames/symbdb/internal/iologger"
	symbdb "github.com/gnames/symbdb/pkg"
	"github.com/gnames/symbdb/pkg/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	homeDir string
	opts    []config.Option
	cfg     *config.Config
)

// getRootCmd returns the root command.
// Extracted as a function to facilitate testing.
func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Version: fmt.Sprintf("version: %s\nbuild:   %s", symbdb.Version, symbdb.Build),
		Use:     "symbdb",
		Short:   "Extracts regional snapshots of Symbiota databases to SQLite",
		Long: `symbdb extracts occurrences of a region from a Symbiota
biodiversity database, together with their collections, institutions and
the full taxonomic ancestry of their taxa, and saves them as a portable
SQLite file.

Occurrences are selected by a bounding box or by recognized country and
state/province names. Every query result is cached, so an interrupted run
continues where it stopped and a repeated run does not touch the source
database.

Configuration: ~/.config/symbdb/config.yaml
Region names:  ~/.config/symbdb/regions.yaml
Credentials:   ~/.my.cnf ([client] section)`,
		PersistentPreRunE: bootstrap,
		SilenceErrors:     true,
		SilenceUsage:      true,
	}

	// Remove the automatic "symbdb version" prefix
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	// Override version flag to use -V (consistent with other gn projects)
	rootCmd.Flags().BoolP("version", "V", false, "version for symbdb")

	rootCmd.AddCommand(getDumpCmd())
	rootCmd.AddCommand(getCreateCmd())
	rootCmd.AddCommand(getCacheCmd())

	return rootCmd
}

func bootstrap(cmd *cobra.Command, args []string) error {
	var err error
	homeDir, err = os.UserHomeDir()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureDirs(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	// Initialize logging with hardcoded defaults
	// Will be reconfigured later with user's config settings
	defaultLog := config.LogConfig{
		Format:      "json",
		Level:       "info",
		Destination: "file",
	}
	if err = iologger.Init(config.LogDir(homeDir), defaultLog, false); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureConfigFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	if err = iofs.EnsureRegionsFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	var cfgViper *config.Config
	if cfgViper, err = initConfig(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	credPath := cfgViper.Source.CredentialsFile
	if credPath == "" {
		credPath = config.CredentialsFilePath(homeDir)
	}
	var credOpts []config.Option
	if credOpts, err = iodb.ReadCredentials(credPath); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	regions, err := iofs.ReadRegions(config.RegionsFilePath(homeDir))
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	// config.yaml and environment win over the credentials file
	cfg = config.New()
	opts = append(credOpts, cfgViper.ToOptions()...)
	opts = append(opts,
		config.OptFilterCountries(regions.Countries),
		config.OptFilterStates(regions.States),
		config.OptHomeDir(homeDir),
	)
	cfg.Update(opts)

	// Reconfigure logging with user's settings, the log of the
	// bootstrap is kept
	if err = iologger.Init(config.LogDir(homeDir), cfg.Log, true); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	slog.Info("Configuration loaded",
		"config_file", config.ConfigFilePath(homeDir),
		"credentials_file", credPath,
		"countries", len(cfg.Filter.Countries),
		"states", len(cfg.Filter.States),
	)

	return nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := getRootCmd().Execute()
	if err != nil {
		os.Exit(1)
	}
}

func initConfig(home string) (*config.Config, error) {
	var err error
	cfgPath := config.ConfigFilePath(home)
	v := viper.New()
	v.SetConfigFile(cfgPath)

	initEnvVars(v)

	if err = v.ReadInConfig(); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	var res config.Config
	if err = v.Unmarshal(&res); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	return &res, nil
}

func initEnvVars(v *viper.Viper) {
	// Set environment variables we want.
	// We set them manually so we can see clearly which env variables are allowed.
	// These match the fields included in config.ToOptions() - i.e., persistent
	// configuration that can be stored in config.yaml.
	v.SetEnvPrefix("SYMBDB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Source database configuration
	v.BindEnv("source.driver", "SYMBDB_SOURCE_DRIVER")
	v.BindEnv("source.host", "SYMBDB_SOURCE_HOST")
	v.BindEnv("source.port", "SYMBDB_SOURCE_PORT")
	v.BindEnv("source.user", "SYMBDB_SOURCE_USER")
	v.BindEnv("source.password", "SYMBDB_SOURCE_PASSWORD")
	v.BindEnv("source.database", "SYMBDB_SOURCE_DATABASE")
	v.BindEnv("source.ssl_mode", "SYMBDB_SOURCE_SSL_MODE")
	v.BindEnv("source.batch_size", "SYMBDB_SOURCE_BATCH_SIZE")
	v.BindEnv("source.credentials_file", "SYMBDB_SOURCE_CREDENTIALS_FILE")

	// Region filter
	v.BindEnv("filter.min_latitude", "SYMBDB_FILTER_MIN_LATITUDE")
	v.BindEnv("filter.max_latitude", "SYMBDB_FILTER_MAX_LATITUDE")
	v.BindEnv("filter.min_longitude", "SYMBDB_FILTER_MIN_LONGITUDE")
	v.BindEnv("filter.max_longitude", "SYMBDB_FILTER_MAX_LONGITUDE")

	// Cache and output
	v.BindEnv("cache.dir", "SYMBDB_CACHE_DIR")
	v.BindEnv("cache.backend", "SYMBDB_CACHE_BACKEND")
	v.BindEnv("output.dir", "SYMBDB_OUTPUT_DIR")
	v.BindEnv("output.with_canonicals", "SYMBDB_OUTPUT_WITH_CANONICALS")

	// Log configuration
	v.BindEnv("log.level", "SYMBDB_LOG_LEVEL")
	v.BindEnv("log.format", "SYMBDB_LOG_FORMAT")
	v.BindEnv("log.destination", "SYMBDB_LOG_DESTINATION")

	// General configuration
	v.BindEnv("jobs_number", "SYMBDB_JOBS_NUMBER")

	v.AutomaticEnv()
}
