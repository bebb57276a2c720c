package cmd

import (
	"fmt"
	"time"

	"github.com/gnames/symbdb/pkg/config"
	"github.com/spf13/cobra"
)

// dumpOptions converts flags that were set explicitly to config options.
// Flags win over config.yaml and environment variables.
func dumpOptions(
	cmd *cobra.Command,
	outputDir, date, cacheDir, backend string,
	noNames bool,
) ([]config.Option, error) {
	var res []config.Option
	flags := cmd.Flags()

	if flags.Changed("output-dir") {
		res = append(res, config.OptOutputDir(outputDir))
	}
	if flags.Changed("date") {
		t, err := time.Parse("2006-01-02", date)
		if err != nil {
			return nil, fmt.Errorf("invalid date %q, use YYYY-MM-DD: %w", date, err)
		}
		res = append(res, config.OptOutputDate(t))
	}
	if flags.Changed("cache-dir") {
		res = append(res, config.OptCacheDir(cacheDir))
	}
	if flags.Changed("cache-backend") {
		res = append(res, config.OptCacheBackend(backend))
	}
	if flags.Changed("no-canonicals") {
		res = append(res, config.OptOutputWithCanonicals(!noNames))
	}
	return res, nil
}
