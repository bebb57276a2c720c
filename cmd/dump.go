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
	"context"
	"fmt"
	"os"
	"os/signal"
	"slices"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/gnames/symbdb/internal/iocache"
	"github.com/gnames/symbdb/internal/iodb"
	"github.com/gnames/symbdb/internal/iodump"
	"github.com/gnames/symbdb/pkg/symbdb"
	"github.com/spf13/cobra"
)

// getDumpCmd returns the dump command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getDumpCmd() *cobra.Command {
	var (
		outputDir string
		date      string
		cacheDir  string
		backend   string
		noNames   bool
	)

	dumpCmd := &cobra.Command{
		Use:   "dump",
		Short: "Extract a regional snapshot into a SQLite file",
		Long: `Extract occurrences of the configured region and everything
they refer to, and save them as YYYY-MM-DD_symbscan.sqlite.

This command runs 8 phases:
  1. taxonomic ranks (taxonunits)
  2. occurrences inside the bounding box or with recognized
     country or state/province names
  3. full occurrence records
  4. collections of the occurrences
  5. institutions of the collections
  6. taxonomic closure: taxa of the occurrences and all their ancestors
  7. taxa of the closure
  8. the output SQLite file

Every phase result is cached. Cached tables are never queried again,
run 'symbdb cache clear' to refresh them. An existing output file is
not overwritten.

Examples:
  symbdb dump
  symbdb dump --output-dir ~/snapshots
  symbdb dump -d 2025-03-14 --cache-backend badger`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runDump(cmd, outputDir, date, cacheDir, backend, noNames)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	dumpCmd.Flags().StringVarP(
		&outputDir, "output-dir", "o", "",
		"directory of the output file",
	)
	dumpCmd.Flags().StringVarP(
		&date, "date", "d", "",
		"date YYYY-MM-DD used in the output file name (default today)",
	)
	dumpCmd.Flags().StringVarP(
		&cacheDir, "cache-dir", "c", "",
		"directory of cached tables",
	)
	dumpCmd.Flags().StringVarP(
		&backend, "cache-backend", "b", "",
		"cache backend: file or badger",
	)
	dumpCmd.Flags().BoolVar(
		&noNames, "no-canonicals", false,
		"do not add canonical forms of taxa names",
	)

	return dumpCmd
}

func runDump(
	cmd *cobra.Command,
	outputDir, date, cacheDir, backend string,
	noNames bool,
) error {
	dumpOpts, err := dumpOptions(cmd, outputDir, date, cacheDir, backend, noNames)
	if err != nil {
		return err
	}
	cfg.Update(dumpOpts)

	if len(cfg.Filter.Countries)+len(cfg.Filter.States) == 0 {
		gn.Warn("No recognized countries or states, only coordinates are used")
	}

	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer stop()

	c, err := iocache.New(cfg)
	if err != nil {
		return err
	}
	defer c.Close()

	src := iodb.New(cfg)
	defer src.Close()

	gn.Info("Extracting snapshot from <em>%s</em> source <em>%s</em>",
		cfg.Source.Driver, cfg.Source.Database)

	res, err := iodump.New(cfg, src, c).Dump(ctx)
	if err != nil {
		return err
	}

	printSummary(res)
	return nil
}

func printSummary(res *symbdb.Summary) {
	tables := make([]string, 0, len(res.Counts))
	for k := range res.Counts {
		tables = append(tables, k)
	}
	slices.Sort(tables)

	fmt.Println()
	for _, v := range tables {
		fmt.Printf("  %-15s %12s\n", v, humanize.Comma(int64(res.Counts[v])))
	}
	fmt.Println()

	status := "created"
	if !res.Created {
		status = "already existed"
	}
	gn.Info(`Snapshot extraction complete
Output file <em>%s</em> %s.
Elapsed time: <em>%s</em>
`,
		res.Output,
		status,
		gnfmt.TimeString(res.Duration.Seconds()),
	)
}
