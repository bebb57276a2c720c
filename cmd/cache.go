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
	"slices"

	"github.com/gnames/gn"
	"github.com/gnames/symbdb/internal/iocache"
	"github.com/gnames/symbdb/pkg/cache"
	"github.com/spf13/cobra"
)

// getCacheCmd returns the cache command with list and clear
// subcommands.
func getCacheCmd() *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and clear cached tables",
		Long: `Cached tables are kept in ~/.cache/symbdb/tables (or cache.dir
from config.yaml). They are never refreshed automatically: clear a
table to query it again during the next dump.

Keys:
  occid               occurrence ids of the region
  tbl_omoccurrences   occurrence records
  tbl_omcollections   collections
  tbl_institutions    institutions
  tbl_taxaenumtree    taxonomic closure
  tbl_taxa            taxa
  tbl_taxonunits      taxonomic ranks`,
	}

	cacheCmd.AddCommand(getCacheListCmd())
	cacheCmd.AddCommand(getCacheClearCmd())
	return cacheCmd
}

func getCacheListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List cached tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runCacheList()
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}
}

func getCacheClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear [key...]",
		Short: "Remove cached tables, all of them if no key is given",
		Example: `  symbdb cache clear
  symbdb cache clear tbl_taxa tbl_taxaenumtree`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runCacheClear(args)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}
}

func runCacheList() error {
	c, err := iocache.New(cfg)
	if err != nil {
		return err
	}
	defer c.Close()

	keys, err := c.List()
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		gn.Info("Cache <em>%s</em> is empty", cfg.TablesCacheDir())
		return nil
	}

	gn.Info("Cached tables in <em>%s</em>:", cfg.TablesCacheDir())
	for _, k := range keys {
		f, err := c.Get(k)
		if err != nil {
			fmt.Printf("  %-20s corrupt\n", k)
			continue
		}
		fmt.Printf("  %-20s %d rows\n", k, f.Len())
	}
	return nil
}

func runCacheClear(keys []string) error {
	for _, k := range keys {
		if !slices.Contains(cache.Keys(), k) {
			gn.Warn("Unknown cache key <em>%s</em>, ignoring", k)
		}
	}

	c, err := iocache.New(cfg)
	if err != nil {
		return err
	}
	defer c.Close()

	if len(keys) == 0 {
		if keys, err = c.List(); err != nil {
			return err
		}
	}
	for _, k := range keys {
		if err = c.Delete(k); err != nil {
			return err
		}
	}
	gn.Info("Removed %d cached tables", len(keys))
	return nil
}
